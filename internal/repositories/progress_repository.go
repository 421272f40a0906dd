package repositories

import (
	"context"

	"github.com/OpenCampus-2025/learning-service/internal/models"
)

// ProgressRepository handles lesson progress persistence. Rows are unique
// per (user, lesson) and written through an atomic upsert.
type ProgressRepository interface {
	// Upsert creates the row when absent or merges the given fields into the
	// existing one, keyed on (UserID, LessonID). The passed record is
	// refreshed with the stored state.
	Upsert(ctx context.Context, progress *models.UserProgress) error

	GetByID(ctx context.Context, id uint) (*models.UserProgress, error)
	GetByUserAndLesson(ctx context.Context, userID, lessonID uint) (*models.UserProgress, error)
	List(ctx context.Context, filters ProgressFilters) ([]*models.UserProgress, int64, error)

	// GetByCourse returns the user's progress rows for every lesson of the
	// course, ordered by lesson order.
	GetByCourse(ctx context.Context, userID, courseID uint) ([]*models.UserProgress, error)

	// CountCompletedByCourse is the completedLessons input of the enrollment
	// recompute: completed rows of the user joined through lessons of the course.
	CountCompletedByCourse(ctx context.Context, userID, courseID uint) (int64, error)
}
