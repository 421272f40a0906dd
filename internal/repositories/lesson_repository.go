package repositories

import (
	"context"

	"github.com/OpenCampus-2025/learning-service/internal/models"
)

// LessonRepository handles lesson persistence.
type LessonRepository interface {
	Create(ctx context.Context, lesson *models.Lesson) error
	GetByID(ctx context.Context, id uint) (*models.Lesson, error)
	GetByCourse(ctx context.Context, courseID uint, filters ListFilters) ([]*models.Lesson, int64, error)
	Update(ctx context.Context, lesson *models.Lesson) error
	Delete(ctx context.Context, id uint) error

	// CountByCourse is the totalLessons input of the enrollment recompute.
	CountByCourse(ctx context.Context, courseID uint) (int64, error)
}
