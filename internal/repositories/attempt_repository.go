package repositories

import (
	"context"

	"github.com/OpenCampus-2025/learning-service/internal/models"
)

// AttemptRepository handles graded attempt persistence. Attempts are written
// once at grading time and never updated.
type AttemptRepository interface {
	Create(ctx context.Context, attempt *models.QuizAttempt) error
	GetByID(ctx context.Context, id uint) (*models.QuizAttempt, error)
	GetByIDWithDetails(ctx context.Context, id uint) (*models.QuizAttempt, error)
	GetByUser(ctx context.Context, userID uint) ([]*models.QuizAttempt, error)
	GetByQuiz(ctx context.Context, quizID uint) ([]*models.QuizAttempt, error)

	// GetLatestByUserAndQuiz returns the most recent attempt, or the store's
	// not-found error when none exists.
	GetLatestByUserAndQuiz(ctx context.Context, userID, quizID uint) (*models.QuizAttempt, error)
}
