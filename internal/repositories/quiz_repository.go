package repositories

import (
	"context"

	"github.com/OpenCampus-2025/learning-service/internal/models"
)

// QuizRepository handles quiz persistence. Questions travel as an opaque
// JSON column; decoding lives in the models package.
type QuizRepository interface {
	Create(ctx context.Context, quiz *models.Quiz) error
	GetByID(ctx context.Context, id uint) (*models.Quiz, error)
	GetByLesson(ctx context.Context, lessonID uint) ([]*models.Quiz, error)
	Update(ctx context.Context, quiz *models.Quiz) error

	// Delete removes the quiz and, through the FK constraint, its attempts.
	Delete(ctx context.Context, id uint) error
}
