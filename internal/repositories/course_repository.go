package repositories

import (
	"context"

	"github.com/OpenCampus-2025/learning-service/internal/models"
)

// CourseRepository handles course persistence.
type CourseRepository interface {
	Create(ctx context.Context, course *models.Course) error
	GetByID(ctx context.Context, id uint) (*models.Course, error)
	List(ctx context.Context, filters ListFilters) ([]*models.Course, int64, error)
	Update(ctx context.Context, course *models.Course) error
	Delete(ctx context.Context, id uint) error
}
