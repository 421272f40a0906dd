package repositories

import (
	"context"

	"github.com/OpenCampus-2025/learning-service/internal/models"
)

// EnrollmentRepository handles enrollment persistence.
type EnrollmentRepository interface {
	Create(ctx context.Context, enrollment *models.Enrollment) error
	GetByID(ctx context.Context, id uint) (*models.Enrollment, error)
	GetByUserAndCourse(ctx context.Context, userID, courseID uint) (*models.Enrollment, error)
	GetByUser(ctx context.Context, userID uint, filters ListFilters) ([]*models.Enrollment, int64, error)
	Delete(ctx context.Context, id uint) error

	// UpdateDerived writes the recomputed rollup onto every enrollment row
	// matching (userID, courseID). The unique index normally makes that a
	// single row, but the write is by filter, not primary key.
	UpdateDerived(ctx context.Context, userID, courseID uint, progress int, completed bool) error
}
