package postgres

import (
	"context"

	"github.com/OpenCampus-2025/learning-service/internal/models"
	"github.com/OpenCampus-2025/learning-service/internal/repositories"
	"gorm.io/gorm"
)

var enrollmentSortColumns = map[string]string{
	"enrolled_at": "enrolled_at",
	"progress":    "progress",
}

type EnrollmentPostgreSQL struct {
	db *gorm.DB
}

func NewEnrollmentPostgreSQL(db *gorm.DB) repositories.EnrollmentRepository {
	return &EnrollmentPostgreSQL{db: db}
}

func (e *EnrollmentPostgreSQL) Create(ctx context.Context, enrollment *models.Enrollment) error {
	return e.db.WithContext(ctx).Create(enrollment).Error
}

func (e *EnrollmentPostgreSQL) GetByID(ctx context.Context, id uint) (*models.Enrollment, error) {
	var enrollment models.Enrollment
	if err := e.db.WithContext(ctx).
		Preload("Course").
		Preload("User").
		First(&enrollment, id).Error; err != nil {
		return nil, err
	}
	return &enrollment, nil
}

func (e *EnrollmentPostgreSQL) GetByUserAndCourse(ctx context.Context, userID, courseID uint) (*models.Enrollment, error) {
	var enrollment models.Enrollment
	if err := e.db.WithContext(ctx).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		Preload("Course").
		First(&enrollment).Error; err != nil {
		return nil, err
	}
	return &enrollment, nil
}

func (e *EnrollmentPostgreSQL) GetByUser(ctx context.Context, userID uint, filters repositories.ListFilters) ([]*models.Enrollment, int64, error) {
	var enrollments []*models.Enrollment
	var total int64

	query := e.db.WithContext(ctx).Model(&models.Enrollment{}).Where("user_id = ?", userID)
	if filters.Search != "" {
		pattern := "%" + filters.Search + "%"
		query = query.
			Joins("JOIN courses ON courses.id = enrollments.course_id").
			Where("courses.title ILIKE ? OR courses.description ILIKE ?", pattern, pattern)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	sortBy := sortColumn(enrollmentSortColumns, filters.SortBy, "enrolled_at")
	query = applyPaginationAndSort(query, sortBy, filters.SortOrder, filters.Limit, filters.Offset)

	if err := query.Preload("Course").Find(&enrollments).Error; err != nil {
		return nil, 0, err
	}

	return enrollments, total, nil
}

func (e *EnrollmentPostgreSQL) Delete(ctx context.Context, id uint) error {
	return e.db.WithContext(ctx).Delete(&models.Enrollment{}, id).Error
}

func (e *EnrollmentPostgreSQL) UpdateDerived(ctx context.Context, userID, courseID uint, progress int, completed bool) error {
	return e.db.WithContext(ctx).Model(&models.Enrollment{}).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		Updates(map[string]interface{}{
			"progress":  progress,
			"completed": completed,
		}).Error
}
