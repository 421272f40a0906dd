package postgres

import (
	"context"

	"github.com/OpenCampus-2025/learning-service/internal/models"
	"github.com/OpenCampus-2025/learning-service/internal/repositories"
	"gorm.io/gorm"
)

var courseSortColumns = map[string]string{
	"title":      "title",
	"created_at": "created_at",
	"updated_at": "updated_at",
}

type CoursePostgreSQL struct {
	db *gorm.DB
}

func NewCoursePostgreSQL(db *gorm.DB) repositories.CourseRepository {
	return &CoursePostgreSQL{db: db}
}

func (c *CoursePostgreSQL) Create(ctx context.Context, course *models.Course) error {
	return c.db.WithContext(ctx).Create(course).Error
}

func (c *CoursePostgreSQL) GetByID(ctx context.Context, id uint) (*models.Course, error) {
	var course models.Course
	if err := c.db.WithContext(ctx).First(&course, id).Error; err != nil {
		return nil, err
	}

	var lessonsCount int64
	if err := c.db.WithContext(ctx).Model(&models.Lesson{}).
		Where("course_id = ?", id).
		Count(&lessonsCount).Error; err != nil {
		return nil, err
	}
	course.LessonsCount = int(lessonsCount)

	return &course, nil
}

func (c *CoursePostgreSQL) List(ctx context.Context, filters repositories.ListFilters) ([]*models.Course, int64, error) {
	var courses []*models.Course
	var total int64

	query := c.db.WithContext(ctx).Model(&models.Course{})
	if filters.Search != "" {
		pattern := "%" + filters.Search + "%"
		query = query.Where("title ILIKE ? OR description ILIKE ?", pattern, pattern)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	sortBy := sortColumn(courseSortColumns, filters.SortBy, "created_at")
	query = applyPaginationAndSort(query, sortBy, filters.SortOrder, filters.Limit, filters.Offset)

	if err := query.Find(&courses).Error; err != nil {
		return nil, 0, err
	}

	return courses, total, nil
}

func (c *CoursePostgreSQL) Update(ctx context.Context, course *models.Course) error {
	return c.db.WithContext(ctx).Save(course).Error
}

func (c *CoursePostgreSQL) Delete(ctx context.Context, id uint) error {
	return c.db.WithContext(ctx).Delete(&models.Course{}, id).Error
}
