package postgres

import (
	"context"

	"github.com/OpenCampus-2025/learning-service/internal/models"
	"github.com/OpenCampus-2025/learning-service/internal/repositories"
	"gorm.io/gorm"
)

var lessonSortColumns = map[string]string{
	"order":      "lesson_order",
	"title":      "title",
	"created_at": "created_at",
	"updated_at": "updated_at",
}

type LessonPostgreSQL struct {
	db *gorm.DB
}

func NewLessonPostgreSQL(db *gorm.DB) repositories.LessonRepository {
	return &LessonPostgreSQL{db: db}
}

func (l *LessonPostgreSQL) Create(ctx context.Context, lesson *models.Lesson) error {
	return l.db.WithContext(ctx).Create(lesson).Error
}

func (l *LessonPostgreSQL) GetByID(ctx context.Context, id uint) (*models.Lesson, error) {
	var lesson models.Lesson
	if err := l.db.WithContext(ctx).
		Preload("Course").
		First(&lesson, id).Error; err != nil {
		return nil, err
	}

	var quizzesCount int64
	if err := l.db.WithContext(ctx).Model(&models.Quiz{}).
		Where("lesson_id = ?", id).
		Count(&quizzesCount).Error; err != nil {
		return nil, err
	}
	lesson.QuizzesCount = int(quizzesCount)

	return &lesson, nil
}

func (l *LessonPostgreSQL) GetByCourse(ctx context.Context, courseID uint, filters repositories.ListFilters) ([]*models.Lesson, int64, error) {
	var lessons []*models.Lesson
	var total int64

	query := l.db.WithContext(ctx).Model(&models.Lesson{}).Where("course_id = ?", courseID)
	if filters.Search != "" {
		pattern := "%" + filters.Search + "%"
		query = query.Where("title ILIKE ? OR content ILIKE ?", pattern, pattern)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	sortBy := sortColumn(lessonSortColumns, filters.SortBy, "lesson_order")
	query = applyPaginationAndSort(query, sortBy, filters.SortOrder, filters.Limit, filters.Offset)

	if err := query.Find(&lessons).Error; err != nil {
		return nil, 0, err
	}

	return lessons, total, nil
}

func (l *LessonPostgreSQL) Update(ctx context.Context, lesson *models.Lesson) error {
	return l.db.WithContext(ctx).Save(lesson).Error
}

func (l *LessonPostgreSQL) Delete(ctx context.Context, id uint) error {
	return l.db.WithContext(ctx).Delete(&models.Lesson{}, id).Error
}

func (l *LessonPostgreSQL) CountByCourse(ctx context.Context, courseID uint) (int64, error) {
	var count int64
	err := l.db.WithContext(ctx).Model(&models.Lesson{}).
		Where("course_id = ?", courseID).
		Count(&count).Error
	return count, err
}
