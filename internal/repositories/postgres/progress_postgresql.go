package postgres

import (
	"context"

	"github.com/OpenCampus-2025/learning-service/internal/models"
	"github.com/OpenCampus-2025/learning-service/internal/repositories"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var progressSortColumns = map[string]string{
	"updated_at": "updated_at",
	"created_at": "created_at",
	"progress":   "progress",
}

type ProgressPostgreSQL struct {
	db *gorm.DB
}

func NewProgressPostgreSQL(db *gorm.DB) repositories.ProgressRepository {
	return &ProgressPostgreSQL{db: db}
}

func (p *ProgressPostgreSQL) Upsert(ctx context.Context, progress *models.UserProgress) error {
	err := p.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "lesson_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"completed", "progress", "updated_at",
		}),
	}).Create(progress).Error
	if err != nil {
		return err
	}

	// Refresh with the stored row so the caller sees the real ID and
	// timestamps after the conflict path.
	return p.db.WithContext(ctx).
		Where("user_id = ? AND lesson_id = ?", progress.UserID, progress.LessonID).
		Preload("Lesson").
		First(progress).Error
}

func (p *ProgressPostgreSQL) GetByID(ctx context.Context, id uint) (*models.UserProgress, error) {
	var progress models.UserProgress
	if err := p.db.WithContext(ctx).
		Preload("Lesson").
		First(&progress, id).Error; err != nil {
		return nil, err
	}
	return &progress, nil
}

func (p *ProgressPostgreSQL) GetByUserAndLesson(ctx context.Context, userID, lessonID uint) (*models.UserProgress, error) {
	var progress models.UserProgress
	if err := p.db.WithContext(ctx).
		Where("user_id = ? AND lesson_id = ?", userID, lessonID).
		Preload("Lesson").
		First(&progress).Error; err != nil {
		return nil, err
	}
	return &progress, nil
}

func (p *ProgressPostgreSQL) List(ctx context.Context, filters repositories.ProgressFilters) ([]*models.UserProgress, int64, error) {
	var rows []*models.UserProgress
	var total int64

	query := p.db.WithContext(ctx).Model(&models.UserProgress{})
	if filters.UserID != nil {
		query = query.Where("user_id = ?", *filters.UserID)
	}
	if filters.LessonID != nil {
		query = query.Where("lesson_id = ?", *filters.LessonID)
	}
	if filters.Completed != nil {
		query = query.Where("completed = ?", *filters.Completed)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	sortBy := sortColumn(progressSortColumns, filters.SortBy, "updated_at")
	query = applyPaginationAndSort(query, sortBy, filters.SortOrder, filters.Limit, filters.Offset)

	if err := query.Preload("Lesson").Preload("User").Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	return rows, total, nil
}

func (p *ProgressPostgreSQL) GetByCourse(ctx context.Context, userID, courseID uint) ([]*models.UserProgress, error) {
	var rows []*models.UserProgress
	if err := p.db.WithContext(ctx).
		Joins("JOIN lessons ON lessons.id = user_progress.lesson_id").
		Where("user_progress.user_id = ? AND lessons.course_id = ?", userID, courseID).
		Order("lessons.lesson_order ASC").
		Preload("Lesson").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (p *ProgressPostgreSQL) CountCompletedByCourse(ctx context.Context, userID, courseID uint) (int64, error) {
	var count int64
	err := p.db.WithContext(ctx).Model(&models.UserProgress{}).
		Joins("JOIN lessons ON lessons.id = user_progress.lesson_id").
		Where("user_progress.user_id = ? AND user_progress.completed = ? AND lessons.course_id = ?",
			userID, true, courseID).
		Count(&count).Error
	return count, err
}
