package services

import (
	"context"
	"fmt"

	"github.com/OpenCampus-2025/learning-service/internal/models"
	"github.com/OpenCampus-2025/learning-service/internal/repositories"
	"github.com/OpenCampus-2025/learning-service/internal/utils"
)

type LessonService interface {
	Create(ctx context.Context, req *CreateLessonRequest) (*models.Lesson, error)
	GetByID(ctx context.Context, id uint) (*models.Lesson, error)
	GetByCourse(ctx context.Context, courseID uint, filters repositories.ListFilters) ([]*models.Lesson, int64, error)
	Update(ctx context.Context, id uint, req *UpdateLessonRequest) (*models.Lesson, error)
	Delete(ctx context.Context, id uint) error
}

type CreateLessonRequest struct {
	CourseID uint   `json:"course_id" validate:"required"`
	Title    string `json:"title" validate:"required,min=1,max=200"`
	Content  string `json:"content"`
	Order    int    `json:"order" validate:"lesson_order"`
}

type UpdateLessonRequest struct {
	Title   *string `json:"title" validate:"omitempty,min=1,max=200"`
	Content *string `json:"content"`
	Order   *int    `json:"order" validate:"omitempty,lesson_order"`
}

type lessonService struct {
	repo      repositories.Repository
	logger    utils.Logger
	validator *utils.Validator
}

func NewLessonService(repo repositories.Repository, logger utils.Logger, validator *utils.Validator) LessonService {
	return &lessonService{
		repo:      repo,
		logger:    logger,
		validator: validator,
	}
}

func (s *lessonService) Create(ctx context.Context, req *CreateLessonRequest) (*models.Lesson, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	if _, err := s.repo.Course().GetByID(ctx, req.CourseID); err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrCourseNotFound
		}
		return nil, fmt.Errorf("failed to get course: %w", err)
	}

	lesson := &models.Lesson{
		CourseID: req.CourseID,
		Title:    req.Title,
		Content:  req.Content,
		Order:    req.Order,
	}

	if err := s.repo.Lesson().Create(ctx, lesson); err != nil {
		return nil, fmt.Errorf("failed to create lesson: %w", err)
	}

	s.logger.Info("Lesson created",
		"lesson_id", lesson.ID,
		"course_id", lesson.CourseID,
		"title", lesson.Title)
	return lesson, nil
}

func (s *lessonService) GetByID(ctx context.Context, id uint) (*models.Lesson, error) {
	lesson, err := s.repo.Lesson().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrLessonNotFound
		}
		return nil, fmt.Errorf("failed to get lesson: %w", err)
	}
	return lesson, nil
}

func (s *lessonService) GetByCourse(ctx context.Context, courseID uint, filters repositories.ListFilters) ([]*models.Lesson, int64, error) {
	lessons, total, err := s.repo.Lesson().GetByCourse(ctx, courseID, filters)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list lessons: %w", err)
	}
	return lessons, total, nil
}

func (s *lessonService) Update(ctx context.Context, id uint, req *UpdateLessonRequest) (*models.Lesson, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	lesson, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		lesson.Title = *req.Title
	}
	if req.Content != nil {
		lesson.Content = *req.Content
	}
	if req.Order != nil {
		lesson.Order = *req.Order
	}

	if err := s.repo.Lesson().Update(ctx, lesson); err != nil {
		return nil, fmt.Errorf("failed to update lesson: %w", err)
	}

	s.logger.Info("Lesson updated", "lesson_id", lesson.ID)
	return lesson, nil
}

func (s *lessonService) Delete(ctx context.Context, id uint) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}

	if err := s.repo.Lesson().Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete lesson: %w", err)
	}

	s.logger.Info("Lesson deleted", "lesson_id", id)
	return nil
}
