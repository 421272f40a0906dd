package services

import (
	"context"
	"fmt"

	"github.com/OpenCampus-2025/learning-service/internal/events"
	"github.com/OpenCampus-2025/learning-service/internal/models"
	"github.com/OpenCampus-2025/learning-service/internal/repositories"
	"github.com/OpenCampus-2025/learning-service/internal/utils"
)

// EnrollmentService manages course enrollments. The Progress and Completed
// fields on an enrollment are owned by the recompute in ProgressService;
// this service only creates, reads and removes rows.
type EnrollmentService interface {
	Enroll(ctx context.Context, userID uint, req *EnrollRequest) (*models.Enrollment, error)
	GetByID(ctx context.Context, id uint) (*models.Enrollment, error)
	GetByUser(ctx context.Context, userID uint, filters repositories.ListFilters) ([]*models.Enrollment, int64, error)
	GetByUserAndCourse(ctx context.Context, userID, courseID uint) (*models.Enrollment, error)
	Unenroll(ctx context.Context, id uint) error
}

type EnrollRequest struct {
	CourseID uint `json:"course_id" validate:"required"`
}

type enrollmentService struct {
	repo      repositories.Repository
	publisher events.EventPublisher
	logger    utils.Logger
	validator *utils.Validator
}

func NewEnrollmentService(
	repo repositories.Repository,
	publisher events.EventPublisher,
	logger utils.Logger,
	validator *utils.Validator,
) EnrollmentService {
	return &enrollmentService{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
		validator: validator,
	}
}

func (s *enrollmentService) Enroll(ctx context.Context, userID uint, req *EnrollRequest) (*models.Enrollment, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	if _, err := s.repo.Course().GetByID(ctx, req.CourseID); err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrCourseNotFound
		}
		return nil, fmt.Errorf("failed to get course: %w", err)
	}

	if _, err := s.repo.Enrollment().GetByUserAndCourse(ctx, userID, req.CourseID); err == nil {
		return nil, ErrAlreadyEnrolled
	} else if !repositories.IsNotFoundError(err) {
		return nil, fmt.Errorf("failed to check enrollment: %w", err)
	}

	enrollment := &models.Enrollment{
		UserID:   userID,
		CourseID: req.CourseID,
	}

	if err := s.repo.Enrollment().Create(ctx, enrollment); err != nil {
		return nil, fmt.Errorf("failed to create enrollment: %w", err)
	}

	s.logger.Info("User enrolled",
		"enrollment_id", enrollment.ID,
		"user_id", userID,
		"course_id", req.CourseID)

	event := events.NewUserEnrolledEvent(events.UserEnrolledEvent{
		EnrollmentID: enrollment.ID,
		UserID:       userID,
		CourseID:     req.CourseID,
		EnrolledAt:   enrollment.EnrolledAt,
	})
	if err := s.publisher.PublishEvent(ctx, event); err != nil {
		s.logger.Warn("Failed to publish enrollment event",
			"enrollment_id", enrollment.ID,
			"error", err)
	}

	return enrollment, nil
}

func (s *enrollmentService) GetByID(ctx context.Context, id uint) (*models.Enrollment, error) {
	enrollment, err := s.repo.Enrollment().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrEnrollmentNotFound
		}
		return nil, fmt.Errorf("failed to get enrollment: %w", err)
	}
	return enrollment, nil
}

func (s *enrollmentService) GetByUser(ctx context.Context, userID uint, filters repositories.ListFilters) ([]*models.Enrollment, int64, error) {
	enrollments, total, err := s.repo.Enrollment().GetByUser(ctx, userID, filters)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list enrollments: %w", err)
	}
	return enrollments, total, nil
}

func (s *enrollmentService) GetByUserAndCourse(ctx context.Context, userID, courseID uint) (*models.Enrollment, error) {
	enrollment, err := s.repo.Enrollment().GetByUserAndCourse(ctx, userID, courseID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrEnrollmentNotFound
		}
		return nil, fmt.Errorf("failed to get enrollment: %w", err)
	}
	return enrollment, nil
}

func (s *enrollmentService) Unenroll(ctx context.Context, id uint) error {
	if _, err := s.repo.Enrollment().GetByID(ctx, id); err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrEnrollmentNotFound
		}
		return fmt.Errorf("failed to get enrollment: %w", err)
	}

	if err := s.repo.Enrollment().Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete enrollment: %w", err)
	}

	s.logger.Info("User unenrolled", "enrollment_id", id)
	return nil
}
