package services

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/OpenCampus-2025/learning-service/internal/events"
	"github.com/OpenCampus-2025/learning-service/internal/models"
	"github.com/OpenCampus-2025/learning-service/internal/repositories"
	"github.com/OpenCampus-2025/learning-service/internal/utils"
)

// RecomputePolicy controls when a progress write triggers the enrollment
// rollup recompute.
type RecomputePolicy string

const (
	// RecomputeOnComplete recomputes only when the write marks the lesson
	// completed. Un-completing a lesson leaves the rollup stale until the
	// next completing write.
	RecomputeOnComplete RecomputePolicy = "on-complete"

	// RecomputeAlways recomputes on every progress write.
	RecomputeAlways RecomputePolicy = "always"
)

// ParseRecomputePolicy maps a config string to a policy, defaulting to
// RecomputeOnComplete for unknown values.
func ParseRecomputePolicy(s string) RecomputePolicy {
	if RecomputePolicy(s) == RecomputeAlways {
		return RecomputeAlways
	}
	return RecomputeOnComplete
}

// ProgressService maintains per-lesson progress records and keeps the
// per-course enrollment rollup derived from them.
type ProgressService interface {
	// Upsert creates or merges the (user, lesson) progress record. Omitted
	// fields keep their stored values; progress is clamped to 100. The
	// enrollment rollup recompute runs after the write per the configured
	// policy, and its failure never fails the upsert.
	Upsert(ctx context.Context, userID uint, req *UpsertProgressRequest) (*models.UserProgress, error)

	GetByID(ctx context.Context, id uint) (*models.UserProgress, error)
	GetByUserAndLesson(ctx context.Context, userID, lessonID uint) (*models.UserProgress, error)
	List(ctx context.Context, filters repositories.ProgressFilters) ([]*models.UserProgress, int64, error)
	GetByCourse(ctx context.Context, userID, courseID uint) ([]*models.UserProgress, error)

	// RecomputeEnrollment re-derives the enrollment progress and completion
	// for (user, course) from lesson counts. No-op when the user is not
	// enrolled.
	RecomputeEnrollment(ctx context.Context, userID, courseID uint) error
}

type UpsertProgressRequest struct {
	LessonID  uint  `json:"lesson_id" validate:"required"`
	Completed *bool `json:"completed"`
	Progress  *int  `json:"progress" validate:"omitempty,min=0"`
}

const maxProgress = 100

type progressService struct {
	repo      repositories.Repository
	publisher events.EventPublisher
	logger    utils.Logger
	validator *utils.Validator
	policy    RecomputePolicy
}

func NewProgressService(
	repo repositories.Repository,
	publisher events.EventPublisher,
	logger utils.Logger,
	validator *utils.Validator,
	policy RecomputePolicy,
) ProgressService {
	return &progressService{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
		validator: validator,
		policy:    policy,
	}
}

func (s *progressService) Upsert(ctx context.Context, userID uint, req *UpsertProgressRequest) (*models.UserProgress, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	lesson, err := s.repo.Lesson().GetByID(ctx, req.LessonID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrLessonNotFound
		}
		return nil, fmt.Errorf("failed to get lesson: %w", err)
	}

	existing, err := s.repo.Progress().GetByUserAndLesson(ctx, userID, req.LessonID)
	if err != nil && !repositories.IsNotFoundError(err) {
		return nil, fmt.Errorf("failed to get progress: %w", err)
	}

	merged := mergeProgress(existing, userID, req)

	if err := s.repo.Progress().Upsert(ctx, merged); err != nil {
		return nil, fmt.Errorf("failed to upsert progress: %w", err)
	}

	s.logger.Info("Progress updated",
		"user_id", userID,
		"lesson_id", req.LessonID,
		"completed", merged.Completed,
		"progress", merged.Progress)

	newlyCompleted := merged.Completed && (existing == nil || !existing.Completed)
	if newlyCompleted {
		s.publishLessonCompleted(ctx, merged, lesson.CourseID)
	}

	if merged.Completed || s.policy == RecomputeAlways {
		// Recompute failures leave the rollup stale but never fail the
		// progress write itself.
		if err := s.RecomputeEnrollment(ctx, userID, lesson.CourseID); err != nil {
			s.logger.Error("Failed to recompute enrollment progress",
				"user_id", userID,
				"course_id", lesson.CourseID,
				"error", err)
		}
	}

	return merged, nil
}

func (s *progressService) GetByID(ctx context.Context, id uint) (*models.UserProgress, error) {
	progress, err := s.repo.Progress().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrProgressNotFound
		}
		return nil, fmt.Errorf("failed to get progress: %w", err)
	}
	return progress, nil
}

func (s *progressService) GetByUserAndLesson(ctx context.Context, userID, lessonID uint) (*models.UserProgress, error) {
	progress, err := s.repo.Progress().GetByUserAndLesson(ctx, userID, lessonID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrProgressNotFound
		}
		return nil, fmt.Errorf("failed to get progress: %w", err)
	}
	return progress, nil
}

func (s *progressService) List(ctx context.Context, filters repositories.ProgressFilters) ([]*models.UserProgress, int64, error) {
	records, total, err := s.repo.Progress().List(ctx, filters)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list progress: %w", err)
	}
	return records, total, nil
}

func (s *progressService) GetByCourse(ctx context.Context, userID, courseID uint) ([]*models.UserProgress, error) {
	records, err := s.repo.Progress().GetByCourse(ctx, userID, courseID)
	if err != nil {
		return nil, fmt.Errorf("failed to get course progress: %w", err)
	}
	return records, nil
}

func (s *progressService) RecomputeEnrollment(ctx context.Context, userID, courseID uint) error {
	enrollment, err := s.repo.Enrollment().GetByUserAndCourse(ctx, userID, courseID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			// Progress can exist without an enrollment; nothing to roll up.
			return nil
		}
		return fmt.Errorf("failed to get enrollment: %w", err)
	}

	totalLessons, err := s.repo.Lesson().CountByCourse(ctx, courseID)
	if err != nil {
		return fmt.Errorf("failed to count lessons: %w", err)
	}

	completedLessons, err := s.repo.Progress().CountCompletedByCourse(ctx, userID, courseID)
	if err != nil {
		return fmt.Errorf("failed to count completed lessons: %w", err)
	}

	progress := 0
	if totalLessons > 0 {
		progress = int(math.Round(100 * float64(completedLessons) / float64(totalLessons)))
	}
	completed := totalLessons > 0 && completedLessons == totalLessons

	if err := s.repo.Enrollment().UpdateDerived(ctx, userID, courseID, progress, completed); err != nil {
		return fmt.Errorf("failed to update enrollment: %w", err)
	}

	s.logger.Info("Enrollment progress recomputed",
		"user_id", userID,
		"course_id", courseID,
		"progress", progress,
		"completed", completed)

	if completed && !enrollment.Completed {
		s.publishCourseCompleted(ctx, userID, courseID, int(totalLessons), int(completedLessons))
	}

	return nil
}

func (s *progressService) publishLessonCompleted(ctx context.Context, progress *models.UserProgress, courseID uint) {
	event := events.NewLessonCompletedEvent(events.LessonCompletedEvent{
		UserID:      progress.UserID,
		LessonID:    progress.LessonID,
		CourseID:    courseID,
		Progress:    progress.Progress,
		CompletedAt: time.Now(),
	})
	if err := s.publisher.PublishEvent(ctx, event); err != nil {
		s.logger.Warn("Failed to publish lesson completed event",
			"user_id", progress.UserID,
			"lesson_id", progress.LessonID,
			"error", err)
	}
}

func (s *progressService) publishCourseCompleted(ctx context.Context, userID, courseID uint, total, completed int) {
	event := events.NewCourseCompletedEvent(events.CourseCompletedEvent{
		UserID:           userID,
		CourseID:         courseID,
		TotalLessons:     total,
		CompletedLessons: completed,
		CompletedAt:      time.Now(),
	})
	if err := s.publisher.PublishEvent(ctx, event); err != nil {
		s.logger.Warn("Failed to publish course completed event",
			"user_id", userID,
			"course_id", courseID,
			"error", err)
	}
}

// mergeProgress folds the request into the stored record. Fields absent from
// the request keep their stored values; a fresh record starts at zero.
func mergeProgress(existing *models.UserProgress, userID uint, req *UpsertProgressRequest) *models.UserProgress {
	merged := &models.UserProgress{
		UserID:   userID,
		LessonID: req.LessonID,
	}
	if existing != nil {
		merged.ID = existing.ID
		merged.Completed = existing.Completed
		merged.Progress = existing.Progress
		merged.CreatedAt = existing.CreatedAt
	}
	if req.Completed != nil {
		merged.Completed = *req.Completed
	}
	if req.Progress != nil {
		merged.Progress = min(*req.Progress, maxProgress)
	}
	return merged
}
