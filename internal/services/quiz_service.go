package services

import (
	"context"
	"fmt"
	"time"

	"github.com/OpenCampus-2025/learning-service/internal/cache"
	"github.com/OpenCampus-2025/learning-service/internal/models"
	"github.com/OpenCampus-2025/learning-service/internal/repositories"
	"github.com/OpenCampus-2025/learning-service/internal/utils"
	"github.com/google/uuid"
)

const quizCacheTTL = 5 * time.Minute

// QuizService owns quiz authoring and the answer-key redaction boundary.
// Grading never goes through GetPublicByID; the scoring path always loads
// the full quiz internally.
type QuizService interface {
	Create(ctx context.Context, lessonID uint, req *CreateQuizRequest) (*models.QuizWithQuestions, error)
	GetByID(ctx context.Context, id uint) (*models.QuizWithQuestions, error)
	GetPublicByID(ctx context.Context, id uint) (*models.QuizPublic, error)
	GetByLesson(ctx context.Context, lessonID uint) ([]*models.QuizWithQuestions, error)
	Update(ctx context.Context, id uint, req *UpdateQuizRequest) (*models.QuizWithQuestions, error)
	Delete(ctx context.Context, id uint) error
}

type CreateQuizRequest struct {
	Title     string                `json:"title" validate:"required,min=1,max=200"`
	Questions []QuizQuestionRequest `json:"questions" validate:"required,dive"`
}

type UpdateQuizRequest struct {
	Title     *string               `json:"title" validate:"omitempty,min=1,max=200"`
	Questions []QuizQuestionRequest `json:"questions" validate:"omitempty,dive"`
}

type QuizQuestionRequest struct {
	Question    string   `json:"question" validate:"required,min=1"`
	RightAnswer string   `json:"rightAnswer" validate:"required,min=1"`
	Variants    []string `json:"variants" validate:"required,min=2,dive,min=1"`
}

type quizService struct {
	repo      repositories.Repository
	cache     cache.CacheService
	logger    utils.Logger
	validator *utils.Validator
}

func NewQuizService(repo repositories.Repository, cacheService cache.CacheService, logger utils.Logger, validator *utils.Validator) QuizService {
	return &quizService{
		repo:      repo,
		cache:     cacheService,
		logger:    logger,
		validator: validator,
	}
}

func (s *quizService) Create(ctx context.Context, lessonID uint, req *CreateQuizRequest) (*models.QuizWithQuestions, error) {
	s.logger.Info("Creating quiz", "lesson_id", lessonID, "questions_count", len(req.Questions))

	if err := s.validator.Validate(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	if _, err := s.repo.Lesson().GetByID(ctx, lessonID); err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrLessonNotFound
		}
		return nil, fmt.Errorf("failed to get lesson: %w", err)
	}

	questions := buildQuestions(req.Questions)
	raw, err := models.EncodeQuestions(questions)
	if err != nil {
		return nil, fmt.Errorf("failed to encode questions: %w", err)
	}

	quiz := &models.Quiz{
		LessonID:  lessonID,
		Title:     req.Title,
		Questions: raw,
	}

	if err := s.repo.Quiz().Create(ctx, quiz); err != nil {
		return nil, fmt.Errorf("failed to create quiz: %w", err)
	}

	s.logger.Info("Quiz created", "quiz_id", quiz.ID, "lesson_id", lessonID)

	return quiz.WithQuestions(), nil
}

func (s *quizService) GetByID(ctx context.Context, id uint) (*models.QuizWithQuestions, error) {
	quiz, err := s.repo.Quiz().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrQuizNotFound
		}
		return nil, fmt.Errorf("failed to get quiz: %w", err)
	}

	return quiz.WithQuestions(), nil
}

func (s *quizService) GetPublicByID(ctx context.Context, id uint) (*models.QuizPublic, error) {
	key := quizCacheKey(id)

	var cached models.QuizPublic
	if err := s.cache.Get(ctx, key, &cached); err == nil {
		return &cached, nil
	}

	full, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	public := full.Public()
	if err := s.cache.Set(ctx, key, public, quizCacheTTL); err != nil {
		s.logger.Warn("Failed to cache quiz projection", "quiz_id", id, "error", err)
	}

	return public, nil
}

func (s *quizService) GetByLesson(ctx context.Context, lessonID uint) ([]*models.QuizWithQuestions, error) {
	quizzes, err := s.repo.Quiz().GetByLesson(ctx, lessonID)
	if err != nil {
		return nil, fmt.Errorf("failed to get quizzes by lesson: %w", err)
	}

	result := make([]*models.QuizWithQuestions, len(quizzes))
	for i, quiz := range quizzes {
		result[i] = quiz.WithQuestions()
	}

	return result, nil
}

func (s *quizService) Update(ctx context.Context, id uint, req *UpdateQuizRequest) (*models.QuizWithQuestions, error) {
	s.logger.Info("Updating quiz", "quiz_id", id)

	if err := s.validator.Validate(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	quiz, err := s.repo.Quiz().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrQuizNotFound
		}
		return nil, fmt.Errorf("failed to get quiz: %w", err)
	}

	if req.Title != nil {
		quiz.Title = *req.Title
	}

	if req.Questions != nil {
		// Questions are replaced wholesale, never patched entry by entry.
		raw, err := models.EncodeQuestions(buildQuestions(req.Questions))
		if err != nil {
			return nil, fmt.Errorf("failed to encode questions: %w", err)
		}
		quiz.Questions = raw
	}

	if err := s.repo.Quiz().Update(ctx, quiz); err != nil {
		return nil, fmt.Errorf("failed to update quiz: %w", err)
	}

	s.invalidateCache(ctx, id)

	return quiz.WithQuestions(), nil
}

func (s *quizService) Delete(ctx context.Context, id uint) error {
	s.logger.Info("Deleting quiz", "quiz_id", id)

	if _, err := s.repo.Quiz().GetByID(ctx, id); err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrQuizNotFound
		}
		return fmt.Errorf("failed to get quiz: %w", err)
	}

	if err := s.repo.Quiz().Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete quiz: %w", err)
	}

	s.invalidateCache(ctx, id)

	return nil
}

func (s *quizService) invalidateCache(ctx context.Context, id uint) {
	if err := s.cache.Delete(ctx, quizCacheKey(id)); err != nil {
		s.logger.Warn("Failed to invalidate quiz cache", "quiz_id", id, "error", err)
	}
}

func quizCacheKey(id uint) string {
	return fmt.Sprintf("quiz:public:%d", id)
}

func buildQuestions(reqs []QuizQuestionRequest) []models.QuizQuestion {
	questions := make([]models.QuizQuestion, len(reqs))
	for i, q := range reqs {
		questions[i] = models.QuizQuestion{
			ID:          uuid.NewString(),
			Question:    q.Question,
			RightAnswer: q.RightAnswer,
			Variants:    q.Variants,
		}
	}
	return questions
}
