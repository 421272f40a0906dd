package services

import (
	"context"
	"fmt"

	"github.com/OpenCampus-2025/learning-service/internal/events"
	"github.com/OpenCampus-2025/learning-service/internal/models"
	"github.com/OpenCampus-2025/learning-service/internal/repositories"
	"github.com/OpenCampus-2025/learning-service/internal/utils"
)

// AttemptService is the graded-attempt ledger. An attempt is written exactly
// once per submission; grading either persists a complete scored row or
// nothing. Creating an attempt does not touch lesson progress or enrollment
// rollups; that boundary belongs to ProgressService.
type AttemptService interface {
	Create(ctx context.Context, userID, quizID uint, req *CreateAttemptRequest) (*AttemptResult, error)
	GetByID(ctx context.Context, id uint) (*models.QuizAttempt, error)
	GetByUser(ctx context.Context, userID uint) ([]*models.QuizAttempt, error)
	GetByQuiz(ctx context.Context, quizID uint) ([]*models.QuizAttempt, error)
	GetByUserAndQuiz(ctx context.Context, userID, quizID uint) (*models.QuizAttempt, error)

	// GetAttemptResult re-derives the full graded result from the stored
	// attempt and the current quiz definition. The breakdown is recomputed at
	// read time, so it can drift from what was graded if the quiz changed
	// after the attempt.
	GetAttemptResult(ctx context.Context, userID, quizID uint) (*AttemptResult, error)
}

type CreateAttemptRequest struct {
	Answers []AttemptAnswerRequest `json:"answers" validate:"required,dive"`
}

type AttemptAnswerRequest struct {
	QuestionID string `json:"question_id"`
	Question   string `json:"question" validate:"required,min=1"`
	Answer     string `json:"answer"`
}

// AttemptResult is the graded view of an attempt returned to callers.
type AttemptResult struct {
	Attempt          *models.QuizAttempt      `json:"attempt"`
	TotalQuestions   int                      `json:"total_questions"`
	CorrectAnswers   int                      `json:"correct_answers"`
	IncorrectAnswers int                      `json:"incorrect_answers"`
	Breakdown        []models.AnswerBreakdown `json:"breakdown"`
}

type attemptService struct {
	repo      repositories.Repository
	scoring   ScoringService
	publisher events.EventPublisher
	logger    utils.Logger
	validator *utils.Validator
}

func NewAttemptService(
	repo repositories.Repository,
	scoring ScoringService,
	publisher events.EventPublisher,
	logger utils.Logger,
	validator *utils.Validator,
) AttemptService {
	return &attemptService{
		repo:      repo,
		scoring:   scoring,
		publisher: publisher,
		logger:    logger,
		validator: validator,
	}
}

func (s *attemptService) Create(ctx context.Context, userID, quizID uint, req *CreateAttemptRequest) (*AttemptResult, error) {
	s.logger.Info("Grading quiz attempt",
		"user_id", userID,
		"quiz_id", quizID,
		"answers_count", len(req.Answers))

	if err := s.validator.Validate(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	// The full quiz is always loaded here; client-supplied question data
	// never reaches the scoring engine.
	quiz, err := s.loadFullQuiz(ctx, quizID)
	if err != nil {
		return nil, err
	}

	answers := buildAnswers(req.Answers)

	result, err := s.scoring.Score(quiz.Questions, answers)
	if err != nil {
		return nil, err
	}

	raw, err := models.EncodeAnswers(answers)
	if err != nil {
		return nil, fmt.Errorf("failed to encode answers: %w", err)
	}

	attempt := &models.QuizAttempt{
		UserID:  userID,
		QuizID:  quizID,
		Score:   result.Score,
		Answers: raw,
	}

	if err := s.repo.Attempt().Create(ctx, attempt); err != nil {
		return nil, fmt.Errorf("failed to create attempt: %w", err)
	}

	s.logger.Info("Quiz attempt graded",
		"attempt_id", attempt.ID,
		"user_id", userID,
		"quiz_id", quizID,
		"score", result.Score)

	s.publishGraded(ctx, attempt, quiz, result)

	return &AttemptResult{
		Attempt:          attempt,
		TotalQuestions:   result.TotalQuestions,
		CorrectAnswers:   result.CorrectAnswers,
		IncorrectAnswers: result.IncorrectAnswers,
		Breakdown:        result.Breakdown,
	}, nil
}

func (s *attemptService) GetByID(ctx context.Context, id uint) (*models.QuizAttempt, error) {
	attempt, err := s.repo.Attempt().GetByIDWithDetails(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrAttemptNotFound
		}
		return nil, fmt.Errorf("failed to get attempt: %w", err)
	}
	return attempt, nil
}

func (s *attemptService) GetByUser(ctx context.Context, userID uint) ([]*models.QuizAttempt, error) {
	attempts, err := s.repo.Attempt().GetByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get attempts by user: %w", err)
	}
	return attempts, nil
}

func (s *attemptService) GetByQuiz(ctx context.Context, quizID uint) ([]*models.QuizAttempt, error) {
	attempts, err := s.repo.Attempt().GetByQuiz(ctx, quizID)
	if err != nil {
		return nil, fmt.Errorf("failed to get attempts by quiz: %w", err)
	}
	return attempts, nil
}

func (s *attemptService) GetByUserAndQuiz(ctx context.Context, userID, quizID uint) (*models.QuizAttempt, error) {
	attempt, err := s.repo.Attempt().GetLatestByUserAndQuiz(ctx, userID, quizID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrAttemptNotFound
		}
		return nil, fmt.Errorf("failed to get attempt: %w", err)
	}
	return attempt, nil
}

func (s *attemptService) GetAttemptResult(ctx context.Context, userID, quizID uint) (*AttemptResult, error) {
	attempt, err := s.GetByUserAndQuiz(ctx, userID, quizID)
	if err != nil {
		return nil, err
	}

	quiz, err := s.loadFullQuiz(ctx, quizID)
	if err != nil {
		return nil, err
	}

	result, err := s.scoring.Score(quiz.Questions, attempt.DecodedAnswers())
	if err != nil {
		return nil, err
	}

	return &AttemptResult{
		Attempt:          attempt,
		TotalQuestions:   result.TotalQuestions,
		CorrectAnswers:   result.CorrectAnswers,
		IncorrectAnswers: result.IncorrectAnswers,
		Breakdown:        result.Breakdown,
	}, nil
}

func (s *attemptService) loadFullQuiz(ctx context.Context, quizID uint) (*models.QuizWithQuestions, error) {
	quiz, err := s.repo.Quiz().GetByID(ctx, quizID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrQuizNotFound
		}
		return nil, fmt.Errorf("failed to get quiz: %w", err)
	}
	return quiz.WithQuestions(), nil
}

func (s *attemptService) publishGraded(ctx context.Context, attempt *models.QuizAttempt, quiz *models.QuizWithQuestions, result *ScoreResult) {
	event := events.NewAttemptGradedEvent(events.AttemptGradedEvent{
		AttemptID:      attempt.ID,
		UserID:         attempt.UserID,
		QuizID:         attempt.QuizID,
		QuizTitle:      quiz.Title,
		LessonID:       quiz.LessonID,
		Score:          result.Score,
		TotalQuestions: result.TotalQuestions,
		CorrectAnswers: result.CorrectAnswers,
	})

	if err := s.publisher.PublishEvent(ctx, event); err != nil {
		s.logger.Warn("Failed to publish attempt graded event",
			"attempt_id", attempt.ID,
			"error", err)
	}
}

func buildAnswers(reqs []AttemptAnswerRequest) []models.AttemptAnswer {
	answers := make([]models.AttemptAnswer, len(reqs))
	for i, a := range reqs {
		answers[i] = models.AttemptAnswer{
			QuestionID: a.QuestionID,
			Question:   a.Question,
			Answer:     a.Answer,
		}
	}
	return answers
}
