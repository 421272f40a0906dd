package services

import (
	"github.com/OpenCampus-2025/learning-service/internal/models"
)

// ScoreResult is the outcome of grading one submission against one quiz.
type ScoreResult struct {
	Score            float64                  `json:"score"`
	TotalQuestions   int                      `json:"total_questions"`
	CorrectAnswers   int                      `json:"correct_answers"`
	IncorrectAnswers int                      `json:"incorrect_answers"`
	Breakdown        []models.AnswerBreakdown `json:"breakdown"`
}

// ScoringService grades submissions. It is pure: no repository access, the
// caller supplies the full quiz definition.
type ScoringService interface {
	Score(questions []models.QuizQuestion, answers []models.AttemptAnswer) (*ScoreResult, error)
}

type scoringService struct{}

func NewScoringService() ScoringService {
	return &scoringService{}
}

// Score grades answers against questions. Submitted answers are correlated
// to questions by stable question ID when both sides carry one, otherwise by
// literal question text. A question with no matching submission counts as
// answered with "", which is never correct.
//
// The caller must pass the full quiz: a redacted question set (no right
// answers) is rejected instead of silently grading everything wrong.
func (s *scoringService) Score(questions []models.QuizQuestion, answers []models.AttemptAnswer) (*ScoreResult, error) {
	for _, q := range questions {
		if q.RightAnswer == "" {
			return nil, ErrQuizAnswersRequired
		}
	}

	breakdown := make([]models.AnswerBreakdown, 0, len(questions))
	correct := 0

	for _, question := range questions {
		userAnswer := findAnswer(question, answers)
		isCorrect := userAnswer != "" && userAnswer == question.RightAnswer
		if isCorrect {
			correct++
		}

		breakdown = append(breakdown, models.AnswerBreakdown{
			Question:      question.Question,
			UserAnswer:    userAnswer,
			CorrectAnswer: question.RightAnswer,
			IsCorrect:     isCorrect,
		})
	}

	score := float64(0)
	if len(questions) > 0 {
		score = float64(correct) / float64(len(questions)) * 100
	}

	return &ScoreResult{
		Score:            score,
		TotalQuestions:   len(questions),
		CorrectAnswers:   correct,
		IncorrectAnswers: len(questions) - correct,
		Breakdown:        breakdown,
	}, nil
}

func findAnswer(question models.QuizQuestion, answers []models.AttemptAnswer) string {
	if question.ID != "" {
		for _, a := range answers {
			if a.QuestionID != "" && a.QuestionID == question.ID {
				return a.Answer
			}
		}
	}

	// Text equality is the legacy correlation key, kept for submissions that
	// do not echo question IDs.
	for _, a := range answers {
		if a.Question == question.Question {
			return a.Answer
		}
	}

	return ""
}
