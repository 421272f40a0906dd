package services

import (
	"testing"

	"github.com/OpenCampus-2025/learning-service/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleQuestions() []models.QuizQuestion {
	return []models.QuizQuestion{
		{ID: "q1", Question: "What is 2+2?", RightAnswer: "4", Variants: []string{"3", "4", "5"}},
		{ID: "q2", Question: "Capital of France?", RightAnswer: "Paris", Variants: []string{"Paris", "Lyon"}},
		{ID: "q3", Question: "Largest planet?", RightAnswer: "Jupiter", Variants: []string{"Mars", "Jupiter"}},
	}
}

func TestScoringService_Score(t *testing.T) {
	scoring := NewScoringService()

	tests := []struct {
		name          string
		questions     []models.QuizQuestion
		answers       []models.AttemptAnswer
		expectedScore float64
		correct       int
		incorrect     int
	}{
		{
			name:      "all answers correct",
			questions: sampleQuestions(),
			answers: []models.AttemptAnswer{
				{Question: "What is 2+2?", Answer: "4"},
				{Question: "Capital of France?", Answer: "Paris"},
				{Question: "Largest planet?", Answer: "Jupiter"},
			},
			expectedScore: 100,
			correct:       3,
			incorrect:     0,
		},
		{
			name:      "partially correct",
			questions: sampleQuestions(),
			answers: []models.AttemptAnswer{
				{Question: "What is 2+2?", Answer: "4"},
				{Question: "Capital of France?", Answer: "Lyon"},
				{Question: "Largest planet?", Answer: "Jupiter"},
			},
			expectedScore: 100 * 2 / 3.0,
			correct:       2,
			incorrect:     1,
		},
		{
			name:          "empty submission scores zero",
			questions:     sampleQuestions(),
			answers:       nil,
			expectedScore: 0,
			correct:       0,
			incorrect:     3,
		},
		{
			name:          "quiz with no questions scores zero",
			questions:     nil,
			answers:       []models.AttemptAnswer{{Question: "anything", Answer: "x"}},
			expectedScore: 0,
			correct:       0,
			incorrect:     0,
		},
		{
			name:      "unmatched answers are ignored",
			questions: sampleQuestions(),
			answers: []models.AttemptAnswer{
				{Question: "What is 2+2?", Answer: "4"},
				{Question: "Question that does not exist?", Answer: "42"},
			},
			expectedScore: 100 * 1 / 3.0,
			correct:       1,
			incorrect:     2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := scoring.Score(tt.questions, tt.answers)
			require.NoError(t, err)

			assert.InDelta(t, tt.expectedScore, result.Score, 0.0001)
			assert.Equal(t, tt.correct, result.CorrectAnswers)
			assert.Equal(t, tt.incorrect, result.IncorrectAnswers)
			assert.Equal(t, len(tt.questions), result.TotalQuestions)
			assert.Len(t, result.Breakdown, len(tt.questions))
		})
	}
}

func TestScoringService_Score_CorrelatesByQuestionID(t *testing.T) {
	scoring := NewScoringService()

	questions := []models.QuizQuestion{
		{ID: "q1", Question: "Original wording?", RightAnswer: "yes", Variants: []string{"yes", "no"}},
	}

	// The question text was edited after submission; the stable ID still
	// correlates the answer.
	answers := []models.AttemptAnswer{
		{QuestionID: "q1", Question: "Old wording?", Answer: "yes"},
	}

	result, err := scoring.Score(questions, answers)
	require.NoError(t, err)

	assert.Equal(t, float64(100), result.Score)
	assert.True(t, result.Breakdown[0].IsCorrect)
}

func TestScoringService_Score_FallsBackToTextMatch(t *testing.T) {
	scoring := NewScoringService()

	questions := []models.QuizQuestion{
		{ID: "q1", Question: "What is 2+2?", RightAnswer: "4", Variants: []string{"3", "4"}},
	}

	// Legacy submission without question IDs.
	answers := []models.AttemptAnswer{
		{Question: "What is 2+2?", Answer: "4"},
	}

	result, err := scoring.Score(questions, answers)
	require.NoError(t, err)
	assert.Equal(t, float64(100), result.Score)
}

func TestScoringService_Score_RejectsRedactedQuestions(t *testing.T) {
	scoring := NewScoringService()

	questions := []models.QuizQuestion{
		{ID: "q1", Question: "What is 2+2?", RightAnswer: "", Variants: []string{"3", "4"}},
	}
	answers := []models.AttemptAnswer{
		{Question: "What is 2+2?", Answer: "4"},
	}

	result, err := scoring.Score(questions, answers)
	assert.Nil(t, result)
	assert.ErrorIs(t, err, ErrQuizAnswersRequired)
}

func TestScoringService_Score_Breakdown(t *testing.T) {
	scoring := NewScoringService()

	result, err := scoring.Score(sampleQuestions(), []models.AttemptAnswer{
		{Question: "What is 2+2?", Answer: "5"},
		{Question: "Capital of France?", Answer: "Paris"},
	})
	require.NoError(t, err)

	require.Len(t, result.Breakdown, 3)

	assert.Equal(t, "What is 2+2?", result.Breakdown[0].Question)
	assert.Equal(t, "5", result.Breakdown[0].UserAnswer)
	assert.Equal(t, "4", result.Breakdown[0].CorrectAnswer)
	assert.False(t, result.Breakdown[0].IsCorrect)

	assert.True(t, result.Breakdown[1].IsCorrect)

	// Unanswered question appears in the breakdown with an empty answer.
	assert.Equal(t, "", result.Breakdown[2].UserAnswer)
	assert.False(t, result.Breakdown[2].IsCorrect)
}
