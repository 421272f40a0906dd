package models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

// AttemptAnswer is one submitted answer. QuestionID correlates with the
// stable question identifier when the client echoes it; Question (the literal
// text) is the fallback correlation key kept for older clients.
type AttemptAnswer struct {
	QuestionID string `json:"question_id,omitempty"`
	Question   string `json:"question" validate:"required,min=1"`
	Answer     string `json:"answer"`
}

type QuizAttempt struct {
	ID          uint           `json:"id" gorm:"primaryKey"`
	UserID      uint           `json:"user_id" gorm:"not null;index"`
	QuizID      uint           `json:"quiz_id" gorm:"not null;index"`
	Score       float64        `json:"score" gorm:"not null"`
	Answers     datatypes.JSON `json:"answers" gorm:"column:answer;type:jsonb"`
	AttemptedAt time.Time      `json:"attempted_at" gorm:"autoCreateTime;index"`

	// Relations
	Quiz *Quiz `json:"quiz,omitempty" gorm:"foreignKey:QuizID"`
	User *User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}

func (QuizAttempt) TableName() string {
	return "quiz_attempts"
}

// AnswerBreakdown is the per-question correctness entry of a graded attempt.
type AnswerBreakdown struct {
	Question      string `json:"question"`
	UserAnswer    string `json:"user_answer"`
	CorrectAnswer string `json:"correct_answer"`
	IsCorrect     bool   `json:"is_correct"`
}

// DecodeAnswers decodes the answers JSON column, dropping entries that do
// not match the expected shape instead of failing the whole read.
func DecodeAnswers(raw datatypes.JSON) []AttemptAnswer {
	if len(raw) == 0 {
		return nil
	}

	var entries []json.RawMessage
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil
	}

	answers := make([]AttemptAnswer, 0, len(entries))
	for _, entry := range entries {
		var a AttemptAnswer
		if err := json.Unmarshal(entry, &a); err != nil {
			continue
		}
		if a.Question == "" {
			continue
		}
		answers = append(answers, a)
	}

	return answers
}

// EncodeAnswers marshals submitted answers for storage.
func EncodeAnswers(answers []AttemptAnswer) (datatypes.JSON, error) {
	raw, err := json.Marshal(answers)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(raw), nil
}

// DecodedAnswers returns the attempt's stored answers.
func (a *QuizAttempt) DecodedAnswers() []AttemptAnswer {
	return DecodeAnswers(a.Answers)
}
