package models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

// QuizQuestion is one entry of the questions JSON column. ID is a stable
// identifier assigned when the question is authored; older rows created
// before IDs were introduced may carry an empty one, in which case answers
// are correlated by question text.
type QuizQuestion struct {
	ID          string   `json:"id,omitempty"`
	Question    string   `json:"question" validate:"required,min=1"`
	RightAnswer string   `json:"rightAnswer" validate:"required,min=1"`
	Variants    []string `json:"variants" validate:"required,min=2,dive,min=1"`
}

// QuizQuestionPublic is the answer-key-redacted projection of a question.
type QuizQuestionPublic struct {
	ID       string   `json:"id,omitempty"`
	Question string   `json:"question"`
	Variants []string `json:"variants"`
}

type Quiz struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	LessonID  uint           `json:"lesson_id" gorm:"not null;index"`
	Title     string         `json:"title" gorm:"not null;size:200" validate:"required,min=1,max=200"`
	Questions datatypes.JSON `json:"questions" gorm:"type:jsonb"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Lesson   *Lesson       `json:"lesson,omitempty" gorm:"foreignKey:LessonID"`
	Attempts []QuizAttempt `json:"-" gorm:"foreignKey:QuizID;constraint:OnDelete:CASCADE"`
}

func (Quiz) TableName() string {
	return "quizzes"
}

// QuizWithQuestions is a quiz with its questions column decoded, answer key
// included. Only privileged reads and the scoring path see this shape.
type QuizWithQuestions struct {
	ID        uint           `json:"id"`
	LessonID  uint           `json:"lesson_id"`
	Title     string         `json:"title"`
	Questions []QuizQuestion `json:"questions"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// QuizPublic is the redacted read model: no question carries its right answer.
type QuizPublic struct {
	ID        uint                 `json:"id"`
	LessonID  uint                 `json:"lesson_id"`
	Title     string               `json:"title"`
	Questions []QuizQuestionPublic `json:"questions"`
	CreatedAt time.Time            `json:"created_at"`
	UpdatedAt time.Time            `json:"updated_at"`
}

// DecodeQuestions decodes the questions JSON column. Entries that do not
// match the expected question shape are dropped rather than rejected, so a
// row with partially corrupted JSON still reads.
func DecodeQuestions(raw datatypes.JSON) []QuizQuestion {
	if len(raw) == 0 {
		return nil
	}

	var entries []json.RawMessage
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil
	}

	questions := make([]QuizQuestion, 0, len(entries))
	for _, entry := range entries {
		var q QuizQuestion
		if err := json.Unmarshal(entry, &q); err != nil {
			continue
		}
		if q.Question == "" || q.RightAnswer == "" || len(q.Variants) == 0 {
			continue
		}
		questions = append(questions, q)
	}

	return questions
}

// EncodeQuestions marshals a questions slice for storage.
func EncodeQuestions(questions []QuizQuestion) (datatypes.JSON, error) {
	raw, err := json.Marshal(questions)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(raw), nil
}

// WithQuestions decodes the quiz into its full (answer-key included) shape.
func (q *Quiz) WithQuestions() *QuizWithQuestions {
	return &QuizWithQuestions{
		ID:        q.ID,
		LessonID:  q.LessonID,
		Title:     q.Title,
		Questions: DecodeQuestions(q.Questions),
		CreatedAt: q.CreatedAt,
		UpdatedAt: q.UpdatedAt,
	}
}

// Public strips the right answer from every question.
func (q *QuizWithQuestions) Public() *QuizPublic {
	questions := make([]QuizQuestionPublic, len(q.Questions))
	for i, question := range q.Questions {
		questions[i] = QuizQuestionPublic{
			ID:       question.ID,
			Question: question.Question,
			Variants: question.Variants,
		}
	}

	return &QuizPublic{
		ID:        q.ID,
		LessonID:  q.LessonID,
		Title:     q.Title,
		Questions: questions,
		CreatedAt: q.CreatedAt,
		UpdatedAt: q.UpdatedAt,
	}
}
