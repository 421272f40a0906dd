package events

import (
	"time"

	"github.com/google/uuid"
)

// EventType represents different types of learning events
type EventType string

const (
	// Attempt events
	EventAttemptGraded EventType = "attempt.graded"

	// Progress events
	EventLessonCompleted EventType = "lesson.completed"
	EventCourseCompleted EventType = "course.completed"

	// Enrollment events
	EventUserEnrolled EventType = "enrollment.created"
)

// LearningEvent is the base event structure for all learning events
type LearningEvent struct {
	ID        string                 `json:"id"`
	Type      EventType              `json:"type"`
	Timestamp time.Time              `json:"timestamp"`
	Source    string                 `json:"source"`
	Version   string                 `json:"version"`
	Data      interface{}            `json:"data"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
}

// Attempt event payloads

type AttemptGradedEvent struct {
	AttemptID      uint    `json:"attempt_id"`
	UserID         uint    `json:"user_id"`
	QuizID         uint    `json:"quiz_id"`
	QuizTitle      string  `json:"quiz_title"`
	LessonID       uint    `json:"lesson_id"`
	Score          float64 `json:"score"`
	TotalQuestions int     `json:"total_questions"`
	CorrectAnswers int     `json:"correct_answers"`
}

// Progress event payloads

type LessonCompletedEvent struct {
	UserID      uint      `json:"user_id"`
	LessonID    uint      `json:"lesson_id"`
	CourseID    uint      `json:"course_id"`
	Progress    int       `json:"progress"`
	CompletedAt time.Time `json:"completed_at"`
}

type CourseCompletedEvent struct {
	UserID           uint      `json:"user_id"`
	CourseID         uint      `json:"course_id"`
	TotalLessons     int       `json:"total_lessons"`
	CompletedLessons int       `json:"completed_lessons"`
	CompletedAt      time.Time `json:"completed_at"`
}

// Enrollment event payload

type UserEnrolledEvent struct {
	EnrollmentID uint      `json:"enrollment_id"`
	UserID       uint      `json:"user_id"`
	CourseID     uint      `json:"course_id"`
	EnrolledAt   time.Time `json:"enrolled_at"`
}

// Event factory functions

func NewAttemptGradedEvent(data AttemptGradedEvent) *LearningEvent {
	return newEvent(EventAttemptGraded, data)
}

func NewLessonCompletedEvent(data LessonCompletedEvent) *LearningEvent {
	return newEvent(EventLessonCompleted, data)
}

func NewCourseCompletedEvent(data CourseCompletedEvent) *LearningEvent {
	return newEvent(EventCourseCompleted, data)
}

func NewUserEnrolledEvent(data UserEnrolledEvent) *LearningEvent {
	return newEvent(EventUserEnrolled, data)
}

func newEvent(eventType EventType, data interface{}) *LearningEvent {
	return &LearningEvent{
		ID:        uuid.NewString(),
		Type:      eventType,
		Timestamp: time.Now(),
		Source:    "learning-service",
		Version:   "1.0",
		Data:      data,
	}
}
