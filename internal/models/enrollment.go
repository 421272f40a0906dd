package models

import (
	"time"
)

// Enrollment links a user to a course. Progress and Completed are derived
// values, recomputed from lesson completion state; they are never written
// directly by callers.
type Enrollment struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	UserID     uint      `json:"user_id" gorm:"not null;uniqueIndex:idx_enrollment_user_course"`
	CourseID   uint      `json:"course_id" gorm:"not null;uniqueIndex:idx_enrollment_user_course"`
	EnrolledAt time.Time `json:"enrolled_at" gorm:"autoCreateTime"`
	Completed  bool      `json:"completed" gorm:"default:false"`
	Progress   int       `json:"progress" gorm:"default:0"`

	// Relations
	Course *Course `json:"course,omitempty" gorm:"foreignKey:CourseID"`
	User   *User   `json:"user,omitempty" gorm:"foreignKey:UserID"`
}

func (Enrollment) TableName() string {
	return "enrollments"
}
