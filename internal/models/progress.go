package models

import (
	"time"
)

// UserProgress is the per-lesson completion record, unique per
// (user, lesson). Progress is clamped to 100 on every write.
type UserProgress struct {
	ID        uint `json:"id" gorm:"primaryKey"`
	UserID    uint `json:"user_id" gorm:"not null;uniqueIndex:idx_progress_user_lesson"`
	LessonID  uint `json:"lesson_id" gorm:"not null;uniqueIndex:idx_progress_user_lesson"`
	Completed bool `json:"completed" gorm:"default:false"`
	Progress  int  `json:"progress" gorm:"default:0" validate:"min=0"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at" gorm:"index"`

	// Relations
	Lesson *Lesson `json:"lesson,omitempty" gorm:"foreignKey:LessonID"`
	User   *User   `json:"user,omitempty" gorm:"foreignKey:UserID"`
}

func (UserProgress) TableName() string {
	return "user_progress"
}
