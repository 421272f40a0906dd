package models

import (
	"time"
)

type Lesson struct {
	ID       uint   `json:"id" gorm:"primaryKey"`
	CourseID uint   `json:"course_id" gorm:"not null;index"`
	Title    string `json:"title" gorm:"not null;size:200" validate:"required,min=1,max=200"`
	Content  string `json:"content" gorm:"type:text"`
	Order    int    `json:"order" gorm:"column:lesson_order;default:0;index" validate:"min=0"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Course  *Course `json:"course,omitempty" gorm:"foreignKey:CourseID"`
	Quizzes []Quiz  `json:"quizzes,omitempty" gorm:"foreignKey:LessonID;constraint:OnDelete:CASCADE"`

	// Computed fields (not stored)
	QuizzesCount int `json:"quizzes_count" gorm:"-"`
}

func (Lesson) TableName() string {
	return "lessons"
}
