package models

import (
	"time"

	"gorm.io/gorm"
)

type Course struct {
	ID          uint    `json:"id" gorm:"primaryKey"`
	Title       string  `json:"title" gorm:"not null;size:200;index" validate:"required,min=1,max=200"`
	Description *string `json:"description" gorm:"type:text" validate:"omitempty,max=2000"`
	Image       *string `json:"image" gorm:"size:500" validate:"omitempty,url"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`

	// Relations
	Lessons     []Lesson     `json:"lessons,omitempty" gorm:"foreignKey:CourseID"`
	Enrollments []Enrollment `json:"-" gorm:"foreignKey:CourseID"`

	// Computed fields (not stored)
	LessonsCount int `json:"lessons_count" gorm:"-"`
}

func (Course) TableName() string {
	return "courses"
}
