package repositories

import (
	"errors"

	"gorm.io/gorm"
)

// ===== SHARED FILTER STRUCTS =====

type ListFilters struct {
	Search    string `json:"search"`
	Limit     int    `json:"limit"`
	Offset    int    `json:"offset"`
	SortBy    string `json:"sort_by"`
	SortOrder string `json:"sort_order"` // "asc", "desc"
}

type ProgressFilters struct {
	UserID    *uint  `json:"user_id"`
	LessonID  *uint  `json:"lesson_id"`
	Completed *bool  `json:"completed"`
	Limit     int    `json:"limit"`
	Offset    int    `json:"offset"`
	SortBy    string `json:"sort_by"`
	SortOrder string `json:"sort_order"`
}

// IsNotFoundError reports whether err is the store's record-not-found error.
func IsNotFoundError(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
