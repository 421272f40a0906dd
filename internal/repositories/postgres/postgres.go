package postgres

import (
	"strings"

	"github.com/OpenCampus-2025/learning-service/internal/repositories"
	"gorm.io/gorm"
)

type repository struct {
	course     repositories.CourseRepository
	lesson     repositories.LessonRepository
	quiz       repositories.QuizRepository
	attempt    repositories.AttemptRepository
	progress   repositories.ProgressRepository
	enrollment repositories.EnrollmentRepository
}

// NewRepository wires the gorm-backed repositories behind the Repository
// aggregate.
func NewRepository(db *gorm.DB) repositories.Repository {
	return &repository{
		course:     NewCoursePostgreSQL(db),
		lesson:     NewLessonPostgreSQL(db),
		quiz:       NewQuizPostgreSQL(db),
		attempt:    NewAttemptPostgreSQL(db),
		progress:   NewProgressPostgreSQL(db),
		enrollment: NewEnrollmentPostgreSQL(db),
	}
}

func (r *repository) Course() repositories.CourseRepository         { return r.course }
func (r *repository) Lesson() repositories.LessonRepository         { return r.lesson }
func (r *repository) Quiz() repositories.QuizRepository             { return r.quiz }
func (r *repository) Attempt() repositories.AttemptRepository       { return r.attempt }
func (r *repository) Progress() repositories.ProgressRepository     { return r.progress }
func (r *repository) Enrollment() repositories.EnrollmentRepository { return r.enrollment }

// applyPaginationAndSort applies sorting and pagination to a query. sortBy
// must already be checked against the caller's allowed column set.
func applyPaginationAndSort(query *gorm.DB, sortBy, sortOrder string, limit, offset int) *gorm.DB {
	if sortBy != "" {
		order := "ASC"
		if strings.EqualFold(sortOrder, "desc") {
			order = "DESC"
		}
		query = query.Order(sortBy + " " + order)
	}

	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	return query
}

// sortColumn maps a requested sort key onto a real column, falling back to
// the default when the key is unknown. Keeps user input out of the ORDER BY.
func sortColumn(allowed map[string]string, requested, fallback string) string {
	if column, ok := allowed[requested]; ok {
		return column
	}
	return fallback
}
