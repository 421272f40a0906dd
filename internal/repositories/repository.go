package repositories

// Repository aggregates the per-entity repositories behind a single
// dependency for services.
type Repository interface {
	Course() CourseRepository
	Lesson() LessonRepository
	Quiz() QuizRepository
	Attempt() AttemptRepository
	Progress() ProgressRepository
	Enrollment() EnrollmentRepository
}
