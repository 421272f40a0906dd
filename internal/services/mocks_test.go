package services

import (
	"context"

	"github.com/OpenCampus-2025/learning-service/internal/models"
	"github.com/OpenCampus-2025/learning-service/internal/repositories"
	"github.com/stretchr/testify/mock"
)

// MockRepository bundles per-entity repository mocks behind the Repository
// interface for service tests.
type MockRepository struct {
	courseRepo     *MockCourseRepository
	lessonRepo     *MockLessonRepository
	quizRepo       *MockQuizRepository
	attemptRepo    *MockAttemptRepository
	progressRepo   *MockProgressRepository
	enrollmentRepo *MockEnrollmentRepository
}

func NewMockRepository() *MockRepository {
	return &MockRepository{
		courseRepo:     &MockCourseRepository{},
		lessonRepo:     &MockLessonRepository{},
		quizRepo:       &MockQuizRepository{},
		attemptRepo:    &MockAttemptRepository{},
		progressRepo:   &MockProgressRepository{},
		enrollmentRepo: &MockEnrollmentRepository{},
	}
}

func (m *MockRepository) Course() repositories.CourseRepository         { return m.courseRepo }
func (m *MockRepository) Lesson() repositories.LessonRepository         { return m.lessonRepo }
func (m *MockRepository) Quiz() repositories.QuizRepository             { return m.quizRepo }
func (m *MockRepository) Attempt() repositories.AttemptRepository       { return m.attemptRepo }
func (m *MockRepository) Progress() repositories.ProgressRepository     { return m.progressRepo }
func (m *MockRepository) Enrollment() repositories.EnrollmentRepository { return m.enrollmentRepo }

// MockCourseRepository is a mock implementation of CourseRepository
type MockCourseRepository struct {
	mock.Mock
}

func (m *MockCourseRepository) Create(ctx context.Context, course *models.Course) error {
	args := m.Called(ctx, course)
	return args.Error(0)
}

func (m *MockCourseRepository) GetByID(ctx context.Context, id uint) (*models.Course, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Course), args.Error(1)
}

func (m *MockCourseRepository) List(ctx context.Context, filters repositories.ListFilters) ([]*models.Course, int64, error) {
	args := m.Called(ctx, filters)
	return args.Get(0).([]*models.Course), args.Get(1).(int64), args.Error(2)
}

func (m *MockCourseRepository) Update(ctx context.Context, course *models.Course) error {
	args := m.Called(ctx, course)
	return args.Error(0)
}

func (m *MockCourseRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockLessonRepository is a mock implementation of LessonRepository
type MockLessonRepository struct {
	mock.Mock
}

func (m *MockLessonRepository) Create(ctx context.Context, lesson *models.Lesson) error {
	args := m.Called(ctx, lesson)
	return args.Error(0)
}

func (m *MockLessonRepository) GetByID(ctx context.Context, id uint) (*models.Lesson, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Lesson), args.Error(1)
}

func (m *MockLessonRepository) GetByCourse(ctx context.Context, courseID uint, filters repositories.ListFilters) ([]*models.Lesson, int64, error) {
	args := m.Called(ctx, courseID, filters)
	return args.Get(0).([]*models.Lesson), args.Get(1).(int64), args.Error(2)
}

func (m *MockLessonRepository) Update(ctx context.Context, lesson *models.Lesson) error {
	args := m.Called(ctx, lesson)
	return args.Error(0)
}

func (m *MockLessonRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockLessonRepository) CountByCourse(ctx context.Context, courseID uint) (int64, error) {
	args := m.Called(ctx, courseID)
	return args.Get(0).(int64), args.Error(1)
}

// MockQuizRepository is a mock implementation of QuizRepository
type MockQuizRepository struct {
	mock.Mock
}

func (m *MockQuizRepository) Create(ctx context.Context, quiz *models.Quiz) error {
	args := m.Called(ctx, quiz)
	return args.Error(0)
}

func (m *MockQuizRepository) GetByID(ctx context.Context, id uint) (*models.Quiz, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Quiz), args.Error(1)
}

func (m *MockQuizRepository) GetByLesson(ctx context.Context, lessonID uint) ([]*models.Quiz, error) {
	args := m.Called(ctx, lessonID)
	return args.Get(0).([]*models.Quiz), args.Error(1)
}

func (m *MockQuizRepository) Update(ctx context.Context, quiz *models.Quiz) error {
	args := m.Called(ctx, quiz)
	return args.Error(0)
}

func (m *MockQuizRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockAttemptRepository is a mock implementation of AttemptRepository
type MockAttemptRepository struct {
	mock.Mock
}

func (m *MockAttemptRepository) Create(ctx context.Context, attempt *models.QuizAttempt) error {
	args := m.Called(ctx, attempt)
	return args.Error(0)
}

func (m *MockAttemptRepository) GetByID(ctx context.Context, id uint) (*models.QuizAttempt, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.QuizAttempt), args.Error(1)
}

func (m *MockAttemptRepository) GetByIDWithDetails(ctx context.Context, id uint) (*models.QuizAttempt, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.QuizAttempt), args.Error(1)
}

func (m *MockAttemptRepository) GetByUser(ctx context.Context, userID uint) ([]*models.QuizAttempt, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]*models.QuizAttempt), args.Error(1)
}

func (m *MockAttemptRepository) GetByQuiz(ctx context.Context, quizID uint) ([]*models.QuizAttempt, error) {
	args := m.Called(ctx, quizID)
	return args.Get(0).([]*models.QuizAttempt), args.Error(1)
}

func (m *MockAttemptRepository) GetLatestByUserAndQuiz(ctx context.Context, userID, quizID uint) (*models.QuizAttempt, error) {
	args := m.Called(ctx, userID, quizID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.QuizAttempt), args.Error(1)
}

// MockProgressRepository is a mock implementation of ProgressRepository
type MockProgressRepository struct {
	mock.Mock
}

func (m *MockProgressRepository) Upsert(ctx context.Context, progress *models.UserProgress) error {
	args := m.Called(ctx, progress)
	return args.Error(0)
}

func (m *MockProgressRepository) GetByID(ctx context.Context, id uint) (*models.UserProgress, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UserProgress), args.Error(1)
}

func (m *MockProgressRepository) GetByUserAndLesson(ctx context.Context, userID, lessonID uint) (*models.UserProgress, error) {
	args := m.Called(ctx, userID, lessonID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UserProgress), args.Error(1)
}

func (m *MockProgressRepository) List(ctx context.Context, filters repositories.ProgressFilters) ([]*models.UserProgress, int64, error) {
	args := m.Called(ctx, filters)
	return args.Get(0).([]*models.UserProgress), args.Get(1).(int64), args.Error(2)
}

func (m *MockProgressRepository) GetByCourse(ctx context.Context, userID, courseID uint) ([]*models.UserProgress, error) {
	args := m.Called(ctx, userID, courseID)
	return args.Get(0).([]*models.UserProgress), args.Error(1)
}

func (m *MockProgressRepository) CountCompletedByCourse(ctx context.Context, userID, courseID uint) (int64, error) {
	args := m.Called(ctx, userID, courseID)
	return args.Get(0).(int64), args.Error(1)
}

// MockEnrollmentRepository is a mock implementation of EnrollmentRepository
type MockEnrollmentRepository struct {
	mock.Mock
}

func (m *MockEnrollmentRepository) Create(ctx context.Context, enrollment *models.Enrollment) error {
	args := m.Called(ctx, enrollment)
	return args.Error(0)
}

func (m *MockEnrollmentRepository) GetByID(ctx context.Context, id uint) (*models.Enrollment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Enrollment), args.Error(1)
}

func (m *MockEnrollmentRepository) GetByUserAndCourse(ctx context.Context, userID, courseID uint) (*models.Enrollment, error) {
	args := m.Called(ctx, userID, courseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Enrollment), args.Error(1)
}

func (m *MockEnrollmentRepository) GetByUser(ctx context.Context, userID uint, filters repositories.ListFilters) ([]*models.Enrollment, int64, error) {
	args := m.Called(ctx, userID, filters)
	return args.Get(0).([]*models.Enrollment), args.Get(1).(int64), args.Error(2)
}

func (m *MockEnrollmentRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockEnrollmentRepository) UpdateDerived(ctx context.Context, userID, courseID uint, progress int, completed bool) error {
	args := m.Called(ctx, userID, courseID, progress, completed)
	return args.Error(0)
}
