package services

import (
	"context"
	"testing"

	"github.com/OpenCampus-2025/learning-service/internal/events"
	"github.com/OpenCampus-2025/learning-service/internal/models"
	"github.com/OpenCampus-2025/learning-service/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newEnrollmentTestService(repo *MockRepository) (EnrollmentService, *events.MockEventPublisher) {
	publisher := events.NewMockEventPublisher()
	svc := NewEnrollmentService(repo, publisher, utils.NewDevelopmentLogger(), utils.NewValidator())
	return svc, publisher
}

func TestEnrollmentService_Enroll(t *testing.T) {
	repo := NewMockRepository()
	svc, publisher := newEnrollmentTestService(repo)

	repo.courseRepo.On("GetByID", mock.Anything, uint(1)).
		Return(&models.Course{ID: 1, Title: "Go Basics"}, nil)
	repo.enrollmentRepo.On("GetByUserAndCourse", mock.Anything, uint(5), uint(1)).
		Return(nil, gorm.ErrRecordNotFound)
	repo.enrollmentRepo.On("Create", mock.Anything, mock.MatchedBy(func(e *models.Enrollment) bool {
		return e.UserID == 5 && e.CourseID == 1
	})).Return(nil)

	enrollment, err := svc.Enroll(context.Background(), 5, &EnrollRequest{CourseID: 1})
	require.NoError(t, err)

	assert.Equal(t, uint(5), enrollment.UserID)
	assert.Equal(t, uint(1), enrollment.CourseID)
	assert.False(t, enrollment.Completed)
	assert.Equal(t, 0, enrollment.Progress)

	assert.Len(t, publisher.EventsOfType(events.EventUserEnrolled), 1)
}

func TestEnrollmentService_Enroll_Duplicate(t *testing.T) {
	repo := NewMockRepository()
	svc, _ := newEnrollmentTestService(repo)

	repo.courseRepo.On("GetByID", mock.Anything, uint(1)).
		Return(&models.Course{ID: 1}, nil)
	repo.enrollmentRepo.On("GetByUserAndCourse", mock.Anything, uint(5), uint(1)).
		Return(&models.Enrollment{ID: 3, UserID: 5, CourseID: 1}, nil)

	_, err := svc.Enroll(context.Background(), 5, &EnrollRequest{CourseID: 1})
	assert.ErrorIs(t, err, ErrAlreadyEnrolled)

	repo.enrollmentRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestEnrollmentService_Enroll_CourseNotFound(t *testing.T) {
	repo := NewMockRepository()
	svc, _ := newEnrollmentTestService(repo)

	repo.courseRepo.On("GetByID", mock.Anything, uint(99)).
		Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.Enroll(context.Background(), 5, &EnrollRequest{CourseID: 99})
	assert.ErrorIs(t, err, ErrCourseNotFound)
}

func TestEnrollmentService_Unenroll_NotFound(t *testing.T) {
	repo := NewMockRepository()
	svc, _ := newEnrollmentTestService(repo)

	repo.enrollmentRepo.On("GetByID", mock.Anything, uint(99)).
		Return(nil, gorm.ErrRecordNotFound)

	err := svc.Unenroll(context.Background(), 99)
	assert.ErrorIs(t, err, ErrEnrollmentNotFound)
}
