package services

import (
	"context"
	"errors"
	"testing"

	"github.com/OpenCampus-2025/learning-service/internal/events"
	"github.com/OpenCampus-2025/learning-service/internal/models"
	"github.com/OpenCampus-2025/learning-service/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func boolPtr(b bool) *bool { return &b }
func intPtr(i int) *int    { return &i }

func newProgressTestService(repo *MockRepository, policy RecomputePolicy) (ProgressService, *events.MockEventPublisher) {
	publisher := events.NewMockEventPublisher()
	svc := NewProgressService(repo, publisher, utils.NewDevelopmentLogger(), utils.NewValidator(), policy)
	return svc, publisher
}

func TestProgressService_Upsert_ClampsProgress(t *testing.T) {
	repo := NewMockRepository()
	svc, _ := newProgressTestService(repo, RecomputeOnComplete)

	repo.lessonRepo.On("GetByID", mock.Anything, uint(10)).
		Return(&models.Lesson{ID: 10, CourseID: 1}, nil)
	repo.progressRepo.On("GetByUserAndLesson", mock.Anything, uint(5), uint(10)).
		Return(nil, gorm.ErrRecordNotFound)
	repo.progressRepo.On("Upsert", mock.Anything, mock.MatchedBy(func(p *models.UserProgress) bool {
		return p.Progress == 100
	})).Return(nil)

	progress, err := svc.Upsert(context.Background(), 5, &UpsertProgressRequest{
		LessonID: 10,
		Progress: intPtr(150),
	})
	require.NoError(t, err)
	assert.Equal(t, 100, progress.Progress)

	repo.progressRepo.AssertExpectations(t)
}

func TestProgressService_Upsert_MergesWithStoredState(t *testing.T) {
	repo := NewMockRepository()
	svc, _ := newProgressTestService(repo, RecomputeOnComplete)

	repo.lessonRepo.On("GetByID", mock.Anything, uint(10)).
		Return(&models.Lesson{ID: 10, CourseID: 1}, nil)
	repo.progressRepo.On("GetByUserAndLesson", mock.Anything, uint(5), uint(10)).
		Return(&models.UserProgress{ID: 7, UserID: 5, LessonID: 10, Completed: true, Progress: 80}, nil)

	// Only progress is supplied; the stored completed flag survives the merge.
	repo.progressRepo.On("Upsert", mock.Anything, mock.MatchedBy(func(p *models.UserProgress) bool {
		return p.ID == 7 && p.Completed && p.Progress == 90
	})).Return(nil)

	// Completed stays true, so the recompute still runs.
	repo.enrollmentRepo.On("GetByUserAndCourse", mock.Anything, uint(5), uint(1)).
		Return(nil, gorm.ErrRecordNotFound)

	progress, err := svc.Upsert(context.Background(), 5, &UpsertProgressRequest{
		LessonID: 10,
		Progress: intPtr(90),
	})
	require.NoError(t, err)
	assert.True(t, progress.Completed)
	assert.Equal(t, 90, progress.Progress)
}

func TestProgressService_Upsert_LessonNotFound(t *testing.T) {
	repo := NewMockRepository()
	svc, _ := newProgressTestService(repo, RecomputeOnComplete)

	repo.lessonRepo.On("GetByID", mock.Anything, uint(99)).
		Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.Upsert(context.Background(), 5, &UpsertProgressRequest{LessonID: 99})
	assert.ErrorIs(t, err, ErrLessonNotFound)
}

func TestProgressService_Upsert_CompletionTriggersRecompute(t *testing.T) {
	repo := NewMockRepository()
	svc, publisher := newProgressTestService(repo, RecomputeOnComplete)

	repo.lessonRepo.On("GetByID", mock.Anything, uint(10)).
		Return(&models.Lesson{ID: 10, CourseID: 1}, nil)
	repo.progressRepo.On("GetByUserAndLesson", mock.Anything, uint(5), uint(10)).
		Return(nil, gorm.ErrRecordNotFound)
	repo.progressRepo.On("Upsert", mock.Anything, mock.Anything).Return(nil)

	// 3 of 5 lessons complete: 60 percent, not completed.
	repo.enrollmentRepo.On("GetByUserAndCourse", mock.Anything, uint(5), uint(1)).
		Return(&models.Enrollment{ID: 3, UserID: 5, CourseID: 1}, nil)
	repo.lessonRepo.On("CountByCourse", mock.Anything, uint(1)).Return(int64(5), nil)
	repo.progressRepo.On("CountCompletedByCourse", mock.Anything, uint(5), uint(1)).Return(int64(3), nil)
	repo.enrollmentRepo.On("UpdateDerived", mock.Anything, uint(5), uint(1), 60, false).Return(nil)

	_, err := svc.Upsert(context.Background(), 5, &UpsertProgressRequest{
		LessonID:  10,
		Completed: boolPtr(true),
	})
	require.NoError(t, err)

	repo.enrollmentRepo.AssertExpectations(t)
	assert.Len(t, publisher.EventsOfType(events.EventLessonCompleted), 1)
	assert.Empty(t, publisher.EventsOfType(events.EventCourseCompleted))
}

func TestProgressService_Upsert_LastLessonCompletesCourse(t *testing.T) {
	repo := NewMockRepository()
	svc, publisher := newProgressTestService(repo, RecomputeOnComplete)

	repo.lessonRepo.On("GetByID", mock.Anything, uint(10)).
		Return(&models.Lesson{ID: 10, CourseID: 1}, nil)
	repo.progressRepo.On("GetByUserAndLesson", mock.Anything, uint(5), uint(10)).
		Return(nil, gorm.ErrRecordNotFound)
	repo.progressRepo.On("Upsert", mock.Anything, mock.Anything).Return(nil)

	repo.enrollmentRepo.On("GetByUserAndCourse", mock.Anything, uint(5), uint(1)).
		Return(&models.Enrollment{ID: 3, UserID: 5, CourseID: 1, Progress: 80}, nil)
	repo.lessonRepo.On("CountByCourse", mock.Anything, uint(1)).Return(int64(5), nil)
	repo.progressRepo.On("CountCompletedByCourse", mock.Anything, uint(5), uint(1)).Return(int64(5), nil)
	repo.enrollmentRepo.On("UpdateDerived", mock.Anything, uint(5), uint(1), 100, true).Return(nil)

	_, err := svc.Upsert(context.Background(), 5, &UpsertProgressRequest{
		LessonID:  10,
		Completed: boolPtr(true),
	})
	require.NoError(t, err)

	assert.Len(t, publisher.EventsOfType(events.EventCourseCompleted), 1)
}

func TestProgressService_Upsert_NonCompletingWriteSkipsRecompute(t *testing.T) {
	repo := NewMockRepository()
	svc, _ := newProgressTestService(repo, RecomputeOnComplete)

	repo.lessonRepo.On("GetByID", mock.Anything, uint(10)).
		Return(&models.Lesson{ID: 10, CourseID: 1}, nil)
	repo.progressRepo.On("GetByUserAndLesson", mock.Anything, uint(5), uint(10)).
		Return(nil, gorm.ErrRecordNotFound)
	repo.progressRepo.On("Upsert", mock.Anything, mock.Anything).Return(nil)

	_, err := svc.Upsert(context.Background(), 5, &UpsertProgressRequest{
		LessonID: 10,
		Progress: intPtr(40),
	})
	require.NoError(t, err)

	repo.enrollmentRepo.AssertNotCalled(t, "UpdateDerived",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestProgressService_Upsert_RecomputeAlwaysPolicy(t *testing.T) {
	repo := NewMockRepository()
	svc, _ := newProgressTestService(repo, RecomputeAlways)

	repo.lessonRepo.On("GetByID", mock.Anything, uint(10)).
		Return(&models.Lesson{ID: 10, CourseID: 1}, nil)
	repo.progressRepo.On("GetByUserAndLesson", mock.Anything, uint(5), uint(10)).
		Return(&models.UserProgress{ID: 7, UserID: 5, LessonID: 10, Completed: true, Progress: 100}, nil)
	repo.progressRepo.On("Upsert", mock.Anything, mock.Anything).Return(nil)

	// Un-completing the lesson recomputes under the always policy.
	repo.enrollmentRepo.On("GetByUserAndCourse", mock.Anything, uint(5), uint(1)).
		Return(&models.Enrollment{ID: 3, UserID: 5, CourseID: 1, Completed: true, Progress: 100}, nil)
	repo.lessonRepo.On("CountByCourse", mock.Anything, uint(1)).Return(int64(2), nil)
	repo.progressRepo.On("CountCompletedByCourse", mock.Anything, uint(5), uint(1)).Return(int64(1), nil)
	repo.enrollmentRepo.On("UpdateDerived", mock.Anything, uint(5), uint(1), 50, false).Return(nil)

	_, err := svc.Upsert(context.Background(), 5, &UpsertProgressRequest{
		LessonID:  10,
		Completed: boolPtr(false),
	})
	require.NoError(t, err)

	repo.enrollmentRepo.AssertExpectations(t)
}

func TestProgressService_Upsert_RecomputeFailureDoesNotFailWrite(t *testing.T) {
	repo := NewMockRepository()
	svc, _ := newProgressTestService(repo, RecomputeOnComplete)

	repo.lessonRepo.On("GetByID", mock.Anything, uint(10)).
		Return(&models.Lesson{ID: 10, CourseID: 1}, nil)
	repo.progressRepo.On("GetByUserAndLesson", mock.Anything, uint(5), uint(10)).
		Return(nil, gorm.ErrRecordNotFound)
	repo.progressRepo.On("Upsert", mock.Anything, mock.Anything).Return(nil)

	repo.enrollmentRepo.On("GetByUserAndCourse", mock.Anything, uint(5), uint(1)).
		Return(&models.Enrollment{ID: 3, UserID: 5, CourseID: 1}, nil)
	repo.lessonRepo.On("CountByCourse", mock.Anything, uint(1)).Return(int64(5), nil)
	repo.progressRepo.On("CountCompletedByCourse", mock.Anything, uint(5), uint(1)).Return(int64(3), nil)
	repo.enrollmentRepo.On("UpdateDerived", mock.Anything, uint(5), uint(1), 60, false).
		Return(errors.New("db down"))

	progress, err := svc.Upsert(context.Background(), 5, &UpsertProgressRequest{
		LessonID:  10,
		Completed: boolPtr(true),
	})
	require.NoError(t, err)
	assert.True(t, progress.Completed)
}

func TestProgressService_RecomputeEnrollment(t *testing.T) {
	tests := []struct {
		name              string
		totalLessons      int64
		completedLessons  int64
		expectedProgress  int
		expectedCompleted bool
	}{
		{"three of five", 5, 3, 60, false},
		{"all complete", 5, 5, 100, true},
		{"half complete", 2, 1, 50, false},
		{"rounds to nearest", 3, 1, 33, false},
		{"empty course", 0, 0, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := NewMockRepository()
			svc, _ := newProgressTestService(repo, RecomputeOnComplete)

			repo.enrollmentRepo.On("GetByUserAndCourse", mock.Anything, uint(5), uint(1)).
				Return(&models.Enrollment{ID: 3, UserID: 5, CourseID: 1}, nil)
			repo.lessonRepo.On("CountByCourse", mock.Anything, uint(1)).
				Return(tt.totalLessons, nil)
			repo.progressRepo.On("CountCompletedByCourse", mock.Anything, uint(5), uint(1)).
				Return(tt.completedLessons, nil)
			repo.enrollmentRepo.On("UpdateDerived",
				mock.Anything, uint(5), uint(1), tt.expectedProgress, tt.expectedCompleted).Return(nil)

			err := svc.RecomputeEnrollment(context.Background(), 5, 1)
			require.NoError(t, err)

			repo.enrollmentRepo.AssertExpectations(t)
		})
	}
}

func TestProgressService_RecomputeEnrollment_NoEnrollmentIsNoop(t *testing.T) {
	repo := NewMockRepository()
	svc, _ := newProgressTestService(repo, RecomputeOnComplete)

	repo.enrollmentRepo.On("GetByUserAndCourse", mock.Anything, uint(5), uint(1)).
		Return(nil, gorm.ErrRecordNotFound)

	err := svc.RecomputeEnrollment(context.Background(), 5, 1)
	require.NoError(t, err)

	repo.enrollmentRepo.AssertNotCalled(t, "UpdateDerived",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
