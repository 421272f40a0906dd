package services

import (
	"github.com/OpenCampus-2025/learning-service/internal/cache"
	"github.com/OpenCampus-2025/learning-service/internal/events"
	"github.com/OpenCampus-2025/learning-service/internal/repositories"
	"github.com/OpenCampus-2025/learning-service/internal/utils"
)

// ServiceManager bundles all services behind one dependency for handlers.
type ServiceManager interface {
	Course() CourseService
	Lesson() LessonService
	Quiz() QuizService
	Scoring() ScoringService
	Attempt() AttemptService
	Progress() ProgressService
	Enrollment() EnrollmentService
}

type serviceManager struct {
	course     CourseService
	lesson     LessonService
	quiz       QuizService
	scoring    ScoringService
	attempt    AttemptService
	progress   ProgressService
	enrollment EnrollmentService
}

type ManagerConfig struct {
	Repository      repositories.Repository
	Cache           cache.CacheService
	Publisher       events.EventPublisher
	Logger          utils.Logger
	Validator       *utils.Validator
	RecomputePolicy RecomputePolicy
}

func NewServiceManager(cfg ManagerConfig) ServiceManager {
	scoring := NewScoringService()

	return &serviceManager{
		course:     NewCourseService(cfg.Repository, cfg.Logger, cfg.Validator),
		lesson:     NewLessonService(cfg.Repository, cfg.Logger, cfg.Validator),
		quiz:       NewQuizService(cfg.Repository, cfg.Cache, cfg.Logger, cfg.Validator),
		scoring:    scoring,
		attempt:    NewAttemptService(cfg.Repository, scoring, cfg.Publisher, cfg.Logger, cfg.Validator),
		progress:   NewProgressService(cfg.Repository, cfg.Publisher, cfg.Logger, cfg.Validator, cfg.RecomputePolicy),
		enrollment: NewEnrollmentService(cfg.Repository, cfg.Publisher, cfg.Logger, cfg.Validator),
	}
}

func (m *serviceManager) Course() CourseService         { return m.course }
func (m *serviceManager) Lesson() LessonService         { return m.lesson }
func (m *serviceManager) Quiz() QuizService             { return m.quiz }
func (m *serviceManager) Scoring() ScoringService       { return m.scoring }
func (m *serviceManager) Attempt() AttemptService       { return m.attempt }
func (m *serviceManager) Progress() ProgressService     { return m.progress }
func (m *serviceManager) Enrollment() EnrollmentService { return m.enrollment }
