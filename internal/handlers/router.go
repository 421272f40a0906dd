package handlers

import (
	"github.com/OpenCampus-2025/learning-service/internal/services"
	"github.com/OpenCampus-2025/learning-service/internal/utils"
	"github.com/gin-gonic/gin"
)

type HandlerManager struct {
	courseHandler     *CourseHandler
	lessonHandler     *LessonHandler
	quizHandler       *QuizHandler
	attemptHandler    *AttemptHandler
	progressHandler   *ProgressHandler
	enrollmentHandler *EnrollmentHandler
}

func NewHandlerManager(
	serviceManager services.ServiceManager,
	logger utils.Logger,
) *HandlerManager {
	return &HandlerManager{
		courseHandler:     NewCourseHandler(serviceManager.Course(), serviceManager.Lesson(), logger),
		lessonHandler:     NewLessonHandler(serviceManager.Lesson(), serviceManager.Quiz(), logger),
		quizHandler:       NewQuizHandler(serviceManager.Quiz(), serviceManager.Attempt(), logger),
		attemptHandler:    NewAttemptHandler(serviceManager.Attempt(), logger),
		progressHandler:   NewProgressHandler(serviceManager.Progress(), logger),
		enrollmentHandler: NewEnrollmentHandler(serviceManager.Enrollment(), logger),
	}
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"service": "learning-service",
		})
	})

	v1 := router.Group("/api/v1")
	{
		courses := v1.Group("/courses")
		{
			courses.POST("", hm.courseHandler.CreateCourse)
			courses.GET("", hm.courseHandler.ListCourses)
			courses.GET("/:id", hm.courseHandler.GetCourse)
			courses.PUT("/:id", hm.courseHandler.UpdateCourse)
			courses.DELETE("/:id", hm.courseHandler.DeleteCourse)
			courses.GET("/:id/lessons", hm.courseHandler.GetCourseLessons)
		}

		lessons := v1.Group("/lessons")
		{
			lessons.POST("", hm.lessonHandler.CreateLesson)
			lessons.GET("/:id", hm.lessonHandler.GetLesson)
			lessons.PUT("/:id", hm.lessonHandler.UpdateLesson)
			lessons.DELETE("/:id", hm.lessonHandler.DeleteLesson)
			lessons.GET("/:id/quizzes", hm.lessonHandler.GetLessonQuizzes)
			lessons.POST("/:id/quizzes", hm.quizHandler.CreateQuiz)
		}

		quizzes := v1.Group("/quizzes")
		{
			quizzes.GET("/:id", hm.quizHandler.GetQuiz)
			quizzes.PUT("/:id", hm.quizHandler.UpdateQuiz)
			quizzes.DELETE("/:id", hm.quizHandler.DeleteQuiz)
			quizzes.POST("/:id/attempts", hm.quizHandler.SubmitAttempt)
			quizzes.GET("/:id/attempts", hm.quizHandler.GetQuizAttempts)
			quizzes.GET("/:id/result", hm.quizHandler.GetQuizResult)
		}

		attempts := v1.Group("/attempts")
		{
			attempts.GET("", hm.attemptHandler.ListUserAttempts)
			attempts.GET("/:id", hm.attemptHandler.GetAttempt)
		}

		progress := v1.Group("/progress")
		{
			progress.PUT("", hm.progressHandler.UpsertProgress)
			progress.GET("", hm.progressHandler.ListProgress)
			progress.GET("/:id", hm.progressHandler.GetProgress)
			progress.GET("/lessons/:lesson_id", hm.progressHandler.GetLessonProgress)
			progress.GET("/courses/:course_id", hm.progressHandler.GetCourseProgress)
			progress.POST("/courses/:course_id/recompute", hm.progressHandler.RecomputeEnrollment)
		}

		enrollments := v1.Group("/enrollments")
		{
			enrollments.POST("", hm.enrollmentHandler.Enroll)
			enrollments.GET("", hm.enrollmentHandler.ListEnrollments)
			enrollments.GET("/:id", hm.enrollmentHandler.GetEnrollment)
			enrollments.DELETE("/:id", hm.enrollmentHandler.Unenroll)
			enrollments.GET("/courses/:course_id", hm.enrollmentHandler.GetCourseEnrollment)
		}
	}
}
