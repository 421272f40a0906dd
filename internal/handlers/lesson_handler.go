package handlers

import (
	"net/http"

	"github.com/OpenCampus-2025/learning-service/internal/services"
	"github.com/OpenCampus-2025/learning-service/internal/utils"
	"github.com/gin-gonic/gin"
)

type LessonHandler struct {
	BaseHandler
	lessonService services.LessonService
	quizService   services.QuizService
}

func NewLessonHandler(
	lessonService services.LessonService,
	quizService services.QuizService,
	logger utils.Logger,
) *LessonHandler {
	return &LessonHandler{
		BaseHandler:   NewBaseHandler(logger),
		lessonService: lessonService,
		quizService:   quizService,
	}
}

// CreateLesson creates a new lesson in a course
// @Summary Create lesson
// @Tags lessons
// @Accept json
// @Produce json
// @Param lesson body services.CreateLessonRequest true "Lesson data"
// @Success 201 {object} models.Lesson
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /lessons [post]
func (h *LessonHandler) CreateLesson(c *gin.Context) {
	var req services.CreateLessonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	lesson, err := h.lessonService.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, lesson)
}

// GetLesson retrieves a lesson by ID
func (h *LessonHandler) GetLesson(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	lesson, err := h.lessonService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, lesson)
}

// UpdateLesson updates an existing lesson
func (h *LessonHandler) UpdateLesson(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	var req services.UpdateLessonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	lesson, err := h.lessonService.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, lesson)
}

// DeleteLesson deletes a lesson
func (h *LessonHandler) DeleteLesson(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	h.LogRequest(c, "Deleting lesson", "lesson_id", id)

	if err := h.lessonService.Delete(c.Request.Context(), id); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Message: "Lesson deleted"})
}

// GetLessonQuizzes lists the quizzes of a lesson. Answer keys are included
// only when includeAnswers=true, which is reserved for authoring tools.
// @Summary List lesson quizzes
// @Tags lessons
// @Produce json
// @Param id path uint true "Lesson ID"
// @Param includeAnswers query bool false "Include answer keys"
// @Success 200 {object} SuccessResponse
// @Router /lessons/{id}/quizzes [get]
func (h *LessonHandler) GetLessonQuizzes(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	quizzes, err := h.quizService.GetByLesson(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	if c.Query("includeAnswers") == "true" {
		c.JSON(http.StatusOK, quizzes)
		return
	}

	public := make([]interface{}, len(quizzes))
	for i, quiz := range quizzes {
		public[i] = quiz.Public()
	}
	c.JSON(http.StatusOK, public)
}
