package handlers

import (
	"net/http"
	"strconv"

	"github.com/OpenCampus-2025/learning-service/internal/repositories"
	"github.com/OpenCampus-2025/learning-service/internal/services"
	"github.com/OpenCampus-2025/learning-service/internal/utils"
	"github.com/gin-gonic/gin"
)

type ProgressHandler struct {
	BaseHandler
	progressService services.ProgressService
}

func NewProgressHandler(progressService services.ProgressService, logger utils.Logger) *ProgressHandler {
	return &ProgressHandler{
		BaseHandler:     NewBaseHandler(logger),
		progressService: progressService,
	}
}

// UpsertProgress creates or updates the caller's progress on a lesson.
// Completing a lesson also refreshes the derived enrollment rollup.
// @Summary Upsert lesson progress
// @Tags progress
// @Accept json
// @Produce json
// @Param progress body services.UpsertProgressRequest true "Progress data"
// @Success 200 {object} models.UserProgress
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /progress [put]
func (h *ProgressHandler) UpsertProgress(c *gin.Context) {
	userID, ok := h.requireUserID(c)
	if !ok {
		return
	}

	var req services.UpsertProgressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	progress, err := h.progressService.Upsert(c.Request.Context(), userID, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, progress)
}

// GetProgress retrieves a progress record by ID
func (h *ProgressHandler) GetProgress(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	progress, err := h.progressService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, progress)
}

// GetLessonProgress returns the caller's progress on one lesson
func (h *ProgressHandler) GetLessonProgress(c *gin.Context) {
	lessonID := h.parseIDParam(c, "lesson_id")
	if lessonID == 0 {
		return
	}

	userID, ok := h.requireUserID(c)
	if !ok {
		return
	}

	progress, err := h.progressService.GetByUserAndLesson(c.Request.Context(), userID, lessonID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, progress)
}

// GetCourseProgress returns the caller's per-lesson progress across a course
// @Summary Get course progress
// @Tags progress
// @Produce json
// @Param course_id path uint true "Course ID"
// @Success 200 {array} models.UserProgress
// @Router /progress/courses/{course_id} [get]
func (h *ProgressHandler) GetCourseProgress(c *gin.Context) {
	courseID := h.parseIDParam(c, "course_id")
	if courseID == 0 {
		return
	}

	userID, ok := h.requireUserID(c)
	if !ok {
		return
	}

	records, err := h.progressService.GetByCourse(c.Request.Context(), userID, courseID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, records)
}

// ListProgress lists progress records with optional filters
func (h *ProgressHandler) ListProgress(c *gin.Context) {
	filters := h.parseProgressFilters(c)

	records, total, err := h.progressService.List(c.Request.Context(), filters)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, ListResponse{
		Data:  records,
		Total: total,
		Page:  filters.Offset/filters.Limit + 1,
		Size:  filters.Limit,
	})
}

// RecomputeEnrollment forces the enrollment rollup recompute for the caller
// and a course. Normally this runs automatically on lesson completion; the
// endpoint exists to repair rollups left stale by a recompute failure.
func (h *ProgressHandler) RecomputeEnrollment(c *gin.Context) {
	courseID := h.parseIDParam(c, "course_id")
	if courseID == 0 {
		return
	}

	userID, ok := h.requireUserID(c)
	if !ok {
		return
	}

	if err := h.progressService.RecomputeEnrollment(c.Request.Context(), userID, courseID); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Message: "Enrollment progress recomputed"})
}

func (h *ProgressHandler) parseProgressFilters(c *gin.Context) repositories.ProgressFilters {
	page := h.parseIntQuery(c, "page", 1)
	size := h.parseIntQuery(c, "size", 10)
	if page < 1 {
		page = 1
	}
	if size < 1 || size > 100 {
		size = 10
	}

	filters := repositories.ProgressFilters{
		Limit:     size,
		Offset:    (page - 1) * size,
		SortBy:    c.Query("sort_by"),
		SortOrder: c.Query("sort_order"),
	}

	if idStr := c.Query("user_id"); idStr != "" {
		if id, err := strconv.ParseUint(idStr, 10, 32); err == nil {
			userID := uint(id)
			filters.UserID = &userID
		}
	}
	if idStr := c.Query("lesson_id"); idStr != "" {
		if id, err := strconv.ParseUint(idStr, 10, 32); err == nil {
			lessonID := uint(id)
			filters.LessonID = &lessonID
		}
	}
	if completedStr := c.Query("completed"); completedStr != "" {
		completed := completedStr == "true"
		filters.Completed = &completed
	}

	return filters
}
