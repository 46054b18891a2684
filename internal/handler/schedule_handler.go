package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"taskboard/internal/service/scheduling"
)

type ScheduleHandler struct {
	svc    *scheduling.Service
	logger *zap.Logger
}

func NewScheduleHandler(svc *scheduling.Service, logger *zap.Logger) *ScheduleHandler {
	return &ScheduleHandler{svc: svc, logger: logger}
}

// Estimate returns the schedule estimate for a candidate task. Unknown or
// absent reference IDs produce an estimate with null fields, which the UI
// renders as "--", so a half-filled creation form still gets a response.
func (h *ScheduleHandler) Estimate(c *gin.Context) {
	projectID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid project id"})
		return
	}

	taskTypeID := intQuery(c, "task_type_id")
	priorityID := intQuery(c, "priority_level_id")
	complexityID := intQuery(c, "complexity_level_id")

	est, err := h.svc.EstimateFor(c.Request.Context(), projectID, taskTypeID, priorityID, complexityID)
	if err != nil {
		h.logger.Error("Estimate: failed to compute",
			zap.Int("project_id", projectID),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute estimate"})
		return
	}

	c.JSON(http.StatusOK, est)
}

// CreateTask creates a queued task and returns it along with its display
// queue position and estimate.
func (h *ScheduleHandler) CreateTask(c *gin.Context) {
	projectID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid project id"})
		return
	}

	var in scheduling.CreateTaskInput
	if err := c.ShouldBindJSON(&in); err != nil {
		h.logger.Warn("CreateTask: invalid request body", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	in.ProjectID = projectID
	if in.TaskCode == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "task_code required"})
		return
	}

	task, est, displayPos, err := h.svc.CreateTask(c.Request.Context(), in)
	if err != nil {
		h.logger.Error("CreateTask: failed",
			zap.Int("project_id", projectID),
			zap.String("task_code", in.TaskCode),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create task"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"task":             task,
		"estimate":         est,
		"display_position": displayPos,
	})
}

// Lanes returns the project's lane allocation for timeline display.
func (h *ScheduleHandler) Lanes(c *gin.Context) {
	projectID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid project id"})
		return
	}

	lanes, err := h.svc.Lanes(c.Request.Context(), projectID)
	if err != nil {
		h.logger.Error("Lanes: failed to allocate",
			zap.Int("project_id", projectID),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to allocate lanes"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"lanes": lanes})
}

// intQuery parses an integer query parameter, returning 0 when absent or
// malformed. Zero never matches a reference row, so the estimate comes
// back empty instead of erroring.
func intQuery(c *gin.Context, name string) int {
	v, err := strconv.Atoi(c.Query(name))
	if err != nil {
		return 0
	}
	return v
}
