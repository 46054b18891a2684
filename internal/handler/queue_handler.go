package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"taskboard/internal/service/scheduling"
)

type QueueHandler struct {
	svc    *scheduling.Service
	logger *zap.Logger
}

func NewQueueHandler(svc *scheduling.Service, logger *zap.Logger) *QueueHandler {
	return &QueueHandler{svc: svc, logger: logger}
}

// Issues returns the advisory integrity issue list for a project's queue.
// A consistent queue returns an empty list with 200; issues never block
// anything.
func (h *QueueHandler) Issues(c *gin.Context) {
	projectID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid project id"})
		return
	}

	issues, err := h.svc.ValidateQueue(c.Request.Context(), projectID)
	if err != nil {
		h.logger.Error("Issues: validation failed",
			zap.Int("project_id", projectID),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to validate queue"})
		return
	}
	if issues == nil {
		issues = []string{}
	}

	c.JSON(http.StatusOK, gin.H{"issues": issues})
}

// Repair recomputes canonical queue positions and reports per-task
// outcomes. Partial failure still returns 200 with the failed subset named
// so the operator can retry just those.
func (h *QueueHandler) Repair(c *gin.Context) {
	projectID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid project id"})
		return
	}

	result, err := h.svc.RepairQueue(c.Request.Context(), projectID)
	if err != nil {
		h.logger.Error("Repair: failed",
			zap.Int("project_id", projectID),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to repair queue"})
		return
	}

	c.JSON(http.StatusOK, result)
}
