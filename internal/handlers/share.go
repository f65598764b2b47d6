package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/promanager/promanager-api/internal/dto"
	apierrors "github.com/promanager/promanager-api/internal/errors"
	"github.com/promanager/promanager-api/internal/middleware"
	"github.com/promanager/promanager-api/internal/services"
)

// ShareHandler serves the share-link generation and the public read view.
type ShareHandler struct {
	taskService *services.TaskService
}

// NewShareHandler creates a new ShareHandler.
func NewShareHandler(taskService *services.TaskService) *ShareHandler {
	return &ShareHandler{
		taskService: taskService,
	}
}

// GenerateShareLink returns the public URL for a task the caller owns. The
// URL carries no token and never expires; the task identifier is the only
// secret.
func (h *ShareHandler) GenerateShareLink(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	link, err := h.taskService.ShareLink(c.Param("id"), userID)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"shared_link": link})
}

// ViewSharedTask serves the read-only projection of a shared task. This is
// the only route in the system that requires no identity; the response never
// carries creator or assignee data.
func (h *ShareHandler) ViewSharedTask(c *gin.Context) {
	task, err := h.taskService.ViewShared(c.Param("id"))
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToSharedTaskDTO(*task))
}
