package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/thefankor/KanbanBoard/internal/dto"
	apierrors "github.com/thefankor/KanbanBoard/internal/errors"
	"github.com/thefankor/KanbanBoard/internal/middleware"
	"github.com/thefankor/KanbanBoard/internal/services"
	"github.com/thefankor/KanbanBoard/internal/utils"
)

// LogHandler serves read access to the audit log.
type LogHandler struct {
	logService *services.LogService
}

// NewLogHandler creates a new LogHandler.
func NewLogHandler(logService *services.LogService) *LogHandler {
	return &LogHandler{
		logService: logService,
	}
}

// ListByProject returns a project's audit entries, newest first, paginated.
func (h *LogHandler) ListByProject(c *gin.Context) {
	member, ok := middleware.GetProjectMember(c)
	if !ok {
		apierrors.Forbidden(c, "Project access required")
		return
	}

	params := utils.GetPaginationParams(c)

	logs, total, err := h.logService.ListByProject(member.ProjectID, params)
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch logs")
		return
	}

	c.JSON(http.StatusOK, dto.ToLogListResponse(logs, params, total))
}

// ListByTask returns a task's audit entries, newest first.
func (h *LogHandler) ListByTask(c *gin.Context) {
	task, ok := middleware.GetTask(c)
	if !ok {
		apierrors.Forbidden(c, "Task access required")
		return
	}

	logs, err := h.logService.ListByTask(task.ID)
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch logs")
		return
	}

	logDTOs := make([]dto.ProjectLogDTO, len(logs))
	for i, entry := range logs {
		logDTOs[i] = dto.ToProjectLogDTO(entry)
	}

	c.JSON(http.StatusOK, gin.H{
		"logs": logDTOs,
	})
}
