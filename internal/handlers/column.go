package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/thefankor/KanbanBoard/internal/constants"
	"github.com/thefankor/KanbanBoard/internal/dto"
	apierrors "github.com/thefankor/KanbanBoard/internal/errors"
	"github.com/thefankor/KanbanBoard/internal/middleware"
	"github.com/thefankor/KanbanBoard/internal/models"
	"github.com/thefankor/KanbanBoard/internal/services"
)

// ColumnHandler coordinates column HTTP handlers.
type ColumnHandler struct {
	columnService *services.ColumnService
}

// NewColumnHandler creates a new ColumnHandler.
func NewColumnHandler(columnService *services.ColumnService) *ColumnHandler {
	return &ColumnHandler{
		columnService: columnService,
	}
}

// CreateColumn adds a column to the project (admin or owner).
func (h *ColumnHandler) CreateColumn(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)
	member, ok := middleware.GetProjectMember(c)
	if !ok {
		apierrors.Forbidden(c, "Project access required")
		return
	}

	type CreateColumnRequest struct {
		Name     string `json:"name" binding:"required"`
		Position int    `json:"position"`
	}

	var req CreateColumnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	column, err := h.columnService.CreateColumn(services.CreateColumnInput{
		ProjectID: member.ProjectID,
		Name:      req.Name,
		Position:  req.Position,
		ActorID:   userID,
	})
	if err != nil {
		respondColumnError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToColumnDTO(*column))
}

// ListColumns returns the project's columns ordered by position.
func (h *ColumnHandler) ListColumns(c *gin.Context) {
	member, ok := middleware.GetProjectMember(c)
	if !ok {
		apierrors.Forbidden(c, "Project access required")
		return
	}

	columns, err := h.columnService.ListColumns(member.ProjectID)
	if err != nil {
		respondColumnError(c, err)
		return
	}

	columnDTOs := make([]dto.ColumnDTO, len(columns))
	for i, column := range columns {
		columnDTOs[i] = dto.ToColumnDTO(column)
	}

	c.JSON(http.StatusOK, gin.H{
		"columns": columnDTOs,
	})
}

// UpdateColumn updates a column's name and/or position.
func (h *ColumnHandler) UpdateColumn(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	columnInterface, exists := c.Get(constants.ContextKeyColumn)
	if !exists {
		apierrors.Forbidden(c, "Column access required")
		return
	}
	column := columnInterface.(models.Column)

	type UpdateColumnRequest struct {
		Name     *string `json:"name"`
		Position *int    `json:"position"`
	}

	var req UpdateColumnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	updated, err := h.columnService.UpdateColumn(column.ID, userID, services.UpdateColumnInput{
		Name:     req.Name,
		Position: req.Position,
	})
	if err != nil {
		respondColumnError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToColumnDTO(*updated))
}

// DeleteColumn removes a column together with its tasks.
func (h *ColumnHandler) DeleteColumn(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	columnInterface, exists := c.Get(constants.ContextKeyColumn)
	if !exists {
		apierrors.Forbidden(c, "Column access required")
		return
	}
	column := columnInterface.(models.Column)

	if err := h.columnService.DeleteColumn(column.ID, userID); err != nil {
		respondColumnError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func respondColumnError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidColumnName):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrColumnNotFound):
		apierrors.NotFound(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
