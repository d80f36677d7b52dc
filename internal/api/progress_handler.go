package api

import (
	"errors"
	"fmt"
	"net/http"

	"fitclub/fitness-club/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProgressHandler holds the progress service dependency.
type ProgressHandler struct {
	progressService service.ProgressService
}

// NewProgressHandler creates a new ProgressHandler.
func NewProgressHandler(progressService service.ProgressService) *ProgressHandler {
	return &ProgressHandler{progressService: progressService}
}

type AddProgressRequest struct {
	Weight float64 `json:"weight" binding:"required,gt=0"`
	Notes  string  `json:"notes,omitempty"`
}

// AddProgress logs a new weight entry for the calling member.
func (h *ProgressHandler) AddProgress(c *gin.Context) {
	memberID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	var req AddProgressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	entry, err := h.progressService.Add(c.Request.Context(), memberID, req.Weight, req.Notes)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrInvalidWeight):
			abortWithError(c, http.StatusBadRequest, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, err.Error())
		}
		return
	}

	c.JSON(http.StatusCreated, entry)
}

// GetProgressHistory returns a member's log, oldest first. Self or any
// staff/admin role.
func (h *ProgressHandler) GetProgressHistory(c *gin.Context) {
	requesterID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}
	requesterRole, err := getUserRoleFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user role from token")
		return
	}

	memberID, err := primitive.ObjectIDFromHex(c.Param("userId"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid user ID format")
		return
	}

	history, err := h.progressService.History(c.Request.Context(), requesterID, requesterRole, memberID)
	if err != nil {
		if errors.Is(err, service.ErrHistoryAccessDenied) {
			abortWithError(c, http.StatusUnauthorized, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, err.Error())
		}
		return
	}

	c.JSON(http.StatusOK, history)
}
