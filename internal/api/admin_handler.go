package api

import (
	"errors"
	"fmt"
	"net/http"

	"fitclub/fitness-club/internal/domain"
	"fitclub/fitness-club/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AdminHandler holds the admin service dependency.
type AdminHandler struct {
	adminService service.AdminService
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(adminService service.AdminService) *AdminHandler {
	return &AdminHandler{adminService: adminService}
}

// --- Request Structs ---

type UpdateStatusRequest struct {
	Status domain.Status `json:"status" binding:"required,oneof=pending active inactive rejected"`
	Reason string        `json:"reason,omitempty"`
}

type UpdateCategoriesRequest struct {
	Categories []domain.Category `json:"categories" binding:"required"`
}

// --- Handler Methods ---

// GetPendingStaff lists staff applications awaiting review.
func (h *AdminHandler) GetPendingStaff(c *gin.Context) {
	staff, err := h.adminService.ListPendingStaff(c.Request.Context())
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.JSON(http.StatusOK, staff)
}

// GetActiveStaff lists approved staff, e.g. for category assignment.
func (h *AdminHandler) GetActiveStaff(c *gin.Context) {
	staff, err := h.adminService.ListActiveStaff(c.Request.Context())
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.JSON(http.StatusOK, staff)
}

// UpdateStaffStatus approves or rejects a staff application.
func (h *AdminHandler) UpdateStaffStatus(c *gin.Context) {
	adminID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	staffID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid staff ID format")
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	user, err := h.adminService.UpdateStaffStatus(c.Request.Context(), adminID, staffID, req.Status, req.Reason)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrNotStaff), errors.Is(err, service.ErrInvalidStatus):
			abortWithError(c, http.StatusBadRequest, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, err.Error())
		}
		return
	}

	c.JSON(http.StatusOK, MapUserToResponse(user))
}

// UpdateStaffCategories replaces the categories a staff member services.
func (h *AdminHandler) UpdateStaffCategories(c *gin.Context) {
	staffID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid staff ID format")
		return
	}

	var req UpdateCategoriesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	user, err := h.adminService.UpdateStaffCategories(c.Request.Context(), staffID, req.Categories)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrNotStaff), errors.Is(err, service.ErrInvalidCategory):
			abortWithError(c, http.StatusBadRequest, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, err.Error())
		}
		return
	}

	c.JSON(http.StatusOK, MapUserToResponse(user))
}

// GetAllUsers lists every user with assignment references resolved to names.
func (h *AdminHandler) GetAllUsers(c *gin.Context) {
	users, err := h.adminService.ListUsers(c.Request.Context())
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.JSON(http.StatusOK, users)
}

// DeleteUser removes a user, cleaning up member assignment references where
// the deleted user was a trainer or nutritionist.
func (h *AdminHandler) DeleteUser(c *gin.Context) {
	userID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid user ID format")
		return
	}

	if err := h.adminService.DeleteUser(c.Request.Context(), userID); err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, err.Error())
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User removed and relationships cleaned up"})
}

// GetCredentialURL returns a presigned download URL for a staff member's
// credential document.
func (h *AdminHandler) GetCredentialURL(c *gin.Context) {
	staffID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid staff ID format")
		return
	}

	url, err := h.adminService.CredentialDownloadURL(c.Request.Context(), staffID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrNotStaff), errors.Is(err, service.ErrNoCredentialFile):
			abortWithError(c, http.StatusBadRequest, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, err.Error())
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"downloadUrl": url})
}
