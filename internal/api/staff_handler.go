package api

import (
	"errors"
	"fmt"
	"net/http"

	"fitclub/fitness-club/internal/service"

	"github.com/gin-gonic/gin"
)

// StaffHandler holds the staff service dependency.
type StaffHandler struct {
	staffService service.StaffService
}

// NewStaffHandler creates a new StaffHandler.
func NewStaffHandler(staffService service.StaffService) *StaffHandler {
	return &StaffHandler{staffService: staffService}
}

type CredentialUploadRequest struct {
	FileName    string `json:"fileName" binding:"required"`
	ContentType string `json:"contentType" binding:"required"`
}

// GetMyUsers lists the members assigned to the calling staff member.
func (h *StaffHandler) GetMyUsers(c *gin.Context) {
	staffID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}
	role, err := getUserRoleFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user role from token")
		return
	}

	members, err := h.staffService.AssignedMembers(c.Request.Context(), staffID, role)
	if err != nil {
		if errors.Is(err, service.ErrInvalidStaffRole) {
			abortWithError(c, http.StatusBadRequest, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, err.Error())
		}
		return
	}

	c.JSON(http.StatusOK, members)
}

// RequestCredentialUpload issues a presigned PUT URL for a credential
// document. The returned object key goes into the register or resubmit
// payload as credentialFile.
func (h *StaffHandler) RequestCredentialUpload(c *gin.Context) {
	var req CredentialUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	upload, err := h.staffService.CredentialUploadURL(c.Request.Context(), req.FileName, req.ContentType)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, err.Error())
		return
	}

	c.JSON(http.StatusOK, upload)
}
