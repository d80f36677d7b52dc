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

// PlanHandler holds the plan service dependency.
type PlanHandler struct {
	planService service.PlanService
}

// NewPlanHandler creates a new PlanHandler.
func NewPlanHandler(planService service.PlanService) *PlanHandler {
	return &PlanHandler{planService: planService}
}

// --- Request Structs ---

type CreatePlanRequest struct {
	AssignedTo   string          `json:"assignedTo" binding:"required"`
	Type         domain.PlanType `json:"type" binding:"required,oneof=workout diet medical"`
	Title        string          `json:"title" binding:"required"`
	Week         int             `json:"week" binding:"required,gt=0"`
	Instructions string          `json:"instructions" binding:"required"`
}

// UpdatePlanRequest accepts only the mutable plan fields. Week, type, and
// assignee sent here are ignored rather than rejected.
type UpdatePlanRequest struct {
	Title        string `json:"title,omitempty"`
	Instructions string `json:"instructions,omitempty"`
}

// --- Handler Methods ---

// CreatePlan assigns a new weekly plan to a member.
func (h *PlanHandler) CreatePlan(c *gin.Context) {
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

	var req CreatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	assignedTo, err := primitive.ObjectIDFromHex(req.AssignedTo)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid member ID format")
		return
	}

	plan, err := h.planService.Create(c.Request.Context(), staffID, role, service.CreatePlanInput{
		AssignedTo:   assignedTo,
		Type:         req.Type,
		Title:        req.Title,
		Week:         req.Week,
		Instructions: req.Instructions,
	})
	if err != nil {
		var conflict *service.PlanConflictError
		switch {
		case errors.As(err, &conflict):
			abortWithError(c, http.StatusBadRequest, conflict.Error())
		case errors.Is(err, service.ErrInvalidPlan), errors.Is(err, service.ErrInvalidStaffRole):
			abortWithError(c, http.StatusBadRequest, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, err.Error())
		}
		return
	}

	c.JSON(http.StatusCreated, plan)
}

// GetMyPlans returns the calling member's active plans.
func (h *PlanHandler) GetMyPlans(c *gin.Context) {
	memberID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	plans, err := h.planService.MyPlans(c.Request.Context(), memberID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.JSON(http.StatusOK, plans)
}

// GetCreatedPlans returns the plans authored by the calling staff member.
func (h *PlanHandler) GetCreatedPlans(c *gin.Context) {
	staffID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	plans, err := h.planService.CreatedPlans(c.Request.Context(), staffID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.JSON(http.StatusOK, plans)
}

// GetMemberPlans is the staff view of a member's plans, no status filter.
func (h *PlanHandler) GetMemberPlans(c *gin.Context) {
	memberID, err := primitive.ObjectIDFromHex(c.Param("userId"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid member ID format")
		return
	}

	plans, err := h.planService.MemberPlans(c.Request.Context(), memberID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.JSON(http.StatusOK, plans)
}

// UpdatePlan edits a plan's title/instructions. Creator only.
func (h *PlanHandler) UpdatePlan(c *gin.Context) {
	staffID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	planID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid plan ID format")
		return
	}

	var req UpdatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	plan, err := h.planService.Update(c.Request.Context(), staffID, planID, service.UpdatePlanInput{
		Title:        req.Title,
		Instructions: req.Instructions,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPlanNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrNotPlanCreator):
			abortWithError(c, http.StatusUnauthorized, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, err.Error())
		}
		return
	}

	c.JSON(http.StatusOK, plan)
}

// DeletePlan removes a plan. Creator only.
func (h *PlanHandler) DeletePlan(c *gin.Context) {
	staffID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	planID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid plan ID format")
		return
	}

	if err := h.planService.Delete(c.Request.Context(), staffID, planID); err != nil {
		switch {
		case errors.Is(err, service.ErrPlanNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrNotPlanCreator):
			abortWithError(c, http.StatusUnauthorized, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, err.Error())
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Plan removed"})
}
