package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"fitclub/fitness-club/internal/domain"
	"fitclub/fitness-club/internal/service"

	"github.com/gin-gonic/gin"
)

// AuthHandler holds the authentication service dependency.
type AuthHandler struct {
	authService service.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// --- Request/Response Structs ---

// RegisterRequest carries the role-tagged registration payload. Member and
// staff sections are validated by the service against the declared role.
type RegisterRequest struct {
	Name     string      `json:"name" binding:"required"`
	Email    string      `json:"email" binding:"required,email"`
	Password string      `json:"password" binding:"required,min=8"`
	Role     domain.Role `json:"role" binding:"required,oneof=member trainer nutritionist pharmacist"`
	Age      int         `json:"age,omitempty"`

	// Member section
	Height            float64 `json:"height,omitempty"` // meters
	Weight            float64 `json:"weight,omitempty"` // kg
	Goal              string  `json:"goal,omitempty"`
	MedicalConditions string  `json:"medicalConditions,omitempty"`

	// Staff section
	Phone               string `json:"phone,omitempty"`
	Specialization      string `json:"specialization,omitempty"`
	Experience          int    `json:"experience,omitempty"`
	Bio                 string `json:"bio,omitempty"`
	CertificationNumber string `json:"certificationNumber,omitempty"`
	CredentialFile      string `json:"credentialFile,omitempty"` // object key from the credential upload endpoint
}

// UserResponse excludes sensitive info like password hash
type UserResponse struct {
	ID                string            `json:"id"`
	Name              string            `json:"name"`
	Email             string            `json:"email"`
	Role              domain.Role       `json:"role"`
	Status            domain.Status     `json:"status,omitempty"`
	RejectionReason   string            `json:"rejectionReason,omitempty"`
	Age               int               `json:"age,omitempty"`
	Height            float64           `json:"height,omitempty"`
	Weight            float64           `json:"weight,omitempty"`
	BMI               float64           `json:"bmi,omitempty"`
	Category          domain.Category   `json:"category,omitempty"`
	Goal              string            `json:"goal,omitempty"`
	MedicalConditions string            `json:"medicalConditions,omitempty"`
	Specialization    string            `json:"specialization,omitempty"`
	Categories        []domain.Category `json:"assignedCategories,omitempty"`
	CreatedAt         time.Time         `json:"createdAt"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse returns the token along with the identity and the status
// fields a pending or rejected staff member needs to see.
type AuthResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

type ResubmitRequest struct {
	Phone               string `json:"phone,omitempty"`
	Specialization      string `json:"specialization,omitempty"`
	Experience          int    `json:"experience,omitempty"`
	Bio                 string `json:"bio,omitempty"`
	CertificationNumber string `json:"certificationNumber,omitempty"`
	CredentialFile      string `json:"credentialFile,omitempty"`
}

// MapUserToResponse converts a domain user to the API shape.
func MapUserToResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:                user.ID.Hex(),
		Name:              user.Name,
		Email:             user.Email,
		Role:              user.Role,
		Status:            user.Status,
		RejectionReason:   user.RejectionReason,
		Age:               user.Age,
		Height:            user.Height,
		Weight:            user.Weight,
		BMI:               user.BMI,
		Category:          user.Category,
		Goal:              user.Goal,
		MedicalConditions: user.MedicalConditions,
		Specialization:    user.Specialization,
		Categories:        user.AssignedCategories,
		CreatedAt:         user.CreatedAt,
	}
}

// --- Handler Methods ---

// Register creates a new member or staff account. Staff accounts start
// pending and wait for admin approval.
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	token, user, err := h.authService.Register(c.Request.Context(), service.RegisterInput{
		Name:                req.Name,
		Email:               req.Email,
		Password:            req.Password,
		Role:                req.Role,
		Age:                 req.Age,
		Height:              req.Height,
		Weight:              req.Weight,
		Goal:                req.Goal,
		MedicalConditions:   req.MedicalConditions,
		Phone:               req.Phone,
		Specialization:      req.Specialization,
		Experience:          req.Experience,
		Bio:                 req.Bio,
		CertificationNumber: req.CertificationNumber,
		CredentialFile:      req.CredentialFile,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserAlreadyExists):
			abortWithError(c, http.StatusConflict, err.Error())
		case errors.Is(err, service.ErrInvalidRegistration):
			abortWithError(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrHashingFailed), errors.Is(err, service.ErrTokenGeneration):
			abortWithError(c, http.StatusInternalServerError, "Could not process registration")
		default:
			abortWithError(c, http.StatusInternalServerError, err.Error())
		}
		return
	}

	c.JSON(http.StatusCreated, AuthResponse{Token: token, User: MapUserToResponse(user)})
}

// Login authenticates a user and returns a JWT token plus status fields.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	token, user, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAuthenticationFailed):
			abortWithError(c, http.StatusUnauthorized, err.Error())
		case errors.Is(err, service.ErrTokenGeneration):
			abortWithError(c, http.StatusInternalServerError, "Could not process login")
		default:
			abortWithError(c, http.StatusInternalServerError, err.Error())
		}
		return
	}

	c.JSON(http.StatusOK, AuthResponse{Token: token, User: MapUserToResponse(user)})
}

// Profile returns a fresh snapshot of the caller's own record.
func (h *AuthHandler) Profile(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	user, err := h.authService.Profile(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, err.Error())
		}
		return
	}

	c.JSON(http.StatusOK, MapUserToResponse(user))
}

// Resubmit lets a staff member revise and resubmit their application.
func (h *AuthHandler) Resubmit(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	var req ResubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	token, user, err := h.authService.Resubmit(c.Request.Context(), userID, service.ResubmitInput{
		Phone:               req.Phone,
		Specialization:      req.Specialization,
		Experience:          req.Experience,
		Bio:                 req.Bio,
		CertificationNumber: req.CertificationNumber,
		CredentialFile:      req.CredentialFile,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrNotStaff):
			abortWithError(c, http.StatusForbidden, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, err.Error())
		}
		return
	}

	c.JSON(http.StatusOK, AuthResponse{Token: token, User: MapUserToResponse(user)})
}
