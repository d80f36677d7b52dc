package api

import (
	"net/http"

	"fitclub/fitness-club/internal/domain"
	"fitclub/fitness-club/internal/service"

	"github.com/gin-gonic/gin"
)

// SetupRoutes wires all handlers onto the router.
func SetupRoutes(
	router *gin.Engine,
	jwtSecret string,
	authService service.AuthService,
	adminService service.AdminService,
	staffService service.StaffService,
	planService service.PlanService,
	progressService service.ProgressService,
	messageService service.MessageService,
) {
	authHandler := NewAuthHandler(authService)
	adminHandler := NewAdminHandler(adminService)
	staffHandler := NewStaffHandler(staffService)
	planHandler := NewPlanHandler(planService)
	progressHandler := NewProgressHandler(progressService)
	messageHandler := NewMessageHandler(messageService)

	authMiddleware := AuthMiddleware(jwtSecret)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	apiV1 := router.Group("/api/v1")

	authGroup := apiV1.Group("/auth")
	{
		authGroup.POST("/register", authHandler.Register)
		authGroup.POST("/login", authHandler.Login)
	}

	protected := apiV1.Group("")
	protected.Use(authMiddleware)
	{
		protected.GET("/auth/profile", authHandler.Profile)
		protected.PUT("/auth/resubmit", authHandler.Resubmit)

		// Credential documents go straight to object storage. Pending and
		// rejected staff can log in, so this sits outside the role-gated
		// staff group to keep the resubmission flow open to them.
		protected.POST("/uploads/credential", staffHandler.RequestCredentialUpload)

		// --- Admin ---
		adminGroup := protected.Group("/admin")
		adminGroup.Use(RoleMiddleware(domain.RoleAdmin))
		{
			adminGroup.GET("/pending-staff", adminHandler.GetPendingStaff)
			adminGroup.GET("/staff", adminHandler.GetActiveStaff)
			adminGroup.PUT("/staff/:id/status", adminHandler.UpdateStaffStatus)
			adminGroup.PUT("/staff/:id/categories", adminHandler.UpdateStaffCategories)
			adminGroup.GET("/staff/:id/credential-url", adminHandler.GetCredentialURL)
			adminGroup.GET("/users", adminHandler.GetAllUsers)
			adminGroup.DELETE("/users/:id", adminHandler.DeleteUser)
		}

		// --- Staff ---
		staffGroup := protected.Group("/staff")
		staffGroup.Use(StaffRoleMiddleware())
		{
			staffGroup.GET("/my-users", staffHandler.GetMyUsers)
		}

		// --- Plans ---
		planGroup := protected.Group("/plans")
		{
			planGroup.POST("", StaffRoleMiddleware(), planHandler.CreatePlan)
			planGroup.GET("/my-plans", RoleMiddleware(domain.RoleMember), planHandler.GetMyPlans)
			planGroup.GET("/created-plans", StaffRoleMiddleware(), planHandler.GetCreatedPlans)
			planGroup.GET("/user/:userId", StaffRoleMiddleware(), planHandler.GetMemberPlans)
			planGroup.PUT("/:id", StaffRoleMiddleware(), planHandler.UpdatePlan)
			planGroup.DELETE("/:id", StaffRoleMiddleware(), planHandler.DeletePlan)
		}

		// --- Progress ---
		progressGroup := protected.Group("/progress")
		{
			progressGroup.POST("", RoleMiddleware(domain.RoleMember), progressHandler.AddProgress)
			progressGroup.GET("/:userId", progressHandler.GetProgressHistory)
		}

		// --- Messages ---
		messageGroup := protected.Group("/messages")
		{
			messageGroup.POST("", messageHandler.SendMessage)
			messageGroup.GET("/:userId", messageHandler.GetConversation)
		}
	}
}
