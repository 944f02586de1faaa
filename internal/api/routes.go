package api

import (
	"net/http"

	"fitzone/gym-backend/internal/domain"
	"fitzone/gym-backend/internal/service"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(
	router *gin.Engine,
	jwtSecret string,
	authService service.AuthService,
	membershipService service.MembershipService,
	trainerService service.TrainerService,
	sessionService service.SessionService,
	progressService service.ProgressService,
) {

	authHandler := NewAuthHandler(authService)
	membershipHandler := NewMembershipHandler(membershipService)
	trainerHandler := NewTrainerHandler(trainerService)
	sessionHandler := NewSessionHandler(sessionService)
	progressHandler := NewProgressHandler(progressService)

	authMiddleware := AuthMiddleware(jwtSecret)
	adminOnly := RoleMiddleware(domain.RoleAdmin)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	apiGroup := router.Group("/api")
	{
		// --- Admin panel ---
		adminGroup := apiGroup.Group("/admin")
		{
			adminGroup.POST("/login", authHandler.Login)

			adminProtected := adminGroup.Group("")
			adminProtected.Use(authMiddleware, adminOnly)
			{
				adminProtected.GET("/memberships", membershipHandler.AdminList)
				adminProtected.GET("/stats", membershipHandler.Stats)
				adminProtected.PATCH("/memberships/:id/status", membershipHandler.UpdateStatus)
				adminProtected.DELETE("/memberships/:id", membershipHandler.Delete)
			}
		}

		// --- Public membership routes ---
		// The listing, detail and status routes here deliberately mirror the
		// frontend the API shipped with: they carry no auth. Lock them down
		// before exposing this API beyond a trusted network.
		membershipGroup := apiGroup.Group("/memberships")
		{
			membershipGroup.POST("", membershipHandler.Submit)
			membershipGroup.GET("", membershipHandler.List)
			membershipGroup.GET("/:id", membershipHandler.Get)
			membershipGroup.PATCH("/:id/status", membershipHandler.UpdateStatus)
		}

		// --- Trainers ---
		trainerGroup := apiGroup.Group("/trainers")
		{
			trainerGroup.GET("", trainerHandler.List)
			trainerGroup.GET("/:id", trainerHandler.Get)
			trainerGroup.GET("/:id/schedule", trainerHandler.GetSchedule)
			trainerGroup.GET("/:id/profile-image", trainerHandler.ProfileImage)

			trainerGroup.POST("", authMiddleware, adminOnly, trainerHandler.Create)
			trainerGroup.PUT("/:id", authMiddleware, adminOnly, trainerHandler.Update)
			trainerGroup.DELETE("/:id", authMiddleware, adminOnly, trainerHandler.Delete)
			trainerGroup.PUT("/:id/schedule", authMiddleware, adminOnly, trainerHandler.SetSchedule)
			trainerGroup.POST("/:id/profile-image/upload-url", authMiddleware, adminOnly, trainerHandler.ProfileImageUploadURL)

			trainerGroup.POST("/:id/reviews", authMiddleware, trainerHandler.AddReview)
		}

		// --- Class sessions ---
		sessionGroup := apiGroup.Group("/sessions")
		{
			sessionGroup.GET("", sessionHandler.List)
			sessionGroup.GET("/:id", sessionHandler.Get)

			sessionGroup.POST("", authMiddleware, adminOnly, sessionHandler.Create)
			sessionGroup.PUT("/:id", authMiddleware, adminOnly, sessionHandler.Update)
			sessionGroup.DELETE("/:id", authMiddleware, adminOnly, sessionHandler.Delete)

			sessionGroup.POST("/:id/enroll", authMiddleware, sessionHandler.Enroll)
			sessionGroup.POST("/:id/unenroll", authMiddleware, sessionHandler.Unenroll)
		}

		// --- Progress tracking ---
		progressGroup := apiGroup.Group("/progress")
		progressGroup.Use(authMiddleware)
		{
			progressGroup.POST("", progressHandler.Create)
			progressGroup.GET("", progressHandler.List)
			progressGroup.GET("/stats", progressHandler.Stats)
			progressGroup.GET("/:id", progressHandler.Get)
			progressGroup.PUT("/:id", progressHandler.Update)
			progressGroup.DELETE("/:id", progressHandler.Delete)
		}
	}
}
