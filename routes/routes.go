package routes

import (
	"net/http"
	"time"

	"harmony/handlers"
	"harmony/middleware"
	"harmony/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterAuthRoutes registers church account endpoints.
func RegisterAuthRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/auth")
	{
		api.POST("/register", hb.RegisterChurchHandler)
		api.POST("/login", hb.LoginChurchHandler)
	}
}

// RegisterPatientRoutes registers patient profile endpoints.
func RegisterPatientRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/patients")
	{
		api.Use(middleware.JWTAuthMiddleware())
		api.POST("", hb.CreatePatientHandler)
		api.GET("", hb.ListPatientsHandler)
		api.GET("/:id", hb.GetPatientHandler)
		api.PUT("/:id", hb.UpdatePatientHandler)
		api.DELETE("/:id", hb.DeletePatientHandler)
	}
}

// RegisterTherapistRoutes registers therapist profile endpoints.
func RegisterTherapistRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/therapists")
	{
		api.Use(middleware.JWTAuthMiddleware())
		api.POST("", hb.CreateTherapistHandler)
		api.GET("", hb.ListTherapistsHandler)
		api.GET("/:id", hb.GetTherapistHandler)
		api.PUT("/:id", hb.UpdateTherapistHandler)
		api.DELETE("/:id", hb.DeleteTherapistHandler)
	}
}

// RegisterSchedulingRoutes registers slot listing and booking endpoints.
func RegisterSchedulingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api")
	{
		api.Use(middleware.JWTAuthMiddleware())
		api.GET("/slots", hb.GetAvailableSlotsHandler)
		api.POST("/sessions", hb.BookSessionHandler)
		api.GET("/sessions", hb.ListSessionsHandler)
		api.GET("/sessions/:id", hb.GetSessionHandler)
		api.POST("/sessions/:id/cancel", hb.CancelSessionHandler)
		api.POST("/sessions/:id/complete", hb.CompleteSessionHandler)
		api.POST("/notifications/session", hb.ResendNotificationsHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "health": utils.GetHealthStatus()})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterAuthRoutes(r, hb)
	RegisterPatientRoutes(r, hb)
	RegisterTherapistRoutes(r, hb)
	RegisterSchedulingRoutes(r, hb)
	RegisterHealthRoute(r)
}
