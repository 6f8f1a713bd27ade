package routes

import (
	"net/http"
	"time"

	userRepo "github.com/Pratik-911/skillswap/database/repository/user"
	"github.com/Pratik-911/skillswap/handlers"
	"github.com/Pratik-911/skillswap/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

// HandlerBundle groups the handlers and the dependencies the route middleware
// needs.
type HandlerBundle struct {
	UserRepo  userRepo.UserRepository
	AuthCache *redis.Client

	Users        *handlers.UserHandler
	Matches      *handlers.MatchHandler
	Appointments *handlers.AppointmentHandler
	Messages     *handlers.MessageHandler
}

// RegisterUserRoutes registers user endpoints.
func RegisterUserRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/users")
	{
		api.POST("/register", hb.Users.RegisterHandler)
		api.POST("/login", hb.Users.LoginHandler)

		// Protected routes (Require Authentication)
		api.Use(middleware.JWTAuthUserMiddleware(hb.UserRepo, hb.AuthCache))
		api.GET("/profile", hb.Users.GetProfileHandler)
		api.PUT("/profile", hb.Users.UpdateProfileHandler)
		api.GET("/search", hb.Users.SearchHandler)
		api.DELETE("/revoke", hb.Users.RevokeTokenHandler)
	}
}

// RegisterMatchRoutes registers the skill-matching endpoints.
func RegisterMatchRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/matches")
	{
		api.Use(middleware.JWTAuthUserMiddleware(hb.UserRepo, hb.AuthCache))
		api.GET("", hb.Matches.FindMatchesHandler)
		api.GET("/mutual", hb.Matches.FindMutualMatchesHandler)
	}
}

// RegisterAppointmentRoutes registers the appointment lifecycle endpoints.
func RegisterAppointmentRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/appointments")
	{
		api.Use(middleware.JWTAuthUserMiddleware(hb.UserRepo, hb.AuthCache))
		api.GET("", hb.Appointments.ListHandler)
		api.POST("", hb.Appointments.CreateHandler)
		api.GET("/:id", hb.Appointments.GetHandler)
		api.PUT("/:id/status", hb.Appointments.UpdateStatusHandler)
		api.PUT("/:id/feedback", hb.Appointments.SubmitFeedbackHandler)
	}
}

// RegisterMessageRoutes registers the direct-messaging endpoints.
func RegisterMessageRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/messages")
	{
		api.Use(middleware.JWTAuthUserMiddleware(hb.UserRepo, hb.AuthCache))
		api.GET("/conversations", hb.Messages.ListConversationsHandler)
		api.GET("/:userId", hb.Messages.GetConversationHandler)
		api.POST("/:userId", hb.Messages.SendHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Hi, I'm SkillSwap"})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *HandlerBundle) {
	// Setup global middleware (e.g., CORS) here.
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterUserRoutes(r, hb)
	RegisterMatchRoutes(r, hb)
	RegisterAppointmentRoutes(r, hb)
	RegisterMessageRoutes(r, hb)
	RegisterHealthRoute(r)
}
