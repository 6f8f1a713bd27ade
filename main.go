package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Pratik-911/skillswap/config"
	"github.com/Pratik-911/skillswap/database"
	appointmentRepoPkg "github.com/Pratik-911/skillswap/database/repository/appointment"
	messageRepoPkg "github.com/Pratik-911/skillswap/database/repository/message"
	userRepoPkg "github.com/Pratik-911/skillswap/database/repository/user"
	"github.com/Pratik-911/skillswap/handlers"
	"github.com/Pratik-911/skillswap/middleware"
	"github.com/Pratik-911/skillswap/routes"
	"github.com/Pratik-911/skillswap/services/appointment"
	"github.com/Pratik-911/skillswap/services/matching"
	"github.com/Pratik-911/skillswap/services/message"
	"github.com/Pratik-911/skillswap/services/user"
	"github.com/Pratik-911/skillswap/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	defer database.CloseDB()
	utils.InitRedis()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	userRepo := userRepoPkg.NewMongoUserRepo()
	apptRepo := appointmentRepoPkg.NewMongoAppointmentRepo()
	msgRepo := messageRepoPkg.NewMongoMessageRepo()

	// services.
	userService := &user.DefaultUserService{
		Repo:      userRepo,
		AuthCache: utils.GetAuthCacheClient(),
	}

	matchingService := &matching.DefaultMatchingService{
		UserRepo: userRepo,
		Cache:    utils.GetCacheClient(),
		CacheTTL: time.Duration(config.AppConfig.MatchCacheTTL) * time.Second,
	}

	aggregator := appointment.NewRatingAggregator(userRepo, apptRepo)
	appointmentService := appointment.NewDefaultAppointmentService(apptRepo, userRepo, aggregator)

	messageService := &message.DefaultMessageService{
		Repo:     msgRepo,
		UserRepo: userRepo,
	}

	// Assemble the handler bundle.
	handlerBundle := &routes.HandlerBundle{
		UserRepo:  userRepo,
		AuthCache: utils.GetAuthCacheClient(),

		Users:        handlers.NewUserHandler(userService),
		Matches:      handlers.NewMatchHandler(matchingService),
		Appointments: handlers.NewAppointmentHandler(appointmentService),
		Messages:     handlers.NewMessageHandler(messageService),
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
