// File: harmony/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"harmony/config"
	"harmony/cron"
	"harmony/database"
	accountRepoPkg "harmony/database/repository/account"
	patientRepoPkg "harmony/database/repository/patient"
	sessionRepoPkg "harmony/database/repository/session"
	therapistRepoPkg "harmony/database/repository/therapist"
	"harmony/handlers"
	"harmony/middleware"
	"harmony/routes"
	"harmony/services/notification"
	"harmony/services/patient"
	"harmony/services/scheduling"
	"harmony/services/session"
	"harmony/services/therapist"
	"harmony/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()
	utils.StartHealthMonitor(utils.GetCacheClient(), database.MongoClient)

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	sessionsRepo := sessionRepoPkg.NewMongoSessionRepo()
	patientsRepo := patientRepoPkg.NewMongoPatientRepo()
	therapistsRepo := therapistRepoPkg.NewMongoTherapistRepo()
	accountsRepo := accountRepoPkg.NewMongoAccountRepo()

	if err := sessionsRepo.EnsureIndexes(context.Background()); err != nil {
		logger.Sugar().Fatalf("main: failed to create session indexes: %v", err)
	}

	// services.
	smsProvider := notification.NewAfricasTalkingSMSProvider(
		config.AppConfig.AfricasTalkingAPIKey,
		config.AppConfig.AfricasTalkingUser,
		config.AppConfig.AfricasTalkingSender,
	)
	emailProvider := notification.NewSendGridEmailProvider(
		config.AppConfig.SendgridAPIKey,
		config.AppConfig.EmailFrom,
		config.AppConfig.EmailFromName,
	)
	notifySvc := notification.NewDefaultNotificationService(
		smsProvider,
		emailProvider,
		time.Duration(config.AppConfig.NotifyTimeoutSeconds)*time.Second,
	)

	reminderScheduler := cron.NewReminderScheduler()

	engine := &scheduling.DefaultSchedulingEngine{
		Sessions:    sessionsRepo,
		Patients:    patientsRepo,
		Therapists:  therapistsRepo,
		Notifier:    notifySvc,
		Reminders:   reminderScheduler,
		Granularity: config.AppConfig.SlotGranularityMinutes,
	}

	patientSvc := patient.NewDefaultPatientService(patientsRepo)
	therapistSvc := therapist.NewDefaultTherapistService(therapistsRepo)
	sessionSvc := session.NewDefaultSessionService(sessionsRepo, patientsRepo, therapistsRepo, notifySvc)

	// Background reminder worker.
	cron.InitReminderWorker(sessionSvc)

	// handlers.
	bookingHandler := handlers.NewBookingHandler(engine, utils.GetCacheClient(), logger)
	sessionHandler := handlers.NewSessionHandler(sessionSvc)
	patientHandler := handlers.NewPatientHandler(patientSvc)
	therapistHandler := handlers.NewTherapistHandler(therapistSvc)
	authHandler := handlers.NewAuthHandler(accountsRepo)

	handlerBundle := &handlers.HandlerBundle{
		// Auth endpoints.
		RegisterChurchHandler: authHandler.RegisterChurch,
		LoginChurchHandler:    authHandler.LoginChurch,

		// Patient endpoints.
		CreatePatientHandler: patientHandler.CreatePatient,
		GetPatientHandler:    patientHandler.GetPatient,
		UpdatePatientHandler: patientHandler.UpdatePatient,
		DeletePatientHandler: patientHandler.DeletePatient,
		ListPatientsHandler:  patientHandler.ListPatients,

		// Therapist endpoints.
		CreateTherapistHandler: therapistHandler.CreateTherapist,
		GetTherapistHandler:    therapistHandler.GetTherapist,
		UpdateTherapistHandler: therapistHandler.UpdateTherapist,
		DeleteTherapistHandler: therapistHandler.DeleteTherapist,
		ListTherapistsHandler:  therapistHandler.ListTherapists,

		// Scheduling endpoints.
		GetAvailableSlotsHandler: bookingHandler.GetAvailableSlots,
		BookSessionHandler:       bookingHandler.BookSession,

		// Session endpoints.
		ListSessionsHandler:        sessionHandler.ListSessions,
		GetSessionHandler:          sessionHandler.GetSession,
		CancelSessionHandler:       sessionHandler.CancelSession,
		CompleteSessionHandler:     sessionHandler.CompleteSession,
		ResendNotificationsHandler: sessionHandler.ResendNotifications,
	}

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
