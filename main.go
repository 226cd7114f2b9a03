// File: salonbook/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v76"

	"salonbook/config"
	"salonbook/cron"
	"salonbook/database"
	appointmentRepo "salonbook/database/repository/appointment"
	calendarRepo "salonbook/database/repository/calendar"
	directoryRepo "salonbook/database/repository/directory"
	rewardRepo "salonbook/database/repository/reward"
	"salonbook/handlers"
	"salonbook/middleware"
	"salonbook/routes"
	"salonbook/services/booking"
	"salonbook/services/notification"
	"salonbook/utils"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()
	utils.InitEventClient()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())
	stripe.Key = config.AppConfig.StripeKey

	// repositories.
	calendar := calendarRepo.NewMongoCalendarIndex()
	if err := calendar.EnsureIndexes(); err != nil {
		logger.Sugar().Fatalf("main: failed to ensure calendar indexes: %v", err)
	}
	appointments := appointmentRepo.NewMongoAppointmentRepo()
	directory := directoryRepo.NewMongoDirectory()
	rewards := rewardRepo.NewMongoRewardLedger()

	// services.
	resolver := &booking.SlotResolver{
		Calendar:  calendar,
		Directory: directory,
		Cache:     utils.GetCacheClient(),
		Hours: booking.BusinessHours{
			OpenMinute:  config.AppConfig.OpenMinute,
			CloseMinute: config.AppConfig.CloseMinute,
			Granularity: config.AppConfig.SlotGranularity,
		},
	}

	emitter := notification.NewRedisEventEmitter(utils.GetEventClient(), logger)
	gateway := booking.NewPaymentGateway(logger)

	bookingService := &booking.DefaultBookingService{
		Calendar:     calendar,
		Appointments: appointments,
		Rewards:      rewards,
		Directory:    directory,
		Gateway:      gateway,
		Emitter:      emitter,
		Resolver:     resolver,
		Policy: booking.CancellationPolicy{
			FullRefundHours:    config.AppConfig.FullRefundHours,
			PartialRefundHours: config.AppConfig.PartialRefundHours,
			PartialRefundPct:   config.AppConfig.PartialRefundPct,
		},
		PendingGrace:   time.Duration(config.AppConfig.PendingGraceMinutes) * time.Minute,
		PaymentTimeout: time.Duration(config.AppConfig.PaymentTimeoutSeconds) * time.Second,
	}

	bookingHandler := handlers.NewBookingHandler(bookingService, logger)

	// Register routes.
	routes.RegisterRoutes(router, bookingHandler)

	// Background sweep for stale pending appointments.
	cron.InitExpiryWorker(bookingService)

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
