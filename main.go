package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fixkaro/config"
	"fixkaro/cron"
	"fixkaro/database"
	catalogRepoPkg "fixkaro/database/repository/catalog"
	chatRepoPkg "fixkaro/database/repository/chat"
	jobRepoPkg "fixkaro/database/repository/job"
	ledgerRepoPkg "fixkaro/database/repository/ledger"
	notificationRepoPkg "fixkaro/database/repository/notification"
	profileRepoPkg "fixkaro/database/repository/profile"
	reviewRepoPkg "fixkaro/database/repository/review"
	settingsRepoPkg "fixkaro/database/repository/settings"
	"fixkaro/handlers"
	"fixkaro/realtime"
	"fixkaro/routes"
	"fixkaro/services/admin"
	"fixkaro/services/catalog"
	"fixkaro/services/chat"
	"fixkaro/services/job"
	"fixkaro/services/notification"
	"fixkaro/services/payment"
	"fixkaro/services/profile"
	"fixkaro/services/wallet"
	"fixkaro/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()
	utils.InitAuthCache()
	utils.FirebaseInit()

	storageService, err := utils.Cloudinary()
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize cloudinary storage service: %v", err)
	}

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())

	// repositories.
	profRepo := profileRepoPkg.NewMongoProfileRepo()
	jobsRepo := jobRepoPkg.NewMongoJobRepo()
	catRepo := catalogRepoPkg.NewMongoCatalogRepo()
	ledRepo := ledgerRepoPkg.NewMongoLedgerRepo()
	msgRepo := chatRepoPkg.NewMongoChatRepo()
	notifRepo := notificationRepoPkg.NewMongoNotificationRepo()
	revRepo := reviewRepoPkg.NewMongoReviewRepo()
	setRepo := settingsRepoPkg.NewMongoSettingsRepo()

	// realtime hub.
	hub := realtime.NewHub(logger)

	// services.
	notificationService, err := notification.NewDefaultNotificationService(notifRepo, profRepo, hub, logger)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize notification service: %v", err)
	}

	profileService := &profile.DefaultProfileService{
		Repo:         profRepo,
		ReviewRepo:   revRepo,
		SettingsRepo: setRepo,
		Logger:       logger,
	}

	catalogService := &catalog.DefaultCatalogService{
		Repo: catRepo,
	}

	jobService := &job.DefaultJobService{
		Repo:            jobsRepo,
		ProfileRepo:     profRepo,
		CatalogRepo:     catRepo,
		LedgerRepo:      ledRepo,
		NotificationSvc: notificationService,
		Hub:             hub,
		Logger:          logger,
	}

	paymentService := &payment.DefaultSettlementService{
		Gateway:    payment.NewRazorpayGateway(),
		JobRepo:    jobsRepo,
		LedgerRepo: ledRepo,
		Hub:        hub,
		Logger:     logger,
		Secret:     config.AppConfig.RazorpayKeySecret,
	}

	walletService := &wallet.DefaultWalletService{
		Repo:   ledRepo,
		Hub:    hub,
		Logger: logger,
	}

	chatService := &chat.DefaultChatService{
		Repo:    msgRepo,
		JobRepo: jobsRepo,
		Hub:     hub,
	}

	adminService := &admin.DefaultAdminService{
		ProfileRepo:  profRepo,
		JobRepo:      jobsRepo,
		SettingsRepo: setRepo,
		Logger:       logger,
	}

	// Background reminder worker for scheduled jobs.
	cron.InitReminderWorker(jobsRepo, notificationService)

	// Assemble the handler bundle and register routes.
	handlerBundle := handlers.NewHandlerBundle(handlers.BundleDeps{
		ProfileRepo:  profRepo,
		SettingsRepo: setRepo,
		JobRepo:      jobsRepo,

		ProfileSvc:      profileService,
		CatalogSvc:      catalogService,
		JobSvc:          jobService,
		PaymentSvc:      paymentService,
		WalletSvc:       walletService,
		ChatSvc:         chatService,
		NotificationSvc: notificationService,
		AdminSvc:        adminService,
		StorageSvc:      storageService,

		Hub:    hub,
		Logger: logger,
	})
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
