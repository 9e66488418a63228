package routes

import (
	"net/http"
	"time"

	"fixkaro/handlers"
	"fixkaro/middleware"
	"fixkaro/models"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterAuthRoutes registers registration, login, and logout.
func RegisterAuthRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/auth")
	{
		api.POST("/register", hb.RegisterHandler)
		api.POST("/login", hb.LoginHandler)
		api.POST("/logout", middleware.JWTAuthMiddleware(hb.ProfileRepo), hb.LogoutHandler)
	}
}

// RegisterProfileRoutes registers profile endpoints.
func RegisterProfileRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/profiles")
	{
		api.Use(middleware.JWTAuthMiddleware(hb.ProfileRepo))
		api.GET("/me", hb.GetMeHandler)
		api.PATCH("/me", hb.UpdateMeHandler)
		api.GET("/id/:id", hb.GetProfileHandler)

		// Worker-only profile operations.
		worker := api.Group("")
		worker.Use(middleware.JWTAuthMiddleware(hb.ProfileRepo, models.RoleWorker))
		worker.PUT("/online", hb.SetOnlineHandler)
		worker.POST("/verification", hb.SubmitVerificationHandler)
	}
}

// RegisterCatalogRoutes registers category browse endpoints. Writes are
// admin-only and live under /api/admin.
func RegisterCatalogRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/categories")
	{
		api.GET("", hb.ListCategoriesHandler)
		api.GET("/id/:id", hb.GetCategoryHandler)
	}
}

// RegisterJobRoutes registers the job lifecycle and its queries.
func RegisterJobRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/jobs")
	{
		api.Use(middleware.JWTAuthMiddleware(hb.ProfileRepo))
		api.GET("/id/:id", hb.GetJobHandler)
		api.GET("/id/:id/messages", hb.ListMessagesHandler)
		api.POST("/id/:id/messages", hb.SendMessageHandler)
		api.POST("/id/:id/review", hb.ReviewJobHandler)

		// Customer lifecycle operations.
		customer := api.Group("")
		customer.Use(middleware.JWTAuthMiddleware(hb.ProfileRepo, models.RoleCustomer))
		customer.POST("", hb.CreateJobHandler)
		customer.GET("/mine", hb.CustomerJobsHandler)
		customer.POST("/id/:id/cancel", hb.CancelJobHandler)
		customer.POST("/id/:id/dispute", hb.DisputeJobHandler)

		// Worker lifecycle operations.
		worker := api.Group("")
		worker.Use(middleware.JWTAuthMiddleware(hb.ProfileRepo, models.RoleWorker))
		worker.GET("/feed", hb.JobFeedHandler)
		worker.GET("/assigned", hb.WorkerJobsHandler)
		worker.POST("/id/:id/accept", hb.AcceptJobHandler)
		worker.POST("/id/:id/arrive", hb.ArriveJobHandler)
		worker.POST("/id/:id/start", hb.StartJobHandler)
		worker.POST("/id/:id/complete", hb.CompleteJobHandler)
	}
}

// RegisterPaymentRoutes registers order creation and settlement.
func RegisterPaymentRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/payments")
	{
		api.Use(middleware.JWTAuthMiddleware(hb.ProfileRepo, models.RoleCustomer))
		api.POST("/order", hb.CreatePaymentOrderHandler)
		api.POST("/verify", hb.VerifyPaymentHandler)
	}
}

// RegisterWalletRoutes registers the worker wallet surface.
func RegisterWalletRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/wallet")
	{
		api.Use(middleware.JWTAuthMiddleware(hb.ProfileRepo, models.RoleWorker))
		api.GET("/balance", hb.WalletBalanceHandler)
		api.GET("/transactions", hb.WalletTransactionsHandler)
		api.POST("/withdraw", hb.RequestWithdrawalHandler)
	}
}

// RegisterNotificationRoutes registers the per-user alert list.
func RegisterNotificationRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/notifications")
	{
		api.Use(middleware.JWTAuthMiddleware(hb.ProfileRepo))
		api.GET("", hb.ListNotificationsHandler)
		api.PUT("/id/:id/read", hb.MarkNotificationReadHandler)
	}
}

// RegisterStorageRoutes registers file uploads and signed downloads.
func RegisterStorageRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/storage")
	{
		api.POST("/upload/:bucket", middleware.JWTAuthMiddleware(hb.ProfileRepo), hb.UploadFileHandler)
		api.GET("/signed-url", middleware.JWTAuthMiddleware(hb.ProfileRepo, models.RoleAdmin), hb.SignedURLHandler)
	}
}

// RegisterAdminRoutes registers the admin console surface.
func RegisterAdminRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/admin")
	{
		api.Use(middleware.JWTAuthMiddleware(hb.ProfileRepo, models.RoleAdmin))
		api.GET("/users", hb.AdminUsersHandler)
		api.PUT("/users/:id/suspend", hb.AdminSuspendHandler)
		api.GET("/workers/pending", hb.AdminPendingWorkersHandler)
		api.PUT("/workers/:id/review", hb.AdminReviewWorkerHandler)
		api.GET("/jobs/active", hb.AdminActiveJobsHandler)
		api.POST("/disputes/:id/resolve", hb.AdminResolveDisputeHandler)
		api.GET("/withdrawals", hb.ListWithdrawalsHandler)
		api.PUT("/withdrawals/:id/settle", hb.SettleWithdrawalHandler)
		api.GET("/stats", hb.AdminStatsHandler)
		api.GET("/settings", hb.AdminSettingsHandler)
		api.PUT("/settings", hb.AdminUpdateSettingsHandler)

		api.POST("/categories", hb.CreateCategoryHandler)
		api.PUT("/categories/:id", hb.UpdateCategoryHandler)
		api.DELETE("/categories/:id", hb.DeleteCategoryHandler)
	}
}

// RegisterRealtimeRoute registers the websocket endpoint.
func RegisterRealtimeRoute(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.GET("/ws", middleware.JWTAuthMiddleware(hb.ProfileRepo), hb.WebsocketHandler)
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Hi, I'm FixKaro"})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.RateLimitMiddleware())
	r.Use(middleware.MaintenanceMiddleware(hb.SettingsRepo))

	RegisterHealthRoute(r)
	RegisterAuthRoutes(r, hb)
	RegisterProfileRoutes(r, hb)
	RegisterCatalogRoutes(r, hb)
	RegisterJobRoutes(r, hb)
	RegisterPaymentRoutes(r, hb)
	RegisterWalletRoutes(r, hb)
	RegisterNotificationRoutes(r, hb)
	RegisterStorageRoutes(r, hb)
	RegisterAdminRoutes(r, hb)
	RegisterRealtimeRoute(r, hb)
}
