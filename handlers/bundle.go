package handlers

import (
	jobRepoPkg "fixkaro/database/repository/job"
	profileRepoPkg "fixkaro/database/repository/profile"
	settingsRepoPkg "fixkaro/database/repository/settings"
	"fixkaro/realtime"
	adminSvc "fixkaro/services/admin"
	catalogSvc "fixkaro/services/catalog"
	chatSvc "fixkaro/services/chat"
	jobSvc "fixkaro/services/job"
	notificationSvc "fixkaro/services/notification"
	paymentSvc "fixkaro/services/payment"
	profileSvc "fixkaro/services/profile"
	"fixkaro/services/storage"
	walletSvc "fixkaro/services/wallet"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// HandlerBundle groups all endpoint handlers into one struct. Routes read
// handler funcs off the bundle; middleware reads the repos.
type HandlerBundle struct {
	ProfileRepo  profileRepoPkg.ProfileRepository
	SettingsRepo settingsRepoPkg.SettingsRepository

	// Auth endpoints
	RegisterHandler gin.HandlerFunc
	LoginHandler    gin.HandlerFunc
	LogoutHandler   gin.HandlerFunc

	// Profile endpoints
	GetMeHandler              gin.HandlerFunc
	GetProfileHandler         gin.HandlerFunc
	UpdateMeHandler           gin.HandlerFunc
	SetOnlineHandler          gin.HandlerFunc
	SubmitVerificationHandler gin.HandlerFunc

	// Catalog endpoints
	ListCategoriesHandler gin.HandlerFunc
	GetCategoryHandler    gin.HandlerFunc
	CreateCategoryHandler gin.HandlerFunc
	UpdateCategoryHandler gin.HandlerFunc
	DeleteCategoryHandler gin.HandlerFunc

	// Job endpoints
	CreateJobHandler    gin.HandlerFunc
	JobFeedHandler      gin.HandlerFunc
	AcceptJobHandler    gin.HandlerFunc
	ArriveJobHandler    gin.HandlerFunc
	StartJobHandler     gin.HandlerFunc
	CompleteJobHandler  gin.HandlerFunc
	CancelJobHandler    gin.HandlerFunc
	DisputeJobHandler   gin.HandlerFunc
	GetJobHandler       gin.HandlerFunc
	CustomerJobsHandler gin.HandlerFunc
	WorkerJobsHandler   gin.HandlerFunc
	ReviewJobHandler    gin.HandlerFunc

	// Payment endpoints
	CreatePaymentOrderHandler gin.HandlerFunc
	VerifyPaymentHandler      gin.HandlerFunc

	// Wallet endpoints
	WalletBalanceHandler      gin.HandlerFunc
	WalletTransactionsHandler gin.HandlerFunc
	RequestWithdrawalHandler  gin.HandlerFunc

	// Messaging endpoints
	SendMessageHandler  gin.HandlerFunc
	ListMessagesHandler gin.HandlerFunc

	// Notification endpoints
	ListNotificationsHandler    gin.HandlerFunc
	MarkNotificationReadHandler gin.HandlerFunc

	// Admin endpoints
	AdminUsersHandler          gin.HandlerFunc
	AdminPendingWorkersHandler gin.HandlerFunc
	AdminReviewWorkerHandler   gin.HandlerFunc
	AdminSuspendHandler        gin.HandlerFunc
	AdminStatsHandler          gin.HandlerFunc
	AdminSettingsHandler       gin.HandlerFunc
	AdminUpdateSettingsHandler gin.HandlerFunc
	AdminActiveJobsHandler     gin.HandlerFunc
	AdminResolveDisputeHandler gin.HandlerFunc
	ListWithdrawalsHandler     gin.HandlerFunc
	SettleWithdrawalHandler    gin.HandlerFunc

	// Storage endpoints
	UploadFileHandler gin.HandlerFunc
	SignedURLHandler  gin.HandlerFunc

	// Realtime endpoint
	WebsocketHandler gin.HandlerFunc
}

// BundleDeps carries everything needed to construct a HandlerBundle.
type BundleDeps struct {
	ProfileRepo  profileRepoPkg.ProfileRepository
	SettingsRepo settingsRepoPkg.SettingsRepository
	JobRepo      jobRepoPkg.JobRepository

	ProfileSvc      profileSvc.ProfileService
	CatalogSvc      catalogSvc.CatalogService
	JobSvc          jobSvc.JobService
	PaymentSvc      paymentSvc.SettlementService
	WalletSvc       walletSvc.WalletService
	ChatSvc         chatSvc.ChatService
	NotificationSvc notificationSvc.NotificationService
	AdminSvc        adminSvc.AdminService
	StorageSvc      storage.StorageService

	Hub    *realtime.Hub
	Logger *zap.Logger
}

// NewHandlerBundle wires the handlers to their services.
func NewHandlerBundle(d BundleDeps) *HandlerBundle {
	return &HandlerBundle{
		ProfileRepo:  d.ProfileRepo,
		SettingsRepo: d.SettingsRepo,

		RegisterHandler: RegisterHandler(d.ProfileSvc),
		LoginHandler:    LoginHandler(d.ProfileSvc),
		LogoutHandler:   LogoutHandler(d.ProfileSvc),

		GetMeHandler:              GetMeHandler(d.ProfileSvc),
		GetProfileHandler:         GetProfileHandler(d.ProfileSvc),
		UpdateMeHandler:           UpdateMeHandler(d.ProfileSvc),
		SetOnlineHandler:          SetOnlineHandler(d.ProfileSvc),
		SubmitVerificationHandler: SubmitVerificationHandler(d.ProfileSvc),

		ListCategoriesHandler: ListCategoriesHandler(d.CatalogSvc),
		GetCategoryHandler:    GetCategoryHandler(d.CatalogSvc),
		CreateCategoryHandler: CreateCategoryHandler(d.CatalogSvc),
		UpdateCategoryHandler: UpdateCategoryHandler(d.CatalogSvc),
		DeleteCategoryHandler: DeleteCategoryHandler(d.CatalogSvc),

		CreateJobHandler:    CreateJobHandler(d.JobSvc),
		JobFeedHandler:      JobFeedHandler(d.JobSvc),
		AcceptJobHandler:    AcceptJobHandler(d.JobSvc),
		ArriveJobHandler:    ArriveJobHandler(d.JobSvc),
		StartJobHandler:     StartJobHandler(d.JobSvc),
		CompleteJobHandler:  CompleteJobHandler(d.JobSvc),
		CancelJobHandler:    CancelJobHandler(d.JobSvc),
		DisputeJobHandler:   DisputeJobHandler(d.JobSvc),
		GetJobHandler:       GetJobHandler(d.JobSvc),
		CustomerJobsHandler: CustomerJobsHandler(d.JobSvc),
		WorkerJobsHandler:   WorkerJobsHandler(d.JobSvc),
		ReviewJobHandler:    ReviewJobHandler(d.ProfileSvc),

		CreatePaymentOrderHandler: CreatePaymentOrderHandler(d.PaymentSvc),
		VerifyPaymentHandler:      VerifyPaymentHandler(d.PaymentSvc),

		WalletBalanceHandler:      WalletBalanceHandler(d.WalletSvc),
		WalletTransactionsHandler: WalletTransactionsHandler(d.WalletSvc),
		RequestWithdrawalHandler:  RequestWithdrawalHandler(d.WalletSvc),

		SendMessageHandler:  SendMessageHandler(d.ChatSvc),
		ListMessagesHandler: ListMessagesHandler(d.ChatSvc),

		ListNotificationsHandler:    ListNotificationsHandler(d.NotificationSvc),
		MarkNotificationReadHandler: MarkNotificationReadHandler(d.NotificationSvc),

		AdminUsersHandler:          AdminUsersHandler(d.AdminSvc),
		AdminPendingWorkersHandler: AdminPendingWorkersHandler(d.AdminSvc),
		AdminReviewWorkerHandler:   AdminReviewWorkerHandler(d.AdminSvc),
		AdminSuspendHandler:        AdminSuspendHandler(d.AdminSvc),
		AdminStatsHandler:          AdminStatsHandler(d.AdminSvc),
		AdminSettingsHandler:       AdminSettingsHandler(d.AdminSvc),
		AdminUpdateSettingsHandler: AdminUpdateSettingsHandler(d.AdminSvc),
		AdminActiveJobsHandler:     AdminActiveJobsHandler(d.JobSvc),
		AdminResolveDisputeHandler: AdminResolveDisputeHandler(d.JobSvc),
		ListWithdrawalsHandler:     ListWithdrawalsHandler(d.WalletSvc),
		SettleWithdrawalHandler:    SettleWithdrawalHandler(d.WalletSvc),

		UploadFileHandler: UploadFileHandler(d.StorageSvc),
		SignedURLHandler:  SignedURLHandler(d.StorageSvc),

		WebsocketHandler: WebsocketHandler(d.Hub, d.JobRepo, d.Logger),
	}
}
