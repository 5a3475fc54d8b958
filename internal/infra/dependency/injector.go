// Package dependency provides dependency injection for the application.
package dependency

import (
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/expense-tracker/core/config"
	"github.com/expense-tracker/core/internal/application/adapter"
	"github.com/expense-tracker/core/internal/application/usecase/auth"
	"github.com/expense-tracker/core/internal/application/usecase/budget"
	"github.com/expense-tracker/core/internal/application/usecase/category"
	"github.com/expense-tracker/core/internal/application/usecase/currency"
	"github.com/expense-tracker/core/internal/application/usecase/sync"
	"github.com/expense-tracker/core/internal/application/usecase/transaction"
	"github.com/expense-tracker/core/internal/infra/server/router"
	"github.com/expense-tracker/core/internal/integration/adapters"
	"github.com/expense-tracker/core/internal/integration/alerts"
	"github.com/expense-tracker/core/internal/integration/entrypoint/controller"
	"github.com/expense-tracker/core/internal/integration/entrypoint/middleware"
	"github.com/expense-tracker/core/internal/integration/persistence"
	"github.com/expense-tracker/core/internal/integration/rates"
	"github.com/expense-tracker/core/internal/integration/remote"
)

// Injector holds all application dependencies.
type Injector struct {
	Config *config.Config
	DB     *gorm.DB
	Router *router.Router
	Worker *alerts.Worker

	SeedCategories *category.SeedCategoriesUseCase
}

// NewInjector creates a new dependency injector with all dependencies wired.
func NewInjector(cfg *config.Config, db *gorm.DB) *Injector {
	// Create repositories
	transactionRepo := persistence.NewTransactionRepository(db)
	categoryRepo := persistence.NewCategoryRepository(db)
	preferenceRepo := persistence.NewPreferenceRepository(db)
	alertQueue := persistence.NewAlertQueueRepository(db)

	// Create remote clients
	relayClient := remote.NewClient(&cfg.Remote)
	remoteTxns := remote.NewTransactionClient(relayClient)
	remoteCategories := remote.NewCategoryClient(relayClient)
	remoteImages := remote.NewImageClient(relayClient)
	identityClient := remote.NewIdentityClient(relayClient)

	// Create adapters/services
	sessionService := adapters.NewSessionService(preferenceRepo)
	rateProvider := newRateProvider(cfg)

	// Create sync use cases
	logInSyncUseCase := sync.NewLogInSyncUseCase(transactionRepo, categoryRepo, remoteTxns, remoteCategories, preferenceRepo)
	signUpSyncUseCase := sync.NewSignUpSyncUseCase(transactionRepo, categoryRepo, remoteTxns, remoteCategories, preferenceRepo)

	// Create budget use case
	checkBudgetUseCase := budget.NewCheckBudgetUseCase(transactionRepo, categoryRepo, alertQueue, preferenceRepo)

	// Create transaction use cases
	listTransactionsUseCase := transaction.NewListTransactionsUseCase(transactionRepo)
	createTransactionUseCase := transaction.NewCreateTransactionUseCase(transactionRepo, categoryRepo, remoteTxns, sessionService, checkBudgetUseCase)
	updateTransactionUseCase := transaction.NewUpdateTransactionUseCase(transactionRepo, categoryRepo, remoteTxns, sessionService, checkBudgetUseCase)
	deleteTransactionUseCase := transaction.NewDeleteTransactionUseCase(transactionRepo, remoteTxns, sessionService)
	attachImageUseCase := transaction.NewAttachImageUseCase(transactionRepo, remoteTxns, remoteImages, sessionService)

	// Create category use cases
	listCategoriesUseCase := category.NewListCategoriesUseCase(categoryRepo)
	createCategoryUseCase := category.NewCreateCategoryUseCase(categoryRepo, remoteCategories, sessionService)
	updateCategoryUseCase := category.NewUpdateCategoryUseCase(categoryRepo, remoteCategories, sessionService)
	deleteCategoryUseCase := category.NewDeleteCategoryUseCase(categoryRepo, transactionRepo, remoteCategories, remoteTxns, sessionService)
	seedCategoriesUseCase := category.NewSeedCategoriesUseCase(categoryRepo, preferenceRepo)

	// Create auth use cases
	signUpUseCase := auth.NewSignUpUseCase(identityClient, sessionService, signUpSyncUseCase)
	signInUseCase := auth.NewSignInUseCase(identityClient, sessionService, logInSyncUseCase)
	signOutUseCase := auth.NewSignOutUseCase(sessionService, preferenceRepo)
	sessionStateUseCase := auth.NewSessionStateUseCase(sessionService, preferenceRepo)
	guestModeUseCase := auth.NewEnterGuestModeUseCase(preferenceRepo)

	// Create currency use case
	changeCurrencyUseCase := currency.NewChangeCurrencyUseCase(transactionRepo, rateProvider, preferenceRepo)

	// Create controllers
	healthController := controller.NewHealthController(func() bool {
		sqlDB, err := db.DB()
		if err != nil {
			return false
		}
		return sqlDB.Ping() == nil
	})

	authController := controller.NewAuthController(
		signUpUseCase,
		signInUseCase,
		signOutUseCase,
		sessionStateUseCase,
		guestModeUseCase,
	)

	transactionController := controller.NewTransactionController(
		createTransactionUseCase,
		updateTransactionUseCase,
		deleteTransactionUseCase,
		listTransactionsUseCase,
		attachImageUseCase,
	)

	categoryController := controller.NewCategoryController(
		createCategoryUseCase,
		updateCategoryUseCase,
		deleteCategoryUseCase,
		listCategoriesUseCase,
	)

	syncController := controller.NewSyncController(sessionService, logInSyncUseCase, signUpSyncUseCase)
	currencyController := controller.NewCurrencyController(changeCurrencyUseCase)
	preferenceController := controller.NewPreferenceController(preferenceRepo)

	authRateLimiter := middleware.NewRateLimiter()

	appRouter := router.NewRouter(
		healthController,
		authController,
		transactionController,
		categoryController,
		syncController,
		currencyController,
		preferenceController,
		authRateLimiter,
	)

	return &Injector{
		Config:         cfg,
		DB:             db,
		Router:         appRouter,
		Worker:         newAlertWorker(cfg, alertQueue),
		SeedCategories: seedCategoriesUseCase,
	}
}

// newRateProvider builds the quote chain: the currencylayer client, wrapped
// in the Redis cache when one is configured.
func newRateProvider(cfg *config.Config) adapter.RateProvider {
	provider := rates.NewClient(&cfg.Rates)
	if !cfg.Redis.Enabled {
		return provider
	}
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	return rates.NewCachedProvider(provider, redisClient, cfg.Rates.CacheTTL)
}

// newAlertWorker builds the budget-alert delivery worker. Without a Resend
// key the alerts still drain to the log.
func newAlertWorker(cfg *config.Config, queue adapter.AlertQueue) *alerts.Worker {
	var sender adapter.AlertSender
	if cfg.Email.ResendAPIKey != "" {
		sender = alerts.NewResendSender(cfg.Email.ResendAPIKey, cfg.Email.FromName, cfg.Email.FromEmail, cfg.Email.ToEmail)
	} else {
		sender = alerts.NewLogSender()
	}
	return alerts.NewWorker(queue, sender, alerts.WorkerConfig{
		PollInterval: cfg.Email.PollInterval,
		BatchSize:    cfg.Email.BatchSize,
	})
}
