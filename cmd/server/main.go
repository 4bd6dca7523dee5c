package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/ignatzorin/swipeshare-backend/internal/config"
	"github.com/ignatzorin/swipeshare-backend/internal/db"
	"github.com/ignatzorin/swipeshare-backend/internal/domain/event"
	"github.com/ignatzorin/swipeshare-backend/internal/domain/repository"
	"github.com/ignatzorin/swipeshare-backend/internal/http/router"
	"github.com/ignatzorin/swipeshare-backend/internal/infrastructure/memory"
	"github.com/ignatzorin/swipeshare-backend/internal/infrastructure/persistence"
	"github.com/ignatzorin/swipeshare-backend/internal/interface/http/handler"
	"github.com/ignatzorin/swipeshare-backend/internal/logger"
	"github.com/ignatzorin/swipeshare-backend/internal/notify"
	"github.com/ignatzorin/swipeshare-backend/internal/service"
	"github.com/ignatzorin/swipeshare-backend/internal/usecase"
	"github.com/ignatzorin/swipeshare-backend/internal/usecase/dispute"
	"github.com/ignatzorin/swipeshare-backend/internal/usecase/post"
	"github.com/ignatzorin/swipeshare-backend/internal/usecase/rating"
	"github.com/ignatzorin/swipeshare-backend/internal/usecase/request"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// Готовим контекст для graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("main: ошибка загрузки конфигурации: %v", err)
	}

	logger.Init(cfg.LogLevel)
	if cfg.Env == config.EnvDevelopment {
		logger.SetTextFormatter()
	}

	ledger, notifications, closeStorage, err := openStorage(ctx, cfg)
	if err != nil {
		logger.Log.WithError(err).Fatal("main: не удалось подготовить хранилище")
	}
	defer closeStorage()

	bus := event.NewBus()
	cache := service.NewCacheService(ctx, cfg.StatsCacheTTL)
	deps := usecase.Deps{
		Ledger:         ledger,
		Events:         bus,
		Stats:          cache,
		Now:            time.Now,
		StorageTimeout: cfg.StorageTimeout,
		DisputeWindow:  cfg.DisputeWindow,
	}

	// Подписчики шины.
	bus.Subscribe(cache)

	notificationService := service.NewNotificationService(notifications)
	notifiers := notify.Multi{notificationService}
	if cfg.PushGatewayURL != "" {
		notifiers = append(notifiers, notify.NewPushGateway(cfg.PushGatewayURL, cfg.PushGatewayToken, cfg.PushTimeout))
	}
	loc, err := notify.LoadLocation(cfg.NotifyTimezone)
	if err != nil {
		logger.Log.WithError(err).Fatal("main: некорректный часовой пояс уведомлений")
	}
	dispatcher := notify.NewDispatcher(notifiers, loc)
	bus.Subscribe(dispatcher)

	// Сценарии.
	engine := request.NewEngine(deps)
	tokenManager := service.NewTokenManager(cfg.JWTSecret, cfg.AccessTokenTTL)

	handlers := router.Handlers{
		Post: handler.NewPostHandler(
			post.NewCreatePostUseCase(deps),
			post.NewGetPostUseCase(deps),
			post.NewListOpenPostsUseCase(deps),
		),
		Request: handler.NewRequestHandler(
			request.NewCreateRequestUseCase(deps),
			request.NewTransitionUseCase(engine),
			request.NewGetRequestUseCase(deps),
			request.NewListMyRequestsUseCase(deps),
			request.NewListAuditUseCase(deps),
		),
		Dispute: handler.NewDisputeHandler(
			dispute.NewOpenDisputeUseCase(engine),
			dispute.NewResolveDisputeUseCase(deps),
			dispute.NewGetDisputeUseCase(deps),
			dispute.NewGetRequestDisputeUseCase(deps),
		),
		Rating: handler.NewRatingHandler(
			rating.NewSubmitRatingUseCase(deps),
			rating.NewGetProfileStatsUseCase(deps, cache),
			rating.NewListRequestRatingsUseCase(deps),
		),
		Notification: handler.NewNotificationHandler(notificationService),
		Webhook:      handler.NewWebhookHandler(dispatcher),
		Health:       handler.NewHealthHandler(ledger),
	}

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router.SetupRouter(cfg, handlers, tokenManager),
		ReadHeaderTimeout: 5 * time.Second,
	}

	// Завершаем сервер при получении сигнала.
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Log.WithError(err).Error("main: ошибка остановки http сервера")
		}
	}()

	logger.Log.WithField("port", cfg.HTTPPort).WithField("storage", cfg.StorageDriver).Info("main: HTTP сервер запущен")

	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Log.WithError(err).Fatal("main: сервер завершился с ошибкой")
	}

	// Дожидаемся подписчиков, чтобы не потерять уведомления последних переходов.
	bus.Wait()
	logger.Log.Info("main: сервер остановлен")
}

// openStorage выбирает хранилище по STORAGE_DRIVER.
func openStorage(ctx context.Context, cfg *config.Config) (repository.Ledger, repository.NotificationRepository, func(), error) {
	if cfg.StorageDriver == config.StorageMemory {
		logger.Log.Warn("main: используется хранилище в памяти, данные не сохраняются")
		return memory.NewLedger(), memory.NewNotificationStore(), func() {}, nil
	}

	conn, err := db.NewPostgres(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, nil, nil, err
	}

	if err := db.RunMigrations(ctx, conn, os.DirFS(cfg.MigrationsPath)); err != nil {
		safeClose(conn)
		return nil, nil, nil, err
	}

	return persistence.NewLedger(conn), persistence.NewNotificationRepository(conn), func() { safeClose(conn) }, nil
}

// safeClose закрывает соединение с базой.
func safeClose(conn *sqlx.DB) {
	if err := conn.Close(); err != nil {
		logger.Log.WithError(err).Error("main: ошибка закрытия базы")
	}
}
