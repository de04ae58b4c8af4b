package app

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/pressly/goose/v3"
	"github.com/redis/go-redis/v9"
	"github.com/stpnv0/EventMarket/internal/auth"
	"github.com/stpnv0/EventMarket/internal/authz"
	"github.com/stpnv0/EventMarket/internal/cache"
	"github.com/stpnv0/EventMarket/internal/config"
	"github.com/stpnv0/EventMarket/internal/handler"
	"github.com/stpnv0/EventMarket/internal/middleware"
	"github.com/stpnv0/EventMarket/internal/notification"
	"github.com/stpnv0/EventMarket/internal/outbox"
	"github.com/stpnv0/EventMarket/internal/repository"
	"github.com/stpnv0/EventMarket/internal/repository/memory"
	"github.com/stpnv0/EventMarket/internal/router"
	"github.com/stpnv0/EventMarket/internal/service"
	"github.com/stpnv0/EventMarket/internal/service/ports"
	"github.com/wb-go/wbf/dbpg"
	"github.com/wb-go/wbf/logger"
)

const migrationsDir = "migrations"

type repositories struct {
	users         ports.UserRepo
	events        ports.EventRepo
	proposals     ports.ProposalRepo
	services      ports.ServiceRepo
	bookings      ports.BookingRepo
	notifications ports.NotificationRepo
	activities    ports.ActivityRepo
}

type App struct {
	cfg        *config.Config
	log        logger.Logger
	db         *dbpg.DB
	redis      *redis.Client
	repos      repositories
	httpServer *http.Server
}

func New(cfg *config.Config) (*App, error) {
	app := &App{cfg: cfg}

	log, err := logger.InitLogger(
		cfg.Logger.LogEngine(),
		"EventMarket",
		cfg.Gin.Mode,
		logger.WithLevel(cfg.Logger.LogLevel()),
	)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	app.log = log

	if err = app.initStorage(); err != nil {
		return nil, fmt.Errorf("init storage: %w", err)
	}

	if err = app.initServices(); err != nil {
		return nil, fmt.Errorf("init services: %w", err)
	}

	return app, nil
}

func (a *App) initStorage() error {
	if a.cfg.Storage.Driver == "memory" {
		store := memory.NewStore()
		a.repos = repositories{
			users:         store.Users(),
			events:        store.Events(),
			proposals:     store.Proposals(),
			services:      store.Services(),
			bookings:      store.Bookings(),
			notifications: store.Notifications(),
			activities:    store.Activities(),
		}
		a.log.Warn("using in-memory storage, data is lost on restart")
		return nil
	}

	if err := a.runMigrations(); err != nil {
		return fmt.Errorf("migrations: %w", err)
	}
	if err := a.initDB(); err != nil {
		return fmt.Errorf("init db: %w", err)
	}

	a.repos = repositories{
		users:         repository.NewUserRepo(a.db),
		events:        repository.NewEventRepo(a.db),
		proposals:     repository.NewProposalRepo(a.db),
		services:      repository.NewServiceRepo(a.db),
		bookings:      repository.NewBookingRepo(a.db),
		notifications: repository.NewNotificationRepo(a.db),
		activities:    repository.NewActivityRepo(a.db),
	}
	return nil
}

func (a *App) initDB() error {
	db, err := dbpg.New(
		a.cfg.Postgres.DSN(),
		nil,
		&dbpg.Options{
			MaxOpenConns: a.cfg.Postgres.MaxOpenConns,
			MaxIdleConns: a.cfg.Postgres.MaxIdleConns,
		},
	)
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}

	if err := db.Master.PingContext(context.Background()); err != nil {
		return fmt.Errorf("pinging database: %w", err)
	}
	db.Master.SetConnMaxLifetime(a.cfg.Postgres.ConnMaxLifetime)

	a.db = db
	a.log.LogAttrs(context.Background(), logger.InfoLevel, "database connected",
		logger.String("host", a.cfg.Postgres.Host),
		logger.Int("port", a.cfg.Postgres.Port),
		logger.String("database", a.cfg.Postgres.Database),
	)

	return nil
}

// initRedis returns a nil client when the cache is not configured; the
// cached resolver then passes straight through.
func (a *App) initRedis() error {
	if !a.cfg.Redis.Enabled() {
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     a.cfg.Redis.Addr,
		Password: a.cfg.Redis.Password,
		DB:       a.cfg.Redis.DB,
	})
	if err := client.Ping(context.Background()).Err(); err != nil {
		// Кэш необязателен: работаем без него
		a.log.Warn("redis unavailable, owner cache disabled",
			logger.String("addr", a.cfg.Redis.Addr),
			logger.String("error", err.Error()),
		)
		_ = client.Close()
		return nil
	}

	a.redis = client
	a.log.Info("redis connected", logger.String("addr", a.cfg.Redis.Addr))
	return nil
}

func (a *App) initServices() error {
	if err := a.initRedis(); err != nil {
		return fmt.Errorf("init redis: %w", err)
	}

	pusher, err := notification.NewTelegramNotifier(a.cfg.Telegram.BotToken, a.cfg.Telegram.BaseURL, a.log)
	if err != nil {
		return fmt.Errorf("init notifier: %w", err)
	}

	sessions, err := auth.NewSessions(a.cfg.Auth.Secret, a.cfg.Auth.SessionTTL)
	if err != nil {
		return fmt.Errorf("init sessions: %w", err)
	}

	r := a.repos
	guard := authz.NewGuard()
	dispatcher := outbox.NewDispatcher(r.notifications, r.activities, r.users, pusher, a.log)
	resolver := cache.NewOwnerResolver(a.redis, service.NewOwnerResolver(r.users), a.cfg.Redis.OwnerTTL, a.log)

	userService := service.NewUserService(r.users, resolver, guard, dispatcher, a.log)
	eventService := service.NewEventService(r.events, r.proposals, r.bookings, guard, dispatcher, a.log)
	proposalService := service.NewProposalService(r.proposals, r.events, guard, dispatcher, a.log, a.cfg.Proposal.Validity)
	bookingService := service.NewBookingService(r.bookings, r.events, r.services, guard, dispatcher, a.log)
	catalogService := service.NewCatalogService(r.services, guard, dispatcher, a.log)
	feedService := service.NewFeedService(r.notifications, r.activities, guard, a.log)

	if a.cfg.Auth.AdminEmail != "" {
		admin, err := userService.EnsureAdmin(context.Background(), a.cfg.Auth.AdminEmail, a.cfg.Auth.AdminName)
		if err != nil {
			return fmt.Errorf("bootstrap admin: %w", err)
		}
		a.log.Info("admin account ready", logger.String("user_id", admin.ID))
	}

	h := handler.NewHandler(handler.Services{
		Events:    eventService,
		Proposals: proposalService,
		Bookings:  bookingService,
		Catalog:   catalogService,
		Users:     userService,
		Feed:      feedService,
	}, sessions, a.cfg.Auth.CookieName, a.cfg.Auth.SecureCookie)

	engine := router.InitRouter(
		a.cfg.Gin.Mode,
		h,
		middleware.Auth(a.cfg.Auth.CookieName, sessions, userService),
		middleware.RequestID(),
		middleware.RequestLogger(a.log),
		middleware.Recovery(a.log),
	)

	a.httpServer = &http.Server{
		Addr:         a.cfg.Server.Addr,
		Handler:      engine,
		ReadTimeout:  a.cfg.Server.ReadTimeout,
		WriteTimeout: a.cfg.Server.WriteTimeout,
		IdleTimeout:  a.cfg.Server.IdleTimeout,
	}

	return nil
}

func (a *App) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		a.log.LogAttrs(ctx, logger.InfoLevel, "HTTP server starting",
			logger.String("addr", a.httpServer.Addr),
			logger.String("storage", a.cfg.Storage.Driver),
		)
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.log.LogAttrs(context.Background(), logger.InfoLevel, "shutdown signal received")
	case err := <-errCh:
		return err
	}

	return a.shutdown()
}

func (a *App) shutdown() error {
	a.log.LogAttrs(context.Background(), logger.InfoLevel, "shutting down...")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		a.cfg.Server.WriteTimeout,
	)
	defer cancel()

	if err := a.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http server shutdown: %w", err)
	}
	a.log.LogAttrs(context.Background(), logger.InfoLevel, "HTTP server stopped")

	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.log.Warn("close redis", logger.String("error", err.Error()))
		}
	}

	if a.db != nil {
		if err := a.db.Master.Close(); err != nil {
			return fmt.Errorf("close db: %w", err)
		}
		a.log.LogAttrs(context.Background(), logger.InfoLevel, "database connection closed")
	}

	a.log.LogAttrs(context.Background(), logger.InfoLevel, "app stopped")

	return nil
}

func (a *App) runMigrations() error {
	db, err := sql.Open("postgres", a.cfg.Postgres.DSN())
	if err != nil {
		return fmt.Errorf("open db for migrations: %w", err)
	}
	defer db.Close()

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("goose dialect: %w", err)
	}
	if err := goose.Up(db, migrationsDir); err != nil {
		return fmt.Errorf("goose up: %w", err)
	}

	a.log.Info("migrations applied successfully")
	return nil
}
