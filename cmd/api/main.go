package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/httplog/v3"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/cmlabs-hris/training-backend-go/internal/config"
	"github.com/cmlabs-hris/training-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/training-backend-go/internal/domain/user"
	appHTTP "github.com/cmlabs-hris/training-backend-go/internal/handler/http"
	"github.com/cmlabs-hris/training-backend-go/internal/pkg/cron"
	"github.com/cmlabs-hris/training-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/training-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/training-backend-go/internal/pkg/metrics"
	"github.com/cmlabs-hris/training-backend-go/internal/pkg/oauth"
	"github.com/cmlabs-hris/training-backend-go/internal/pkg/sse"
	"github.com/cmlabs-hris/training-backend-go/internal/repository/memory"
	"github.com/cmlabs-hris/training-backend-go/internal/repository/postgresql"
	serviceAuth "github.com/cmlabs-hris/training-backend-go/internal/service/auth"
	serviceUser "github.com/cmlabs-hris/training-backend-go/internal/service/user"
	"github.com/cmlabs-hris/training-backend-go/internal/store"
)

// backend is everything main needs from a storage choice.
type backend struct {
	store  store.Backend
	users  user.UserRepository
	tokens auth.RefreshTokenRepository
	close  func()
}

func main() {
	if err := run(); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.App.LogLevel)); err != nil {
		return fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}
	logFormat := httplog.SchemaECS.Concise(cfg.App.Env != "production")
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "training-backend"),
		slog.String("version", cfg.App.Version),
		slog.String("env", cfg.App.Env),
	)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	b, err := openBackend(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer b.close()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	storeMetrics := metrics.NewStore(reg)
	httpMetrics := metrics.NewHTTP(reg)

	hub := sse.NewHub()
	defer hub.Close()

	registry := store.NewRegistry(b.store, logger,
		store.WithNotifier(appHTTP.ChangeNotifier(hub)),
		store.WithMetrics(storeMetrics),
		store.WithExpiringWithinDays(cfg.Training.ExpiringWithinDays),
	)
	defer registry.Close()

	if cfg.Training.ExpiringSweepInterval > 0 {
		scheduler := cron.NewScheduler(logger)
		cron.NewExpiringJobs(b.store.Dashboard, hub, cfg.Training.ExpiringWithinDays, cfg.Training.ExpiringSweepInterval, logger).
			RegisterJobs(scheduler)
		scheduler.Start(ctx)
		defer scheduler.Stop()
	}

	secureCookies := cfg.App.Env == "production"
	JWTService, err := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration, secureCookies)
	if err != nil {
		return fmt.Errorf("invalid JWT expiration: %w", err)
	}

	var GoogleService oauth.GoogleService
	if cfg.OAuth2Google.Enabled() {
		GoogleService = oauth.NewGoogleService(cfg.OAuth2Google.ClientID, cfg.OAuth2Google.ClientSecret, cfg.OAuth2Google.RedirectURL, cfg.OAuth2Google.Scopes)
	} else {
		logger.Info("google sign-in disabled")
	}

	resolver := user.NewResolver(cfg.Access.AllowedDomains, cfg.Access.AdminEmails)
	authService := serviceAuth.NewAuthService(b.store.Tx, b.users, b.tokens, JWTService, GoogleService, resolver, logger)
	authService.Subscribe(appHTTP.IdentityListener(registry, hub))
	userService := serviceUser.NewUserService(b.users, resolver)

	router := appHTTP.NewRouter(appHTTP.RouterConfig{
		Logger:      logger,
		LogLevel:    level,
		CORSOrigins: cfg.App.CORSOrigins,
		Metrics:     httpMetrics,
		Gatherer:    reg,
	}, JWTService, appHTTP.Handlers{
		Auth:      appHTTP.NewAuthHandler(JWTService, authService, GoogleService, cfg.App.FrontendURL, secureCookies),
		Users:     appHTTP.NewUserHandler(userService),
		Employees: appHTTP.NewEmployeeHandler(registry),
		Programs:  appHTTP.NewProgramHandler(registry),
		Sessions:  appHTTP.NewSessionHandler(registry),
		Results:   appHTTP.NewResultHandler(registry),
		NewHire:   appHTTP.NewNewHireHandler(registry),
		Dashboard: appHTTP.NewDashboardHandler(registry),
		ChangeLog: appHTTP.NewChangeLogHandler(b.store.ChangeLogs),
		Events:    appHTTP.NewEventHandler(hub, JWTService),
	})

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("server running", slog.String("addr", server.Addr), slog.String("backend", cfg.Backend.Type))
		serverErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serverErr:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down", slog.Duration("timeout", cfg.App.ShutdownTimeout))
	// Open event streams only end when the hub closes them.
	hub.Close()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.App.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func openBackend(ctx context.Context, cfg *config.Config, logger *slog.Logger) (backend, error) {
	switch cfg.Backend.Type {
	case config.BackendMemory:
		db := memory.New()
		if cfg.Backend.SeedFile != "" {
			if err := memory.LoadSeedFile(db, cfg.Backend.SeedFile); err != nil {
				return backend{}, fmt.Errorf("load seed file: %w", err)
			}
			logger.Info("seed data loaded", slog.String("file", cfg.Backend.SeedFile))
		}
		return backend{
			store: store.Backend{
				Employees:  db.Employees(),
				Programs:   db.Programs(),
				Sessions:   db.Sessions(),
				Results:    db.Results(),
				NewHire:    db.NewHire(),
				Dashboard:  db.Dashboard(),
				ChangeLogs: db.ChangeLogs(),
				Tx:         db,
			},
			users:  db.Users(),
			tokens: db.RefreshTokens(),
			close:  func() {},
		}, nil

	default:
		db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL(), database.PoolConfig{
			MaxConns:        cfg.Database.MaxConns,
			MinConns:        cfg.Database.MinConns,
			MaxConnLifetime: cfg.Database.MaxConnLifetime,
		})
		if err != nil {
			return backend{}, fmt.Errorf("connect to database: %w", err)
		}
		return backend{
			store: store.Backend{
				Employees:  postgresql.NewEmployeeRepository(db),
				Programs:   postgresql.NewProgramRepository(db),
				Sessions:   postgresql.NewSessionRepository(db),
				Results:    postgresql.NewResultRepository(db),
				NewHire:    postgresql.NewNewHireRepository(db),
				Dashboard:  postgresql.NewDashboardRepository(db),
				ChangeLogs: postgresql.NewChangeLogRepository(db),
				Tx:         postgresql.NewTransactor(db),
			},
			users:  postgresql.NewUserRepository(db),
			tokens: postgresql.NewRefreshTokenRepository(db),
			close:  db.Close,
		}, nil
	}
}
