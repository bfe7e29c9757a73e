package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"

	cfgPkg "github.com/pmpmaster/pmp-api/app/config"
	"github.com/pmpmaster/pmp-api/app/docs"
	"github.com/pmpmaster/pmp-api/app/dto"
	appErrors "github.com/pmpmaster/pmp-api/app/errors"
	"github.com/pmpmaster/pmp-api/app/logger"
	"github.com/pmpmaster/pmp-api/app/metrics"
	authmw "github.com/pmpmaster/pmp-api/app/middleware"
	"github.com/pmpmaster/pmp-api/app/models"
	"github.com/pmpmaster/pmp-api/app/services"
	"github.com/pmpmaster/pmp-api/app/store"
)

// authService is the slice of services.AuthService the handlers depend on;
// tests substitute a mock.
type authService interface {
	Register(ctx context.Context, req dto.RegisterRequest) (*dto.AuthData, *appErrors.AppError)
	Login(ctx context.Context, req dto.LoginRequest) (*dto.AuthData, *appErrors.AppError)
	ResolveSession(ctx context.Context, token string) (*models.User, *appErrors.AppError)
	CreateTeamMember(ctx context.Context, req dto.CreateTeamMemberRequest) (*models.User, *appErrors.AppError)
}

type dashboardService interface {
	Stats(ctx context.Context) (*models.DashboardStats, *appErrors.AppError)
}

type application struct {
	config           config
	store            store.Storage
	authService      authService
	dashboardService dashboardService
	publisher        services.EventPublisher
	db               *sql.DB
	redisClient      *redis.Client
	rabbitConn       *amqp.Connection
	rabbitCh         *amqp.Channel
}

type dbConfig struct {
	addr         string
	maxOpenConns int
	maxIdleConns int
	maxIdleTime  string
}

type config struct {
	addr    string
	env     string
	version string
	db      dbConfig
}

func (app *application) mount() http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(authmw.RequestIDTracing())
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Logger)
	r.Use(authmw.Metrics())
	r.Use(authmw.SecurityHeaders())
	r.Use(authmw.BodyLimit())
	r.Use(chimw.Timeout(60 * time.Second))

	// Pages behind the route guard. The guard only inspects cookie presence;
	// the session itself is verified by the API when data is fetched.
	r.Group(func(r chi.Router) {
		r.Use(authmw.RouteGuard())
		r.Get("/", app.homePageHandler)
		r.Get("/login", pageHandler("Login"))
		r.Get("/register", pageHandler("Register"))
		r.Get("/dashboard", pageHandler("Dashboard"))
		r.Get("/dashboard/*", pageHandler("Dashboard"))
	})

	r.Get("/metrics", metrics.MetricsHandler().ServeHTTP)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", app.healthCheckHandler)
		r.Get("/openapi.json", docs.Handler)

		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", app.registerHandler)
			r.Post("/login", app.loginHandler)
			r.Post("/logout", app.logoutHandler)
			r.Get("/me", app.meHandler)
		})

		r.Route("/projects", func(r chi.Router) {
			r.Get("/", app.listProjectsHandler)
			r.Post("/", app.createProjectHandler)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", app.getProjectHandler)
				r.Put("/", app.updateProjectHandler)
				r.Delete("/", app.deleteProjectHandler)
			})
		})

		r.Route("/tasks", func(r chi.Router) {
			r.Get("/", app.listTasksHandler)
			r.Post("/", app.createTaskHandler)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", app.getTaskHandler)
				r.Put("/", app.updateTaskHandler)
				r.Delete("/", app.deleteTaskHandler)
			})
		})

		r.Route("/meetings", func(r chi.Router) {
			r.Get("/", app.listMeetingsHandler)
			r.Post("/", app.createMeetingHandler)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", app.getMeetingHandler)
				r.Put("/", app.updateMeetingHandler)
				r.Delete("/", app.deleteMeetingHandler)
			})
		})

		r.Route("/team", func(r chi.Router) {
			r.Get("/", app.listTeamHandler)
			r.Post("/", app.createTeamMemberHandler)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", app.getTeamMemberHandler)
				r.Put("/", app.updateTeamMemberHandler)
				r.Delete("/", app.deleteTeamMemberHandler)
			})
		})

		r.Get("/dashboard", app.dashboardStatsHandler)
		r.Get("/dashboard/stats", app.dashboardStatsHandler)
	})

	return r
}

// runWithGracefulShutdown starts the server and handles SIGTERM/SIGINT,
// letting in-flight requests complete before closing connections.
func (app *application) runWithGracefulShutdown(mux http.Handler) error {
	srv := &http.Server{
		Addr:         app.config.addr,
		Handler:      mux,
		WriteTimeout: 30 * time.Second,
		ReadTimeout:  10 * time.Second,
		IdleTimeout:  time.Minute,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)

	serverErrors := make(chan error, 1)
	go func() {
		logger.Logger.Info().Str("addr", app.config.addr).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrors <- err
		}
	}()

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)
	case sig := <-quit:
		logger.Logger.Info().Str("signal", sig.String()).Msg("Received signal, starting graceful shutdown")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Logger.Error().Err(err).Msg("Server forced to shutdown")
		return err
	}
	logger.Logger.Info().Msg("Server gracefully stopped")

	logger.Logger.Info().Msg("Closing database connection")
	if err := app.db.Close(); err != nil {
		logger.Logger.Error().Err(err).Msg("Error closing database")
	}

	if app.redisClient != nil {
		logger.Logger.Info().Msg("Closing Redis connection")
		if err := app.redisClient.Close(); err != nil {
			logger.Logger.Error().Err(err).Msg("Error closing Redis")
		}
	}

	if app.rabbitCh != nil {
		logger.Logger.Info().Msg("Closing RabbitMQ channel")
		if err := app.rabbitCh.Close(); err != nil {
			logger.Logger.Error().Err(err).Msg("Error closing RabbitMQ channel")
		}
	}
	if app.rabbitConn != nil {
		logger.Logger.Info().Msg("Closing RabbitMQ connection")
		if err := app.rabbitConn.Close(); err != nil {
			logger.Logger.Error().Err(err).Msg("Error closing RabbitMQ connection")
		}
	}

	logger.Logger.Info().Msg("Graceful shutdown completed")
	return nil
}

func main() {
	logger.Init()
	cfgPkg.Load()

	if err := validateRequiredEnv(); err != nil {
		logger.Logger.Fatal().Err(err).Msg("required environment variables missing")
	}

	dbUser := cfgPkg.GetString("POSTGRES_USER", "postgres")
	dbPassword := cfgPkg.GetString("POSTGRES_PASSWORD", "postgres")
	dbHost := cfgPkg.GetString("POSTGRES_HOST", "localhost")
	dbPort := cfgPkg.GetString("POSTGRES_PORT", "5432")
	dbName := cfgPkg.GetString("POSTGRES_DB", "pmp")
	dbSSLMode := cfgPkg.GetString("POSTGRES_SSLMODE", "disable")

	dbAddr := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		dbUser, dbPassword, dbHost, dbPort, dbName, dbSSLMode)

	cfg := config{
		addr:    cfgPkg.GetString("ADDR", ":8080"),
		env:     cfgPkg.GetString("ENVIRONMENT", "development"),
		version: cfgPkg.GetString("VERSION", "dev"),
		db: dbConfig{
			addr:         dbAddr,
			maxOpenConns: cfgPkg.GetInt("DB_MAX_OPEN_CONNS", 30),
			maxIdleConns: cfgPkg.GetInt("DB_MAX_IDLE_CONNS", 30),
			maxIdleTime:  cfgPkg.GetString("DB_MAX_IDLE_TIME", "15m"),
		},
	}

	logger.Logger.Info().
		Str("host", dbHost).
		Str("port", dbPort).
		Str("database", dbName).
		Str("sslmode", dbSSLMode).
		Msg("connecting to postgres")

	db, err := cfgPkg.NewDB(
		cfg.db.addr,
		cfg.db.maxOpenConns,
		cfg.db.maxIdleConns,
		cfg.db.maxIdleTime,
	)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer db.Close()

	logger.Logger.Info().
		Str("host", dbHost).
		Str("database", dbName).
		Msg("postgres connection pool established")

	if err := store.RunMigrations(context.Background(), db); err != nil {
		logger.Logger.Fatal().Err(err).Msg("failed to run migrations")
	}

	storage := store.NewStorage(db)

	// Optional dependencies: an empty REDIS_ADDR or RABBITMQ_URL disables the
	// feature instead of failing startup.
	redisClient, err := cfgPkg.NewRedisClient()
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("failed to connect to redis")
	}
	if redisClient != nil {
		logger.Logger.Info().Msg("redis connection established")
	} else {
		logger.Logger.Info().Msg("redis not configured, dashboard caching disabled")
	}

	rabbitConn, rabbitCh, err := cfgPkg.NewRabbitMQConnection()
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("failed to connect to RabbitMQ")
	}
	var publisher services.EventPublisher
	if rabbitCh != nil {
		logger.Logger.Info().Msg("RabbitMQ connection established")
		publisher = services.NewRabbitMQPublisher(rabbitCh)
	} else {
		logger.Logger.Info().Msg("RabbitMQ not configured, event publishing disabled")
	}

	app := &application{
		config:           cfg,
		store:            storage,
		authService:      services.NewAuthService(storage),
		dashboardService: services.NewDashboardService(storage, redisClient),
		publisher:        publisher,
		db:               db,
		redisClient:      redisClient,
		rabbitConn:       rabbitConn,
		rabbitCh:         rabbitCh,
	}
	mux := app.mount()

	if err := app.runWithGracefulShutdown(mux); err != nil {
		logger.Logger.Fatal().Err(err).Msg("server error")
	}
}

func validateRequiredEnv() error {
	if os.Getenv("JWT_SECRET") == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	return nil
}
