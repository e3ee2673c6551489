package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/exaring/otelpgx"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/metinatakli/payment-gateway/internal/audit"
	"github.com/metinatakli/payment-gateway/internal/domain"
	"github.com/metinatakli/payment-gateway/internal/metrics"
	"github.com/metinatakli/payment-gateway/internal/payment"
	"github.com/metinatakli/payment-gateway/internal/reconcile"
	"github.com/metinatakli/payment-gateway/internal/repository"
	appvalidator "github.com/metinatakli/payment-gateway/internal/validator"
	"github.com/metinatakli/payment-gateway/internal/vcs"
	"github.com/metinatakli/payment-gateway/internal/worker"
	"github.com/redis/go-redis/extra/redisotel/v9"
	"github.com/redis/go-redis/v9"
	"github.com/riandyrn/otelchi"
	"github.com/stripe/stripe-go/v82"
)

const serviceName = "payment-gateway-api"

var (
	version = vcs.Version()
)

type Application struct {
	config    Config
	logger    *slog.Logger
	db        *pgxpool.Pool
	redis     redis.UniversalClient
	validator *validator.Validate

	paymentRepo     domain.PaymentRepository
	paymentProvider domain.PaymentProvider

	metrics    *metrics.Recorder
	workerPool *worker.Pool
	auditor    domain.AuditReporter
	reconciler *reconcile.Reconciler
}

type Config struct {
	Port int
	Env  string

	DB     DBConfig
	Redis  RedisConfig
	Stripe StripeConfig
	Audit  AuditConfig

	OtelCollectorUrl string
}

type DBConfig struct {
	DSN          string
	MaxOpenConns int
	MaxIdleTime  time.Duration
}

type RedisConfig struct {
	URL          string
	MaxOpenConns int
	MaxIdleConns int
	MaxIdleTime  time.Duration
}

type StripeConfig struct {
	SecretKey       string
	WebhookSecret   string
	WebhookInsecure bool
	SuccessUrl      string
	CancelUrl       string
}

type AuditConfig struct {
	URL       string
	Timeout   time.Duration
	Workers   int
	QueueSize int
}

func Run() error {
	var cfg Config

	flag.IntVar(&cfg.Port, "port", 3000, "server port")
	flag.StringVar(&cfg.Env, "env", "dev", "Environment (dev|staging|prod)")

	flag.StringVar(&cfg.DB.DSN, "db-dsn", os.Getenv("DATABASE_URL"), "PostgreSQL DSN")
	flag.IntVar(&cfg.DB.MaxOpenConns, "db-max-open-conns", 25, "PostgreSQL max open connections")
	flag.DurationVar(&cfg.DB.MaxIdleTime, "db-max-idle-time", 15*time.Minute, "PostgreSQL max idle time for connections")

	flag.StringVar(&cfg.Redis.URL, "redis-url", os.Getenv("REDIS_URL"), "Redis URL, empty disables webhook deduplication")
	flag.IntVar(&cfg.Redis.MaxOpenConns, "redis-max-open-conns", 25, "Redis max open connections")
	flag.IntVar(&cfg.Redis.MaxIdleConns, "redis-max-idle-conns", 10, "Redis max idle connections")
	flag.DurationVar(&cfg.Redis.MaxIdleTime, "redis-max-idle-time", 2*time.Minute, "Redis max idle time for connections")

	flag.StringVar(&cfg.Stripe.SecretKey, "stripe-key", os.Getenv("STRIPE_SECRET_KEY"), "Stripe secret key")
	flag.StringVar(&cfg.Stripe.WebhookSecret, "stripe-webhook-secret", os.Getenv("STRIPE_WEBHOOK_SECRET"), "Stripe webhook signing secret")
	flag.BoolVar(&cfg.Stripe.WebhookInsecure, "stripe-webhook-insecure", false, "Accept unsigned webhooks (development only)")
	flag.StringVar(&cfg.Stripe.SuccessUrl, "stripe-success-url", "https://example.com/success.html", "Stripe payment success page")
	flag.StringVar(&cfg.Stripe.CancelUrl, "stripe-cancel-url", "https://example.com/cancel.html", "Stripe payment cancel page")

	flag.StringVar(&cfg.Audit.URL, "audit-url", os.Getenv("ELASTICSEARCH_URL"), "Elasticsearch base URL for audit documents")
	flag.DurationVar(&cfg.Audit.Timeout, "audit-timeout", 5*time.Second, "Timeout for a single audit delivery")
	flag.IntVar(&cfg.Audit.Workers, "audit-workers", 4, "Audit delivery worker count")
	flag.IntVar(&cfg.Audit.QueueSize, "audit-queue-size", 256, "Audit delivery queue size")

	flag.StringVar(&cfg.OtelCollectorUrl, "otel-collector-url", os.Getenv("OTEL_COLLECTOR_URL"), "OpenTelemetry collector URL")

	displayVersion := flag.Bool("version", false, "Display version and exit")

	flag.Parse()

	if *displayVersion {
		fmt.Printf("Version:\t%s\n", version)
		os.Exit(0)
	}

	stripe.Key = cfg.Stripe.SecretKey

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	app, err := New(cfg, logger)
	if err != nil {
		logger.Error("failed to initialize application", "error", err)
		return err
	}
	defer app.Close()

	shutdownTelemetry, err := app.InitTelemetry()
	if err != nil {
		logger.Error("failed to initialize telemetry", "error", err)
		return err
	}
	defer shutdownTelemetry(context.Background())

	return app.Serve()
}

func New(cfg Config, logger *slog.Logger) (*Application, error) {
	if cfg.Stripe.WebhookSecret == "" && !cfg.Stripe.WebhookInsecure {
		return nil, errors.New("a webhook signing secret is required unless -stripe-webhook-insecure is set")
	}
	if cfg.Stripe.WebhookSecret == "" {
		logger.Warn("webhook signature verification is disabled, do not run like this in production")
	}

	db, err := newDatabasePool(cfg)
	if err != nil {
		return nil, err
	}

	var redisClient redis.UniversalClient
	var dedup reconcile.Deduper

	if cfg.Redis.URL != "" {
		rdb, err := newRedisClient(cfg)
		if err != nil {
			db.Close()
			return nil, err
		}

		redisClient = rdb
		dedup = reconcile.NewRedisDeduper(rdb, 24*time.Hour, logger)
	} else {
		logger.Warn("Redis URL not set, webhook deduplication is disabled")
	}

	var paymentProvider domain.PaymentProvider
	if cfg.Env == "test" {
		paymentProvider = payment.NewMockPaymentProvider(cfg.Stripe.WebhookSecret)
	} else {
		paymentProvider = payment.NewStripePaymentProvider(cfg.Stripe.WebhookSecret, cfg.Stripe.SuccessUrl, cfg.Stripe.CancelUrl)
	}

	recorder := metrics.NewRecorder()

	pool := worker.NewPool(cfg.Audit.Workers, cfg.Audit.QueueSize)
	recorder.RegisterAuditQueueDepth(func() float64 {
		return float64(pool.Depth())
	})

	sink := audit.NewElasticSink(cfg.Audit.URL, cfg.Audit.Timeout)
	auditor := audit.NewDispatcher(sink, pool, cfg.Audit.Timeout, logger)

	paymentRepo := repository.NewPostgresPaymentRepository(db)

	app := &Application{
		config:          cfg,
		logger:          logger,
		db:              db,
		redis:           redisClient,
		validator:       appvalidator.NewValidator(),
		paymentRepo:     paymentRepo,
		paymentProvider: paymentProvider,
		metrics:         recorder,
		workerPool:      pool,
		auditor:         auditor,
		reconciler:      reconcile.NewReconciler(paymentRepo, recorder, auditor, dedup, logger),
	}

	return app, nil
}

// Close drains the audit queue and releases the connection pools.
func (app *Application) Close() {
	app.workerPool.Stop()

	if app.redis != nil {
		app.redis.Close()
	}

	app.db.Close()
}

func newRedisClient(cfg Config) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:            cfg.Redis.URL,
		MaxIdleConns:    cfg.Redis.MaxIdleConns,
		MaxActiveConns:  cfg.Redis.MaxOpenConns,
		ConnMaxIdleTime: cfg.Redis.MaxIdleTime,
	})

	err := redisotel.InstrumentTracing(rdb)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	err = rdb.Ping(ctx).Err()
	if err != nil {
		return nil, err
	}

	return rdb, nil
}

func newDatabasePool(cfg Config) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(cfg.DB.DSN)
	if err != nil {
		return nil, err
	}

	config.MaxConnIdleTime = cfg.DB.MaxIdleTime
	config.MaxConns = int32(cfg.DB.MaxOpenConns)
	config.ConnConfig.Tracer = otelpgx.NewTracer()

	db, err := pgxpool.NewWithConfig(context.Background(), config)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	err = db.Ping(ctx)
	if err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

func (app *Application) Serve() error {
	srv := &http.Server{
		Addr:         fmt.Sprintf("0.0.0.0:%d", app.config.Port),
		Handler:      app.Routes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		ErrorLog:     slog.NewLogLogger(app.logger.Handler(), slog.LevelDebug),
	}

	shutdownError := make(chan error)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		s := <-quit

		app.logger.Info("shutting down server", "signal", s.String())

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		err := srv.Shutdown(ctx)
		if err != nil {
			shutdownError <- err
		}

		shutdownError <- nil
	}()

	app.logger.Info("starting server", "addr", srv.Addr, "env", app.config.Env)

	err := srv.ListenAndServe()
	if !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	err = <-shutdownError
	if err != nil {
		return err
	}

	app.logger.Info("stopped server", "addr", srv.Addr)

	return nil
}

func (app *Application) Routes() http.Handler {
	r := chi.NewRouter()

	r.NotFound(app.notFoundResponse)

	r.Use(middleware.RequestID)
	r.Use(otelchi.Middleware(serviceName, otelchi.WithChiRoutes(r)))
	r.Use(app.requestLogger)
	r.Use(app.recoverPanic)

	r.Get("/health", app.GetHealth)
	r.Method(http.MethodGet, "/metrics", app.metrics.Handler())

	r.Post("/create-transaction", app.CreateTransactionHandler)
	r.Post("/create-checkout-session", app.CreateCheckoutSessionHandler)
	r.Post("/refund-payment", app.RefundPaymentHandler)
	r.Post("/webhook", app.StripeWebhookHandler)

	return r
}
