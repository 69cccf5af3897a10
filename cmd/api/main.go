package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/BruksfildServices01/salon-booking/internal/audit"
	"github.com/BruksfildServices01/salon-booking/internal/config"
	dbpkg "github.com/BruksfildServices01/salon-booking/internal/db"
	"github.com/BruksfildServices01/salon-booking/internal/events"
	infraRepo "github.com/BruksfildServices01/salon-booking/internal/infra/repository"
	"github.com/BruksfildServices01/salon-booking/internal/logging"
	"github.com/BruksfildServices01/salon-booking/internal/media"
	"github.com/BruksfildServices01/salon-booking/internal/metrics"
	"github.com/BruksfildServices01/salon-booking/internal/notify"
	"github.com/BruksfildServices01/salon-booking/internal/payments"
	"github.com/BruksfildServices01/salon-booking/internal/routes"
	"github.com/BruksfildServices01/salon-booking/internal/timezone"
	"github.com/BruksfildServices01/salon-booking/internal/web"
)

func main() {
	cfg := config.Load()
	logger := logging.New(cfg.LogLevel)

	if !timezone.IsValid(cfg.SalonTimezone) {
		logger.Warn("unknown salon timezone, falling back to UTC", "timezone", cfg.SalonTimezone)
	}

	db, err := dbpkg.NewDB(cfg, logger)
	if err != nil {
		logger.Error("database", "error", err)
		os.Exit(1)
	}

	redisOpts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		logger.Error("invalid REDIS_URL", "error", err)
		os.Exit(1)
	}
	rdb := redis.NewClient(redisOpts)
	defer rdb.Close()

	// ======================================================
	// OPTIONAL INTEGRATIONS
	// ======================================================
	var photos media.PhotoStore
	if cfg.S3Enabled() {
		photos = media.NewS3Store(media.S3Config{
			Bucket:        cfg.S3Bucket,
			Region:        cfg.S3Region,
			Endpoint:      cfg.S3Endpoint,
			AccessKey:     cfg.S3AccessKey,
			SecretKey:     cfg.S3SecretKey,
			PublicBaseURL: cfg.S3PublicBaseURL,
		})
	}

	var email notify.EmailSender = notify.NewStubEmailSender(logger)
	if sg := notify.NewSendGridSender(notify.SendGridConfig{
		APIKey:    cfg.SendGridAPIKey,
		FromEmail: cfg.EmailFrom,
		FromName:  cfg.SalonName,
	}, logger); sg != nil {
		email = sg
	}

	var sms notify.SMSSender = notify.NewStubSMSSender(logger)
	if cfg.TwilioEnabled() {
		sms = notify.NewTwilioSender(cfg.TwilioAccountSID, cfg.TwilioAuthToken, cfg.TwilioFromNumber, logger)
	}

	var publisher events.Publisher = events.NewNoopPublisher(logger)
	if cfg.AMQPURL != "" {
		publisher = events.NewAMQPPublisher(cfg.AMQPURL, logger)
	}

	var checkout payments.CheckoutLinker = payments.NoCheckout{}
	if cfg.MercadoPagoAccessToken != "" {
		linker, err := payments.NewMercadoPagoLinker(cfg.MercadoPagoAccessToken)
		if err != nil {
			logger.Warn("mercado pago disabled", "error", err)
		} else {
			checkout = linker
		}
	}

	// ======================================================
	// SHARED
	// ======================================================
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	bookingMetrics := metrics.NewBookingMetrics(registry)

	auditDispatcher := audit.NewDispatcher(audit.New(db), logger)

	// ======================================================
	// HTTP
	// ======================================================
	if cfg.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())

	tmpl, err := web.Templates()
	if err != nil {
		logger.Error("templates", "error", err)
		os.Exit(1)
	}
	r.SetHTMLTemplate(tmpl)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	confirm := routes.RegisterRoutes(r, routes.Deps{
		DB:       db,
		Redis:    rdb,
		Config:   cfg,
		Logger:   logger,
		Audit:    auditDispatcher,
		Registry: registry,
		Metrics:  bookingMetrics,
		Photos:   photos,
		Email:    email,
		Events:   publisher,
		Checkout: checkout,
	})

	// ======================================================
	// REMINDERS
	// ======================================================
	reminders := notify.NewReminderJob(
		infraRepo.NewScheduleGormRepository(db),
		sms,
		auditDispatcher,
		logger,
		cfg.SalonName,
		timezone.Location(cfg.SalonTimezone),
	)
	scheduler, err := reminders.StartScheduler(cfg.ReminderCron)
	if err != nil {
		logger.Error("invalid REMINDER_CRON", "spec", cfg.ReminderCron, "error", err)
		os.Exit(1)
	}

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("server running", "addr", cfg.Addr(), "backend", cfg.BookingBackend)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server stopped", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http shutdown", "error", err)
	}
	<-scheduler.Stop().Done()
	confirm.Wait()
	auditDispatcher.Close()
}
