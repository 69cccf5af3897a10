package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-booking/internal/audit"
	"github.com/BruksfildServices01/salon-booking/internal/config"
	"github.com/BruksfildServices01/salon-booking/internal/events"
	"github.com/BruksfildServices01/salon-booking/internal/handlers"
	infraRepo "github.com/BruksfildServices01/salon-booking/internal/infra/repository"
	"github.com/BruksfildServices01/salon-booking/internal/logging"
	"github.com/BruksfildServices01/salon-booking/internal/media"
	"github.com/BruksfildServices01/salon-booking/internal/metrics"
	"github.com/BruksfildServices01/salon-booking/internal/middleware"
	"github.com/BruksfildServices01/salon-booking/internal/models"
	"github.com/BruksfildServices01/salon-booking/internal/notify"
	"github.com/BruksfildServices01/salon-booking/internal/payments"
	"github.com/BruksfildServices01/salon-booking/internal/timezone"
	ucBooking "github.com/BruksfildServices01/salon-booking/internal/usecase/booking"
)

// Deps are the process-wide singletons built in main. Optional
// integrations may be nil.
type Deps struct {
	DB       *gorm.DB
	Redis    *redis.Client
	Config   *config.Config
	Logger   *logging.Logger
	Audit    *audit.Dispatcher
	Registry *prometheus.Registry
	Metrics  *metrics.BookingMetrics

	Photos   media.PhotoStore
	Email    notify.EmailSender
	Events   events.Publisher
	Checkout payments.CheckoutLinker
}

// RegisterRoutes wires repositories, use cases and handlers onto r. The
// returned ConfirmBooking must be drained with Wait on shutdown.
func RegisterRoutes(r *gin.Engine, d Deps) *ucBooking.ConfirmBooking {
	cfg := d.Config

	// ======================================================
	// MIDDLEWARE
	// ======================================================
	r.Use(middleware.RequestID())
	r.Use(middleware.AccessLog(d.Logger))
	r.Use(middleware.CORSMiddleware())

	// ======================================================
	// INFRA
	// ======================================================
	catalogRepo := infraRepo.NewCachedCatalog(
		infraRepo.NewCatalogGormRepository(d.DB),
		d.Redis,
		cfg.CatalogCacheTTL,
		d.Logger,
	)
	sessionStore := infraRepo.NewRedisSessionStore(d.Redis, cfg.WizardSessionTTL)
	bookingRepo := infraRepo.NewBookingGormRepository(d.DB)
	scheduleRepo := infraRepo.NewScheduleGormRepository(d.DB)
	portalRepo := infraRepo.NewPortalGormRepository(d.DB, timezone.Location(cfg.SalonTimezone))
	adminRepo := infraRepo.NewAdminGormRepository(d.DB)

	// ======================================================
	// USE CASES
	// ======================================================
	var submitter ucBooking.Submitter
	switch cfg.BookingBackend {
	case config.BackendDocument:
		submitter = ucBooking.NewDocumentSubmitter(bookingRepo, cfg.SalonTimezone)
	default:
		submitter = ucBooking.NewRelationalSubmitter(bookingRepo, d.Logger, d.Metrics, cfg.SalonTimezone)
	}

	catalogUC := ucBooking.NewCatalog(catalogRepo)
	sessionsUC := ucBooking.NewWizardSessions(sessionStore, catalogRepo, d.Metrics, cfg.SalonTimezone)
	slotPlanner := ucBooking.NewSlotPlanner(
		catalogRepo,
		scheduleRepo,
		ucBooking.Hours{
			Opening:         cfg.OpeningHour,
			Closing:         cfg.ClosingHour,
			IntervalMinutes: cfg.SlotIntervalMinutes,
		},
		cfg.SalonTimezone,
	)
	availabilityUC := ucBooking.NewGetAvailability(sessionStore, slotPlanner, cfg.SalonTimezone)
	confirmUC := ucBooking.NewConfirmBooking(ucBooking.ConfirmDeps{
		Store:     sessionStore,
		Slots:     slotPlanner,
		Submitter: submitter,
		Backend:   cfg.BookingBackend,
		Audit:     d.Audit,
		Events:    d.Events,
		Email:     d.Email,
		Checkout:  d.Checkout,
		Metrics:   d.Metrics,
		Logger:    d.Logger,
		SalonName: cfg.SalonName,
	})
	portalUC := ucBooking.NewListPortal(portalRepo)

	manageCatalogUC := ucBooking.NewManageCatalog(catalogRepo, catalogRepo, d.Photos, d.Audit)
	listScheduleUC := ucBooking.NewListSchedule(adminRepo, cfg.SalonTimezone)
	changeStatusUC := ucBooking.NewChangeStatus(adminRepo, d.Audit, cfg.SalonTimezone)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(d.DB, cfg)
	catalogHandler := handlers.NewCatalogHandler(catalogUC)
	bookingHandler := handlers.NewBookingHandler(sessionsUC, availabilityUC, confirmUC)
	portalHandler := handlers.NewPortalHandler(portalUC)
	adminHandler := handlers.NewAdminHandler(manageCatalogUC, listScheduleUC, changeStatusUC)
	auditLogsHandler := handlers.NewAuditLogsHandler(d.DB)
	webHandler := handlers.NewWebHandler(catalogUC, cfg.SalonName, d.Logger)

	// ======================================================
	// WEB (HTML)
	// ======================================================
	r.GET("/", webHandler.Home)
	r.GET("/book", webHandler.Book)
	r.GET("/portal", webHandler.Portal)
	r.GET("/auth", webHandler.Auth)

	if d.Registry != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(d.Registry, promhttp.HandlerOpts{})))
	}

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)
		api.GET("/auth/session", middleware.OptionalAuth(cfg), authHandler.Session)

		// ------------------------------
		// CATALOGUE
		// ------------------------------
		api.GET("/services", catalogHandler.Services)
		api.GET("/services/categories", catalogHandler.Categories)
		api.GET("/staff", catalogHandler.Staff)

		// ------------------------------
		// BOOKING WIZARD
		// ------------------------------
		book := api.Group("/book/sessions")
		book.Use(middleware.OptionalAuth(cfg))
		{
			book.POST("", bookingHandler.Start)
			book.GET("/:id", bookingHandler.Get)
			book.PATCH("/:id", bookingHandler.Update)
			book.POST("/:id/next", bookingHandler.Next)
			book.POST("/:id/prev", bookingHandler.Prev)
			book.GET("/:id/calendar", bookingHandler.Calendar)
			book.GET("/:id/slots", bookingHandler.Slots)
			book.POST("/:id/confirm", bookingHandler.Confirm)
		}

		// ------------------------------
		// CLIENT PORTAL
		// ------------------------------
		portal := api.Group("/portal")
		portal.Use(middleware.AuthMiddleware(cfg))
		{
			portal.GET("/appointments", portalHandler.Appointments)
		}

		// ------------------------------
		// ADMIN
		// ------------------------------
		admin := api.Group("/admin")
		admin.Use(middleware.AuthMiddleware(cfg), middleware.RequireRole(models.RoleAdmin))
		{
			admin.POST("/services", adminHandler.CreateService)
			admin.PUT("/services/:id", adminHandler.UpdateService)
			admin.POST("/staff/:id/photo", adminHandler.UploadStaffPhoto)

			admin.GET("/appointments", adminHandler.ListByDate)
			admin.GET("/appointments/month", adminHandler.ListByMonth)
			admin.PATCH("/appointments/:id/cancel", adminHandler.Cancel)
			admin.PATCH("/appointments/:id/complete", adminHandler.Complete)

			admin.GET("/audit-logs", auditLogsHandler.List)
		}
	}

	return confirmUC
}
