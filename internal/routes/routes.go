package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/minorebarber/booking-api/internal/audit"
	"github.com/minorebarber/booking-api/internal/backup"
	"github.com/minorebarber/booking-api/internal/config"
	"github.com/minorebarber/booking-api/internal/handlers"
	infraRepo "github.com/minorebarber/booking-api/internal/infra/repository"
	"github.com/minorebarber/booking-api/internal/middleware"
	"github.com/minorebarber/booking-api/internal/notify"
	"github.com/minorebarber/booking-api/internal/refresh"
	ucBooking "github.com/minorebarber/booking-api/internal/usecase/booking"
)

// Deps holds the long-lived singletons the router wires into handlers.
// main builds one of these and hands the sweep-related pieces to the
// background scheduler as well.
type Deps struct {
	Repo     *infraRepo.BookingGormRepository
	Audit    *audit.Dispatcher
	Notify   *notify.Dispatcher
	Refresh  *refresh.Trigger
	Exporter *backup.Exporter
	Sweep    *ucBooking.Sweep
}

func NewDeps(db *gorm.DB, cfg *config.Config) *Deps {
	repo := infraRepo.NewBookingGormRepository(db)

	auditDispatcher := audit.NewDispatcher(audit.New(db))

	var notifier notify.Notifier
	if smtp := notify.NewSMTPNotifier(
		cfg.SMTPHost,
		cfg.SMTPPort,
		cfg.SMTPUser,
		cfg.SMTPPassword,
		cfg.EmailFrom,
		cfg.BaseURL,
	); smtp != nil {
		notifier = smtp
	}
	notifyDispatcher := notify.NewDispatcher(notifier)

	refreshTrigger := refresh.NewTrigger(cfg.RedisAddr, cfg.RedisPassword)
	exporter := backup.NewExporter(db, cfg.S3Bucket, cfg.S3Region, cfg.S3AccessKey, cfg.S3SecretKey)

	return &Deps{
		Repo:     repo,
		Audit:    auditDispatcher,
		Notify:   notifyDispatcher,
		Refresh:  refreshTrigger,
		Exporter: exporter,
		Sweep:    ucBooking.NewSweep(repo, auditDispatcher),
	}
}

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config, deps *Deps) {

	// ======================================================
	// USE CASES
	// ======================================================
	policy := cfg.Policy()

	availabilityUC := ucBooking.NewGetAvailability(deps.Repo, policy)
	assignUC := ucBooking.NewAssignBarber(deps.Repo, policy)

	createUC := ucBooking.NewCreateAppointment(
		deps.Repo,
		assignUC,
		deps.Audit,
		deps.Notify,
		deps.Refresh,
	)

	checkoutUC := ucBooking.NewCheckout(deps.Repo, deps.Audit)

	cancelUC := ucBooking.NewCancelAppointment(
		deps.Repo,
		deps.Audit,
		deps.Notify,
		deps.Refresh,
	)

	cancelByTokenUC := ucBooking.NewCancelByToken(
		deps.Repo,
		deps.Audit,
		deps.Notify,
		deps.Refresh,
	)

	updateDetailsUC := ucBooking.NewUpdateAppointmentDetails(
		deps.Repo,
		deps.Audit,
		deps.Refresh,
	)

	reportUC := ucBooking.NewRevenueReport(deps.Repo)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)

	publicHandler := handlers.NewPublicHandler(
		db,
		availabilityUC,
		createUC,
		cancelByTokenUC,
		deps.Refresh,
	)

	appointmentHandler := handlers.NewAppointmentHandler(
		db,
		createUC,
		availabilityUC,
		checkoutUC,
		cancelUC,
		updateDetailsUC,
	)

	barberHandler := handlers.NewBarberHandler(db, deps.Audit)
	serviceHandler := handlers.NewServiceHandler(db, deps.Audit)
	scheduleHandler := handlers.NewScheduleHandler(db, deps.Audit, deps.Refresh)
	revenueHandler := handlers.NewRevenueHandler(reportUC)
	maintenanceHandler := handlers.NewMaintenanceHandler(deps.Sweep, deps.Exporter)
	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	// ======================================================
	// PUBLIC ROUTES
	// ======================================================
	public := r.Group("/api/public")
	{
		public.GET("/locations", publicHandler.ListLocations)
		public.GET("/services", publicHandler.ListServices)
		public.GET("/barbers", publicHandler.ListBarbers)
		public.GET("/availability", publicHandler.Availability)

		public.POST("/appointments", publicHandler.CreateAppointment)
		public.GET("/cancel/:token", publicHandler.CancelByToken)

		public.GET("/last-update", publicHandler.LastUpdate)
	}

	r.POST("/api/auth/login", authHandler.Login)

	// ======================================================
	// STAFF ROUTES
	// ======================================================
	api := r.Group("/api")
	api.Use(middleware.AuthMiddleware(cfg))
	{
		api.GET("/me", authHandler.Me)

		appointments := api.Group("/appointments")
		{
			appointments.POST("", appointmentHandler.CreateWalkin)
			appointments.GET("/availability", appointmentHandler.Availability)
			appointments.GET("/today", appointmentHandler.Today)
			appointments.GET("", appointmentHandler.ListByDate)

			appointments.POST("/:id/checkout", appointmentHandler.Checkout)
			appointments.POST("/:id/cancel", appointmentHandler.Cancel)
			appointments.PUT("/:id", appointmentHandler.UpdateDetails)
		}

		barbers := api.Group("/barbers")
		{
			barbers.GET("", barberHandler.List)
			barbers.POST("", barberHandler.Create)
			barbers.PUT("/:id", barberHandler.Update)
			barbers.DELETE("/:id", barberHandler.Delete)
		}

		services := api.Group("/services")
		{
			services.GET("", serviceHandler.List)
			services.POST("", serviceHandler.Create)
			services.PUT("/:id", serviceHandler.Update)
			services.DELETE("/:id", serviceHandler.Delete)
		}

		schedule := api.Group("/schedule")
		{
			schedule.GET("", scheduleHandler.Get)
			schedule.PUT("/hours", scheduleHandler.UpdateHours)
			schedule.PUT("/open", scheduleHandler.ToggleOpen)
			schedule.PUT("/weekday", scheduleHandler.SetWeekday)
		}

		revenue := api.Group("/revenue")
		{
			revenue.GET("/daily", revenueHandler.Daily)
			revenue.GET("/weekly", revenueHandler.Weekly)
			revenue.GET("/monthly", revenueHandler.Monthly)
		}

		maintenance := api.Group("/maintenance")
		{
			maintenance.POST("/sweep", maintenanceHandler.Sweep)
			maintenance.POST("/export", maintenanceHandler.Export)
		}

		api.GET("/audit-logs", auditLogsHandler.List)
	}
}
