package routes

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/bossofclean/cleaner-scheduler/internal/audit"
	"github.com/bossofclean/cleaner-scheduler/internal/config"
	domain "github.com/bossofclean/cleaner-scheduler/internal/domain/booking"
	"github.com/bossofclean/cleaner-scheduler/internal/events"
	"github.com/bossofclean/cleaner-scheduler/internal/handlers"
	"github.com/bossofclean/cleaner-scheduler/internal/middleware"
	ucBooking "github.com/bossofclean/cleaner-scheduler/internal/usecase/booking"
	"github.com/bossofclean/cleaner-scheduler/internal/usecase/schedule"
)

// Deps are the singletons built by the caller (storage, audit, events).
type Deps struct {
	Config   *config.Config
	Log      *zap.Logger
	Location *time.Location

	Bookings  domain.Repository
	Schedule  schedule.Repository
	AuditLogs handlers.AuditLogLister

	Audit  *audit.Dispatcher
	Events events.Publisher
}

// Services are use cases that also run outside HTTP.
type Services struct {
	BlockedDates *schedule.BlockedDates
}

func RegisterRoutes(r *gin.Engine, d Deps) Services {

	// ======================================================
	// MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.CORSMiddleware(d.Config.CORSOrigins))

	// ======================================================
	// USE CASES: BOOKINGS
	// ======================================================
	availabilityUC := ucBooking.NewGetAvailability(d.Bookings, d.Location)
	checkDateUC := ucBooking.NewCheckDate(d.Bookings, d.Location)
	createUC := ucBooking.NewCreateBooking(d.Bookings, d.Location, d.Audit, d.Events)
	getUC := ucBooking.NewGetBooking(d.Bookings, d.Location)
	rescheduleUC := ucBooking.NewRescheduleBooking(d.Bookings, d.Location, d.Audit, d.Events)
	cancelUC := ucBooking.NewCancelBooking(d.Bookings, d.Location, d.Audit, d.Events)
	completeUC := ucBooking.NewCompleteBooking(d.Bookings, d.Location, d.Audit)
	listUC := ucBooking.NewListBookings(d.Bookings)

	// ======================================================
	// USE CASES: SCHEDULE
	// ======================================================
	getWeeklyUC := schedule.NewGetWeeklyAvailability(d.Schedule)
	updateWeeklyUC := schedule.NewUpdateWeeklyAvailability(d.Schedule, d.Audit, d.Events)
	blockedDatesUC := schedule.NewBlockedDates(d.Schedule, d.Location, d.Audit, d.Events)

	// ======================================================
	// HANDLERS
	// ======================================================
	publicHandler := handlers.NewPublicHandler(availabilityUC, checkDateUC, d.Log)
	bookingHandler := handlers.NewBookingHandler(
		createUC,
		getUC,
		rescheduleUC,
		cancelUC,
		completeUC,
		listUC,
		d.Log,
	)
	availabilityHandler := handlers.NewAvailabilityHandler(getWeeklyUC, updateWeeklyUC, d.Log)
	blockedDatesHandler := handlers.NewBlockedDatesHandler(blockedDatesUC, d.Log)
	auditLogsHandler := handlers.NewAuditLogsHandler(d.AuditLogs, d.Log)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// PUBLIC
		// ------------------------------
		public := api.Group("/public")
		public.Use(middleware.RateLimitMiddleware(d.Config.RateLimitRPS, d.Config.RateLimitBurst, d.Log))
		{
			public.GET("/cleaners/:id/availability", publicHandler.Availability)
			public.GET("/cleaners/:id/eligibility", publicHandler.Eligibility)
		}

		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(d.Config))

		// ------------------------------
		// BOOKINGS
		// ------------------------------
		customer := middleware.RequireRole(domain.RoleCustomer)
		cleaner := middleware.RequireRole(domain.RoleCleaner)
		anyone := middleware.RequireRole(domain.RoleCustomer, domain.RoleCleaner)

		secured.POST("/bookings", customer, bookingHandler.Create)
		secured.GET("/bookings/:id", anyone, bookingHandler.Get)
		secured.PATCH("/bookings/:id/reschedule", customer, bookingHandler.Reschedule)
		secured.PATCH("/bookings/:id/cancel", anyone, bookingHandler.Cancel)
		secured.PATCH("/bookings/:id/complete", cleaner, bookingHandler.Complete)

		// ------------------------------
		// CLEANER SELF-SERVICE
		// ------------------------------
		me := secured.Group("/me")
		me.Use(cleaner)
		{
			me.GET("/bookings", bookingHandler.ListByDate)
			me.GET("/bookings/month", bookingHandler.ListByMonth)

			me.GET("/availability", availabilityHandler.Get)
			me.PUT("/availability", availabilityHandler.Update)

			me.GET("/blocked-dates", blockedDatesHandler.List)
			me.POST("/blocked-dates", blockedDatesHandler.Add)
			me.DELETE("/blocked-dates/:date", blockedDatesHandler.Remove)

			me.GET("/audit-logs", auditLogsHandler.List)
		}
	}

	return Services{BlockedDates: blockedDatesUC}
}
