package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/clinic-scheduler/internal/audit"
	"github.com/BruksfildServices01/clinic-scheduler/internal/auth"
	"github.com/BruksfildServices01/clinic-scheduler/internal/cache"
	"github.com/BruksfildServices01/clinic-scheduler/internal/config"
	"github.com/BruksfildServices01/clinic-scheduler/internal/handlers"
	infraRepo "github.com/BruksfildServices01/clinic-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/clinic-scheduler/internal/metrics"
	"github.com/BruksfildServices01/clinic-scheduler/internal/middleware"
	ucAppointment "github.com/BruksfildServices01/clinic-scheduler/internal/usecase/appointment"
)

// RegisterRoutes wires every handler onto r. The returned function flushes
// background workers and must be called on shutdown.
func RegisterRoutes(
	r *gin.Engine,
	db *gorm.DB,
	rdb *redis.Client,
	cfg *config.Config,
	logger *zap.Logger,
) func() {

	// ======================================================
	// MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.RequestLogger(logger), middleware.CORSMiddleware())

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	appointmentRepo := infraRepo.NewAppointmentGormRepository(db)
	userRepo := infraRepo.NewUserGormRepository(db)
	auditRepo := infraRepo.NewAuditGormRepository(db)

	auditDispatcher := audit.NewDispatcher(audit.New(db), logger)

	openingHours := cache.NewOpeningHours(rdb, appointmentRepo, cfg.OpeningHoursTTL, logger)

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	bookingMetrics := metrics.NewBookingMetrics(registry)

	tokens := auth.NewTokens(cfg.JWTSecret, auth.DefaultTokenTTL)

	// ======================================================
	// USE CASES: APPOINTMENTS
	// ======================================================
	createAppointmentUC := ucAppointment.NewCreateAppointment(
		appointmentRepo,
		openingHours,
		auditDispatcher,
		bookingMetrics,
		logger,
		cfg.ClinicTimezone,
	)

	cancelAppointmentUC := ucAppointment.NewCancelAppointment(
		appointmentRepo,
		auditDispatcher,
	)

	completeAppointmentUC := ucAppointment.NewCompleteAppointment(
		appointmentRepo,
		auditDispatcher,
	)

	confirmAppointmentUC := ucAppointment.NewConfirmAppointment(
		appointmentRepo,
		auditDispatcher,
	)

	listPatientAppointmentsUC := ucAppointment.NewListPatientAppointments(appointmentRepo)
	listDoctorAgendaUC := ucAppointment.NewListDoctorAgenda(appointmentRepo)

	getAvailabilityUC := ucAppointment.NewGetAvailability(
		appointmentRepo,
		openingHours,
		bookingMetrics,
	)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(userRepo, tokens, logger)
	meHandler := handlers.NewMeHandler(userRepo)

	doctorHandler := handlers.NewDoctorHandler(
		appointmentRepo,
		openingHours,
		getAvailabilityUC,
		cfg.ClinicTimezone,
		logger,
	)

	appointmentHandler := handlers.NewAppointmentHandler(
		createAppointmentUC,
		cancelAppointmentUC,
		completeAppointmentUC,
		confirmAppointmentUC,
		listPatientAppointmentsUC,
		listDoctorAgendaUC,
		logger,
	)

	auditLogsHandler := handlers.NewAuditLogsHandler(auditRepo, logger)

	// ======================================================
	// OPS
	// ======================================================
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

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

		// ------------------------------
		// PUBLIC CATALOGUE
		// ------------------------------
		api.GET("/doctors", doctorHandler.List)
		api.GET("/doctors/:id", doctorHandler.Get)
		api.GET("/doctors/:id/opening-hours", doctorHandler.GetOpeningHours)
		api.GET("/doctors/:id/slots", doctorHandler.Slots)

		// ------------------------------
		// PRIVATE API
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(tokens))
		{
			secured.GET("/me", meHandler.GetMe)

			secured.POST("/appointments", appointmentHandler.Create)
			secured.GET("/me/appointments", appointmentHandler.ListMine)
			secured.PATCH("/me/appointments/:id/cancel", appointmentHandler.Cancel)

			doctorOnly := secured.Group("/")
			doctorOnly.Use(middleware.RequireRole(auth.RoleDoctor))
			{
				doctorOnly.PUT("/doctors/:id/opening-hours", doctorHandler.UpdateOpeningHours)
				doctorOnly.GET("/doctor/appointments", appointmentHandler.Agenda)
				doctorOnly.PATCH("/doctor/appointments/:id/confirm", appointmentHandler.Confirm)
				doctorOnly.PATCH("/doctor/appointments/:id/complete", appointmentHandler.Complete)
				doctorOnly.GET("/doctor/audit-logs", auditLogsHandler.List)
			}
		}
	}

	return auditDispatcher.Close
}
