package handlers

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/booking"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/clinic-scheduler/internal/logging"
	"github.com/BruksfildServices01/clinic-scheduler/internal/middleware"
	"github.com/BruksfildServices01/clinic-scheduler/internal/timezone"
	ucAppointment "github.com/BruksfildServices01/clinic-scheduler/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	createUC   *ucAppointment.CreateAppointment
	cancelUC   *ucAppointment.CancelAppointment
	completeUC *ucAppointment.CompleteAppointment
	confirmUC  *ucAppointment.ConfirmAppointment
	listMineUC *ucAppointment.ListPatientAppointments
	agendaUC   *ucAppointment.ListDoctorAgenda
	logger     *zap.Logger
}

func NewAppointmentHandler(
	createUC *ucAppointment.CreateAppointment,
	cancelUC *ucAppointment.CancelAppointment,
	completeUC *ucAppointment.CompleteAppointment,
	confirmUC *ucAppointment.ConfirmAppointment,
	listMineUC *ucAppointment.ListPatientAppointments,
	agendaUC *ucAppointment.ListDoctorAgenda,
	logger *zap.Logger,
) *AppointmentHandler {
	return &AppointmentHandler{
		createUC:   createUC,
		cancelUC:   cancelUC,
		completeUC: completeUC,
		confirmUC:  confirmUC,
		listMineUC: listMineUC,
		agendaUC:   agendaUC,
		logger:     logging.OrNop(logger),
	}
}

// ======================================================
// CREATE
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	patientID := c.GetString(middleware.ContextUserID)

	var req booking.AppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid payload.")
		return
	}
	if req.DoctorID == "" || req.StartsAt == "" {
		httperr.BadRequest(c, "invalid_request", "doctorId and startsAt are required.")
		return
	}

	ap, err := h.createUC.Execute(c.Request.Context(), ucAppointment.CreateAppointmentInput{
		PatientID: patientID,
		DoctorID:  req.DoctorID,
		StartsAt:  req.StartsAt,
		EndsAt:    req.EndsAt,
		Status:    req.Status,
	})
	if err != nil {
		writeUsecaseError(c, h.logger, err)
		return
	}

	httpresp.Created(c, ap.ToDomain())
}

// ======================================================
// PATIENT
// ======================================================

func (h *AppointmentHandler) ListMine(c *gin.Context) {
	out, err := h.listMineUC.Execute(c.Request.Context(), c.GetString(middleware.ContextUserID))
	if err != nil {
		writeUsecaseError(c, h.logger, err)
		return
	}

	httpresp.List(c, out)
}

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	ap, err := h.cancelUC.Execute(
		c.Request.Context(),
		c.GetString(middleware.ContextUserID),
		c.Param("id"),
	)
	if err != nil {
		writeUsecaseError(c, h.logger, err)
		return
	}

	httpresp.OK(c, ap.ToDomain())
}

// ======================================================
// DOCTOR
// ======================================================

// Agenda lists the calling doctor's appointments on ?date=YYYY-MM-DD.
func (h *AppointmentHandler) Agenda(c *gin.Context) {
	date, err := timezone.StartOfDay(c.Query("date"))
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Use date=YYYY-MM-DD.")
		return
	}

	out, err := h.agendaUC.Execute(c.Request.Context(), c.GetString(middleware.ContextDoctorID), date)
	if err != nil {
		writeUsecaseError(c, h.logger, err)
		return
	}

	httpresp.List(c, out)
}

func (h *AppointmentHandler) Complete(c *gin.Context) {
	ap, err := h.completeUC.Execute(
		c.Request.Context(),
		c.GetString(middleware.ContextDoctorID),
		c.GetString(middleware.ContextUserID),
		c.Param("id"),
	)
	if err != nil {
		writeUsecaseError(c, h.logger, err)
		return
	}

	httpresp.OK(c, ap.ToDomain())
}

func (h *AppointmentHandler) Confirm(c *gin.Context) {
	ap, err := h.confirmUC.Execute(
		c.Request.Context(),
		c.GetString(middleware.ContextDoctorID),
		c.GetString(middleware.ContextUserID),
		c.Param("id"),
	)
	if err != nil {
		writeUsecaseError(c, h.logger, err)
		return
	}

	httpresp.OK(c, ap.ToDomain())
}
