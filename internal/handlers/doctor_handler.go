package handlers

import (
	"context"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/availability"
	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/clinic-scheduler/internal/logging"
	"github.com/BruksfildServices01/clinic-scheduler/internal/middleware"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
	"github.com/BruksfildServices01/clinic-scheduler/internal/timezone"
	ucAppointment "github.com/BruksfildServices01/clinic-scheduler/internal/usecase/appointment"
)

// OpeningHoursCache serves opening hours and forgets them after an update.
type OpeningHoursCache interface {
	OpeningHours(ctx context.Context, doctorID string) ([]availability.OpeningHour, error)
	Invalidate(ctx context.Context, doctorID string) error
}

type DoctorHandler struct {
	repo     domain.Repository
	hours    OpeningHoursCache
	slotsUC  *ucAppointment.GetAvailability
	timezone string
	logger   *zap.Logger
	now      func() time.Time
}

func NewDoctorHandler(
	repo domain.Repository,
	hours OpeningHoursCache,
	slotsUC *ucAppointment.GetAvailability,
	tz string,
	logger *zap.Logger,
) *DoctorHandler {
	return &DoctorHandler{
		repo:     repo,
		hours:    hours,
		slotsUC:  slotsUC,
		timezone: tz,
		logger:   logging.OrNop(logger),
		now:      time.Now,
	}
}

// ======================================================
// PROFILES
// ======================================================

func (h *DoctorHandler) List(c *gin.Context) {
	doctors, err := h.repo.ListDoctors(c.Request.Context(), c.Query("specialty"))
	if err != nil {
		writeUsecaseError(c, h.logger, err)
		return
	}

	httpresp.List(c, doctors)
}

func (h *DoctorHandler) Get(c *gin.Context) {
	doctor, err := h.repo.GetDoctor(c.Request.Context(), c.Param("id"))
	if err != nil {
		if isNotFound(err) {
			httperr.NotFound(c, "doctor_not_found", "Doctor not found.")
			return
		}
		writeUsecaseError(c, h.logger, err)
		return
	}

	httpresp.OK(c, doctor)
}

// ======================================================
// OPENING HOURS
// ======================================================

type OpeningHourInput struct {
	Day       string  `json:"day" binding:"required"`
	OpenHour  float64 `json:"openHour"`
	CloseHour float64 `json:"closeHour"`
	IsClosed  bool    `json:"isClosed"`
}

type OpeningHoursUpdateRequest struct {
	Hours []OpeningHourInput `json:"hours" binding:"required"`
}

func (h *DoctorHandler) GetOpeningHours(c *gin.Context) {
	hours, err := h.hours.OpeningHours(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeUsecaseError(c, h.logger, err)
		return
	}

	httpresp.List(c, hours)
}

// UpdateOpeningHours replaces the whole week of the doctor linked to the
// caller's account.
func (h *DoctorHandler) UpdateOpeningHours(c *gin.Context) {
	doctorID := c.Param("id")
	if c.GetString(middleware.ContextDoctorID) != doctorID {
		httperr.Forbidden(c, "forbidden", "You can only edit your own opening hours.")
		return
	}

	var req OpeningHoursUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	rows := make([]models.OpeningHour, 0, len(req.Hours))
	seen := make(map[string]bool, len(req.Hours))

	for _, in := range req.Hours {
		candidate := availability.OpeningHour{
			Day:       availability.Weekday(in.Day),
			OpenHour:  in.OpenHour,
			CloseHour: in.CloseHour,
			IsClosed:  in.IsClosed,
		}
		if !candidate.Valid() {
			httperr.BadRequest(c, "invalid_opening_hours", "Invalid opening hours for "+in.Day+".")
			return
		}
		if seen[in.Day] {
			httperr.BadRequest(c, "duplicate_day", "Each day may appear only once.")
			return
		}
		seen[in.Day] = true

		rows = append(rows, models.OpeningHour{
			DoctorID:  doctorID,
			Day:       in.Day,
			OpenHour:  in.OpenHour,
			CloseHour: in.CloseHour,
			IsClosed:  in.IsClosed,
		})
	}

	ctx := c.Request.Context()
	if err := h.repo.ReplaceOpeningHours(ctx, doctorID, rows); err != nil {
		writeUsecaseError(c, h.logger, err)
		return
	}
	if err := h.hours.Invalidate(ctx, doctorID); err != nil {
		h.logger.Warn("opening hours cache invalidation failed", zap.String("doctor_id", doctorID), zap.Error(err))
	}

	httpresp.List(c, models.OpeningHoursToDomain(rows))
}

// ======================================================
// SLOTS
// ======================================================

// Slots returns the free slots of the next ?days days (default 7), grouped
// by date in the clinic timezone.
func (h *DoctorHandler) Slots(c *gin.Context) {
	days := 0
	if raw := c.Query("days"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			httperr.BadRequest(c, "invalid_days", "days must be a positive number.")
			return
		}
		days = n
	}

	groups, err := h.slotsUC.Execute(c.Request.Context(), domain.AvailabilityInput{
		DoctorID: c.Param("id"),
		Days:     days,
		Now:      h.now().In(timezone.Location(h.timezone)),
	})
	if err != nil {
		if isNotFound(err) {
			httperr.NotFound(c, "doctor_not_found", "Doctor not found.")
			return
		}
		writeUsecaseError(c, h.logger, err)
		return
	}

	httpresp.List(c, groups)
}
