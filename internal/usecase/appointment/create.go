package appointment

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/clinic-scheduler/internal/audit"
	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/availability"
	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/booking"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/logging"
	"github.com/BruksfildServices01/clinic-scheduler/internal/metrics"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
	"github.com/BruksfildServices01/clinic-scheduler/internal/timezone"
)

// OpeningHoursProvider supplies a doctor's weekly hours, possibly cached.
type OpeningHoursProvider interface {
	OpeningHours(ctx context.Context, doctorID string) ([]availability.OpeningHour, error)
}

// ======================================================
// INPUT
// ======================================================

type CreateAppointmentInput struct {
	PatientID string
	DoctorID  string
	StartsAt  string
	EndsAt    string
	Status    string
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	repo     domain.Repository
	hours    OpeningHoursProvider
	audit    *audit.Dispatcher
	metrics  *metrics.BookingMetrics
	logger   *zap.Logger
	timezone string
	now      func() time.Time
}

func NewCreateAppointment(
	repo domain.Repository,
	hours OpeningHoursProvider,
	audit *audit.Dispatcher,
	m *metrics.BookingMetrics,
	logger *zap.Logger,
	tz string,
) *CreateAppointment {
	return &CreateAppointment{
		repo:     repo,
		hours:    hours,
		audit:    audit,
		metrics:  m,
		logger:   logging.OrNop(logger),
		timezone: tz,
		now:      time.Now,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in CreateAppointmentInput,
) (*models.Appointment, error) {

	// --------------------------------------------------
	// 1️⃣ Payload
	// --------------------------------------------------
	if in.Status != "" && in.Status != string(domain.InitialStatus()) {
		uc.metrics.ObserveCreate("invalid")
		return nil, httperr.ErrBusiness("invalid_status")
	}

	start, err := booking.ParseWireTime(in.StartsAt)
	if err != nil {
		uc.metrics.ObserveCreate("invalid")
		return nil, httperr.ErrBusiness("invalid_date_or_time")
	}
	start = start.UTC()

	end := start.Add(booking.AppointmentDuration)
	if in.EndsAt != "" {
		end, err = booking.ParseWireTime(in.EndsAt)
		if err != nil || !end.After(start) {
			uc.metrics.ObserveCreate("invalid")
			return nil, httperr.ErrBusiness("invalid_date_or_time")
		}
		end = end.UTC()
	}

	// --------------------------------------------------
	// 2️⃣ Past slots, on the clinic wall-clock axis
	// --------------------------------------------------
	now := timezone.WallClockUTC(uc.now().In(timezone.Location(uc.timezone)))
	if !start.After(now) {
		uc.metrics.ObserveCreate("invalid")
		return nil, httperr.ErrBusiness("too_soon")
	}

	// --------------------------------------------------
	// 3️⃣ Doctor + opening hours
	// --------------------------------------------------
	if _, err := uc.repo.GetDoctor(ctx, in.DoctorID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			uc.metrics.ObserveCreate("invalid")
			return nil, httperr.ErrBusiness("doctor_not_found")
		}
		return nil, err
	}

	hours, err := uc.hours.OpeningHours(ctx, in.DoctorID)
	if err != nil {
		return nil, err
	}
	if !domain.WithinOpeningHours(hours, start) {
		uc.metrics.ObserveCreate("invalid")
		return nil, httperr.ErrBusiness("outside_opening_hours")
	}

	// --------------------------------------------------
	// 4️⃣ Conflict check + insert
	// --------------------------------------------------
	ap := &models.Appointment{
		DoctorID:  in.DoctorID,
		PatientID: in.PatientID,
		StartTime: start,
		EndTime:   end,
		Status:    string(domain.InitialStatus()),
	}

	if err := uc.repo.CreateIfFree(ctx, ap); err != nil {
		if httperr.IsBusiness(err, "time_conflict") || httperr.IsExclusionConflict(err) {
			uc.metrics.ObserveCreate("conflict")
			uc.audit.Dispatch(audit.Event{
				DoctorID: in.DoctorID,
				UserID:   &in.PatientID,
				Action:   "appointment_conflict",
				Entity:   "appointment",
				Metadata: map[string]any{"start": start, "end": end},
			})
			return nil, httperr.ErrBusiness("time_conflict")
		}
		uc.metrics.ObserveCreate("error")
		return nil, err
	}

	// --------------------------------------------------
	// 5️⃣ Audit
	// --------------------------------------------------
	uc.metrics.ObserveCreate("created")
	uc.audit.Dispatch(audit.Event{
		DoctorID: in.DoctorID,
		UserID:   &in.PatientID,
		Action:   "appointment_created",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})
	uc.logger.Info("appointment created",
		zap.String("appointment_id", ap.ID),
		zap.String("doctor_id", ap.DoctorID),
		zap.Time("start", start),
	)

	return ap, nil
}
