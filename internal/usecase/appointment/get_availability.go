package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/availability"
	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/booking"
	"github.com/BruksfildServices01/clinic-scheduler/internal/metrics"
	"github.com/BruksfildServices01/clinic-scheduler/internal/timezone"
)

const maxHorizonDays = 60

type GetAvailability struct {
	repo    domain.Repository
	hours   OpeningHoursProvider
	metrics *metrics.BookingMetrics
}

func NewGetAvailability(
	repo domain.Repository,
	hours OpeningHoursProvider,
	m *metrics.BookingMetrics,
) *GetAvailability {
	return &GetAvailability{repo: repo, hours: hours, metrics: m}
}

// Execute generates the doctor's slots for the days after in.Now, removes
// the ones taken by blocking appointments and groups the rest by date.
// An unknown doctor yields gorm.ErrRecordNotFound.
func (uc *GetAvailability) Execute(
	ctx context.Context,
	in domain.AvailabilityInput,
) ([]availability.DateGroup, error) {

	days := in.Days
	if days <= 0 {
		days = availability.DefaultHorizonDays
	}
	if days > maxHorizonDays {
		days = maxHorizonDays
	}

	if _, err := uc.repo.GetDoctor(ctx, in.DoctorID); err != nil {
		return nil, err
	}

	hours, err := uc.hours.OpeningHours(ctx, in.DoctorID)
	if err != nil {
		return nil, err
	}

	slots := availability.Generate(hours, in.Now, days, availability.DefaultSlotMinutes)

	// window on the wall-clock axis: tomorrow 00:00 .. day after the horizon
	today := timezone.WallClockUTC(in.Now)
	from := time.Date(today.Year(), today.Month(), today.Day()+1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, days)

	booked, err := uc.repo.ListBlockingForPeriod(ctx, in.DoctorID, from, to)
	if err != nil {
		return nil, err
	}

	free := domain.FreeSlots(slots, booked, booking.AppointmentDuration)
	uc.metrics.ObserveSlots(len(free))

	return availability.GroupByDate(free), nil
}
