package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/BruksfildServices01/clinic-scheduler/internal/auth"
	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/availability"
	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/booking"
)

// OpeningHoursSource supplies a doctor's weekly opening hours.
type OpeningHoursSource interface {
	OpeningHours(ctx context.Context, doctorID string) ([]availability.OpeningHour, error)
}

// Flow owns one booking session for a doctor: the generated date groups,
// the user's selection and the submitter.
type Flow struct {
	doctorID  string
	submitter *Submitter
	selection *domain.Selection
	groups    []availability.DateGroup

	HorizonDays int
	SlotMinutes int
}

func NewFlow(doctorID string, submitter *Submitter) *Flow {
	return &Flow{
		doctorID:    doctorID,
		submitter:   submitter,
		selection:   domain.NewSelection(),
		groups:      []availability.DateGroup{},
		HorizonDays: availability.DefaultHorizonDays,
		SlotMinutes: availability.DefaultSlotMinutes,
	}
}

// Load regenerates the date groups from opening hours. Any previous
// selection is discarded since it may point at slots that no longer exist.
func (f *Flow) Load(hours []availability.OpeningHour, ref time.Time) []availability.DateGroup {
	slots := availability.Generate(hours, ref, f.HorizonDays, f.SlotMinutes)
	f.groups = availability.GroupByDate(slots)
	f.selection.Reset()
	return f.groups
}

// Refresh fetches opening hours from src and reloads the groups.
func (f *Flow) Refresh(
	ctx context.Context,
	src OpeningHoursSource,
	ref time.Time,
) ([]availability.DateGroup, error) {
	hours, err := src.OpeningHours(ctx, f.doctorID)
	if err != nil {
		return nil, err
	}
	return f.Load(hours, ref), nil
}

func (f *Flow) Groups() []availability.DateGroup {
	return f.groups
}

func (f *Flow) Selection() *domain.Selection {
	return f.selection
}

func (f *Flow) PickDate(date string) error {
	for _, g := range f.groups {
		if g.Date == date {
			f.selection.SelectDate(g)
			return nil
		}
	}
	return fmt.Errorf("no slots on %s", date)
}

func (f *Flow) PickTime(hhmm string) error {
	date := f.selection.Date()
	if date == nil {
		return domain.ErrNoDateSelected
	}
	slot, ok := date.Find(hhmm)
	if !ok {
		return fmt.Errorf("%w: %s on %s", domain.ErrSlotNotInDate, hhmm, date.Date)
	}
	return f.selection.SelectTime(slot)
}

// Confirm submits the selection. It resets the selection on success and
// leaves it intact on every failure.
func (f *Flow) Confirm(ctx context.Context, identity *auth.Identity) (*domain.Appointment, error) {
	ap, err := f.submitter.Submit(ctx, f.selection, f.doctorID, identity)
	if err != nil {
		return nil, err
	}
	f.selection.Reset()
	return ap, nil
}

// UserMessage maps a submission failure to the text shown to the patient.
func UserMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, domain.ErrIncompleteSelection):
		return "Please choose a date and a time."
	case errors.Is(err, domain.ErrUnauthenticated):
		return "Please sign in to book an appointment."
	case errors.Is(err, domain.ErrSlotConflict):
		return "This time was just taken. Please pick another time."
	case errors.Is(err, domain.ErrSubmitInProgress):
		return "Your booking is being processed."
	case errors.Is(err, context.Canceled):
		return ""
	default:
		return "Something went wrong. Please try again."
	}
}
