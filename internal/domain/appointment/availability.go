package appointment

import (
	"time"

	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/availability"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

// WithinOpeningHours reports whether an appointment starting at start fits
// the doctor's weekly hours. Wire instants carry the clinic wall-clock time
// in their UTC fields, so the weekday and minute are read in UTC.
func WithinOpeningHours(hours []availability.OpeningHour, start time.Time) bool {
	start = start.UTC()
	day := availability.WeekdayOf(start.Weekday())
	minute := start.Hour()*60 + start.Minute()

	for _, h := range hours {
		if h.Day == day && h.Covers(minute) {
			return true
		}
	}
	return false
}

// WallClock places a slot on the same UTC wall-clock axis used by stored
// appointments.
func WallClock(s availability.Slot) (time.Time, error) {
	return time.ParseInLocation("2006-01-02 15:04", s.Date+" "+s.Time, time.UTC)
}

// FreeSlots drops slots that overlap a blocking appointment. Appointments
// must be ordered by start time.
func FreeSlots(
	slots []availability.Slot,
	booked []models.Appointment,
	duration time.Duration,
) []availability.Slot {

	free := make([]availability.Slot, 0, len(slots))
	apIdx := 0

	for _, s := range slots {
		slotStart, err := WallClock(s)
		if err != nil {
			continue
		}
		slotEnd := slotStart.Add(duration)

		// skip appointments that already ended
		for apIdx < len(booked) && !booked[apIdx].EndTime.After(slotStart) {
			apIdx++
		}

		conflict := false
		for i := apIdx; i < len(booked) && booked[i].StartTime.Before(slotEnd); i++ {
			if slotStart.Before(booked[i].EndTime) && slotEnd.After(booked[i].StartTime) {
				conflict = true
				break
			}
		}

		if !conflict {
			free = append(free, s)
		}
	}

	return free
}
