package timezone

import "time"

// DefaultTimezone is the clinic timezone used when none is configured.
const DefaultTimezone = "America/Sao_Paulo"

func IsValid(tz string) bool {
	if tz == "" {
		return false
	}
	_, err := time.LoadLocation(tz)
	return err == nil
}

// Location loads tz, falling back to DefaultTimezone and then UTC.
func Location(tz string) *time.Location {
	for _, name := range []string{tz, DefaultTimezone} {
		if name == "" {
			continue
		}
		if loc, err := time.LoadLocation(name); err == nil {
			return loc
		}
	}
	return time.UTC
}

func NowIn(tz string) time.Time {
	return time.Now().In(Location(tz))
}

// WallClockUTC keeps t's wall-clock fields and relabels them as UTC.
// Appointment instants are exchanged on this axis.
func WallClockUTC(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
}

// StartOfDay returns midnight of the given YYYY-MM-DD date on the
// wall-clock axis.
func StartOfDay(date string) (time.Time, error) {
	return time.ParseInLocation("2006-01-02", date, time.UTC)
}
