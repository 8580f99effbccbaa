package availability

import (
	"math"
	"time"
)

// ===============================
// Weekday
// ===============================

type Weekday string

const (
	Monday    Weekday = "MON"
	Tuesday   Weekday = "TUE"
	Wednesday Weekday = "WED"
	Thursday  Weekday = "THU"
	Friday    Weekday = "FRI"
	Saturday  Weekday = "SAT"
	Sunday    Weekday = "SUN"
)

var weekdayCodes = [...]Weekday{
	time.Sunday:    Sunday,
	time.Monday:    Monday,
	time.Tuesday:   Tuesday,
	time.Wednesday: Wednesday,
	time.Thursday:  Thursday,
	time.Friday:    Friday,
	time.Saturday:  Saturday,
}

// WeekdayOf converts a time.Weekday into its three-letter code.
func WeekdayOf(d time.Weekday) Weekday {
	return weekdayCodes[d]
}

func (w Weekday) Valid() bool {
	for _, c := range weekdayCodes {
		if c == w {
			return true
		}
	}
	return false
}

// ===============================
// Opening hours
// ===============================

// OpeningHour is one weekly availability window of a doctor.
// OpenHour and CloseHour are fractional hours of the day (17.5 = 17:30).
type OpeningHour struct {
	ID        string  `json:"id"`
	DoctorID  string  `json:"doctorId"`
	Day       Weekday `json:"day"`
	OpenHour  float64 `json:"openHour"`
	CloseHour float64 `json:"closeHour"`
	IsClosed  bool    `json:"isClosed"`
}

// Valid reports whether the window can produce slots. Closed records are
// valid but empty.
func (h OpeningHour) Valid() bool {
	if !h.Day.Valid() {
		return false
	}
	if h.IsClosed {
		return true
	}
	if math.IsNaN(h.OpenHour) || math.IsNaN(h.CloseHour) {
		return false
	}
	if h.OpenHour < 0 || h.CloseHour > 24 {
		return false
	}
	return h.OpenHour < h.CloseHour
}

// OpenMinutes returns the opening time as minutes from midnight.
func (h OpeningHour) OpenMinutes() int {
	return hourToMinutes(h.OpenHour)
}

// CloseMinutes returns the closing time as minutes from midnight.
func (h OpeningHour) CloseMinutes() int {
	return hourToMinutes(h.CloseHour)
}

// Covers reports whether a slot starting at minute m of an open day falls
// inside this window. Only the start is checked.
func (h OpeningHour) Covers(m int) bool {
	if h.IsClosed || !h.Valid() {
		return false
	}
	return m >= h.OpenMinutes() && m < h.CloseMinutes()
}

func hourToMinutes(h float64) int {
	return int(math.Round(h * 60))
}
