package availability

import (
	"fmt"
	"sort"
	"time"
)

const (
	DefaultHorizonDays = 7
	DefaultSlotMinutes = 30
)

// Slot is a bookable start time on a concrete calendar date.
// DayLabel, DayNumber and Month are display-only.
type Slot struct {
	ID          string `json:"id"`
	Date        string `json:"date"`
	DayLabel    string `json:"dayLabel"`
	DayNumber   int    `json:"dayNumber"`
	Month       string `json:"month"`
	Time        string `json:"time"`
	TimeMinutes int    `json:"timeMinutes"`
}

// Generate turns weekly opening hours into concrete slots for the days
// following ref (ref's own date is never included). Dates are taken from
// ref's location. A slot is emitted for every step that starts before the
// closing minute, even when it runs past closing.
//
// Non-positive horizonDays or slotMinutes select the defaults.
func Generate(hours []OpeningHour, ref time.Time, horizonDays, slotMinutes int) []Slot {
	if horizonDays <= 0 {
		horizonDays = DefaultHorizonDays
	}
	if slotMinutes <= 0 {
		slotMinutes = DefaultSlotMinutes
	}

	byDay := indexByDay(hours)
	slots := []Slot{}

	for offset := 1; offset <= horizonDays; offset++ {
		day := time.Date(ref.Year(), ref.Month(), ref.Day()+offset, 0, 0, 0, 0, ref.Location())

		records := byDay[WeekdayOf(day.Weekday())]
		if len(records) == 0 {
			continue
		}

		date := day.Format("2006-01-02")
		last := -1

		for _, rec := range records {
			closeMin := rec.CloseMinutes()
			for m := rec.OpenMinutes(); m < closeMin; m += slotMinutes {
				// overlapping windows on the same day
				if m <= last {
					continue
				}
				slots = append(slots, Slot{
					ID:          fmt.Sprintf("%s-%s-%d", rec.ID, date, m),
					Date:        date,
					DayLabel:    day.Format("Mon"),
					DayNumber:   day.Day(),
					Month:       day.Format("Jan"),
					Time:        FormatMinutes(m),
					TimeMinutes: m,
				})
				last = m
			}
		}
	}

	return slots
}

// FormatMinutes renders minutes from midnight as HH:MM.
func FormatMinutes(m int) string {
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

// indexByDay keeps only open, well-formed records, ordered by opening time.
func indexByDay(hours []OpeningHour) map[Weekday][]OpeningHour {
	out := make(map[Weekday][]OpeningHour, 7)
	for _, h := range hours {
		if h.IsClosed || !h.Valid() {
			continue
		}
		out[h.Day] = append(out[h.Day], h)
	}
	for day := range out {
		recs := out[day]
		sort.SliceStable(recs, func(i, j int) bool {
			return recs[i].OpenMinutes() < recs[j].OpenMinutes()
		})
	}
	return out
}
