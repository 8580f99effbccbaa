package availability

// DateGroup holds the slots of one calendar date in generation order.
type DateGroup struct {
	Date      string `json:"date"`
	DayLabel  string `json:"dayLabel"`
	DayNumber int    `json:"dayNumber"`
	Month     string `json:"month"`
	Slots     []Slot `json:"slots"`
}

// GroupByDate groups slots by their date string, keeping the order in which
// dates first appear and the order of slots inside each date.
func GroupByDate(slots []Slot) []DateGroup {
	groups := []DateGroup{}
	index := make(map[string]int)

	for _, s := range slots {
		i, ok := index[s.Date]
		if !ok {
			i = len(groups)
			index[s.Date] = i
			groups = append(groups, DateGroup{
				Date:      s.Date,
				DayLabel:  s.DayLabel,
				DayNumber: s.DayNumber,
				Month:     s.Month,
			})
		}
		groups[i].Slots = append(groups[i].Slots, s)
	}

	return groups
}

// Contains reports whether slot belongs to the group.
func (g DateGroup) Contains(slot Slot) bool {
	for _, s := range g.Slots {
		if s == slot {
			return true
		}
	}
	return false
}

// Find looks a slot up by its HH:MM time.
func (g DateGroup) Find(hhmm string) (Slot, bool) {
	for _, s := range g.Slots {
		if s.Time == hhmm {
			return s, true
		}
	}
	return Slot{}, false
}

// Flatten concatenates the slots of all groups.
func Flatten(groups []DateGroup) []Slot {
	out := []Slot{}
	for _, g := range groups {
		out = append(out, g.Slots...)
	}
	return out
}
