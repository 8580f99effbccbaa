package booking

import "github.com/BruksfildServices01/clinic-scheduler/internal/domain/availability"

// ===============================
// Selection state
// ===============================

type State int

const (
	StateEmpty State = iota
	StateDateChosen
	StateReady
)

func (s State) String() string {
	switch s {
	case StateDateChosen:
		return "date_chosen"
	case StateReady:
		return "ready"
	default:
		return "empty"
	}
}

// Selection is the in-progress date/time choice of a single booking flow.
// It has one owner and is not safe for concurrent use.
type Selection struct {
	date *availability.DateGroup
	slot *availability.Slot
}

func NewSelection() *Selection {
	return &Selection{}
}

func (s *Selection) State() State {
	switch {
	case s.date == nil:
		return StateEmpty
	case s.slot == nil:
		return StateDateChosen
	default:
		return StateReady
	}
}

// SelectDate makes group the active date and always clears the chosen time.
func (s *Selection) SelectDate(group availability.DateGroup) {
	g := group
	s.date = &g
	s.slot = nil
}

// SelectTime chooses a slot of the active date. The state is left untouched
// when no date is active or the slot belongs to another date.
func (s *Selection) SelectTime(slot availability.Slot) error {
	if s.date == nil {
		return ErrNoDateSelected
	}
	if !s.date.Contains(slot) {
		return ErrSlotNotInDate
	}
	sl := slot
	s.slot = &sl
	return nil
}

func (s *Selection) Reset() {
	s.date = nil
	s.slot = nil
}

func (s *Selection) IsComplete() bool {
	return s.State() == StateReady
}

// Date returns the active date group, or nil.
func (s *Selection) Date() *availability.DateGroup {
	if s.date == nil {
		return nil
	}
	g := *s.date
	return &g
}

// Time returns the chosen slot, or nil.
func (s *Selection) Time() *availability.Slot {
	if s.slot == nil {
		return nil
	}
	sl := *s.slot
	return &sl
}
