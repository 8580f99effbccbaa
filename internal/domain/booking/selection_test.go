package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/availability"
)

func testGroups(t *testing.T) []availability.DateGroup {
	t.Helper()
	hours := []availability.OpeningHour{
		{ID: "mon", Day: availability.Monday, OpenHour: 9, CloseHour: 11},
		{ID: "tue", Day: availability.Tuesday, OpenHour: 9, CloseHour: 11},
	}
	ref := time.Date(2024, 6, 9, 12, 0, 0, 0, time.UTC)
	groups := availability.GroupByDate(availability.Generate(hours, ref, 7, 30))
	require.Len(t, groups, 2)
	return groups
}

func TestSelection_InitialState(t *testing.T) {
	s := NewSelection()

	assert.Equal(t, StateEmpty, s.State())
	assert.False(t, s.IsComplete())
	assert.Nil(t, s.Date())
	assert.Nil(t, s.Time())
}

func TestSelection_DateThenTime(t *testing.T) {
	groups := testGroups(t)
	s := NewSelection()

	s.SelectDate(groups[0])
	assert.Equal(t, StateDateChosen, s.State())
	assert.False(t, s.IsComplete())

	require.NoError(t, s.SelectTime(groups[0].Slots[1]))
	assert.Equal(t, StateReady, s.State())
	assert.True(t, s.IsComplete())
	assert.Equal(t, "09:30", s.Time().Time)
	assert.Equal(t, "2024-06-10", s.Date().Date)
}

func TestSelection_ChangingDateClearsTime(t *testing.T) {
	groups := testGroups(t)
	s := NewSelection()

	s.SelectDate(groups[0])
	require.NoError(t, s.SelectTime(groups[0].Slots[0]))

	s.SelectDate(groups[1])

	assert.Nil(t, s.Time())
	assert.False(t, s.IsComplete())
	assert.Equal(t, StateDateChosen, s.State())
}

func TestSelection_ReselectingSameDateClearsTime(t *testing.T) {
	groups := testGroups(t)
	s := NewSelection()

	s.SelectDate(groups[0])
	require.NoError(t, s.SelectTime(groups[0].Slots[0]))
	s.SelectDate(groups[0])

	assert.Nil(t, s.Time())
}

func TestSelection_SelectDateAlwaysClearsTime(t *testing.T) {
	groups := testGroups(t)

	prior := map[string]func(*testing.T, *Selection){
		"empty": func(*testing.T, *Selection) {},
		"date_chosen": func(_ *testing.T, s *Selection) {
			s.SelectDate(groups[1])
		},
		"ready": func(t *testing.T, s *Selection) {
			s.SelectDate(groups[1])
			require.NoError(t, s.SelectTime(groups[1].Slots[2]))
		},
	}

	for name, setup := range prior {
		t.Run(name, func(t *testing.T) {
			s := NewSelection()
			setup(t, s)
			s.SelectDate(groups[0])
			assert.Nil(t, s.Time())
			assert.Equal(t, StateDateChosen, s.State())
		})
	}
}

func TestSelection_RejectsSlotFromOtherDate(t *testing.T) {
	groups := testGroups(t)
	s := NewSelection()

	s.SelectDate(groups[0])
	err := s.SelectTime(groups[1].Slots[0])

	assert.ErrorIs(t, err, ErrSlotNotInDate)
	assert.Equal(t, StateDateChosen, s.State())
	assert.Nil(t, s.Time())
}

func TestSelection_RejectsTimeWithoutDate(t *testing.T) {
	groups := testGroups(t)
	s := NewSelection()

	err := s.SelectTime(groups[0].Slots[0])

	assert.ErrorIs(t, err, ErrNoDateSelected)
	assert.Equal(t, StateEmpty, s.State())
}

func TestSelection_MismatchKeepsPreviousTime(t *testing.T) {
	groups := testGroups(t)
	s := NewSelection()

	s.SelectDate(groups[0])
	require.NoError(t, s.SelectTime(groups[0].Slots[0]))
	require.Error(t, s.SelectTime(groups[1].Slots[1]))

	assert.True(t, s.IsComplete())
	assert.Equal(t, groups[0].Slots[0], *s.Time())
}

func TestSelection_Reset(t *testing.T) {
	groups := testGroups(t)
	s := NewSelection()

	s.SelectDate(groups[0])
	require.NoError(t, s.SelectTime(groups[0].Slots[0]))
	s.Reset()

	assert.Equal(t, StateEmpty, s.State())
	assert.Nil(t, s.Date())
}

func TestSelection_AccessorsReturnCopies(t *testing.T) {
	groups := testGroups(t)
	s := NewSelection()
	s.SelectDate(groups[0])

	d := s.Date()
	d.Slots = nil

	assert.NotEmpty(t, s.Date().Slots)
}
