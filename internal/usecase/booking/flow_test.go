package booking

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/availability"
	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/booking"
)

type staticHours struct {
	hours []availability.OpeningHour
	err   error
	asked string
}

func (s *staticHours) OpeningHours(_ context.Context, doctorID string) ([]availability.OpeningHour, error) {
	s.asked = doctorID
	return s.hours, s.err
}

var flowRef = time.Date(2024, 6, 9, 10, 0, 0, 0, time.UTC)

func newTestFlow(t *testing.T, api *fakeAPI) *Flow {
	t.Helper()
	src := &staticHours{hours: []availability.OpeningHour{
		{ID: "mon", Day: availability.Monday, OpenHour: 9, CloseHour: 10.5},
		{ID: "tue", Day: availability.Tuesday, OpenHour: 14, CloseHour: 15},
	}}
	f := NewFlow("doc-1", NewSubmitter(api, nil, nil))
	groups, err := f.Refresh(context.Background(), src, flowRef)
	require.NoError(t, err)
	require.Len(t, groups, 2)
	assert.Equal(t, "doc-1", src.asked)
	return f
}

func TestFlow_ConfirmResetsOnSuccess(t *testing.T) {
	api := &fakeAPI{}
	f := newTestFlow(t, api)

	require.NoError(t, f.PickDate("2024-06-10"))
	require.NoError(t, f.PickTime("10:00"))

	ap, err := f.Confirm(context.Background(), patient)

	require.NoError(t, err)
	assert.Equal(t, "2024-06-10T10:00:00.000Z", ap.StartsAt)
	assert.Equal(t, domain.StateEmpty, f.Selection().State())
}

func TestFlow_ConflictKeepsDate(t *testing.T) {
	api := &fakeAPI{err: fmt.Errorf("%w: taken", domain.ErrSlotConflict)}
	f := newTestFlow(t, api)

	require.NoError(t, f.PickDate("2024-06-11"))
	require.NoError(t, f.PickTime("14:30"))

	_, err := f.Confirm(context.Background(), patient)

	require.ErrorIs(t, err, domain.ErrSlotConflict)
	assert.Equal(t, "2024-06-11", f.Selection().Date().Date)
	assert.Equal(t, "This time was just taken. Please pick another time.", UserMessage(err))

	api.err = nil
	require.NoError(t, f.PickTime("14:00"))
	_, err = f.Confirm(context.Background(), patient)
	assert.NoError(t, err)
}

func TestFlow_PickErrors(t *testing.T) {
	f := newTestFlow(t, &fakeAPI{})

	assert.ErrorIs(t, f.PickTime("09:00"), domain.ErrNoDateSelected)
	assert.Error(t, f.PickDate("2024-06-12"))

	require.NoError(t, f.PickDate("2024-06-10"))
	assert.ErrorIs(t, f.PickTime("10:30"), domain.ErrSlotNotInDate)
}

func TestFlow_LoadDiscardsSelection(t *testing.T) {
	f := newTestFlow(t, &fakeAPI{})
	require.NoError(t, f.PickDate("2024-06-10"))

	groups := f.Load(nil, flowRef)

	assert.Empty(t, groups)
	assert.Equal(t, domain.StateEmpty, f.Selection().State())
}

func TestFlow_RefreshError(t *testing.T) {
	f := NewFlow("doc-1", NewSubmitter(&fakeAPI{}, nil, nil))
	_, err := f.Refresh(context.Background(), &staticHours{err: errors.New("down")}, flowRef)
	assert.Error(t, err)
	assert.Empty(t, f.Groups())
}

func TestUserMessage(t *testing.T) {
	assert.Empty(t, UserMessage(nil))
	assert.Equal(t, "Please sign in to book an appointment.", UserMessage(domain.ErrUnauthenticated))
	assert.Equal(t, "Please choose a date and a time.", UserMessage(domain.ErrIncompleteSelection))
	assert.Equal(t, "Something went wrong. Please try again.", UserMessage(fmt.Errorf("%w: x", domain.ErrNetwork)))
	assert.Equal(t, "Something went wrong. Please try again.", UserMessage(domain.ErrServer))
}
