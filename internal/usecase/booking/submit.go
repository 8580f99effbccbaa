package booking

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/clinic-scheduler/internal/auth"
	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/booking"
	"github.com/BruksfildServices01/clinic-scheduler/internal/logging"
	"github.com/BruksfildServices01/clinic-scheduler/internal/metrics"
)

// AppointmentAPI creates appointments on the server. Implementations report
// failures wrapping domain.ErrSlotConflict, domain.ErrNetwork or
// domain.ErrServer.
type AppointmentAPI interface {
	CreateAppointment(
		ctx context.Context,
		token string,
		req domain.AppointmentRequest,
	) (*domain.Appointment, error)
}

// ======================================================
// USE CASE
// ======================================================

// Submitter turns a complete selection into one create-appointment call.
// At most one call is in flight per Submitter.
type Submitter struct {
	api      AppointmentAPI
	logger   *zap.Logger
	metrics  *metrics.BookingMetrics
	inFlight atomic.Bool
	now      func() time.Time
}

func NewSubmitter(
	api AppointmentAPI,
	logger *zap.Logger,
	m *metrics.BookingMetrics,
) *Submitter {
	return &Submitter{
		api:     api,
		logger:  logging.OrNop(logger),
		metrics: m,
		now:     time.Now,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (s *Submitter) Submit(
	ctx context.Context,
	sel *domain.Selection,
	doctorID string,
	identity *auth.Identity,
) (*domain.Appointment, error) {

	// --------------------------------------------------
	// Local preconditions
	// --------------------------------------------------
	if sel == nil || !sel.IsComplete() {
		s.metrics.ObserveSubmit("incomplete_selection", -1)
		return nil, domain.ErrIncompleteSelection
	}
	if !identity.Authenticated() {
		s.metrics.ObserveSubmit("unauthenticated", -1)
		return nil, domain.ErrUnauthenticated
	}

	date, slot := sel.Date(), sel.Time()
	start, err := domain.StartInstant(date.Date, slot.Time)
	if err != nil {
		s.metrics.ObserveSubmit("incomplete_selection", -1)
		return nil, fmt.Errorf("%w: %v", domain.ErrIncompleteSelection, err)
	}
	req := domain.NewAppointmentRequest(doctorID, start)

	if !s.inFlight.CompareAndSwap(false, true) {
		return nil, domain.ErrSubmitInProgress
	}
	defer s.inFlight.Store(false)

	// --------------------------------------------------
	// Single create call, never retried
	// --------------------------------------------------
	began := s.now()
	ap, err := s.api.CreateAppointment(ctx, identity.Token, req)
	elapsed := s.now().Sub(began).Seconds()

	if ctxErr := ctx.Err(); ctxErr != nil {
		s.logger.Debug("booking submit abandoned", zap.String("doctor_id", doctorID), zap.Error(ctxErr))
		s.metrics.ObserveSubmit("cancelled", elapsed)
		return nil, ctxErr
	}

	if err != nil {
		err = classify(err)
		outcome := outcomeOf(err)
		s.metrics.ObserveSubmit(outcome, elapsed)
		s.logger.Warn("booking submit failed",
			zap.String("doctor_id", doctorID),
			zap.String("starts_at", req.StartsAt),
			zap.String("outcome", outcome),
			zap.Error(err),
		)
		return nil, err
	}
	if ap == nil {
		s.metrics.ObserveSubmit("server_error", elapsed)
		return nil, fmt.Errorf("%w: empty appointment in response", domain.ErrServer)
	}

	s.metrics.ObserveSubmit("created", elapsed)
	s.logger.Info("appointment booked",
		zap.String("appointment_id", ap.ID),
		zap.String("doctor_id", doctorID),
		zap.String("starts_at", req.StartsAt),
	)
	return ap, nil
}

// classify makes sure every failure maps onto the booking taxonomy.
func classify(err error) error {
	switch {
	case errors.Is(err, domain.ErrSlotConflict),
		errors.Is(err, domain.ErrNetwork),
		errors.Is(err, domain.ErrServer),
		errors.Is(err, domain.ErrUnauthenticated):
		return err
	default:
		return fmt.Errorf("%w: %v", domain.ErrServer, err)
	}
}

func outcomeOf(err error) string {
	switch {
	case errors.Is(err, domain.ErrSlotConflict):
		return "slot_conflict"
	case errors.Is(err, domain.ErrNetwork):
		return "network_error"
	case errors.Is(err, domain.ErrUnauthenticated):
		return "unauthenticated"
	default:
		return "server_error"
	}
}
