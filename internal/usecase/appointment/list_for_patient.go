package appointment

import (
	"context"

	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/booking"
)

type ListPatientAppointments struct {
	repo domain.Repository
}

func NewListPatientAppointments(repo domain.Repository) *ListPatientAppointments {
	return &ListPatientAppointments{repo: repo}
}

func (uc *ListPatientAppointments) Execute(
	ctx context.Context,
	patientID string,
) ([]booking.Appointment, error) {

	aps, err := uc.repo.ListForPatient(ctx, patientID)
	if err != nil {
		return nil, err
	}

	out := make([]booking.Appointment, 0, len(aps))
	for _, ap := range aps {
		out = append(out, ap.ToDomain())
	}
	return out, nil
}
