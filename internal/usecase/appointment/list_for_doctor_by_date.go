package appointment

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-scheduler/internal/dto"
)

type ListDoctorAgenda struct {
	repo domain.Repository
}

func NewListDoctorAgenda(repo domain.Repository) *ListDoctorAgenda {
	return &ListDoctorAgenda{repo: repo}
}

// Execute lists the doctor's appointments on one calendar date. Stored
// instants are clinic wall-clock time, so the day is cut on the UTC axis.
func (uc *ListDoctorAgenda) Execute(
	ctx context.Context,
	doctorID string,
	date time.Time,
) ([]dto.AppointmentListDTO, error) {

	start := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 1)

	appointments, err := uc.repo.ListAppointmentsForPeriod(ctx, doctorID, start, end)
	if err != nil {
		return nil, err
	}

	out := make([]dto.AppointmentListDTO, 0, len(appointments))
	for _, ap := range appointments {
		out = append(out, dto.AppointmentListDTO{
			ID:           ap.ID,
			StartTime:    ap.StartTime,
			EndTime:      ap.EndTime,
			Status:       ap.Status,
			PatientName:  ap.Patient.Name,
			PatientPhone: ap.Patient.Phone,
		})
	}

	return out, nil
}
