package appointment

import (
	"context"
	"sort"
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/availability"
	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

type fakeRepo struct {
	mu           sync.Mutex
	doctors      map[string]models.Doctor
	hours        map[string][]models.OpeningHour
	appointments []models.Appointment
	seq          int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		doctors: map[string]models.Doctor{"doc-1": {ID: "doc-1", Name: "Dr. Ana"}},
		hours: map[string][]models.OpeningHour{"doc-1": {
			{ID: "mon", DoctorID: "doc-1", Day: "MON", OpenHour: 9, CloseHour: 12},
		}},
	}
}

func (r *fakeRepo) GetDoctor(_ context.Context, id string) (*models.Doctor, error) {
	d, ok := r.doctors[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &d, nil
}

func (r *fakeRepo) ListDoctors(_ context.Context, _ string) ([]models.Doctor, error) {
	out := []models.Doctor{}
	for _, d := range r.doctors {
		out = append(out, d)
	}
	return out, nil
}

func (r *fakeRepo) ListOpeningHours(_ context.Context, doctorID string) ([]models.OpeningHour, error) {
	return r.hours[doctorID], nil
}

func (r *fakeRepo) ReplaceOpeningHours(_ context.Context, doctorID string, hours []models.OpeningHour) error {
	r.hours[doctorID] = hours
	return nil
}

func (r *fakeRepo) CreateIfFree(_ context.Context, ap *models.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, other := range r.appointments {
		if other.DoctorID != ap.DoctorID {
			continue
		}
		if !domain.IsBlocking(domain.Status(other.Status)) {
			continue
		}
		if other.StartTime.Before(ap.EndTime) && other.EndTime.After(ap.StartTime) {
			return httperr.ErrBusiness("time_conflict")
		}
	}
	r.seq++
	ap.ID = "ap-" + string(rune('0'+r.seq))
	r.appointments = append(r.appointments, *ap)
	return nil
}

func (r *fakeRepo) GetAppointmentForPatient(_ context.Context, id, patientID string) (*models.Appointment, error) {
	for _, ap := range r.appointments {
		if ap.ID == id && ap.PatientID == patientID {
			cp := ap
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeRepo) GetAppointmentForDoctor(_ context.Context, id, doctorID string) (*models.Appointment, error) {
	for _, ap := range r.appointments {
		if ap.ID == id && ap.DoctorID == doctorID {
			cp := ap
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeRepo) UpdateAppointment(_ context.Context, ap *models.Appointment) error {
	for i := range r.appointments {
		if r.appointments[i].ID == ap.ID {
			r.appointments[i] = *ap
		}
	}
	return nil
}

func (r *fakeRepo) ListBlockingForPeriod(_ context.Context, doctorID string, start, end time.Time) ([]models.Appointment, error) {
	out := []models.Appointment{}
	for _, ap := range r.appointments {
		if ap.DoctorID != doctorID || !domain.IsBlocking(domain.Status(ap.Status)) {
			continue
		}
		if ap.StartTime.Before(end) && ap.EndTime.After(start) {
			out = append(out, ap)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartTime.Before(out[j].StartTime) })
	return out, nil
}

func (r *fakeRepo) ListAppointmentsForPeriod(_ context.Context, doctorID string, start, end time.Time) ([]models.Appointment, error) {
	out := []models.Appointment{}
	for _, ap := range r.appointments {
		if ap.DoctorID == doctorID && !ap.StartTime.Before(start) && ap.StartTime.Before(end) {
			ap.Patient = models.User{ID: ap.PatientID, Name: "Patient " + ap.PatientID}
			out = append(out, ap)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartTime.Before(out[j].StartTime) })
	return out, nil
}

func (r *fakeRepo) ListForPatient(_ context.Context, patientID string) ([]models.Appointment, error) {
	out := []models.Appointment{}
	for _, ap := range r.appointments {
		if ap.PatientID == patientID {
			out = append(out, ap)
		}
	}
	return out, nil
}

var _ domain.Repository = (*fakeRepo)(nil)

// repoHours serves opening hours straight from the fake repository.
type repoHours struct{ repo *fakeRepo }

func (h repoHours) OpeningHours(ctx context.Context, doctorID string) ([]availability.OpeningHour, error) {
	rows, err := h.repo.ListOpeningHours(ctx, doctorID)
	if err != nil {
		return nil, err
	}
	return models.OpeningHoursToDomain(rows), nil
}
