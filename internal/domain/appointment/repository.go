package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

type Repository interface {
	// -------- Doctor --------
	GetDoctor(
		ctx context.Context,
		id string,
	) (*models.Doctor, error)

	ListDoctors(
		ctx context.Context,
		specialty string,
	) ([]models.Doctor, error)

	// -------- Opening hours --------
	ListOpeningHours(
		ctx context.Context,
		doctorID string,
	) ([]models.OpeningHour, error)

	ReplaceOpeningHours(
		ctx context.Context,
		doctorID string,
		hours []models.OpeningHour,
	) error

	// -------- Appointment (create / conflict) --------
	// CreateIfFree stores ap unless a blocking appointment of the same
	// doctor overlaps it, in which case it returns a time_conflict error.
	CreateIfFree(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// -------- Appointment (state change) --------
	GetAppointmentForPatient(
		ctx context.Context,
		appointmentID string,
		patientID string,
	) (*models.Appointment, error)

	GetAppointmentForDoctor(
		ctx context.Context,
		appointmentID string,
		doctorID string,
	) (*models.Appointment, error)

	UpdateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// -------- Listing --------
	ListBlockingForPeriod(
		ctx context.Context,
		doctorID string,
		start time.Time,
		end time.Time,
	) ([]models.Appointment, error)

	// ListAppointmentsForPeriod returns every appointment of the doctor
	// starting in [start, end), with the patient loaded.
	ListAppointmentsForPeriod(
		ctx context.Context,
		doctorID string,
		start time.Time,
		end time.Time,
	) ([]models.Appointment, error)

	ListForPatient(
		ctx context.Context,
		patientID string,
	) ([]models.Appointment, error)
}
