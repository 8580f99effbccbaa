package models

import (
	"time"

	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/booking"
)

type Appointment struct {
	ID string `gorm:"type:uuid;primaryKey" json:"id"`

	DoctorID string `gorm:"type:uuid;index;not null" json:"doctor_id"`
	Doctor   Doctor `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	PatientID string `gorm:"type:uuid;index;not null" json:"patient_id"`
	Patient   User   `gorm:"foreignKey:PatientID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	StartTime time.Time `gorm:"index" json:"start_time"`
	EndTime   time.Time `json:"end_time"`

	Status string `gorm:"size:20;default:'PENDING'" json:"status"`

	CancelledAt *time.Time `json:"cancelled_at"`
	CompletedAt *time.Time `json:"completed_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ToDomain renders the appointment in the API wire format.
func (a Appointment) ToDomain() booking.Appointment {
	return booking.Appointment{
		ID:        a.ID,
		DoctorID:  a.DoctorID,
		PatientID: a.PatientID,
		StartsAt:  a.StartTime.UTC().Format(booking.WireTimeLayout),
		EndsAt:    a.EndTime.UTC().Format(booking.WireTimeLayout),
		Status:    a.Status,
	}
}
