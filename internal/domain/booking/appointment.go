package booking

import (
	"fmt"
	"time"
)

// ===============================
// Appointment request
// ===============================

const (
	AppointmentDuration = 30 * time.Minute

	// WireTimeLayout is the ISO-8601 UTC layout with millisecond precision
	// used by the appointment API.
	WireTimeLayout = "2006-01-02T15:04:05.000Z"

	StatusPending = "PENDING"
)

type AppointmentRequest struct {
	DoctorID string `json:"doctorId"`
	StartsAt string `json:"startsAt"`
	EndsAt   string `json:"endsAt"`
	Status   string `json:"status"`
}

type Appointment struct {
	ID        string `json:"id"`
	DoctorID  string `json:"doctorId"`
	PatientID string `json:"patientId,omitempty"`
	StartsAt  string `json:"startsAt"`
	EndsAt    string `json:"endsAt"`
	Status    string `json:"status"`
}

// StartInstant combines a YYYY-MM-DD date and an HH:MM time into a UTC
// instant. The wall-clock fields are taken as is, without any local zone.
func StartInstant(date, hhmm string) (time.Time, error) {
	t, err := time.ParseInLocation("2006-01-02 15:04", date+" "+hhmm, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date or time %q %q: %w", date, hhmm, err)
	}
	return t, nil
}

// NewAppointmentRequest builds the create-appointment payload for a slot
// starting at start.
func NewAppointmentRequest(doctorID string, start time.Time) AppointmentRequest {
	start = start.UTC()
	return AppointmentRequest{
		DoctorID: doctorID,
		StartsAt: start.Format(WireTimeLayout),
		EndsAt:   start.Add(AppointmentDuration).Format(WireTimeLayout),
		Status:   StatusPending,
	}
}

// ParseWireTime parses an instant produced with WireTimeLayout, also
// accepting plain RFC 3339.
func ParseWireTime(s string) (time.Time, error) {
	if t, err := time.Parse(WireTimeLayout, s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339Nano, s)
}
