package dto

import "time"

// AppointmentListDTO is one row of a doctor's agenda.
type AppointmentListDTO struct {
	ID           string    `json:"id"`
	StartTime    time.Time `json:"start_time"`
	EndTime      time.Time `json:"end_time"`
	Status       string    `json:"status"`
	PatientName  string    `json:"patient_name"`
	PatientPhone string    `json:"patient_phone"`
}
