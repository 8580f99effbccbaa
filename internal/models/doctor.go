package models

import (
	"time"

	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/availability"
)

type Doctor struct {
	ID        string `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string `gorm:"size:100;not null" json:"name"`
	Specialty string `gorm:"size:100;index" json:"specialty"`
	Bio       string `gorm:"type:text" json:"bio"`
	Phone     string `gorm:"size:20" json:"phone"`
	Email     string `gorm:"size:100" json:"email"`

	OpeningHours []OpeningHour `gorm:"foreignKey:DoctorID;constraint:OnDelete:CASCADE;" json:"openingHours,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// OpeningHour is the stored form of a weekly window; one row per doctor and day.
type OpeningHour struct {
	ID       string `gorm:"type:uuid;primaryKey" json:"id"`
	DoctorID string `gorm:"type:uuid;uniqueIndex:idx_opening_hours_doctor_day;not null" json:"doctorId"`
	Day      string `gorm:"size:3;uniqueIndex:idx_opening_hours_doctor_day;not null" json:"day"`

	OpenHour  float64 `json:"openHour"`
	CloseHour float64 `json:"closeHour"`
	IsClosed  bool    `json:"isClosed"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

func (h OpeningHour) ToDomain() availability.OpeningHour {
	return availability.OpeningHour{
		ID:        h.ID,
		DoctorID:  h.DoctorID,
		Day:       availability.Weekday(h.Day),
		OpenHour:  h.OpenHour,
		CloseHour: h.CloseHour,
		IsClosed:  h.IsClosed,
	}
}

func OpeningHoursToDomain(rows []OpeningHour) []availability.OpeningHour {
	out := make([]availability.OpeningHour, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.ToDomain())
	}
	return out
}
