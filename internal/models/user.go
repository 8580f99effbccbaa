package models

import "time"

// User is an account. Patients book appointments; doctor accounts manage
// the opening hours of the doctor profile they are linked to.
type User struct {
	ID       string  `gorm:"type:uuid;primaryKey" json:"id"`
	DoctorID *string `gorm:"type:uuid" json:"doctor_id,omitempty"`

	Name         string `gorm:"size:100;not null" json:"name"`
	Email        string `gorm:"size:100;uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"size:255;not null" json:"-"`
	Phone        string `gorm:"size:20" json:"phone"`
	Role         string `gorm:"size:20;default:'patient'" json:"role"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
