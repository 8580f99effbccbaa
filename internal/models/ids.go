package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

func assignID(id *string) {
	if *id == "" {
		*id = uuid.NewString()
	}
}

func (d *Doctor) BeforeCreate(*gorm.DB) error      { assignID(&d.ID); return nil }
func (h *OpeningHour) BeforeCreate(*gorm.DB) error { assignID(&h.ID); return nil }
func (u *User) BeforeCreate(*gorm.DB) error        { assignID(&u.ID); return nil }
func (a *Appointment) BeforeCreate(*gorm.DB) error { assignID(&a.ID); return nil }
func (l *AuditLog) BeforeCreate(*gorm.DB) error    { assignID(&l.ID); return nil }
