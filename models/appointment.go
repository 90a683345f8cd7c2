package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Appointment is a scheduled session with a patient.
type Appointment struct {
	BaseModel
	PublicID     string    `gorm:"type:varchar(36);uniqueIndex;not null" json:"id"`
	PatientID    uint      `gorm:"index;not null" json:"-"`
	Title        string    `gorm:"type:varchar(200);not null" json:"title"`
	StartsAt     time.Time `gorm:"index;not null" json:"starts_at"`
	EndsAt       time.Time `gorm:"not null" json:"ends_at"`
	Location     string    `gorm:"type:varchar(200)" json:"location"`
	Notes        string    `gorm:"type:text" json:"notes"`
	ReminderSent bool      `gorm:"default:false" json:"reminder_sent"`

	Patient Patient `gorm:"foreignKey:PatientID" json:"-"`
}

func (a *Appointment) BeforeCreate(tx *gorm.DB) error {
	if a.PublicID == "" {
		a.PublicID = uuid.NewString()
	}
	return nil
}
