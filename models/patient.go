package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Patient is the demographic and contact record of a single patient.
// Clinical content lives in PatientFile rows keyed by PatientID.
type Patient struct {
	BaseModel
	PublicID         string `gorm:"type:varchar(36);uniqueIndex;not null" json:"id"`
	FullName         string `gorm:"type:varchar(200);not null;index" json:"full_name"`
	DocumentType     string `gorm:"type:varchar(30)" json:"document_type"`
	DocumentNumber   string `gorm:"type:varchar(60);index" json:"document_number"`
	DateOfBirth      string `gorm:"type:varchar(10)" json:"date_of_birth"` // YYYY-MM-DD
	Sex              string `gorm:"type:varchar(30)" json:"sex"`
	Phone            string `gorm:"type:varchar(60)" json:"phone"`
	Email            string `gorm:"type:varchar(120)" json:"email"`
	Address          string `gorm:"type:varchar(255)" json:"address"`
	City             string `gorm:"type:varchar(120)" json:"city"`
	Occupation       string `gorm:"type:varchar(120)" json:"occupation"`
	MaritalStatus    string `gorm:"type:varchar(60)" json:"marital_status"`
	Insurance        string `gorm:"type:varchar(120)" json:"insurance"`
	EmergencyContact string `gorm:"type:varchar(255)" json:"emergency_contact"`
	ChiefComplaint   string `gorm:"type:varchar(255)" json:"chief_complaint"`
	Notes            string `gorm:"type:text" json:"notes"`
	PhotoFilename    string `gorm:"type:varchar(255)" json:"photo_filename"`

	Files []PatientFile `gorm:"foreignKey:PatientID" json:"-"`
}

// BeforeCreate assigns the client-visible random identifier.
func (p *Patient) BeforeCreate(tx *gorm.DB) error {
	if p.PublicID == "" {
		p.PublicID = uuid.NewString()
	}
	return nil
}

// Age derives whole years from DateOfBirth at the given reference time.
// Returns -1 when the date is missing or malformed.
func (p *Patient) Age(at time.Time) int {
	if p.DateOfBirth == "" {
		return -1
	}
	dob, err := time.Parse("2006-01-02", p.DateOfBirth)
	if err != nil {
		return -1
	}
	years := at.Year() - dob.Year()
	if at.Month() < dob.Month() || (at.Month() == dob.Month() && at.Day() < dob.Day()) {
		years--
	}
	return years
}
