package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// File kinds. Exams and notes carry structured answers in Meta; attachments
// and photos are plain disk files.
const (
	FileKindAttachment = "attachment"
	FileKindExam       = "exam"
	FileKindNote       = "note"
	FileKindPhoto      = "photo"
)

// PatientFile is one item in a patient's record: an uploaded attachment, a
// mental-status exam, a follow-up note or the profile photo. The content
// lives on disk under the patient folder; Meta holds the structured
// exam/note payload as a JSON blob.
type PatientFile struct {
	BaseModel
	PublicID    string    `gorm:"type:varchar(36);uniqueIndex;not null" json:"id"`
	PatientID   uint      `gorm:"index;not null" json:"-"`
	Kind        string    `gorm:"type:varchar(20);not null;index" json:"kind"`
	Filename    string    `gorm:"type:varchar(255);not null" json:"filename"`
	StoredName  string    `gorm:"type:varchar(255)" json:"stored_name"`
	ContentType string    `gorm:"type:varchar(120)" json:"content_type"`
	SizeBytes   int64     `json:"size_bytes"`
	Meta        string    `gorm:"type:text" json:"-"`
	RecordedAt  time.Time `gorm:"index" json:"recorded_at"`
}

func (f *PatientFile) BeforeCreate(tx *gorm.DB) error {
	if f.PublicID == "" {
		f.PublicID = uuid.NewString()
	}
	if f.RecordedAt.IsZero() {
		f.RecordedAt = time.Now()
	}
	return nil
}
