package models

import "strings"

// Field types of the exam form.
const (
	ExamFieldSelect = "select"
	ExamFieldChoice = "choice"
	ExamFieldText   = "text"
	ExamFieldDate   = "date"
)

// ExamTemplate is one field of the mental-status exam questionnaire. The
// seeded catalog drives the form the SPA renders; Options is a pipe-separated
// list for select/choice fields.
type ExamTemplate struct {
	BaseModel
	Section  string `gorm:"type:varchar(60);not null;index" json:"section"`
	FieldKey string `gorm:"type:varchar(60);uniqueIndex;not null" json:"field_key"`
	Label    string `gorm:"type:varchar(200);not null" json:"label"`
	Type     string `gorm:"type:varchar(20);not null" json:"type"`
	Options  string `gorm:"type:text" json:"-"`
	Position int    `gorm:"not null" json:"position"`
}

// OptionList splits the stored options.
func (t *ExamTemplate) OptionList() []string {
	if t.Options == "" {
		return nil
	}
	return strings.Split(t.Options, "|")
}
