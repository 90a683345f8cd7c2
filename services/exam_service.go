package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"praxisnote.app/configs/configslog"
	"praxisnote.app/models"
	"praxisnote.app/pkg/queryparams"
	"praxisnote.app/repositories"

	"go.uber.org/zap"
)

// ExamServiceError is the typed error of the exam service.
type ExamServiceError string

func (e ExamServiceError) Error() string { return string(e) }

const (
	ErrExamNotFound       ExamServiceError = "exam record not found"
	ErrExamEmptyAnswers   ExamServiceError = "exam requires at least one answer"
	ErrNoteEmptyBody      ExamServiceError = "note requires text or structured fields"
	ErrExamCreationFailed ExamServiceError = "could not store exam record"
)

// recordMeta is the JSON payload stored on exam and note rows.
type recordMeta struct {
	Type      string            `json:"type"`
	PatientID string            `json:"patient_id"`
	CreatedAt string            `json:"created_at"`
	Data      map[string]string `json:"data"`
}

// ExamInput is a completed mental-status exam form.
type ExamInput struct {
	Answers    map[string]string `json:"answers"`
	RecordedAt time.Time         `json:"recorded_at"`
}

// NoteInput is a follow-up note: free text plus optional structured fields
// (the same field keys the exam form uses), which feed the trend radar.
type NoteInput struct {
	Text       string            `json:"text"`
	Answers    map[string]string `json:"answers"`
	RecordedAt time.Time         `json:"recorded_at"`
}

// ExamRecord is the parsed view of a stored exam or note row.
type ExamRecord struct {
	PublicID   string            `json:"public_id"`
	Kind       string            `json:"kind"`
	RecordedAt time.Time         `json:"recorded_at"`
	Answers    map[string]string `json:"answers"`
	Text       string            `json:"text,omitempty"`
}

// IExamService records and retrieves mental-status exams and follow-up notes.
type IExamService interface {
	GetTemplate(ctx context.Context) ([]models.ExamTemplate, error)
	CreateExam(ctx context.Context, patient *models.Patient, input ExamInput) (*models.PatientFile, error)
	CreateNote(ctx context.Context, patient *models.Patient, input NoteInput) (*models.PatientFile, error)
	GetRecord(ctx context.Context, publicID string) (*ExamRecord, error)
	ListRecords(ctx context.Context, patient *models.Patient, kind string, params queryparams.ListParams) (*queryparams.PaginatedResult, []ExamRecord, error)
}

// ExamService implements IExamService.
type ExamService struct {
	templates repositories.IExamTemplateRepository
	fileRepo  repositories.IPatientFileRepository
	files     IFileService
}

// NewExamService builds the service on the shared repositories.
func NewExamService() IExamService {
	return &ExamService{
		templates: repositories.NewExamTemplateRepository(),
		fileRepo:  repositories.NewPatientFileRepository(),
		files:     NewFileService(),
	}
}

// GetTemplate returns the seeded exam form catalog in display order.
func (s *ExamService) GetTemplate(ctx context.Context) ([]models.ExamTemplate, error) {
	return s.templates.FindAllOrdered(ctx)
}

func cleanAnswers(raw map[string]string) map[string]string {
	out := make(map[string]string, len(raw))
	for k, v := range raw {
		v = strings.TrimSpace(v)
		if v != "" {
			out[k] = v
		}
	}
	return out
}

func encodeMeta(kind, patientPublicID string, at time.Time, data map[string]string) (string, error) {
	payload := recordMeta{
		Type:      kind,
		PatientID: patientPublicID,
		CreatedAt: at.Format(time.RFC3339),
		Data:      data,
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

// CreateExam stores the answers as a record row and writes a readable
// transcript next to the patient's other files.
func (s *ExamService) CreateExam(ctx context.Context, patient *models.Patient, input ExamInput) (*models.PatientFile, error) {
	answers := cleanAnswers(input.Answers)
	if len(answers) == 0 {
		return nil, ErrExamEmptyAnswers
	}
	if input.RecordedAt.IsZero() {
		input.RecordedAt = time.Now()
	}

	meta, err := encodeMeta(models.FileKindExam, patient.PublicID, input.RecordedAt, answers)
	if err != nil {
		return nil, ErrExamCreationFailed
	}

	transcript, err := s.renderTranscript(ctx, patient, "Mental Status Examination", input.RecordedAt, answers, "")
	if err != nil {
		return nil, err
	}

	file, err := s.files.SaveDocument(ctx, patient, DocumentInput{
		Kind:        models.FileKindExam,
		Filename:    "MSE.txt",
		ContentType: "text/plain; charset=utf-8",
		Data:        []byte(transcript),
		Meta:        meta,
		RecordedAt:  input.RecordedAt,
	})
	if err != nil {
		configslog.Log.Error("ExamService.CreateExam: store failed", zap.String("patient", patient.PublicID), zap.Error(err))
		return nil, ErrExamCreationFailed
	}
	return file, nil
}

// CreateNote stores a follow-up note. Structured fields are optional; when
// present they are scored alongside exams.
func (s *ExamService) CreateNote(ctx context.Context, patient *models.Patient, input NoteInput) (*models.PatientFile, error) {
	answers := cleanAnswers(input.Answers)
	text := strings.TrimSpace(input.Text)
	if text == "" && len(answers) == 0 {
		return nil, ErrNoteEmptyBody
	}
	if input.RecordedAt.IsZero() {
		input.RecordedAt = time.Now()
	}

	data := make(map[string]string, len(answers)+1)
	for k, v := range answers {
		data[k] = v
	}
	if text != "" {
		data["text"] = text
	}
	meta, err := encodeMeta(models.FileKindNote, patient.PublicID, input.RecordedAt, data)
	if err != nil {
		return nil, ErrExamCreationFailed
	}

	transcript, err := s.renderTranscript(ctx, patient, "Follow-up Note", input.RecordedAt, answers, text)
	if err != nil {
		return nil, err
	}

	file, err := s.files.SaveDocument(ctx, patient, DocumentInput{
		Kind:        models.FileKindNote,
		Filename:    "Note.txt",
		ContentType: "text/plain; charset=utf-8",
		Data:        []byte(transcript),
		Meta:        meta,
		RecordedAt:  input.RecordedAt,
	})
	if err != nil {
		configslog.Log.Error("ExamService.CreateNote: store failed", zap.String("patient", patient.PublicID), zap.Error(err))
		return nil, ErrExamCreationFailed
	}
	return file, nil
}

// renderTranscript produces the plain-text body written to disk, ordered by
// the seeded form catalog so printouts read like the on-screen form.
func (s *ExamService) renderTranscript(ctx context.Context, patient *models.Patient, title string, at time.Time, answers map[string]string, text string) (string, error) {
	fields, err := s.templates.FindAllOrdered(ctx)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", title)
	fmt.Fprintf(&b, "Patient: %s\n", patient.FullName)
	fmt.Fprintf(&b, "Date: %s\n\n", at.Format("2006-01-02 15:04"))

	seen := make(map[string]bool, len(answers))
	section := ""
	for _, f := range fields {
		v, ok := answers[f.FieldKey]
		if !ok {
			continue
		}
		if f.Section != section {
			section = f.Section
			fmt.Fprintf(&b, "[%s]\n", section)
		}
		fmt.Fprintf(&b, "%s: %s\n", f.Label, v)
		seen[f.FieldKey] = true
	}
	// Answers outside the catalog still land in the transcript.
	for k, v := range answers {
		if !seen[k] {
			fmt.Fprintf(&b, "%s: %s\n", k, v)
		}
	}
	if text != "" {
		fmt.Fprintf(&b, "\n%s\n", text)
	}
	return b.String(), nil
}

// parseRecord turns a stored row back into its answers and note text.
func parseRecord(file *models.PatientFile) ExamRecord {
	record := ExamRecord{
		PublicID:   file.PublicID,
		Kind:       file.Kind,
		RecordedAt: file.RecordedAt,
		Answers:    map[string]string{},
	}
	if file.Meta == "" {
		return record
	}
	var meta recordMeta
	if err := json.Unmarshal([]byte(file.Meta), &meta); err != nil {
		configslog.SLog.Warnf("Unreadable record payload on file %s: %v", file.PublicID, err)
		return record
	}
	for k, v := range meta.Data {
		if k == "text" {
			record.Text = v
			continue
		}
		record.Answers[k] = v
	}
	return record
}

func (s *ExamService) GetRecord(ctx context.Context, publicID string) (*ExamRecord, error) {
	file, err := s.fileRepo.FindByPublicID(ctx, publicID)
	if err != nil {
		return nil, ErrExamNotFound
	}
	if file.Kind != models.FileKindExam && file.Kind != models.FileKindNote {
		return nil, ErrExamNotFound
	}
	record := parseRecord(file)
	return &record, nil
}

// ListRecords pages through a patient's exams or notes and returns the
// parsed view alongside the pagination envelope.
func (s *ExamService) ListRecords(ctx context.Context, patient *models.Patient, kind string, params queryparams.ListParams) (*queryparams.PaginatedResult, []ExamRecord, error) {
	if kind != models.FileKindNote {
		kind = models.FileKindExam
	}
	params.Validate()
	params.Kind = kind
	files, totalCount, err := s.fileRepo.FindByPatientPaginated(ctx, patient.ID, params)
	if err != nil {
		return nil, nil, err
	}
	records := make([]ExamRecord, 0, len(files))
	for i := range files {
		records = append(records, parseRecord(&files[i]))
	}
	result := &queryparams.PaginatedResult{
		Data: records,
		Meta: queryparams.PaginationMeta{
			CurrentPage: params.Page, PerPage: params.PerPage,
			TotalItems: totalCount, TotalPages: queryparams.CalculateTotalPages(totalCount, params.PerPage),
		},
	}
	return result, records, nil
}

var _ IExamService = (*ExamService)(nil)
