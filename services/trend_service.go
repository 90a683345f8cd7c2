package services

import (
	"context"
	"encoding/json"
	"time"

	"praxisnote.app/models"
	"praxisnote.app/pkg/msescore"
	"praxisnote.app/repositories"
)

// TrendServiceError is the typed error of the trend service.
type TrendServiceError string

func (e TrendServiceError) Error() string { return string(e) }

const ErrTrendInvalidScale TrendServiceError = "scale must be positive"

// TrendRequest selects the sample window and presentation of a radar.
type TrendRequest struct {
	From  time.Time
	To    time.Time
	Mode  string
	Scale float64
}

// TrendResult is the radar for one patient.
type TrendResult struct {
	PatientID string            `json:"patient_id"`
	Mode      msescore.Mode     `json:"mode"`
	Scale     float64           `json:"scale"`
	From      *time.Time        `json:"from,omitempty"`
	To        *time.Time        `json:"to,omitempty"`
	Series    []msescore.Series `json:"series"`
}

// ITrendService computes the trend radar from stored exams and notes.
type ITrendService interface {
	Radar(ctx context.Context, patient *models.Patient, req TrendRequest) (*TrendResult, error)
}

// TrendService implements ITrendService.
type TrendService struct {
	fileRepo repositories.IPatientFileRepository
}

// NewTrendService builds the service on the shared repositories.
func NewTrendService() ITrendService {
	return &TrendService{fileRepo: repositories.NewPatientFileRepository()}
}

// Radar loads every exam and structured note in the window, scores them, and
// reduces them per axis. Records whose payload cannot be parsed are skipped.
func (s *TrendService) Radar(ctx context.Context, patient *models.Patient, req TrendRequest) (*TrendResult, error) {
	if req.Scale < 0 {
		return nil, ErrTrendInvalidScale
	}
	if req.Scale == 0 {
		req.Scale = msescore.DefaultScale
	}

	kinds := []string{models.FileKindExam, models.FileKindNote}
	files, err := s.fileRepo.FindByPatientAndKinds(ctx, patient.ID, kinds, req.From, req.To)
	if err != nil {
		return nil, err
	}

	samples := make([]msescore.Sample, 0, len(files))
	for i := range files {
		var meta recordMeta
		if files[i].Meta == "" {
			continue
		}
		if err := json.Unmarshal([]byte(files[i].Meta), &meta); err != nil {
			continue
		}
		samples = append(samples, msescore.Sample{
			Taken:   files[i].RecordedAt,
			Answers: meta.Data,
		})
	}

	mode := msescore.ParseMode(req.Mode)
	result := &TrendResult{
		PatientID: patient.PublicID,
		Mode:      mode,
		Scale:     req.Scale,
		Series:    msescore.Radar(samples, mode, req.Scale),
	}
	if !req.From.IsZero() {
		result.From = &req.From
	}
	if !req.To.IsZero() {
		result.To = &req.To
	}
	return result, nil
}

var _ ITrendService = (*TrendService)(nil)
