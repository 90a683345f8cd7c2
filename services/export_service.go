package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"praxisnote.app/configs/configsapp"
	"praxisnote.app/configs/configslog"
	"praxisnote.app/models"
	"praxisnote.app/repositories"

	"go.uber.org/zap"
)

// ExportServiceError is the typed error of the export service.
type ExportServiceError string

func (e ExportServiceError) Error() string { return string(e) }

const ErrExportFailed ExportServiceError = "could not build export"

// IExportService renders calendar, roster, and snapshot exports.
type IExportService interface {
	CalendarICS(ctx context.Context, from, to time.Time) ([]byte, error)
	RosterCSV(ctx context.Context) ([]byte, error)
	Snapshot(ctx context.Context) ([]byte, error)
	WriteSnapshot(ctx context.Context) (string, error)
}

// ExportService implements IExportService.
type ExportService struct {
	patientRepo     repositories.IPatientRepository
	fileRepo        repositories.IPatientFileRepository
	appointmentRepo repositories.IAppointmentRepository
}

// NewExportService builds the service on the shared repositories.
func NewExportService() IExportService {
	return &ExportService{
		patientRepo:     repositories.NewPatientRepository(),
		fileRepo:        repositories.NewPatientFileRepository(),
		appointmentRepo: repositories.NewAppointmentRepository(),
	}
}

// icsEscape quotes the characters RFC 5545 reserves in text values.
func icsEscape(s string) string {
	replacer := strings.NewReplacer(
		"\\", "\\\\",
		";", "\\;",
		",", "\\,",
		"\r\n", "\\n",
		"\n", "\\n",
	)
	return replacer.Replace(s)
}

func icsTime(t time.Time) string {
	return t.UTC().Format("20060102T150405Z")
}

// CalendarICS renders appointments overlapping [from, to] as a VCALENDAR.
// Zero bounds export the whole book.
func (s *ExportService) CalendarICS(ctx context.Context, from, to time.Time) ([]byte, error) {
	appointments, err := s.appointmentRepo.FindInRange(ctx, from, to)
	if err != nil {
		return nil, ErrExportFailed
	}

	now := time.Now()
	var b strings.Builder
	writeLine := func(line string) {
		b.WriteString(line)
		b.WriteString("\r\n")
	}

	writeLine("BEGIN:VCALENDAR")
	writeLine("VERSION:2.0")
	writeLine("PRODID:-//" + icsEscape(configsapp.PracticeName()) + "//PraxisNote//EN")
	writeLine("CALSCALE:GREGORIAN")
	for i := range appointments {
		a := &appointments[i]
		summary := a.Title
		if a.Patient.FullName != "" {
			summary = a.Patient.FullName + " - " + a.Title
		}
		writeLine("BEGIN:VEVENT")
		writeLine("UID:" + a.PublicID + "@praxisnote")
		writeLine("DTSTAMP:" + icsTime(now))
		writeLine("DTSTART:" + icsTime(a.StartsAt))
		writeLine("DTEND:" + icsTime(a.EndsAt))
		writeLine("SUMMARY:" + icsEscape(summary))
		if a.Location != "" {
			writeLine("LOCATION:" + icsEscape(a.Location))
		}
		if a.Notes != "" {
			writeLine("DESCRIPTION:" + icsEscape(a.Notes))
		}
		writeLine("END:VEVENT")
	}
	writeLine("END:VCALENDAR")
	return []byte(b.String()), nil
}

// RosterCSV renders the full patient roster.
func (s *ExportService) RosterCSV(ctx context.Context) ([]byte, error) {
	patients, err := s.patientRepo.FindAll(ctx)
	if err != nil {
		return nil, ErrExportFailed
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	header := []string{
		"id", "full_name", "document_type", "document_number", "date_of_birth",
		"age", "sex", "phone", "email", "city", "occupation", "insurance",
		"chief_complaint", "created_at",
	}
	if err := w.Write(header); err != nil {
		return nil, ErrExportFailed
	}
	now := time.Now()
	for i := range patients {
		p := &patients[i]
		age := ""
		if a := p.Age(now); a >= 0 {
			age = strconv.Itoa(a)
		}
		row := []string{
			p.PublicID, p.FullName, p.DocumentType, p.DocumentNumber, p.DateOfBirth,
			age, p.Sex, p.Phone, p.Email, p.City, p.Occupation, p.Insurance,
			p.ChiefComplaint, p.CreatedAt.Format("2006-01-02"),
		}
		if err := w.Write(row); err != nil {
			return nil, ErrExportFailed
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, ErrExportFailed
	}
	return buf.Bytes(), nil
}

// snapshotDocument is the portable dump of the whole record set.
type snapshotDocument struct {
	Practice   string            `json:"practice"`
	ExportedAt time.Time         `json:"exported_at"`
	Patients   []snapshotPatient `json:"patients"`
}

type snapshotPatient struct {
	Patient      models.Patient       `json:"patient"`
	Files        []snapshotFile       `json:"files"`
	Appointments []models.Appointment `json:"appointments"`
}

// snapshotFile re-exposes the structured exam/note payload that the API view
// of a file row hides.
type snapshotFile struct {
	models.PatientFile
	Meta json.RawMessage `json:"meta,omitempty"`
}

func snapshotFiles(files []models.PatientFile) []snapshotFile {
	out := make([]snapshotFile, 0, len(files))
	for i := range files {
		entry := snapshotFile{PatientFile: files[i]}
		if files[i].Meta != "" {
			entry.Meta = json.RawMessage(files[i].Meta)
		}
		out = append(out, entry)
	}
	return out
}

// Snapshot serializes every patient with their files and appointments.
func (s *ExportService) Snapshot(ctx context.Context) ([]byte, error) {
	patients, err := s.patientRepo.FindAll(ctx)
	if err != nil {
		return nil, ErrExportFailed
	}

	doc := snapshotDocument{
		Practice:   configsapp.PracticeName(),
		ExportedAt: time.Now(),
		Patients:   make([]snapshotPatient, 0, len(patients)),
	}
	for i := range patients {
		files, err := s.fileRepo.FindAllByPatient(ctx, patients[i].ID)
		if err != nil {
			return nil, ErrExportFailed
		}
		appointments, err := s.appointmentRepo.FindAllByPatient(ctx, patients[i].ID)
		if err != nil {
			return nil, ErrExportFailed
		}
		doc.Patients = append(doc.Patients, snapshotPatient{
			Patient:      patients[i],
			Files:        snapshotFiles(files),
			Appointments: appointments,
		})
	}
	return json.MarshalIndent(doc, "", "  ")
}

// WriteSnapshot stores a timestamped snapshot file and returns its path.
// The nightly job calls this; the settings screen can trigger it manually.
func (s *ExportService) WriteSnapshot(ctx context.Context) (string, error) {
	data, err := s.Snapshot(ctx)
	if err != nil {
		return "", err
	}
	dir := configsapp.SnapshotsDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		configslog.Log.Error("ExportService.WriteSnapshot: mkdir failed", zap.String("dir", dir), zap.Error(err))
		return "", ErrExportFailed
	}
	path := filepath.Join(dir, fmt.Sprintf("snapshot_%s.json", time.Now().Format("2006-01-02_15-04-05")))
	if err := os.WriteFile(path, data, 0o600); err != nil {
		configslog.Log.Error("ExportService.WriteSnapshot: write failed", zap.String("path", path), zap.Error(err))
		return "", ErrExportFailed
	}
	configslog.SLog.Infof("Snapshot written to %s", path)
	return path, nil
}

var _ IExportService = (*ExportService)(nil)
