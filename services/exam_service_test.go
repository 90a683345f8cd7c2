package services

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"praxisnote.app/configs/configsapp"
	"praxisnote.app/models"
	"praxisnote.app/pkg/queryparams"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestPatient(t *testing.T) *models.Patient {
	t.Helper()
	patient, err := NewPatientService().CreatePatient(context.Background(), PatientInput{FullName: "Ana Torres"})
	require.NoError(t, err)
	return patient
}

func TestCreateExamStoresPayloadAndTranscript(t *testing.T) {
	setupTest(t)
	ctx := context.Background()
	patient := createTestPatient(t)
	svc := NewExamService()

	file, err := svc.CreateExam(ctx, patient, ExamInput{
		Answers: map[string]string{
			"mood":       "depressed",
			"judgment":   "fair",
			"risk_level": "low",
		},
	})
	require.NoError(t, err)
	assert.Equal(t, models.FileKindExam, file.Kind)

	var meta struct {
		Type      string            `json:"type"`
		PatientID string            `json:"patient_id"`
		Data      map[string]string `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(file.Meta), &meta))
	assert.Equal(t, models.FileKindExam, meta.Type)
	assert.Equal(t, patient.PublicID, meta.PatientID)
	assert.Equal(t, "depressed", meta.Data["mood"])

	body, err := os.ReadFile(filepath.Join(configsapp.PatientDir(patient.PublicID), file.StoredName))
	require.NoError(t, err)
	assert.Contains(t, string(body), "Mental Status Examination")
	assert.Contains(t, string(body), "Mood (reported): depressed")
	assert.Contains(t, string(body), "[Mood & Affect]")
}

func TestCreateExamRejectsEmptyAnswers(t *testing.T) {
	setupTest(t)
	patient := createTestPatient(t)

	_, err := NewExamService().CreateExam(context.Background(), patient, ExamInput{
		Answers: map[string]string{"mood": "   "},
	})
	assert.ErrorIs(t, err, ErrExamEmptyAnswers)
}

func TestCreateNoteRequiresBody(t *testing.T) {
	setupTest(t)
	patient := createTestPatient(t)

	_, err := NewExamService().CreateNote(context.Background(), patient, NoteInput{})
	assert.ErrorIs(t, err, ErrNoteEmptyBody)
}

func TestNoteRoundTripSeparatesTextFromAnswers(t *testing.T) {
	setupTest(t)
	ctx := context.Background()
	patient := createTestPatient(t)
	svc := NewExamService()

	file, err := svc.CreateNote(ctx, patient, NoteInput{
		Text:    "Sleeping better since last session.",
		Answers: map[string]string{"mood": "euthymic"},
	})
	require.NoError(t, err)
	assert.Equal(t, models.FileKindNote, file.Kind)

	record, err := svc.GetRecord(ctx, file.PublicID)
	require.NoError(t, err)
	assert.Equal(t, "Sleeping better since last session.", record.Text)
	assert.Equal(t, "euthymic", record.Answers["mood"])
	assert.NotContains(t, record.Answers, "text")
}

func TestGetRecordRejectsAttachments(t *testing.T) {
	setupTest(t)
	ctx := context.Background()
	patient := createTestPatient(t)

	file, err := NewFileService().SaveDocument(ctx, patient, DocumentInput{
		Filename: "scan.pdf",
		Data:     []byte("x"),
	})
	require.NoError(t, err)

	_, err = NewExamService().GetRecord(ctx, file.PublicID)
	assert.ErrorIs(t, err, ErrExamNotFound)
}

func TestListRecordsFiltersByKind(t *testing.T) {
	setupTest(t)
	ctx := context.Background()
	patient := createTestPatient(t)
	svc := NewExamService()

	_, err := svc.CreateExam(ctx, patient, ExamInput{Answers: map[string]string{"mood": "anxious"}})
	require.NoError(t, err)
	_, err = svc.CreateNote(ctx, patient, NoteInput{Text: "check-in"})
	require.NoError(t, err)

	result, records, err := svc.ListRecords(ctx, patient, models.FileKindNote, queryparams.ListParams{})
	require.NoError(t, err)
	assert.EqualValues(t, 1, result.Meta.TotalItems)
	require.Len(t, records, 1)
	assert.Equal(t, models.FileKindNote, records[0].Kind)

	result, _, err = svc.ListRecords(ctx, patient, "", queryparams.ListParams{})
	require.NoError(t, err)
	assert.EqualValues(t, 1, result.Meta.TotalItems) // defaults to exams
}

func TestGetTemplateIsSeededInOrder(t *testing.T) {
	setupTest(t)

	fields, err := NewExamService().GetTemplate(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, fields)

	last := 0
	keys := map[string]bool{}
	for _, f := range fields {
		assert.Greater(t, f.Position, last)
		last = f.Position
		keys[f.FieldKey] = true
	}
	for _, key := range []string{"mood", "affect", "orientation", "memory", "judgment", "risk_level"} {
		assert.True(t, keys[key], "catalog missing %s", key)
	}
}
