package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalendarICSEscapesAndFormats(t *testing.T) {
	setupTest(t)
	ctx := context.Background()
	patient := createTestPatient(t)

	_, err := NewAppointmentService().CreateAppointment(ctx, patient, AppointmentInput{
		Title:    "Session, follow-up",
		StartsAt: mustTime(t, "2026-09-01T10:00:00Z"),
		EndsAt:   mustTime(t, "2026-09-01T11:00:00Z"),
		Location: "Office; room 2",
	})
	require.NoError(t, err)

	data, err := NewExportService().CalendarICS(ctx, time.Time{}, time.Time{})
	require.NoError(t, err)
	ics := string(data)

	assert.True(t, strings.HasPrefix(ics, "BEGIN:VCALENDAR\r\n"))
	assert.Contains(t, ics, "DTSTART:20260901T100000Z\r\n")
	assert.Contains(t, ics, "SUMMARY:Ana Torres - Session\\, follow-up\r\n")
	assert.Contains(t, ics, "LOCATION:Office\\; room 2\r\n")
	assert.True(t, strings.HasSuffix(ics, "END:VCALENDAR\r\n"))
}

func TestRosterCSV(t *testing.T) {
	setupTest(t)
	ctx := context.Background()
	patients := NewPatientService()

	_, err := patients.CreatePatient(ctx, PatientInput{
		FullName:    "Ana Torres",
		DateOfBirth: "1990-04-12",
		City:        "Valencia",
	})
	require.NoError(t, err)
	_, err = patients.CreatePatient(ctx, PatientInput{FullName: "Luis Marin"})
	require.NoError(t, err)

	data, err := NewExportService().RosterCSV(ctx)
	require.NoError(t, err)

	rows, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3) // header + 2 patients
	assert.Equal(t, "full_name", rows[0][1])

	names := []string{rows[1][1], rows[2][1]}
	assert.Contains(t, names, "Ana Torres")
	assert.Contains(t, names, "Luis Marin")
}

func TestSnapshotCollectsEverything(t *testing.T) {
	setupTest(t)
	ctx := context.Background()
	patient := createTestPatient(t)

	_, err := NewExamService().CreateExam(ctx, patient, ExamInput{
		Answers: map[string]string{"mood": "anxious"},
	})
	require.NoError(t, err)
	_, err = NewAppointmentService().CreateAppointment(ctx, patient, AppointmentInput{
		Title:    "Session",
		StartsAt: mustTime(t, "2026-09-01T10:00:00Z"),
		EndsAt:   mustTime(t, "2026-09-01T11:00:00Z"),
	})
	require.NoError(t, err)

	data, err := NewExportService().Snapshot(ctx)
	require.NoError(t, err)

	var doc struct {
		Practice string `json:"practice"`
		Patients []struct {
			Patient struct {
				FullName string `json:"full_name"`
			} `json:"patient"`
			Files        []json.RawMessage `json:"files"`
			Appointments []json.RawMessage `json:"appointments"`
		} `json:"patients"`
	}
	require.NoError(t, json.Unmarshal(data, &doc))
	require.Len(t, doc.Patients, 1)
	assert.Equal(t, "Ana Torres", doc.Patients[0].Patient.FullName)
	assert.Len(t, doc.Patients[0].Files, 1)
	assert.Len(t, doc.Patients[0].Appointments, 1)
}

func TestWriteSnapshotCreatesFile(t *testing.T) {
	setupTest(t)
	ctx := context.Background()
	createTestPatient(t)

	path, err := NewExportService().WriteSnapshot(ctx)
	require.NoError(t, err)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}
