package services

import (
	"context"
	"os"
	"testing"

	"praxisnote.app/configs/configsapp"
	"praxisnote.app/pkg/queryparams"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreatePatientRequiresName(t *testing.T) {
	setupTest(t)
	svc := NewPatientService()

	_, err := svc.CreatePatient(context.Background(), PatientInput{FullName: "   "})
	assert.ErrorIs(t, err, ErrPatientNameRequired)
}

func TestCreatePatientValidatesDateOfBirth(t *testing.T) {
	setupTest(t)
	svc := NewPatientService()

	_, err := svc.CreatePatient(context.Background(), PatientInput{
		FullName:    "Ana Torres",
		DateOfBirth: "31/12/1990",
	})
	assert.ErrorIs(t, err, ErrPatientInvalidDOB)
}

func TestPatientLifecycle(t *testing.T) {
	setupTest(t)
	svc := NewPatientService()
	ctx := context.Background()

	patient, err := svc.CreatePatient(ctx, PatientInput{
		FullName:    "Ana Torres",
		DateOfBirth: "1990-04-12",
		City:        "Valencia",
	})
	require.NoError(t, err)
	require.NotEmpty(t, patient.PublicID)

	fetched, err := svc.GetPatient(ctx, patient.PublicID)
	require.NoError(t, err)
	assert.Equal(t, "Ana Torres", fetched.FullName)

	updated, err := svc.UpdatePatient(ctx, patient.PublicID, PatientInput{
		FullName: "Ana Torres Gil",
		City:     "Valencia",
	})
	require.NoError(t, err)
	assert.Equal(t, "Ana Torres Gil", updated.FullName)

	count, err := svc.GetPatientCount(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}

func TestGetPatientNotFound(t *testing.T) {
	setupTest(t)
	svc := NewPatientService()

	_, err := svc.GetPatient(context.Background(), "no-such-id")
	assert.ErrorIs(t, err, ErrPatientNotFound)
}

func TestPatientSearchMatchesNameAndCity(t *testing.T) {
	setupTest(t)
	svc := NewPatientService()
	ctx := context.Background()

	_, err := svc.CreatePatient(ctx, PatientInput{FullName: "Ana Torres", City: "Valencia"})
	require.NoError(t, err)
	_, err = svc.CreatePatient(ctx, PatientInput{FullName: "Luis Marin", City: "Bilbao"})
	require.NoError(t, err)

	result, err := svc.GetPatientsPaginated(ctx, queryparams.ListParams{Query: "valencia"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, result.Meta.TotalItems)

	result, err = svc.GetPatientsPaginated(ctx, queryparams.ListParams{Query: "torres"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, result.Meta.TotalItems)
}

func TestDeletePatientCascades(t *testing.T) {
	setupTest(t)
	ctx := context.Background()
	patients := NewPatientService()
	files := NewFileService()
	appointments := NewAppointmentService()

	patient, err := patients.CreatePatient(ctx, PatientInput{FullName: "Ana Torres"})
	require.NoError(t, err)

	file, err := files.SaveDocument(ctx, patient, DocumentInput{
		Filename: "consent.pdf",
		Data:     []byte("pdf bytes"),
	})
	require.NoError(t, err)

	_, err = appointments.CreateAppointment(ctx, patient, AppointmentInput{
		Title:    "Intake",
		StartsAt: mustTime(t, "2026-09-01T10:00:00Z"),
		EndsAt:   mustTime(t, "2026-09-01T11:00:00Z"),
	})
	require.NoError(t, err)

	folder := configsapp.PatientDir(patient.PublicID)
	_, err = os.Stat(folder)
	require.NoError(t, err)

	require.NoError(t, patients.DeletePatient(ctx, patient.PublicID))

	_, err = patients.GetPatient(ctx, patient.PublicID)
	assert.ErrorIs(t, err, ErrPatientNotFound)

	_, _, err = files.GetFile(ctx, file.PublicID)
	assert.ErrorIs(t, err, ErrFileNotFound)

	_, err = os.Stat(folder)
	assert.True(t, os.IsNotExist(err))
}
