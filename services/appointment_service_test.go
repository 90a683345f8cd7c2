package services

import (
	"context"
	"testing"

	"praxisnote.app/pkg/queryparams"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateAppointmentValidation(t *testing.T) {
	setupTest(t)
	patient := createTestPatient(t)
	svc := NewAppointmentService()
	ctx := context.Background()

	_, err := svc.CreateAppointment(ctx, patient, AppointmentInput{
		StartsAt: mustTime(t, "2026-09-01T10:00:00Z"),
		EndsAt:   mustTime(t, "2026-09-01T11:00:00Z"),
	})
	assert.ErrorIs(t, err, ErrAppointmentTitleRequired)

	_, err = svc.CreateAppointment(ctx, patient, AppointmentInput{
		Title:    "Session",
		StartsAt: mustTime(t, "2026-09-01T11:00:00Z"),
		EndsAt:   mustTime(t, "2026-09-01T10:00:00Z"),
	})
	assert.ErrorIs(t, err, ErrAppointmentInvalidTimes)
}

func TestAppointmentLifecycle(t *testing.T) {
	setupTest(t)
	patient := createTestPatient(t)
	svc := NewAppointmentService()
	ctx := context.Background()

	appointment, err := svc.CreateAppointment(ctx, patient, AppointmentInput{
		Title:    "Session",
		StartsAt: mustTime(t, "2026-09-01T10:00:00Z"),
		EndsAt:   mustTime(t, "2026-09-01T11:00:00Z"),
		Location: "Office",
	})
	require.NoError(t, err)

	updated, err := svc.UpdateAppointment(ctx, appointment.PublicID, AppointmentInput{
		Title:    "Session (moved)",
		StartsAt: mustTime(t, "2026-09-02T10:00:00Z"),
		EndsAt:   mustTime(t, "2026-09-02T11:00:00Z"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Session (moved)", updated.Title)

	result, err := svc.GetAppointmentsPaginated(ctx, patient, queryparams.ListParams{})
	require.NoError(t, err)
	assert.EqualValues(t, 1, result.Meta.TotalItems)

	require.NoError(t, svc.DeleteAppointment(ctx, appointment.PublicID))
	_, err = svc.GetAppointment(ctx, appointment.PublicID)
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestAppointmentsInRangeUsesOverlap(t *testing.T) {
	setupTest(t)
	patient := createTestPatient(t)
	svc := NewAppointmentService()
	ctx := context.Background()

	// spans the range boundary
	_, err := svc.CreateAppointment(ctx, patient, AppointmentInput{
		Title:    "Long session",
		StartsAt: mustTime(t, "2026-09-01T09:30:00Z"),
		EndsAt:   mustTime(t, "2026-09-01T10:30:00Z"),
	})
	require.NoError(t, err)
	// entirely outside
	_, err = svc.CreateAppointment(ctx, patient, AppointmentInput{
		Title:    "Next week",
		StartsAt: mustTime(t, "2026-09-08T10:00:00Z"),
		EndsAt:   mustTime(t, "2026-09-08T11:00:00Z"),
	})
	require.NoError(t, err)

	found, err := svc.GetAppointmentsInRange(ctx,
		mustTime(t, "2026-09-01T10:00:00Z"),
		mustTime(t, "2026-09-01T12:00:00Z"),
	)
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Long session", found[0].Title)
	assert.Equal(t, patient.PublicID, found[0].Patient.PublicID)
}

func TestMarkReminderSent(t *testing.T) {
	setupTest(t)
	patient := createTestPatient(t)
	svc := NewAppointmentService()
	ctx := context.Background()

	appointment, err := svc.CreateAppointment(ctx, patient, AppointmentInput{
		Title:    "Session",
		StartsAt: mustTime(t, "2026-09-01T10:00:00Z"),
		EndsAt:   mustTime(t, "2026-09-01T11:00:00Z"),
	})
	require.NoError(t, err)
	assert.False(t, appointment.ReminderSent)

	require.NoError(t, svc.MarkReminderSent(ctx, appointment))

	reloaded, err := svc.GetAppointment(ctx, appointment.PublicID)
	require.NoError(t, err)
	assert.True(t, reloaded.ReminderSent)
}
