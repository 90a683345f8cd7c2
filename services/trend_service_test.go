package services

import (
	"context"
	"testing"

	"praxisnote.app/pkg/msescore"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func axisValue(t *testing.T, result *TrendResult, axis msescore.Axis) msescore.Series {
	t.Helper()
	for _, s := range result.Series {
		if s.Axis == axis {
			return s
		}
	}
	t.Fatalf("axis %s missing", axis)
	return msescore.Series{}
}

func TestRadarScoresExamsAndNotes(t *testing.T) {
	setupTest(t)
	ctx := context.Background()
	patient := createTestPatient(t)
	exams := NewExamService()

	_, err := exams.CreateExam(ctx, patient, ExamInput{
		RecordedAt: mustTime(t, "2026-05-01T09:00:00Z"),
		Answers:    map[string]string{"risk_level": "high"}, // 3
	})
	require.NoError(t, err)
	_, err = exams.CreateNote(ctx, patient, NoteInput{
		RecordedAt: mustTime(t, "2026-05-10T09:00:00Z"),
		Text:       "improving",
		Answers:    map[string]string{"risk_level": "low"}, // 1
	})
	require.NoError(t, err)

	result, err := NewTrendService().Radar(ctx, patient, TrendRequest{})
	require.NoError(t, err)
	assert.Equal(t, msescore.ModeMean, result.Mode)

	risk := axisValue(t, result, msescore.AxisRisk)
	assert.Equal(t, 2, risk.Samples)
	// mean 2.0 of max 3 on the default 0-10 scale
	assert.InDelta(t, 20.0/3.0, risk.Value, 1e-9)
}

func TestRadarLatestAndWindow(t *testing.T) {
	setupTest(t)
	ctx := context.Background()
	patient := createTestPatient(t)
	exams := NewExamService()

	_, err := exams.CreateExam(ctx, patient, ExamInput{
		RecordedAt: mustTime(t, "2026-05-01T09:00:00Z"),
		Answers:    map[string]string{"mood": "labile"}, // 3
	})
	require.NoError(t, err)
	_, err = exams.CreateExam(ctx, patient, ExamInput{
		RecordedAt: mustTime(t, "2026-06-01T09:00:00Z"),
		Answers:    map[string]string{"mood": "euthymic"}, // 0
	})
	require.NoError(t, err)

	result, err := NewTrendService().Radar(ctx, patient, TrendRequest{Mode: "latest", Scale: 3})
	require.NoError(t, err)
	mood := axisValue(t, result, msescore.AxisMood)
	assert.InDelta(t, 0.0, mood.Value, 1e-9)

	// window that excludes the later exam
	result, err = NewTrendService().Radar(ctx, patient, TrendRequest{
		Mode:  "latest",
		Scale: 3,
		To:    mustTime(t, "2026-05-15T00:00:00Z"),
	})
	require.NoError(t, err)
	mood = axisValue(t, result, msescore.AxisMood)
	assert.Equal(t, 1, mood.Samples)
	assert.InDelta(t, 3.0, mood.Value, 1e-9)
}

func TestRadarRejectsNegativeScale(t *testing.T) {
	setupTest(t)
	patient := createTestPatient(t)

	_, err := NewTrendService().Radar(context.Background(), patient, TrendRequest{Scale: -1})
	assert.ErrorIs(t, err, ErrTrendInvalidScale)
}

func TestRadarWindowBoundsEchoedInResult(t *testing.T) {
	setupTest(t)
	patient := createTestPatient(t)

	from := mustTime(t, "2026-01-01T00:00:00Z")
	result, err := NewTrendService().Radar(context.Background(), patient, TrendRequest{From: from})
	require.NoError(t, err)
	require.NotNil(t, result.From)
	assert.True(t, result.From.Equal(from))
	assert.Nil(t, result.To)
}
