package msescore

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleAt(day int, answers map[string]string) Sample {
	return Sample{
		Taken:   time.Date(2026, 3, day, 10, 0, 0, 0, time.UTC),
		Answers: answers,
	}
}

func seriesFor(t *testing.T, series []Series, axis Axis) Series {
	t.Helper()
	for _, s := range series {
		if s.Axis == axis {
			return s
		}
	}
	t.Fatalf("axis %s missing from radar", axis)
	return Series{}
}

func TestScoreLooksUpAxisField(t *testing.T) {
	answers := map[string]string{
		"mood":       "Depressed",
		"risk_level": "high",
	}

	v, ok := Score(AxisMood, answers)
	require.True(t, ok)
	assert.Equal(t, 2, v)

	v, ok = Score(AxisRisk, answers)
	require.True(t, ok)
	assert.Equal(t, 3, v)
}

func TestScoreSkipsUnmappedAnswers(t *testing.T) {
	_, ok := Score(AxisMood, map[string]string{"mood": "not assessable"})
	assert.False(t, ok)

	_, ok = Score(AxisMemory, map[string]string{})
	assert.False(t, ok)
}

func TestParseMode(t *testing.T) {
	assert.Equal(t, ModeMean, ParseMode(""))
	assert.Equal(t, ModeMean, ParseMode("bogus"))
	assert.Equal(t, ModeLast3, ParseMode(" LAST3 "))
	assert.Equal(t, ModeLatest, ParseMode("latest"))
}

func TestRadarMeanScalesLinearly(t *testing.T) {
	samples := []Sample{
		sampleAt(1, map[string]string{"mood": "euthymic"}),  // 0
		sampleAt(2, map[string]string{"mood": "depressed"}), // 2
	}

	series := Radar(samples, ModeMean, 10)
	mood := seriesFor(t, series, AxisMood)

	assert.Equal(t, 2, mood.Samples)
	// mean 1.0 of max 3 on a 0-10 scale
	assert.InDelta(t, 10.0/3.0, mood.Value, 1e-9)
}

func TestRadarLatestUsesChronologicalOrder(t *testing.T) {
	// deliberately unsorted input
	samples := []Sample{
		sampleAt(5, map[string]string{"risk_level": "none"}),
		sampleAt(1, map[string]string{"risk_level": "high"}),
	}

	series := Radar(samples, ModeLatest, 3)
	risk := seriesFor(t, series, AxisRisk)
	assert.InDelta(t, 0.0, risk.Value, 1e-9)
}

func TestRadarLast3Window(t *testing.T) {
	samples := []Sample{
		sampleAt(1, map[string]string{"judgment": "severely impaired"}), // 3, outside window
		sampleAt(2, map[string]string{"judgment": "intact"}),            // 0
		sampleAt(3, map[string]string{"judgment": "fair"}),              // 1
		sampleAt(4, map[string]string{"judgment": "impaired"}),          // 2
	}

	series := Radar(samples, ModeLast3, MaxSeverity)
	judgment := seriesFor(t, series, AxisJudgment)

	assert.Equal(t, 4, judgment.Samples)
	assert.InDelta(t, 1.0, judgment.Value, 1e-9)
}

func TestRadarEmptyAxesReadZero(t *testing.T) {
	series := Radar(nil, ModeMean, 0)
	require.Len(t, series, len(Axes()))
	for _, s := range series {
		assert.Zero(t, s.Value)
		assert.Zero(t, s.Samples)
	}
}
