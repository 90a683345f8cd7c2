// Package msescore turns categorical mental-status exam answers into the
// numeric series behind the trend radar. Six fixed axes, a string-to-severity
// lookup per axis (0 = unremarkable, 3 = severe), one of three reducers over
// a date-filtered sample set, and a linear scale to the display range.
package msescore

import (
	"sort"
	"strings"
	"time"
)

// Axis is one spoke of the trend radar.
type Axis string

const (
	AxisMood        Axis = "mood"
	AxisAffect      Axis = "affect"
	AxisOrientation Axis = "orientation"
	AxisMemory      Axis = "memory"
	AxisJudgment    Axis = "judgment"
	AxisRisk        Axis = "risk"
)

// Axes returns the axis set in display order.
func Axes() []Axis {
	return []Axis{AxisMood, AxisAffect, AxisOrientation, AxisMemory, AxisJudgment, AxisRisk}
}

// answerKey maps each axis to the exam/note field that feeds it.
var answerKey = map[Axis]string{
	AxisMood:        "mood",
	AxisAffect:      "affect",
	AxisOrientation: "orientation",
	AxisMemory:      "memory",
	AxisJudgment:    "judgment",
	AxisRisk:        "risk_level",
}

// severity holds the per-axis answer-to-severity tables. Answers not listed
// (including "not assessable") contribute no sample.
var severity = map[Axis]map[string]int{
	AxisMood: {
		"euthymic":  0,
		"anxious":   1,
		"irritable": 1,
		"depressed": 2,
		"euphoric":  2,
		"labile":    3,
	},
	AxisAffect: {
		"full":        0,
		"restricted":  1,
		"labile":      2,
		"incongruent": 2,
		"blunted":     2,
		"flat":        3,
	},
	AxisOrientation: {
		"oriented x3":        0,
		"partially oriented": 2,
		"disoriented":        3,
	},
	AxisMemory: {
		"intact":              0,
		"mild impairment":     1,
		"moderate impairment": 2,
		"severe impairment":   3,
	},
	AxisJudgment: {
		"intact":            0,
		"fair":              1,
		"impaired":          2,
		"severely impaired": 3,
	},
	AxisRisk: {
		"none":     0,
		"low":      1,
		"moderate": 2,
		"high":     3,
	},
}

// MaxSeverity is the top of the raw severity range.
const MaxSeverity = 3.0

// DefaultScale is the display range used when a request names none.
const DefaultScale = 10.0

// Mode selects how the filtered sample set is reduced per axis.
type Mode string

const (
	ModeMean   Mode = "mean"   // mean over the whole filtered set
	ModeLast3  Mode = "last3"  // mean of the 3 most recent samples
	ModeLatest Mode = "latest" // most recent sample only
)

// ParseMode normalizes a request parameter, defaulting to mean.
func ParseMode(s string) Mode {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case ModeLast3:
		return ModeLast3
	case ModeLatest:
		return ModeLatest
	default:
		return ModeMean
	}
}

// Sample is one scored record: the answers of a single exam or structured
// note, with the time it was taken.
type Sample struct {
	Taken   time.Time
	Answers map[string]string
}

// Score looks up the severity of a sample's answer on one axis. The second
// return is false when the answer is absent or unmapped.
func Score(axis Axis, answers map[string]string) (int, bool) {
	key, ok := answerKey[axis]
	if !ok {
		return 0, false
	}
	raw, ok := answers[key]
	if !ok {
		return 0, false
	}
	v, ok := severity[axis][strings.ToLower(strings.TrimSpace(raw))]
	return v, ok
}

// Series is the reduced value of one axis.
type Series struct {
	Axis    Axis    `json:"axis"`
	Value   float64 `json:"value"`
	Samples int     `json:"samples"`
}

// Radar reduces a sample set onto all axes, scaled to [0, scale]. Samples
// are ordered by time internally; callers may pass them unsorted.
func Radar(samples []Sample, mode Mode, scale float64) []Series {
	if scale <= 0 {
		scale = DefaultScale
	}
	ordered := make([]Sample, len(samples))
	copy(ordered, samples)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].Taken.Before(ordered[j].Taken) })

	out := make([]Series, 0, len(Axes()))
	for _, axis := range Axes() {
		var scores []int
		for _, s := range ordered {
			if v, ok := Score(axis, s.Answers); ok {
				scores = append(scores, v)
			}
		}
		out = append(out, Series{
			Axis:    axis,
			Value:   scaleTo(reduce(scores, mode), scale),
			Samples: len(scores),
		})
	}
	return out
}

// reduce collapses a chronological score list per the mode. An empty list
// reduces to 0.
func reduce(scores []int, mode Mode) float64 {
	if len(scores) == 0 {
		return 0
	}
	switch mode {
	case ModeLatest:
		return float64(scores[len(scores)-1])
	case ModeLast3:
		start := len(scores) - 3
		if start < 0 {
			start = 0
		}
		scores = scores[start:]
	}
	sum := 0
	for _, v := range scores {
		sum += v
	}
	return float64(sum) / float64(len(scores))
}

// scaleTo maps a raw severity in [0, MaxSeverity] linearly onto [0, max].
func scaleTo(v, max float64) float64 {
	return v / MaxSeverity * max
}
