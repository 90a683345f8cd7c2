package handlers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExamTemplateCarriesOptionLists(t *testing.T) {
	app := setupApp(t)

	resp, err := app.Test(jsonRequest(t, http.MethodGet, "/api/exam-template", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var fields []struct {
		Section  string   `json:"section"`
		FieldKey string   `json:"field_key"`
		Label    string   `json:"label"`
		Type     string   `json:"type"`
		Options  []string `json:"options"`
		Position int      `json:"position"`
	}
	decodeData(t, resp, &fields)
	require.NotEmpty(t, fields)

	var moodOptions, textOptions []string
	moodSeen := false
	for _, f := range fields {
		switch f.FieldKey {
		case "mood":
			moodSeen = true
			moodOptions = f.Options
		case "thought_content":
			textOptions = f.Options
		}
	}
	require.True(t, moodSeen, "catalog missing mood field")

	// the select vocabulary doubles as the scoring vocabulary
	assert.Contains(t, moodOptions, "euthymic")
	assert.Contains(t, moodOptions, "depressed")
	// free-text fields have no option list
	assert.Empty(t, textOptions)
}
