package questionnaire

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/quirk/internal/chart"
)

const sampleDefinition = `{
  "title": "Weekly check-in",
  "questions": [
    {"name": "q1", "text": "How rested do you feel?", "average_group": "energy", "type": "range", "value_min": 0, "value_max": 5},
    {"name": "q2", "text": "How focused were you?", "average_group": "energy", "type": "range", "value_min": 0, "value_max": 5},
    {"name": "q3", "text": "How anxious were you?", "average_group": "mood", "type": "range", "value_min": 1, "value_max": 4}
  ]
}`

func mustParse(t *testing.T) *Definition {
	t.Helper()
	def, err := Parse([]byte(sampleDefinition))
	require.NoError(t, err)
	return def
}

func TestParse(t *testing.T) {
	def := mustParse(t)
	assert.Equal(t, "Weekly check-in", def.Title)
	require.Len(t, def.Questions, 3)
	assert.Equal(t, "mood", def.Questions[2].Group)
	assert.Equal(t, []string{"energy", "mood"}, def.Groups())
}

func TestParseRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"not json", `{`},
		{"missing title", `{"questions": [{"name":"a","text":"","average_group":"g","type":"range","value_min":0,"value_max":2}]}`},
		{"no questions", `{"title": "t", "questions": []}`},
		{"unknown type", `{"title":"t","questions":[{"name":"a","text":"","average_group":"g","type":"free","value_min":0,"value_max":2}]}`},
		{"fractional bound", `{"title":"t","questions":[{"name":"a","text":"","average_group":"g","type":"range","value_min":0.5,"value_max":2}]}`},
		{"missing group", `{"title":"t","questions":[{"name":"a","text":"","type":"range","value_min":0,"value_max":2}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.in))
			assert.Error(t, err)
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "weekly.json")
	require.NoError(t, os.WriteFile(path, []byte(sampleDefinition), 0o644))

	def, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, def.Questions, 3)

	_, err = Load(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestMaxTotals(t *testing.T) {
	def := mustParse(t)
	assert.Equal(t, map[string]int{"energy": 8, "mood": 3}, def.MaxTotals())
}

func TestOptionsExcludeMax(t *testing.T) {
	q := Question{ValueMin: 1, ValueMax: 4}
	assert.Equal(t, []int{1, 2, 3}, q.Options())
	assert.True(t, q.Allows(3))
	assert.False(t, q.Allows(4))
	assert.Nil(t, Question{ValueMin: 3, ValueMax: 3}.Options())
}

func TestScore(t *testing.T) {
	def := mustParse(t)
	totals, err := Score(def, map[string]int{"q1": 4, "q2": 2, "q3": 1})
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"energy": 6, "mood": 1}, totals)
}

func TestScoreErrors(t *testing.T) {
	def := mustParse(t)

	_, err := Score(def, map[string]int{"q1": 1, "q2": 1, "q3": 1, "q9": 1})
	assert.ErrorIs(t, err, ErrUnknownQuestion)

	_, err = Score(def, map[string]int{"q1": 5, "q3": 1})
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Len(t, verr.Problems, 2) // q1 out of range, q2 unanswered
	assert.ErrorIs(t, err, ErrInvalidAnswers)
}

func TestEntries(t *testing.T) {
	day := chart.Day(2024, time.May, 3)
	entries := Entries(map[string]int{"energy": 6, "mood": 1}, day)
	require.Len(t, entries, 2)
	assert.Equal(t, 6, entries["energy"].Score)
	assert.True(t, entries["mood"].Date.Equal(day))
}
