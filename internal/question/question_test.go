package question

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLabel(t *testing.T) {
	assert.Equal(t, "A", Label(0))
	assert.Equal(t, "B", Label(1))
	assert.Equal(t, "Z", Label(25))
}

func TestLabelIndex(t *testing.T) {
	cases := []struct {
		in   string
		want int
	}{
		{"A", 0},
		{"a", 0},
		{"c", 2},
		{"Z", 25},
		{"", -1},
		{"AB", -1},
		{"1", -1},
		{"?", -1},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, LabelIndex(tc.in), "input %q", tc.in)
	}
}

func TestNewChoiceCopiesOptions(t *testing.T) {
	options := []string{"one", "two"}
	q := NewChoice("pick", options, 4, time.Minute)
	options[0] = "mutated"
	require.Equal(t, "one", q.Options[0])
	assert.Equal(t, Choice, q.Kind)
	assert.Equal(t, 4, q.Columns)
}

func TestAnswerDisplay(t *testing.T) {
	text := New("name?", time.Minute)
	assert.Equal(t, "demo", Answer{Text: "demo"}.Display(text))

	confirm := NewConfirm("sure?", time.Minute)
	assert.Equal(t, "Yes", Answer{Yes: true}.Display(confirm))
	assert.Equal(t, "No", Answer{Yes: false}.Display(confirm))

	choice := NewChoice("pick", []string{"red", "green"}, 4, time.Minute)
	assert.Equal(t, "green", Answer{Index: 1}.Display(choice))
	assert.Equal(t, "", Answer{Index: 5}.Display(choice))
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "text", Text.String())
	assert.Equal(t, "confirm", Confirm.String())
	assert.Equal(t, "choice", Choice.String())
}
