package question

import (
	"time"

	"github.com/google/uuid"
)

// Kind tells the client what shape of reply resolves a question.
type Kind int

const (
	// Text accepts any non-empty free-text reply.
	Text Kind = iota
	// Confirm accepts a yes/no button tap or a typed token from the
	// confirm vocabulary.
	Confirm
	// Choice accepts a labeled button tap or a typed single letter.
	Choice
)

func (k Kind) String() string {
	switch k {
	case Text:
		return "text"
	case Confirm:
		return "confirm"
	case Choice:
		return "choice"
	}
	return "unknown"
}

// MaxOptions is the number of single-letter labels available (A–Z).
const MaxOptions = 26

// Question is one interaction request. It is created immediately
// before dispatch and discarded once an Answer or timeout resolves it.
type Question struct {
	ID      uuid.UUID
	Kind    Kind
	Prompt  string
	Options []string // empty unless Kind == Choice
	Columns int      // button grid width, Choice only
	AskedAt time.Time
	Timeout time.Duration
}

// New builds a free-text question.
func New(prompt string, timeout time.Duration) *Question {
	return &Question{
		ID:      uuid.New(),
		Kind:    Text,
		Prompt:  prompt,
		AskedAt: time.Now(),
		Timeout: timeout,
	}
}

// NewConfirm builds a yes/no question.
func NewConfirm(prompt string, timeout time.Duration) *Question {
	q := New(prompt, timeout)
	q.Kind = Confirm
	return q
}

// NewChoice builds a single-choice question over options, rendered
// columns buttons per row.
func NewChoice(prompt string, options []string, columns int, timeout time.Duration) *Question {
	q := New(prompt, timeout)
	q.Kind = Choice
	q.Options = append([]string(nil), options...)
	q.Columns = columns
	return q
}

// Label returns the letter label for option index i (0 -> "A").
// The caller must keep i within MaxOptions.
func Label(i int) string {
	return string(rune('A' + i))
}

// LabelIndex maps a typed single-letter reply back to an option index.
// It returns -1 when the text is not a single ASCII letter.
func LabelIndex(text string) int {
	if len(text) != 1 {
		return -1
	}
	c := text[0]
	switch {
	case c >= 'A' && c <= 'Z':
		return int(c - 'A')
	case c >= 'a' && c <= 'z':
		return int(c - 'a')
	}
	return -1
}

// Answer is the resolved result of a Question. Which field is
// meaningful depends on the Question's Kind; the "no answer" outcome
// is expressed by the ok=false return of the blocking calls, not by a
// sentinel Answer value.
type Answer struct {
	Text       string
	Yes        bool
	Index      int
	ReceivedAt time.Time
}

// Display renders the answer the way it is shown back in the chat and
// recorded in history.
func (a Answer) Display(q *Question) string {
	switch q.Kind {
	case Confirm:
		if a.Yes {
			return "Yes"
		}
		return "No"
	case Choice:
		if a.Index >= 0 && a.Index < len(q.Options) {
			return q.Options[a.Index]
		}
		return ""
	default:
		return a.Text
	}
}
