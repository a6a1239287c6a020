package client

import (
	"strings"
	"time"

	tele "gopkg.in/telebot.v4"

	"github.com/agentloop/consult/internal/question"
)

// Confirm vocabulary. Matching is case-insensitive on trimmed input;
// anything outside it leaves the wait open.
var (
	yesTokens = map[string]bool{"yes": true, "y": true, "ok": true, "yeah": true, "yep": true}
	noTokens  = map[string]bool{"no": true, "n": true, "nope": true}
)

func parseConfirm(text string) (yes, ok bool) {
	t := strings.ToLower(strings.TrimSpace(text))
	if yesTokens[t] {
		return true, true
	}
	if noTokens[t] {
		return false, true
	}
	return false, false
}

func (c *Client) onText(tc tele.Context) error {
	m := tc.Message()
	if m == nil || m.Chat == nil {
		return nil
	}
	c.HandleText(m.Chat.ID, m.Text)
	return nil
}

func (c *Client) onCallback(tc tele.Context) error {
	cb := tc.Callback()
	if cb == nil || cb.Message == nil || cb.Message.Chat == nil {
		return nil
	}
	c.HandleCallback(cb.Message.Chat.ID, cb.Data)
	return nil
}

// HandleText feeds a typed reply into the correlation protocol.
// Replies that do not match the pending question's expected shape are
// ignored and the wait continues.
func (c *Client) HandleText(chatID int64, text string) {
	req, ok := c.reg.Get(chatID)
	if !ok {
		return
	}
	a, ok := typedAnswer(req.Question, text)
	if !ok {
		return
	}
	c.resolve(chatID, a)
}

// HandleCallback feeds a button tap into the correlation protocol.
// Payloads from another question (stale keyboards) or with an
// out-of-bounds index are ignored.
func (c *Client) HandleCallback(chatID int64, data string) {
	req, ok := c.reg.Get(chatID)
	if !ok {
		return
	}
	id, index, ok := parseCallback(data)
	if !ok || id != req.Question.ID.String() {
		return
	}
	now := time.Now()
	var a question.Answer
	switch req.Question.Kind {
	case question.Confirm:
		if index != 0 && index != 1 {
			return
		}
		a = question.Answer{Yes: index == 1, ReceivedAt: now}
	case question.Choice:
		if index < 0 || index >= len(req.Question.Options) {
			return
		}
		a = question.Answer{Index: index, ReceivedAt: now}
	default:
		return
	}
	c.resolve(chatID, a)
}

// typedAnswer validates a free-text reply against the question kind.
func typedAnswer(q *question.Question, text string) (question.Answer, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return question.Answer{}, false
	}
	now := time.Now()
	switch q.Kind {
	case question.Text:
		return question.Answer{Text: text, ReceivedAt: now}, true
	case question.Confirm:
		if yes, ok := parseConfirm(text); ok {
			return question.Answer{Yes: yes, ReceivedAt: now}, true
		}
	case question.Choice:
		if i := question.LabelIndex(text); i >= 0 && i < len(q.Options) {
			return question.Answer{Index: i, ReceivedAt: now}, true
		}
	}
	return question.Answer{}, false
}

// resolve hands the answer to the parked caller and annotates the
// original message. A request that was already resolved or timed out
// is gone from the registry, so late replies fall through here.
func (c *Client) resolve(chatID int64, a question.Answer) {
	req, ok := c.reg.Resolve(chatID, a)
	if !ok {
		return
	}
	c.annotate(req, a)
	if c.rec != nil {
		c.rec.Resolved(req.Question, a.Display(req.Question), a.ReceivedAt)
	}
}
