// Package client implements the blocking-question client: it dispatches
// a question to a Telegram chat and suspends the caller until a
// correlated reply arrives or the timeout elapses. All failure modes of
// a blocking call collapse to the empty result (ok=false); errors never
// cross the blocking boundary.
package client

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v4"

	"github.com/agentloop/consult/internal/pending"
	"github.com/agentloop/consult/internal/question"
)

// DefaultTimeout bounds blocking calls when neither the configuration
// nor the call site names a wait duration.
const DefaultTimeout = 30 * time.Minute

// transport is the slice of the telebot API the client dispatches
// through. *tele.Bot satisfies it; tests substitute a fake.
type transport interface {
	Send(to tele.Recipient, what interface{}, opts ...interface{}) (*tele.Message, error)
	Edit(msg tele.Editable, what interface{}, opts ...interface{}) (*tele.Message, error)
}

// Recorder receives a best-effort transcript of questions and their
// outcomes. Implementations must never block for long; failures are
// theirs to log and swallow.
type Recorder interface {
	Asked(q *question.Question)
	Resolved(q *question.Question, display string, at time.Time)
	Expired(q *question.Question)
}

// Config carries the destination and default wait for a Client.
type Config struct {
	ChatID         int64
	DefaultTimeout time.Duration
}

// Client asks questions in one Telegram chat on behalf of an
// automation process. At most one question may be in flight per chat;
// a second blocking call issued while one is pending resolves to the
// empty result immediately.
type Client struct {
	bot     *tele.Bot
	api     transport
	chat    tele.ChatID
	timeout time.Duration
	reg     *pending.Registry
	rec     Recorder
	log     *zap.Logger
	started bool
}

// New wires a Client onto the bot and registers its reply and
// button-tap handlers. The bot is not started; call Start.
func New(bot *tele.Bot, cfg Config, rec Recorder, log *zap.Logger) *Client {
	c := &Client{
		bot:     bot,
		api:     bot,
		chat:    tele.ChatID(cfg.ChatID),
		timeout: cfg.DefaultTimeout,
		reg:     pending.NewRegistry(),
		rec:     rec,
		log:     log,
	}
	if c.timeout <= 0 {
		c.timeout = DefaultTimeout
	}
	bot.Handle(tele.OnText, c.onText)
	bot.Handle(&tele.InlineButton{Unique: answerUnique}, c.onCallback)
	return c
}

// Start begins receiving updates in the background. Notify-only use
// does not need it; blocking calls do.
func (c *Client) Start() {
	c.started = true
	go c.bot.Start()
}

// Stop shuts the update poller down if it was started.
func (c *Client) Stop() {
	if c.started {
		c.bot.Stop()
	}
}

// Option adjusts a single blocking call.
type Option func(*callOptions)

type callOptions struct {
	timeout time.Duration
	columns int
}

// WithTimeout overrides the client's default wait for one call.
func WithTimeout(d time.Duration) Option {
	return func(o *callOptions) { o.timeout = d }
}

// WithColumns sets the button grid width for Choice.
func WithColumns(n int) Option {
	return func(o *callOptions) { o.columns = n }
}

func (c *Client) callOptions(opts []Option) callOptions {
	o := callOptions{timeout: c.timeout, columns: defaultColumns}
	for _, opt := range opts {
		opt(&o)
	}
	if o.timeout <= 0 {
		o.timeout = c.timeout
	}
	if o.columns < 1 {
		o.columns = defaultColumns
	}
	return o
}

// Ask dispatches a free-text prompt and blocks until any reply arrives
// or the timeout elapses. ok=false means no answer was obtained.
func (c *Client) Ask(ctx context.Context, prompt string, opts ...Option) (string, bool) {
	o := c.callOptions(opts)
	q := question.New(prompt, o.timeout)
	a, ok := c.await(ctx, q)
	if !ok {
		return "", false
	}
	return a.Text, true
}

// Confirm dispatches a yes/no prompt with Yes/No buttons. A typed
// reply from the confirm vocabulary also resolves it; any other text
// leaves the wait open.
func (c *Client) Confirm(ctx context.Context, prompt string, opts ...Option) (bool, bool) {
	o := c.callOptions(opts)
	q := question.NewConfirm(prompt, o.timeout)
	a, ok := c.await(ctx, q)
	if !ok {
		return false, false
	}
	return a.Yes, true
}

// Choice dispatches a prompt with options labeled A, B, C, … as a
// button grid and returns the zero-based index of the selection.
// Option lists outside 1–26 entries cannot be rendered and resolve to
// the empty result without dispatching.
func (c *Client) Choice(ctx context.Context, prompt string, options []string, opts ...Option) (int, bool) {
	if len(options) == 0 || len(options) > question.MaxOptions {
		c.log.Warn("choice option list not renderable", zap.Int("options", len(options)))
		return 0, false
	}
	o := c.callOptions(opts)
	q := question.NewChoice(prompt, options, o.columns, o.timeout)
	a, ok := c.await(ctx, q)
	if !ok {
		return 0, false
	}
	if a.Index < 0 || a.Index >= len(options) {
		// Resolution paths bounds-check before resolving; this is a
		// final guard on the contract.
		c.log.Error("resolved index out of bounds", zap.Int("index", a.Index))
		return 0, false
	}
	return a.Index, true
}

// Notify dispatches a message with no expectation of a reply. It never
// blocks beyond the dispatch round-trip and swallows dispatch errors.
func (c *Client) Notify(message string) {
	if _, err := c.api.Send(c.chat, message); err != nil {
		c.log.Warn("notify dispatch failed", zap.Error(err))
	}
}

// await runs the correlation protocol for one question: dispatch,
// register, park until a resolution or deadline, clean up.
func (c *Client) await(ctx context.Context, q *question.Question) (question.Answer, bool) {
	if _, busy := c.reg.Get(int64(c.chat)); busy {
		c.log.Warn("question rejected, another is already pending",
			zap.Int64("chat_id", int64(c.chat)))
		return question.Answer{}, false
	}

	text := renderPrompt(q)
	var (
		msg *tele.Message
		err error
	)
	if rm := renderKeyboard(q); rm != nil {
		msg, err = c.api.Send(c.chat, text, rm)
	} else {
		msg, err = c.api.Send(c.chat, text)
	}
	if err != nil {
		c.log.Warn("question dispatch failed",
			zap.String("kind", q.Kind.String()), zap.Error(err))
		return question.Answer{}, false
	}

	req, err := c.reg.Put(int64(c.chat), msg.ID, q)
	if err != nil {
		c.log.Warn("question not registered", zap.Error(err))
		return question.Answer{}, false
	}
	if c.rec != nil {
		c.rec.Asked(q)
	}

	timer := time.NewTimer(q.Timeout)
	defer timer.Stop()

	select {
	case a := <-req.Answered():
		return a, true
	case <-timer.C:
		c.reg.Remove(int64(c.chat))
		// An answer resolved in the same instant the deadline hit has
		// already annotated the chat; honor it instead of dropping it.
		select {
		case a := <-req.Answered():
			return a, true
		default:
		}
		if c.rec != nil {
			c.rec.Expired(q)
		}
		return question.Answer{}, false
	case <-ctx.Done():
		c.reg.Remove(int64(c.chat))
		if c.rec != nil {
			c.rec.Expired(q)
		}
		return question.Answer{}, false
	}
}

// annotate edits the dispatched message to show the resolved answer,
// leaving the operator a durable record of what was answered. Editing
// without a keyboard also retires the buttons.
func (c *Client) annotate(req *pending.Request, a question.Answer) {
	display := a.Display(req.Question)
	text := renderPrompt(req.Question) + "\n\n✅ " + display
	msg := &tele.Message{ID: req.MessageID, Chat: &tele.Chat{ID: req.ChatID}}
	if _, err := c.api.Edit(msg, text); err != nil && !isNotModified(err) {
		c.log.Warn("answer annotation failed", zap.Error(err))
	}
}

func isNotModified(err error) bool {
	return err != nil && strings.Contains(err.Error(), "message is not modified")
}
