package pending

import (
	"fmt"
	"sync"
	"time"

	"github.com/agentloop/consult/internal/question"
)

// Request tracks one in-flight question: the Telegram message it was
// dispatched as, the chat it went to, and the channel the blocking
// caller is parked on. The registry owns the record; it is removed the
// moment a resolution (answer or timeout) is produced.
type Request struct {
	ChatID    int64
	MessageID int
	Question  *question.Question
	Deadline  time.Time

	ch       chan question.Answer
	resolved bool
}

// Answered delivers answers to the blocking caller. Buffered so a
// resolver never blocks on a caller that already gave up.
func (r *Request) Answered() <-chan question.Answer {
	return r.ch
}

// Registry holds at most one pending request per chat. Overlapping
// questions to the same chat are rejected at registration time rather
// than matched racily; callers are expected to serialize blocking
// calls.
type Registry struct {
	mu       sync.Mutex
	requests map[int64]*Request
}

func NewRegistry() *Registry {
	return &Registry{requests: make(map[int64]*Request)}
}

// Put registers a pending request for the chat. It fails if the chat
// already has a question in flight.
func (g *Registry) Put(chatID int64, messageID int, q *question.Question) (*Request, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, busy := g.requests[chatID]; busy {
		return nil, fmt.Errorf("chat %d already has a pending question", chatID)
	}
	req := &Request{
		ChatID:    chatID,
		MessageID: messageID,
		Question:  q,
		Deadline:  q.AskedAt.Add(q.Timeout),
		ch:        make(chan question.Answer, 1),
	}
	g.requests[chatID] = req
	return req, nil
}

// Get returns the pending request for the chat, if any.
func (g *Registry) Get(chatID int64) (*Request, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	req, ok := g.requests[chatID]
	return req, ok
}

// Resolve delivers an answer to the chat's pending request and removes
// it. It reports false when there is nothing pending (a late or
// unrelated reply) or the request was already resolved, in which case
// the answer is dropped.
func (g *Registry) Resolve(chatID int64, a question.Answer) (*Request, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	req, ok := g.requests[chatID]
	if !ok || req.resolved {
		return nil, false
	}
	req.resolved = true
	delete(g.requests, chatID)
	req.ch <- a
	return req, true
}

// Remove abandons the chat's pending request without resolving it.
// Used on timeout and cancellation so a later reply finds nothing to
// match.
func (g *Registry) Remove(chatID int64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.requests, chatID)
}
