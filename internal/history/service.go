// Package history keeps a best-effort transcript of asked questions
// and their outcomes in Postgres. Recording is strictly advisory:
// failures are logged and swallowed so a storage outage can never
// stall or fail a blocking question.
package history

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/agentloop/consult/internal/question"
)

const recordTimeout = 5 * time.Second

// Service adapts the repository to the client's Recorder contract.
type Service struct {
	repo *Repository
	log  *zap.Logger
}

func NewService(repo *Repository, log *zap.Logger) *Service {
	return &Service{repo: repo, log: log}
}

// Asked records a dispatched question as pending.
func (s *Service) Asked(q *question.Question) {
	ctx, cancel := context.WithTimeout(context.Background(), recordTimeout)
	defer cancel()
	e := Entry{
		ID:      q.ID,
		Kind:    q.Kind.String(),
		Prompt:  q.Prompt,
		Options: q.Options,
		AskedAt: q.AskedAt,
	}
	if err := s.repo.Insert(ctx, e); err != nil {
		s.log.Warn("history: recording question failed", zap.Error(err))
	}
}

// Resolved records the answer as displayed back in the chat.
func (s *Service) Resolved(q *question.Question, display string, at time.Time) {
	ctx, cancel := context.WithTimeout(context.Background(), recordTimeout)
	defer cancel()
	if err := s.repo.MarkAnswered(ctx, q.ID, display, at); err != nil {
		s.log.Warn("history: recording answer failed", zap.Error(err))
	}
}

// Expired records an abandoned wait.
func (s *Service) Expired(q *question.Question) {
	ctx, cancel := context.WithTimeout(context.Background(), recordTimeout)
	defer cancel()
	if err := s.repo.MarkExpired(ctx, q.ID); err != nil {
		s.log.Warn("history: recording expiry failed", zap.Error(err))
	}
}

// List exposes the transcript for the history command.
func (s *Service) List(ctx context.Context, limit int) ([]Entry, error) {
	return s.repo.List(ctx, limit)
}
