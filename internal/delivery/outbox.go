package delivery

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/spigell/cv-screener/internal/outreach"
)

// Envelope is one line of the outbox file.
type Envelope struct {
	ItemID      string    `json:"itemId"`
	CandidateID string    `json:"candidateId"`
	From        string    `json:"from,omitempty"`
	To          string    `json:"to"`
	Subject     string    `json:"subject"`
	Body        string    `json:"body"`
	QueuedAt    time.Time `json:"queuedAt"`
}

// OutboxSender appends messages as JSON lines to a file for a real mailer to
// pick up later.
type OutboxSender struct {
	path string
	from string
	now  func() time.Time

	mu sync.Mutex
}

func NewOutboxSender(path, from string) *OutboxSender {
	return &OutboxSender{path: path, from: from, now: time.Now}
}

func (s *OutboxSender) Send(ctx context.Context, item outreach.Item) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if item.CandidateEmail == "" {
		return fmt.Errorf("candidate %s has no email address", item.CandidateID)
	}

	line, err := json.Marshal(Envelope{
		ItemID:      item.ID,
		CandidateID: item.CandidateID,
		From:        s.from,
		To:          item.CandidateEmail,
		Subject:     item.Subject,
		Body:        item.Body,
		QueuedAt:    s.now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("encode envelope: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open outbox %q: %w", s.path, err)
	}
	if _, err := f.Write(append(line, '\n')); err != nil {
		f.Close()
		return fmt.Errorf("write outbox %q: %w", s.path, err)
	}
	return f.Close()
}
