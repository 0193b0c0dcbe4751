// Package outreach prepares personalized messages for qualifying candidates
// and dispatches them through a delivery collaborator.
package outreach

import (
	"errors"
	"time"
)

type Status string

const (
	StatusPending Status = "pending"
	StatusSent    Status = "sent"
	StatusFailed  Status = "failed"
)

// ErrNotDispatched marks items left unsent because the batch was cancelled.
var ErrNotDispatched = errors.New("not dispatched: batch cancelled")

// Item is one message addressed to one candidate.
type Item struct {
	ID             string `json:"id"`
	CandidateID    string `json:"candidateId"`
	CandidateName  string `json:"candidateName"`
	CandidateEmail string `json:"candidateEmail"`
	Score          int    `json:"score"`

	Subject string `json:"subject"`
	Body    string `json:"body"`

	Status Status    `json:"status"`
	Error  string    `json:"error,omitempty"`
	SentAt time.Time `json:"sentAt,omitzero"`

	err error
}

// Err returns the delivery error of a failed item.
func (i *Item) Err() error {
	return i.err
}

// Terminal reports whether the item reached sent or failed.
func (i *Item) Terminal() bool {
	return i.Status == StatusSent || i.Status == StatusFailed
}

func (i *Item) markSent(at time.Time) {
	i.Status = StatusSent
	i.SentAt = at
	i.Error = ""
	i.err = nil
}

func (i *Item) markFailed(err error) {
	i.Status = StatusFailed
	i.Error = err.Error()
	i.err = err
}

// Report is the outcome of one Dispatch call.
type Report struct {
	Items    []*Item       `json:"items"`
	Sent     int           `json:"sent"`
	Failed   int           `json:"failed"`
	Duration time.Duration `json:"duration"`
}

// SentItems returns the delivered items in input order.
func (r *Report) SentItems() []*Item {
	var out []*Item
	for _, item := range r.Items {
		if item.Status == StatusSent {
			out = append(out, item)
		}
	}
	return out
}

// Progress is reported after every terminal transition.
type Progress struct {
	Done   int
	Total  int
	Sent   int
	Failed int
}
