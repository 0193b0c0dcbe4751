// Package ai adapts optional LLM-written content to message personalization.
package ai

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/cv-screener/internal/candidate"
	"github.com/spigell/cv-screener/internal/logger"
	"github.com/spigell/cv-screener/internal/templating"
)

// KeyPersonalNote is the placeholder filled by the Enricher.
const KeyPersonalNote = "personalNote"

// NoteRequest is everything a NoteWriter may use to write about a candidate.
type NoteRequest struct {
	Candidate *candidate.Scored
	Criteria  candidate.JobCriteria
	Position  string
	Company   string
}

// NoteWriter produces a short personal paragraph for a candidate.
type NoteWriter interface {
	WriteNote(ctx context.Context, req NoteRequest) (string, error)
}

// Enricher fills KeyPersonalNote through a NoteWriter.
type Enricher struct {
	writer   NoteWriter
	criteria candidate.JobCriteria
	logger   *zap.Logger
}

func NewEnricher(writer NoteWriter, criteria candidate.JobCriteria, log *zap.Logger) *Enricher {
	return &Enricher{
		writer:   writer,
		criteria: criteria,
		logger:   logger.WithFields(log),
	}
}

// Enrich implements templating.Enricher.
func (e *Enricher) Enrich(ctx context.Context, c *candidate.Scored, base templating.Context) (templating.Context, error) {
	note, err := e.writer.WriteNote(ctx, NoteRequest{
		Candidate: c,
		Criteria:  e.criteria,
		Position:  base[templating.KeyPosition],
		Company:   base[templating.KeyCompany],
	})
	if err != nil {
		return nil, fmt.Errorf("write personal note: %w", err)
	}

	note = strings.TrimSpace(note)
	if note == "" {
		return nil, fmt.Errorf("write personal note: empty note")
	}

	e.logger.Debug("personal note written", append(logger.CandidateFields(c.ID, c.Name), zap.Int("length", len(note)))...)

	return templating.Context{KeyPersonalNote: note}, nil
}
