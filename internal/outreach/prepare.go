package outreach

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spigell/cv-screener/internal/candidate"
	"github.com/spigell/cv-screener/internal/logger"
	"github.com/spigell/cv-screener/internal/templating"
)

// Plan describes which candidates receive which message.
type Plan struct {
	MinScore int
	Template templating.Template
	Builder  *templating.ContextBuilder
	// Enricher is optional. Its failures are logged and the message is
	// rendered from the base context.
	Enricher templating.Enricher
	Logger   *zap.Logger
}

// Prepare renders a pending item for every candidate scoring at least
// MinScore, in input order.
func Prepare(ctx context.Context, candidates []candidate.Scored, plan Plan) ([]*Item, error) {
	if err := plan.Template.Validate(); err != nil {
		return nil, err
	}
	if plan.Builder == nil {
		return nil, errors.New("context builder is required")
	}
	log := logger.WithFields(plan.Logger)

	items := make([]*Item, 0, len(candidates))
	for i := range candidates {
		c := &candidates[i]
		if c.Score < plan.MinScore {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		tplCtx := plan.Builder.Build(c)
		if plan.Enricher != nil {
			extra, err := plan.Enricher.Enrich(ctx, c, tplCtx)
			switch {
			case err != nil:
				log.Warn("context enrichment failed",
					append(logger.CandidateFields(c.ID, c.Name), zap.Error(err))...,
				)
			default:
				tplCtx = tplCtx.Merge(extra)
			}
		}

		if missing := plan.Template.Missing(tplCtx); len(missing) > 0 {
			log.Debug("template placeholders left unresolved",
				append(logger.CandidateFields(c.ID, c.Name), zap.Strings("placeholders", missing))...,
			)
		}

		msg := templating.RenderMessage(plan.Template, tplCtx)
		items = append(items, &Item{
			ID:             uuid.NewString(),
			CandidateID:    c.ID,
			CandidateName:  c.Name,
			CandidateEmail: c.Email,
			Score:          c.Score,
			Subject:        msg.Subject,
			Body:           msg.Body,
			Status:         StatusPending,
		})
	}

	log.Info("outreach prepared",
		zap.Int("candidates", len(candidates)),
		zap.Int("items", len(items)),
		zap.Int("min_score", plan.MinScore),
		zap.String("template", plan.Template.Name),
	)

	return items, nil
}
