package delivery

import (
	"context"

	"go.uber.org/zap"

	"github.com/spigell/cv-screener/internal/logger"
	"github.com/spigell/cv-screener/internal/outreach"
	"github.com/spigell/cv-screener/internal/utils"
)

const defaultMaxLogLength = 200

// LogSender writes every message to the logger and never fails.
type LogSender struct {
	logger       *zap.Logger
	from         string
	maxLogLength int
}

func NewLogSender(log *zap.Logger, from string, maxLogLength int) *LogSender {
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}
	return &LogSender{
		logger:       logger.WithFields(log),
		from:         from,
		maxLogLength: maxLogLength,
	}
}

func (s *LogSender) Send(_ context.Context, item outreach.Item) error {
	fields := append(logger.CandidateFields(item.CandidateID, item.CandidateName),
		zap.String(logger.FieldItemID, item.ID),
		zap.String("from", s.from),
		zap.String("to", item.CandidateEmail),
		zap.String("subject", item.Subject),
		zap.String("body", utils.TruncateForLog(utils.OneLine(item.Body), s.maxLogLength)),
	)
	s.logger.Info("message", fields...)
	return nil
}
