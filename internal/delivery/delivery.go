// Package delivery contains the senders used by the outreach dispatcher.
// None of them talks to a mail server.
package delivery

import (
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/spigell/cv-screener/internal/outreach"
)

const (
	KindLog       = "log"
	KindOutbox    = "outbox"
	KindSimulated = "simulated"
)

// Config selects and tunes a sender.
type Config struct {
	Kind   string `mapstructure:"kind"`
	From   string `mapstructure:"from"`
	Outbox string `mapstructure:"outbox"`

	Delay       time.Duration `mapstructure:"delay"`
	FailureRate float64       `mapstructure:"failure-rate"`
	Seed        uint64        `mapstructure:"seed"`

	MaxLogLength int `mapstructure:"max-log-length"`
}

// New builds the sender described by cfg.
func New(cfg Config, log *zap.Logger) (outreach.Sender, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Kind)) {
	case "", KindLog:
		return NewLogSender(log, cfg.From, cfg.MaxLogLength), nil
	case KindOutbox:
		if strings.TrimSpace(cfg.Outbox) == "" {
			return nil, fmt.Errorf("outbox sender requires a file path")
		}
		return NewOutboxSender(cfg.Outbox, cfg.From), nil
	case KindSimulated:
		if cfg.FailureRate < 0 || cfg.FailureRate > 1 {
			return nil, fmt.Errorf("failure rate must be within [0, 1], got %v", cfg.FailureRate)
		}
		return NewSimulatedSender(cfg.Delay, cfg.FailureRate, cfg.Seed), nil
	default:
		return nil, fmt.Errorf("unknown sender kind %q (expected %s, %s or %s)", cfg.Kind, KindLog, KindOutbox, KindSimulated)
	}
}
