package delivery

import (
	"context"
	"errors"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/spigell/cv-screener/internal/outreach"
	"github.com/spigell/cv-screener/internal/utils"
)

// ErrSimulatedFailure is returned for messages the simulator decided to drop.
var ErrSimulatedFailure = errors.New("simulated delivery failure")

// SimulatedSender waits and then fails a fraction of messages at random.
// A fixed seed gives a reproducible failure sequence for a sequential dispatch.
type SimulatedSender struct {
	delay       time.Duration
	failureRate float64

	mu  sync.Mutex
	rnd *rand.Rand
}

func NewSimulatedSender(delay time.Duration, failureRate float64, seed uint64) *SimulatedSender {
	if seed == 0 {
		seed = rand.Uint64()
	}
	return &SimulatedSender{
		delay:       delay,
		failureRate: failureRate,
		rnd:         rand.New(rand.NewPCG(seed, seed>>1|1)),
	}
}

func (s *SimulatedSender) Send(ctx context.Context, _ outreach.Item) error {
	if err := utils.WaitFor(ctx, s.delay); err != nil {
		return err
	}

	s.mu.Lock()
	roll := s.rnd.Float64()
	s.mu.Unlock()

	if roll < s.failureRate {
		return ErrSimulatedFailure
	}
	return nil
}
