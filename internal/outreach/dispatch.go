package outreach

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/spigell/cv-screener/internal/logger"
)

const defaultConcurrency = 4

// Sender delivers one item. It receives a copy and must not retain it.
type Sender interface {
	Send(ctx context.Context, item Item) error
}

// Dispatcher sends prepared items through a Sender.
type Dispatcher struct {
	sender      Sender
	concurrency int
	timeout     time.Duration
	logger      *zap.Logger
	progress    func(Progress)
	now         func() time.Time
}

type Option func(*Dispatcher)

// WithConcurrency bounds the number of sends in flight. Values below 1 mean 1.
func WithConcurrency(n int) Option {
	return func(d *Dispatcher) {
		d.concurrency = max(n, 1)
	}
}

// WithTimeout limits every single send.
func WithTimeout(timeout time.Duration) Option {
	return func(d *Dispatcher) {
		d.timeout = timeout
	}
}

func WithLogger(l *zap.Logger) Option {
	return func(d *Dispatcher) {
		d.logger = l
	}
}

// WithProgress registers a callback invoked after each item reaches a terminal
// status. Calls are serialized.
func WithProgress(fn func(Progress)) Option {
	return func(d *Dispatcher) {
		d.progress = fn
	}
}

func WithClock(now func() time.Time) Option {
	return func(d *Dispatcher) {
		d.now = now
	}
}

func NewDispatcher(sender Sender, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		sender:      sender,
		concurrency: defaultConcurrency,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(d)
	}
	d.logger = logger.WithFields(d.logger)
	return d
}

type result struct {
	item *Item
	err  error
	at   time.Time
}

// Dispatch sends every pending item and returns when all of them are sent or
// failed. Items that are already terminal are left untouched.
//
// Once ctx is cancelled no further item is handed to the sender. Sends already
// in flight run to completion and the remaining items fail with
// ErrNotDispatched.
func (d *Dispatcher) Dispatch(ctx context.Context, items []*Item) *Report {
	started := d.now()
	report := &Report{Items: items}

	pending := make([]*Item, 0, len(items))
	for _, item := range items {
		if !item.Terminal() {
			pending = append(pending, item)
		}
	}

	results := make(chan result)
	collected := make(chan struct{})
	go d.collect(results, len(pending), collected)

	var g errgroup.Group
	g.SetLimit(d.concurrency)
	for _, item := range pending {
		if ctx.Err() != nil {
			results <- result{item: item, err: ErrNotDispatched}
			continue
		}
		msg := *item
		g.Go(func() error {
			if ctx.Err() != nil {
				results <- result{item: item, err: ErrNotDispatched}
				return nil
			}
			err := d.send(ctx, msg)
			results <- result{item: item, err: err, at: d.now()}
			return nil
		})
	}
	_ = g.Wait()
	close(results)
	<-collected

	for _, item := range items {
		switch item.Status {
		case StatusSent:
			report.Sent++
		case StatusFailed:
			report.Failed++
		}
	}
	report.Duration = d.now().Sub(started)

	d.logger.Info("outreach dispatched",
		zap.Int("items", len(items)),
		zap.Int("sent", report.Sent),
		zap.Int("failed", report.Failed),
		zap.Duration("duration", report.Duration),
	)

	return report
}

func (d *Dispatcher) send(ctx context.Context, item Item) error {
	sendCtx := context.WithoutCancel(ctx)
	if d.timeout > 0 {
		var cancel context.CancelFunc
		sendCtx, cancel = context.WithTimeout(sendCtx, d.timeout)
		defer cancel()
	}
	return d.sender.Send(sendCtx, item)
}

// collect is the only writer of item statuses during a dispatch.
func (d *Dispatcher) collect(results <-chan result, total int, done chan<- struct{}) {
	defer close(done)

	var p Progress
	p.Total = total
	for r := range results {
		fields := append(logger.CandidateFields(r.item.CandidateID, r.item.CandidateName),
			zap.String(logger.FieldItemID, r.item.ID),
		)
		if r.err != nil {
			r.item.markFailed(r.err)
			p.Failed++
			d.logger.Warn("message not delivered", append(fields, zap.Error(r.err))...)
		} else {
			r.item.markSent(r.at)
			p.Sent++
			d.logger.Debug("message delivered", fields...)
		}
		p.Done++

		if d.progress != nil {
			d.progress(p)
		}
	}
}
