package sheets

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/jonathan/team-survey/internal/survey"
	"go.uber.org/zap"
)

// TimestampLayout renders as dd-MM-yyyy hh:mm:ss AM/PM.
const TimestampLayout = "02-01-2006 03:04:05 PM"

// Entry is the part of a submission that gets mirrored.
type Entry struct {
	Name        string
	Department  string
	Location    string
	Answers     survey.Answers
	SubmittedAt time.Time
}

// Enqueuer accepts entries for best-effort mirroring.
type Enqueuer interface {
	Enqueue(e Entry) bool
}

// FormatRow builds the sheet row: timestamp, name, department, location, answers JSON.
func FormatRow(e Entry, loc *time.Location) []any {
	ts := e.SubmittedAt
	if ts.IsZero() {
		ts = time.Now()
	}
	if loc != nil {
		ts = ts.In(loc)
	}
	answers, err := json.Marshal(e.Answers)
	if err != nil {
		answers = []byte("{}")
	}
	return []any{ts.Format(TimestampLayout), e.Name, e.Department, e.Location, string(answers)}
}

// Options tunes a Mirror.
type Options struct {
	QueueSize     int
	AppendTimeout time.Duration
	Location      *time.Location
}

// Mirror appends entries on a single background worker. Failures are logged
// and dropped; nothing is retried.
type Mirror struct {
	appender Appender
	opts     Options
	logger   *zap.Logger

	mu     sync.RWMutex
	closed bool
	queue  chan Entry
	done   chan struct{}
}

// NewMirror starts the worker goroutine. Call Close to stop it.
func NewMirror(appender Appender, opts Options, logger *zap.Logger) *Mirror {
	if opts.QueueSize <= 0 {
		opts.QueueSize = 64
	}
	if opts.AppendTimeout <= 0 {
		opts.AppendTimeout = 15 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	m := &Mirror{
		appender: appender,
		opts:     opts,
		logger:   logger.Named("sheets"),
		queue:    make(chan Entry, opts.QueueSize),
		done:     make(chan struct{}),
	}
	go m.run()
	return m
}

// Enqueue never blocks. It returns false when the entry was dropped because
// the queue is full or the mirror is closed.
func (m *Mirror) Enqueue(e Entry) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		m.logger.Warn("mirror closed, dropping entry", zap.String("department", e.Department))
		return false
	}
	select {
	case m.queue <- e:
		return true
	default:
		m.logger.Warn("mirror queue full, dropping entry",
			zap.String("department", e.Department),
			zap.Int("queue_size", m.opts.QueueSize))
		return false
	}
}

// Close stops accepting entries and waits for queued ones to be appended.
func (m *Mirror) Close(ctx context.Context) error {
	m.mu.Lock()
	if !m.closed {
		m.closed = true
		close(m.queue)
	}
	m.mu.Unlock()

	select {
	case <-m.done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("mirror did not drain: %w", ctx.Err())
	}
}

func (m *Mirror) run() {
	defer close(m.done)
	for e := range m.queue {
		start := time.Now()
		if err := m.appendOne(e); err != nil {
			m.logger.Error("failed to append row to sheet",
				zap.Error(err),
				zap.String("department", e.Department),
				zap.String("location", e.Location))
			continue
		}
		m.logger.Debug("row appended to sheet",
			zap.String("department", e.Department),
			zap.Duration("duration", time.Since(start)))
	}
}

func (m *Mirror) appendOne(e Entry) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("append panicked: %v", r)
		}
	}()
	ctx, cancel := context.WithTimeout(context.Background(), m.opts.AppendTimeout)
	defer cancel()
	return m.appender.Append(ctx, FormatRow(e, m.opts.Location))
}

// Discard is the Enqueuer used when no spreadsheet is configured.
type Discard struct{}

// Enqueue drops e.
func (Discard) Enqueue(Entry) bool { return false }
