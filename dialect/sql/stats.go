package sql

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"
)

// Op is the kind of a recorded statement.
type Op string

// Statement kinds recorded by Stats.
const (
	OpDDL    Op = "ddl"
	OpGet    Op = "get"
	OpInsert Op = "insert"
	OpUpdate Op = "update"
	OpList   Op = "list"
)

// OpStats holds the counters of one statement kind.
type OpStats struct {
	Count    int64
	Errors   int64
	Slow     int64
	Duration time.Duration
}

// Avg returns the average duration of a statement.
func (s OpStats) Avg() time.Duration {
	if s.Count == 0 {
		return 0
	}
	return s.Duration / time.Duration(s.Count)
}

func (s OpStats) add(o OpStats) OpStats {
	return OpStats{
		Count:    s.Count + o.Count,
		Errors:   s.Errors + o.Errors,
		Slow:     s.Slow + o.Slow,
		Duration: s.Duration + o.Duration,
	}
}

// SlowQueryHook is called for every statement slower than the threshold.
type SlowQueryHook func(ctx context.Context, op Op, query string, duration time.Duration)

// Stats collects per-kind statement counters. A nil *Stats records nothing.
type Stats struct {
	mu        sync.Mutex
	ops       map[Op]*OpStats
	threshold time.Duration
	hook      SlowQueryHook
}

// StatsOption configures Stats.
type StatsOption func(*Stats)

// WithSlowThreshold sets the duration above which a statement is slow.
// Default is 100ms.
func WithSlowThreshold(d time.Duration) StatsOption {
	return func(s *Stats) {
		s.threshold = d
	}
}

// WithSlowQueryHook sets the callback of slow statements.
func WithSlowQueryHook(hook SlowQueryHook) StatsOption {
	return func(s *Stats) {
		s.hook = hook
	}
}

// WithSlowQueryLogger logs slow statements as warnings.
// A nil logger means slog.Default().
func WithSlowQueryLogger(logger *slog.Logger) StatsOption {
	return WithSlowQueryHook(func(ctx context.Context, op Op, query string, duration time.Duration) {
		l := logger
		if l == nil {
			l = slog.Default()
		}
		l.WarnContext(ctx, "slow statement", "op", string(op), "duration", duration, "query", query)
	})
}

// NewStats returns empty statistics.
//
//	stats := sql.NewStats(sql.WithSlowQueryLogger(logger))
//	r := runner.New(runner.WithStats(stats))
//	defer logger.Info("done", "stats", stats.Snapshot())
func NewStats(opts ...StatsOption) *Stats {
	s := &Stats{
		ops:       make(map[Op]*OpStats),
		threshold: 100 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Track starts timing a statement of the given kind. The returned function
// records it with the error the statement ended with.
func (s *Stats) Track(ctx context.Context, op Op, query string) func(error) {
	if s == nil {
		return func(error) {}
	}
	start := time.Now()
	return func(err error) {
		s.record(ctx, op, query, time.Since(start), err)
	}
}

func (s *Stats) record(ctx context.Context, op Op, query string, d time.Duration, err error) {
	s.mu.Lock()
	c, ok := s.ops[op]
	if !ok {
		c = &OpStats{}
		s.ops[op] = c
	}
	c.Count++
	c.Duration += d
	if err != nil {
		c.Errors++
	}
	slow := d > s.threshold
	if slow {
		c.Slow++
	}
	hook := s.hook
	s.mu.Unlock()

	if slow && hook != nil {
		hook(ctx, op, query, d)
	}
}

// Snapshot returns a copy of the current counters.
func (s *Stats) Snapshot() StatsSnapshot {
	if s == nil {
		return StatsSnapshot{}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := make(StatsSnapshot, len(s.ops))
	for op, c := range s.ops {
		snap[op] = *c
	}
	return snap
}

// StatsSnapshot holds the counters of each statement kind.
type StatsSnapshot map[Op]OpStats

// Total returns the counters of all kinds together.
func (s StatsSnapshot) Total() OpStats {
	var t OpStats
	for _, c := range s {
		t = t.add(c)
	}
	return t
}

func (s StatsSnapshot) ops() []Op {
	ops := make([]Op, 0, len(s))
	for op := range s {
		ops = append(ops, op)
	}
	sort.Slice(ops, func(i, j int) bool { return ops[i] < ops[j] })
	return ops
}

// String returns the counters of each kind in name order, e.g.
// "get=3/0err/0slow insert=2/0err/0slow".
func (s StatsSnapshot) String() string {
	parts := make([]string, 0, len(s))
	for _, op := range s.ops() {
		c := s[op]
		parts = append(parts, fmt.Sprintf("%s=%d/%derr/%dslow", op, c.Count, c.Errors, c.Slow))
	}
	return strings.Join(parts, " ")
}

// LogValue implements slog.LogValuer.
func (s StatsSnapshot) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, len(s)+1)
	for _, op := range s.ops() {
		c := s[op]
		attrs = append(attrs, slog.Group(string(op),
			slog.Int64("count", c.Count),
			slog.Int64("errors", c.Errors),
			slog.Int64("slow", c.Slow),
			slog.Duration("avg", c.Avg()),
		))
	}
	attrs = append(attrs, slog.Duration("total", s.Total().Duration))
	return slog.GroupValue(attrs...)
}
