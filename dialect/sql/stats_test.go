package sql

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStats(t *testing.T) {
	ctx := context.Background()
	var slow []Op
	s := NewStats(
		WithSlowThreshold(-1),
		WithSlowQueryHook(func(_ context.Context, op Op, _ string, _ time.Duration) {
			slow = append(slow, op)
		}),
	)

	s.Track(ctx, OpInsert, "INSERT INTO cat (name) VALUES (?)")(nil)
	s.Track(ctx, OpInsert, "INSERT INTO cat (name) VALUES (?)")(errors.New("locked"))
	s.Track(ctx, OpGet, "SELECT id,name FROM cat WHERE id=?")(nil)

	snap := s.Snapshot()
	require.Len(t, snap, 2)
	assert.Equal(t, int64(2), snap[OpInsert].Count)
	assert.Equal(t, int64(1), snap[OpInsert].Errors)
	assert.Equal(t, int64(2), snap[OpInsert].Slow)
	assert.Equal(t, int64(1), snap[OpGet].Count)
	assert.Zero(t, snap[OpGet].Errors)
	assert.Equal(t, []Op{OpInsert, OpInsert, OpGet}, slow)

	total := snap.Total()
	assert.Equal(t, int64(3), total.Count)
	assert.Equal(t, int64(1), total.Errors)
	assert.Equal(t, "get=1/0err/1slow insert=2/1err/2slow", snap.String())

	snap[OpGet] = OpStats{}
	assert.Equal(t, int64(1), s.Snapshot()[OpGet].Count, "snapshot is a copy")
}

func TestStatsThreshold(t *testing.T) {
	var called bool
	s := NewStats(
		WithSlowThreshold(time.Hour),
		WithSlowQueryHook(func(context.Context, Op, string, time.Duration) { called = true }),
	)
	s.Track(context.Background(), OpDDL, "CREATE TABLE cat (id INTEGER) STRICT;")(nil)
	assert.False(t, called)
	assert.Zero(t, s.Snapshot()[OpDDL].Slow)
}

func TestStatsNil(t *testing.T) {
	var s *Stats
	s.Track(context.Background(), OpList, "SELECT id FROM cat")(nil)
	assert.Empty(t, s.Snapshot())
}

func TestStatsSlowQueryLogger(t *testing.T) {
	var buf bytes.Buffer
	s := NewStats(WithSlowThreshold(-1), WithSlowQueryLogger(slog.New(slog.NewTextHandler(&buf, nil))))
	s.Track(context.Background(), OpUpdate, "UPDATE cat SET name=? WHERE id=?")(nil)
	assert.Contains(t, buf.String(), "slow statement")
	assert.Contains(t, buf.String(), "op=update")
}

func TestStatsLogValue(t *testing.T) {
	var buf bytes.Buffer
	snap := StatsSnapshot{OpGet: {Count: 2, Duration: 4 * time.Millisecond}}
	slog.New(slog.NewTextHandler(&buf, nil)).Info("done", "stats", snap)
	assert.Contains(t, buf.String(), "stats.get.count=2")
	assert.Contains(t, buf.String(), "stats.get.avg=2ms")
	assert.Contains(t, buf.String(), "stats.total=4ms")
}

func TestOpStatsAvg(t *testing.T) {
	assert.Zero(t, OpStats{}.Avg())
	assert.Equal(t, 5*time.Millisecond, OpStats{Count: 2, Duration: 10 * time.Millisecond}.Avg())
}
