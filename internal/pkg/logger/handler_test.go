package logger

import (
	"context"
	log "log/slog"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

// recordSink 收集经过的日志记录，供断言使用
type recordSink struct {
	records []log.Record
	err     error
}

func (s *recordSink) Enabled(_ context.Context, _ log.Level) bool { return true }

func (s *recordSink) Handle(_ context.Context, r log.Record) error {
	s.records = append(s.records, r)
	return s.err
}

func (s *recordSink) WithAttrs(_ []log.Attr) log.Handler { return s }
func (s *recordSink) WithGroup(_ string) log.Handler     { return s }

func attrValue(r log.Record, key string) (string, bool) {
	var val string
	found := false
	r.Attrs(func(a log.Attr) bool {
		if a.Key == key {
			val = a.Value.String()
			found = true
			return false
		}
		return true
	})
	return val, found
}

func TestContextHandler(t *testing.T) {
	t.Run("injects_trace_id_from_context", func(t *testing.T) {
		sink := &recordSink{}
		logger := log.New(NewContextHandler(sink))

		ctx := context.WithValue(context.Background(), TraceIDKey, "trace-123")

		logger.InfoContext(ctx, "hello")

		require.Len(t, sink.records, 1)
		val, ok := attrValue(sink.records[0], TraceIDKey)
		require.True(t, ok)
		require.Equal(t, "trace-123", val)
	})

	t.Run("no_trace_id_without_context_value", func(t *testing.T) {
		sink := &recordSink{}
		logger := log.New(NewContextHandler(sink))

		logger.InfoContext(context.Background(), "hello")

		require.Len(t, sink.records, 1)
		_, ok := attrValue(sink.records[0], TraceIDKey)
		require.False(t, ok)
	})

	t.Run("derived_logger_keeps_injection", func(t *testing.T) {
		sink := &recordSink{}
		logger := log.New(NewContextHandler(sink)).With("component", "social")

		ctx := context.WithValue(context.Background(), TraceIDKey, "trace-456")

		logger.InfoContext(ctx, "hello")

		require.Len(t, sink.records, 1)
		val, ok := attrValue(sink.records[0], TraceIDKey)
		require.True(t, ok)
		require.Equal(t, "trace-456", val)
	})
}

func TestTeeHandler(t *testing.T) {
	t.Run("fans_out_to_all_handlers", func(t *testing.T) {
		a, b := &recordSink{}, &recordSink{}
		tee := NewTeeHandler(a, b)

		r := log.NewRecord(time.Now(), log.LevelInfo, "msg", 0)
		require.NoError(t, tee.Handle(context.Background(), r))

		require.Len(t, a.records, 1)
		require.Len(t, b.records, 1)
	})

	t.Run("one_failure_does_not_block_others", func(t *testing.T) {
		bad := &recordSink{err: errors.New("conn reset")}
		good := &recordSink{}
		tee := NewTeeHandler(bad, good)

		r := log.NewRecord(time.Now(), log.LevelInfo, "msg", 0)
		err := tee.Handle(context.Background(), r)

		require.Error(t, err)
		require.Len(t, good.records, 1)
	})
}

func TestRemoteFilterHandler(t *testing.T) {
	t.Run("forwards_records_with_trace_id", func(t *testing.T) {
		sink := &recordSink{}
		filter := NewRemoteFilterHandler(sink)

		r := log.NewRecord(time.Now(), log.LevelInfo, "msg", 0)
		r.AddAttrs(log.String(TraceIDKey, "trace-789"))

		require.NoError(t, filter.Handle(context.Background(), r))
		require.Len(t, sink.records, 1)
	})

	t.Run("drops_records_without_trace_id", func(t *testing.T) {
		sink := &recordSink{}
		filter := NewRemoteFilterHandler(sink)

		r := log.NewRecord(time.Now(), log.LevelInfo, "startup message", 0)

		require.NoError(t, filter.Handle(context.Background(), r))
		require.Empty(t, sink.records)
	})
}
