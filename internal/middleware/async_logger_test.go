package middleware

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parceltrack/parcel-service/internal/domain/model"
)

// recordingLogService captures log entries handed to the async logger.
type recordingLogService struct {
	mu      sync.Mutex
	entries []*model.LogEntry
}

func (s *recordingLogService) CreateLog(_ context.Context, entry *model.LogEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, entry)
	return nil
}

func (s *recordingLogService) CreateLogs(_ context.Context, entries []*model.LogEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, entries...)
	return nil
}

func (s *recordingLogService) QueryLogs(_ context.Context, _ model.LogQueryOptions) ([]*model.LogEntry, error) {
	return nil, nil
}

func (s *recordingLogService) CountLogs(_ context.Context, _ model.LogQueryOptions) (int64, error) {
	return 0, nil
}

func (s *recordingLogService) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

func TestAsyncLoggerWritesThroughWorkerPool(t *testing.T) {
	svc := &recordingLogService{}
	al := NewAsyncLogger(svc, AsyncLoggerConfig{
		BufferSize:   16,
		NumWorkers:   2,
		WriteTimeout: time.Second,
	})
	require.NotNil(t, al)

	for i := 0; i < 10; i++ {
		enqueued := al.Log(&model.LogEntry{
			Level:   "info",
			Message: fmt.Sprintf("request %d", i),
		})
		assert.True(t, enqueued)
	}

	al.Stop()

	assert.Equal(t, 10, svc.count())
	_, dropped, written, errs := al.Stats()
	assert.Equal(t, int64(10), written)
	assert.Zero(t, dropped)
	assert.Zero(t, errs)
}

func TestAsyncLoggerDropsWhenBufferFull(t *testing.T) {
	// No workers, so the buffer never drains and the second entry has
	// nowhere to go.
	svc := &recordingLogService{}
	al := NewAsyncLogger(svc, AsyncLoggerConfig{
		BufferSize:   1,
		NumWorkers:   0,
		WriteTimeout: time.Second,
	})
	require.NotNil(t, al)
	defer al.Stop()

	assert.True(t, al.Log(&model.LogEntry{Message: "first"}))
	assert.False(t, al.Log(&model.LogEntry{Message: "second"}))

	_, dropped, _, _ := al.Stats()
	assert.Equal(t, int64(1), dropped)
}

func TestNewAsyncLoggerNilService(t *testing.T) {
	assert.Nil(t, NewAsyncLogger(nil, DefaultAsyncLoggerConfig()))
}

func TestInitAndStopAsyncLogger(t *testing.T) {
	svc := &recordingLogService{}
	InitAsyncLogger(svc, DefaultAsyncLoggerConfig())
	require.NotNil(t, GetAsyncLogger())

	GetAsyncLogger().Log(&model.LogEntry{Message: "buffered"})
	StopAsyncLogger()

	assert.Nil(t, GetAsyncLogger())
	assert.Equal(t, 1, svc.count())
}
