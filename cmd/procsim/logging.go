package main

import (
	"log/slog"
	"os"

	"github.com/google/uuid"

	"github.com/khryptorgraphics/procsim/internal/engine"
	"github.com/khryptorgraphics/procsim/internal/worker"
)

// newLogger builds the process-boundary JSON logger with
// slog.New(slog.NewJSONHandler(...)). It writes to stderr, not
// stdout, since stdout is reserved for the bit-exact transcript of §6.
func newLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
}

// loggingSpawner wraps a Spawner to attach a fresh correlation ID to each
// worker spawn's log line, so multiple workers in one run can be told
// apart in the JSON log stream without touching the transcript.
type loggingSpawner struct {
	next   engine.Spawner
	logger *slog.Logger
}

func (s loggingSpawner) Spawn(name string) (worker.Protocol, error) {
	correlationID := uuid.NewString()
	w, err := s.next.Spawn(name)
	if err != nil {
		s.logger.Error("worker spawn failed", "process_name", name, "correlation_id", correlationID, "error", err)
		return nil, err
	}
	s.logger.Info("worker spawned", "process_name", name, "correlation_id", correlationID, "pid", w.PID())
	return w, nil
}
