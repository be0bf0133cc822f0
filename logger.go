package graphclust

import (
	"context"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with clustering-specific helpers so log lines
// carry consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a Logger with the given handler. If handler is nil,
// a text handler to stderr at Info level is used.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{Logger: slog.New(handler)}
}

// NewTextLogger creates a Logger that writes human-readable text logs to
// stderr at the given level.
func NewTextLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// NoopLogger creates a Logger that discards all output.
func NoopLogger() *Logger {
	return NewLogger(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	}))
}

// LogCluster logs one completed cluster.
func (l *Logger) LogCluster(ctx context.Context, centroid string, size, remaining int) {
	l.DebugContext(ctx, "cluster completed",
		"centroid", centroid,
		"size", size,
		"remaining", remaining,
	)
}

// LogRun logs a finished clustering run.
func (l *Logger) LogRun(ctx context.Context, algorithm string, clusters, graphs int) {
	l.InfoContext(ctx, "clustering completed",
		"algorithm", algorithm,
		"clusters", clusters,
		"graphs", graphs,
	)
}
