package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
)

// ActionLog appends one timestamped, human-readable line per administrative
// or economic event to a plain text file, mirroring each line to the
// structured logger.
type ActionLog struct {
	mu   sync.Mutex
	file *os.File
}

// OpenActionLog opens (or creates) the append-only log at path
func OpenActionLog(path string) (*ActionLog, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open action log %s: %w", path, err)
	}
	return &ActionLog{file: f}, nil
}

// Printf records a formatted action line. Write failures are logged and
// swallowed; the action log is an audit convenience, not a ledger of record.
func (l *ActionLog) Printf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	line := fmt.Sprintf("[%s] %s\n", time.Now().Format("2006-01-02 15:04:05"), msg)

	l.mu.Lock()
	_, err := l.file.WriteString(line)
	l.mu.Unlock()

	if err != nil {
		log.WithField("error", err).Error("Failed to append to action log")
	}
	log.Info(msg)
}

// Close closes the underlying file
func (l *ActionLog) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.file.Close()
}
