package trace

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/lixenwraith/wander/engine"
)

// TickLogger is a tick observer writing every tick to the JSONL log and, when
// present, arrivals to the SQLite index
type TickLogger struct {
	runID  string
	w      *JSONLZstdWriter
	index  *SQLiteIndex
	logger *zap.Logger

	errOnce sync.Once
}

// NewRunID returns a fresh identifier for trace records and observer sessions
func NewRunID() string {
	return uuid.NewString()
}

// NewTickLogger writes under dir/ticks; index may be nil
func NewTickLogger(dir, runID string, index *SQLiteIndex, logger *zap.Logger) *TickLogger {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TickLogger{
		runID:  runID,
		w:      NewJSONLZstdWriter(filepath.Join(dir, "ticks"), "ticks-"+runID),
		index:  index,
		logger: logger.Named("trace"),
	}
}

// Open opens the index at dir/index.db when enabled and returns a logger for the run
func Open(dir, runID string, withIndex bool, info RunInfo, logger *zap.Logger) (*TickLogger, error) {
	var index *SQLiteIndex
	if withIndex {
		var err error
		index, err = OpenSQLite(filepath.Join(dir, "index.db"), logger)
		if err != nil {
			return nil, err
		}
		info.RunID = runID
		if info.StartedAt.IsZero() {
			info.StartedAt = time.Now()
		}
		index.RecordRun(info)
	}
	return NewTickLogger(dir, runID, index, logger), nil
}

// RunID returns the identifier stamped on every record
func (l *TickLogger) RunID() string {
	return l.runID
}

// OnTick implements engine.TickObserver
func (l *TickLogger) OnTick(snap engine.Snapshot) {
	rec := NewTickRecord(l.runID, snap)
	if err := l.w.Write(rec); err != nil {
		// One report is enough, the log is best effort
		l.errOnce.Do(func() {
			l.logger.Error("tick log write failed", zap.Error(err))
		})
	}

	if l.index == nil {
		return
	}
	l.index.RecordTick(rec)
	for _, a := range arrivals(snap.Events) {
		l.index.RecordArrival(l.runID, snap.Frame, a)
	}
}

// Close flushes the log and the index
func (l *TickLogger) Close() error {
	err := l.w.Close()
	if l.index != nil {
		if ierr := l.index.Close(); err == nil {
			err = ierr
		}
	}
	return err
}
