package trace

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/lixenwraith/wander/event"
)

// RunInfo identifies one simulation run in the index
type RunInfo struct {
	RunID     string
	Seed      uint64
	Places    int
	Peers     int
	StartedAt time.Time
}

// SQLiteIndex is a write-only secondary index of arrivals for offline analysis
// Writes are queued and committed in batches by a single goroutine; the queue drops on overflow
type SQLiteIndex struct {
	db     *sql.DB
	logger *zap.Logger

	ch   chan req
	wg   sync.WaitGroup
	once sync.Once

	closed  atomic.Bool
	dropped atomic.Uint64
}

type reqKind int

const (
	reqRun reqKind = iota + 1
	reqArrival
	reqTick
)

type req struct {
	kind    reqKind
	runID   string
	frame   int64
	run     RunInfo
	arrival event.ArrivedPayload
	tick    TickRecord
}

const (
	indexQueueSize     = 65536
	indexCommitEvery   = 2000
	indexCommitMaxWait = 2 * time.Second
)

// OpenSQLite creates or opens the index database at path
func OpenSQLite(path string, logger *zap.Logger) (*SQLiteIndex, error) {
	if path == "" {
		return nil, fmt.Errorf("empty index path")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create index dir: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open index: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := initPragmas(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("index pragmas: %w", err)
	}
	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("index schema: %w", err)
	}

	s := &SQLiteIndex{
		db:     db,
		logger: logger.Named("index"),
		ch:     make(chan req, indexQueueSize),
	}
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.loop()
	}()
	return s, nil
}

func initPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
		"PRAGMA temp_store=MEMORY;",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return err
		}
	}
	return nil
}

func initSchema(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS meta (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);`,
		`INSERT OR REPLACE INTO meta(key,value) VALUES('schema_version','1');`,
		`CREATE TABLE IF NOT EXISTS runs (
			run_id TEXT PRIMARY KEY,
			seed INTEGER NOT NULL,
			places INTEGER NOT NULL,
			peers INTEGER NOT NULL,
			started_at TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS ticks (
			run_id TEXT NOT NULL,
			frame INTEGER NOT NULL,
			sim_seconds REAL NOT NULL,
			en_route INTEGER NOT NULL,
			events INTEGER NOT NULL,
			PRIMARY KEY (run_id, frame)
		);`,
		`CREATE TABLE IF NOT EXISTS arrivals (
			run_id TEXT NOT NULL,
			frame INTEGER NOT NULL,
			peer INTEGER NOT NULL,
			place INTEGER NOT NULL,
			x REAL NOT NULL,
			y REAL NOT NULL,
			PRIMARY KEY (run_id, frame, peer)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_arrivals_place ON arrivals(run_id, place, frame);`,
	}
	for _, s := range stmts {
		if _, err := db.Exec(s); err != nil {
			return err
		}
	}
	return nil
}

// Close drains the queue, commits and closes the database
func (s *SQLiteIndex) Close() error {
	var err error
	s.once.Do(func() {
		s.closed.Store(true)
		close(s.ch)
		s.wg.Wait()
		err = s.db.Close()
		if n := s.dropped.Load(); n > 0 {
			s.logger.Warn("index dropped writes", zap.Uint64("count", n))
		}
	})
	return err
}

// Dropped returns the number of writes lost to a full queue
func (s *SQLiteIndex) Dropped() uint64 {
	return s.dropped.Load()
}

func (s *SQLiteIndex) enqueue(r req) {
	if s == nil || s.closed.Load() {
		return
	}
	select {
	case s.ch <- r:
	default:
		// The JSONL log remains the complete record
		s.dropped.Add(1)
	}
}

// RecordRun registers the run header
func (s *SQLiteIndex) RecordRun(info RunInfo) {
	s.enqueue(req{kind: reqRun, run: info})
}

// RecordTick indexes a tick summary
func (s *SQLiteIndex) RecordTick(rec TickRecord) {
	s.enqueue(req{kind: reqTick, tick: rec})
}

// RecordArrival indexes one arrival
func (s *SQLiteIndex) RecordArrival(runID string, frame int64, a event.ArrivedPayload) {
	s.enqueue(req{kind: reqArrival, runID: runID, frame: frame, arrival: a})
}

func (s *SQLiteIndex) loop() {
	ctx := context.Background()

	insertRun, _ := s.db.Prepare(`INSERT OR REPLACE INTO runs(run_id,seed,places,peers,started_at) VALUES(?,?,?,?,?)`)
	insertTick, _ := s.db.Prepare(`INSERT OR REPLACE INTO ticks(run_id,frame,sim_seconds,en_route,events) VALUES(?,?,?,?,?)`)
	insertArrival, _ := s.db.Prepare(`INSERT OR REPLACE INTO arrivals(run_id,frame,peer,place,x,y) VALUES(?,?,?,?,?,?)`)
	defer func() {
		for _, st := range []*sql.Stmt{insertRun, insertTick, insertArrival} {
			if st != nil {
				_ = st.Close()
			}
		}
	}()

	var (
		tx         *sql.Tx
		opCount    int
		lastCommit = time.Now()
	)

	begin := func() {
		if tx != nil {
			return
		}
		txx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			s.logger.Debug("begin failed", zap.Error(err))
			time.Sleep(50 * time.Millisecond)
			return
		}
		tx = txx
		opCount = 0
		lastCommit = time.Now()
	}
	commit := func() {
		if tx == nil {
			return
		}
		if err := tx.Commit(); err != nil {
			s.logger.Debug("commit failed", zap.Error(err))
		}
		tx = nil
		opCount = 0
		lastCommit = time.Now()
	}
	rollback := func(err error) {
		s.logger.Debug("index write failed", zap.Error(err))
		if tx == nil {
			return
		}
		_ = tx.Rollback()
		tx = nil
		opCount = 0
		lastCommit = time.Now()
	}

	for r := range s.ch {
		begin()
		if tx == nil {
			continue
		}

		var err error
		switch r.kind {
		case reqRun:
			if insertRun != nil {
				_, err = tx.Stmt(insertRun).Exec(
					r.run.RunID,
					int64(r.run.Seed),
					r.run.Places,
					r.run.Peers,
					r.run.StartedAt.UTC().Format(time.RFC3339Nano),
				)
			}
		case reqTick:
			if insertTick != nil {
				_, err = tx.Stmt(insertTick).Exec(
					r.tick.RunID,
					r.tick.Frame,
					r.tick.SimSeconds,
					r.tick.EnRoute,
					len(r.tick.Events),
				)
			}
		case reqArrival:
			if insertArrival != nil {
				_, err = tx.Stmt(insertArrival).Exec(
					r.runID,
					r.frame,
					int64(r.arrival.Peer),
					int64(r.arrival.Place),
					float64(r.arrival.At.X),
					float64(r.arrival.At.Y),
				)
			}
		}
		if err != nil {
			rollback(err)
			continue
		}
		opCount++

		if opCount >= indexCommitEvery || time.Since(lastCommit) >= indexCommitMaxWait {
			commit()
		}
	}
	commit()
}
