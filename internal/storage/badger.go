package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dgraph-io/badger/v3"
	"github.com/prometheus/client_golang/prometheus"
)

// BadgerEngine implements KVEngine on Badger v3.
type BadgerEngine struct {
	db     *badger.DB
	cfg    BadgerConfig
	logger *slog.Logger

	lastGC atomic.Int64 // Unix milliseconds, 0 before the first run
	closed atomic.Bool

	stopCh    chan struct{}
	doneCh    chan struct{}
	closeOnce sync.Once
}

// NewBadgerEngine opens (or creates) the database in cfg.Dir and starts
// the GC loop when cfg.Badger.GCInterval is positive.
func NewBadgerEngine(cfg KVConfig, logger *slog.Logger) (*BadgerEngine, error) {
	if cfg.Dir == "" {
		return nil, errors.New("badger: dir is required")
	}
	if r := cfg.Badger.GCDiscardRatio; r <= 0 || r >= 1 {
		return nil, fmt.Errorf("badger: gc discard ratio %v outside (0, 1)", r)
	}
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "badger")

	opts := badger.DefaultOptions(cfg.Dir).
		WithLogger(badgerLogger{logger}).
		WithBlockCacheSize(cfg.Badger.CacheSize).
		WithValueLogFileSize(cfg.Badger.ValueLogFileSize).
		WithSyncWrites(cfg.Badger.SyncWrites)

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("badger: open %s: %w", cfg.Dir, err)
	}

	e := &BadgerEngine{
		db:     db,
		cfg:    cfg.Badger,
		logger: logger,
		stopCh: make(chan struct{}),
		doneCh: make(chan struct{}),
	}
	go e.gcLoop()

	logger.Info("badger engine opened",
		"dir", cfg.Dir,
		"sync_writes", cfg.Badger.SyncWrites,
		"gc_interval", cfg.Badger.GCInterval)
	return e, nil
}

// Get returns a copy of the value stored under key.
func (e *BadgerEngine) Get(ctx context.Context, key []byte) ([]byte, error) {
	if err := e.usable(ctx); err != nil {
		return nil, err
	}

	var value []byte
	err := e.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrKeyNotFound
		}
		if err != nil {
			return err
		}
		value, err = item.ValueCopy(nil)
		return err
	})
	return value, err
}

// Set stores value under key in its own transaction.
func (e *BadgerEngine) Set(ctx context.Context, key, value []byte) error {
	if err := e.usable(ctx); err != nil {
		return err
	}
	return e.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key, value)
	})
}

// Delete removes key. Deleting a missing key succeeds.
func (e *BadgerEngine) Delete(ctx context.Context, key []byte) error {
	if err := e.usable(ctx); err != nil {
		return err
	}
	return e.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(key)
	})
}

// Scan calls fn for every key with prefix in key order until fn returns
// false or ctx ends.
func (e *BadgerEngine) Scan(ctx context.Context, prefix []byte, fn func(key, value []byte) bool) error {
	if err := e.usable(ctx); err != nil {
		return err
	}
	return e.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			item := it.Item()
			value, err := item.ValueCopy(nil)
			if err != nil {
				return err
			}
			if !fn(item.KeyCopy(nil), value) {
				return nil
			}
		}
		return nil
	})
}

// GC rewrites value log files until Badger finds nothing worth rewriting.
// It returns the number of files rewritten.
func (e *BadgerEngine) GC(ctx context.Context) (int, error) {
	if err := e.usable(ctx); err != nil {
		return 0, err
	}

	start := time.Now()
	rewrites := 0
	for ctx.Err() == nil {
		err := e.db.RunValueLogGC(e.cfg.GCDiscardRatio)
		if errors.Is(err, badger.ErrNoRewrite) || errors.Is(err, badger.ErrRejected) {
			break
		}
		if err != nil {
			return rewrites, fmt.Errorf("badger: gc: %w", err)
		}
		rewrites++
	}
	if err := ctx.Err(); err != nil {
		return rewrites, err
	}

	e.lastGC.Store(time.Now().UnixMilli())
	e.logger.Debug("value log gc done", "rewrites", rewrites, "elapsed", time.Since(start))
	return rewrites, nil
}

// Stats reports sizes from Badger's own accounting. TotalKeys counts keys
// in SSTables only, so it lags recent writes still in the memtable.
func (e *BadgerEngine) Stats(ctx context.Context) (*KVStats, error) {
	if err := e.usable(ctx); err != nil {
		return nil, err
	}

	lsm, vlog := e.db.Size()
	var keys uint64
	for _, t := range e.db.Tables() {
		keys += uint64(t.KeyCount)
	}

	return &KVStats{
		Engine:       EngineBadger,
		TotalKeys:    keys,
		TotalSize:    uint64(lsm + vlog),
		LSMSize:      uint64(lsm),
		ValueLogSize: uint64(vlog),
		LastGCTime:   e.lastGC.Load(),
	}, nil
}

// Close stops the GC loop and closes the database. Later calls return nil.
func (e *BadgerEngine) Close() error {
	var err error
	e.closeOnce.Do(func() {
		e.closed.Store(true)
		close(e.stopCh)
		<-e.doneCh

		if cerr := e.db.Close(); cerr != nil {
			err = fmt.Errorf("badger: close: %w", cerr)
			return
		}
		e.logger.Info("badger engine closed")
	})
	return err
}

// RegisterMetrics registers gauges that read Badger's sizes and last GC
// time at scrape time. It returns e for chaining.
func (e *BadgerEngine) RegisterMetrics(registerer prometheus.Registerer) *BadgerEngine {
	gauge := func(name, help string, read func(*KVStats) float64) prometheus.GaugeFunc {
		return prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: "snipboard",
			Subsystem: "badger",
			Name:      name,
			Help:      help,
		}, func() float64 {
			stats, err := e.Stats(context.Background())
			if err != nil {
				return 0
			}
			return read(stats)
		})
	}

	registerer.MustRegister(
		gauge("lsm_size_bytes", "Badger LSM tree size in bytes.",
			func(s *KVStats) float64 { return float64(s.LSMSize) }),
		gauge("value_log_size_bytes", "Badger value log size in bytes.",
			func(s *KVStats) float64 { return float64(s.ValueLogSize) }),
		gauge("last_gc_timestamp_seconds", "Unix time of the last value log GC, 0 if none.",
			func(s *KVStats) float64 { return float64(s.LastGCTime) / 1000 }),
	)
	return e
}

func (e *BadgerEngine) usable(ctx context.Context) error {
	if e.closed.Load() {
		return ErrClosed
	}
	return ctx.Err()
}

func (e *BadgerEngine) gcLoop() {
	defer close(e.doneCh)

	if e.cfg.GCInterval <= 0 {
		<-e.stopCh
		return
	}

	ticker := time.NewTicker(e.cfg.GCInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
			if _, err := e.GC(ctx); err != nil && !errors.Is(err, ErrClosed) {
				e.logger.Error("value log gc failed", "error", err)
			}
			cancel()
		case <-e.stopCh:
			return
		}
	}
}

// badgerLogger routes Badger's printf-style logs into slog. Badger's info
// output is chatty, so it is logged at debug.
type badgerLogger struct {
	logger *slog.Logger
}

func (l badgerLogger) Errorf(format string, args ...any) {
	l.logger.Error(fmt.Sprintf(format, args...))
}

func (l badgerLogger) Warningf(format string, args ...any) {
	l.logger.Warn(fmt.Sprintf(format, args...))
}

func (l badgerLogger) Infof(format string, args ...any) {
	l.logger.Debug(fmt.Sprintf(format, args...))
}

func (l badgerLogger) Debugf(format string, args ...any) {
	l.logger.Debug(fmt.Sprintf(format, args...))
}
