// Package scanner produces the full record list for a collection address,
// working around a ledger with no server-side filtering: one expensive,
// unordered, rate-limited read per scan, routed through the request queue.
package scanner

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/mintfeed/mintfeed/internal/cache"
	"github.com/mintfeed/mintfeed/internal/errors"
	"github.com/mintfeed/mintfeed/internal/ledger"
	"github.com/mintfeed/mintfeed/internal/logger"
	"github.com/mintfeed/mintfeed/internal/metrics"
	"github.com/mintfeed/mintfeed/internal/queue"
)

const (
	// DefaultTimeout is the wall-clock limit a caller waits on a scan.
	DefaultTimeout = 12 * time.Second
	// DefaultTTL is how long a raw scan result stays fresh in cache.
	DefaultTTL = 60 * time.Second
	// DefaultLimit caps how many records one scan requests.
	DefaultLimit = 200
)

// Config tunes a Scanner. Zero values fall back to the defaults.
type Config struct {
	Timeout time.Duration
	TTL     time.Duration
	Limit   int
}

// Scanner reads collections through the request queue and caches raw scan
// results. It is safe for concurrent use.
type Scanner struct {
	reader  ledger.Reader
	queue   *queue.Queue
	cache   *cache.Store
	timeout time.Duration
	ttl     time.Duration
	limit   int
}

// New creates a scanner over the given ledger reader, request queue, and
// cache store.
func New(reader ledger.Reader, q *queue.Queue, store *cache.Store, cfg Config) *Scanner {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.TTL <= 0 {
		cfg.TTL = DefaultTTL
	}
	if cfg.Limit <= 0 {
		cfg.Limit = DefaultLimit
	}
	return &Scanner{
		reader:  reader,
		queue:   q,
		cache:   store,
		timeout: cfg.Timeout,
		ttl:     cfg.TTL,
		limit:   cfg.Limit,
	}
}

// Scan returns every record minted under collection. Freshly cached scans
// are served without touching the ledger. A scan that exceeds the
// wall-clock timeout returns ErrScanTimedOut while the in-flight request
// keeps running in the background; a late success is written to the cache
// for future reads only, and never if a newer scan landed in the meantime.
//
// A rate-limited scan falls back to the last cached result for the
// collection even past its TTL. An empty collection is a valid result,
// not an error.
func (s *Scanner) Scan(ctx context.Context, collection string) ([]ledger.ContentRecord, error) {
	if collection == "" {
		return nil, errors.NotConfigured("collection address")
	}

	if cached, ok := s.cache.Get(cache.ScanKey(collection)); ok {
		return cached.([]ledger.ContentRecord), nil
	}

	started := time.Now()

	// The operation runs under its own context: a caller giving up must
	// not cancel the underlying request, its result is still cacheable.
	done := s.queue.Enqueue(context.Background(), func(opCtx context.Context) (any, error) {
		return s.reader.RecordsByCreator(opCtx, collection, s.limit)
	})

	select {
	case res := <-done:
		metrics.Get().ScanDuration.Observe(time.Since(started).Seconds())
		return s.finishScan(collection, res, started)

	case <-time.After(s.timeout):
		metrics.Get().ScanTimeouts.Inc()
		metrics.Get().ScansTotal.WithLabelValues("timeout").Inc()
		logger.Log.Warn("Collection scan timed out, leaving request in flight",
			zap.String("collection", collection),
			zap.Duration("timeout", s.timeout),
		)
		go s.applyLateResult(collection, done, started)
		return nil, errors.ScanTimedOut(collection)

	case <-ctx.Done():
		go s.applyLateResult(collection, done, started)
		return nil, errors.ScanTimedOut(collection)
	}
}

func (s *Scanner) finishScan(collection string, res queue.Result, started time.Time) ([]ledger.ContentRecord, error) {
	if res.Err == nil {
		records := res.Value.([]ledger.ContentRecord)
		s.cache.Put(cache.ScanKey(collection), records, s.ttl)
		metrics.Get().ScansTotal.WithLabelValues("success").Inc()
		logger.Log.Debug("Collection scan complete",
			zap.String("collection", collection),
			zap.Int("records", len(records)),
			zap.Duration("took", time.Since(started)),
		)
		return records, nil
	}

	if errors.IsCode(res.Err, errors.ErrRateLimited) {
		if stale, wasStale, ok := s.cache.GetStale(cache.ScanKey(collection)); ok {
			metrics.Get().ScansTotal.WithLabelValues("rate_limited_stale").Inc()
			logger.Log.Warn("Scan rate limited, serving cached records",
				zap.String("collection", collection),
				zap.Bool("expired", wasStale),
			)
			return stale.([]ledger.ContentRecord), nil
		}
	}

	metrics.Get().ScansTotal.WithLabelValues("failed").Inc()
	return nil, errors.ScanFailed(res.Err)
}

// applyLateResult waits out an abandoned scan and, on success, updates the
// cache for future reads. A result that arrives after a newer scan has
// already been stored is discarded so a slow response cannot clobber
// fresher state.
func (s *Scanner) applyLateResult(collection string, done <-chan queue.Result, started time.Time) {
	res := <-done
	if res.Err != nil {
		logger.Log.Debug("Abandoned scan failed in background",
			zap.String("collection", collection),
			zap.Error(res.Err),
		)
		return
	}

	key := cache.ScanKey(collection)
	if at, ok := s.cache.StoredAt(key); ok && at.After(started) {
		return
	}

	records := res.Value.([]ledger.ContentRecord)
	s.cache.Put(key, records, s.ttl)
	logger.Log.Info("Late scan result cached for future reads",
		zap.String("collection", collection),
		zap.Int("records", len(records)),
	)
}
