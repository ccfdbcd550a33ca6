package repository

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/okian/lmi/internal/domain/aggregate"
	"github.com/okian/lmi/pkg/logger"
	"github.com/okian/lmi/pkg/metrics"
)

// CachedStore memoizes datasets by path and modification time. Concurrent
// misses on the same version share a single parse.
type CachedStore struct {
	loader *Loader
	stat   func(string) (os.FileInfo, error)

	mu      sync.RWMutex
	entries map[string]*Dataset // path -> latest parsed version
	group   singleflight.Group
}

var _ Store = (*CachedStore)(nil)

// NewCachedStore creates an empty cache backed by a default Loader.
func NewCachedStore(opts ...StoreOption) *CachedStore {
	s := &CachedStore{
		loader:  NewLoader(),
		stat:    os.Stat,
		entries: make(map[string]*Dataset),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Get returns the dataset at path, reparsing when its modification time moved.
func (s *CachedStore) Get(ctx context.Context, path string) (*Dataset, error) {
	info, err := s.stat(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOpenDataset, err)
	}
	mod := info.ModTime()

	s.mu.RLock()
	ds, ok := s.entries[path]
	s.mu.RUnlock()
	if ok && ds.ModTime.Equal(mod) {
		metrics.RecordCacheHit()
		return ds, nil
	}
	metrics.RecordCacheMiss()

	key := path + "@" + strconv.FormatInt(mod.UnixNano(), 10)
	ch := s.group.DoChan(key, func() (interface{}, error) {
		return s.load(context.WithoutCancel(ctx), path, mod)
	})
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*Dataset), nil
	}
}

func (s *CachedStore) load(ctx context.Context, path string, mod time.Time) (*Dataset, error) {
	log := logger.Get().Named("repository")
	start := time.Now()

	obs, err := s.loader.Load(ctx, path)
	if err != nil {
		metrics.RecordDatasetLoad("error", msSince(start))
		metrics.RecordErrorByComponent("repository", "load")
		log.Error(ctx, "dataset load failed", logger.String("path", path), logger.Error(err))
		return nil, err
	}
	national, err := aggregate.ComputeNational(obs)
	if err != nil {
		metrics.RecordDatasetLoad("error", msSince(start))
		metrics.RecordErrorByComponent("repository", "national")
		log.Error(ctx, "national series failed", logger.String("path", path), logger.Error(err))
		return nil, err
	}

	ds := &Dataset{
		Path:         path,
		ModTime:      mod,
		LoadedAt:     time.Now().UTC(),
		Observations: obs,
		National:     national,
	}
	s.mu.Lock()
	s.entries[path] = ds
	s.mu.Unlock()

	provinces := make(map[string]struct{})
	for _, o := range obs {
		provinces[o.Province] = struct{}{}
	}
	metrics.RecordDatasetLoad("ok", msSince(start))
	metrics.UpdateDatasetShape(len(obs), len(national), len(provinces))
	log.Info(ctx, "dataset loaded",
		logger.String("path", path),
		logger.Int("rows", len(obs)),
		logger.Int("periods", len(national)),
		logger.Duration("took", time.Since(start)),
	)
	return ds, nil
}

// Invalidate drops the cached version of path.
func (s *CachedStore) Invalidate(path string) {
	s.mu.Lock()
	delete(s.entries, path)
	s.mu.Unlock()
	metrics.RecordCacheInvalidation()
}

// Reset drops every cached dataset.
func (s *CachedStore) Reset() {
	s.mu.Lock()
	s.entries = make(map[string]*Dataset)
	s.mu.Unlock()
	metrics.RecordCacheInvalidation()
}

// Len returns the number of cached paths.
func (s *CachedStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

func msSince(t time.Time) float64 {
	return float64(time.Since(t).Microseconds()) / 1000
}
