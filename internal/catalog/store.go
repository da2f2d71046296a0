package catalog

import (
	"context"
	"sync/atomic"

	"go.uber.org/zap"
)

// Store holds the most recent load result. Readers never block; the loader and the
// watcher are the only writers.
type Store struct {
	loader  *Loader
	logger  *zap.Logger
	current atomic.Pointer[snapshot]
}

type snapshot struct {
	catalog *Catalog
	err     error
}

// NewStore creates an empty store. Until Load succeeds, Catalog reports a LoadError.
func NewStore(loader *Loader, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Store{loader: loader, logger: logger}
	s.current.Store(&snapshot{err: &LoadError{Source: loader.Source(), Err: errNotLoaded}})
	return s
}

// Load fetches the document. On failure a previously loaded snapshot stays active and
// the error is returned.
func (s *Store) Load(ctx context.Context) error {
	cat, err := s.loader.Load(ctx)
	if err != nil {
		prev := s.current.Load()
		if prev == nil || prev.catalog == nil {
			s.current.Store(&snapshot{err: err})
		}
		s.logger.Error("catalog load failed",
			zap.String("source", s.loader.Source()),
			zap.Bool("kept_previous", prev != nil && prev.catalog != nil),
			zap.Error(err))
		return err
	}
	s.current.Store(&snapshot{catalog: cat})
	st := cat.Stats()
	s.logger.Info("catalog loaded",
		zap.String("source", cat.Source()),
		zap.Int("items", st.Items),
		zap.Int("categories", st.Categories),
		zap.Int("downloads", st.Downloads))
	return nil
}

// Catalog returns the active snapshot, or the LoadError when nothing loaded yet.
func (s *Store) Catalog() (*Catalog, error) {
	snap := s.current.Load()
	if snap == nil {
		return nil, &LoadError{Source: s.loader.Source(), Err: errNotLoaded}
	}
	if snap.catalog == nil {
		return nil, snap.err
	}
	return snap.catalog, nil
}

// Ready reports whether a catalog is available.
func (s *Store) Ready() bool {
	_, err := s.Catalog()
	return err == nil
}
