// Package spotlight implements the command palette: quick links plus data
// sources contributed by modules, searched concurrently.
package spotlight

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// DataSource is searched for every spotlight query.
type DataSource interface {
	Find(ctx context.Context, q string) []Item
}

// DataSourceFunc adapts a function to a DataSource.
type DataSourceFunc func(ctx context.Context, q string) []Item

func (f DataSourceFunc) Find(ctx context.Context, q string) []Item {
	return f(ctx, q)
}

type Spotlight interface {
	Register(sources ...DataSource)
	Find(ctx context.Context, q string) []Item
}

type spotlight struct {
	mu      sync.RWMutex
	sources []DataSource
	timeout time.Duration
}

func New() Spotlight {
	return &spotlight{timeout: 2 * time.Second}
}

func (s *spotlight) Register(sources ...DataSource) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sources = append(s.sources, sources...)
}

// Find queries every source in parallel and concatenates the results in
// registration order. Sources that outlive the timeout are dropped.
func (s *spotlight) Find(ctx context.Context, q string) []Item {
	s.mu.RLock()
	sources := append([]DataSource(nil), s.sources...)
	s.mu.RUnlock()

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	results := make([][]Item, len(sources))
	var wg sync.WaitGroup
	for i, src := range sources {
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					logrus.WithField("panic", r).Error("spotlight: data source panicked")
				}
			}()
			results[i] = src.Find(ctx, q)
		}()
	}
	wg.Wait()

	var out []Item
	for _, items := range results {
		out = append(out, items...)
	}
	return out
}
