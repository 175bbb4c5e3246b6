package scraper

import (
	"context"
	"fmt"
	"time"

	"JobScanner/internal/domain"
)

// Request carries all parameters required to execute one fetch.
type Request struct {
	SearchTerm string
	Location   string
	MaxPages   int
}

// Adapter captures a single source implementation (LinkedIn, Indeed, etc.).
// FetchListings returns whatever it accumulated even when the source failed
// part-way; it never propagates a mid-batch failure.
type Adapter interface {
	Name() string
	// Paginated reports whether the adapter expands over search terms and
	// locations; non-paginated adapters run once per cycle.
	Paginated() bool
	FetchListings(ctx context.Context, req Request) []domain.RawListing
}

// Registry keeps a mapping from adapter names to their implementations.
type Registry struct {
	order    []string
	adapters map[string]Adapter
}

// NewRegistry builds an empty registry.
func NewRegistry() *Registry {
	return &Registry{adapters: map[string]Adapter{}}
}

// Register adds or replaces an adapter implementation.
func (r *Registry) Register(adapter Adapter) {
	if r.adapters == nil {
		r.adapters = map[string]Adapter{}
	}
	if _, exists := r.adapters[adapter.Name()]; !exists {
		r.order = append(r.order, adapter.Name())
	}
	r.adapters[adapter.Name()] = adapter
}

// Resolve returns an adapter by name or an error if it is absent.
func (r *Registry) Resolve(name string) (Adapter, error) {
	if adapter, ok := r.adapters[name]; ok {
		return adapter, nil
	}
	return nil, fmt.Errorf("adapter %s is not registered", name)
}

// All returns every registered adapter in registration order.
func (r *Registry) All() []Adapter {
	adapters := make([]Adapter, 0, len(r.order))
	for _, name := range r.order {
		adapters = append(adapters, r.adapters[name])
	}
	return adapters
}

// Pacing is the cooperative inter-request delay contract shared by adapters.
type Pacing struct {
	Min time.Duration
	Max time.Duration
}

// Sleep pauses for a randomized duration within the configured range,
// returning early if the context is cancelled.
func (p Pacing) Sleep(ctx context.Context) {
	d := p.Min
	if p.Max > p.Min {
		d = p.Min + randDuration(p.Max-p.Min)
	}
	if d <= 0 {
		return
	}
	select {
	case <-ctx.Done():
	case <-time.After(d):
	}
}
