package usecase

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"JobScanner/internal/ports"
	"JobScanner/internal/scraper"
)

const cycleLockTTL = 2 * time.Hour

// Unit is one independently scheduled, independently failing slice of
// ingestion work.
type Unit struct {
	ID         string
	Source     string
	SearchTerm string
	Location   string
	MaxPages   int
}

// UnitResult reports what one unit did. Failed units still carry the
// counts accumulated before the failure.
type UnitResult struct {
	Unit     Unit
	Scraped  int
	Created  int
	Updated  int
	Rejected int
}

// Orchestrator expands search terms × locations into work units per
// paginated adapter, plus one unit per non-paginated adapter, and runs
// each as an isolated goroutine. Submission is fire-and-forget: RunCycle
// returns once every unit is dispatched.
type Orchestrator struct {
	registry    *scraper.Registry
	ingestor    *Ingestor
	skillDemand *SkillDemandRefresher
	lock        ports.CycleLock
	searchTerms []string
	locations   []string
	maxPages    int
	logger      *slog.Logger

	wg sync.WaitGroup
}

// OrchestratorDeps wires the orchestration inputs.
type OrchestratorDeps struct {
	Registry    *scraper.Registry
	Ingestor    *Ingestor
	SkillDemand *SkillDemandRefresher
	Lock        ports.CycleLock // nil disables overlap protection
	SearchTerms []string
	Locations   []string
	MaxPages    int
	Logger      *slog.Logger
}

// NewOrchestrator constructs the orchestration component.
func NewOrchestrator(deps OrchestratorDeps) *Orchestrator {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Orchestrator{
		registry:    deps.Registry,
		ingestor:    deps.Ingestor,
		skillDemand: deps.SkillDemand,
		lock:        deps.Lock,
		searchTerms: deps.SearchTerms,
		locations:   deps.Locations,
		maxPages:    deps.MaxPages,
		logger:      logger,
	}
}

// RunCycle expands and dispatches all work units for one scrape cycle and
// returns without waiting for them. A failure inside one unit never
// affects another; completion is observed through the unit logs. After
// all scraping units finish, the derived skill-demand table is rebuilt.
func (o *Orchestrator) RunCycle(ctx context.Context) {
	if o.lock != nil {
		acquired, err := o.lock.Acquire(ctx, cycleLockTTL)
		if err != nil {
			o.logger.Warn("cycle lock unavailable, proceeding unlocked", "error", err)
		} else if !acquired {
			o.logger.Info("another cycle is running, skipping")
			return
		}
	}

	units := o.expandUnits()
	o.logger.Info("scrape cycle started", "units", len(units))

	cycleWG := &sync.WaitGroup{}
	for _, unit := range units {
		o.wg.Add(1)
		cycleWG.Add(1)
		go func(u Unit) {
			defer o.wg.Done()
			defer cycleWG.Done()
			o.runUnit(ctx, u)
		}(unit)
	}

	// Post-scrape maintenance runs after the cycle's units, still
	// asynchronously from the caller.
	o.wg.Add(1)
	go func() {
		defer o.wg.Done()
		cycleWG.Wait()
		if o.skillDemand != nil {
			o.skillDemand.Refresh(ctx)
		}
		if o.lock != nil {
			if err := o.lock.Release(ctx); err != nil {
				o.logger.Warn("release cycle lock", "error", err)
			}
		}
		o.logger.Info("scrape cycle complete", "units", len(units))
	}()
}

// Wait blocks until all dispatched units finish. Used by tests and
// graceful shutdown, not by the trigger path.
func (o *Orchestrator) Wait() {
	o.wg.Wait()
}

func (o *Orchestrator) expandUnits() []Unit {
	var units []Unit
	for _, adapter := range o.registry.All() {
		if !adapter.Paginated() {
			units = append(units, Unit{
				ID:     uuid.New().String(),
				Source: adapter.Name(),
			})
			continue
		}
		for _, term := range o.searchTerms {
			for _, location := range o.locations {
				units = append(units, Unit{
					ID:         uuid.New().String(),
					Source:     adapter.Name(),
					SearchTerm: term,
					Location:   location,
					MaxPages:   o.maxPages,
				})
			}
		}
	}
	return units
}

// runUnit executes one unit end to end. Every failure is absorbed here:
// the unit's own result is the only casualty.
func (o *Orchestrator) runUnit(ctx context.Context, unit Unit) UnitResult {
	logger := o.logger.With(
		"unit", unit.ID,
		"source", unit.Source,
		"term", unit.SearchTerm,
		"location", unit.Location,
	)

	result := UnitResult{Unit: unit}

	adapter, err := o.registry.Resolve(unit.Source)
	if err != nil {
		logger.Error("unit failed", "error", err)
		return result
	}

	listings := adapter.FetchListings(ctx, scraper.Request{
		SearchTerm: unit.SearchTerm,
		Location:   unit.Location,
		MaxPages:   unit.MaxPages,
	})
	result.Scraped = len(listings)

	for _, raw := range listings {
		created, err := o.ingestor.Ingest(ctx, raw)
		if err != nil {
			result.Rejected++
			logger.Warn("listing rejected", "title", raw.Title, "error", err)
			continue
		}
		if created {
			result.Created++
		} else {
			result.Updated++
		}
	}

	logger.Info("unit done",
		"scraped", result.Scraped,
		"created", result.Created,
		"updated", result.Updated,
		"rejected", result.Rejected,
	)
	return result
}
