package collect

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/babakskr/Conduit-console/internal/cache"
	"github.com/babakskr/Conduit-console/internal/instance"
	"github.com/babakskr/Conduit-console/internal/logger"
)

// pruneAge is how long a cache entry for a departed instance survives
// before the end-of-cycle sweep removes it.
const pruneAge = 24 * time.Hour

// Orchestrator runs one full collection cycle: per-population roster
// discovery, bounded fan-out, and strict total aggregation. It performs
// no terminal I/O.
type Orchestrator struct {
	sources     []instance.Source
	cache       *cache.Cache
	meta        *instance.MetaStore
	concurrency int
	log         logger.Logger

	gen atomic.Uint64
}

// NewOrchestrator creates an orchestrator over the given population
// sources. Concurrency is the per-population collector limit K.
func NewOrchestrator(sources []instance.Source, c *cache.Cache, meta *instance.MetaStore, concurrency int) *Orchestrator {
	return &Orchestrator{
		sources:     sources,
		cache:       c,
		meta:        meta,
		concurrency: concurrency,
		log:         logger.NewEnvLogger("[orchestrate]"),
	}
}

// Snapshot executes one cycle and returns the assembled snapshot. A
// roster failure for one population empties that population's rows with a
// warning; the other population proceeds normally.
func (o *Orchestrator) Snapshot(ctx context.Context) *Snapshot {
	started := time.Now()
	snap := &Snapshot{
		Totals: make(map[instance.Population]Totals),
		Taken:  started,
	}
	known := make(map[string]struct{})

	for _, source := range o.sources {
		pop := source.Population()
		snap.Totals[pop] = Totals{}

		roster, err := source.List(ctx)
		if err != nil {
			o.log.Warn("%s roster query failed: %v", pop, err)
			snap.Warnings = append(snap.Warnings,
				fmt.Sprintf("%s roster unavailable", pop))
			continue
		}

		collector := NewCollector(source, o.cache, o.meta, o.concurrency)
		rows := collector.Collect(ctx, roster)
		snap.Rows = append(snap.Rows, rows...)

		for _, identity := range roster {
			known[cache.Key(string(pop), identity)] = struct{}{}
		}
	}

	// Totals are the sums of the rows actually displayed. Computing them
	// any other way breaks the snapshot invariant.
	for _, row := range snap.Rows {
		t := snap.Totals[row.Population]
		t.add(row)
		snap.Totals[row.Population] = t
	}

	snap.Generation = o.gen.Add(1)

	o.cache.Prune(known, pruneAge)

	o.log.Debug("cycle %d: %d rows in %s", snap.Generation, len(snap.Rows), time.Since(started))
	return snap
}

// Generation returns the id of the most recently assembled snapshot.
func (o *Orchestrator) Generation() uint64 {
	return o.gen.Load()
}
