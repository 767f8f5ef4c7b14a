package collect

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/semaphore"

	"github.com/babakskr/Conduit-console/internal/cache"
	"github.com/babakskr/Conduit-console/internal/instance"
	"github.com/babakskr/Conduit-console/internal/logger"
	"github.com/babakskr/Conduit-console/internal/stats"
)

// logTailLines is how far back the live fetch looks for a status line.
const logTailLines = 20

// Collector fans out one collection task per roster entry, with at most
// Limit tasks in flight at once. Results land in a slice indexed by
// roster position, so aggregation is order-stable without requiring
// ordered completion.
type Collector struct {
	source instance.Source
	cache  *cache.Cache
	meta   *instance.MetaStore
	limit  int64
	log    logger.Logger
}

// NewCollector creates a collector for one population.
func NewCollector(source instance.Source, c *cache.Cache, meta *instance.MetaStore, limit int) *Collector {
	if limit < 1 {
		limit = 1
	}
	return &Collector{
		source: source,
		cache:  c,
		meta:   meta,
		limit:  int64(limit),
		log:    logger.NewEnvLogger("[collect]"),
	}
}

// Collect runs one task per roster identity and returns all results in
// roster order. A task failure degrades only its own row; the pool always
// completes.
func (c *Collector) Collect(ctx context.Context, roster []string) []Row {
	rows := make([]Row, len(roster))
	sem := semaphore.NewWeighted(c.limit)
	var wg sync.WaitGroup

	for i, identity := range roster {
		wg.Add(1)
		go func(i int, identity string) {
			defer wg.Done()

			if err := sem.Acquire(ctx, 1); err != nil {
				rows[i] = c.downRow(identity)
				return
			}
			defer sem.Release(1)

			rows[i] = c.collectOne(ctx, identity)
		}(i, identity)
	}

	wg.Wait()
	return rows
}

// collectOne gathers one instance's record: supervisor state, cached or
// live stats, and configured capacity.
func (c *Collector) collectOne(ctx context.Context, identity string) Row {
	pop := c.source.Population()
	row := Row{
		Population: pop,
		Identity:   identity,
		Uptime:     "-",
		MaxConns:   "-",
		Bandwidth:  "-",
	}

	state, err := c.source.State(ctx, identity)
	if err != nil {
		c.log.Debug("%s/%s state query failed: %v", pop, identity, err)
		state = instance.StateDown
	}
	row.State = state

	key := cache.Key(string(pop), identity)
	payload, stale, ok := c.cache.Fetch(key, func() (string, error) {
		return c.liveStats(ctx, identity)
	})
	if ok {
		f := stats.Parse(payload)
		row.Pending = f.Pending
		row.Active = f.Active
		row.IngressBytes = f.IngressBytes
		row.EgressBytes = f.EgressBytes
		row.Uptime = f.Uptime
		row.Stale = stale
	}

	row.MaxConns, row.Bandwidth = c.capacity(ctx, identity)

	// A healthy instance with no active connections shows as idle.
	if row.State == instance.StateOK && row.Active == 0 {
		row.State = instance.StateIdle
	}

	return row
}

// liveStats tails the instance log and extracts the newest status line.
// A log with no status line counts as a fetch failure so an older cached
// line survives.
func (c *Collector) liveStats(ctx context.Context, identity string) (string, error) {
	lines, err := c.source.TailLog(ctx, identity, logTailLines)
	if err != nil {
		return "", err
	}
	line := stats.FindStatsLine(lines)
	if line == "" {
		return "", fmt.Errorf("no status line in last %d log lines", logTailLines)
	}
	return line, nil
}

// capacity recovers configured limits from the runtime descriptor,
// falling back to the metadata store when introspection yields nothing.
func (c *Collector) capacity(ctx context.Context, identity string) (maxConns, bandwidth string) {
	desc, err := c.source.Descriptor(ctx, identity)
	if err == nil {
		if parsed := instance.ParseCapacity(desc); !parsed.IsEmpty() {
			return parsed.MaxConns, parsed.Bandwidth
		}
	}

	if c.meta != nil {
		if stored, ok := c.meta.Capacity(c.source.Population(), identity); ok {
			return stored.MaxConns, stored.Bandwidth
		}
	}

	return "-", "-"
}

// downRow is the degraded record for a task that never ran.
func (c *Collector) downRow(identity string) Row {
	return Row{
		Population: c.source.Population(),
		Identity:   identity,
		State:      instance.StateDown,
		Uptime:     "-",
		MaxConns:   "-",
		Bandwidth:  "-",
	}
}
