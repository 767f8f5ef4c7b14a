// Package collect builds one complete telemetry snapshot per refresh
// cycle: roster discovery, bounded fan-out collection, and strict
// aggregation of population totals.
package collect

import (
	"time"

	"github.com/babakskr/Conduit-console/internal/instance"
	"github.com/babakskr/Conduit-console/internal/netrate"
)

// Row is the collected record for one instance, in roster order.
type Row struct {
	Population   instance.Population
	Identity     string
	State        instance.State
	Pending      uint
	Active       uint
	IngressBytes uint64
	EgressBytes  uint64
	Uptime       string
	MaxConns     string
	Bandwidth    string

	// Stale marks a row whose stats were served from a cache entry past
	// its TTL because the live fetch failed.
	Stale bool
}

// Totals aggregates one population. Always computed as the sum of the
// rows actually collected, never estimated independently.
type Totals struct {
	Count        int
	Pending      uint
	Active       uint
	IngressBytes uint64
	EgressBytes  uint64
}

// add folds one row into the totals.
func (t *Totals) add(r Row) {
	t.Count++
	t.Pending += r.Pending
	t.Active += r.Active
	t.IngressBytes += r.IngressBytes
	t.EgressBytes += r.EgressBytes
}

// Snapshot is the immutable result of one collection cycle across both
// populations. Publish-once: nothing mutates a snapshot after the
// orchestrator hands it off.
type Snapshot struct {
	Generation uint64
	Rows       []Row
	Totals     map[instance.Population]Totals
	Warnings   []string
	NIC        netrate.Rate
	Mem        netrate.Memory
	Taken      time.Time
}

// PopulationRows returns the rows belonging to one population, preserving
// roster order.
func (s *Snapshot) PopulationRows(p instance.Population) []Row {
	var out []Row
	for _, r := range s.Rows {
		if r.Population == p {
			out = append(out, r)
		}
	}
	return out
}

// Count returns the instance count for one population.
func (s *Snapshot) Count(p instance.Population) int {
	return s.Totals[p].Count
}
