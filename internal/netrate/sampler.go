// Package netrate samples NIC byte counters on a fixed cadence,
// independent of the dashboard refresh interval, and publishes the derived
// megabit-per-second rates to a single last-write-wins slot.
package netrate

import (
	"context"
	"strings"
	"sync/atomic"
	"time"

	"github.com/shirou/gopsutil/v3/mem"
	psnet "github.com/shirou/gopsutil/v3/net"

	"github.com/babakskr/Conduit-console/internal/logger"
)

// SampleInterval is the fixed sampler cadence.
const SampleInterval = time.Second

// Rate is one published throughput sample.
type Rate struct {
	RxMbps float64
	TxMbps float64
}

// Memory is a host memory snapshot shown on the dashboard summary line.
type Memory struct {
	UsedBytes  uint64
	TotalBytes uint64
}

// CounterFunc reads the monotonic rx/tx byte counters for an interface.
// Injected in tests.
type CounterFunc func(iface string) (rx, tx uint64, err error)

// Sampler runs one background loop computing rate deltas. A sampler that
// has not produced a value yet reads as zero; consumers never block on it.
type Sampler struct {
	iface    string
	interval time.Duration
	counters CounterFunc
	log      logger.Logger

	slot   atomic.Pointer[Rate]
	cancel context.CancelFunc
	done   chan struct{}
}

// NewSampler creates a sampler for the named interface. An empty name
// aggregates all non-loopback interfaces.
func NewSampler(iface string) *Sampler {
	return &Sampler{
		iface:    iface,
		interval: SampleInterval,
		counters: readCounters,
		log:      logger.NewEnvLogger("[netrate]"),
	}
}

// NewSamplerWithCounters creates a sampler with an injected counter
// reader and cadence, for tests.
func NewSamplerWithCounters(iface string, interval time.Duration, counters CounterFunc) *Sampler {
	s := NewSampler(iface)
	s.interval = interval
	s.counters = counters
	return s
}

// Start launches the sampling loop. Called once at dashboard entry.
func (s *Sampler) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.done = make(chan struct{})
	go s.loop(ctx)
}

// Stop halts the loop and waits for it to exit, so no sampling goroutine
// outlives the dashboard.
func (s *Sampler) Stop() {
	if s.cancel == nil {
		return
	}
	s.cancel()
	<-s.done
	s.cancel = nil
}

// Rate returns the most recent published sample, or zero when the sampler
// has not produced one yet.
func (s *Sampler) Rate() Rate {
	if r := s.slot.Load(); r != nil {
		return *r
	}
	return Rate{}
}

func (s *Sampler) loop(ctx context.Context) {
	defer close(s.done)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	var (
		prevRx, prevTx uint64
		prevAt         time.Time
		primed         bool
	)

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			rx, tx, err := s.counters(s.iface)
			if err != nil {
				s.log.Debug("counter read failed: %v", err)
				continue
			}

			if primed && now.After(prevAt) {
				dt := now.Sub(prevAt).Seconds()
				rate := Rate{
					RxMbps: mbps(rx, prevRx, dt),
					TxMbps: mbps(tx, prevTx, dt),
				}
				s.slot.Store(&rate)
			}

			prevRx, prevTx, prevAt, primed = rx, tx, now, true
		}
	}
}

// mbps converts a byte-counter delta over dt seconds to megabits/second.
// A counter that wrapped or reset reads as zero for that sample.
func mbps(cur, prev uint64, dt float64) float64 {
	if cur < prev || dt <= 0 {
		return 0
	}
	return float64(cur-prev) * 8 / dt / 1e6
}

// readCounters reads interface byte counters via gopsutil.
func readCounters(iface string) (uint64, uint64, error) {
	stats, err := psnet.IOCounters(true)
	if err != nil {
		return 0, 0, err
	}

	var rx, tx uint64
	for _, st := range stats {
		if iface != "" {
			if st.Name == iface {
				return st.BytesRecv, st.BytesSent, nil
			}
			continue
		}
		if strings.HasPrefix(st.Name, "lo") {
			continue
		}
		rx += st.BytesRecv
		tx += st.BytesSent
	}
	return rx, tx, nil
}

// ReadMemory returns the current host memory snapshot. Failures degrade
// to zeros; the summary line renders them as dashes.
func ReadMemory() Memory {
	vm, err := mem.VirtualMemory()
	if err != nil {
		return Memory{}
	}
	return Memory{UsedBytes: vm.Used, TotalBytes: vm.Total}
}
