package netrate

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMbps(t *testing.T) {
	tests := []struct {
		name string
		cur  uint64
		prev uint64
		dt   float64
		want float64
	}{
		{"one megabit over one second", 125_000, 0, 1, 1},
		{"ten megabits over ten seconds", 1_250_000, 0, 10, 1},
		{"delta over two seconds", 250_000, 0, 2, 1},
		{"no traffic", 5_000, 5_000, 1, 0},
		{"counter wrapped", 100, 5_000, 1, 0},
		{"zero interval", 125_000, 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, mbps(tt.cur, tt.prev, tt.dt), 0.001)
		})
	}
}

func TestRateZeroBeforeFirstSample(t *testing.T) {
	s := NewSampler("eth0")
	assert.Equal(t, Rate{}, s.Rate())
}

func TestSamplerPublishesRates(t *testing.T) {
	var reads atomic.Uint64
	counters := func(iface string) (uint64, uint64, error) {
		// Counters grow by 125000 rx / 250000 tx bytes per read.
		n := reads.Add(1)
		return n * 125_000, n * 250_000, nil
	}

	s := NewSamplerWithCounters("eth0", 5*time.Millisecond, counters)
	s.Start()
	defer s.Stop()

	// The first tick primes the baseline; a rate needs two.
	deadline := time.After(2 * time.Second)
	for s.Rate() == (Rate{}) {
		select {
		case <-deadline:
			t.Fatal("sampler never published a rate")
		case <-time.After(time.Millisecond):
		}
	}

	r := s.Rate()
	assert.Greater(t, r.RxMbps, 0.0)
	assert.Greater(t, r.TxMbps, r.RxMbps, "tx counter grows twice as fast")
}

func TestSamplerStopJoins(t *testing.T) {
	var reads atomic.Uint64
	counters := func(iface string) (uint64, uint64, error) {
		reads.Add(1)
		return 0, 0, nil
	}

	s := NewSamplerWithCounters("", 2*time.Millisecond, counters)
	s.Start()

	for reads.Load() == 0 {
		time.Sleep(time.Millisecond)
	}

	s.Stop()
	after := reads.Load()
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, after, reads.Load(), "no counter reads after Stop returns")
}

func TestSamplerStopWithoutStart(t *testing.T) {
	s := NewSampler("eth0")
	assert.NotPanics(t, func() { s.Stop() })
}

func TestSamplerSkipsFailedReads(t *testing.T) {
	var reads atomic.Uint64
	counters := func(iface string) (uint64, uint64, error) {
		reads.Add(1)
		return 0, 0, assert.AnError
	}

	s := NewSamplerWithCounters("eth0", 2*time.Millisecond, counters)
	s.Start()
	defer s.Stop()

	for reads.Load() < 3 {
		time.Sleep(time.Millisecond)
	}
	assert.Equal(t, Rate{}, s.Rate(), "failed reads never publish")
}
