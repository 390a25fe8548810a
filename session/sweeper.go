package session

import (
	"context"
	"log"
	"time"

	"url2qr-mcp/metrics"
)

// Sweeper evicts idle sessions from a Registry on a fixed interval. The
// interval must be shorter than the timeout; config validation enforces
// that before a Sweeper is ever built.
type Sweeper struct {
	registry *Registry
	timeout  time.Duration
	interval time.Duration
}

// NewSweeper returns a sweeper expiring sessions idle longer than
// timeout, checking every interval.
func NewSweeper(reg *Registry, timeout, interval time.Duration) *Sweeper {
	return &Sweeper{registry: reg, timeout: timeout, interval: interval}
}

// Run blocks sweeping until ctx is cancelled. Each sweep is isolated: a
// failing pass is logged and the ticker keeps going.
func (s *Sweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	log.Printf("[session] sweeper running (timeout=%s, interval=%s)", s.timeout, s.interval)
	for {
		select {
		case <-ctx.Done():
			log.Printf("[session] sweeper stopped: %v", ctx.Err())
			return
		case <-ticker.C:
			s.sweepOnce(time.Now())
		}
	}
}

func (s *Sweeper) sweepOnce(now time.Time) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[session] sweep failed: %v", r)
		}
	}()

	evicted := s.registry.EvictExpired(now, s.timeout)
	if len(evicted) == 0 {
		return
	}
	metrics.SessionsExpired.Add(float64(len(evicted)))
	metrics.SessionsActive.Set(float64(s.registry.Count()))
	log.Printf("[session] evicted %d idle session(s): %v", len(evicted), evicted)
}
