package room

import (
	"context"
	"log/slog"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"
)

// Scheduler drives every room at three fixed rates: physics, state
// broadcast and the one-second countdown.
type Scheduler struct {
	rm                *Manager
	physicsInterval   time.Duration
	broadcastInterval time.Duration
	countdownInterval time.Duration
	parallelism       int
}

// NewScheduler creates a scheduler ticking at the given rates in Hz.
func NewScheduler(rm *Manager, physicsHz, broadcastHz int) *Scheduler {
	return &Scheduler{
		rm:                rm,
		physicsInterval:   time.Second / time.Duration(max(physicsHz, 1)),
		broadcastInterval: time.Second / time.Duration(max(broadcastHz, 1)),
		countdownInterval: time.Second,
		parallelism:       runtime.GOMAXPROCS(0),
	}
}

// Run ticks until ctx is cancelled.
func (s *Scheduler) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return s.loop(ctx, "physics", s.physicsInterval, (*Room).PhysicsTick) })
	g.Go(func() error { return s.loop(ctx, "broadcast", s.broadcastInterval, (*Room).BroadcastTick) })
	g.Go(func() error { return s.loop(ctx, "countdown", s.countdownInterval, (*Room).CountdownTick) })
	return g.Wait()
}

func (s *Scheduler) loop(ctx context.Context, name string, interval time.Duration, step func(*Room, time.Time)) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	slog.Debug("scheduler loop started", "loop", name, "interval", interval)
	for {
		select {
		case <-ctx.Done():
			return nil
		case now := <-ticker.C:
			s.stepAll(name, now, step)
		}
	}
}

// stepAll runs step on every room concurrently. A panic in one room is
// logged and does not stop the others.
func (s *Scheduler) stepAll(name string, now time.Time, step func(*Room, time.Time)) {
	var g errgroup.Group
	g.SetLimit(s.parallelism)
	for _, r := range s.rm.Rooms() {
		g.Go(func() error {
			defer func() {
				if rec := recover(); rec != nil {
					slog.Error("room tick panicked", "loop", name, "room", r.Code, "panic", rec)
				}
			}()
			step(r, now)
			return nil
		})
	}
	_ = g.Wait()
}
