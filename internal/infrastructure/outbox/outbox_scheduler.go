package outbox

import (
	"context"
	"log"
	"time"
)

type Scheduler struct {
	dispatcher *Dispatcher
	interval   time.Duration
}

func NewScheduler(d *Dispatcher, intervalSec int) *Scheduler {
	if intervalSec <= 0 {
		intervalSec = 1
	}
	return &Scheduler{
		dispatcher: d,
		interval:   time.Duration(intervalSec) * time.Second,
	}
}

func (s *Scheduler) Interval() time.Duration { return s.interval }

// Run dispatches on every tick until ctx is done. It always returns nil so it
// can sit in an errgroup next to the console session.
func (s *Scheduler) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Printf("Outbox scheduler stopped")
			return nil
		case <-ticker.C:
			s.tick(ctx)
		}
	}
}

// Drain runs dispatch passes until a pass delivers nothing. Used on shutdown.
func (s *Scheduler) Drain(ctx context.Context) {
	for ctx.Err() == nil {
		if n := s.tick(ctx); n == 0 {
			return
		}
	}
}

func (s *Scheduler) tick(ctx context.Context) int {
	n, err := s.dispatcher.DispatchOnce(ctx)
	if err != nil {
		log.Printf("Outbox dispatch error: %v", err)
		return 0
	}
	if n > 0 {
		log.Printf("Outbox dispatch processed %d messages", n)
	}
	return n
}
