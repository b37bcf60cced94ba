package app

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/jsamuelsen/quotesync/internal/domain"
	"github.com/jsamuelsen/quotesync/internal/ports"
)

// Syncer is the part of QuoteService the scheduler drives.
type Syncer interface {
	Sync(ctx context.Context) domain.SyncResult
	Syncing() bool
}

// SchedulerConfig configures a Scheduler.
type SchedulerConfig struct {
	Interval time.Duration
	Enabled  bool

	// Initial runs one sync as soon as Start is called.
	Initial bool

	Notifier ports.Notifier
	Logger   *slog.Logger
}

// Scheduler triggers Sync on a fixed interval. A tick that finds a sync in
// flight is skipped rather than queued. Disabling never cancels a running
// sync; its result is still applied.
type Scheduler struct {
	syncer   Syncer
	interval time.Duration
	initial  bool
	notifier ports.Notifier
	logger   *slog.Logger

	mu      sync.RWMutex
	enabled bool
	running bool
	stopCh  chan struct{}
	wg      sync.WaitGroup
}

// NewScheduler creates a Scheduler. A non-positive interval uses 30s.
func NewScheduler(syncer Syncer, cfg SchedulerConfig) *Scheduler {
	if cfg.Interval <= 0 {
		cfg.Interval = 30 * time.Second
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Scheduler{
		syncer:   syncer,
		interval: cfg.Interval,
		initial:  cfg.Initial,
		notifier: cfg.Notifier,
		logger:   logger.With(slog.String("component", "scheduler")),
		enabled:  cfg.Enabled,
	}
}

// Start launches the ticker loop. Calling Start twice is a no-op.
// The loop ends when ctx is done or Stop is called.
func (s *Scheduler) Start(ctx context.Context) {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return
	}

	s.running = true
	s.stopCh = make(chan struct{})
	stopCh := s.stopCh
	s.mu.Unlock()

	ctx = WithSyncTrigger(ctx, TriggerScheduler)

	if s.initial {
		s.wg.Go(func() { s.syncer.Sync(WithSyncTrigger(ctx, TriggerStartup)) })
	}

	s.wg.Go(func() { s.loop(ctx, stopCh) })

	s.logger.InfoContext(ctx, "auto-sync scheduler started",
		slog.Duration("interval", s.interval),
		slog.Bool("enabled", s.Enabled()),
	)
}

// Stop ends the loop and waits for syncs it started to finish.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}

	s.running = false
	close(s.stopCh)
	s.mu.Unlock()

	s.wg.Wait()
	s.logger.Info("auto-sync scheduler stopped")
}

// SetEnabled switches auto-sync and notifies the user when the state changes.
func (s *Scheduler) SetEnabled(ctx context.Context, enabled bool) {
	s.mu.Lock()
	changed := s.enabled != enabled
	s.enabled = enabled
	s.mu.Unlock()

	if !changed || s.notifier == nil {
		return
	}

	if enabled {
		s.notifier.Notify(ctx, AutoSyncMessage(s.interval), ports.LevelSuccess)
	} else {
		s.notifier.Notify(ctx, MsgAutoSyncOff, ports.LevelInfo)
	}
}

// Enabled reports whether ticks trigger syncs.
func (s *Scheduler) Enabled() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.enabled
}

// Interval returns the tick period.
func (s *Scheduler) Interval() time.Duration {
	return s.interval
}

func (s *Scheduler) loop(ctx context.Context, stopCh <-chan struct{}) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-stopCh:
			return
		case <-ticker.C:
			s.tick(ctx)
		}
	}
}

func (s *Scheduler) tick(ctx context.Context) {
	if !s.Enabled() {
		return
	}

	if s.syncer.Syncing() {
		s.logger.DebugContext(ctx, "sync already in progress, skipping tick")
		return
	}

	s.wg.Go(func() { s.syncer.Sync(ctx) })
}
