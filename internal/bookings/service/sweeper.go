package service

import (
	"context"
	"time"

	"guestcal/internal/bookings/repository"
	"guestcal/pkg/config"
)

// ExpirationSweeper removes tentative holds whose hold window has run
// out. It runs two ways: lazily, invoked by the booking service before
// availability reads and writes, and periodically from the app
// lifecycle so abandoned holds clear even on an idle instance.
type ExpirationSweeper struct {
	repo     repository.HoldRepository
	notifier ChangeNotifier
	cfg      *config.Config
}

func NewExpirationSweeper(repo repository.HoldRepository, notifier ChangeNotifier, cfg *config.Config) *ExpirationSweeper {
	return &ExpirationSweeper{
		repo:     repo,
		notifier: notifier,
		cfg:      cfg,
	}
}

// Sweep deletes every OptionBooked hold older than the configured TTL
// and broadcasts a change signal when anything was removed.
func (s *ExpirationSweeper) Sweep(ctx context.Context) (int64, error) {
	cutoff := time.Now().UTC().Add(-s.cfg.HoldTTL)

	removed, err := s.repo.DeleteExpiredOptions(ctx, cutoff)
	if err != nil {
		return 0, err
	}

	if removed > 0 {
		s.cfg.Log.Info("Expired holds swept", "removed", removed, "cutoff", cutoff)
		s.notifier.StateChanged(ctx)
	}

	return removed, nil
}

// Run sweeps on the configured interval until ctx is cancelled. Sweep
// errors are logged and the loop keeps going.
func (s *ExpirationSweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(s.cfg.SweepInterval)
	defer ticker.Stop()

	s.cfg.Log.Info("Expiration sweeper started", "interval", s.cfg.SweepInterval, "hold_ttl", s.cfg.HoldTTL)

	for {
		select {
		case <-ctx.Done():
			s.cfg.Log.Info("Expiration sweeper stopped")
			return
		case <-ticker.C:
			if _, err := s.Sweep(ctx); err != nil {
				s.cfg.Log.Error("Periodic sweep failed", "error", err)
			}
		}
	}
}
