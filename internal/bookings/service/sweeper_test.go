package service

import (
	"context"
	"testing"
	"time"

	"guestcal/pkg/config"
	"guestcal/pkg/logger"
	"guestcal/pkg/model"
)

func newSweeperFixture(t *testing.T) (*ExpirationSweeper, *memHoldRepository, *mockNotifier) {
	t.Helper()

	cfg := &config.Config{
		HoldTTL: time.Hour,
		Log: logger.New(logger.Config{
			Level:   logger.LevelError,
			Format:  logger.FormatJSON,
			Service: "test",
		}),
	}
	repo := &memHoldRepository{}
	notifier := &mockNotifier{}
	return NewExpirationSweeper(repo, notifier, cfg), repo, notifier
}

func holdCreatedAt(roomID, holder string, createdAt time.Time, status string) *model.Hold {
	return &model.Hold{
		RoomID:    roomID,
		HolderID:  holder,
		StartDate: model.Date(2026, time.August, 10),
		EndDate:   model.Date(2026, time.August, 12),
		Status:    status,
		CreatedAt: createdAt,
	}
}

func TestSweepRespectsTTL(t *testing.T) {
	sweeper, repo, _ := newSweeperFixture(t)
	ctx := context.Background()
	now := time.Now().UTC()

	fresh := holdCreatedAt(roomOneID, holderAlice, now.Add(-59*time.Minute), model.StatusOptionBooked)
	stale := holdCreatedAt(roomTwoID, holderBob, now.Add(-61*time.Minute), model.StatusOptionBooked)
	for _, h := range []*model.Hold{fresh, stale} {
		if err := repo.Create(ctx, h); err != nil {
			t.Fatal(err)
		}
	}

	removed, err := sweeper.Sweep(ctx)
	if err != nil {
		t.Fatalf("Sweep() error: %v", err)
	}
	if removed != 1 {
		t.Fatalf("removed = %d, want 1", removed)
	}

	if _, err := repo.FindByID(ctx, fresh.ID); err != nil {
		t.Error("hold at T+59min must survive the sweep")
	}
	if _, err := repo.FindByID(ctx, stale.ID); err == nil {
		t.Error("hold at T+61min must be swept")
	}
}

func TestSweepNeverTouchesConfirmedOrBlocked(t *testing.T) {
	sweeper, repo, _ := newSweeperFixture(t)
	ctx := context.Background()
	ancient := time.Now().UTC().Add(-48 * time.Hour)

	booked := holdCreatedAt(roomOneID, holderAlice, ancient, model.StatusBooked)
	blocked := holdCreatedAt(roomTwoID, holderBob, ancient, model.StatusBlocked)
	for _, h := range []*model.Hold{booked, blocked} {
		if err := repo.Create(ctx, h); err != nil {
			t.Fatal(err)
		}
	}

	removed, err := sweeper.Sweep(ctx)
	if err != nil {
		t.Fatalf("Sweep() error: %v", err)
	}
	if removed != 0 {
		t.Errorf("removed = %d, want 0", removed)
	}
}

func TestSweepBroadcastsOnlyWhenSomethingRemoved(t *testing.T) {
	sweeper, repo, notifier := newSweeperFixture(t)
	ctx := context.Background()

	if _, err := sweeper.Sweep(ctx); err != nil {
		t.Fatal(err)
	}
	if notifier.count() != 0 {
		t.Fatalf("empty sweep must not broadcast, got %d signals", notifier.count())
	}

	stale := holdCreatedAt(roomOneID, holderAlice, time.Now().UTC().Add(-2*time.Hour), model.StatusOptionBooked)
	if err := repo.Create(ctx, stale); err != nil {
		t.Fatal(err)
	}
	if _, err := sweeper.Sweep(ctx); err != nil {
		t.Fatal(err)
	}
	if notifier.count() != 1 {
		t.Errorf("expected 1 change signal after removal, got %d", notifier.count())
	}
}
