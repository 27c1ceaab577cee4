package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	bookingserrors "guestcal/internal/bookings/errors"
	"guestcal/internal/bookings/repository"
	"guestcal/internal/bookings/validator"
	"guestcal/pkg/config"
	apperrors "guestcal/pkg/errors"
	"guestcal/pkg/model"
)

// Toggle outcomes. Conflict, room-not-found and locked all leave the
// stored state untouched.
const (
	ToggleApplied      = "applied"
	ToggleRemoved      = "removed"
	ToggleConflict     = "conflict"
	ToggleRoomNotFound = "room_not_found"
	ToggleLocked       = "locked"
)

// ToggleResult reports what a toggle did. Hold is the hold after the
// toggle, nil when the toggle removed it or changed nothing.
type ToggleResult struct {
	Outcome string      `json:"outcome"`
	Hold    *model.Hold `json:"hold,omitempty"`
}

type BookingService interface {
	RoomNames(ctx context.Context) ([]*model.Room, error)
	LoadMonth(ctx context.Context, month time.Time) ([]model.RoomDayState, error)
	HoldsForHolder(ctx context.Context, holderID string) ([]model.RoomDayState, error)
	ToggleDay(ctx context.Context, req *model.ToggleRequest) (*ToggleResult, error)
	ConfirmHold(ctx context.Context, holderID string) (int, error)
	QuoteForRoom(ctx context.Context, holderID, roomID string) (*model.PriceQuote, error)
	StayQuote(ctx context.Context, holderID string) (*model.StayQuote, error)
	AllHolds(ctx context.Context, limit int, offset int64) ([]*model.Hold, int64, error)
	DeleteHold(ctx context.Context, id string) error
	ChangeHoldStatus(ctx context.Context, id, status string) error
}

type bookingService struct {
	repo      repository.HoldRepository
	roomRepo  repository.RoomRepository
	lockRepo  repository.RoomLockRepository
	validator *validator.BookingValidator
	pricing   *PricingEngine
	sweeper   *ExpirationSweeper
	notifier  ChangeNotifier
	cfg       *config.Config
}

func NewBookingService(
	repo repository.HoldRepository,
	roomRepo repository.RoomRepository,
	lockRepo repository.RoomLockRepository,
	validator *validator.BookingValidator,
	pricing *PricingEngine,
	sweeper *ExpirationSweeper,
	notifier ChangeNotifier,
	cfg *config.Config,
) BookingService {
	return &bookingService{
		repo:      repo,
		roomRepo:  roomRepo,
		lockRepo:  lockRepo,
		validator: validator,
		pricing:   pricing,
		sweeper:   sweeper,
		notifier:  notifier,
		cfg:       cfg,
	}
}

func (s *bookingService) RoomNames(ctx context.Context) ([]*model.Room, error) {
	rooms, err := s.roomRepo.FindAll(ctx)
	if err != nil {
		s.cfg.Log.Error("Failed to list rooms", "error", err)
		return nil, apperrors.Internal("Failed to retrieve rooms", err)
	}
	return rooms, nil
}

func (s *bookingService) LoadMonth(ctx context.Context, month time.Time) ([]model.RoomDayState, error) {
	if err := s.sweep(ctx); err != nil {
		return nil, err
	}

	rooms, err := s.roomRepo.FindAll(ctx)
	if err != nil {
		s.cfg.Log.Error("Failed to list rooms", "error", err)
		return nil, apperrors.Internal("Failed to retrieve rooms", err)
	}

	first, last := model.MonthBounds(month)
	holds, err := s.repo.FindOverlappingRange(ctx, first, last)
	if err != nil {
		s.cfg.Log.Error("Failed to load holds for month", "month", month.Format("2006-01"), "error", err)
		return nil, apperrors.Internal("Failed to retrieve holds", err)
	}

	return ProjectMonth(month, rooms, holds), nil
}

func (s *bookingService) HoldsForHolder(ctx context.Context, holderID string) ([]model.RoomDayState, error) {
	if holderID == "" {
		return nil, apperrors.InvalidInput("Holder ID cannot be empty")
	}
	if err := s.sweep(ctx); err != nil {
		return nil, err
	}

	rooms, err := s.roomRepo.FindAll(ctx)
	if err != nil {
		s.cfg.Log.Error("Failed to list rooms", "error", err)
		return nil, apperrors.Internal("Failed to retrieve rooms", err)
	}

	holds, err := s.repo.FindByHolder(ctx, holderID)
	if err != nil {
		s.cfg.Log.Error("Failed to load holder's holds", "holder_id", holderID, "error", err)
		return nil, apperrors.Internal("Failed to retrieve holds", err)
	}

	return ProjectHolds(rooms, holds), nil
}

// ToggleDay flips one day of one room for a holder. The room is locked
// for the check-and-write sequence and the sequence itself runs inside
// a transaction, so two holders racing for the same day cannot both get
// it. Rejections (conflict, unknown room, lock busy) come back as
// outcomes, not errors, and never change stored state.
func (s *bookingService) ToggleDay(ctx context.Context, req *model.ToggleRequest) (*ToggleResult, error) {
	if err := s.validator.ValidateToggle(req); err != nil {
		s.cfg.Log.Warn("Toggle validation failed", "error", err)
		return nil, apperrors.Validation("Invalid toggle request", map[string]any{"error": err.Error()})
	}

	day, err := model.ParseDate(req.Day)
	if err != nil {
		return nil, apperrors.InvalidInput("Day must be a date in 2006-01-02 format")
	}

	if err := s.sweep(ctx); err != nil {
		return nil, err
	}

	room, err := s.roomRepo.FindByName(ctx, req.Room)
	if err != nil {
		if errors.Is(err, bookingserrors.ErrRoomNotFound) {
			return &ToggleResult{Outcome: ToggleRoomNotFound}, nil
		}
		s.cfg.Log.Error("Failed to look up room", "room", req.Room, "error", err)
		return nil, apperrors.Internal("Failed to look up room", err)
	}

	if err := s.lockRepo.Acquire(ctx, room.ID); err != nil {
		if errors.Is(err, bookingserrors.ErrRoomLocked) {
			return &ToggleResult{Outcome: ToggleLocked}, nil
		}
		return nil, apperrors.Internal("Failed to acquire room lock", err)
	}
	defer func() {
		// The request context may already be cancelled; the lock must
		// still be released or the room stays blocked until the TTL fires.
		releaseCtx, cancel := context.WithTimeout(context.Background(), s.cfg.WriteTimeout)
		defer cancel()
		if releaseErr := s.lockRepo.Release(releaseCtx, room.ID); releaseErr != nil {
			s.cfg.Log.Warn("Failed to release room lock", "room_id", room.ID, "error", releaseErr)
		}
	}()

	var result *ToggleResult
	err = s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		own, err := s.ownOptionHold(sessCtx, room.ID, req.HolderID)
		if err != nil {
			return err
		}

		blocking, err := s.repo.FindBlockingForRoom(sessCtx, room.ID, req.HolderID)
		if err != nil {
			return apperrors.Internal("Failed to load conflicting holds", err)
		}

		if wouldConflict(day, own, blocking) {
			result = &ToggleResult{Outcome: ToggleConflict}
			return nil
		}

		result, err = s.applyToggle(sessCtx, day, room.ID, req.HolderID, own)
		return err
	})
	if err != nil {
		s.cfg.Log.Error("Failed to toggle day",
			"day", req.Day,
			"room", req.Room,
			"holder_id", req.HolderID,
			"error", err,
		)
		return nil, err
	}

	if result.Outcome == ToggleApplied || result.Outcome == ToggleRemoved {
		s.notifier.StateChanged(ctx)
	}

	s.cfg.Log.Info("Day toggled",
		"day", req.Day,
		"room", req.Room,
		"holder_id", req.HolderID,
		"outcome", result.Outcome,
	)
	return result, nil
}

// applyToggle runs the toggle state machine against the holder's current
// hold. Conflicts have already been ruled out by the caller.
func (s *bookingService) applyToggle(ctx context.Context, day time.Time, roomID, holderID string, own *model.Hold) (*ToggleResult, error) {
	if own == nil {
		hold := &model.Hold{
			RoomID:    roomID,
			HolderID:  holderID,
			StartDate: day,
			EndDate:   day,
			Status:    model.StatusOptionBooked,
		}
		if err := s.repo.Create(ctx, hold); err != nil {
			return nil, apperrors.Internal("Failed to create hold", err)
		}
		return &ToggleResult{Outcome: ToggleApplied, Hold: hold}, nil
	}

	// Toggling either endpoint off cancels the whole hold. A single-day
	// hold is its own start and end, so toggling it again removes it.
	if day.Equal(own.StartDate) || day.Equal(own.EndDate) {
		if err := s.repo.Delete(ctx, own.ID); err != nil {
			return nil, apperrors.Internal("Failed to remove hold", err)
		}
		return &ToggleResult{Outcome: ToggleRemoved}, nil
	}

	start, end := own.StartDate, own.EndDate
	switch {
	case day.Before(start):
		start = day
	case day.After(end):
		end = day
	default:
		// Interior day: collapse the range toward the nearer endpoint
		// instead of splitting the hold. Ties move the start.
		if day.Sub(start) <= end.Sub(day) {
			start = day
		} else {
			end = day
		}
	}

	if err := s.repo.UpdateDates(ctx, own.ID, start, end); err != nil {
		return nil, apperrors.Internal("Failed to update hold dates", err)
	}

	updated := *own
	updated.StartDate = start
	updated.EndDate = end
	return &ToggleResult{Outcome: ToggleApplied, Hold: &updated}, nil
}

// ConfirmHold promotes every tentative hold of the holder to Booked and
// returns how many were promoted. A holder with nothing optioned is a
// no-op, not an error.
func (s *bookingService) ConfirmHold(ctx context.Context, holderID string) (int, error) {
	if err := s.validator.ValidateConfirm(&model.ConfirmRequest{HolderID: holderID}); err != nil {
		s.cfg.Log.Warn("Confirm validation failed", "error", err)
		return 0, apperrors.Validation("Invalid confirm request", map[string]any{"error": err.Error()})
	}

	if err := s.sweep(ctx); err != nil {
		return 0, err
	}

	holds, err := s.repo.FindOptionsByHolder(ctx, holderID)
	if err != nil {
		s.cfg.Log.Error("Failed to load tentative holds", "holder_id", holderID, "error", err)
		return 0, apperrors.Internal("Failed to retrieve holds", err)
	}
	if len(holds) == 0 {
		return 0, nil
	}

	err = s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		for _, hold := range holds {
			if err := s.repo.UpdateStatus(sessCtx, hold.ID, model.StatusBooked); err != nil {
				return apperrors.Internal("Failed to confirm hold", err)
			}
		}
		return nil
	})
	if err != nil {
		s.cfg.Log.Error("Failed to confirm holds", "holder_id", holderID, "error", err)
		return 0, err
	}

	s.notifier.StateChanged(ctx)
	s.cfg.Log.Info("Holds confirmed", "holder_id", holderID, "count", len(holds))
	return len(holds), nil
}

func (s *bookingService) QuoteForRoom(ctx context.Context, holderID, roomID string) (*model.PriceQuote, error) {
	if holderID == "" || roomID == "" {
		return nil, apperrors.InvalidInput("Holder ID and room ID are required")
	}

	if err := s.sweep(ctx); err != nil {
		return nil, err
	}

	hold, err := s.ownOptionHold(ctx, roomID, holderID)
	if err != nil {
		return nil, err
	}

	quote := s.pricing.Quote(roomID, hold, time.Now())
	return &quote, nil
}

func (s *bookingService) StayQuote(ctx context.Context, holderID string) (*model.StayQuote, error) {
	if holderID == "" {
		return nil, apperrors.InvalidInput("Holder ID cannot be empty")
	}

	if err := s.sweep(ctx); err != nil {
		return nil, err
	}

	holds, err := s.repo.FindOptionsByHolder(ctx, holderID)
	if err != nil {
		s.cfg.Log.Error("Failed to load tentative holds", "holder_id", holderID, "error", err)
		return nil, apperrors.Internal("Failed to retrieve holds", err)
	}

	stay := s.pricing.QuoteStay(holds, time.Now())
	return &stay, nil
}

func (s *bookingService) AllHolds(ctx context.Context, limit int, offset int64) ([]*model.Hold, int64, error) {
	var count int64
	var holds []*model.Hold
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		count, errCount = s.repo.Count(ctx)
		if errCount != nil {
			s.cfg.Log.Error("Failed to count holds", "error", errCount)
			errCount = apperrors.Internal("Failed to count holds", errCount)
		}
	}()

	go func() {
		defer wg.Done()
		holds, errFind = s.repo.FindAll(ctx, limit, offset)
		if errFind != nil {
			s.cfg.Log.Error("Failed to list holds", "error", errFind)
			errFind = apperrors.Internal("Failed to retrieve holds", errFind)
		}
	}()

	wg.Wait()
	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}

	return holds, count, nil
}

func (s *bookingService) DeleteHold(ctx context.Context, id string) error {
	if id == "" {
		return apperrors.InvalidInput("Hold ID cannot be empty")
	}

	err := s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		if err := s.repo.Delete(sessCtx, id); err != nil {
			if errors.Is(err, bookingserrors.ErrHoldNotFound) {
				return apperrors.NotFoundWithID("Hold", id)
			}
			if errors.Is(err, bookingserrors.ErrInvalidID) {
				return apperrors.InvalidInput("Invalid hold ID format")
			}
			return apperrors.Internal("Failed to delete hold", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.notifier.StateChanged(ctx)
	s.cfg.Log.Info("Hold deleted", "id", id)
	return nil
}

func (s *bookingService) ChangeHoldStatus(ctx context.Context, id, status string) error {
	if id == "" {
		return apperrors.InvalidInput("Hold ID cannot be empty")
	}
	if err := s.validator.ValidateStatusChange(&model.StatusChangeRequest{Status: status}); err != nil {
		s.cfg.Log.Warn("Status change validation failed", "id", id, "error", err)
		return apperrors.Validation("Invalid status", map[string]any{"error": err.Error()})
	}

	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		if errors.Is(err, bookingserrors.ErrHoldNotFound) {
			return apperrors.NotFoundWithID("Hold", id)
		}
		if errors.Is(err, bookingserrors.ErrInvalidID) {
			return apperrors.InvalidInput("Invalid hold ID format")
		}
		s.cfg.Log.Error("Failed to change hold status", "id", id, "status", status, "error", err)
		return apperrors.Internal("Failed to change hold status", err)
	}

	s.notifier.StateChanged(ctx)
	s.cfg.Log.Info("Hold status changed", "id", id, "status", status)
	return nil
}

// --- Helpers ---

func (s *bookingService) sweep(ctx context.Context) error {
	if _, err := s.sweeper.Sweep(ctx); err != nil {
		s.cfg.Log.Error("Lazy sweep failed", "error", err)
		return apperrors.Internal("Failed to expire stale holds", err)
	}
	return nil
}

// ownOptionHold returns the holder's tentative hold on the room, nil
// when there is none.
func (s *bookingService) ownOptionHold(ctx context.Context, roomID, holderID string) (*model.Hold, error) {
	hold, err := s.repo.FindOptionForRoomAndHolder(ctx, roomID, holderID)
	if err != nil {
		if errors.Is(err, bookingserrors.ErrHoldNotFound) {
			return nil, nil
		}
		s.cfg.Log.Error("Failed to load tentative hold", "room_id", roomID, "holder_id", holderID, "error", err)
		return nil, apperrors.Internal("Failed to retrieve hold", err)
	}
	return hold, nil
}
