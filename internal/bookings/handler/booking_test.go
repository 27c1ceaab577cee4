package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/julienschmidt/httprouter"

	"guestcal/internal/bookings/service"
	apperrors "guestcal/pkg/errors"
	"guestcal/pkg/logger"
	"guestcal/pkg/model"
)

// Mock service for testing
type mockBookingService struct {
	toggleFunc    func(ctx context.Context, req *model.ToggleRequest) (*service.ToggleResult, error)
	loadMonthFunc func(ctx context.Context, month time.Time) ([]model.RoomDayState, error)
	deleteFunc    func(ctx context.Context, id string) error
	quoteFunc     func(ctx context.Context, holderID, roomID string) (*model.PriceQuote, error)
}

func (m *mockBookingService) RoomNames(ctx context.Context) ([]*model.Room, error) {
	return []*model.Room{{ID: "room-1", Name: "1eKamer"}}, nil
}

func (m *mockBookingService) LoadMonth(ctx context.Context, month time.Time) ([]model.RoomDayState, error) {
	if m.loadMonthFunc != nil {
		return m.loadMonthFunc(ctx, month)
	}
	return []model.RoomDayState{}, nil
}

func (m *mockBookingService) HoldsForHolder(ctx context.Context, holderID string) ([]model.RoomDayState, error) {
	return []model.RoomDayState{}, nil
}

func (m *mockBookingService) ToggleDay(ctx context.Context, req *model.ToggleRequest) (*service.ToggleResult, error) {
	if m.toggleFunc != nil {
		return m.toggleFunc(ctx, req)
	}
	return &service.ToggleResult{Outcome: service.ToggleApplied}, nil
}

func (m *mockBookingService) ConfirmHold(ctx context.Context, holderID string) (int, error) {
	return 0, nil
}

func (m *mockBookingService) QuoteForRoom(ctx context.Context, holderID, roomID string) (*model.PriceQuote, error) {
	if m.quoteFunc != nil {
		return m.quoteFunc(ctx, holderID, roomID)
	}
	return &model.PriceQuote{}, nil
}

func (m *mockBookingService) StayQuote(ctx context.Context, holderID string) (*model.StayQuote, error) {
	return &model.StayQuote{}, nil
}

func (m *mockBookingService) AllHolds(ctx context.Context, limit int, offset int64) ([]*model.Hold, int64, error) {
	return []*model.Hold{}, 0, nil
}

func (m *mockBookingService) DeleteHold(ctx context.Context, id string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return nil
}

func (m *mockBookingService) ChangeHoldStatus(ctx context.Context, id, status string) error {
	return nil
}

func newTestRouter(svc service.BookingService) *httprouter.Router {
	log := logger.New(logger.Config{
		Level:   logger.LevelError,
		Format:  logger.FormatJSON,
		Service: "test",
	})
	router := httprouter.New()
	NewBookingHandler(svc, log).RegisterRoutes(router)
	return router
}

func TestToggleOutcomeStatusMapping(t *testing.T) {
	tests := []struct {
		outcome    string
		wantStatus int
	}{
		{outcome: service.ToggleApplied, wantStatus: http.StatusOK},
		{outcome: service.ToggleRemoved, wantStatus: http.StatusOK},
		{outcome: service.ToggleConflict, wantStatus: http.StatusConflict},
		{outcome: service.ToggleLocked, wantStatus: http.StatusConflict},
		{outcome: service.ToggleRoomNotFound, wantStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.outcome, func(t *testing.T) {
			router := newTestRouter(&mockBookingService{
				toggleFunc: func(ctx context.Context, req *model.ToggleRequest) (*service.ToggleResult, error) {
					return &service.ToggleResult{Outcome: tt.outcome}, nil
				},
			})

			body := `{"day":"2026-08-10","room":"1eKamer","holder_id":"a7f4b7f0-1a2b-4c3d-8e9f-0a1b2c3d4e5f"}`
			req := httptest.NewRequest(http.MethodPost, "/api/v1/holds/toggle", strings.NewReader(body))
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}

			var resp struct {
				Data service.ToggleResult `json:"data"`
			}
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("failed to decode response: %v", err)
			}
			if resp.Data.Outcome != tt.outcome {
				t.Errorf("outcome in body = %s, want %s", resp.Data.Outcome, tt.outcome)
			}
		})
	}
}

func TestToggleInvalidBody(t *testing.T) {
	router := newTestRouter(&mockBookingService{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/holds/toggle", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestToggleValidationErrorStatus(t *testing.T) {
	router := newTestRouter(&mockBookingService{
		toggleFunc: func(ctx context.Context, req *model.ToggleRequest) (*service.ToggleResult, error) {
			return nil, apperrors.Validation("Invalid toggle request", nil)
		},
	})

	body := `{"day":"","room":"","holder_id":""}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/holds/toggle", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("status = %d, want 422", rec.Code)
	}
}

func TestGetCalendarInvalidMonth(t *testing.T) {
	router := newTestRouter(&mockBookingService{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/calendar?month=August", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestGetCalendarPassesMonth(t *testing.T) {
	var gotMonth time.Time
	router := newTestRouter(&mockBookingService{
		loadMonthFunc: func(ctx context.Context, month time.Time) ([]model.RoomDayState, error) {
			gotMonth = month
			return []model.RoomDayState{}, nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/calendar?month=2026-08", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if gotMonth.Year() != 2026 || gotMonth.Month() != time.August {
		t.Errorf("month passed to service = %v, want 2026-08", gotMonth)
	}
}

func TestDeleteHoldNotFound(t *testing.T) {
	router := newTestRouter(&mockBookingService{
		deleteFunc: func(ctx context.Context, id string) error {
			return apperrors.NotFoundWithID("Hold", id)
		},
	})

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/holds/id/abc123", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestDeleteHoldNoContent(t *testing.T) {
	router := newTestRouter(&mockBookingService{})

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/holds/id/abc123", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Errorf("status = %d, want 204", rec.Code)
	}
}
