package validator

import (
	"testing"
	"time"

	"guestcal/pkg/logger"
	"guestcal/pkg/model"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Config{
		Level:   logger.LevelError,
		Format:  logger.FormatJSON,
		Service: "test",
	})
}

func TestValidateToggle(t *testing.T) {
	validator := NewBookingValidator(testLogger())

	tests := []struct {
		name      string
		req       *model.ToggleRequest
		wantError bool
	}{
		{
			name: "valid request",
			req: &model.ToggleRequest{
				Day:      "2026-08-14",
				Room:     "1eKamer",
				HolderID: "a7f4b7f0-1a2b-4c3d-8e9f-0a1b2c3d4e5f",
			},
			wantError: false,
		},
		{
			name: "missing day",
			req: &model.ToggleRequest{
				Room:     "1eKamer",
				HolderID: "a7f4b7f0-1a2b-4c3d-8e9f-0a1b2c3d4e5f",
			},
			wantError: true,
		},
		{
			name: "day with time component",
			req: &model.ToggleRequest{
				Day:      "2026-08-14T10:30:00Z",
				Room:     "1eKamer",
				HolderID: "a7f4b7f0-1a2b-4c3d-8e9f-0a1b2c3d4e5f",
			},
			wantError: true,
		},
		{
			name: "not a date",
			req: &model.ToggleRequest{
				Day:      "tomorrow",
				Room:     "1eKamer",
				HolderID: "a7f4b7f0-1a2b-4c3d-8e9f-0a1b2c3d4e5f",
			},
			wantError: true,
		},
		{
			name: "missing room",
			req: &model.ToggleRequest{
				Day:      "2026-08-14",
				HolderID: "a7f4b7f0-1a2b-4c3d-8e9f-0a1b2c3d4e5f",
			},
			wantError: true,
		},
		{
			name: "holder id not a uuid",
			req: &model.ToggleRequest{
				Day:      "2026-08-14",
				Room:     "1eKamer",
				HolderID: "visitor-42",
			},
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateToggle(tt.req)
			if (err != nil) != tt.wantError {
				t.Errorf("ValidateToggle() error = %v, wantError %v", err, tt.wantError)
			}
		})
	}
}

func TestValidateConfirm(t *testing.T) {
	validator := NewBookingValidator(testLogger())

	tests := []struct {
		name      string
		req       *model.ConfirmRequest
		wantError bool
	}{
		{
			name:      "valid holder",
			req:       &model.ConfirmRequest{HolderID: "a7f4b7f0-1a2b-4c3d-8e9f-0a1b2c3d4e5f"},
			wantError: false,
		},
		{
			name:      "missing holder",
			req:       &model.ConfirmRequest{},
			wantError: true,
		},
		{
			name:      "invalid holder",
			req:       &model.ConfirmRequest{HolderID: "not-a-uuid"},
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateConfirm(tt.req)
			if (err != nil) != tt.wantError {
				t.Errorf("ValidateConfirm() error = %v, wantError %v", err, tt.wantError)
			}
		})
	}
}

func TestValidateStatusChange(t *testing.T) {
	validator := NewBookingValidator(testLogger())

	tests := []struct {
		name      string
		status    string
		wantError bool
	}{
		{name: "option booked", status: model.StatusOptionBooked, wantError: false},
		{name: "booked", status: model.StatusBooked, wantError: false},
		{name: "blocked", status: model.StatusBlocked, wantError: false},
		{name: "available is not a persisted status", status: model.StatusAvailable, wantError: true},
		{name: "unknown status", status: "Pending", wantError: true},
		{name: "empty status", status: "", wantError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateStatusChange(&model.StatusChangeRequest{Status: tt.status})
			if (err != nil) != tt.wantError {
				t.Errorf("ValidateStatusChange() error = %v, wantError %v", err, tt.wantError)
			}
		})
	}
}

func TestValidateHold(t *testing.T) {
	validator := NewBookingValidator(testLogger())

	roomID := "7b9a4c1e-2d3f-4a5b-8c6d-9e0f1a2b3c4d"
	holderID := "a7f4b7f0-1a2b-4c3d-8e9f-0a1b2c3d4e5f"
	start := model.Date(2026, time.August, 10)
	end := model.Date(2026, time.August, 14)

	tests := []struct {
		name      string
		hold      *model.Hold
		wantError bool
	}{
		{
			name: "valid hold",
			hold: &model.Hold{
				RoomID:    roomID,
				HolderID:  holderID,
				StartDate: start,
				EndDate:   end,
				Status:    model.StatusOptionBooked,
			},
			wantError: false,
		},
		{
			name: "single day hold",
			hold: &model.Hold{
				RoomID:    roomID,
				HolderID:  holderID,
				StartDate: start,
				EndDate:   start,
				Status:    model.StatusOptionBooked,
			},
			wantError: false,
		},
		{
			name: "end before start",
			hold: &model.Hold{
				RoomID:    roomID,
				HolderID:  holderID,
				StartDate: end,
				EndDate:   start,
				Status:    model.StatusOptionBooked,
			},
			wantError: true,
		},
		{
			name: "start date carries a time component",
			hold: &model.Hold{
				RoomID:    roomID,
				HolderID:  holderID,
				StartDate: start.Add(6 * time.Hour),
				EndDate:   end,
				Status:    model.StatusOptionBooked,
			},
			wantError: true,
		},
		{
			name: "missing room",
			hold: &model.Hold{
				HolderID:  holderID,
				StartDate: start,
				EndDate:   end,
				Status:    model.StatusOptionBooked,
			},
			wantError: true,
		},
		{
			name: "available is not storable",
			hold: &model.Hold{
				RoomID:    roomID,
				HolderID:  holderID,
				StartDate: start,
				EndDate:   end,
				Status:    model.StatusAvailable,
			},
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateHold(tt.hold)
			if (err != nil) != tt.wantError {
				t.Errorf("ValidateHold() error = %v, wantError %v", err, tt.wantError)
			}
		})
	}
}
