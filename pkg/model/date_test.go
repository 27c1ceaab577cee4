package model

import (
	"testing"
	"time"
)

func TestMonthBounds(t *testing.T) {
	tests := []struct {
		name      string
		ref       time.Time
		wantFirst time.Time
		wantLast  time.Time
	}{
		{
			name:      "mid-month",
			ref:       Date(2026, time.August, 15),
			wantFirst: Date(2026, time.August, 1),
			wantLast:  Date(2026, time.August, 31),
		},
		{
			name:      "february",
			ref:       Date(2026, time.February, 10),
			wantFirst: Date(2026, time.February, 1),
			wantLast:  Date(2026, time.February, 28),
		},
		{
			name:      "leap february",
			ref:       Date(2028, time.February, 29),
			wantFirst: Date(2028, time.February, 1),
			wantLast:  Date(2028, time.February, 29),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			first, last := MonthBounds(tt.ref)
			if !first.Equal(tt.wantFirst) || !last.Equal(tt.wantLast) {
				t.Errorf("MonthBounds() = [%v, %v], want [%v, %v]", first, last, tt.wantFirst, tt.wantLast)
			}
		})
	}
}

func TestToDateDropsTimeOfDay(t *testing.T) {
	in := time.Date(2026, time.August, 15, 13, 45, 30, 123, time.UTC)
	got := ToDate(in)
	if !got.Equal(Date(2026, time.August, 15)) {
		t.Errorf("ToDate() = %v", got)
	}
	if !IsDateOnly(got) {
		t.Error("ToDate() result should be date-only")
	}
	if IsDateOnly(in) {
		t.Error("value with time-of-day should not be date-only")
	}
}

func TestHoldDays(t *testing.T) {
	tests := []struct {
		name  string
		start time.Time
		end   time.Time
		want  int
	}{
		{name: "single day", start: Date(2026, time.August, 10), end: Date(2026, time.August, 10), want: 1},
		{name: "inclusive range", start: Date(2026, time.August, 10), end: Date(2026, time.August, 15), want: 6},
		{name: "across months", start: Date(2026, time.August, 30), end: Date(2026, time.September, 2), want: 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := &Hold{StartDate: tt.start, EndDate: tt.end}
			if got := h.Days(); got != tt.want {
				t.Errorf("Days() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestHoldCovers(t *testing.T) {
	h := &Hold{
		StartDate: Date(2026, time.August, 10),
		EndDate:   Date(2026, time.August, 15),
	}

	if !h.Covers(Date(2026, time.August, 10)) || !h.Covers(Date(2026, time.August, 15)) {
		t.Error("endpoints must be covered")
	}
	if !h.Covers(Date(2026, time.August, 12)) {
		t.Error("interior day must be covered")
	}
	if h.Covers(Date(2026, time.August, 9)) || h.Covers(Date(2026, time.August, 16)) {
		t.Error("days outside the range must not be covered")
	}
}
