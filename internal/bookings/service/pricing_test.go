package service

import (
	"testing"
	"time"

	"guestcal/pkg/config"
	"guestcal/pkg/model"
)

func testPricing() *PricingEngine {
	return NewPricingEngine(&config.Config{
		SeasonPrice:    100.0,
		OffSeasonPrice: 80.0,
	})
}

func TestDiscountRate(t *testing.T) {
	pricing := testPricing()

	tests := []struct {
		days int
		want float64
	}{
		{days: 0, want: 0},
		{days: 1, want: 0},
		{days: 6, want: 0},
		{days: 7, want: 0.10},
		{days: 13, want: 0.10},
		{days: 14, want: 0.20},
		{days: 30, want: 0.20},
	}

	for _, tt := range tests {
		if got := pricing.DiscountRate(tt.days); got != tt.want {
			t.Errorf("DiscountRate(%d) = %v, want %v", tt.days, got, tt.want)
		}
	}
}

func TestSeasonRate(t *testing.T) {
	pricing := testPricing()

	tests := []struct {
		name string
		date time.Time
		want float64
	}{
		{name: "first day of season", date: model.Date(2026, time.June, 1), want: 100.0},
		{name: "last day of season", date: model.Date(2026, time.September, 30), want: 100.0},
		{name: "mid season", date: model.Date(2026, time.July, 15), want: 100.0},
		{name: "day before season", date: model.Date(2026, time.May, 31), want: 80.0},
		{name: "day after season", date: model.Date(2026, time.October, 1), want: 80.0},
		{name: "winter", date: model.Date(2026, time.January, 10), want: 80.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := pricing.SeasonRate(tt.date); got != tt.want {
				t.Errorf("SeasonRate(%v) = %v, want %v", tt.date, got, tt.want)
			}
		})
	}
}

func TestQuoteElevenDaySeasonStay(t *testing.T) {
	pricing := testPricing()

	hold := &model.Hold{
		RoomID:    "room-1",
		HolderID:  "holder-1",
		StartDate: model.Date(2026, time.July, 10),
		EndDate:   model.Date(2026, time.July, 20),
		Status:    model.StatusOptionBooked,
	}

	quote := pricing.Quote("room-1", hold, time.Now())

	if quote.Days != 11 {
		t.Errorf("expected 11 days, got %d", quote.Days)
	}
	if quote.DailyRate != 100.0 {
		t.Errorf("expected daily rate 100, got %v", quote.DailyRate)
	}
	// The total stays pre-discount; the discount rides alongside.
	if quote.TotalPrice != 1100.0 {
		t.Errorf("expected total 1100, got %v", quote.TotalPrice)
	}
	if quote.Discount != 110.0 {
		t.Errorf("expected discount 110, got %v", quote.Discount)
	}
}

func TestQuoteRateAnchoredOnStartDate(t *testing.T) {
	pricing := testPricing()

	// Stay starts off-season and crosses into the season; the whole
	// stay bills at the first day's rate.
	hold := &model.Hold{
		StartDate: model.Date(2026, time.May, 30),
		EndDate:   model.Date(2026, time.June, 3),
		Status:    model.StatusOptionBooked,
	}

	quote := pricing.Quote("room-1", hold, time.Now())

	if quote.DailyRate != 80.0 {
		t.Errorf("expected off-season rate 80, got %v", quote.DailyRate)
	}
	if quote.TotalPrice != 400.0 {
		t.Errorf("expected total 400, got %v", quote.TotalPrice)
	}
	if quote.Discount != 0.0 {
		t.Errorf("expected no discount for 5 days, got %v", quote.Discount)
	}
}

func TestQuoteNoHold(t *testing.T) {
	pricing := testPricing()

	now := model.Date(2026, time.December, 24)
	quote := pricing.Quote("room-1", nil, now)

	if quote.Days != 0 {
		t.Errorf("expected 0 days, got %d", quote.Days)
	}
	if quote.DailyRate != 80.0 {
		t.Errorf("expected today's off-season rate 80, got %v", quote.DailyRate)
	}
	if quote.TotalPrice != 0 || quote.Discount != 0 {
		t.Errorf("expected zero total and discount, got %v / %v", quote.TotalPrice, quote.Discount)
	}
}

func TestQuoteStay(t *testing.T) {
	pricing := testPricing()

	holds := []*model.Hold{
		{
			RoomID:    "room-1",
			StartDate: model.Date(2026, time.July, 1),
			EndDate:   model.Date(2026, time.July, 14),
			Status:    model.StatusOptionBooked,
		},
		{
			RoomID:    "room-2",
			StartDate: model.Date(2026, time.February, 1),
			EndDate:   model.Date(2026, time.February, 3),
			Status:    model.StatusOptionBooked,
		},
	}

	stay := pricing.QuoteStay(holds, time.Now())

	if len(stay.Rooms) != 2 {
		t.Fatalf("expected 2 room quotes, got %d", len(stay.Rooms))
	}
	// room-1: 14 days at 100 = 1400, discount 1400 * 0.20 = 280
	// room-2: 3 days at 80 = 240, no discount
	if stay.TotalPrice != 1640.0 {
		t.Errorf("expected total 1640, got %v", stay.TotalPrice)
	}
	if stay.TotalDiscount != 280.0 {
		t.Errorf("expected total discount 280, got %v", stay.TotalDiscount)
	}
}
