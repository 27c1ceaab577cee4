package service

import (
	"time"

	"guestcal/pkg/config"
	"guestcal/pkg/model"
)

// High season runs June through September.
const (
	seasonStartMonth = time.June
	seasonEndMonth   = time.September

	longStayDays     = 13
	longStayRate     = 0.20
	extendedStayDays = 6
	extendedStayRate = 0.10
)

// PricingEngine prices stays from the nightly rates in configuration.
// It is stateless; quotes are computed fresh from the holds passed in.
type PricingEngine struct {
	seasonPrice    float64
	offSeasonPrice float64
}

func NewPricingEngine(cfg *config.Config) *PricingEngine {
	return &PricingEngine{
		seasonPrice:    cfg.SeasonPrice,
		offSeasonPrice: cfg.OffSeasonPrice,
	}
}

// SeasonRate returns the daily rate for a stay starting on date. The
// whole stay is priced at the rate of its first day, even when it
// crosses a season boundary.
func (p *PricingEngine) SeasonRate(date time.Time) float64 {
	if date.Month() >= seasonStartMonth && date.Month() <= seasonEndMonth {
		return p.seasonPrice
	}
	return p.offSeasonPrice
}

// DiscountRate returns the discount fraction for a stay of the given
// length. Thresholds are exclusive: a 7th day earns the first tier, a
// 14th the second.
func (p *PricingEngine) DiscountRate(days int) float64 {
	switch {
	case days > longStayDays:
		return longStayRate
	case days > extendedStayDays:
		return extendedStayRate
	default:
		return 0
	}
}

// Quote prices the holder's tentative hold on one room. TotalPrice is
// the pre-discount amount; Discount is the reduction in currency,
// reported alongside but never subtracted. That asymmetry is part of
// the billing contract and must not be "fixed".
//
// A nil hold quotes an empty stay: zero days, today's daily rate.
func (p *PricingEngine) Quote(roomID string, hold *model.Hold, now time.Time) model.PriceQuote {
	days := 0
	rateDate := model.ToDate(now)
	if hold != nil {
		days = hold.Days()
		rateDate = hold.StartDate
	}

	rate := p.SeasonRate(rateDate)
	total := float64(days) * rate
	discount := rate * float64(days) * p.DiscountRate(days)

	return model.PriceQuote{
		RoomID:     roomID,
		Days:       days,
		DailyRate:  rate,
		TotalPrice: total,
		Discount:   discount,
	}
}

// QuoteStay aggregates per-room quotes over every tentative hold the
// holder has. Totals keep the same pre-discount convention as Quote.
func (p *PricingEngine) QuoteStay(holds []*model.Hold, now time.Time) model.StayQuote {
	stay := model.StayQuote{Rooms: []model.PriceQuote{}}
	for _, hold := range holds {
		quote := p.Quote(hold.RoomID, hold, now)
		stay.TotalPrice += quote.TotalPrice
		stay.TotalDiscount += quote.Discount
		stay.Rooms = append(stay.Rooms, quote)
	}
	return stay
}
