package model

import "time"

// RoomDayState is one cell of the availability grid: the state of a single
// room on a single day. It is computed fresh per query and never persisted.
// HolderID is empty for Available cells.
type RoomDayState struct {
	Date     time.Time `json:"date"`
	RoomID   string    `json:"room_id"`
	RoomName string    `json:"room_name"`
	Status   string    `json:"status"`
	HolderID string    `json:"holder_id,omitempty"`
}

// PriceQuote is the price breakdown for one room of a holder's stay.
// TotalPrice is the pre-discount amount; Discount is reported alongside it
// and deliberately not subtracted, matching the billing rules this service
// replaced.
type PriceQuote struct {
	RoomID     string  `json:"room_id"`
	Days       int     `json:"days"`
	DailyRate  float64 `json:"daily_rate"`
	TotalPrice float64 `json:"total_price"`
	Discount   float64 `json:"discount"`
}

// StayQuote aggregates the per-room quotes of everything a holder has
// currently optioned.
type StayQuote struct {
	TotalPrice    float64      `json:"total_price"`
	TotalDiscount float64      `json:"total_discount"`
	Rooms         []PriceQuote `json:"rooms"`
}
