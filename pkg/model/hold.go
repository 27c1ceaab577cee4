package model

import (
	"time"
)

// Hold statuses. Available never appears on a persisted hold; it is the
// default fill value of the calendar projection.
const (
	StatusAvailable    = "Available"
	StatusOptionBooked = "OptionBooked"
	StatusBooked       = "Booked"
	StatusBlocked      = "Blocked"
)

// Hold is a holder's claim on a contiguous, inclusive date range for one
// room. Dates are date-only (UTC midnight); CreatedAt is used only for
// expiring stale OptionBooked holds.
//
// For a given room, Booked and Blocked holds are pairwise non-overlapping.
// An OptionBooked hold may overlap only the same holder's own holds.
type Hold struct {
	ID        string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	RoomID    string    `json:"room_id" bson:"room_id" validate:"required,uuid"`
	HolderID  string    `json:"holder_id" bson:"holder_id" validate:"required,uuid"`
	StartDate time.Time `json:"start_date" bson:"start_date" validate:"required,date_only"`
	EndDate   time.Time `json:"end_date" bson:"end_date" validate:"required,date_only,gtefield=StartDate"`
	Status    string    `json:"status" bson:"status" validate:"required,oneof=OptionBooked Booked Blocked"`
	CreatedAt time.Time `json:"created_at" bson:"created_at" validate:"omitempty"`
}

// Days returns the length of the hold's inclusive date range.
func (h *Hold) Days() int {
	return int(h.EndDate.Sub(h.StartDate).Hours()/24) + 1
}

// Covers reports whether day falls inside the hold's inclusive range.
func (h *Hold) Covers(day time.Time) bool {
	return !day.Before(h.StartDate) && !day.After(h.EndDate)
}
