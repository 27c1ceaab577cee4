package service

import (
	"time"

	"guestcal/pkg/model"
)

// proposedRange computes the inclusive date range a toggle of day would
// leave the holder's hold covering. own is the holder's current
// OptionBooked hold for the room, nil when there is none. grows is false
// when the toggle removes the hold or shrinks it, which can never
// introduce a conflict.
func proposedRange(day time.Time, own *model.Hold) (start, end time.Time, grows bool) {
	if own == nil {
		return day, day, true
	}

	switch {
	case day.Equal(own.StartDate), day.Equal(own.EndDate):
		// Endpoint toggle removes the hold (or the whole hold when it
		// is a single day).
		return time.Time{}, time.Time{}, false
	case day.Before(own.StartDate):
		return day, own.EndDate, true
	case day.After(own.EndDate):
		return own.StartDate, day, true
	default:
		// Interior day shrinks the hold toward the nearer endpoint.
		return time.Time{}, time.Time{}, false
	}
}

// rangesOverlap reports whether two inclusive date ranges intersect.
// Adjacent ranges sharing an endpoint day count as overlapping: a room
// day is occupied whole, there is no checkout-morning handover.
func rangesOverlap(start1, end1, start2, end2 time.Time) bool {
	return !start1.After(end2) && !end1.Before(start2)
}

// wouldConflict reports whether toggling day for the holder would make
// their hold overlap any blocking hold. blocking must already exclude
// the holder's own OptionBooked hold.
func wouldConflict(day time.Time, own *model.Hold, blocking []*model.Hold) bool {
	start, end, grows := proposedRange(day, own)
	if !grows {
		return false
	}

	for _, h := range blocking {
		if rangesOverlap(start, end, h.StartDate, h.EndDate) {
			return true
		}
	}
	return false
}
