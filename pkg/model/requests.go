package model

// ToggleRequest asks to flip one day of one room for a holder. Day uses
// the date-only wire format; Room is the room's display name, matching the
// calendar the visitor sees.
type ToggleRequest struct {
	Day      string `json:"day" validate:"required,datetime=2006-01-02"`
	Room     string `json:"room" validate:"required,min=1,max=50"`
	HolderID string `json:"holder_id" validate:"required,uuid"`
}

// ConfirmRequest promotes every OptionBooked hold of a holder to Booked.
type ConfirmRequest struct {
	HolderID string `json:"holder_id" validate:"required,uuid"`
}

// StatusChangeRequest sets a hold's status directly (administrative use,
// e.g. blocking a room for maintenance).
type StatusChangeRequest struct {
	Status string `json:"status" validate:"required,oneof=OptionBooked Booked Blocked"`
}
