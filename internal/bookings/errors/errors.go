package errors

import "errors"

var (
	ErrHoldNotFound = errors.New("hold not found")

	ErrRoomNotFound = errors.New("room not found")

	ErrInvalidID = errors.New("invalid hold ID format")

	ErrRoomLocked = errors.New("room is locked by another request")
)
