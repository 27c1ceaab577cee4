package model

import "time"

// RoomLock is an advisory lock serializing toggle operations on one room.
// Acquisition is an insert against a unique _id; a duplicate key error
// means another request holds the room. ExpiresAt backs a TTL index so a
// crashed holder cannot wedge the room.
type RoomLock struct {
	ID        string    `bson:"_id" json:"id"`
	ExpiresAt time.Time `bson:"expires_at" json:"expires_at"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
