package model

import "time"

// AppointmentLock is an advisory lock serializing admission for one date.
// Mongo's TTL monitor removes it after ExpiresAt if the holder never released it.
type AppointmentLock struct {
	ID        string    `bson:"_id" json:"id"`
	Owner     string    `bson:"owner" json:"owner"`
	ExpiresAt time.Time `bson:"expires_at" json:"expires_at"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
