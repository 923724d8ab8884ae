package model

import "time"

type Notification struct {
	ID            string    `json:"id,omitempty" bson:"_id,omitempty"`
	UserID        string    `json:"user_id" bson:"user_id"`
	EventID       string    `json:"event_id" bson:"event_id"`
	Kind          string    `json:"kind" bson:"kind"`
	Message       string    `json:"message" bson:"message"`
	AppointmentID string    `json:"appointment_id" bson:"appointment_id"`
	Date          string    `json:"date" bson:"date"`
	Time          string    `json:"time" bson:"time"`
	CreatedAt     time.Time `json:"created_at" bson:"created_at"`
}
