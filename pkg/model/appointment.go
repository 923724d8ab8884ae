package model

type Appointment struct {
	ID            string `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	PropertyID    string `json:"property_id" bson:"property_id" validate:"required,mongodb"`
	PropertyTitle string `json:"property_title" bson:"property_title" validate:"max=200"`
	AgentID       string `json:"agent_id" bson:"agent_id" validate:"required"`
	AgentName     string `json:"agent_name" bson:"agent_name" validate:"max=200"`
	ClientID      string `json:"client_id" bson:"client_id" validate:"required"`
	ClientName    string `json:"client_name" bson:"client_name" validate:"max=200"`
	Date          string `json:"date" bson:"date" validate:"required,datetime=2006-01-02"`
	Time          string `json:"time" bson:"time" validate:"required,slot_label"`
	// Timestamp is the creation instant in milliseconds since the Unix epoch.
	Timestamp int64 `json:"timestamp" bson:"timestamp"`
}

// Involves reports whether userID is the client or the agent of the appointment.
func (a *Appointment) Involves(userID string) bool {
	return userID != "" && (a.ClientID == userID || a.AgentID == userID)
}

type AppointmentRequest struct {
	PropertyID string `json:"property_id" validate:"required,mongodb"`
	Date       string `json:"date" validate:"required,datetime=2006-01-02"`
	Time       string `json:"time" validate:"required,slot_label"`
}

type Availability struct {
	Date      string   `json:"date"`
	AgentID   string   `json:"agent_id,omitempty"`
	Slots     []string `json:"slots"`
	Exhausted bool     `json:"exhausted"`
}

type AppointmentOverview struct {
	Upcoming []*Appointment `json:"upcoming"`
	Past     []*Appointment `json:"past"`
}
