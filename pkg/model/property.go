package model

import "time"

type PropertyStatus string

const (
	PropertyAvailable PropertyStatus = "available"
	PropertyBooked    PropertyStatus = "booked"
	PropertyOffer     PropertyStatus = "offer"
	PropertySold      PropertyStatus = "sold"
)

func PropertyStatuses() []PropertyStatus {
	return []PropertyStatus{PropertyAvailable, PropertyBooked, PropertyOffer, PropertySold}
}

type Property struct {
	ID          string         `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	Title       string         `json:"title" bson:"title" validate:"required,min=2,max=200"`
	Description string         `json:"description" bson:"description" validate:"max=5000"`
	Address     string         `json:"address" bson:"address" validate:"max=500"`
	Price       int64          `json:"price" bson:"price" validate:"min=0"`
	Area        int64          `json:"area" bson:"area" validate:"min=0"`
	Size        int            `json:"size" bson:"size" validate:"min=1,max=50"`
	Status      PropertyStatus `json:"status" bson:"status" validate:"required,oneof=available booked offer sold"`
	AgentID     string         `json:"agent_id" bson:"agent_id" validate:"required,mongodb"`
	AgentName   string         `json:"agent_name" bson:"agent_name" validate:"max=200"`
	Images      []string       `json:"images" bson:"images" validate:"omitempty,dive,url"`
	CreatedAt   time.Time      `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at" bson:"updated_at"`
}

type PropertyUpdate struct {
	Title       string          `json:"title,omitempty" validate:"omitempty,min=2,max=200"`
	Description *string         `json:"description,omitempty" validate:"omitempty,max=5000"`
	Address     *string         `json:"address,omitempty" validate:"omitempty,max=500"`
	Price       *int64          `json:"price,omitempty" validate:"omitempty,min=0"`
	Area        *int64          `json:"area,omitempty" validate:"omitempty,min=0"`
	Size        *int            `json:"size,omitempty" validate:"omitempty,min=1,max=50"`
	Status      *PropertyStatus `json:"status,omitempty" validate:"omitempty,oneof=available booked offer sold"`
	AgentID     string          `json:"agent_id,omitempty" validate:"omitempty,mongodb"`
	Images      *[]string       `json:"images,omitempty" validate:"omitempty,dive,url"`
}

// PropertyFilter narrows a property search. Nil bounds are open.
type PropertyFilter struct {
	Query    string
	MinPrice *int64
	MaxPrice *int64
	MinArea  *int64
	MaxArea  *int64
	// Sizes lists exact bedroom counts. SizeAtLeast, when set, also matches
	// any property with at least that many bedrooms.
	Sizes       []int
	SizeAtLeast *int
	Status      PropertyStatus
}
