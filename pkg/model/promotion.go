package model

import "time"

type Promotion struct {
	ID          string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	Title       string    `json:"title" bson:"title" validate:"required,min=2,max=200"`
	Description string    `json:"description" bson:"description" validate:"max=2000"`
	Discount    int       `json:"discount" bson:"discount" validate:"min=0,max=100"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" bson:"updated_at"`
}

type PromotionUpdate struct {
	Title       string  `json:"title,omitempty" validate:"omitempty,min=2,max=200"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=2000"`
	Discount    *int    `json:"discount,omitempty" validate:"omitempty,min=0,max=100"`
}
