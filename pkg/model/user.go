package model

import "time"

type User struct {
	ID           string    `json:"id,omitempty" bson:"_id,omitempty"`
	Email        string    `json:"email" bson:"email" validate:"required,email,max=254"`
	Name         string    `json:"name" bson:"name" validate:"required,min=2,max=100"`
	Phone        string    `json:"phone,omitempty" bson:"phone,omitempty" validate:"omitempty,e164"`
	Role         string    `json:"role" bson:"role" validate:"required,role"`
	Approved     bool      `json:"approved" bson:"approved"`
	PasswordHash string    `json:"-" bson:"password_hash"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
}

type SignupRequest struct {
	Email    string `json:"email" validate:"required,email,max=254"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Phone    string `json:"phone,omitempty" validate:"omitempty,e164"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	User      *User     `json:"user"`
}

type RoleUpdate struct {
	Role string `json:"role" validate:"required,role"`
}

// Agent is the public projection of an agent account.
type Agent struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`
}
