package model

import (
	"time"
)

const (
	StatusPending  = "pending"
	StatusApproved = "approved"
)

// Booking is the persisted representation of one consultation request.
// All requester-supplied fields are immutable once stored; the only
// mutation the lifecycle allows is the pending -> approved transition,
// which sets ApprovedAt exactly once.
type Booking struct {
	ID         string     `json:"id" bson:"_id"`
	Name       string     `json:"name" bson:"name"`
	Email      string     `json:"email" bson:"email"`
	Date       string     `json:"date" bson:"date"`
	Time       string     `json:"time" bson:"time"`
	Duration   int        `json:"duration" bson:"duration"`
	Reason     string     `json:"reason" bson:"reason"`
	Business   string     `json:"business,omitempty" bson:"business,omitempty"`
	Notes      string     `json:"notes,omitempty" bson:"notes,omitempty"`
	Status     string     `json:"status" bson:"status"`
	CreatedAt  time.Time  `json:"createdAt" bson:"created_at"`
	ApprovedAt *time.Time `json:"approvedAt,omitempty" bson:"approved_at,omitempty"`
}

func (b *Booking) Approved() bool {
	return b.Status == StatusApproved
}

// BookingRequest is the intake payload submitted by the web form.
// Field order matters: validation reports the first missing field.
type BookingRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required"`
	Date     string `json:"date" validate:"required"`
	Time     string `json:"time" validate:"required"`
	Duration int    `json:"duration" validate:"required,min=1"`
	Reason   string `json:"reason" validate:"required"`
	Business string `json:"business,omitempty" validate:"omitempty,max=200"`
	Notes    string `json:"notes,omitempty" validate:"omitempty,max=2000"`
}
