package model

import "time"

// Wishlist an account's saved interest in an event
type Wishlist struct {
	ID        int       `json:"id" db:"id"`
	CreatedBy int       `json:"-" db:"created_by"`
	EventID   int       `json:"event" db:"event_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

type CreateWishlistRequest struct {
	Event int `json:"event" binding:"required"`
}
