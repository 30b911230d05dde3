package model

import (
	"time"
)

type TicketStatus string

const (
	TicketStatusValid     TicketStatus = "valid"
	TicketStatusCheckedIn TicketStatus = "checked_in"
	TicketStatusArchived  TicketStatus = "archived"
)

// Ticket purchase record, one row per admitted person
type Ticket struct {
	ID           int       `json:"id" db:"id"`
	EventID      int       `json:"event" db:"event_id"`
	TicketTypeID int       `json:"ticket_type" db:"ticket_type_id"`
	CustomerID   int       `json:"customer" db:"customer_id"`
	Price        float64   `json:"price" db:"price"`
	IsActive     bool      `json:"is_active" db:"is_active"`
	Archived     bool      `json:"archive" db:"archived"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// Status derives the lifecycle state from the flags
func (t *Ticket) Status() TicketStatus {
	switch {
	case t.Archived:
		return TicketStatusArchived
	case !t.IsActive:
		return TicketStatusCheckedIn
	default:
		return TicketStatusValid
	}
}

// CanCheckIn only valid tickets can be admitted
func (t *Ticket) CanCheckIn() bool {
	return t.Status() == TicketStatusValid
}

type UpdateTicketParams struct {
	IsActive *bool
	Archived *bool
}

func (p UpdateTicketParams) IsEmpty() bool {
	return p.IsActive == nil && p.Archived == nil
}

type UpdateTicketRequest struct {
	IsActive *bool `json:"is_active"`
	Archived *bool `json:"archive"`
}

// TicketScope restricts ticket listings by role
type TicketScope struct {
	// All lists every ticket (admins)
	All bool
	// EventOwnerID lists tickets of events created by this account (organizers)
	EventOwnerID int
	// CustomerID lists tickets bought by this account
	CustomerID int
}

// PurchaseItem requested count for one ticket type
type PurchaseItem struct {
	Type     int `json:"type" binding:"required"`
	Quantity int `json:"quantity" binding:"required,min=1"`
}

// PurchaseRequest buy tickets of one or more types for one event
type PurchaseRequest struct {
	Event   int            `json:"event" binding:"required"`
	Tickets []PurchaseItem `json:"tickets" binding:"required,min=1,dive"`
}

// ReminderTarget one distinct (event, customer) pair that should get a reminder
type ReminderTarget struct {
	EventID    int
	CustomerID int
}
