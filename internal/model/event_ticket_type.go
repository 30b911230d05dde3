package model

// EventTicketType price and remaining quantity of one ticket type at one event
type EventTicketType struct {
	ID             int     `json:"id" db:"id"`
	EventID        int     `json:"event" db:"event_id"`
	TicketTypeID   int     `json:"ticket_type_id" db:"ticket_type_id"`
	TicketTypeName string  `json:"ticket_type" db:"ticket_type_name"`
	Price          float64 `json:"price" db:"price"`
	Quantity       int     `json:"quantity" db:"quantity"`
	IsActive       bool    `json:"is_active" db:"is_active"`
}

// CanSell reports whether n units can be sold right now
func (e *EventTicketType) CanSell(n int) bool {
	return e.IsActive && n > 0 && e.Quantity >= n
}

type EventTicketResponse struct {
	ID         int     `json:"id"`
	TicketType string  `json:"ticket_type"`
	Price      float64 `json:"price"`
	Quantity   int     `json:"quantity"`
	IsActive   bool    `json:"is_active"`
}

func NewEventTicketResponse(e *EventTicketType) EventTicketResponse {
	return EventTicketResponse{
		ID:         e.ID,
		TicketType: e.TicketTypeName,
		Price:      e.Price,
		Quantity:   e.Quantity,
		IsActive:   e.IsActive,
	}
}

// Availability remaining units of one ticket type, served from the availability cache
type Availability struct {
	TicketTypeID int `json:"ticket_type_id"`
	Remaining    int `json:"remaining"`
}
