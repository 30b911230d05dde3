package model

import (
	"fmt"
	"strings"
	"time"
)

const DateLayout = "2006-01-02"

type EventStatus string

const (
	EventStatusActive    EventStatus = "active"
	EventStatusCancelled EventStatus = "cancelled"
)

// Event listing owned by the creating account
type Event struct {
	ID          int       `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Date        time.Time `json:"date" db:"date"`
	Time        string    `json:"time" db:"start_time"`
	Location    string    `json:"location" db:"location"`
	Description string    `json:"description" db:"description"`
	CreatedBy   int       `json:"created_by" db:"created_by"`
	IsActive    bool      `json:"is_active" db:"is_active"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`

	Photos  []*Photo           `json:"photos" db:"-"`
	Tickets []*EventTicketType `json:"tickets" db:"-"`
}

func (e *Event) Status() EventStatus {
	if e.IsActive {
		return EventStatusActive
	}
	return EventStatusCancelled
}

type UpdateEventParams struct {
	Name        *string
	Date        *time.Time
	Time        *string
	Location    *string
	Description *string
}

func (p UpdateEventParams) IsEmpty() bool {
	return p.Name == nil && p.Date == nil && p.Time == nil && p.Location == nil && p.Description == nil
}

// EventFilter list filters: ticket type names, price range, date range and free text search
type EventFilter struct {
	TicketTypes []string
	PriceMin    *float64
	PriceMax    *float64
	DateAfter   *time.Time
	DateBefore  *time.Time
	Search      string
}

// EventTicketRequest one ticket category offered when creating an event
type EventTicketRequest struct {
	TicketType int     `json:"ticket_type" binding:"required"`
	Price      float64 `json:"price" binding:"gte=0"`
	Quantity   int     `json:"quantity" binding:"gte=0"`
}

// EventResponse event as seen by a given viewer
type EventResponse struct {
	ID          int                   `json:"id"`
	Name        string                `json:"name"`
	Date        string                `json:"date"`
	Time        string                `json:"time"`
	Location    string                `json:"location"`
	Description string                `json:"description"`
	Photos      []PhotoResponse       `json:"photos"`
	CreatedBy   *int                  `json:"created_by,omitempty"`
	IsActive    bool                  `json:"is_active"`
	Tickets     []EventTicketResponse `json:"tickets,omitempty"`
}

// NewEventResponse hides created_by from the creator and the ticket list of inactive events.
func NewEventResponse(e *Event, viewerID int) EventResponse {
	resp := EventResponse{
		ID:          e.ID,
		Name:        e.Name,
		Date:        e.Date.Format(DateLayout),
		Time:        e.Time,
		Location:    e.Location,
		Description: e.Description,
		Photos:      make([]PhotoResponse, 0, len(e.Photos)),
		IsActive:    e.IsActive,
	}
	for _, p := range e.Photos {
		resp.Photos = append(resp.Photos, PhotoResponse{ID: p.ID, Image: p.URL})
	}
	if viewerID != e.CreatedBy {
		createdBy := e.CreatedBy
		resp.CreatedBy = &createdBy
	}
	if e.IsActive {
		resp.Tickets = make([]EventTicketResponse, 0, len(e.Tickets))
		for _, t := range e.Tickets {
			resp.Tickets = append(resp.Tickets, NewEventTicketResponse(t))
		}
	}
	return resp
}

// CreateEventRequest event with optional photos and ticket offers, stored in one transaction
type CreateEventRequest struct {
	Name        string               `json:"name" binding:"required,max=100"`
	Date        string               `json:"date" binding:"required"`
	Time        string               `json:"time" binding:"required"`
	Location    string               `json:"location" binding:"required,max=255"`
	Description string               `json:"description" binding:"required"`
	Photos      []string             `json:"photos" binding:"omitempty,dive,url"`
	Tickets     []EventTicketRequest `json:"tickets" binding:"omitempty,dive"`
}

type UpdateEventRequest struct {
	Name        *string `json:"name" binding:"omitempty,max=100"`
	Date        *string `json:"date"`
	Time        *string `json:"time"`
	Location    *string `json:"location" binding:"omitempty,max=255"`
	Description *string `json:"description"`
}

// EventListQuery raw query string of GET /events
type EventListQuery struct {
	TicketType string   `form:"ticket_type"`
	PriceMin   *float64 `form:"price_min"`
	PriceMax   *float64 `form:"price_max"`
	DateAfter  string   `form:"date_after"`
	DateBefore string   `form:"date_before"`
	Search     string   `form:"search"`
}

func (q EventListQuery) ToFilter() (EventFilter, error) {
	filter := EventFilter{
		PriceMin: q.PriceMin,
		PriceMax: q.PriceMax,
		Search:   strings.TrimSpace(q.Search),
	}
	for _, name := range strings.Split(q.TicketType, ",") {
		if name = strings.TrimSpace(name); name != "" {
			filter.TicketTypes = append(filter.TicketTypes, name)
		}
	}
	if q.DateAfter != "" {
		d, err := ParseDate(q.DateAfter)
		if err != nil {
			return EventFilter{}, err
		}
		filter.DateAfter = &d
	}
	if q.DateBefore != "" {
		d, err := ParseDate(q.DateBefore)
		if err != nil {
			return EventFilter{}, err
		}
		filter.DateBefore = &d
	}
	return filter, nil
}

func ParseDate(s string) (time.Time, error) {
	d, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("date %q must use YYYY-MM-DD", s)
	}
	return d, nil
}

// NormalizeTime accepts HH:MM or HH:MM:SS and returns HH:MM:SS.
func NormalizeTime(s string) (string, error) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{"15:04:05", "15:04"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("15:04:05"), nil
		}
	}
	return "", fmt.Errorf("time %q must use HH:MM or HH:MM:SS", s)
}
