package model

// TicketType ticket category such as "VIP"
type TicketType struct {
	ID       int    `json:"id" db:"id"`
	Name     string `json:"name" db:"name"`
	IsActive bool   `json:"is_active" db:"is_active"`
}

type UpdateTicketTypeParams struct {
	Name     *string
	IsActive *bool
}

type CreateTicketTypeRequest struct {
	Name string `json:"name" binding:"required,max=20"`
}

type UpdateTicketTypeRequest struct {
	Name     *string `json:"name" binding:"omitempty,max=20"`
	IsActive *bool   `json:"is_active"`
}
