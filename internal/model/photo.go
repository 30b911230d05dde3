package model

type Photo struct {
	ID      int    `json:"id" db:"id"`
	EventID int    `json:"event" db:"event_id"`
	URL     string `json:"image" db:"url"`
}

type PhotoResponse struct {
	ID    int    `json:"id"`
	Image string `json:"image"`
}

type AddPhotoRequest struct {
	Image string `json:"image" binding:"required,url"`
}
