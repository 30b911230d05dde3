package model

// ReminderMessage one reminder waiting to be mailed
type ReminderMessage struct {
	EventID    int    `json:"event_id"`
	CustomerID int    `json:"customer_id"`
	Day        string `json:"day"`
}

// ReminderRunResult summary of one reminder job run
type ReminderRunResult struct {
	Day       string `json:"day"`
	Targets   int    `json:"targets"`
	Published int    `json:"published"`
	Skipped   int    `json:"skipped"`
}
