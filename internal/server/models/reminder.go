package models

import "time"

// Reminder is a medication reminder. Time and Frequency are free text as
// entered by the user ("08:00", "twice daily").
type Reminder struct {
	ID        int64     `json:"id"`
	UserID    string    `json:"-"`
	Medicine  string    `json:"medicine"`
	Dosage    string    `json:"dosage"`
	Time      string    `json:"time"`
	Frequency string    `json:"frequency"`
	CreatedAt time.Time `json:"created_at"`
}
