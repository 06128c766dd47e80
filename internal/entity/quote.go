package entity

import "time"

// Quote is one stored quote row.
type Quote struct {
	ID        string    `json:"id"`
	Author    string    `json:"author"`
	Quote     string    `json:"quote"`
	CreatedAt time.Time `json:"created_at"`
	Version   int       `json:"version"`
}
