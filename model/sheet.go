package model

import "time"

// Sheet is a stored chord sheet. Key is the key Notes are written in.
type Sheet struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Key       string    `json:"key"`
	Notes     string    `json:"notes"`
	Favorite  bool      `json:"favorite"`
	Position  int       `json:"position"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SheetInput is what a user fills in when creating or editing a sheet
type SheetInput struct {
	Title string `json:"title"`
	Key   string `json:"key"`
	Notes string `json:"notes"`
}

func (s Sheet) Input() SheetInput {
	return SheetInput{Title: s.Title, Key: s.Key, Notes: s.Notes}
}
