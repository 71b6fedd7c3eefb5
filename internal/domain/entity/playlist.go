package entity

import "time"

// Playlist selección ordenada de canciones, opcionalmente preparada para un contacto.
type Playlist struct {
	ID          string
	UserID      string
	Name        string
	Description string
	ContactID   *string
	SongIDs     []string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
