package dto

import "time"

type CreatePlaylistRequest struct {
	Name        string   `json:"name" validate:"required,max=200"`
	Description string   `json:"description"`
	ContactID   string   `json:"contactId" validate:"omitempty,uuid"`
	SongIDs     []string `json:"songIds" validate:"dive,uuid"`
}

type UpdatePlaylistRequest struct {
	Name        *string  `json:"name" validate:"omitempty,min=1,max=200"`
	Description *string  `json:"description"`
	ContactID   *string  `json:"contactId" validate:"omitempty,uuid"`
	SongIDs     []string `json:"songIds" validate:"omitempty,dive,uuid"`
}

type AddPlaylistSongRequest struct {
	SongID string `json:"songId" validate:"required,uuid"`
}

type PlaylistResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	ContactID   *string   `json:"contactId"`
	SongIDs     []string  `json:"songIds"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
