package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateSongRequest entrada para crear una canción.
type CreateSongRequest struct {
	Title               string           `json:"title" validate:"required,max=300"`
	Artist              string           `json:"artist" validate:"max=300"`
	Album               string           `json:"album" validate:"max=300"`
	Genre               string           `json:"genre" validate:"max=100"`
	Mood                string           `json:"mood" validate:"max=100"`
	Tempo               int              `json:"tempo" validate:"gte=0,lte=400"`
	Key                 string           `json:"key" validate:"max=20"`
	Duration            int              `json:"duration" validate:"gte=0"`
	Lyrics              string           `json:"lyrics"`
	Tags                []string         `json:"tags" validate:"dive,max=50"`
	Composer            string           `json:"composer" validate:"max=300"`
	Publisher           string           `json:"publisher" validate:"max=300"`
	PublishingOwnership *decimal.Decimal `json:"publishingOwnership"`
	MasterOwnership     *decimal.Decimal `json:"masterOwnership"`
	FileURL             string           `json:"fileUrl" validate:"omitempty,url"`
}

// UpdateSongRequest actualización parcial.
type UpdateSongRequest struct {
	Title               *string          `json:"title" validate:"omitempty,min=1,max=300"`
	Artist              *string          `json:"artist" validate:"omitempty,max=300"`
	Album               *string          `json:"album" validate:"omitempty,max=300"`
	Genre               *string          `json:"genre" validate:"omitempty,max=100"`
	Mood                *string          `json:"mood" validate:"omitempty,max=100"`
	Tempo               *int             `json:"tempo" validate:"omitempty,gte=0,lte=400"`
	Key                 *string          `json:"key" validate:"omitempty,max=20"`
	Duration            *int             `json:"duration" validate:"omitempty,gte=0"`
	Lyrics              *string          `json:"lyrics"`
	Tags                []string         `json:"tags" validate:"omitempty,dive,max=50"`
	Composer            *string          `json:"composer" validate:"omitempty,max=300"`
	Publisher           *string          `json:"publisher" validate:"omitempty,max=300"`
	PublishingOwnership *decimal.Decimal `json:"publishingOwnership"`
	MasterOwnership     *decimal.Decimal `json:"masterOwnership"`
	FileURL             *string          `json:"fileUrl" validate:"omitempty,url"`
}

// SongResponse salida de una canción.
type SongResponse struct {
	ID                  string          `json:"id"`
	Title               string          `json:"title"`
	Artist              string          `json:"artist"`
	Album               string          `json:"album"`
	Genre               string          `json:"genre"`
	Mood                string          `json:"mood"`
	Tempo               int             `json:"tempo"`
	Key                 string          `json:"key"`
	Duration            int             `json:"duration"`
	Lyrics              string          `json:"lyrics"`
	Tags                []string        `json:"tags"`
	Composer            string          `json:"composer"`
	Publisher           string          `json:"publisher"`
	PublishingOwnership decimal.Decimal `json:"publishingOwnership"`
	MasterOwnership     decimal.Decimal `json:"masterOwnership"`
	FileURL             string          `json:"fileUrl"`
	CreatedAt           time.Time       `json:"createdAt"`
	UpdatedAt           time.Time       `json:"updatedAt"`
}

// SyncSuitabilityRequest brief del proyecto para el análisis con IA.
type SyncSuitabilityRequest struct {
	ProjectType        string `json:"projectType" validate:"required,max=100"`
	ProjectDescription string `json:"projectDescription" validate:"max=4000"`
}

// SyncSuitabilityDTO resultado del análisis.
type SyncSuitabilityDTO struct {
	SongID      string   `json:"songId"`
	Score       int      `json:"score"` // 0–100
	SuitableFor []string `json:"suitableFor"`
	Reasoning   string   `json:"reasoning"`
	Confidence  float64  `json:"confidence"` // 0–1
}
