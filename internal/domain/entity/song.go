package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Song obra del catálogo que se ofrece para sincronización.
// PublishingOwnership y MasterOwnership son porcentajes 0–100 controlados por el usuario.
type Song struct {
	ID                  string
	UserID              string
	Title               string
	Artist              string
	Album               string
	Genre               string
	Mood                string
	Tempo               int // BPM
	Key                 string
	Duration            int // segundos
	Lyrics              string
	Tags                []string
	Composer            string
	Publisher           string
	PublishingOwnership decimal.Decimal
	MasterOwnership     decimal.Decimal
	FileURL             string
	CreatedAt           time.Time
	UpdatedAt           time.Time
}
