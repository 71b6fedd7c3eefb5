package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateDealRequest entrada para crear un deal. Status acepta variantes con espacios.
type CreateDealRequest struct {
	ProjectName   string           `json:"projectName" validate:"required,max=300"`
	ProjectType   string           `json:"projectType" validate:"max=100"`
	SongID        string           `json:"songId" validate:"required,uuid"`
	ContactID     string           `json:"contactId" validate:"required,uuid"`
	Status        string           `json:"status"`
	Territory     string           `json:"territory" validate:"max=200"`
	Exclusivity   bool             `json:"exclusivity"`
	Description   string           `json:"description"`
	Term          string           `json:"term" validate:"max=200"`
	Usage         string           `json:"usage" validate:"max=500"`
	TotalFee      *decimal.Decimal `json:"totalFee"`
	PublishingFee *decimal.Decimal `json:"publishingFee"`
	RecordingFee  *decimal.Decimal `json:"recordingFee"`
	BallparkFee   string           `json:"ballparkFee"`
	Notes         string           `json:"notes"`
	AirDate       *FlexTime        `json:"airDate"`
}

// UpdateDealRequest actualización parcial.
type UpdateDealRequest struct {
	ProjectName   *string          `json:"projectName" validate:"omitempty,min=1,max=300"`
	ProjectType   *string          `json:"projectType" validate:"omitempty,max=100"`
	SongID        *string          `json:"songId" validate:"omitempty,uuid"`
	ContactID     *string          `json:"contactId" validate:"omitempty,uuid"`
	Status        *string          `json:"status"`
	Territory     *string          `json:"territory" validate:"omitempty,max=200"`
	Exclusivity   *bool            `json:"exclusivity"`
	Description   *string          `json:"description"`
	Term          *string          `json:"term" validate:"omitempty,max=200"`
	Usage         *string          `json:"usage" validate:"omitempty,max=500"`
	TotalFee      *decimal.Decimal `json:"totalFee"`
	PublishingFee *decimal.Decimal `json:"publishingFee"`
	RecordingFee  *decimal.Decimal `json:"recordingFee"`
	BallparkFee   *string          `json:"ballparkFee"`
	Notes         *string          `json:"notes"`
	AirDate       *FlexTime        `json:"airDate"`
}

// UpdateDealStatusRequest cambio de etapa.
type UpdateDealStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// DealResponse salida de un deal.
type DealResponse struct {
	ID            string               `json:"id"`
	ProjectName   string               `json:"projectName"`
	ProjectType   string               `json:"projectType"`
	SongID        string               `json:"songId"`
	ContactID     string               `json:"contactId"`
	Status        string               `json:"status"`
	StatusLabel   string               `json:"statusLabel"`
	Territory     string               `json:"territory"`
	Exclusivity   bool                 `json:"exclusivity"`
	Description   string               `json:"description"`
	Term          string               `json:"term"`
	Usage         string               `json:"usage"`
	TotalFee      decimal.NullDecimal  `json:"totalFee"`
	PublishingFee decimal.NullDecimal  `json:"publishingFee"`
	RecordingFee  decimal.NullDecimal  `json:"recordingFee"`
	BallparkFee   *string              `json:"ballparkFee"`
	Notes         string               `json:"notes"`
	AirDate       *time.Time           `json:"airDate"`
	StageDates    map[string]time.Time `json:"stageDates"`
	CreatedAt     time.Time            `json:"createdAt"`
	UpdatedAt     time.Time            `json:"updatedAt"`
}

// StatusOption valor canónico y etiqueta para selects.
type StatusOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// StageHistoryEntry etapa reconstruida desde las fechas por etapa.
type StageHistoryEntry struct {
	Status      string    `json:"status"`
	Label       string    `json:"label"`
	EnteredAt   time.Time `json:"enteredAt"`
	DaysInStage int       `json:"daysInStage"`
}
