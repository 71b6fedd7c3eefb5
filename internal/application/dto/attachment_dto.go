package dto

import "time"

// UploadAttachmentInput campos del formulario multipart (el archivo va aparte).
type UploadAttachmentInput struct {
	EntityType  string `validate:"required,oneof=song contact deal payment invoice expense"`
	EntityID    string `validate:"required,uuid"`
	Description string `validate:"max=1000"`
	Filename    string `validate:"required,max=255"`
	MimeType    string
	Size        int64
}

type AttachmentResponse struct {
	ID          string    `json:"id"`
	EntityType  string    `json:"entityType"`
	EntityID    string    `json:"entityId"`
	Filename    string    `json:"filename"`
	MimeType    string    `json:"mimeType"`
	Size        int64     `json:"size"`
	Checksum    string    `json:"checksum"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
}
