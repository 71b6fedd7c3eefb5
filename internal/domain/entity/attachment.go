package entity

import "time"

// AttachmentEntityType entidad a la que pertenece un adjunto (relación polimórfica).
type AttachmentEntityType string

const (
	AttachSong    AttachmentEntityType = "song"
	AttachContact AttachmentEntityType = "contact"
	AttachDeal    AttachmentEntityType = "deal"
	AttachPayment AttachmentEntityType = "payment"
	AttachInvoice AttachmentEntityType = "invoice"
	AttachExpense AttachmentEntityType = "expense"
)

// Valid indica si el tipo pertenece a la enumeración.
func (t AttachmentEntityType) Valid() bool {
	switch t {
	case AttachSong, AttachContact, AttachDeal, AttachPayment, AttachInvoice, AttachExpense:
		return true
	}
	return false
}

// Attachment metadatos de un archivo subido. El contenido vive en el FileStore bajo StorageKey.
type Attachment struct {
	ID          string
	UserID      string
	EntityType  AttachmentEntityType
	EntityID    string
	Filename    string
	MimeType    string
	Size        int64
	Checksum    string // blake2b-256 hex
	StorageKey  string
	Description string
	CreatedAt   time.Time
}
