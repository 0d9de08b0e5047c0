package models

// NoteContentType represents the kind of content attached to a transaction.
type NoteContentType string

const (
	NoteContentText  NoteContentType = "text"
	NoteContentImage NoteContentType = "image"
	NoteContentAudio NoteContentType = "audio"
)

// Note is a free-text or media attachment on a transaction. For media notes,
// Content holds a caption or URL and FilePath points at the stored blob.
type Note struct {
	Base
	TransactionID string          `gorm:"type:uuid;not null;index" json:"transaction_id"`
	ContentType   NoteContentType `gorm:"not null;default:'text'" json:"content_type"`
	Content       string          `gorm:"not null" json:"content"`
	FilePath      string          `json:"file_path,omitempty"`
}
