package models

import (
	"io"
	"time"

	"github.com/google/uuid"
)

// Image is the catalog row describing one stored blob.
type Image struct {
	ID           uuid.UUID `json:"id" db:"id"`
	ProductID    uuid.UUID `json:"product_id" db:"product_id"`
	FileName     string    `json:"file_name" db:"file_name"`
	OriginalName string    `json:"original_name" db:"original_name"`
	ContentType  string    `json:"content_type" db:"content_type"`
	SizeBytes    int64     `json:"size_bytes" db:"size_bytes"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// FileUpload is an uploaded file as received from the transport layer.
// A nil *FileUpload means no file was sent.
type FileUpload struct {
	Name string
	Size int64
	// ContentType is what the client declared. It is not stored.
	ContentType string
	Reader      io.Reader
}
