package models

import "time"

// Prescription is the row describing an uploaded prescription image.
// StoredFilename keys the bytes in the content store; it is generated on
// upload and never changes.
type Prescription struct {
	ID               int64     `json:"id"`
	UserID           string    `json:"-"`
	StoredFilename   string    `json:"stored_filename"`
	OriginalFilename string    `json:"original_filename"`
	UploadDate       time.Time `json:"upload_date"`
}
