package models

import "time"

// File is a stored object inside a folder. StorageKey is the opaque
// locator of the content blob; clients never see it directly.
type File struct {
	ID           string    `json:"id"`
	OwnerID      int64     `json:"owner_id"`
	FolderID     string    `json:"folder_id"`
	Name         string    `json:"name"`
	OriginalName string    `json:"original_name"`
	StorageKey   string    `json:"-"`
	SizeBytes    int64     `json:"size_bytes"`
	MimeType     string    `json:"mime_type"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
