package models

// MediaKind classifies an uploaded media file.
type MediaKind string

const (
	MediaKindImage MediaKind = "image"
	MediaKindVideo MediaKind = "video"
	MediaKindAudio MediaKind = "audio"
	MediaKindFile  MediaKind = "file"
)

// ValidMediaKind reports whether s is a recognized media kind.
func ValidMediaKind(s string) bool {
	switch MediaKind(s) {
	case MediaKindImage, MediaKindVideo, MediaKindAudio, MediaKindFile:
		return true
	}
	return false
}

// MediaFile records metadata for an uploaded file. The bytes themselves
// live on disk under the storage root at StorageKey. Rows are immutable
// after creation.
type MediaFile struct {
	Base
	AuditID  string    `gorm:"type:uuid;not null;index" json:"audit_id"`
	Kind     MediaKind `gorm:"not null;default:'file'" json:"kind"`
	Filename string    `gorm:"not null" json:"filename"`
	MimeType string    `json:"mime_type"`
	// Size is the number of bytes actually written to disk, not the
	// client-declared content length.
	Size       int64  `gorm:"not null" json:"size"`
	StorageKey string `gorm:"not null" json:"storage_key"`
}
