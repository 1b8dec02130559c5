package models

// Evidence links a finding to a media file belonging to the same audit.
// The same-audit invariant is enforced at write time by the finding
// service; the composite unique index prevents duplicate links.
type Evidence struct {
	Base
	FindingID   string     `gorm:"type:uuid;not null;uniqueIndex:idx_finding_media" json:"finding_id"`
	MediaFileID string     `gorm:"type:uuid;not null;uniqueIndex:idx_finding_media" json:"media_file_id"`
	Note        string     `json:"note,omitempty"`
	MediaFile   *MediaFile `gorm:"foreignKey:MediaFileID" json:"media_file,omitempty"`
}
