package models

import "gorm.io/datatypes"

// Audit is the top-level resource representing one compliance or
// inspection exercise. All child resources (media files, findings,
// evidence) are reachable only through their parent audit.
type Audit struct {
	Base
	// UserID is the owning user. Nullable: rows imported from the legacy
	// system have no owner and are visible to admins only.
	UserID   *string        `gorm:"type:uuid;index" json:"user_id,omitempty"`
	Title    string         `json:"title"`
	Site     string         `json:"site"`
	Standard string         `json:"standard"`
	Auditor  string         `json:"auditor"`
	// ReportJSON holds the last ingested report (summary + items) and is
	// replaced wholesale on each CSV upload.
	ReportJSON  datatypes.JSON `json:"report_json,omitempty"`
	MappingJSON datatypes.JSON `json:"mapping_json,omitempty"`

	MediaFiles []MediaFile `gorm:"foreignKey:AuditID;constraint:OnDelete:CASCADE" json:"media_files,omitempty"`
	Findings   []Finding   `gorm:"foreignKey:AuditID;constraint:OnDelete:CASCADE" json:"findings,omitempty"`
}

// OwnedBy reports whether the audit is owned by the given user.
func (a *Audit) OwnedBy(userID string) bool {
	return a.UserID != nil && *a.UserID == userID
}
