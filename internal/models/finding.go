package models

// Finding is a specific observation recorded against an audit.
type Finding struct {
	Base
	AuditID     string `gorm:"type:uuid;not null;index" json:"audit_id"`
	Title       string `gorm:"not null" json:"title"`
	Description string `json:"description"`
	// Severity is free text by contract; defaults to "medium".
	Severity  string     `gorm:"not null;default:'medium'" json:"severity"`
	Area      string     `json:"area"`
	ClauseRef string     `json:"clause_ref"`
	Evidence  []Evidence `gorm:"foreignKey:FindingID;constraint:OnDelete:CASCADE" json:"evidence,omitempty"`
}
