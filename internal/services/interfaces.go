package services

import (
	"io"

	"auditdesk/internal/models"
	"auditdesk/internal/pagination"
	"auditdesk/internal/report"
)

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	Register(email, password string, role models.UserRole) (*models.User, error)
	AttemptLogin(email, password string) (*models.User, error)
	GetUserByID(id string) (*models.User, error)
}

// AuditFields holds the optional descriptive fields of an audit.
type AuditFields struct {
	Title    string
	Site     string
	Standard string
	Auditor  string
}

// AuditServicer defines the contract for audit-related business logic,
// including the ownership gate used by every audit-scoped operation.
type AuditServicer interface {
	CreateAudit(userID string, fields AuditFields) (*models.Audit, error)
	ListAudits(userID string, role models.UserRole, page pagination.ListRequest) (*pagination.ListResponse[models.Audit], error)
	// AuthorizeAudit fetches the audit and verifies the caller may access
	// it: admins unconditionally, everyone else by ownership. The audit is
	// returned so callers need no second fetch.
	AuthorizeAudit(userID string, role models.UserRole, auditID string) (*models.Audit, error)
	SaveReport(auditID string, data *report.Data) error
	ReportData(audit *models.Audit) (*report.Data, error)
}

// MediaServicer defines the contract for media upload, listing and download.
type MediaServicer interface {
	// Upload streams r to disk under a generated storage key and records
	// the metadata row. The recorded size is the number of bytes written,
	// not the client-declared length.
	Upload(audit *models.Audit, kind models.MediaKind, filename, mimeType string, r io.Reader) (*models.MediaFile, error)
	ListMedia(auditID string, page pagination.ListRequest) (*pagination.ListResponse[models.MediaFile], error)
	GetMediaByID(mediaID string) (*models.MediaFile, error)
	// OpenStream opens the stored bytes for a media row. A row whose file
	// has gone missing on disk maps to ErrFileNotFound.
	OpenStream(media *models.MediaFile) (io.ReadCloser, int64, error)
}

// FindingServicer defines the contract for findings and evidence links.
type FindingServicer interface {
	CreateFinding(auditID, title, description, severity, area, clauseRef string) (*models.Finding, error)
	ListFindings(auditID string, includeEvidence bool, page pagination.ListRequest) (*pagination.ListResponse[models.Finding], error)
	GetFindingByID(findingID string) (*models.Finding, error)
	AttachEvidence(finding *models.Finding, mediaFileID, note string) (*models.Evidence, error)
}

// ActivityServicer defines the contract for activity logging.
type ActivityServicer interface {
	Log(userID, action, resourceType, resourceID, ipAddress string, changes map[string]interface{})
}
