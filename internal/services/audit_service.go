package services

import (
	"encoding/json"
	"errors"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	apperrors "auditdesk/internal/errors"
	"auditdesk/internal/models"
	"auditdesk/internal/pagination"
	"auditdesk/internal/report"
)

// auditService handles audit-related business logic and the ownership gate.
type auditService struct {
	db *gorm.DB
}

// NewAuditService creates a new AuditServicer.
func NewAuditService(db *gorm.DB) AuditServicer {
	return &auditService{db: db}
}

// CreateAudit creates an audit owned by the caller. All descriptive fields
// are optional and stored as given.
func (s *auditService) CreateAudit(userID string, fields AuditFields) (*models.Audit, error) {
	audit := &models.Audit{
		UserID:   &userID,
		Title:    fields.Title,
		Site:     fields.Site,
		Standard: fields.Standard,
		Auditor:  fields.Auditor,
	}

	if err := s.db.Create(audit).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return audit, nil
}

// ListAudits returns audits newest-first. Non-admins only ever see their
// own audits.
func (s *auditService) ListAudits(userID string, role models.UserRole, page pagination.ListRequest) (*pagination.ListResponse[models.Audit], error) {
	page.Defaults()

	base := s.db.Model(&models.Audit{})
	if role != models.RoleAdmin {
		base = base.Where("user_id = ?", userID)
	}

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var audits []models.Audit
	if err := base.Order("created_at DESC").Scopes(pagination.Scope(page)).Find(&audits).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewListResponse(audits, page.Take, page.Skip, totalItems)
	return &result, nil
}

// AuthorizeAudit is the single ownership gate: it fetches the audit and
// grants access to admins unconditionally and to the owner otherwise.
// Audits with no owner (legacy rows) are admin-only.
func (s *auditService) AuthorizeAudit(userID string, role models.UserRole, auditID string) (*models.Audit, error) {
	var audit models.Audit
	if err := s.db.Where("id = ?", auditID).First(&audit).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrAuditNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if role == models.RoleAdmin {
		return &audit, nil
	}
	if !audit.OwnedBy(userID) {
		return nil, apperrors.ErrForbidden
	}
	return &audit, nil
}

// SaveReport replaces the audit's stored report blob wholesale.
func (s *auditService) SaveReport(auditID string, data *report.Data) error {
	blob, err := json.Marshal(data)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	res := s.db.Model(&models.Audit{}).Where("id = ?", auditID).
		Update("report_json", datatypes.JSON(blob))
	if res.Error != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrAuditNotFound
	}
	return nil
}

// ReportData decodes the audit's stored report blob. Audits with no
// uploaded report map to a NotFound.
func (s *auditService) ReportData(audit *models.Audit) (*report.Data, error) {
	if len(audit.ReportJSON) == 0 {
		return nil, apperrors.ErrReportNotFound
	}

	var data report.Data
	if err := json.Unmarshal(audit.ReportJSON, &data); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &data, nil
}
