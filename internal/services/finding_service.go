package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	apperrors "auditdesk/internal/errors"
	"auditdesk/internal/models"
	"auditdesk/internal/pagination"
)

const defaultSeverity = "medium"

// findingService handles findings and their evidence links.
type findingService struct {
	db *gorm.DB
}

// NewFindingService creates a new FindingServicer.
func NewFindingService(db *gorm.DB) FindingServicer {
	return &findingService{db: db}
}

// CreateFinding records an observation against an audit. Title is the only
// required field; severity defaults to "medium".
func (s *findingService) CreateFinding(auditID, title, description, severity, area, clauseRef string) (*models.Finding, error) {
	if strings.TrimSpace(title) == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "finding title is required")
	}
	if severity == "" {
		severity = defaultSeverity
	}

	finding := &models.Finding{
		AuditID:     auditID,
		Title:       title,
		Description: description,
		Severity:    severity,
		Area:        area,
		ClauseRef:   clauseRef,
	}

	if err := s.db.Create(finding).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return finding, nil
}

// ListFindings returns an audit's findings newest-first, optionally with
// their evidence links preloaded.
func (s *findingService) ListFindings(auditID string, includeEvidence bool, page pagination.ListRequest) (*pagination.ListResponse[models.Finding], error) {
	page.Defaults()

	base := s.db.Model(&models.Finding{}).Where("audit_id = ?", auditID)

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	query := base.Order("created_at DESC").Scopes(pagination.Scope(page))
	if includeEvidence {
		query = query.Preload("Evidence").Preload("Evidence.MediaFile")
	}

	var findings []models.Finding
	if err := query.Find(&findings).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewListResponse(findings, page.Take, page.Skip, totalItems)
	return &result, nil
}

// GetFindingByID retrieves a finding by ID. Ownership is checked by the
// caller through the finding's parent audit.
func (s *findingService) GetFindingByID(findingID string) (*models.Finding, error) {
	var finding models.Finding
	if err := s.db.Where("id = ?", findingID).First(&finding).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrFindingNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &finding, nil
}

// AttachEvidence links a media file to a finding. The media file must
// belong to the same audit as the finding; duplicate (finding, media)
// pairs are rejected by the unique index and surface as a Conflict.
func (s *findingService) AttachEvidence(finding *models.Finding, mediaFileID, note string) (*models.Evidence, error) {
	var media models.MediaFile
	if err := s.db.Where("id = ?", mediaFileID).First(&media).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrMediaNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if media.AuditID != finding.AuditID {
		return nil, apperrors.ErrCrossAuditMedia
	}

	evidence := &models.Evidence{
		FindingID:   finding.ID,
		MediaFileID: media.ID,
		Note:        note,
	}

	if err := s.db.Create(evidence).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.ErrEvidenceExists
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return evidence, nil
}
