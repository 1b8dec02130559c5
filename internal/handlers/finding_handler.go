package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "auditdesk/internal/errors"
	"auditdesk/internal/pagination"
	"auditdesk/internal/services"
)

// FindingHandler handles findings and evidence links.
type FindingHandler struct {
	auditService    services.AuditServicer
	findingService  services.FindingServicer
	activityService services.ActivityServicer
}

// NewFindingHandler creates a new FindingHandler
func NewFindingHandler(auditService services.AuditServicer, findingService services.FindingServicer, activityService services.ActivityServicer) *FindingHandler {
	return &FindingHandler{
		auditService:    auditService,
		findingService:  findingService,
		activityService: activityService,
	}
}

// CreateFindingRequest represents the finding creation payload.
type CreateFindingRequest struct {
	Title       string `json:"title" binding:"required,max=500"`
	Description string `json:"description"`
	Severity    string `json:"severity" binding:"max=50"`
	Area        string `json:"area" binding:"max=255"`
	ClauseRef   string `json:"clauseRef" binding:"max=255"`
}

// AttachEvidenceRequest represents the evidence attach payload.
type AttachEvidenceRequest struct {
	MediaID string `json:"mediaId" binding:"required,uuid"`
	Note    string `json:"note" binding:"max=2000"`
}

// CreateFinding records a finding against an audit, ownership-gated.
// @Summary     Create a finding
// @Tags        findings
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Audit ID"
// @Param       request body CreateFindingRequest true "Finding fields"
// @Success     201 {object} map[string]interface{} "Created finding"
// @Failure     400 {object} map[string]interface{} "Missing title"
// @Router      /audits/{id}/findings [post]
func (h *FindingHandler) CreateFinding(c *gin.Context) {
	caller, err := getCaller(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	audit, err := h.auditService.AuthorizeAudit(caller.UserID, caller.Role, c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateFindingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	finding, err := h.findingService.CreateFinding(audit.ID, req.Title, req.Description, req.Severity, req.Area, req.ClauseRef)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.activityService.Log(caller.UserID, "create", "finding", finding.ID, c.ClientIP(),
		map[string]interface{}{"audit_id": audit.ID, "title": finding.Title})

	c.JSON(http.StatusCreated, gin.H{"ok": true, "finding": finding})
}

// ListFindings lists an audit's findings newest-first, ownership-gated.
// @Summary     List an audit's findings
// @Tags        findings
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Audit ID"
// @Param       includeEvidence query bool false "Preload evidence links"
// @Success     200 {object} map[string]interface{} "Paginated findings"
// @Router      /audits/{id}/findings [get]
func (h *FindingHandler) ListFindings(c *gin.Context) {
	caller, err := getCaller(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	audit, err := h.auditService.AuthorizeAudit(caller.UserID, caller.Role, c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	var page pagination.ListRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	includeEvidence := c.Query("includeEvidence") == "true"

	result, err := h.findingService.ListFindings(audit.ID, includeEvidence, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ok":       true,
		"findings": result.Data,
		"take":     result.Take,
		"skip":     result.Skip,
		"total":    result.TotalItems,
	})
}

// AttachEvidence links a media file to a finding. The gate runs against
// the finding's parent audit; the service enforces the same-audit rule for
// the media file.
// @Summary     Attach evidence to a finding
// @Tags        findings
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Finding ID"
// @Param       request body AttachEvidenceRequest true "Evidence link"
// @Success     201 {object} map[string]interface{} "Created evidence link"
// @Failure     400 {object} map[string]interface{} "Cross-audit media"
// @Failure     409 {object} map[string]interface{} "Already attached"
// @Router      /findings/{id}/evidence [post]
func (h *FindingHandler) AttachEvidence(c *gin.Context) {
	caller, err := getCaller(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	finding, err := h.findingService.GetFindingByID(c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	if _, err := h.auditService.AuthorizeAudit(caller.UserID, caller.Role, finding.AuditID); err != nil {
		respondWithError(c, err)
		return
	}

	var req AttachEvidenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	evidence, err := h.findingService.AttachEvidence(finding, req.MediaID, req.Note)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.activityService.Log(caller.UserID, "attach", "evidence", evidence.ID, c.ClientIP(),
		map[string]interface{}{"finding_id": finding.ID, "media_id": req.MediaID})

	c.JSON(http.StatusCreated, gin.H{"ok": true, "evidence": evidence})
}
