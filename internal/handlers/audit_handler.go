package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "auditdesk/internal/errors"
	"auditdesk/internal/pagination"
	"auditdesk/internal/services"
)

// AuditHandler handles audit CRUD requests.
type AuditHandler struct {
	auditService    services.AuditServicer
	activityService services.ActivityServicer
}

// NewAuditHandler creates a new AuditHandler
func NewAuditHandler(auditService services.AuditServicer, activityService services.ActivityServicer) *AuditHandler {
	return &AuditHandler{auditService: auditService, activityService: activityService}
}

// CreateAuditRequest represents the audit creation payload. All fields are
// optional descriptive text.
type CreateAuditRequest struct {
	Title    string `json:"title" binding:"max=500"`
	Site     string `json:"site" binding:"max=500"`
	Standard string `json:"standard" binding:"max=500"`
	Auditor  string `json:"auditor" binding:"max=500"`
}

// CreateAudit creates an audit owned by the caller.
// @Summary     Create an audit
// @Tags        audits
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateAuditRequest true "Audit fields"
// @Success     201 {object} map[string]interface{} "Created audit"
// @Failure     401 {object} map[string]interface{} "Unauthorized"
// @Router      /audits [post]
func (h *AuditHandler) CreateAudit(c *gin.Context) {
	caller, err := getCaller(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateAuditRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	audit, err := h.auditService.CreateAudit(caller.UserID, services.AuditFields{
		Title:    req.Title,
		Site:     req.Site,
		Standard: req.Standard,
		Auditor:  req.Auditor,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.activityService.Log(caller.UserID, "create", "audit", audit.ID, c.ClientIP(),
		map[string]interface{}{"title": audit.Title})

	c.JSON(http.StatusCreated, gin.H{"ok": true, "audit": audit})
}

// ListAudits lists the caller's audits (all audits for admins), newest-first.
// @Summary     List audits
// @Tags        audits
// @Produce     json
// @Security    BearerAuth
// @Param       take query int false "Page size (max 100, default 20)"
// @Param       skip query int false "Rows to skip"
// @Success     200 {object} map[string]interface{} "Paginated audits"
// @Failure     401 {object} map[string]interface{} "Unauthorized"
// @Router      /audits [get]
func (h *AuditHandler) ListAudits(c *gin.Context) {
	caller, err := getCaller(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var page pagination.ListRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.auditService.ListAudits(caller.UserID, caller.Role, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ok":     true,
		"audits": result.Data,
		"take":   result.Take,
		"skip":   result.Skip,
		"total":  result.TotalItems,
	})
}

// GetAudit returns a single audit, ownership-gated.
// @Summary     Get an audit
// @Tags        audits
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Audit ID"
// @Success     200 {object} map[string]interface{} "Audit"
// @Failure     403 {object} map[string]interface{} "Not the owner"
// @Failure     404 {object} map[string]interface{} "Audit not found"
// @Router      /audits/{id} [get]
func (h *AuditHandler) GetAudit(c *gin.Context) {
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

	c.JSON(http.StatusOK, gin.H{"ok": true, "audit": audit})
}
