package handlers

import (
	"bytes"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "auditdesk/internal/errors"
	"auditdesk/internal/models"
	"auditdesk/internal/report"
	"auditdesk/internal/services"
)

const (
	mimePDF  = "application/pdf"
	mimeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	mimeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

// ReportHandler handles CSV report ingestion and artifact generation.
type ReportHandler struct {
	auditService    services.AuditServicer
	activityService services.ActivityServicer
	maxCSVBytes     int64
	templatePath    string
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(auditService services.AuditServicer, activityService services.ActivityServicer, maxCSVBytes int64, templatePath string) *ReportHandler {
	return &ReportHandler{
		auditService:    auditService,
		activityService: activityService,
		maxCSVBytes:     maxCSVBytes,
		templatePath:    templatePath,
	}
}

// UploadReport ingests a results CSV and replaces the audit's stored
// report. Report CSVs are small and must be fully materialized before
// parsing, so they get their own, much lower, size ceiling than media.
// @Summary     Upload a results CSV
// @Tags        reports
// @Accept      multipart/form-data
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Audit ID"
// @Param       file formData file true "CSV file"
// @Success     200 {object} map[string]interface{} "Derived report summary"
// @Failure     400 {object} map[string]interface{} "No file or malformed CSV"
// @Failure     413 {object} map[string]interface{} "CSV too large"
// @Router      /audits/{id}/report/upload [post]
func (h *ReportHandler) UploadReport(c *gin.Context) {
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

	part, err := firstFilePart(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	defer func() { _ = part.Close() }()

	raw, err := io.ReadAll(io.LimitReader(part, h.maxCSVBytes+1))
	if err != nil {
		respondWithError(c, apperrors.Wrap(apperrors.ErrInternalServer, err))
		return
	}
	if int64(len(raw)) > h.maxCSVBytes {
		respondWithError(c, apperrors.ErrPayloadTooLarge)
		return
	}

	data, err := report.ParseCSV(bytes.NewReader(raw))
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.auditService.SaveReport(audit.ID, data); err != nil {
		respondWithError(c, err)
		return
	}

	h.activityService.Log(caller.UserID, "upload", "report", audit.ID, c.ClientIP(),
		map[string]interface{}{"total": data.Summary.Total})

	c.JSON(http.StatusOK, gin.H{"ok": true, "summary": data.Summary})
}

// GetReport returns the stored report data as JSON.
// @Summary     Get the stored report
// @Tags        reports
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Audit ID"
// @Success     200 {object} map[string]interface{} "Report summary and items"
// @Failure     404 {object} map[string]interface{} "No report uploaded"
// @Router      /audits/{id}/report [get]
func (h *ReportHandler) GetReport(c *gin.Context) {
	data, _, err := h.gatedReport(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "summary": data.Summary, "items": data.Items})
}

// GetReportPDF renders the stored report as a PDF document.
// @Summary     Download the report as PDF
// @Tags        reports
// @Produce     application/pdf
// @Security    BearerAuth
// @Param       id path string true "Audit ID"
// @Success     200 {file} binary "PDF bytes"
// @Router      /audits/{id}/report.pdf [get]
func (h *ReportHandler) GetReportPDF(c *gin.Context) {
	data, audit, err := h.gatedReport(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	out, err := report.BuildPDF(reportMeta(audit), data)
	if err != nil {
		respondWithError(c, apperrors.Wrap(apperrors.ErrInternalServer, err))
		return
	}

	serveArtifact(c, out, mimePDF, "report.pdf")
}

// GetReportXLSX renders the stored report as a spreadsheet.
// @Summary     Download the report as XLSX
// @Tags        reports
// @Produce     application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security    BearerAuth
// @Param       id path string true "Audit ID"
// @Success     200 {file} binary "Workbook bytes"
// @Router      /audits/{id}/report.xlsx [get]
func (h *ReportHandler) GetReportXLSX(c *gin.Context) {
	data, audit, err := h.gatedReport(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	out, err := report.BuildXLSX(reportMeta(audit), data)
	if err != nil {
		respondWithError(c, apperrors.Wrap(apperrors.ErrInternalServer, err))
		return
	}

	serveArtifact(c, out, mimeXLSX, "report.xlsx")
}

// GetReportDOCX binds the stored report into the configured template.
// @Summary     Download the report as DOCX
// @Tags        reports
// @Produce     application/vnd.openxmlformats-officedocument.wordprocessingml.document
// @Security    BearerAuth
// @Param       id path string true "Audit ID"
// @Success     200 {file} binary "Document bytes"
// @Failure     400 {object} map[string]interface{} "Template missing"
// @Router      /audits/{id}/report.docx [get]
func (h *ReportHandler) GetReportDOCX(c *gin.Context) {
	data, audit, err := h.gatedReport(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	out, err := report.BuildDOCX(h.templatePath, reportMeta(audit), data)
	if err != nil {
		respondWithError(c, err)
		return
	}

	serveArtifact(c, out, mimeDOCX, "report.docx")
}

// gatedReport runs the ownership gate and decodes the stored report blob.
func (h *ReportHandler) gatedReport(c *gin.Context) (*report.Data, *models.Audit, error) {
	caller, err := getCaller(c)
	if err != nil {
		return nil, nil, err
	}

	audit, err := h.auditService.AuthorizeAudit(caller.UserID, caller.Role, c.Param("id"))
	if err != nil {
		return nil, nil, err
	}

	data, err := h.auditService.ReportData(audit)
	if err != nil {
		return nil, nil, err
	}
	return data, audit, nil
}

func reportMeta(audit *models.Audit) report.Meta {
	return report.Meta{
		Title:    audit.Title,
		Site:     audit.Site,
		Standard: audit.Standard,
		Auditor:  audit.Auditor,
	}
}

func serveArtifact(c *gin.Context, data []byte, mimeType, filename string) {
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, mimeType, data)
}
