package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "auditdesk/internal/errors"
	"auditdesk/internal/models"
	"auditdesk/internal/pagination"
	"auditdesk/internal/services"
)

// MediaHandler handles media upload, listing and download.
type MediaHandler struct {
	auditService    services.AuditServicer
	mediaService    services.MediaServicer
	activityService services.ActivityServicer
	maxUploadBytes  int64
}

// NewMediaHandler creates a new MediaHandler
func NewMediaHandler(auditService services.AuditServicer, mediaService services.MediaServicer, activityService services.ActivityServicer, maxUploadBytes int64) *MediaHandler {
	return &MediaHandler{
		auditService:    auditService,
		mediaService:    mediaService,
		activityService: activityService,
		maxUploadBytes:  maxUploadBytes,
	}
}

// UploadMedia accepts a single multipart file part and streams it to disk.
// @Summary     Upload a media file to an audit
// @Tags        media
// @Accept      multipart/form-data
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Audit ID"
// @Param       kind query string false "Media kind (image, video, audio, file)"
// @Param       file formData file true "File to upload"
// @Success     201 {object} map[string]interface{} "Created media row"
// @Failure     400 {object} map[string]interface{} "No file part"
// @Failure     413 {object} map[string]interface{} "File too large"
// @Router      /audits/{id}/media [post]
func (h *MediaHandler) UploadMedia(c *gin.Context) {
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

	kind := c.DefaultQuery("kind", string(models.MediaKindFile))
	if !models.ValidMediaKind(kind) {
		respondWithError(c, apperrors.ErrInvalidMediaKind)
		return
	}

	// Reject declared-oversize bodies before touching the disk; the
	// storage adapter still enforces the ceiling on the actual stream.
	if c.Request.ContentLength > h.maxUploadBytes {
		respondWithError(c, apperrors.ErrPayloadTooLarge)
		return
	}

	part, err := firstFilePart(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	defer func() { _ = part.Close() }()

	mimeType := part.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}

	media, err := h.mediaService.Upload(audit, models.MediaKind(kind), part.FileName(), mimeType, part)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.activityService.Log(caller.UserID, "upload", "media", media.ID, c.ClientIP(),
		map[string]interface{}{"audit_id": audit.ID, "filename": media.Filename, "size": media.Size})

	c.JSON(http.StatusCreated, gin.H{"ok": true, "media": media})
}

// ListMedia lists an audit's media rows, ownership-gated.
// @Summary     List an audit's media files
// @Tags        media
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Audit ID"
// @Success     200 {object} map[string]interface{} "Paginated media rows"
// @Router      /audits/{id}/media [get]
func (h *MediaHandler) ListMedia(c *gin.Context) {
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

	result, err := h.mediaService.ListMedia(audit.ID, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ok":    true,
		"media": result.Data,
		"take":  result.Take,
		"skip":  result.Skip,
		"total": result.TotalItems,
	})
}

// DownloadMedia streams a stored file back to the caller. Access is gated
// through the media row's parent audit, never the row itself.
// @Summary     Download a media file
// @Tags        media
// @Produce     octet-stream
// @Security    BearerAuth
// @Param       id path string true "Media ID"
// @Success     200 {file} binary "File contents"
// @Failure     404 {object} map[string]interface{} "Row or file missing"
// @Router      /media/{id}/download [get]
func (h *MediaHandler) DownloadMedia(c *gin.Context) {
	caller, err := getCaller(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	media, err := h.mediaService.GetMediaByID(c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	if _, err := h.auditService.AuthorizeAudit(caller.UserID, caller.Role, media.AuditID); err != nil {
		respondWithError(c, err)
		return
	}

	rc, size, err := h.mediaService.OpenStream(media)
	if err != nil {
		respondWithError(c, err)
		return
	}
	defer func() { _ = rc.Close() }()

	c.DataFromReader(http.StatusOK, size, media.MimeType, rc, map[string]string{
		"Content-Disposition": `attachment; filename="` + media.Filename + `"`,
	})
}
