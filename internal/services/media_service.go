package services

import (
	"errors"
	"io"
	"os"

	"gorm.io/gorm"

	apperrors "auditdesk/internal/errors"
	"auditdesk/internal/logger"
	"auditdesk/internal/models"
	"auditdesk/internal/pagination"
	"auditdesk/internal/storage"
)

// mediaService handles media file metadata and delegates the bytes to the
// storage adapter.
type mediaService struct {
	db       *gorm.DB
	store    *storage.Adapter
	maxBytes int64
}

// NewMediaService creates a new MediaServicer with the given upload ceiling.
func NewMediaService(db *gorm.DB, store *storage.Adapter, maxBytes int64) MediaServicer {
	return &mediaService{db: db, store: store, maxBytes: maxBytes}
}

// Upload streams the file to disk first and records the metadata row
// second; if the insert fails the stored file is removed so no orphan is
// left behind.
func (s *mediaService) Upload(audit *models.Audit, kind models.MediaKind, filename, mimeType string, r io.Reader) (*models.MediaFile, error) {
	key := storage.NewKey(audit.ID, string(kind))

	size, err := s.store.Save(key, r, s.maxBytes)
	if err != nil {
		if errors.Is(err, storage.ErrTooLarge) {
			return nil, apperrors.ErrPayloadTooLarge
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	media := &models.MediaFile{
		AuditID:    audit.ID,
		Kind:       kind,
		Filename:   filename,
		MimeType:   mimeType,
		Size:       size,
		StorageKey: key,
	}

	if err := s.db.Create(media).Error; err != nil {
		if rmErr := s.store.Remove(key); rmErr != nil {
			logger.Get().Errorw("failed to remove stored file after insert failure",
				"storage_key", key, "error", rmErr)
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return media, nil
}

// ListMedia returns an audit's media rows newest-first.
func (s *mediaService) ListMedia(auditID string, page pagination.ListRequest) (*pagination.ListResponse[models.MediaFile], error) {
	page.Defaults()

	base := s.db.Model(&models.MediaFile{}).Where("audit_id = ?", auditID)

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var media []models.MediaFile
	if err := base.Order("created_at DESC").Scopes(pagination.Scope(page)).Find(&media).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewListResponse(media, page.Take, page.Skip, totalItems)
	return &result, nil
}

// GetMediaByID retrieves a media row by ID. Ownership is checked by the
// caller through the row's parent audit.
func (s *mediaService) GetMediaByID(mediaID string) (*models.MediaFile, error) {
	var media models.MediaFile
	if err := s.db.Where("id = ?", mediaID).First(&media).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrMediaNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &media, nil
}

// OpenStream opens the stored bytes for a media row. A DB row whose file
// was deleted externally maps to a NotFound, and a key that would resolve
// outside the storage root is refused outright.
func (s *mediaService) OpenStream(media *models.MediaFile) (io.ReadCloser, int64, error) {
	rc, size, err := s.store.Open(media.StorageKey)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrInvalidKey):
			return nil, 0, apperrors.Wrap(apperrors.ErrFileNotFound, err)
		case errors.Is(err, os.ErrNotExist):
			return nil, 0, apperrors.ErrFileNotFound
		default:
			return nil, 0, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}
	return rc, size, nil
}
