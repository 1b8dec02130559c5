package handlers

import (
	"errors"
	"mime/multipart"

	"github.com/gin-gonic/gin"

	apperrors "auditdesk/internal/errors"
	"auditdesk/internal/logger"
	"auditdesk/internal/middleware"
	"auditdesk/internal/models"
)

// caller is the authenticated identity extracted from the request context.
type caller struct {
	UserID string
	Email  string
	Role   models.UserRole
}

// getCaller extracts the authenticated caller from the Gin context.
// Returns ErrUnauthorized if the auth middleware did not run.
func getCaller(c *gin.Context) (caller, error) {
	userID, exists := c.Get(middleware.ContextUserID)
	if !exists {
		return caller{}, apperrors.ErrUnauthorized
	}
	id, ok := userID.(string)
	if !ok || id == "" {
		return caller{}, apperrors.ErrUnauthorized
	}

	out := caller{UserID: id, Role: models.RoleAuditor}
	if email, ok := c.Get(middleware.ContextEmail); ok {
		out.Email, _ = email.(string)
	}
	if role, ok := c.Get(middleware.ContextRole); ok {
		if r, ok := role.(models.UserRole); ok {
			out.Role = r
		}
	}
	return out, nil
}

// respondWithError writes a consistent JSON error response. If the error is an
// *AppError it uses the error's status code, code, and message. Otherwise it
// logs the unexpected error and returns a generic internal server error.
func respondWithError(c *gin.Context, err error) {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		if appErr.Internal != nil {
			logger.Get().Errorw("app error",
				"code", appErr.Code,
				"internal", appErr.Internal.Error(),
				"path", c.Request.URL.Path,
			)
		}
		c.JSON(appErr.StatusCode, gin.H{
			"ok":      false,
			"code":    appErr.Code,
			"message": appErr.Message,
		})
		return
	}

	logger.Get().Errorw("unexpected error",
		"error", err.Error(),
		"path", c.Request.URL.Path,
		"method", c.Request.Method,
	)
	c.JSON(apperrors.ErrInternalServer.StatusCode, gin.H{
		"ok":      false,
		"code":    apperrors.ErrInternalServer.Code,
		"message": apperrors.ErrInternalServer.Message,
	})
}

// firstFilePart walks the request's multipart stream and returns the first
// file part without buffering the body. Returns ErrNoFile when the request
// carries no file part at all.
func firstFilePart(c *gin.Context) (*multipart.Part, error) {
	reader, err := c.Request.MultipartReader()
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrNoFile, err)
	}

	for {
		part, err := reader.NextPart()
		if err != nil {
			return nil, apperrors.Wrap(apperrors.ErrNoFile, err)
		}
		if part.FileName() != "" {
			return part, nil
		}
		_ = part.Close()
	}
}
