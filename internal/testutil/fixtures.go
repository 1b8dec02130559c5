package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"

	"auditdesk/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestUser creates an auditor with a hashed password and unique email.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	return CreateTestUserWithRole(t, db, models.RoleAuditor)
}

// CreateTestAdmin creates an admin user.
func CreateTestAdmin(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	return CreateTestUserWithRole(t, db, models.RoleAdmin)
}

// CreateTestUserWithRole creates a user with the given role and a unique email.
func CreateTestUserWithRole(t *testing.T, db *gorm.DB, role models.UserRole) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Email:    fmt.Sprintf("user%d@test.com", nextID()),
		Password: string(hash),
		Role:     role,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestAudit creates an audit owned by the given user.
func CreateTestAudit(t *testing.T, db *gorm.DB, userID string) *models.Audit {
	t.Helper()

	audit := &models.Audit{
		UserID: &userID,
		Title:  fmt.Sprintf("Test Audit %d", nextID()),
		Site:   "DC-1",
	}
	if err := db.Create(audit).Error; err != nil {
		t.Fatalf("failed to create test audit: %v", err)
	}
	return audit
}

// CreateTestLegacyAudit creates an audit with no owner, as imported rows have.
func CreateTestLegacyAudit(t *testing.T, db *gorm.DB) *models.Audit {
	t.Helper()

	audit := &models.Audit{
		Title: fmt.Sprintf("Legacy Audit %d", nextID()),
	}
	if err := db.Create(audit).Error; err != nil {
		t.Fatalf("failed to create legacy test audit: %v", err)
	}
	return audit
}

// CreateTestMediaFile creates a media metadata row for an audit.
func CreateTestMediaFile(t *testing.T, db *gorm.DB, auditID string) *models.MediaFile {
	t.Helper()

	media := &models.MediaFile{
		AuditID:    auditID,
		Kind:       models.MediaKindImage,
		Filename:   fmt.Sprintf("photo%d.jpg", nextID()),
		MimeType:   "image/jpeg",
		Size:       1024,
		StorageKey: fmt.Sprintf("media/%s/image/%d", auditID, nextID()),
	}
	if err := db.Create(media).Error; err != nil {
		t.Fatalf("failed to create test media file: %v", err)
	}
	return media
}

// CreateTestFinding creates a finding against an audit.
func CreateTestFinding(t *testing.T, db *gorm.DB, auditID string) *models.Finding {
	t.Helper()

	finding := &models.Finding{
		AuditID:  auditID,
		Title:    fmt.Sprintf("Finding %d", nextID()),
		Severity: "medium",
	}
	if err := db.Create(finding).Error; err != nil {
		t.Fatalf("failed to create test finding: %v", err)
	}
	return finding
}
