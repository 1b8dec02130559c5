package handlers

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"auditdesk/internal/middleware"
	"auditdesk/internal/models"
	"auditdesk/internal/pagination"
	"auditdesk/internal/report"
	"auditdesk/internal/services"
	"auditdesk/internal/validator"
)

func init() {
	gin.SetMode(gin.TestMode)
	validator.Register()
}

// injectCaller stands in for the auth middleware in handler tests.
func injectCaller(userID, email string, role models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.ContextUserID, userID)
		c.Set(middleware.ContextEmail, email)
		c.Set(middleware.ContextRole, role)
		c.Next()
	}
}

func doRequest(router *gin.Engine, method, path string, body io.Reader, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, body)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func parseJSON(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("failed to parse response body %q: %v", w.Body.String(), err)
	}
	return out
}

func assertErrorCode(t *testing.T, w *httptest.ResponseRecorder, wantStatus int, wantCode string) {
	t.Helper()
	if w.Code != wantStatus {
		t.Errorf("status = %d, want %d (body %s)", w.Code, wantStatus, w.Body.String())
	}
	body := parseJSON(t, w)
	if ok, _ := body["ok"].(bool); ok {
		t.Error("expected ok=false in error response")
	}
	if code, _ := body["code"].(string); code != wantCode {
		t.Errorf("code = %q, want %q", code, wantCode)
	}
}

// mockUserService implements services.UserServicer with function fields.
type mockUserService struct {
	RegisterFunc     func(email, password string, role models.UserRole) (*models.User, error)
	AttemptLoginFunc func(email, password string) (*models.User, error)
	GetUserByIDFunc  func(id string) (*models.User, error)
}

var _ services.UserServicer = (*mockUserService)(nil)

func (m *mockUserService) Register(email, password string, role models.UserRole) (*models.User, error) {
	return m.RegisterFunc(email, password, role)
}

func (m *mockUserService) AttemptLogin(email, password string) (*models.User, error) {
	return m.AttemptLoginFunc(email, password)
}

func (m *mockUserService) GetUserByID(id string) (*models.User, error) {
	return m.GetUserByIDFunc(id)
}

// mockAuditService implements services.AuditServicer with function fields.
type mockAuditService struct {
	CreateAuditFunc    func(userID string, fields services.AuditFields) (*models.Audit, error)
	ListAuditsFunc     func(userID string, role models.UserRole, page pagination.ListRequest) (*pagination.ListResponse[models.Audit], error)
	AuthorizeAuditFunc func(userID string, role models.UserRole, auditID string) (*models.Audit, error)
	SaveReportFunc     func(auditID string, data *report.Data) error
	ReportDataFunc     func(audit *models.Audit) (*report.Data, error)
}

var _ services.AuditServicer = (*mockAuditService)(nil)

func (m *mockAuditService) CreateAudit(userID string, fields services.AuditFields) (*models.Audit, error) {
	return m.CreateAuditFunc(userID, fields)
}

func (m *mockAuditService) ListAudits(userID string, role models.UserRole, page pagination.ListRequest) (*pagination.ListResponse[models.Audit], error) {
	return m.ListAuditsFunc(userID, role, page)
}

func (m *mockAuditService) AuthorizeAudit(userID string, role models.UserRole, auditID string) (*models.Audit, error) {
	return m.AuthorizeAuditFunc(userID, role, auditID)
}

func (m *mockAuditService) SaveReport(auditID string, data *report.Data) error {
	return m.SaveReportFunc(auditID, data)
}

func (m *mockAuditService) ReportData(audit *models.Audit) (*report.Data, error) {
	return m.ReportDataFunc(audit)
}

// mockMediaService implements services.MediaServicer with function fields.
type mockMediaService struct {
	UploadFunc       func(audit *models.Audit, kind models.MediaKind, filename, mimeType string, r io.Reader) (*models.MediaFile, error)
	ListMediaFunc    func(auditID string, page pagination.ListRequest) (*pagination.ListResponse[models.MediaFile], error)
	GetMediaByIDFunc func(mediaID string) (*models.MediaFile, error)
	OpenStreamFunc   func(media *models.MediaFile) (io.ReadCloser, int64, error)
}

var _ services.MediaServicer = (*mockMediaService)(nil)

func (m *mockMediaService) Upload(audit *models.Audit, kind models.MediaKind, filename, mimeType string, r io.Reader) (*models.MediaFile, error) {
	return m.UploadFunc(audit, kind, filename, mimeType, r)
}

func (m *mockMediaService) ListMedia(auditID string, page pagination.ListRequest) (*pagination.ListResponse[models.MediaFile], error) {
	return m.ListMediaFunc(auditID, page)
}

func (m *mockMediaService) GetMediaByID(mediaID string) (*models.MediaFile, error) {
	return m.GetMediaByIDFunc(mediaID)
}

func (m *mockMediaService) OpenStream(media *models.MediaFile) (io.ReadCloser, int64, error) {
	return m.OpenStreamFunc(media)
}

// mockFindingService implements services.FindingServicer with function fields.
type mockFindingService struct {
	CreateFindingFunc  func(auditID, title, description, severity, area, clauseRef string) (*models.Finding, error)
	ListFindingsFunc   func(auditID string, includeEvidence bool, page pagination.ListRequest) (*pagination.ListResponse[models.Finding], error)
	GetFindingByIDFunc func(findingID string) (*models.Finding, error)
	AttachEvidenceFunc func(finding *models.Finding, mediaFileID, note string) (*models.Evidence, error)
}

var _ services.FindingServicer = (*mockFindingService)(nil)

func (m *mockFindingService) CreateFinding(auditID, title, description, severity, area, clauseRef string) (*models.Finding, error) {
	return m.CreateFindingFunc(auditID, title, description, severity, area, clauseRef)
}

func (m *mockFindingService) ListFindings(auditID string, includeEvidence bool, page pagination.ListRequest) (*pagination.ListResponse[models.Finding], error) {
	return m.ListFindingsFunc(auditID, includeEvidence, page)
}

func (m *mockFindingService) GetFindingByID(findingID string) (*models.Finding, error) {
	return m.GetFindingByIDFunc(findingID)
}

func (m *mockFindingService) AttachEvidence(finding *models.Finding, mediaFileID, note string) (*models.Evidence, error) {
	return m.AttachEvidenceFunc(finding, mediaFileID, note)
}

// mockActivityService records logged actions without a database.
type mockActivityService struct {
	Actions []string
}

var _ services.ActivityServicer = (*mockActivityService)(nil)

func (m *mockActivityService) Log(userID, action, resourceType, resourceID, ipAddress string, changes map[string]interface{}) {
	m.Actions = append(m.Actions, action)
}

func ownedAudit(id, userID string) *models.Audit {
	audit := &models.Audit{UserID: &userID, Title: "Test Audit"}
	audit.ID = id
	return audit
}
