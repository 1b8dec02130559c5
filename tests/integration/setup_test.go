package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"auditdesk/internal/handlers"
	"auditdesk/internal/logger"
	"auditdesk/internal/middleware"
	"auditdesk/internal/services"
	"auditdesk/internal/storage"
	"auditdesk/internal/testutil"
	"auditdesk/internal/validator"
)

// testApp holds the full application stack for integration tests.
type testApp struct {
	Router *gin.Engine
	Store  *storage.Adapter
}

func init() {
	gin.SetMode(gin.TestMode)
	logger.Init("test")
	validator.Register()
}

// setupApp wires the full stack against an isolated in-memory SQLite and a
// per-test storage directory. The DOCX template path points into the temp
// dir so template-missing behavior is the default.
func setupApp(t *testing.T) *testApp {
	t.Helper()

	db := testutil.SetupTestDB(t)
	t.Cleanup(func() { testutil.TeardownTestDB(t, db) })

	store, err := storage.NewAdapter(t.TempDir())
	if err != nil {
		t.Fatalf("failed to create storage adapter: %v", err)
	}

	const maxUploadBytes = 1 << 20
	const maxCSVBytes = 64 << 10

	userService := services.NewUserService(db)
	auditService := services.NewAuditService(db)
	mediaService := services.NewMediaService(db, store, maxUploadBytes)
	findingService := services.NewFindingService(db)
	activityService := services.NewActivityService(db)

	authHandler := handlers.NewAuthHandler(userService, activityService)
	auditHandler := handlers.NewAuditHandler(auditService, activityService)
	mediaHandler := handlers.NewMediaHandler(auditService, mediaService, activityService, maxUploadBytes)
	findingHandler := handlers.NewFindingHandler(auditService, findingService, activityService)
	reportHandler := handlers.NewReportHandler(auditService, activityService, maxCSVBytes, t.TempDir()+"/report.docx")

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.ErrorHandler())

	auth := router.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.GET("/me", middleware.AuthMiddleware(), authHandler.Me)

	v1 := router.Group("/api/v1")
	v1.Use(middleware.AuthMiddleware())

	audits := v1.Group("/audits")
	audits.POST("", auditHandler.CreateAudit)
	audits.GET("", auditHandler.ListAudits)
	audits.GET("/:id", auditHandler.GetAudit)

	audits.POST("/:id/media", mediaHandler.UploadMedia)
	audits.GET("/:id/media", mediaHandler.ListMedia)
	v1.GET("/media/:id/download", mediaHandler.DownloadMedia)

	audits.POST("/:id/findings", findingHandler.CreateFinding)
	audits.GET("/:id/findings", findingHandler.ListFindings)
	v1.POST("/findings/:id/evidence", findingHandler.AttachEvidence)

	audits.POST("/:id/report/upload", reportHandler.UploadReport)
	audits.GET("/:id/report", reportHandler.GetReport)
	audits.GET("/:id/report.pdf", reportHandler.GetReportPDF)
	audits.GET("/:id/report.xlsx", reportHandler.GetReportXLSX)
	audits.GET("/:id/report.docx", reportHandler.GetReportDOCX)

	return &testApp{Router: router, Store: store}
}

// request makes a JSON request to the test router and returns the recorder.
func (app *testApp) request(method, path, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	return rec
}

// upload makes a single-file multipart request to the test router.
func (app *testApp) upload(t *testing.T, path, filename, contents, token string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", filename)
	if err != nil {
		t.Fatalf("failed to create form file: %v", err)
	}
	if _, err := io.Copy(fw, strings.NewReader(contents)); err != nil {
		t.Fatalf("failed to write form file: %v", err)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("failed to close multipart writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	return rec
}

// parseJSON parses the response body into a map.
func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

// assertErrorCode checks the status and the error envelope code.
func assertErrorCode(t *testing.T, rec *httptest.ResponseRecorder, wantStatus int, wantCode string) {
	t.Helper()
	if rec.Code != wantStatus {
		t.Fatalf("expected %d, got %d: %s", wantStatus, rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	if result["code"] != wantCode {
		t.Errorf("expected code %s, got %v", wantCode, result["code"])
	}
}

// registerUser registers a new user and returns the token and user ID.
func (app *testApp) registerUser(t *testing.T, email, password string) (token, userID string) {
	t.Helper()
	body := fmt.Sprintf(`{"email":%q,"password":%q}`, email, password)
	rec := app.request("POST", "/auth/register", body, "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("register failed: %d %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	user := result["user"].(map[string]interface{})
	return result["token"].(string), user["id"].(string)
}

// createAudit creates an audit for the given caller and returns its ID.
func (app *testApp) createAudit(t *testing.T, token, title string) string {
	t.Helper()
	body := fmt.Sprintf(`{"title":%q,"site":"DC-1","standard":"ISO 27001","auditor":"Alice"}`, title)
	rec := app.request("POST", "/api/v1/audits", body, token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create audit failed: %d %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	audit := result["audit"].(map[string]interface{})
	return audit["id"].(string)
}
