package http

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/cmlabs-hris/hr-backoffice-go/internal/config"
	"github.com/cmlabs-hris/hr-backoffice-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hr-backoffice-go/internal/domain/auth"
	"github.com/cmlabs-hris/hr-backoffice-go/internal/domain/dashboard"
	"github.com/cmlabs-hris/hr-backoffice-go/internal/domain/payroll"
	"github.com/cmlabs-hris/hr-backoffice-go/internal/handler/http/response"
	"github.com/cmlabs-hris/hr-backoffice-go/internal/pkg/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	handlerTestSecret    = "test-secret-key-for-jwt"
	handlerTestCompanyID = "0192a3b4-c5d6-7e8f-9a0b-1c2d3e4f5a6b"
)

type fakeAuthService struct {
	jwtService jwt.Service
}

func (f *fakeAuthService) Register(ctx context.Context, req auth.RegisterRequest) (auth.TokenResponse, error) {
	return f.Login(ctx, auth.LoginRequest{CompanyUsername: req.CompanyUsername, Password: req.Password})
}

func (f *fakeAuthService) Login(_ context.Context, req auth.LoginRequest) (auth.TokenResponse, error) {
	if req.CompanyUsername != "bakery" || req.Password != "password123" {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}
	token, expiresAt, err := f.jwtService.GenerateAccessToken(handlerTestCompanyID, auth.RoleAdmin)
	if err != nil {
		return auth.TokenResponse{}, err
	}
	return auth.TokenResponse{AccessToken: token, ExpiresAt: expiresAt, CompanyID: handlerTestCompanyID}, nil
}

func (f *fakeAuthService) Logout(_ context.Context, token string) error {
	if token != "" {
		f.jwtService.RevokeToken(token)
	}
	return nil
}

type fakeKioskTokens struct {
	active map[string]bool
}

func (f *fakeKioskTokens) IsKioskTokenRevoked(_ context.Context, token string) (bool, error) {
	return !f.active[token], nil
}

func issueKioskToken(t *testing.T, jwtService jwt.Service, store *fakeKioskTokens) string {
	t.Helper()
	token, _, err := jwtService.GenerateKioskToken(handlerTestCompanyID)
	require.NoError(t, err)
	store.active = map[string]bool{token: true}
	return token
}

type fakeAttendanceService struct {
	attendance.AttendanceService
	imported []string
}

func (f *fakeAttendanceService) List(_ context.Context, filter attendance.AttendanceFilter) (attendance.ListAttendanceResponse, error) {
	return attendance.ListAttendanceResponse{
		TotalCount:  45,
		Page:        filter.Page,
		Limit:       filter.Limit,
		TotalPages:  3,
		Attendances: []attendance.AttendanceResponse{},
	}, nil
}

func (f *fakeAttendanceService) Import(_ context.Context, filename string, _ []byte) (attendance.ImportResult, error) {
	f.imported = append(f.imported, filename)
	return attendance.ImportResult{Imported: 1}, nil
}

func (f *fakeAttendanceService) Sync(_ context.Context, batch attendance.SyncBatch) (attendance.SyncResponse, error) {
	if err := batch.Validate(); err != nil {
		return attendance.SyncResponse{}, err
	}
	return attendance.SyncResponse{Success: true, Synced: len(batch)}, nil
}

type fakeDashboardService struct{}

func (fakeDashboardService) GetDashboard(_ context.Context, date string) (*dashboard.DashboardResponse, error) {
	return &dashboard.DashboardResponse{Date: date}, nil
}

type fakePayrollService struct {
	payroll.PayrollService
}

func (fakePayrollService) ExportMonthlyReport(_ context.Context, month string) (payroll.ExportFile, error) {
	return payroll.ExportFile{
		Filename:    "payroll-" + month + ".xlsx",
		ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		Data:        []byte("PK"),
	}, nil
}

func newTestRouter(t *testing.T) (http.Handler, jwt.Service, *fakeKioskTokens) {
	t.Helper()
	jwtService := jwt.NewJWTService(handlerTestSecret, "1h", "24h", false)
	cfg := &config.Config{
		App:  config.AppConfig{Env: "test", LogLevel: "error"},
		CORS: config.CORSConfig{AllowedOrigins: []string{"http://localhost:3000"}},
	}

	attendanceService := &fakeAttendanceService{}
	kioskTokens := &fakeKioskTokens{active: map[string]bool{}}
	router := NewRouter(
		cfg,
		jwtService,
		kioskTokens,
		NewAuthHandler(jwtService, &fakeAuthService{jwtService: jwtService}),
		NewCompanyHandler(nil),
		NewEmployeeHandler(nil),
		NewAttendanceHandler(attendanceService),
		NewKioskHandler(attendanceService),
		NewPayrollHandler(fakePayrollService{}),
		NewLeaveHandler(nil),
		NewDashboardHandler(fakeDashboardService{}),
		NewEmployeeDashboardHandler(nil),
	)
	return router, jwtService, kioskTokens
}

func serve(router http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) response.Response {
	t.Helper()
	var resp response.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func login(t *testing.T, router http.Handler) *http.Cookie {
	t.Helper()
	body := `{"company_username":"bakery","password":"password123"}`
	rec := serve(router, httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewBufferString(body)))
	require.Equal(t, http.StatusOK, rec.Code)

	for _, c := range rec.Result().Cookies() {
		if c.Name == jwt.SessionCookieName {
			return c
		}
	}
	t.Fatal("login did not set a session cookie")
	return nil
}

func TestLogin_SetsSessionCookie(t *testing.T) {
	router, _, _ := newTestRouter(t)

	cookie := login(t, router)
	assert.NotEmpty(t, cookie.Value)
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, http.SameSiteLaxMode, cookie.SameSite)
}

func TestLogin_WrongPassword(t *testing.T) {
	router, _, _ := newTestRouter(t)

	body := `{"company_username":"bakery","password":"nope"}`
	rec := serve(router, httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewBufferString(body)))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, decodeEnvelope(t, rec).Success)
}

func TestLogin_MalformedBody(t *testing.T) {
	router, _, _ := newTestRouter(t)

	rec := serve(router, httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewBufferString("{")))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMe(t *testing.T) {
	router, _, _ := newTestRouter(t)

	rec := serve(router, httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, map[string]interface{}{"authenticated": false}, decodeEnvelope(t, rec).Data)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
	req.AddCookie(login(t, router))
	rec = serve(router, req)
	require.Equal(t, http.StatusOK, rec.Code)

	data, ok := decodeEnvelope(t, rec).Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, true, data["authenticated"])
	assert.Equal(t, auth.RoleAdmin, data["role"])
	assert.Equal(t, handlerTestCompanyID, data["company_id"])
}

func TestHRRoutes_RequireSession(t *testing.T) {
	router, _, _ := newTestRouter(t)

	rec := serve(router, httptest.NewRequest(http.MethodGet, "/api/v1/hr/dashboard", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/hr/dashboard?date=2025-03-10", nil)
	req.AddCookie(login(t, router))
	rec = serve(router, req)
	require.Equal(t, http.StatusOK, rec.Code)

	data, ok := decodeEnvelope(t, rec).Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "2025-03-10", data["date"])
}

func TestLogout_RevokesSession(t *testing.T) {
	router, jwtService, _ := newTestRouter(t)
	cookie := login(t, router)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/logout", nil)
	req.AddCookie(cookie)
	rec := serve(router, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, jwtService.IsTokenRevoked(cookie.Value))

	cleared := rec.Result().Cookies()
	require.Len(t, cleared, 1)
	assert.Equal(t, "", cleared[0].Value)
	assert.Equal(t, -1, cleared[0].MaxAge)

	req = httptest.NewRequest(http.MethodGet, "/api/v1/hr/dashboard", nil)
	req.AddCookie(cookie)
	rec = serve(router, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestKioskRoutes_RequireKioskToken(t *testing.T) {
	router, jwtService, kioskTokens := newTestRouter(t)

	adminToken, _, err := jwtService.GenerateAccessToken(handlerTestCompanyID, auth.RoleAdmin)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/kiosk/attendance/sync", nil)
	req.Header.Set("Authorization", "Bearer "+adminToken)
	assert.Equal(t, http.StatusForbidden, serve(router, req).Code)

	kioskToken := issueKioskToken(t, jwtService, kioskTokens)
	req = httptest.NewRequest(http.MethodGet, "/api/v1/kiosk/attendance/sync", nil)
	req.Header.Set("Authorization", "Bearer "+kioskToken)
	rec := serve(router, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var health attendance.HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &health))
	assert.True(t, health.OK)
	assert.NotEmpty(t, health.Timestamp)
}

func TestKioskRoutes_RejectReplacedToken(t *testing.T) {
	router, jwtService, kioskTokens := newTestRouter(t)

	unknown, _, err := jwtService.GenerateKioskToken(handlerTestCompanyID)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/kiosk/attendance/sync", nil)
	req.Header.Set("Authorization", "Bearer "+unknown)
	assert.Equal(t, http.StatusUnauthorized, serve(router, req).Code)

	old := issueKioskToken(t, jwtService, kioskTokens)
	current := issueKioskToken(t, jwtService, kioskTokens)

	req = httptest.NewRequest(http.MethodGet, "/api/v1/kiosk/attendance/sync", nil)
	req.Header.Set("Authorization", "Bearer "+old)
	rec := serve(router, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, auth.ErrTokenRevoked.Error(), decodeEnvelope(t, rec).Error.Message)

	req = httptest.NewRequest(http.MethodGet, "/api/v1/kiosk/attendance/sync", nil)
	req.Header.Set("Authorization", "Bearer "+current)
	assert.Equal(t, http.StatusOK, serve(router, req).Code)
}

func TestKioskSync(t *testing.T) {
	router, jwtService, kioskTokens := newTestRouter(t)
	kioskToken := issueKioskToken(t, jwtService, kioskTokens)

	t.Run("empty batch", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/kiosk/attendance/sync", bytes.NewBufferString("[]"))
		req.Header.Set("Authorization", "Bearer "+kioskToken)
		assert.Equal(t, http.StatusBadRequest, serve(router, req).Code)
	})

	t.Run("records", func(t *testing.T) {
		body := `[{"employee_id":"0192a3b4-c5d6-7e8f-9a0b-000000000001","attendance_date":"2025-03-10","check_in_time":"08:55","status":"auto"}]`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/kiosk/attendance/sync", bytes.NewBufferString(body))
		req.Header.Set("Authorization", "Bearer "+kioskToken)
		rec := serve(router, req)
		require.Equal(t, http.StatusOK, rec.Code)

		var result attendance.SyncResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
		assert.True(t, result.Success)
		assert.Equal(t, 1, result.Synced)
	})
}

func TestEmployeeProfile_MissingParams(t *testing.T) {
	router, _, _ := newTestRouter(t)

	rec := serve(router, httptest.NewRequest(http.MethodGet, "/api/v1/employee/profile?company=bakery", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestExportMonthlyReport_Attachment(t *testing.T) {
	router, _, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/hr/payroll/report/export?month=2025-03", nil)
	req.AddCookie(login(t, router))
	rec := serve(router, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, `attachment; filename="payroll-2025-03.xlsx"`, rec.Header().Get("Content-Disposition"))
	assert.Equal(t, "PK", rec.Body.String())
}

func TestAttendanceList_PaginationMeta(t *testing.T) {
	router, _, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/hr/attendance?page=2&limit=20", nil)
	req.AddCookie(login(t, router))
	rec := serve(router, req)
	require.Equal(t, http.StatusOK, rec.Code)

	meta := decodeEnvelope(t, rec).Meta
	require.NotNil(t, meta)
	assert.Equal(t, response.Meta{Page: 2, Limit: 20, TotalItems: 45, TotalPages: 3}, *meta)
}

func multipartUpload(t *testing.T, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	part, err := mw.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return body, mw.FormDataContentType()
}

func TestAttendanceImport_SizeLimit(t *testing.T) {
	router, _, _ := newTestRouter(t)
	cookie := login(t, router)

	body, contentType := multipartUpload(t, "big.xlsx", bytes.Repeat([]byte("x"), maxImportSize+1))
	req := httptest.NewRequest(http.MethodPost, "/api/v1/hr/attendance/import", body)
	req.Header.Set("Content-Type", contentType)
	req.AddCookie(cookie)
	rec := serve(router, req)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.True(t, strings.HasPrefix(decodeEnvelope(t, rec).Error.Message, "File too large"))

	body, contentType = multipartUpload(t, "small.xlsx", []byte("PK"))
	req = httptest.NewRequest(http.MethodPost, "/api/v1/hr/attendance/import", body)
	req.Header.Set("Content-Type", contentType)
	req.AddCookie(cookie)
	assert.Equal(t, http.StatusOK, serve(router, req).Code)
}
