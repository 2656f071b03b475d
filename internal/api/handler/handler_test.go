package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"shiftdesk/internal/dto"
	"shiftdesk/internal/model"
	"shiftdesk/internal/service"
	"shiftdesk/pkg/jwt"
	"shiftdesk/pkg/response"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// ═══════════════════════════════════════════════════════════
// Mock Services
// ═══════════════════════════════════════════════════════════

// ── Mock AuthService ──

type mockAuthService struct {
	loginResult      *dto.TokenResponse
	loginErr         error
	refreshResult    *dto.TokenResponse
	refreshErr       error
	logoutErr        error
	getCurrentResult *dto.EmployeeDetailResponse
	getCurrentErr    error
	changePassErr    error
}

func (m *mockAuthService) Login(_ context.Context, _ *dto.LoginRequest) (*dto.TokenResponse, error) {
	return m.loginResult, m.loginErr
}
func (m *mockAuthService) RefreshToken(_ context.Context, _ *dto.RefreshTokenRequest) (*dto.TokenResponse, error) {
	return m.refreshResult, m.refreshErr
}
func (m *mockAuthService) Logout(_ context.Context, _ *jwt.Claims) error {
	return m.logoutErr
}
func (m *mockAuthService) GetCurrentEmployee(_ context.Context, _ string) (*dto.EmployeeDetailResponse, error) {
	return m.getCurrentResult, m.getCurrentErr
}
func (m *mockAuthService) ChangePassword(_ context.Context, _ string, _ *dto.ChangePasswordRequest) error {
	return m.changePassErr
}

// ── Mock ShiftService ──

type mockShiftService struct {
	createResult    *dto.ShiftResponse
	createErr       error
	deleteErr       error
	rangeResult     []dto.ShiftResponse
	rangeErr        error
	mineResult      []dto.ShiftResponse
	mineErr         error
	futureResult    []dto.ShiftResponse
	futureErr       error
	availableResult []string
	conflictsResult []dto.ConflictingEmployee
	conflictsErr    error
}

func (m *mockShiftService) CreateShift(_ context.Context, _ *dto.CreateShiftRequest, _ string) (*dto.ShiftResponse, error) {
	return m.createResult, m.createErr
}
func (m *mockShiftService) DeleteShift(_ context.Context, _ string) error {
	return m.deleteErr
}
func (m *mockShiftService) ListByRange(_ context.Context, _, _ string) ([]dto.ShiftResponse, error) {
	return m.rangeResult, m.rangeErr
}
func (m *mockShiftService) ListMine(_ context.Context, _, _, _ string) ([]dto.ShiftResponse, error) {
	return m.mineResult, m.mineErr
}
func (m *mockShiftService) ListMyFuture(_ context.Context, _ string) ([]dto.ShiftResponse, error) {
	return m.futureResult, m.futureErr
}
func (m *mockShiftService) FindConflicts(_ context.Context, _ []string, _ time.Time, _, _ string) ([]string, []dto.ConflictingEmployee, error) {
	return m.availableResult, m.conflictsResult, m.conflictsErr
}

// ── Mock RequestService ──

type mockRequestService struct {
	exchangeResult   *dto.ExchangeCreateResponse
	exchangeErr      error
	additionResult   *dto.AdditionRequestResponse
	additionErr      error
	deletionResult   *dto.DeletionRequestResponse
	deletionErr      error
	approveErr       error
	rejectErr        error
	cancelErr        error
	pendingResult    *dto.PendingRequestsResponse
	pendingErr       error
	mineResult       *dto.MyRequestsResponse
	mineErr          error
	pendingDelResult []dto.DeletionRequestResponse
	pendingDelErr    error
}

func (m *mockRequestService) CreateExchange(_ context.Context, _ string, _ *dto.CreateExchangeRequest) (*dto.ExchangeCreateResponse, error) {
	return m.exchangeResult, m.exchangeErr
}
func (m *mockRequestService) CreateAddition(_ context.Context, _ string, _ *dto.CreateAdditionRequest) (*dto.AdditionRequestResponse, error) {
	return m.additionResult, m.additionErr
}
func (m *mockRequestService) CreateDeletion(_ context.Context, _ string, _ *dto.CreateDeletionRequest) (*dto.DeletionRequestResponse, error) {
	return m.deletionResult, m.deletionErr
}
func (m *mockRequestService) Approve(_ context.Context, _ model.RequestKind, _, _ string) error {
	return m.approveErr
}
func (m *mockRequestService) Reject(_ context.Context, _ model.RequestKind, _, _ string) error {
	return m.rejectErr
}
func (m *mockRequestService) CancelExchange(_ context.Context, _, _ string) error {
	return m.cancelErr
}
func (m *mockRequestService) ListPendingForMe(_ context.Context, _ string) (*dto.PendingRequestsResponse, error) {
	return m.pendingResult, m.pendingErr
}
func (m *mockRequestService) ListMine(_ context.Context, _ string) (*dto.MyRequestsResponse, error) {
	return m.mineResult, m.mineErr
}
func (m *mockRequestService) ListPendingDeletions(_ context.Context) ([]dto.DeletionRequestResponse, error) {
	return m.pendingDelResult, m.pendingDelErr
}

// ── Mock ExportService ──

type mockExportService struct {
	buf      *bytes.Buffer
	filename string
	err      error
}

func (m *mockExportService) ExportShifts(_ context.Context, _, _ string) (*bytes.Buffer, string, error) {
	return m.buf, m.filename, m.err
}
func (m *mockExportService) ExportMyCalendar(_ context.Context, _ string) (*bytes.Buffer, string, error) {
	return m.buf, m.filename, m.err
}

// ═══════════════════════════════════════════════════════════
// Test Helpers
// ═══════════════════════════════════════════════════════════

func setAuth(c *gin.Context) {
	c.Set("employee_id", "test-employee-id")
	c.Set("role", model.RoleOwner)
	c.Set("claims", &jwt.Claims{EmployeeID: "test-employee-id", Role: model.RoleOwner, TokenType: "access"})
}

func jsonBody(v interface{}) io.Reader {
	b, _ := json.Marshal(v)
	return bytes.NewReader(b)
}

func parseResponse(w *httptest.ResponseRecorder) response.Response {
	var resp response.Response
	json.Unmarshal(w.Body.Bytes(), &resp)
	return resp
}

// ═══════════════════════════════════════════════════════════
// AuthHandler Tests
// ═══════════════════════════════════════════════════════════

func TestAuthHandler_Login_Success(t *testing.T) {
	mock := &mockAuthService{
		loginResult: &dto.TokenResponse{
			AccessToken:  "test-access-token",
			RefreshToken: "test-refresh-token",
			ExpiresIn:    900,
		},
	}
	h := NewAuthHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/auth/login", jsonBody(dto.LoginRequest{
		Email:    "zhang@example.com",
		Password: "Test1234",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/auth/login", h.Login)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 0 {
		t.Errorf("expected code 0, got %d", resp.Code)
	}
}

func TestAuthHandler_Login_BadJSON(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/auth/login", bytes.NewReader([]byte("invalid json")))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/auth/login", h.Login)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{loginErr: service.ErrInvalidCredentials})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/auth/login", jsonBody(dto.LoginRequest{
		Email:    "zhang@example.com",
		Password: "wrong-pass",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/auth/login", h.Login)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 11001 {
		t.Errorf("expected error code 11001, got %d", resp.Code)
	}
}

func TestAuthHandler_RefreshToken_Success(t *testing.T) {
	mock := &mockAuthService{
		refreshResult: &dto.TokenResponse{
			AccessToken:  "new-access",
			RefreshToken: "new-refresh",
			ExpiresIn:    900,
		},
	}
	h := NewAuthHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/auth/refresh", jsonBody(dto.RefreshTokenRequest{
		RefreshToken: "old-refresh",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/auth/refresh", h.RefreshToken)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

func TestAuthHandler_RefreshToken_Invalid(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{refreshErr: service.ErrInvalidRefresh})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/auth/refresh", jsonBody(dto.RefreshTokenRequest{
		RefreshToken: "stale-refresh",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/auth/refresh", h.RefreshToken)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 11002 {
		t.Errorf("expected error code 11002, got %d", resp.Code)
	}
}

func TestAuthHandler_GetCurrentEmployee_Unauthenticated(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/auth/me", nil)

	r := gin.New()
	r.GET("/auth/me", h.GetCurrentEmployee)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
}

func TestAuthHandler_ChangePassword_WrongOldPassword(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{changePassErr: service.ErrOldPasswordWrong})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("PUT", "/auth/password", jsonBody(dto.ChangePasswordRequest{
		OldPassword: "Old12345",
		NewPassword: "New12345",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.PUT("/auth/password", func(c *gin.Context) {
		setAuth(c)
		h.ChangePassword(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 11003 {
		t.Errorf("expected error code 11003, got %d", resp.Code)
	}
}

func TestAuthHandler_Logout_Success(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/auth/logout", nil)

	r := gin.New()
	r.POST("/auth/logout", func(c *gin.Context) {
		setAuth(c)
		h.Logout(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// ShiftHandler Tests
// ═══════════════════════════════════════════════════════════

func TestShiftHandler_Create_Success(t *testing.T) {
	mock := &mockShiftService{
		createResult: &dto.ShiftResponse{
			ID:         "shift-1",
			EmployeeID: "11111111-1111-1111-1111-111111111111",
			WorkDate:   "2026-09-01",
			StartTime:  "09:00",
			EndTime:    "12:00",
		},
	}
	h := NewShiftHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/shifts", jsonBody(dto.CreateShiftRequest{
		EmployeeID: "11111111-1111-1111-1111-111111111111",
		WorkDate:   "2026-09-01",
		StartTime:  "09:00",
		EndTime:    "12:00",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/shifts", func(c *gin.Context) {
		setAuth(c)
		h.Create(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Errorf("expected 201, got %d", w.Code)
	}
}

func TestShiftHandler_Create_Conflict(t *testing.T) {
	mock := &mockShiftService{
		createErr: &service.ShiftConflictError{
			Existing: &model.Shift{ShiftID: "shift-1", StartTime: "09:00", EndTime: "12:00"},
		},
	}
	h := NewShiftHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/shifts", jsonBody(dto.CreateShiftRequest{
		EmployeeID: "11111111-1111-1111-1111-111111111111",
		WorkDate:   "2026-09-01",
		StartTime:  "10:00",
		EndTime:    "13:00",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/shifts", func(c *gin.Context) {
		setAuth(c)
		h.Create(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusConflict {
		t.Errorf("expected 409, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 13002 {
		t.Errorf("expected error code 13002, got %d", resp.Code)
	}
}

func TestShiftHandler_List_MissingRange(t *testing.T) {
	h := NewShiftHandler(&mockShiftService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/shifts", nil) // 缺 from/to

	r := gin.New()
	r.GET("/shifts", h.List)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestShiftHandler_Delete_NotFound(t *testing.T) {
	h := NewShiftHandler(&mockShiftService{deleteErr: service.ErrShiftNotFound})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("DELETE", "/shifts/missing-id", nil)

	r := gin.New()
	r.DELETE("/shifts/:id", h.Delete)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 13001 {
		t.Errorf("expected error code 13001, got %d", resp.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// RequestHandler Tests
// ═══════════════════════════════════════════════════════════

func TestRequestHandler_CreateExchange_Success(t *testing.T) {
	mock := &mockRequestService{
		exchangeResult: &dto.ExchangeCreateResponse{
			Requests: []dto.ExchangeRequestResponse{
				{RequestID: "req-1", Status: "pending"},
			},
		},
	}
	h := NewRequestHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/requests/exchanges", jsonBody(dto.CreateExchangeRequest{
		ShiftID:     "11111111-1111-1111-1111-111111111111",
		ApproverIDs: []string{"22222222-2222-2222-2222-222222222222"},
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/requests/exchanges", func(c *gin.Context) {
		setAuth(c)
		h.CreateExchange(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Errorf("expected 201, got %d", w.Code)
	}
}

func TestRequestHandler_CreateExchange_BadJSON(t *testing.T) {
	h := NewRequestHandler(&mockRequestService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/requests/exchanges", bytes.NewReader([]byte("bad")))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/requests/exchanges", func(c *gin.Context) {
		setAuth(c)
		h.CreateExchange(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestRequestHandler_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   int
	}{
		{"RequestNotFound", service.ErrRequestNotFound, 404, 14001},
		{"NoPermission", service.ErrNoPermission, 403, 14002},
		{"NotShiftHolder", service.ErrNotShiftHolder, 403, 14003},
		{"EmptyApprovers", service.ErrEmptyApproverList, 400, 14004},
		{"NoEligibleApprovers", service.ErrNoEligibleApprovers, 400, 14005},
		{"ShiftAlreadyDeleted", service.ErrShiftAlreadyDeleted, 409, 14006},
		{"DuplicateDeletion", service.ErrDeletionAlreadyRequested, 409, 14007},
		{"TargetUnavailable", &service.TargetUnavailableError{EmployeeName: "小李"}, 409, 14008},
		{"ReasonRequired", service.ErrReasonRequired, 400, 14010},
		{"ShiftNotFound", service.ErrShiftNotFound, 404, 13001},
		{"EmployeeMissing", service.ErrEmployeeMissing, 404, 12001},
		{"InternalError", errors.New("unknown"), 500, 50000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewRequestHandler(&mockRequestService{exchangeErr: tt.err})

			w := httptest.NewRecorder()
			req := httptest.NewRequest("POST", "/requests/exchanges", jsonBody(dto.CreateExchangeRequest{
				ShiftID:     "11111111-1111-1111-1111-111111111111",
				ApproverIDs: []string{"22222222-2222-2222-2222-222222222222"},
			}))
			req.Header.Set("Content-Type", "application/json")

			r := gin.New()
			r.POST("/requests/exchanges", func(c *gin.Context) {
				setAuth(c)
				h.CreateExchange(c)
			})
			r.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("expected status %d, got %d", tt.wantStatus, w.Code)
			}
			resp := parseResponse(w)
			if resp.Code != tt.wantCode {
				t.Errorf("expected code %d, got %d", tt.wantCode, resp.Code)
			}
		})
	}
}

func TestRequestHandler_ApproveExchange_Success(t *testing.T) {
	h := NewRequestHandler(&mockRequestService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/requests/exchanges/req-1/approve", nil)

	r := gin.New()
	r.POST("/requests/exchanges/:id/approve", func(c *gin.Context) {
		setAuth(c)
		h.ApproveExchange(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

func TestRequestHandler_ApproveDeletion_AlreadyProcessed(t *testing.T) {
	h := NewRequestHandler(&mockRequestService{approveErr: service.ErrRequestNotFound})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/requests/deletions/req-1/approve", nil)

	r := gin.New()
	r.POST("/requests/deletions/:id/approve", func(c *gin.Context) {
		setAuth(c)
		h.ApproveDeletion(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}

func TestRequestHandler_ListPendingForMe_Success(t *testing.T) {
	mock := &mockRequestService{
		pendingResult: &dto.PendingRequestsResponse{
			Exchanges: []dto.ExchangeRequestResponse{{RequestID: "req-1"}},
		},
	}
	h := NewRequestHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/requests/pending/me", nil)

	r := gin.New()
	r.GET("/requests/pending/me", func(c *gin.Context) {
		setAuth(c)
		h.ListPendingForMe(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// NotificationHandler Tests
// ═══════════════════════════════════════════════════════════

type mockNotificationService struct {
	listResult  []dto.NotificationResponse
	listTotal   int64
	listErr     error
	unreadCount int64
	unreadErr   error
	markReadErr error
	markAllErr  error
}

func (m *mockNotificationService) Push(_ context.Context, _, _, _, _ string, _, _ *string) {}
func (m *mockNotificationService) List(_ context.Context, _ string, _ *dto.NotificationListRequest) ([]dto.NotificationResponse, int64, error) {
	return m.listResult, m.listTotal, m.listErr
}
func (m *mockNotificationService) UnreadCount(_ context.Context, _ string) (int64, error) {
	return m.unreadCount, m.unreadErr
}
func (m *mockNotificationService) MarkRead(_ context.Context, _, _ string) error {
	return m.markReadErr
}
func (m *mockNotificationService) MarkAllRead(_ context.Context, _ string) error {
	return m.markAllErr
}

func TestNotificationHandler_List_Success(t *testing.T) {
	mock := &mockNotificationService{
		listResult: []dto.NotificationResponse{{ID: "notif-1", Title: "换班申请"}},
		listTotal:  1,
	}
	h := NewNotificationHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/notifications?page=1&page_size=10", nil)

	r := gin.New()
	r.GET("/notifications", func(c *gin.Context) {
		setAuth(c)
		h.List(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

func TestNotificationHandler_MarkRead_NotFound(t *testing.T) {
	h := NewNotificationHandler(&mockNotificationService{markReadErr: service.ErrNotificationNotFound})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("PUT", "/notifications/missing/read", nil)

	r := gin.New()
	r.PUT("/notifications/:id/read", func(c *gin.Context) {
		setAuth(c)
		h.MarkRead(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 15001 {
		t.Errorf("expected error code 15001, got %d", resp.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// ExportHandler Tests
// ═══════════════════════════════════════════════════════════

func TestExportHandler_ExportShifts_Success(t *testing.T) {
	mock := &mockExportService{
		buf:      bytes.NewBufferString("excel content"),
		filename: "排班表_2026-09-01_2026-09-07.xlsx",
	}
	h := NewExportHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/export/shifts?from=2026-09-01&to=2026-09-07", nil)

	r := gin.New()
	r.GET("/export/shifts", func(c *gin.Context) {
		setAuth(c)
		h.ExportShifts(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	ct := w.Header().Get("Content-Type")
	if ct != "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet" {
		t.Errorf("unexpected content type: %s", ct)
	}
	if w.Header().Get("Content-Disposition") == "" {
		t.Error("expected Content-Disposition header")
	}
}

func TestExportHandler_ExportShifts_MissingRange(t *testing.T) {
	h := NewExportHandler(&mockExportService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/export/shifts", nil)

	r := gin.New()
	r.GET("/export/shifts", func(c *gin.Context) {
		setAuth(c)
		h.ExportShifts(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestExportHandler_ExportShifts_NoShifts(t *testing.T) {
	h := NewExportHandler(&mockExportService{err: service.ErrExportNoShifts})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/export/shifts?from=2026-09-01&to=2026-09-07", nil)

	r := gin.New()
	r.GET("/export/shifts", func(c *gin.Context) {
		setAuth(c)
		h.ExportShifts(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 16001 {
		t.Errorf("expected error code 16001, got %d", resp.Code)
	}
}

func TestExportHandler_ExportMyCalendar_Success(t *testing.T) {
	mock := &mockExportService{
		buf:      bytes.NewBufferString("BEGIN:VCALENDAR"),
		filename: "my_shifts.ics",
	}
	h := NewExportHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/export/my/calendar", nil)

	r := gin.New()
	r.GET("/export/my/calendar", func(c *gin.Context) {
		setAuth(c)
		h.ExportMyCalendar(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}
