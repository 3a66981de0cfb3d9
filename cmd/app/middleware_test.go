package main

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/sushihentaime/folio/internal/common"
	"github.com/sushihentaime/folio/internal/userservice"
)

func strptr(s string) *string {
	return &s
}

func newBareApplication() *application {
	return &application{
		config: testConfig(),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func okHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func TestRecoverPanic(t *testing.T) {
	app := newBareApplication()

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("something went wrong")
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	res := httptest.NewRecorder()

	app.recoverPanic(handler).ServeHTTP(res, req)

	assert.Equal(t, http.StatusInternalServerError, res.Code)
	assert.Equal(t, "close", res.Header().Get("Connection"))
}

func TestLogRequestSetsRequestID(t *testing.T) {
	app := newBareApplication()

	var seen string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = app.getRequestID(r)
		w.WriteHeader(http.StatusTeapot)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	res := httptest.NewRecorder()

	app.logRequest(handler).ServeHTTP(res, req)

	assert.Equal(t, http.StatusTeapot, res.Code)
	assert.NotEmpty(t, seen)
	assert.Equal(t, seen, res.Header().Get("X-Request-ID"))
}

func TestEnableCORS(t *testing.T) {
	app := newBareApplication()

	middleware := app.enableCORS(http.HandlerFunc(okHandler))

	tests := []struct {
		name                       string
		origin                     string
		method                     string
		accessControlRequestMethod *string
		expectedStatus             int
	}{
		{
			name:           "Valid Origin and Method",
			origin:         "http://example.com",
			method:         http.MethodGet,
			expectedStatus: http.StatusOK,
		},
		{
			name:                       "Valid Origin and Preflight Request",
			origin:                     "http://example.com",
			method:                     http.MethodOptions,
			accessControlRequestMethod: strptr(http.MethodPut),
			expectedStatus:             http.StatusOK,
		},
		{
			name:           "Invalid Origin",
			origin:         "http://invalid.com",
			method:         http.MethodGet,
			expectedStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "/", nil)
			req.Header.Set("Origin", tt.origin)
			if tt.accessControlRequestMethod != nil {
				req.Header.Set("Access-Control-Request-Method", *tt.accessControlRequestMethod)
			}

			res := httptest.NewRecorder()

			middleware.ServeHTTP(res, req)

			assert.Equal(t, tt.expectedStatus, res.Code)

			if tt.origin == "http://example.com" {
				assert.Equal(t, tt.origin, res.Header().Get("Access-Control-Allow-Origin"))
			} else {
				assert.Empty(t, res.Header().Get("Access-Control-Allow-Origin"))
			}

			if tt.accessControlRequestMethod != nil {
				assert.Equal(t, "OPTIONS, PUT, PATCH, DELETE", res.Header().Get("Access-Control-Allow-Methods"))
				assert.Equal(t, "Content-Type, Authorization", res.Header().Get("Access-Control-Allow-Headers"))
			} else {
				assert.Empty(t, res.Header().Get("Access-Control-Allow-Methods"))
			}
		})
	}
}

func TestRateLimit(t *testing.T) {
	tests := []struct {
		name           string
		enabled        bool
		requests       int
		expectedStatus int
	}{
		{name: "Within Limit", enabled: true, requests: 4, expectedStatus: http.StatusOK},
		{name: "Over Limit", enabled: true, requests: 6, expectedStatus: http.StatusTooManyRequests},
		{name: "Disabled", enabled: false, requests: 10, expectedStatus: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newBareApplication()
			app.config.Limiter.Enabled = tt.enabled
			app.limiter = common.NewRateLimiter(0.001, 4, 0)

			middleware := app.rateLimit(http.HandlerFunc(okHandler))

			var lastStatusCode int
			for i := 0; i < tt.requests; i++ {
				req := httptest.NewRequest(http.MethodGet, "/", nil)
				req.RemoteAddr = "192.0.2.1:1234"
				res := httptest.NewRecorder()

				middleware.ServeHTTP(res, req)
				lastStatusCode = res.Code
			}

			assert.Equal(t, tt.expectedStatus, lastStatusCode)
		})
	}
}

func TestFormRateLimitIsPerRoute(t *testing.T) {
	app := newBareApplication()
	app.config.Limiter.Enabled = true
	app.formLimiter = common.NewRateLimiter(0.001, 1, 0)

	handler := app.formRateLimit(okHandler)

	send := func(path, addr string) int {
		req := httptest.NewRequest(http.MethodPost, path, nil)
		req.RemoteAddr = addr
		res := httptest.NewRecorder()
		handler.ServeHTTP(res, req)
		return res.Code
	}

	assert.Equal(t, http.StatusOK, send("/api/contact", "192.0.2.1:1000"))
	assert.Equal(t, http.StatusTooManyRequests, send("/api/contact", "192.0.2.1:2000"))
	assert.Equal(t, http.StatusOK, send("/api/subscribe", "192.0.2.1:1000"))
	assert.Equal(t, http.StatusOK, send("/api/contact", "192.0.2.2:1000"))
}

func TestRequirePermission(t *testing.T) {
	tests := []struct {
		name           string
		user           *userservice.User
		expectedStatus int
	}{
		{
			name:           "Anonymous",
			user:           &userservice.AnonymousUser,
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "Not Activated",
			user:           &userservice.User{ID: 1, Permissions: userservice.Permissions{userservice.PermissionAdmin}},
			expectedStatus: http.StatusForbidden,
		},
		{
			name:           "Missing Permission",
			user:           &userservice.User{ID: 1, Activated: true, Permissions: userservice.Permissions{userservice.PermissionWriteBlog}},
			expectedStatus: http.StatusForbidden,
		},
		{
			name:           "Granted",
			user:           &userservice.User{ID: 1, Activated: true, Permissions: userservice.Permissions{userservice.PermissionAdmin}},
			expectedStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newBareApplication()

			handler := app.requirePermission(okHandler, userservice.PermissionAdmin)

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req = app.createUserContext(req, tt.user)
			res := httptest.NewRecorder()

			handler.ServeHTTP(res, req)

			assert.Equal(t, tt.expectedStatus, res.Code)
		})
	}
}

func TestExtractTokenFromHeader(t *testing.T) {
	app := newBareApplication()

	assert.Equal(t, "abc", app.extractTokenFromHeader("Bearer abc"))
	assert.Empty(t, app.extractTokenFromHeader("Basic abc"))
	assert.Empty(t, app.extractTokenFromHeader("Bearer"))
	assert.Empty(t, app.extractTokenFromHeader("Bearer a b"))
}
