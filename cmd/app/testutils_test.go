package main

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/sushihentaime/folio/internal/aiservice"
	"github.com/sushihentaime/folio/internal/blogservice"
	"github.com/sushihentaime/folio/internal/byteservice"
	"github.com/sushihentaime/folio/internal/commentservice"
	"github.com/sushihentaime/folio/internal/common"
	"github.com/sushihentaime/folio/internal/contactservice"
	"github.com/sushihentaime/folio/internal/linkedinservice"
	"github.com/sushihentaime/folio/internal/newsletterservice"
	"github.com/sushihentaime/folio/internal/userservice"
	"golang.org/x/crypto/bcrypt"
)

type testServer struct {
	*httptest.Server
}

func newTestServer(t *testing.T, h http.Handler) *testServer {
	ts := httptest.NewServer(h)

	t.Cleanup(ts.Close)

	return &testServer{ts}
}

func readResponse(t *testing.T, res *http.Response) (int, http.Header, envelope) {
	defer res.Body.Close()

	responseBody, err := io.ReadAll(res.Body)
	require.NoError(t, err)

	var env envelope
	err = json.Unmarshal(responseBody, &env)
	require.NoError(t, err, string(responseBody))

	return res.StatusCode, res.Header, env
}

func testConfig() *Config {
	cfg := &Config{
		Environment:    "testing",
		Version:        "test",
		TrustedOrigins: []string{"http://example.com"},
	}
	cfg.Site = SiteConfig{Name: "Folio", URL: "https://example.com", Description: "notes and bytes"}

	return cfg
}

// newTestApplication wires every service against a fresh database. Events are
// published to a mock producer and the content generator is a mock.
func newTestApplication(t *testing.T) (*application, *sql.DB, *aiservice.MockGenerator) {
	db := common.TestDB("file://../../migrations", t)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	mb := new(common.MockMessageProducer)
	mb.On("Publish", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)

	g := new(aiservice.MockGenerator)
	ai := aiservice.NewAIService(g)

	app := &application{
		config:            testConfig(),
		logger:            logger,
		userService:       userservice.NewUserService(db, mb, nil),
		blogService:       blogservice.NewBlogService(db, common.NewCache(time.Minute, time.Minute)),
		byteService:       byteservice.NewByteService(db),
		commentService:    commentservice.NewCommentService(db),
		contactService:    contactservice.NewContactService(db, mb),
		newsletterService: newsletterservice.NewNewsletterService(db, mb),
		aiService:         ai,
		linkedInService:   linkedinservice.NewLinkedInService(db, ai),
		limiter:           common.NewRateLimiter(100, 100, time.Minute),
		formLimiter:       common.NewRateLimiter(100, 100, time.Minute),
	}

	return app, db, g
}

// createTestUser inserts an activated user with the given permissions and
// returns an access token for it.
func createTestUser(t *testing.T, app *application, db *sql.DB, username string, permissions ...userservice.Permission) string {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	hash, err := bcrypt.GenerateFromPassword([]byte("Test_1234!"), 12)
	require.NoError(t, err)

	var userId int
	err = db.QueryRowContext(ctx, "INSERT INTO users (username, email, password, activated) VALUES ($1, $2, $3, TRUE) RETURNING id",
		username, username+"@example.com", hash).Scan(&userId)
	require.NoError(t, err)

	for _, p := range permissions {
		_, err = db.ExecContext(ctx, "INSERT INTO user_permissions (user_id, permission) VALUES ($1, $2)", userId, p)
		require.NoError(t, err)
	}

	token, err := app.userService.LoginUser(ctx, username, "Test_1234!")
	require.NoError(t, err)

	return token.AccessTokenPlain
}

func (ts *testServer) do(t *testing.T, method, path, token string, payload any) (int, http.Header, envelope) {
	var body io.Reader
	if payload != nil {
		jsonPayload, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(jsonPayload)
	}

	req, err := http.NewRequest(method, ts.URL+path, body)
	require.NoError(t, err)

	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	res, err := ts.Client().Do(req)
	require.NoError(t, err)

	return readResponse(t, res)
}

func (ts *testServer) get(t *testing.T, path, token string) (int, http.Header, envelope) {
	return ts.do(t, http.MethodGet, path, token, nil)
}

func (ts *testServer) post(t *testing.T, path, token string, payload any) (int, http.Header, envelope) {
	return ts.do(t, http.MethodPost, path, token, payload)
}

func (ts *testServer) put(t *testing.T, path, token string, payload any) (int, http.Header, envelope) {
	return ts.do(t, http.MethodPut, path, token, payload)
}

func (ts *testServer) delete(t *testing.T, path, token string) (int, http.Header, envelope) {
	return ts.do(t, http.MethodDelete, path, token, nil)
}
