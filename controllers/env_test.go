package controllers_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"cloud.google.com/go/auth/credentials/idtoken"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/vnkhanh/wild-series-backend/controllers"
	"github.com/vnkhanh/wild-series-backend/middleware"
	"github.com/vnkhanh/wild-series-backend/models"
	"github.com/vnkhanh/wild-series-backend/repository"
	"github.com/vnkhanh/wild-series-backend/routes"
	"github.com/vnkhanh/wild-series-backend/testutil"
	"github.com/vnkhanh/wild-series-backend/utils"
	"github.com/vnkhanh/wild-series-backend/ws"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeMailer struct {
	mu   sync.Mutex
	sent []utils.Email
	err  error
}

func (m *fakeMailer) Send(email utils.Email) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, email)
	return m.err
}

func (m *fakeMailer) Sent() []utils.Email {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]utils.Email(nil), m.sent...)
}

type testEnv struct {
	db     *gorm.DB
	router *gin.Engine
	jwt    *utils.JWTService
	csrf   *utils.CSRFManager
	mailer *fakeMailer
	hub    *ws.Hub

	horror *models.Category
	comedy *models.Category
	owner  *models.User
	other  *models.User
	admin  *models.User
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	return newTestEnvWithLimiter(t, middleware.NewRateLimiter(100))
}

func newTestEnvWithLimiter(t *testing.T, limiter *middleware.RateLimiter) *testEnv {
	t.Helper()
	db := testutil.NewTestDB(t)
	env := &testEnv{
		db:     db,
		jwt:    utils.NewJWTService("test-secret", 1),
		csrf:   utils.NewCSRFManager("test-secret", time.Hour),
		mailer: &fakeMailer{},
		hub:    ws.NewHub(nil),
		horror: testutil.CreateTestCategory(t, db, "Horreur"),
		comedy: testutil.CreateTestCategory(t, db, "Comédie"),
		owner:  testutil.CreateTestUser(t, db, "owner@example.com", models.RoleContributor),
		other:  testutil.CreateTestUser(t, db, "other@example.com"),
		admin:  testutil.CreateTestUser(t, db, "admin@example.com", models.RoleAdmin),
	}

	ctl := controllers.New(controllers.Options{
		Catalog:        repository.NewCatalog(db),
		JWT:            env.jwt,
		CSRF:           env.csrf,
		Mailer:         env.mailer,
		Hub:            env.hub,
		BaseURL:        "http://series.test",
		MailFrom:       "no-reply@series.test",
		MailTo:         "fan@series.test",
		GoogleClientID: "client-id",
		VerifyGoogle: func(_ context.Context, token, audience string) (*idtoken.Payload, error) {
			if token != "good-google-token" || audience != "client-id" {
				return nil, errors.New("invalid google token")
			}
			return &idtoken.Payload{Claims: map[string]interface{}{
				"email": "google@example.com",
				"name":  "Google Fan",
			}}, nil
		},
	})

	env.router = routes.SetupRouter(gin.New(), routes.Dependencies{
		DB:             db,
		JWT:            env.jwt,
		Controller:     ctl,
		WebSocket:      ws.NewHandler(env.hub, env.jwt, nil, nil),
		CommentLimiter: limiter,
	})
	return env
}

func (e *testEnv) token(t *testing.T, user *models.User) string {
	t.Helper()
	token, err := e.jwt.GenerateToken(user.ID, user.GetRoles())
	require.NoError(t, err)
	return token
}

func (e *testEnv) do(req *http.Request, token string) *httptest.ResponseRecorder {
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func (e *testEnv) get(path, token string) *httptest.ResponseRecorder {
	return e.do(httptest.NewRequest(http.MethodGet, path, nil), token)
}

func (e *testEnv) postForm(path string, values url.Values, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return e.do(req, token)
}

func (e *testEnv) postJSON(path, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return e.do(req, token)
}

func (e *testEnv) count(t *testing.T, model interface{}, query string, args ...interface{}) int64 {
	t.Helper()
	var n int64
	q := e.db.Model(model)
	if query != "" {
		q = q.Where(query, args...)
	}
	require.NoError(t, q.Count(&n).Error)
	return n
}
