package router

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/cuongbtq/interniq-be/internal/api/domain"
	"github.com/cuongbtq/interniq-be/internal/api/handler"
	"github.com/cuongbtq/interniq-be/internal/api/model"
	"github.com/cuongbtq/interniq-be/internal/api/service"
	"github.com/cuongbtq/interniq-be/internal/api/storage"
	"github.com/cuongbtq/interniq-be/internal/api/storage/storagetest"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type testServer struct {
	t        *testing.T
	router   *gin.Engine
	store    *storage.Storage
	identity *service.Identity
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	client := storagetest.NewClient(t)
	store := storage.NewStorage(client)

	identity, err := service.NewIdentity(store, service.IdentityConfig{
		Secret:     "router-test-secret-0123456789",
		TokenTTL:   time.Hour,
		BcryptCost: bcrypt.MinCost,
	}, logger)
	require.NoError(t, err)

	companies, err := service.NewCompanies()
	require.NoError(t, err)

	catalog := service.NewCatalog(store, logger)
	deps := &handler.Dependencies{
		Logger:    logger,
		DBClient:  client,
		Catalog:   catalog,
		Tracker:   service.NewTracker(store, catalog, nil, service.TrackerConfig{IncrementRetries: 1}, logger),
		Scorer:    service.NewScorer(store, service.NewPlaceholderAnalyzer(1), nil, logger),
		Identity:  identity,
		Companies: companies,
		Activity:  service.NewActivityFeed(store),
	}

	return &testServer{t: t, router: SetupRouter(deps), store: store, identity: identity}
}

func (s *testServer) do(method, path, token string, body any) *httptest.ResponseRecorder {
	s.t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(s.t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *testServer) register(email string) string {
	s.t.Helper()
	w := s.do(http.MethodPost, "/api/v1/auth/register", "", gin.H{
		"name": "Student", "email": email, "password": "secret123",
	})
	require.Equal(s.t, http.StatusCreated, w.Code, w.Body.String())

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(s.t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Token
}

// adminToken registers a user and promotes it directly in the database
func (s *testServer) adminToken() string {
	s.t.Helper()
	s.register("admin@example.com")

	user, err := s.store.GetUserByEmail(context.Background(), "admin@example.com")
	require.NoError(s.t, err)
	require.NoError(s.t, s.store.SetUserRole(context.Background(), user.ID, domain.RoleAdmin))

	session, err := s.identity.Login(context.Background(), "admin@example.com", "secret123")
	require.NoError(s.t, err)
	return session.Token
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

type errorResponse struct {
	Success bool `json:"success"`
	Error   struct {
		Kind    string `json:"kind"`
		Message string `json:"message"`
	} `json:"error"`
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)
	w := s.do(http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "healthy")
}

func TestAuthFlow(t *testing.T) {
	s := newTestServer(t)
	token := s.register("ada@example.com")

	w := s.do(http.MethodGet, "/api/v1/auth/me", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"email":"ada@example.com"`)

	tests := []struct {
		name   string
		method string
		path   string
		token  string
		body   any
		status int
		kind   string
	}{
		{name: "duplicate registration", method: http.MethodPost, path: "/api/v1/auth/register",
			body: gin.H{"name": "A", "email": "ADA@example.com", "password": "secret123"}, status: http.StatusConflict, kind: "CONFLICT"},
		{name: "missing fields", method: http.MethodPost, path: "/api/v1/auth/register",
			body: gin.H{"email": "x@example.com"}, status: http.StatusBadRequest, kind: "VALIDATION"},
		{name: "wrong password", method: http.MethodPost, path: "/api/v1/auth/login",
			body: gin.H{"email": "ada@example.com", "password": "wrong-one"}, status: http.StatusUnauthorized, kind: "INVALID_CREDENTIALS"},
		{name: "no token", method: http.MethodGet, path: "/api/v1/auth/me", status: http.StatusUnauthorized, kind: "UNAUTHORIZED"},
		{name: "bad token", method: http.MethodGet, path: "/api/v1/applications", token: "abc.def.ghi", status: http.StatusUnauthorized, kind: "UNAUTHORIZED"},
		{name: "student creating a job", method: http.MethodPost, path: "/api/v1/jobs", token: token,
			body: gin.H{"title": "T", "company": "C", "location": "L", "field": "F"}, status: http.StatusForbidden, kind: "FORBIDDEN"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := s.do(tt.method, tt.path, tt.token, tt.body)
			assert.Equal(t, tt.status, w.Code)
			resp := decode[errorResponse](t, w)
			assert.False(t, resp.Success)
			assert.Equal(t, tt.kind, resp.Error.Kind)
			assert.NotEmpty(t, resp.Error.Message)
		})
	}

	w = s.do(http.MethodPost, "/api/v1/auth/logout", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestJobsAndApplications(t *testing.T) {
	s := newTestServer(t)
	admin := s.adminToken()
	student := s.register("student@example.com")

	w := s.do(http.MethodPost, "/api/v1/jobs", admin, gin.H{
		"title": "Design Intern", "company": "Apple", "location": "Cupertino, CA",
		"field": "Design", "stipend": "$9,000/month", "skills": []string{"Figma"},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	job := decode[struct {
		Job model.Job `json:"job"`
	}](t, w).Job
	assert.Equal(t, domain.JobTypeInternship, job.Type)

	w = s.do(http.MethodPost, "/api/v1/jobs", admin, gin.H{
		"title": "Backend Intern", "company": "Google", "location": "Remote",
		"field": "Software Development", "stipend": "$8,000/month", "type": "Contract",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = s.do(http.MethodGet, "/api/v1/jobs?field=Design&sortBy=stipend", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	list := decode[struct {
		Count int         `json:"count"`
		Jobs  []model.Job `json:"jobs"`
	}](t, w)
	require.Equal(t, 1, list.Count)
	assert.Equal(t, job.ID, list.Jobs[0].ID)

	w = s.do(http.MethodGet, "/api/v1/jobs?search=nothing-matches", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"jobs":[]`)

	w = s.do(http.MethodGet, "/api/v1/jobs/missing", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.do(http.MethodPost, "/api/v1/applications", student, gin.H{"jobId": job.ID, "isGoalCompany": true})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	app := decode[struct {
		Application model.Application `json:"application"`
	}](t, w).Application
	assert.Equal(t, domain.StatusApplied, app.Status)

	w = s.do(http.MethodPost, "/api/v1/applications", student, gin.H{"jobId": job.ID})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = s.do(http.MethodGet, "/api/v1/jobs/"+job.ID, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"applicantCount":1`)

	w = s.do(http.MethodGet, "/api/v1/applications", student, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"count":1`)
	assert.Contains(t, w.Body.String(), `"company":"Apple"`)

	w = s.do(http.MethodPatch, "/api/v1/applications/"+app.ID, student, gin.H{"status": "Selected", "notes": "Offer received"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"notes":"Offer received"`)

	w = s.do(http.MethodPatch, "/api/v1/applications/"+app.ID, student, gin.H{"status": "Rejected"})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "INVALID_TRANSITION", decode[errorResponse](t, w).Error.Kind)

	// Final applications reject unknown targets as transitions too
	w = s.do(http.MethodPatch, "/api/v1/applications/"+app.ID, student, gin.H{"status": "Hired"})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "INVALID_TRANSITION", decode[errorResponse](t, w).Error.Kind)

	other := s.register("other@example.com")
	w = s.do(http.MethodPatch, "/api/v1/applications/"+app.ID, other, gin.H{"status": "HR"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.do(http.MethodGet, "/api/v1/applications/summary", student, nil)
	require.Equal(t, http.StatusOK, w.Code)
	summary := decode[struct {
		Summary service.Summary `json:"summary"`
	}](t, w).Summary
	assert.Equal(t, 1, summary.Total)
	assert.Equal(t, 1, summary.GoalCompanies)
	assert.Equal(t, 100, summary.SuccessRate)
}

func TestResume(t *testing.T) {
	s := newTestServer(t)
	token := s.register("cv@example.com")

	w := s.do(http.MethodGet, "/api/v1/resume", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"resume":null`)

	w = s.do(http.MethodPost, "/api/v1/resume/upload", token, gin.H{})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	for _, name := range []string{"v1.pdf", "v2.pdf"} {
		w = s.do(http.MethodPost, "/api/v1/resume/upload", token, gin.H{"fileName": name})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		r := decode[struct {
			Resume model.Resume `json:"resume"`
		}](t, w).Resume
		assert.GreaterOrEqual(t, r.ATSScore, 70)
		assert.LessOrEqual(t, r.ATSScore, 99)
	}

	w = s.do(http.MethodGet, "/api/v1/resume", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"fileName":"v2.pdf"`)

	w = s.do(http.MethodGet, "/api/v1/resume/history", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"count":2`)
}

func TestCompanies(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodGet, "/api/v1/companies", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"name":"Google"`)

	w = s.do(http.MethodGet, "/api/v1/companies/Google", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"interviewRounds"`)

	w = s.do(http.MethodGet, "/api/v1/companies/Initech", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "NOT_FOUND", decode[errorResponse](t, w).Error.Kind)
}

func TestActivity(t *testing.T) {
	s := newTestServer(t)
	token := s.register("feed@example.com")

	w := s.do(http.MethodGet, "/api/v1/activity?limit=5", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"activities":[]`)
	assert.NotContains(t, w.Body.String(), "nextCursor")

	w = s.do(http.MethodGet, "/api/v1/activity?cursor=%25%25", token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(http.MethodGet, "/api/v1/activity", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCORSPreflight(t *testing.T) {
	s := newTestServer(t)
	w := s.do(http.MethodOptions, "/api/v1/jobs", "", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Credentials"))
}

func TestCORSMiddleware_AllowedOrigins(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(CORSMiddleware([]string{"https://app.interniq.dev/"}))
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	tests := []struct {
		name            string
		origin          string
		wantOrigin      string
		wantCredentials string
	}{
		{name: "listed origin is echoed", origin: "https://app.interniq.dev", wantOrigin: "https://app.interniq.dev", wantCredentials: "true"},
		{name: "other origin gets no grant", origin: "https://evil.example"},
		{name: "no origin header", origin: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/ping", nil)
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, tt.wantOrigin, w.Header().Get("Access-Control-Allow-Origin"))
			assert.Equal(t, tt.wantCredentials, w.Header().Get("Access-Control-Allow-Credentials"))
		})
	}
}

func TestLoggerMiddleware_RequestID(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodGet, "/health", "", nil)
	generated := w.Header().Get(RequestIDHeader)
	assert.NotEmpty(t, generated)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(RequestIDHeader, "req-42")
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	assert.Equal(t, "req-42", rec.Header().Get(RequestIDHeader))
}

func TestLoggerMiddleware_ErrorLevels(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantLevels []string
	}{
		{
			name:       "client error logs one warning",
			err:        domain.NewError(domain.KindNotFound, "job not found"),
			wantStatus: http.StatusNotFound,
			wantLevels: []string{"WARN"},
		},
		{
			name:       "conflict logs one warning",
			err:        domain.NewError(domain.KindConflict, "already applied to this job"),
			wantStatus: http.StatusConflict,
			wantLevels: []string{"WARN"},
		},
		{
			name:       "internal error logs the failure and the request",
			err:        errors.New("connection refused"),
			wantStatus: http.StatusInternalServerError,
			wantLevels: []string{"ERROR", "ERROR"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output := &bytes.Buffer{}
			logger := slog.New(slog.NewJSONHandler(output, nil))

			r := gin.New()
			r.Use(LoggerMiddleware(logger))
			r.GET("/fail", func(c *gin.Context) {
				handler.RespondError(c, logger, tt.err)
			})

			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/fail", nil))
			assert.Equal(t, tt.wantStatus, rec.Code)

			var levels, messages []string
			for _, line := range strings.Split(strings.TrimSpace(output.String()), "\n") {
				var entry map[string]any
				require.NoError(t, json.Unmarshal([]byte(line), &entry))
				levels = append(levels, entry["level"].(string))
				messages = append(messages, entry["msg"].(string))
			}
			assert.Equal(t, tt.wantLevels, levels)
			assert.Equal(t, "HTTP Request", messages[len(messages)-1])
		})
	}
}
