package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/niley1nov/LMS/internal/config"
	"github.com/niley1nov/LMS/internal/middleware"
	"github.com/niley1nov/LMS/internal/models"
	"github.com/niley1nov/LMS/internal/services"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// stubVerifier maps raw tokens to identities so sign-in works offline.
type stubVerifier struct {
	identities map[string]*services.GoogleClaims
}

func (s *stubVerifier) Verify(ctx context.Context, token string) (*services.GoogleClaims, error) {
	claims, ok := s.identities[token]
	if !ok {
		return nil, services.ErrInvalidIdentityToken
	}
	return claims, nil
}

type testServer struct {
	app *fiber.App
	db  *gorm.DB
	cfg *config.Config
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(
		&models.User{}, &models.Course{}, &models.Enrollment{}, &models.Module{}, &models.Unit{},
	))

	cfg := &config.Config{
		JWTSecret:   "test-secret",
		JWTExpiry:   time.Hour,
		AdminEmails: "admin@example.com",
	}

	verifier := &stubVerifier{identities: map[string]*services.GoogleClaims{
		"token-alice": {Sub: "sub-alice", Email: "alice@example.com", Name: "Alice"},
		"token-bob":   {Sub: "sub-bob", Email: "bob@example.com", Name: "Bob"},
		"token-admin": {Sub: "sub-admin", Email: "admin@example.com", Name: "Admin"},
	}}
	authService := services.NewAuthService(db, cfg, verifier)
	userService := services.NewUserService(db, cfg)
	courseService := services.NewCourseService(db, cfg)

	app := fiber.New()
	authHandler := NewAuthHandler(authService, cfg)
	userHandler := NewUserHandler(userService)
	courseHandler := NewCourseHandler(courseService)
	moduleHandler := NewModuleHandler(courseService)

	api := app.Group("/api/v1")
	api.Post("/auth/google", authHandler.GoogleSignIn)

	session := middleware.RequireUser(cfg, db)
	users := api.Group("/users", session)
	users.Get("/me", userHandler.Me)
	users.Get("/", userHandler.List)
	users.Get("/:id", userHandler.GetByID)
	users.Put("/:id", userHandler.Update)
	users.Delete("/:id", userHandler.Delete)

	courses := api.Group("/courses", session)
	courses.Get("/", courseHandler.List)
	courses.Post("/", courseHandler.Create)
	courses.Get("/:id", courseHandler.GetByID)
	courses.Post("/enroll", courseHandler.Enroll)
	courses.Get("/:course_id/modules", moduleHandler.ListByCourse)
	courses.Post("/:course_id/modules", moduleHandler.Create)

	return &testServer{app: app, db: db, cfg: cfg}
}

// signIn exchanges a stub identity token for the session cookie.
func (s *testServer) signIn(t *testing.T, token string) *http.Cookie {
	t.Helper()
	body, _ := json.Marshal(map[string]string{"token": token})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/google", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	for _, cookie := range resp.Cookies() {
		if cookie.Name == middleware.SessionCookie {
			require.True(t, cookie.HttpOnly)
			require.True(t, cookie.Secure)
			return cookie
		}
	}
	t.Fatal("session cookie not set")
	return nil
}

func (s *testServer) request(t *testing.T, method, path string, payload any, cookie *http.Cookie) *http.Response {
	t.Helper()
	var req *http.Request
	if payload != nil {
		body, err := json.Marshal(payload)
		require.NoError(t, err)
		req = httptest.NewRequest(method, path, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}
	resp, err := s.app.Test(req)
	require.NoError(t, err)
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func TestSignInRejectsUnknownToken(t *testing.T) {
	s := newTestServer(t)
	body, _ := json.Marshal(map[string]string{"token": "forged"})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/google", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestCoursesRequireSession(t *testing.T) {
	s := newTestServer(t)

	resp := s.request(t, http.MethodGet, "/api/v1/courses", nil, nil)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestCourseLifecycleOverHTTP(t *testing.T) {
	s := newTestServer(t)
	alice := s.signIn(t, "token-alice")
	bob := s.signIn(t, "token-bob")

	// Alice creates a course and becomes its teacher.
	resp := s.request(t, http.MethodPost, "/api/v1/courses", map[string]string{
		"name": "Compilers", "description": "Front to back",
	}, alice)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	course := decode[models.Course](t, resp)
	require.NotEqual(t, uuid.Nil, course.ID)
	require.Len(t, course.Enrollments, 1)

	// Bob is not enrolled: the course exists but is off limits.
	resp = s.request(t, http.MethodGet, "/api/v1/courses/"+course.ID.String(), nil, bob)
	require.Equal(t, http.StatusForbidden, resp.StatusCode)

	// A made-up id is NotFound for everyone.
	resp = s.request(t, http.MethodGet, "/api/v1/courses/"+uuid.NewString(), nil, bob)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)

	// Enroll Bob, then try the same pair again.
	var bobUser models.User
	require.NoError(t, s.db.Where("google_sub = ?", "sub-bob").First(&bobUser).Error)
	enrollBody := map[string]any{
		"user_id": bobUser.ID, "course_id": course.ID.String(), "role": "student",
	}
	resp = s.request(t, http.MethodPost, "/api/v1/courses/enroll", enrollBody, alice)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp = s.request(t, http.MethodPost, "/api/v1/courses/enroll", enrollBody, alice)
	require.Equal(t, http.StatusConflict, resp.StatusCode)

	// Now Bob can read the course.
	resp = s.request(t, http.MethodGet, "/api/v1/courses/"+course.ID.String(), nil, bob)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// Students cannot add modules; teachers can, once per position.
	moduleBody := map[string]any{"title": "Lexing", "order": 1}
	resp = s.request(t, http.MethodPost, fmt.Sprintf("/api/v1/courses/%s/modules", course.ID), moduleBody, bob)
	require.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp = s.request(t, http.MethodPost, fmt.Sprintf("/api/v1/courses/%s/modules", course.ID), moduleBody, alice)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp = s.request(t, http.MethodPost, fmt.Sprintf("/api/v1/courses/%s/modules", course.ID), map[string]any{
		"title": "Parsing", "order": 1,
	}, alice)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// Listing shows the module to any member.
	resp = s.request(t, http.MethodGet, fmt.Sprintf("/api/v1/courses/%s/modules", course.ID), nil, bob)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	modules := decode[[]models.Module](t, resp)
	require.Len(t, modules, 1)
	require.Equal(t, "Lexing", modules[0].Title)
}

func TestValidationErrorsReportFields(t *testing.T) {
	s := newTestServer(t)
	alice := s.signIn(t, "token-alice")

	resp := s.request(t, http.MethodPost, "/api/v1/courses", map[string]string{
		"description": "no name",
	}, alice)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var body struct {
		Error  bool              `json:"error"`
		Fields map[string]string `json:"fields"`
	}
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.True(t, body.Error)
	require.Contains(t, body.Fields, "name")
}
