package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Skotchmaster/feb_ecommerce/internal/dbtest"
	"github.com/Skotchmaster/feb_ecommerce/internal/mykafka"
	"github.com/Skotchmaster/feb_ecommerce/internal/repo"
	"github.com/Skotchmaster/feb_ecommerce/internal/service"
	"github.com/Skotchmaster/feb_ecommerce/internal/tokens"
)

var testSecret = []byte("test-secret")

type testServer struct {
	e    *echo.Echo
	db   *gorm.DB
	deps *Deps
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gdb := dbtest.New(t)
	r := &repo.GormRepo{DB: gdb}

	authSvc := &service.AuthService{
		Repo:      r,
		Tokens:    tokens.NewIssuer(testSecret, time.Hour),
		Publisher: mykafka.Nop{},
	}
	deps := &Deps{
		AuthHandler:    &AuthHTTP{Svc: authSvc},
		ProductHandler: &ProductHTTP{Svc: &service.ProductService{Repo: r, Admins: authSvc, Publisher: mykafka.Nop{}}},
		JWTSecret:      testSecret,
		DB:             gdb,
	}

	e := echo.New()
	e.Pre(middleware.RemoveTrailingSlash())
	Register(e, deps)
	return &testServer{e: e, db: gdb, deps: deps}
}

func (s *testServer) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	return rec
}

func (s *testServer) login(t *testing.T, email, password string) string {
	t.Helper()
	rec := s.do(t, http.MethodPost, "/auth/login", "", map[string]string{"email": email, "password": password})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var res struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	require.NotEmpty(t, res.Token)
	return res.Token
}

func (s *testServer) register(t *testing.T, email, password string) {
	t.Helper()
	rec := s.do(t, http.MethodPost, "/auth/register", "", map[string]string{"email": email, "password": password})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
}

func (s *testServer) makeAdmin(t *testing.T, email string) {
	t.Helper()
	require.NoError(t, s.db.WithContext(context.Background()).
		Table("users").Where("email = ?", email).Update("is_admin", true).Error)
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}
