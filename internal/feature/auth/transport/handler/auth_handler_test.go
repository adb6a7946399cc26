package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bugdash_backend/internal/feature/auth/domain/entity"
	"bugdash_backend/internal/feature/auth/usecase"
)

type mockAuthUsecase struct {
	RegisterFunc func(ctx context.Context, name, email, password string) (*usecase.Result, error)
	LoginFunc    func(ctx context.Context, email, password string) (*usecase.Result, error)
	RefreshFunc  func(ctx context.Context, refreshToken string) (string, *entity.User, error)
	LogoutFunc   func(ctx context.Context, refreshToken string) error
}

func (m *mockAuthUsecase) Register(ctx context.Context, name, email, password string) (*usecase.Result, error) {
	return m.RegisterFunc(ctx, name, email, password)
}

func (m *mockAuthUsecase) Login(ctx context.Context, email, password string) (*usecase.Result, error) {
	return m.LoginFunc(ctx, email, password)
}

func (m *mockAuthUsecase) Refresh(ctx context.Context, refreshToken string) (string, *entity.User, error) {
	return m.RefreshFunc(ctx, refreshToken)
}

func (m *mockAuthUsecase) Logout(ctx context.Context, refreshToken string) error {
	return m.LogoutFunc(ctx, refreshToken)
}

func setupAuthRouter(auth AuthUsecase) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewAuthHandler(auth)

	r := gin.New()
	r.POST("/api/auth/register", h.Register)
	r.POST("/api/auth/login", h.Login)
	r.POST("/api/auth/refresh-token", h.Refresh)
	r.POST("/api/auth/logout", h.Logout)
	return r
}

func postJSON(r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func okResult() *usecase.Result {
	return &usecase.Result{
		AccessToken:  "access-token",
		RefreshToken: "refresh-token",
		User:         &entity.User{ID: 1, Name: "Alice", Email: "alice@example.com"},
	}
}

func TestAuthHandler_Register(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		register   func(ctx context.Context, name, email, password string) (*usecase.Result, error)
		wantStatus int
		wantBody   string
	}{
		{
			name: "success",
			body: `{"name":"Alice","email":"alice@example.com","password":"secret123"}`,
			register: func(ctx context.Context, name, email, password string) (*usecase.Result, error) {
				return okResult(), nil
			},
			wantStatus: http.StatusCreated,
			wantBody:   `"accessToken":"access-token"`,
		},
		{
			name:       "missing email",
			body:       `{"name":"Alice","password":"secret123"}`,
			wantStatus: http.StatusBadRequest,
			wantBody:   "Validation error",
		},
		{
			name:       "short password rejected by binding",
			body:       `{"name":"Alice","email":"alice@example.com","password":"123"}`,
			wantStatus: http.StatusBadRequest,
			wantBody:   "Validation error",
		},
		{
			name: "duplicate email",
			body: `{"name":"Alice","email":"alice@example.com","password":"secret123"}`,
			register: func(ctx context.Context, name, email, password string) (*usecase.Result, error) {
				return nil, usecase.ErrEmailAlreadyExists
			},
			wantStatus: http.StatusConflict,
			wantBody:   "User already exists",
		},
		{
			name: "usecase failure",
			body: `{"name":"Alice","email":"alice@example.com","password":"secret123"}`,
			register: func(ctx context.Context, name, email, password string) (*usecase.Result, error) {
				return nil, assert.AnError
			},
			wantStatus: http.StatusInternalServerError,
			wantBody:   "Server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := setupAuthRouter(&mockAuthUsecase{RegisterFunc: tt.register})

			w := postJSON(r, "/api/auth/register", tt.body)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.wantBody)
		})
	}
}

func TestAuthHandler_Login(t *testing.T) {
	t.Run("success returns token pair and user", func(t *testing.T) {
		r := setupAuthRouter(&mockAuthUsecase{
			LoginFunc: func(ctx context.Context, email, password string) (*usecase.Result, error) {
				return okResult(), nil
			},
		})

		w := postJSON(r, "/api/auth/login", `{"email":"alice@example.com","password":"secret123"}`)
		require.Equal(t, http.StatusOK, w.Code)

		var body map[string]json.RawMessage
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Contains(t, body, "accessToken")
		assert.Contains(t, body, "refreshToken")
		assert.Contains(t, body, "user")
		// The password hash must never appear in a response.
		assert.NotContains(t, w.Body.String(), "password")
	})

	t.Run("bad credentials", func(t *testing.T) {
		r := setupAuthRouter(&mockAuthUsecase{
			LoginFunc: func(ctx context.Context, email, password string) (*usecase.Result, error) {
				return nil, usecase.ErrInvalidCredentials
			},
		})

		w := postJSON(r, "/api/auth/login", `{"email":"alice@example.com","password":"wrong"}`)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "Invalid credentials")
	})

	t.Run("malformed body", func(t *testing.T) {
		r := setupAuthRouter(&mockAuthUsecase{})

		w := postJSON(r, "/api/auth/login", `{"email":`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestAuthHandler_Refresh(t *testing.T) {
	t.Run("success returns a new access token without rotating", func(t *testing.T) {
		r := setupAuthRouter(&mockAuthUsecase{
			RefreshFunc: func(ctx context.Context, refreshToken string) (string, *entity.User, error) {
				assert.Equal(t, "live-refresh", refreshToken)
				return "new-access", &entity.User{ID: 1, Email: "alice@example.com"}, nil
			},
		})

		w := postJSON(r, "/api/auth/refresh-token", `{"refreshToken":"live-refresh"}`)
		require.Equal(t, http.StatusOK, w.Code)

		assert.Contains(t, w.Body.String(), `"accessToken":"new-access"`)
		assert.NotContains(t, w.Body.String(), "refreshToken")
	})

	t.Run("invalid token", func(t *testing.T) {
		r := setupAuthRouter(&mockAuthUsecase{
			RefreshFunc: func(ctx context.Context, refreshToken string) (string, *entity.User, error) {
				return "", nil, usecase.ErrInvalidRefreshToken
			},
		})

		w := postJSON(r, "/api/auth/refresh-token", `{"refreshToken":"stale"}`)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "Invalid or expired refresh token")
	})

	t.Run("missing token field", func(t *testing.T) {
		r := setupAuthRouter(&mockAuthUsecase{})

		w := postJSON(r, "/api/auth/refresh-token", `{}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestAuthHandler_Logout(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		var gotToken string
		r := setupAuthRouter(&mockAuthUsecase{
			LogoutFunc: func(ctx context.Context, refreshToken string) error {
				gotToken = refreshToken
				return nil
			},
		})

		w := postJSON(r, "/api/auth/logout", `{"refreshToken":"live-refresh"}`)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Logged out successfully")
		assert.Equal(t, "live-refresh", gotToken)
	})

	t.Run("missing token field", func(t *testing.T) {
		r := setupAuthRouter(&mockAuthUsecase{})

		w := postJSON(r, "/api/auth/logout", `{}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
