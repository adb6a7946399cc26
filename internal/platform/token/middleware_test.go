package token

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bugdash_backend/internal/feature/auth/domain/entity"
	"bugdash_backend/internal/feature/auth/usecase"
)

type mockUserLookup struct {
	FindByIDFunc func(ctx context.Context, id uint) (*entity.User, error)
}

func (m *mockUserLookup) FindByID(ctx context.Context, id uint) (*entity.User, error) {
	return m.FindByIDFunc(ctx, id)
}

func setupAuthRouter(t *testing.T, svc *Service, users UserLookup) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.GET("/protected", AuthRequired(svc, users), func(c *gin.Context) {
		user, ok := CurrentUser(c)
		require.True(t, ok)
		c.JSON(http.StatusOK, gin.H{"id": user.ID})
	})
	return r
}

func TestAuthRequired(t *testing.T) {
	svc := newTestService()

	validToken, err := svc.IssueAccessToken(1)
	require.NoError(t, err)
	refreshToken, err := svc.IssueRefreshToken(1)
	require.NoError(t, err)

	expiredSvc := NewService("access-secret", "refresh-secret", -time.Hour, time.Hour)
	expiredToken, err := expiredSvc.IssueAccessToken(1)
	require.NoError(t, err)

	users := &mockUserLookup{
		FindByIDFunc: func(ctx context.Context, id uint) (*entity.User, error) {
			if id == 1 {
				return &entity.User{ID: 1, Email: "user@example.com"}, nil
			}
			return nil, usecase.ErrUserNotFound
		},
	}
	r := setupAuthRouter(t, svc, users)

	tests := []struct {
		name       string
		header     string
		wantStatus int
	}{
		{"valid token", "Bearer " + validToken, http.StatusOK},
		{"no header", "", http.StatusUnauthorized},
		{"not a bearer scheme", "Basic dXNlcjpwYXNz", http.StatusUnauthorized},
		{"garbage token", "Bearer garbage", http.StatusUnauthorized},
		{"expired token", "Bearer " + expiredToken, http.StatusUnauthorized},
		{"refresh token instead of access", "Bearer " + refreshToken, http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

// A syntactically valid token for a deleted account must not pass the gate.
func TestAuthRequired_UserGone(t *testing.T) {
	svc := newTestService()

	tok, err := svc.IssueAccessToken(999)
	require.NoError(t, err)

	users := &mockUserLookup{
		FindByIDFunc: func(ctx context.Context, id uint) (*entity.User, error) {
			return nil, usecase.ErrUserNotFound
		},
	}
	r := setupAuthRouter(t, svc, users)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Not authorized")
}

func TestCurrentUser_Empty(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	_, ok := CurrentUser(c)
	assert.False(t, ok)
}
