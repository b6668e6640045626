package handler

import (
	"ThreadFarm/internal/api/config"
	"ThreadFarm/internal/api/dto"
	"ThreadFarm/internal/service"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubUserService struct {
	tokens map[string]string
}

func (s *stubUserService) Register(context.Context, *dto.RegisterDTO) error { return nil }

func (s *stubUserService) Login(context.Context, *dto.CredentialDTO) (*dto.LoginResultDTO, error) {
	return nil, nil
}

func (s *stubUserService) Logout(context.Context, string) error { return nil }

func (s *stubUserService) GetUserInfo(context.Context, uint64) (*dto.UserDTO, error) {
	return nil, nil
}

func (s *stubUserService) UpdateUserInfo(context.Context, uint64, *dto.UserUpdateDTO) (*dto.UserDTO, error) {
	return nil, nil
}

func (s *stubUserService) ExchangeAuthCode(_ context.Context, code string) (string, error) {
	token, ok := s.tokens[code]
	if !ok {
		return "", service.ErrAuthCodeIncorrect
	}
	return token, nil
}

func setupCallbackRouter(tokens map[string]string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	config.Cfg = &config.Config{
		Server: config.ServerConfig{
			CookieName:  "tf_session",
			LandingPath: "/dashboard",
		},
	}
	r := gin.New()
	h := NewUserHandler(&stubUserService{tokens: tokens})
	r.GET("/auth/callback", h.AuthCallback)
	return r
}

func TestAuthCallback_ValidCodeSetsCookieAndRedirects(t *testing.T) {
	r := setupCallbackRouter(map[string]string{"good-code": "jwt-token"})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/auth/callback?code=good-code&next=/create", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/create", w.Header().Get("Location"))

	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)
	assert.Equal(t, "tf_session", cookies[0].Name)
	assert.Equal(t, "jwt-token", cookies[0].Value)
}

func TestAuthCallback_DefaultsToLandingPath(t *testing.T) {
	r := setupCallbackRouter(map[string]string{"good-code": "jwt-token"})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/auth/callback?code=good-code", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/dashboard", w.Header().Get("Location"))
}

// 换码失败是浏览器场景，退回登录页而不是 JSON 报错
func TestAuthCallback_BadCodeRedirectsToLogin(t *testing.T) {
	r := setupCallbackRouter(map[string]string{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/auth/callback?code=expired", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
	assert.Empty(t, w.Result().Cookies())
}

func TestAuthCallback_ExternalNextFallsBackToLanding(t *testing.T) {
	r := setupCallbackRouter(map[string]string{"good-code": "jwt-token"})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/auth/callback?code=good-code&next=https://evil.example", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/dashboard", w.Header().Get("Location"))
}
