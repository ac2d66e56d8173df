package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/taplog/attendance-backend-go/internal/domain/auth"
	"github.com/taplog/attendance-backend-go/internal/handler/http/response"
	authService "github.com/taplog/attendance-backend-go/internal/service/auth"
	"github.com/taplog/attendance-backend-go/internal/pkg/jwt"
)

type AuthHandler interface {
	Login(w http.ResponseWriter, r *http.Request)
	Refresh(w http.ResponseWriter, r *http.Request)
	Logout(w http.ResponseWriter, r *http.Request)
}

type authHandlerImpl struct {
	authService authService.AuthService
	jwtService  jwt.Service
}

func NewAuthHandler(svc authService.AuthService, jwtService jwt.Service) AuthHandler {
	return &authHandlerImpl{authService: svc, jwtService: jwtService}
}

// Login implements AuthHandler. The refresh token travels both in the body
// and as an HttpOnly cookie so browser and kiosk clients can each use
// whichever suits them.
func (h *authHandlerImpl) Login(w http.ResponseWriter, r *http.Request) {
	var req auth.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.authService.Login(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	http.SetCookie(w, h.jwtService.RefreshTokenCookie(result.RefreshToken, result.RefreshTokenExpiresIn))
	response.Success(w, result)
}

// Refresh implements AuthHandler. The token comes from the body or, failing
// that, the cookie set at login.
func (h *authHandlerImpl) Refresh(w http.ResponseWriter, r *http.Request) {
	token := refreshTokenFrom(r)
	if token == "" {
		response.HandleError(w, auth.ErrInvalidToken)
		return
	}

	result, err := h.authService.Refresh(r.Context(), token)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	http.SetCookie(w, h.jwtService.RefreshTokenCookie(result.RefreshToken, result.RefreshTokenExpiresIn))
	response.Success(w, result)
}

// Logout implements AuthHandler.
func (h *authHandlerImpl) Logout(w http.ResponseWriter, r *http.Request) {
	if token := refreshTokenFrom(r); token != "" {
		_ = h.authService.Logout(r.Context(), token)
	}

	expired := h.jwtService.RefreshTokenCookie("", time.Now().Add(-time.Hour).Unix())
	http.SetCookie(w, expired)
	response.SuccessWithMessage(w, "Logged out", nil)
}

func refreshTokenFrom(r *http.Request) string {
	var req auth.RefreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err == nil && req.RefreshToken != "" {
		return req.RefreshToken
	}
	if cookie, err := r.Cookie("refresh_token"); err == nil {
		return cookie.Value
	}
	return ""
}
