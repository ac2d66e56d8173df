package middleware

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"

	"github.com/taplog/attendance-backend-go/internal/domain/auth"
	"github.com/taplog/attendance-backend-go/internal/domain/user"
	"github.com/taplog/attendance-backend-go/internal/handler/http/response"
)

func AdminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, claims, err := jwtauth.FromContext(r.Context())
		if err != nil {
			response.HandleError(w, auth.ErrInvalidToken)
			return
		}

		admin, ok := claims["is_admin"].(bool)
		if !ok || !admin {
			response.HandleError(w, user.ErrAdminPrivilegeRequired)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// UserID extracts the authenticated user id from the verified token, or 0
// when the request carries none.
func UserID(r *http.Request) int64 {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return 0
	}
	id, ok := claims["user_id"].(float64)
	if !ok {
		return 0
	}
	return int64(id)
}
