package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/Varun5711/recipebook/internal/auth"
	"github.com/Varun5711/recipebook/internal/logger"
	usermodel "github.com/Varun5711/recipebook/internal/models/user"
	"github.com/Varun5711/recipebook/internal/service"
)

type contextKey string

const (
	IdentityKey       contextKey = "identity"
	identityHolderKey contextKey = "identity_holder"
)

// identityHolder carries the resolved identity back out to AccessLog.
type identityHolder struct {
	identity string
}

func withIdentityHolder(ctx context.Context, holder *identityHolder) context.Context {
	return context.WithValue(ctx, identityHolderKey, holder)
}

// Authenticator verifies credentials presented on a request.
type Authenticator interface {
	Authenticate(ctx context.Context, email, password string) (*usermodel.User, error)
	ValidateToken(token string) (*auth.Claims, error)
}

type AuthMiddleware struct {
	authenticator Authenticator
	log           *logger.Logger
}

func NewAuthMiddleware(authenticator Authenticator) *AuthMiddleware {
	return &AuthMiddleware{
		authenticator: authenticator,
		log:           logger.New("auth-middleware"),
	}
}

// RequireAuth accepts either a Bearer token issued by /api/login or HTTP
// Basic credentials. The resolved identity is the account's stored email.
func (m *AuthMiddleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			unauthorized(w, "Authorization header required")
			return
		}

		var identity string
		if token, ok := strings.CutPrefix(authHeader, "Bearer "); ok {
			claims, err := m.authenticator.ValidateToken(strings.TrimSpace(token))
			if err != nil {
				m.log.Warn("Invalid token: %v", err)
				unauthorized(w, "Invalid or expired token")
				return
			}
			identity = claims.Email
		} else if email, password, ok := r.BasicAuth(); ok {
			user, err := m.authenticator.Authenticate(r.Context(), email, password)
			if errors.Is(err, service.ErrUnauthorized) {
				unauthorized(w, "Invalid email or password")
				return
			}
			if err != nil {
				m.log.Error("Failed to authenticate %s: %v", email, err)
				http.Error(w, "Internal server error", http.StatusInternalServerError)
				return
			}
			identity = user.Email
		} else {
			unauthorized(w, "Unsupported authorization scheme")
			return
		}

		if holder, ok := r.Context().Value(identityHolderKey).(*identityHolder); ok {
			holder.identity = identity
		}

		next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), identity)))
	})
}

func unauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("WWW-Authenticate", `Basic realm="recipebook"`)
	http.Error(w, message, http.StatusUnauthorized)
}

func WithIdentity(ctx context.Context, identity string) context.Context {
	return context.WithValue(ctx, IdentityKey, identity)
}

func GetIdentity(ctx context.Context) string {
	if identity, ok := ctx.Value(IdentityKey).(string); ok {
		return identity
	}
	return ""
}
