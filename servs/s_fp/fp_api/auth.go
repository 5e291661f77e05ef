package fp_api

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rskv-p/fpmine/constant"
	"github.com/rskv-p/fpmine/pkg/x_cfg"
)

type jwtClaims struct {
	Username string `json:"sub"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

type contextKey string

const jwtContextKey = contextKey("jwt_claims")

// Auth issues and checks API tokens signed with a shared secret.
type Auth struct {
	key     []byte
	ttl     time.Duration
	enabled bool
}

// NewAuth builds the authenticator from the HTTP config.
func NewAuth(cfg x_cfg.HTTPConfig) *Auth {
	ttl := cfg.TokenTTL
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}
	return &Auth{key: []byte(cfg.JwtSecret), ttl: ttl, enabled: cfg.AuthEnabled}
}

// Enabled reports whether requests must carry a token.
func (a *Auth) Enabled() bool { return a.enabled }

// -------- JWT Token Generation --------

// IssueToken signs a token for username with role.
func (a *Auth) IssueToken(username, role string) (string, error) {
	if len(a.key) == 0 {
		return "", fmt.Errorf("jwt secret is not configured")
	}
	claims := jwtClaims{
		Username: username,
		Role:     role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(a.ttl)),
			Issuer:    constant.AppName,
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(a.key)
}

// parse validates tokenStr and returns its claims.
func (a *Auth) parse(tokenStr string) (*jwtClaims, error) {
	claims := &jwtClaims{}
	_, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (any, error) {
		return a.key, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", constant.ErrUnauthorized, err)
	}
	return claims, nil
}

// -------- Middleware: JWT Token Validation --------

// Middleware rejects requests without a valid token. requiredRole, when
// set, must match the token role; admin passes every role check.
func (a *Auth) Middleware(requiredRole string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !a.enabled {
				next.ServeHTTP(w, r)
				return
			}

			tokenStr := extractToken(r)
			if tokenStr == "" {
				writeError(w, http.StatusUnauthorized, constant.ErrUnauthorized)
				return
			}

			claims, err := a.parse(tokenStr)
			if err != nil {
				writeError(w, http.StatusUnauthorized, err)
				return
			}

			if requiredRole != "" && claims.Role != requiredRole && claims.Role != constant.RoleAdmin {
				writeError(w, http.StatusForbidden, fmt.Errorf("role %q required", requiredRole))
				return
			}

			ctx := context.WithValue(r.Context(), jwtContextKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// -------- Utility: Extract Token --------

// extractToken reads a Bearer header, or the token query parameter used by
// browser websocket clients.
func extractToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if strings.HasPrefix(h, "Bearer ") {
		return strings.TrimPrefix(h, "Bearer ")
	}
	return r.URL.Query().Get("token")
}

// UserFromContext returns the authenticated user, if any.
func UserFromContext(ctx context.Context) (username, role string, ok bool) {
	claims, ok := ctx.Value(jwtContextKey).(*jwtClaims)
	if !ok {
		return "", "", false
	}
	return claims.Username, claims.Role, true
}
