package auth

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenGenerator issues and validates access tokens.
type TokenGenerator interface {
	GenerateAccessToken(userID string, email string) (token string, expiresAt time.Time, err error)
	ValidateToken(tokenString string) (*Claims, error)
}

type AuthTokens struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// Claims represents JWT token claims
type Claims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// Actor is the identity recorded on audit entries and created_by columns.
func (c *Claims) Actor() string {
	if c.Email != "" {
		return c.Email
	}
	return c.UserID
}

type contextKey string

const ContextClaimsKey contextKey = "claims"

func ContextWithClaims(ctx context.Context, c *Claims) context.Context {
	return context.WithValue(ctx, ContextClaimsKey, c)
}

// ClaimsFromContext returns the claims AuthMiddleware verified for this request.
func ClaimsFromContext(ctx context.Context) (*Claims, bool) {
	c, ok := ctx.Value(ContextClaimsKey).(*Claims)
	return c, ok
}
