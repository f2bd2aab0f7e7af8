// Package auth issues and verifies the bearer tokens that guard write endpoints.
package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	apperrors "octofit-tracker/internal/errors"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

const claimsLocal = "auth.claims"

// Config holds signer and verification parameters
type Config struct {
	Secret string
	Issuer string
	TTL    time.Duration
}

// Claims is the caller identity extracted from a token
type Claims struct {
	Subject   string
	Role      string
	ExpiresAt time.Time
}

// ErrMissingToken is returned when the Authorization header is absent
var ErrMissingToken = errors.New("missing bearer token")

// ErrInvalidToken wraps parsing/validation errors
var ErrInvalidToken = errors.New("invalid bearer token")

// Issue signs an HS256 token for subject
func Issue(cfg Config, subject, role string, now time.Time) (string, error) {
	if subject == "" {
		return "", fmt.Errorf("subject is required")
	}
	claims := jwt.MapClaims{
		"sub":  subject,
		"role": role,
		"iss":  cfg.Issuer,
		"iat":  now.Unix(),
		"exp":  now.Add(cfg.TTL).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(cfg.Secret))
}

// Parse validates a token and returns its claims
func Parse(token string, cfg Config) (*Claims, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, ErrMissingToken
	}

	parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(cfg.Secret), nil
	},
		jwt.WithIssuer(cfg.Issuer),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok || !parsed.Valid {
		return nil, ErrInvalidToken
	}

	subject, _ := claims["sub"].(string)
	if subject == "" {
		return nil, ErrInvalidToken
	}
	role, _ := claims["role"].(string)

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return nil, ErrInvalidToken
	}

	return &Claims{
		Subject:   subject,
		Role:      role,
		ExpiresAt: exp.Time,
	}, nil
}

// RequireAuth rejects requests without a valid "Authorization: Bearer" token.
// Claims are stored on the context for ClaimsFrom.
func RequireAuth(cfg Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		token, found := strings.CutPrefix(header, "Bearer ")
		if !found {
			return apperrors.NewAuthenticationError(ErrMissingToken.Error())
		}

		claims, err := Parse(token, cfg)
		if err != nil {
			return apperrors.NewAuthenticationError(err.Error())
		}

		c.Locals(claimsLocal, claims)
		return c.Next()
	}
}

// ClaimsFrom returns the claims stored by RequireAuth, or nil
func ClaimsFrom(c *fiber.Ctx) *Claims {
	claims, _ := c.Locals(claimsLocal).(*Claims)
	return claims
}
