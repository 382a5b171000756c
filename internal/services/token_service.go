package services

import (
	"fmt"
	"time"

	"tokoadmin/internal/apperror"
	"tokoadmin/internal/models"

	"github.com/dgrijalva/jwt-go"
)

// DefaultTokenTTL is how long an issued session token stays valid.
const DefaultTokenTTL = 4 * time.Hour

// Claims is the payload of a session token.
type Claims struct {
	UserID string      `json:"userId"`
	Role   models.Role `json:"role"`
	jwt.StandardClaims
}

// TokenService issues and verifies HS256 session tokens.
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenService creates a new TokenService.
func NewTokenService(secret string, ttl time.Duration) *TokenService {
	return &TokenService{
		secret: []byte(secret),
		ttl:    ttl,
	}
}

// Issue signs a token for user.
func (s *TokenService) Issue(user *models.User) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		UserID: user.ID,
		Role:   user.Role,
		StandardClaims: jwt.StandardClaims{
			Subject:   user.ID,
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(s.ttl).Unix(),
		},
	})
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return signed, nil
}

// Verify parses tokenString and returns its claims. Any problem, from a
// missing token to a bad signature or an expired one, is an
// apperror.ErrUnauthorized.
func (s *TokenService) Verify(tokenString string) (*Claims, error) {
	if tokenString == "" {
		return nil, apperror.Unauthorized("Authorization token required")
	}
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, apperror.Unauthorized("Invalid or expired token")
	}
	if claims.UserID == "" || claims.Role == "" {
		return nil, apperror.Unauthorized("Invalid token claims")
	}
	return claims, nil
}

// Authorize fails with apperror.ErrForbidden unless claims carry role.
func (s *TokenService) Authorize(claims *Claims, role models.Role) error {
	if claims == nil || claims.Role != role {
		return apperror.Forbidden("Access denied: " + string(role) + " role required")
	}
	return nil
}
