package auth

import (
	"fmt"
	"time"

	"github.com/dgrijalva/jwt-go"

	"studymate-service/internal/domain"
)

// Claims is the identity carried by a signed token.
type Claims struct {
	UserID   int64
	Username string
}

// TokenSigner issues and verifies HS256 bearer tokens. The secret comes from
// configuration and is validated at startup; it is never a compiled-in
// literal.
type TokenSigner struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenSigner creates a signer with the given secret and token lifetime.
func NewTokenSigner(secret string, ttl time.Duration) *TokenSigner {
	return &TokenSigner{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

// NewTokenSignerWithClock is test-only for deterministic expiry.
func NewTokenSignerWithClock(secret string, ttl time.Duration, now func() time.Time) *TokenSigner {
	s := NewTokenSigner(secret, ttl)
	s.now = now
	return s
}

// Issue signs a token encoding the user's id and username.
func (s *TokenSigner) Issue(user domain.User) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":       user.ID,
		"username": user.Username,
		"exp":      s.now().Add(s.ttl).Unix(),
	})
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify parses and validates a token, returning the embedded claims.
// Expired, malformed, or wrongly signed tokens all fail.
func (s *TokenSigner) Verify(tokenString string) (Claims, error) {
	parser := jwt.Parser{ValidMethods: []string{jwt.SigningMethodHS256.Alg()}}
	token, err := parser.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return Claims{}, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return Claims{}, fmt.Errorf("invalid token claims")
	}

	id, ok := claims["id"].(float64)
	if !ok {
		return Claims{}, fmt.Errorf("token missing id claim")
	}
	username, ok := claims["username"].(string)
	if !ok {
		return Claims{}, fmt.Errorf("token missing username claim")
	}

	return Claims{UserID: int64(id), Username: username}, nil
}
