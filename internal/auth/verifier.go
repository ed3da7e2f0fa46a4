package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"mystic-books/internal/model"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
)

// Identity is the verified caller attached to a request.
type Identity struct {
	Email string
	Role  string
}

// IsOperator reports whether the identity may use operator-scoped routes.
func (i Identity) IsOperator() bool {
	return model.IsOperator(i.Role)
}

// TokenVerifier turns a bearer token into a verified identity. The external
// issuer owns credentials; this side only checks signatures.
type TokenVerifier interface {
	Verify(token string) (Identity, error)
}

// Claims represents the token claims the issuer signs.
type Claims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// JWTVerifier verifies HMAC-signed tokens from the identity service.
type JWTVerifier struct {
	secretKey []byte
}

// NewJWTVerifier creates a verifier for the shared-secret scheme.
func NewJWTVerifier(secretKey string) *JWTVerifier {
	return &JWTVerifier{secretKey: []byte(secretKey)}
}

// Verify validates a token and returns the caller identity. A token
// without a role claim defaults to the plain user role.
func (v *JWTVerifier) Verify(tokenString string) (Identity, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return v.secretKey, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Identity{}, ErrExpiredToken
		}
		return Identity{}, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.Email == "" {
		return Identity{}, ErrInvalidToken
	}

	role := claims.Role
	if role == "" {
		role = model.RoleUser
	}

	return Identity{Email: claims.Email, Role: role}, nil
}

// Sign mints a token for the given identity. The API server never issues
// tokens in production; this exists for tests and local tooling.
func (v *JWTVerifier) Sign(email, role string, ttl time.Duration) (string, error) {
	claims := Claims{
		Email: email,
		Role:  role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Subject:   email,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(v.secretKey)
}
