package security

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	RoleMember = "member"
	RoleAdmin  = "admin"
)

var ErrInvalidToken = errors.New("invalid token")

// Claims is what the request pipeline needs from a verified access token.
type Claims struct {
	UserID string
	Role   string
}

// TokenManager verifies HS256 access tokens issued by the identity service.
type TokenManager struct {
	accessSecret []byte
}

func NewTokenManager(accessSecret string) *TokenManager {
	return &TokenManager{accessSecret: []byte(accessSecret)}
}

// Generate mints an access token. The identity service owns this in production;
// the app only uses it for local demo logins and tests.
func (m *TokenManager) Generate(userID, role string, ttl time.Duration) (string, error) {
	at := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  userID,
		"role": role,
		"exp":  time.Now().Add(ttl).Unix(),
		"type": "access",
	})
	return at.SignedString(m.accessSecret)
}

func (m *TokenManager) ValidateAccessToken(tokenStr string) (Claims, error) {
	token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return m.accessSecret, nil
	}, jwt.WithExpirationRequired())
	if err != nil {
		return Claims{}, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return Claims{}, ErrInvalidToken
	}
	if typ, _ := claims["type"].(string); typ != "access" {
		return Claims{}, ErrInvalidToken
	}
	sub, _ := claims["sub"].(string)
	if sub == "" {
		return Claims{}, ErrInvalidToken
	}
	role, _ := claims["role"].(string)
	if role == "" {
		role = RoleMember
	}
	return Claims{UserID: sub, Role: role}, nil
}
