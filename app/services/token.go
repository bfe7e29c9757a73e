package services

import (
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	appErrors "github.com/pmpmaster/pmp-api/app/errors"
)

// sessionTokenTTL is fixed: a session lives 7 days from issuance and there
// is no server-side revocation, it simply expires.
const sessionTokenTTL = 7 * 24 * time.Hour

// jwtSecret is loaded lazily so we can validate it and avoid an empty secret.
var (
	jwtSecret     []byte
	secretLoadErr error
	secretOnce    sync.Once
)

func getJWTSecret() ([]byte, error) {
	secretOnce.Do(func() {
		val := os.Getenv("JWT_SECRET")
		if val == "" {
			secretLoadErr = fmt.Errorf("JWT_SECRET is not set")
			return
		}
		jwtSecret = []byte(val)
	})
	if secretLoadErr != nil {
		return nil, secretLoadErr
	}
	return jwtSecret, nil
}

// SessionClaims is the identity a session token asserts.
type SessionClaims struct {
	UserID int64  `json:"userId"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// Typed decode failures. Handlers map both to 401; the split exists so
// callers and tests can tell a stale session from a forged one.
var (
	ErrTokenExpired = errors.New("token expired")
	ErrTokenInvalid = errors.New("token invalid")
)

// GenerateSessionToken signs an HS256 session token for the given identity.
func GenerateSessionToken(userID int64, email, role string) (string, error) {
	secret, err := getJWTSecret()
	if err != nil {
		return "", err
	}

	now := time.Now()
	claims := SessionClaims{
		UserID: userID,
		Email:  email,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(sessionTokenTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// ValidateSessionToken parses and verifies a session token. Every failure
// path returns ErrTokenExpired or ErrTokenInvalid; attacker-controlled
// input can never panic here because the jwt library only ever returns
// errors for malformed tokens.
func ValidateSessionToken(tokenStr string) (*SessionClaims, error) {
	secret, err := getJWTSecret()
	if err != nil {
		return nil, err
	}

	token, err := jwt.ParseWithClaims(tokenStr, &SessionClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method")
		}
		return secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}

// TokenError maps a codec failure to the API error taxonomy.
func TokenError(err error) *appErrors.AppError {
	if errors.Is(err, ErrTokenExpired) {
		return appErrors.NewUnauthorized("token expired")
	}
	return appErrors.NewUnauthorized("invalid token")
}
