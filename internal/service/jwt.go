package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var adminJWTSecret []byte

// InitAdminJWT sets the signing secret for admin session tokens.
func InitAdminJWT(secret string) {
	if secret == "" {
		panic("admin JWT secret is empty")
	}
	adminJWTSecret = []byte(secret)
}

// GenerateAdminToken issues a 24h admin session token.
func GenerateAdminToken(adminID string) (string, time.Time, error) {
	now := time.Now()
	expiry := now.Add(24 * time.Hour)

	claims := jwt.MapClaims{
		"admin_id": adminID,
		"exp":      expiry.Unix(),
		"iat":      now.Unix(),
		"nbf":      now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(adminJWTSecret)
	return signed, expiry, err
}

// ParseAdminToken validates an admin session token and returns the admin id.
func ParseAdminToken(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return adminJWTSecret, nil
	})
	if err != nil || !token.Valid {
		return "", errors.New("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", errors.New("invalid claims")
	}

	adminID, ok := claims["admin_id"].(string)
	if !ok || adminID == "" {
		return "", errors.New("admin_id not found")
	}
	return adminID, nil
}
