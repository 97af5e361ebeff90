package utils

import (
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type Claims struct {
	SessionID    uuid.UUID `json:"session_id"`
	UserDocument string    `json:"user_document"`
	DocType      string    `json:"doc_type"`
	UserName     string    `json:"user_name"`
	jwt.RegisteredClaims
}

// SessionLifetime bounds both the token and the session row it points at.
const SessionLifetime = 2 * time.Hour

func getJWTSecret() string {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		panic("FATAL: JWT_SECRET environment variable is not set. Refusing to start with an insecure configuration.")
	}
	return secret
}

func GenerateToken(sessionID uuid.UUID, userDocument, docType, userName string) (string, error) {
	secret := getJWTSecret()

	claims := Claims{
		SessionID:    sessionID,
		UserDocument: userDocument,
		DocType:      docType,
		UserName:     userName,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(SessionLifetime)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "agroweb-bff",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

func ValidateToken(tokenString string) (*Claims, error) {
	secret := getJWTSecret()

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})

	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, jwt.ErrSignatureInvalid
}
