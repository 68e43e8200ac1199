package utils

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// AccessClaims are carried by access tokens.
type AccessClaims struct {
	UserID   string `json:"_id"`
	Email    string `json:"email"`
	Username string `json:"username"`
	FullName string `json:"fullName"`
	jwt.RegisteredClaims
}

// RefreshClaims are carried by refresh tokens. They only identify the user.
type RefreshClaims struct {
	UserID string `json:"_id"`
	jwt.RegisteredClaims
}

// AccessTokenSubject is the identity embedded into an access token.
type AccessTokenSubject struct {
	UserID   string
	Email    string
	Username string
	FullName string
}

// GenerateAccessToken signs a short-lived access token for subject.
func GenerateAccessToken(subject AccessTokenSubject, secret string, expiryDuration time.Duration, issuer string) (string, time.Time, error) {
	registered, err := newRegisteredClaims(subject.UserID, expiryDuration, issuer)
	if err != nil {
		return "", time.Time{}, err
	}
	claims := AccessClaims{
		UserID:           subject.UserID,
		Email:            subject.Email,
		Username:         subject.Username,
		FullName:         subject.FullName,
		RegisteredClaims: registered,
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, registered.ExpiresAt.Time, nil
}

// GenerateRefreshToken signs a long-lived refresh token for userID.
func GenerateRefreshToken(userID string, secret string, expiryDuration time.Duration, issuer string) (string, time.Time, error) {
	registered, err := newRegisteredClaims(userID, expiryDuration, issuer)
	if err != nil {
		return "", time.Time{}, err
	}
	claims := RefreshClaims{UserID: userID, RegisteredClaims: registered}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, registered.ExpiresAt.Time, nil
}

// ParseAccessToken validates signature and expiry of an access token and returns its claims.
func ParseAccessToken(tokenString string, secretKey string) (*AccessClaims, error) {
	claims := &AccessClaims{}
	if err := parseWithClaims(tokenString, secretKey, claims); err != nil {
		return nil, err
	}
	if claims.UserID == "" {
		return nil, fmt.Errorf("%w: missing _id claim", jwt.ErrTokenInvalidClaims)
	}
	return claims, nil
}

// ParseRefreshToken validates signature and expiry of a refresh token and returns its claims.
func ParseRefreshToken(tokenString string, secretKey string) (*RefreshClaims, error) {
	claims := &RefreshClaims{}
	if err := parseWithClaims(tokenString, secretKey, claims); err != nil {
		return nil, err
	}
	if claims.UserID == "" {
		return nil, fmt.Errorf("%w: missing _id claim", jwt.ErrTokenInvalidClaims)
	}
	return claims, nil
}

func parseWithClaims(tokenString string, secretKey string, claims jwt.Claims) error {
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		// Don't forget to validate the alg is what you expect:
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secretKey), nil
	})
	if err != nil {
		return err // expired, signature invalid, malformed...
	}
	if !token.Valid {
		return jwt.ErrTokenSignatureInvalid
	}
	return nil
}

func newRegisteredClaims(userID string, expiryDuration time.Duration, issuer string) (jwt.RegisteredClaims, error) {
	if expiryDuration <= 0 {
		return jwt.RegisteredClaims{}, errors.New("token expiry must be positive")
	}
	now := time.Now()
	return jwt.RegisteredClaims{
		// jti keeps two tokens minted in the same second for the same user distinct.
		ID:        uuid.NewString(),
		Issuer:    issuer,
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(now.Add(expiryDuration)),
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
	}, nil
}
