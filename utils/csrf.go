package utils

import (
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const csrfAudience = "csrf"

type csrfClaims struct {
	Intention string `json:"intention"`
	jwt.RegisteredClaims
}

// CSRFManager issues short-lived tokens bound to an intention (for example
// "delete12") and to the user that requested the form.
type CSRFManager struct {
	secret []byte
	ttl    time.Duration
}

func NewCSRFManager(secret string, ttl time.Duration) *CSRFManager {
	return &CSRFManager{secret: []byte(secret), ttl: ttl}
}

func (m *CSRFManager) Generate(intention string, userID uint) (string, error) {
	now := time.Now()
	claims := csrfClaims{
		Intention: intention,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(userID), 10),
			Audience:  jwt.ClaimStrings{csrfAudience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
}

func (m *CSRFManager) Valid(intention string, userID uint, tokenString string) bool {
	if tokenString == "" {
		return false
	}
	claims := &csrfClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithAudience(csrfAudience),
		jwt.WithSubject(strconv.FormatUint(uint64(userID), 10)),
	)
	if err != nil || !token.Valid {
		return false
	}
	return claims.Intention == intention
}
