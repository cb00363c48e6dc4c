// Package auth mints and verifies the reconnect tokens issued to
// players, the same HMAC-JWT pattern the rest of the codebase uses for
// session claims (common/jwts).
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("auth: invalid or expired reconnect token")

// ReconnectClaims identifies which room and seat a token belongs to,
// letting a reconnecting client be matched back to its vacant seat.
type ReconnectClaims struct {
	RoomID    string `json:"roomId"`
	SeatIndex int    `json:"seatIndex"`
	jwt.RegisteredClaims
}

// Issuer mints and parses reconnect tokens signed with a single
// process-wide HMAC secret.
type Issuer struct {
	secret []byte
	expiry time.Duration
}

func NewIssuer(secret string, expiry time.Duration) *Issuer {
	return &Issuer{secret: []byte(secret), expiry: expiry}
}

// Mint returns a signed reconnect token for the given seat.
func (iss *Issuer) Mint(roomID string, seatIndex int) (string, error) {
	claims := ReconnectClaims{
		RoomID:    roomID,
		SeatIndex: seatIndex,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(iss.expiry)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(iss.secret)
}

// Parse validates a reconnect token and returns its claims.
func (iss *Issuer) Parse(raw string) (*ReconnectClaims, error) {
	claims := &ReconnectClaims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		return iss.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
