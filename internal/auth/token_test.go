package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestMintAndParse_RoundTrips(t *testing.T) {
	iss := NewIssuer("secret-a", time.Minute)

	token, err := iss.Mint("room-1", 2)
	require.NoError(t, err)

	claims, err := iss.Parse(token)
	require.NoError(t, err)
	require.Equal(t, "room-1", claims.RoomID)
	require.Equal(t, 2, claims.SeatIndex)
}

func TestParse_RejectsExpiredToken(t *testing.T) {
	iss := NewIssuer("secret-a", -time.Minute)

	token, err := iss.Mint("room-1", 0)
	require.NoError(t, err)

	_, err = iss.Parse(token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestParse_RejectsTokenFromADifferentSecret(t *testing.T) {
	minter := NewIssuer("secret-a", time.Minute)
	verifier := NewIssuer("secret-b", time.Minute)

	token, err := minter.Mint("room-1", 3)
	require.NoError(t, err)

	_, err = verifier.Parse(token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestParse_RejectsGarbage(t *testing.T) {
	iss := NewIssuer("secret-a", time.Minute)
	_, err := iss.Parse("not-a-jwt")
	require.ErrorIs(t, err, ErrInvalidToken)
}
