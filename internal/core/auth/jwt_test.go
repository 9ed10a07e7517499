package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newJWTer() *JWTer {
	return &JWTer{Secret: []byte("test-secret"), Issuer: "employee-directory", TTL: time.Hour}
}

func TestJWTer_IssueParse(t *testing.T) {
	j := newJWTer()
	tok, err := j.Issue("sid-1", "uid-1")
	require.NoError(t, err)

	c, err := j.Parse(tok)
	require.NoError(t, err)
	assert.Equal(t, "sid-1", c.ID)
	assert.Equal(t, "uid-1", c.Subject)
	assert.Equal(t, "employee-directory", c.Issuer)
}

func TestJWTer_RejectsTampering(t *testing.T) {
	j := newJWTer()
	tok, err := j.Issue("sid-1", "uid-1")
	require.NoError(t, err)

	other := &JWTer{Secret: []byte("other"), Issuer: j.Issuer, TTL: time.Hour}
	_, err = other.Parse(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)

	wrongIssuer := &JWTer{Secret: j.Secret, Issuer: "someone-else", TTL: time.Hour}
	_, err = wrongIssuer.Parse(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = j.Parse(tok + "x")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTer_Expired(t *testing.T) {
	j := newJWTer()
	j.TTL = -time.Minute
	tok, err := j.Issue("sid-1", "uid-1")
	require.NoError(t, err)

	_, err = j.Parse(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTer_RejectsOtherAlgorithms(t *testing.T) {
	j := newJWTer()
	claims := j.Registered(time.Hour)
	claims.ID, claims.Subject = "sid", "uid"
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString(j.Secret)
	require.NoError(t, err)

	_, err = j.Parse(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTer_MissingSessionID(t *testing.T) {
	j := newJWTer()
	tok, err := j.Sign(j.Registered(time.Hour))
	require.NoError(t, err)

	_, err = j.Parse(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
