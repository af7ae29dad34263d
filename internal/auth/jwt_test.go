package auth_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devmatch/devmatch/internal/auth"
)

func TestIssueParseRoundtrip(t *testing.T) {
	j := &auth.JWTer{Secret: []byte("test-secret"), TTL: time.Hour}

	token, err := j.Issue(42)
	require.NoError(t, err)

	uid, err := j.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, uint64(42), uid)
}

func TestParseExpired(t *testing.T) {
	j := &auth.JWTer{Secret: []byte("test-secret"), TTL: -time.Minute}

	token, err := j.Issue(42)
	require.NoError(t, err)

	_, err = j.Parse(token)
	assert.ErrorIs(t, err, auth.ErrExpired)
}

func TestParseRejectsWrongSecret(t *testing.T) {
	issuer := &auth.JWTer{Secret: []byte("test-secret"), TTL: time.Hour}
	verifier := &auth.JWTer{Secret: []byte("other-secret"), TTL: time.Hour}

	token, err := issuer.Issue(42)
	require.NoError(t, err)

	_, err = verifier.Parse(token)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, auth.ErrExpired)
}

func TestParseRejectsGarbage(t *testing.T) {
	j := &auth.JWTer{Secret: []byte("test-secret"), TTL: time.Hour}

	_, err := j.Parse("not.a.token")
	assert.Error(t, err)
}
