package jwt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgjwt "github.com/jhoicas/syncdesk-api/pkg/jwt"
)

const testSecret = "test-secret-key-for-unit-tests"

func TestGenerateAndParse(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, "idp", pkgjwt.Identity{UserID: "user-1", Email: "a@b.co"}, 60)
	require.NoError(t, err)

	id, err := pkgjwt.Parse(testSecret, "idp", tok)
	require.NoError(t, err)
	assert.Equal(t, "user-1", id.UserID)
	assert.Equal(t, "a@b.co", id.Email)
}

func TestParse_Expired(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, "", pkgjwt.Identity{UserID: "user-1"}, -1)
	require.NoError(t, err)

	_, err = pkgjwt.Parse(testSecret, "", tok)
	assert.Error(t, err)
}

func TestParse_WrongSecretOrIssuer(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, "idp", pkgjwt.Identity{UserID: "user-1"}, 60)
	require.NoError(t, err)

	_, err = pkgjwt.Parse("otro-secret", "idp", tok)
	assert.Error(t, err)

	_, err = pkgjwt.Parse(testSecret, "otro-emisor", tok)
	assert.Error(t, err)
}

func TestParse_EmptySubject(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, "", pkgjwt.Identity{}, 60)
	require.NoError(t, err)

	_, err = pkgjwt.Parse(testSecret, "", tok)
	assert.Error(t, err)
}
