package jwt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgjwt "github.com/EddyKilonzo/shopie/pkg/jwt"
)

const (
	testSecret = "test-secret-key-for-unit-tests"
	testUserID = "00000000-0000-0000-0000-000000000001"
	testEmail  = "alice@example.com"
	testIssuer = "shopie-test"
)

func TestGenerateAndParse_RoundTrip(t *testing.T) {
	token, err := pkgjwt.Generate(testSecret, testUserID, testEmail, "customer", testIssuer, 60)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userID, email, role, err := pkgjwt.Parse(testSecret, token)
	require.NoError(t, err)
	assert.Equal(t, testUserID, userID)
	assert.Equal(t, testEmail, email)
	assert.Equal(t, "customer", role)
}

func TestParse_WrongSecret(t *testing.T) {
	token, err := pkgjwt.Generate(testSecret, testUserID, testEmail, "customer", testIssuer, 60)
	require.NoError(t, err)

	_, _, _, err = pkgjwt.Parse("another-secret", token)
	assert.Error(t, err)
}

func TestParse_ExpiredToken(t *testing.T) {
	token, err := pkgjwt.Generate(testSecret, testUserID, testEmail, "customer", testIssuer, -1)
	require.NoError(t, err)

	_, _, _, err = pkgjwt.Parse(testSecret, token)
	assert.Error(t, err, "a token expired a minute ago must be rejected")
}

func TestParse_Garbage(t *testing.T) {
	_, _, _, err := pkgjwt.Parse(testSecret, "not.a.token")
	assert.Error(t, err)
}

func TestGenerate_EmptySecret(t *testing.T) {
	_, err := pkgjwt.Generate("", testUserID, testEmail, "customer", testIssuer, 60)
	assert.Error(t, err)
}
