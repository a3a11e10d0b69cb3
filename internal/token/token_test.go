package token

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-that-is-long-enough-for-hmac"

func newTestService(t *testing.T, ttl time.Duration) *Service {
	t.Helper()
	svc, err := NewService(testSecret, ttl)
	require.NoError(t, err)
	return svc
}

func TestNewService_EmptySecret(t *testing.T) {
	_, err := NewService("", time.Hour)
	assert.Error(t, err)
}

func TestIssueAndVerify_RoundTrip(t *testing.T) {
	svc := newTestService(t, time.Hour)

	tok, err := svc.Issue(42)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	userID, err := svc.Verify(tok)
	assert.NoError(t, err)
	assert.Equal(t, uint(42), userID)
}

func TestVerify_WrongSecret(t *testing.T) {
	svc := newTestService(t, time.Hour)
	other, err := NewService("a-completely-different-secret-value", time.Hour)
	require.NoError(t, err)

	tok, err := svc.Issue(7)
	require.NoError(t, err)

	_, err = other.Verify(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_Expired(t *testing.T) {
	svc := newTestService(t, time.Hour)

	// Hand-craft an already expired token with otherwise valid claims.
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": "7",
		"iss": issuer,
		"aud": audience,
		"exp": now.Add(-time.Minute).Unix(),
		"iat": now.Add(-2 * time.Hour).Unix(),
		"nbf": now.Add(-2 * time.Hour).Unix(),
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = svc.Verify(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_WrongAudience(t *testing.T) {
	svc := newTestService(t, time.Hour)

	now := time.Now()
	claims := jwt.MapClaims{
		"sub": "7",
		"iss": issuer,
		"aud": "some-other-service",
		"exp": now.Add(time.Hour).Unix(),
		"iat": now.Unix(),
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = svc.Verify(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_WrongIssuer(t *testing.T) {
	svc := newTestService(t, time.Hour)

	now := time.Now()
	claims := jwt.MapClaims{
		"sub": "7",
		"iss": "someone-else",
		"aud": audience,
		"exp": now.Add(time.Hour).Unix(),
		"iat": now.Unix(),
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = svc.Verify(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_MissingExpiry(t *testing.T) {
	svc := newTestService(t, time.Hour)

	claims := jwt.MapClaims{
		"sub": "7",
		"iss": issuer,
		"aud": audience,
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = svc.Verify(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_UnsignedAlgorithmRejected(t *testing.T) {
	svc := newTestService(t, time.Hour)

	claims := jwt.MapClaims{
		"sub": "7",
		"iss": issuer,
		"aud": audience,
		"exp": time.Now().Add(time.Hour).Unix(),
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = svc.Verify(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_Garbage(t *testing.T) {
	svc := newTestService(t, time.Hour)

	for _, tok := range []string{"", "not-a-token", "a.b.c"} {
		_, err := svc.Verify(tok)
		assert.ErrorIs(t, err, ErrInvalidToken, "token %q", tok)
	}
}

func TestVerify_NonNumericSubject(t *testing.T) {
	svc := newTestService(t, time.Hour)

	now := time.Now()
	claims := jwt.MapClaims{
		"sub": "not-a-number",
		"iss": issuer,
		"aud": audience,
		"exp": now.Add(time.Hour).Unix(),
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = svc.Verify(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestIssue_DistinctTokens(t *testing.T) {
	svc := newTestService(t, time.Hour)

	a, err := svc.Issue(1)
	require.NoError(t, err)
	b, err := svc.Issue(1)
	require.NoError(t, err)

	// jti makes every issued token unique even for the same user
	assert.NotEqual(t, a, b)
}

func TestIssueAndVerify_LargeUserID(t *testing.T) {
	svc := newTestService(t, time.Hour)

	const id = uint(4294967295)
	tok, err := svc.Issue(id)
	require.NoError(t, err)

	got, err := svc.Verify(tok)
	require.NoError(t, err)
	assert.Equal(t, id, got)
}
