package token

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/capsort/capsort/internal/models"
)

const testSecret = "test-secret-key-that-is-long-enough-32"

func newTestService(t *testing.T) (*Service, *time.Time) {
	t.Helper()

	clock := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	s := NewService(Config{
		Secret:     []byte(testSecret),
		Issuer:     "capsort",
		SessionTTL: 7 * 24 * time.Hour,
		ResetTTL:   time.Hour,
	})
	s.now = func() time.Time { return clock }

	return s, &clock
}

// signRaw подписывает произвольные claims тем же секретом, что и сервис
func signRaw(t *testing.T, claims jwt.Claims) string {
	t.Helper()
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}

func TestSession_RoundTrip(t *testing.T) {
	s, clock := newTestService(t)

	tok, expiresAt, err := s.IssueSession(42, models.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, clock.Add(7*24*time.Hour), expiresAt)

	claims, err := s.VerifySession(tok)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, models.RoleAdmin, claims.Role)
	assert.Equal(t, TypeSession, claims.Type)
	assert.Equal(t, "42", claims.Subject)
}

func TestSession_Expired(t *testing.T) {
	s, clock := newTestService(t)

	tok, _, err := s.IssueSession(1, models.RoleStudent)
	require.NoError(t, err)

	*clock = clock.Add(7*24*time.Hour + time.Second)

	_, err = s.VerifySession(tok)
	assert.ErrorIs(t, err, ErrTokenExpired)
	assert.NotErrorIs(t, err, ErrTokenInvalid)
}

func TestSession_InvalidTokens(t *testing.T) {
	s, _ := newTestService(t)

	valid, _, err := s.IssueSession(1, models.RoleStudent)
	require.NoError(t, err)

	other := NewService(Config{Secret: []byte("another-secret-another-secret-00"), Issuer: "capsort", SessionTTL: time.Hour})
	foreign, _, err := other.IssueSession(1, models.RoleStudent)
	require.NoError(t, err)

	parts := strings.Split(valid, ".")
	require.Len(t, parts, 3)
	tampered := parts[0] + "." + parts[1] + "x." + parts[2]

	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, SessionClaims{UserID: 1, Type: TypeSession})
	noneToken, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{name: "empty", token: ""},
		{name: "garbage", token: "randomstring123"},
		{name: "malformed", token: "invalid.token.here"},
		{name: "wrong secret", token: foreign},
		{name: "tampered payload", token: tampered},
		{name: "alg none", token: noneToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.VerifySession(tt.token)
			assert.ErrorIs(t, err, ErrTokenInvalid)
		})
	}
}

func TestSession_IssuerMismatch(t *testing.T) {
	s, clock := newTestService(t)

	tok := signRaw(t, SessionClaims{
		UserID: 1,
		Role:   models.RoleStudent,
		Type:   TypeSession,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "someone-else",
			ExpiresAt: jwt.NewNumericDate(clock.Add(time.Hour)),
		},
	})

	_, err := s.VerifySession(tok)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestReset_RoundTrip(t *testing.T) {
	s, clock := newTestService(t)

	tok, expiresAt, err := s.IssueReset(7, "jane@example.edu")
	require.NoError(t, err)
	assert.Equal(t, clock.Add(time.Hour), expiresAt)

	claims, err := s.VerifyReset(tok)
	require.NoError(t, err)
	assert.Equal(t, int64(7), claims.UserID)
	assert.Equal(t, "jane@example.edu", claims.Email)
	assert.Equal(t, TypePasswordReset, claims.Type)
	assert.NotEmpty(t, claims.ID, "reset token must carry a jti")
}

func TestReset_UniqueIDs(t *testing.T) {
	s, _ := newTestService(t)

	tok1, _, err := s.IssueReset(7, "jane@example.edu")
	require.NoError(t, err)
	tok2, _, err := s.IssueReset(7, "jane@example.edu")
	require.NoError(t, err)

	c1, err := s.VerifyReset(tok1)
	require.NoError(t, err)
	c2, err := s.VerifyReset(tok2)
	require.NoError(t, err)

	assert.NotEqual(t, c1.ID, c2.ID)
}

func TestReset_Expired(t *testing.T) {
	s, clock := newTestService(t)

	tok, _, err := s.IssueReset(7, "jane@example.edu")
	require.NoError(t, err)

	*clock = clock.Add(61 * time.Minute)

	_, err = s.VerifyReset(tok)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestDiscriminator_Enforced(t *testing.T) {
	s, clock := newTestService(t)
	exp := jwt.NewNumericDate(clock.Add(time.Hour))

	session, _, err := s.IssueSession(7, models.RoleStudent)
	require.NoError(t, err)
	reset, _, err := s.IssueReset(7, "jane@example.edu")
	require.NoError(t, err)

	missingType := signRaw(t, ResetClaims{
		UserID:           7,
		Email:            "jane@example.edu",
		RegisteredClaims: jwt.RegisteredClaims{Issuer: "capsort", ExpiresAt: exp},
	})
	alteredType := signRaw(t, ResetClaims{
		UserID:           7,
		Email:            "jane@example.edu",
		Type:             "email-verification",
		RegisteredClaims: jwt.RegisteredClaims{Issuer: "capsort", ExpiresAt: exp},
	})

	t.Run("session token rejected as reset token", func(t *testing.T) {
		_, err := s.VerifyReset(session)
		assert.Error(t, err)
	})

	t.Run("reset token rejected as session token", func(t *testing.T) {
		_, err := s.VerifySession(reset)
		assert.ErrorIs(t, err, ErrWrongTokenType)
	})

	t.Run("missing type rejected", func(t *testing.T) {
		_, err := s.VerifyReset(missingType)
		assert.ErrorIs(t, err, ErrWrongTokenType)
	})

	t.Run("altered type rejected", func(t *testing.T) {
		_, err := s.VerifyReset(alteredType)
		assert.ErrorIs(t, err, ErrWrongTokenType)
	})
}

func TestNewService_CopiesSecret(t *testing.T) {
	secret := []byte(testSecret)
	s := NewService(Config{Secret: secret, Issuer: "capsort", SessionTTL: time.Hour})

	tok, _, err := s.IssueSession(1, models.RoleStudent)
	require.NoError(t, err)

	// Изменение исходного слайса не должно влиять на сервис
	secret[0] = 'X'

	_, err = s.VerifySession(tok)
	assert.NoError(t, err)
}
