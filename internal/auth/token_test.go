package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestIssuer(t *testing.T) *TokenIssuer {
	t.Helper()
	issuer, err := NewTokenIssuer("access-secret", "refresh-secret", 15*time.Minute, 7*24*time.Hour)
	require.NoError(t, err)
	return issuer
}

func TestNewTokenIssuer_Validation(t *testing.T) {
	tests := []struct {
		name       string
		access     string
		refresh    string
		accessTTL  time.Duration
		refreshTTL time.Duration
		wantErr    bool
	}{
		{"valid", "a", "b", time.Minute, time.Hour, false},
		{"empty access secret", "", "b", time.Minute, time.Hour, true},
		{"empty refresh secret", "a", "", time.Minute, time.Hour, true},
		{"shared secret", "same", "same", time.Minute, time.Hour, true},
		{"zero access ttl", "a", "b", 0, time.Hour, true},
		{"negative refresh ttl", "a", "b", time.Minute, -time.Hour, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewTokenIssuer(tt.access, tt.refresh, tt.accessTTL, tt.refreshTTL)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrMisconfigured)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestTokenIssuer_AccessRoundTrip(t *testing.T) {
	issuer := newTestIssuer(t)
	id := uuid.New()

	raw, err := issuer.IssueAccess(AccessClaims{
		UserID:   id,
		Username: "alice",
		Email:    "alice@example.com",
		FullName: "Alice Liddell",
	})
	require.NoError(t, err)
	assert.Len(t, strings.Split(raw, "."), 3)

	claims, err := issuer.VerifyAccess(raw)
	require.NoError(t, err)
	assert.Equal(t, id, claims.UserID)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, "alice@example.com", claims.Email)
	assert.Equal(t, "Alice Liddell", claims.FullName)
	require.NotNil(t, claims.ExpiresAt)
	assert.WithinDuration(t, time.Now().Add(15*time.Minute), claims.ExpiresAt.Time, 5*time.Second)
}

func TestTokenIssuer_RefreshRoundTrip(t *testing.T) {
	issuer := newTestIssuer(t)
	id := uuid.New()

	first, err := issuer.IssueRefresh(id)
	require.NoError(t, err)
	second, err := issuer.IssueRefresh(id)
	require.NoError(t, err)
	assert.NotEqual(t, first, second)

	claims, err := issuer.VerifyRefresh(first)
	require.NoError(t, err)
	assert.Equal(t, id, claims.UserID)
}

func TestTokenIssuer_SecretsAreIsolated(t *testing.T) {
	issuer := newTestIssuer(t)
	id := uuid.New()

	access, err := issuer.IssueAccess(AccessClaims{UserID: id})
	require.NoError(t, err)
	refresh, err := issuer.IssueRefresh(id)
	require.NoError(t, err)

	_, err = issuer.VerifyRefresh(access)
	assert.ErrorIs(t, err, ErrTokenSignature)

	_, err = issuer.VerifyAccess(refresh)
	assert.ErrorIs(t, err, ErrTokenSignature)
}

func TestTokenIssuer_Expired(t *testing.T) {
	issuer := newTestIssuer(t)
	issuer.now = func() time.Time { return time.Now().Add(-time.Hour) }

	raw, err := issuer.IssueAccess(AccessClaims{UserID: uuid.New()})
	require.NoError(t, err)

	issuer.now = time.Now
	_, err = issuer.VerifyAccess(raw)
	assert.ErrorIs(t, err, ErrTokenExpired)
	assert.ErrorIs(t, err, ErrToken)
}

func TestTokenIssuer_Malformed(t *testing.T) {
	issuer := newTestIssuer(t)

	for _, raw := range []string{"", "garbage", "a.b.c"} {
		_, err := issuer.VerifyAccess(raw)
		assert.ErrorIs(t, err, ErrTokenMalformed, raw)
	}
}

func TestTokenIssuer_TamperedPayload(t *testing.T) {
	issuer := newTestIssuer(t)

	raw, err := issuer.IssueAccess(AccessClaims{UserID: uuid.New(), Username: "alice"})
	require.NoError(t, err)

	forged, err := issuer.IssueAccess(AccessClaims{UserID: uuid.New(), Username: "mallory"})
	require.NoError(t, err)

	parts := strings.Split(raw, ".")
	forgedParts := strings.Split(forged, ".")
	spliced := parts[0] + "." + forgedParts[1] + "." + parts[2]

	_, err = issuer.VerifyAccess(spliced)
	assert.ErrorIs(t, err, ErrTokenSignature)
}

func TestTokenIssuer_RejectsNonHMAC(t *testing.T) {
	issuer := newTestIssuer(t)

	claims := AccessClaims{
		UserID: uuid.New(),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	raw, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = issuer.VerifyAccess(raw)
	assert.ErrorIs(t, err, ErrToken)
}
