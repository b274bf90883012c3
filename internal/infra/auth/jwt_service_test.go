package auth

import (
	"strings"
	"testing"

	"fixly/config"
	"fixly/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestJWTService(t *testing.T) *jwtService {
	t.Helper()

	cfg := &config.Config{}
	cfg.SecretKey.Access = "test-access-secret"
	cfg.SecretKey.Refresh = "test-refresh-secret"

	svc, err := NewJWTService(cfg)
	require.NoError(t, err)

	return svc.(*jwtService)
}

func TestNewJWTService_RequiresSecrets(t *testing.T) {
	cfg := &config.Config{}
	cfg.SecretKey.Access = "only-access"

	_, err := NewJWTService(cfg)
	assert.Error(t, err)
}

func TestJWTService_GenerateAndValidateTokens(t *testing.T) {
	svc := newTestJWTService(t)
	userID := uuid.New()

	accessToken, refreshToken, err := svc.GenerateTokens(userID, entity.RoleProvider)
	require.NoError(t, err)
	require.NotEmpty(t, accessToken)
	require.NotEmpty(t, refreshToken)

	accessClaims, err := svc.ValidateAccessToken(accessToken)
	require.NoError(t, err)
	assert.Equal(t, userID, accessClaims.UserID)
	assert.Equal(t, entity.RoleProvider, accessClaims.Role)
	assert.Equal(t, "access", accessClaims.TokenType)

	refreshClaims, err := svc.ValidateRefreshToken(refreshToken)
	require.NoError(t, err)
	assert.Equal(t, userID, refreshClaims.UserID)
	// The refresh token carries no role claim.
	assert.Equal(t, entity.Role(""), refreshClaims.Role)
}

func TestJWTService_GenerateAccessToken(t *testing.T) {
	svc := newTestJWTService(t)
	userID := uuid.New()

	token, err := svc.GenerateAccessToken(userID, entity.RoleCustomer)
	require.NoError(t, err)

	claims, err := svc.ValidateAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, entity.RoleCustomer, claims.Role)
}

func TestJWTService_RepeatedIssuanceYieldsDistinctTokens(t *testing.T) {
	svc := newTestJWTService(t)
	userID := uuid.New()

	// Both issuances land within the same second, so the timestamp claims
	// alone cannot tell the tokens apart. The token ID has to.
	firstAccess, firstRefresh, err := svc.GenerateTokens(userID, entity.RoleCustomer)
	require.NoError(t, err)
	secondAccess, secondRefresh, err := svc.GenerateTokens(userID, entity.RoleCustomer)
	require.NoError(t, err)

	assert.NotEqual(t, firstAccess, secondAccess)
	assert.NotEqual(t, firstRefresh, secondRefresh)
	// The stored session hashes must differ too, or the second sign-in
	// collides with the first session's unique hash.
	assert.NotEqual(t, svc.HashToken(firstRefresh), svc.HashToken(secondRefresh))
}

func TestJWTService_RejectsWrongTokenType(t *testing.T) {
	svc := newTestJWTService(t)

	accessToken, refreshToken, err := svc.GenerateTokens(uuid.New(), entity.RoleCustomer)
	require.NoError(t, err)

	_, err = svc.ValidateAccessToken(refreshToken)
	assert.Error(t, err)

	_, err = svc.ValidateRefreshToken(accessToken)
	assert.Error(t, err)
}

func TestJWTService_RejectsTamperedToken(t *testing.T) {
	svc := newTestJWTService(t)

	accessToken, _, err := svc.GenerateTokens(uuid.New(), entity.RoleCustomer)
	require.NoError(t, err)

	parts := strings.Split(accessToken, ".")
	require.Len(t, parts, 3)
	tampered := parts[0] + "." + parts[1] + ".invalidsignature"

	_, err = svc.ValidateAccessToken(tampered)
	assert.Error(t, err)
}

func TestJWTService_RejectsTokenFromDifferentSecret(t *testing.T) {
	svc := newTestJWTService(t)

	otherCfg := &config.Config{}
	otherCfg.SecretKey.Access = "another-access-secret"
	otherCfg.SecretKey.Refresh = "another-refresh-secret"
	other, err := NewJWTService(otherCfg)
	require.NoError(t, err)

	accessToken, _, err := other.GenerateTokens(uuid.New(), entity.RoleCustomer)
	require.NoError(t, err)

	_, err = svc.ValidateAccessToken(accessToken)
	assert.Error(t, err)
}

func TestJWTService_HashToken(t *testing.T) {
	svc := newTestJWTService(t)

	first := svc.HashToken("some-refresh-token")
	second := svc.HashToken("some-refresh-token")
	other := svc.HashToken("another-refresh-token")

	assert.Equal(t, first, second)
	assert.NotEqual(t, first, other)
	// SHA-256 hex digest.
	assert.Len(t, first, 64)
	assert.NotContains(t, first, "some-refresh-token")
}
