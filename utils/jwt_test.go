package utils

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tnqbao/gau-sequia-service/config"
	"github.com/tnqbao/gau-sequia-service/domain"
)

func testJWTConfig() *config.EnvConfig {
	cfg := &config.EnvConfig{}
	cfg.JWT.SecretKey = "test-secret"
	cfg.JWT.Algorithm = "HS256"
	cfg.JWT.AccessExpire = 3600
	cfg.JWT.RefreshExpire = 7 * 24 * 3600
	return cfg
}

func TestGenerateTokenPair_RoundTrip(t *testing.T) {
	cfg := testJWTConfig()
	clock := clockwork.NewFakeClockAt(time.Date(2024, time.May, 1, 12, 0, 0, 0, time.UTC))
	user := &domain.User{ID: 42, Username: "ana"}

	pair, err := GenerateTokenPair(cfg, clock, user)
	require.NoError(t, err)
	assert.Equal(t, clock.Now().Add(time.Hour), pair.AccessExpiresAt)
	assert.Equal(t, clock.Now().Add(7*24*time.Hour), pair.RefreshExpiresAt)

	claims, err := ParseTokenOfType(pair.Access, cfg, clock, TokenTypeAccess)
	require.NoError(t, err)
	id, err := UserIDFromClaims(claims)
	require.NoError(t, err)
	assert.Equal(t, uint(42), id)
	assert.Equal(t, "ana", claims["username"])

	_, err = ParseTokenOfType(pair.Refresh, cfg, clock, TokenTypeAccess)
	assert.Error(t, err)
	_, err = ParseTokenOfType(pair.Refresh, cfg, clock, TokenTypeRefresh)
	assert.NoError(t, err)
}

func TestParseToken_Expired(t *testing.T) {
	cfg := testJWTConfig()
	clock := clockwork.NewFakeClock()

	token, _, err := GenerateToken(cfg, clock, &domain.User{ID: 1, Username: "ana"}, TokenTypeAccess)
	require.NoError(t, err)

	clock.Advance(61 * time.Minute)
	_, err = ParseTokenOfType(token, cfg, clock, TokenTypeAccess)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestParseToken_WrongSecret(t *testing.T) {
	cfg := testJWTConfig()
	clock := clockwork.NewFakeClock()
	token, _, err := GenerateToken(cfg, clock, &domain.User{ID: 1}, TokenTypeAccess)
	require.NoError(t, err)

	other := testJWTConfig()
	other.JWT.SecretKey = "another-secret"
	_, err = ParseToken(token, other, clock)
	assert.ErrorIs(t, err, jwt.ErrTokenSignatureInvalid)
}

func TestUserIDFromClaims(t *testing.T) {
	_, err := UserIDFromClaims(jwt.MapClaims{"user_id": "7"})
	assert.Error(t, err)
	_, err = UserIDFromClaims(jwt.MapClaims{"user_id": 1.5})
	assert.Error(t, err)
	_, err = UserIDFromClaims(jwt.MapClaims{})
	assert.Error(t, err)

	id, err := UserIDFromClaims(jwt.MapClaims{"user_id": float64(9)})
	require.NoError(t, err)
	assert.Equal(t, uint(9), id)
}

func TestInjectClaimsToContext(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	require.NoError(t, InjectClaimsToContext(c, jwt.MapClaims{"user_id": float64(3), "username": "luis"}))
	id, err := GetUserIDFromContext(c)
	require.NoError(t, err)
	assert.Equal(t, uint(3), id)
	assert.Equal(t, "luis", c.GetString("username"))
}

func TestExtractToken(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Empty(t, ExtractToken(c))

	c.Request.Header.Set("Authorization", "Bearer abc.def.ghi")
	assert.Equal(t, "abc.def.ghi", ExtractToken(c))

	c.Request.Header.Set("Authorization", "Token abc")
	assert.Empty(t, ExtractToken(c))
}
