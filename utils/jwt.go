package utils

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/jonboulle/clockwork"
	"github.com/tnqbao/gau-sequia-service/config"
	"github.com/tnqbao/gau-sequia-service/domain"
)

const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

type TokenPair struct {
	Access           string    `json:"access"`
	Refresh          string    `json:"refresh"`
	AccessExpiresAt  time.Time `json:"access_expires_at"`
	RefreshExpiresAt time.Time `json:"refresh_expires_at"`
}

func ExtractToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	parts := strings.Fields(authHeader)
	if len(parts) == 2 && strings.ToLower(parts[0]) == "bearer" {
		return parts[1]
	}
	return ""
}

func signingMethod(config *config.EnvConfig) jwt.SigningMethod {
	switch config.JWT.Algorithm {
	case "HS384":
		return jwt.SigningMethodHS384
	case "HS512":
		return jwt.SigningMethodHS512
	default:
		return jwt.SigningMethodHS256
	}
}

func GenerateToken(config *config.EnvConfig, clock clockwork.Clock, user *domain.User, tokenType string) (string, time.Time, error) {
	lifetime := config.JWT.AccessExpire
	if tokenType == TokenTypeRefresh {
		lifetime = config.JWT.RefreshExpire
	}

	now := clock.Now()
	expiresAt := now.Add(time.Duration(lifetime) * time.Second)
	claims := jwt.MapClaims{
		"user_id":    user.ID,
		"username":   user.Username,
		"token_type": tokenType,
		"iat":        now.Unix(),
		"exp":        expiresAt.Unix(),
	}

	signed, err := jwt.NewWithClaims(signingMethod(config), claims).SignedString([]byte(config.JWT.SecretKey))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign %s token: %w", tokenType, err)
	}
	return signed, expiresAt, nil
}

func GenerateTokenPair(config *config.EnvConfig, clock clockwork.Clock, user *domain.User) (*TokenPair, error) {
	access, accessExp, err := GenerateToken(config, clock, user, TokenTypeAccess)
	if err != nil {
		return nil, err
	}
	refresh, refreshExp, err := GenerateToken(config, clock, user, TokenTypeRefresh)
	if err != nil {
		return nil, err
	}
	return &TokenPair{
		Access:           access,
		Refresh:          refresh,
		AccessExpiresAt:  accessExp,
		RefreshExpiresAt: refreshExp,
	}, nil
}

func ParseToken(tokenString string, config *config.EnvConfig, clock clockwork.Clock) (*jwt.Token, error) {
	secret := []byte(config.JWT.SecretKey)
	return jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secret, nil
	}, jwt.WithTimeFunc(clock.Now), jwt.WithExpirationRequired())
}

// ParseTokenOfType parses and validates a token and checks its token_type claim.
func ParseTokenOfType(tokenString string, config *config.EnvConfig, clock clockwork.Clock, tokenType string) (jwt.MapClaims, error) {
	token, err := ParseToken(tokenString, config, clock)
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token claims")
	}
	if claims["token_type"] != tokenType {
		return nil, fmt.Errorf("expected %s token", tokenType)
	}
	return claims, nil
}

// UserIDFromClaims reads user_id, which JSON decoding turns into a float64.
func UserIDFromClaims(claims jwt.MapClaims) (uint, error) {
	raw, ok := claims["user_id"].(float64)
	if !ok || raw <= 0 || raw != float64(uint(raw)) {
		return 0, errors.New("Invalid user_id format")
	}
	return uint(raw), nil
}

func InjectClaimsToContext(c *gin.Context, claims jwt.MapClaims) error {
	userID, err := UserIDFromClaims(claims)
	if err != nil {
		return err
	}
	c.Set("user_id", userID)

	if username, ok := claims["username"].(string); ok {
		c.Set("username", username)
	} else {
		c.Set("username", "")
	}
	return nil
}

func GetUserIDFromContext(c *gin.Context) (uint, error) {
	userID, exists := c.Get("user_id")
	if !exists {
		return 0, errors.New("user_id is missing from context")
	}
	id, ok := userID.(uint)
	if !ok || id == 0 {
		return 0, errors.New("invalid user_id type in context")
	}
	return id, nil
}
