package middlewares

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jonboulle/clockwork"
	"github.com/tnqbao/gau-sequia-service/config"
	"github.com/tnqbao/gau-sequia-service/utils"
)

// AuthMiddleware requires a valid access token in the Authorization header.
func AuthMiddleware(config *config.EnvConfig, clock clockwork.Clock) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := utils.ExtractToken(c)
		if tokenStr == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Las credenciales de autenticación no se proveyeron."})
			c.Abort()
			return
		}

		claims, err := utils.ParseTokenOfType(tokenStr, config, clock, utils.TokenTypeAccess)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "El token no es válido o ha expirado."})
			c.Abort()
			return
		}

		if err := utils.InjectClaimsToContext(c, claims); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid claims"})
			c.Abort()
			return
		}

		c.Next()
	}
}

// WriteAuthMiddleware lets safe methods through and authenticates the rest.
func WriteAuthMiddleware(config *config.EnvConfig, clock clockwork.Clock) gin.HandlerFunc {
	auth := AuthMiddleware(config, clock)
	return func(c *gin.Context) {
		switch c.Request.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			c.Next()
		default:
			auth(c)
		}
	}
}
