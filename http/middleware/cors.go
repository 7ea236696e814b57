package middlewares

import (
	"fmt"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/tnqbao/gau-sequia-service/config"
)

// CORSMiddleware allows the comma separated ALLOWED_DOMAINS, or every origin for "*".
func CORSMiddleware(cfg *config.EnvConfig) (gin.HandlerFunc, error) {
	corsConfig := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID", "X-CSRF-Token"},
		ExposeHeaders: []string{"Content-Length", "X-Request-ID"},
		MaxAge:        12 * time.Hour,
	}

	var origins []string
	for _, domain := range strings.Split(cfg.CORS.AllowDomains, ",") {
		if domain = strings.TrimSpace(domain); domain != "" {
			origins = append(origins, domain)
		}
	}

	switch {
	case len(origins) == 0:
		return nil, fmt.Errorf("ALLOWED_DOMAINS is empty")
	case len(origins) == 1 && origins[0] == "*":
		corsConfig.AllowAllOrigins = true
	default:
		corsConfig.AllowOrigins = origins
		corsConfig.AllowCredentials = true
	}

	if err := corsConfig.Validate(); err != nil {
		return nil, fmt.Errorf("invalid CORS settings: %w", err)
	}
	return cors.New(corsConfig), nil
}
