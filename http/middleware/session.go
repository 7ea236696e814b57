package middlewares

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"github.com/tnqbao/gau-sequia-service/http/controller"
	"github.com/tnqbao/gau-sequia-service/infra"
	"github.com/tnqbao/gau-sequia-service/utils"
)

const csrfFailureMessage = "Verificación CSRF fallida. Solicitud abortada."

// SessionMiddleware loads the browser session named by the session cookie.
// A missing or expired session leaves the request anonymous.
func SessionMiddleware(store infra.SessionStore, logger *infra.LoggerClient) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := c.Cookie(controller.SessionCookieName)
		if err != nil || id == "" {
			c.Next()
			return
		}

		session, err := store.Get(c.Request.Context(), id)
		if err != nil {
			if !errors.Is(err, infra.ErrSessionNotFound) {
				logger.ErrorWithContextf(c.Request.Context(), err, "[Session] Failed to load session: %v", err)
			}
			c.Next()
			return
		}

		c.Set(controller.ContextSessionKey, session)
		c.Set(controller.ContextSessionIDKey, id)
		c.Next()
	}
}

// LoginRequired sends anonymous visitors to the login page, keeping where
// they were headed in ?next=.
func LoginRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if controller.CurrentSession(c) == nil {
			c.Redirect(http.StatusFound, "/auth/login?next="+url.QueryEscape(c.Request.URL.RequestURI()))
			c.Abort()
			return
		}
		c.Next()
	}
}

// CSRFMiddleware checks unsafe requests of a logged-in session against the
// session's token, sent as the csrf_token form field or the X-CSRF-Token header.
func CSRFMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		switch c.Request.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			c.Next()
			return
		}

		session := controller.CurrentSession(c)
		if session == nil {
			c.String(http.StatusForbidden, csrfFailureMessage)
			c.Abort()
			return
		}

		token := c.GetHeader("X-CSRF-Token")
		if token == "" {
			token = c.PostForm("csrf_token")
		}
		if token == "" || !utils.SecureCompare(token, session.CSRFToken) {
			c.String(http.StatusForbidden, csrfFailureMessage)
			c.Abort()
			return
		}
		c.Next()
	}
}
