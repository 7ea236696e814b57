package controller

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/tnqbao/gau-sequia-service/infra"
	"github.com/tnqbao/gau-sequia-service/utils"
)

// CurrentSession returns the browser session loaded by the session middleware.
func CurrentSession(c *gin.Context) *infra.SessionData {
	value, ok := c.Get(ContextSessionKey)
	if !ok {
		return nil
	}
	session, _ := value.(*infra.SessionData)
	return session
}

// render fills the values every page template expects and writes the page.
func (ctrl *Controller) render(c *gin.Context, status int, name string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	data["flashes"] = utils.PopFlashes(c, ctrl.flashSecret())
	if session := CurrentSession(c); session != nil {
		data["user"] = session.Username
		data["csrf_token"] = session.CSRFToken
	}
	c.HTML(status, name, data)
}

func (ctrl *Controller) renderError(c *gin.Context, status int, message string) {
	ctrl.render(c, status, "error.html", gin.H{
		"title":   http.StatusText(status),
		"status":  status,
		"message": message,
	})
}

func (ctrl *Controller) flash(c *gin.Context, level, message string) {
	utils.AddFlash(c, ctrl.flashSecret(), level, message)
}

func (ctrl *Controller) flashSecret() string {
	return ctrl.Config.EnvConfig.JWT.SecretKey
}

func (ctrl *Controller) setSessionCookie(c *gin.Context, id string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookieName, id, maxAge, "/", "", ctrl.Config.EnvConfig.IsProduction(), true)
}

func (ctrl *Controller) sessionTTL() time.Duration {
	return time.Duration(ctrl.Config.EnvConfig.Session.TTL) * time.Second
}

// safeRedirect keeps post-login redirects on this site.
func safeRedirect(next, fallback string) string {
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return fallback
	}
	return next
}

func (ctrl *Controller) Home(c *gin.Context) {
	ctrl.render(c, http.StatusOK, "home.html", gin.H{"title": "Inicio"})
}
