package controller

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/tnqbao/gau-sequia-service/domain"
	"github.com/tnqbao/gau-sequia-service/http/controller/dto"
	"github.com/tnqbao/gau-sequia-service/infra"
)

func (ctrl *Controller) LoginPage(c *gin.Context) {
	if CurrentSession(c) != nil {
		c.Redirect(http.StatusFound, "/panel")
		return
	}
	ctrl.render(c, http.StatusOK, "login.html", gin.H{
		"title": "Iniciar sesión",
		"next":  c.Query("next"),
	})
}

func (ctrl *Controller) Login(c *gin.Context) {
	ctx := c.Request.Context()

	var form dto.LoginRequestDTO
	_ = c.ShouldBind(&form)
	next := c.PostForm("next")

	user, err := ctrl.Service.Account.Authenticate(ctx, form.Username, form.Password)
	if err != nil {
		if !errors.Is(err, domain.ErrInvalidCredentials) {
			ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[Session] Login lookup failed: %v", err)
		}
		ctrl.render(c, http.StatusOK, "login.html", gin.H{
			"title":    "Iniciar sesión",
			"next":     next,
			"username": strings.TrimSpace(form.Username),
			"errors":   []string{"Credenciales incorrectas o usuario inexistente."},
		})
		return
	}

	// a fresh id on every login
	if old, err := c.Cookie(SessionCookieName); err == nil && old != "" {
		_ = ctrl.Infra.Sessions.Destroy(ctx, old)
	}

	sessionID, err := ctrl.Infra.Sessions.Create(ctx, infra.SessionData{
		UserID:    user.ID,
		Username:  user.Username,
		CreatedAt: ctrl.Infra.Clock.Now(),
	})
	if err != nil {
		ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[Session] Failed to create session: %v", err)
		ctrl.renderError(c, http.StatusInternalServerError, msgInternal)
		return
	}

	ctrl.setSessionCookie(c, sessionID, int(ctrl.sessionTTL().Seconds()))
	ctrl.flash(c, "success", fmt.Sprintf("Bienvenido, %s", user.Username))
	ctrl.Infra.Logger.InfoWithContextf(ctx, "[Session] User %d logged in", user.ID)
	c.Redirect(http.StatusFound, safeRedirect(next, "/panel"))
}

func (ctrl *Controller) Logout(c *gin.Context) {
	ctx := c.Request.Context()

	if id, ok := c.Get(ContextSessionIDKey); ok {
		if err := ctrl.Infra.Sessions.Destroy(ctx, id.(string)); err != nil {
			ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[Session] Failed to destroy session: %v", err)
		}
	}
	ctrl.setSessionCookie(c, "", -1)
	ctrl.flash(c, "info", "Sesión cerrada correctamente.")
	c.Redirect(http.StatusFound, "/auth/login")
}

func (ctrl *Controller) SignupPage(c *gin.Context) {
	ctrl.render(c, http.StatusOK, "register.html", gin.H{"title": "Crear cuenta"})
}

func (ctrl *Controller) Signup(c *gin.Context) {
	ctx := c.Request.Context()

	var form dto.RegisterRequestDTO
	var messages []string
	if err := c.ShouldBind(&form); err != nil {
		messages = bindErrorMessages(err)
	} else {
		user, err := ctrl.Service.Account.Register(ctx, form.ToInput())
		if err == nil {
			ctrl.Infra.Logger.InfoWithContextf(ctx, "[Session] Registered user %d (%s)", user.ID, user.Username)
			ctrl.sendWelcomeEmail(ctx, user, absoluteURL(c, "/auth/login"))
			ctrl.flash(c, "success", "Cuenta creada exitosamente. Ahora puedes iniciar sesión.")
			c.Redirect(http.StatusFound, "/auth/login")
			return
		}

		var vErr *domain.ValidationError
		if !errors.As(err, &vErr) {
			ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[Session] Registration failed: %v", err)
			ctrl.renderError(c, http.StatusInternalServerError, msgInternal)
			return
		}
		messages = []string{vErr.Field + ": " + vErr.Message}
	}

	form.Password, form.Password2 = "", ""
	ctrl.render(c, http.StatusOK, "register.html", gin.H{
		"title":  "Crear cuenta",
		"form":   form,
		"errors": messages,
	})
}
