package controller

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
	"github.com/tnqbao/gau-sequia-service/domain"
	"github.com/tnqbao/gau-sequia-service/http/controller/dto"
	"github.com/tnqbao/gau-sequia-service/utils"
)

func (ctrl *Controller) Register(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.RegisterRequestDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	user, err := ctrl.Service.Account.Register(ctx, req.ToInput())
	if err != nil {
		ctrl.respondError(c, "Auth", err)
		return
	}

	ctrl.Infra.Logger.InfoWithContextf(ctx, "[Auth] Registered user %d (%s)", user.ID, user.Username)
	ctrl.sendWelcomeEmail(ctx, user, absoluteURL(c, "/auth/login"))
	utils.JSON201(c, dto.NewUserResponse(user))
}

// ObtainToken exchanges credentials for an access/refresh pair.
func (ctrl *Controller) ObtainToken(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.LoginRequestDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	user, err := ctrl.Service.Account.Authenticate(ctx, req.Username, req.Password)
	if errors.Is(err, domain.ErrInvalidCredentials) {
		ctrl.Infra.Logger.WarningWithContextf(ctx, "[Auth] Failed login for '%s'", req.Username)
		utils.JSON401(c, "No se encontró una cuenta activa con las credenciales dadas.")
		return
	}
	if err != nil {
		ctrl.respondError(c, "Auth", err)
		return
	}

	pair, err := utils.GenerateTokenPair(ctrl.Config.EnvConfig, ctrl.Infra.Clock, user)
	if err != nil {
		ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[Auth] Failed to issue tokens: %v", err)
		utils.JSON500(c, msgInternal)
		return
	}
	utils.JSON200(c, pair)
}

func (ctrl *Controller) RefreshToken(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.RefreshRequestDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	claims, err := utils.ParseTokenOfType(req.Refresh, ctrl.Config.EnvConfig, ctrl.Infra.Clock, utils.TokenTypeRefresh)
	if err != nil {
		utils.JSON401(c, "El token no es válido o ha expirado.")
		return
	}
	userID, err := utils.UserIDFromClaims(claims)
	if err != nil {
		utils.JSON401(c, "El token no es válido o ha expirado.")
		return
	}

	user, err := ctrl.Service.Account.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			utils.JSON401(c, "Usuario no encontrado.")
			return
		}
		ctrl.respondError(c, "Auth", err)
		return
	}

	access, expiresAt, err := utils.GenerateToken(ctrl.Config.EnvConfig, ctrl.Infra.Clock, user, utils.TokenTypeAccess)
	if err != nil {
		ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[Auth] Failed to issue access token: %v", err)
		utils.JSON500(c, msgInternal)
		return
	}
	utils.JSON200(c, gin.H{"access": access, "access_expires_at": expiresAt})
}

func (ctrl *Controller) GetMe(c *gin.Context) {
	user, ok := ctrl.currentAPIUser(c)
	if !ok {
		return
	}
	utils.JSON200(c, dto.NewUserResponse(user))
}

// UpdateMe changes first and last name; other keys are ignored.
func (ctrl *Controller) UpdateMe(c *gin.Context) {
	ctx := c.Request.Context()
	user, ok := ctrl.currentAPIUser(c)
	if !ok {
		return
	}

	var patch domain.ProfilePatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		respondBindError(c, err)
		return
	}

	fields := map[string][]string{}
	for name, f := range map[string]domain.Field[string]{"first_name": patch.FirstName, "last_name": patch.LastName} {
		if f.Null {
			fields[name] = []string{msgNotNull}
		} else if utf8.RuneCountInString(f.Value) > 150 {
			fields[name] = []string{"Asegúrese de que este campo no tenga más de 150 caracteres."}
		}
	}
	if len(fields) > 0 {
		utils.JSON400Fields(c, fields)
		return
	}
	patch.FirstName.Value = strings.TrimSpace(patch.FirstName.Value)
	patch.LastName.Value = strings.TrimSpace(patch.LastName.Value)

	updated, err := ctrl.Service.Account.UpdateProfile(ctx, user.ID, patch)
	if err != nil {
		ctrl.respondError(c, "Auth", err)
		return
	}
	utils.JSON200(c, dto.NewUserResponse(updated))
}

func (ctrl *Controller) ChangePassword(c *gin.Context) {
	ctx := c.Request.Context()
	user, ok := ctrl.currentAPIUser(c)
	if !ok {
		return
	}

	var req dto.PasswordChangeRequestDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	if _, err := ctrl.Service.Account.ChangePassword(ctx, user.ID, req.OldPassword, req.NewPassword, req.NewPassword2); err != nil {
		ctrl.respondError(c, "Auth", err)
		return
	}

	ctrl.Infra.Logger.InfoWithContextf(ctx, "[Auth] Password changed for user %d", user.ID)
	if ctrl.Infra.Produce != nil {
		if err := ctrl.Infra.Produce.EmailService.SendPasswordChanged(ctx, user.Email, displayName(user)); err != nil {
			ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[Auth] Failed to publish password change email: %v", err)
		}
	}
	utils.JSON200(c, gin.H{"detail": "Contraseña actualizada."})
}

// currentAPIUser loads the user named by the access token. It answers 401
// itself when that fails.
func (ctrl *Controller) currentAPIUser(c *gin.Context) (*domain.User, bool) {
	userID, err := utils.GetUserIDFromContext(c)
	if err != nil {
		utils.JSON401(c, "Unauthorized: user_id not found")
		return nil, false
	}

	user, err := ctrl.Service.Account.GetUser(c.Request.Context(), userID)
	if errors.Is(err, domain.ErrNotFound) {
		utils.JSON401(c, "Usuario no encontrado.")
		return nil, false
	}
	if err != nil {
		ctrl.respondError(c, "Auth", err)
		return nil, false
	}
	return user, true
}

func (ctrl *Controller) sendWelcomeEmail(ctx context.Context, user *domain.User, loginURL string) {
	if ctrl.Infra.Produce == nil {
		return
	}
	if err := ctrl.Infra.Produce.EmailService.SendWelcomeEmail(ctx, user.Email, displayName(user), loginURL); err != nil {
		ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[Auth] Failed to publish welcome email: %v", err)
	}
}

func displayName(user *domain.User) string {
	name := strings.TrimSpace(user.FirstName + " " + user.LastName)
	if name == "" {
		return user.Username
	}
	return name
}

func absoluteURL(c *gin.Context, path string) string {
	return requestScheme(c) + "://" + c.Request.Host + path
}
