package controller

import (
	"errors"
	"fmt"
	"net/url"
	"reflect"
	"strconv"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/tnqbao/gau-sequia-service/domain"
	"github.com/tnqbao/gau-sequia-service/http/controller/dto"
	"github.com/tnqbao/gau-sequia-service/utils"
)

const (
	SessionCookieName   = "sequia_session"
	ContextSessionKey   = "session"
	ContextSessionIDKey = "session_id"

	msgRequired      = "Este campo es obligatorio."
	msgNotNull       = "Este campo no puede ser nulo."
	msgNotFound      = "No encontrado."
	msgInvalidChoice = "Escoja una opción válida. Esa opción no está entre las disponibles."
	msgInternal      = "Error interno del servidor."
)

var registerTagNamesOnce sync.Once

// registerValidatorTagNames makes binding errors report JSON field names.
func registerValidatorTagNames() {
	registerTagNamesOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(field reflect.StructField) string {
			for _, tag := range []string{"json", "form"} {
				name := strings.SplitN(field.Tag.Get(tag), ",", 2)[0]
				if name != "" && name != "-" {
					return name
				}
			}
			return field.Name
		})
	})
}

func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

func fieldErrors(field, message string) map[string][]string {
	return map[string][]string{field: {message}}
}

// respondBindError answers 400 for a body that failed to decode or validate.
func respondBindError(c *gin.Context, err error) {
	var vErrs validator.ValidationErrors
	if errors.As(err, &vErrs) {
		fields := map[string][]string{}
		for _, fe := range vErrs {
			fields[fe.Field()] = append(fields[fe.Field()], validationMessage(fe))
		}
		utils.JSON400Fields(c, fields)
		return
	}
	utils.JSON400(c, "Solicitud inválida: "+err.Error())
}

// bindErrorMessages flattens a binding error into "field: message" lines for forms.
func bindErrorMessages(err error) []string {
	var vErrs validator.ValidationErrors
	if !errors.As(err, &vErrs) {
		return []string{"Solicitud inválida."}
	}
	messages := make([]string, 0, len(vErrs))
	for _, fe := range vErrs {
		messages = append(messages, fe.Field()+": "+validationMessage(fe))
	}
	return messages
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return msgRequired
	case "max":
		return fmt.Sprintf("Asegúrese de que este campo no tenga más de %s caracteres.", fe.Param())
	case "email":
		return "Introduzca una dirección de correo electrónico válida."
	case "oneof":
		return fmt.Sprintf("\"%v\" no es una elección válida.", fe.Value())
	case "gte":
		return fmt.Sprintf("Asegúrese de que este valor sea mayor o igual a %s.", fe.Param())
	case "gt":
		return fmt.Sprintf("Asegúrese de que este valor sea mayor que %s.", fe.Param())
	case "lte":
		return fmt.Sprintf("Asegúrese de que este valor sea menor o igual a %s.", fe.Param())
	case "lt":
		return fmt.Sprintf("Asegúrese de que este valor sea menor que %s.", fe.Param())
	default:
		return "Valor inválido."
	}
}

// respondError maps domain errors onto HTTP answers.
func (ctrl *Controller) respondError(c *gin.Context, tag string, err error) {
	ctx := c.Request.Context()

	var vErr *domain.ValidationError
	switch {
	case errors.As(err, &vErr):
		utils.JSON400Fields(c, fieldErrors(vErr.Field, vErr.Message))
	case errors.Is(err, domain.ErrNotFound):
		utils.JSON404(c, msgNotFound)
	case errors.Is(err, domain.ErrIntegrity):
		ctrl.Infra.Logger.WarningWithContextf(ctx, "[%s] Integrity violation: %v", tag, err)
		utils.JSON409(c, "Operación rechazada: el registro está relacionado con otros datos.")
	case errors.Is(err, domain.ErrConflict):
		utils.JSON409(c, "Ya existe un registro con estos datos.")
	default:
		ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[%s] Unexpected error: %v", tag, err)
		utils.JSON500(c, msgInternal)
	}
}

func pageFromQuery(c *gin.Context, size int) (domain.Page, bool) {
	page := domain.Page{Number: 1, Size: size}
	if raw := c.Query("page"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return page, false
		}
		page.Number = n
	}
	return page, true
}

func orderingFromQuery(c *gin.Context, fallback ...string) []string {
	raw := strings.TrimSpace(c.Query("ordering"))
	if raw == "" {
		return fallback
	}
	return strings.Split(raw, ",")
}

func optionalUint(c *gin.Context, key string) (*uint, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return nil, nil
	}
	n, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", key, err)
	}
	v := uint(n)
	return &v, nil
}

func optionalFloat(c *gin.Context, key string) (*float64, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", key, err)
	}
	return &f, nil
}

func optionalBool(c *gin.Context, key string) (*bool, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return nil, nil
	}
	b, err := strconv.ParseBool(strings.ToLower(raw))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", key, err)
	}
	return &b, nil
}

// respondPage writes the {count, next, previous, results} envelope. A page
// past the end answers 404.
func respondPage[T any](c *gin.Context, page domain.Page, result domain.PageResult[T]) {
	if page.Number > 1 && int64(page.Offset()) >= result.Count {
		utils.JSON404(c, "Página inválida.")
		return
	}

	body := dto.PageResponseDTO[T]{
		Count:   result.Count,
		Results: result.Results,
	}
	if body.Results == nil {
		body.Results = []T{}
	}
	if int64(page.Offset()+len(result.Results)) < result.Count {
		body.Next = pageURL(c, page.Number+1)
	}
	if page.Number > 1 {
		body.Previous = pageURL(c, page.Number-1)
	}
	utils.JSON200(c, body)
}

func pageURL(c *gin.Context, number int) *string {
	u := url.URL{Path: c.Request.URL.Path}
	query := c.Request.URL.Query()
	if number <= 1 {
		query.Del("page")
	} else {
		query.Set("page", strconv.Itoa(number))
	}
	u.RawQuery = query.Encode()

	u.Scheme = requestScheme(c)
	u.Host = c.Request.Host

	s := u.String()
	return &s
}

func requestScheme(c *gin.Context) string {
	if c.Request.TLS != nil || strings.EqualFold(c.GetHeader("X-Forwarded-Proto"), "https") {
		return "https"
	}
	return "http"
}
