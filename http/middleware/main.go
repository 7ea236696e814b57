package middlewares

import (
	"github.com/gin-gonic/gin"
	"github.com/tnqbao/gau-sequia-service/http/controller"
)

type Middlewares struct {
	RequestIDMiddleware gin.HandlerFunc
	TracingMiddleware   gin.HandlerFunc
	MetricsMiddleware   gin.HandlerFunc
	CORSMiddleware      gin.HandlerFunc
	AuthMiddleware      gin.HandlerFunc
	WriteAuthMiddleware gin.HandlerFunc
	SessionMiddleware   gin.HandlerFunc
	LoginRequired       gin.HandlerFunc
	CSRFMiddleware      gin.HandlerFunc
}

func NewMiddlewares(ctrl *controller.Controller) (*Middlewares, error) {
	cors, err := CORSMiddleware(ctrl.Config.EnvConfig)
	if err != nil {
		return nil, err
	}

	return &Middlewares{
		RequestIDMiddleware: RequestIDMiddleware(),
		TracingMiddleware:   TracingMiddleware(ctrl.Infra.Telemetry.Tracer),
		MetricsMiddleware:   MetricsMiddleware(ctrl.Infra.Metrics),
		CORSMiddleware:      cors,
		AuthMiddleware:      AuthMiddleware(ctrl.Config.EnvConfig, ctrl.Infra.Clock),
		WriteAuthMiddleware: WriteAuthMiddleware(ctrl.Config.EnvConfig, ctrl.Infra.Clock),
		SessionMiddleware:   SessionMiddleware(ctrl.Infra.Sessions, ctrl.Infra.Logger),
		LoginRequired:       LoginRequired(),
		CSRFMiddleware:      CSRFMiddleware(),
	}, nil
}
