package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/tnqbao/gau-sequia-service/http/controller"
	middlewares "github.com/tnqbao/gau-sequia-service/http/middleware"
	"github.com/tnqbao/gau-sequia-service/http/view"
)

func SetupRouter(ctrl *controller.Controller) *gin.Engine {
	r := gin.Default()
	middles, err := middlewares.NewMiddlewares(ctrl)
	if err != nil {
		panic(err)
	}

	r.SetHTMLTemplate(view.Templates())
	r.Use(middles.RequestIDMiddleware, middles.TracingMiddleware, middles.MetricsMiddleware, middles.CORSMiddleware)

	r.GET("/healthz", ctrl.Healthz)
	r.GET("/readyz", ctrl.Readyz)
	r.GET("/metrics", gin.WrapH(ctrl.Infra.Metrics.Handler()))

	apiRoutes := r.Group("/api/v1")
	{
		authRoutes := apiRoutes.Group("/auth")
		{
			authRoutes.POST("/register", ctrl.Register)
			authRoutes.POST("/token", ctrl.ObtainToken)
			authRoutes.POST("/token/refresh", ctrl.RefreshToken)

			meRoutes := authRoutes.Group("", middles.AuthMiddleware)
			{
				meRoutes.GET("/me", ctrl.GetMe)
				meRoutes.PUT("/me", ctrl.UpdateMe)
				meRoutes.PATCH("/me", ctrl.UpdateMe)
				meRoutes.POST("/password/change", ctrl.ChangePassword)
			}
		}

		apiRoutes.GET("/clima", ctrl.GetWeather)

		dataRoutes := apiRoutes.Group("", middles.WriteAuthMiddleware)
		{
			regionRoutes := dataRoutes.Group("/regiones")
			{
				regionRoutes.GET("", ctrl.ListRegions)
				regionRoutes.POST("", ctrl.CreateRegion)
				regionRoutes.GET("/:id", ctrl.GetRegion)
				regionRoutes.PUT("/:id", ctrl.UpdateRegion)
				regionRoutes.PATCH("/:id", ctrl.UpdateRegion)
				regionRoutes.DELETE("/:id", ctrl.DeleteRegion)
			}

			sourceRoutes := dataRoutes.Group("/fuentes")
			{
				sourceRoutes.GET("", ctrl.ListWaterSources)
				sourceRoutes.POST("", ctrl.CreateWaterSource)
				sourceRoutes.GET("/:id", ctrl.GetWaterSource)
				sourceRoutes.PUT("/:id", ctrl.UpdateWaterSource)
				sourceRoutes.PATCH("/:id", ctrl.UpdateWaterSource)
				sourceRoutes.DELETE("/:id", ctrl.DeleteWaterSource)
			}

			measureRoutes := dataRoutes.Group("/medidas")
			{
				measureRoutes.GET("", ctrl.ListMeasures)
				measureRoutes.POST("", ctrl.CreateMeasure)
				measureRoutes.GET("/:id", ctrl.GetMeasure)
				measureRoutes.PUT("/:id", ctrl.ReplaceMeasure)
				measureRoutes.PATCH("/:id", ctrl.PatchMeasure)
				measureRoutes.DELETE("/:id", ctrl.DeleteMeasure)
			}

			indicatorRoutes := dataRoutes.Group("/indicadores")
			{
				indicatorRoutes.GET("", ctrl.ListIndicators)
				indicatorRoutes.POST("", ctrl.CreateIndicator)
				indicatorRoutes.GET("/:id", ctrl.GetIndicator)
				indicatorRoutes.PUT("/:id", ctrl.UpdateIndicator)
				indicatorRoutes.PATCH("/:id", ctrl.UpdateIndicator)
				indicatorRoutes.DELETE("/:id", ctrl.DeleteIndicator)
			}
		}
	}

	pageRoutes := r.Group("/", middles.SessionMiddleware)
	{
		pageRoutes.GET("/", ctrl.Home)

		accountRoutes := pageRoutes.Group("/auth")
		{
			accountRoutes.GET("/login", ctrl.LoginPage)
			accountRoutes.POST("/login", ctrl.Login)
			accountRoutes.GET("/logout", ctrl.Logout)
			accountRoutes.GET("/signup", ctrl.SignupPage)
			accountRoutes.POST("/signup", ctrl.Signup)
		}

		privateRoutes := pageRoutes.Group("", middles.LoginRequired, middles.CSRFMiddleware)
		{
			privateRoutes.GET("/panel", ctrl.Panel)

			privateRoutes.GET("/medidas", ctrl.MeasureListPage)
			privateRoutes.GET("/medidas/nueva", ctrl.NewMeasurePage)
			privateRoutes.POST("/medidas/nueva", ctrl.CreateMeasurePage)
			privateRoutes.GET("/medidas/:id/editar", ctrl.EditMeasurePage)
			privateRoutes.POST("/medidas/:id/editar", ctrl.UpdateMeasurePage)
			privateRoutes.GET("/medidas/:id/eliminar", ctrl.DeleteMeasurePage)
			privateRoutes.POST("/medidas/:id/eliminar", ctrl.ConfirmDeleteMeasurePage)
		}
	}

	return r
}
