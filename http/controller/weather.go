package controller

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/tnqbao/gau-sequia-service/infra"
	"github.com/tnqbao/gau-sequia-service/utils"
)

// GetWeather passes the current conditions at lat/lon through from the weather API.
func (ctrl *Controller) GetWeather(c *gin.Context) {
	ctx := c.Request.Context()

	lat := strings.TrimSpace(c.Query("lat"))
	lon := strings.TrimSpace(c.Query("lon"))
	if lat == "" || lon == "" {
		utils.JSON400(c, "Debes enviar lat y lon, ejemplo: /api/v1/clima?lat=-33.45&lon=-70.66")
		return
	}

	weather, err := ctrl.Infra.Weather.Current(ctx, lat, lon)
	if err != nil {
		var upstream *infra.UpstreamError
		if errors.As(err, &upstream) {
			ctrl.Infra.Logger.WarningWithContextf(ctx, "[Weather] Upstream answered %d", upstream.Status)
			utils.JSON502(c, gin.H{
				"error":  "Respuesta inválida de la API externa",
				"status": upstream.Status,
				"body":   upstream.Body,
			})
			return
		}
		ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[Weather] Request failed: %v", err)
		utils.JSON502(c, gin.H{"error": "No se pudo conectar a la API externa (Open-Meteo)."})
		return
	}

	utils.JSON200(c, weather)
}

// weatherErrorMessage is the panel text for a failed weather lookup.
func weatherErrorMessage(err error) string {
	var upstream *infra.UpstreamError
	if errors.As(err, &upstream) {
		return "Error " + strconv.Itoa(upstream.Status) + " al consultar clima externo."
	}
	return "No se pudo conectar a la API de clima."
}
