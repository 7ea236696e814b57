package controller

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/tnqbao/gau-sequia-service/domain"
	"github.com/tnqbao/gau-sequia-service/http/controller/dto"
	"github.com/tnqbao/gau-sequia-service/utils"
)

func (ctrl *Controller) ListIndicators(c *gin.Context) {
	ctx := c.Request.Context()

	page, ok := pageFromQuery(c, ctrl.Config.EnvConfig.PageSize)
	if !ok {
		utils.JSON404(c, "Página inválida.")
		return
	}

	measureID, err := optionalUint(c, "medida")
	if err != nil {
		utils.JSON400Fields(c, fieldErrors("medida", msgInvalidChoice))
		return
	}

	result, err := ctrl.Repository.IndicatorRepo.Query(ctx, domain.IndicatorFilter{
		MeasureID: measureID,
		Search:    c.Query("search"),
		Ordering:  orderingFromQuery(c, "-id"),
		Page:      page,
	})
	if err != nil {
		ctrl.respondError(c, "Indicator", err)
		return
	}
	respondPage(c, page, result)
}

func (ctrl *Controller) GetIndicator(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		utils.JSON404(c, msgNotFound)
		return
	}

	indicator, err := ctrl.Repository.IndicatorRepo.GetByID(c.Request.Context(), id)
	if err != nil {
		ctrl.respondError(c, "Indicator", err)
		return
	}
	utils.JSON200(c, indicator)
}

func (ctrl *Controller) CreateIndicator(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.IndicatorRequestDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	if !ctrl.measureExists(c, req.MeasureID) {
		return
	}

	indicator, err := ctrl.Repository.IndicatorRepo.Create(ctx, req.ToInput())
	if err != nil {
		ctrl.respondError(c, "Indicator", err)
		return
	}

	ctrl.Infra.Logger.InfoWithContextf(ctx, "[Indicator] Created indicator %d for measure %d", indicator.ID, indicator.MeasureID)
	utils.JSON201(c, indicator)
}

// UpdateIndicator serves PUT and PATCH over the stored values.
func (ctrl *Controller) UpdateIndicator(c *gin.Context) {
	ctx := c.Request.Context()
	id, ok := parseID(c)
	if !ok {
		utils.JSON404(c, msgNotFound)
		return
	}

	current, err := ctrl.Repository.IndicatorRepo.GetByID(ctx, id)
	if err != nil {
		ctrl.respondError(c, "Indicator", err)
		return
	}

	date := current.Date
	req := dto.IndicatorRequestDTO{
		MeasureID:         current.MeasureID,
		Date:              &date,
		ReusedVolumeM3D:   current.ReusedVolumeM3D,
		LossPct:           current.LossPct,
		GroundwaterLevelM: current.GroundwaterLevelM,
		EcologicalFlowPct: current.EcologicalFlowPct,
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	if req.MeasureID != current.MeasureID && !ctrl.measureExists(c, req.MeasureID) {
		return
	}

	indicator, err := ctrl.Repository.IndicatorRepo.Update(ctx, id, req.ToInput())
	if err != nil {
		ctrl.respondError(c, "Indicator", err)
		return
	}
	utils.JSON200(c, indicator)
}

func (ctrl *Controller) DeleteIndicator(c *gin.Context) {
	ctx := c.Request.Context()
	id, ok := parseID(c)
	if !ok {
		utils.JSON404(c, msgNotFound)
		return
	}

	if _, err := ctrl.Repository.IndicatorRepo.GetByID(ctx, id); err != nil {
		ctrl.respondError(c, "Indicator", err)
		return
	}

	if err := ctrl.Repository.IndicatorRepo.Delete(ctx, id); err != nil {
		ctrl.respondError(c, "Indicator", err)
		return
	}
	utils.JSON204(c)
}

func (ctrl *Controller) measureExists(c *gin.Context, id uint) bool {
	_, err := ctrl.Service.Measure.GetMeasure(c.Request.Context(), id)
	if err == nil {
		return true
	}
	if errors.Is(err, domain.ErrNotFound) {
		utils.JSON400Fields(c, fieldErrors("medida_id", invalidPKMessage(id)))
		return false
	}
	ctrl.respondError(c, "Indicator", err)
	return false
}
