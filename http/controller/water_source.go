package controller

import (
	"github.com/gin-gonic/gin"
	"github.com/tnqbao/gau-sequia-service/domain"
	"github.com/tnqbao/gau-sequia-service/http/controller/dto"
	"github.com/tnqbao/gau-sequia-service/utils"
)

func (ctrl *Controller) ListWaterSources(c *gin.Context) {
	ctx := c.Request.Context()

	page, ok := pageFromQuery(c, ctrl.Config.EnvConfig.PageSize)
	if !ok {
		utils.JSON404(c, "Página inválida.")
		return
	}

	filter := domain.WaterSourceFilter{
		Category:          c.Query("tipo"),
		CategoryContains:  c.Query("tipo__icontains"),
		DescriptionSearch: c.Query("descripcion__icontains"),
		Search:            c.Query("search"),
		Ordering:          orderingFromQuery(c, "id"),
		Page:              page,
	}

	var err error
	if filter.Capacity, err = optionalFloat(c, "capacidad_m3d"); err != nil {
		utils.JSON400Fields(c, fieldErrors("capacidad_m3d", "Introduzca un número."))
		return
	}
	if filter.CapacityGTE, err = optionalFloat(c, "capacidad_m3d__gte"); err != nil {
		utils.JSON400Fields(c, fieldErrors("capacidad_m3d__gte", "Introduzca un número."))
		return
	}
	if filter.CapacityLTE, err = optionalFloat(c, "capacidad_m3d__lte"); err != nil {
		utils.JSON400Fields(c, fieldErrors("capacidad_m3d__lte", "Introduzca un número."))
		return
	}
	if filter.RenewableEnergy, err = optionalBool(c, "energia_renovable"); err != nil {
		utils.JSON400Fields(c, fieldErrors("energia_renovable", "Introduzca un valor booleano válido."))
		return
	}

	result, err := ctrl.Repository.WaterSourceRepo.Query(ctx, filter)
	if err != nil {
		ctrl.respondError(c, "WaterSource", err)
		return
	}
	respondPage(c, page, result)
}

func (ctrl *Controller) GetWaterSource(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		utils.JSON404(c, msgNotFound)
		return
	}

	source, err := ctrl.Repository.WaterSourceRepo.GetByID(c.Request.Context(), id)
	if err != nil {
		ctrl.respondError(c, "WaterSource", err)
		return
	}
	utils.JSON200(c, source)
}

func (ctrl *Controller) CreateWaterSource(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.WaterSourceRequestDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	source, err := ctrl.Repository.WaterSourceRepo.Create(ctx, waterSourceInput(req))
	if err != nil {
		ctrl.respondError(c, "WaterSource", err)
		return
	}

	ctrl.Infra.Logger.InfoWithContextf(ctx, "[WaterSource] Created water source %d (%s)", source.ID, source.Category)
	utils.JSON201(c, source)
}

// UpdateWaterSource serves PUT and PATCH. The body is decoded over the stored
// values, so PATCH may omit fields.
func (ctrl *Controller) UpdateWaterSource(c *gin.Context) {
	ctx := c.Request.Context()
	id, ok := parseID(c)
	if !ok {
		utils.JSON404(c, msgNotFound)
		return
	}

	current, err := ctrl.Repository.WaterSourceRepo.GetByID(ctx, id)
	if err != nil {
		ctrl.respondError(c, "WaterSource", err)
		return
	}

	req := dto.WaterSourceRequestDTO{
		Category:        string(current.Category),
		CapacityM3D:     current.CapacityM3D,
		RenewableEnergy: current.RenewableEnergy,
		Description:     current.Description,
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	source, err := ctrl.Repository.WaterSourceRepo.Update(ctx, id, waterSourceInput(req))
	if err != nil {
		ctrl.respondError(c, "WaterSource", err)
		return
	}
	utils.JSON200(c, source)
}

// DeleteWaterSource detaches the measures that used the source.
func (ctrl *Controller) DeleteWaterSource(c *gin.Context) {
	ctx := c.Request.Context()
	id, ok := parseID(c)
	if !ok {
		utils.JSON404(c, msgNotFound)
		return
	}

	if _, err := ctrl.Repository.WaterSourceRepo.GetByID(ctx, id); err != nil {
		ctrl.respondError(c, "WaterSource", err)
		return
	}

	if err := ctrl.Repository.WaterSourceRepo.Delete(ctx, id); err != nil {
		ctrl.respondError(c, "WaterSource", err)
		return
	}

	ctrl.Infra.Logger.InfoWithContextf(ctx, "[WaterSource] Deleted water source %d", id)
	utils.JSON204(c)
}

func waterSourceInput(req dto.WaterSourceRequestDTO) domain.WaterSourceInput {
	return domain.WaterSourceInput{
		Category:        domain.SourceCategory(req.Category),
		CapacityM3D:     req.CapacityM3D,
		RenewableEnergy: req.RenewableEnergy,
		Description:     req.Description,
	}
}
