package controller

import (
	"github.com/gin-gonic/gin"
	"github.com/tnqbao/gau-sequia-service/domain"
	"github.com/tnqbao/gau-sequia-service/http/controller/dto"
	"github.com/tnqbao/gau-sequia-service/utils"
)

func (ctrl *Controller) ListRegions(c *gin.Context) {
	ctx := c.Request.Context()

	page, ok := pageFromQuery(c, ctrl.Config.EnvConfig.PageSize)
	if !ok {
		utils.JSON404(c, "Página inválida.")
		return
	}

	result, err := ctrl.Repository.RegionRepo.Query(ctx, domain.RegionFilter{
		Search:   c.Query("search"),
		Ordering: orderingFromQuery(c, "nombre"),
		Page:     page,
	})
	if err != nil {
		ctrl.respondError(c, "Region", err)
		return
	}
	respondPage(c, page, result)
}

func (ctrl *Controller) GetRegion(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		utils.JSON404(c, msgNotFound)
		return
	}

	region, err := ctrl.Repository.RegionRepo.GetByID(c.Request.Context(), id)
	if err != nil {
		ctrl.respondError(c, "Region", err)
		return
	}
	utils.JSON200(c, region)
}

func (ctrl *Controller) CreateRegion(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.RegionRequestDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	if !ctrl.regionNameAvailable(c, req.Name, nil) {
		return
	}

	region, err := ctrl.Repository.RegionRepo.Create(ctx, domain.RegionInput{Name: req.Name})
	if err != nil {
		ctrl.respondError(c, "Region", err)
		return
	}

	ctrl.Infra.Logger.InfoWithContextf(ctx, "[Region] Created region %d (%s)", region.ID, region.Name)
	utils.JSON201(c, region)
}

// UpdateRegion serves PUT and PATCH; a region has a single writable field.
func (ctrl *Controller) UpdateRegion(c *gin.Context) {
	ctx := c.Request.Context()
	id, ok := parseID(c)
	if !ok {
		utils.JSON404(c, msgNotFound)
		return
	}

	current, err := ctrl.Repository.RegionRepo.GetByID(ctx, id)
	if err != nil {
		ctrl.respondError(c, "Region", err)
		return
	}

	req := dto.RegionRequestDTO{Name: current.Name}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	if !ctrl.regionNameAvailable(c, req.Name, current) {
		return
	}

	region, err := ctrl.Repository.RegionRepo.Update(ctx, id, domain.RegionInput{Name: req.Name})
	if err != nil {
		ctrl.respondError(c, "Region", err)
		return
	}
	utils.JSON200(c, region)
}

func (ctrl *Controller) DeleteRegion(c *gin.Context) {
	ctx := c.Request.Context()
	id, ok := parseID(c)
	if !ok {
		utils.JSON404(c, msgNotFound)
		return
	}

	if _, err := ctrl.Repository.RegionRepo.GetByID(ctx, id); err != nil {
		ctrl.respondError(c, "Region", err)
		return
	}

	if err := ctrl.Repository.RegionRepo.Delete(ctx, id); err != nil {
		ctrl.respondError(c, "Region", err)
		return
	}

	ctrl.Infra.Logger.InfoWithContextf(ctx, "[Region] Deleted region %d", id)
	utils.JSON204(c)
}

// regionNameAvailable answers 400 and returns false when another region
// already uses the name.
func (ctrl *Controller) regionNameAvailable(c *gin.Context, name string, current *domain.Region) bool {
	if current != nil && current.Name == name {
		return true
	}
	exists, err := ctrl.Repository.RegionRepo.ExistsByName(c.Request.Context(), name)
	if err != nil {
		ctrl.respondError(c, "Region", err)
		return false
	}
	if exists {
		utils.JSON400Fields(c, fieldErrors("nombre", "Ya existe región con este nombre."))
		return false
	}
	return true
}
