package controller

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
	"github.com/tnqbao/gau-sequia-service/domain"
	"github.com/tnqbao/gau-sequia-service/http/controller/dto"
	"github.com/tnqbao/gau-sequia-service/infra"
	"github.com/tnqbao/gau-sequia-service/utils"
)

func invalidPKMessage(id uint) string {
	return fmt.Sprintf("Clave primaria \"%d\" inválida - objeto no existe.", id)
}

// ListMeasures reads straight from the repository; filtering and paging are
// presentation concerns.
func (ctrl *Controller) ListMeasures(c *gin.Context) {
	ctx := c.Request.Context()

	page, ok := pageFromQuery(c, ctrl.Config.EnvConfig.PageSize)
	if !ok {
		utils.JSON404(c, "Página inválida.")
		return
	}

	regionID, err := optionalUint(c, "region")
	if err != nil {
		utils.JSON400Fields(c, fieldErrors("region", msgInvalidChoice))
		return
	}
	sourceID, err := optionalUint(c, "fuente")
	if err != nil {
		utils.JSON400Fields(c, fieldErrors("fuente", msgInvalidChoice))
		return
	}

	result, err := ctrl.Repository.MeasureRepo.Query(ctx, domain.MeasureFilter{
		RegionID: regionID,
		SourceID: sourceID,
		Search:   c.Query("search"),
		Ordering: orderingFromQuery(c, "-fecha_inicio"),
		Page:     page,
	})
	if err != nil {
		ctrl.respondError(c, "Measure", err)
		return
	}
	respondPage(c, page, result)
}

func (ctrl *Controller) GetMeasure(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		utils.JSON404(c, msgNotFound)
		return
	}

	measure, err := ctrl.Service.Measure.GetMeasure(c.Request.Context(), id)
	if err != nil {
		ctrl.respondError(c, "Measure", err)
		return
	}
	utils.JSON200(c, measure)
}

func (ctrl *Controller) CreateMeasure(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.MeasureRequestDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	if fields := ctrl.checkMeasureReferences(c, &req.RegionID, req.SourceID); fields != nil {
		utils.JSON400Fields(c, fields)
		return
	}

	measure, err := ctrl.Service.Measure.CreateMeasure(ctx, req.ToInput())
	ctrl.recordMeasureWrite("create", err)
	if err != nil {
		ctrl.respondError(c, "Measure", err)
		return
	}

	ctrl.Infra.Logger.InfoWithContextf(ctx, "[Measure] Created measure %d (%s)", measure.ID, measure.Name)
	utils.JSON201(c, measure)
}

// ReplaceMeasure serves PUT: every writable field is required and replaced.
func (ctrl *Controller) ReplaceMeasure(c *gin.Context) {
	ctx := c.Request.Context()
	id, ok := parseID(c)
	if !ok {
		utils.JSON404(c, msgNotFound)
		return
	}

	var req dto.MeasureRequestDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	if fields := ctrl.checkMeasureReferences(c, &req.RegionID, req.SourceID); fields != nil {
		utils.JSON400Fields(c, fields)
		return
	}

	measure, err := ctrl.Service.Measure.UpdateMeasure(ctx, id, req.ToPatch())
	ctrl.recordMeasureWrite("update", err)
	if err != nil {
		ctrl.respondError(c, "Measure", err)
		return
	}
	utils.JSON200(c, measure)
}

// PatchMeasure applies only the keys present in the body. Unknown keys are
// rejected.
func (ctrl *Controller) PatchMeasure(c *gin.Context) {
	ctx := c.Request.Context()
	id, ok := parseID(c)
	if !ok {
		utils.JSON404(c, msgNotFound)
		return
	}

	var patch domain.MeasurePatch
	decoder := json.NewDecoder(c.Request.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&patch); err != nil && !errors.Is(err, io.EOF) {
		utils.JSON400(c, "Solicitud inválida: "+err.Error())
		return
	}

	if fields := validateMeasurePatch(patch); fields != nil {
		utils.JSON400Fields(c, fields)
		return
	}

	var regionID *uint
	if patch.RegionID.Set {
		regionID = &patch.RegionID.Value
	}
	var sourceID *uint
	if patch.SourceID.Set {
		sourceID = patch.SourceID.Value
	}
	if fields := ctrl.checkMeasureReferences(c, regionID, sourceID); fields != nil {
		utils.JSON400Fields(c, fields)
		return
	}

	measure, err := ctrl.Service.Measure.UpdateMeasure(ctx, id, patch)
	ctrl.recordMeasureWrite("update", err)
	if err != nil {
		ctrl.respondError(c, "Measure", err)
		return
	}
	utils.JSON200(c, measure)
}

// DeleteMeasure answers 204 whether or not the measure existed.
func (ctrl *Controller) DeleteMeasure(c *gin.Context) {
	ctx := c.Request.Context()
	id, ok := parseID(c)
	if !ok {
		utils.JSON404(c, msgNotFound)
		return
	}

	err := ctrl.Service.Measure.DeleteMeasure(ctx, id)
	ctrl.recordMeasureWrite("delete", err)
	if err != nil {
		ctrl.respondError(c, "Measure", err)
		return
	}

	ctrl.Infra.Logger.InfoWithContextf(ctx, "[Measure] Deleted measure %d", id)
	utils.JSON204(c)
}

func validateMeasurePatch(patch domain.MeasurePatch) map[string][]string {
	fields := map[string][]string{}
	for _, name := range patch.NullViolations() {
		fields[name] = append(fields[name], msgNotNull)
	}
	if patch.Name.Set && utf8.RuneCountInString(patch.Name.Value) > 150 {
		fields["nombre"] = append(fields["nombre"], "Asegúrese de que este campo no tenga más de 150 caracteres.")
	}
	if patch.Objective.Set && !patch.Objective.Null && strings.TrimSpace(patch.Objective.Value) == "" {
		fields["objetivo"] = append(fields["objetivo"], "Este campo no puede estar en blanco.")
	}
	if patch.ProgressPct.Set && (patch.ProgressPct.Value < 0 || patch.ProgressPct.Value > 100) {
		fields["avance_pct"] = append(fields["avance_pct"], "Asegúrese de que este valor esté entre 0 y 100.")
	}
	if len(fields) == 0 {
		return nil
	}
	return fields
}

// checkMeasureReferences reports region or source ids that do not exist.
func (ctrl *Controller) checkMeasureReferences(c *gin.Context, regionID, sourceID *uint) map[string][]string {
	ctx := c.Request.Context()
	fields := map[string][]string{}

	if regionID != nil {
		if _, err := ctrl.Repository.RegionRepo.GetByID(ctx, *regionID); errors.Is(err, domain.ErrNotFound) {
			fields["region_id"] = []string{invalidPKMessage(*regionID)}
		}
	}
	if sourceID != nil {
		if _, err := ctrl.Repository.WaterSourceRepo.GetByID(ctx, *sourceID); errors.Is(err, domain.ErrNotFound) {
			fields["fuente_id"] = []string{invalidPKMessage(*sourceID)}
		}
	}

	if len(fields) == 0 {
		return nil
	}
	return fields
}

func (ctrl *Controller) recordMeasureWrite(operation string, err error) {
	if ctrl.Infra.Metrics == nil {
		return
	}
	ctrl.Infra.Metrics.MeasureWrites.WithLabelValues(operation, infra.Outcome(err)).Inc()
}
