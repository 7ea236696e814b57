package controller

import (
	"context"
	"errors"
	"math"
	"net/http"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
	"github.com/tnqbao/gau-sequia-service/domain"
	"github.com/tnqbao/gau-sequia-service/http/controller/dto"
)

// Panel renders the private overview with the current weather. A weather
// failure only fills clima_error.
func (ctrl *Controller) Panel(c *gin.Context) {
	ctx := c.Request.Context()

	summary, err := ctrl.Repository.SummaryRepo.Summary(ctx)
	if err != nil {
		ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[Panel] Failed to load summary: %v", err)
		ctrl.renderError(c, http.StatusInternalServerError, msgInternal)
		return
	}

	lat := c.DefaultQuery("lat", ctrl.Config.EnvConfig.Weather.DefaultLat)
	lon := c.DefaultQuery("lon", ctrl.Config.EnvConfig.Weather.DefaultLon)

	data := gin.H{
		"title":       "Panel",
		"summary":     summary,
		"avg_rounded": math.Round(summary.AverageProgress*10) / 10,
		"lat":         lat,
		"lon":         lon,
	}

	weather, err := ctrl.Infra.Weather.Current(ctx, lat, lon)
	if err != nil {
		ctrl.Infra.Logger.WarningWithContextf(ctx, "[Panel] Weather lookup failed: %v", err)
		data["clima_error"] = weatherErrorMessage(err)
	} else {
		data["clima"] = weather
	}

	ctrl.render(c, http.StatusOK, "panel.html", data)
}

func (ctrl *Controller) MeasureListPage(c *gin.Context) {
	ctx := c.Request.Context()

	measures, err := ctrl.Service.Measure.ListMeasures(ctx)
	if err != nil {
		ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[Panel] Failed to list measures: %v", err)
		ctrl.renderError(c, http.StatusInternalServerError, msgInternal)
		return
	}
	ctrl.render(c, http.StatusOK, "medida_list.html", gin.H{
		"title": "Medidas",
		"items": measures,
	})
}

func (ctrl *Controller) NewMeasurePage(c *gin.Context) {
	ctrl.renderMeasureForm(c, http.StatusOK, nil, dto.MeasureFormDTO{ProgressPct: "0"}, nil)
}

func (ctrl *Controller) CreateMeasurePage(c *gin.Context) {
	ctx := c.Request.Context()

	var form dto.MeasureFormDTO
	if err := c.ShouldBind(&form); err != nil {
		ctrl.Infra.Logger.WarningWithContextf(ctx, "[Panel] Rejected measure form: %v", err)
		ctrl.renderMeasureForm(c, http.StatusOK, nil, form, map[string]string{
			"__all__": strings.Join(bindErrorMessages(err), " "),
		})
		return
	}

	in, errs := ctrl.parseMeasureForm(ctx, form)
	if len(errs) == 0 {
		measure, err := ctrl.Service.Measure.CreateMeasure(ctx, in)
		ctrl.recordMeasureWrite("create", err)
		if err == nil {
			ctrl.Infra.Logger.InfoWithContextf(ctx, "[Panel] Created measure %d (%s)", measure.ID, measure.Name)
			c.Redirect(http.StatusFound, "/medidas")
			return
		}
		if errs = formErrorsFrom(err); errs == nil {
			ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[Panel] Failed to create measure: %v", err)
			ctrl.renderError(c, http.StatusInternalServerError, msgInternal)
			return
		}
	}
	ctrl.renderMeasureForm(c, http.StatusOK, nil, form, errs)
}

func (ctrl *Controller) EditMeasurePage(c *gin.Context) {
	measure, ok := ctrl.loadMeasure(c)
	if !ok {
		return
	}
	ctrl.renderMeasureForm(c, http.StatusOK, measure, measureForm(measure), nil)
}

func (ctrl *Controller) UpdateMeasurePage(c *gin.Context) {
	ctx := c.Request.Context()
	measure, ok := ctrl.loadMeasure(c)
	if !ok {
		return
	}

	var form dto.MeasureFormDTO
	if err := c.ShouldBind(&form); err != nil {
		ctrl.Infra.Logger.WarningWithContextf(ctx, "[Panel] Rejected measure form: %v", err)
		ctrl.renderMeasureForm(c, http.StatusOK, measure, form, map[string]string{
			"__all__": strings.Join(bindErrorMessages(err), " "),
		})
		return
	}

	in, errs := ctrl.parseMeasureForm(ctx, form)
	if len(errs) == 0 {
		_, err := ctrl.Service.Measure.UpdateMeasure(ctx, measure.ID, domain.MeasurePatch{
			Name:        domain.Some(in.Name),
			RegionID:    domain.Some(in.RegionID),
			SourceID:    domain.Some(in.SourceID),
			Objective:   domain.Some(in.Objective),
			ProgressPct: domain.Some(in.ProgressPct),
			StartDate:   domain.Some(in.StartDate),
			EndDate:     domain.Some(in.EndDate),
		})
		ctrl.recordMeasureWrite("update", err)
		if err == nil {
			c.Redirect(http.StatusFound, "/medidas")
			return
		}
		if errors.Is(err, domain.ErrNotFound) {
			ctrl.renderError(c, http.StatusNotFound, "La medida no existe.")
			return
		}
		if errs = formErrorsFrom(err); errs == nil {
			ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[Panel] Failed to update measure %d: %v", measure.ID, err)
			ctrl.renderError(c, http.StatusInternalServerError, msgInternal)
			return
		}
	}
	ctrl.renderMeasureForm(c, http.StatusOK, measure, form, errs)
}

func (ctrl *Controller) DeleteMeasurePage(c *gin.Context) {
	measure, ok := ctrl.loadMeasure(c)
	if !ok {
		return
	}
	ctrl.render(c, http.StatusOK, "medida_confirm_delete.html", gin.H{
		"title":  "Eliminar medida",
		"object": measure,
	})
}

func (ctrl *Controller) ConfirmDeleteMeasurePage(c *gin.Context) {
	ctx := c.Request.Context()
	measure, ok := ctrl.loadMeasure(c)
	if !ok {
		return
	}

	err := ctrl.Service.Measure.DeleteMeasure(ctx, measure.ID)
	ctrl.recordMeasureWrite("delete", err)
	if err != nil {
		ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[Panel] Failed to delete measure %d: %v", measure.ID, err)
		ctrl.renderError(c, http.StatusInternalServerError, msgInternal)
		return
	}
	ctrl.Infra.Logger.InfoWithContextf(ctx, "[Panel] Deleted measure %d", measure.ID)
	c.Redirect(http.StatusFound, "/medidas")
}

func (ctrl *Controller) loadMeasure(c *gin.Context) (*domain.Measure, bool) {
	id, ok := parseID(c)
	if !ok {
		ctrl.renderError(c, http.StatusNotFound, "La medida no existe.")
		return nil, false
	}

	measure, err := ctrl.Service.Measure.GetMeasure(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			ctrl.renderError(c, http.StatusNotFound, "La medida no existe.")
		} else {
			ctrl.Infra.Logger.ErrorWithContextf(c.Request.Context(), err, "[Panel] Failed to load measure %d: %v", id, err)
			ctrl.renderError(c, http.StatusInternalServerError, msgInternal)
		}
		return nil, false
	}
	return measure, true
}

func (ctrl *Controller) renderMeasureForm(c *gin.Context, status int, measure *domain.Measure, form dto.MeasureFormDTO, errs map[string]string) {
	ctx := c.Request.Context()

	regions, err := ctrl.Repository.RegionRepo.List(ctx)
	if err != nil {
		ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[Panel] Failed to list regions: %v", err)
		ctrl.renderError(c, http.StatusInternalServerError, msgInternal)
		return
	}
	sources, err := ctrl.Repository.WaterSourceRepo.List(ctx)
	if err != nil {
		ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[Panel] Failed to list sources: %v", err)
		ctrl.renderError(c, http.StatusInternalServerError, msgInternal)
		return
	}

	title := "Nueva medida"
	if measure != nil {
		title = "Editar medida"
	}
	ctrl.render(c, status, "medida_form.html", gin.H{
		"title":   title,
		"object":  measure,
		"form":    form,
		"errors":  errs,
		"regions": regions,
		"sources": sources,
	})
}

func measureForm(m *domain.Measure) dto.MeasureFormDTO {
	form := dto.MeasureFormDTO{
		Name:        m.Name,
		Region:      strconv.FormatUint(uint64(m.RegionID), 10),
		Objective:   m.Objective,
		ProgressPct: strconv.FormatFloat(m.ProgressPct, 'f', -1, 64),
		StartDate:   m.StartDate.String(),
	}
	if m.SourceID != nil {
		form.Source = strconv.FormatUint(uint64(*m.SourceID), 10)
	}
	if m.EndDate != nil {
		form.EndDate = m.EndDate.String()
	}
	return form
}

// parseMeasureForm turns the posted strings into a MeasureInput, collecting
// one message per bad field.
func (ctrl *Controller) parseMeasureForm(ctx context.Context, form dto.MeasureFormDTO) (domain.MeasureInput, map[string]string) {
	errs := map[string]string{}
	in := domain.MeasureInput{
		Name:      strings.TrimSpace(form.Name),
		Objective: strings.TrimSpace(form.Objective),
	}

	switch {
	case in.Name == "":
		errs["nombre"] = msgRequired
	case utf8.RuneCountInString(in.Name) > 150:
		errs["nombre"] = "Asegúrese de que este campo no tenga más de 150 caracteres."
	}
	if in.Objective == "" {
		errs["objetivo"] = msgRequired
	}

	if raw := strings.TrimSpace(form.Region); raw == "" {
		errs["region"] = msgRequired
	} else if id, err := strconv.ParseUint(raw, 10, 32); err != nil {
		errs["region"] = msgInvalidChoice
	} else if _, err := ctrl.Repository.RegionRepo.GetByID(ctx, uint(id)); err != nil {
		errs["region"] = msgInvalidChoice
	} else {
		in.RegionID = uint(id)
	}

	if raw := strings.TrimSpace(form.Source); raw != "" {
		if id, err := strconv.ParseUint(raw, 10, 32); err != nil {
			errs["fuente"] = msgInvalidChoice
		} else if _, err := ctrl.Repository.WaterSourceRepo.GetByID(ctx, uint(id)); err != nil {
			errs["fuente"] = msgInvalidChoice
		} else {
			sourceID := uint(id)
			in.SourceID = &sourceID
		}
	}

	if raw := strings.TrimSpace(form.ProgressPct); raw != "" {
		pct, err := strconv.ParseFloat(strings.Replace(raw, ",", ".", 1), 64)
		switch {
		case err != nil || math.IsNaN(pct):
			errs["avance_pct"] = "Introduzca un número."
		case pct < 0 || pct > 100:
			errs["avance_pct"] = "El avance debe estar entre 0 y 100."
		default:
			in.ProgressPct = pct
		}
	}

	if raw := strings.TrimSpace(form.StartDate); raw == "" {
		errs["fecha_inicio"] = msgRequired
	} else if d, err := domain.ParseDate(raw); err != nil {
		errs["fecha_inicio"] = "Introduzca una fecha válida."
	} else {
		in.StartDate = d
	}

	if raw := strings.TrimSpace(form.EndDate); raw != "" {
		if d, err := domain.ParseDate(raw); err != nil {
			errs["fecha_fin"] = "Introduzca una fecha válida."
		} else {
			in.EndDate = &d
		}
	}

	return in, errs
}

// formErrorsFrom keeps the service's field errors on the form; nil means the
// error is not the user's to fix.
func formErrorsFrom(err error) map[string]string {
	var vErr *domain.ValidationError
	if errors.As(err, &vErr) {
		return map[string]string{vErr.Field: vErr.Message}
	}
	if errors.Is(err, domain.ErrIntegrity) {
		return map[string]string{"__all__": "No se pudo guardar la medida: la región o la fuente ya no existe."}
	}
	return nil
}
