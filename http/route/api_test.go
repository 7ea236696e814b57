package routes

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tnqbao/gau-sequia-service/infra"
)

func TestHealthEndpoints(t *testing.T) {
	h := newHarness(t)

	rec := h.get("/healthz")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = h.get("/readyz")
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "ok", body["checks"].(map[string]interface{})["database"])

	rec = h.get("/metrics")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "sequia_http_requests_total")
}

func TestRegionAPI(t *testing.T) {
	h := newHarness(t)
	token := h.token()

	t.Run("writes require a token", func(t *testing.T) {
		rec := h.doJSON(http.MethodPost, "/api/v1/regiones", map[string]string{"nombre": "Coquimbo"}, "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("create then read anonymously", func(t *testing.T) {
		rec := h.doJSON(http.MethodPost, "/api/v1/regiones", map[string]string{"nombre": "Coquimbo"}, token)
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
		created := decode(t, rec)
		assert.Equal(t, "Coquimbo", created["nombre"])

		rec = h.get(fmt.Sprintf("/api/v1/regiones/%v", created["id"]))
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "Coquimbo", decode(t, rec)["nombre"])
	})

	t.Run("duplicate name", func(t *testing.T) {
		rec := h.doJSON(http.MethodPost, "/api/v1/regiones", map[string]string{"nombre": "coquimbo"}, token)
		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, []interface{}{"Ya existe región con este nombre."}, decode(t, rec)["nombre"])
	})

	t.Run("missing name", func(t *testing.T) {
		rec := h.doJSON(http.MethodPost, "/api/v1/regiones", map[string]string{}, token)
		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, decode(t, rec), "nombre")
	})

	t.Run("delete referenced region is rejected", func(t *testing.T) {
		region := h.seedRegion("Atacama")
		h.seedMeasure("Desaladora norte", region.ID)

		rec := h.doJSON(http.MethodDelete, fmt.Sprintf("/api/v1/regiones/%d", region.ID), nil, token)
		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("delete missing region", func(t *testing.T) {
		rec := h.doJSON(http.MethodDelete, "/api/v1/regiones/9999", nil, token)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestPagination(t *testing.T) {
	h := newHarness(t)
	for _, name := range []string{"Arica", "Biobío", "Coquimbo"} {
		h.seedRegion(name)
	}

	rec := h.get("/api/v1/regiones")
	require.Equal(t, http.StatusOK, rec.Code)
	first := decode(t, rec)
	assert.EqualValues(t, 3, first["count"])
	assert.Len(t, first["results"], 2)
	assert.Equal(t, "http://example.com/api/v1/regiones?page=2", first["next"])
	assert.Nil(t, first["previous"])

	rec = h.get("/api/v1/regiones?page=2")
	require.Equal(t, http.StatusOK, rec.Code)
	second := decode(t, rec)
	assert.Len(t, second["results"], 1)
	assert.Nil(t, second["next"])
	assert.Equal(t, "http://example.com/api/v1/regiones", second["previous"])

	for _, page := range []string{"3", "0", "abc"} {
		rec = h.get("/api/v1/regiones?page=" + page)
		assert.Equal(t, http.StatusNotFound, rec.Code, page)
	}
}

func TestMeasureAPI(t *testing.T) {
	h := newHarness(t)
	token := h.token()
	region := h.seedRegion("Valparaíso")

	var id float64
	t.Run("create", func(t *testing.T) {
		rec := h.doJSON(http.MethodPost, "/api/v1/medidas", map[string]interface{}{
			"nombre":       "Reuso Centro",
			"region_id":    region.ID,
			"objetivo":     "Reutilizar aguas grises",
			"avance_pct":   12.5,
			"fecha_inicio": "2024-05-01",
		}, token)
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

		body := decode(t, rec)
		id = body["id"].(float64)
		assert.Equal(t, "Reuso Centro", body["nombre"])
		assert.Equal(t, "Valparaíso", body["region"].(map[string]interface{})["nombre"])
		assert.Nil(t, body["fuente"])
		assert.Equal(t, "2024-05-01", body["fecha_inicio"])
	})

	t.Run("name too short", func(t *testing.T) {
		rec := h.doJSON(http.MethodPost, "/api/v1/medidas", map[string]interface{}{
			"nombre":       "Re",
			"region_id":    region.ID,
			"objetivo":     "x",
			"fecha_inicio": "2024-05-01",
		}, token)
		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, []interface{}{"El nombre debe tener al menos 3 caracteres."}, decode(t, rec)["nombre"])
	})

	t.Run("unknown region", func(t *testing.T) {
		rec := h.doJSON(http.MethodPost, "/api/v1/medidas", map[string]interface{}{
			"nombre":       "Recarga sur",
			"region_id":    999,
			"objetivo":     "x",
			"fecha_inicio": "2024-05-01",
		}, token)
		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, []interface{}{`Clave primaria "999" inválida - objeto no existe.`}, decode(t, rec)["region_id"])
	})

	t.Run("patch applies sent keys only", func(t *testing.T) {
		rec := h.doJSON(http.MethodPatch, fmt.Sprintf("/api/v1/medidas/%.0f", id), `{"avance_pct": 55}`, token)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		body := decode(t, rec)
		assert.EqualValues(t, 55, body["avance_pct"])
		assert.Equal(t, "Reuso Centro", body["nombre"])
	})

	t.Run("patch rejects bad values", func(t *testing.T) {
		path := fmt.Sprintf("/api/v1/medidas/%.0f", id)

		rec := h.doJSON(http.MethodPatch, path, `{"avance_pct": 150}`, token)
		assert.Equal(t, http.StatusBadRequest, rec.Code)

		rec = h.doJSON(http.MethodPatch, path, `{"nombre": null}`, token)
		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, []interface{}{"Este campo no puede ser nulo."}, decode(t, rec)["nombre"])

		rec = h.doJSON(http.MethodPatch, path, `{"color": "azul"}`, token)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("list filters by region", func(t *testing.T) {
		other := h.seedRegion("Maule")
		h.seedMeasure("Telemetría Maule", other.ID)

		rec := h.get(fmt.Sprintf("/api/v1/medidas?region=%d", other.ID))
		require.Equal(t, http.StatusOK, rec.Code)
		body := decode(t, rec)
		assert.EqualValues(t, 1, body["count"])
	})

	t.Run("delete is idempotent", func(t *testing.T) {
		path := fmt.Sprintf("/api/v1/medidas/%.0f", id)
		assert.Equal(t, http.StatusNoContent, h.doJSON(http.MethodDelete, path, nil, token).Code)
		assert.Equal(t, http.StatusNoContent, h.doJSON(http.MethodDelete, path, nil, token).Code)
		assert.Equal(t, http.StatusNotFound, h.get(path).Code)
	})
}

func TestWeatherAPI(t *testing.T) {
	h := newHarness(t)

	rec := h.get("/api/v1/clima?lat=-33.45")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decode(t, rec)["error"], "Debes enviar lat y lon")

	rec = h.get("/api/v1/clima?lat=-20.2&lon=-70.1")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 21.5, decode(t, rec)["temperatura_c"])
	assert.Equal(t, "-20.2", h.weather.lat)

	h.weather.err = &infra.UpstreamError{Status: 503, Body: "down"}
	rec = h.get("/api/v1/clima?lat=1&lon=2")
	require.Equal(t, http.StatusBadGateway, rec.Code)
	body := decode(t, rec)
	assert.EqualValues(t, 503, body["status"])
	assert.Equal(t, "down", body["body"])

	h.weather.err = errors.New("dial tcp: timeout")
	rec = h.get("/api/v1/clima?lat=1&lon=2")
	require.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Equal(t, "No se pudo conectar a la API externa (Open-Meteo).", decode(t, rec)["error"])
}

func TestAuthAPI(t *testing.T) {
	h := newHarness(t)

	t.Run("register", func(t *testing.T) {
		rec := h.doJSON(http.MethodPost, "/api/v1/auth/register", map[string]string{
			"username":  "luis",
			"email":     "luis@example.cl",
			"password":  "Acuifero.Norte42",
			"password2": "Acuifero.Norte42",
		}, "")
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
		body := decode(t, rec)
		assert.Equal(t, "luis", body["username"])
		assert.NotContains(t, body, "password")
	})

	t.Run("register with mismatched passwords", func(t *testing.T) {
		rec := h.doJSON(http.MethodPost, "/api/v1/auth/register", map[string]string{
			"username":  "marta",
			"email":     "marta@example.cl",
			"password":  "Acuifero.Norte42",
			"password2": "Acuifero.Sur42",
		}, "")
		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, decode(t, rec), "password2")
	})

	t.Run("wrong credentials", func(t *testing.T) {
		rec := h.doJSON(http.MethodPost, "/api/v1/auth/token", map[string]string{
			"username": "luis",
			"password": "incorrecta",
		}, "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	rec := h.doJSON(http.MethodPost, "/api/v1/auth/token", map[string]string{
		"username": "luis",
		"password": "Acuifero.Norte42",
	}, "")
	require.Equal(t, http.StatusOK, rec.Code)
	pair := decode(t, rec)
	access := pair["access"].(string)
	refresh := pair["refresh"].(string)

	t.Run("refresh token cannot authenticate", func(t *testing.T) {
		assert.Equal(t, http.StatusUnauthorized, h.doJSON(http.MethodGet, "/api/v1/auth/me", nil, refresh).Code)
	})

	t.Run("refresh", func(t *testing.T) {
		rec := h.doJSON(http.MethodPost, "/api/v1/auth/token/refresh", map[string]string{"refresh": refresh}, "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.NotEmpty(t, decode(t, rec)["access"])

		rec = h.doJSON(http.MethodPost, "/api/v1/auth/token/refresh", map[string]string{"refresh": access}, "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("me", func(t *testing.T) {
		rec := h.doJSON(http.MethodGet, "/api/v1/auth/me", nil, access)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "luis@example.cl", decode(t, rec)["email"])

		rec = h.doJSON(http.MethodPatch, "/api/v1/auth/me", `{"first_name": "  Luis ", "username": "otro"}`, access)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		body := decode(t, rec)
		assert.Equal(t, "Luis", body["first_name"])
		assert.Equal(t, "luis", body["username"])
	})

	t.Run("password change", func(t *testing.T) {
		rec := h.doJSON(http.MethodPost, "/api/v1/auth/password/change", map[string]string{
			"old_password":  "incorrecta",
			"new_password":  "Embalse.Seguro88",
			"new_password2": "Embalse.Seguro88",
		}, access)
		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, decode(t, rec), "old_password")

		rec = h.doJSON(http.MethodPost, "/api/v1/auth/password/change", map[string]string{
			"old_password":  "Acuifero.Norte42",
			"new_password":  "Embalse.Seguro88",
			"new_password2": "Embalse.Seguro88",
		}, access)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		rec = h.doJSON(http.MethodPost, "/api/v1/auth/token", map[string]string{
			"username": "luis",
			"password": "Embalse.Seguro88",
		}, "")
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}
