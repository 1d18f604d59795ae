package handler

import (
	"net/http"

	"github.com/GoDevDesk/dogosoft-kiosco/internal/apierror"
	"github.com/GoDevDesk/dogosoft-kiosco/internal/dto"
	"github.com/GoDevDesk/dogosoft-kiosco/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CombosHandler struct {
	svc service.ComboService
}

func NewCombosHandler(svc service.ComboService) *CombosHandler {
	return &CombosHandler{svc: svc}
}

func (h *CombosHandler) Crear(c *gin.Context) {
	var req dto.CrearComboRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Crear(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *CombosHandler) Obtener(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	resp, err := h.svc.Obtener(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CombosHandler) Listar(c *gin.Context) {
	soloActivos := c.DefaultQuery("activo", "true") != "false"
	resp, err := h.svc.Listar(c.Request.Context(), soloActivos)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CombosHandler) Actualizar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	var req dto.ActualizarComboRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Actualizar(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CombosHandler) Desactivar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	if err := h.svc.Desactivar(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Expandir godoc
// @Summary      Expandir un combo a productos concretos
// @Description  Resuelve las sustituciones elegidas y devuelve las líneas expandidas, una selección por unidad de combo. Las alternativas no registradas devuelven 422.
// @Tags         combos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string true "UUID del combo"
// @Param        body body dto.ExpandirComboRequest true "Unidades y selecciones"
// @Success      200  {array}  dto.LineaExpandidaResponse
// @Failure      422  {object} apierror.APIError
// @Router       /v1/combos/{id}/expandir [post]
func (h *CombosHandler) Expandir(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	var req dto.ExpandirComboRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Expandir(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
