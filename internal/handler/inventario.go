package handler

import (
	"net/http"

	"github.com/GoDevDesk/dogosoft-kiosco/internal/apierror"
	"github.com/GoDevDesk/dogosoft-kiosco/internal/dto"
	"github.com/GoDevDesk/dogosoft-kiosco/internal/middleware"
	"github.com/GoDevDesk/dogosoft-kiosco/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type InventarioHandler struct {
	svc service.StockService
}

func NewInventarioHandler(svc service.StockService) *InventarioHandler {
	return &InventarioHandler{svc: svc}
}

// AjusteManual godoc
// @Summary      Ajuste manual de stock
// @Description  Registra una corrección directa (rotura, recuento, merma). Un ajuste que dejaría stock negativo requiere confirmar_negativo=true; sin la confirmación devuelve 409.
// @Tags         inventario
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string true "UUID del producto"
// @Param        body body dto.AjusteManualRequest true "Ajuste"
// @Success      201  {object} dto.MovimientoStockResponse
// @Failure      409  {object} apierror.APIError
// @Router       /v1/inventario/productos/{id}/ajuste [post]
func (h *InventarioHandler) AjusteManual(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	var req dto.AjusteManualRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	resp, err := h.svc.AjusteManual(c.Request.Context(), id, claims.Username, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *InventarioHandler) CompraProducto(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	var req dto.CompraProductoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	resp, err := h.svc.CompraProducto(c.Request.Context(), id, claims.Username, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *InventarioHandler) Movimientos(c *gin.Context) {
	var filter dto.MovimientoStockFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.ListarMovimientos(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
