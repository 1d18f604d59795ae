package handler

import (
	"net/http"
	"strconv"

	"github.com/GoDevDesk/dogosoft-kiosco/internal/apierror"
	"github.com/GoDevDesk/dogosoft-kiosco/internal/dto"
	"github.com/GoDevDesk/dogosoft-kiosco/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ListasPreciosHandler struct {
	svc     service.ListaPrecioService
	precios service.PrecioService
}

func NewListasPreciosHandler(svc service.ListaPrecioService, precios service.PrecioService) *ListasPreciosHandler {
	return &ListasPreciosHandler{svc: svc, precios: precios}
}

func (h *ListasPreciosHandler) Crear(c *gin.Context) {
	var req dto.CrearListaPrecioRequest
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

func (h *ListasPreciosHandler) Listar(c *gin.Context) {
	resp, err := h.svc.Listar(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ListasPreciosHandler) Actualizar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	var req dto.ActualizarListaPrecioRequest
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

// Eliminar godoc
// @Summary      Eliminar lista de precios
// @Description  Borra la lista y sus precios. Las listas protegidas devuelven 409.
// @Tags         listas-precios
// @Security     BearerAuth
// @Param        id path string true "UUID"
// @Success      204
// @Failure      409 {object} apierror.APIError
// @Router       /v1/listas-precios/{id} [delete]
func (h *ListasPreciosHandler) Eliminar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	if err := h.svc.Eliminar(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ── Precios dentro de una lista ───────────────────────────────────────────────

func (h *ListasPreciosHandler) ListarPrecios(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	resp, err := h.precios.ListarPrecios(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// FijarPrecio godoc
// @Summary      Fijar precio de un producto en la lista
// @Description  Crea la entrada la primera vez, la muta después. Cada cambio va al historial.
// @Tags         listas-precios
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string true "UUID de la lista"
// @Param        body body dto.FijarPrecioRequest true "Precio"
// @Success      200  {object} dto.PrecioProductoResponse
// @Router       /v1/listas-precios/{id}/precios [put]
func (h *ListasPreciosHandler) FijarPrecio(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	var req dto.FijarPrecioRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.precios.FijarPrecio(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ActualizacionMasiva godoc
// @Summary      Actualización masiva por proveedor
// @Description  Aplica un porcentaje al costo de los productos del proveedor y recalcula ventas. Atómica: o se actualiza todo el proveedor o nada.
// @Tags         listas-precios
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string true "UUID de la lista"
// @Param        body body dto.ActualizacionMasivaRequest true "Proveedor y porcentaje"
// @Success      200  {object} dto.ActualizacionMasivaResponse
// @Router       /v1/listas-precios/{id}/actualizacion-masiva [post]
func (h *ListasPreciosHandler) ActualizacionMasiva(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	var req dto.ActualizacionMasivaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.precios.ActualizacionMasiva(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ReresolverPrecios godoc
// @Summary      Re-resolver líneas contra esta lista
// @Description  Para el cambio de lista con pedido abierto: devuelve el precio de cada línea en la lista destino, marcando las que no tienen precio.
// @Tags         listas-precios
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string true "UUID de la lista destino"
// @Param        body body dto.ReresolverPreciosRequest true "Líneas abiertas"
// @Success      200  {array} dto.LineaReresueltaResponse
// @Router       /v1/listas-precios/{id}/reresolver [post]
func (h *ListasPreciosHandler) ReresolverPrecios(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	var req dto.ReresolverPreciosRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.precios.ReresolverLineas(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ── Historial ─────────────────────────────────────────────────────────────────

type HistorialPreciosHandler struct{ precios service.PrecioService }

func NewHistorialPreciosHandler(precios service.PrecioService) *HistorialPreciosHandler {
	return &HistorialPreciosHandler{precios: precios}
}

func (h *HistorialPreciosHandler) PorProducto(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	resp, err := h.precios.HistorialPorProducto(c.Request.Context(), id, page, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *HistorialPreciosHandler) PorProveedor(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	resp, err := h.precios.HistorialPorProveedor(c.Request.Context(), id, page, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
