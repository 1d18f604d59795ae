package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/GoDevDesk/dogosoft-kiosco/internal/apierror"
	"github.com/GoDevDesk/dogosoft-kiosco/internal/apperr"
	"github.com/GoDevDesk/dogosoft-kiosco/internal/dto"
	"github.com/GoDevDesk/dogosoft-kiosco/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// TTL corto a propósito: los precios mutan por FijarPrecio y por la
// actualización masiva, y no hay invalidación explícita.
const precioCacheTTL = 60 * time.Second

// ConsultaPreciosHandler serves the public price check endpoint.
// Read-only, no authentication, no side effects.
type ConsultaPreciosHandler struct {
	svc service.PrecioService
	rdb *redis.Client
}

func NewConsultaPreciosHandler(svc service.PrecioService, rdb *redis.Client) *ConsultaPreciosHandler {
	return &ConsultaPreciosHandler{svc: svc, rdb: rdb}
}

// ConsultarPorCodigo godoc
// @Summary Consulta de precio por código de producto (sin autenticación)
// @Tags precios
// @Produce json
// @Param codigo path string true "Código del producto"
// @Param lista query string true "UUID de la lista de precios"
// @Success 200 {object} dto.ConsultaPrecioResponse
// @Failure 404 {object} apierror.APIError
// @Failure 422 {object} apierror.APIError "Producto sin precio en la lista"
// @Router /v1/precios/{codigo} [get]
func (h *ConsultaPreciosHandler) ConsultarPorCodigo(c *gin.Context) {
	codigo := c.Param("codigo")
	listaID, err := uuid.Parse(c.Query("lista"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("parámetro 'lista' invalido"))
		return
	}
	ctx := c.Request.Context()
	cacheKey := "precio:" + listaID.String() + ":" + codigo

	if cached, err := h.rdb.Get(ctx, cacheKey).Bytes(); err == nil {
		var resp dto.ConsultaPrecioResponse
		if jsonErr := json.Unmarshal(cached, &resp); jsonErr == nil {
			c.JSON(http.StatusOK, resp)
			return
		}
	}

	resp, err := h.svc.ConsultarPorCodigo(ctx, codigo, listaID)
	if errors.Is(err, apperr.ErrSinPrecioEnLista) {
		respondError(c, err)
		return
	}
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New("Producto no encontrado"))
		return
	}

	// Populate cache — best effort, ignore errors.
	if b, jsonErr := json.Marshal(resp); jsonErr == nil {
		_ = h.rdb.Set(context.Background(), cacheKey, b, precioCacheTTL).Err()
	}

	c.JSON(http.StatusOK, resp)
}
