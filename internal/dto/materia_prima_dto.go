package dto

import "github.com/shopspring/decimal"

type CrearMateriaPrimaRequest struct {
	Codigo         string           `json:"codigo" validate:"required,max=20"`
	Nombre         string           `json:"nombre" validate:"required,max=200"`
	Descripcion    *string          `json:"descripcion" validate:"omitempty,max=500"`
	EsIngrediente  bool             `json:"es_ingrediente"`
	Unidad         string           `json:"unidad" validate:"required,max=10"`
	CantidadMinima *decimal.Decimal `json:"cantidad_minima"`
	CantidadMaxima *decimal.Decimal `json:"cantidad_maxima"`
	CostoUnitario  *decimal.Decimal `json:"costo_unitario"`
	CategoriaID    *string          `json:"categoria_id" validate:"omitempty,uuid"`
	ProveedorID    *string          `json:"proveedor_id" validate:"omitempty,uuid"`
}

type ActualizarMateriaPrimaRequest struct {
	Nombre         string           `json:"nombre" validate:"omitempty,max=200"`
	Descripcion    *string          `json:"descripcion" validate:"omitempty,max=500"`
	EsIngrediente  *bool            `json:"es_ingrediente"`
	Unidad         string           `json:"unidad" validate:"omitempty,max=10"`
	CantidadMinima *decimal.Decimal `json:"cantidad_minima"`
	CantidadMaxima *decimal.Decimal `json:"cantidad_maxima"`
	CostoUnitario  *decimal.Decimal `json:"costo_unitario"`
	ProveedorID    *string          `json:"proveedor_id" validate:"omitempty,uuid"`
}

// RegistrarCompraRequest ingresa mercadería de un proveedor: suma cantidad
// disponible y actualiza el costo unitario.
type RegistrarCompraRequest struct {
	Cantidad      decimal.Decimal `json:"cantidad" validate:"required,gt=0"`
	CostoUnitario decimal.Decimal `json:"costo_unitario" validate:"required,min=0"`
	ProveedorID   *string         `json:"proveedor_id" validate:"omitempty,uuid"`
	Motivo        string          `json:"motivo"`
}

type MateriaPrimaResponse struct {
	ID                 string           `json:"id"`
	Codigo             string           `json:"codigo"`
	Nombre             string           `json:"nombre"`
	EsIngrediente      bool             `json:"es_ingrediente"`
	Unidad             string           `json:"unidad"`
	CantidadDisponible decimal.Decimal  `json:"cantidad_disponible"`
	CantidadMinima     *decimal.Decimal `json:"cantidad_minima"`
	CantidadMaxima     *decimal.Decimal `json:"cantidad_maxima"`
	CostoUnitario      *decimal.Decimal `json:"costo_unitario"`
	ProveedorID        *string          `json:"proveedor_id"`
	Activa             bool             `json:"activa"`
}

type MateriaPrimaListResponse struct {
	Data  []MateriaPrimaResponse `json:"data"`
	Total int64                  `json:"total"`
	Page  int                    `json:"page"`
	Limit int                    `json:"limit"`
}

type MateriaPrimaFilter struct {
	Nombre          string `form:"nombre"`
	SoloIngredientes bool  `form:"solo_ingredientes"`
	Activo          string `form:"activo"`
	Page            int    `form:"page,default=1" validate:"min=1"`
	Limit           int    `form:"limit,default=50" validate:"min=1,max=200"`
}
