package dto

import "github.com/shopspring/decimal"

// ─── Requests ────────────────────────────────────────────────────────────────

type CrearProductoRequest struct {
	Codigo        string  `json:"codigo" validate:"required,max=20"`
	Nombre        string  `json:"nombre" validate:"required,max=200"`
	ControlaStock bool    `json:"controla_stock"`
	Stock         *int    `json:"stock" validate:"omitempty,min=0"`
	StockMinimo   *int    `json:"stock_minimo" validate:"omitempty,min=0"`
	StockMaximo   *int    `json:"stock_maximo" validate:"omitempty,min=0"`
	TieneReceta   bool    `json:"tiene_receta"`
	UnidadVenta   string  `json:"unidad_venta"`
	CategoriaID   *string `json:"categoria_id" validate:"omitempty,uuid"`
	ProveedorID   *string `json:"proveedor_id" validate:"omitempty,uuid"`
	Observacion   *string `json:"observacion"`
}

type ActualizarProductoRequest struct {
	Nombre      string  `json:"nombre" validate:"omitempty,max=200"`
	StockMinimo *int    `json:"stock_minimo" validate:"omitempty,min=0"`
	StockMaximo *int    `json:"stock_maximo" validate:"omitempty,min=0"`
	UnidadVenta string  `json:"unidad_venta"`
	CategoriaID *string `json:"categoria_id" validate:"omitempty,uuid"`
	ProveedorID *string `json:"proveedor_id" validate:"omitempty,uuid"`
	Observacion *string `json:"observacion"`
}

type ProductoFilter struct {
	Codigo    string `form:"codigo"`
	Nombre    string `form:"nombre"`
	Categoria string `form:"categoria"`
	Activo    string `form:"activo"` // "false" = inactivos, "all" = todos, default activos
	Page      int    `form:"page,default=1" validate:"min=1"`
	Limit     int    `form:"limit,default=50" validate:"min=1,max=200"`
}

// ─── Receta ──────────────────────────────────────────────────────────────────

type IngredienteRecetaRequest struct {
	MateriaPrimaID string          `json:"materia_prima_id" validate:"required,uuid"`
	Cantidad       decimal.Decimal `json:"cantidad" validate:"required,gt=0"`
}

// GuardarRecetaRequest reemplaza la receta completa del producto.
type GuardarRecetaRequest struct {
	Ingredientes []IngredienteRecetaRequest `json:"ingredientes" validate:"required,dive"`
}

type IngredienteRecetaResponse struct {
	MateriaPrimaID string          `json:"materia_prima_id"`
	MateriaPrima   string          `json:"materia_prima"`
	Unidad         string          `json:"unidad"`
	Cantidad       decimal.Decimal `json:"cantidad"`
}

// ─── Responses ───────────────────────────────────────────────────────────────

type ProductoResponse struct {
	ID            string  `json:"id"`
	Codigo        string  `json:"codigo"`
	Nombre        string  `json:"nombre"`
	ControlaStock bool    `json:"controla_stock"`
	Stock         *int    `json:"stock"`
	StockMinimo   *int    `json:"stock_minimo"`
	StockMaximo   *int    `json:"stock_maximo"`
	TieneReceta   bool    `json:"tiene_receta"`
	PoliticaStock string  `json:"politica_stock"`
	UnidadVenta   string  `json:"unidad_venta"`
	CategoriaID   *string `json:"categoria_id"`
	ProveedorID   *string `json:"proveedor_id"`
	Activo        bool    `json:"activo"`
}

type ProductoListResponse struct {
	Data  []ProductoResponse `json:"data"`
	Total int64              `json:"total"`
	Page  int                `json:"page"`
	Limit int                `json:"limit"`
}
