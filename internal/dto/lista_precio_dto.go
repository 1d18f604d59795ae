package dto

import "github.com/shopspring/decimal"

type CrearListaPrecioRequest struct {
	Nombre      string  `json:"nombre" validate:"required,max=100"`
	Descripcion *string `json:"descripcion"`
	Protegida   bool    `json:"protegida"`
}

type ActualizarListaPrecioRequest struct {
	Nombre      string  `json:"nombre" validate:"omitempty,max=100"`
	Descripcion *string `json:"descripcion"`
	Activa      *bool   `json:"activa"`
}

type ListaPrecioResponse struct {
	ID          string  `json:"id"`
	Nombre      string  `json:"nombre"`
	Descripcion *string `json:"descripcion"`
	Activa      bool    `json:"activa"`
	Protegida   bool    `json:"protegida"`
}

// FijarPrecioRequest fija el precio de un producto en una lista. La fila se
// crea la primera vez y se muta en el lugar después.
type FijarPrecioRequest struct {
	ProductoID         string          `json:"producto_id" validate:"required,uuid"`
	PrecioCosto        decimal.Decimal `json:"precio_costo" validate:"min=0"`
	PrecioVenta        decimal.Decimal `json:"precio_venta" validate:"required,min=0"`
	PorcentajeUtilidad decimal.Decimal `json:"porcentaje_utilidad" validate:"min=0"`
}

type PrecioProductoResponse struct {
	ProductoID         string          `json:"producto_id"`
	Producto           string          `json:"producto"`
	ListaPrecioID      string          `json:"lista_precio_id"`
	PrecioCosto        decimal.Decimal `json:"precio_costo"`
	PrecioVenta        decimal.Decimal `json:"precio_venta"`
	PorcentajeUtilidad decimal.Decimal `json:"porcentaje_utilidad"`
	UltimaActualizacion string         `json:"ultima_actualizacion"`
}

// ActualizacionMasivaRequest aplica un porcentaje al costo de los productos
// de un proveedor en una lista y recalcula los precios de venta.
type ActualizacionMasivaRequest struct {
	ProveedorID string          `json:"proveedor_id" validate:"required,uuid"`
	Porcentaje  decimal.Decimal `json:"porcentaje" validate:"required"`
}

type ActualizacionMasivaResponse struct {
	ProductosActualizados int `json:"productos_actualizados"`
}

// ─── Re-resolución de líneas al cambiar de lista ─────────────────────────────

type LineaReresolucionRequest struct {
	ProductoID     string          `json:"producto_id" validate:"required,uuid"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario"`
}

type ReresolverPreciosRequest struct {
	Lineas []LineaReresolucionRequest `json:"lineas" validate:"required,min=1,dive"`
}

// LineaReresueltaResponse: SinPrecio = true indica que el producto no tiene
// precio en la nueva lista; PrecioUnitario conserva el valor anterior y el
// cliente decide si lo retiene.
type LineaReresueltaResponse struct {
	ProductoID     string          `json:"producto_id"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario"`
	SinPrecio      bool            `json:"sin_precio"`
}

// ─── Historial ───────────────────────────────────────────────────────────────

type HistorialPrecioItem struct {
	ID                 string          `json:"id"`
	ProductoID         string          `json:"producto_id"`
	ListaPrecioID      string          `json:"lista_precio_id"`
	ProveedorID        *string         `json:"proveedor_id"`
	CostoAntes         decimal.Decimal `json:"costo_antes"`
	CostoDespues       decimal.Decimal `json:"costo_despues"`
	VentaAntes         decimal.Decimal `json:"venta_antes"`
	VentaDespues       decimal.Decimal `json:"venta_despues"`
	PorcentajeAplicado decimal.Decimal `json:"porcentaje_aplicado"`
	Motivo             string          `json:"motivo"`
	CreatedAt          string          `json:"created_at"`
}

type HistorialPrecioListResponse struct {
	Data  []HistorialPrecioItem `json:"data"`
	Total int64                 `json:"total"`
	Page  int                   `json:"page"`
	Limit int                   `json:"limit"`
}
