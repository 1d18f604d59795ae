package dto

import "github.com/shopspring/decimal"

// AjusteManualRequest corrige stock a mano. Un ajuste negativo que dejaría
// el stock por debajo de cero se bloquea salvo que el operador lo confirme
// explícitamente con ConfirmarNegativo.
type AjusteManualRequest struct {
	Tipo              string `json:"tipo" validate:"required,oneof=Ajuste+ Ajuste-"`
	Cantidad          int    `json:"cantidad" validate:"required,min=1"`
	Motivo            string `json:"motivo" validate:"required,min=3"`
	ConfirmarNegativo bool   `json:"confirmar_negativo"`
}

// CompraProductoRequest ingresa stock comprado de un producto contado.
type CompraProductoRequest struct {
	Cantidad      int              `json:"cantidad" validate:"required,min=1"`
	CostoUnitario *decimal.Decimal `json:"costo_unitario"`
	ProveedorID   *string          `json:"proveedor_id" validate:"omitempty,uuid"`
	Motivo        string           `json:"motivo"`
}

type MovimientoStockFilter struct {
	ProductoID string `form:"producto_id" validate:"omitempty,uuid"`
	Tipo       string `form:"tipo"`
	Page       int    `form:"page,default=1" validate:"min=1"`
	Limit      int    `form:"limit,default=100" validate:"min=1,max=500"`
}

type MovimientoStockResponse struct {
	ID            string           `json:"id"`
	ProductoID    string           `json:"producto_id"`
	Producto      string           `json:"producto"`
	Tipo          string           `json:"tipo"`
	Cantidad      int              `json:"cantidad"`
	StockAnterior int              `json:"stock_anterior"`
	StockNuevo    int              `json:"stock_nuevo"`
	Costo         *decimal.Decimal `json:"costo"`
	Motivo        string           `json:"motivo"`
	Usuario       string           `json:"usuario"`
	CreatedAt     string           `json:"created_at"`
}

type MovimientoStockListResponse struct {
	Data  []MovimientoStockResponse `json:"data"`
	Total int64                     `json:"total"`
	Page  int                       `json:"page"`
	Limit int                       `json:"limit"`
}

type MovimientoMateriaPrimaResponse struct {
	ID               string          `json:"id"`
	MateriaPrimaID   string          `json:"materia_prima_id"`
	MateriaPrima     string          `json:"materia_prima"`
	Tipo             string          `json:"tipo"`
	Cantidad         decimal.Decimal `json:"cantidad"`
	CantidadAnterior decimal.Decimal `json:"cantidad_anterior"`
	CantidadNueva    decimal.Decimal `json:"cantidad_nueva"`
	Motivo           string          `json:"motivo"`
	Usuario          string          `json:"usuario"`
	CreatedAt        string          `json:"created_at"`
}
