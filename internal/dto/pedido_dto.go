package dto

import "github.com/shopspring/decimal"

type ItemPedidoRequest struct {
	ProductoID        string  `json:"producto_id" validate:"required,uuid"`
	Cantidad          int     `json:"cantidad" validate:"required,min=1"`
	Personalizaciones *string `json:"personalizaciones"`
}

type ComboPedidoRequest struct {
	ComboID  string `json:"combo_id" validate:"required,uuid"`
	Cantidad int    `json:"cantidad" validate:"required,min=1"`
	// Selecciones: una entrada por unidad de combo — cada unidad tiene sus
	// propios slots sustituibles. Vacío = productos por defecto.
	Selecciones       []SeleccionCombo `json:"selecciones"`
	Personalizaciones *string          `json:"personalizaciones"`
}

type CrearPedidoRequest struct {
	Cliente       string               `json:"cliente"`
	Telefono      *string              `json:"telefono"`
	ListaPrecioID string               `json:"lista_precio_id" validate:"required,uuid"`
	Items         []ItemPedidoRequest  `json:"items" validate:"omitempty,dive"`
	Combos        []ComboPedidoRequest `json:"combos" validate:"omitempty,dive"`
}

type CambiarEstadoPedidoRequest struct {
	Estado string `json:"estado" validate:"required,oneof=Pendiente 'En Preparación' Listo Entregado"`
}

type PedidoFilter struct {
	Estado string `form:"estado"` // vacío = todos
	Fecha  string `form:"fecha"`  // YYYY-MM-DD; vacío = hoy
	Page   int    `form:"page,default=1" validate:"min=1"`
	Limit  int    `form:"limit,default=50" validate:"min=1,max=200"`
}

type ItemPedidoResponse struct {
	ProductoID        *string         `json:"producto_id"`
	ComboID           *string         `json:"combo_id"`
	Descripcion       string          `json:"descripcion"`
	Cantidad          int             `json:"cantidad"`
	PrecioUnitario    decimal.Decimal `json:"precio_unitario"`
	Subtotal          decimal.Decimal `json:"subtotal"`
	Personalizaciones *string         `json:"personalizaciones"`
}

type PedidoResponse struct {
	ID           string               `json:"id"`
	NumeroPedido int                  `json:"numero_pedido"`
	Cliente      string               `json:"cliente"`
	Telefono     *string              `json:"telefono"`
	Estado       string               `json:"estado"`
	Total        decimal.Decimal      `json:"total"`
	Usuario      string               `json:"usuario"`
	Items        []ItemPedidoResponse `json:"items"`
	CreatedAt    string               `json:"created_at"`
	CompletadoEn *string              `json:"completado_en"`
}

type PedidoListResponse struct {
	Data  []PedidoResponse `json:"data"`
	Total int64            `json:"total"`
	Page  int              `json:"page"`
	Limit int              `json:"limit"`
}
