package dto

import "github.com/shopspring/decimal"

type ItemVentaRequest struct {
	ProductoID string `json:"producto_id" validate:"required,uuid"`
	Cantidad   int    `json:"cantidad" validate:"required,min=1"`
}

// AjusteRequest es un descuento o recargo confirmado en el mostrador.
// Se acumulan de forma aditiva: cada uno se calcula contra el subtotal y
// suma (recargo) o resta (descuento) al ajuste total de la venta.
type AjusteRequest struct {
	Modo   string          `json:"modo" validate:"required,oneof=descuento recargo"`
	Metodo string          `json:"metodo" validate:"required,oneof=porcentaje fijo"`
	Valor  decimal.Decimal `json:"valor" validate:"required"`
}

// PagosRequest separa el pago en los cinco componentes del mostrador.
type PagosRequest struct {
	Efectivo        decimal.Decimal `json:"efectivo" validate:"min=0"`
	Tarjeta         decimal.Decimal `json:"tarjeta" validate:"min=0"`
	CuentaCorriente decimal.Decimal `json:"cuenta_corriente" validate:"min=0"`
	Cheque          decimal.Decimal `json:"cheque" validate:"min=0"`
	Tickets         decimal.Decimal `json:"tickets" validate:"min=0"`
}

type RegistrarVentaRequest struct {
	ListaPrecioID string             `json:"lista_precio_id" validate:"required,uuid"`
	Items         []ItemVentaRequest `json:"items" validate:"required,min=1,dive"`
	Ajustes       []AjusteRequest    `json:"ajustes" validate:"omitempty,dive"`
	Pagos         PagosRequest       `json:"pagos"`
}

type VentaFilter struct {
	Fecha string `form:"fecha"` // YYYY-MM-DD; vacío = hoy
	Page  int    `form:"page,default=1" validate:"min=1"`
	Limit int    `form:"limit,default=50" validate:"min=1,max=200"`
}

type ItemVentaResponse struct {
	Producto       string          `json:"producto"`
	Cantidad       int             `json:"cantidad"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario"`
	Subtotal       decimal.Decimal `json:"subtotal"`
}

type PagoResponse struct {
	Metodo string          `json:"metodo"`
	Monto  decimal.Decimal `json:"monto"`
}

type VentaResponse struct {
	ID           string              `json:"id"`
	NumeroTicket int                 `json:"numero_ticket"`
	Items        []ItemVentaResponse `json:"items"`
	Subtotal     decimal.Decimal     `json:"subtotal"`
	AjusteTotal  decimal.Decimal     `json:"ajuste_total"`
	Total        decimal.Decimal     `json:"total"`
	Pagos        []PagoResponse      `json:"pagos"`
	Vuelto       decimal.Decimal     `json:"vuelto"`
	Usuario      string              `json:"usuario"`
	CreatedAt    string              `json:"created_at"`
}

type VentaListResponse struct {
	Data  []VentaResponse `json:"data"`
	Total int64           `json:"total"`
	Page  int             `json:"page"`
	Limit int             `json:"limit"`
}
