package dto

import "github.com/shopspring/decimal"

// ─── Categorías ──────────────────────────────────────────────────────────────

type CrearCategoriaRequest struct {
	Nombre      string  `json:"nombre" validate:"required,max=100"`
	Descripcion *string `json:"descripcion"`
}

type ActualizarCategoriaRequest struct {
	Nombre      string  `json:"nombre" validate:"omitempty,max=100"`
	Descripcion *string `json:"descripcion"`
}

type CategoriaResponse struct {
	ID          string  `json:"id"`
	Nombre      string  `json:"nombre"`
	Descripcion *string `json:"descripcion"`
	Activa      bool    `json:"activa"`
}

// ─── Proveedores ─────────────────────────────────────────────────────────────

type ContactoProveedorRequest struct {
	Nombre   string  `json:"nombre" validate:"required"`
	Cargo    *string `json:"cargo"`
	Telefono *string `json:"telefono"`
	Email    *string `json:"email" validate:"omitempty,email"`
}

type CrearProveedorRequest struct {
	RazonSocial   string                     `json:"razon_social" validate:"required"`
	CUIT          string                     `json:"cuit" validate:"required"`
	Telefono      *string                    `json:"telefono"`
	Email         *string                    `json:"email" validate:"omitempty,email"`
	Direccion     *string                    `json:"direccion"`
	CondicionPago *string                    `json:"condicion_pago"`
	Contactos     []ContactoProveedorRequest `json:"contactos" validate:"omitempty,dive"`
}

type ActualizarProveedorRequest struct {
	RazonSocial   string  `json:"razon_social"`
	Telefono      *string `json:"telefono"`
	Email         *string `json:"email" validate:"omitempty,email"`
	Direccion     *string `json:"direccion"`
	CondicionPago *string `json:"condicion_pago"`
}

type ProveedorResponse struct {
	ID            string  `json:"id"`
	RazonSocial   string  `json:"razon_social"`
	CUIT          string  `json:"cuit"`
	Telefono      *string `json:"telefono"`
	Email         *string `json:"email"`
	Direccion     *string `json:"direccion"`
	CondicionPago *string `json:"condicion_pago"`
	Activo        bool    `json:"activo"`
}

// ─── Consulta de precios ─────────────────────────────────────────────────────

// ConsultaPrecioResponse es la respuesta del verificador de precios público.
type ConsultaPrecioResponse struct {
	Nombre          string          `json:"nombre"`
	PrecioVenta     decimal.Decimal `json:"precio_venta"`
	StockDisponible int             `json:"stock_disponible"`
	ListaPrecio     string          `json:"lista_precio"`
}
