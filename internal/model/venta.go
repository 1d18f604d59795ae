package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Venta es una transacción de mostrador finalizada: sin ciclo de vida
// posterior a su creación, a diferencia de Pedido.
type Venta struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	NumeroTicket int       `gorm:"uniqueIndex;not null"`
	Subtotal     decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	// AjusteTotal acumula descuentos (negativo) y recargos (positivo)
	// aplicados sobre el subtotal.
	AjusteTotal decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Total       decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	TipoVenta   string          `gorm:"type:varchar(20);not null;default:'Interna'"`
	Usuario     string          `gorm:"not null"`
	CreatedAt   time.Time

	Items []VentaItem `gorm:"foreignKey:VentaID"`
	Pagos []VentaPago `gorm:"foreignKey:VentaID"`
}

func (Venta) TableName() string { return "ventas" }

type VentaItem struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey"`
	VentaID        uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductoID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	Cantidad       int             `gorm:"not null"`
	PrecioUnitario decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Subtotal       decimal.Decimal `gorm:"type:decimal(12,2);not null"`

	Producto *Producto `gorm:"foreignKey:ProductoID"`
}

func (VentaItem) TableName() string { return "venta_items" }

// Métodos de pago admitidos en VentaPago.
const (
	PagoEfectivo        = "efectivo"
	PagoTarjeta         = "tarjeta"
	PagoCuentaCorriente = "cuenta_corriente"
	PagoCheque          = "cheque"
	PagoTickets         = "tickets"
)

type VentaPago struct {
	ID      uuid.UUID       `gorm:"type:uuid;primaryKey"`
	VentaID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Metodo  string          `gorm:"type:varchar(20);not null"`
	Monto   decimal.Decimal `gorm:"type:decimal(12,2);not null"`
}

func (VentaPago) TableName() string { return "venta_pagos" }
