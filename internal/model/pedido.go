package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Estados del ciclo de cocina. Lineal, sin retrocesos; EstadoEntregado es
// terminal. El stock se compromete una sola vez, al crear el pedido — nunca
// se re-aplica en las transiciones posteriores.
const (
	EstadoPendiente     = "Pendiente"
	EstadoEnPreparacion = "En Preparación"
	EstadoListo         = "Listo"
	EstadoEntregado     = "Entregado"
)

// Pedido es una comanda de cocina: transacción confirmada con ciclo de
// preparación.
type Pedido struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	NumeroPedido int       `gorm:"uniqueIndex;not null"`
	Cliente      string    `gorm:"not null;default:'Cliente'"`
	Telefono     *string
	Estado       string          `gorm:"type:varchar(20);not null;default:'Pendiente'"`
	Total        decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Usuario      string          `gorm:"not null"`
	CompletadoEn *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Items []PedidoItem `gorm:"foreignKey:PedidoID"`
}

func (Pedido) TableName() string { return "pedidos" }

// PedidoItem es una línea del pedido. ProductoID es nulo para líneas de
// combo: el detalle del combo queda en Personalizaciones y su efecto en
// stock ya fue expandido al crear el pedido.
type PedidoItem struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey"`
	PedidoID       uuid.UUID  `gorm:"type:uuid;not null;index"`
	ProductoID     *uuid.UUID `gorm:"type:uuid;index"`
	ComboID        *uuid.UUID `gorm:"type:uuid;index"`
	Cantidad       int             `gorm:"not null"`
	PrecioUnitario decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Subtotal       decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	// Personalizaciones: texto libre, ej. "sin cebolla;extra queso".
	Personalizaciones *string

	Producto *Producto `gorm:"foreignKey:ProductoID"`
	Combo    *Combo    `gorm:"foreignKey:ComboID"`
}

func (PedidoItem) TableName() string { return "pedido_items" }
