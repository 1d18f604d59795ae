package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Tipos de movimiento de stock. Coinciden uno a uno con la acción que los
// origina.
const (
	MovCompra      = "Compra"
	MovVenta       = "Venta"
	MovAjusteMas   = "Ajuste+"
	MovAjusteMenos = "Ajuste-"
	MovPedido      = "Pedido"
	MovPedidoCombo = "Pedido (Combo)"
)

// MovimientoStock registra cada cambio de stock de un producto.
// Es un libro de auditoría puro: los registros nunca se actualizan ni
// eliminan. Cada operación que afecta stock agrega exactamente un
// movimiento por producto afectado.
type MovimientoStock struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey"`
	ProductoID  uuid.UUID  `gorm:"type:uuid;not null;index"`
	ProveedorID *uuid.UUID `gorm:"type:uuid"` // solo compras
	Tipo        string     `gorm:"not null"`
	// Cantidad con signo: negativo = salida, positivo = entrada.
	Cantidad      int `gorm:"not null"`
	StockAnterior int `gorm:"not null"`
	StockNuevo    int `gorm:"not null"`
	Costo         *decimal.Decimal `gorm:"type:decimal(12,2)"` // costo unitario si es compra
	Motivo        string
	Usuario       string     `gorm:"not null"`
	ReferenciaID  *uuid.UUID `gorm:"type:uuid"` // pedido o venta de origen
	CreatedAt     time.Time

	Producto  *Producto  `gorm:"foreignKey:ProductoID"`
	Proveedor *Proveedor `gorm:"foreignKey:ProveedorID"`
}

func (MovimientoStock) TableName() string { return "movimientos_stock" }

// MovimientoMateriaPrima es el espejo del libro de stock para ingredientes:
// cantidades decimales (KG, L) en lugar de unidades enteras. Mismo carácter
// de solo-agregado.
type MovimientoMateriaPrima struct {
	ID               uuid.UUID       `gorm:"type:uuid;primaryKey"`
	MateriaPrimaID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProveedorID      *uuid.UUID      `gorm:"type:uuid"`
	Tipo             string          `gorm:"not null"`
	Cantidad         decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	CantidadAnterior decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	CantidadNueva    decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Costo            *decimal.Decimal `gorm:"type:decimal(12,2)"`
	Motivo           string
	Usuario          string     `gorm:"not null"`
	ReferenciaID     *uuid.UUID `gorm:"type:uuid"`
	CreatedAt        time.Time

	MateriaPrima *MateriaPrima `gorm:"foreignKey:MateriaPrimaID"`
}

func (MovimientoMateriaPrima) TableName() string { return "movimientos_materia_prima" }
