package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// HistorialPrecio registra cada cambio de precio de un producto en una lista.
// Los registros son inmutables — nunca se eliminan ni modifican.
type HistorialPrecio struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey"`
	ProductoID    uuid.UUID  `gorm:"type:uuid;not null;index"`
	ListaPrecioID uuid.UUID  `gorm:"type:uuid;not null;index"`
	ProveedorID   *uuid.UUID `gorm:"type:uuid;index"`

	CostoAntes         decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	CostoDespues       decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	VentaAntes         decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	VentaDespues       decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	PorcentajeAplicado decimal.Decimal `gorm:"type:decimal(5,2);not null"`
	Motivo             string          `gorm:"not null;default:'actualizacion_masiva'"` // actualizacion_masiva | manual
	CreatedAt          time.Time

	Producto  *Producto  `gorm:"foreignKey:ProductoID"`
	Proveedor *Proveedor `gorm:"foreignKey:ProveedorID"`
}

func (HistorialPrecio) TableName() string { return "historial_precios" }
