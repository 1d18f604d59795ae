package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MateriaPrima es un insumo comprado a proveedores.
// EsIngrediente = true: consumible que se descuenta vía recetas (carne, pan).
// EsIngrediente = false: insumo de compra solamente (vasos, servilletas) —
// CantidadDisponible no es significativa.
type MateriaPrima struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	Codigo         string    `gorm:"uniqueIndex;not null"`
	Nombre         string    `gorm:"index;not null"`
	Descripcion    *string
	EsIngrediente  bool            `gorm:"not null;default:false"`
	Unidad         string          `gorm:"not null;default:'UN'"` // KG, L, UN, GR, ML
	CantidadDisponible decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	CantidadMinima *decimal.Decimal `gorm:"type:decimal(18,4)"`
	CantidadMaxima *decimal.Decimal `gorm:"type:decimal(18,4)"`
	CostoUnitario  *decimal.Decimal `gorm:"type:decimal(18,2)"`
	CategoriaID    *uuid.UUID       `gorm:"type:uuid;index"`
	ProveedorID    *uuid.UUID       `gorm:"type:uuid;index"`
	Activa         bool             `gorm:"not null;default:true"`
	CreatedAt      time.Time
	UpdatedAt      time.Time

	Categoria *Categoria `gorm:"foreignKey:CategoriaID"`
	Proveedor *Proveedor `gorm:"foreignKey:ProveedorID"`
}

func (MateriaPrima) TableName() string { return "materias_primas" }
