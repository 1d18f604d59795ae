package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Combo es un paquete de productos con precio propio, independiente de los
// precios de lista de sus componentes.
type Combo struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Nombre      string    `gorm:"uniqueIndex;not null"`
	Descripcion *string
	Precio      decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	CategoriaID *uuid.UUID      `gorm:"type:uuid;index"`
	Activo      bool            `gorm:"not null;default:true"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Items []ComboItem `gorm:"foreignKey:ComboID"`
}

func (Combo) TableName() string { return "combos" }

// ComboItem es un "slot" dentro de un combo: un producto por defecto con
// cantidad fija y, opcionalmente, un grupo de alternativas elegibles.
type ComboItem struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	ComboID    uuid.UUID `gorm:"type:uuid;not null;index"`
	ProductoID uuid.UUID `gorm:"type:uuid;not null"`
	Cantidad   int       `gorm:"not null;default:1"`

	PermiteSustitucion bool `gorm:"not null;default:false"`
	// GrupoSustitucion etiqueta el grupo de elección ("Bebida", "Acompañamiento").
	GrupoSustitucion *string

	Producto *Producto          `gorm:"foreignKey:ProductoID"`
	Opciones []OpcionSustitucion `gorm:"foreignKey:ComboItemID"`
}

func (ComboItem) TableName() string { return "combo_items" }

// OpcionSustitucion registra un producto alternativo admitido para un slot.
type OpcionSustitucion struct {
	ID                    uuid.UUID `gorm:"type:uuid;primaryKey"`
	ComboItemID           uuid.UUID `gorm:"type:uuid;not null;index"`
	ProductoAlternativoID uuid.UUID `gorm:"type:uuid;not null"`

	ProductoAlternativo *Producto `gorm:"foreignKey:ProductoAlternativoID"`
}

func (OpcionSustitucion) TableName() string { return "opciones_sustitucion" }
