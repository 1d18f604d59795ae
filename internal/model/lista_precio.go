package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ListaPrecio agrupa precios por producto. Exactamente una lista está
// "activa" para un pedido en curso; cambiarla re-resuelve los precios de
// las líneas abiertas.
type ListaPrecio struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Nombre      string    `gorm:"uniqueIndex;not null"`
	Descripcion *string
	Activa      bool `gorm:"not null;default:true"`
	// Protegida: no puede eliminarse y su nombre es inmutable.
	Protegida bool `gorm:"not null;default:false"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (ListaPrecio) TableName() string { return "listas_precio" }

// PrecioProducto es la entrada de precio de un producto en una lista.
// Se crea de forma perezosa la primera vez que se fija un precio para el
// par (producto, lista) y se muta en el lugar después.
// Regla de negocio: PrecioVenta = round(PrecioCosto * (1 + Utilidad/100), 2)
// cuando la actualización masiva recalcula desde el costo.
type PrecioProducto struct {
	ID                 uuid.UUID       `gorm:"type:uuid;primaryKey"`
	ProductoID         uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_precio_producto_lista"`
	ListaPrecioID      uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_precio_producto_lista"`
	PrecioCosto        decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	PrecioVenta        decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	PorcentajeUtilidad decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0"`
	UltimaActualizacion time.Time

	Producto    *Producto    `gorm:"foreignKey:ProductoID"`
	ListaPrecio *ListaPrecio `gorm:"foreignKey:ListaPrecioID"`
}

func (PrecioProducto) TableName() string { return "precios_producto" }
