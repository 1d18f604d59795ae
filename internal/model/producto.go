package model

import (
	"time"

	"github.com/google/uuid"
)

// PoliticaStock clasifica cómo se descuenta stock al vender un producto.
type PoliticaStock string

const (
	// StockContado: el producto lleva stock propio (gaseosas, golosinas).
	StockContado PoliticaStock = "contado"
	// StockPorReceta: el producto se prepara; el descuento se hace sobre
	// los ingredientes de su receta (hamburguesas).
	StockPorReceta PoliticaStock = "por_receta"
	// SinControl: el producto no lleva ningún control de stock.
	SinControl PoliticaStock = "sin_control"
)

// Producto representa un artículo vendible del catálogo.
// ControlaStock y TieneReceta son mutuamente excluyentes: un producto con
// receta no lleva stock propio, descuenta ingredientes.
type Producto struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey"`
	Codigo string    `gorm:"uniqueIndex;not null"`
	Nombre string    `gorm:"index;not null"`

	ControlaStock bool `gorm:"not null;default:true"`
	// Stock solo es significativo cuando ControlaStock = true.
	Stock       *int
	StockMinimo *int
	StockMaximo *int
	TieneReceta bool       `gorm:"not null;default:false"`
	UnidadVenta string     `gorm:"not null;default:'UN'"`
	CategoriaID *uuid.UUID `gorm:"type:uuid;index"`
	ProveedorID *uuid.UUID `gorm:"type:uuid;index"`
	Observacion *string
	Activo      bool `gorm:"not null;default:true"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Categoria *Categoria       `gorm:"foreignKey:CategoriaID"`
	Proveedor *Proveedor       `gorm:"foreignKey:ProveedorID"`
	Receta    []RecetaProducto `gorm:"foreignKey:ProductoID"`
}

func (Producto) TableName() string { return "productos" }

// Politica devuelve la variante de stock del producto, colapsando los dos
// booleanos del esquema en un único estado sin combinaciones contradictorias.
func (p *Producto) Politica() PoliticaStock {
	switch {
	case p.TieneReceta:
		return StockPorReceta
	case p.ControlaStock:
		return StockContado
	default:
		return SinControl
	}
}

// StockActual devuelve el stock o 0 cuando el producto no lo controla.
func (p *Producto) StockActual() int {
	if p.ControlaStock && p.Stock != nil {
		return *p.Stock
	}
	return 0
}
