package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RecetaProducto indica cuánta materia prima consume preparar una unidad
// del producto. Solo admite materias primas con EsIngrediente = true;
// esa invariante se valida al guardar la receta, no al expandirla.
type RecetaProducto struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey"`
	ProductoID     uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_receta_producto_mp"`
	MateriaPrimaID uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_receta_producto_mp"`
	Cantidad       decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	CreatedAt      time.Time
	UpdatedAt      time.Time

	MateriaPrima *MateriaPrima `gorm:"foreignKey:MateriaPrimaID"`
}

func (RecetaProducto) TableName() string { return "recetas_producto" }
