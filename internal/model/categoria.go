package model

import (
	"time"

	"github.com/google/uuid"
)

// Categoria clasifica productos, combos y materias primas.
type Categoria struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Nombre      string    `gorm:"uniqueIndex;not null"`
	Descripcion *string
	Activa      bool `gorm:"not null;default:true"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (Categoria) TableName() string { return "categorias" }
