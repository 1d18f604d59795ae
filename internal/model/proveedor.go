package model

import (
	"time"

	"github.com/google/uuid"
)

// Proveedor representa un proveedor de productos y materias primas.
type Proveedor struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	RazonSocial   string    `gorm:"not null"`
	CUIT          string    `gorm:"column:cuit;uniqueIndex;not null"`
	Telefono      *string
	Email         *string
	Direccion     *string
	CondicionPago *string
	Activo        bool `gorm:"not null;default:true"`
	CreatedAt     time.Time
	UpdatedAt     time.Time

	Contactos []ContactoProveedor `gorm:"foreignKey:ProveedorID"`
}

func (Proveedor) TableName() string { return "proveedores" }

// ContactoProveedor guarda una persona de contacto de un proveedor.
type ContactoProveedor struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	ProveedorID uuid.UUID `gorm:"type:uuid;not null;index"`
	Nombre      string    `gorm:"not null"`
	Cargo       *string
	Telefono    *string
	Email       *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (ContactoProveedor) TableName() string { return "contactos_proveedor" }
