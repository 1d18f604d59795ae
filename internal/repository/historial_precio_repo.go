package repository

import (
	"context"

	"github.com/GoDevDesk/dogosoft-kiosco/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// HistorialPrecioRepository accede al libro de cambios de precio.
// Solo inserta y lee: el historial es inmutable.
type HistorialPrecioRepository interface {
	Create(ctx context.Context, h *model.HistorialPrecio) error
	CreateTx(tx *gorm.DB, h *model.HistorialPrecio) error
	ListByProducto(ctx context.Context, productoID uuid.UUID, page, limit int) ([]model.HistorialPrecio, int64, error)
	ListByProveedor(ctx context.Context, proveedorID uuid.UUID, page, limit int) ([]model.HistorialPrecio, int64, error)
}

type historialPrecioRepo struct{ db *gorm.DB }

func NewHistorialPrecioRepository(db *gorm.DB) HistorialPrecioRepository {
	return &historialPrecioRepo{db: db}
}

func (r *historialPrecioRepo) Create(ctx context.Context, h *model.HistorialPrecio) error {
	return r.db.WithContext(ctx).Create(h).Error
}

func (r *historialPrecioRepo) CreateTx(tx *gorm.DB, h *model.HistorialPrecio) error {
	return tx.Create(h).Error
}

func (r *historialPrecioRepo) ListByProducto(ctx context.Context, productoID uuid.UUID, page, limit int) ([]model.HistorialPrecio, int64, error) {
	return r.list(ctx, "producto_id = ?", productoID, page, limit)
}

func (r *historialPrecioRepo) ListByProveedor(ctx context.Context, proveedorID uuid.UUID, page, limit int) ([]model.HistorialPrecio, int64, error) {
	return r.list(ctx, "proveedor_id = ?", proveedorID, page, limit)
}

func (r *historialPrecioRepo) list(ctx context.Context, cond string, id uuid.UUID, page, limit int) ([]model.HistorialPrecio, int64, error) {
	var items []model.HistorialPrecio
	var total int64

	q := r.db.WithContext(ctx).Model(&model.HistorialPrecio{}).Where(cond, id)
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := q.Order("created_at DESC").Limit(limit).Offset((page - 1) * limit).Find(&items).Error
	return items, total, err
}
