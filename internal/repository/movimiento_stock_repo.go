package repository

import (
	"context"

	"github.com/GoDevDesk/dogosoft-kiosco/internal/dto"
	"github.com/GoDevDesk/dogosoft-kiosco/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MovimientoStockRepository maneja los dos libros de auditoría: el de
// productos (unidades enteras) y el de materias primas (decimales).
// Solo inserta y lee — nunca actualiza ni elimina.
type MovimientoStockRepository interface {
	Create(ctx context.Context, m *model.MovimientoStock) error
	CreateTx(tx *gorm.DB, m *model.MovimientoStock) error
	List(ctx context.Context, filter dto.MovimientoStockFilter) ([]model.MovimientoStock, int64, error)

	CreateMateriaPrimaTx(tx *gorm.DB, m *model.MovimientoMateriaPrima) error
	ListMateriaPrima(ctx context.Context, materiaPrimaID uuid.UUID, page, limit int) ([]model.MovimientoMateriaPrima, int64, error)
}

type movimientoStockRepo struct{ db *gorm.DB }

func NewMovimientoStockRepository(db *gorm.DB) MovimientoStockRepository {
	return &movimientoStockRepo{db: db}
}

func (r *movimientoStockRepo) Create(ctx context.Context, m *model.MovimientoStock) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *movimientoStockRepo) CreateTx(tx *gorm.DB, m *model.MovimientoStock) error {
	return tx.Create(m).Error
}

func (r *movimientoStockRepo) List(ctx context.Context, filter dto.MovimientoStockFilter) ([]model.MovimientoStock, int64, error) {
	var movimientos []model.MovimientoStock
	var total int64

	q := r.db.WithContext(ctx).Model(&model.MovimientoStock{})
	if filter.ProductoID != "" {
		q = q.Where("producto_id = ?", filter.ProductoID)
	}
	if filter.Tipo != "" {
		q = q.Where("tipo = ?", filter.Tipo)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := q.Preload("Producto").
		Order("created_at DESC").
		Limit(filter.Limit).Offset((filter.Page - 1) * filter.Limit).
		Find(&movimientos).Error
	return movimientos, total, err
}

func (r *movimientoStockRepo) CreateMateriaPrimaTx(tx *gorm.DB, m *model.MovimientoMateriaPrima) error {
	return tx.Create(m).Error
}

func (r *movimientoStockRepo) ListMateriaPrima(ctx context.Context, materiaPrimaID uuid.UUID, page, limit int) ([]model.MovimientoMateriaPrima, int64, error) {
	var movimientos []model.MovimientoMateriaPrima
	var total int64

	q := r.db.WithContext(ctx).Model(&model.MovimientoMateriaPrima{}).
		Where("materia_prima_id = ?", materiaPrimaID)

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := q.Preload("MateriaPrima").
		Order("created_at DESC").
		Limit(limit).Offset((page - 1) * limit).
		Find(&movimientos).Error
	return movimientos, total, err
}
