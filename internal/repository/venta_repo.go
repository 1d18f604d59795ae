package repository

import (
	"context"
	"time"

	"github.com/GoDevDesk/dogosoft-kiosco/internal/dto"
	"github.com/GoDevDesk/dogosoft-kiosco/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type VentaRepository interface {
	CreateTx(tx *gorm.DB, venta *model.Venta) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Venta, error)
	List(ctx context.Context, filter dto.VentaFilter) ([]model.Venta, int64, error)

	// NextNumeroTicket reserva el siguiente número de ticket dentro de la tx.
	NextNumeroTicket(tx *gorm.DB) (int, error)

	DB() *gorm.DB
}

type ventaRepo struct{ db *gorm.DB }

func NewVentaRepository(db *gorm.DB) VentaRepository { return &ventaRepo{db: db} }

func (r *ventaRepo) CreateTx(tx *gorm.DB, venta *model.Venta) error {
	return tx.Create(venta).Error
}

func (r *ventaRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Venta, error) {
	var venta model.Venta
	err := r.db.WithContext(ctx).
		Preload("Items.Producto").
		Preload("Pagos").
		First(&venta, "id = ?", id).Error
	return &venta, err
}

func (r *ventaRepo) List(ctx context.Context, filter dto.VentaFilter) ([]model.Venta, int64, error) {
	var ventas []model.Venta
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Venta{})

	fecha := time.Now()
	if filter.Fecha != "" {
		parsed, err := time.Parse("2006-01-02", filter.Fecha)
		if err == nil {
			fecha = parsed
		}
	}
	inicio := time.Date(fecha.Year(), fecha.Month(), fecha.Day(), 0, 0, 0, 0, fecha.Location())
	q = q.Where("created_at >= ? AND created_at < ?", inicio, inicio.AddDate(0, 0, 1))

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := q.Preload("Items.Producto").Preload("Pagos").
		Order("numero_ticket DESC").
		Limit(filter.Limit).Offset((filter.Page - 1) * filter.Limit).
		Find(&ventas).Error
	return ventas, total, err
}

func (r *ventaRepo) NextNumeroTicket(tx *gorm.DB) (int, error) {
	var max int
	err := tx.Model(&model.Venta{}).Select("COALESCE(MAX(numero_ticket), 0)").Scan(&max).Error
	return max + 1, err
}

func (r *ventaRepo) DB() *gorm.DB { return r.db }
