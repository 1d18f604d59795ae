package repository

import (
	"context"
	"time"

	"github.com/GoDevDesk/dogosoft-kiosco/internal/dto"
	"github.com/GoDevDesk/dogosoft-kiosco/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PedidoRepository interface {
	CreateTx(tx *gorm.DB, pedido *model.Pedido) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Pedido, error)
	List(ctx context.Context, filter dto.PedidoFilter) ([]model.Pedido, int64, error)
	UpdateEstado(ctx context.Context, id uuid.UUID, estado string, completadoEn *time.Time) error

	// NextNumeroPedido reserva el siguiente número correlativo dentro de la
	// tx para que dos pedidos concurrentes no compartan número.
	NextNumeroPedido(tx *gorm.DB) (int, error)

	DB() *gorm.DB
}

type pedidoRepo struct{ db *gorm.DB }

func NewPedidoRepository(db *gorm.DB) PedidoRepository { return &pedidoRepo{db: db} }

func (r *pedidoRepo) CreateTx(tx *gorm.DB, pedido *model.Pedido) error {
	return tx.Create(pedido).Error
}

func (r *pedidoRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Pedido, error) {
	var pedido model.Pedido
	err := r.db.WithContext(ctx).
		Preload("Items.Producto").
		Preload("Items.Combo").
		First(&pedido, "id = ?", id).Error
	return &pedido, err
}

func (r *pedidoRepo) List(ctx context.Context, filter dto.PedidoFilter) ([]model.Pedido, int64, error) {
	var pedidos []model.Pedido
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Pedido{})

	if filter.Estado != "" {
		q = q.Where("estado = ?", filter.Estado)
	}

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

	err := q.Preload("Items.Producto").Preload("Items.Combo").
		Order("numero_pedido DESC").
		Limit(filter.Limit).Offset((filter.Page - 1) * filter.Limit).
		Find(&pedidos).Error
	return pedidos, total, err
}

func (r *pedidoRepo) UpdateEstado(ctx context.Context, id uuid.UUID, estado string, completadoEn *time.Time) error {
	updates := map[string]any{"estado": estado}
	if completadoEn != nil {
		updates["completado_en"] = completadoEn
	}
	return r.db.WithContext(ctx).Model(&model.Pedido{}).Where("id = ?", id).Updates(updates).Error
}

func (r *pedidoRepo) NextNumeroPedido(tx *gorm.DB) (int, error) {
	var max int
	err := tx.Model(&model.Pedido{}).Select("COALESCE(MAX(numero_pedido), 0)").Scan(&max).Error
	return max + 1, err
}

func (r *pedidoRepo) DB() *gorm.DB { return r.db }
