package repository

import (
	"context"

	"github.com/GoDevDesk/dogosoft-kiosco/internal/dto"
	"github.com/GoDevDesk/dogosoft-kiosco/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type MateriaPrimaRepository interface {
	Create(ctx context.Context, mp *model.MateriaPrima) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.MateriaPrima, error)
	FindByIDTx(tx *gorm.DB, id uuid.UUID) (*model.MateriaPrima, error)
	FindByCodigo(ctx context.Context, codigo string) (*model.MateriaPrima, error)
	List(ctx context.Context, filter dto.MateriaPrimaFilter) ([]model.MateriaPrima, int64, error)
	Update(ctx context.Context, mp *model.MateriaPrima) error
	SoftDelete(ctx context.Context, id uuid.UUID) error

	// UpdateCantidadTx suma delta (con signo) a la cantidad disponible
	// dentro de una tx. Las cantidades de ingredientes son decimales.
	UpdateCantidadTx(tx *gorm.DB, id uuid.UUID, delta decimal.Decimal) error

	DB() *gorm.DB
}

type materiaPrimaRepo struct{ db *gorm.DB }

func NewMateriaPrimaRepository(db *gorm.DB) MateriaPrimaRepository { return &materiaPrimaRepo{db: db} }

func (r *materiaPrimaRepo) Create(ctx context.Context, mp *model.MateriaPrima) error {
	return r.db.WithContext(ctx).Create(mp).Error
}

func (r *materiaPrimaRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.MateriaPrima, error) {
	var mp model.MateriaPrima
	err := r.db.WithContext(ctx).First(&mp, "id = ?", id).Error
	return &mp, err
}

func (r *materiaPrimaRepo) FindByIDTx(tx *gorm.DB, id uuid.UUID) (*model.MateriaPrima, error) {
	var mp model.MateriaPrima
	err := tx.First(&mp, "id = ?", id).Error
	return &mp, err
}

func (r *materiaPrimaRepo) FindByCodigo(ctx context.Context, codigo string) (*model.MateriaPrima, error) {
	var mp model.MateriaPrima
	err := r.db.WithContext(ctx).Where("codigo = ? AND activa = true", codigo).First(&mp).Error
	return &mp, err
}

func (r *materiaPrimaRepo) List(ctx context.Context, filter dto.MateriaPrimaFilter) ([]model.MateriaPrima, int64, error) {
	var materias []model.MateriaPrima
	var total int64

	q := r.db.WithContext(ctx).Model(&model.MateriaPrima{})

	switch filter.Activo {
	case "false":
		q = q.Where("activa = false")
	case "all":
	default:
		q = q.Where("activa = true")
	}

	if filter.Nombre != "" {
		q = q.Where("nombre LIKE ?", "%"+filter.Nombre+"%")
	}
	if filter.SoloIngredientes {
		q = q.Where("es_ingrediente = true")
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Order("nombre ASC").Limit(filter.Limit).Offset(offset).Find(&materias).Error
	return materias, total, err
}

func (r *materiaPrimaRepo) Update(ctx context.Context, mp *model.MateriaPrima) error {
	return r.db.WithContext(ctx).Save(mp).Error
}

func (r *materiaPrimaRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.MateriaPrima{}).Where("id = ?", id).Update("activa", false).Error
}

func (r *materiaPrimaRepo) UpdateCantidadTx(tx *gorm.DB, id uuid.UUID, delta decimal.Decimal) error {
	return tx.Model(&model.MateriaPrima{}).Where("id = ?", id).
		Update("cantidad_disponible", gorm.Expr("cantidad_disponible + ?", delta)).Error
}

func (r *materiaPrimaRepo) DB() *gorm.DB { return r.db }
