package repository

import (
	"context"

	"github.com/GoDevDesk/dogosoft-kiosco/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RecetaRepository interface {
	FindByProductoID(ctx context.Context, productoID uuid.UUID) ([]model.RecetaProducto, error)
	FindByProductoIDTx(tx *gorm.DB, productoID uuid.UUID) ([]model.RecetaProducto, error)

	// Replace reemplaza la receta completa del producto de forma atómica.
	Replace(ctx context.Context, productoID uuid.UUID, ingredientes []model.RecetaProducto) error

	// CountByMateriaPrima cuenta recetas de productos activos que usan la
	// materia prima. Se usa para la protección de entidad en uso.
	CountByMateriaPrima(ctx context.Context, materiaPrimaID uuid.UUID) (int64, error)
}

type recetaRepo struct{ db *gorm.DB }

func NewRecetaRepository(db *gorm.DB) RecetaRepository { return &recetaRepo{db: db} }

func (r *recetaRepo) FindByProductoID(ctx context.Context, productoID uuid.UUID) ([]model.RecetaProducto, error) {
	var receta []model.RecetaProducto
	err := r.db.WithContext(ctx).Preload("MateriaPrima").
		Where("producto_id = ?", productoID).Find(&receta).Error
	return receta, err
}

func (r *recetaRepo) FindByProductoIDTx(tx *gorm.DB, productoID uuid.UUID) ([]model.RecetaProducto, error) {
	var receta []model.RecetaProducto
	err := tx.Preload("MateriaPrima").Where("producto_id = ?", productoID).Find(&receta).Error
	return receta, err
}

func (r *recetaRepo) Replace(ctx context.Context, productoID uuid.UUID, ingredientes []model.RecetaProducto) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("producto_id = ?", productoID).Delete(&model.RecetaProducto{}).Error; err != nil {
			return err
		}
		if len(ingredientes) == 0 {
			return nil
		}
		return tx.Create(&ingredientes).Error
	})
}

func (r *recetaRepo) CountByMateriaPrima(ctx context.Context, materiaPrimaID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.RecetaProducto{}).
		Joins("JOIN productos ON productos.id = recetas_producto.producto_id").
		Where("recetas_producto.materia_prima_id = ? AND productos.activo = true", materiaPrimaID).
		Count(&count).Error
	return count, err
}
