package repository

import (
	"context"

	"github.com/GoDevDesk/dogosoft-kiosco/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ComboRepository interface {
	Create(ctx context.Context, combo *model.Combo) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Combo, error)
	List(ctx context.Context, soloActivos bool) ([]model.Combo, error)
	Update(ctx context.Context, combo *model.Combo) error
	ReplaceItems(ctx context.Context, comboID uuid.UUID, items []model.ComboItem) error
	SoftDelete(ctx context.Context, id uuid.UUID) error

	// CountByProducto cuenta combos activos que referencian al producto como
	// componente o como opción de sustitución.
	CountByProducto(ctx context.Context, productoID uuid.UUID) (int64, error)
}

type comboRepo struct{ db *gorm.DB }

func NewComboRepository(db *gorm.DB) ComboRepository { return &comboRepo{db: db} }

func (r *comboRepo) Create(ctx context.Context, combo *model.Combo) error {
	return r.db.WithContext(ctx).Create(combo).Error
}

func (r *comboRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Combo, error) {
	var combo model.Combo
	err := r.db.WithContext(ctx).
		Preload("Items.Producto").
		Preload("Items.Opciones.ProductoAlternativo").
		First(&combo, "id = ?", id).Error
	return &combo, err
}

func (r *comboRepo) List(ctx context.Context, soloActivos bool) ([]model.Combo, error) {
	var combos []model.Combo
	q := r.db.WithContext(ctx).
		Preload("Items.Producto").
		Preload("Items.Opciones.ProductoAlternativo")
	if soloActivos {
		q = q.Where("activo = true")
	}
	err := q.Order("nombre ASC").Find(&combos).Error
	return combos, err
}

func (r *comboRepo) Update(ctx context.Context, combo *model.Combo) error {
	return r.db.WithContext(ctx).Save(combo).Error
}

func (r *comboRepo) ReplaceItems(ctx context.Context, comboID uuid.UUID, items []model.ComboItem) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var itemIDs []uuid.UUID
		if err := tx.Model(&model.ComboItem{}).Where("combo_id = ?", comboID).
			Pluck("id", &itemIDs).Error; err != nil {
			return err
		}
		if len(itemIDs) > 0 {
			if err := tx.Where("combo_item_id IN ?", itemIDs).Delete(&model.OpcionSustitucion{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("combo_id = ?", comboID).Delete(&model.ComboItem{}).Error; err != nil {
			return err
		}
		if len(items) == 0 {
			return nil
		}
		return tx.Create(&items).Error
	})
}

func (r *comboRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Combo{}).Where("id = ?", id).Update("activo", false).Error
}

func (r *comboRepo) CountByProducto(ctx context.Context, productoID uuid.UUID) (int64, error) {
	var enItems int64
	err := r.db.WithContext(ctx).Model(&model.ComboItem{}).
		Joins("JOIN combos ON combos.id = combo_items.combo_id").
		Where("combo_items.producto_id = ? AND combos.activo = true", productoID).
		Count(&enItems).Error
	if err != nil {
		return 0, err
	}

	var enOpciones int64
	err = r.db.WithContext(ctx).Model(&model.OpcionSustitucion{}).
		Joins("JOIN combo_items ON combo_items.id = opciones_sustitucion.combo_item_id").
		Joins("JOIN combos ON combos.id = combo_items.combo_id").
		Where("opciones_sustitucion.producto_alternativo_id = ? AND combos.activo = true", productoID).
		Count(&enOpciones).Error
	return enItems + enOpciones, err
}
