package repository

import (
	"context"

	"github.com/GoDevDesk/dogosoft-kiosco/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ListaPrecioRepository interface {
	Create(ctx context.Context, lista *model.ListaPrecio) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.ListaPrecio, error)
	FindByNombre(ctx context.Context, nombre string) (*model.ListaPrecio, error)
	List(ctx context.Context) ([]model.ListaPrecio, error)
	Update(ctx context.Context, lista *model.ListaPrecio) error
	Delete(ctx context.Context, id uuid.UUID) error

	// FindPrecio devuelve la entrada de precio del par (producto, lista) o
	// gorm.ErrRecordNotFound cuando el producto no está en la lista.
	FindPrecio(ctx context.Context, productoID, listaID uuid.UUID) (*model.PrecioProducto, error)
	FindPrecioTx(tx *gorm.DB, productoID, listaID uuid.UUID) (*model.PrecioProducto, error)
	ListPrecios(ctx context.Context, listaID uuid.UUID) ([]model.PrecioProducto, error)
	SavePrecio(ctx context.Context, precio *model.PrecioProducto) error
	SavePrecioTx(tx *gorm.DB, precio *model.PrecioProducto) error

	// PreciosPorProveedor trae los precios de la lista cuyos productos
	// pertenecen al proveedor, para la actualización masiva.
	PreciosPorProveedor(ctx context.Context, listaID, proveedorID uuid.UUID) ([]model.PrecioProducto, error)

	CountPreciosByProducto(ctx context.Context, productoID uuid.UUID) (int64, error)

	DB() *gorm.DB
}

type listaPrecioRepo struct{ db *gorm.DB }

func NewListaPrecioRepository(db *gorm.DB) ListaPrecioRepository { return &listaPrecioRepo{db: db} }

func (r *listaPrecioRepo) Create(ctx context.Context, lista *model.ListaPrecio) error {
	return r.db.WithContext(ctx).Create(lista).Error
}

func (r *listaPrecioRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.ListaPrecio, error) {
	var lista model.ListaPrecio
	err := r.db.WithContext(ctx).First(&lista, "id = ?", id).Error
	return &lista, err
}

func (r *listaPrecioRepo) FindByNombre(ctx context.Context, nombre string) (*model.ListaPrecio, error) {
	var lista model.ListaPrecio
	err := r.db.WithContext(ctx).Where("nombre = ?", nombre).First(&lista).Error
	return &lista, err
}

func (r *listaPrecioRepo) List(ctx context.Context) ([]model.ListaPrecio, error) {
	var listas []model.ListaPrecio
	err := r.db.WithContext(ctx).Where("activa = true").Order("nombre ASC").Find(&listas).Error
	return listas, err
}

func (r *listaPrecioRepo) Update(ctx context.Context, lista *model.ListaPrecio) error {
	return r.db.WithContext(ctx).Save(lista).Error
}

func (r *listaPrecioRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("lista_precio_id = ?", id).Delete(&model.PrecioProducto{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.ListaPrecio{}, "id = ?", id).Error
	})
}

func (r *listaPrecioRepo) FindPrecio(ctx context.Context, productoID, listaID uuid.UUID) (*model.PrecioProducto, error) {
	return r.FindPrecioTx(r.db.WithContext(ctx), productoID, listaID)
}

func (r *listaPrecioRepo) FindPrecioTx(tx *gorm.DB, productoID, listaID uuid.UUID) (*model.PrecioProducto, error) {
	var precio model.PrecioProducto
	err := tx.Where("producto_id = ? AND lista_precio_id = ?", productoID, listaID).First(&precio).Error
	return &precio, err
}

func (r *listaPrecioRepo) ListPrecios(ctx context.Context, listaID uuid.UUID) ([]model.PrecioProducto, error) {
	var precios []model.PrecioProducto
	err := r.db.WithContext(ctx).Preload("Producto").
		Where("lista_precio_id = ?", listaID).Find(&precios).Error
	return precios, err
}

func (r *listaPrecioRepo) SavePrecio(ctx context.Context, precio *model.PrecioProducto) error {
	return r.db.WithContext(ctx).Save(precio).Error
}

func (r *listaPrecioRepo) SavePrecioTx(tx *gorm.DB, precio *model.PrecioProducto) error {
	return tx.Save(precio).Error
}

func (r *listaPrecioRepo) PreciosPorProveedor(ctx context.Context, listaID, proveedorID uuid.UUID) ([]model.PrecioProducto, error) {
	var precios []model.PrecioProducto
	err := r.db.WithContext(ctx).
		Joins("JOIN productos ON productos.id = precios_producto.producto_id").
		Where("precios_producto.lista_precio_id = ? AND productos.proveedor_id = ? AND productos.activo = true",
			listaID, proveedorID).
		Find(&precios).Error
	return precios, err
}

func (r *listaPrecioRepo) CountPreciosByProducto(ctx context.Context, productoID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.PrecioProducto{}).
		Where("producto_id = ?", productoID).Count(&count).Error
	return count, err
}

func (r *listaPrecioRepo) DB() *gorm.DB { return r.db }
