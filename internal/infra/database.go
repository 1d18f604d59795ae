package infra

import (
	"fmt"

	"github.com/GoDevDesk/dogosoft-kiosco/internal/model"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase abre la base SQLite con el driver puro-Go y corre AutoMigrate
// sobre todos los modelos. El kiosco corre en una sola máquina: SQLite en
// modo WAL alcanza y elimina el servidor de base de datos.
func NewDatabase(path string) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)", path)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	// SQLite serializa escrituras: una sola conexión evita SQLITE_BUSY.
	sqlDB.SetMaxOpenConns(1)

	if err := RunMigrations(db); err != nil {
		return nil, fmt.Errorf("AutoMigrate: %w", err)
	}
	return db, nil
}

// RunMigrations crea o actualiza el esquema completo. También la usan los
// tests de integración sobre una base en memoria.
func RunMigrations(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.Categoria{},
		&model.Proveedor{},
		&model.ContactoProveedor{},
		&model.Producto{},
		&model.MateriaPrima{},
		&model.RecetaProducto{},
		&model.ListaPrecio{},
		&model.PrecioProducto{},
		&model.HistorialPrecio{},
		&model.Combo{},
		&model.ComboItem{},
		&model.OpcionSustitucion{},
		&model.Pedido{},
		&model.PedidoItem{},
		&model.Venta{},
		&model.VentaItem{},
		&model.VentaPago{},
		&model.MovimientoStock{},
		&model.MovimientoMateriaPrima{},
		&model.Usuario{},
	)
}
