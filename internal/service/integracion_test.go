package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/GoDevDesk/dogosoft-kiosco/internal/apperr"
	"github.com/GoDevDesk/dogosoft-kiosco/internal/dto"
	"github.com/GoDevDesk/dogosoft-kiosco/internal/infra"
	"github.com/GoDevDesk/dogosoft-kiosco/internal/model"
	"github.com/GoDevDesk/dogosoft-kiosco/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Los tests de este archivo corren contra una SQLite en memoria con el
// esquema real, para cubrir lo que los stubs no alcanzan: numeración de
// tickets, descuento de stock dentro de la transacción y los libros de
// movimientos.

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, infra.RunMigrations(db))
	return db
}

type integracionFixture struct {
	db     *gorm.DB
	ventas VentaService
	lista  *model.ListaPrecio
}

func newIntegracionFixture(t *testing.T) *integracionFixture {
	t.Helper()
	db := newTestDB(t)

	productoRepo := repository.NewProductoRepository(db)
	materiaRepo := repository.NewMateriaPrimaRepository(db)
	recetaRepo := repository.NewRecetaRepository(db)
	movimientoRepo := repository.NewMovimientoStockRepository(db)
	listaRepo := repository.NewListaPrecioRepository(db)
	historialRepo := repository.NewHistorialPrecioRepository(db)
	ventaRepo := repository.NewVentaRepository(db)

	precios := NewPrecioService(listaRepo, productoRepo, historialRepo)
	stock := NewStockService(productoRepo, materiaRepo, recetaRepo, movimientoRepo)

	lista := &model.ListaPrecio{Nombre: "Mostrador", Activa: true}
	require.NoError(t, db.Create(lista).Error)

	return &integracionFixture{
		db:     db,
		ventas: NewVentaService(ventaRepo, productoRepo, listaRepo, precios, stock, nil),
		lista:  lista,
	}
}

func (f *integracionFixture) crearProductoContado(t *testing.T, codigo string, stock int, precioVenta decimal.Decimal) *model.Producto {
	t.Helper()
	p := &model.Producto{
		Codigo:        codigo,
		Nombre:        codigo,
		ControlaStock: true,
		Stock:         intPtr(stock),
		UnidadVenta:   "UN",
		Activo:        true,
	}
	require.NoError(t, f.db.Create(p).Error)
	require.NoError(t, f.db.Create(&model.PrecioProducto{
		ProductoID:          p.ID,
		ListaPrecioID:       f.lista.ID,
		PrecioCosto:         precioVenta.Div(decimal.NewFromInt(2)),
		PrecioVenta:         precioVenta,
		PorcentajeUtilidad:  decimal.NewFromInt(100),
		UltimaActualizacion: time.Now(),
	}).Error)
	return p
}

func (f *integracionFixture) ventaDe(producto *model.Producto, cantidad int, efectivo decimal.Decimal) dto.RegistrarVentaRequest {
	return dto.RegistrarVentaRequest{
		ListaPrecioID: f.lista.ID.String(),
		Items: []dto.ItemVentaRequest{
			{ProductoID: producto.ID.String(), Cantidad: cantidad},
		},
		Pagos: dto.PagosRequest{Efectivo: efectivo},
	}
}

func TestIntegracion_VentaComprometeStock(t *testing.T) {
	f := newIntegracionFixture(t)
	gaseosa := f.crearProductoContado(t, "GAS-001", 10, decimal.NewFromInt(100))

	resp, err := f.ventas.RegistrarVenta(context.Background(), "cajero1", f.ventaDe(gaseosa, 3, decimal.NewFromInt(300)))
	require.NoError(t, err)
	assert.Equal(t, 1, resp.NumeroTicket)
	assert.True(t, resp.Total.Equal(decimal.NewFromInt(300)))

	var actual model.Producto
	require.NoError(t, f.db.First(&actual, "id = ?", gaseosa.ID).Error)
	require.NotNil(t, actual.Stock)
	assert.Equal(t, 7, *actual.Stock)

	var movimientos []model.MovimientoStock
	require.NoError(t, f.db.Find(&movimientos).Error)
	require.Len(t, movimientos, 1)
	mov := movimientos[0]
	assert.Equal(t, model.MovVenta, mov.Tipo)
	assert.Equal(t, -3, mov.Cantidad)
	assert.Equal(t, 10, mov.StockAnterior)
	assert.Equal(t, 7, mov.StockNuevo)
	assert.Equal(t, "cajero1", mov.Usuario)

	ventaID, err := uuid.Parse(resp.ID)
	require.NoError(t, err)
	require.NotNil(t, mov.ReferenciaID)
	assert.Equal(t, ventaID, *mov.ReferenciaID)
}

func TestIntegracion_NumeracionDeTickets(t *testing.T) {
	f := newIntegracionFixture(t)
	gaseosa := f.crearProductoContado(t, "GAS-001", 10, decimal.NewFromInt(100))

	primera, err := f.ventas.RegistrarVenta(context.Background(), "cajero1", f.ventaDe(gaseosa, 1, decimal.NewFromInt(100)))
	require.NoError(t, err)
	segunda, err := f.ventas.RegistrarVenta(context.Background(), "cajero1", f.ventaDe(gaseosa, 1, decimal.NewFromInt(100)))
	require.NoError(t, err)

	assert.Equal(t, 1, primera.NumeroTicket)
	assert.Equal(t, 2, segunda.NumeroTicket)
}

func TestIntegracion_VentaRecetaDescuentaIngredientes(t *testing.T) {
	f := newIntegracionFixture(t)

	carne := &model.MateriaPrima{
		Codigo:             "MP-CARNE",
		Nombre:             "Carne",
		EsIngrediente:      true,
		Unidad:             "KG",
		CantidadDisponible: decimal.RequireFromString("1.000"),
		Activa:             true,
	}
	require.NoError(t, f.db.Create(carne).Error)

	burger := &model.Producto{
		Codigo:      "BUR-001",
		Nombre:      "Hamburguesa",
		TieneReceta: true,
		UnidadVenta: "UN",
		Activo:      true,
	}
	require.NoError(t, f.db.Create(burger).Error)
	require.NoError(t, f.db.Create(&model.RecetaProducto{
		ProductoID:     burger.ID,
		MateriaPrimaID: carne.ID,
		Cantidad:       decimal.RequireFromString("0.150"),
	}).Error)
	require.NoError(t, f.db.Create(&model.PrecioProducto{
		ProductoID:          burger.ID,
		ListaPrecioID:       f.lista.ID,
		PrecioCosto:         decimal.NewFromInt(200),
		PrecioVenta:         decimal.NewFromInt(400),
		PorcentajeUtilidad:  decimal.NewFromInt(100),
		UltimaActualizacion: time.Now(),
	}).Error)

	_, err := f.ventas.RegistrarVenta(context.Background(), "cajero1", f.ventaDe(burger, 2, decimal.NewFromInt(800)))
	require.NoError(t, err)

	var actual model.MateriaPrima
	require.NoError(t, f.db.First(&actual, "id = ?", carne.ID).Error)
	assert.True(t, actual.CantidadDisponible.Equal(decimal.RequireFromString("0.700")),
		"disponible = %s", actual.CantidadDisponible)

	var movimientos []model.MovimientoMateriaPrima
	require.NoError(t, f.db.Find(&movimientos).Error)
	require.Len(t, movimientos, 1)
	assert.True(t, movimientos[0].Cantidad.Equal(decimal.RequireFromString("-0.300")))
	assert.Equal(t, model.MovVenta, movimientos[0].Tipo)
}

func TestIntegracion_VentaRechazadaNoDejaFilas(t *testing.T) {
	f := newIntegracionFixture(t)
	gaseosa := f.crearProductoContado(t, "GAS-001", 2, decimal.NewFromInt(100))

	_, err := f.ventas.RegistrarVenta(context.Background(), "cajero1", f.ventaDe(gaseosa, 5, decimal.NewFromInt(500)))
	var stockErr *apperr.StockInsuficienteError
	require.ErrorAs(t, err, &stockErr)

	var ventas, movimientos int64
	require.NoError(t, f.db.Model(&model.Venta{}).Count(&ventas).Error)
	require.NoError(t, f.db.Model(&model.MovimientoStock{}).Count(&movimientos).Error)
	assert.Zero(t, ventas)
	assert.Zero(t, movimientos)

	var actual model.Producto
	require.NoError(t, f.db.First(&actual, "id = ?", gaseosa.ID).Error)
	assert.Equal(t, 2, *actual.Stock)
}

func TestIntegracion_FijarPrecioRegistraHistorial(t *testing.T) {
	f := newIntegracionFixture(t)
	gaseosa := f.crearProductoContado(t, "GAS-001", 10, decimal.NewFromInt(100))

	listaRepo := repository.NewListaPrecioRepository(f.db)
	precios := NewPrecioService(listaRepo,
		repository.NewProductoRepository(f.db),
		repository.NewHistorialPrecioRepository(f.db))

	_, err := precios.FijarPrecio(context.Background(), f.lista.ID, dto.FijarPrecioRequest{
		ProductoID:         gaseosa.ID.String(),
		PrecioCosto:        decimal.NewFromInt(60),
		PrecioVenta:        decimal.NewFromInt(120),
		PorcentajeUtilidad: decimal.NewFromInt(100),
	})
	require.NoError(t, err)

	var historial []model.HistorialPrecio
	require.NoError(t, f.db.Find(&historial).Error)
	require.Len(t, historial, 1)
	assert.Equal(t, "manual", historial[0].Motivo)
	assert.True(t, historial[0].CostoAntes.Equal(decimal.NewFromInt(50)), "costo_antes = %s", historial[0].CostoAntes)
	assert.True(t, historial[0].VentaDespues.Equal(decimal.NewFromInt(120)))

	precio, err := listaRepo.FindPrecio(context.Background(), gaseosa.ID, f.lista.ID)
	require.NoError(t, err)
	assert.True(t, precio.PrecioVenta.Equal(decimal.NewFromInt(120)))
}

// La validación previa corre fuera de la transacción, así que el disponible
// pudo bajar entre la lectura y el compromiso. ComprometerTx tiene que
// revalidar contra el stock releído dentro de la tx, no contra la copia con
// la que se validó.
func TestIntegracion_CompromisoRevalidaDentroDeLaTx(t *testing.T) {
	f := newIntegracionFixture(t)
	gaseosa := f.crearProductoContado(t, "GAS-001", 2, decimal.NewFromInt(100))

	stock := NewStockService(
		repository.NewProductoRepository(f.db),
		repository.NewMateriaPrimaRepository(f.db),
		repository.NewRecetaRepository(f.db),
		repository.NewMovimientoStockRepository(f.db),
	)

	// Copia vieja del producto, como si otra venta hubiera descontado
	// después de nuestra validación: la copia dice 5 pero la fila dice 2.
	viejo := *gaseosa
	viejo.Stock = intPtr(5)

	err := f.db.Transaction(func(tx *gorm.DB) error {
		return stock.ComprometerTx(tx, []Demanda{
			{Producto: &viejo, Cantidad: 5, Tipo: model.MovVenta},
		}, "cajero1", "Venta", uuid.New())
	})
	var stockErr *apperr.StockInsuficienteError
	require.ErrorAs(t, err, &stockErr)
	assert.True(t, stockErr.Disponible.Equal(decimal.NewFromInt(2)))

	var actual model.Producto
	require.NoError(t, f.db.First(&actual, "id = ?", gaseosa.ID).Error)
	assert.Equal(t, 2, *actual.Stock)

	var movimientos int64
	require.NoError(t, f.db.Model(&model.MovimientoStock{}).Count(&movimientos).Error)
	assert.Zero(t, movimientos)
}

// stockQueFallaAlFinal descuenta de verdad y recién entonces falla, para
// forzar un rollback con escrituras ya hechas dentro de la transacción.
type stockQueFallaAlFinal struct {
	StockService
}

func (s *stockQueFallaAlFinal) ComprometerTx(tx *gorm.DB, demandas []Demanda, usuario, motivo string, referenciaID uuid.UUID) error {
	if err := s.StockService.ComprometerTx(tx, demandas, usuario, motivo, referenciaID); err != nil {
		return err
	}
	return errors.New("fallo de persistencia simulado")
}

func TestIntegracion_FalloTrasDescontarRevierteTodo(t *testing.T) {
	f := newIntegracionFixture(t)
	gaseosa := f.crearProductoContado(t, "GAS-001", 10, decimal.NewFromInt(100))
	agua := f.crearProductoContado(t, "AGU-001", 8, decimal.NewFromInt(80))

	productoRepo := repository.NewProductoRepository(f.db)
	listaRepo := repository.NewListaPrecioRepository(f.db)
	precios := NewPrecioService(listaRepo, productoRepo, repository.NewHistorialPrecioRepository(f.db))
	stock := &stockQueFallaAlFinal{StockService: NewStockService(
		productoRepo,
		repository.NewMateriaPrimaRepository(f.db),
		repository.NewRecetaRepository(f.db),
		repository.NewMovimientoStockRepository(f.db),
	)}
	ventas := NewVentaService(repository.NewVentaRepository(f.db), productoRepo, listaRepo, precios, stock, nil)

	_, err := ventas.RegistrarVenta(context.Background(), "cajero1", dto.RegistrarVentaRequest{
		ListaPrecioID: f.lista.ID.String(),
		Items: []dto.ItemVentaRequest{
			{ProductoID: gaseosa.ID.String(), Cantidad: 3},
			{ProductoID: agua.ID.String(), Cantidad: 2},
		},
		Pagos: dto.PagosRequest{Efectivo: decimal.NewFromInt(460)},
	})
	require.Error(t, err)

	// Los descuentos ocurrieron dentro de la tx y el rollback los deshizo
	// por completo: ningún stock a medias, ninguna fila colgada.
	var actualGaseosa, actualAgua model.Producto
	require.NoError(t, f.db.First(&actualGaseosa, "id = ?", gaseosa.ID).Error)
	require.NoError(t, f.db.First(&actualAgua, "id = ?", agua.ID).Error)
	assert.Equal(t, 10, *actualGaseosa.Stock)
	assert.Equal(t, 8, *actualAgua.Stock)

	var ventasCount, movimientos int64
	require.NoError(t, f.db.Model(&model.Venta{}).Count(&ventasCount).Error)
	require.NoError(t, f.db.Model(&model.MovimientoStock{}).Count(&movimientos).Error)
	assert.Zero(t, ventasCount)
	assert.Zero(t, movimientos)
}

// productoRepoConEscrituraIntercalada mete una escritura ajena entre la
// lectura previa del servicio y su transacción, como haría una venta
// concurrente.
type productoRepoConEscrituraIntercalada struct {
	repository.ProductoRepository
	db    *gorm.DB
	delta int
	hecho bool
}

func (r *productoRepoConEscrituraIntercalada) FindByID(ctx context.Context, id uuid.UUID) (*model.Producto, error) {
	p, err := r.ProductoRepository.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !r.hecho {
		r.hecho = true
		res := r.db.Model(&model.Producto{}).Where("id = ?", id).
			UpdateColumn("stock", gorm.Expr("stock + ?", r.delta))
		if res.Error != nil {
			return nil, res.Error
		}
	}
	return p, nil
}

func TestIntegracion_AjusteManualRegistraStockRealDeLaTx(t *testing.T) {
	f := newIntegracionFixture(t)
	gaseosa := f.crearProductoContado(t, "GAS-001", 10, decimal.NewFromInt(100))

	// Otra operación baja el stock de 10 a 6 justo después de la lectura
	// previa del ajuste.
	repo := &productoRepoConEscrituraIntercalada{
		ProductoRepository: repository.NewProductoRepository(f.db),
		db:                 f.db,
		delta:              -4,
	}
	stock := NewStockService(
		repo,
		repository.NewMateriaPrimaRepository(f.db),
		repository.NewRecetaRepository(f.db),
		repository.NewMovimientoStockRepository(f.db),
	)

	resp, err := stock.AjusteManual(context.Background(), gaseosa.ID, "encargado", dto.AjusteManualRequest{
		Tipo:     model.MovAjusteMas,
		Cantidad: 5,
		Motivo:   "recuento físico",
	})
	require.NoError(t, err)

	// El movimiento refleja el stock releído dentro de la tx (6), no la
	// lectura vieja (10).
	assert.Equal(t, 6, resp.StockAnterior)
	assert.Equal(t, 11, resp.StockNuevo)

	var actual model.Producto
	require.NoError(t, f.db.First(&actual, "id = ?", gaseosa.ID).Error)
	assert.Equal(t, 11, *actual.Stock)

	var movimientos []model.MovimientoStock
	require.NoError(t, f.db.Find(&movimientos).Error)
	require.Len(t, movimientos, 1)
	assert.Equal(t, 6, movimientos[0].StockAnterior)
	assert.Equal(t, 11, movimientos[0].StockNuevo)
}
