package service

import (
	"context"
	"testing"

	"github.com/GoDevDesk/dogosoft-kiosco/internal/apperr"
	"github.com/GoDevDesk/dogosoft-kiosco/internal/dto"
	"github.com/GoDevDesk/dogosoft-kiosco/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type precioFixture struct {
	svc       PrecioService
	productos *stubProductoRepo
	listas    *stubListaPrecioRepo
	historial *stubHistorialRepo
	lista     *model.ListaPrecio
}

func newPrecioFixture() *precioFixture {
	productos := newStubProductoRepo()
	listas := newStubListaPrecioRepo()
	historial := newStubHistorialRepo()
	lista := listas.agregarLista(&model.ListaPrecio{Nombre: "Mostrador", Activa: true})
	return &precioFixture{
		svc:       NewPrecioService(listas, productos, historial),
		productos: productos,
		listas:    listas,
		historial: historial,
		lista:     lista,
	}
}

// La ausencia de precio es un error explícito, nunca un precio cero.
func TestResolverPrecio_SinPrecioEnLista(t *testing.T) {
	f := newPrecioFixture()
	gaseosa := f.productos.agregar(productoContado("Gaseosa", 10))

	_, err := f.svc.ResolverPrecio(context.Background(), gaseosa.ID, f.lista.ID)
	assert.ErrorIs(t, err, apperr.ErrSinPrecioEnLista)
}

func TestResolverPrecio_Existente(t *testing.T) {
	f := newPrecioFixture()
	gaseosa := f.productos.agregar(productoContado("Gaseosa", 10))
	f.listas.fijar(gaseosa.ID, f.lista.ID, decimal.NewFromInt(80), decimal.NewFromInt(120), decimal.NewFromInt(50))

	precio, err := f.svc.ResolverPrecio(context.Background(), gaseosa.ID, f.lista.ID)
	require.NoError(t, err)
	assert.True(t, precio.PrecioVenta.Equal(decimal.NewFromInt(120)))
}

func TestFijarPrecio_CreaYMuta(t *testing.T) {
	f := newPrecioFixture()
	gaseosa := f.productos.agregar(productoContado("Gaseosa", 10))

	// Primera vez: alta perezosa de la entrada (producto, lista).
	resp, err := f.svc.FijarPrecio(context.Background(), f.lista.ID, dto.FijarPrecioRequest{
		ProductoID:         gaseosa.ID.String(),
		PrecioCosto:        decimal.NewFromInt(80),
		PrecioVenta:        decimal.NewFromInt(120),
		PorcentajeUtilidad: decimal.NewFromInt(50),
	})
	require.NoError(t, err)
	assert.True(t, resp.PrecioVenta.Equal(decimal.NewFromInt(120)))

	// Segunda vez: muta la misma entrada en lugar de duplicarla.
	resp, err = f.svc.FijarPrecio(context.Background(), f.lista.ID, dto.FijarPrecioRequest{
		ProductoID:         gaseosa.ID.String(),
		PrecioCosto:        decimal.NewFromInt(90),
		PrecioVenta:        decimal.NewFromInt(135),
		PorcentajeUtilidad: decimal.NewFromInt(50),
	})
	require.NoError(t, err)
	assert.True(t, resp.PrecioVenta.Equal(decimal.NewFromInt(135)))

	n, _ := f.listas.CountPreciosByProducto(context.Background(), gaseosa.ID)
	assert.Equal(t, int64(1), n)
}

func TestActualizacionMasiva_RecalculaCostoYVenta(t *testing.T) {
	f := newPrecioFixture()
	proveedorID := uuid.New()

	gaseosa := f.productos.agregar(productoContado("Gaseosa", 10))
	agua := f.productos.agregar(productoContado("Agua", 10))
	f.listas.proveedorDe[gaseosa.ID] = proveedorID
	f.listas.proveedorDe[agua.ID] = proveedorID

	// costo 100, utilidad 50% → venta 150.
	f.listas.fijar(gaseosa.ID, f.lista.ID, decimal.NewFromInt(100), decimal.NewFromInt(150), decimal.NewFromInt(50))
	f.listas.fijar(agua.ID, f.lista.ID, decimal.NewFromInt(60), decimal.NewFromInt(90), decimal.NewFromInt(50))

	resp, err := f.svc.ActualizacionMasiva(context.Background(), f.lista.ID, dto.ActualizacionMasivaRequest{
		ProveedorID: proveedorID.String(),
		Porcentaje:  decimal.NewFromInt(10),
	})
	require.NoError(t, err)
	assert.Equal(t, 2, resp.ProductosActualizados)

	// costo' = 100 × 1.10 = 110; venta' = 110 × 1.50 = 165.
	precio, err := f.listas.FindPrecio(context.Background(), gaseosa.ID, f.lista.ID)
	require.NoError(t, err)
	assert.True(t, precio.PrecioCosto.Equal(decimal.NewFromInt(110)), "costo = %s", precio.PrecioCosto)
	assert.True(t, precio.PrecioVenta.Equal(decimal.NewFromInt(165)), "venta = %s", precio.PrecioVenta)

	// Una fila de historial por producto actualizado.
	assert.Len(t, f.historial.entradas, 2)
	assert.Equal(t, "actualizacion_masiva", f.historial.entradas[0].Motivo)
}

func TestActualizacionMasiva_RedondeoADosDecimales(t *testing.T) {
	f := newPrecioFixture()
	proveedorID := uuid.New()
	gaseosa := f.productos.agregar(productoContado("Gaseosa", 10))
	f.listas.proveedorDe[gaseosa.ID] = proveedorID

	// costo 33.33 × 1.07 = 35.6631 → 35.66; venta 35.66 × 1.21 = 43.1486 → 43.15
	f.listas.fijar(gaseosa.ID, f.lista.ID,
		decimal.RequireFromString("33.33"), decimal.RequireFromString("40.33"), decimal.NewFromInt(21))

	_, err := f.svc.ActualizacionMasiva(context.Background(), f.lista.ID, dto.ActualizacionMasivaRequest{
		ProveedorID: proveedorID.String(),
		Porcentaje:  decimal.NewFromInt(7),
	})
	require.NoError(t, err)

	precio, _ := f.listas.FindPrecio(context.Background(), gaseosa.ID, f.lista.ID)
	assert.True(t, precio.PrecioCosto.Equal(decimal.RequireFromString("35.66")), "costo = %s", precio.PrecioCosto)
	assert.True(t, precio.PrecioVenta.Equal(decimal.RequireFromString("43.15")), "venta = %s", precio.PrecioVenta)
}

func TestActualizacionMasiva_PorcentajeInvalido(t *testing.T) {
	f := newPrecioFixture()
	_, err := f.svc.ActualizacionMasiva(context.Background(), f.lista.ID, dto.ActualizacionMasivaRequest{
		ProveedorID: uuid.NewString(),
		Porcentaje:  decimal.NewFromInt(-100),
	})
	assert.ErrorIs(t, err, apperr.ErrPorcentajeInvalido)
}

func TestActualizacionMasiva_ProveedorSinProductos(t *testing.T) {
	f := newPrecioFixture()
	resp, err := f.svc.ActualizacionMasiva(context.Background(), f.lista.ID, dto.ActualizacionMasivaRequest{
		ProveedorID: uuid.NewString(),
		Porcentaje:  decimal.NewFromInt(10),
	})
	require.NoError(t, err)
	assert.Equal(t, 0, resp.ProductosActualizados)
}

func TestReresolverLineas_MarcaSinPrecio(t *testing.T) {
	f := newPrecioFixture()
	destino := f.listas.agregarLista(&model.ListaPrecio{Nombre: "Delivery", Activa: true})

	conPrecio := f.productos.agregar(productoContado("Gaseosa", 10))
	sinPrecio := f.productos.agregar(productoContado("Agua", 10))
	f.listas.fijar(conPrecio.ID, destino.ID, decimal.NewFromInt(100), decimal.NewFromInt(180), decimal.NewFromInt(80))

	resp, err := f.svc.ReresolverLineas(context.Background(), destino.ID, dto.ReresolverPreciosRequest{
		Lineas: []dto.LineaReresolucionRequest{
			{ProductoID: conPrecio.ID.String(), PrecioUnitario: decimal.NewFromInt(150)},
			{ProductoID: sinPrecio.ID.String(), PrecioUnitario: decimal.NewFromInt(90)},
		},
	})
	require.NoError(t, err)
	require.Len(t, resp, 2)

	assert.False(t, resp[0].SinPrecio)
	assert.True(t, resp[0].PrecioUnitario.Equal(decimal.NewFromInt(180)))

	// La línea sin precio en la lista destino conserva el precio anterior.
	assert.True(t, resp[1].SinPrecio)
	assert.True(t, resp[1].PrecioUnitario.Equal(decimal.NewFromInt(90)))
}
