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

func newStockServiceForTest() (StockService, *stubProductoRepo, *stubMateriaPrimaRepo, *stubRecetaRepo, *stubMovimientoRepo) {
	productos := newStubProductoRepo()
	materias := newStubMateriaPrimaRepo()
	recetas := newStubRecetaRepo()
	movimientos := newStubMovimientoRepo()
	svc := NewStockService(productos, materias, recetas, movimientos)
	return svc, productos, materias, recetas, movimientos
}

func TestValidar_StockContadoSuficiente(t *testing.T) {
	svc, productos, _, _, _ := newStockServiceForTest()
	gaseosa := productos.agregar(productoContado("Gaseosa", 5))

	err := svc.Validar(context.Background(), []Demanda{
		{Producto: gaseosa, Cantidad: 5, Tipo: model.MovVenta},
	})
	assert.NoError(t, err)
}

// La demanda del mismo producto se agrega entre líneas antes de comparar:
// dos demandas de 3 sobre un stock de 5 fallan aunque cada una alcance sola.
func TestValidar_DemandaAgregadaPorProducto(t *testing.T) {
	svc, productos, _, _, _ := newStockServiceForTest()
	gaseosa := productos.agregar(productoContado("Gaseosa", 5))

	err := svc.Validar(context.Background(), []Demanda{
		{Producto: gaseosa, Cantidad: 3, Tipo: model.MovPedido},
		{Producto: gaseosa, Cantidad: 3, Tipo: model.MovPedidoCombo},
	})

	var stockErr *apperr.StockInsuficienteError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, "Gaseosa", stockErr.Entidad)
	assert.True(t, stockErr.Necesario.Equal(decimal.NewFromInt(6)))
	assert.True(t, stockErr.Disponible.Equal(decimal.NewFromInt(5)))
}

func TestValidar_RecetaDescuentaIngredientes(t *testing.T) {
	svc, productos, materias, _, _ := newStockServiceForTest()

	carne := materias.agregar(&model.MateriaPrima{
		ID: uuid.New(), Codigo: "CAR", Nombre: "Carne", EsIngrediente: true,
		Unidad: "KG", CantidadDisponible: decimal.RequireFromString("0.400"), Activa: true,
	})
	burger := productos.agregar(productoConReceta("Hamburguesa", []model.RecetaProducto{
		{MateriaPrimaID: carne.ID, Cantidad: decimal.RequireFromString("0.150"), MateriaPrima: carne},
	}))

	// 2 hamburguesas = 0.300 KG, alcanza.
	err := svc.Validar(context.Background(), []Demanda{
		{Producto: burger, Cantidad: 2, Tipo: model.MovPedido},
	})
	assert.NoError(t, err)

	// 3 hamburguesas = 0.450 KG > 0.400 disponible.
	err = svc.Validar(context.Background(), []Demanda{
		{Producto: burger, Cantidad: 3, Tipo: model.MovPedido},
	})
	var stockErr *apperr.StockInsuficienteError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, "Carne", stockErr.Entidad)
	assert.True(t, stockErr.Necesario.Equal(decimal.RequireFromString("0.450")))
	assert.True(t, stockErr.Disponible.Equal(decimal.RequireFromString("0.400")))
}

// Productos distintos que comparten un ingrediente acumulan demanda sobre la
// misma materia prima.
func TestValidar_IngredienteCompartido(t *testing.T) {
	svc, productos, materias, _, _ := newStockServiceForTest()

	pan := materias.agregar(&model.MateriaPrima{
		ID: uuid.New(), Codigo: "PAN", Nombre: "Pan", EsIngrediente: true,
		Unidad: "UN", CantidadDisponible: decimal.NewFromInt(3), Activa: true,
	})
	burger := productos.agregar(productoConReceta("Hamburguesa", []model.RecetaProducto{
		{MateriaPrimaID: pan.ID, Cantidad: decimal.NewFromInt(1), MateriaPrima: pan},
	}))
	lomito := productos.agregar(productoConReceta("Lomito", []model.RecetaProducto{
		{MateriaPrimaID: pan.ID, Cantidad: decimal.NewFromInt(1), MateriaPrima: pan},
	}))

	err := svc.Validar(context.Background(), []Demanda{
		{Producto: burger, Cantidad: 2, Tipo: model.MovPedido},
		{Producto: lomito, Cantidad: 2, Tipo: model.MovPedido},
	})

	var stockErr *apperr.StockInsuficienteError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, "Pan", stockErr.Entidad)
	assert.True(t, stockErr.Necesario.Equal(decimal.NewFromInt(4)))
}

func TestValidar_SinControlNoValida(t *testing.T) {
	svc, productos, _, _, _ := newStockServiceForTest()
	cafe := productos.agregar(productoSinControl("Café"))

	err := svc.Validar(context.Background(), []Demanda{
		{Producto: cafe, Cantidad: 1000, Tipo: model.MovVenta},
	})
	assert.NoError(t, err)
}

func TestAjusteManual_NegativoBloqueado(t *testing.T) {
	svc, productos, _, _, _ := newStockServiceForTest()
	gaseosa := productos.agregar(productoContado("Gaseosa", 2))

	_, err := svc.AjusteManual(context.Background(), gaseosa.ID, "admin", dto.AjusteManualRequest{
		Tipo: model.MovAjusteMenos, Cantidad: 5, Motivo: "rotura",
	})
	var stockErr *apperr.StockInsuficienteError
	assert.ErrorAs(t, err, &stockErr)
}

func TestAjusteManual_NegativoConfirmado(t *testing.T) {
	svc, productos, _, _, _ := newStockServiceForTest()
	gaseosa := productos.agregar(productoContado("Gaseosa", 2))

	resp, err := svc.AjusteManual(context.Background(), gaseosa.ID, "admin", dto.AjusteManualRequest{
		Tipo: model.MovAjusteMenos, Cantidad: 5, Motivo: "recuento físico",
		ConfirmarNegativo: true,
	})
	require.NoError(t, err)
	assert.Equal(t, -5, resp.Cantidad)
	assert.Equal(t, 2, resp.StockAnterior)
	assert.Equal(t, -3, resp.StockNuevo)
	assert.Equal(t, "admin", resp.Usuario)
}

func TestAjusteManual_ProductoSinStockPropio(t *testing.T) {
	svc, productos, _, _, _ := newStockServiceForTest()
	burger := productos.agregar(productoConReceta("Hamburguesa", nil))

	_, err := svc.AjusteManual(context.Background(), burger.ID, "admin", dto.AjusteManualRequest{
		Tipo: model.MovAjusteMas, Cantidad: 1, Motivo: "prueba",
	})
	assert.Error(t, err)
}
