package service

import (
	"context"
	"testing"

	"github.com/GoDevDesk/dogosoft-kiosco/internal/apperr"
	"github.com/GoDevDesk/dogosoft-kiosco/internal/dto"
	"github.com/GoDevDesk/dogosoft-kiosco/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pedidoFixture struct {
	svc       PedidoService
	productos *stubProductoRepo
	combos    *stubComboRepo
	listas    *stubListaPrecioRepo
	pedidos   *stubPedidoRepo
	lista     *model.ListaPrecio
}

func newPedidoFixture() *pedidoFixture {
	productos := newStubProductoRepo()
	materias := newStubMateriaPrimaRepo()
	recetas := newStubRecetaRepo()
	movimientos := newStubMovimientoRepo()
	listas := newStubListaPrecioRepo()
	historial := newStubHistorialRepo()
	combos := newStubComboRepo()
	pedidos := newStubPedidoRepo()

	lista := listas.agregarLista(&model.ListaPrecio{Nombre: "Salón", Activa: true})

	precios := NewPrecioService(listas, productos, historial)
	stock := NewStockService(productos, materias, recetas, movimientos)
	svc := NewPedidoService(pedidos, productos, combos, listas, precios, stock, nil)

	return &pedidoFixture{
		svc: svc, productos: productos, combos: combos,
		listas: listas, pedidos: pedidos, lista: lista,
	}
}

func (f *pedidoFixture) conPrecio(p *model.Producto, venta int64) *model.Producto {
	f.productos.agregar(p)
	f.listas.fijar(p.ID, f.lista.ID, decimal.NewFromInt(venta/2), decimal.NewFromInt(venta), decimal.NewFromInt(100))
	return p
}

func TestCrearPedido_LineasSueltasYCombo(t *testing.T) {
	f := newPedidoFixture()
	gaseosa := f.conPrecio(productoContado("Gaseosa", 20), 150)
	combo, _ := comboClasico(f.productos)
	f.combos.agregar(combo)

	resp, err := f.svc.CrearPedido(context.Background(), "cajero1", dto.CrearPedidoRequest{
		ListaPrecioID: f.lista.ID.String(),
		Items: []dto.ItemPedidoRequest{
			{ProductoID: gaseosa.ID.String(), Cantidad: 2},
		},
		Combos: []dto.ComboPedidoRequest{
			{ComboID: combo.ID.String(), Cantidad: 1},
		},
	})
	require.NoError(t, err)

	// Total = 2×150 (lista) + 1500 (precio propio del combo).
	assert.True(t, resp.Total.Equal(decimal.NewFromInt(1800)), "total = %s", resp.Total)
	assert.Equal(t, model.EstadoPendiente, resp.Estado)
	assert.Equal(t, "Cliente", resp.Cliente) // default
	require.Len(t, resp.Items, 2)
	assert.NotNil(t, resp.Items[0].ProductoID)
	assert.NotNil(t, resp.Items[1].ComboID)
}

func TestCrearPedido_SinLineas(t *testing.T) {
	f := newPedidoFixture()
	_, err := f.svc.CrearPedido(context.Background(), "cajero1", dto.CrearPedidoRequest{
		ListaPrecioID: f.lista.ID.String(),
	})
	assert.Error(t, err)
}

func TestCrearPedido_ListaInactiva(t *testing.T) {
	f := newPedidoFixture()
	f.lista.Activa = false
	gaseosa := f.conPrecio(productoContado("Gaseosa", 20), 150)

	_, err := f.svc.CrearPedido(context.Background(), "cajero1", dto.CrearPedidoRequest{
		ListaPrecioID: f.lista.ID.String(),
		Items:         []dto.ItemPedidoRequest{{ProductoID: gaseosa.ID.String(), Cantidad: 1}},
	})
	assert.Error(t, err)
}

// Un producto compartido entre una línea suelta y un combo valida contra la
// demanda conjunta.
func TestCrearPedido_DemandaConjuntaSueltaYCombo(t *testing.T) {
	f := newPedidoFixture()
	combo, refs := comboClasico(f.productos)
	f.combos.agregar(combo)

	// La gaseosa del combo también se pide suelta: 3 sueltas + 3 de combos
	// contra stock 5.
	gaseosa := refs["gaseosa"]
	f.listas.fijar(gaseosa.ID, f.lista.ID, decimal.NewFromInt(50), decimal.NewFromInt(100), decimal.NewFromInt(100))
	stock := 5
	gaseosa.Stock = &stock

	_, err := f.svc.CrearPedido(context.Background(), "cajero1", dto.CrearPedidoRequest{
		ListaPrecioID: f.lista.ID.String(),
		Items: []dto.ItemPedidoRequest{
			{ProductoID: gaseosa.ID.String(), Cantidad: 3},
		},
		Combos: []dto.ComboPedidoRequest{
			{ComboID: combo.ID.String(), Cantidad: 3},
		},
	})

	var stockErr *apperr.StockInsuficienteError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, "Gaseosa", stockErr.Entidad)
	assert.True(t, stockErr.Necesario.Equal(decimal.NewFromInt(6)))
}

func TestCrearPedido_SustitucionInvalidaNoPersiste(t *testing.T) {
	f := newPedidoFixture()
	combo, _ := comboClasico(f.productos)
	f.combos.agregar(combo)
	otro := f.productos.agregar(productoContado("Cerveza", 10))
	slotBebida := combo.Items[2].ID.String()

	_, err := f.svc.CrearPedido(context.Background(), "cajero1", dto.CrearPedidoRequest{
		ListaPrecioID: f.lista.ID.String(),
		Combos: []dto.ComboPedidoRequest{
			{
				ComboID:     combo.ID.String(),
				Cantidad:    1,
				Selecciones: []dto.SeleccionCombo{{slotBebida: otro.ID.String()}},
			},
		},
	})

	var sustErr *apperr.SustitucionInvalidaError
	assert.ErrorAs(t, err, &sustErr)
	assert.Empty(t, f.pedidos.pedidos)
}

// ── Ciclo de cocina ───────────────────────────────────────────────────────────

func TestCambiarEstado_AvanceCompleto(t *testing.T) {
	f := newPedidoFixture()
	pedido := f.pedidos.agregar(&model.Pedido{
		NumeroPedido: 1, Cliente: "Cliente", Estado: model.EstadoPendiente,
		Total: decimal.NewFromInt(100), Usuario: "cajero1",
	})

	for _, estado := range []string{model.EstadoEnPreparacion, model.EstadoListo, model.EstadoEntregado} {
		resp, err := f.svc.CambiarEstado(context.Background(), pedido.ID, estado)
		require.NoError(t, err)
		assert.Equal(t, estado, resp.Estado)
	}
	assert.NotNil(t, pedido.CompletadoEn)
}

func TestCambiarEstado_SaltoRechazado(t *testing.T) {
	f := newPedidoFixture()
	pedido := f.pedidos.agregar(&model.Pedido{
		NumeroPedido: 2, Cliente: "Cliente", Estado: model.EstadoPendiente,
		Total: decimal.NewFromInt(100), Usuario: "cajero1",
	})

	_, err := f.svc.CambiarEstado(context.Background(), pedido.ID, model.EstadoListo)
	assert.ErrorIs(t, err, apperr.ErrTransicionInvalida)
}

func TestCambiarEstado_RetrocesoRechazado(t *testing.T) {
	f := newPedidoFixture()
	pedido := f.pedidos.agregar(&model.Pedido{
		NumeroPedido: 3, Cliente: "Cliente", Estado: model.EstadoListo,
		Total: decimal.NewFromInt(100), Usuario: "cajero1",
	})

	_, err := f.svc.CambiarEstado(context.Background(), pedido.ID, model.EstadoEnPreparacion)
	assert.ErrorIs(t, err, apperr.ErrTransicionInvalida)
}

func TestCambiarEstado_EntregadoEsTerminal(t *testing.T) {
	f := newPedidoFixture()
	pedido := f.pedidos.agregar(&model.Pedido{
		NumeroPedido: 4, Cliente: "Cliente", Estado: model.EstadoEntregado,
		Total: decimal.NewFromInt(100), Usuario: "cajero1",
	})

	_, err := f.svc.CambiarEstado(context.Background(), pedido.ID, model.EstadoPendiente)
	assert.ErrorIs(t, err, apperr.ErrTransicionInvalida)
}
