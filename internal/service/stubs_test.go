package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/GoDevDesk/dogosoft-kiosco/internal/dto"
	"github.com/GoDevDesk/dogosoft-kiosco/internal/model"
	"github.com/GoDevDesk/dogosoft-kiosco/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Stubs in-memory de los repositorios. Todos devuelven DB() == nil, lo que
// hace que runTx ejecute el cuerpo con tx == nil: los servicios corren su
// lógica de negocio completa sin base de datos.

// ── ProductoRepository ────────────────────────────────────────────────────────

type stubProductoRepo struct {
	productos map[uuid.UUID]*model.Producto
}

func newStubProductoRepo() *stubProductoRepo {
	return &stubProductoRepo{productos: make(map[uuid.UUID]*model.Producto)}
}

func (r *stubProductoRepo) agregar(p *model.Producto) *model.Producto {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.productos[p.ID] = p
	return p
}

func (r *stubProductoRepo) Create(_ context.Context, p *model.Producto) error {
	r.agregar(p)
	return nil
}

func (r *stubProductoRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Producto, error) {
	p, ok := r.productos[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (r *stubProductoRepo) FindByIDTx(_ *gorm.DB, id uuid.UUID) (*model.Producto, error) {
	return r.FindByID(context.Background(), id)
}

func (r *stubProductoRepo) FindByCodigo(_ context.Context, codigo string) (*model.Producto, error) {
	for _, p := range r.productos {
		if p.Codigo == codigo {
			return p, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubProductoRepo) List(_ context.Context, _ dto.ProductoFilter) ([]model.Producto, int64, error) {
	var out []model.Producto
	for _, p := range r.productos {
		out = append(out, *p)
	}
	return out, int64(len(out)), nil
}

func (r *stubProductoRepo) Update(_ context.Context, p *model.Producto) error {
	r.productos[p.ID] = p
	return nil
}

func (r *stubProductoRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	if p, ok := r.productos[id]; ok {
		p.Activo = false
	}
	return nil
}

func (r *stubProductoRepo) Reactivar(_ context.Context, id uuid.UUID) error {
	if p, ok := r.productos[id]; ok {
		p.Activo = true
	}
	return nil
}

func (r *stubProductoRepo) FindByProveedorID(_ context.Context, proveedorID uuid.UUID) ([]model.Producto, error) {
	var out []model.Producto
	for _, p := range r.productos {
		if p.ProveedorID != nil && *p.ProveedorID == proveedorID && p.Activo {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *stubProductoRepo) UpdateStockTx(_ *gorm.DB, id uuid.UUID, delta int) error {
	p, ok := r.productos[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	nuevo := p.StockActual() + delta
	p.Stock = &nuevo
	return nil
}

func (r *stubProductoRepo) DB() *gorm.DB { return nil }

var _ repository.ProductoRepository = (*stubProductoRepo)(nil)

// ── MateriaPrimaRepository ────────────────────────────────────────────────────

type stubMateriaPrimaRepo struct {
	materias map[uuid.UUID]*model.MateriaPrima
}

func newStubMateriaPrimaRepo() *stubMateriaPrimaRepo {
	return &stubMateriaPrimaRepo{materias: make(map[uuid.UUID]*model.MateriaPrima)}
}

func (r *stubMateriaPrimaRepo) agregar(mp *model.MateriaPrima) *model.MateriaPrima {
	if mp.ID == uuid.Nil {
		mp.ID = uuid.New()
	}
	r.materias[mp.ID] = mp
	return mp
}

func (r *stubMateriaPrimaRepo) Create(_ context.Context, mp *model.MateriaPrima) error {
	r.agregar(mp)
	return nil
}

func (r *stubMateriaPrimaRepo) FindByID(_ context.Context, id uuid.UUID) (*model.MateriaPrima, error) {
	mp, ok := r.materias[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return mp, nil
}

func (r *stubMateriaPrimaRepo) FindByIDTx(_ *gorm.DB, id uuid.UUID) (*model.MateriaPrima, error) {
	return r.FindByID(context.Background(), id)
}

func (r *stubMateriaPrimaRepo) FindByCodigo(_ context.Context, codigo string) (*model.MateriaPrima, error) {
	for _, mp := range r.materias {
		if mp.Codigo == codigo {
			return mp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubMateriaPrimaRepo) List(_ context.Context, _ dto.MateriaPrimaFilter) ([]model.MateriaPrima, int64, error) {
	var out []model.MateriaPrima
	for _, mp := range r.materias {
		out = append(out, *mp)
	}
	return out, int64(len(out)), nil
}

func (r *stubMateriaPrimaRepo) Update(_ context.Context, mp *model.MateriaPrima) error {
	r.materias[mp.ID] = mp
	return nil
}

func (r *stubMateriaPrimaRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	if mp, ok := r.materias[id]; ok {
		mp.Activa = false
	}
	return nil
}

func (r *stubMateriaPrimaRepo) UpdateCantidadTx(_ *gorm.DB, id uuid.UUID, delta decimal.Decimal) error {
	mp, ok := r.materias[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	mp.CantidadDisponible = mp.CantidadDisponible.Add(delta)
	return nil
}

func (r *stubMateriaPrimaRepo) DB() *gorm.DB { return nil }

var _ repository.MateriaPrimaRepository = (*stubMateriaPrimaRepo)(nil)

// ── RecetaRepository ──────────────────────────────────────────────────────────

type stubRecetaRepo struct {
	recetas map[uuid.UUID][]model.RecetaProducto
	enUso   map[uuid.UUID]int64
}

func newStubRecetaRepo() *stubRecetaRepo {
	return &stubRecetaRepo{
		recetas: make(map[uuid.UUID][]model.RecetaProducto),
		enUso:   make(map[uuid.UUID]int64),
	}
}

func (r *stubRecetaRepo) FindByProductoID(_ context.Context, productoID uuid.UUID) ([]model.RecetaProducto, error) {
	return r.recetas[productoID], nil
}

func (r *stubRecetaRepo) FindByProductoIDTx(_ *gorm.DB, productoID uuid.UUID) ([]model.RecetaProducto, error) {
	return r.recetas[productoID], nil
}

func (r *stubRecetaRepo) Replace(_ context.Context, productoID uuid.UUID, ingredientes []model.RecetaProducto) error {
	r.recetas[productoID] = ingredientes
	return nil
}

func (r *stubRecetaRepo) CountByMateriaPrima(_ context.Context, materiaPrimaID uuid.UUID) (int64, error) {
	return r.enUso[materiaPrimaID], nil
}

var _ repository.RecetaRepository = (*stubRecetaRepo)(nil)

// ── MovimientoStockRepository ─────────────────────────────────────────────────

type stubMovimientoRepo struct {
	movimientos   []model.MovimientoStock
	movimientosMP []model.MovimientoMateriaPrima
}

func newStubMovimientoRepo() *stubMovimientoRepo { return &stubMovimientoRepo{} }

func (r *stubMovimientoRepo) Create(_ context.Context, m *model.MovimientoStock) error {
	r.movimientos = append(r.movimientos, *m)
	return nil
}

func (r *stubMovimientoRepo) CreateTx(_ *gorm.DB, m *model.MovimientoStock) error {
	r.movimientos = append(r.movimientos, *m)
	return nil
}

func (r *stubMovimientoRepo) List(_ context.Context, _ dto.MovimientoStockFilter) ([]model.MovimientoStock, int64, error) {
	return r.movimientos, int64(len(r.movimientos)), nil
}

func (r *stubMovimientoRepo) CreateMateriaPrimaTx(_ *gorm.DB, m *model.MovimientoMateriaPrima) error {
	r.movimientosMP = append(r.movimientosMP, *m)
	return nil
}

func (r *stubMovimientoRepo) ListMateriaPrima(_ context.Context, _ uuid.UUID, _, _ int) ([]model.MovimientoMateriaPrima, int64, error) {
	return r.movimientosMP, int64(len(r.movimientosMP)), nil
}

var _ repository.MovimientoStockRepository = (*stubMovimientoRepo)(nil)

// ── ListaPrecioRepository ─────────────────────────────────────────────────────

type stubListaPrecioRepo struct {
	listas  map[uuid.UUID]*model.ListaPrecio
	precios map[string]*model.PrecioProducto
	// proveedorDe vincula producto → proveedor para PreciosPorProveedor.
	proveedorDe map[uuid.UUID]uuid.UUID
}

func newStubListaPrecioRepo() *stubListaPrecioRepo {
	return &stubListaPrecioRepo{
		listas:      make(map[uuid.UUID]*model.ListaPrecio),
		precios:     make(map[string]*model.PrecioProducto),
		proveedorDe: make(map[uuid.UUID]uuid.UUID),
	}
}

func precioKey(productoID, listaID uuid.UUID) string {
	return fmt.Sprintf("%s|%s", productoID, listaID)
}

func (r *stubListaPrecioRepo) agregarLista(l *model.ListaPrecio) *model.ListaPrecio {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	r.listas[l.ID] = l
	return l
}

func (r *stubListaPrecioRepo) fijar(productoID, listaID uuid.UUID, costo, venta, utilidad decimal.Decimal) {
	r.precios[precioKey(productoID, listaID)] = &model.PrecioProducto{
		ID:                 uuid.New(),
		ProductoID:         productoID,
		ListaPrecioID:      listaID,
		PrecioCosto:        costo,
		PrecioVenta:        venta,
		PorcentajeUtilidad: utilidad,
	}
}

func (r *stubListaPrecioRepo) Create(_ context.Context, lista *model.ListaPrecio) error {
	r.agregarLista(lista)
	return nil
}

func (r *stubListaPrecioRepo) FindByID(_ context.Context, id uuid.UUID) (*model.ListaPrecio, error) {
	l, ok := r.listas[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return l, nil
}

func (r *stubListaPrecioRepo) FindByNombre(_ context.Context, nombre string) (*model.ListaPrecio, error) {
	for _, l := range r.listas {
		if l.Nombre == nombre {
			return l, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubListaPrecioRepo) List(_ context.Context) ([]model.ListaPrecio, error) {
	var out []model.ListaPrecio
	for _, l := range r.listas {
		out = append(out, *l)
	}
	return out, nil
}

func (r *stubListaPrecioRepo) Update(_ context.Context, lista *model.ListaPrecio) error {
	r.listas[lista.ID] = lista
	return nil
}

func (r *stubListaPrecioRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.listas, id)
	return nil
}

func (r *stubListaPrecioRepo) FindPrecio(_ context.Context, productoID, listaID uuid.UUID) (*model.PrecioProducto, error) {
	p, ok := r.precios[precioKey(productoID, listaID)]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (r *stubListaPrecioRepo) FindPrecioTx(_ *gorm.DB, productoID, listaID uuid.UUID) (*model.PrecioProducto, error) {
	return r.FindPrecio(context.Background(), productoID, listaID)
}

func (r *stubListaPrecioRepo) ListPrecios(_ context.Context, listaID uuid.UUID) ([]model.PrecioProducto, error) {
	var out []model.PrecioProducto
	for _, p := range r.precios {
		if p.ListaPrecioID == listaID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *stubListaPrecioRepo) SavePrecio(_ context.Context, precio *model.PrecioProducto) error {
	if precio.ID == uuid.Nil {
		precio.ID = uuid.New()
	}
	r.precios[precioKey(precio.ProductoID, precio.ListaPrecioID)] = precio
	return nil
}

func (r *stubListaPrecioRepo) SavePrecioTx(_ *gorm.DB, precio *model.PrecioProducto) error {
	return r.SavePrecio(context.Background(), precio)
}

func (r *stubListaPrecioRepo) PreciosPorProveedor(_ context.Context, listaID, proveedorID uuid.UUID) ([]model.PrecioProducto, error) {
	var out []model.PrecioProducto
	for _, p := range r.precios {
		if p.ListaPrecioID == listaID && r.proveedorDe[p.ProductoID] == proveedorID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *stubListaPrecioRepo) CountPreciosByProducto(_ context.Context, productoID uuid.UUID) (int64, error) {
	var n int64
	for _, p := range r.precios {
		if p.ProductoID == productoID {
			n++
		}
	}
	return n, nil
}

func (r *stubListaPrecioRepo) DB() *gorm.DB { return nil }

var _ repository.ListaPrecioRepository = (*stubListaPrecioRepo)(nil)

// ── HistorialPrecioRepository ─────────────────────────────────────────────────

type stubHistorialRepo struct {
	entradas []model.HistorialPrecio
}

func newStubHistorialRepo() *stubHistorialRepo { return &stubHistorialRepo{} }

func (r *stubHistorialRepo) Create(_ context.Context, h *model.HistorialPrecio) error {
	r.entradas = append(r.entradas, *h)
	return nil
}

func (r *stubHistorialRepo) CreateTx(_ *gorm.DB, h *model.HistorialPrecio) error {
	r.entradas = append(r.entradas, *h)
	return nil
}

func (r *stubHistorialRepo) ListByProducto(_ context.Context, productoID uuid.UUID, _, _ int) ([]model.HistorialPrecio, int64, error) {
	var out []model.HistorialPrecio
	for _, h := range r.entradas {
		if h.ProductoID == productoID {
			out = append(out, h)
		}
	}
	return out, int64(len(out)), nil
}

func (r *stubHistorialRepo) ListByProveedor(_ context.Context, proveedorID uuid.UUID, _, _ int) ([]model.HistorialPrecio, int64, error) {
	var out []model.HistorialPrecio
	for _, h := range r.entradas {
		if h.ProveedorID != nil && *h.ProveedorID == proveedorID {
			out = append(out, h)
		}
	}
	return out, int64(len(out)), nil
}

var _ repository.HistorialPrecioRepository = (*stubHistorialRepo)(nil)

// ── ComboRepository ───────────────────────────────────────────────────────────

type stubComboRepo struct {
	combos map[uuid.UUID]*model.Combo
	enUso  map[uuid.UUID]int64
}

func newStubComboRepo() *stubComboRepo {
	return &stubComboRepo{
		combos: make(map[uuid.UUID]*model.Combo),
		enUso:  make(map[uuid.UUID]int64),
	}
}

func (r *stubComboRepo) agregar(c *model.Combo) *model.Combo {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	for i := range c.Items {
		if c.Items[i].ID == uuid.Nil {
			c.Items[i].ID = uuid.New()
		}
		c.Items[i].ComboID = c.ID
	}
	r.combos[c.ID] = c
	return c
}

func (r *stubComboRepo) Create(_ context.Context, combo *model.Combo) error {
	r.agregar(combo)
	return nil
}

func (r *stubComboRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Combo, error) {
	c, ok := r.combos[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return c, nil
}

func (r *stubComboRepo) List(_ context.Context, soloActivos bool) ([]model.Combo, error) {
	var out []model.Combo
	for _, c := range r.combos {
		if soloActivos && !c.Activo {
			continue
		}
		out = append(out, *c)
	}
	return out, nil
}

func (r *stubComboRepo) Update(_ context.Context, combo *model.Combo) error {
	r.combos[combo.ID] = combo
	return nil
}

func (r *stubComboRepo) ReplaceItems(_ context.Context, comboID uuid.UUID, items []model.ComboItem) error {
	c, ok := r.combos[comboID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	c.Items = items
	return nil
}

func (r *stubComboRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	if c, ok := r.combos[id]; ok {
		c.Activo = false
	}
	return nil
}

func (r *stubComboRepo) CountByProducto(_ context.Context, productoID uuid.UUID) (int64, error) {
	return r.enUso[productoID], nil
}

var _ repository.ComboRepository = (*stubComboRepo)(nil)

// ── PedidoRepository ──────────────────────────────────────────────────────────

type stubPedidoRepo struct {
	pedidos map[uuid.UUID]*model.Pedido
	seq     int
}

func newStubPedidoRepo() *stubPedidoRepo {
	return &stubPedidoRepo{pedidos: make(map[uuid.UUID]*model.Pedido)}
}

func (r *stubPedidoRepo) agregar(p *model.Pedido) *model.Pedido {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.pedidos[p.ID] = p
	return p
}

func (r *stubPedidoRepo) CreateTx(_ *gorm.DB, pedido *model.Pedido) error {
	r.agregar(pedido)
	return nil
}

func (r *stubPedidoRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Pedido, error) {
	p, ok := r.pedidos[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (r *stubPedidoRepo) List(_ context.Context, _ dto.PedidoFilter) ([]model.Pedido, int64, error) {
	var out []model.Pedido
	for _, p := range r.pedidos {
		out = append(out, *p)
	}
	return out, int64(len(out)), nil
}

func (r *stubPedidoRepo) UpdateEstado(_ context.Context, id uuid.UUID, estado string, completadoEn *time.Time) error {
	p, ok := r.pedidos[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	p.Estado = estado
	p.CompletadoEn = completadoEn
	return nil
}

func (r *stubPedidoRepo) NextNumeroPedido(_ *gorm.DB) (int, error) {
	r.seq++
	return r.seq, nil
}

func (r *stubPedidoRepo) DB() *gorm.DB { return nil }

var _ repository.PedidoRepository = (*stubPedidoRepo)(nil)

// ── VentaRepository ───────────────────────────────────────────────────────────

type stubVentaRepo struct {
	ventas map[uuid.UUID]*model.Venta
	seq    int
}

func newStubVentaRepo() *stubVentaRepo {
	return &stubVentaRepo{ventas: make(map[uuid.UUID]*model.Venta)}
}

func (r *stubVentaRepo) CreateTx(_ *gorm.DB, venta *model.Venta) error {
	if venta.ID == uuid.Nil {
		venta.ID = uuid.New()
	}
	r.ventas[venta.ID] = venta
	return nil
}

func (r *stubVentaRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Venta, error) {
	v, ok := r.ventas[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return v, nil
}

func (r *stubVentaRepo) List(_ context.Context, _ dto.VentaFilter) ([]model.Venta, int64, error) {
	var out []model.Venta
	for _, v := range r.ventas {
		out = append(out, *v)
	}
	return out, int64(len(out)), nil
}

func (r *stubVentaRepo) NextNumeroTicket(_ *gorm.DB) (int, error) {
	r.seq++
	return r.seq, nil
}

func (r *stubVentaRepo) DB() *gorm.DB { return nil }

var _ repository.VentaRepository = (*stubVentaRepo)(nil)

// ── Helpers de armado ─────────────────────────────────────────────────────────

func intPtr(n int) *int { return &n }

func productoContado(nombre string, stock int) *model.Producto {
	return &model.Producto{
		ID:            uuid.New(),
		Codigo:        nombre,
		Nombre:        nombre,
		ControlaStock: true,
		Stock:         intPtr(stock),
		Activo:        true,
	}
}

func productoConReceta(nombre string, receta []model.RecetaProducto) *model.Producto {
	return &model.Producto{
		ID:            uuid.New(),
		Codigo:        nombre,
		Nombre:        nombre,
		ControlaStock: false,
		TieneReceta:   true,
		Activo:        true,
		Receta:        receta,
	}
}

func productoSinControl(nombre string) *model.Producto {
	return &model.Producto{
		ID:            uuid.New(),
		Codigo:        nombre,
		Nombre:        nombre,
		ControlaStock: false,
		Activo:        true,
	}
}
