package service

import (
	"context"
	"fmt"
	"time"

	"github.com/GoDevDesk/dogosoft-kiosco/internal/apperr"
	"github.com/GoDevDesk/dogosoft-kiosco/internal/dto"
	"github.com/GoDevDesk/dogosoft-kiosco/internal/model"
	"github.com/GoDevDesk/dogosoft-kiosco/internal/repository"
	"github.com/GoDevDesk/dogosoft-kiosco/internal/worker"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type VentaService interface {
	RegistrarVenta(ctx context.Context, usuario string, req dto.RegistrarVentaRequest) (*dto.VentaResponse, error)
	Obtener(ctx context.Context, id uuid.UUID) (*dto.VentaResponse, error)
	Listar(ctx context.Context, filter dto.VentaFilter) (*dto.VentaListResponse, error)
}

type ventaService struct {
	repo         repository.VentaRepository
	productoRepo repository.ProductoRepository
	listaRepo    repository.ListaPrecioRepository
	precios      PrecioService
	stock        StockService
	dispatcher   *worker.Dispatcher
}

func NewVentaService(
	repo repository.VentaRepository,
	productoRepo repository.ProductoRepository,
	listaRepo repository.ListaPrecioRepository,
	precios PrecioService,
	stock StockService,
	dispatcher *worker.Dispatcher,
) VentaService {
	return &ventaService{
		repo:         repo,
		productoRepo: productoRepo,
		listaRepo:    listaRepo,
		precios:      precios,
		stock:        stock,
		dispatcher:   dispatcher,
	}
}

// runTx ejecuta fn dentro de una transacción GORM cuando hay base, o llama
// fn(nil) directamente cuando db es nil (modo unit test).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

// ── RegistrarVenta ────────────────────────────────────────────────────────────
// Liquidación completa de una venta de mostrador:
//  1. Resolver cada línea contra la lista de precios (pre-flight, sin tx).
//  2. Subtotal = Σ líneas; aplicar ajustes acumulados sobre el subtotal.
//  3. Validar pagos: la suma de los cinco componentes debe cubrir el total.
//  4. Validar stock agregado.
//  5. TX: número de ticket, crear venta + items + pagos, comprometer stock
//     con movimientos tipo "Venta".
//  6. Vuelto = pagos - total, solo informativo en la respuesta.

func (s *ventaService) RegistrarVenta(ctx context.Context, usuario string, req dto.RegistrarVentaRequest) (*dto.VentaResponse, error) {
	listaID, err := uuid.Parse(req.ListaPrecioID)
	if err != nil {
		return nil, fmt.Errorf("lista_precio_id inválido: %w", err)
	}
	if _, err := s.listaRepo.FindByID(ctx, listaID); err != nil {
		return nil, fmt.Errorf("lista de precios no encontrada")
	}

	// 1. Resolución de líneas.
	type resolvedItem struct {
		producto *model.Producto
		precio   decimal.Decimal
		cantidad int
		subtotal decimal.Decimal
	}
	var resolved []resolvedItem
	subtotal := decimal.Zero
	demandaPorProducto := make(map[uuid.UUID]*Demanda)

	for _, item := range req.Items {
		pid, err := uuid.Parse(item.ProductoID)
		if err != nil {
			return nil, fmt.Errorf("producto_id inválido: %w", err)
		}
		p, err := s.productoRepo.FindByID(ctx, pid)
		if err != nil {
			return nil, fmt.Errorf("producto %s no encontrado", item.ProductoID)
		}
		if !p.Activo {
			return nil, fmt.Errorf("el producto %s está inactivo y no puede venderse", p.Nombre)
		}

		precio, err := s.precios.ResolverPrecio(ctx, pid, listaID)
		if err != nil {
			return nil, err
		}

		lineSubtotal := precio.PrecioVenta.Mul(decimal.NewFromInt(int64(item.Cantidad)))
		subtotal = subtotal.Add(lineSubtotal)
		resolved = append(resolved, resolvedItem{
			producto: p,
			precio:   precio.PrecioVenta,
			cantidad: item.Cantidad,
			subtotal: lineSubtotal,
		})

		if d, ok := demandaPorProducto[pid]; ok {
			d.Cantidad += item.Cantidad
		} else {
			demandaPorProducto[pid] = &Demanda{Producto: p, Cantidad: item.Cantidad, Tipo: model.MovVenta}
		}
	}

	// 2. Ajustes acumulados contra el subtotal.
	ajusteTotal, total, err := AplicarAjustes(subtotal, req.Ajustes)
	if err != nil {
		return nil, err
	}

	// 3. Pagos: los cinco componentes deben cubrir el total.
	pagos := []struct {
		metodo string
		monto  decimal.Decimal
	}{
		{model.PagoEfectivo, req.Pagos.Efectivo},
		{model.PagoTarjeta, req.Pagos.Tarjeta},
		{model.PagoCuentaCorriente, req.Pagos.CuentaCorriente},
		{model.PagoCheque, req.Pagos.Cheque},
		{model.PagoTickets, req.Pagos.Tickets},
	}
	totalPagos := decimal.Zero
	for _, p := range pagos {
		totalPagos = totalPagos.Add(p.monto)
	}
	if totalPagos.LessThan(total) {
		return nil, apperr.ErrPagoInsuficiente
	}
	vuelto := totalPagos.Sub(total)

	// 4. Validación agregada de stock.
	demandas := make([]Demanda, 0, len(demandaPorProducto))
	for _, d := range demandaPorProducto {
		demandas = append(demandas, *d)
	}
	if err := s.stock.Validar(ctx, demandas); err != nil {
		return nil, err
	}

	// 5. Transacción.
	var venta model.Venta
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		ticket := 1
		if tx != nil {
			t, err := s.repo.NextNumeroTicket(tx)
			if err != nil {
				return err
			}
			ticket = t
		}

		venta = model.Venta{
			NumeroTicket: ticket,
			Subtotal:     subtotal,
			AjusteTotal:  ajusteTotal,
			Total:        total,
			TipoVenta:    "Interna",
			Usuario:      usuario,
		}
		for _, r := range resolved {
			venta.Items = append(venta.Items, model.VentaItem{
				ProductoID:     r.producto.ID,
				Cantidad:       r.cantidad,
				PrecioUnitario: r.precio,
				Subtotal:       r.subtotal,
			})
		}
		for _, p := range pagos {
			if p.monto.IsZero() {
				continue
			}
			venta.Pagos = append(venta.Pagos, model.VentaPago{Metodo: p.metodo, Monto: p.monto})
		}

		if tx == nil {
			return nil
		}
		if err := s.repo.CreateTx(tx, &venta); err != nil {
			return err
		}

		motivo := fmt.Sprintf("Venta #%d", ticket)
		return s.stock.ComprometerTx(tx, demandas, usuario, motivo, venta.ID)
	})
	if txErr != nil {
		return nil, txErr
	}

	if s.dispatcher != nil {
		_ = s.dispatcher.EnqueueAlertaStock(ctx, map[string]interface{}{
			"origen": fmt.Sprintf("Venta #%d", venta.NumeroTicket),
		})
	}

	resp := ventaToResponse(&venta)
	resp.Vuelto = vuelto
	for i, r := range resolved {
		resp.Items[i].Producto = r.producto.Nombre
	}
	return resp, nil
}

func (s *ventaService) Obtener(ctx context.Context, id uuid.UUID) (*dto.VentaResponse, error) {
	venta, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("venta no encontrada")
	}
	return ventaToResponse(venta), nil
}

func (s *ventaService) Listar(ctx context.Context, filter dto.VentaFilter) (*dto.VentaListResponse, error) {
	ventas, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	data := make([]dto.VentaResponse, len(ventas))
	for i := range ventas {
		data[i] = *ventaToResponse(&ventas[i])
	}
	return &dto.VentaListResponse{
		Data: data, Total: total, Page: filter.Page, Limit: filter.Limit,
	}, nil
}

func ventaToResponse(v *model.Venta) *dto.VentaResponse {
	resp := &dto.VentaResponse{
		ID:           v.ID.String(),
		NumeroTicket: v.NumeroTicket,
		Subtotal:     v.Subtotal,
		AjusteTotal:  v.AjusteTotal,
		Total:        v.Total,
		Vuelto:       decimal.Zero,
		Usuario:      v.Usuario,
		CreatedAt:    v.CreatedAt.Format(time.RFC3339),
	}
	for _, item := range v.Items {
		ir := dto.ItemVentaResponse{
			Cantidad:       item.Cantidad,
			PrecioUnitario: item.PrecioUnitario,
			Subtotal:       item.Subtotal,
		}
		if item.Producto != nil {
			ir.Producto = item.Producto.Nombre
		}
		resp.Items = append(resp.Items, ir)
	}
	for _, pago := range v.Pagos {
		resp.Pagos = append(resp.Pagos, dto.PagoResponse{Metodo: pago.Metodo, Monto: pago.Monto})
	}
	return resp
}
