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

type PedidoService interface {
	CrearPedido(ctx context.Context, usuario string, req dto.CrearPedidoRequest) (*dto.PedidoResponse, error)
	CambiarEstado(ctx context.Context, id uuid.UUID, estado string) (*dto.PedidoResponse, error)
	Obtener(ctx context.Context, id uuid.UUID) (*dto.PedidoResponse, error)
	Listar(ctx context.Context, filter dto.PedidoFilter) (*dto.PedidoListResponse, error)
}

type pedidoService struct {
	repo         repository.PedidoRepository
	productoRepo repository.ProductoRepository
	comboRepo    repository.ComboRepository
	listaRepo    repository.ListaPrecioRepository
	precios      PrecioService
	stock        StockService
	dispatcher   *worker.Dispatcher
}

func NewPedidoService(
	repo repository.PedidoRepository,
	productoRepo repository.ProductoRepository,
	comboRepo repository.ComboRepository,
	listaRepo repository.ListaPrecioRepository,
	precios PrecioService,
	stock StockService,
	dispatcher *worker.Dispatcher,
) PedidoService {
	return &pedidoService{
		repo:         repo,
		productoRepo: productoRepo,
		comboRepo:    comboRepo,
		listaRepo:    listaRepo,
		precios:      precios,
		stock:        stock,
		dispatcher:   dispatcher,
	}
}

// transicionesPedido: el ciclo de cocina solo avanza, un paso por vez.
var transicionesPedido = map[string]string{
	model.EstadoPendiente:     model.EstadoEnPreparacion,
	model.EstadoEnPreparacion: model.EstadoListo,
	model.EstadoListo:         model.EstadoEntregado,
}

// ── CrearPedido ───────────────────────────────────────────────────────────────
// Flujo completo:
//  1. Resolver precios de las líneas sueltas contra la lista (pre-flight).
//  2. Expandir cada combo a sus productos según las selecciones.
//  3. Validar la demanda agregada de stock — líneas sueltas y combos juntas.
//  4. TX: número correlativo, crear pedido + items, comprometer stock con
//     un movimiento por producto ("Pedido" para líneas sueltas, "Pedido
//     (Combo)" para las provenientes de combos).
//  5. Commit y despacho asíncrono del chequeo de stock mínimo.
//
// Si cualquier paso falla, nada queda escrito: sin pedido a medias, sin
// stock descontado, sin movimientos sueltos.

func (s *pedidoService) CrearPedido(ctx context.Context, usuario string, req dto.CrearPedidoRequest) (*dto.PedidoResponse, error) {
	if len(req.Items) == 0 && len(req.Combos) == 0 {
		return nil, fmt.Errorf("el pedido no tiene líneas")
	}

	listaID, err := uuid.Parse(req.ListaPrecioID)
	if err != nil {
		return nil, fmt.Errorf("lista_precio_id inválido: %w", err)
	}
	lista, err := s.listaRepo.FindByID(ctx, listaID)
	if err != nil {
		return nil, fmt.Errorf("lista de precios no encontrada")
	}
	if !lista.Activa {
		return nil, fmt.Errorf("la lista de precios %s está inactiva", lista.Nombre)
	}

	cliente := req.Cliente
	if cliente == "" {
		cliente = "Cliente"
	}

	// 1. Líneas sueltas: resolver precio y acumular demanda por producto.
	type lineaSuelta struct {
		producto          *model.Producto
		cantidad          int
		precioUnitario    decimal.Decimal
		subtotal          decimal.Decimal
		personalizaciones *string
	}
	var sueltas []lineaSuelta
	demandaSueltas := make(map[uuid.UUID]*Demanda)
	total := decimal.Zero

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
			return nil, fmt.Errorf("el producto %s está inactivo", p.Nombre)
		}

		precio, err := s.precios.ResolverPrecio(ctx, pid, listaID)
		if err != nil {
			return nil, err
		}

		subtotal := precio.PrecioVenta.Mul(decimal.NewFromInt(int64(item.Cantidad)))
		total = total.Add(subtotal)
		sueltas = append(sueltas, lineaSuelta{
			producto:          p,
			cantidad:          item.Cantidad,
			precioUnitario:    precio.PrecioVenta,
			subtotal:          subtotal,
			personalizaciones: item.Personalizaciones,
		})

		if d, ok := demandaSueltas[pid]; ok {
			d.Cantidad += item.Cantidad
		} else {
			demandaSueltas[pid] = &Demanda{Producto: p, Cantidad: item.Cantidad, Tipo: model.MovPedido}
		}
	}

	// 2. Combos: expandir y acumular demanda por producto componente.
	type lineaCombo struct {
		combo             *model.Combo
		cantidad          int
		subtotal          decimal.Decimal
		personalizaciones *string
	}
	var lineasCombo []lineaCombo
	demandaCombos := make(map[uuid.UUID]*Demanda)

	for _, cr := range req.Combos {
		cid, err := uuid.Parse(cr.ComboID)
		if err != nil {
			return nil, fmt.Errorf("combo_id inválido: %w", err)
		}
		combo, err := s.comboRepo.FindByID(ctx, cid)
		if err != nil {
			return nil, fmt.Errorf("combo %s no encontrado", cr.ComboID)
		}
		if !combo.Activo {
			return nil, fmt.Errorf("el combo %s está inactivo", combo.Nombre)
		}

		lineas, err := expandirCombo(combo, cr.Cantidad, cr.Selecciones)
		if err != nil {
			return nil, err
		}
		for _, l := range lineas {
			if d, ok := demandaCombos[l.ProductoID]; ok {
				d.Cantidad += l.Cantidad
				continue
			}
			p, err := s.productoRepo.FindByID(ctx, l.ProductoID)
			if err != nil {
				return nil, fmt.Errorf("producto %s no encontrado", l.ProductoID)
			}
			demandaCombos[l.ProductoID] = &Demanda{Producto: p, Cantidad: l.Cantidad, Tipo: model.MovPedidoCombo}
		}

		// El combo tiene precio propio, independiente de la lista.
		subtotal := combo.Precio.Mul(decimal.NewFromInt(int64(cr.Cantidad)))
		total = total.Add(subtotal)
		lineasCombo = append(lineasCombo, lineaCombo{
			combo:             combo,
			cantidad:          cr.Cantidad,
			subtotal:          subtotal,
			personalizaciones: cr.Personalizaciones,
		})
	}

	// 3. Validación agregada: la demanda suelta y la de combos se evalúan
	// juntas contra el disponible.
	demandas := make([]Demanda, 0, len(demandaSueltas)+len(demandaCombos))
	for _, d := range demandaSueltas {
		demandas = append(demandas, *d)
	}
	for _, d := range demandaCombos {
		demandas = append(demandas, *d)
	}
	if err := s.stock.Validar(ctx, demandas); err != nil {
		return nil, err
	}

	// 4. Transacción.
	var pedido model.Pedido
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		numero := 1
		if tx != nil {
			n, err := s.repo.NextNumeroPedido(tx)
			if err != nil {
				return err
			}
			numero = n
		}

		pedido = model.Pedido{
			NumeroPedido: numero,
			Cliente:      cliente,
			Telefono:     req.Telefono,
			Estado:       model.EstadoPendiente,
			Total:        total,
			Usuario:      usuario,
		}
		for _, l := range sueltas {
			pid := l.producto.ID
			pedido.Items = append(pedido.Items, model.PedidoItem{
				ProductoID:        &pid,
				Cantidad:          l.cantidad,
				PrecioUnitario:    l.precioUnitario,
				Subtotal:          l.subtotal,
				Personalizaciones: l.personalizaciones,
			})
		}
		for _, l := range lineasCombo {
			cid := l.combo.ID
			pedido.Items = append(pedido.Items, model.PedidoItem{
				ComboID:           &cid,
				Cantidad:          l.cantidad,
				PrecioUnitario:    l.combo.Precio,
				Subtotal:          l.subtotal,
				Personalizaciones: l.personalizaciones,
			})
		}

		if tx == nil {
			return nil
		}
		if err := s.repo.CreateTx(tx, &pedido); err != nil {
			return err
		}

		motivo := fmt.Sprintf("Pedido #%d - %s", numero, cliente)
		return s.stock.ComprometerTx(tx, demandas, usuario, motivo, pedido.ID)
	})
	if txErr != nil {
		return nil, txErr
	}

	// 5. Chequeo de stock mínimo, fuera de la tx y sin bloquear la respuesta.
	if s.dispatcher != nil {
		_ = s.dispatcher.EnqueueAlertaStock(ctx, map[string]interface{}{
			"origen": fmt.Sprintf("Pedido #%d", pedido.NumeroPedido),
		})
	}

	return s.pedidoToResponse(&pedido), nil
}

// CambiarEstado avanza el pedido un paso en el ciclo de cocina. Cualquier
// otro salto, retroceso o salida de Entregado es ErrTransicionInvalida.
// El stock ya fue comprometido al crear el pedido y no se vuelve a tocar.
func (s *pedidoService) CambiarEstado(ctx context.Context, id uuid.UUID, estado string) (*dto.PedidoResponse, error) {
	pedido, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("pedido no encontrado")
	}

	siguiente, ok := transicionesPedido[pedido.Estado]
	if !ok || siguiente != estado {
		return nil, apperr.ErrTransicionInvalida
	}

	var completadoEn *time.Time
	if estado == model.EstadoEntregado {
		ahora := time.Now()
		completadoEn = &ahora
	}
	if err := s.repo.UpdateEstado(ctx, id, estado, completadoEn); err != nil {
		return nil, err
	}

	pedido.Estado = estado
	pedido.CompletadoEn = completadoEn
	return s.pedidoToResponse(pedido), nil
}

func (s *pedidoService) Obtener(ctx context.Context, id uuid.UUID) (*dto.PedidoResponse, error) {
	pedido, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("pedido no encontrado")
	}
	return s.pedidoToResponse(pedido), nil
}

func (s *pedidoService) Listar(ctx context.Context, filter dto.PedidoFilter) (*dto.PedidoListResponse, error) {
	pedidos, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	data := make([]dto.PedidoResponse, len(pedidos))
	for i := range pedidos {
		data[i] = *s.pedidoToResponse(&pedidos[i])
	}
	return &dto.PedidoListResponse{
		Data: data, Total: total, Page: filter.Page, Limit: filter.Limit,
	}, nil
}

func (s *pedidoService) pedidoToResponse(p *model.Pedido) *dto.PedidoResponse {
	resp := &dto.PedidoResponse{
		ID:           p.ID.String(),
		NumeroPedido: p.NumeroPedido,
		Cliente:      p.Cliente,
		Telefono:     p.Telefono,
		Estado:       p.Estado,
		Total:        p.Total,
		Usuario:      p.Usuario,
		CreatedAt:    p.CreatedAt.Format(time.RFC3339),
	}
	if p.CompletadoEn != nil {
		completado := p.CompletadoEn.Format(time.RFC3339)
		resp.CompletadoEn = &completado
	}
	for _, item := range p.Items {
		ir := dto.ItemPedidoResponse{
			Cantidad:          item.Cantidad,
			PrecioUnitario:    item.PrecioUnitario,
			Subtotal:          item.Subtotal,
			Personalizaciones: item.Personalizaciones,
		}
		if item.ProductoID != nil {
			pid := item.ProductoID.String()
			ir.ProductoID = &pid
			if item.Producto != nil {
				ir.Descripcion = item.Producto.Nombre
			}
		}
		if item.ComboID != nil {
			cid := item.ComboID.String()
			ir.ComboID = &cid
			if item.Combo != nil {
				ir.Descripcion = item.Combo.Nombre
			}
		}
		resp.Items = append(resp.Items, ir)
	}
	return resp
}
