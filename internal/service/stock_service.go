package service

import (
	"context"
	"fmt"
	"time"

	"github.com/GoDevDesk/dogosoft-kiosco/internal/apperr"
	"github.com/GoDevDesk/dogosoft-kiosco/internal/dto"
	"github.com/GoDevDesk/dogosoft-kiosco/internal/model"
	"github.com/GoDevDesk/dogosoft-kiosco/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Demanda es el consumo que una operación (pedido o venta) le exige a un
// producto. El tipo distingue el movimiento de auditoría que produce:
// MovPedido, MovPedidoCombo o MovVenta.
type Demanda struct {
	Producto *model.Producto
	Cantidad int
	Tipo     string
}

// StockService concentra la validación y el compromiso de stock según la
// política de cada producto:
//
//	contado     → descuenta stock propio en unidades enteras
//	por_receta  → descuenta los ingredientes de la receta en decimales
//	sin_control → no valida ni descuenta nada
//
// Validar es una lectura pura; ComprometerTx escribe dentro de la
// transacción del llamador. Entre ambos, cada operación valida el total
// agregado antes de tocar una sola fila.
type StockService interface {
	Validar(ctx context.Context, demandas []Demanda) error
	ComprometerTx(tx *gorm.DB, demandas []Demanda, usuario, motivo string, referenciaID uuid.UUID) error

	AjusteManual(ctx context.Context, productoID uuid.UUID, usuario string, req dto.AjusteManualRequest) (*dto.MovimientoStockResponse, error)
	CompraProducto(ctx context.Context, productoID uuid.UUID, usuario string, req dto.CompraProductoRequest) (*dto.MovimientoStockResponse, error)
	CompraMateriaPrima(ctx context.Context, materiaPrimaID uuid.UUID, usuario string, req dto.RegistrarCompraRequest) error

	ListarMovimientos(ctx context.Context, filter dto.MovimientoStockFilter) (*dto.MovimientoStockListResponse, error)
	ListarMovimientosMateriaPrima(ctx context.Context, materiaPrimaID uuid.UUID, page, limit int) ([]dto.MovimientoMateriaPrimaResponse, int64, error)

	// Bajo mínimo, para las alertas asíncronas.
	ProductosBajoMinimo(ctx context.Context) ([]model.Producto, error)
	MateriasPrimasBajoMinimo(ctx context.Context) ([]model.MateriaPrima, error)
}

type stockService struct {
	productoRepo   repository.ProductoRepository
	materiaRepo    repository.MateriaPrimaRepository
	recetaRepo     repository.RecetaRepository
	movimientoRepo repository.MovimientoStockRepository
}

func NewStockService(
	productoRepo repository.ProductoRepository,
	materiaRepo repository.MateriaPrimaRepository,
	recetaRepo repository.RecetaRepository,
	movimientoRepo repository.MovimientoStockRepository,
) StockService {
	return &stockService{
		productoRepo:   productoRepo,
		materiaRepo:    materiaRepo,
		recetaRepo:     recetaRepo,
		movimientoRepo: movimientoRepo,
	}
}

// ── Validación agregada ───────────────────────────────────────────────────────

// Validar compara la demanda total contra el disponible. Las demandas del
// mismo producto se suman antes de comparar (dos combos que comparten una
// gaseosa no pueden pasar la validación por separado); los productos con
// receta acumulan demanda sobre sus ingredientes, que también se agrega
// entre productos que comparten materia prima.
func (s *stockService) Validar(ctx context.Context, demandas []Demanda) error {
	porProducto := make(map[uuid.UUID]int)
	productos := make(map[uuid.UUID]*model.Producto)
	for _, d := range demandas {
		porProducto[d.Producto.ID] += d.Cantidad
		productos[d.Producto.ID] = d.Producto
	}

	porIngrediente := make(map[uuid.UUID]decimal.Decimal)
	nombresMP := make(map[uuid.UUID]string)
	disponiblesMP := make(map[uuid.UUID]decimal.Decimal)

	for pid, cantidad := range porProducto {
		p := productos[pid]
		switch p.Politica() {
		case model.StockContado:
			if p.StockActual() < cantidad {
				return &apperr.StockInsuficienteError{
					EntidadID:  p.ID,
					Entidad:    p.Nombre,
					Necesario:  decimal.NewFromInt(int64(cantidad)),
					Disponible: decimal.NewFromInt(int64(p.StockActual())),
				}
			}
		case model.StockPorReceta:
			receta := p.Receta
			if len(receta) == 0 {
				cargada, err := s.recetaRepo.FindByProductoID(ctx, pid)
				if err != nil {
					return err
				}
				receta = cargada
			}
			for _, ing := range receta {
				consumo := ing.Cantidad.Mul(decimal.NewFromInt(int64(cantidad)))
				porIngrediente[ing.MateriaPrimaID] = porIngrediente[ing.MateriaPrimaID].Add(consumo)
				if ing.MateriaPrima != nil {
					nombresMP[ing.MateriaPrimaID] = ing.MateriaPrima.Nombre
					disponiblesMP[ing.MateriaPrimaID] = ing.MateriaPrima.CantidadDisponible
				}
			}
		}
	}

	for mpID, necesario := range porIngrediente {
		disponible, ok := disponiblesMP[mpID]
		if !ok {
			mp, err := s.materiaRepo.FindByID(ctx, mpID)
			if err != nil {
				return fmt.Errorf("materia prima %s no encontrada", mpID)
			}
			disponible = mp.CantidadDisponible
			nombresMP[mpID] = mp.Nombre
		}
		if disponible.LessThan(necesario) {
			return &apperr.StockInsuficienteError{
				EntidadID:  mpID,
				Entidad:    nombresMP[mpID],
				Necesario:  necesario,
				Disponible: disponible,
			}
		}
	}
	return nil
}

// ── Compromiso ────────────────────────────────────────────────────────────────

// ComprometerTx descuenta el stock de cada demanda y agrega el movimiento
// de auditoría correspondiente, todo dentro de la tx del llamador. Emite un
// movimiento por (producto, tipo): las líneas sueltas y las provenientes de
// combos de la misma operación quedan como registros separados.
func (s *stockService) ComprometerTx(tx *gorm.DB, demandas []Demanda, usuario, motivo string, referenciaID uuid.UUID) error {
	ref := referenciaID
	for _, d := range demandas {
		switch d.Producto.Politica() {
		case model.StockContado:
			if err := s.descontarProductoTx(tx, d, usuario, motivo, &ref); err != nil {
				return err
			}
		case model.StockPorReceta:
			if err := s.descontarIngredientesTx(tx, d, usuario, motivo, &ref); err != nil {
				return err
			}
		}
		// sin_control: nada que registrar
	}
	return nil
}

func (s *stockService) descontarProductoTx(tx *gorm.DB, d Demanda, usuario, motivo string, ref *uuid.UUID) error {
	stockAntes := d.Producto.StockActual()
	if tx != nil {
		// Releer y revalidar dentro de la tx: otro pedido pudo haber movido
		// el stock entre la validación y el compromiso. El stock negativo
		// queda reservado al ajuste manual confirmado.
		actual, err := s.productoRepo.FindByIDTx(tx, d.Producto.ID)
		if err != nil {
			return err
		}
		stockAntes = actual.StockActual()
		if stockAntes < d.Cantidad {
			return &apperr.StockInsuficienteError{
				EntidadID:  d.Producto.ID,
				Entidad:    d.Producto.Nombre,
				Necesario:  decimal.NewFromInt(int64(d.Cantidad)),
				Disponible: decimal.NewFromInt(int64(stockAntes)),
			}
		}
		if err := s.productoRepo.UpdateStockTx(tx, d.Producto.ID, -d.Cantidad); err != nil {
			return fmt.Errorf("error descontando stock de %s: %w", d.Producto.Nombre, err)
		}
	}

	mov := &model.MovimientoStock{
		ProductoID:    d.Producto.ID,
		Tipo:          d.Tipo,
		Cantidad:      -d.Cantidad,
		StockAnterior: stockAntes,
		StockNuevo:    stockAntes - d.Cantidad,
		Motivo:        motivo,
		Usuario:       usuario,
		ReferenciaID:  ref,
	}
	if tx == nil {
		return nil
	}
	return s.movimientoRepo.CreateTx(tx, mov)
}

func (s *stockService) descontarIngredientesTx(tx *gorm.DB, d Demanda, usuario, motivo string, ref *uuid.UUID) error {
	if tx == nil {
		return nil
	}
	receta, err := s.recetaRepo.FindByProductoIDTx(tx, d.Producto.ID)
	if err != nil {
		return err
	}
	for _, ing := range receta {
		consumo := ing.Cantidad.Mul(decimal.NewFromInt(int64(d.Cantidad)))

		mp, err := s.materiaRepo.FindByIDTx(tx, ing.MateriaPrimaID)
		if err != nil {
			return err
		}
		// Misma revalidación que para productos: el disponible pudo bajar
		// desde la lectura pre-transacción.
		if mp.CantidadDisponible.LessThan(consumo) {
			return &apperr.StockInsuficienteError{
				EntidadID:  ing.MateriaPrimaID,
				Entidad:    mp.Nombre,
				Necesario:  consumo,
				Disponible: mp.CantidadDisponible,
			}
		}
		if err := s.materiaRepo.UpdateCantidadTx(tx, ing.MateriaPrimaID, consumo.Neg()); err != nil {
			return fmt.Errorf("error descontando ingrediente de %s: %w", d.Producto.Nombre, err)
		}

		mov := &model.MovimientoMateriaPrima{
			MateriaPrimaID:   ing.MateriaPrimaID,
			Tipo:             d.Tipo,
			Cantidad:         consumo.Neg(),
			CantidadAnterior: mp.CantidadDisponible,
			CantidadNueva:    mp.CantidadDisponible.Sub(consumo),
			Motivo:           fmt.Sprintf("%s - %s", motivo, d.Producto.Nombre),
			Usuario:          usuario,
			ReferenciaID:     ref,
		}
		if err := s.movimientoRepo.CreateMateriaPrimaTx(tx, mov); err != nil {
			return err
		}
	}
	return nil
}

// ── Ajustes y compras ─────────────────────────────────────────────────────────

// AjusteManual corrige el stock de un producto contado. Un ajuste negativo
// que dejaría el stock por debajo de cero se bloquea con
// StockInsuficienteError, salvo confirmación explícita del operador.
func (s *stockService) AjusteManual(ctx context.Context, productoID uuid.UUID, usuario string, req dto.AjusteManualRequest) (*dto.MovimientoStockResponse, error) {
	producto, err := s.productoRepo.FindByID(ctx, productoID)
	if err != nil {
		return nil, fmt.Errorf("producto no encontrado")
	}
	if producto.Politica() != model.StockContado {
		return nil, fmt.Errorf("el producto %s no controla stock propio", producto.Nombre)
	}

	delta := req.Cantidad
	if req.Tipo == model.MovAjusteMenos {
		delta = -req.Cantidad
	}

	stockAntes := producto.StockActual()
	stockNuevo := stockAntes + delta
	if stockNuevo < 0 && !req.ConfirmarNegativo {
		return nil, &apperr.StockInsuficienteError{
			EntidadID:  producto.ID,
			Entidad:    producto.Nombre,
			Necesario:  decimal.NewFromInt(int64(req.Cantidad)),
			Disponible: decimal.NewFromInt(int64(stockAntes)),
		}
	}

	var mov *model.MovimientoStock
	txErr := runTx(ctx, s.productoRepo.DB(), func(tx *gorm.DB) error {
		if tx == nil {
			return nil
		}
		// Releer dentro de la tx: el antes/después del movimiento debe
		// reflejar el stock real al momento del ajuste, no la lectura
		// previa.
		actual, err := s.productoRepo.FindByIDTx(tx, productoID)
		if err != nil {
			return err
		}
		stockAntes = actual.StockActual()
		stockNuevo = stockAntes + delta
		if stockNuevo < 0 && !req.ConfirmarNegativo {
			return &apperr.StockInsuficienteError{
				EntidadID:  producto.ID,
				Entidad:    producto.Nombre,
				Necesario:  decimal.NewFromInt(int64(req.Cantidad)),
				Disponible: decimal.NewFromInt(int64(stockAntes)),
			}
		}
		if err := s.productoRepo.UpdateStockTx(tx, productoID, delta); err != nil {
			return err
		}
		mov = &model.MovimientoStock{
			ProductoID:    productoID,
			Tipo:          req.Tipo,
			Cantidad:      delta,
			StockAnterior: stockAntes,
			StockNuevo:    stockNuevo,
			Motivo:        req.Motivo,
			Usuario:       usuario,
		}
		return s.movimientoRepo.CreateTx(tx, mov)
	})
	if txErr != nil {
		return nil, txErr
	}
	if mov == nil {
		mov = &model.MovimientoStock{
			ProductoID: productoID, Tipo: req.Tipo, Cantidad: delta,
			StockAnterior: stockAntes, StockNuevo: stockNuevo,
			Motivo: req.Motivo, Usuario: usuario,
		}
	}
	return movimientoToResponse(mov, producto.Nombre), nil
}

func (s *stockService) CompraProducto(ctx context.Context, productoID uuid.UUID, usuario string, req dto.CompraProductoRequest) (*dto.MovimientoStockResponse, error) {
	producto, err := s.productoRepo.FindByID(ctx, productoID)
	if err != nil {
		return nil, fmt.Errorf("producto no encontrado")
	}
	if producto.Politica() != model.StockContado {
		return nil, fmt.Errorf("el producto %s no controla stock propio", producto.Nombre)
	}

	var proveedorID *uuid.UUID
	if req.ProveedorID != nil {
		pid, err := uuid.Parse(*req.ProveedorID)
		if err != nil {
			return nil, fmt.Errorf("proveedor_id inválido: %w", err)
		}
		proveedorID = &pid
	}

	motivo := req.Motivo
	if motivo == "" {
		motivo = "Compra de mercadería"
	}

	stockAntes := producto.StockActual()
	var mov *model.MovimientoStock
	txErr := runTx(ctx, s.productoRepo.DB(), func(tx *gorm.DB) error {
		if tx == nil {
			return nil
		}
		if err := s.productoRepo.UpdateStockTx(tx, productoID, req.Cantidad); err != nil {
			return err
		}
		mov = &model.MovimientoStock{
			ProductoID:    productoID,
			ProveedorID:   proveedorID,
			Tipo:          model.MovCompra,
			Cantidad:      req.Cantidad,
			StockAnterior: stockAntes,
			StockNuevo:    stockAntes + req.Cantidad,
			Costo:         req.CostoUnitario,
			Motivo:        motivo,
			Usuario:       usuario,
		}
		return s.movimientoRepo.CreateTx(tx, mov)
	})
	if txErr != nil {
		return nil, txErr
	}
	if mov == nil {
		mov = &model.MovimientoStock{
			ProductoID: productoID, ProveedorID: proveedorID, Tipo: model.MovCompra,
			Cantidad: req.Cantidad, StockAnterior: stockAntes,
			StockNuevo: stockAntes + req.Cantidad, Costo: req.CostoUnitario,
			Motivo: motivo, Usuario: usuario,
		}
	}
	return movimientoToResponse(mov, producto.Nombre), nil
}

// CompraMateriaPrima suma cantidad disponible, actualiza el costo unitario
// y deja el movimiento en el libro de materias primas.
func (s *stockService) CompraMateriaPrima(ctx context.Context, materiaPrimaID uuid.UUID, usuario string, req dto.RegistrarCompraRequest) error {
	mp, err := s.materiaRepo.FindByID(ctx, materiaPrimaID)
	if err != nil {
		return fmt.Errorf("materia prima no encontrada")
	}

	var proveedorID *uuid.UUID
	if req.ProveedorID != nil {
		pid, err := uuid.Parse(*req.ProveedorID)
		if err != nil {
			return fmt.Errorf("proveedor_id inválido: %w", err)
		}
		proveedorID = &pid
	}

	motivo := req.Motivo
	if motivo == "" {
		motivo = "Compra de mercadería"
	}

	return runTx(ctx, s.materiaRepo.DB(), func(tx *gorm.DB) error {
		if tx == nil {
			return nil
		}
		if err := s.materiaRepo.UpdateCantidadTx(tx, materiaPrimaID, req.Cantidad); err != nil {
			return err
		}
		costo := req.CostoUnitario
		if err := tx.Model(&model.MateriaPrima{}).Where("id = ?", materiaPrimaID).
			Update("costo_unitario", costo).Error; err != nil {
			return err
		}
		mov := &model.MovimientoMateriaPrima{
			MateriaPrimaID:   materiaPrimaID,
			ProveedorID:      proveedorID,
			Tipo:             model.MovCompra,
			Cantidad:         req.Cantidad,
			CantidadAnterior: mp.CantidadDisponible,
			CantidadNueva:    mp.CantidadDisponible.Add(req.Cantidad),
			Costo:            &costo,
			Motivo:           motivo,
			Usuario:          usuario,
		}
		return s.movimientoRepo.CreateMateriaPrimaTx(tx, mov)
	})
}

// ── Consultas ─────────────────────────────────────────────────────────────────

func (s *stockService) ListarMovimientos(ctx context.Context, filter dto.MovimientoStockFilter) (*dto.MovimientoStockListResponse, error) {
	movimientos, total, err := s.movimientoRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	data := make([]dto.MovimientoStockResponse, len(movimientos))
	for i, m := range movimientos {
		nombre := ""
		if m.Producto != nil {
			nombre = m.Producto.Nombre
		}
		data[i] = *movimientoToResponse(&m, nombre)
	}
	return &dto.MovimientoStockListResponse{
		Data: data, Total: total, Page: filter.Page, Limit: filter.Limit,
	}, nil
}

func (s *stockService) ListarMovimientosMateriaPrima(ctx context.Context, materiaPrimaID uuid.UUID, page, limit int) ([]dto.MovimientoMateriaPrimaResponse, int64, error) {
	movimientos, total, err := s.movimientoRepo.ListMateriaPrima(ctx, materiaPrimaID, page, limit)
	if err != nil {
		return nil, 0, err
	}
	data := make([]dto.MovimientoMateriaPrimaResponse, len(movimientos))
	for i, m := range movimientos {
		nombre := ""
		if m.MateriaPrima != nil {
			nombre = m.MateriaPrima.Nombre
		}
		data[i] = dto.MovimientoMateriaPrimaResponse{
			ID:               m.ID.String(),
			MateriaPrimaID:   m.MateriaPrimaID.String(),
			MateriaPrima:     nombre,
			Tipo:             m.Tipo,
			Cantidad:         m.Cantidad,
			CantidadAnterior: m.CantidadAnterior,
			CantidadNueva:    m.CantidadNueva,
			Motivo:           m.Motivo,
			Usuario:          m.Usuario,
			CreatedAt:        m.CreatedAt.Format(time.RFC3339),
		}
	}
	return data, total, nil
}

func (s *stockService) ProductosBajoMinimo(ctx context.Context) ([]model.Producto, error) {
	var productos []model.Producto
	err := s.productoRepo.DB().WithContext(ctx).
		Where("activo = true AND controla_stock = true AND stock_minimo IS NOT NULL AND stock <= stock_minimo").
		Find(&productos).Error
	return productos, err
}

func (s *stockService) MateriasPrimasBajoMinimo(ctx context.Context) ([]model.MateriaPrima, error) {
	var materias []model.MateriaPrima
	err := s.materiaRepo.DB().WithContext(ctx).
		Where("activa = true AND es_ingrediente = true AND cantidad_minima IS NOT NULL AND cantidad_disponible <= cantidad_minima").
		Find(&materias).Error
	return materias, err
}

func movimientoToResponse(m *model.MovimientoStock, producto string) *dto.MovimientoStockResponse {
	createdAt := m.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}
	return &dto.MovimientoStockResponse{
		ID:            m.ID.String(),
		ProductoID:    m.ProductoID.String(),
		Producto:      producto,
		Tipo:          m.Tipo,
		Cantidad:      m.Cantidad,
		StockAnterior: m.StockAnterior,
		StockNuevo:    m.StockNuevo,
		Costo:         m.Costo,
		Motivo:        m.Motivo,
		Usuario:       m.Usuario,
		CreatedAt:     createdAt.Format(time.RFC3339),
	}
}
