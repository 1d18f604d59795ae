package service

import (
	"context"
	"errors"
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

// PrecioService resuelve precios contra listas y mantiene las entradas de
// precio y su historial. La resolución nunca devuelve 0 como sustituto de
// "sin precio": la ausencia es siempre ErrSinPrecioEnLista.
type PrecioService interface {
	ResolverPrecio(ctx context.Context, productoID, listaID uuid.UUID) (*model.PrecioProducto, error)
	ConsultarPorCodigo(ctx context.Context, codigo string, listaID uuid.UUID) (*dto.ConsultaPrecioResponse, error)
	FijarPrecio(ctx context.Context, listaID uuid.UUID, req dto.FijarPrecioRequest) (*dto.PrecioProductoResponse, error)
	ListarPrecios(ctx context.Context, listaID uuid.UUID) ([]dto.PrecioProductoResponse, error)
	ActualizacionMasiva(ctx context.Context, listaID uuid.UUID, req dto.ActualizacionMasivaRequest) (*dto.ActualizacionMasivaResponse, error)
	ReresolverLineas(ctx context.Context, listaID uuid.UUID, req dto.ReresolverPreciosRequest) ([]dto.LineaReresueltaResponse, error)
	HistorialPorProducto(ctx context.Context, productoID uuid.UUID, page, limit int) (*dto.HistorialPrecioListResponse, error)
	HistorialPorProveedor(ctx context.Context, proveedorID uuid.UUID, page, limit int) (*dto.HistorialPrecioListResponse, error)
}

type precioService struct {
	listaRepo     repository.ListaPrecioRepository
	productoRepo  repository.ProductoRepository
	historialRepo repository.HistorialPrecioRepository
}

func NewPrecioService(
	listaRepo repository.ListaPrecioRepository,
	productoRepo repository.ProductoRepository,
	historialRepo repository.HistorialPrecioRepository,
) PrecioService {
	return &precioService{
		listaRepo:     listaRepo,
		productoRepo:  productoRepo,
		historialRepo: historialRepo,
	}
}

func (s *precioService) ResolverPrecio(ctx context.Context, productoID, listaID uuid.UUID) (*model.PrecioProducto, error) {
	precio, err := s.listaRepo.FindPrecio(ctx, productoID, listaID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrSinPrecioEnLista
		}
		return nil, err
	}
	return precio, nil
}

func (s *precioService) ConsultarPorCodigo(ctx context.Context, codigo string, listaID uuid.UUID) (*dto.ConsultaPrecioResponse, error) {
	producto, err := s.productoRepo.FindByCodigo(ctx, codigo)
	if err != nil {
		return nil, fmt.Errorf("producto con código %s no encontrado", codigo)
	}
	lista, err := s.listaRepo.FindByID(ctx, listaID)
	if err != nil {
		return nil, fmt.Errorf("lista de precios no encontrada")
	}
	precio, err := s.ResolverPrecio(ctx, producto.ID, listaID)
	if err != nil {
		return nil, err
	}
	return &dto.ConsultaPrecioResponse{
		Nombre:          producto.Nombre,
		PrecioVenta:     precio.PrecioVenta,
		StockDisponible: producto.StockActual(),
		ListaPrecio:     lista.Nombre,
	}, nil
}

// FijarPrecio crea la entrada (producto, lista) la primera vez y la muta en
// el lugar después. Cada cambio agrega una fila al historial.
func (s *precioService) FijarPrecio(ctx context.Context, listaID uuid.UUID, req dto.FijarPrecioRequest) (*dto.PrecioProductoResponse, error) {
	productoID, err := uuid.Parse(req.ProductoID)
	if err != nil {
		return nil, fmt.Errorf("producto_id inválido: %w", err)
	}
	producto, err := s.productoRepo.FindByID(ctx, productoID)
	if err != nil {
		return nil, fmt.Errorf("producto no encontrado")
	}
	if _, err := s.listaRepo.FindByID(ctx, listaID); err != nil {
		return nil, fmt.Errorf("lista de precios no encontrada")
	}

	ahora := time.Now()
	precio, err := s.listaRepo.FindPrecio(ctx, productoID, listaID)

	var costoAntes, ventaAntes decimal.Decimal
	switch {
	case err == nil:
		costoAntes = precio.PrecioCosto
		ventaAntes = precio.PrecioVenta
		precio.PrecioCosto = req.PrecioCosto
		precio.PrecioVenta = req.PrecioVenta
		precio.PorcentajeUtilidad = req.PorcentajeUtilidad
		precio.UltimaActualizacion = ahora
	case errors.Is(err, gorm.ErrRecordNotFound):
		precio = &model.PrecioProducto{
			ProductoID:          productoID,
			ListaPrecioID:       listaID,
			PrecioCosto:         req.PrecioCosto,
			PrecioVenta:         req.PrecioVenta,
			PorcentajeUtilidad:  req.PorcentajeUtilidad,
			UltimaActualizacion: ahora,
		}
	default:
		return nil, err
	}

	txErr := runTx(ctx, s.listaRepo.DB(), func(tx *gorm.DB) error {
		if tx == nil {
			return s.listaRepo.SavePrecio(ctx, precio)
		}
		if err := s.listaRepo.SavePrecioTx(tx, precio); err != nil {
			return err
		}
		hist := &model.HistorialPrecio{
			ProductoID:         productoID,
			ListaPrecioID:      listaID,
			ProveedorID:        producto.ProveedorID,
			CostoAntes:         costoAntes,
			CostoDespues:       req.PrecioCosto,
			VentaAntes:         ventaAntes,
			VentaDespues:       req.PrecioVenta,
			PorcentajeAplicado: req.PorcentajeUtilidad,
			Motivo:             "manual",
		}
		return s.historialRepo.CreateTx(tx, hist)
	})
	if txErr != nil {
		return nil, txErr
	}

	return precioToResponse(precio, producto.Nombre), nil
}

func (s *precioService) ListarPrecios(ctx context.Context, listaID uuid.UUID) ([]dto.PrecioProductoResponse, error) {
	precios, err := s.listaRepo.ListPrecios(ctx, listaID)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.PrecioProductoResponse, len(precios))
	for i, p := range precios {
		nombre := ""
		if p.Producto != nil {
			nombre = p.Producto.Nombre
		}
		resp[i] = *precioToResponse(&p, nombre)
	}
	return resp, nil
}

// ActualizacionMasiva aplica un porcentaje al costo de todos los productos
// del proveedor en la lista y recalcula los precios de venta con la utilidad
// guardada de cada entrada:
//
//	costo' = round(costo * (1 + pct/100), 2)
//	venta' = round(costo' * (1 + utilidad/100), 2)
//
// Todos los precios y sus filas de historial se escriben en una única
// transacción: o se actualiza el proveedor completo o nada.
func (s *precioService) ActualizacionMasiva(ctx context.Context, listaID uuid.UUID, req dto.ActualizacionMasivaRequest) (*dto.ActualizacionMasivaResponse, error) {
	proveedorID, err := uuid.Parse(req.ProveedorID)
	if err != nil {
		return nil, fmt.Errorf("proveedor_id inválido: %w", err)
	}
	if req.Porcentaje.LessThanOrEqual(cien.Neg()) {
		return nil, apperr.ErrPorcentajeInvalido
	}

	precios, err := s.listaRepo.PreciosPorProveedor(ctx, listaID, proveedorID)
	if err != nil {
		return nil, err
	}
	if len(precios) == 0 {
		return &dto.ActualizacionMasivaResponse{ProductosActualizados: 0}, nil
	}

	factor := decimal.NewFromInt(1).Add(req.Porcentaje.Div(cien))
	ahora := time.Now()

	txErr := runTx(ctx, s.listaRepo.DB(), func(tx *gorm.DB) error {
		for i := range precios {
			p := &precios[i]
			costoAntes := p.PrecioCosto
			ventaAntes := p.PrecioVenta

			p.PrecioCosto = costoAntes.Mul(factor).Round(2)
			utilFactor := decimal.NewFromInt(1).Add(p.PorcentajeUtilidad.Div(cien))
			p.PrecioVenta = p.PrecioCosto.Mul(utilFactor).Round(2)
			p.UltimaActualizacion = ahora

			if err := s.listaRepo.SavePrecioTx(tx, p); err != nil {
				return err
			}

			hist := &model.HistorialPrecio{
				ProductoID:         p.ProductoID,
				ListaPrecioID:      listaID,
				ProveedorID:        &proveedorID,
				CostoAntes:         costoAntes,
				CostoDespues:       p.PrecioCosto,
				VentaAntes:         ventaAntes,
				VentaDespues:       p.PrecioVenta,
				PorcentajeAplicado: req.Porcentaje,
				Motivo:             "actualizacion_masiva",
			}
			if err := s.historialRepo.CreateTx(tx, hist); err != nil {
				return err
			}
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	return &dto.ActualizacionMasivaResponse{ProductosActualizados: len(precios)}, nil
}

// ReresolverLineas recalcula los precios de líneas abiertas contra otra
// lista. Las líneas sin precio en la lista destino conservan su precio
// anterior y se marcan con SinPrecio para que el operador decida.
func (s *precioService) ReresolverLineas(ctx context.Context, listaID uuid.UUID, req dto.ReresolverPreciosRequest) ([]dto.LineaReresueltaResponse, error) {
	resp := make([]dto.LineaReresueltaResponse, 0, len(req.Lineas))
	for _, linea := range req.Lineas {
		productoID, err := uuid.Parse(linea.ProductoID)
		if err != nil {
			return nil, fmt.Errorf("producto_id inválido: %w", err)
		}

		precio, err := s.listaRepo.FindPrecio(ctx, productoID, listaID)
		switch {
		case err == nil:
			resp = append(resp, dto.LineaReresueltaResponse{
				ProductoID:     linea.ProductoID,
				PrecioUnitario: precio.PrecioVenta,
			})
		case errors.Is(err, gorm.ErrRecordNotFound):
			resp = append(resp, dto.LineaReresueltaResponse{
				ProductoID:     linea.ProductoID,
				PrecioUnitario: linea.PrecioUnitario,
				SinPrecio:      true,
			})
		default:
			return nil, err
		}
	}
	return resp, nil
}

func (s *precioService) HistorialPorProducto(ctx context.Context, productoID uuid.UUID, page, limit int) (*dto.HistorialPrecioListResponse, error) {
	items, total, err := s.historialRepo.ListByProducto(ctx, productoID, page, limit)
	if err != nil {
		return nil, err
	}
	return historialToResponse(items, total, page, limit), nil
}

func (s *precioService) HistorialPorProveedor(ctx context.Context, proveedorID uuid.UUID, page, limit int) (*dto.HistorialPrecioListResponse, error) {
	items, total, err := s.historialRepo.ListByProveedor(ctx, proveedorID, page, limit)
	if err != nil {
		return nil, err
	}
	return historialToResponse(items, total, page, limit), nil
}

func precioToResponse(p *model.PrecioProducto, nombre string) *dto.PrecioProductoResponse {
	return &dto.PrecioProductoResponse{
		ProductoID:          p.ProductoID.String(),
		Producto:            nombre,
		ListaPrecioID:       p.ListaPrecioID.String(),
		PrecioCosto:         p.PrecioCosto,
		PrecioVenta:         p.PrecioVenta,
		PorcentajeUtilidad:  p.PorcentajeUtilidad,
		UltimaActualizacion: p.UltimaActualizacion.Format(time.RFC3339),
	}
}

func historialToResponse(items []model.HistorialPrecio, total int64, page, limit int) *dto.HistorialPrecioListResponse {
	data := make([]dto.HistorialPrecioItem, len(items))
	for i, h := range items {
		var proveedorID *string
		if h.ProveedorID != nil {
			s := h.ProveedorID.String()
			proveedorID = &s
		}
		data[i] = dto.HistorialPrecioItem{
			ID:                 h.ID.String(),
			ProductoID:         h.ProductoID.String(),
			ListaPrecioID:      h.ListaPrecioID.String(),
			ProveedorID:        proveedorID,
			CostoAntes:         h.CostoAntes,
			CostoDespues:       h.CostoDespues,
			VentaAntes:         h.VentaAntes,
			VentaDespues:       h.VentaDespues,
			PorcentajeAplicado: h.PorcentajeAplicado,
			Motivo:             h.Motivo,
			CreatedAt:          h.CreatedAt.Format(time.RFC3339),
		}
	}
	return &dto.HistorialPrecioListResponse{Data: data, Total: total, Page: page, Limit: limit}
}
