package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/GoDevDesk/dogosoft-kiosco/internal/apperr"
	"github.com/GoDevDesk/dogosoft-kiosco/internal/dto"
	"github.com/GoDevDesk/dogosoft-kiosco/internal/model"
	"github.com/GoDevDesk/dogosoft-kiosco/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProductoService interface {
	Crear(ctx context.Context, req dto.CrearProductoRequest) (*dto.ProductoResponse, error)
	Obtener(ctx context.Context, id uuid.UUID) (*dto.ProductoResponse, error)
	Listar(ctx context.Context, filter dto.ProductoFilter) (*dto.ProductoListResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarProductoRequest) (*dto.ProductoResponse, error)
	Desactivar(ctx context.Context, id uuid.UUID) error
	Reactivar(ctx context.Context, id uuid.UUID) error

	GuardarReceta(ctx context.Context, id uuid.UUID, req dto.GuardarRecetaRequest) error
	ObtenerReceta(ctx context.Context, id uuid.UUID) ([]dto.IngredienteRecetaResponse, error)
}

type productoService struct {
	repo        repository.ProductoRepository
	materiaRepo repository.MateriaPrimaRepository
	recetaRepo  repository.RecetaRepository
	comboRepo   repository.ComboRepository
}

func NewProductoService(
	repo repository.ProductoRepository,
	materiaRepo repository.MateriaPrimaRepository,
	recetaRepo repository.RecetaRepository,
	comboRepo repository.ComboRepository,
) ProductoService {
	return &productoService{
		repo:        repo,
		materiaRepo: materiaRepo,
		recetaRepo:  recetaRepo,
		comboRepo:   comboRepo,
	}
}

func (s *productoService) Crear(ctx context.Context, req dto.CrearProductoRequest) (*dto.ProductoResponse, error) {
	if req.ControlaStock && req.TieneReceta {
		return nil, fmt.Errorf("un producto con receta no puede controlar stock propio")
	}

	if _, err := s.repo.FindByCodigo(ctx, req.Codigo); err == nil {
		return nil, apperr.ErrCodigoDuplicado
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	producto := &model.Producto{
		Codigo:        req.Codigo,
		Nombre:        req.Nombre,
		ControlaStock: req.ControlaStock,
		Stock:         req.Stock,
		StockMinimo:   req.StockMinimo,
		StockMaximo:   req.StockMaximo,
		TieneReceta:   req.TieneReceta,
		UnidadVenta:   req.UnidadVenta,
		Observacion:   req.Observacion,
		Activo:        true,
	}
	if producto.UnidadVenta == "" {
		producto.UnidadVenta = "UN"
	}
	if req.ControlaStock && producto.Stock == nil {
		cero := 0
		producto.Stock = &cero
	}
	if req.CategoriaID != nil {
		cid, err := uuid.Parse(*req.CategoriaID)
		if err != nil {
			return nil, fmt.Errorf("categoria_id inválido: %w", err)
		}
		producto.CategoriaID = &cid
	}
	if req.ProveedorID != nil {
		pid, err := uuid.Parse(*req.ProveedorID)
		if err != nil {
			return nil, fmt.Errorf("proveedor_id inválido: %w", err)
		}
		producto.ProveedorID = &pid
	}

	if err := s.repo.Create(ctx, producto); err != nil {
		return nil, err
	}
	return productoToResponse(producto), nil
}

func (s *productoService) Obtener(ctx context.Context, id uuid.UUID) (*dto.ProductoResponse, error) {
	producto, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("producto no encontrado")
	}
	return productoToResponse(producto), nil
}

func (s *productoService) Listar(ctx context.Context, filter dto.ProductoFilter) (*dto.ProductoListResponse, error) {
	productos, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	data := make([]dto.ProductoResponse, len(productos))
	for i := range productos {
		data[i] = *productoToResponse(&productos[i])
	}
	return &dto.ProductoListResponse{
		Data: data, Total: total, Page: filter.Page, Limit: filter.Limit,
	}, nil
}

func (s *productoService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarProductoRequest) (*dto.ProductoResponse, error) {
	producto, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("producto no encontrado")
	}

	if req.Nombre != "" {
		producto.Nombre = req.Nombre
	}
	if req.StockMinimo != nil {
		producto.StockMinimo = req.StockMinimo
	}
	if req.StockMaximo != nil {
		producto.StockMaximo = req.StockMaximo
	}
	if req.UnidadVenta != "" {
		producto.UnidadVenta = req.UnidadVenta
	}
	if req.Observacion != nil {
		producto.Observacion = req.Observacion
	}
	if req.CategoriaID != nil {
		cid, err := uuid.Parse(*req.CategoriaID)
		if err != nil {
			return nil, fmt.Errorf("categoria_id inválido: %w", err)
		}
		producto.CategoriaID = &cid
	}
	if req.ProveedorID != nil {
		pid, err := uuid.Parse(*req.ProveedorID)
		if err != nil {
			return nil, fmt.Errorf("proveedor_id inválido: %w", err)
		}
		producto.ProveedorID = &pid
	}

	producto.Receta = nil
	if err := s.repo.Update(ctx, producto); err != nil {
		return nil, err
	}
	return productoToResponse(producto), nil
}

// Desactivar es una baja lógica. Se bloquea mientras algún combo activo
// referencie al producto, como componente o como alternativa.
func (s *productoService) Desactivar(ctx context.Context, id uuid.UUID) error {
	producto, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("producto no encontrado")
	}

	enCombos, err := s.comboRepo.CountByProducto(ctx, id)
	if err != nil {
		return err
	}
	if enCombos > 0 {
		return &apperr.EntidadEnUsoError{EntidadID: id, Entidad: producto.Nombre, UsadaPor: "combos"}
	}

	return s.repo.SoftDelete(ctx, id)
}

func (s *productoService) Reactivar(ctx context.Context, id uuid.UUID) error {
	return s.repo.Reactivar(ctx, id)
}

// ── Recetas ───────────────────────────────────────────────────────────────────

// GuardarReceta reemplaza la receta completa. Solo admite materias primas
// activas marcadas como ingrediente.
func (s *productoService) GuardarReceta(ctx context.Context, id uuid.UUID, req dto.GuardarRecetaRequest) error {
	producto, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("producto no encontrado")
	}
	if !producto.TieneReceta {
		return fmt.Errorf("el producto %s no está marcado como elaborado", producto.Nombre)
	}

	ingredientes := make([]model.RecetaProducto, 0, len(req.Ingredientes))
	vistos := make(map[uuid.UUID]bool)
	for _, ing := range req.Ingredientes {
		mpID, err := uuid.Parse(ing.MateriaPrimaID)
		if err != nil {
			return fmt.Errorf("materia_prima_id inválido: %w", err)
		}
		if vistos[mpID] {
			return fmt.Errorf("la materia prima %s aparece repetida en la receta", ing.MateriaPrimaID)
		}
		vistos[mpID] = true

		mp, err := s.materiaRepo.FindByID(ctx, mpID)
		if err != nil {
			return fmt.Errorf("materia prima %s no encontrada", ing.MateriaPrimaID)
		}
		if !mp.Activa {
			return fmt.Errorf("la materia prima %s está inactiva", mp.Nombre)
		}
		if !mp.EsIngrediente {
			return fmt.Errorf("la materia prima %s no es un ingrediente", mp.Nombre)
		}

		ingredientes = append(ingredientes, model.RecetaProducto{
			ProductoID:     id,
			MateriaPrimaID: mpID,
			Cantidad:       ing.Cantidad,
		})
	}

	return s.recetaRepo.Replace(ctx, id, ingredientes)
}

func (s *productoService) ObtenerReceta(ctx context.Context, id uuid.UUID) ([]dto.IngredienteRecetaResponse, error) {
	receta, err := s.recetaRepo.FindByProductoID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.IngredienteRecetaResponse, len(receta))
	for i, ing := range receta {
		ir := dto.IngredienteRecetaResponse{
			MateriaPrimaID: ing.MateriaPrimaID.String(),
			Cantidad:       ing.Cantidad,
		}
		if ing.MateriaPrima != nil {
			ir.MateriaPrima = ing.MateriaPrima.Nombre
			ir.Unidad = ing.MateriaPrima.Unidad
		}
		resp[i] = ir
	}
	return resp, nil
}

func productoToResponse(p *model.Producto) *dto.ProductoResponse {
	resp := &dto.ProductoResponse{
		ID:            p.ID.String(),
		Codigo:        p.Codigo,
		Nombre:        p.Nombre,
		ControlaStock: p.ControlaStock,
		Stock:         p.Stock,
		StockMinimo:   p.StockMinimo,
		StockMaximo:   p.StockMaximo,
		TieneReceta:   p.TieneReceta,
		PoliticaStock: string(p.Politica()),
		UnidadVenta:   p.UnidadVenta,
		Activo:        p.Activo,
	}
	if p.CategoriaID != nil {
		cid := p.CategoriaID.String()
		resp.CategoriaID = &cid
	}
	if p.ProveedorID != nil {
		pid := p.ProveedorID.String()
		resp.ProveedorID = &pid
	}
	return resp
}
