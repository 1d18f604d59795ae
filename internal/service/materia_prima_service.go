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

type MateriaPrimaService interface {
	Crear(ctx context.Context, req dto.CrearMateriaPrimaRequest) (*dto.MateriaPrimaResponse, error)
	Obtener(ctx context.Context, id uuid.UUID) (*dto.MateriaPrimaResponse, error)
	Listar(ctx context.Context, filter dto.MateriaPrimaFilter) (*dto.MateriaPrimaListResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarMateriaPrimaRequest) (*dto.MateriaPrimaResponse, error)
	Desactivar(ctx context.Context, id uuid.UUID) error
}

type materiaPrimaService struct {
	repo       repository.MateriaPrimaRepository
	recetaRepo repository.RecetaRepository
}

func NewMateriaPrimaService(repo repository.MateriaPrimaRepository, recetaRepo repository.RecetaRepository) MateriaPrimaService {
	return &materiaPrimaService{repo: repo, recetaRepo: recetaRepo}
}

func (s *materiaPrimaService) Crear(ctx context.Context, req dto.CrearMateriaPrimaRequest) (*dto.MateriaPrimaResponse, error) {
	if _, err := s.repo.FindByCodigo(ctx, req.Codigo); err == nil {
		return nil, apperr.ErrCodigoDuplicado
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	mp := &model.MateriaPrima{
		Codigo:         req.Codigo,
		Nombre:         req.Nombre,
		Descripcion:    req.Descripcion,
		EsIngrediente:  req.EsIngrediente,
		Unidad:         req.Unidad,
		CantidadMinima: req.CantidadMinima,
		CantidadMaxima: req.CantidadMaxima,
		CostoUnitario:  req.CostoUnitario,
		Activa:         true,
	}
	if req.CategoriaID != nil {
		cid, err := uuid.Parse(*req.CategoriaID)
		if err != nil {
			return nil, fmt.Errorf("categoria_id inválido: %w", err)
		}
		mp.CategoriaID = &cid
	}
	if req.ProveedorID != nil {
		pid, err := uuid.Parse(*req.ProveedorID)
		if err != nil {
			return nil, fmt.Errorf("proveedor_id inválido: %w", err)
		}
		mp.ProveedorID = &pid
	}

	if err := s.repo.Create(ctx, mp); err != nil {
		return nil, err
	}
	return materiaPrimaToResponse(mp), nil
}

func (s *materiaPrimaService) Obtener(ctx context.Context, id uuid.UUID) (*dto.MateriaPrimaResponse, error) {
	mp, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("materia prima no encontrada")
	}
	return materiaPrimaToResponse(mp), nil
}

func (s *materiaPrimaService) Listar(ctx context.Context, filter dto.MateriaPrimaFilter) (*dto.MateriaPrimaListResponse, error) {
	materias, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	data := make([]dto.MateriaPrimaResponse, len(materias))
	for i := range materias {
		data[i] = *materiaPrimaToResponse(&materias[i])
	}
	return &dto.MateriaPrimaListResponse{
		Data: data, Total: total, Page: filter.Page, Limit: filter.Limit,
	}, nil
}

// Actualizar permite editar los datos de la materia prima. Quitarle la
// marca de ingrediente se bloquea mientras recetas de productos activos la
// referencien.
func (s *materiaPrimaService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarMateriaPrimaRequest) (*dto.MateriaPrimaResponse, error) {
	mp, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("materia prima no encontrada")
	}

	if req.EsIngrediente != nil && !*req.EsIngrediente && mp.EsIngrediente {
		enRecetas, err := s.recetaRepo.CountByMateriaPrima(ctx, id)
		if err != nil {
			return nil, err
		}
		if enRecetas > 0 {
			return nil, &apperr.EntidadEnUsoError{EntidadID: id, Entidad: mp.Nombre, UsadaPor: "recetas"}
		}
		mp.EsIngrediente = false
	} else if req.EsIngrediente != nil && *req.EsIngrediente {
		mp.EsIngrediente = true
	}

	if req.Nombre != "" {
		mp.Nombre = req.Nombre
	}
	if req.Descripcion != nil {
		mp.Descripcion = req.Descripcion
	}
	if req.Unidad != "" {
		mp.Unidad = req.Unidad
	}
	if req.CantidadMinima != nil {
		mp.CantidadMinima = req.CantidadMinima
	}
	if req.CantidadMaxima != nil {
		mp.CantidadMaxima = req.CantidadMaxima
	}
	if req.CostoUnitario != nil {
		mp.CostoUnitario = req.CostoUnitario
	}
	if req.ProveedorID != nil {
		pid, err := uuid.Parse(*req.ProveedorID)
		if err != nil {
			return nil, fmt.Errorf("proveedor_id inválido: %w", err)
		}
		mp.ProveedorID = &pid
	}

	if err := s.repo.Update(ctx, mp); err != nil {
		return nil, err
	}
	return materiaPrimaToResponse(mp), nil
}

// Desactivar se bloquea mientras recetas de productos activos usen la
// materia prima.
func (s *materiaPrimaService) Desactivar(ctx context.Context, id uuid.UUID) error {
	mp, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("materia prima no encontrada")
	}

	enRecetas, err := s.recetaRepo.CountByMateriaPrima(ctx, id)
	if err != nil {
		return err
	}
	if enRecetas > 0 {
		return &apperr.EntidadEnUsoError{EntidadID: id, Entidad: mp.Nombre, UsadaPor: "recetas"}
	}

	return s.repo.SoftDelete(ctx, id)
}

func materiaPrimaToResponse(mp *model.MateriaPrima) *dto.MateriaPrimaResponse {
	resp := &dto.MateriaPrimaResponse{
		ID:                 mp.ID.String(),
		Codigo:             mp.Codigo,
		Nombre:             mp.Nombre,
		EsIngrediente:      mp.EsIngrediente,
		Unidad:             mp.Unidad,
		CantidadDisponible: mp.CantidadDisponible,
		CantidadMinima:     mp.CantidadMinima,
		CantidadMaxima:     mp.CantidadMaxima,
		CostoUnitario:      mp.CostoUnitario,
		Activa:             mp.Activa,
	}
	if mp.ProveedorID != nil {
		pid := mp.ProveedorID.String()
		resp.ProveedorID = &pid
	}
	return resp
}
