package service

import (
	"context"
	"fmt"

	"github.com/GoDevDesk/dogosoft-kiosco/internal/dto"
	"github.com/GoDevDesk/dogosoft-kiosco/internal/model"
	"github.com/GoDevDesk/dogosoft-kiosco/internal/repository"

	"github.com/google/uuid"
)

type CategoriaService interface {
	Crear(ctx context.Context, req dto.CrearCategoriaRequest) (*dto.CategoriaResponse, error)
	Listar(ctx context.Context) ([]dto.CategoriaResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarCategoriaRequest) (*dto.CategoriaResponse, error)
	Desactivar(ctx context.Context, id uuid.UUID) error
}

type categoriaService struct {
	repo repository.CategoriaRepository
}

func NewCategoriaService(repo repository.CategoriaRepository) CategoriaService {
	return &categoriaService{repo: repo}
}

func (s *categoriaService) Crear(ctx context.Context, req dto.CrearCategoriaRequest) (*dto.CategoriaResponse, error) {
	categoria := &model.Categoria{
		Nombre:      req.Nombre,
		Descripcion: req.Descripcion,
		Activa:      true,
	}
	if err := s.repo.Create(ctx, categoria); err != nil {
		return nil, err
	}
	return categoriaToResponse(categoria), nil
}

func (s *categoriaService) Listar(ctx context.Context) ([]dto.CategoriaResponse, error) {
	categorias, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.CategoriaResponse, len(categorias))
	for i := range categorias {
		resp[i] = *categoriaToResponse(&categorias[i])
	}
	return resp, nil
}

func (s *categoriaService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarCategoriaRequest) (*dto.CategoriaResponse, error) {
	categoria, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("categoría no encontrada")
	}
	if req.Nombre != "" {
		categoria.Nombre = req.Nombre
	}
	if req.Descripcion != nil {
		categoria.Descripcion = req.Descripcion
	}
	if err := s.repo.Update(ctx, categoria); err != nil {
		return nil, err
	}
	return categoriaToResponse(categoria), nil
}

func (s *categoriaService) Desactivar(ctx context.Context, id uuid.UUID) error {
	return s.repo.SoftDelete(ctx, id)
}

func categoriaToResponse(c *model.Categoria) *dto.CategoriaResponse {
	return &dto.CategoriaResponse{
		ID:          c.ID.String(),
		Nombre:      c.Nombre,
		Descripcion: c.Descripcion,
		Activa:      c.Activa,
	}
}
