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

type ListaPrecioService interface {
	Crear(ctx context.Context, req dto.CrearListaPrecioRequest) (*dto.ListaPrecioResponse, error)
	Obtener(ctx context.Context, id uuid.UUID) (*dto.ListaPrecioResponse, error)
	Listar(ctx context.Context) ([]dto.ListaPrecioResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarListaPrecioRequest) (*dto.ListaPrecioResponse, error)
	Eliminar(ctx context.Context, id uuid.UUID) error
}

type listaPrecioService struct {
	repo repository.ListaPrecioRepository
}

func NewListaPrecioService(repo repository.ListaPrecioRepository) ListaPrecioService {
	return &listaPrecioService{repo: repo}
}

func (s *listaPrecioService) Crear(ctx context.Context, req dto.CrearListaPrecioRequest) (*dto.ListaPrecioResponse, error) {
	if _, err := s.repo.FindByNombre(ctx, req.Nombre); err == nil {
		return nil, apperr.ErrCodigoDuplicado
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	lista := &model.ListaPrecio{
		Nombre:      req.Nombre,
		Descripcion: req.Descripcion,
		Activa:      true,
		Protegida:   req.Protegida,
	}
	if err := s.repo.Create(ctx, lista); err != nil {
		return nil, err
	}
	return listaToResponse(lista), nil
}

func (s *listaPrecioService) Obtener(ctx context.Context, id uuid.UUID) (*dto.ListaPrecioResponse, error) {
	lista, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("lista de precios no encontrada")
	}
	return listaToResponse(lista), nil
}

func (s *listaPrecioService) Listar(ctx context.Context) ([]dto.ListaPrecioResponse, error) {
	listas, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.ListaPrecioResponse, len(listas))
	for i := range listas {
		resp[i] = *listaToResponse(&listas[i])
	}
	return resp, nil
}

// Actualizar permite editar descripción y estado siempre; el nombre de una
// lista protegida es inmutable.
func (s *listaPrecioService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarListaPrecioRequest) (*dto.ListaPrecioResponse, error) {
	lista, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("lista de precios no encontrada")
	}

	if req.Nombre != "" && req.Nombre != lista.Nombre {
		if lista.Protegida {
			return nil, apperr.ErrListaProtegida
		}
		lista.Nombre = req.Nombre
	}
	if req.Descripcion != nil {
		lista.Descripcion = req.Descripcion
	}
	if req.Activa != nil {
		lista.Activa = *req.Activa
	}

	if err := s.repo.Update(ctx, lista); err != nil {
		return nil, err
	}
	return listaToResponse(lista), nil
}

// Eliminar borra la lista y sus precios. Las listas protegidas no se
// eliminan nunca.
func (s *listaPrecioService) Eliminar(ctx context.Context, id uuid.UUID) error {
	lista, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("lista de precios no encontrada")
	}
	if lista.Protegida {
		return apperr.ErrListaProtegida
	}
	return s.repo.Delete(ctx, id)
}

func listaToResponse(l *model.ListaPrecio) *dto.ListaPrecioResponse {
	return &dto.ListaPrecioResponse{
		ID:          l.ID.String(),
		Nombre:      l.Nombre,
		Descripcion: l.Descripcion,
		Activa:      l.Activa,
		Protegida:   l.Protegida,
	}
}
