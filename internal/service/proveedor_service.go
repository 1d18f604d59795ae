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

type ProveedorService interface {
	Crear(ctx context.Context, req dto.CrearProveedorRequest) (*dto.ProveedorResponse, error)
	Obtener(ctx context.Context, id uuid.UUID) (*dto.ProveedorResponse, error)
	Listar(ctx context.Context) ([]dto.ProveedorResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarProveedorRequest) (*dto.ProveedorResponse, error)
	Desactivar(ctx context.Context, id uuid.UUID) error
}

type proveedorService struct {
	repo         repository.ProveedorRepository
	productoRepo repository.ProductoRepository
}

func NewProveedorService(repo repository.ProveedorRepository, productoRepo repository.ProductoRepository) ProveedorService {
	return &proveedorService{repo: repo, productoRepo: productoRepo}
}

func (s *proveedorService) Crear(ctx context.Context, req dto.CrearProveedorRequest) (*dto.ProveedorResponse, error) {
	if _, err := s.repo.FindByCUIT(ctx, req.CUIT); err == nil {
		return nil, apperr.ErrCodigoDuplicado
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	proveedor := &model.Proveedor{
		RazonSocial:   req.RazonSocial,
		CUIT:          req.CUIT,
		Telefono:      req.Telefono,
		Email:         req.Email,
		Direccion:     req.Direccion,
		CondicionPago: req.CondicionPago,
		Activo:        true,
	}
	for _, c := range req.Contactos {
		proveedor.Contactos = append(proveedor.Contactos, model.ContactoProveedor{
			Nombre:   c.Nombre,
			Cargo:    c.Cargo,
			Telefono: c.Telefono,
			Email:    c.Email,
		})
	}

	if err := s.repo.Create(ctx, proveedor); err != nil {
		return nil, err
	}
	return proveedorToResponse(proveedor), nil
}

func (s *proveedorService) Obtener(ctx context.Context, id uuid.UUID) (*dto.ProveedorResponse, error) {
	proveedor, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("proveedor no encontrado")
	}
	return proveedorToResponse(proveedor), nil
}

func (s *proveedorService) Listar(ctx context.Context) ([]dto.ProveedorResponse, error) {
	proveedores, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.ProveedorResponse, len(proveedores))
	for i := range proveedores {
		resp[i] = *proveedorToResponse(&proveedores[i])
	}
	return resp, nil
}

func (s *proveedorService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarProveedorRequest) (*dto.ProveedorResponse, error) {
	proveedor, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("proveedor no encontrado")
	}
	if req.RazonSocial != "" {
		proveedor.RazonSocial = req.RazonSocial
	}
	if req.Telefono != nil {
		proveedor.Telefono = req.Telefono
	}
	if req.Email != nil {
		proveedor.Email = req.Email
	}
	if req.Direccion != nil {
		proveedor.Direccion = req.Direccion
	}
	if req.CondicionPago != nil {
		proveedor.CondicionPago = req.CondicionPago
	}

	proveedor.Contactos = nil
	if err := s.repo.Update(ctx, proveedor); err != nil {
		return nil, err
	}
	return proveedorToResponse(proveedor), nil
}

// Desactivar se bloquea mientras el proveedor tenga productos activos
// asociados.
func (s *proveedorService) Desactivar(ctx context.Context, id uuid.UUID) error {
	proveedor, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("proveedor no encontrado")
	}

	productos, err := s.productoRepo.FindByProveedorID(ctx, id)
	if err != nil {
		return err
	}
	if len(productos) > 0 {
		return &apperr.EntidadEnUsoError{EntidadID: id, Entidad: proveedor.RazonSocial, UsadaPor: "productos"}
	}

	return s.repo.SoftDelete(ctx, id)
}

func proveedorToResponse(p *model.Proveedor) *dto.ProveedorResponse {
	return &dto.ProveedorResponse{
		ID:            p.ID.String(),
		RazonSocial:   p.RazonSocial,
		CUIT:          p.CUIT,
		Telefono:      p.Telefono,
		Email:         p.Email,
		Direccion:     p.Direccion,
		CondicionPago: p.CondicionPago,
		Activo:        p.Activo,
	}
}
