package service

import (
	"context"
	"fmt"

	"github.com/GoDevDesk/dogosoft-kiosco/internal/apperr"
	"github.com/GoDevDesk/dogosoft-kiosco/internal/dto"
	"github.com/GoDevDesk/dogosoft-kiosco/internal/model"
	"github.com/GoDevDesk/dogosoft-kiosco/internal/repository"

	"github.com/google/uuid"
)

type ComboService interface {
	Crear(ctx context.Context, req dto.CrearComboRequest) (*dto.ComboResponse, error)
	Obtener(ctx context.Context, id uuid.UUID) (*dto.ComboResponse, error)
	Listar(ctx context.Context, soloActivos bool) ([]dto.ComboResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarComboRequest) (*dto.ComboResponse, error)
	Desactivar(ctx context.Context, id uuid.UUID) error

	// Expandir previsualiza la lista de consumo del combo sin tocar stock.
	Expandir(ctx context.Context, id uuid.UUID, req dto.ExpandirComboRequest) ([]dto.LineaExpandidaResponse, error)
}

type comboService struct {
	repo         repository.ComboRepository
	productoRepo repository.ProductoRepository
}

func NewComboService(repo repository.ComboRepository, productoRepo repository.ProductoRepository) ComboService {
	return &comboService{repo: repo, productoRepo: productoRepo}
}

func (s *comboService) Crear(ctx context.Context, req dto.CrearComboRequest) (*dto.ComboResponse, error) {
	items, err := s.buildItems(ctx, req.Items)
	if err != nil {
		return nil, err
	}

	combo := &model.Combo{
		Nombre:      req.Nombre,
		Descripcion: req.Descripcion,
		Precio:      req.Precio,
		Activo:      true,
		Items:       items,
	}
	if req.CategoriaID != nil {
		cid, err := uuid.Parse(*req.CategoriaID)
		if err != nil {
			return nil, fmt.Errorf("categoria_id inválido: %w", err)
		}
		combo.CategoriaID = &cid
	}

	if err := s.repo.Create(ctx, combo); err != nil {
		return nil, err
	}
	return s.Obtener(ctx, combo.ID)
}

func (s *comboService) Obtener(ctx context.Context, id uuid.UUID) (*dto.ComboResponse, error) {
	combo, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("combo no encontrado")
	}
	return comboToResponse(combo), nil
}

func (s *comboService) Listar(ctx context.Context, soloActivos bool) ([]dto.ComboResponse, error) {
	combos, err := s.repo.List(ctx, soloActivos)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.ComboResponse, len(combos))
	for i := range combos {
		resp[i] = *comboToResponse(&combos[i])
	}
	return resp, nil
}

func (s *comboService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarComboRequest) (*dto.ComboResponse, error) {
	combo, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("combo no encontrado")
	}

	if req.Nombre != "" {
		combo.Nombre = req.Nombre
	}
	if req.Descripcion != nil {
		combo.Descripcion = req.Descripcion
	}
	if req.Precio != nil {
		combo.Precio = *req.Precio
	}
	combo.Items = nil
	if err := s.repo.Update(ctx, combo); err != nil {
		return nil, err
	}

	if len(req.Items) > 0 {
		items, err := s.buildItems(ctx, req.Items)
		if err != nil {
			return nil, err
		}
		for i := range items {
			items[i].ComboID = id
		}
		if err := s.repo.ReplaceItems(ctx, id, items); err != nil {
			return nil, err
		}
	}
	return s.Obtener(ctx, id)
}

func (s *comboService) Desactivar(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return fmt.Errorf("combo no encontrado")
	}
	return s.repo.SoftDelete(ctx, id)
}

func (s *comboService) Expandir(ctx context.Context, id uuid.UUID, req dto.ExpandirComboRequest) ([]dto.LineaExpandidaResponse, error) {
	combo, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("combo no encontrado")
	}
	lineas, err := expandirCombo(combo, req.Unidades, req.Selecciones)
	if err != nil {
		return nil, err
	}

	resp := make([]dto.LineaExpandidaResponse, len(lineas))
	for i, l := range lineas {
		resp[i] = dto.LineaExpandidaResponse{
			ProductoID: l.ProductoID.String(),
			Producto:   l.Nombre,
			Cantidad:   l.Cantidad,
		}
	}
	return resp, nil
}

func (s *comboService) buildItems(ctx context.Context, reqs []dto.ComboItemRequest) ([]model.ComboItem, error) {
	items := make([]model.ComboItem, 0, len(reqs))
	for _, ir := range reqs {
		pid, err := uuid.Parse(ir.ProductoID)
		if err != nil {
			return nil, fmt.Errorf("producto_id inválido: %w", err)
		}
		if _, err := s.productoRepo.FindByID(ctx, pid); err != nil {
			return nil, fmt.Errorf("producto %s no encontrado", ir.ProductoID)
		}

		item := model.ComboItem{
			ProductoID:         pid,
			Cantidad:           ir.Cantidad,
			PermiteSustitucion: ir.PermiteSustitucion,
			GrupoSustitucion:   ir.GrupoSustitucion,
		}
		for _, alt := range ir.Alternativas {
			aid, err := uuid.Parse(alt)
			if err != nil {
				return nil, fmt.Errorf("alternativa inválida: %w", err)
			}
			if _, err := s.productoRepo.FindByID(ctx, aid); err != nil {
				return nil, fmt.Errorf("producto alternativo %s no encontrado", alt)
			}
			item.Opciones = append(item.Opciones, model.OpcionSustitucion{ProductoAlternativoID: aid})
		}
		items = append(items, item)
	}
	return items, nil
}

// ── Expansión ─────────────────────────────────────────────────────────────────

// lineaExpandida es el consumo agregado de un producto dentro de una
// expansión de combo.
type lineaExpandida struct {
	ProductoID uuid.UUID
	Nombre     string
	Cantidad   int
}

// expandirCombo traduce unidades de combo a demandas por producto. Cada
// unidad lleva su propio mapa de selecciones (slot → producto elegido); los
// slots ausentes usan el producto por defecto. Las cantidades del mismo
// producto se acumulan en una sola línea, preservando el orden de primera
// aparición.
func expandirCombo(combo *model.Combo, unidades int, selecciones []dto.SeleccionCombo) ([]lineaExpandida, error) {
	if unidades < 1 {
		return nil, fmt.Errorf("la cantidad de unidades debe ser al menos 1")
	}
	if len(selecciones) > unidades {
		return nil, fmt.Errorf("se recibieron %d selecciones para %d unidades del combo", len(selecciones), unidades)
	}

	itemsPorID := make(map[string]*model.ComboItem, len(combo.Items))
	for i := range combo.Items {
		itemsPorID[combo.Items[i].ID.String()] = &combo.Items[i]
	}

	var orden []uuid.UUID
	acumulado := make(map[uuid.UUID]*lineaExpandida)
	agregar := func(pid uuid.UUID, nombre string, cantidad int) {
		if l, ok := acumulado[pid]; ok {
			l.Cantidad += cantidad
			return
		}
		acumulado[pid] = &lineaExpandida{ProductoID: pid, Nombre: nombre, Cantidad: cantidad}
		orden = append(orden, pid)
	}

	for u := 0; u < unidades; u++ {
		var sel dto.SeleccionCombo
		if u < len(selecciones) {
			sel = selecciones[u]
		}

		// Claves que no corresponden a ningún slot del combo son inválidas.
		for slotID := range sel {
			if _, ok := itemsPorID[slotID]; !ok {
				itemID, _ := uuid.Parse(slotID)
				return nil, &apperr.SustitucionInvalidaError{ComboItemID: itemID}
			}
		}

		for i := range combo.Items {
			item := &combo.Items[i]
			elegido := item.ProductoID
			nombre := ""
			if item.Producto != nil {
				nombre = item.Producto.Nombre
			}

			if pidStr, ok := sel[item.ID.String()]; ok {
				pid, err := uuid.Parse(pidStr)
				if err != nil {
					return nil, fmt.Errorf("producto elegido inválido: %w", err)
				}
				if pid != item.ProductoID {
					if !item.PermiteSustitucion {
						return nil, &apperr.SustitucionInvalidaError{ComboItemID: item.ID, ProductoID: pid}
					}
					valida := false
					for _, op := range item.Opciones {
						if op.ProductoAlternativoID == pid {
							valida = true
							if op.ProductoAlternativo != nil {
								nombre = op.ProductoAlternativo.Nombre
							}
							break
						}
					}
					if !valida {
						return nil, &apperr.SustitucionInvalidaError{ComboItemID: item.ID, ProductoID: pid}
					}
					elegido = pid
				}
			}

			agregar(elegido, nombre, item.Cantidad)
		}
	}

	lineas := make([]lineaExpandida, 0, len(orden))
	for _, pid := range orden {
		lineas = append(lineas, *acumulado[pid])
	}
	return lineas, nil
}

func comboToResponse(combo *model.Combo) *dto.ComboResponse {
	resp := &dto.ComboResponse{
		ID:          combo.ID.String(),
		Nombre:      combo.Nombre,
		Descripcion: combo.Descripcion,
		Precio:      combo.Precio,
		Activo:      combo.Activo,
		Items:       make([]dto.ComboItemResponse, len(combo.Items)),
	}
	for i, item := range combo.Items {
		ir := dto.ComboItemResponse{
			ID:                 item.ID.String(),
			ProductoID:         item.ProductoID.String(),
			Cantidad:           item.Cantidad,
			PermiteSustitucion: item.PermiteSustitucion,
			GrupoSustitucion:   item.GrupoSustitucion,
		}
		if item.Producto != nil {
			ir.Producto = item.Producto.Nombre
		}
		for _, op := range item.Opciones {
			or := dto.OpcionResponse{ProductoID: op.ProductoAlternativoID.String()}
			if op.ProductoAlternativo != nil {
				or.Producto = op.ProductoAlternativo.Nombre
			}
			ir.Alternativas = append(ir.Alternativas, or)
		}
		resp.Items[i] = ir
	}
	return resp
}
