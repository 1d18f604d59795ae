package dto

import "github.com/shopspring/decimal"

type ComboItemRequest struct {
	ProductoID         string   `json:"producto_id" validate:"required,uuid"`
	Cantidad           int      `json:"cantidad" validate:"required,min=1"`
	PermiteSustitucion bool     `json:"permite_sustitucion"`
	GrupoSustitucion   *string  `json:"grupo_sustitucion"`
	Alternativas       []string `json:"alternativas" validate:"dive,uuid"`
}

type CrearComboRequest struct {
	Nombre      string             `json:"nombre" validate:"required,max=200"`
	Descripcion *string            `json:"descripcion"`
	Precio      decimal.Decimal    `json:"precio" validate:"required,gt=0"`
	CategoriaID *string            `json:"categoria_id" validate:"omitempty,uuid"`
	Items       []ComboItemRequest `json:"items" validate:"required,min=1,dive"`
}

type ActualizarComboRequest struct {
	Nombre      string             `json:"nombre" validate:"omitempty,max=200"`
	Descripcion *string            `json:"descripcion"`
	Precio      *decimal.Decimal   `json:"precio" validate:"omitempty"`
	Items       []ComboItemRequest `json:"items" validate:"omitempty,min=1,dive"`
}

// SeleccionCombo lleva las elecciones de una unidad de combo: slot → producto
// elegido. Los slots ausentes usan el producto por defecto del item.
type SeleccionCombo map[string]string

// ExpandirComboRequest previsualiza la expansión de un combo sin afectar
// stock. Una entrada de Selecciones por unidad pedida; vacío = todo por
// defecto.
type ExpandirComboRequest struct {
	Unidades    int              `json:"unidades" validate:"required,min=1"`
	Selecciones []SeleccionCombo `json:"selecciones"`
}

type LineaExpandidaResponse struct {
	ProductoID string `json:"producto_id"`
	Producto   string `json:"producto"`
	Cantidad   int    `json:"cantidad"`
}

type ComboItemResponse struct {
	ID                 string            `json:"id"`
	ProductoID         string            `json:"producto_id"`
	Producto           string            `json:"producto"`
	Cantidad           int               `json:"cantidad"`
	PermiteSustitucion bool              `json:"permite_sustitucion"`
	GrupoSustitucion   *string           `json:"grupo_sustitucion"`
	Alternativas       []OpcionResponse  `json:"alternativas"`
}

type OpcionResponse struct {
	ProductoID string `json:"producto_id"`
	Producto   string `json:"producto"`
}

type ComboResponse struct {
	ID          string              `json:"id"`
	Nombre      string              `json:"nombre"`
	Descripcion *string             `json:"descripcion"`
	Precio      decimal.Decimal     `json:"precio"`
	Activo      bool                `json:"activo"`
	Items       []ComboItemResponse `json:"items"`
}
