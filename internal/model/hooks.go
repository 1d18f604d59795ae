package model

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SQLite no tiene gen_random_uuid(); los IDs se asignan al crear.

func ensureID(id *uuid.UUID) {
	if *id == uuid.Nil {
		*id = uuid.New()
	}
}

func (p *Producto) BeforeCreate(*gorm.DB) error        { ensureID(&p.ID); return nil }
func (m *MateriaPrima) BeforeCreate(*gorm.DB) error    { ensureID(&m.ID); return nil }
func (r *RecetaProducto) BeforeCreate(*gorm.DB) error  { ensureID(&r.ID); return nil }
func (l *ListaPrecio) BeforeCreate(*gorm.DB) error     { ensureID(&l.ID); return nil }
func (p *PrecioProducto) BeforeCreate(*gorm.DB) error  { ensureID(&p.ID); return nil }
func (h *HistorialPrecio) BeforeCreate(*gorm.DB) error { ensureID(&h.ID); return nil }
func (c *Combo) BeforeCreate(*gorm.DB) error           { ensureID(&c.ID); return nil }
func (c *ComboItem) BeforeCreate(*gorm.DB) error       { ensureID(&c.ID); return nil }
func (o *OpcionSustitucion) BeforeCreate(*gorm.DB) error { ensureID(&o.ID); return nil }
func (p *Pedido) BeforeCreate(*gorm.DB) error          { ensureID(&p.ID); return nil }
func (i *PedidoItem) BeforeCreate(*gorm.DB) error      { ensureID(&i.ID); return nil }
func (v *Venta) BeforeCreate(*gorm.DB) error           { ensureID(&v.ID); return nil }
func (i *VentaItem) BeforeCreate(*gorm.DB) error       { ensureID(&i.ID); return nil }
func (p *VentaPago) BeforeCreate(*gorm.DB) error       { ensureID(&p.ID); return nil }
func (m *MovimientoStock) BeforeCreate(*gorm.DB) error { ensureID(&m.ID); return nil }
func (m *MovimientoMateriaPrima) BeforeCreate(*gorm.DB) error { ensureID(&m.ID); return nil }
func (c *Categoria) BeforeCreate(*gorm.DB) error       { ensureID(&c.ID); return nil }
func (p *Proveedor) BeforeCreate(*gorm.DB) error       { ensureID(&p.ID); return nil }
func (c *ContactoProveedor) BeforeCreate(*gorm.DB) error { ensureID(&c.ID); return nil }
func (u *Usuario) BeforeCreate(*gorm.DB) error         { ensureID(&u.ID); return nil }
