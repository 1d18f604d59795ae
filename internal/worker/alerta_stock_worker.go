package worker

// alerta_stock_worker.go
// Procesa los jobs de QueueAlertaStock: después de cada pedido o venta se
// encola un chequeo de mínimos y, si hay faltantes, se avisa por email al
// responsable de compras. El chequeo corre acá para no agregar latencia a
// la operación de mostrador.

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/GoDevDesk/dogosoft-kiosco/internal/infra"
	"github.com/GoDevDesk/dogosoft-kiosco/internal/model"

	"github.com/rs/zerolog/log"
)

// AlertaStockPayload is the job envelope sent to QueueAlertaStock.
type AlertaStockPayload struct {
	Origen string `json:"origen"` // "Pedido #12", "Venta #840"
}

// StockLister expone las consultas de bajo mínimo que necesita el worker.
// La implementa el servicio de stock.
type StockLister interface {
	ProductosBajoMinimo(ctx context.Context) ([]model.Producto, error)
	MateriasPrimasBajoMinimo(ctx context.Context) ([]model.MateriaPrima, error)
}

type AlertaStockWorker struct {
	stock      StockLister
	mailer     *infra.Mailer
	alertEmail string
}

func NewAlertaStockWorker(stock StockLister, mailer *infra.Mailer, alertEmail string) *AlertaStockWorker {
	return &AlertaStockWorker{stock: stock, mailer: mailer, alertEmail: alertEmail}
}

func (w *AlertaStockWorker) Process(ctx context.Context, raw json.RawMessage) {
	var payload AlertaStockPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("alerta_stock_worker: invalid payload")
		return
	}

	productos, err := w.stock.ProductosBajoMinimo(ctx)
	if err != nil {
		log.Error().Err(err).Msg("alerta_stock_worker: query productos bajo minimo")
		return
	}
	materias, err := w.stock.MateriasPrimasBajoMinimo(ctx)
	if err != nil {
		log.Error().Err(err).Msg("alerta_stock_worker: query materias primas bajo minimo")
		return
	}
	if len(productos) == 0 && len(materias) == 0 {
		return
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Chequeo disparado por: %s\n\n", payload.Origen)
	if len(productos) > 0 {
		b.WriteString("Productos bajo mínimo:\n")
		for _, p := range productos {
			fmt.Fprintf(&b, "  - %s (%s): stock %d, mínimo %d\n",
				p.Nombre, p.Codigo, p.StockActual(), *p.StockMinimo)
		}
	}
	if len(materias) > 0 {
		b.WriteString("\nMaterias primas bajo mínimo:\n")
		for _, mp := range materias {
			fmt.Fprintf(&b, "  - %s (%s): disponible %s %s, mínimo %s\n",
				mp.Nombre, mp.Codigo, mp.CantidadDisponible.String(), mp.Unidad, mp.CantidadMinima.String())
		}
	}

	if w.alertEmail == "" {
		log.Warn().Msg("alerta_stock_worker: ALERT_EMAIL no configurado — alerta solo en log")
		log.Info().Msg(b.String())
		return
	}
	subject := fmt.Sprintf("Alerta de stock mínimo (%d faltantes)", len(productos)+len(materias))
	if err := w.mailer.SendAlertaStock(w.alertEmail, subject, b.String()); err != nil {
		log.Error().Err(err).Str("to", w.alertEmail).Msg("alerta_stock_worker: email failed")
		return
	}
	log.Info().Int("productos", len(productos)).Int("materias", len(materias)).
		Msg("alerta_stock_worker: alerta enviada")
}
