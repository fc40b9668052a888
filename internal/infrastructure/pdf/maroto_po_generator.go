// Package pdf implementa la representación imprimible de una orden de compra.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Hotel + N° Orden | Estado + Fecha                   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  PROVEEDOR: Nombre + contacto + dirección                   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Cant | Ítem | Unidad | Costo Unit | Total            │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: TOTAL DE LA ORDEN                                  │
//	│  NOTAS + fecha esperada de entrega                           │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/Compras-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPOGenerator implementa purchasing.POPDFGenerator usando Maroto v2.
type MarotoPOGenerator struct {
	HotelName string
}

// NewMarotoPOGenerator construye el generador con el nombre del hotel emisor.
func NewMarotoPOGenerator(hotelName string) *MarotoPOGenerator {
	return &MarotoPOGenerator{HotelName: hotelName}
}

// GeneratePOPDF genera el PDF de la orden y devuelve sus bytes.
func (g *MarotoPOGenerator) GeneratePOPDF(
	_ context.Context,
	po *entity.PurchaseOrder,
	supplier *entity.Supplier,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Orden de Compra "+po.PONumber, true).
		WithAuthor(g.HotelName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(g.HotelName, po))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(supplierRow(supplier))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, r := range tableLineRows(po.Lines) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(po))

	for _, r := range footerRows(po) {
		m.AddRows(r)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: hotel (izq) y N° de orden + estado + fecha (der).
func headerRow(hotelName string, po *entity.PurchaseOrder) core.Row {
	fecha := po.CreatedAt.Format("02/01/2006")
	return row.New(18).Add(
		col.New(7).Add(
			text.New(hotelName, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Departamento de Compras", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("ORDEN DE COMPRA", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(po.PONumber, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New(fmt.Sprintf("Estado: %s   |   Fecha: %s", statusLabel(po.Status), fecha), props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

// supplierRow: datos del proveedor destinatario.
func supplierRow(supplier *entity.Supplier) core.Row {
	name, contact, address := "—", "—", "—"
	if supplier != nil {
		name = supplier.Name
		contact = fmt.Sprintf("%s   |   Tel: %s   |   Email: %s",
			nonEmpty(supplier.ContactName, "—"),
			nonEmpty(supplier.Phone, "—"),
			nonEmpty(supplier.Email, "—"),
		)
		address = nonEmpty(supplier.Address, "—")
	}
	return row.New(16).Add(
		col.New(12).Add(
			text.New("PROVEEDOR", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(name, props.Text{Style: fontstyle.Bold, Size: 10, Top: 6}),
			text.New("Contacto: "+contact, props.Text{Size: 8, Top: 11, Color: colorGray}),
			text.New("Dirección: "+address, props.Text{Size: 8, Top: 14, Color: colorGray}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de líneas.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Cant.", 2, align.Center),
		h("Ítem", 5, align.Left),
		h("Unidad", 1, align.Center),
		h("Costo Unit.", 2, align.Right),
		h("Total", 2, align.Right),
	)
}

// tableLineRows: una fila por línea de la orden.
func tableLineRows(lines []entity.POLine) []core.Row {
	result := make([]core.Row, 0, len(lines))
	for _, l := range lines {
		result = append(result, row.New(7).Add(
			col.New(2).Add(text.New(
				l.Quantity.String(),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(5).Add(text.New(
				l.Name,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(1).Add(text.New(
				l.Unit,
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(2).Add(text.New(
				"$"+l.UnitCost.StringFixed(2),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(2).Add(text.New(
				"$"+l.TotalCost.StringFixed(2),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return result
}

// totalsRow: total de la orden alineado a la derecha.
func totalsRow(po *entity.PurchaseOrder) core.Row {
	return row.New(12).Add(
		col.New(6),
		col.New(3).Add(
			text.New("TOTAL DE LA ORDEN:", props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right,
				Color: colorPrimary, Right: 2, Top: 2,
			}),
		),
		col.New(3).Add(
			text.New("$"+po.TotalAmount.StringFixed(2), props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right,
				Color: colorPrimary, Right: 1, Top: 2,
			}),
		),
	)
}

// footerRows: fecha esperada de entrega y notas, si existen.
func footerRows(po *entity.PurchaseOrder) []core.Row {
	var rows []core.Row
	if po.ExpectedDeliveryDate != nil {
		rows = append(rows, row.New(6).Add(col.New(12).Add(
			text.New("Entrega esperada: "+po.ExpectedDeliveryDate.Format("02/01/2006"), props.Text{
				Size: 8, Top: 1, Color: colorGray,
			}),
		)))
	}
	if po.Notes != "" {
		rows = append(rows, row.New(10).Add(col.New(12).Add(
			text.New("Notas: "+po.Notes, props.Text{Size: 8, Top: 1, Color: colorGray}),
		)))
	}
	if po.AutoGenerated {
		rows = append(rows, row.New(6).Add(col.New(12).Add(
			text.New("Orden generada automáticamente por punto de reorden.", props.Text{
				Size: 7, Top: 1, Color: colorGray,
			}),
		)))
	}
	return rows
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

func statusLabel(status string) string {
	switch status {
	case entity.POStatusDraft:
		return "BORRADOR"
	case entity.POStatusOrdered:
		return "COLOCADA"
	case entity.POStatusReceived:
		return "RECIBIDA"
	case entity.POStatusCancelled:
		return "CANCELADA"
	}
	return status
}
