// Package pdf genera la factura impresa (formato preimpreso con timbrado) de una
// venta emitida.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Razón social + RUC   │  Timbrado + vigencia + N°   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  EMISOR: Dirección / Ciudad / Tel                           │
//	│  CLIENTE: Nombre + documento  │  Fecha + condición de pago  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Cant | Descripción | P.Unit | Exentas | Gravadas 10% │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Subtotal / Liquidación IVA 10% / TOTAL A PAGAR     │
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
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	appbilling "github.com/jhoicas/lavadero-api/internal/application/billing"
	"github.com/jhoicas/lavadero-api/internal/domain/entity"
	"github.com/jhoicas/lavadero-api/internal/domain/money"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 56, Blue: 168}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

var _ appbilling.InvoicePDFGenerator = (*MarotoPDFGenerator)(nil)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa billing.InvoicePDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct {
	printer *message.Printer
}

// NewMarotoPDFGenerator construye el generador. Los importes se formatean con
// separador de miles de es-PY ("38.500").
func NewMarotoPDFGenerator() *MarotoPDFGenerator {
	return &MarotoPDFGenerator{printer: message.NewPrinter(language.Spanish)}
}

// GenerateInvoicePDF genera el PDF y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateInvoicePDF(
	_ context.Context,
	sale *entity.Sale,
	company *entity.CompanyConfig,
	customer *entity.Customer,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Factura "+sale.InvoiceNumber, true).
		WithAuthor(company.LegalName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(sale, company))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(emisorRow(company))
	m.AddRows(customerRow(sale, customer))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, r := range g.tableDetailRows(sale) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(g.totalsRow(sale))
	m.AddRows(line.NewRow(3))
	m.AddRows(footerRow(sale))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: razón social + RUC (izq) y timbrado + número de factura (der).
func (g *MarotoPDFGenerator) headerRow(sale *entity.Sale, company *entity.CompanyConfig) core.Row {
	title := company.LegalName
	if company.TradeName != "" {
		title = company.TradeName
	}
	return row.New(24).Add(
		col.New(7).Add(
			text.New(title, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(company.LegalName, props.Text{
				Size: 8, Top: 9, Color: colorGray,
			}),
			text.New("RUC: "+company.RUC, props.Text{
				Size: 9, Top: 14, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("TIMBRADO N° "+sale.TimbradoNumber, props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("Vigencia: %s al %s",
				company.TimbradoFrom.Format("02/01/2006"),
				company.TimbradoUntil.Format("02/01/2006"),
			), props.Text{
				Size: 7, Align: align.Right, Top: 6, Color: colorGray,
			}),
			text.New("FACTURA", props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 11,
			}),
			text.New(sale.InvoiceNumber, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 16,
			}),
		),
	)
}

// emisorRow: datos del local emisor.
func emisorRow(company *entity.CompanyConfig) core.Row {
	return row.New(12).Add(
		col.New(12).Add(
			text.New("DATOS DEL EMISOR", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("Dirección: %s, %s   |   Tel: %s   |   Email: %s",
				nonEmpty(company.Address, "-"),
				nonEmpty(company.City, "-"),
				nonEmpty(company.Phone, "-"),
				nonEmpty(company.Email, "-"),
			), props.Text{Size: 8, Top: 7, Color: colorGray}),
		),
	)
}

// customerRow: cliente (o consumidor final), fecha y condición de venta.
func customerRow(sale *entity.Sale, customer *entity.Customer) core.Row {
	name, doc := "SIN NOMBRE", "Consumidor final"
	if customer != nil {
		name = customer.Name
		doc = customer.DocType + ": " + customer.DocNumber
		if customer.TourismRegime {
			doc += "   |   Régimen turismo (" + customer.Country + ")"
		}
	}
	return row.New(16).Add(
		col.New(8).Add(
			text.New("CLIENTE", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(name, props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
			text.New(doc, props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
		col.New(4).Add(
			text.New("Fecha de emisión: "+sale.IssuedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 6,
			}),
			text.New("Condición: "+paymentLabel(sale.PaymentMethod), props.Text{
				Size: 8, Align: align.Right, Top: 12, Color: colorGray,
			}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de detalles.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).WithStyle(&props.Cell{BackgroundColor: colorPrimary}).Add(
		h("Cant.", 1, align.Center),
		h("Descripción", 5, align.Left),
		h("Precio Unit.", 2, align.Right),
		h("Exentas", 2, align.Right),
		h("Gravadas 10%", 2, align.Right),
	)
}

// tableDetailRows: una fila por línea. En régimen turismo el importe va en exentas.
func (g *MarotoPDFGenerator) tableDetailRows(sale *entity.Sale) []core.Row {
	result := make([]core.Row, 0, len(sale.Items))
	for _, it := range sale.Items {
		exempt, taxed := "0", g.gs(it.Subtotal)
		if sale.TourismRegime {
			exempt, taxed = g.gs(it.Subtotal), "0"
		}
		result = append(result, row.New(7).Add(
			col.New(1).Add(text.New(fmt.Sprint(it.Quantity), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(5).Add(text.New(it.Name, props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1})),
			col.New(2).Add(text.New(g.gs(it.UnitPrice), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(2).Add(text.New(exempt, props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(2).Add(text.New(taxed, props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return result
}

// totalsRow: subtotal, liquidación del IVA y total en guaraníes.
func (g *MarotoPDFGenerator) totalsRow(sale *entity.Sale) core.Row {
	label := func(s string, top float64) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2, Top: top})
	}
	value := func(s string, top float64) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1, Top: top})
	}
	ivaLabel := "Liquidación IVA 10%:"
	if sale.TourismRegime {
		ivaLabel = "IVA (exento régimen turismo):"
	}
	return row.New(22).Add(
		col.New(4),
		col.New(4).Add(
			label("Subtotal:", 1),
			label(ivaLabel, 7),
			text.New("TOTAL A PAGAR:", props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 2, Top: 14,
			}),
		),
		col.New(4).Add(
			value("Gs. "+g.gs(sale.Subtotal), 1),
			value("Gs. "+g.gs(sale.Tax), 7),
			text.New("Gs. "+g.gs(sale.Total), props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 1, Top: 14,
			}),
		),
	)
}

func footerRow(sale *entity.Sale) core.Row {
	return row.New(10).Add(col.New(12).Add(
		text.New(
			fmt.Sprintf("Original: cliente. Duplicado: archivo tributario. Timbrado N° %s.", sale.TimbradoNumber),
			props.Text{Size: 6.5, Color: colorGray, Top: 2},
		),
	))
}

// ── helpers ───────────────────────────────────────────────────────────────────

// gs formatea guaraníes con separador de miles: 1234567 → "1.234.567".
func (g *MarotoPDFGenerator) gs(a money.Amount) string {
	return g.printer.Sprintf("%d", a.Int64())
}

func paymentLabel(method string) string {
	switch method {
	case entity.PaymentCash:
		return "Contado - Efectivo"
	case entity.PaymentCard:
		return "Contado - Tarjeta"
	case entity.PaymentTransfer:
		return "Contado - Transferencia"
	case entity.PaymentAccount:
		return "Crédito"
	}
	return method
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
