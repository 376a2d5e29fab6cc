// Package pdf genera el packing list en PDF.
//
// Dos motores: MarotoGenerator dibuja el documento en Go puro (sin dependencias del
// sistema) y OfficeRenderer rellena la plantilla DOCX y la convierte con LibreOffice
// para que el PDF sea idéntico al Word.
//
// Layout de MarotoGenerator:
//
//	┌──────────────────────────────────────────────────────────┐
//	│ PACTRA                                    PACKING LIST   │
//	│ Shipper / Exporter           │ Invoice no. & date        │
//	│ Messrs                       │ Carrier: truck/driver/... │
//	│ Notify party                 │ Sailing on or about       │
//	│ Port of loading              │ Final destination         │
//	│ REMARKS                      │ CONTAINER                 │
//	│ LOTE │ Pallet │ Saco │ MODELO │ PESO (kg) │ Peso bruto  │
//	│ firma bodega salida │ firma operador │ firma bodega arribo│
//	└──────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"
	"strings"

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

	"github.com/jhoicas/inventario-pactra/internal/domain/packing"
)

// ── Paleta ────────────────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoGenerator dibuja el packing list con Maroto v2.
type MarotoGenerator struct{}

// NewMarotoGenerator construye el generador.
func NewMarotoGenerator() *MarotoGenerator { return &MarotoGenerator{} }

// RenderPackingList genera el PDF y devuelve sus bytes.
func (g *MarotoGenerator) RenderPackingList(_ context.Context, doc packing.Document) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(12).WithRightMargin(12).
		WithTopMargin(12).WithBottomMargin(12).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Packing List "+doc.InvoiceNo, true).
		WithAuthor(doc.Shipper.Name, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(titleRow())
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.6}))
	m.AddRows(pairRow("Shipper / Exporter", shipperLines(doc), "Invoice no. & date",
		[]string{dash(doc.InvoiceNo), doc.InvoiceDate}))
	m.AddRows(pairRow("Messrs", append([]string{dash(doc.ClientName)}, lines(doc.ClientAddress)...),
		"Carrier", []string{
			"TRUCK: " + dash(doc.Truck),
			"DRIVER: " + dash(doc.Driver),
			"PLATES: " + dash(doc.Plates),
		}))
	m.AddRows(pairRow("Notify party", []string{"Same as above"}, "Sailing on or about", []string{doc.InvoiceDate}))
	m.AddRows(pairRow("Port of loading", []string{doc.Shipper.PortOfLoading}, "Final destination", []string{dash(doc.City)}))
	m.AddRows(pairRow("REMARKS", []string{dash(doc.Remarks)}, "CONTAINER", []string{dash(doc.Container)}))

	m.AddRows(row.New(4))
	m.AddRows(tableHeaderRow())
	m.AddRows(tableDetailRow(doc))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(row.New(28))
	m.AddRows(signatureRow())

	out, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar packing list: %w", err)
	}
	return out.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func titleRow() core.Row {
	return row.New(16).Add(
		col.New(6).Add(
			text.New("PACTRA", props.Text{
				Style: fontstyle.Bold, Size: 22, Color: colorPrimary, Top: 1,
			}),
		),
		col.New(6).Add(
			text.New("PACKING LIST", props.Text{
				Style: fontstyle.Bold, Size: 16, Align: align.Right, Top: 4,
			}),
		),
	)
}

// pairRow dos bloques etiqueta + líneas lado a lado; la altura crece con las líneas.
func pairRow(leftLabel string, left []string, rightLabel string, right []string) core.Row {
	n := max(len(left), len(right))
	return row.New(float64(7 + 4*n)).Add(
		col.New(7).Add(block(leftLabel, left)...),
		col.New(5).Add(block(rightLabel, right)...),
	)
}

func block(label string, values []string) []core.Component {
	comps := []core.Component{
		text.New(label, props.Text{Style: fontstyle.Bold, Size: 7, Color: colorGray, Top: 1}),
	}
	for i, v := range values {
		comps = append(comps, text.New(v, props.Text{Size: 9, Top: float64(5 + 4*i), Left: 1}))
	}
	return comps
}

var tableColumns = []string{"LOTE", "Pallet", "Saco", "MODELO", "PESO (kg)", "Peso bruto (kg)"}

func tableHeaderRow() core.Row {
	r := row.New(8)
	for _, label := range tableColumns {
		r.Add(col.New(2).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: align.Center, Color: colorWhite, Top: 2,
		})))
	}
	return r.WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

func tableDetailRow(doc packing.Document) core.Row {
	values := []string{
		dash(doc.Lot),
		strconv.Itoa(doc.Pallets),
		strconv.Itoa(doc.Sacks),
		dash(doc.Model),
		doc.NetWeight.StringFixed(2),
		doc.GrossWeight.StringFixed(2),
	}
	r := row.New(8)
	for _, v := range values {
		r.Add(col.New(2).Add(text.New(v, props.Text{Size: 9, Align: align.Center, Top: 2})))
	}
	return r
}

func signatureRow() core.Row {
	sign := func(label string) core.Col {
		return col.New(4).Add(
			line.New(props.Line{Color: colorGray, Thickness: 0.3, SizePercent: 85}),
			text.New(label, props.Text{Size: 8, Align: align.Center, Top: 2, Color: colorGray}),
		)
	}
	return row.New(10).Add(
		sign("Firma bodega salida"),
		sign("Firma operador"),
		sign("Firma bodega arribo"),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func shipperLines(doc packing.Document) []string {
	return append([]string{doc.Shipper.Name}, doc.Shipper.Address...)
}

func lines(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return strings.Split(s, "\n")
}

// dash muestra el marcador de ausencia en campos vacíos.
func dash(s string) string {
	if s != "" {
		return s
	}
	return packing.PDFPlaceholder
}
