package spreadsheet

import (
	"encoding/csv"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/inventario-pactra/internal/domain"
)

// Table encabezados y filas para exportar.
type Table struct {
	Sheet   string
	Headers []string
	Rows    [][]any
	Widths  []float64 // ancho por columna en el xlsx; opcional
}

// WriteCSV escribe la tabla en UTF-8 con BOM para que Excel respete los acentos.
func WriteCSV(w io.Writer, t Table) error {
	if _, err := w.Write(utf8BOM); err != nil {
		return fmt.Errorf("csv: escribir BOM: %w", err)
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Headers); err != nil {
		return fmt.Errorf("csv: encabezados: %w", err)
	}
	for _, row := range t.Rows {
		rec := make([]string, len(row))
		for i, v := range row {
			rec[i] = fmt.Sprint(v)
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("csv: fila: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteXLSX escribe la tabla en un libro de una hoja con encabezado en negrita
// y la primera fila inmovilizada.
func WriteXLSX(w io.Writer, t Table) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := t.Sheet
	if sheet == "" {
		sheet = "Resumen"
	}
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("xlsx: renombrar hoja: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11, Color: "#FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#1F4E79"}},
		Border: []excelize.Border{
			{Type: "bottom", Color: "#000000", Style: 1},
		},
	})
	if err != nil {
		return fmt.Errorf("xlsx: estilo: %w", err)
	}

	for i, h := range t.Headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
		f.SetCellStyle(sheet, cell, cell, headerStyle)
	}
	for r, row := range t.Rows {
		for c, v := range row {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+2)
			f.SetCellValue(sheet, cell, v)
		}
	}
	for i, wd := range t.Widths {
		col, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(sheet, col, col, wd)
	}
	f.SetPanes(sheet, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"})

	if err := f.Write(w); err != nil {
		return fmt.Errorf("xlsx: escribir: %w", err)
	}
	return nil
}

// Exporter elige el escritor según el formato.
type Exporter struct{}

// NewExporter construye el exportador.
func NewExporter() *Exporter { return &Exporter{} }

// Export escribe headers y rows como "csv" o "xlsx". Las columnas del xlsx toman
// el ancho del encabezado más largo de la columna.
func (e *Exporter) Export(w io.Writer, format, sheet string, headers []string, rows [][]any) error {
	t := Table{Sheet: sheet, Headers: headers, Rows: rows}
	switch format {
	case "csv":
		return WriteCSV(w, t)
	case "xlsx":
		t.Widths = columnWidths(headers, rows)
		return WriteXLSX(w, t)
	default:
		return fmt.Errorf("%w: formato de exportación %q", domain.ErrValidation, format)
	}
}

func columnWidths(headers []string, rows [][]any) []float64 {
	widths := make([]float64, len(headers))
	for i, h := range headers {
		widths[i] = float64(utf8.RuneCountInString(h) + 2)
	}
	for _, row := range rows {
		for i, v := range row {
			if i >= len(widths) {
				break
			}
			if n := float64(utf8.RuneCountInString(fmt.Sprint(v)) + 2); n > widths[i] {
				widths[i] = min(n, 60)
			}
		}
	}
	return widths
}
