// Package spreadsheet lee cuadrículas de celdas desde .xlsx (excelize) o .csv y
// escribe tablas de resumen en ambos formatos.
package spreadsheet

import (
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/inventario-pactra/internal/domain"
)

// Reader lee la primera hoja de un libro o un archivo delimitado.
type Reader struct{}

// NewReader construye el lector.
func NewReader() *Reader { return &Reader{} }

// ReadGrid devuelve filas de celdas tipadas: string, float64 o bool. El formato se
// decide por la extensión del nombre de archivo.
func (r *Reader) ReadGrid(filename string, src io.Reader) ([][]any, error) {
	switch ext := strings.ToLower(filepath.Ext(filename)); ext {
	case ".xlsx", ".xlsm":
		return readXLSX(src)
	case ".csv", ".txt":
		return readCSV(src)
	case ".xls":
		return nil, fmt.Errorf("%w: formato .xls no soportado, guarde el archivo como .xlsx", domain.ErrValidation)
	default:
		return nil, fmt.Errorf("%w: formato de archivo no soportado (%q)", domain.ErrValidation, ext)
	}
}

func readXLSX(src io.Reader) ([][]any, error) {
	f, err := excelize.OpenReader(src)
	if err != nil {
		return nil, fmt.Errorf("%w: archivo xlsx ilegible: %w", domain.ErrValidation, err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, fmt.Errorf("%w: el libro no tiene hojas", domain.ErrValidation)
	}
	// Valores crudos: las fechas llegan como número serial y las normaliza el importador.
	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("%w: leer hoja %q: %w", domain.ErrValidation, sheet, err)
	}

	grid := make([][]any, 0, len(rows))
	for i, row := range rows {
		cells := make([]any, len(row))
		for j, v := range row {
			name, err := excelize.CoordinatesToCellName(j+1, i+1)
			if err != nil {
				cells[j] = v
				continue
			}
			typ, err := f.GetCellType(sheet, name)
			if err != nil {
				cells[j] = v
				continue
			}
			cells[j] = typedCell(typ, v)
		}
		grid = append(grid, cells)
	}
	return grid, nil
}

func typedCell(typ excelize.CellType, v string) any {
	switch typ {
	case excelize.CellTypeBool:
		return v == "1" || strings.EqualFold(v, "true")
	case excelize.CellTypeSharedString, excelize.CellTypeInlineString, excelize.CellTypeError:
		return v
	case excelize.CellTypeNumber, excelize.CellTypeDate, excelize.CellTypeUnset, excelize.CellTypeFormula:
		if v == "" {
			return v
		}
		if n, err := strconv.ParseFloat(v, 64); err == nil {
			return n
		}
	}
	return v
}
