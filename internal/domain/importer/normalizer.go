package importer

import (
	"fmt"
	"strings"

	"github.com/jhoicas/inventario-pactra/internal/domain"
	"github.com/jhoicas/inventario-pactra/internal/domain/entity"
)

// ImportedRow fila normalizada, previa a la confirmación del usuario.
type ImportedRow struct {
	Type      string
	Date      string
	Client    string
	Container string
	Invoice   string
	Model     string
	LotNumber string
	Pallets   int
	Pieces    int
	Damaged   bool
	// DamagedPieces conteo crudo cuando la columna de daño traía un número.
	DamagedPieces int
}

// ToMovement movimiento listo para guardar. Si solo llegó la bandera de daño se
// registra una pieza dañada.
func (r ImportedRow) ToMovement() entity.Movement {
	damaged := r.DamagedPieces
	if damaged == 0 && r.Damaged {
		damaged = 1
	}
	m := entity.Movement{
		Type:          entity.ParseMovementType(r.Type),
		Date:          r.Date,
		Client:        r.Client,
		Container:     r.Container,
		Invoice:       r.Invoice,
		Model:         r.Model,
		LotNumber:     r.LotNumber,
		Pallets:       r.Pallets,
		Pieces:        r.Pieces,
		DamagedPieces: damaged,
		Damaged:       r.Damaged,
	}
	m.Normalize()
	return m
}

// Result filas normalizadas y el mapeo de columnas aplicado.
type Result struct {
	Rows    []ImportedRow
	Columns map[string]Field // encabezado original → campo
	Ignored []string         // encabezados sin campo
}

// Movements filas convertidas a movimientos.
func (r *Result) Movements() []entity.Movement {
	out := make([]entity.Movement, 0, len(r.Rows))
	for _, row := range r.Rows {
		out = append(out, row.ToMovement())
	}
	return out
}

// Normalize interpreta la cuadrícula. Falla con domain.ErrImport si no hay filas de
// datos o si todas están vacías. Las columnas no reconocidas se descartan; si dos
// columnas apuntan al mismo campo gana la primera.
func Normalize(grid [][]any) (*Result, error) {
	if len(grid) < 2 {
		return nil, fmt.Errorf("%w: el archivo debe tener encabezados y al menos una fila de datos", domain.ErrImport)
	}

	res := &Result{Columns: make(map[string]Field)}
	colFields := make([]Field, len(grid[0]))
	seen := make(map[Field]bool)
	for i, h := range grid[0] {
		header := CoerceText(h)
		f := MatchHeader(header)
		if f == FieldNone || seen[f] {
			if header != "" {
				res.Ignored = append(res.Ignored, header)
			}
			continue
		}
		seen[f] = true
		colFields[i] = f
		res.Columns[header] = f
	}

	for _, cells := range grid[1:] {
		if blankRow(cells) {
			continue
		}
		var row ImportedRow
		for i, f := range colFields {
			if f == FieldNone || i >= len(cells) {
				continue
			}
			applyCell(&row, f, cells[i])
		}
		res.Rows = append(res.Rows, row)
	}
	if len(res.Rows) == 0 {
		return nil, fmt.Errorf("%w: no se encontraron filas con datos", domain.ErrImport)
	}
	return res, nil
}

func applyCell(row *ImportedRow, f Field, v any) {
	switch f {
	case FieldType:
		row.Type = CoerceText(v)
	case FieldDate:
		row.Date = CoerceDate(v)
	case FieldClient:
		row.Client = CoerceText(v)
	case FieldContainer:
		row.Container = CoerceText(v)
	case FieldInvoice:
		row.Invoice = CoerceText(v)
	case FieldModel:
		row.Model = CoerceText(v)
	case FieldLotNumber:
		row.LotNumber = CoerceText(v)
	case FieldPallets:
		row.Pallets = max(CoerceInt(v), 0)
	case FieldPieces:
		row.Pieces = max(CoerceInt(v), 0)
	case FieldDamaged:
		row.Damaged, row.DamagedPieces = CoerceDamaged(v)
	}
}

func blankRow(cells []any) bool {
	for _, c := range cells {
		switch x := c.(type) {
		case nil:
		case string:
			if strings.TrimSpace(x) != "" {
				return false
			}
		default:
			return false
		}
	}
	return true
}
