// Package inventory deriva vistas (filtros, orden, páginas, agrupación por modelo y
// tablero) a partir del conjunto completo de movimientos. Todo es función pura del
// conjunto recibido: no hay estado incremental.
package inventory

import (
	"cmp"
	"slices"
	"strconv"
	"strings"

	"github.com/jhoicas/inventario-pactra/internal/domain/entity"
	"github.com/jhoicas/inventario-pactra/pkg/textnorm"
)

// ── Filtros ───────────────────────────────────────────────────────────────────

// Criteria filtros combinados con AND. Campos vacíos no filtran.
type Criteria struct {
	Query   string // subcadena sin distinguir mayúsculas
	Type    string // tipo de movimiento
	Damaged string // "si" | "no"
}

// Match indica si el movimiento cumple los tres predicados.
func (c Criteria) Match(m entity.Movement) bool {
	if q := strings.ToLower(strings.TrimSpace(c.Query)); q != "" {
		hay := []string{m.Client, m.Model, m.Invoice, m.Container, m.LotNumber, strconv.FormatInt(m.ID, 10)}
		found := false
		for _, h := range hay {
			if strings.Contains(strings.ToLower(h), q) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if strings.TrimSpace(c.Type) != "" && !sameType(entity.ParseMovementType(c.Type), m.Type) {
		return false
	}
	switch textnorm.Fold(c.Damaged) {
	case "si", "yes", "true":
		return m.Damaged
	case "no", "false":
		return !m.Damaged
	}
	return true
}

func sameType(a, b entity.MovementType) bool {
	if a.Known() || b.Known() {
		return a.Kind() == b.Kind()
	}
	return strings.EqualFold(a.String(), b.String())
}

// Filter devuelve una copia con los movimientos que cumplen c.
func Filter(records []entity.Movement, c Criteria) []entity.Movement {
	out := make([]entity.Movement, 0, len(records))
	for _, m := range records {
		if c.Match(m) {
			out = append(out, m)
		}
	}
	return out
}

// Damaged movimientos marcados como dañados, fecha descendente.
func Damaged(records []entity.Movement) []entity.Movement {
	out := Filter(records, Criteria{Damaged: "si"})
	sortRecent(out)
	return out
}

// ── Orden ─────────────────────────────────────────────────────────────────────

// Column columna ordenable (nombres del JSON de la API).
type Column string

const (
	ColumnID            Column = "id"
	ColumnType          Column = "movementType"
	ColumnDate          Column = "date"
	ColumnClient        Column = "client"
	ColumnContainer     Column = "container"
	ColumnInvoice       Column = "invoice"
	ColumnModel         Column = "model"
	ColumnLotNumber     Column = "lotNumber"
	ColumnPallets       Column = "palletCount"
	ColumnPieces        Column = "pieceCount"
	ColumnDamagedPieces Column = "damagedPieceCount"
	ColumnDamaged       Column = "isDamaged"
)

// Se aceptan también los nombres de columna de la tabla original.
var columnAliases = map[string]Column{
	"id": ColumnID, "id_movimiento": ColumnID,
	"movementtype": ColumnType, "tipo_movimiento": ColumnType, "tipo": ColumnType,
	"date": ColumnDate, "fecha": ColumnDate,
	"client": ColumnClient, "cliente": ColumnClient,
	"container": ColumnContainer, "contenedor": ColumnContainer,
	"invoice": ColumnInvoice, "factura": ColumnInvoice,
	"model": ColumnModel, "modelo": ColumnModel,
	"lotnumber": ColumnLotNumber, "no_lote": ColumnLotNumber,
	"palletcount": ColumnPallets, "pallets": ColumnPallets,
	"piececount": ColumnPieces, "piezas": ColumnPieces,
	"damagedpiececount": ColumnDamagedPieces, "piezas_danadas": ColumnDamagedPieces,
	"isdamaged": ColumnDamaged, "danado": ColumnDamaged,
}

// ParseColumn resuelve el nombre recibido en la query string.
func ParseColumn(s string) (Column, bool) {
	c, ok := columnAliases[textnorm.Fold(s)]
	return c, ok
}

// Sort criterio de orden.
type Sort struct {
	Column Column
	Desc   bool
}

// DefaultSort fecha descendente, como la tabla principal.
var DefaultSort = Sort{Column: ColumnDate, Desc: true}

func (c Column) numeric() bool {
	switch c {
	case ColumnID, ColumnPallets, ColumnPieces, ColumnDamagedPieces:
		return true
	}
	return false
}

func numberOf(m entity.Movement, c Column) int64 {
	switch c {
	case ColumnID:
		return m.ID
	case ColumnPallets:
		return int64(m.Pallets)
	case ColumnPieces:
		return int64(m.Pieces)
	case ColumnDamagedPieces:
		return int64(m.DamagedPieces)
	}
	return 0
}

func textOf(m entity.Movement, c Column) string {
	switch c {
	case ColumnType:
		return m.Type.String()
	case ColumnDate:
		return m.Date
	case ColumnClient:
		return m.Client
	case ColumnContainer:
		return m.Container
	case ColumnInvoice:
		return m.Invoice
	case ColumnModel:
		return m.Model
	case ColumnLotNumber:
		return m.LotNumber
	case ColumnDamaged:
		return strconv.FormatBool(m.Damaged)
	}
	return ""
}

// Compare compara dos movimientos según la columna (ascendente).
func (s Sort) Compare(a, b entity.Movement) int {
	if s.Column.numeric() {
		return cmp.Compare(numberOf(a, s.Column), numberOf(b, s.Column))
	}
	return strings.Compare(strings.ToLower(textOf(a, s.Column)), strings.ToLower(textOf(b, s.Column)))
}

// SortMovements ordena en sitio de forma estable.
func SortMovements(records []entity.Movement, s Sort) {
	slices.SortStableFunc(records, func(a, b entity.Movement) int {
		if s.Desc {
			return s.Compare(b, a)
		}
		return s.Compare(a, b)
	})
}

// sortRecent fecha descendente y, a igual fecha, id descendente.
func sortRecent(records []entity.Movement) {
	slices.SortStableFunc(records, func(a, b entity.Movement) int {
		if c := strings.Compare(b.Date, a.Date); c != 0 {
			return c
		}
		return cmp.Compare(b.ID, a.ID)
	})
}

// Recent los n movimientos más recientes.
func Recent(records []entity.Movement, n int) []entity.Movement {
	out := slices.Clone(records)
	sortRecent(out)
	if n >= 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

// ── Consulta completa ─────────────────────────────────────────────────────────

// Result página de una vista filtrada y ordenada.
type Result struct {
	Items    []entity.Movement
	Total    int
	Page     int
	Pages    int
	PageSize int
}

// Query filtra, ordena y devuelve la página actual del pager. Si la página pedida
// está fuera de rango el pager no cambia.
func Query(records []entity.Movement, c Criteria, s Sort, pager *Pager, page int) Result {
	filtered := Filter(records, c)
	SortMovements(filtered, s)
	total := len(filtered)
	pager.GoTo(page, total)
	return Result{
		Items:    pager.Slice(filtered),
		Total:    total,
		Page:     pager.Page(),
		Pages:    Pages(total),
		PageSize: PageSize,
	}
}
