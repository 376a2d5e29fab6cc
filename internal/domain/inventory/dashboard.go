package inventory

import (
	"math"

	"github.com/jhoicas/inventario-pactra/internal/domain/entity"
)

// RecentCount movimientos recientes que muestra el tablero.
const RecentCount = 5

// TypeShare conteo y porcentaje de un tipo de movimiento.
type TypeShare struct {
	Kind    entity.MovementKind
	Count   int
	Percent int
}

// Dashboard agregados del conjunto completo.
type Dashboard struct {
	Total   int
	Types   []TypeShare // los cinco tipos, en orden de entity.MovementKinds
	Others  int         // tipos vacíos o no reconocidos
	Damaged int
	Pallets int
	Pieces  int
	Recent  []entity.Movement
}

// Count movimientos del tipo k.
func (d Dashboard) Count(k entity.MovementKind) int {
	for _, s := range d.Types {
		if s.Kind == k {
			return s.Count
		}
	}
	return 0
}

// Summarize calcula el tablero. La suma de Types más Others es igual a Total.
func Summarize(records []entity.Movement) Dashboard {
	counts := make(map[entity.MovementKind]int, len(entity.MovementKinds))
	d := Dashboard{Total: len(records)}
	for _, m := range records {
		if m.Type.Known() {
			counts[m.Type.Kind()]++
		} else {
			d.Others++
		}
		if m.Damaged {
			d.Damaged++
		}
		d.Pallets += m.Pallets
		d.Pieces += m.Pieces
	}
	d.Types = make([]TypeShare, 0, len(entity.MovementKinds))
	for _, k := range entity.MovementKinds {
		d.Types = append(d.Types, TypeShare{Kind: k, Count: counts[k], Percent: Percent(counts[k], d.Total)})
	}
	d.Recent = Recent(records, RecentCount)
	return d
}

// Percent round(part/total*100); 0 cuando total es 0.
func Percent(part, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(part) / float64(total) * 100))
}
