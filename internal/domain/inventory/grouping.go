package inventory

import (
	"cmp"
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/jhoicas/inventario-pactra/internal/domain/entity"
)

const (
	// NoModel grupo de los movimientos sin modelo.
	NoModel = "(Sin modelo)"
	// OtherType clave de ByType para movimientos sin tipo.
	OtherType = "Otro"
)

// ModelGroup acumulado de los movimientos de un mismo modelo.
type ModelGroup struct {
	Model   string
	Count   int
	Pallets int
	Pieces  int
	Damaged int
	ByType  map[string]int
	Records []entity.Movement
}

// TypeCount movimientos del grupo con el tipo k.
func (g *ModelGroup) TypeCount(k entity.MovementKind) int {
	return g.ByType[k.Label()]
}

// GroupByModel agrupa por modelo (recortado) en orden de primera aparición.
func GroupByModel(records []entity.Movement) []*ModelGroup {
	index := make(map[string]*ModelGroup)
	var groups []*ModelGroup
	for _, m := range records {
		key := strings.TrimSpace(m.Model)
		if key == "" {
			key = NoModel
		}
		g, ok := index[key]
		if !ok {
			g = &ModelGroup{Model: key, ByType: make(map[string]int)}
			index[key] = g
			groups = append(groups, g)
		}
		g.Count++
		g.Pallets += m.Pallets
		g.Pieces += m.Pieces
		if m.Damaged {
			g.Damaged++
		}
		t := m.Type.String()
		if t == "" {
			t = OtherType
		}
		g.ByType[t]++
		g.Records = append(g.Records, m)
	}
	return groups
}

// GroupOrder criterio de orden de los grupos.
type GroupOrder string

const (
	GroupByName      GroupOrder = "name"
	GroupByPieces    GroupOrder = "pieces"
	GroupByMovements GroupOrder = "movements"
	GroupByDamaged   GroupOrder = "damaged"
)

// SortGroups ordena en sitio. Nombre ascendente con colación española; el resto
// descendente. Un criterio desconocido conserva el orden de aparición.
func SortGroups(groups []*ModelGroup, by GroupOrder) {
	switch by {
	case GroupByName:
		coll := collate.New(language.Spanish)
		slices.SortStableFunc(groups, func(a, b *ModelGroup) int {
			return coll.CompareString(a.Model, b.Model)
		})
	case GroupByPieces:
		slices.SortStableFunc(groups, func(a, b *ModelGroup) int { return cmp.Compare(b.Pieces, a.Pieces) })
	case GroupByMovements:
		slices.SortStableFunc(groups, func(a, b *ModelGroup) int { return cmp.Compare(b.Count, a.Count) })
	case GroupByDamaged:
		slices.SortStableFunc(groups, func(a, b *ModelGroup) int { return cmp.Compare(b.Damaged, a.Damaged) })
	}
}

// FilterGroups grupos cuyo modelo contiene q (sin distinguir mayúsculas).
func FilterGroups(groups []*ModelGroup, q string) []*ModelGroup {
	q = strings.ToLower(strings.TrimSpace(q))
	if q == "" {
		return groups
	}
	out := make([]*ModelGroup, 0, len(groups))
	for _, g := range groups {
		if strings.Contains(strings.ToLower(g.Model), q) {
			out = append(out, g)
		}
	}
	return out
}

// FindGroup grupo del modelo indicado, con sus movimientos del más reciente al más antiguo.
func FindGroup(records []entity.Movement, model string) (*ModelGroup, bool) {
	model = strings.TrimSpace(model)
	if model == "" {
		model = NoModel
	}
	for _, g := range GroupByModel(records) {
		if g.Model == model {
			sortRecent(g.Records)
			return g, true
		}
	}
	return nil, false
}
