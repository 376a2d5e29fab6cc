package inventory

import "github.com/jhoicas/inventario-pactra/internal/domain/entity"

// PageSize filas por página de la tabla de movimientos.
const PageSize = 15

// Pages cantidad de páginas para total filas: ceil(total / PageSize).
func Pages(total int) int {
	return (total + PageSize - 1) / PageSize
}

// Pager página actual de una vista. El cero vale como página 1.
type Pager struct {
	page int
}

// Page página actual (base 1).
func (p *Pager) Page() int {
	if p.page < 1 {
		return 1
	}
	return p.page
}

// GoTo cambia de página. Fuera de [1, Pages(total)] no hace nada y devuelve false.
func (p *Pager) GoTo(n, total int) bool {
	if n < 1 || n > Pages(total) {
		return false
	}
	p.page = n
	return true
}

// Reset vuelve a la primera página (al cambiar filtros u orden).
func (p *Pager) Reset() { p.page = 1 }

// Slice ventana de la página actual. Si el conjunto se redujo y la página ya no
// existe, vuelve a la primera.
func (p *Pager) Slice(items []entity.Movement) []entity.Movement {
	if p.Page() > max(Pages(len(items)), 1) {
		p.Reset()
	}
	start := (p.Page() - 1) * PageSize
	if start >= len(items) {
		return []entity.Movement{}
	}
	end := min(start+PageSize, len(items))
	return items[start:end]
}
