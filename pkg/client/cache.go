package client

import (
	"context"
	"slices"
	"sync"

	"github.com/jhoicas/inventario-pactra/internal/application/dto"
	"github.com/jhoicas/inventario-pactra/internal/domain/entity"
	"github.com/jhoicas/inventario-pactra/internal/domain/inventory"
)

// RecordCache copia local de /records. Se descarga una vez y se invalida tras
// cada escritura hecha a través de la caché; las vistas se calculan en local.
type RecordCache struct {
	c       *Client
	mu      sync.RWMutex
	records []entity.Movement
	loaded  bool
	pager   inventory.Pager
}

// NewRecordCache construye la caché vacía.
func NewRecordCache(c *Client) *RecordCache {
	return &RecordCache{c: c}
}

// Records conjunto completo; lo descarga si la caché no está cargada.
func (rc *RecordCache) Records(ctx context.Context) ([]entity.Movement, error) {
	rc.mu.RLock()
	if rc.loaded {
		out := slices.Clone(rc.records)
		rc.mu.RUnlock()
		return out, nil
	}
	rc.mu.RUnlock()
	if err := rc.Refresh(ctx); err != nil {
		return nil, err
	}
	rc.mu.RLock()
	defer rc.mu.RUnlock()
	return slices.Clone(rc.records), nil
}

// Refresh vuelve a descargar el conjunto.
func (rc *RecordCache) Refresh(ctx context.Context) error {
	list, err := rc.c.List(ctx)
	if err != nil {
		return err
	}
	records := make([]entity.Movement, 0, len(list))
	for _, r := range list {
		records = append(records, r.ToEntity())
	}
	rc.mu.Lock()
	rc.records, rc.loaded = records, true
	rc.mu.Unlock()
	return nil
}

// Invalidate descarta la copia; la próxima lectura la descarga de nuevo.
func (rc *RecordCache) Invalidate() {
	rc.mu.Lock()
	rc.records, rc.loaded = nil, false
	rc.mu.Unlock()
}

// ── Vistas locales ────────────────────────────────────────────────────────────

// Query tabla filtrada y ordenada. page fuera de rango conserva la página actual
// de la caché, como la paginación de la interfaz web.
func (rc *RecordCache) Query(ctx context.Context, c inventory.Criteria, s inventory.Sort, page int) (inventory.Result, error) {
	records, err := rc.Records(ctx)
	if err != nil {
		return inventory.Result{}, err
	}
	rc.mu.Lock()
	defer rc.mu.Unlock()
	return inventory.Query(records, c, s, &rc.pager, page), nil
}

// Dashboard tablero sobre la copia local.
func (rc *RecordCache) Dashboard(ctx context.Context) (inventory.Dashboard, error) {
	records, err := rc.Records(ctx)
	if err != nil {
		return inventory.Dashboard{}, err
	}
	return inventory.Summarize(records), nil
}

// Groups resumen por modelo filtrado por q y ordenado por order.
func (rc *RecordCache) Groups(ctx context.Context, q string, order inventory.GroupOrder) ([]*inventory.ModelGroup, error) {
	records, err := rc.Records(ctx)
	if err != nil {
		return nil, err
	}
	groups := inventory.FilterGroups(inventory.GroupByModel(records), q)
	inventory.SortGroups(groups, order)
	return groups, nil
}

// ── Escrituras ────────────────────────────────────────────────────────────────

// Create crea el movimiento y recarga la copia.
func (rc *RecordCache) Create(ctx context.Context, in dto.MovementRequest) (*dto.MovementResponse, error) {
	out, err := rc.c.Create(ctx, in)
	rc.afterWrite(ctx)
	return out, err
}

// Update actualiza y recarga la copia.
func (rc *RecordCache) Update(ctx context.Context, id int64, in dto.MovementRequest) error {
	err := rc.c.Update(ctx, id, in)
	rc.afterWrite(ctx)
	return err
}

// Delete elimina y recarga la copia.
func (rc *RecordCache) Delete(ctx context.Context, id int64) error {
	err := rc.c.Delete(ctx, id)
	rc.afterWrite(ctx)
	return err
}

// Bulk carga masiva y recarga la copia. Se invalida también si falla, porque
// las filas anteriores al error quedan guardadas.
func (rc *RecordCache) Bulk(ctx context.Context, rows []dto.MovementRequest, replace bool) (int, error) {
	n, err := rc.c.Bulk(ctx, rows, replace)
	rc.afterWrite(ctx)
	if replace && err == nil {
		rc.mu.Lock()
		rc.pager.Reset()
		rc.mu.Unlock()
	}
	return n, err
}

func (rc *RecordCache) afterWrite(ctx context.Context) {
	rc.Invalidate()
	// Si la recarga falla la caché queda invalidada y la siguiente lectura reintenta.
	_ = rc.Refresh(ctx)
}
