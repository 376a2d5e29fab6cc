package inventory

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/inventario-pactra/internal/application/dto"
	"github.com/jhoicas/inventario-pactra/internal/domain"
	"github.com/jhoicas/inventario-pactra/internal/domain/entity"
	inv "github.com/jhoicas/inventario-pactra/internal/domain/inventory"
)

// ViewQuery parámetros de la tabla filtrada.
type ViewQuery struct {
	Q       string
	Type    string
	Damaged string
	Sort    string
	Dir     string // asc | desc
	Page    int
}

// Export archivo generado para descarga.
type Export struct {
	Bytes       []byte
	Filename    string
	ContentType string
}

// Encabezados del resumen por modelo exportado.
var summaryHeaders = []string{
	"Modelo", "Total Movimientos", "Total Piezas", "Total Pallets", "Con Daños",
	"Entradas", "Salidas", "Transferencias", "Devoluciones", "Ajustes",
}

var exportContentTypes = map[string]string{
	"csv":  "text/csv; charset=utf-8",
	"xlsx": "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
}

// ViewUseCase vistas derivadas del conjunto completo: tabla paginada, tablero,
// resumen por modelo y exportación. Cada llamada lee el conjunto actual.
type ViewUseCase struct {
	movements *MovementUseCase
	exporter  SummaryExporter
	now       func() time.Time
}

// NewViewUseCase construye el caso de uso.
func NewViewUseCase(movements *MovementUseCase, exporter SummaryExporter) *ViewUseCase {
	return &ViewUseCase{movements: movements, exporter: exporter, now: time.Now}
}

// Query filtra, ordena y pagina. Una página fuera de rango devuelve la primera.
func (uc *ViewUseCase) Query(ctx context.Context, q ViewQuery) (*dto.QueryResponse, error) {
	records, err := uc.movements.Records(ctx)
	if err != nil {
		return nil, err
	}
	sort := inv.DefaultSort
	if col, ok := inv.ParseColumn(q.Sort); ok {
		sort = inv.Sort{Column: col, Desc: strings.EqualFold(q.Dir, "desc")}
	}
	var pager inv.Pager
	res := inv.Query(records, inv.Criteria{Query: q.Q, Type: q.Type, Damaged: q.Damaged}, sort, &pager, q.Page)
	out := dto.NewQueryResponse(res)
	return &out, nil
}

// Dashboard totales, desglose por tipo y últimos movimientos.
func (uc *ViewUseCase) Dashboard(ctx context.Context) (*dto.DashboardResponse, error) {
	records, err := uc.movements.Records(ctx)
	if err != nil {
		return nil, err
	}
	out := dto.NewDashboardResponse(inv.Summarize(records))
	return &out, nil
}

// Damaged movimientos con daño, del más reciente al más antiguo.
func (uc *ViewUseCase) Damaged(ctx context.Context) ([]dto.MovementResponse, error) {
	records, err := uc.movements.Records(ctx)
	if err != nil {
		return nil, err
	}
	return dto.NewMovementResponses(inv.Damaged(records)), nil
}

// ModelSummary grupos por modelo, filtrados por q y ordenados por sort
// (name | pieces | movements | damaged; por defecto name).
func (uc *ViewUseCase) ModelSummary(ctx context.Context, q, sort string) ([]dto.ModelGroupDTO, error) {
	groups, err := uc.groups(ctx, q, sort)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ModelGroupDTO, 0, len(groups))
	for _, g := range groups {
		out = append(out, dto.NewModelGroupDTO(g, false))
	}
	return out, nil
}

// ModelDetail grupo de un modelo con sus movimientos. ErrNotFound si no existe.
func (uc *ViewUseCase) ModelDetail(ctx context.Context, name string) (*dto.ModelGroupDTO, error) {
	records, err := uc.movements.Records(ctx)
	if err != nil {
		return nil, err
	}
	g, ok := inv.FindGroup(records, name)
	if !ok {
		return nil, fmt.Errorf("modelo %q: %w", name, domain.ErrNotFound)
	}
	out := dto.NewModelGroupDTO(g, true)
	return &out, nil
}

// ExportModels resumen por modelo en csv o xlsx, ordenado por nombre.
func (uc *ViewUseCase) ExportModels(ctx context.Context, format string) (*Export, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	if format == "" {
		format = "xlsx"
	}
	contentType, ok := exportContentTypes[format]
	if !ok {
		return nil, fmt.Errorf("formato %q no soportado: %w", format, domain.ErrValidation)
	}
	groups, err := uc.groups(ctx, "", string(inv.GroupByName))
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := uc.exporter.Export(&buf, format, "Resumen por modelo", summaryHeaders, summaryRows(groups)); err != nil {
		return nil, fmt.Errorf("exportar resumen: %w", err)
	}
	return &Export{
		Bytes:       buf.Bytes(),
		Filename:    "Resumen_Modelos_" + uc.now().Format(time.DateOnly) + "." + format,
		ContentType: contentType,
	}, nil
}

// summaryRows una fila por grupo con las columnas de summaryHeaders.
func summaryRows(groups []*inv.ModelGroup) [][]any {
	rows := make([][]any, 0, len(groups))
	for _, g := range groups {
		rows = append(rows, []any{
			g.Model, g.Count, g.Pieces, g.Pallets, g.Damaged,
			g.TypeCount(entity.MovementEntry),
			g.TypeCount(entity.MovementExit),
			g.TypeCount(entity.MovementTransfer),
			g.TypeCount(entity.MovementReturn),
			g.TypeCount(entity.MovementAdjustment),
		})
	}
	return rows
}

func (uc *ViewUseCase) groups(ctx context.Context, q, sort string) ([]*inv.ModelGroup, error) {
	records, err := uc.movements.Records(ctx)
	if err != nil {
		return nil, err
	}
	if sort == "" {
		sort = string(inv.GroupByName)
	}
	groups := inv.FilterGroups(inv.GroupByModel(records), q)
	inv.SortGroups(groups, inv.GroupOrder(sort))
	return groups, nil
}
