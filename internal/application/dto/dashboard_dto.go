package dto

import (
	"github.com/jhoicas/inventario-pactra/internal/domain/entity"
	"github.com/jhoicas/inventario-pactra/internal/domain/inventory"
)

// TypeShareDTO conteo y porcentaje de un tipo de movimiento.
type TypeShareDTO struct {
	Type    string `json:"type"`
	Count   int    `json:"count"`
	Percent int    `json:"percent"`
}

// DashboardResponse respuesta de GET /dashboard.
type DashboardResponse struct {
	Total       int                `json:"total"`
	Entries     int                `json:"entries"`
	Exits       int                `json:"exits"`
	Transfers   int                `json:"transfers"`
	Returns     int                `json:"returns"`
	Adjustments int                `json:"adjustments"`
	Others      int                `json:"others"`
	Damaged     int                `json:"damaged"`
	Pallets     int                `json:"pallets"`
	Pieces      int                `json:"pieces"`
	Breakdown   []TypeShareDTO     `json:"breakdown"`
	Recent      []MovementResponse `json:"recent"`
}

// NewDashboardResponse mapea el tablero del dominio.
func NewDashboardResponse(d inventory.Dashboard) DashboardResponse {
	out := DashboardResponse{
		Total:       d.Total,
		Entries:     d.Count(entity.MovementEntry),
		Exits:       d.Count(entity.MovementExit),
		Transfers:   d.Count(entity.MovementTransfer),
		Returns:     d.Count(entity.MovementReturn),
		Adjustments: d.Count(entity.MovementAdjustment),
		Others:      d.Others,
		Damaged:     d.Damaged,
		Pallets:     d.Pallets,
		Pieces:      d.Pieces,
		Breakdown:   make([]TypeShareDTO, 0, len(d.Types)),
		Recent:      NewMovementResponses(d.Recent),
	}
	for _, s := range d.Types {
		out.Breakdown = append(out.Breakdown, TypeShareDTO{Type: s.Kind.Label(), Count: s.Count, Percent: s.Percent})
	}
	return out
}

// QueryResponse página de GET /records/view.
type QueryResponse struct {
	Items    []MovementResponse `json:"items"`
	Total    int                `json:"total"`
	Page     int                `json:"page"`
	Pages    int                `json:"pages"`
	PageSize int                `json:"pageSize"`
}

// NewQueryResponse mapea el resultado de inventory.Query.
func NewQueryResponse(r inventory.Result) QueryResponse {
	return QueryResponse{
		Items:    NewMovementResponses(r.Items),
		Total:    r.Total,
		Page:     r.Page,
		Pages:    r.Pages,
		PageSize: r.PageSize,
	}
}

// ModelGroupDTO resumen de un modelo.
type ModelGroupDTO struct {
	Model     string             `json:"model"`
	Movements int                `json:"movements"`
	Pallets   int                `json:"pallets"`
	Pieces    int                `json:"pieces"`
	Damaged   int                `json:"damaged"`
	ByType    map[string]int     `json:"byType"`
	Records   []MovementResponse `json:"records,omitempty"`
}

// NewModelGroupDTO mapea el grupo; withRecords incluye los movimientos.
func NewModelGroupDTO(g *inventory.ModelGroup, withRecords bool) ModelGroupDTO {
	out := ModelGroupDTO{
		Model:     g.Model,
		Movements: g.Count,
		Pallets:   g.Pallets,
		Pieces:    g.Pieces,
		Damaged:   g.Damaged,
		ByType:    g.ByType,
	}
	if withRecords {
		out.Records = NewMovementResponses(g.Records)
	}
	return out
}
