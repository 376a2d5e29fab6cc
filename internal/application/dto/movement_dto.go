package dto

import (
	"strings"

	"github.com/jhoicas/inventario-pactra/internal/domain/entity"
)

// MovementRequest body de POST /records y PUT /records/:id (sin id).
type MovementRequest struct {
	MovementType      string   `json:"movementType"`
	Date              string   `json:"date"`
	Client            string   `json:"client"`
	Container         string   `json:"container"`
	Invoice           string   `json:"invoice"`
	Model             string   `json:"model"`
	LotNumber         string   `json:"lotNumber"`
	PalletCount       FlexInt  `json:"palletCount"`
	PieceCount        FlexInt  `json:"pieceCount"`
	DamagedPieceCount FlexInt  `json:"damagedPieceCount"`
	IsDamaged         FlexBool `json:"isDamaged"`
}

// ToEntity movimiento con las invariantes de escritura aplicadas.
func (r MovementRequest) ToEntity() entity.Movement {
	m := entity.Movement{
		Type:          entity.ParseMovementType(r.MovementType),
		Date:          strings.TrimSpace(r.Date),
		Client:        r.Client,
		Container:     r.Container,
		Invoice:       r.Invoice,
		Model:         r.Model,
		LotNumber:     r.LotNumber,
		Pallets:       int(r.PalletCount),
		Pieces:        int(r.PieceCount),
		DamagedPieces: int(r.DamagedPieceCount),
		Damaged:       bool(r.IsDamaged),
	}
	m.Normalize()
	return m
}

// NewMovementRequest inverso de ToEntity (cliente Go e importación).
func NewMovementRequest(m entity.Movement) MovementRequest {
	return MovementRequest{
		MovementType:      m.Type.String(),
		Date:              m.Date,
		Client:            m.Client,
		Container:         m.Container,
		Invoice:           m.Invoice,
		Model:             m.Model,
		LotNumber:         m.LotNumber,
		PalletCount:       FlexInt(m.Pallets),
		PieceCount:        FlexInt(m.Pieces),
		DamagedPieceCount: FlexInt(m.DamagedPieces),
		IsDamaged:         FlexBool(m.Damaged),
	}
}

// MovementResponse registro tal como lo devuelve la API.
type MovementResponse struct {
	ID                int64  `json:"id"`
	MovementType      string `json:"movementType"`
	Date              string `json:"date"`
	Client            string `json:"client"`
	Container         string `json:"container"`
	Invoice           string `json:"invoice"`
	Model             string `json:"model"`
	LotNumber         string `json:"lotNumber"`
	PalletCount       int    `json:"palletCount"`
	PieceCount        int    `json:"pieceCount"`
	DamagedPieceCount int    `json:"damagedPieceCount"`
	IsDamaged         bool   `json:"isDamaged"`
}

// NewMovementResponse mapea la entidad.
func NewMovementResponse(m entity.Movement) MovementResponse {
	return MovementResponse{
		ID:                m.ID,
		MovementType:      m.Type.String(),
		Date:              m.Date,
		Client:            m.Client,
		Container:         m.Container,
		Invoice:           m.Invoice,
		Model:             m.Model,
		LotNumber:         m.LotNumber,
		PalletCount:       m.Pallets,
		PieceCount:        m.Pieces,
		DamagedPieceCount: m.DamagedPieces,
		IsDamaged:         m.Damaged,
	}
}

// ToEntity entidad a partir de la respuesta (caché del cliente).
func (r MovementResponse) ToEntity() entity.Movement {
	return entity.Movement{
		ID:            r.ID,
		Type:          entity.ParseMovementType(r.MovementType),
		Date:          r.Date,
		Client:        r.Client,
		Container:     r.Container,
		Invoice:       r.Invoice,
		Model:         r.Model,
		LotNumber:     r.LotNumber,
		Pallets:       r.PalletCount,
		Pieces:        r.PieceCount,
		DamagedPieces: r.DamagedPieceCount,
		Damaged:       r.IsDamaged,
	}
}

// NewMovementResponses mapea una lista; nunca devuelve nil.
func NewMovementResponses(list []entity.Movement) []MovementResponse {
	out := make([]MovementResponse, 0, len(list))
	for _, m := range list {
		out = append(out, NewMovementResponse(m))
	}
	return out
}

// BulkRequest body de POST /records/bulk.
type BulkRequest struct {
	Rows    []MovementRequest `json:"rows"`
	Replace bool              `json:"replace"`
}
