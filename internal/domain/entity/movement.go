package entity

// Movement registro de la tabla de movimientos (entrada, salida, transferencia, devolución o ajuste).
type Movement struct {
	ID            int64
	Type          MovementType
	Date          string // YYYY-MM-DD o vacío
	Client        string
	Container     string
	Invoice       string
	Model         string
	LotNumber     string
	Pallets       int
	Pieces        int
	DamagedPieces int
	Damaged       bool
}

// Normalize aplica las invariantes de escritura: cantidades >= 0 y
// DamagedPieces > 0 implica Damaged.
func (m *Movement) Normalize() {
	m.Pallets = max(m.Pallets, 0)
	m.Pieces = max(m.Pieces, 0)
	m.DamagedPieces = max(m.DamagedPieces, 0)
	if m.DamagedPieces > 0 {
		m.Damaged = true
	}
}
