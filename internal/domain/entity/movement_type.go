package entity

import (
	"strings"

	"github.com/jhoicas/inventario-pactra/pkg/textnorm"
)

// MovementKind variante cerrada de tipos de movimiento.
type MovementKind int

const (
	MovementUnknown MovementKind = iota // valor histórico no reconocido
	MovementEntry
	MovementExit
	MovementTransfer
	MovementReturn
	MovementAdjustment
)

// MovementKinds tipos conocidos en orden de presentación.
var MovementKinds = []MovementKind{
	MovementEntry,
	MovementExit,
	MovementTransfer,
	MovementReturn,
	MovementAdjustment,
}

var kindLabels = map[MovementKind]string{
	MovementEntry:      "Entrada",
	MovementExit:       "Salida",
	MovementTransfer:   "Transferencia",
	MovementReturn:     "Devolución",
	MovementAdjustment: "Ajuste",
}

// Claves ya plegadas con textnorm.Fold.
var kindAliases = map[string]MovementKind{
	"entrada":       MovementEntry,
	"entry":         MovementEntry,
	"in":            MovementEntry,
	"salida":        MovementExit,
	"exit":          MovementExit,
	"out":           MovementExit,
	"transferencia": MovementTransfer,
	"transfer":      MovementTransfer,
	"traslado":      MovementTransfer,
	"devolucion":    MovementReturn,
	"return":        MovementReturn,
	"ajuste":        MovementAdjustment,
	"adjustment":    MovementAdjustment,
}

// Label etiqueta canónica (la que se guarda y se muestra). Vacía para MovementUnknown.
func (k MovementKind) Label() string { return kindLabels[k] }

// MovementType tipo de un movimiento. Los valores no reconocidos se conservan tal cual
// en Raw para no perder datos históricos.
type MovementType struct {
	kind MovementKind
	raw  string
}

// NewMovementType construye un tipo conocido.
func NewMovementType(k MovementKind) MovementType {
	return MovementType{kind: k}
}

// ParseMovementType reconoce etiquetas en español o inglés sin importar acentos ni mayúsculas.
func ParseMovementType(s string) MovementType {
	if k, ok := kindAliases[textnorm.Fold(s)]; ok {
		return MovementType{kind: k}
	}
	return MovementType{raw: strings.TrimSpace(s)}
}

// Kind variante del tipo.
func (t MovementType) Kind() MovementKind { return t.kind }

// Known indica si el tipo pertenece a la variante cerrada.
func (t MovementType) Known() bool { return t.kind != MovementUnknown }

// IsZero tipo vacío (sin valor almacenado).
func (t MovementType) IsZero() bool { return t.kind == MovementUnknown && t.raw == "" }

// String etiqueta canónica o el texto original si no se reconoció.
func (t MovementType) String() string {
	if t.kind != MovementUnknown {
		return t.kind.Label()
	}
	return t.raw
}
