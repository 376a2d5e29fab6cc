// Package importer convierte la cuadrícula de una hoja de cálculo (primera fila =
// encabezados) en movimientos: reconoce encabezados por sinónimos y normaliza
// fechas, banderas de daño y números.
package importer

import (
	"fmt"

	"github.com/jhoicas/inventario-pactra/pkg/textnorm"
)

// Field campo canónico del movimiento al que apunta una columna.
type Field int

const (
	FieldNone Field = iota
	FieldType
	FieldDate
	FieldClient
	FieldContainer
	FieldInvoice
	FieldModel
	FieldLotNumber
	FieldPallets
	FieldPieces
	FieldDamaged
)

// Fields todos los campos importables.
var Fields = []Field{
	FieldType, FieldDate, FieldClient, FieldContainer, FieldInvoice,
	FieldModel, FieldLotNumber, FieldPallets, FieldPieces, FieldDamaged,
}

var fieldNames = map[Field]string{
	FieldType:      "tipo_movimiento",
	FieldDate:      "fecha",
	FieldClient:    "cliente",
	FieldContainer: "contenedor",
	FieldInvoice:   "factura",
	FieldModel:     "modelo",
	FieldLotNumber: "no_lote",
	FieldPallets:   "pallets",
	FieldPieces:    "piezas",
	FieldDamaged:   "danado",
}

func (f Field) String() string { return fieldNames[f] }

// synonyms encabezado normalizado → campo. Las claves deben estar ya normalizadas.
var synonyms = map[string]Field{
	"tipo de movimiento": FieldType,
	"tipo movimiento":    FieldType,
	"tipo":               FieldType,
	"movimiento":         FieldType,

	"fecha": FieldDate,
	"date":  FieldDate,

	"cliente":  FieldClient,
	"client":   FieldClient,
	"customer": FieldClient,

	"contenedor": FieldContainer,
	"container":  FieldContainer,
	"cont":       FieldContainer,

	"factura": FieldInvoice,
	"invoice": FieldInvoice,
	"fact":    FieldInvoice,

	"modelo":   FieldModel,
	"model":    FieldModel,
	"product":  FieldModel,
	"producto": FieldModel,

	"no lote":        FieldLotNumber,
	"no. lote":       FieldLotNumber,
	"lote":           FieldLotNumber,
	"no_lote":        FieldLotNumber,
	"lot":            FieldLotNumber,
	"num lote":       FieldLotNumber,
	"numero de lote": FieldLotNumber,

	"pallets": FieldPallets,
	"pallet":  FieldPallets,

	"piezas":   FieldPieces,
	"pieces":   FieldPieces,
	"qty":      FieldPieces,
	"cantidad": FieldPieces,

	"danado":         FieldDamaged,
	"damaged":        FieldDamaged,
	"dano":           FieldDamaged,
	"piezas danadas": FieldDamaged,
}

func init() {
	covered := make(map[Field]bool, len(Fields))
	for k, f := range synonyms {
		if NormalizeHeader(k) != k {
			panic(fmt.Sprintf("importer: sinónimo %q no está normalizado", k))
		}
		covered[f] = true
	}
	for _, f := range Fields {
		if !covered[f] {
			panic(fmt.Sprintf("importer: el campo %s no tiene sinónimos", f))
		}
	}
}

// NormalizeHeader minúsculas, sin espacios extremos y sin acentos ni ñ.
func NormalizeHeader(h string) string {
	return textnorm.Fold(h)
}

// MatchHeader campo para el encabezado, o FieldNone si no se reconoce.
func MatchHeader(h string) Field {
	return synonyms[NormalizeHeader(h)]
}
