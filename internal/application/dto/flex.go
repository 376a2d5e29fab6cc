package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-pactra/internal/domain/importer"
)

// Los formularios del navegador mandan números como texto; estos tipos aceptan
// ambas formas con la misma coerción que la importación de hojas de cálculo.

// FlexInt entero desde número JSON, texto ("12", "12 pzs") o null. Lo no numérico vale 0.
type FlexInt int

func (f *FlexInt) UnmarshalJSON(b []byte) error {
	v, err := decodeAny(b)
	if err != nil {
		return err
	}
	*f = FlexInt(importer.CoerceInt(v))
	return nil
}

// FlexBool booleano desde true/false, número (>0) o texto (si, sí, yes, true, x, ✓).
type FlexBool bool

func (f *FlexBool) UnmarshalJSON(b []byte) error {
	v, err := decodeAny(b)
	if err != nil {
		return err
	}
	flag, _ := importer.CoerceDamaged(v)
	*f = FlexBool(flag)
	return nil
}

// FlexDecimal decimal desde número o texto; vacío o null vale cero.
type FlexDecimal struct {
	decimal.Decimal
}

func (f *FlexDecimal) UnmarshalJSON(b []byte) error {
	s := decimalText(strings.Trim(strings.TrimSpace(string(b)), `"`))
	if s == "" || s == "null" {
		f.Decimal = decimal.Zero
		return nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return fmt.Errorf("número decimal inválido: %q", s)
	}
	f.Decimal = d
	return nil
}

// decimalText una sola coma sin punto es separador decimal ("25,5"); en otro caso
// las comas son separadores de miles ("1,250.5").
func decimalText(s string) string {
	s = strings.TrimSpace(s)
	if strings.Count(s, ",") == 1 && !strings.Contains(s, ".") {
		return strings.Replace(s, ",", ".", 1)
	}
	return strings.ReplaceAll(s, ",", "")
}

// NewFlexDecimal atajo para construir peticiones desde Go.
func NewFlexDecimal(d decimal.Decimal) FlexDecimal { return FlexDecimal{Decimal: d} }

func decodeAny(b []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	switch x := v.(type) {
	case json.Number:
		f, err := x.Float64()
		if err != nil {
			return nil, fmt.Errorf("número inválido: %s", x)
		}
		return f, nil
	case []any, map[string]any:
		return nil, fmt.Errorf("se esperaba un valor escalar: %s", b)
	}
	return v, nil
}
