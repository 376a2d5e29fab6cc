package importer

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/jhoicas/inventario-pactra/pkg/textnorm"
)

// Días entre 1899-12-30 (base de las fechas seriales de Excel) y 1970-01-01.
const excelEpochOffset = 25569

var (
	isoDateRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	dmyDateRe = regexp.MustCompile(`^(\d{1,2})[/-](\d{1,2})[/-](\d{2}|\d{4})$`)
	leadIntRe = regexp.MustCompile(`^[+-]?\d+`)
)

var damagedTokens = map[string]bool{
	"si": true, "yes": true, "true": true, "x": true, "✓": true, "✔": true,
}

// CoerceDate fecha ISO a partir de un serial de Excel, ISO, D/M/A o D-M-A.
// Cualquier otro texto se devuelve tal cual (recortado).
func CoerceDate(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case time.Time:
		return x.UTC().Format(time.DateOnly)
	case float64:
		return serialToISO(x)
	case int:
		return serialToISO(float64(x))
	case int64:
		return serialToISO(float64(x))
	}
	s := CoerceText(v)
	if s == "" || isoDateRe.MatchString(s) {
		return s
	}
	if m := dmyDateRe.FindStringSubmatch(s); m != nil {
		year := m[3]
		if len(year) == 2 {
			year = "20" + year
		}
		return fmt.Sprintf("%s-%s-%s", year, pad2(m[2]), pad2(m[1]))
	}
	return s
}

func pad2(s string) string {
	if len(s) == 1 {
		return "0" + s
	}
	return s
}

func serialToISO(serial float64) string {
	secs := int64((serial - excelEpochOffset) * 86400)
	return time.Unix(secs, 0).UTC().Format(time.DateOnly)
}

// CoerceDamaged bandera de daño y, si la celda era numérica, el conteo crudo de piezas.
func CoerceDamaged(v any) (flag bool, count int) {
	switch x := v.(type) {
	case nil:
		return false, 0
	case bool:
		return x, 0
	case float64:
		return numericDamage(x)
	case int:
		return numericDamage(float64(x))
	case int64:
		return numericDamage(float64(x))
	}
	s := CoerceText(v)
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return numericDamage(f)
	}
	if leadIntRe.MatchString(s) {
		return numericDamage(float64(CoerceInt(s)))
	}
	return damagedTokens[textnorm.Fold(s)], 0
}

func numericDamage(f float64) (bool, int) {
	if f > 0 {
		return true, int(f)
	}
	return false, 0
}

// CoerceInt entero inicial del valor; 0 si no hay número.
func CoerceInt(v any) int {
	switch x := v.(type) {
	case float64:
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return 0
		}
		return int(x)
	case int:
		return x
	case int64:
		return int(x)
	case bool, nil:
		return 0
	}
	m := leadIntRe.FindString(CoerceText(v))
	if m == "" {
		return 0
	}
	n, err := strconv.Atoi(m)
	if err != nil {
		return 0
	}
	return n
}

// CoerceText texto recortado; los números sin ceros decimales sobrantes.
func CoerceText(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(x)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case time.Time:
		return x.UTC().Format(time.DateOnly)
	}
	return strings.TrimSpace(fmt.Sprint(v))
}
