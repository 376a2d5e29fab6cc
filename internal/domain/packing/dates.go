package packing

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Marcadores de fecha ausente; un documento usa siempre el mismo.
const (
	DocxPlaceholder = ""
	PDFPlaceholder  = "—"
)

var isoDateRe = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})$`)

// FormatDate YYYY-MM-DD → DD/MM/YYYY. Fechas vacías o mal formadas devuelven placeholder.
func FormatDate(iso, placeholder string) string {
	m := isoDateRe.FindStringSubmatch(strings.TrimSpace(iso))
	if m == nil {
		return placeholder
	}
	if _, err := time.Parse(time.DateOnly, m[0]); err != nil {
		return placeholder
	}
	return fmt.Sprintf("%s/%s/%s", m[3], m[2], m[1])
}
