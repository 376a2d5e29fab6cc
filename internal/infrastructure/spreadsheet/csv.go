package spreadsheet

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"

	"github.com/jhoicas/inventario-pactra/internal/domain"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Números "limpios": sin ceros a la izquierda (lotes como 00123 siguen siendo texto).
var plainNumberRe = regexp.MustCompile(`^-?(0|[1-9]\d*)(\.\d+)?$`)

func readCSV(src io.Reader) ([][]any, error) {
	raw, err := io.ReadAll(src)
	if err != nil {
		return nil, fmt.Errorf("%w: leer csv: %w", domain.ErrValidation, err)
	}
	raw = bytes.TrimPrefix(raw, utf8BOM)
	// Excel en español guarda CSV en Windows-1252.
	if !utf8.Valid(raw) {
		if raw, err = charmap.Windows1252.NewDecoder().Bytes(raw); err != nil {
			return nil, fmt.Errorf("%w: codificación de csv: %w", domain.ErrValidation, err)
		}
	}

	r := csv.NewReader(bytes.NewReader(raw))
	r.Comma = detectDelimiter(raw)
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: csv mal formado: %w", domain.ErrValidation, err)
	}

	grid := make([][]any, 0, len(records))
	for _, rec := range records {
		cells := make([]any, len(rec))
		for i, v := range rec {
			cells[i] = inferCell(v)
		}
		grid = append(grid, cells)
	}
	return grid, nil
}

// detectDelimiter elige entre coma, punto y coma y tabulador según la primera línea.
func detectDelimiter(raw []byte) rune {
	line, _, _ := bytes.Cut(raw, []byte("\n"))
	best, bestN := ',', 0
	for _, d := range []rune{',', ';', '\t'} {
		if n := strings.Count(string(line), string(d)); n > bestN {
			best, bestN = d, n
		}
	}
	return best
}

func inferCell(v string) any {
	s := strings.TrimSpace(v)
	if plainNumberRe.MatchString(s) {
		if n, err := strconv.ParseFloat(s, 64); err == nil {
			return n
		}
	}
	return v
}
