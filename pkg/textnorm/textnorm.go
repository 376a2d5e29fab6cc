// Package textnorm pliega texto para comparaciones insensibles a mayúsculas y acentos.
package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Fold devuelve s en minúsculas, sin acentos ni diéresis (la ñ queda como n)
// y con los espacios internos colapsados a uno solo.
func Fold(s string) string {
	// El transformer guarda estado: uno por llamada.
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return strings.Join(strings.Fields(strings.ToLower(out)), " ")
}
