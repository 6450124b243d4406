package inventory

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// NormalizePartNumber limpia un número de parte venido de carritos o cargas masivas:
// normaliza NFKC (hojas de cálculo suelen traer caracteres de ancho completo),
// quita espacios y guiones y pasa a mayúsculas.
func NormalizePartNumber(s string) string {
	s = strings.ToUpper(norm.NFKC.String(s))
	return strings.Map(func(r rune) rune {
		if r == '-' || unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}
