package inventory

import "github.com/jhoicas/Repuestos-api/internal/domain/entity"

// Allocate decide cuánto de lo solicitado se puede cubrir con el stock disponible (servicio de dominio).
// Nunca asigna más de lo solicitado ni más de lo disponible; "Fully Allocated" solo cuando
// available >= requested.
func Allocate(requested, available int64, exists bool) (int64, entity.AllocationStatus) {
	switch {
	case !exists:
		return 0, entity.AllocationInvalidPart
	case available >= requested:
		return requested, entity.AllocationFull
	case available > 0:
		return available, entity.AllocationPartial
	default:
		return 0, entity.AllocationOutOfStock
	}
}

// RequestLine línea de solicitud antes de asignar (carrito o carga masiva).
type RequestLine struct {
	PartNumber   string
	RequestedQty int64
}

// MergeLines agrupa las líneas por número de parte normalizado sumando cantidades.
// Conserva el orden de primera aparición: el orden de envío define la prioridad sobre stock escaso.
// Las líneas cuyo número de parte queda vacío tras normalizar se descartan.
func MergeLines(lines []RequestLine) []RequestLine {
	index := make(map[string]int, len(lines))
	merged := make([]RequestLine, 0, len(lines))
	for _, l := range lines {
		pn := NormalizePartNumber(l.PartNumber)
		if pn == "" {
			continue
		}
		if i, ok := index[pn]; ok {
			merged[i].RequestedQty += l.RequestedQty
			continue
		}
		index[pn] = len(merged)
		merged = append(merged, RequestLine{PartNumber: pn, RequestedQty: l.RequestedQty})
	}
	return merged
}
