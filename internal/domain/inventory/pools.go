package inventory

import (
	"fmt"
	"strings"

	"github.com/jhoicas/Repuestos-api/internal/domain"
)

// PoolSet conjunto de pools de stock configurados (p. ej. parts_stock, HBD_stock).
type PoolSet struct {
	names   []string
	members map[string]struct{}
}

// NewPoolSet construye el conjunto ignorando nombres vacíos y duplicados.
func NewPoolSet(names ...string) PoolSet {
	ps := PoolSet{members: make(map[string]struct{}, len(names))}
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" {
			continue
		}
		if _, ok := ps.members[n]; ok {
			continue
		}
		ps.members[n] = struct{}{}
		ps.names = append(ps.names, n)
	}
	return ps
}

// Validate devuelve domain.ErrUnknownPool si el pool no está configurado.
func (ps PoolSet) Validate(pool string) error {
	if _, ok := ps.members[pool]; !ok {
		return fmt.Errorf("%w: %q", domain.ErrUnknownPool, pool)
	}
	return nil
}

// Names lista los pools en el orden configurado.
func (ps PoolSet) Names() []string {
	out := make([]string, len(ps.names))
	copy(out, ps.names)
	return out
}
