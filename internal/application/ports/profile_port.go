package ports

import (
	"context"

	"github.com/jhoicas/Repuestos-api/internal/domain/entity"
)

// ProfileResolver resuelve el pool asignado y el ajuste de precio de un cliente.
// Nunca devuelve nil sin error: un cliente sin perfil recibe el pool por defecto y 0 %.
type ProfileResolver interface {
	Resolve(ctx context.Context, userID string) (*entity.CustomerProfile, error)
}
