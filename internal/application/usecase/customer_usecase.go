package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Repuestos-api/internal/application/dto"
	"github.com/jhoicas/Repuestos-api/internal/application/ports"
	"github.com/jhoicas/Repuestos-api/internal/domain"
	"github.com/jhoicas/Repuestos-api/internal/domain/entity"
	"github.com/jhoicas/Repuestos-api/internal/domain/inventory"
	"github.com/jhoicas/Repuestos-api/internal/domain/repository"
	"github.com/jhoicas/Repuestos-api/pkg/logger"
)

var _ ports.ProfileResolver = (*CustomerUseCase)(nil)

var (
	minAdjustmentPct = decimal.NewFromInt(-100)
	maxAdjustmentPct = decimal.NewFromInt(1000)
)

// CustomerUseCase perfiles comerciales: pool asignado y ajuste porcentual de precio.
type CustomerUseCase struct {
	repo        repository.CustomerProfileRepository
	pools       inventory.PoolSet
	defaultPool string
	log         *logger.Logger
}

// NewCustomerUseCase construye el caso de uso. defaultPool se aplica a clientes sin perfil.
func NewCustomerUseCase(repo repository.CustomerProfileRepository, pools inventory.PoolSet, defaultPool string, log *logger.Logger) *CustomerUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &CustomerUseCase{repo: repo, pools: pools, defaultPool: defaultPool, log: log.Component("customers")}
}

// Resolve devuelve el perfil efectivo del cliente (con valores por defecto si no tiene).
func (uc *CustomerUseCase) Resolve(ctx context.Context, userID string) (*entity.CustomerProfile, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, fmt.Errorf("%w: usuario requerido", domain.ErrInvalidInput)
	}
	p, err := uc.repo.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return &entity.CustomerProfile{UserID: userID, AssignedPool: uc.defaultPool, PriceAdjustmentPct: decimal.Zero}, nil
	}
	if p.AssignedPool == "" {
		p.AssignedPool = uc.defaultPool
	}
	return p, nil
}

// Get perfil para administración.
func (uc *CustomerUseCase) Get(ctx context.Context, userID string) (*dto.CustomerProfileResponse, error) {
	stored, err := uc.repo.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	p, err := uc.Resolve(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := toProfileResponse(p)
	out.IsDefault = stored == nil
	return &out, nil
}

// List todos los perfiles guardados.
func (uc *CustomerUseCase) List(ctx context.Context) ([]dto.CustomerProfileResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CustomerProfileResponse, 0, len(list))
	for _, p := range list {
		if p.AssignedPool == "" {
			p.AssignedPool = uc.defaultPool
		}
		out = append(out, toProfileResponse(p))
	}
	return out, nil
}

// SetPool asigna un pool configurado al cliente.
func (uc *CustomerUseCase) SetPool(ctx context.Context, userID, pool string) error {
	if strings.TrimSpace(userID) == "" {
		return fmt.Errorf("%w: usuario requerido", domain.ErrInvalidInput)
	}
	if err := uc.pools.Validate(pool); err != nil {
		return err
	}
	if err := uc.repo.UpsertPool(ctx, userID, pool); err != nil {
		return err
	}
	uc.log.Info().Str("user_id", userID).Str("pool", pool).Msg("pool asignado")
	return nil
}

// SetPriceAdjustment fija el ajuste del cliente; debe quedar en (-100, 1000].
func (uc *CustomerUseCase) SetPriceAdjustment(ctx context.Context, userID string, pct decimal.Decimal) error {
	if strings.TrimSpace(userID) == "" {
		return fmt.Errorf("%w: usuario requerido", domain.ErrInvalidInput)
	}
	if pct.LessThanOrEqual(minAdjustmentPct) || pct.GreaterThan(maxAdjustmentPct) {
		return fmt.Errorf("%w: ajuste %s%% fuera de rango", domain.ErrInvalidInput, pct.String())
	}
	if err := uc.repo.UpsertPriceAdjustment(ctx, userID, pct); err != nil {
		return err
	}
	uc.log.Info().Str("user_id", userID).Str("pct", pct.String()).Msg("ajuste de precio actualizado")
	return nil
}

func toProfileResponse(p *entity.CustomerProfile) dto.CustomerProfileResponse {
	out := dto.CustomerProfileResponse{
		UserID:             p.UserID,
		AssignedPool:       p.AssignedPool,
		PriceAdjustmentPct: p.PriceAdjustmentPct,
	}
	if !p.UpdatedAt.IsZero() {
		t := p.UpdatedAt
		out.UpdatedAt = &t
	}
	return out
}
