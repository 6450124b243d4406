package redis

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/Repuestos-api/internal/application/ports"
	"github.com/jhoicas/Repuestos-api/pkg/config"
)

const (
	keyNamespace      = "repuestos"
	idempotencyPrefix = "idempotency"
	defaultTTL        = 24 * time.Hour
)

var _ ports.IdempotencyGuard = (*IdempotencyStore)(nil)

type cmdable interface {
	Ping(context.Context) *redis.StatusCmd
	Set(context.Context, string, any, time.Duration) *redis.StatusCmd
	Get(context.Context, string) *redis.StringCmd
	SetNX(context.Context, string, any, time.Duration) *redis.BoolCmd
	Del(context.Context, ...string) *redis.IntCmd
}

// IdempotencyStore guarda en Redis las claves Idempotency-Key de creación de pedidos.
// El valor es "pending" mientras el pedido se crea y luego el id del pedido.
type IdempotencyStore struct {
	store cmdable
	raw   *redis.Client
	ttl   time.Duration
}

// New conecta con Redis (REDIS_URL o REDIS_ADDR) y verifica la conexión.
func New(ctx context.Context, cfg config.RedisConfig) (*IdempotencyStore, error) {
	opts, err := optionsFromConfig(cfg)
	if err != nil {
		return nil, err
	}
	raw := redis.NewClient(opts)
	if err := raw.Ping(ctx).Err(); err != nil {
		_ = raw.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return newStore(raw, raw, cfg.IdempotencyTTL), nil
}

func newStore(store cmdable, raw *redis.Client, ttl time.Duration) *IdempotencyStore {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &IdempotencyStore{store: store, raw: raw, ttl: ttl}
}

func optionsFromConfig(cfg config.RedisConfig) (*redis.Options, error) {
	if !cfg.Enabled() {
		return nil, errors.New("redis url or address is required")
	}
	var opts *redis.Options
	if cfg.URL != "" {
		parsed, err := redis.ParseURL(cfg.URL)
		if err != nil {
			return nil, fmt.Errorf("parsing redis url: %w", err)
		}
		opts = parsed
	} else {
		opts = &redis.Options{
			Addr:     cfg.Address,
			Password: cfg.Password,
			DB:       cfg.DB,
		}
	}
	if opts.PoolSize == 0 {
		opts.PoolSize = cfg.PoolSize
	}
	if opts.DialTimeout == 0 {
		opts.DialTimeout = cfg.DialTimeout
	}
	return opts, nil
}

// Ping comprueba la conexión (health check).
func (s *IdempotencyStore) Ping(ctx context.Context) error {
	return s.store.Ping(ctx).Err()
}

// Close cierra el cliente subyacente.
func (s *IdempotencyStore) Close() error {
	if s.raw == nil {
		return nil
	}
	return s.raw.Close()
}

// Reserve toma la clave con SETNX. Si ya existía devuelve su valor actual.
func (s *IdempotencyStore) Reserve(ctx context.Context, scope, key string) (string, bool, error) {
	k := s.key(scope, key)
	ok, err := s.store.SetNX(ctx, k, ports.IdempotencyPending, s.ttl).Result()
	if err != nil {
		return "", false, fmt.Errorf("reserve idempotency key: %w", err)
	}
	if ok {
		return "", true, nil
	}
	val, err := s.store.Get(ctx, k).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			// expiró entre SETNX y GET: se trata como en curso
			return ports.IdempotencyPending, false, nil
		}
		return "", false, fmt.Errorf("read idempotency key: %w", err)
	}
	return val, false, nil
}

// Complete guarda el id del pedido creado.
func (s *IdempotencyStore) Complete(ctx context.Context, scope, key, orderID string) error {
	if err := s.store.Set(ctx, s.key(scope, key), orderID, s.ttl).Err(); err != nil {
		return fmt.Errorf("complete idempotency key: %w", err)
	}
	return nil
}

// Release borra la clave para permitir reintentar.
func (s *IdempotencyStore) Release(ctx context.Context, scope, key string) error {
	if err := s.store.Del(ctx, s.key(scope, key)).Err(); err != nil {
		return fmt.Errorf("release idempotency key: %w", err)
	}
	return nil
}

func (s *IdempotencyStore) key(scope, key string) string {
	parts := []string{keyNamespace, idempotencyPrefix, "orders"}
	for _, p := range []string{scope, key} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ":")
}
