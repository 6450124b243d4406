package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromViper_ValoresPorDefecto(t *testing.T) {
	cfg, err := fromViper(viper.New())
	require.NoError(t, err)

	assert.Equal(t, []string{"parts_stock", "HBD_stock"}, cfg.Stock.Pools)
	assert.Equal(t, "parts_stock", cfg.Stock.DefaultPool)
	assert.Equal(t, "postgres", cfg.Storage.Driver)
	assert.Equal(t, 10*time.Second, cfg.DB.TxTimeout)
	assert.Equal(t, 3, cfg.DB.TxMaxRetries)
	assert.False(t, cfg.Redis.Enabled())
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
}

func TestFromViper_ValoresComoString(t *testing.T) {
	v := viper.New()
	v.Set("DB_PORT", "6543")
	v.Set("STOCK_POOLS", "norte, sur")
	v.Set("DEFAULT_STOCK_POOL", "sur")
	v.Set("STORAGE_DRIVER", "MEMORY")
	v.Set("REDIS_ADDR", "localhost:6379")

	cfg, err := fromViper(v)
	require.NoError(t, err)
	assert.Equal(t, 6543, cfg.DB.Port)
	assert.Equal(t, []string{"norte", "sur"}, cfg.Stock.Pools)
	assert.Equal(t, "memory", cfg.Storage.Driver)
	assert.True(t, cfg.Redis.Enabled())
}

func TestFromViper_PoolPorDefectoDesconocido(t *testing.T) {
	v := viper.New()
	v.Set("DEFAULT_STOCK_POOL", "otro")
	_, err := fromViper(v)
	assert.Error(t, err)
}

func TestDBConfig_DSNEscapaPassword(t *testing.T) {
	c := DBConfig{Host: "db", Port: 5432, User: "app", Password: "p@ss/word", DBName: "repuestos", SSLMode: "disable"}
	assert.Equal(t, "postgres://app:p%40ss%2Fword@db:5432/repuestos?sslmode=disable", c.DSN())
	c.DatabaseURL = "postgres://otro"
	assert.Equal(t, "postgres://otro", c.ConnectionString())
}
