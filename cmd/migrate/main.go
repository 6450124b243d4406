// Command migrate aplica las migraciones embebidas de PostgreSQL.
//
//	go run ./cmd/migrate -cmd up
//	go run ./cmd/migrate -cmd down
//	go run ./cmd/migrate -cmd status
package main

import (
	"context"
	"flag"
	"time"

	"github.com/jhoicas/Repuestos-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Repuestos-api/pkg/config"
	"github.com/jhoicas/Repuestos-api/pkg/logger"
)

func main() {
	command := flag.String("cmd", "up", "comando goose: up, up-by-one, down, redo, reset, status, version")
	timeout := flag.Duration("timeout", 5*time.Minute, "tiempo máximo de la operación")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel}).Component("migrate")

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if err := postgres.Migrate(ctx, pool, *command, flag.Args()...); err != nil {
		log.Fatal().Err(err).Str("cmd", *command).Msg("migración fallida")
	}
	log.Info().Str("cmd", *command).Msg("migración completada")
}
