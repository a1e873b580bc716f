package main

import (
	"context"

	"go.uber.org/zap"

	"infaqku_backend/internals/configs"
	database "infaqku_backend/internals/databases"
	"infaqku_backend/internals/features/infaq/slots/repository"
)

// openStore memilih backend slot sesuai STORE_DRIVER.
func openStore(ctx context.Context, cfg configs.AppConfig, log *zap.Logger) (repository.Store, error) {
	if cfg.StoreDriver == configs.StoreDriverBolt {
		log.Info("📦 Memakai BoltDB", zap.String("path", cfg.BoltPath))
		return repository.OpenBoltStore(cfg.BoltPath)
	}

	db, err := database.ConnectDB(cfg, log)
	if err != nil {
		return nil, err
	}
	if err := database.TunePool(db); err != nil {
		log.Warn("pool tune gagal", zap.Error(err))
	}
	database.WarmUpQueries(db, log)
	return repository.NewGormStore(db), nil
}

// openGormStore khusus untuk perintah migrate.
func openGormStore(cfg configs.AppConfig, log *zap.Logger) (*repository.GormStore, error) {
	db, err := database.ConnectDB(cfg, log)
	if err != nil {
		return nil, err
	}
	return repository.NewGormStore(db), nil
}
