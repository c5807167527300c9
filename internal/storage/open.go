package storage

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"todos/internal/config"
	"todos/internal/storage/filekv"
	"todos/internal/storage/memkv"
	"todos/internal/storage/sqlkv"
)

// Open builds the Adapter for the backend selected in cfg.
func Open(ctx context.Context, cfg *config.Config, log *logrus.Entry) (*Adapter, error) {
	if log != nil {
		log = log.WithField("backend", cfg.Storage.Backend)
	}

	var kv KV
	switch cfg.Storage.Backend {
	case config.BackendMemory:
		kv = memkv.New()
	case config.BackendMySQL, config.BackendPostgres:
		s, err := sqlkv.Open(ctx, cfg.Storage.Backend, cfg.Storage.DSN)
		if err != nil {
			return nil, err
		}
		kv = s
	case config.BackendFile, "":
		s, err := filekv.Open(cfg.StoragePath(), log)
		if err != nil {
			return nil, err
		}
		kv = s
	default:
		return nil, fmt.Errorf("unknown storage backend: %s", cfg.Storage.Backend)
	}

	return NewAdapter(kv, cfg.Storage.Key, log), nil
}
