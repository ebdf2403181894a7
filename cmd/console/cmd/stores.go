package cmd

import (
	"context"
	"fmt"

	"github.com/mwantia/console"
	"github.com/mwantia/console/history"
	"github.com/mwantia/console/history/consul"
	"github.com/mwantia/console/history/file"
	"github.com/mwantia/console/history/memory"
	"github.com/mwantia/console/history/postgres"
	"github.com/mwantia/console/history/s3"
	"github.com/mwantia/console/history/sqlite"
)

// newHistoryStore creates the store selected by cfg.Backend.
func newHistoryStore(ctx context.Context, cfg console.HistoryConfig) (history.Store, error) {
	switch cfg.Backend {
	case "", "file":
		return file.NewFileStore(cfg.Path)
	case "memory":
		return memory.NewMemoryStore(), nil
	case "sqlite":
		return sqlite.NewSQLiteStore(cfg.Path, cfg.Key)
	case "postgres":
		return postgres.NewPostgresStore(ctx, cfg.DSN, cfg.Key)
	case "consul":
		return consul.NewConsulStore(&consul.ConsulStoreConfig{
			Address: cfg.Address,
			Token:   cfg.Token,
			Key:     cfg.Key,
		})
	case "s3":
		return s3.NewS3Store(cfg.Endpoint, cfg.Bucket, cfg.Key, cfg.AccessKey, cfg.SecretKey, cfg.UseSSL)
	default:
		return nil, fmt.Errorf("%w: unknown history backend %q", console.ErrInvalidArgument, cfg.Backend)
	}
}
