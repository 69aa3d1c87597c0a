package repository

import (
	"context"
	"fmt"

	"blogsmith/config/database"
	"blogsmith/internal/apperr"
	"blogsmith/internal/article/model"
)

const (
	DriverMemory   = "memory"
	DriverBolt     = "bolt"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Repository holds articles newest first. Insert puts an article at the
// front; All returns them in stored order.
type Repository interface {
	Insert(ctx context.Context, a model.Article) error
	All(ctx context.Context) ([]model.Article, error)
	Get(ctx context.Context, id string) (model.Article, error)
	Delete(ctx context.Context, id string) (remaining int, err error)
	Close() error
}

type OpenOptions struct {
	Driver string
	// Path is the bbolt or sqlite file.
	Path string
	// DSN is the postgres connection string.
	DSN string
}

// Open builds the repository selected by opt.Driver.
func Open(ctx context.Context, opt OpenOptions) (Repository, error) {
	switch opt.Driver {
	case "", DriverMemory:
		return NewMemoryRepository(), nil
	case DriverBolt:
		return OpenBolt(opt.Path)
	case DriverPostgres:
		db, err := database.Connect(ctx, "postgres", opt.DSN)
		if err != nil {
			return nil, err
		}
		return NewSQLRepository(ctx, db, DriverPostgres)
	case DriverSQLite:
		db, err := database.Connect(ctx, "sqlite", opt.Path)
		if err != nil {
			return nil, err
		}
		return NewSQLRepository(ctx, db, DriverSQLite)
	default:
		return nil, fmt.Errorf("repository: unknown driver %q", opt.Driver)
	}
}

func errNotFound() error {
	return apperr.NotFound("Blog post not found")
}
