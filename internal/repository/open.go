package repository

import (
	"context"
	"fmt"

	"authapi/internal/config"
	"authapi/internal/db"
)

// CloseFunc releases the store connection.
type CloseFunc func(ctx context.Context) error

// Open connects to the credential store selected by cfg.StoreDriver and
// makes sure the unique email index exists before returning.
func Open(ctx context.Context, cfg *config.Config) (UserRepository, CloseFunc, error) {
	var (
		repo    UserRepository
		closeFn CloseFunc
	)

	switch cfg.StoreDriver {
	case config.DriverMongo:
		client, err := db.NewMongo(ctx, cfg.MongoURI())
		if err != nil {
			return nil, nil, err
		}
		repo = NewMongoUserRepository(client.Database(cfg.MongoDatabase))
		closeFn = client.Disconnect
	case config.DriverMySQL:
		gormDB, err := db.NewMySQL(ctx, cfg.MySQLDSN)
		if err != nil {
			return nil, nil, err
		}
		sqlDB, err := gormDB.DB()
		if err != nil {
			return nil, nil, fmt.Errorf("mysql handle: %w", err)
		}
		repo = NewUserRepository(gormDB)
		closeFn = func(context.Context) error { return sqlDB.Close() }
	case config.DriverMemory:
		repo = NewMemoryUserRepository()
		closeFn = func(context.Context) error { return nil }
	default:
		return nil, nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}

	if err := repo.EnsureIndexes(ctx); err != nil {
		_ = closeFn(ctx)
		return nil, nil, err
	}
	return repo, closeFn, nil
}
