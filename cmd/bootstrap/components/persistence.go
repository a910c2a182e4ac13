package components

import (
	"invoice-dashboard/internal/infra/cache"
	"invoice-dashboard/internal/infra/db"
	"invoice-dashboard/internal/infra/readstore"
	"invoice-dashboard/internal/infra/repository"
	"invoice-dashboard/internal/pkg/config"
	"invoice-dashboard/internal/usecase/commands"
	"invoice-dashboard/internal/usecase/queries"
	"invoice-dashboard/internal/usecase/shared"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	fx.Provide(
		NewDBTX,
		fx.Annotate(
			shared.NewPgxRunner,
			fx.As(new(shared.TxRunner)),
		),
		// Write side
		fx.Annotate(
			repository.NewInvoiceRepository,
			fx.As(new(commands.InvoiceRepository)),
		),
		fx.Annotate(
			repository.NewUserRepository,
			fx.As(new(commands.UserRepository)),
		),
		// Read side
		fx.Annotate(
			readstore.NewInvoiceReadStore,
			fx.As(new(queries.InvoiceReadStore)),
		),
		fx.Annotate(
			readstore.NewCustomerReadStore,
			fx.As(new(queries.CustomerReadStore)),
		),
		fx.Annotate(
			readstore.NewUserReadStore,
			fx.As(new(queries.UserReadStore)),
		),
		// Listing cache serves reads and invalidation through one client
		NewListingCache,
		fx.Annotate(
			func(c *cache.ListingCache) *cache.ListingCache { return c },
			fx.As(new(queries.ListingCache)),
		),
		fx.Annotate(
			func(c *cache.ListingCache) *cache.ListingCache { return c },
			fx.As(new(commands.ListingInvalidator)),
		),
	),
)

func NewDBTX(pool *pgxpool.Pool) db.DBTX {
	return pool
}

func NewListingCache(rdb *redis.Client, cfg config.Config) *cache.ListingCache {
	return cache.NewListingCache(rdb, cfg.Redis.ListingTTL)
}
