//go:build e2e

package e2e

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"testing"
	"time"

	"invoice-dashboard/cmd/bootstrap"
	"invoice-dashboard/internal/handler"
	"invoice-dashboard/internal/handler/api"
	"invoice-dashboard/internal/handler/middleware"
	"invoice-dashboard/internal/infra/cache"
	"invoice-dashboard/internal/infra/readstore"
	"invoice-dashboard/internal/infra/repository"
	"invoice-dashboard/internal/pkg/clock"
	"invoice-dashboard/internal/pkg/config"
	"invoice-dashboard/internal/pkg/password"
	"invoice-dashboard/internal/usecase"
	"invoice-dashboard/internal/usecase/commands"
	"invoice-dashboard/internal/usecase/queries"
	"invoice-dashboard/internal/usecase/shared"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"
	"github.com/testcontainers/testcontainers-go/wait"
)

var (
	containersOnce    sync.Once
	postgresContainer *tcpostgres.PostgresContainer
	redisContainer    *tcredis.RedisContainer
	postgresDSN       string
	redisURL          string
	containersErr     error
)

const (
	testDBName   = "invoice_dashboard_test"
	testDBUser   = "test"
	testDBPass   = "testpass"
	testPassword = "password123"
)

type testEnv struct {
	pool   *pgxpool.Pool
	rdb    *goredis.Client
	router *gin.Engine
	cfg    config.Config
}

func setupE2EEnvironment(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	startContainersOnce(t)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, postgresDSN)
	require.NoError(t, err, "failed to connect to test database")
	t.Cleanup(pool.Close)

	applyMigrations(t, pool)

	rdb, err := cache.NewRedis(redisURL)
	require.NoError(t, err, "failed to connect to test redis")
	t.Cleanup(func() { _ = rdb.Close() })

	// each test starts from clean tables and a cold cache
	truncateAll(t, pool)
	require.NoError(t, rdb.FlushDB(ctx).Err())

	cfg := config.NewTestConfig()
	cfg.Redis.URL = redisURL

	router := buildRouter(pool, rdb, cfg)

	return &testEnv{pool: pool, rdb: rdb, router: router, cfg: cfg}
}

func startContainersOnce(t *testing.T) {
	t.Helper()

	containersOnce.Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
		defer cancel()

		postgresContainer, containersErr = tcpostgres.Run(ctx, "postgres:16-alpine",
			tcpostgres.WithDatabase(testDBName),
			tcpostgres.WithUsername(testDBUser),
			tcpostgres.WithPassword(testDBPass),
			testcontainers.WithWaitStrategy(
				wait.ForLog("database system is ready to accept connections").
					WithOccurrence(2).
					WithStartupTimeout(60*time.Second)),
		)
		if containersErr != nil {
			return
		}

		postgresDSN, containersErr = postgresContainer.ConnectionString(ctx, "sslmode=disable")
		if containersErr != nil {
			return
		}

		redisContainer, containersErr = tcredis.Run(ctx, "redis:7-alpine")
		if containersErr != nil {
			return
		}

		redisURL, containersErr = redisContainer.ConnectionString(ctx)
	})

	require.NoError(t, containersErr, "failed to start test containers")
}

func applyMigrations(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	_, thisFile, _, ok := runtime.Caller(0)
	require.True(t, ok)
	migrationsDir := filepath.Join(filepath.Dir(thisFile), "..", "..", "migrations")

	entries, err := os.ReadDir(migrationsDir)
	require.NoError(t, err, "failed to read migrations directory")

	ctx := context.Background()
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".sql" {
			continue
		}
		sql, err := os.ReadFile(filepath.Join(migrationsDir, entry.Name()))
		require.NoError(t, err)
		_, err = pool.Exec(ctx, string(sql))
		require.NoError(t, err, "failed to apply migration %s", entry.Name())
	}
}

func truncateAll(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()
	_, err := pool.Exec(context.Background(), "TRUNCATE invoices, customers, users CASCADE")
	require.NoError(t, err)
}

func buildRouter(pool *pgxpool.Pool, rdb *goredis.Client, cfg config.Config) *gin.Engine {
	jwtService := bootstrap.NewJWTService(cfg)
	txRunner := shared.NewPgxRunner(pool)
	listingCache := cache.NewListingCache(rdb, cfg.Redis.ListingTTL)

	invoiceReadStore := readstore.NewInvoiceReadStore(pool)
	customerReadStore := readstore.NewCustomerReadStore(pool)
	userReadStore := readstore.NewUserReadStore(pool)

	invoiceQueries := queries.NewInvoiceQueries(invoiceReadStore, listingCache)
	customerQueries := queries.NewCustomerQueries(customerReadStore)
	userQueries := queries.NewUserQueries(userReadStore)

	invoiceCommands := commands.NewInvoiceCommands(txRunner, repository.NewInvoiceRepository(), listingCache, clock.NewRealClock())
	authCommands := commands.NewAuthCommands(txRunner, repository.NewUserRepository(), userReadStore, jwtService)

	invoiceHandler := api.NewInvoiceHandler(invoiceCommands, invoiceQueries, customerQueries)
	authHandler := api.NewAuthHandler(authCommands, userQueries, jwtService, cfg)
	authMiddleware := middleware.NewAuthMiddleware(usecase.NewTokenValidator(jwtService))

	engine := gin.New()
	handler.NewRouter(engine, cfg, authHandler, invoiceHandler, authMiddleware)
	return engine
}

func createTestUser(t *testing.T, pool *pgxpool.Pool, email, role string) uuid.UUID {
	t.Helper()

	hash, err := password.HashPassword(testPassword)
	require.NoError(t, err)

	id := uuid.New()
	_, err = pool.Exec(context.Background(),
		"INSERT INTO users (id, name, email, password_hash, role, is_active) VALUES ($1, $2, $3, $4, $5, true)",
		id, "Test User", email, hash, role)
	require.NoError(t, err)
	return id
}

func createTestCustomer(t *testing.T, pool *pgxpool.Pool, name, email string) uuid.UUID {
	t.Helper()

	id := uuid.New()
	_, err := pool.Exec(context.Background(),
		"INSERT INTO customers (id, name, email) VALUES ($1, $2, $3)",
		id, name, email)
	require.NoError(t, err)
	return id
}
