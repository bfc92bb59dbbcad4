package integration

import (
	"context"
	"io"
	"log/slog"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"github.com/testcontainers/testcontainers-go"
	postgresContainer "github.com/testcontainers/testcontainers-go/modules/postgres"
	redisContainer "github.com/testcontainers/testcontainers-go/modules/redis"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/sp3dr4/folio/internal/application"
	postgresStore "github.com/sp3dr4/folio/internal/infrastructure/postgres"
	redisCache "github.com/sp3dr4/folio/internal/infrastructure/redis"
	"github.com/sp3dr4/folio/internal/infrastructure/schema"
)

var (
	sharedPostgres *postgresContainer.PostgresContainer
	sharedRedis    *redisContainer.RedisContainer
	sharedDB       *sqlx.DB
	sharedClient   *redis.Client
	containerOnce  sync.Once
	cleanupOnce    sync.Once
)

// TestEnvironment holds the test setup
type TestEnvironment struct {
	DB          *sqlx.DB
	RedisClient *redis.Client
	Store       *postgresStore.Store
	Cache       *redisCache.Cache
	Reader      *application.PostReader
	Admin       *application.AdminService
	Logger      *slog.Logger
}

// SetupTestEnvironment starts shared PostgreSQL and Redis containers, runs migrations,
// and returns services wired the way the server wires them
func SetupTestEnvironment(t *testing.T) *TestEnvironment {
	containerOnce.Do(func() {
		ctx := context.Background()

		pg, err := postgresContainer.Run(ctx,
			"postgres:16-alpine",
			postgresContainer.WithDatabase("folio_test"),
			postgresContainer.WithUsername("test"),
			postgresContainer.WithPassword("test"),
			testcontainers.WithWaitStrategy(
				wait.ForLog("database system is ready to accept connections").
					WithOccurrence(2).
					WithStartupTimeout(30*time.Second)),
		)
		if err != nil {
			t.Fatalf("failed to start postgres container: %v", err)
		}
		sharedPostgres = pg

		connStr, err := pg.ConnectionString(ctx, "sslmode=disable")
		if err != nil {
			t.Fatalf("failed to get connection string: %v", err)
		}

		db, err := sqlx.Connect("postgres", connStr)
		if err != nil {
			t.Fatalf("failed to connect to database: %v", err)
		}
		sharedDB = db

		if err := schema.Migrate(db, "postgres", "../../migrations"); err != nil {
			t.Fatalf("failed to run migrations: %v", err)
		}

		rc, err := redisContainer.Run(ctx, "redis:7-alpine")
		if err != nil {
			t.Fatalf("failed to start redis container: %v", err)
		}
		sharedRedis = rc

		redisURL, err := rc.ConnectionString(ctx)
		if err != nil {
			t.Fatalf("failed to get redis connection string: %v", err)
		}
		opts, err := redis.ParseURL(redisURL)
		if err != nil {
			t.Fatalf("failed to parse redis url: %v", err)
		}
		sharedClient = redis.NewClient(opts)
	})

	cleanDatabase(t, sharedDB)
	if err := sharedClient.FlushDB(context.Background()).Err(); err != nil {
		t.Fatalf("failed to flush redis: %v", err)
	}

	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	store := postgresStore.NewStore(sharedDB)
	cache := redisCache.NewCache(sharedClient, logger)
	reader := application.NewPostReader(store, cache, time.Minute, logger, nil)

	return &TestEnvironment{
		DB:          sharedDB,
		RedisClient: sharedClient,
		Store:       store,
		Cache:       cache,
		Reader:      reader,
		Admin:       application.NewAdminService(store, reader, logger, nil),
		Logger:      logger,
	}
}

// CleanupSharedResources should be called once at the end of all tests
func CleanupSharedResources() {
	cleanupOnce.Do(func() {
		ctx := context.Background()
		if sharedClient != nil {
			_ = sharedClient.Close()
		}
		if sharedDB != nil {
			_ = sharedDB.Close()
		}
		if sharedRedis != nil {
			_ = sharedRedis.Terminate(ctx)
		}
		if sharedPostgres != nil {
			_ = sharedPostgres.Terminate(ctx)
		}
	})
}

// cleanDatabase truncates all tables to ensure test isolation
func cleanDatabase(t *testing.T, db *sqlx.DB) {
	_, err := db.Exec("TRUNCATE TABLE posts, projects, researches CASCADE")
	if err != nil {
		t.Fatalf("failed to clean database: %v", err)
	}
}

// TestMain handles setup and teardown for the entire test suite
func TestMain(m *testing.M) {
	code := m.Run()

	CleanupSharedResources()

	// Exit with the same code as the tests
	os.Exit(code)
}
