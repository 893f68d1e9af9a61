package database

import (
	"context"
	"fmt"
	"lotbook/models"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

var (
	testStores = map[string]Store{}
)

// GetTestStores returns the stores available to integration tests, keyed by
// driver name. The memory store is always present; mongo and postgres are
// added by TestMain when their URLs are configured.
func GetTestStores() map[string]Store {
	return testStores
}

// SetupTestPostgres connects to dbURL and creates the projects table.
// Migrations are embedded inline (not read from files) for test isolation.
func SetupTestPostgres(dbURL string) (*PostgresStore, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := Connect(ctx, dbURL, zap.NewNop())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to test database: %w", err)
	}

	if err := runTestMigrations(ctx, db); err != nil {
		db.Close(ctx)
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return db, nil
}

func runTestMigrations(ctx context.Context, db *PostgresStore) error {
	migrations := []string{
		`
		CREATE TABLE IF NOT EXISTS projects (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			doc JSONB NOT NULL,
			created_at TIMESTAMP NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMP NOT NULL DEFAULT NOW()
		);
		CREATE INDEX IF NOT EXISTS idx_projects_created_at ON projects(created_at);
		CREATE INDEX IF NOT EXISTS idx_projects_company_project ON projects ((doc->>'company_id'), (doc->>'project_id'));
		`,
	}

	for _, migration := range migrations {
		if _, err := db.Pool.Exec(ctx, migration); err != nil {
			return err
		}
	}

	return nil
}

// SetupTestMongo connects to uri and uses a dedicated test database.
func SetupTestMongo(uri string) (*MongoStore, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	store, err := ConnectMongo(ctx, uri, "lotbook_test", "Projects", zap.NewNop())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to test mongo: %w", err)
	}
	return store, nil
}

// CleanupTestStore removes every project for a fresh test state.
// Call this at the start of each integration test.
func CleanupTestStore(t *testing.T, s Store) {
	t.Helper()

	ctx := context.Background()
	switch store := s.(type) {
	case *PostgresStore:
		_, err := store.Pool.Exec(ctx, "TRUNCATE TABLE projects")
		require.NoError(t, err)
	case *MongoStore:
		_, err := store.Collection.DeleteMany(ctx, bson.D{})
		require.NoError(t, err)
	case *MemoryStore:
		store.mu.Lock()
		store.projects = make(map[string]models.Project)
		store.order = nil
		store.mu.Unlock()
	case *instrumentedStore:
		CleanupTestStore(t, store.Store)
	default:
		t.Fatalf("no cleanup for store %T", s)
	}
}

// UnusedTestID returns a well-formed identifier that no store has issued.
func UnusedTestID(s Store) string {
	switch store := s.(type) {
	case *PostgresStore:
		return uuid.New().String()
	case *instrumentedStore:
		return UnusedTestID(store.Store)
	default:
		return primitive.NewObjectID().Hex()
	}
}

// TeardownTestStores closes every test store.
// Should be called once in TestMain after all tests complete.
func TeardownTestStores() {
	for _, s := range testStores {
		_ = s.Close(context.Background())
	}
}
