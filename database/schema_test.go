package database

import (
	"context"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var indexNamePattern = regexp.MustCompile(`(?i)CREATE\s+INDEX\s+IF\s+NOT\s+EXISTS\s+(\w+)`)

// The postgres test schema is created inline; it must carry every index the
// migration files create.
func TestPostgresTestSchemaMatchesMigrations(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	s, ok := GetTestStores()["postgres"]
	if !ok {
		t.Skip("TEST_DATABASE_URL not set")
	}
	pg := s.(*PostgresStore)

	files, err := filepath.Glob(filepath.Join("migrations", "*.sql"))
	require.NoError(t, err)
	require.NotEmpty(t, files)

	var want []string
	for _, file := range files {
		content, err := os.ReadFile(file)
		require.NoError(t, err)
		for _, m := range indexNamePattern.FindAllStringSubmatch(string(content), -1) {
			want = append(want, m[1])
		}
	}
	require.NotEmpty(t, want)

	rows, err := pg.Pool.Query(context.Background(),
		`SELECT indexname FROM pg_indexes WHERE tablename = 'projects'`)
	require.NoError(t, err)
	defer rows.Close()

	have := map[string]bool{}
	for rows.Next() {
		var name string
		require.NoError(t, rows.Scan(&name))
		have[name] = true
	}
	require.NoError(t, rows.Err())

	for _, name := range want {
		assert.True(t, have[name], "index %s missing from test schema", name)
	}
}
