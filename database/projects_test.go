package database

import (
	"context"
	"lotbook/models"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// forEachStore runs fn against every configured store. Stores other than
// the in-memory one are integration tests and are skipped in -short mode.
func forEachStore(t *testing.T, fn func(t *testing.T, s Store)) {
	t.Helper()
	for name, s := range GetTestStores() {
		t.Run(name, func(t *testing.T) {
			if name != "memory" && testing.Short() {
				t.Skip("skipping integration test")
			}
			CleanupTestStore(t, s)
			fn(t, s)
		})
	}
}

func sampleProject(name string) models.Project {
	return models.FromInput(models.ProjectInput{
		CompanyID: "C1",
		ProjectID: "P-" + name,
		Name:      name,
		Address1:  "1 Main St",
		City:      "Cebu City",
		Landmark:  "Old Tree",
		Coordinates: &models.Coordinates{
			Latitude:  "10.3157",
			Longitude: "123.8854",
		},
	}, models.MapOptions{})
}

func TestInsertProject(t *testing.T) {
	forEachStore(t, func(t *testing.T, s Store) {
		ctx := context.Background()

		res, err := s.InsertProject(ctx, sampleProject("Site A"))
		require.NoError(t, err)
		assert.True(t, res.Acknowledged)
		assert.NotEmpty(t, res.InsertedID)

		got, err := s.GetProject(ctx, res.InsertedID)
		require.NoError(t, err)
		assert.Equal(t, res.InsertedID, got.ID)
		assert.Equal(t, "Site A", got.Name)
		assert.Equal(t, "1 Main St", got.Address.Address1)
		assert.Equal(t, "10.3157", got.Coordinates.Latitude)
		assert.Equal(t, models.SchemaVersion, got.SchemaVersion)
	})
}

func TestListProjects(t *testing.T) {
	forEachStore(t, func(t *testing.T, s Store) {
		ctx := context.Background()

		projects, err := s.ListProjects(ctx)
		require.NoError(t, err)
		assert.NotNil(t, projects)
		assert.Empty(t, projects)

		want := map[string]bool{}
		for _, name := range []string{"Project 1", "Project 2", "Project 3"} {
			res, err := s.InsertProject(ctx, sampleProject(name))
			require.NoError(t, err)
			want[res.InsertedID] = true
		}

		projects, err = s.ListProjects(ctx)
		require.NoError(t, err)
		assert.Len(t, projects, 3)

		got := map[string]bool{}
		for _, p := range projects {
			got[p.ID] = true
		}
		assert.Equal(t, want, got)
	})
}

func TestGetProject_NotFound(t *testing.T) {
	forEachStore(t, func(t *testing.T, s Store) {
		_, err := s.GetProject(context.Background(), UnusedTestID(s))
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestGetProject_InvalidID(t *testing.T) {
	forEachStore(t, func(t *testing.T, s Store) {
		_, err := s.GetProject(context.Background(), "not-an-id")
		assert.ErrorIs(t, err, ErrInvalidID)
	})
}

func TestUpdateProject(t *testing.T) {
	forEachStore(t, func(t *testing.T, s Store) {
		ctx := context.Background()

		created, err := s.InsertProject(ctx, sampleProject("Site A"))
		require.NoError(t, err)

		updated := sampleProject("Site A Phase 2")
		updated.Landmark = ""
		res, err := s.UpdateProject(ctx, created.InsertedID, updated)
		require.NoError(t, err)
		assert.Equal(t, int64(1), res.MatchedCount)
		assert.Equal(t, int64(1), res.ModifiedCount)

		got, err := s.GetProject(ctx, created.InsertedID)
		require.NoError(t, err)
		assert.Equal(t, "Site A Phase 2", got.Name)
		assert.Empty(t, got.Landmark, "update replaces every tracked field")

		res, err = s.UpdateProject(ctx, created.InsertedID, updated)
		require.NoError(t, err)
		assert.Equal(t, int64(1), res.MatchedCount)
		assert.Equal(t, int64(0), res.ModifiedCount)
	})
}

func TestUpdateProject_NotFound(t *testing.T) {
	forEachStore(t, func(t *testing.T, s Store) {
		res, err := s.UpdateProject(context.Background(), UnusedTestID(s), sampleProject("ghost"))
		require.NoError(t, err)
		assert.Equal(t, int64(0), res.MatchedCount)
		assert.Equal(t, int64(0), res.ModifiedCount)
	})
}

func TestDeleteProject(t *testing.T) {
	forEachStore(t, func(t *testing.T, s Store) {
		ctx := context.Background()

		created, err := s.InsertProject(ctx, sampleProject("Site A"))
		require.NoError(t, err)
		kept, err := s.InsertProject(ctx, sampleProject("Site B"))
		require.NoError(t, err)

		res, err := s.DeleteProject(ctx, created.InsertedID)
		require.NoError(t, err)
		assert.Equal(t, int64(1), res.DeletedCount)

		_, err = s.GetProject(ctx, created.InsertedID)
		assert.ErrorIs(t, err, ErrNotFound)

		projects, err := s.ListProjects(ctx)
		require.NoError(t, err)
		require.Len(t, projects, 1)
		assert.Equal(t, kept.InsertedID, projects[0].ID)
	})
}

func TestDeleteProject_NotFound(t *testing.T) {
	forEachStore(t, func(t *testing.T, s Store) {
		res, err := s.DeleteProject(context.Background(), UnusedTestID(s))
		require.NoError(t, err)
		assert.True(t, res.Acknowledged)
		assert.Equal(t, int64(0), res.DeletedCount)
	})
}

func TestDeleteProject_InvalidID(t *testing.T) {
	forEachStore(t, func(t *testing.T, s Store) {
		_, err := s.DeleteProject(context.Background(), "nope")
		assert.ErrorIs(t, err, ErrInvalidID)
	})
}
