package service

import (
	"context"
	"testing"

	"github.com/Mester2001/portfolio/internal/db"
	"github.com/Mester2001/portfolio/internal/models"
	"github.com/Mester2001/portfolio/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKVProjectRepository_LoadNothingSaved(t *testing.T) {
	repo := NewKVProjectRepository(db.NewMemoryDB())

	projects, found, err := repo.Load(context.Background())

	require.NoError(t, err)
	assert.False(t, found)
	assert.Nil(t, projects)

	list, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}

func TestKVProjectRepository_LoadCorruptDocument(t *testing.T) {
	ctx := context.Background()
	kv := db.NewMemoryDB()
	require.NoError(t, kv.Set(ctx, models.KeyProjects, "{not json"))

	_, found, err := NewKVProjectRepository(kv).Load(ctx)

	assert.True(t, found)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.RefKVStore))
}

func TestKVProjectRepository_SaveEmptyCollection(t *testing.T) {
	ctx := context.Background()
	kv := db.NewMemoryDB()
	repo := NewKVProjectRepository(kv)

	require.NoError(t, repo.Save(ctx, nil))

	raw, found, err := kv.Get(ctx, models.KeyProjects)
	require.NoError(t, err)
	require.True(t, found)
	assert.JSONEq(t, `{"projects":[]}`, raw)

	projects, found, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, []models.Project{}, projects)
}

func TestKVProjectRepository_UpsertAndRemove(t *testing.T) {
	ctx := context.Background()
	repo := NewKVProjectRepository(db.NewMemoryDB())

	require.NoError(t, repo.Upsert(ctx, models.Project{ID: 1, Title: "one", Tags: []string{}}))
	require.NoError(t, repo.Upsert(ctx, models.Project{ID: 2, Title: "two", Tags: []string{}}))
	require.NoError(t, repo.Upsert(ctx, models.Project{ID: 1, Title: "uno", Tags: []string{}}))

	projects, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, projects, 2)
	assert.Equal(t, "two", projects[0].Title)
	assert.Equal(t, "uno", projects[1].Title)

	removed, err := repo.Remove(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, removed)

	removed, err = repo.Remove(ctx, 1)
	require.NoError(t, err)
	assert.Zero(t, removed)

	projects, err = repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, projects, 1)
	assert.Equal(t, models.ProjectID(2), projects[0].ID)
}
