package service

import (
	"context"
	"encoding/json"

	"github.com/Mester2001/portfolio/internal/models"
	"github.com/Mester2001/portfolio/pkg/errors"
)

// ProjectRepository persists the project collection.
type ProjectRepository interface {
	// Load returns found=false when nothing was ever saved.
	Load(ctx context.Context) (projects []models.Project, found bool, err error)
	Save(ctx context.Context, projects []models.Project) error
	List(ctx context.Context) ([]models.Project, error)
	// Upsert replaces the record with the same id, or prepends p.
	Upsert(ctx context.Context, p models.Project) error
	// Remove deletes every record with the given id and reports how many went.
	Remove(ctx context.Context, id models.ProjectID) (int, error)
}

// KVProjectRepository stores the whole collection as one JSON document under
// models.KeyProjects.
type KVProjectRepository struct {
	kv models.KeyValueStore
}

func NewKVProjectRepository(kv models.KeyValueStore) *KVProjectRepository {
	return &KVProjectRepository{kv: kv}
}

func (r *KVProjectRepository) Load(ctx context.Context) ([]models.Project, bool, error) {
	raw, found, err := r.kv.Get(ctx, models.KeyProjects)
	if err != nil || !found {
		return nil, false, err
	}

	var doc models.ProjectList
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return nil, true, errors.New(
			errors.RefKVStore,
			"Failed to decode stored projects",
			"The persisted project collection is not valid JSON",
			err,
			errors.LevelError,
		)
	}

	if doc.Projects == nil {
		doc.Projects = []models.Project{}
	}
	return doc.Projects, true, nil
}

func (r *KVProjectRepository) Save(ctx context.Context, projects []models.Project) error {
	if projects == nil {
		projects = []models.Project{}
	}

	body, err := json.MarshalIndent(models.ProjectList{Projects: projects}, "", "  ")
	if err != nil {
		return errors.New(errors.RefKVStore, "Failed to encode projects", "", err, errors.LevelError)
	}

	return r.kv.Set(ctx, models.KeyProjects, string(body))
}

func (r *KVProjectRepository) List(ctx context.Context) ([]models.Project, error) {
	projects, _, err := r.Load(ctx)
	if err != nil {
		return nil, err
	}
	if projects == nil {
		projects = []models.Project{}
	}
	return projects, nil
}

func (r *KVProjectRepository) Upsert(ctx context.Context, p models.Project) error {
	projects, err := r.List(ctx)
	if err != nil {
		return err
	}

	for i := range projects {
		if projects[i].ID == p.ID {
			projects[i] = p
			return r.Save(ctx, projects)
		}
	}

	return r.Save(ctx, append([]models.Project{p}, projects...))
}

func (r *KVProjectRepository) Remove(ctx context.Context, id models.ProjectID) (int, error) {
	projects, err := r.List(ctx)
	if err != nil {
		return 0, err
	}

	kept, removed := without(projects, id)
	if removed == 0 {
		return 0, nil
	}
	return removed, r.Save(ctx, kept)
}

func without(projects []models.Project, id models.ProjectID) ([]models.Project, int) {
	kept := make([]models.Project, 0, len(projects))
	for _, p := range projects {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	return kept, len(projects) - len(kept)
}
