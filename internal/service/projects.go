package service

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/Mester2001/portfolio/internal/config"
	"github.com/Mester2001/portfolio/internal/models"
	"github.com/Mester2001/portfolio/pkg/errors"
	"github.com/Mester2001/portfolio/pkg/logger"
)

const DeleteConfirmationText = "هل أنت متأكد من حذف هذا المشروع؟ لا يمكن التراجع عن هذا الإجراء."

// ProjectStore is the in-memory project collection, newest first. Every
// mutation is followed by a best-effort Persist.
type ProjectStore struct {
	mu       sync.RWMutex
	projects []models.Project
	saveMu   sync.Mutex

	repo        ProjectRepository
	seedPath    string
	hydrateFrom string
	manualSave  bool
	now         func() time.Time
}

type ProjectStoreOptions struct {
	SeedPath    string
	HydrateFrom string
	// ManualSave stops mutations from persisting on their own; the caller
	// calls Persist and sees its error.
	ManualSave bool
	Now        func() time.Time
}

func NewProjectStore(repo ProjectRepository, opts ProjectStoreOptions) *ProjectStore {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.HydrateFrom == "" {
		opts.HydrateFrom = config.HydrateFromSeed
	}

	return &ProjectStore{
		projects:    []models.Project{},
		repo:        repo,
		seedPath:    opts.SeedPath,
		hydrateFrom: opts.HydrateFrom,
		manualSave:  opts.ManualSave,
		now:         opts.Now,
	}
}

// Load hydrates the collection. The seed document is the source unless the
// store was configured to prefer a previously persisted collection. A failed
// load leaves an empty collection behind.
func (s *ProjectStore) Load(ctx context.Context) {
	projects := s.hydrate(ctx)
	if n := AssignMissingIDs(projects, nil, s.now()); n > 0 {
		logger.Warn("Gave %d project(s) without an id a fresh one", n)
	}

	s.mu.Lock()
	s.projects = projects
	s.mu.Unlock()

	logger.Info("Loaded %d projects", len(projects))
}

func (s *ProjectStore) hydrate(ctx context.Context) []models.Project {
	if s.hydrateFrom == config.HydrateFromStore {
		persisted, found, err := s.repo.Load(ctx)
		switch {
		case err != nil:
			logger.Warn("Error loading persisted projects, falling back to seed: %v", err)
		case found:
			return persisted
		}
	}

	if s.seedPath == "" {
		return []models.Project{}
	}

	projects, err := LoadSeed(s.seedPath)
	if err != nil {
		logger.Error("Error loading projects: %v", err)
		return []models.Project{}
	}
	return projects
}

// List returns a copy of the collection.
func (s *ProjectStore) List() []models.Project {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneProjects(s.projects)
}

func (s *ProjectStore) Get(id models.ProjectID) (models.Project, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, p := range s.projects {
		if p.ID == id {
			return cloneProject(p), true
		}
	}
	return models.Project{}, false
}

// Create stamps a fresh id and today's date onto in and prepends it. The
// caller validates the input.
func (s *ProjectStore) Create(ctx context.Context, in models.ProjectInput) models.Project {
	now := s.now()

	s.mu.Lock()
	p := models.Project{
		ID:   s.nextID(now),
		Date: now.Format("2006-01-02"),
	}
	in.Apply(&p)
	s.projects = append([]models.Project{p}, s.projects...)
	s.mu.Unlock()

	logger.Info("Created project %s (%q)", p.ID, p.Title)
	s.persist(ctx)
	return cloneProject(p)
}

// * nextID must be called with s.mu held
func (s *ProjectStore) nextID(now time.Time) models.ProjectID {
	return freeID(now, s.projects)
}

// freeID is now in milliseconds, bumped until no project in any of the
// given collections uses it.
func freeID(now time.Time, collections ...[]models.Project) models.ProjectID {
	id := models.ProjectID(now.UnixMilli())
	for hasID(id, collections...) {
		id++
	}
	return id
}

func hasID(id models.ProjectID, collections ...[]models.Project) bool {
	for _, ps := range collections {
		if slices.ContainsFunc(ps, func(p models.Project) bool { return p.ID == id }) {
			return true
		}
	}
	return false
}

// AssignMissingIDs gives every project whose id is zero a fresh one, unique
// within projects and reserved. It returns how many ids were assigned.
func AssignMissingIDs(projects, reserved []models.Project, now time.Time) int {
	assigned := 0
	for i := range projects {
		if projects[i].ID != 0 {
			continue
		}
		projects[i].ID = freeID(now, projects, reserved)
		assigned++
	}
	return assigned
}

// Update replaces every field of the matching project except its id and
// creation date.
func (s *ProjectStore) Update(ctx context.Context, id models.ProjectID, in models.ProjectInput) (models.Project, error) {
	s.mu.Lock()
	idx := slices.IndexFunc(s.projects, func(p models.Project) bool { return p.ID == id })
	if idx == -1 {
		s.mu.Unlock()
		return models.Project{}, errProjectNotFound(id)
	}

	updated := models.Project{ID: s.projects[idx].ID, Date: s.projects[idx].Date}
	in.Apply(&updated)
	s.projects[idx] = updated
	s.mu.Unlock()

	logger.Info("Updated project %s", id)
	s.persist(ctx)
	return cloneProject(updated), nil
}

// Delete removes every project with the given id, but only once the user has
// confirmed. Without confirmation nothing changes.
func (s *ProjectStore) Delete(ctx context.Context, id models.ProjectID, confirmed bool) (int, error) {
	if !confirmed {
		return 0, errors.New(
			errors.RefConfirmationRequired,
			"Deletion not confirmed",
			DeleteConfirmationText,
			nil,
			errors.LevelWarning,
		)
	}

	s.mu.Lock()
	kept, removed := without(s.projects, id)
	if removed == 0 {
		s.mu.Unlock()
		return 0, errProjectNotFound(id)
	}
	s.projects = kept
	s.mu.Unlock()

	logger.Info("Deleted %d project(s) with id %s", removed, id)
	s.persist(ctx)
	return removed, nil
}

// Persist writes the current collection to the repository. Saves are
// serialized and each one reads the collection after taking the lock, so
// the last write always carries the newest state.
func (s *ProjectStore) Persist(ctx context.Context) error {
	s.saveMu.Lock()
	defer s.saveMu.Unlock()
	return s.repo.Save(ctx, s.List())
}

// * persist never undoes the in-memory change; a failed write only logs
func (s *ProjectStore) persist(ctx context.Context) {
	if s.manualSave {
		return
	}
	if err := s.Persist(ctx); err != nil {
		logger.Error("Error saving projects: %v", err)
	}
}

func errProjectNotFound(id models.ProjectID) error {
	return errors.NotFound(
		errors.RefProjectNotFound,
		"Project not found",
		fmt.Sprintf("No project with id %s", id),
	)
}

func cloneProject(p models.Project) models.Project {
	p.Tags = slices.Clone(p.Tags)
	if p.GitHub != nil {
		v := *p.GitHub
		p.GitHub = &v
	}
	if p.Demo != nil {
		v := *p.Demo
		p.Demo = &v
	}
	return p
}

func cloneProjects(ps []models.Project) []models.Project {
	out := make([]models.Project, len(ps))
	for i, p := range ps {
		out[i] = cloneProject(p)
	}
	return out
}
