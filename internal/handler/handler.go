package handler

import (
	"context"
	"encoding/json"
	"net/http"

	md "github.com/Mester2001/portfolio/internal/middleware"
	"github.com/Mester2001/portfolio/internal/models"
	"github.com/Mester2001/portfolio/internal/queue"
	"github.com/gorilla/mux"
)

type ProfileProvider interface {
	Username() string
	Snapshot() models.ProfileView
	Refresh(ctx context.Context) (models.ProfileView, error)
}

type ProjectManager interface {
	List() []models.Project
	Get(id models.ProjectID) (models.Project, bool)
	Create(ctx context.Context, in models.ProjectInput) models.Project
	Update(ctx context.Context, id models.ProjectID, in models.ProjectInput) (models.Project, error)
	Delete(ctx context.Context, id models.ProjectID, confirmed bool) (int, error)
}

type PreferenceManager interface {
	Get(ctx context.Context) models.Preferences
	ToggleTheme(ctx context.Context) (models.Preferences, error)
	ToggleLanguage(ctx context.Context) (models.Preferences, error)
}

type RefreshPublisher interface {
	PublishRefreshRequest(ctx context.Context, req queue.RefreshRequest) error
}

// APIHandler serves the JSON API mounted under /v1.
type APIHandler struct {
	profile     ProfileProvider
	projects    ProjectManager
	preferences PreferenceManager
	publisher   RefreshPublisher
}

// NewAPIHandler wires the API. publisher may be nil, in which case refresh
// requests run inline.
func NewAPIHandler(profile ProfileProvider, projects ProjectManager, preferences PreferenceManager, publisher RefreshPublisher) *APIHandler {
	return &APIHandler{
		profile:     profile,
		projects:    projects,
		preferences: preferences,
		publisher:   publisher,
	}
}

func (h *APIHandler) RegisterRoutes(r *mux.Router) {
	admin := func(fn http.HandlerFunc) http.Handler { return md.RequireAdmin(fn) }

	r.HandleFunc("/profile", h.getProfile).Methods("GET")
	r.HandleFunc("/profile/refresh", h.refreshProfile).Methods("POST")

	r.HandleFunc("/projects", h.listProjects).Methods("GET")
	r.HandleFunc("/projects/{id}", h.getProject).Methods("GET")
	r.Handle("/projects", admin(h.createProject)).Methods("POST")
	r.Handle("/projects/{id}", admin(h.updateProject)).Methods("PUT")
	r.Handle("/projects/{id}", admin(h.deleteProject)).Methods("DELETE")

	r.HandleFunc("/preferences", h.getPreferences).Methods("GET")
	r.HandleFunc("/preferences/theme/toggle", h.toggleTheme).Methods("POST")
	r.HandleFunc("/preferences/language/toggle", h.toggleLanguage).Methods("POST")
}

func writeSuccess(w http.ResponseWriter, status int, data any, message ...string) {
	resp := APIResponse{
		Status: "success",
		Data:   data,
	}
	if len(message) > 0 {
		resp.Message = message[0]
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(resp)
}
