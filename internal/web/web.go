// Package web renders the portfolio page and the admin project forms.
package web

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"strings"

	md "github.com/Mester2001/portfolio/internal/middleware"
	"github.com/Mester2001/portfolio/internal/models"
	"github.com/Mester2001/portfolio/internal/service"
	"github.com/Mester2001/portfolio/pkg/errors"
	"github.com/Mester2001/portfolio/pkg/logger"
	"github.com/gorilla/mux"
)

//go:embed templates/*.html
var templatesFS embed.FS

type ProfileSource interface {
	Snapshot() models.ProfileView
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

// Chrome is the part every page shares: document attributes and the two
// preference buttons.
type Chrome struct {
	Title          string
	Prefs          models.Preferences
	Admin          bool
	ThemeAction    string
	LanguageAction string
}

type IndexPage struct {
	Chrome
	Profile models.ProfileView
	Grid    ProjectGrid
}

type FormPage struct {
	Chrome
	Heading  string
	Action   string
	Submit   string
	Error    string
	Input    models.ProjectInput
	TagsText string
}

type ConfirmPage struct {
	Chrome
	Project models.Project
	Message string
	Action  string
}

type PageHandler struct {
	profile     ProfileSource
	projects    ProjectManager
	preferences PreferenceManager
	templates   *template.Template
}

func New(profile ProfileSource, projects ProjectManager, preferences PreferenceManager) (*PageHandler, error) {
	tmpl, err := template.New("").ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	return &PageHandler{
		profile:     profile,
		projects:    projects,
		preferences: preferences,
		templates:   tmpl,
	}, nil
}

// RegisterRoutes mounts the pages. The router is expected to run
// middleware.AdminMode so the admin flag reaches the handlers.
func (h *PageHandler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/", h.index).Methods("GET")
	r.HandleFunc("/preferences/theme", h.toggleTheme).Methods("POST")
	r.HandleFunc("/preferences/language", h.toggleLanguage).Methods("POST")

	admin := r.PathPrefix("/admin/projects").Subrouter()
	admin.Use(md.RequireAdmin)
	admin.HandleFunc("/new", h.newProject).Methods("GET")
	admin.HandleFunc("", h.createProject).Methods("POST")
	admin.HandleFunc("/{id}/edit", h.editProject).Methods("GET")
	admin.HandleFunc("/{id}", h.updateProject).Methods("POST")
	admin.HandleFunc("/{id}/delete", h.confirmDelete).Methods("GET")
	admin.HandleFunc("/{id}/delete", h.deleteProject).Methods("POST")
}

func (h *PageHandler) chrome(r *http.Request, title string) Chrome {
	admin := md.IsAdmin(r.Context())
	return Chrome{
		Title:          title,
		Prefs:          h.preferences.Get(r.Context()),
		Admin:          admin,
		ThemeAction:    "/preferences/theme" + adminQuery(admin),
		LanguageAction: "/preferences/language" + adminQuery(admin),
	}
}

func adminQuery(admin bool) string {
	if admin {
		return "?admin=true"
	}
	return ""
}

func (h *PageHandler) index(w http.ResponseWriter, r *http.Request) {
	profile := h.profile.Snapshot()
	admin := md.IsAdmin(r.Context())

	h.render(w, http.StatusOK, "index.html", IndexPage{
		Chrome:  h.chrome(r, profile.Name),
		Profile: profile,
		Grid:    BuildGrid(h.projects.List(), admin),
	})
}

func (h *PageHandler) toggleTheme(w http.ResponseWriter, r *http.Request) {
	if _, err := h.preferences.ToggleTheme(r.Context()); err != nil {
		logger.Error("Error saving theme: %v", err)
	}
	h.home(w, r)
}

func (h *PageHandler) toggleLanguage(w http.ResponseWriter, r *http.Request) {
	if _, err := h.preferences.ToggleLanguage(r.Context()); err != nil {
		logger.Error("Error saving language: %v", err)
	}
	h.home(w, r)
}

func (h *PageHandler) newProject(w http.ResponseWriter, r *http.Request) {
	h.render(w, http.StatusOK, "project_form.html", FormPage{
		Chrome:  h.chrome(r, AddProjectText),
		Heading: AddProjectText,
		Action:  "/admin/projects?admin=true",
		Submit:  "إضافة المشروع",
	})
}

func (h *PageHandler) createProject(w http.ResponseWriter, r *http.Request) {
	in := formInput(r)
	if err := in.Validate(); err != nil {
		h.render(w, http.StatusBadRequest, "project_form.html", FormPage{
			Chrome:   h.chrome(r, AddProjectText),
			Heading:  AddProjectText,
			Action:   "/admin/projects?admin=true",
			Submit:   "إضافة المشروع",
			Error:    err.Error(),
			Input:    in,
			TagsText: strings.Join(in.Tags, ", "),
		})
		return
	}

	h.projects.Create(r.Context(), in)
	h.home(w, r)
}

func (h *PageHandler) editProject(w http.ResponseWriter, r *http.Request) {
	p, ok := h.lookup(w, r)
	if !ok {
		return
	}

	in := models.InputOf(p)
	h.render(w, http.StatusOK, "project_form.html", h.editForm(r, p.ID, in, ""))
}

func (h *PageHandler) updateProject(w http.ResponseWriter, r *http.Request) {
	p, ok := h.lookup(w, r)
	if !ok {
		return
	}

	in := formInput(r)
	if err := in.Validate(); err != nil {
		h.render(w, http.StatusBadRequest, "project_form.html", h.editForm(r, p.ID, in, err.Error()))
		return
	}

	if _, err := h.projects.Update(r.Context(), p.ID, in); err != nil {
		errors.WriteHTTPError(w, err)
		return
	}
	h.home(w, r)
}

func (h *PageHandler) editForm(r *http.Request, id models.ProjectID, in models.ProjectInput, errText string) FormPage {
	return FormPage{
		Chrome:   h.chrome(r, "تعديل المشروع"),
		Heading:  "تعديل المشروع",
		Action:   "/admin/projects/" + id.String() + "?admin=true",
		Submit:   "حفظ التغييرات",
		Error:    errText,
		Input:    in,
		TagsText: strings.Join(in.Tags, ", "),
	}
}

func (h *PageHandler) confirmDelete(w http.ResponseWriter, r *http.Request) {
	p, ok := h.lookup(w, r)
	if !ok {
		return
	}

	h.render(w, http.StatusOK, "confirm_delete.html", ConfirmPage{
		Chrome:  h.chrome(r, p.Title),
		Project: p,
		Message: service.DeleteConfirmationText,
		Action:  "/admin/projects/" + p.ID.String() + "/delete?admin=true",
	})
}

func (h *PageHandler) deleteProject(w http.ResponseWriter, r *http.Request) {
	id, err := models.ParseProjectID(mux.Vars(r)["id"])
	if err != nil {
		errors.WriteHTTPError(w, errors.Invalid(errors.RefProjectInvalid, "Invalid project id", err.Error()))
		return
	}

	confirmed := r.PostFormValue("confirm") == "true"
	if _, err := h.projects.Delete(r.Context(), id, confirmed); err != nil {
		errors.WriteHTTPError(w, err)
		return
	}
	h.home(w, r)
}

func (h *PageHandler) lookup(w http.ResponseWriter, r *http.Request) (models.Project, bool) {
	id, err := models.ParseProjectID(mux.Vars(r)["id"])
	if err != nil {
		errors.WriteHTTPError(w, errors.Invalid(errors.RefProjectInvalid, "Invalid project id", err.Error()))
		return models.Project{}, false
	}

	p, ok := h.projects.Get(id)
	if !ok {
		errors.WriteHTTPError(w, errors.NotFound(errors.RefProjectNotFound, "Project not found", "No project with id "+id.String()))
		return models.Project{}, false
	}
	return p, true
}

// * home sends the browser back to the page it came from after a POST
func (h *PageHandler) home(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/"+adminQuery(md.IsAdmin(r.Context())), http.StatusSeeOther)
}

func formInput(r *http.Request) models.ProjectInput {
	return models.ProjectInput{
		Title:       r.PostFormValue("title"),
		Description: r.PostFormValue("description"),
		Image:       r.PostFormValue("image"),
		Tags:        models.ParseTags(r.PostFormValue("tags")),
		GitHub:      r.PostFormValue("github"),
		Demo:        r.PostFormValue("demo"),
	}
}

func (h *PageHandler) render(w http.ResponseWriter, status int, name string, data any) {
	var buf bytes.Buffer
	if err := h.templates.ExecuteTemplate(&buf, name, data); err != nil {
		logger.Error("Template error: %v", err)
		http.Error(w, "Render error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}
