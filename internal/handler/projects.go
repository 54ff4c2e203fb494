package handler

import (
	"encoding/json"
	"net/http"

	"github.com/Mester2001/portfolio/internal/models"
	"github.com/Mester2001/portfolio/pkg/errors"
	"github.com/Mester2001/portfolio/pkg/logger"
	"github.com/gorilla/mux"
)

// listProjects godoc
// @Summary List Projects
// @Description All portfolio projects, newest first
// @Tags Projects
// @Produce json
// @Success 200 {array} models.Project
// @Router /projects [get]
func (h *APIHandler) listProjects(w http.ResponseWriter, r *http.Request) {
	projects := h.projects.List()
	logger.Debug("Listing %d projects", len(projects))
	writeSuccess(w, http.StatusOK, projects, "Successfully fetched projects")
}

// getProject godoc
// @Summary Get Project
// @Tags Projects
// @Produce json
// @Param id path int true "Project ID"
// @Success 200 {object} models.Project
// @Failure 400 {object} errors.HTTPErrorResponse "Invalid id"
// @Failure 404 {object} errors.HTTPErrorResponse "Project not found"
// @Router /projects/{id} [get]
func (h *APIHandler) getProject(w http.ResponseWriter, r *http.Request) {
	id, err := projectID(r)
	if err != nil {
		errors.WriteHTTPError(w, err)
		return
	}

	p, ok := h.projects.Get(id)
	if !ok {
		errors.WriteHTTPError(w, errors.NotFound(errors.RefProjectNotFound, "Project not found", "No project with id "+id.String()))
		return
	}

	writeSuccess(w, http.StatusOK, p)
}

// createProject godoc
// @Summary Create Project
// @Description Adds a project at the top of the grid. Requires admin=true
// @Tags Projects
// @Accept json
// @Produce json
// @Param admin query bool true "Admin mode" default(true)
// @Param project body ProjectRequest true "Project fields"
// @Success 201 {object} models.Project
// @Failure 400 {object} errors.HTTPErrorResponse "Missing required fields"
// @Failure 403 {object} errors.HTTPErrorResponse "Admin mode required"
// @Router /projects [post]
func (h *APIHandler) createProject(w http.ResponseWriter, r *http.Request) {
	in, err := decodeProject(r)
	if err != nil {
		errors.WriteHTTPError(w, err)
		return
	}

	p := h.projects.Create(r.Context(), in)
	writeSuccess(w, http.StatusCreated, p, "Project created")
}

// updateProject godoc
// @Summary Update Project
// @Description Replaces every field except id and date. Requires admin=true
// @Tags Projects
// @Accept json
// @Produce json
// @Param id path int true "Project ID"
// @Param admin query bool true "Admin mode" default(true)
// @Param project body ProjectRequest true "Project fields"
// @Success 200 {object} models.Project
// @Failure 400 {object} errors.HTTPErrorResponse "Missing required fields"
// @Failure 403 {object} errors.HTTPErrorResponse "Admin mode required"
// @Failure 404 {object} errors.HTTPErrorResponse "Project not found"
// @Router /projects/{id} [put]
func (h *APIHandler) updateProject(w http.ResponseWriter, r *http.Request) {
	id, err := projectID(r)
	if err != nil {
		errors.WriteHTTPError(w, err)
		return
	}

	in, err := decodeProject(r)
	if err != nil {
		errors.WriteHTTPError(w, err)
		return
	}

	p, err := h.projects.Update(r.Context(), id, in)
	if err != nil {
		errors.WriteHTTPError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, p, "Project updated")
}

// deleteProject godoc
// @Summary Delete Project
// @Description Removes the project. Nothing happens unless confirm=true. Requires admin=true
// @Tags Projects
// @Produce json
// @Param id path int true "Project ID"
// @Param admin query bool true "Admin mode" default(true)
// @Param confirm query bool false "Confirm deletion"
// @Success 200 {object} DeleteResponse
// @Failure 403 {object} errors.HTTPErrorResponse "Admin mode required"
// @Failure 404 {object} errors.HTTPErrorResponse "Project not found"
// @Failure 409 {object} errors.HTTPErrorResponse "Confirmation required"
// @Router /projects/{id} [delete]
func (h *APIHandler) deleteProject(w http.ResponseWriter, r *http.Request) {
	id, err := projectID(r)
	if err != nil {
		errors.WriteHTTPError(w, err)
		return
	}

	confirmed := r.URL.Query().Get("confirm") == "true"
	removed, err := h.projects.Delete(r.Context(), id, confirmed)
	if err != nil {
		errors.WriteHTTPError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, DeleteResponse{ID: id, Removed: removed}, "Project deleted")
}

func projectID(r *http.Request) (models.ProjectID, error) {
	raw := mux.Vars(r)["id"]
	id, err := models.ParseProjectID(raw)
	if err != nil {
		return 0, errors.Invalid(errors.RefProjectInvalid, "Invalid project id", err.Error())
	}
	return id, nil
}

func decodeProject(r *http.Request) (models.ProjectInput, error) {
	var in ProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		return in, errors.Invalid(errors.RefProjectInvalid, "Invalid request body", err.Error())
	}

	in.Tags = models.CleanTags(in.Tags)
	if err := in.Validate(); err != nil {
		return in, errors.Invalid(errors.RefProjectInvalid, "Invalid project", err.Error())
	}
	return in, nil
}
