package handler

import (
	"net/http"

	"github.com/Mester2001/portfolio/pkg/errors"
)

// getPreferences godoc
// @Summary Get Preferences
// @Description Theme and language flags
// @Tags Preferences
// @Produce json
// @Success 200 {object} models.Preferences
// @Router /preferences [get]
func (h *APIHandler) getPreferences(w http.ResponseWriter, r *http.Request) {
	writeSuccess(w, http.StatusOK, h.preferences.Get(r.Context()))
}

// toggleTheme godoc
// @Summary Toggle Theme
// @Description Switches between dark and light
// @Tags Preferences
// @Produce json
// @Success 200 {object} models.Preferences
// @Failure 500 {object} errors.HTTPErrorResponse "Store unavailable"
// @Router /preferences/theme/toggle [post]
func (h *APIHandler) toggleTheme(w http.ResponseWriter, r *http.Request) {
	prefs, err := h.preferences.ToggleTheme(r.Context())
	if err != nil {
		errors.WriteHTTPError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, prefs, "Theme switched to "+prefs.Theme)
}

// toggleLanguage godoc
// @Summary Toggle Language
// @Description Switches between Arabic and English
// @Tags Preferences
// @Produce json
// @Success 200 {object} models.Preferences
// @Failure 500 {object} errors.HTTPErrorResponse "Store unavailable"
// @Router /preferences/language/toggle [post]
func (h *APIHandler) toggleLanguage(w http.ResponseWriter, r *http.Request) {
	prefs, err := h.preferences.ToggleLanguage(r.Context())
	if err != nil {
		errors.WriteHTTPError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, prefs, "Language switched to "+prefs.Language)
}
