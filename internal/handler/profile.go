package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/Mester2001/portfolio/internal/queue"
	"github.com/Mester2001/portfolio/pkg/errors"
	"github.com/Mester2001/portfolio/pkg/logger"
)

// getProfile godoc
// @Summary Get Profile
// @Description Current GitHub profile snapshot: bio, avatar, stats and activity feed
// @Tags Profile
// @Produce json
// @Success 200 {object} models.ProfileView
// @Router /profile [get]
func (h *APIHandler) getProfile(w http.ResponseWriter, r *http.Request) {
	writeSuccess(w, http.StatusOK, h.profile.Snapshot(), "Successfully fetched profile")
}

// refreshProfile godoc
// @Summary Refresh Profile
// @Description Re-reads the profile from GitHub. Queued on RabbitMQ when a broker is configured, inline otherwise
// @Tags Profile
// @Produce json
// @Success 200 {object} RefreshResponse
// @Success 202 {object} RefreshResponse
// @Failure 502 {object} errors.HTTPErrorResponse "GitHub unavailable"
// @Router /profile/refresh [post]
func (h *APIHandler) refreshProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if h.publisher != nil {
		err := h.publisher.PublishRefreshRequest(ctx, queue.RefreshRequest{
			Username:    h.profile.Username(),
			Reason:      "api",
			RequestedAt: time.Now().UTC(),
		})
		if err == nil {
			logger.Info("Queued profile refresh for %s", h.profile.Username())
			writeSuccess(w, http.StatusAccepted, RefreshResponse{Queued: true}, "Profile refresh queued")
			return
		}
		logger.Warn("Error queueing profile refresh, refreshing inline: %v", err)
	}

	// * a dropped client must not abort the reads halfway
	view, err := h.profile.Refresh(context.WithoutCancel(ctx))
	if err != nil {
		errors.WriteHTTPError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, RefreshResponse{Profile: &view}, "Profile refreshed")
}
