package handler

import "github.com/Mester2001/portfolio/internal/models"

type APIResponse struct {
	Status  string `json:"status"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// ProjectRequest is the body of create and update calls.
type ProjectRequest = models.ProjectInput

type DeleteResponse struct {
	ID      models.ProjectID `json:"id"`
	Removed int              `json:"removed"`
}

type RefreshResponse struct {
	Queued  bool                `json:"queued"`
	Profile *models.ProfileView `json:"profile,omitempty"`
}
