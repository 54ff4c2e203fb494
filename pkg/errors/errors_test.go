package errors

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplicationError_HTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  *ApplicationError
		want int
	}{
		{name: "warning", err: New(RefConfirmationRequired, "t", "", nil, LevelWarning), want: http.StatusConflict},
		{name: "info", err: New(RefProjectNotFound, "t", "", nil, LevelInfo), want: http.StatusNotFound},
		{name: "error", err: New(RefKVStore, "t", "", nil, LevelError), want: http.StatusInternalServerError},
		{name: "fatal", err: New(RefDBConnection, "t", "", nil, LevelFatal), want: http.StatusInternalServerError},
		{name: "pinned status", err: New(RefAdminRequired, "t", "", nil, LevelWarning).WithStatus(http.StatusForbidden), want: http.StatusForbidden},
		{name: "invalid", err: Invalid(RefProjectInvalid, "t", ""), want: http.StatusBadRequest},
		{name: "not found", err: NotFound(RefProjectNotFound, "t", ""), want: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.HTTPStatus())
		})
	}
}

func TestApplicationError_ErrorAndUnwrap(t *testing.T) {
	cause := stderrors.New("disk full")
	err := New(RefKVStore, "Failed to write", "portfolio_projects", cause, LevelError)

	assert.Contains(t, err.Error(), "[KV_STORE_ERROR] Failed to write - portfolio_projects (caused by: disk full)")
	assert.ErrorIs(t, err, cause)
	assert.NotEmpty(t, err.CallerTrace)
}

func TestIs(t *testing.T) {
	err := fmt.Errorf("save projects: %w", NotFound(RefProjectNotFound, "Project not found", ""))

	assert.True(t, Is(err, RefProjectNotFound))
	assert.False(t, Is(err, RefKVStore))
	assert.False(t, Is(stderrors.New("plain"), RefProjectNotFound))
	assert.False(t, Is(nil, RefProjectNotFound))
}

func TestErrorLevel_String(t *testing.T) {
	assert.Equal(t, "Warning", LevelWarning.String())
	assert.Equal(t, "Unknown", ErrorLevel(0).String())
	assert.Equal(t, "Unknown", ErrorLevel(9).String())
}

func TestWriteHTTPError(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		wantStatus     int
		wantRef        string
		wantResolution string
	}{
		{
			name:           "confirmation required",
			err:            New(RefConfirmationRequired, "Deletion not confirmed", "", nil, LevelWarning),
			wantStatus:     http.StatusConflict,
			wantRef:        RefConfirmationRequired,
			wantResolution: "Repeat the request with confirm=true",
		},
		{
			name:           "admin required",
			err:            New(RefAdminRequired, "Admin mode required", "", nil, LevelWarning).WithStatus(http.StatusForbidden),
			wantStatus:     http.StatusForbidden,
			wantRef:        RefAdminRequired,
			wantResolution: "Open the page with ?admin=true",
		},
		{
			name:       "not found",
			err:        NotFound(RefProjectNotFound, "Project not found", "No project with id 1"),
			wantStatus: http.StatusNotFound,
			wantRef:    RefProjectNotFound,
		},
		{
			name:       "plain error",
			err:        stderrors.New("boom"),
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()

			WriteHTTPError(rec, tt.err)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

			var resp HTTPErrorResponse
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
			assert.Equal(t, tt.wantStatus, resp.Status)
			assert.Equal(t, tt.wantRef, resp.ErrorRef)
			assert.Equal(t, tt.wantResolution, resp.Resolution)
		})
	}
}
