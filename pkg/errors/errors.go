package errors

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"runtime"
	"strings"
	"time"

	"github.com/Mester2001/portfolio/pkg/logger"
)

type ErrorLevel int

const (
	LevelFatal ErrorLevel = iota + 1
	LevelError
	LevelWarning
	LevelInfo
)

func (l ErrorLevel) String() string {
	if l < LevelFatal || l > LevelInfo {
		return "Unknown"
	}
	return [...]string{"", "Fatal", "Error", "Warning", "Info"}[l]
}

// * Reference codes shared by the service, store and transport layers
const (
	RefGitHubAPI            = "GITHUB_API_ERROR"
	RefGitHubNotFound       = "GITHUB_NOT_FOUND"
	RefProjectNotFound      = "PROJECT_NOT_FOUND"
	RefProjectInvalid       = "PROJECT_INVALID"
	RefConfirmationRequired = "CONFIRMATION_REQUIRED"
	RefAdminRequired        = "ADMIN_REQUIRED"
	RefKVStore              = "KV_STORE_ERROR"
	RefDBConnection         = "DB_CONNECTION_ERROR"
	RefDBMigration          = "DB_MIGRATION_ERROR"
	RefSeedLoad             = "SEED_LOAD_ERROR"
	RefQueue                = "QUEUE_ERROR"
)

type ApplicationError struct {
	Reference   string
	Title       string
	Detail      string
	RootCause   error
	Level       ErrorLevel
	Status      int
	OccurredAt  time.Time
	CallerTrace []string
}

func (e *ApplicationError) Error() string {
	var b strings.Builder

	fmt.Fprintf(&b, "[%s][%s] %s", e.OccurredAt.Format(time.RFC3339), e.Reference, e.Title)

	if e.Detail != "" {
		fmt.Fprintf(&b, " - %s", e.Detail)
	}

	if e.RootCause != nil {
		fmt.Fprintf(&b, " (caused by: %v)", e.RootCause)
	}

	return b.String()
}

func (e *ApplicationError) Unwrap() error {
	return e.RootCause
}

// * WithStatus pins the HTTP status instead of deriving it from the level
func (e *ApplicationError) WithStatus(status int) *ApplicationError {
	e.Status = status
	return e
}

// * HTTPStatus is the status a handler should answer with for this error
func (e *ApplicationError) HTTPStatus() int {
	if e.Status != 0 {
		return e.Status
	}

	switch e.Level {
	case LevelWarning:
		return http.StatusConflict
	case LevelInfo:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func New(ref, title, detail string, cause error, level ErrorLevel) *ApplicationError {
	return &ApplicationError{
		Reference:   ref,
		Title:       title,
		Detail:      detail,
		RootCause:   cause,
		Level:       level,
		OccurredAt:  time.Now().UTC(),
		CallerTrace: captureCallerInfo(3),
	}
}

func NotFound(ref, title, detail string) *ApplicationError {
	return New(ref, title, detail, nil, LevelInfo).WithStatus(http.StatusNotFound)
}

func Invalid(ref, title, detail string) *ApplicationError {
	return New(ref, title, detail, nil, LevelError).WithStatus(http.StatusBadRequest)
}

// * Is reports whether err carries an ApplicationError with the given reference
func Is(err error, ref string) bool {
	var appErr *ApplicationError
	return errors.As(err, &appErr) && appErr.Reference == ref
}

func captureCallerInfo(skip int) []string {
	pc := make([]uintptr, 10)
	n := runtime.Callers(skip, pc)
	if n == 0 {
		return nil
	}

	frames := runtime.CallersFrames(pc[:n])

	var trace []string
	for {
		frame, more := frames.Next()
		trace = append(trace, fmt.Sprintf("%s:%d %s", frame.File, frame.Line, frame.Function))
		if !more {
			break
		}
	}

	return trace
}

type HTTPErrorResponse struct {
	Status     int       `json:"status"`
	ErrorRef   string    `json:"error_reference,omitempty"`
	Title      string    `json:"title"`
	Detail     string    `json:"detail,omitempty"`
	Resolution string    `json:"resolution,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
}

func WriteHTTPError(w http.ResponseWriter, err error) {
	var appErr *ApplicationError

	resp := HTTPErrorResponse{
		Status:    http.StatusInternalServerError,
		Title:     "An unexpected error occurred",
		Timestamp: time.Now().UTC(),
	}

	if errors.As(err, &appErr) {
		resp.Status = appErr.HTTPStatus()
		resp.ErrorRef = appErr.Reference
		resp.Title = appErr.Title
		resp.Detail = appErr.Detail

		switch {
		case appErr.Reference == RefConfirmationRequired:
			resp.Resolution = "Repeat the request with confirm=true"
		case appErr.Reference == RefAdminRequired:
			resp.Resolution = "Open the page with ?admin=true"
		case appErr.Level == LevelFatal:
			resp.Resolution = "Please contact support with the error reference"
		}
	} else {
		resp.Detail = err.Error()
	}

	if resp.Status >= http.StatusInternalServerError {
		logger.Error("%v", err)
	} else {
		logger.Debug("%v", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(resp.Status)
	json.NewEncoder(w).Encode(resp)
}
