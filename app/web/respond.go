package web

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/shoppingsystem/catalog/models"
	"github.com/shoppingsystem/catalog/pkg/logger"
)

const ErrorView = "error"

type ErrorData struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

// SeeOther ends a write with a redirect so that reloading the next page
// never resubmits the form.
func SeeOther(w http.ResponseWriter, r *http.Request, location string) {
	http.Redirect(w, r, location, http.StatusSeeOther)
}

// Fail renders the error view for err. Unknown ids become 404s, everything
// else a 500.
func Fail(w http.ResponseWriter, r *http.Request, view Renderer, err error) {
	status := http.StatusInternalServerError
	message := "Something went wrong. Please try again."

	if errors.Is(err, models.ErrNotFound) {
		status = http.StatusNotFound
		message = "The requested record does not exist."
		logger.WarnContext(r.Context(), "Record not found", "path", r.URL.Path, "error", err)
	} else {
		logger.ErrorContext(r.Context(), "Request failed", "path", r.URL.Path, "error", err)
	}

	if rerr := view.Render(w, r, status, ErrorView, ErrorData{Status: status, Message: message}); rerr != nil {
		logger.ErrorContext(r.Context(), "Failed to render error view", "error", rerr)
	}
}

// PageParam reads the zero-based ?page= value. Missing, malformed or
// negative values mean the first page.
func PageParam(r *http.Request) int {
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 0 {
		return 0
	}
	return page
}

// IDParam reads the {id} path segment. An id that cannot name a row is
// reported as not found.
func IDParam(r *http.Request) (uint, error) {
	raw := r.PathValue("id")
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("id %q: %w", raw, models.ErrNotFound)
	}
	return uint(id), nil
}
