package web

import (
	"encoding/json"
	"net/http"
)

// Renderer turns a view name and its data into a response body.
type Renderer interface {
	Render(w http.ResponseWriter, r *http.Request, status int, view string, data any) error
}

type ViewResponse struct {
	View string `json:"view"`
	Data any    `json:"data"`
}

// JSONRenderer writes the view model as JSON, for API clients and tests.
type JSONRenderer struct{}

func (JSONRenderer) Render(w http.ResponseWriter, r *http.Request, status int, view string, data any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(ViewResponse{View: view, Data: data})
}
