// Package endpoints serves the static catalogue of API routes.
package endpoints

import (
	// embeds the catalogue
	_ "embed"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/SergeyParamoshkin/newsboard/internal/logging"
)

//go:embed endpoints.json
var catalogue []byte

// Endpoint describes one route in the catalogue.
type Endpoint struct {
	Description     string                 `json:"description"`
	Queries         []string               `json:"queries"`
	ExampleRequest  map[string]interface{} `json:"exampleRequest,omitempty"`
	ExampleResponse map[string]interface{} `json:"exampleResponse"`
}

// Raw returns the catalogue exactly as served.
func Raw() []byte {
	out := make([]byte, len(catalogue))
	copy(out, catalogue)

	return out
}

// Catalogue decodes the catalogue, keyed by "METHOD /path", and checks every
// entry carries a description, a queries array and an example response.
// Entries for routes that take a body must also carry an example request.
func Catalogue() (map[string]Endpoint, error) {
	var entries map[string]Endpoint
	if err := json.Unmarshal(catalogue, &entries); err != nil {
		return nil, err
	}

	for key, e := range entries {
		if e.Description == "" || e.Queries == nil || e.ExampleResponse == nil {
			return nil, fmt.Errorf("endpoint %q is incomplete", key)
		}

		if takesBody(key) && e.ExampleRequest == nil {
			return nil, fmt.Errorf("endpoint %q has no example request", key)
		}
	}

	return entries, nil
}

func takesBody(key string) bool {
	return strings.HasPrefix(key, http.MethodPost+" ") || strings.HasPrefix(key, http.MethodPatch+" ")
}

// Handler serves the catalogue verbatim.
func Handler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	if _, err := w.Write(catalogue); err != nil {
		logging.FromContext(r.Context()).Errorw(err.Error())
	}
}
