package httpx

import (
	"errors"
	"net/http"
)

// Sentinel errors shared by the HTTP layer.
var (
	// ErrUnauthorized indicates a missing or invalid bearer token.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrForbidden indicates the actor may not act on the target entity.
	ErrForbidden = errors.New("forbidden")
)

// Mapping binds a domain sentinel to its HTTP representation.
type Mapping struct {
	Err    error
	Status int
	Title  string
}

// RespondError walks the mappings with errors.Is and writes the first
// match as an RFC7807 problem; unmapped errors become 500 with no
// detail leaked.
func RespondError(w http.ResponseWriter, err error, mappings ...Mapping) {
	for _, m := range mappings {
		if errors.Is(err, m.Err) {
			Problem(w, m.Status, m.Title, err.Error())
			return
		}
	}
	switch {
	case errors.Is(err, ErrUnauthorized):
		Problem(w, http.StatusUnauthorized, "Unauthorized", err.Error())
	case errors.Is(err, ErrForbidden):
		Problem(w, http.StatusForbidden, "Forbidden", err.Error())
	default:
		Problem(w, http.StatusInternalServerError, "Internal Error", "")
	}
}
