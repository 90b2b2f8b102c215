package web

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/miguelocque/PetTrackr/internal/apperr"
)

// URLID parses a numeric path parameter.
func URLID(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperr.Invalidf("Invalid %s", name)
	}
	return id, nil
}
