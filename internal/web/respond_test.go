package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/miguelocque/PetTrackr/internal/apperr"
)

func decodeError(t *testing.T, w *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var body ErrorResponse
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	return body
}

func TestErrStatusMapping(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		label  string
	}{
		{"invalid", apperr.Invalidf("bad field"), http.StatusBadRequest, "Bad Request"},
		{"unauthorized", apperr.Unauthorizedf("who are you"), http.StatusUnauthorized, "Unauthorized"},
		{"forbidden", apperr.Forbiddenf("not yours"), http.StatusForbidden, "Forbidden"},
		{"not found", apperr.NotFoundf("gone"), http.StatusNotFound, "Not Found"},
		{"conflict", apperr.Conflictf("taken"), http.StatusConflict, "Conflict"},
		{"too large", apperr.TooLargef("too big"), http.StatusRequestEntityTooLarge, "Payload Too Large"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			Err(w, tc.err)

			if w.Code != tc.status {
				t.Fatalf("status %d, want %d", w.Code, tc.status)
			}
			body := decodeError(t, w)
			if body.Status != tc.status || body.Error != tc.label {
				t.Fatalf("body = %+v", body)
			}
			if body.Message != tc.err.Error() {
				t.Fatalf("message = %q, want %q", body.Message, tc.err.Error())
			}
		})
	}
}

func TestErrHidesUnexpectedErrors(t *testing.T) {
	w := httptest.NewRecorder()
	Err(w, errors.New("pq: connection reset"))

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status %d, want 500", w.Code)
	}
	body := decodeError(t, w)
	if strings.Contains(body.Message, "pq:") {
		t.Fatalf("internal detail leaked: %q", body.Message)
	}
}

func TestValidationFailedCarriesFieldErrors(t *testing.T) {
	w := httptest.NewRecorder()
	ValidationFailed(w, []string{"name: Name is required", "email: Email is required"})

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status %d, want 400", w.Code)
	}
	body := decodeError(t, w)
	if body.Error != "Validation Error" || body.Message != "Invalid input data" {
		t.Fatalf("body = %+v", body)
	}
	if len(body.Errors) != 2 {
		t.Fatalf("errors = %v", body.Errors)
	}
}

func TestErrWithValidationFields(t *testing.T) {
	w := httptest.NewRecorder()
	Err(w, apperr.Validation([]string{"weight: Weight must be positive"}))

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status %d, want 400", w.Code)
	}
	if body := decodeError(t, w); len(body.Errors) != 1 {
		t.Fatalf("errors = %v", body.Errors)
	}
}

func TestDecodeJSONMalformedBody(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("{not json"))
	var v struct{}
	err := DecodeJSON(r, &v)
	if !errors.Is(err, apperr.ErrInvalid) {
		t.Fatalf("want ErrInvalid, got %v", err)
	}
}

func TestURLID(t *testing.T) {
	var got int64
	var gotErr error
	r := chi.NewRouter()
	r.Get("/pets/{petID}", func(w http.ResponseWriter, req *http.Request) {
		got, gotErr = URLID(req, "petID")
	})

	serve := func(path string) {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	serve("/pets/42")
	if gotErr != nil || got != 42 {
		t.Fatalf("got %d, %v; want 42", got, gotErr)
	}

	for _, path := range []string{"/pets/abc", "/pets/0", "/pets/-3"} {
		serve(path)
		if !errors.Is(gotErr, apperr.ErrInvalid) {
			t.Fatalf("%s: want ErrInvalid, got %v", path, gotErr)
		}
	}
}
