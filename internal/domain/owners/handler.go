package owners

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/miguelocque/PetTrackr/internal/apperr"
	"github.com/miguelocque/PetTrackr/internal/session"
	"github.com/miguelocque/PetTrackr/internal/web"
)

type registrationRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phoneNumber"`
	Password    string `json:"password"`
}

func (r registrationRequest) validate() []string {
	var errs []string
	if strings.TrimSpace(r.Name) == "" {
		errs = append(errs, "name: Name is required")
	}
	if strings.TrimSpace(r.Email) == "" {
		errs = append(errs, "email: Email is required")
	}
	if strings.TrimSpace(r.PhoneNumber) == "" {
		errs = append(errs, "phoneNumber: Phone number is required")
	}
	if r.Password == "" {
		errs = append(errs, "password: Password is required")
	}
	return errs
}

type updateRequest struct {
	Name        *string `json:"name"`
	PhoneNumber *string `json:"phoneNumber"`
	Email       *string `json:"email"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type ownerResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phoneNumber"`
}

func toResponse(o Owner) ownerResponse {
	return ownerResponse{
		ID:          o.ID,
		Name:        o.Name,
		Email:       o.Email,
		PhoneNumber: o.PhoneNumber,
	}
}

// RegisterPublicRoutes mounts the unauthenticated owner endpoint.
func RegisterPublicRoutes(r chi.Router, svc *Service) {
	r.Post("/owners/register", registerHandler(svc))
}

// RegisterAuthRoutes mounts login/logout/me. /auth/me checks the cookie
// itself rather than going through the auth middleware, so a missing
// session yields the controller's own 401 body.
func RegisterAuthRoutes(r chi.Router, svc *Service, sm *session.Manager) {
	r.Route("/auth", func(ar chi.Router) {
		ar.Post("/login", loginHandler(svc, sm))
		ar.Post("/logout", logoutHandler(sm))
		ar.Get("/me", meHandler(svc, sm))
	})
}

// RegisterRoutes mounts the session-protected profile endpoints. The
// nested callbacks attach further subtrees under /owners/{ownerID} so the
// whole owner-scoped tree is declared exactly once, behind one path guard.
func RegisterRoutes(r chi.Router, svc *Service, nested ...func(chi.Router)) {
	r.Route("/owners/{ownerID}", func(or chi.Router) {
		or.Use(RequireOwnerPath)
		or.Get("/", getOwnerHandler(svc))
		or.Patch("/", updateOwnerHandler(svc))
		for _, mount := range nested {
			mount(or)
		}
	})
}

// RequireOwnerPath rejects any request whose path owner id does not match
// the session owner. The path value is advisory; the session decides. Every
// nested route inherits this check.
func RequireOwnerPath(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		caller, ok := session.OwnerFromContext(r.Context())
		if !ok {
			web.Err(w, apperr.Unauthorizedf("Authentication required"))
			return
		}
		id, err := strconv.ParseInt(chi.URLParam(r, "ownerID"), 10, 64)
		if err != nil {
			web.Err(w, apperr.Invalidf("Invalid owner id"))
			return
		}
		if id != caller {
			web.Err(w, apperr.Forbiddenf("Access denied: resource does not belong to this owner"))
			return
		}
		next.ServeHTTP(w, r)
	})
}

func registerHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req registrationRequest
		if err := web.DecodeJSON(r, &req); err != nil {
			web.Err(w, err)
			return
		}
		if errs := req.validate(); len(errs) > 0 {
			web.ValidationFailed(w, errs)
			return
		}

		o, err := svc.Register(r.Context(), req.Email, req.Name, req.PhoneNumber, req.Password)
		if err != nil {
			web.Err(w, err)
			return
		}
		web.JSON(w, http.StatusCreated, toResponse(o))
	}
}

func loginHandler(svc *Service, sm *session.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := web.DecodeJSON(r, &req); err != nil {
			web.Err(w, err)
			return
		}
		if strings.TrimSpace(req.Email) == "" || req.Password == "" {
			web.Fail(w, http.StatusBadRequest, "Bad Request", "Email and password are required")
			return
		}

		if !svc.VerifyPassword(r.Context(), req.Email, req.Password) {
			web.Fail(w, http.StatusUnauthorized, "Unauthorized", "Invalid email or password")
			return
		}

		o, err := svc.GetByEmail(r.Context(), req.Email)
		if err != nil {
			web.Err(w, err)
			return
		}
		if err := sm.SignIn(w, r, o.ID); err != nil {
			web.Err(w, err)
			return
		}
		web.JSON(w, http.StatusOK, toResponse(o))
	}
}

func logoutHandler(sm *session.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := sm.SignOut(w, r); err != nil {
			web.Err(w, err)
			return
		}
		web.JSON(w, http.StatusOK, map[string]string{"message": "Logged out successfully"})
	}
}

func meHandler(svc *Service, sm *session.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := sm.OwnerID(r)
		if !ok {
			web.Fail(w, http.StatusUnauthorized, "Unauthorized", "Not logged in")
			return
		}
		o, err := svc.GetByID(r.Context(), id)
		if err != nil {
			web.Fail(w, http.StatusUnauthorized, "Unauthorized", "User not found")
			return
		}
		web.JSON(w, http.StatusOK, toResponse(o))
	}
}

func getOwnerHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := callerOwner(r)
		if err != nil {
			web.Err(w, err)
			return
		}
		o, err := svc.GetByID(r.Context(), id)
		if err != nil {
			web.Err(w, err)
			return
		}
		web.JSON(w, http.StatusOK, toResponse(o))
	}
}

func updateOwnerHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := callerOwner(r)
		if err != nil {
			web.Err(w, err)
			return
		}
		var req updateRequest
		if err := web.DecodeJSON(r, &req); err != nil {
			web.Err(w, err)
			return
		}

		o, err := svc.UpdateProfile(r.Context(), id, UpdateInput{
			Name:        req.Name,
			PhoneNumber: req.PhoneNumber,
			Email:       req.Email,
		})
		if err != nil {
			web.Err(w, err)
			return
		}
		web.JSON(w, http.StatusOK, toResponse(o))
	}
}

// callerOwner reads the session owner; RequireOwnerPath has already
// verified it against the path.
func callerOwner(r *http.Request) (int64, error) {
	id, ok := session.OwnerFromContext(r.Context())
	if !ok {
		return 0, apperr.Unauthorizedf("Authentication required")
	}
	return id, nil
}
