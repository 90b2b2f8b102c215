package session

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/sessions"

	"github.com/miguelocque/PetTrackr/internal/web"
)

const cookieName = "pettrackr_session"

type ctxKey string

const ownerIDKey ctxKey = "ownerID"

// Manager resolves the calling owner from the session cookie.
// The session carries a single value: the owner id set at login.
type Manager struct {
	store *sessions.CookieStore
}

// NewManager builds the cookie store. secure must be false for plain-HTTP
// deployments or browsers drop the cookie; NewCookieStore defaults it on.
func NewManager(secret string, idleTimeout time.Duration, secure bool) *Manager {
	store := sessions.NewCookieStore([]byte(secret))
	store.MaxAge(int(idleTimeout.Seconds()))
	store.Options.Path = "/"
	store.Options.HttpOnly = true
	store.Options.Secure = secure
	store.Options.SameSite = http.SameSiteLaxMode
	return &Manager{store: store}
}

func (m *Manager) SignIn(w http.ResponseWriter, r *http.Request, ownerID int64) error {
	s, _ := m.store.Get(r, cookieName)
	s.Values["ownerId"] = ownerID
	return s.Save(r, w)
}

func (m *Manager) SignOut(w http.ResponseWriter, r *http.Request) error {
	s, _ := m.store.Get(r, cookieName)
	delete(s.Values, "ownerId")
	s.Options.MaxAge = -1
	return s.Save(r, w)
}

// OwnerID reads the authenticated owner id from the request cookie.
func (m *Manager) OwnerID(r *http.Request) (int64, bool) {
	s, err := m.store.Get(r, cookieName)
	if err != nil {
		return 0, false
	}
	id, ok := s.Values["ownerId"].(int64)
	if !ok || id == 0 {
		return 0, false
	}
	return id, true
}

// RequireAuth rejects requests without a valid session and stashes the
// owner id in the request context for the handlers downstream.
func (m *Manager) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := m.OwnerID(r)
		if !ok {
			web.Fail(w, http.StatusUnauthorized, "Unauthorized", "Authentication required")
			return
		}
		ctx := context.WithValue(r.Context(), ownerIDKey, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// OwnerFromContext returns the owner id stored by RequireAuth.
func OwnerFromContext(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(ownerIDKey).(int64)
	return id, ok
}
