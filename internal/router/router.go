// Package router assembles the HTTP surface: storage adapters, domain
// services and their routes.
package router

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"

	"github.com/miguelocque/PetTrackr/internal/adapters/storage/memory"
	"github.com/miguelocque/PetTrackr/internal/adapters/storage/postgres"
	"github.com/miguelocque/PetTrackr/internal/domain/feedingschedules"
	"github.com/miguelocque/PetTrackr/internal/domain/medications"
	"github.com/miguelocque/PetTrackr/internal/domain/owners"
	"github.com/miguelocque/PetTrackr/internal/domain/pets"
	"github.com/miguelocque/PetTrackr/internal/domain/vetvisits"
	"github.com/miguelocque/PetTrackr/internal/photostore"
	"github.com/miguelocque/PetTrackr/internal/platform/config"
	"github.com/miguelocque/PetTrackr/internal/platform/hash"
	"github.com/miguelocque/PetTrackr/internal/platform/logger"
	"github.com/miguelocque/PetTrackr/internal/session"
	"github.com/miguelocque/PetTrackr/internal/web"
)

type Options struct {
	Config config.Config
	Logger *logger.Logger

	// DB nil selects the in-memory store.
	DB *sql.DB
}

type repos struct {
	owners    owners.Repository
	pets      pets.Repository
	meds      medications.Repository
	schedules feedingschedules.Repository
	visits    vetvisits.Repository
}

func buildRepos(db *sql.DB) repos {
	if db == nil {
		s := memory.NewStore()
		return repos{
			owners:    s.Owners(),
			pets:      s.Pets(),
			meds:      s.Medications(),
			schedules: s.FeedingSchedules(),
			visits:    s.VetVisits(),
		}
	}
	return repos{
		owners:    postgres.NewOwnersRepo(db),
		pets:      postgres.NewPetsRepo(db),
		meds:      postgres.NewMedicationsRepo(db),
		schedules: postgres.NewFeedingSchedulesRepo(db),
		visits:    postgres.NewVetVisitsRepo(db),
	}
}

// New wires repositories into services and mounts every route.
func New(opts Options) http.Handler {
	cfg := opts.Config
	store := buildRepos(opts.DB)

	hasher := hash.New(cfg.BcryptCost)
	sm := session.NewManager(cfg.SessionSecret, cfg.SessionIdleTimeout, cfg.SessionCookieSecure)
	photos := photostore.New(cfg.UploadDir)

	ownersSvc := owners.NewService(store.owners, hasher)
	petsSvc := pets.NewService(store.pets, store.owners, photos)
	medsSvc := medications.NewService(store.meds, petsSvc)
	feedsSvc := feedingschedules.NewService(store.schedules, petsSvc)
	visitsSvc := vetvisits.NewService(store.visits, petsSvc)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(requestLogger(opts.Logger))
	r.Use(chimw.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		web.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	// Uploaded photos are public; the URL is the capability.
	r.Handle("/uploads/*", http.StripPrefix(photostore.URLPrefix, http.FileServer(http.Dir(cfg.UploadDir))))

	r.Route("/api", func(api chi.Router) {
		// Credential endpoints get a per-IP rate limit.
		api.Group(func(public chi.Router) {
			public.Use(httprate.Limit(20, 1*time.Minute,
				httprate.WithKeyFuncs(httprate.KeyByIP, httprate.KeyByEndpoint),
			))
			owners.RegisterPublicRoutes(public, ownersSvc)
			owners.RegisterAuthRoutes(public, ownersSvc, sm)
		})

		api.Group(func(protected chi.Router) {
			protected.Use(sm.RequireAuth)
			owners.RegisterRoutes(protected, ownersSvc,
				pets.Routes(petsSvc, ownersSvc, medsSvc, feedsSvc, visitsSvc,
					medications.Routes(medsSvc),
					feedingschedules.Routes(feedsSvc),
					vetvisits.Routes(visitsSvc),
				),
			)
		})
	})

	return r
}

func requestLogger(l *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if l == nil {
				next.ServeHTTP(w, r)
				return
			}
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			l.Info("http request", map[string]any{
				"method":   r.Method,
				"path":     r.URL.Path,
				"status":   ww.Status(),
				"bytes":    ww.BytesWritten(),
				"duration": time.Since(start).String(),
				"reqId":    chimw.GetReqID(r.Context()),
			})
		})
	}
}
