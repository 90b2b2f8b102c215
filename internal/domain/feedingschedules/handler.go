package feedingschedules

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/miguelocque/PetTrackr/internal/session"
	"github.com/miguelocque/PetTrackr/internal/web"
)

type createRequest struct {
	Time         string  `json:"time"`
	FoodType     string  `json:"foodType"`
	Quantity     float64 `json:"quantity"`
	QuantityUnit string  `json:"quantityUnit"`
}

type updateRequest struct {
	Time         *string  `json:"time"`
	FoodType     *string  `json:"foodType"`
	Quantity     *float64 `json:"quantity"`
	QuantityUnit *string  `json:"quantityUnit"`
}

// Response is the wire shape; the pet detail endpoint embeds it too.
type Response struct {
	ID           int64   `json:"id"`
	Time         string  `json:"time"`
	FoodType     string  `json:"foodType"`
	Quantity     float64 `json:"quantity"`
	QuantityUnit string  `json:"quantityUnit"`
}

func ToResponse(f FeedingSchedule) Response {
	return Response{
		ID:           f.ID,
		Time:         f.Time,
		FoodType:     f.FoodType,
		Quantity:     f.Quantity,
		QuantityUnit: string(f.QuantityUnit),
	}
}

func ToResponses(fs []FeedingSchedule) []Response {
	out := make([]Response, 0, len(fs))
	for _, f := range fs {
		out = append(out, ToResponse(f))
	}
	return out
}

// Routes returns the /feeding-schedules subtree, mounted inside the pet
// subrouter so {petID} is already bound.
func Routes(svc *Service) func(chi.Router) {
	h := &handler{svc: svc}
	return func(r chi.Router) {
		r.Route("/feeding-schedules", func(r chi.Router) {
			r.Post("/", h.create)
			r.Get("/", h.list)
			r.Route("/{scheduleID}", func(r chi.Router) {
				r.Get("/", h.get)
				r.Patch("/", h.update)
				r.Delete("/", h.delete)
			})
		})
	}
}

type handler struct {
	svc *Service
}

func (h *handler) create(w http.ResponseWriter, r *http.Request) {
	ownerID, _ := session.OwnerFromContext(r.Context())
	petID, err := web.URLID(r, "petID")
	if err != nil {
		web.Err(w, err)
		return
	}

	var req createRequest
	if err := web.DecodeJSON(r, &req); err != nil {
		web.Err(w, err)
		return
	}

	f, err := h.svc.Create(r.Context(), petID, ownerID, CreateInput{
		Time:         req.Time,
		FoodType:     req.FoodType,
		Quantity:     req.Quantity,
		QuantityUnit: req.QuantityUnit,
	})
	if err != nil {
		web.Err(w, err)
		return
	}
	web.JSON(w, http.StatusCreated, ToResponse(f))
}

func (h *handler) list(w http.ResponseWriter, r *http.Request) {
	ownerID, _ := session.OwnerFromContext(r.Context())
	petID, err := web.URLID(r, "petID")
	if err != nil {
		web.Err(w, err)
		return
	}

	fs, err := h.svc.ListForPet(r.Context(), petID, ownerID)
	if err != nil {
		web.Err(w, err)
		return
	}
	web.JSON(w, http.StatusOK, ToResponses(fs))
}

func (h *handler) get(w http.ResponseWriter, r *http.Request) {
	ownerID, _ := session.OwnerFromContext(r.Context())
	id, err := web.URLID(r, "scheduleID")
	if err != nil {
		web.Err(w, err)
		return
	}

	f, err := h.svc.GetByID(r.Context(), id, ownerID)
	if err != nil {
		web.Err(w, err)
		return
	}
	web.JSON(w, http.StatusOK, ToResponse(f))
}

func (h *handler) update(w http.ResponseWriter, r *http.Request) {
	ownerID, _ := session.OwnerFromContext(r.Context())
	id, err := web.URLID(r, "scheduleID")
	if err != nil {
		web.Err(w, err)
		return
	}

	var req updateRequest
	if err := web.DecodeJSON(r, &req); err != nil {
		web.Err(w, err)
		return
	}

	f, err := h.svc.Update(r.Context(), id, ownerID, UpdateInput{
		Time:         req.Time,
		FoodType:     req.FoodType,
		Quantity:     req.Quantity,
		QuantityUnit: req.QuantityUnit,
	})
	if err != nil {
		web.Err(w, err)
		return
	}
	web.JSON(w, http.StatusOK, ToResponse(f))
}

func (h *handler) delete(w http.ResponseWriter, r *http.Request) {
	ownerID, _ := session.OwnerFromContext(r.Context())
	id, err := web.URLID(r, "scheduleID")
	if err != nil {
		web.Err(w, err)
		return
	}

	if err := h.svc.Delete(r.Context(), id, ownerID); err != nil {
		web.Err(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
