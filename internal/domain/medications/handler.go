package medications

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/miguelocque/PetTrackr/internal/apperr"
	"github.com/miguelocque/PetTrackr/internal/session"
	"github.com/miguelocque/PetTrackr/internal/web"
)

const dateLayout = "2006-01-02"

type createRequest struct {
	Name             string  `json:"name"`
	DosageAmount     float64 `json:"dosageAmount"`
	DosageUnit       string  `json:"dosageUnit"`
	Frequency        string  `json:"frequency"`
	TimeToAdminister string  `json:"timeToAdminister"`
	StartDate        string  `json:"startDate"`
	EndDate          *string `json:"endDate"`
}

type updateRequest struct {
	Name             *string  `json:"name"`
	DosageAmount     *float64 `json:"dosageAmount"`
	DosageUnit       *string  `json:"dosageUnit"`
	Frequency        *string  `json:"frequency"`
	TimeToAdminister *string  `json:"timeToAdminister"`
	StartDate        *string  `json:"startDate"`
	EndDate          *string  `json:"endDate"`
}

// Response is the wire shape; the pet detail endpoint embeds it too.
type Response struct {
	ID               int64   `json:"id"`
	Name             string  `json:"name"`
	DosageAmount     float64 `json:"dosageAmount"`
	DosageUnit       string  `json:"dosageUnit"`
	Frequency        string  `json:"frequency"`
	TimeToAdminister string  `json:"timeToAdminister"`
	StartDate        string  `json:"startDate"`
	EndDate          *string `json:"endDate"`
}

func ToResponse(m Medication) Response {
	resp := Response{
		ID:               m.ID,
		Name:             m.Name,
		DosageAmount:     m.DosageAmount,
		DosageUnit:       m.DosageUnit,
		Frequency:        m.Frequency,
		TimeToAdminister: m.TimeToAdminister,
		StartDate:        m.StartDate.Format(dateLayout),
	}
	if m.EndDate != nil {
		end := m.EndDate.Format(dateLayout)
		resp.EndDate = &end
	}
	return resp
}

func ToResponses(ms []Medication) []Response {
	out := make([]Response, 0, len(ms))
	for _, m := range ms {
		out = append(out, ToResponse(m))
	}
	return out
}

// Routes returns the /medications subtree, mounted inside the pet subrouter
// so {petID} is already bound.
func Routes(svc *Service) func(chi.Router) {
	h := &handler{svc: svc}
	return func(r chi.Router) {
		r.Route("/medications", func(r chi.Router) {
			r.Post("/", h.create)
			r.Get("/", h.list)
			r.Route("/{medicationID}", func(r chi.Router) {
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

	start, err := parseDate(req.StartDate, "startDate")
	if err != nil {
		web.Err(w, err)
		return
	}
	end, err := parseOptionalDate(req.EndDate, "endDate")
	if err != nil {
		web.Err(w, err)
		return
	}

	m, err := h.svc.Create(r.Context(), petID, ownerID, CreateInput{
		Name:             req.Name,
		DosageAmount:     req.DosageAmount,
		DosageUnit:       req.DosageUnit,
		Frequency:        req.Frequency,
		TimeToAdminister: req.TimeToAdminister,
		StartDate:        start,
		EndDate:          end,
	})
	if err != nil {
		web.Err(w, err)
		return
	}
	web.JSON(w, http.StatusCreated, ToResponse(m))
}

func (h *handler) list(w http.ResponseWriter, r *http.Request) {
	ownerID, _ := session.OwnerFromContext(r.Context())
	petID, err := web.URLID(r, "petID")
	if err != nil {
		web.Err(w, err)
		return
	}

	ms, err := h.svc.ListForPet(r.Context(), petID, ownerID)
	if err != nil {
		web.Err(w, err)
		return
	}
	web.JSON(w, http.StatusOK, ToResponses(ms))
}

func (h *handler) get(w http.ResponseWriter, r *http.Request) {
	ownerID, _ := session.OwnerFromContext(r.Context())
	id, err := web.URLID(r, "medicationID")
	if err != nil {
		web.Err(w, err)
		return
	}

	m, err := h.svc.GetByID(r.Context(), id, ownerID)
	if err != nil {
		web.Err(w, err)
		return
	}
	web.JSON(w, http.StatusOK, ToResponse(m))
}

func (h *handler) update(w http.ResponseWriter, r *http.Request) {
	ownerID, _ := session.OwnerFromContext(r.Context())
	id, err := web.URLID(r, "medicationID")
	if err != nil {
		web.Err(w, err)
		return
	}

	var req updateRequest
	if err := web.DecodeJSON(r, &req); err != nil {
		web.Err(w, err)
		return
	}

	start, err := parseOptionalDate(req.StartDate, "startDate")
	if err != nil {
		web.Err(w, err)
		return
	}
	end, err := parseOptionalDate(req.EndDate, "endDate")
	if err != nil {
		web.Err(w, err)
		return
	}

	m, err := h.svc.Update(r.Context(), id, ownerID, UpdateInput{
		Name:             req.Name,
		DosageAmount:     req.DosageAmount,
		DosageUnit:       req.DosageUnit,
		Frequency:        req.Frequency,
		TimeToAdminister: req.TimeToAdminister,
		StartDate:        start,
		EndDate:          end,
	})
	if err != nil {
		web.Err(w, err)
		return
	}
	web.JSON(w, http.StatusOK, ToResponse(m))
}

func (h *handler) delete(w http.ResponseWriter, r *http.Request) {
	ownerID, _ := session.OwnerFromContext(r.Context())
	id, err := web.URLID(r, "medicationID")
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

func parseDate(s, field string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, apperr.Invalidf("%s must be YYYY-MM-DD", field)
	}
	return t, nil
}

func parseOptionalDate(s *string, field string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, *s)
	if err != nil {
		return nil, apperr.Invalidf("%s must be YYYY-MM-DD", field)
	}
	return &t, nil
}
