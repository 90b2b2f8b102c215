package vetvisits

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
	VisitDate      string  `json:"visitDate"`
	NextVisitDate  *string `json:"nextVisitDate"`
	VetName        string  `json:"vetName"`
	ReasonForVisit string  `json:"reasonForVisit"`
	Notes          string  `json:"notes"`
}

type updateRequest struct {
	VisitDate      *string `json:"visitDate"`
	NextVisitDate  *string `json:"nextVisitDate"`
	VetName        *string `json:"vetName"`
	ReasonForVisit *string `json:"reasonForVisit"`
	Notes          *string `json:"notes"`
}

// Response is the wire shape; the pet detail endpoint embeds it too.
type Response struct {
	ID             int64   `json:"id"`
	VisitDate      string  `json:"visitDate"`
	NextVisitDate  *string `json:"nextVisitDate"`
	VetName        string  `json:"vetName"`
	ReasonForVisit string  `json:"reasonForVisit"`
	Notes          string  `json:"notes"`
}

func ToResponse(v VetVisit) Response {
	resp := Response{
		ID:             v.ID,
		VisitDate:      v.VisitDate.Format(dateLayout),
		VetName:        v.VetName,
		ReasonForVisit: v.ReasonForVisit,
		Notes:          v.Notes,
	}
	if v.NextVisitDate != nil {
		next := v.NextVisitDate.Format(dateLayout)
		resp.NextVisitDate = &next
	}
	return resp
}

func ToResponses(vs []VetVisit) []Response {
	out := make([]Response, 0, len(vs))
	for _, v := range vs {
		out = append(out, ToResponse(v))
	}
	return out
}

// Routes returns the /vet-visits subtree, mounted inside the pet subrouter
// so {petID} is already bound.
func Routes(svc *Service) func(chi.Router) {
	h := &handler{svc: svc}
	return func(r chi.Router) {
		r.Route("/vet-visits", func(r chi.Router) {
			r.Post("/", h.create)
			r.Get("/", h.list)
			r.Route("/{visitID}", func(r chi.Router) {
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

	visit, err := parseDate(req.VisitDate, "visitDate")
	if err != nil {
		web.Err(w, err)
		return
	}
	next, err := parseOptionalDate(req.NextVisitDate, "nextVisitDate")
	if err != nil {
		web.Err(w, err)
		return
	}

	v, err := h.svc.Create(r.Context(), petID, ownerID, CreateInput{
		VisitDate:      visit,
		NextVisitDate:  next,
		VetName:        req.VetName,
		ReasonForVisit: req.ReasonForVisit,
		Notes:          req.Notes,
	})
	if err != nil {
		web.Err(w, err)
		return
	}
	web.JSON(w, http.StatusCreated, ToResponse(v))
}

func (h *handler) list(w http.ResponseWriter, r *http.Request) {
	ownerID, _ := session.OwnerFromContext(r.Context())
	petID, err := web.URLID(r, "petID")
	if err != nil {
		web.Err(w, err)
		return
	}

	vs, err := h.svc.ListForPet(r.Context(), petID, ownerID)
	if err != nil {
		web.Err(w, err)
		return
	}
	web.JSON(w, http.StatusOK, ToResponses(vs))
}

func (h *handler) get(w http.ResponseWriter, r *http.Request) {
	ownerID, _ := session.OwnerFromContext(r.Context())
	id, err := web.URLID(r, "visitID")
	if err != nil {
		web.Err(w, err)
		return
	}

	v, err := h.svc.GetByID(r.Context(), id, ownerID)
	if err != nil {
		web.Err(w, err)
		return
	}
	web.JSON(w, http.StatusOK, ToResponse(v))
}

func (h *handler) update(w http.ResponseWriter, r *http.Request) {
	ownerID, _ := session.OwnerFromContext(r.Context())
	id, err := web.URLID(r, "visitID")
	if err != nil {
		web.Err(w, err)
		return
	}

	var req updateRequest
	if err := web.DecodeJSON(r, &req); err != nil {
		web.Err(w, err)
		return
	}

	visit, err := parseOptionalDate(req.VisitDate, "visitDate")
	if err != nil {
		web.Err(w, err)
		return
	}
	next, err := parseOptionalDate(req.NextVisitDate, "nextVisitDate")
	if err != nil {
		web.Err(w, err)
		return
	}

	v, err := h.svc.Update(r.Context(), id, ownerID, UpdateInput{
		VisitDate:      visit,
		NextVisitDate:  next,
		VetName:        req.VetName,
		ReasonForVisit: req.ReasonForVisit,
		Notes:          req.Notes,
	})
	if err != nil {
		web.Err(w, err)
		return
	}
	web.JSON(w, http.StatusOK, ToResponse(v))
}

func (h *handler) delete(w http.ResponseWriter, r *http.Request) {
	ownerID, _ := session.OwnerFromContext(r.Context())
	id, err := web.URLID(r, "visitID")
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
