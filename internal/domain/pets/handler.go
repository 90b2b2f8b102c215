package pets

import (
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/miguelocque/PetTrackr/internal/apperr"
	"github.com/miguelocque/PetTrackr/internal/domain/feedingschedules"
	"github.com/miguelocque/PetTrackr/internal/domain/medications"
	"github.com/miguelocque/PetTrackr/internal/domain/owners"
	"github.com/miguelocque/PetTrackr/internal/domain/vetvisits"
	"github.com/miguelocque/PetTrackr/internal/qr"
	"github.com/miguelocque/PetTrackr/internal/session"
	"github.com/miguelocque/PetTrackr/internal/web"
)

const dateLayout = "2006-01-02"

// uploadCap bounds the multipart body well above the photo limit so the
// size verdict stays with the photo store.
const uploadCap = 16 << 20

type createRequest struct {
	Name          string  `json:"name"`
	Type          string  `json:"type"`
	Breed         string  `json:"breed"`
	Weight        float64 `json:"weight"`
	WeightType    string  `json:"weightType"`
	DateOfBirth   string  `json:"dateOfBirth"`
	ActivityLevel string  `json:"activityLevel"`
}

func (r createRequest) validate() []string {
	var errs []string
	if strings.TrimSpace(r.Name) == "" {
		errs = append(errs, "name: Pet name is required")
	}
	if strings.TrimSpace(r.Type) == "" {
		errs = append(errs, "type: Pet type is required")
	}
	if strings.TrimSpace(r.Breed) == "" {
		errs = append(errs, "breed: Pet breed is required")
	}
	if r.Weight <= 0 {
		errs = append(errs, "weight: Weight must be positive")
	}
	if strings.TrimSpace(r.WeightType) == "" {
		errs = append(errs, "weightType: Weight type is required")
	}
	if strings.TrimSpace(r.DateOfBirth) == "" {
		errs = append(errs, "dateOfBirth: Date of birth is required")
	}
	if strings.TrimSpace(r.ActivityLevel) == "" {
		errs = append(errs, "activityLevel: Activity level is required")
	}
	return errs
}

type updateRequest struct {
	Name          *string  `json:"name"`
	Type          *string  `json:"type"`
	Breed         *string  `json:"breed"`
	Weight        *float64 `json:"weight"`
	WeightType    *string  `json:"weightType"`
	DateOfBirth   *string  `json:"dateOfBirth"`
	ActivityLevel *string  `json:"activityLevel"`
}

// SummaryResponse is the list-item shape for a pet.
type SummaryResponse struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Type        string  `json:"type"`
	Breed       string  `json:"breed"`
	Age         int     `json:"age"`
	DateOfBirth string  `json:"dateOfBirth"`
	PhotoURL    *string `json:"photoURL"`
}

// DetailedResponse adds care details plus the pet's child records.
type DetailedResponse struct {
	SummaryResponse
	Weight           float64                     `json:"weight"`
	WeightType       string                      `json:"weightType"`
	ActivityLevel    string                      `json:"activityLevel"`
	Medications      []medications.Response      `json:"medications"`
	FeedingSchedules []feedingschedules.Response `json:"feedingSchedules"`
	VetVisits        []vetvisits.Response        `json:"vetVisits"`
}

func toSummary(p Pet, today time.Time) SummaryResponse {
	resp := SummaryResponse{
		ID:          p.ID,
		Name:        p.Name,
		Type:        p.Type,
		Breed:       p.Breed,
		Age:         p.Age(today),
		DateOfBirth: p.DateOfBirth.Format(dateLayout),
	}
	if p.PhotoURL != "" {
		u := p.PhotoURL
		resp.PhotoURL = &u
	}
	return resp
}

type handler struct {
	svc    *Service
	owners *owners.Service
	meds   *medications.Service
	feeds  *feedingschedules.Service
	visits *vetvisits.Service
}

// Routes returns the /pets subtree, mounted inside the owner subrouter so
// {ownerID} is already bound. The children callbacks attach the
// pet-scoped record subtrees under /{petID}.
func Routes(svc *Service, ownersSvc *owners.Service, meds *medications.Service, feeds *feedingschedules.Service, visits *vetvisits.Service, children ...func(chi.Router)) func(chi.Router) {
	h := &handler{svc: svc, owners: ownersSvc, meds: meds, feeds: feeds, visits: visits}
	return func(r chi.Router) {
		r.Route("/pets", func(r chi.Router) {
			r.Post("/", h.create)
			r.Get("/", h.list)
			r.Route("/{petID}", func(r chi.Router) {
				r.Get("/", h.get)
				r.Patch("/", h.update)
				r.Delete("/", h.delete)
				r.Post("/photo", h.uploadPhoto)
				r.Get("/qr-code", h.qrCode)
				for _, mount := range children {
					mount(r)
				}
			})
		})
	}
}

func (h *handler) create(w http.ResponseWriter, r *http.Request) {
	ownerID, err := callerOwner(r)
	if err != nil {
		web.Err(w, err)
		return
	}

	var req createRequest
	if err := web.DecodeJSON(r, &req); err != nil {
		web.Err(w, err)
		return
	}
	if errs := req.validate(); len(errs) > 0 {
		web.ValidationFailed(w, errs)
		return
	}
	dob, err := time.Parse(dateLayout, req.DateOfBirth)
	if err != nil {
		web.Err(w, apperr.Invalidf("dateOfBirth must be YYYY-MM-DD"))
		return
	}

	p, err := h.svc.Create(r.Context(), ownerID, CreateInput{
		Name:          req.Name,
		Type:          req.Type,
		Breed:         req.Breed,
		Weight:        req.Weight,
		WeightType:    req.WeightType,
		ActivityLevel: req.ActivityLevel,
		DateOfBirth:   dob,
	})
	if err != nil {
		web.Err(w, err)
		return
	}
	web.JSON(w, http.StatusCreated, toSummary(p, h.svc.now()))
}

func (h *handler) list(w http.ResponseWriter, r *http.Request) {
	ownerID, err := callerOwner(r)
	if err != nil {
		web.Err(w, err)
		return
	}

	ps, err := h.svc.ListByOwner(r.Context(), ownerID)
	if err != nil {
		web.Err(w, err)
		return
	}
	today := h.svc.now()
	out := make([]SummaryResponse, 0, len(ps))
	for _, p := range ps {
		out = append(out, toSummary(p, today))
	}
	web.JSON(w, http.StatusOK, out)
}

func (h *handler) get(w http.ResponseWriter, r *http.Request) {
	ownerID, petID, err := petScope(r)
	if err != nil {
		web.Err(w, err)
		return
	}

	p, err := h.svc.GetByID(r.Context(), petID, ownerID)
	if err != nil {
		web.Err(w, err)
		return
	}
	resp, err := h.detail(r, p)
	if err != nil {
		web.Err(w, err)
		return
	}
	web.JSON(w, http.StatusOK, resp)
}

func (h *handler) update(w http.ResponseWriter, r *http.Request) {
	ownerID, petID, err := petScope(r)
	if err != nil {
		web.Err(w, err)
		return
	}

	var req updateRequest
	if err := web.DecodeJSON(r, &req); err != nil {
		web.Err(w, err)
		return
	}

	var dob *time.Time
	if req.DateOfBirth != nil && strings.TrimSpace(*req.DateOfBirth) != "" {
		t, err := time.Parse(dateLayout, *req.DateOfBirth)
		if err != nil {
			web.Err(w, apperr.Invalidf("dateOfBirth must be YYYY-MM-DD"))
			return
		}
		dob = &t
	}

	p, err := h.svc.Update(r.Context(), petID, ownerID, UpdateInput{
		Name:          req.Name,
		Type:          req.Type,
		Breed:         req.Breed,
		Weight:        req.Weight,
		WeightType:    req.WeightType,
		ActivityLevel: req.ActivityLevel,
		DateOfBirth:   dob,
	})
	if err != nil {
		web.Err(w, err)
		return
	}
	resp, err := h.detail(r, p)
	if err != nil {
		web.Err(w, err)
		return
	}
	web.JSON(w, http.StatusOK, resp)
}

func (h *handler) delete(w http.ResponseWriter, r *http.Request) {
	ownerID, petID, err := petScope(r)
	if err != nil {
		web.Err(w, err)
		return
	}

	if err := h.svc.Delete(r.Context(), petID, ownerID); err != nil {
		web.Err(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *handler) uploadPhoto(w http.ResponseWriter, r *http.Request) {
	ownerID, petID, err := petScope(r)
	if err != nil {
		web.Err(w, err)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, uploadCap)
	file, header, err := r.FormFile("photo")
	if err != nil {
		web.Err(w, apperr.Invalidf("Photo file is required"))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		web.Err(w, apperr.Invalidf("Could not read uploaded file"))
		return
	}

	p, err := h.svc.UpdatePhoto(r.Context(), petID, ownerID, header.Filename, data)
	if err != nil {
		web.Err(w, err)
		return
	}
	web.JSON(w, http.StatusOK, toSummary(p, h.svc.now()))
}

func (h *handler) qrCode(w http.ResponseWriter, r *http.Request) {
	ownerID, petID, err := petScope(r)
	if err != nil {
		web.Err(w, err)
		return
	}

	p, err := h.svc.GetByID(r.Context(), petID, ownerID)
	if err != nil {
		web.Err(w, err)
		return
	}
	o, err := h.owners.GetByID(r.Context(), p.OwnerID)
	if err != nil {
		web.Err(w, err)
		return
	}

	png, err := qr.Encode(qr.Card{
		PetName:    p.Name,
		PetType:    p.Type,
		PetBreed:   p.Breed,
		OwnerName:  o.Name,
		OwnerPhone: o.PhoneNumber,
	})
	if err != nil {
		web.Err(w, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Disposition", "attachment; filename=pet_"+strconv.FormatInt(p.ID, 10)+"_qr.png")
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}

func (h *handler) detail(r *http.Request, p Pet) (DetailedResponse, error) {
	ctx := r.Context()
	ownerID, _ := session.OwnerFromContext(ctx)

	meds, err := h.meds.ListForPet(ctx, p.ID, ownerID)
	if err != nil {
		return DetailedResponse{}, err
	}
	feeds, err := h.feeds.ListForPet(ctx, p.ID, ownerID)
	if err != nil {
		return DetailedResponse{}, err
	}
	visits, err := h.visits.ListForPet(ctx, p.ID, ownerID)
	if err != nil {
		return DetailedResponse{}, err
	}

	return DetailedResponse{
		SummaryResponse:  toSummary(p, h.svc.now()),
		Weight:           p.Weight,
		WeightType:       string(p.WeightType),
		ActivityLevel:    string(p.ActivityLevel),
		Medications:      medications.ToResponses(meds),
		FeedingSchedules: feedingschedules.ToResponses(feeds),
		VetVisits:        vetvisits.ToResponses(visits),
	}, nil
}

// petScope resolves the session owner and the pet id from the path. The
// path owner id was already matched against the session by the subtree
// guard.
func petScope(r *http.Request) (int64, int64, error) {
	ownerID, err := callerOwner(r)
	if err != nil {
		return 0, 0, err
	}
	petID, err := web.URLID(r, "petID")
	if err != nil {
		return 0, 0, err
	}
	return ownerID, petID, nil
}

func callerOwner(r *http.Request) (int64, error) {
	id, ok := session.OwnerFromContext(r.Context())
	if !ok {
		return 0, apperr.Unauthorizedf("Authentication required")
	}
	return id, nil
}
