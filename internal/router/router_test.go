package router

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/miguelocque/PetTrackr/internal/platform/config"
)

type env struct {
	ts     *httptest.Server
	client *http.Client
}

func newEnv(t *testing.T) *env {
	t.Helper()

	cfg := config.Config{
		UploadDir:          t.TempDir(),
		CORSAllowedOrigins: []string{"http://localhost:5173"},
		BcryptCost:         bcrypt.MinCost,
		SessionSecret:      "test-secret",
		SessionIdleTimeout: 30 * time.Minute,
	}
	ts := httptest.NewServer(New(Options{Config: cfg}))
	t.Cleanup(ts.Close)

	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("cookie jar: %v", err)
	}
	return &env{ts: ts, client: &http.Client{Jar: jar}}
}

// freshClient returns a second client with its own cookie jar, i.e. a
// different browser.
func (e *env) freshClient(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("cookie jar: %v", err)
	}
	return &http.Client{Jar: jar}
}

func (e *env) do(t *testing.T, client *http.Client, method, path string, body any) (*http.Response, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(b)
	}
	req, err := http.NewRequest(method, e.ts.URL+path, reader)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	var decoded map[string]any
	if len(raw) > 0 && strings.HasPrefix(resp.Header.Get("Content-Type"), "application/json") {
		if err := json.Unmarshal(raw, &decoded); err != nil {
			// list endpoints return arrays; callers that care decode
			// those themselves
			decoded = nil
		}
	}
	return resp, decoded
}

func (e *env) register(t *testing.T, client *http.Client, name, email, phone string) int64 {
	t.Helper()
	resp, body := e.do(t, client, http.MethodPost, "/api/owners/register", map[string]any{
		"name":        name,
		"email":       email,
		"phoneNumber": phone,
		"password":    "hunter22",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("register %s: status %d", email, resp.StatusCode)
	}
	return int64(body["id"].(float64))
}

func (e *env) login(t *testing.T, client *http.Client, email string) {
	t.Helper()
	resp, _ := e.do(t, client, http.MethodPost, "/api/auth/login", map[string]any{
		"email":    email,
		"password": "hunter22",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login %s: status %d", email, resp.StatusCode)
	}
}

func (e *env) createPet(t *testing.T, client *http.Client, ownerID int64) int64 {
	t.Helper()
	resp, body := e.do(t, client, http.MethodPost, fmt.Sprintf("/api/owners/%d/pets", ownerID), map[string]any{
		"name":          "Buddy",
		"type":          "Dog",
		"breed":         "Beagle",
		"weight":        12.5,
		"weightType":    "KG",
		"dateOfBirth":   "2020-03-15",
		"activityLevel": "MEDIUM",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create pet: status %d body %v", resp.StatusCode, body)
	}
	return int64(body["id"].(float64))
}

func TestRegisterAndLogin(t *testing.T) {
	e := newEnv(t)

	resp, body := e.do(t, e.client, http.MethodPost, "/api/owners/register", map[string]any{
		"name":        "Jane",
		"email":       "Jane@X.com",
		"phoneNumber": "5555550123",
		"password":    "hunter22",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("register: status %d", resp.StatusCode)
	}
	if body["email"] != "jane@x.com" {
		t.Fatalf("email not normalized: %v", body["email"])
	}

	e.login(t, e.client, "Jane@X.com")

	resp, body = e.do(t, e.client, http.MethodGet, "/api/auth/me", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("me: status %d", resp.StatusCode)
	}
	if body["name"] != "Jane" {
		t.Fatalf("me returned %v", body)
	}

	// Same email in different case conflicts.
	resp, _ = e.do(t, e.client, http.MethodPost, "/api/owners/register", map[string]any{
		"name":        "Janet",
		"email":       "JANE@X.COM",
		"phoneNumber": "5555550124",
		"password":    "hunter23",
	})
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("duplicate register: status %d", resp.StatusCode)
	}
}

func TestRegisterValidationErrorBody(t *testing.T) {
	e := newEnv(t)

	resp, body := e.do(t, e.client, http.MethodPost, "/api/owners/register", map[string]any{
		"email": "jane@x.com",
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status %d", resp.StatusCode)
	}
	if body["error"] != "Validation Error" {
		t.Fatalf("error label = %v", body["error"])
	}
	errs, ok := body["errors"].([]any)
	if !ok || len(errs) == 0 {
		t.Fatalf("expected field errors, got %v", body["errors"])
	}
}

func TestProtectedRoutesRequireSession(t *testing.T) {
	e := newEnv(t)

	resp, _ := e.do(t, e.client, http.MethodGet, "/api/owners/1/pets", nil)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("status %d, want 401", resp.StatusCode)
	}
}

func TestOwnershipIsolation(t *testing.T) {
	e := newEnv(t)

	ownerA := e.register(t, e.client, "Alice", "alice@x.com", "5555550001")
	e.login(t, e.client, "alice@x.com")
	petID := e.createPet(t, e.client, ownerA)

	clientB := e.freshClient(t)
	ownerB := e.register(t, clientB, "Bob", "bob@x.com", "5555550002")
	e.login(t, clientB, "bob@x.com")

	// Reading through B's own owner id still hits A's pet: 403.
	path := fmt.Sprintf("/api/owners/%d/pets/%d", ownerB, petID)
	for _, tc := range []struct {
		method string
		body   any
	}{
		{http.MethodGet, nil},
		{http.MethodPatch, map[string]any{"name": "Stolen"}},
		{http.MethodDelete, nil},
	} {
		resp, _ := e.do(t, clientB, tc.method, path, tc.body)
		if resp.StatusCode != http.StatusForbidden {
			t.Fatalf("%s: status %d, want 403", tc.method, resp.StatusCode)
		}
	}

	// Path naming A's owner id mismatches B's session: also 403.
	resp, _ := e.do(t, clientB, http.MethodGet, fmt.Sprintf("/api/owners/%d/pets/%d", ownerA, petID), nil)
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("foreign path: status %d, want 403", resp.StatusCode)
	}

	// The pet is untouched.
	resp, body := e.do(t, e.client, http.MethodGet, fmt.Sprintf("/api/owners/%d/pets/%d", ownerA, petID), nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("owner read: status %d", resp.StatusCode)
	}
	if body["name"] != "Buddy" {
		t.Fatalf("pet changed: %v", body["name"])
	}
}

func TestChildRoutesRejectForeignOwnerPath(t *testing.T) {
	e := newEnv(t)

	ownerID := e.register(t, e.client, "Jane", "jane@x.com", "5555550123")
	e.login(t, e.client, "jane@x.com")
	petID := e.createPet(t, e.client, ownerID)

	// A mismatched path owner id is rejected on the nested record routes,
	// not just on the pet routes.
	foreign := ownerID + 999
	paths := []string{
		fmt.Sprintf("/api/owners/%d/pets/%d/medications", foreign, petID),
		fmt.Sprintf("/api/owners/%d/pets/%d/feeding-schedules", foreign, petID),
		fmt.Sprintf("/api/owners/%d/pets/%d/vet-visits", foreign, petID),
	}
	for _, p := range paths {
		resp, _ := e.do(t, e.client, http.MethodGet, p, nil)
		if resp.StatusCode != http.StatusForbidden {
			t.Fatalf("GET %s: status %d, want 403", p, resp.StatusCode)
		}
	}

	// The same routes work under the caller's own id.
	resp, _ := e.do(t, e.client, http.MethodGet, fmt.Sprintf("/api/owners/%d/pets/%d/medications", ownerID, petID), nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("own medications: status %d", resp.StatusCode)
	}
}

func TestCascadeDelete(t *testing.T) {
	e := newEnv(t)

	ownerID := e.register(t, e.client, "Jane", "jane@x.com", "5555550123")
	e.login(t, e.client, "jane@x.com")
	petID := e.createPet(t, e.client, ownerID)
	base := fmt.Sprintf("/api/owners/%d/pets/%d", ownerID, petID)

	var childPaths []string
	for _, name := range []string{"Apoquel", "Heartgard"} {
		resp, body := e.do(t, e.client, http.MethodPost, base+"/medications", map[string]any{
			"name":             name,
			"dosageAmount":     16,
			"dosageUnit":       "mg",
			"frequency":        "daily",
			"timeToAdminister": "08:00",
			"startDate":        "2026-01-10",
		})
		if resp.StatusCode != http.StatusCreated {
			t.Fatalf("create medication: status %d", resp.StatusCode)
		}
		childPaths = append(childPaths, fmt.Sprintf("%s/medications/%d", base, int64(body["id"].(float64))))
	}

	resp, body := e.do(t, e.client, http.MethodPost, base+"/feeding-schedules", map[string]any{
		"time":         "07:30",
		"foodType":     "kibble",
		"quantity":     1.5,
		"quantityUnit": "CUPS",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create schedule: status %d", resp.StatusCode)
	}
	childPaths = append(childPaths, fmt.Sprintf("%s/feeding-schedules/%d", base, int64(body["id"].(float64))))

	resp, body = e.do(t, e.client, http.MethodPost, base+"/vet-visits", map[string]any{
		"visitDate":      "2026-05-12",
		"vetName":        "Dr. Alvarez",
		"reasonForVisit": "Annual checkup",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create visit: status %d", resp.StatusCode)
	}
	childPaths = append(childPaths, fmt.Sprintf("%s/vet-visits/%d", base, int64(body["id"].(float64))))

	resp, _ = e.do(t, e.client, http.MethodDelete, base, nil)
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("delete pet: status %d", resp.StatusCode)
	}

	for _, p := range childPaths {
		resp, _ := e.do(t, e.client, http.MethodGet, p, nil)
		if resp.StatusCode != http.StatusNotFound {
			t.Fatalf("GET %s after cascade: status %d, want 404", p, resp.StatusCode)
		}
	}
}

func TestMedicationEndDateRule(t *testing.T) {
	e := newEnv(t)

	ownerID := e.register(t, e.client, "Jane", "jane@x.com", "5555550123")
	e.login(t, e.client, "jane@x.com")
	petID := e.createPet(t, e.client, ownerID)
	base := fmt.Sprintf("/api/owners/%d/pets/%d/medications", ownerID, petID)

	resp, body := e.do(t, e.client, http.MethodPost, base, map[string]any{
		"name":             "Apoquel",
		"dosageAmount":     16,
		"dosageUnit":       "mg",
		"frequency":        "daily",
		"timeToAdminister": "08:00",
		"startDate":        "2024-06-01",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create: status %d", resp.StatusCode)
	}
	if body["endDate"] != nil {
		t.Fatalf("new medication should be ongoing, got %v", body["endDate"])
	}
	medPath := fmt.Sprintf("%s/%d", base, int64(body["id"].(float64)))

	resp, _ = e.do(t, e.client, http.MethodPatch, medPath, map[string]any{"endDate": "2024-05-31"})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("end before start: status %d, want 400", resp.StatusCode)
	}

	resp, body = e.do(t, e.client, http.MethodPatch, medPath, map[string]any{"endDate": "2024-12-01"})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("valid end date: status %d", resp.StatusCode)
	}
	if body["endDate"] != "2024-12-01" {
		t.Fatalf("endDate = %v", body["endDate"])
	}
}

func multipartBody(t *testing.T, field, filename string, data []byte) (*bytes.Buffer, string) {
	t.Helper()
	buf := &bytes.Buffer{}
	mw := multipart.NewWriter(buf)
	fw, err := mw.CreateFormFile(field, filename)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := fw.Write(data); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	mw.Close()
	return buf, mw.FormDataContentType()
}

func (e *env) upload(t *testing.T, path, field, filename string, data []byte) (*http.Response, map[string]any) {
	t.Helper()
	buf, contentType := multipartBody(t, field, filename, data)
	req, err := http.NewRequest(http.MethodPost, e.ts.URL+path, buf)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", contentType)
	resp, err := e.client.Do(req)
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	defer resp.Body.Close()

	var body map[string]any
	raw, _ := io.ReadAll(resp.Body)
	if len(raw) > 0 {
		_ = json.Unmarshal(raw, &body)
	}
	return resp, body
}

func TestPhotoUpload(t *testing.T) {
	e := newEnv(t)

	ownerID := e.register(t, e.client, "Jane", "jane@x.com", "5555550123")
	e.login(t, e.client, "jane@x.com")
	petID := e.createPet(t, e.client, ownerID)
	path := fmt.Sprintf("/api/owners/%d/pets/%d/photo", ownerID, petID)

	resp, body := e.upload(t, path, "photo", "photo.jpg", bytes.Repeat([]byte("j"), 1024))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("jpg upload: status %d body %v", resp.StatusCode, body)
	}
	// The stored reference is the bare filename.
	photoURL, _ := body["photoURL"].(string)
	pattern := fmt.Sprintf(`^%d_\d+\.jpg$`, petID)
	if ok, _ := regexp.MatchString(pattern, photoURL); !ok {
		t.Fatalf("photoURL %q does not match %q", photoURL, pattern)
	}

	// The stored file is served back under /uploads/.
	resp2, err := e.client.Get(e.ts.URL + "/uploads/" + photoURL)
	if err != nil {
		t.Fatalf("fetch photo: %v", err)
	}
	resp2.Body.Close()
	if resp2.StatusCode != http.StatusOK {
		t.Fatalf("fetch photo: status %d", resp2.StatusCode)
	}

	resp, _ = e.upload(t, path, "photo", "photo.pdf", bytes.Repeat([]byte("p"), 1024))
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("pdf upload: status %d, want 400", resp.StatusCode)
	}

	resp, _ = e.upload(t, path, "photo", "big.jpg", make([]byte, 5<<20+1))
	if resp.StatusCode != http.StatusRequestEntityTooLarge {
		t.Fatalf("oversized upload: status %d, want 413", resp.StatusCode)
	}

	resp, _ = e.upload(t, path, "document", "photo.jpg", []byte("data"))
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("missing field: status %d, want 400", resp.StatusCode)
	}
}

func TestQRCode(t *testing.T) {
	e := newEnv(t)

	ownerID := e.register(t, e.client, "Jane", "jane@x.com", "5555550123")
	e.login(t, e.client, "jane@x.com")
	petID := e.createPet(t, e.client, ownerID)

	resp, err := e.client.Get(fmt.Sprintf("%s/api/owners/%d/pets/%d/qr-code", e.ts.URL, ownerID, petID))
	if err != nil {
		t.Fatalf("qr: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "image/png" {
		t.Fatalf("content type %q", ct)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	signature := []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}
	if len(data) < 8 || !bytes.Equal(data[:8], signature) {
		t.Fatalf("body does not start with the PNG signature")
	}
}

func TestPatchAllNullIsNoop(t *testing.T) {
	e := newEnv(t)

	ownerID := e.register(t, e.client, "Jane", "jane@x.com", "5555550123")
	e.login(t, e.client, "jane@x.com")
	petID := e.createPet(t, e.client, ownerID)
	path := fmt.Sprintf("/api/owners/%d/pets/%d", ownerID, petID)

	resp, body := e.do(t, e.client, http.MethodPatch, path, map[string]any{})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status %d", resp.StatusCode)
	}
	if body["name"] != "Buddy" || body["breed"] != "Beagle" {
		t.Fatalf("record changed by empty patch: %v", body)
	}
	if body["weightType"] != "KG" {
		t.Fatalf("weightType = %v", body["weightType"])
	}
}

func TestPetDetailIncludesChildren(t *testing.T) {
	e := newEnv(t)

	ownerID := e.register(t, e.client, "Jane", "jane@x.com", "5555550123")
	e.login(t, e.client, "jane@x.com")
	petID := e.createPet(t, e.client, ownerID)
	base := fmt.Sprintf("/api/owners/%d/pets/%d", ownerID, petID)

	resp, _ := e.do(t, e.client, http.MethodPost, base+"/medications", map[string]any{
		"name":             "Apoquel",
		"dosageAmount":     16,
		"dosageUnit":       "mg",
		"frequency":        "daily",
		"timeToAdminister": "08:00",
		"startDate":        "2026-01-10",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create medication: status %d", resp.StatusCode)
	}

	resp, body := e.do(t, e.client, http.MethodGet, base, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("detail: status %d", resp.StatusCode)
	}
	meds, ok := body["medications"].([]any)
	if !ok || len(meds) != 1 {
		t.Fatalf("medications = %v", body["medications"])
	}
	if _, ok := body["feedingSchedules"].([]any); !ok {
		t.Fatalf("feedingSchedules missing: %v", body["feedingSchedules"])
	}
	if _, ok := body["vetVisits"].([]any); !ok {
		t.Fatalf("vetVisits missing: %v", body["vetVisits"])
	}
	if body["age"] == nil {
		t.Fatalf("age missing")
	}
}
