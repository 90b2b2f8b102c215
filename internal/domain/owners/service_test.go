package owners

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/miguelocque/PetTrackr/internal/apperr"
)

type stubRepo struct {
	items  map[int64]Owner
	nextID int64
}

func newStubRepo() *stubRepo {
	return &stubRepo{items: map[int64]Owner{}, nextID: 1}
}

func (r *stubRepo) Create(_ context.Context, o Owner) (Owner, error) {
	o.ID = r.nextID
	r.nextID++
	r.items[o.ID] = o
	return o, nil
}

func (r *stubRepo) GetByID(_ context.Context, id int64) (Owner, error) {
	o, ok := r.items[id]
	if !ok {
		return Owner{}, apperr.ErrNotFound
	}
	return o, nil
}

func (r *stubRepo) ExistsByID(_ context.Context, id int64) (bool, error) {
	_, ok := r.items[id]
	return ok, nil
}

func (r *stubRepo) GetByEmail(_ context.Context, email string) (Owner, error) {
	for _, o := range r.items {
		if strings.EqualFold(o.Email, email) {
			return o, nil
		}
	}
	return Owner{}, apperr.ErrNotFound
}

func (r *stubRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	_, err := r.GetByEmail(context.Background(), email)
	return err == nil, nil
}

func (r *stubRepo) Update(_ context.Context, o Owner) error {
	if _, ok := r.items[o.ID]; !ok {
		return apperr.ErrNotFound
	}
	r.items[o.ID] = o
	return nil
}

func (r *stubRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.items[id]; !ok {
		return apperr.ErrNotFound
	}
	delete(r.items, id)
	return nil
}

// plainHasher keeps tests fast; hashing strength is covered elsewhere.
type plainHasher struct{}

func (plainHasher) Hash(raw string) (string, error) { return "h:" + raw, nil }
func (plainHasher) Verify(hashed, raw string) bool  { return hashed == "h:"+raw }

func TestRegisterNormalizesEmail(t *testing.T) {
	svc := NewService(newStubRepo(), plainHasher{})

	o, err := svc.Register(context.Background(), " Jane@X.Com ", "Jane", "5555550123", "hunter22")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if o.Email != "jane@x.com" {
		t.Fatalf("email not normalized: %q", o.Email)
	}
	if o.PasswordHash == "hunter22" {
		t.Fatalf("raw password stored")
	}
}

func TestRegisterValidatesInput(t *testing.T) {
	svc := NewService(newStubRepo(), plainHasher{})
	ctx := context.Background()

	cases := []struct {
		name                        string
		email, owner, phone, secret string
	}{
		{"empty email", "", "Jane", "5555550123", "hunter22"},
		{"bad email", "not-an-email", "Jane", "5555550123", "hunter22"},
		{"empty phone", "jane@x.com", "Jane", "", "hunter22"},
		{"bad phone", "jane@x.com", "Jane", "12345", "hunter22"},
		{"empty name", "jane@x.com", " ", "5555550123", "hunter22"},
		{"empty password", "jane@x.com", "Jane", "5555550123", ""},
		{"short password", "jane@x.com", "Jane", "5555550123", "abc"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Register(ctx, tc.email, tc.owner, tc.phone, tc.secret)
			if !errors.Is(err, apperr.ErrInvalid) {
				t.Fatalf("want ErrInvalid, got %v", err)
			}
		})
	}
}

func TestRegisterDuplicateEmailIsCaseInsensitive(t *testing.T) {
	svc := NewService(newStubRepo(), plainHasher{})
	ctx := context.Background()

	if _, err := svc.Register(ctx, "jane@x.com", "Jane", "5555550123", "hunter22"); err != nil {
		t.Fatalf("register: %v", err)
	}
	_, err := svc.Register(ctx, "JANE@X.COM", "Janet", "5555550124", "hunter23")
	if !errors.Is(err, apperr.ErrConflict) {
		t.Fatalf("want ErrConflict, got %v", err)
	}
}

func TestVerifyPassword(t *testing.T) {
	svc := NewService(newStubRepo(), plainHasher{})
	ctx := context.Background()

	if _, err := svc.Register(ctx, "jane@x.com", "Jane", "5555550123", "hunter22"); err != nil {
		t.Fatalf("register: %v", err)
	}

	if !svc.VerifyPassword(ctx, "Jane@X.com", "hunter22") {
		t.Fatalf("correct password rejected")
	}
	if svc.VerifyPassword(ctx, "jane@x.com", "wrong") {
		t.Fatalf("wrong password accepted")
	}
	if svc.VerifyPassword(ctx, "nobody@x.com", "hunter22") {
		t.Fatalf("unknown email accepted")
	}
}

func TestUpdateProfilePartialSemantics(t *testing.T) {
	svc := NewService(newStubRepo(), plainHasher{})
	ctx := context.Background()

	o, err := svc.Register(ctx, "jane@x.com", "Jane", "5555550123", "hunter22")
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	blank := " "
	name := "Jane Doe"
	got, err := svc.UpdateProfile(ctx, o.ID, UpdateInput{Name: &name, PhoneNumber: &blank})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if got.Name != "Jane Doe" {
		t.Fatalf("name not updated: %q", got.Name)
	}
	if got.PhoneNumber != "5555550123" {
		t.Fatalf("blank phone should be ignored, got %q", got.PhoneNumber)
	}
}

func TestUpdateProfileEmailUniqueness(t *testing.T) {
	svc := NewService(newStubRepo(), plainHasher{})
	ctx := context.Background()

	if _, err := svc.Register(ctx, "jane@x.com", "Jane", "5555550123", "hunter22"); err != nil {
		t.Fatalf("register: %v", err)
	}
	o, err := svc.Register(ctx, "bob@x.com", "Bob", "5555550124", "hunter23")
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	taken := "JANE@x.com"
	if _, err := svc.UpdateProfile(ctx, o.ID, UpdateInput{Email: &taken}); !errors.Is(err, apperr.ErrConflict) {
		t.Fatalf("want ErrConflict, got %v", err)
	}

	// Re-submitting the current email is a no-op, not a conflict.
	same := "bob@x.com"
	if _, err := svc.UpdateProfile(ctx, o.ID, UpdateInput{Email: &same}); err != nil {
		t.Fatalf("same email update: %v", err)
	}
}
