package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/storefront/dashboard-api/internal/core/domain"
	"github.com/storefront/dashboard-api/internal/core/ports"
)

type stubUserService struct {
	user    *domain.User
	users   []*domain.User
	update  ports.ProfileUpdate
	listErr error
}

func (s *stubUserService) Profile(context.Context, domain.Identity) (*domain.User, error) {
	return s.user, nil
}

func (s *stubUserService) UpdateProfile(_ context.Context, _ domain.Identity, in ports.ProfileUpdate) (*domain.User, error) {
	s.update = in
	if in.Bio != nil {
		s.user.Bio = *in.Bio
	}
	if in.Username != nil {
		s.user.Username = *in.Username
	}
	return s.user, nil
}

func (s *stubUserService) ListUsers(context.Context, domain.Identity) ([]*domain.User, error) {
	return s.users, s.listErr
}

func (s *stubUserService) Statistics(context.Context, domain.Identity) ([]int, error) {
	return s.user.Statistics, nil
}

func TestUserHandler_Profile(t *testing.T) {
	stub := &stubUserService{user: &domain.User{ID: "u-1", Username: "alice", Bio: "hi", PasswordHash: "secret-hash"}}
	c, rec := newContext(t, http.MethodGet, "/profile", "", &userID)

	if err := NewUserHandler(stub).Profile(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	var resp profileResponse
	_ = json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp.Username != "alice" || resp.Bio != "hi" {
		t.Fatalf("unexpected profile: %+v", resp)
	}
	if strings.Contains(rec.Body.String(), "secret-hash") {
		t.Fatal("password hash leaked")
	}
}

func TestUserHandler_UpdateBio(t *testing.T) {
	stub := &stubUserService{user: &domain.User{ID: "u-1", Username: "alice"}}
	c, rec := newContext(t, http.MethodPatch, "/profile", `{"bio":"new bio","username":"ignored"}`, &userID)

	if err := NewUserHandler(stub).UpdateBio(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if stub.update.Username != nil {
		t.Fatal("PATCH must only touch the bio")
	}
	if !strings.Contains(rec.Body.String(), `"bio":"new bio"`) {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestUserHandler_UpdateBio_TooLong(t *testing.T) {
	body := `{"bio":"` + strings.Repeat("x", domain.MaxBioLength+1) + `"}`
	c, _ := newContext(t, http.MethodPatch, "/profile", body, &userID)

	requireFieldError(t, NewUserHandler(&stubUserService{}).UpdateBio(c), "bio")
}

func TestUserHandler_UpdateProfile_PartialFields(t *testing.T) {
	stub := &stubUserService{user: &domain.User{ID: "u-1", Username: "alice"}}
	c, _ := newContext(t, http.MethodPut, "/profile", `{"username":"alicia"}`, &userID)

	if err := NewUserHandler(stub).UpdateProfile(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if stub.update.Username == nil || *stub.update.Username != "alicia" {
		t.Fatalf("username not forwarded: %+v", stub.update)
	}
	if stub.update.Email != nil || stub.update.Bio != nil || stub.update.Avatar != nil {
		t.Fatalf("omitted fields must stay nil: %+v", stub.update)
	}
}

func TestUserHandler_List_ExcludesHashes(t *testing.T) {
	stub := &stubUserService{users: []*domain.User{
		{ID: "1", Username: "alice", PasswordHash: "h1"},
		{ID: "2", Username: "bob", PasswordHash: "h2"},
	}}
	c, rec := newContext(t, http.MethodGet, "/users", "", &managerID)

	if err := NewUserHandler(stub).List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	var items []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &items); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 users, got %d", len(items))
	}
	for _, item := range items {
		for k := range item {
			if strings.Contains(k, "password") {
				t.Fatalf("credential field %q present", k)
			}
		}
	}
}

func TestUserHandler_List_Forbidden(t *testing.T) {
	stub := &stubUserService{listErr: domain.ErrForbidden}
	c, _ := newContext(t, http.MethodGet, "/users", "", &userID)

	if err := NewUserHandler(stub).List(c); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestUserHandler_Chart(t *testing.T) {
	stub := &stubUserService{user: &domain.User{Statistics: []int{1, 2, 3}}}
	c, rec := newContext(t, http.MethodGet, "/stats/chart", "", &userID)

	if err := NewUserHandler(stub).Chart(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if got := strings.TrimSpace(rec.Body.String()); got != `{"data":[1,2,3]}` {
		t.Fatalf("unexpected body: %s", got)
	}
}
