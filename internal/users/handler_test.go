package users

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/das-hr/skillmatrix/internal/authz"
	"github.com/das-hr/skillmatrix/internal/platform/httpx"
)

type stubRepo struct {
	profiles map[int64]*Profile
}

var _ Repository = (*stubRepo)(nil)

func (s *stubRepo) Find(ctx context.Context, id int64) (*Profile, error) {
	if p, ok := s.profiles[id]; ok {
		return p, nil
	}
	return nil, httpx.ErrNotFound
}

func (s *stubRepo) UpdateFullName(ctx context.Context, id int64, fullName string) error {
	if p, ok := s.profiles[id]; ok {
		p.FullName = fullName
		return nil
	}
	return httpx.ErrNotFound
}

func (s *stubRepo) SetActive(ctx context.Context, id int64, active bool) error {
	if p, ok := s.profiles[id]; ok {
		p.IsActive = active
		return nil
	}
	return httpx.ErrNotFound
}

func (s *stubRepo) List(ctx context.Context, limit, offset int) ([]Profile, int, error) {
	var out []Profile
	for _, p := range s.profiles {
		out = append(out, *p)
	}
	return out, len(out), nil
}

type emptyAuthzStore struct{}

func (emptyAuthzStore) FindCareerByID(ctx context.Context, id int64) (*authz.CareerRecord, error) {
	return nil, nil
}

func (emptyAuthzStore) FindDepartmentByID(ctx context.Context, id int64) (*authz.DepartmentRecord, error) {
	return nil, nil
}

func (emptyAuthzStore) ExistsManagedDepartment(ctx context.Context, careerID, userID int64) (bool, error) {
	return false, nil
}

func (emptyAuthzStore) FindTeamByID(ctx context.Context, id int64) (*authz.TeamRecord, error) {
	return nil, nil
}

func (emptyAuthzStore) ExistsTeamMember(ctx context.Context, teamID, userID int64) (bool, error) {
	return false, nil
}

func (emptyAuthzStore) FindNotificationByID(ctx context.Context, id int64) (*authz.NotificationRecord, error) {
	return nil, nil
}

func (emptyAuthzStore) FindDocumentByID(ctx context.Context, id int64) (*authz.DocumentRecord, error) {
	return nil, nil
}

func (emptyAuthzStore) FindProgressByID(ctx context.Context, id int64) (*authz.ProgressRecord, error) {
	return nil, nil
}

func (emptyAuthzStore) FindEvaluationByID(ctx context.Context, id int64) (*authz.EvaluationRecord, error) {
	return nil, nil
}

func newTestRouter() chi.Router {
	repo := &stubRepo{profiles: map[int64]*Profile{
		50: {ID: 50, Email: "casey@example.com", FullName: "Casey", Role: authz.RoleUser, IsActive: true, TeamIDs: []int64{}},
		60: {ID: 60, Email: "riley@example.com", FullName: "Riley", Role: authz.RoleUser, IsActive: true, TeamIDs: []int64{}},
	}}
	h := NewHandler(slog.Default(), repo, authz.NewEvaluator(emptyAuthzStore{}), validator.New())
	r := chi.NewRouter()
	h.MountRoutes(r)
	return r
}

func do(router chi.Router, p *authz.Principal, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if p != nil {
		req = req.WithContext(authz.WithPrincipal(req.Context(), p))
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestProfileReadableByOwnerOnly(t *testing.T) {
	router := newTestRouter()

	owner := &authz.Principal{UserID: 50, Roles: []string{authz.RoleUser}}
	if rec := do(router, owner, http.MethodGet, "/users/50", ""); rec.Code != http.StatusOK {
		t.Fatalf("owner read: got %d, want 200", rec.Code)
	}
	if rec := do(router, owner, http.MethodGet, "/users/60", ""); rec.Code != http.StatusForbidden {
		t.Fatalf("cross-user read: got %d, want 403", rec.Code)
	}

	admin := &authz.Principal{UserID: 1, Roles: []string{authz.RoleAdmin}}
	if rec := do(router, admin, http.MethodGet, "/users/60", ""); rec.Code != http.StatusOK {
		t.Fatalf("admin read: got %d, want 200", rec.Code)
	}
}

func TestDirectoryIsAdminOnly(t *testing.T) {
	router := newTestRouter()

	plain := &authz.Principal{UserID: 50, Roles: []string{authz.RoleUser}}
	if rec := do(router, plain, http.MethodGet, "/users", ""); rec.Code != http.StatusForbidden {
		t.Fatalf("plain user list: got %d, want 403", rec.Code)
	}

	admin := &authz.Principal{UserID: 1, Roles: []string{authz.RoleAdmin}}
	if rec := do(router, admin, http.MethodGet, "/users", ""); rec.Code != http.StatusOK {
		t.Fatalf("admin list: got %d, want 200", rec.Code)
	}
}

func TestMeResolvesCurrentPrincipal(t *testing.T) {
	router := newTestRouter()

	owner := &authz.Principal{UserID: 50, Roles: []string{authz.RoleUser}}
	rec := do(router, owner, http.MethodGet, "/users/me", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("me: got %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "casey@example.com") {
		t.Fatalf("me body missing profile: %s", rec.Body.String())
	}

	if rec := do(router, nil, http.MethodGet, "/users/me", ""); rec.Code != http.StatusUnauthorized {
		t.Fatalf("anonymous me: got %d, want 401", rec.Code)
	}
}

func TestSelfServiceUpdateGuard(t *testing.T) {
	router := newTestRouter()
	body := `{"fullName":"Casey Updated"}`

	stranger := &authz.Principal{UserID: 60, Roles: []string{authz.RoleUser}}
	if rec := do(router, stranger, http.MethodPut, "/users/50", body); rec.Code != http.StatusForbidden {
		t.Fatalf("stranger update: got %d, want 403", rec.Code)
	}

	owner := &authz.Principal{UserID: 50, Roles: []string{authz.RoleUser}}
	rec := do(router, owner, http.MethodPut, "/users/50", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("owner update: got %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Casey Updated") {
		t.Fatalf("update not applied: %s", rec.Body.String())
	}
}
