package team

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
	teams   map[int64]*Team
	rosters map[int64][]Member
}

var _ Repository = (*stubRepo)(nil)

func (s *stubRepo) Create(ctx context.Context, in CreateInput) (*Team, error) {
	t := &Team{ID: 99, Name: in.Name, DepartmentID: in.DepartmentID, ManagerID: in.ManagerID, ManagerIDs: []int64{}}
	s.teams[t.ID] = t
	return t, nil
}

func (s *stubRepo) Find(ctx context.Context, id int64) (*Team, error) {
	if t, ok := s.teams[id]; ok {
		return t, nil
	}
	return nil, httpx.ErrNotFound
}

func (s *stubRepo) Update(ctx context.Context, t *Team) error { return nil }
func (s *stubRepo) Delete(ctx context.Context, id int64) error {
	delete(s.teams, id)
	return nil
}

func (s *stubRepo) List(ctx context.Context, departmentID int64, limit, offset int) ([]Team, int, error) {
	var out []Team
	for _, t := range s.teams {
		out = append(out, *t)
	}
	return out, len(out), nil
}

func (s *stubRepo) Members(ctx context.Context, teamID int64) ([]Member, error) {
	return s.rosters[teamID], nil
}

func (s *stubRepo) AddMember(ctx context.Context, teamID, userID int64) error    { return nil }
func (s *stubRepo) RemoveMember(ctx context.Context, teamID, userID int64) error { return nil }

// stubAuthzStore models team 7: primary manager 40, member 50.
type stubAuthzStore struct{}

func (stubAuthzStore) FindCareerByID(ctx context.Context, id int64) (*authz.CareerRecord, error) {
	return nil, nil
}

func (stubAuthzStore) FindDepartmentByID(ctx context.Context, id int64) (*authz.DepartmentRecord, error) {
	return nil, nil
}

func (stubAuthzStore) ExistsManagedDepartment(ctx context.Context, careerID, userID int64) (bool, error) {
	return false, nil
}

func (stubAuthzStore) FindTeamByID(ctx context.Context, id int64) (*authz.TeamRecord, error) {
	if id == 7 {
		return &authz.TeamRecord{ID: 7, DepartmentID: 1, ManagerID: 40}, nil
	}
	return nil, nil
}

func (stubAuthzStore) ExistsTeamMember(ctx context.Context, teamID, userID int64) (bool, error) {
	return teamID == 7 && userID == 50, nil
}

func (stubAuthzStore) FindNotificationByID(ctx context.Context, id int64) (*authz.NotificationRecord, error) {
	return nil, nil
}

func (stubAuthzStore) FindDocumentByID(ctx context.Context, id int64) (*authz.DocumentRecord, error) {
	return nil, nil
}

func (stubAuthzStore) FindProgressByID(ctx context.Context, id int64) (*authz.ProgressRecord, error) {
	return nil, nil
}

func (stubAuthzStore) FindEvaluationByID(ctx context.Context, id int64) (*authz.EvaluationRecord, error) {
	return nil, nil
}

func newTestRouter() chi.Router {
	repo := &stubRepo{
		teams: map[int64]*Team{
			7: {ID: 7, Name: "Platform", DepartmentID: 1, ManagerID: 40, ManagerIDs: []int64{}},
		},
		rosters: map[int64][]Member{
			7: {{UserID: 50, FullName: "Casey Member", Email: "casey@example.com"}},
		},
	}
	logger := slog.Default()
	h := NewHandler(logger, NewService(repo, logger), authz.NewEvaluator(stubAuthzStore{}), validator.New())
	r := chi.NewRouter()
	h.MountRoutes(r)
	return r
}

func do(t *testing.T, router chi.Router, p *authz.Principal, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if p != nil {
		req = req.WithContext(authz.WithPrincipal(req.Context(), p))
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestRosterAllowsMemberAndManager(t *testing.T) {
	router := newTestRouter()

	member := &authz.Principal{UserID: 50, Roles: []string{authz.RoleUser}}
	if rec := do(t, router, member, http.MethodGet, "/teams/7/members", ""); rec.Code != http.StatusOK {
		t.Fatalf("member roster read: got %d, want 200", rec.Code)
	}

	manager := &authz.Principal{UserID: 40, Roles: []string{authz.RoleUser}}
	if rec := do(t, router, manager, http.MethodGet, "/teams/7/members", ""); rec.Code != http.StatusOK {
		t.Fatalf("manager roster read: got %d, want 200", rec.Code)
	}
}

func TestRosterDeniesOutsider(t *testing.T) {
	router := newTestRouter()

	outsider := &authz.Principal{UserID: 60, Roles: []string{authz.RoleUser}}
	if rec := do(t, router, outsider, http.MethodGet, "/teams/7/members", ""); rec.Code != http.StatusForbidden {
		t.Fatalf("outsider roster read: got %d, want 403", rec.Code)
	}
}

func TestTeamWriteNeedsManagerOwnership(t *testing.T) {
	router := newTestRouter()
	body := `{"name":"Platform","description":"","managerId":40}`

	member := &authz.Principal{UserID: 50, Roles: []string{authz.RoleUser}}
	if rec := do(t, router, member, http.MethodPut, "/teams/7", body); rec.Code != http.StatusForbidden {
		t.Fatalf("member team update: got %d, want 403", rec.Code)
	}

	manager := &authz.Principal{UserID: 40, Roles: []string{authz.RoleUser}}
	if rec := do(t, router, manager, http.MethodPut, "/teams/7", body); rec.Code != http.StatusOK {
		t.Fatalf("manager team update: got %d, want 200", rec.Code)
	}
}

func TestManagerRoleBypassesOwnership(t *testing.T) {
	router := newTestRouter()

	other := &authz.Principal{UserID: 999, Roles: []string{authz.RoleManager}}
	if rec := do(t, router, other, http.MethodGet, "/teams/7", ""); rec.Code != http.StatusOK {
		t.Fatalf("manager role team read: got %d, want 200", rec.Code)
	}
}

func TestAnonymousGetsUnauthorized(t *testing.T) {
	router := newTestRouter()

	if rec := do(t, router, nil, http.MethodGet, "/teams/7/members", ""); rec.Code != http.StatusUnauthorized {
		t.Fatalf("anonymous roster read: got %d, want 401", rec.Code)
	}
	if rec := do(t, router, nil, http.MethodGet, "/teams", ""); rec.Code != http.StatusUnauthorized {
		t.Fatalf("anonymous list: got %d, want 401", rec.Code)
	}
}

func TestCreateNeedsElevatedRole(t *testing.T) {
	router := newTestRouter()
	body := `{"name":"New Team","departmentId":1}`

	plain := &authz.Principal{UserID: 50, Roles: []string{authz.RoleUser}}
	if rec := do(t, router, plain, http.MethodPost, "/teams", body); rec.Code != http.StatusForbidden {
		t.Fatalf("plain user create: got %d, want 403", rec.Code)
	}

	admin := &authz.Principal{UserID: 1, Roles: []string{authz.RoleAdmin}}
	if rec := do(t, router, admin, http.MethodPost, "/teams", body); rec.Code != http.StatusCreated {
		t.Fatalf("admin create: got %d, want 201", rec.Code)
	}
}
