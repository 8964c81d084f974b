package department

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/das-hr/skillmatrix/internal/authz"
	"github.com/das-hr/skillmatrix/internal/platform/httpx"
)

type stubRepo struct {
	byID       map[int64]*Department
	teamCounts map[int64]int64
	statuses   map[int64]string
	managers   map[int64][]int64
}

var _ Repository = (*stubRepo)(nil)

func newStubRepo() *stubRepo {
	return &stubRepo{
		byID:       map[int64]*Department{},
		teamCounts: map[int64]int64{},
		statuses:   map[int64]string{},
		managers:   map[int64][]int64{},
	}
}

func (s *stubRepo) Create(ctx context.Context, name, description string, careerID int64) (*Department, error) {
	d := &Department{ID: int64(len(s.byID) + 1), Name: name, Description: description, Status: StatusActive, CareerID: careerID, ManagerIDs: []int64{}}
	s.byID[d.ID] = d
	return d, nil
}

func (s *stubRepo) Find(ctx context.Context, id int64) (*Department, error) {
	if d, ok := s.byID[id]; ok && d.Status != StatusDeleted {
		copied := *d
		return &copied, nil
	}
	return nil, httpx.ErrNotFound
}

func (s *stubRepo) Update(ctx context.Context, d *Department) error {
	s.byID[d.ID] = d
	return nil
}

func (s *stubRepo) SetStatus(ctx context.Context, id int64, status string) error {
	s.statuses[id] = status
	s.byID[id].Status = status
	return nil
}

func (s *stubRepo) ReplaceManagers(ctx context.Context, id int64, managerIDs []int64) error {
	s.managers[id] = managerIDs
	s.byID[id].ManagerIDs = managerIDs
	return nil
}

func (s *stubRepo) ListByCareer(ctx context.Context, careerID int64, limit, offset int) ([]Department, int, error) {
	var out []Department
	for _, d := range s.byID {
		if d.CareerID == careerID && d.Status != StatusDeleted {
			out = append(out, *d)
		}
	}
	return out, len(out), nil
}

func (s *stubRepo) TeamBriefs(ctx context.Context, departmentID int64) ([]TeamBrief, error) {
	return nil, nil
}

func (s *stubRepo) CountTeams(ctx context.Context, departmentID int64) (int64, error) {
	return s.teamCounts[departmentID], nil
}

// stubAuthzStore backs the evaluator with just enough hierarchy for
// the move check: careers 1 and 2, user 10 managing career 1 only and
// user 20 managing both.
type stubAuthzStore struct{}

func (stubAuthzStore) FindCareerByID(ctx context.Context, id int64) (*authz.CareerRecord, error) {
	switch id {
	case 1:
		return &authz.CareerRecord{ID: 1, ManagerIDs: []int64{10, 20}}, nil
	case 2:
		return &authz.CareerRecord{ID: 2, ManagerIDs: []int64{20}}, nil
	}
	return nil, nil
}

func (stubAuthzStore) FindDepartmentByID(ctx context.Context, id int64) (*authz.DepartmentRecord, error) {
	return nil, nil
}

func (stubAuthzStore) ExistsManagedDepartment(ctx context.Context, careerID, userID int64) (bool, error) {
	return false, nil
}

func (stubAuthzStore) FindTeamByID(ctx context.Context, id int64) (*authz.TeamRecord, error) {
	return nil, nil
}

func (stubAuthzStore) ExistsTeamMember(ctx context.Context, teamID, userID int64) (bool, error) {
	return false, nil
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

func newTestService(repo *stubRepo) *Service {
	return NewService(repo, authz.NewEvaluator(stubAuthzStore{}), slog.Default())
}

func TestUpdateWithinSameCareerNeedsNoMoveRights(t *testing.T) {
	repo := newStubRepo()
	repo.byID[5] = &Department{ID: 5, Name: "UX", Status: StatusActive, CareerID: 1}
	svc := newTestService(repo)

	p := &authz.Principal{UserID: 10, Roles: []string{authz.RoleUser}}
	updated, err := svc.Update(context.Background(), p, 5, UpdateInput{Name: "UX Research", CareerID: 1})
	require.NoError(t, err)
	assert.Equal(t, "UX Research", updated.Name)
	assert.Equal(t, int64(1), updated.CareerID)
}

func TestMoveNeedsBothCareers(t *testing.T) {
	repo := newStubRepo()
	repo.byID[5] = &Department{ID: 5, Name: "UX", Status: StatusActive, CareerID: 1}
	svc := newTestService(repo)

	// User 10 manages only the source career.
	p := &authz.Principal{UserID: 10, Roles: []string{authz.RoleUser}}
	_, err := svc.Update(context.Background(), p, 5, UpdateInput{Name: "UX", CareerID: 2})
	assert.ErrorIs(t, err, authz.ErrAccessDenied)

	// User 20 manages both and may move.
	both := &authz.Principal{UserID: 20, Roles: []string{authz.RoleUser}}
	moved, err := svc.Update(context.Background(), both, 5, UpdateInput{Name: "UX", CareerID: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(2), moved.CareerID)
}

func TestMoveAllowsAdminRegardlessOfManagerSets(t *testing.T) {
	repo := newStubRepo()
	repo.byID[5] = &Department{ID: 5, Name: "UX", Status: StatusActive, CareerID: 1}
	svc := newTestService(repo)

	admin := &authz.Principal{UserID: 999, Roles: []string{authz.RoleAdmin}}
	moved, err := svc.Update(context.Background(), admin, 5, UpdateInput{Name: "UX", CareerID: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(2), moved.CareerID)
}

func TestDeleteParksDepartmentWithTeams(t *testing.T) {
	repo := newStubRepo()
	repo.byID[5] = &Department{ID: 5, Name: "UX", Status: StatusActive, CareerID: 1}
	repo.teamCounts[5] = 3
	svc := newTestService(repo)

	status, err := svc.Delete(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, StatusDeactive, status)
	assert.Equal(t, StatusDeactive, repo.statuses[5])
}

func TestDeleteRemovesEmptyDepartment(t *testing.T) {
	repo := newStubRepo()
	repo.byID[5] = &Department{ID: 5, Name: "UX", Status: StatusActive, CareerID: 1}
	svc := newTestService(repo)

	status, err := svc.Delete(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, StatusDeleted, status)
}

func TestAssignManagersReplacesWholeSet(t *testing.T) {
	repo := newStubRepo()
	repo.byID[5] = &Department{ID: 5, Name: "UX", Status: StatusActive, CareerID: 1, ManagerIDs: []int64{30}}
	svc := newTestService(repo)

	updated, err := svc.AssignManagers(context.Background(), 5, AssignManagersInput{ManagerIDs: []int64{31, 32}})
	require.NoError(t, err)
	assert.Equal(t, []int64{31, 32}, updated.ManagerIDs)
	assert.Equal(t, []int64{31, 32}, repo.managers[5])
}

func TestDeleteMissingDepartment(t *testing.T) {
	svc := newTestService(newStubRepo())
	_, err := svc.Delete(context.Background(), 404)
	assert.ErrorIs(t, err, httpx.ErrNotFound)
}
