package career

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/das-hr/skillmatrix/internal/platform/httpx"
)

type stubRepo struct {
	byName   map[string]*Career
	byID     map[int64]*Career
	briefs   map[int64][]DepartmentBrief
	created  []string
	revived  []int64
	updated  []*Career
	deleted  []int64
	nextID   int64
	findErr  error
	countErr error
}

var _ Repository = (*stubRepo)(nil)

func newStubRepo() *stubRepo {
	return &stubRepo{
		byName: map[string]*Career{},
		byID:   map[int64]*Career{},
		briefs: map[int64][]DepartmentBrief{},
		nextID: 100,
	}
}

func (s *stubRepo) add(c *Career) *Career {
	s.byName[c.Name] = c
	s.byID[c.ID] = c
	return c
}

func (s *stubRepo) Create(ctx context.Context, name, description string) (*Career, error) {
	s.created = append(s.created, name)
	s.nextID++
	return s.add(&Career{ID: s.nextID, Name: name, Description: description}), nil
}

func (s *stubRepo) FindByName(ctx context.Context, name string) (*Career, error) {
	if s.findErr != nil {
		return nil, s.findErr
	}
	if c, ok := s.byName[name]; ok {
		return c, nil
	}
	return nil, httpx.ErrNotFound
}

func (s *stubRepo) FindLive(ctx context.Context, id int64) (*Career, error) {
	if c, ok := s.byID[id]; ok && !c.Deleted {
		return c, nil
	}
	return nil, httpx.ErrNotFound
}

func (s *stubRepo) Update(ctx context.Context, c *Career) error {
	s.updated = append(s.updated, c)
	return nil
}

func (s *stubRepo) Revive(ctx context.Context, id int64, description string) (*Career, error) {
	s.revived = append(s.revived, id)
	c := s.byID[id]
	c.Deleted = false
	c.DeletedAt = nil
	c.Description = description
	return c, nil
}

func (s *stubRepo) SoftDelete(ctx context.Context, id int64, at time.Time) error {
	s.deleted = append(s.deleted, id)
	c := s.byID[id]
	c.Deleted = true
	c.DeletedAt = &at
	return nil
}

func (s *stubRepo) List(ctx context.Context, limit, offset int) ([]Career, int, error) {
	var out []Career
	for _, c := range s.byID {
		if !c.Deleted {
			out = append(out, *c)
		}
	}
	return out, len(out), nil
}

func (s *stubRepo) DepartmentBriefs(ctx context.Context, careerID int64) ([]DepartmentBrief, error) {
	return s.briefs[careerID], nil
}

func (s *stubRepo) CountDepartments(ctx context.Context, careerID int64) (int64, error) {
	if s.countErr != nil {
		return 0, s.countErr
	}
	return int64(len(s.briefs[careerID])), nil
}

func newTestService(repo *stubRepo) *Service {
	svc := NewService(repo, slog.Default())
	svc.now = func() time.Time { return time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC) }
	return svc
}

func TestCreateInsertsNewCareer(t *testing.T) {
	repo := newStubRepo()
	svc := newTestService(repo)

	created, err := svc.Create(context.Background(), CreateInput{Name: "  Software   Engineering ", Description: "builds things"})
	require.NoError(t, err)
	assert.Equal(t, "Software Engineering", created.Name)
	assert.Equal(t, []string{"Software Engineering"}, repo.created)
}

func TestCreateRevivesSoftDeletedName(t *testing.T) {
	repo := newStubRepo()
	when := time.Now()
	repo.add(&Career{ID: 7, Name: "Design", Deleted: true, DeletedAt: &when})
	svc := newTestService(repo)

	revived, err := svc.Create(context.Background(), CreateInput{Name: "Design", Description: "fresh start"})
	require.NoError(t, err)
	assert.Equal(t, int64(7), revived.ID)
	assert.False(t, revived.Deleted)
	assert.Equal(t, "fresh start", revived.Description)
	assert.Empty(t, repo.created, "revival must not insert a new row")
}

func TestCreateRejectsLiveDuplicate(t *testing.T) {
	repo := newStubRepo()
	repo.add(&Career{ID: 7, Name: "Design"})
	svc := newTestService(repo)

	_, err := svc.Create(context.Background(), CreateInput{Name: "Design"})
	assert.ErrorIs(t, err, httpx.ErrDuplicate)
}

func TestUpdateRejectsNameHeldByAnotherCareer(t *testing.T) {
	repo := newStubRepo()
	repo.add(&Career{ID: 1, Name: "Design"})
	repo.add(&Career{ID: 2, Name: "Engineering"})
	svc := newTestService(repo)

	_, err := svc.Update(context.Background(), 2, UpdateInput{Name: "Design"})
	assert.ErrorIs(t, err, httpx.ErrDuplicate)
}

func TestUpdateAllowsKeepingOwnName(t *testing.T) {
	repo := newStubRepo()
	repo.add(&Career{ID: 1, Name: "Design", Description: "old"})
	svc := newTestService(repo)

	updated, err := svc.Update(context.Background(), 1, UpdateInput{Name: "design", Description: "new"})
	require.NoError(t, err)
	assert.Equal(t, "new", updated.Description)
	require.Len(t, repo.updated, 1)
}

func TestDeleteRequiresConfirmWhenDepartmentsExist(t *testing.T) {
	repo := newStubRepo()
	repo.add(&Career{ID: 1, Name: "Design"})
	repo.briefs[1] = []DepartmentBrief{{ID: 10, Name: "UX", Status: "ACTIVE"}}
	svc := newTestService(repo)

	err := svc.Delete(context.Background(), 1, false)
	assert.ErrorIs(t, err, httpx.ErrConfirmRequired)
	assert.Empty(t, repo.deleted)

	require.NoError(t, svc.Delete(context.Background(), 1, true))
	assert.Equal(t, []int64{1}, repo.deleted)
}

func TestDeleteWithoutDepartmentsNeedsNoConfirm(t *testing.T) {
	repo := newStubRepo()
	repo.add(&Career{ID: 1, Name: "Design"})
	svc := newTestService(repo)

	require.NoError(t, svc.Delete(context.Background(), 1, false))
	assert.Equal(t, []int64{1}, repo.deleted)
}

func TestDeleteCheckReportsCascade(t *testing.T) {
	repo := newStubRepo()
	repo.add(&Career{ID: 1, Name: "Design"})
	repo.briefs[1] = []DepartmentBrief{
		{ID: 10, Name: "UX", Status: "ACTIVE"},
		{ID: 11, Name: "Brand", Status: "DEACTIVE"},
	}
	svc := newTestService(repo)

	check, err := svc.DeleteCheck(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, int64(2), check.DepartmentCount)
	assert.True(t, check.RequireConfirm)
}

func TestDeleteMissingCareer(t *testing.T) {
	svc := newTestService(newStubRepo())
	assert.ErrorIs(t, svc.Delete(context.Background(), 99, true), httpx.ErrNotFound)
}

func TestCreatePropagatesLookupError(t *testing.T) {
	repo := newStubRepo()
	repo.findErr = errors.New("connection reset")
	svc := newTestService(repo)

	_, err := svc.Create(context.Background(), CreateInput{Name: "Design"})
	assert.EqualError(t, err, "connection reset")
}
