package skill

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/das-hr/skillmatrix/internal/platform/httpx"
	"github.com/das-hr/skillmatrix/internal/shared"
)

type stubRepo struct {
	byID        map[int64]*Skill
	refs        map[int64]int64
	deactivated []int64
	deleted     []int64
	nextID      int64
}

var _ Repository = (*stubRepo)(nil)

func newStubRepo() *stubRepo {
	return &stubRepo{byID: map[int64]*Skill{}, refs: map[int64]int64{}, nextID: 10}
}

func (s *stubRepo) Create(ctx context.Context, in CreateInput) (*Skill, error) {
	s.nextID++
	sk := &Skill{ID: s.nextID, Name: in.Name, Category: in.Category, Description: in.Description, Active: true}
	s.byID[sk.ID] = sk
	return sk, nil
}

func (s *stubRepo) Find(ctx context.Context, id int64) (*Skill, error) {
	if sk, ok := s.byID[id]; ok {
		copied := *sk
		return &copied, nil
	}
	return nil, httpx.ErrNotFound
}

func (s *stubRepo) ExistsByName(ctx context.Context, name string, excludeID int64) (bool, error) {
	for _, sk := range s.byID {
		if sk.ID != excludeID && shared.EqualNameFold(sk.Name, name) {
			return true, nil
		}
	}
	return false, nil
}

func (s *stubRepo) Update(ctx context.Context, sk *Skill) error {
	s.byID[sk.ID] = sk
	return nil
}

func (s *stubRepo) Deactivate(ctx context.Context, id int64) error {
	s.deactivated = append(s.deactivated, id)
	s.byID[id].Active = false
	return nil
}

func (s *stubRepo) Delete(ctx context.Context, id int64) error {
	s.deleted = append(s.deleted, id)
	delete(s.byID, id)
	return nil
}

func (s *stubRepo) List(ctx context.Context, activeOnly bool, limit, offset int) ([]Skill, int, error) {
	var out []Skill
	for _, sk := range s.byID {
		if !activeOnly || sk.Active {
			out = append(out, *sk)
		}
	}
	return out, len(out), nil
}

func (s *stubRepo) CountReferences(ctx context.Context, id int64) (int64, error) {
	return s.refs[id], nil
}

func TestCreateNormalizesAndRejectsDuplicates(t *testing.T) {
	repo := newStubRepo()
	svc := NewService(repo, slog.Default())

	created, err := svc.Create(context.Background(), CreateInput{Name: "  go   programming "})
	require.NoError(t, err)
	assert.Equal(t, "go programming", created.Name)

	_, err = svc.Create(context.Background(), CreateInput{Name: "Go Programming"})
	assert.ErrorIs(t, err, httpx.ErrDuplicate)
}

func TestUpdateKeepsOwnNameAcrossCase(t *testing.T) {
	repo := newStubRepo()
	repo.byID[1] = &Skill{ID: 1, Name: "Kubernetes", Active: true}
	svc := NewService(repo, slog.Default())

	updated, err := svc.Update(context.Background(), 1, UpdateInput{Name: "kubernetes", Active: true})
	require.NoError(t, err)
	assert.Equal(t, "kubernetes", updated.Name)
}

func TestDeleteDeactivatesReferencedSkill(t *testing.T) {
	repo := newStubRepo()
	repo.byID[1] = &Skill{ID: 1, Name: "SQL", Active: true}
	repo.refs[1] = 4
	svc := NewService(repo, slog.Default())

	deactivated, err := svc.Delete(context.Background(), 1)
	require.NoError(t, err)
	assert.True(t, deactivated)
	assert.Equal(t, []int64{1}, repo.deactivated)
	assert.Empty(t, repo.deleted)
}

func TestDeleteRemovesUnreferencedSkill(t *testing.T) {
	repo := newStubRepo()
	repo.byID[1] = &Skill{ID: 1, Name: "SQL", Active: true}
	svc := NewService(repo, slog.Default())

	deactivated, err := svc.Delete(context.Background(), 1)
	require.NoError(t, err)
	assert.False(t, deactivated)
	assert.Equal(t, []int64{1}, repo.deleted)
}

func TestDeleteMissingSkill(t *testing.T) {
	svc := NewService(newStubRepo(), slog.Default())
	_, err := svc.Delete(context.Background(), 42)
	assert.ErrorIs(t, err, httpx.ErrNotFound)
}
