package career

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/das-hr/skillmatrix/internal/platform/httpx"
	"github.com/das-hr/skillmatrix/internal/shared"
)

// Service implements career use cases.
type Service struct {
	repo   Repository
	logger *slog.Logger
	now    func() time.Time
}

// NewService builds Service.
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger, now: time.Now}
}

// Create adds a career. Creating under a name held by a soft-deleted
// career revives that career instead of inserting a new row, so the
// identifier stays stable for historical references.
func (s *Service) Create(ctx context.Context, in CreateInput) (*Career, error) {
	name := shared.NormalizeName(in.Name)

	existing, err := s.repo.FindByName(ctx, name)
	switch {
	case err == nil && existing.Deleted:
		revived, err := s.repo.Revive(ctx, existing.ID, in.Description)
		if err != nil {
			return nil, err
		}
		s.logger.Info("career revived", slog.Int64("career_id", revived.ID), slog.String("name", revived.Name))
		return revived, nil
	case err == nil:
		return nil, httpx.ErrDuplicate
	case !errors.Is(err, httpx.ErrNotFound):
		return nil, err
	}

	created, err := s.repo.Create(ctx, name, in.Description)
	if err != nil {
		return nil, err
	}
	s.logger.Info("career created", slog.Int64("career_id", created.ID), slog.String("name", created.Name))
	return created, nil
}

// Update renames a career or changes its description. The new name
// must not collide with another live career.
func (s *Service) Update(ctx context.Context, id int64, in UpdateInput) (*Career, error) {
	current, err := s.repo.FindLive(ctx, id)
	if err != nil {
		return nil, err
	}

	name := shared.NormalizeName(in.Name)
	if !shared.EqualNameFold(name, current.Name) {
		other, err := s.repo.FindByName(ctx, name)
		switch {
		case err == nil && !other.Deleted && other.ID != id:
			return nil, httpx.ErrDuplicate
		case err != nil && !errors.Is(err, httpx.ErrNotFound):
			return nil, err
		}
	}

	current.Name = name
	current.Description = in.Description
	if err := s.repo.Update(ctx, current); err != nil {
		return nil, err
	}
	return current, nil
}

// DeleteCheck reports the departments a delete would orphan so the
// client can ask for confirmation.
func (s *Service) DeleteCheck(ctx context.Context, id int64) (*DeleteCheck, error) {
	if _, err := s.repo.FindLive(ctx, id); err != nil {
		return nil, err
	}
	briefs, err := s.repo.DepartmentBriefs(ctx, id)
	if err != nil {
		return nil, err
	}
	return &DeleteCheck{
		CareerID:        id,
		DepartmentCount: int64(len(briefs)),
		Departments:     briefs,
		RequireConfirm:  len(briefs) > 0,
	}, nil
}

// Delete soft deletes a career. When live departments still hang off
// it the caller must pass confirm, otherwise the delete is refused.
func (s *Service) Delete(ctx context.Context, id int64, confirm bool) error {
	if _, err := s.repo.FindLive(ctx, id); err != nil {
		return err
	}
	count, err := s.repo.CountDepartments(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 && !confirm {
		return httpx.ErrConfirmRequired
	}
	if err := s.repo.SoftDelete(ctx, id, s.now()); err != nil {
		return err
	}
	s.logger.Info("career deleted", slog.Int64("career_id", id), slog.Int64("departments", count))
	return nil
}

// List returns live careers ordered by name.
func (s *Service) List(ctx context.Context, page, perPage int) ([]Career, shared.Pagination, error) {
	items, total, err := s.repo.List(ctx, perPage, (page-1)*perPage)
	if err != nil {
		return nil, shared.Pagination{}, err
	}
	return items, shared.NewPagination(page, perPage, total), nil
}

// Detail returns a career with its live departments.
func (s *Service) Detail(ctx context.Context, id int64) (*Detail, error) {
	c, err := s.repo.FindLive(ctx, id)
	if err != nil {
		return nil, err
	}
	briefs, err := s.repo.DepartmentBriefs(ctx, id)
	if err != nil {
		return nil, err
	}
	return &Detail{Career: *c, Departments: briefs}, nil
}
