package skill

import (
	"context"
	"log/slog"

	"github.com/das-hr/skillmatrix/internal/platform/httpx"
	"github.com/das-hr/skillmatrix/internal/shared"
)

// Service implements skill catalog use cases.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService builds Service.
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// Create adds a skill with a normalized, unique name.
func (s *Service) Create(ctx context.Context, in CreateInput) (*Skill, error) {
	in.Name = shared.NormalizeName(in.Name)
	taken, err := s.repo.ExistsByName(ctx, in.Name, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, httpx.ErrDuplicate
	}
	created, err := s.repo.Create(ctx, in)
	if err != nil {
		return nil, err
	}
	s.logger.Info("skill created", slog.Int64("skill_id", created.ID), slog.String("name", created.Name))
	return created, nil
}

// Update changes a skill definition.
func (s *Service) Update(ctx context.Context, id int64, in UpdateInput) (*Skill, error) {
	current, err := s.repo.Find(ctx, id)
	if err != nil {
		return nil, err
	}
	name := shared.NormalizeName(in.Name)
	if !shared.EqualNameFold(name, current.Name) {
		taken, err := s.repo.ExistsByName(ctx, name, id)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, httpx.ErrDuplicate
		}
	}
	current.Name = name
	current.Category = in.Category
	current.Description = in.Description
	current.Active = in.Active
	if err := s.repo.Update(ctx, current); err != nil {
		return nil, err
	}
	return current, nil
}

// Get returns one skill.
func (s *Service) Get(ctx context.Context, id int64) (*Skill, error) {
	return s.repo.Find(ctx, id)
}

// Delete removes a skill. One that evaluations still reference is only
// deactivated so historical assessments keep resolving.
func (s *Service) Delete(ctx context.Context, id int64) (deactivated bool, err error) {
	if _, err := s.repo.Find(ctx, id); err != nil {
		return false, err
	}
	refs, err := s.repo.CountReferences(ctx, id)
	if err != nil {
		return false, err
	}
	if refs > 0 {
		if err := s.repo.Deactivate(ctx, id); err != nil {
			return false, err
		}
		s.logger.Info("skill deactivated", slog.Int64("skill_id", id), slog.Int64("references", refs))
		return true, nil
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return false, err
	}
	s.logger.Info("skill deleted", slog.Int64("skill_id", id))
	return false, nil
}

// List returns catalog entries.
func (s *Service) List(ctx context.Context, activeOnly bool, page, perPage int) ([]Skill, shared.Pagination, error) {
	items, total, err := s.repo.List(ctx, activeOnly, perPage, (page-1)*perPage)
	if err != nil {
		return nil, shared.Pagination{}, err
	}
	return items, shared.NewPagination(page, perPage, total), nil
}
