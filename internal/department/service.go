package department

import (
	"context"
	"log/slog"

	"github.com/das-hr/skillmatrix/internal/authz"
	"github.com/das-hr/skillmatrix/internal/shared"
)

// Service implements department use cases.
type Service struct {
	repo   Repository
	authz  *authz.Evaluator
	logger *slog.Logger
}

// NewService builds Service.
func NewService(repo Repository, evaluator *authz.Evaluator, logger *slog.Logger) *Service {
	return &Service{repo: repo, authz: evaluator, logger: logger}
}

// Create adds an ACTIVE department under a career.
func (s *Service) Create(ctx context.Context, in CreateInput) (*Department, error) {
	created, err := s.repo.Create(ctx, shared.NormalizeName(in.Name), in.Description, in.CareerID)
	if err != nil {
		return nil, err
	}
	s.logger.Info("department created",
		slog.Int64("department_id", created.ID),
		slog.Int64("career_id", created.CareerID))
	return created, nil
}

// Update changes a department. Moving it to another career is the
// sensitive part: the caller must hold management rights over both the
// current and the target career, which the route guard cannot see
// because the target only arrives in the body.
func (s *Service) Update(ctx context.Context, p *authz.Principal, id int64, in UpdateInput) (*Department, error) {
	current, err := s.repo.Find(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.CareerID != current.CareerID {
		if err := s.authz.RequireMoveDepartment(ctx, p, current.CareerID, in.CareerID); err != nil {
			return nil, err
		}
		s.logger.Info("department moved",
			slog.Int64("department_id", id),
			slog.Int64("from_career", current.CareerID),
			slog.Int64("to_career", in.CareerID))
	}

	current.Name = shared.NormalizeName(in.Name)
	current.Description = in.Description
	current.CareerID = in.CareerID
	if err := s.repo.Update(ctx, current); err != nil {
		return nil, err
	}
	return current, nil
}

// AssignManagers replaces the department's manager set.
func (s *Service) AssignManagers(ctx context.Context, id int64, in AssignManagersInput) (*Department, error) {
	if _, err := s.repo.Find(ctx, id); err != nil {
		return nil, err
	}
	if err := s.repo.ReplaceManagers(ctx, id, in.ManagerIDs); err != nil {
		return nil, err
	}
	return s.repo.Find(ctx, id)
}

// Delete removes a department. One with teams still attached is parked
// as DEACTIVE so the teams keep a resolvable parent, an empty one goes
// straight to DELETED.
func (s *Service) Delete(ctx context.Context, id int64) (string, error) {
	if _, err := s.repo.Find(ctx, id); err != nil {
		return "", err
	}
	teams, err := s.repo.CountTeams(ctx, id)
	if err != nil {
		return "", err
	}
	status := StatusDeleted
	if teams > 0 {
		status = StatusDeactive
	}
	if err := s.repo.SetStatus(ctx, id, status); err != nil {
		return "", err
	}
	s.logger.Info("department removed",
		slog.Int64("department_id", id),
		slog.String("status", status),
		slog.Int64("teams", teams))
	return status, nil
}

// ListByCareer returns live departments under a career.
func (s *Service) ListByCareer(ctx context.Context, careerID int64, page, perPage int) ([]Department, shared.Pagination, error) {
	items, total, err := s.repo.ListByCareer(ctx, careerID, perPage, (page-1)*perPage)
	if err != nil {
		return nil, shared.Pagination{}, err
	}
	return items, shared.NewPagination(page, perPage, total), nil
}

// Detail returns a department with its teams.
func (s *Service) Detail(ctx context.Context, id int64) (*Detail, error) {
	d, err := s.repo.Find(ctx, id)
	if err != nil {
		return nil, err
	}
	teams, err := s.repo.TeamBriefs(ctx, id)
	if err != nil {
		return nil, err
	}
	return &Detail{Department: *d, Teams: teams}, nil
}
