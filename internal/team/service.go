package team

import (
	"context"
	"log/slog"

	"github.com/das-hr/skillmatrix/internal/shared"
)

// Service implements team use cases.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService builds Service.
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// Create adds a team under a department.
func (s *Service) Create(ctx context.Context, in CreateInput) (*Team, error) {
	in.Name = shared.NormalizeName(in.Name)
	created, err := s.repo.Create(ctx, in)
	if err != nil {
		return nil, err
	}
	s.logger.Info("team created",
		slog.Int64("team_id", created.ID),
		slog.Int64("department_id", created.DepartmentID))
	return created, nil
}

// Get returns one team.
func (s *Service) Get(ctx context.Context, id int64) (*Team, error) {
	return s.repo.Find(ctx, id)
}

// Update changes a team's name, description or primary manager.
func (s *Service) Update(ctx context.Context, id int64, in UpdateInput) (*Team, error) {
	current, err := s.repo.Find(ctx, id)
	if err != nil {
		return nil, err
	}
	current.Name = shared.NormalizeName(in.Name)
	current.Description = in.Description
	current.ManagerID = in.ManagerID
	if err := s.repo.Update(ctx, current); err != nil {
		return nil, err
	}
	return current, nil
}

// Delete removes a team and its roster.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("team deleted", slog.Int64("team_id", id))
	return nil
}

// List returns teams, optionally scoped to a department.
func (s *Service) List(ctx context.Context, departmentID int64, page, perPage int) ([]Team, shared.Pagination, error) {
	items, total, err := s.repo.List(ctx, departmentID, perPage, (page-1)*perPage)
	if err != nil {
		return nil, shared.Pagination{}, err
	}
	return items, shared.NewPagination(page, perPage, total), nil
}

// Members returns the team roster.
func (s *Service) Members(ctx context.Context, teamID int64) ([]Member, error) {
	if _, err := s.repo.Find(ctx, teamID); err != nil {
		return nil, err
	}
	return s.repo.Members(ctx, teamID)
}

// AddMember puts a user on the roster.
func (s *Service) AddMember(ctx context.Context, teamID, userID int64) error {
	if _, err := s.repo.Find(ctx, teamID); err != nil {
		return err
	}
	if err := s.repo.AddMember(ctx, teamID, userID); err != nil {
		return err
	}
	s.logger.Info("team member added", slog.Int64("team_id", teamID), slog.Int64("user_id", userID))
	return nil
}

// RemoveMember takes a user off the roster.
func (s *Service) RemoveMember(ctx context.Context, teamID, userID int64) error {
	if err := s.repo.RemoveMember(ctx, teamID, userID); err != nil {
		return err
	}
	s.logger.Info("team member removed", slog.Int64("team_id", teamID), slog.Int64("user_id", userID))
	return nil
}
