package authz

import "context"

// Evaluator answers permission questions for guarded resources. Every
// predicate takes the resolved principal explicitly and evaluates its
// rules in short-circuit OR order: admin bypass first, then ownership,
// set membership and hierarchy ascension. A missing resource yields
// false, never an error; a missing principal yields ErrNotAuthenticated
// so callers can distinguish 401 from 403.
type Evaluator struct {
	store Store
}

// NewEvaluator constructs an Evaluator over the given store.
func NewEvaluator(store Store) *Evaluator {
	return &Evaluator{store: store}
}

// CanAccessCareer reports whether the principal manages the career.
func (e *Evaluator) CanAccessCareer(ctx context.Context, p *Principal, careerID int64) (bool, error) {
	if p == nil {
		return false, ErrNotAuthenticated
	}
	if p.IsAdmin() {
		return true, nil
	}
	career, err := e.store.FindCareerByID(ctx, careerID)
	if err != nil {
		return false, err
	}
	return career != nil && containsUser(career.ManagerIDs, p.UserID), nil
}

// CanAccessDepartment reports whether the principal manages the
// department directly or manages its parent career.
func (e *Evaluator) CanAccessDepartment(ctx context.Context, p *Principal, departmentID int64) (bool, error) {
	if p == nil {
		return false, ErrNotAuthenticated
	}
	if p.IsAdmin() {
		return true, nil
	}
	dept, err := e.store.FindDepartmentByID(ctx, departmentID)
	if err != nil {
		return false, err
	}
	if dept == nil {
		return false, nil
	}
	ok, err := e.managesCareer(ctx, p, dept.CareerID)
	if err != nil || ok {
		return ok, err
	}
	return containsUser(dept.ManagerIDs, p.UserID), nil
}

// CanAccessTeam reports whether the principal manages the team or any
// organizational level above it.
func (e *Evaluator) CanAccessTeam(ctx context.Context, p *Principal, teamID int64) (bool, error) {
	if p == nil {
		return false, ErrNotAuthenticated
	}
	if p.IsAdmin() {
		return true, nil
	}
	team, err := e.store.FindTeamByID(ctx, teamID)
	if err != nil {
		return false, err
	}
	if team == nil {
		return false, nil
	}
	dept, err := e.store.FindDepartmentByID(ctx, team.DepartmentID)
	if err != nil {
		return false, err
	}
	if dept != nil {
		ok, err := e.managesCareer(ctx, p, dept.CareerID)
		if err != nil || ok {
			return ok, err
		}
		if containsUser(dept.ManagerIDs, p.UserID) {
			return true, nil
		}
	}
	return containsUser(team.ManagerIDs, p.UserID), nil
}

// CanManageDepartment reports whether the principal manages the parent
// career of the department. Department managers themselves do not
// qualify; managing a department is a career-level right.
func (e *Evaluator) CanManageDepartment(ctx context.Context, p *Principal, departmentID int64) (bool, error) {
	if p == nil {
		return false, ErrNotAuthenticated
	}
	if p.IsAdmin() {
		return true, nil
	}
	dept, err := e.store.FindDepartmentByID(ctx, departmentID)
	if err != nil {
		return false, err
	}
	if dept == nil {
		return false, nil
	}
	return e.managesCareer(ctx, p, dept.CareerID)
}

// CanManageTeam reports whether the principal manages the team's parent
// department or career. Team managers themselves do not qualify.
func (e *Evaluator) CanManageTeam(ctx context.Context, p *Principal, teamID int64) (bool, error) {
	if p == nil {
		return false, ErrNotAuthenticated
	}
	if p.IsAdmin() {
		return true, nil
	}
	team, err := e.store.FindTeamByID(ctx, teamID)
	if err != nil {
		return false, err
	}
	if team == nil {
		return false, nil
	}
	dept, err := e.store.FindDepartmentByID(ctx, team.DepartmentID)
	if err != nil {
		return false, err
	}
	if dept == nil {
		return false, nil
	}
	ok, err := e.managesCareer(ctx, p, dept.CareerID)
	if err != nil || ok {
		return ok, err
	}
	return containsUser(dept.ManagerIDs, p.UserID), nil
}

// CanMoveDepartment reports whether the principal may move a department
// between two careers. Non-admins need access to BOTH the source and
// the target career; access to only one side denies the move.
func (e *Evaluator) CanMoveDepartment(ctx context.Context, p *Principal, sourceCareerID, targetCareerID int64) (bool, error) {
	if p == nil {
		return false, ErrNotAuthenticated
	}
	if p.IsAdmin() {
		return true, nil
	}
	ok, err := e.CanAccessCareer(ctx, p, sourceCareerID)
	if err != nil || !ok {
		return false, err
	}
	return e.CanAccessCareer(ctx, p, targetCareerID)
}

// CanViewDepartmentList reports whether the principal may list the
// departments of a career: career managers see everything under the
// career, and managing any single department under it is enough to see
// the list.
func (e *Evaluator) CanViewDepartmentList(ctx context.Context, p *Principal, careerID int64) (bool, error) {
	if p == nil {
		return false, ErrNotAuthenticated
	}
	if p.IsAdmin() {
		return true, nil
	}
	ok, err := e.CanAccessCareer(ctx, p, careerID)
	if err != nil || ok {
		return ok, err
	}
	return e.store.ExistsManagedDepartment(ctx, careerID, p.UserID)
}

// CanViewDepartmentDetail reports whether the principal may view a
// single department, delegating to the list rule of its parent career.
func (e *Evaluator) CanViewDepartmentDetail(ctx context.Context, p *Principal, departmentID int64) (bool, error) {
	if p == nil {
		return false, ErrNotAuthenticated
	}
	if p.IsAdmin() {
		return true, nil
	}
	dept, err := e.store.FindDepartmentByID(ctx, departmentID)
	if err != nil {
		return false, err
	}
	if dept == nil {
		return false, nil
	}
	return e.CanViewDepartmentList(ctx, p, dept.CareerID)
}

// managesCareer checks direct membership in a career's manager set. A
// soft-deleted career resolves to nil and grants nothing.
func (e *Evaluator) managesCareer(ctx context.Context, p *Principal, careerID int64) (bool, error) {
	career, err := e.store.FindCareerByID(ctx, careerID)
	if err != nil {
		return false, err
	}
	return career != nil && containsUser(career.ManagerIDs, p.UserID), nil
}

func containsUser(ids []int64, userID int64) bool {
	for _, id := range ids {
		if id == userID {
			return true
		}
	}
	return false
}
