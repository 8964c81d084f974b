package authz

import "context"

// Require* counterparts convert a false predicate into ErrAccessDenied
// so single-resource endpoints can guard with one call. Errors from the
// underlying predicate, including ErrNotAuthenticated, pass through
// unchanged in kind.

// RequireRole fails unless the principal carries the exact role.
func RequireRole(p *Principal, role string) error {
	if p == nil {
		return ErrNotAuthenticated
	}
	if !p.HasRole(role) {
		return ErrAccessDenied
	}
	return nil
}

// RequireAnyRole fails unless the principal carries at least one of the
// given roles.
func RequireAnyRole(p *Principal, roles ...string) error {
	if p == nil {
		return ErrNotAuthenticated
	}
	for _, role := range roles {
		if p.HasRole(role) {
			return nil
		}
	}
	return ErrAccessDenied
}

// RequireAdmin fails unless the principal carries the ADMIN role.
func RequireAdmin(p *Principal) error {
	return RequireRole(p, RoleAdmin)
}

func (e *Evaluator) require(ok bool, err error) error {
	if err != nil {
		return err
	}
	if !ok {
		return ErrAccessDenied
	}
	return nil
}

// RequireOwner guards single-user resources.
func (e *Evaluator) RequireOwner(ctx context.Context, p *Principal, userID int64) error {
	return e.require(e.IsOwner(ctx, p, userID))
}

// RequireNotificationOwner guards notification endpoints.
func (e *Evaluator) RequireNotificationOwner(ctx context.Context, p *Principal, notificationID int64) error {
	return e.require(e.IsNotificationOwner(ctx, p, notificationID))
}

// RequireUpskillProgressOwner guards upskill progress endpoints.
func (e *Evaluator) RequireUpskillProgressOwner(ctx context.Context, p *Principal, progressID int64) error {
	return e.require(e.IsUpskillProgressOwner(ctx, p, progressID))
}

// RequireUpskillDocumentOwner guards upskill document endpoints.
func (e *Evaluator) RequireUpskillDocumentOwner(ctx context.Context, p *Principal, documentID int64) error {
	return e.require(e.IsUpskillDocumentOwner(ctx, p, documentID))
}

// RequireTeamManagerOwner guards team mutation endpoints.
func (e *Evaluator) RequireTeamManagerOwner(ctx context.Context, p *Principal, teamID int64) error {
	return e.require(e.IsTeamManagerOwner(ctx, p, teamID))
}

// RequireTeamMemberAccess guards team roster endpoints.
func (e *Evaluator) RequireTeamMemberAccess(ctx context.Context, p *Principal, teamID int64) error {
	return e.require(e.IsTeamMemberAccess(ctx, p, teamID))
}

// RequireUserSkillEvaluationAccess guards evaluation endpoints.
func (e *Evaluator) RequireUserSkillEvaluationAccess(ctx context.Context, p *Principal, evaluationID int64) error {
	return e.require(e.IsUserSkillEvaluationAccess(ctx, p, evaluationID))
}

// RequireCareerAccess guards operations on a single career.
func (e *Evaluator) RequireCareerAccess(ctx context.Context, p *Principal, careerID int64) error {
	return e.require(e.CanAccessCareer(ctx, p, careerID))
}

// RequireDepartmentAccess guards operations on a single department.
func (e *Evaluator) RequireDepartmentAccess(ctx context.Context, p *Principal, departmentID int64) error {
	return e.require(e.CanAccessDepartment(ctx, p, departmentID))
}

// RequireTeamAccess guards operations on a single team.
func (e *Evaluator) RequireTeamAccess(ctx context.Context, p *Principal, teamID int64) error {
	return e.require(e.CanAccessTeam(ctx, p, teamID))
}

// RequireManageDepartment guards department management endpoints.
func (e *Evaluator) RequireManageDepartment(ctx context.Context, p *Principal, departmentID int64) error {
	return e.require(e.CanManageDepartment(ctx, p, departmentID))
}

// RequireManageTeam guards team management endpoints.
func (e *Evaluator) RequireManageTeam(ctx context.Context, p *Principal, teamID int64) error {
	return e.require(e.CanManageTeam(ctx, p, teamID))
}

// RequireMoveDepartment guards re-parenting a department.
func (e *Evaluator) RequireMoveDepartment(ctx context.Context, p *Principal, sourceCareerID, targetCareerID int64) error {
	return e.require(e.CanMoveDepartment(ctx, p, sourceCareerID, targetCareerID))
}

// RequireViewDepartmentList guards the department listing endpoint.
func (e *Evaluator) RequireViewDepartmentList(ctx context.Context, p *Principal, careerID int64) error {
	return e.require(e.CanViewDepartmentList(ctx, p, careerID))
}

// RequireViewDepartmentDetail guards the department detail endpoint.
func (e *Evaluator) RequireViewDepartmentDetail(ctx context.Context, p *Principal, departmentID int64) error {
	return e.require(e.CanViewDepartmentDetail(ctx, p, departmentID))
}
