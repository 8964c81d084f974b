package authz

import "context"

// Ownership predicates: the resource's designated owner field must match
// the principal. Admins bypass every check, including existence lookups.

// IsOwner reports whether the principal is the user with the given id.
func (e *Evaluator) IsOwner(ctx context.Context, p *Principal, userID int64) (bool, error) {
	if p == nil {
		return false, ErrNotAuthenticated
	}
	if p.IsAdmin() {
		return true, nil
	}
	return p.UserID == userID, nil
}

// IsNotificationOwner reports whether the notification belongs to the
// principal.
func (e *Evaluator) IsNotificationOwner(ctx context.Context, p *Principal, notificationID int64) (bool, error) {
	if p == nil {
		return false, ErrNotAuthenticated
	}
	if p.IsAdmin() {
		return true, nil
	}
	n, err := e.store.FindNotificationByID(ctx, notificationID)
	if err != nil {
		return false, err
	}
	return n != nil && n.UserID == p.UserID, nil
}

// IsUpskillProgressOwner reports whether the progress row belongs to
// the principal.
func (e *Evaluator) IsUpskillProgressOwner(ctx context.Context, p *Principal, progressID int64) (bool, error) {
	if p == nil {
		return false, ErrNotAuthenticated
	}
	if p.IsAdmin() {
		return true, nil
	}
	row, err := e.store.FindProgressByID(ctx, progressID)
	if err != nil {
		return false, err
	}
	return row != nil && row.UserID == p.UserID, nil
}

// IsUpskillDocumentOwner reports whether the principal uploaded the
// document.
func (e *Evaluator) IsUpskillDocumentOwner(ctx context.Context, p *Principal, documentID int64) (bool, error) {
	if p == nil {
		return false, ErrNotAuthenticated
	}
	if p.IsAdmin() {
		return true, nil
	}
	doc, err := e.store.FindDocumentByID(ctx, documentID)
	if err != nil {
		return false, err
	}
	return doc != nil && doc.UploadedBy == p.UserID, nil
}

// IsTeamManagerOwner reports whether the principal is the team's primary
// manager. The MANAGER role bypasses the ownership check alongside
// ADMIN.
func (e *Evaluator) IsTeamManagerOwner(ctx context.Context, p *Principal, teamID int64) (bool, error) {
	if p == nil {
		return false, ErrNotAuthenticated
	}
	if p.IsAdmin() || p.IsManager() {
		return true, nil
	}
	team, err := e.store.FindTeamByID(ctx, teamID)
	if err != nil {
		return false, err
	}
	return team != nil && team.ManagerID != 0 && team.ManagerID == p.UserID, nil
}

// IsTeamMemberAccess reports whether the principal may see the team:
// its primary manager, or any principal in the membership junction.
func (e *Evaluator) IsTeamMemberAccess(ctx context.Context, p *Principal, teamID int64) (bool, error) {
	if p == nil {
		return false, ErrNotAuthenticated
	}
	if p.IsAdmin() {
		return true, nil
	}
	ok, err := e.IsTeamManagerOwner(ctx, p, teamID)
	if err != nil || ok {
		return ok, err
	}
	team, err := e.store.FindTeamByID(ctx, teamID)
	if err != nil {
		return false, err
	}
	if team == nil {
		return false, nil
	}
	return e.store.ExistsTeamMember(ctx, team.ID, p.UserID)
}

// IsUserSkillEvaluationAccess reports whether the principal is a party
// to the evaluation, as its subject or as its evaluator.
func (e *Evaluator) IsUserSkillEvaluationAccess(ctx context.Context, p *Principal, evaluationID int64) (bool, error) {
	if p == nil {
		return false, ErrNotAuthenticated
	}
	if p.IsAdmin() {
		return true, nil
	}
	eval, err := e.store.FindEvaluationByID(ctx, evaluationID)
	if err != nil {
		return false, err
	}
	if eval == nil {
		return false, nil
	}
	return eval.UserID == p.UserID || eval.EvaluatorID == p.UserID, nil
}
