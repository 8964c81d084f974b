package authz

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsOwner(t *testing.T) {
	e := NewEvaluator(newStubStore())
	ctx := context.Background()

	ok, err := e.IsOwner(ctx, user(7), 7)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = e.IsOwner(ctx, user(7), 8)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = e.IsOwner(ctx, admin(), 8)
	require.NoError(t, err)
	assert.True(t, ok)

	assert.ErrorIs(t, e.RequireOwner(ctx, user(7), 8), ErrAccessDenied)
	assert.NoError(t, e.RequireOwner(ctx, user(7), 7))
}

func TestOwnedResourcePredicates(t *testing.T) {
	s := fixtureWithOwnedResources() // every resource owned by user 60
	e := NewEvaluator(s)
	ctx := context.Background()

	cases := map[string]func(p *Principal, id int64) (bool, error){
		"notification": func(p *Principal, id int64) (bool, error) { return e.IsNotificationOwner(ctx, p, id) },
		"document":     func(p *Principal, id int64) (bool, error) { return e.IsUpskillDocumentOwner(ctx, p, id) },
		"progress":     func(p *Principal, id int64) (bool, error) { return e.IsUpskillProgressOwner(ctx, p, id) },
	}
	ids := map[string]int64{"notification": 5, "document": 6, "progress": 7}

	for name, check := range cases {
		ok, err := check(user(60), ids[name])
		require.NoError(t, err, name)
		assert.True(t, ok, "%s owner", name)

		ok, err = check(user(61), ids[name])
		require.NoError(t, err, name)
		assert.False(t, ok, "%s non-owner", name)

		ok, err = check(user(60), 9999)
		require.NoError(t, err, name)
		assert.False(t, ok, "%s absent id", name)
	}
}

func TestEvaluationAccessIsTwoParty(t *testing.T) {
	e := NewEvaluator(fixtureWithOwnedResources()) // subject 60, evaluator 61
	ctx := context.Background()

	ok, err := e.IsUserSkillEvaluationAccess(ctx, user(60), 8)
	require.NoError(t, err)
	assert.True(t, ok, "evaluation subject")

	ok, err = e.IsUserSkillEvaluationAccess(ctx, user(61), 8)
	require.NoError(t, err)
	assert.True(t, ok, "evaluator who is not the subject")

	ok, err = e.IsUserSkillEvaluationAccess(ctx, user(62), 8)
	require.NoError(t, err)
	assert.False(t, ok, "unrelated third party")

	assert.ErrorIs(t, e.RequireUserSkillEvaluationAccess(ctx, user(62), 8), ErrAccessDenied)
}

func TestTeamManagerOwner(t *testing.T) {
	e := NewEvaluator(newOrgFixture()) // team 1000: primary manager 40, set {41}, members {50}
	ctx := context.Background()

	ok, err := e.IsTeamManagerOwner(ctx, user(40), 1000)
	require.NoError(t, err)
	assert.True(t, ok, "primary manager")

	ok, err = e.IsTeamManagerOwner(ctx, user(41), 1000)
	require.NoError(t, err)
	assert.False(t, ok, "manager-set membership is not primary ownership")

	// The MANAGER role bypasses the ownership check entirely.
	mgr := &Principal{UserID: 70, Roles: []string{RoleManager}}
	ok, err = e.IsTeamManagerOwner(ctx, mgr, 9999)
	require.NoError(t, err)
	assert.True(t, ok)

	// A plain member holds no management ownership.
	err = e.RequireTeamManagerOwner(ctx, user(50), 1000)
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestTeamMemberAccess(t *testing.T) {
	s := newOrgFixture()
	// Team without a primary manager: membership must still work.
	s.teams[2000] = &TeamRecord{ID: 2000, DepartmentID: 100}
	s.members[2000] = []int64{51}
	e := NewEvaluator(s)
	ctx := context.Background()

	ok, err := e.IsTeamMemberAccess(ctx, user(50), 1000)
	require.NoError(t, err)
	assert.True(t, ok, "junction member")

	ok, err = e.IsTeamMemberAccess(ctx, user(40), 1000)
	require.NoError(t, err)
	assert.True(t, ok, "primary manager")

	ok, err = e.IsTeamMemberAccess(ctx, user(51), 2000)
	require.NoError(t, err)
	assert.True(t, ok, "membership on a manager-less team")

	ok, err = e.IsTeamMemberAccess(ctx, user(52), 1000)
	require.NoError(t, err)
	assert.False(t, ok, "stranger")
}
