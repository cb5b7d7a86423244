package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/harshithareddy888/HackConnect/errors"
)

func TestNewTeam(t *testing.T) {
	founder := primitive.NewObjectID()
	team := NewTeam("Alpha", "desc", "idea", []string{"go"}, 0, founder)

	require.Len(t, team.Members, 1)
	assert.Equal(t, founder, team.Members[0].User)
	assert.Equal(t, RoleLeader, team.Members[0].Role)
	assert.Equal(t, DefaultTeamCapacity, team.MaxMembers)
	assert.True(t, team.IsOpen)
	assert.Equal(t, 1, team.LeaderCount())
}

func TestTeam_AddInvite(t *testing.T) {
	leader := primitive.NewObjectID()
	invitee := primitive.NewObjectID()

	t.Run("records a pending invite", func(t *testing.T) {
		team := NewTeam("Alpha", "", "", nil, 5, leader)
		require.NoError(t, team.AddInvite(invitee, leader, "join us"))
		require.Len(t, team.Invites, 1)
		assert.Equal(t, InvitePending, team.Invites[0].Status)
		assert.Equal(t, leader, team.Invites[0].InvitedBy)
	})

	t.Run("rejects an invite for an existing member", func(t *testing.T) {
		team := NewTeam("Alpha", "", "", nil, 5, leader)
		err := team.AddInvite(leader, leader, "")
		require.Error(t, err)
		assert.True(t, errors.IsConflict(err))
	})

	t.Run("rejects a duplicate pending invite", func(t *testing.T) {
		team := NewTeam("Alpha", "", "", nil, 5, leader)
		require.NoError(t, team.AddInvite(invitee, leader, ""))
		err := team.AddInvite(invitee, leader, "")
		require.Error(t, err)
		assert.True(t, errors.IsConflict(err))
	})

	t.Run("allows re-inviting after rejection", func(t *testing.T) {
		team := NewTeam("Alpha", "", "", nil, 5, leader)
		require.NoError(t, team.AddInvite(invitee, leader, ""))
		require.NoError(t, team.RejectInvite(invitee))
		require.NoError(t, team.AddInvite(invitee, leader, ""))
	})

	t.Run("rejects an invite when the team is full", func(t *testing.T) {
		team := NewTeam("Alpha", "", "", nil, 2, leader)
		member := primitive.NewObjectID()
		require.NoError(t, team.AddInvite(member, leader, ""))
		require.NoError(t, team.AcceptInvite(member))

		err := team.AddInvite(invitee, leader, "")
		require.Error(t, err)
		assert.Equal(t, 409, errors.Code(err))
	})
}

func TestTeam_AcceptInvite(t *testing.T) {
	leader := primitive.NewObjectID()
	invitee := primitive.NewObjectID()

	t.Run("adds the user as a member", func(t *testing.T) {
		team := NewTeam("Alpha", "", "", nil, 5, leader)
		require.NoError(t, team.AddInvite(invitee, leader, ""))
		require.NoError(t, team.AcceptInvite(invitee))

		require.Len(t, team.Members, 2)
		assert.Equal(t, RoleMember, team.Members[1].Role)
		assert.Equal(t, InviteAccepted, team.Invites[0].Status)
	})

	t.Run("fails without a pending invite", func(t *testing.T) {
		team := NewTeam("Alpha", "", "", nil, 5, leader)
		err := team.AcceptInvite(invitee)
		require.Error(t, err)
		assert.True(t, errors.IsNotFound(err))
	})

	t.Run("re-checks capacity at acceptance time", func(t *testing.T) {
		team := NewTeam("Alpha", "", "", nil, 2, leader)
		other := primitive.NewObjectID()
		require.NoError(t, team.AddInvite(invitee, leader, ""))
		require.NoError(t, team.AddInvite(other, leader, ""))
		require.NoError(t, team.AcceptInvite(other))

		// team filled up between invite and acceptance
		err := team.AcceptInvite(invitee)
		require.Error(t, err)
		assert.Equal(t, 409, errors.Code(err))
		assert.Len(t, team.Members, 2)
	})
}

func TestTeam_RemoveMember(t *testing.T) {
	leader := primitive.NewObjectID()
	member := primitive.NewObjectID()

	newTeamWithMember := func(t *testing.T) *Team {
		team := NewTeam("Alpha", "", "", nil, 5, leader)
		require.NoError(t, team.AddInvite(member, leader, ""))
		require.NoError(t, team.AcceptInvite(member))
		return team
	}

	t.Run("removes a regular member", func(t *testing.T) {
		team := newTeamWithMember(t)
		require.NoError(t, team.RemoveMember(member))
		assert.Len(t, team.Members, 1)
	})

	t.Run("fails for a non-member", func(t *testing.T) {
		team := newTeamWithMember(t)
		err := team.RemoveMember(primitive.NewObjectID())
		require.Error(t, err)
		assert.True(t, errors.IsNotFound(err))
	})

	t.Run("refuses to remove the only leader while members remain", func(t *testing.T) {
		team := newTeamWithMember(t)
		err := team.RemoveMember(leader)
		require.Error(t, err)
		assert.True(t, errors.IsConflict(err))
		assert.Len(t, team.Members, 2)
	})

	t.Run("refuses to remove a sole-member leader", func(t *testing.T) {
		team := NewTeam("Alpha", "", "", nil, 5, leader)
		err := team.RemoveMember(leader)
		require.Error(t, err)
		assert.True(t, errors.IsConflict(err))
		assert.Len(t, team.Members, 1)
	})
}

func TestTeam_Leave(t *testing.T) {
	leader := primitive.NewObjectID()

	t.Run("sole member deletes the team", func(t *testing.T) {
		team := NewTeam("Alpha", "", "", nil, 5, leader)
		deleted, err := team.Leave(leader)
		require.NoError(t, err)
		assert.True(t, deleted)
		assert.Empty(t, team.Members)
	})

	t.Run("fails for a non-member", func(t *testing.T) {
		team := NewTeam("Alpha", "", "", nil, 5, leader)
		_, err := team.Leave(primitive.NewObjectID())
		require.Error(t, err)
		assert.True(t, errors.IsNotFound(err))
	})

	t.Run("sole leader leaving promotes a member", func(t *testing.T) {
		team := NewTeam("Alpha", "", "", nil, 5, leader)
		member := primitive.NewObjectID()
		require.NoError(t, team.AddInvite(member, leader, ""))
		require.NoError(t, team.AcceptInvite(member))

		deleted, err := team.Leave(leader)
		require.NoError(t, err)
		assert.False(t, deleted)
		require.Len(t, team.Members, 1)
		assert.Equal(t, member, team.Members[0].User)
		assert.Equal(t, RoleLeader, team.Members[0].Role)
		assert.Equal(t, 1, team.LeaderCount())
	})

	t.Run("earliest joiner is promoted", func(t *testing.T) {
		team := NewTeam("Alpha", "", "", nil, 5, leader)
		first := primitive.NewObjectID()
		second := primitive.NewObjectID()
		now := time.Now().UTC()
		team.Members = append(team.Members,
			Member{User: second, Role: RoleMember, JoinedAt: now.Add(2 * time.Hour)},
			Member{User: first, Role: RoleMember, JoinedAt: now.Add(time.Hour)},
		)

		_, err := team.Leave(leader)
		require.NoError(t, err)
		assert.True(t, team.IsLeader(first))
		assert.False(t, team.IsLeader(second))
	})

	t.Run("member leaving keeps the leader in place", func(t *testing.T) {
		team := NewTeam("Alpha", "", "", nil, 5, leader)
		member := primitive.NewObjectID()
		require.NoError(t, team.AddInvite(member, leader, ""))
		require.NoError(t, team.AcceptInvite(member))

		deleted, err := team.Leave(member)
		require.NoError(t, err)
		assert.False(t, deleted)
		assert.True(t, team.IsLeader(leader))
	})
}

// The scenario from the team-formation flow: capacity 2, leader plus
// one accepted invite, then a third invite must be refused.
func TestTeam_CapacityScenario(t *testing.T) {
	leader := primitive.NewObjectID()
	m := primitive.NewObjectID()
	n := primitive.NewObjectID()

	team := NewTeam("Alpha", "", "", nil, 2, leader)
	require.NoError(t, team.AddInvite(m, leader, ""))
	require.NoError(t, team.AcceptInvite(m))

	require.Len(t, team.Members, 2)
	assert.True(t, team.IsLeader(leader))
	assert.True(t, team.IsFull())

	err := team.AddInvite(n, leader, "")
	require.Error(t, err)
	assert.Equal(t, 409, errors.Code(err))
	assert.Len(t, team.Invites, 1)
}

func TestValidateTeamAttrs(t *testing.T) {
	t.Run("accepts a minimal team", func(t *testing.T) {
		assert.True(t, ValidateTeamAttrs("Alpha", "", "", 0).OK())
	})

	t.Run("rejects missing name and bad capacity", func(t *testing.T) {
		verrs := ValidateTeamAttrs("", "", "", 1)
		require.Len(t, verrs, 2)
		assert.Equal(t, "name", verrs[0].Field)
		assert.Equal(t, "maxMembers", verrs[1].Field)
	})

	t.Run("rejects capacity above ten", func(t *testing.T) {
		verrs := ValidateTeamAttrs("Alpha", "", "", 11)
		assert.False(t, verrs.OK())
	})
}
