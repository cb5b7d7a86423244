package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/harshithareddy888/HackConnect/errors"
	"github.com/harshithareddy888/HackConnect/models"
)

func TestTeamPolicy(t *testing.T) {
	leader := primitive.NewObjectID()
	member := primitive.NewObjectID()
	outsider := primitive.NewObjectID()

	team := models.NewTeam("Alpha", "", "", nil, 5, leader)
	require.NoError(t, team.AddInvite(member, leader, ""))
	require.NoError(t, team.AcceptInvite(member))

	cases := []struct {
		name    string
		actor   primitive.ObjectID
		action  Action
		allowed bool
	}{
		{"anyone may view", outsider, ActionViewTeam, true},
		{"member may invite", member, ActionInvite, true},
		{"outsider may not invite", outsider, ActionInvite, false},
		{"leader may update", leader, ActionUpdateTeam, true},
		{"member may not update", member, ActionUpdateTeam, false},
		{"leader may remove members", leader, ActionRemoveMember, true},
		{"member may not remove members", member, ActionRemoveMember, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := TeamPolicy(tc.actor, tc.action, team)
			if tc.allowed {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.True(t, errors.IsForbidden(err))
			}
		})
	}
}

func TestTaskPolicy(t *testing.T) {
	leader := primitive.NewObjectID()
	member := primitive.NewObjectID()
	creator := primitive.NewObjectID()
	outsider := primitive.NewObjectID()

	team := models.NewTeam("Alpha", "", "", nil, 5, leader)
	require.NoError(t, team.AddInvite(member, leader, ""))
	require.NoError(t, team.AcceptInvite(member))
	require.NoError(t, team.AddInvite(creator, leader, ""))
	require.NoError(t, team.AcceptInvite(creator))

	task := &models.Task{CreatedBy: creator, Team: team.ID}

	t.Run("outsider is rejected for every action", func(t *testing.T) {
		for _, action := range []Action{ActionViewTask, ActionUpdateTask, ActionAssignTask, ActionCommentTask, ActionDeleteTask} {
			err := TaskPolicy(outsider, action, task, team)
			require.Error(t, err)
			assert.True(t, errors.IsForbidden(err))
		}
	})

	t.Run("member may view, edit, assign, comment", func(t *testing.T) {
		for _, action := range []Action{ActionViewTask, ActionUpdateTask, ActionAssignTask, ActionCommentTask} {
			assert.NoError(t, TaskPolicy(member, action, task, team))
		}
	})

	t.Run("only leader or creator may delete", func(t *testing.T) {
		assert.NoError(t, TaskPolicy(leader, ActionDeleteTask, task, team))
		assert.NoError(t, TaskPolicy(creator, ActionDeleteTask, task, team))

		err := TaskPolicy(member, ActionDeleteTask, task, team)
		require.Error(t, err)
		assert.True(t, errors.IsForbidden(err))
	})
}
