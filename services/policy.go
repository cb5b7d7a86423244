package services

import (
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/harshithareddy888/HackConnect/errors"
	"github.com/harshithareddy888/HackConnect/models"
)

// Action names something a user can attempt against a team or task.
type Action string

const (
	ActionViewTeam     Action = "team:view"
	ActionUpdateTeam   Action = "team:update"
	ActionInvite       Action = "team:invite"
	ActionRemoveMember Action = "team:remove_member"

	ActionViewTask    Action = "task:view"
	ActionCreateTask  Action = "task:create"
	ActionUpdateTask  Action = "task:update"
	ActionAssignTask  Action = "task:assign"
	ActionCommentTask Action = "task:comment"
	ActionDeleteTask  Action = "task:delete"
)

// TeamPolicy is the single place deciding who may do what to a team.
// Reading is open to any authenticated user; inviting requires
// membership; updating and removing members require leadership.
func TeamPolicy(actor primitive.ObjectID, action Action, team *models.Team) error {
	switch action {
	case ActionViewTeam:
		return nil
	case ActionInvite:
		if !team.HasMember(actor) {
			return errors.Forbidden("not a member of this team")
		}
		return nil
	case ActionUpdateTeam, ActionRemoveMember:
		if !team.IsLeader(actor) {
			return errors.Forbidden("only a team leader may do this")
		}
		return nil
	}
	return errors.Forbidden("action not permitted")
}

// TaskPolicy is the single place deciding who may do what to a task.
// Every task action requires membership in the owning team; deletion
// additionally requires leadership or authorship.
func TaskPolicy(actor primitive.ObjectID, action Action, task *models.Task, team *models.Team) error {
	if !team.HasMember(actor) {
		return errors.Forbidden("not a member of this team")
	}
	switch action {
	case ActionViewTask, ActionCreateTask, ActionUpdateTask, ActionAssignTask, ActionCommentTask:
		return nil
	case ActionDeleteTask:
		if team.IsLeader(actor) || (task != nil && task.CreatedBy == actor) {
			return nil
		}
		return errors.Forbidden("only the team leader or the task creator may delete a task")
	}
	return errors.Forbidden("action not permitted")
}
