package services

import (
	"context"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/harshithareddy888/HackConnect/errors"
	"github.com/harshithareddy888/HackConnect/logging"
	"github.com/harshithareddy888/HackConnect/models"
)

type TeamService struct {
	TeamsCollection *mongo.Collection
	UsersCollection *mongo.Collection
	TasksCollection *mongo.Collection
}

func NewTeamService(teams, users, tasks *mongo.Collection) *TeamService {
	return &TeamService{
		TeamsCollection: teams,
		UsersCollection: users,
		TasksCollection: tasks,
	}
}

// CreateTeam creates a team with founder as its sole leader. The
// unique index on team name and the one on members.user back the two
// Conflict cases under concurrency.
func (s *TeamService) CreateTeam(ctx context.Context, founder primitive.ObjectID, name, description, projectIdea string, skillsNeeded []string, maxMembers int) (*models.Team, error) {
	if verrs := models.ValidateTeamAttrs(name, description, projectIdea, maxMembers); !verrs.OK() {
		return nil, errors.BadRequest("%s", verrs.Error())
	}

	n, err := s.TeamsCollection.CountDocuments(ctx, bson.M{"members.user": founder})
	if err != nil {
		return nil, err
	}
	if n > 0 {
		return nil, errors.Conflict("you are already a member of a team")
	}

	team := models.NewTeam(name, description, projectIdea, skillsNeeded, maxMembers, founder)
	team.ID = primitive.NewObjectID()

	if _, err := s.TeamsCollection.InsertOne(ctx, team); err != nil {
		return nil, teamInsertErr(err)
	}

	logging.Logger.Infof("Created team %s (%s)", team.Name, team.ID.Hex())
	return team, nil
}

// ListTeams pages through teams matching the typed filters.
func (s *TeamService) ListTeams(ctx context.Context, filters []TeamFilter, sortBy string, page, limit int) ([]models.Team, int64, error) {
	query, err := BuildTeamQuery(filters)
	if err != nil {
		return nil, 0, err
	}
	sort, err := TeamSort(sortBy)
	if err != nil {
		return nil, 0, err
	}
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}

	total, err := s.TeamsCollection.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, err
	}

	findOpts := options.Find().
		SetSort(sort).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))
	cursor, err := s.TeamsCollection.Find(ctx, query, findOpts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var teams []models.Team
	if err := cursor.All(ctx, &teams); err != nil {
		return nil, 0, err
	}
	return teams, total, nil
}

func (s *TeamService) GetTeam(ctx context.Context, id primitive.ObjectID) (*models.Team, error) {
	var team models.Team
	err := s.TeamsCollection.FindOne(ctx, bson.M{"_id": id}).Decode(&team)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, errors.NotFound("team not found")
		}
		return nil, err
	}
	return &team, nil
}

// TeamUpdate carries the leader-editable team fields; zero values
// leave the stored value untouched.
type TeamUpdate struct {
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	ProjectIdea  string   `json:"projectIdea"`
	SkillsNeeded []string `json:"skillsNeeded"`
	MaxMembers   int      `json:"maxMembers"`
	IsOpen       *bool    `json:"isOpen"`
}

func (s *TeamService) UpdateTeam(ctx context.Context, actor, teamID primitive.ObjectID, update TeamUpdate) (*models.Team, error) {
	team, err := s.GetTeam(ctx, teamID)
	if err != nil {
		return nil, err
	}
	if err := TeamPolicy(actor, ActionUpdateTeam, team); err != nil {
		return nil, err
	}

	name := team.Name
	if update.Name != "" {
		name = update.Name
	}
	if verrs := models.ValidateTeamAttrs(name, update.Description, update.ProjectIdea, update.MaxMembers); !verrs.OK() {
		return nil, errors.BadRequest("%s", verrs.Error())
	}
	if update.MaxMembers != 0 && update.MaxMembers < len(team.Members) {
		return nil, errors.BadRequest("maxMembers cannot be below the current member count")
	}

	prev := team.UpdatedAt
	team.Name = name
	if update.Description != "" {
		team.Description = update.Description
	}
	if update.ProjectIdea != "" {
		team.ProjectIdea = update.ProjectIdea
	}
	if update.SkillsNeeded != nil {
		team.SkillsNeeded = update.SkillsNeeded
	}
	if update.MaxMembers != 0 {
		team.MaxMembers = update.MaxMembers
	}
	if update.IsOpen != nil {
		team.IsOpen = *update.IsOpen
	}

	if err := s.save(ctx, team, prev, errors.Conflict("team name already exists")); err != nil {
		return nil, err
	}
	return team, nil
}

// Invite records a pending invite from inviter for target.
func (s *TeamService) Invite(ctx context.Context, inviter, teamID, target primitive.ObjectID, message string) error {
	team, err := s.GetTeam(ctx, teamID)
	if err != nil {
		return err
	}
	if err := TeamPolicy(inviter, ActionInvite, team); err != nil {
		return err
	}

	n, err := s.UsersCollection.CountDocuments(ctx, bson.M{"_id": target})
	if err != nil {
		return err
	}
	if n == 0 {
		return errors.NotFound("user not found")
	}

	prev := team.UpdatedAt
	if err := team.AddInvite(target, inviter, message); err != nil {
		return err
	}
	return s.save(ctx, team, prev, nil)
}

// RespondToInvite accepts or rejects the caller's pending invite. On
// accept, capacity and the single-team invariant are re-validated:
// both may have changed between invite and response.
func (s *TeamService) RespondToInvite(ctx context.Context, user, teamID primitive.ObjectID, status models.InviteStatus) error {
	if status != models.InviteAccepted && status != models.InviteRejected {
		return errors.BadRequest("status must be accepted or rejected")
	}

	team, err := s.GetTeam(ctx, teamID)
	if err != nil {
		return err
	}
	prev := team.UpdatedAt

	if status == models.InviteRejected {
		if err := team.RejectInvite(user); err != nil {
			return err
		}
		return s.save(ctx, team, prev, nil)
	}

	n, err := s.TeamsCollection.CountDocuments(ctx, bson.M{"members.user": user})
	if err != nil {
		return err
	}
	if n > 0 {
		return errors.Conflict("you are already a member of another team")
	}

	if err := team.AcceptInvite(user); err != nil {
		return err
	}
	if err := s.save(ctx, team, prev, errors.Conflict("you are already a member of another team")); err != nil {
		return err
	}

	logging.Logger.Infof("User %s joined team %s", user.Hex(), team.Name)
	return nil
}

// RemoveMember lets a leader remove target from the team.
func (s *TeamService) RemoveMember(ctx context.Context, requester, teamID, target primitive.ObjectID) error {
	team, err := s.GetTeam(ctx, teamID)
	if err != nil {
		return err
	}
	if err := TeamPolicy(requester, ActionRemoveMember, team); err != nil {
		return err
	}

	prev := team.UpdatedAt
	if err := team.RemoveMember(target); err != nil {
		return err
	}
	return s.save(ctx, team, prev, nil)
}

// Leave removes the caller from the team, promoting a successor when
// the sole leader leaves and deleting the team when the last member
// does.
func (s *TeamService) Leave(ctx context.Context, user, teamID primitive.ObjectID) error {
	team, err := s.GetTeam(ctx, teamID)
	if err != nil {
		return err
	}

	prev := team.UpdatedAt
	deleted, err := team.Leave(user)
	if err != nil {
		return err
	}

	if deleted {
		res, err := s.TeamsCollection.DeleteOne(ctx, bson.M{"_id": team.ID, "updatedAt": prev})
		if err != nil {
			return err
		}
		if res.DeletedCount == 0 {
			return errors.Conflict("team was modified concurrently")
		}
		// the team's board goes with it
		if _, err := s.TasksCollection.DeleteMany(ctx, bson.M{"team": team.ID}); err != nil {
			return err
		}
		logging.Logger.Infof("Deleted empty team %s", team.Name)
		return nil
	}

	return s.save(ctx, team, prev, nil)
}

// teamInsertErr maps a duplicate-key failure at team creation to the
// index that tripped it: the partial index on members.user fires when
// the founder joined another team concurrently, anything else is the
// team name.
func teamInsertErr(err error) error {
	if !mongo.IsDuplicateKeyError(err) {
		return err
	}
	if strings.Contains(err.Error(), "members.user") {
		return errors.Conflict("you are already a member of a team")
	}
	return errors.Conflict("team name already exists")
}

// save persists team with an atomic check against the updatedAt value
// read when the document was loaded. A concurrent writer changes
// updatedAt, the filter stops matching, and the caller gets a
// Conflict instead of silently overfilling or double-mutating the
// team. dupErr, when set, names the unique-index violation the caller
// expects (team name, single-team membership).
func (s *TeamService) save(ctx context.Context, team *models.Team, loadedAt time.Time, dupErr error) error {
	team.UpdatedAt = time.Now().UTC()
	res, err := s.TeamsCollection.ReplaceOne(ctx, bson.M{"_id": team.ID, "updatedAt": loadedAt}, team)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) && dupErr != nil {
			return dupErr
		}
		return err
	}
	if res.MatchedCount == 0 {
		return errors.Conflict("team was modified concurrently")
	}
	return nil
}
