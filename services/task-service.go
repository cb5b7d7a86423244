package services

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/harshithareddy888/HackConnect/errors"
	"github.com/harshithareddy888/HackConnect/logging"
	"github.com/harshithareddy888/HackConnect/models"
)

type TaskService struct {
	TasksCollection *mongo.Collection
	TeamsCollection *mongo.Collection
}

func NewTaskService(tasks, teams *mongo.Collection) *TaskService {
	return &TaskService{
		TasksCollection: tasks,
		TeamsCollection: teams,
	}
}

// TaskInput carries the user-settable task fields.
type TaskInput struct {
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Status      models.TaskStatus   `json:"status"`
	Priority    models.TaskPriority `json:"priority"`
	DueDate     *time.Time          `json:"dueDate"`
	Labels      []string            `json:"labels"`
	Team        string              `json:"team"`
}

// TaskListFilter narrows the team task listing.
type TaskListFilter struct {
	Status   models.TaskStatus
	Priority models.TaskPriority
	Assignee *primitive.ObjectID
}

func (s *TaskService) CreateTask(ctx context.Context, creator, teamID primitive.ObjectID, input TaskInput) (*models.Task, error) {
	team, err := s.loadTeam(ctx, teamID)
	if err != nil {
		return nil, err
	}
	if err := TaskPolicy(creator, ActionCreateTask, nil, team); err != nil {
		return nil, err
	}
	if verrs := models.ValidateTaskAttrs(input.Title, input.Description, input.Status, input.Priority); !verrs.OK() {
		return nil, errors.BadRequest("%s", verrs.Error())
	}

	now := time.Now().UTC()
	task := &models.Task{
		ID:          primitive.NewObjectID(),
		Title:       input.Title,
		Description: input.Description,
		Status:      input.Status,
		Priority:    input.Priority,
		DueDate:     input.DueDate,
		Team:        teamID,
		CreatedBy:   creator,
		AssignedTo:  []models.Assignee{},
		Labels:      input.Labels,
		Comments:    []models.Comment{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if task.Status == "" {
		task.Status = models.StatusTodo
	}
	if task.Priority == "" {
		task.Priority = models.PriorityMedium
	}

	if _, err := s.TasksCollection.InsertOne(ctx, task); err != nil {
		return nil, err
	}
	logging.Logger.Infof("Created task %s for team %s", task.ID.Hex(), teamID.Hex())
	return task, nil
}

// GetTeamTasks lists a team's tasks, newest first, for members only.
func (s *TaskService) GetTeamTasks(ctx context.Context, requester, teamID primitive.ObjectID, filter TaskListFilter) ([]models.Task, error) {
	team, err := s.loadTeam(ctx, teamID)
	if err != nil {
		return nil, err
	}
	if err := TaskPolicy(requester, ActionViewTask, nil, team); err != nil {
		return nil, err
	}

	query := bson.M{"team": teamID}
	if filter.Status != "" {
		if !models.ValidTaskStatus(filter.Status) {
			return nil, errors.BadRequest("unknown task status")
		}
		query["status"] = filter.Status
	}
	if filter.Priority != "" {
		if !models.ValidTaskPriority(filter.Priority) {
			return nil, errors.BadRequest("unknown task priority")
		}
		query["priority"] = filter.Priority
	}
	if filter.Assignee != nil {
		query["assignedTo.user"] = *filter.Assignee
	}

	cursor, err := s.TasksCollection.Find(ctx, query, options.Find().SetSort(bson.M{"createdAt": -1}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var tasks []models.Task
	if err := cursor.All(ctx, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

func (s *TaskService) GetTask(ctx context.Context, requester, taskID primitive.ObjectID) (*models.Task, error) {
	task, team, err := s.loadTaskTeam(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if err := TaskPolicy(requester, ActionViewTask, task, team); err != nil {
		return nil, err
	}
	return task, nil
}

// UpdateTask edits the mutable task fields. The owning team is
// immutable: a payload naming a different team is rejected.
func (s *TaskService) UpdateTask(ctx context.Context, requester, taskID primitive.ObjectID, input TaskInput) (*models.Task, error) {
	task, team, err := s.loadTaskTeam(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if err := TaskPolicy(requester, ActionUpdateTask, task, team); err != nil {
		return nil, err
	}
	if input.Team != "" && input.Team != task.Team.Hex() {
		return nil, errors.BadRequest("a task cannot be moved to another team")
	}

	title := task.Title
	if input.Title != "" {
		title = input.Title
	}
	if verrs := models.ValidateTaskAttrs(title, input.Description, input.Status, input.Priority); !verrs.OK() {
		return nil, errors.BadRequest("%s", verrs.Error())
	}

	set := bson.M{"title": title, "updatedAt": time.Now().UTC()}
	if input.Description != "" {
		set["description"] = input.Description
	}
	if input.Status != "" {
		set["status"] = input.Status
	}
	if input.Priority != "" {
		set["priority"] = input.Priority
	}
	if input.DueDate != nil {
		set["dueDate"] = input.DueDate
	}
	if input.Labels != nil {
		set["labels"] = input.Labels
	}

	res, err := s.TasksCollection.UpdateOne(ctx, bson.M{"_id": taskID}, bson.M{"$set": set})
	if err != nil {
		return nil, err
	}
	if res.MatchedCount == 0 {
		return nil, errors.NotFound("task not found")
	}

	var updated models.Task
	if err := s.TasksCollection.FindOne(ctx, bson.M{"_id": taskID}).Decode(&updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// AssignTask adds the given users as assignees. Every proposed
// assignee must currently be a member of the task's team; users
// already assigned are skipped rather than rejected.
func (s *TaskService) AssignTask(ctx context.Context, requester, taskID primitive.ObjectID, userIDs []primitive.ObjectID) (*models.Task, error) {
	task, team, err := s.loadTaskTeam(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if err := TaskPolicy(requester, ActionAssignTask, task, team); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	var newAssignees []models.Assignee
	for _, id := range userIDs {
		if !team.HasMember(id) {
			return nil, errors.BadRequest("user %s is not a team member", id.Hex())
		}
		if task.IsAssigned(id) {
			continue
		}
		newAssignees = append(newAssignees, models.Assignee{User: id, AssignedAt: now})
	}

	if len(newAssignees) > 0 {
		// Filter on updatedAt so two concurrent assignments cannot
		// append the same user twice.
		res, err := s.TasksCollection.UpdateOne(ctx,
			bson.M{"_id": taskID, "updatedAt": task.UpdatedAt},
			bson.M{
				"$push": bson.M{"assignedTo": bson.M{"$each": newAssignees}},
				"$set":  bson.M{"updatedAt": now},
			},
		)
		if err != nil {
			return nil, err
		}
		if res.MatchedCount == 0 {
			return nil, errors.Conflict("task was modified concurrently")
		}
	}

	var updated models.Task
	if err := s.TasksCollection.FindOne(ctx, bson.M{"_id": taskID}).Decode(&updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (s *TaskService) RemoveAssignee(ctx context.Context, requester, taskID, userID primitive.ObjectID) error {
	task, team, err := s.loadTaskTeam(ctx, taskID)
	if err != nil {
		return err
	}
	if err := TaskPolicy(requester, ActionAssignTask, task, team); err != nil {
		return err
	}

	_, err = s.TasksCollection.UpdateOne(ctx,
		bson.M{"_id": taskID},
		bson.M{
			"$pull": bson.M{"assignedTo": bson.M{"user": userID}},
			"$set":  bson.M{"updatedAt": time.Now().UTC()},
		},
	)
	return err
}

// AddComment appends a comment; comments are never edited or removed.
func (s *TaskService) AddComment(ctx context.Context, requester, taskID primitive.ObjectID, text string) (*models.Comment, error) {
	if text == "" {
		return nil, errors.BadRequest("comment text is required")
	}

	task, team, err := s.loadTaskTeam(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if err := TaskPolicy(requester, ActionCommentTask, task, team); err != nil {
		return nil, err
	}

	comment := models.Comment{
		User:      requester,
		Text:      text,
		CreatedAt: time.Now().UTC(),
	}
	_, err = s.TasksCollection.UpdateOne(ctx,
		bson.M{"_id": taskID},
		bson.M{
			"$push": bson.M{"comments": comment},
			"$set":  bson.M{"updatedAt": comment.CreatedAt},
		},
	)
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

func (s *TaskService) DeleteTask(ctx context.Context, requester, taskID primitive.ObjectID) error {
	task, team, err := s.loadTaskTeam(ctx, taskID)
	if err != nil {
		return err
	}
	if err := TaskPolicy(requester, ActionDeleteTask, task, team); err != nil {
		return err
	}

	_, err = s.TasksCollection.DeleteOne(ctx, bson.M{"_id": taskID})
	if err != nil {
		return err
	}
	logging.Logger.Infof("Deleted task %s", taskID.Hex())
	return nil
}

func (s *TaskService) loadTeam(ctx context.Context, teamID primitive.ObjectID) (*models.Team, error) {
	var team models.Team
	err := s.TeamsCollection.FindOne(ctx, bson.M{"_id": teamID}).Decode(&team)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, errors.NotFound("team not found")
		}
		return nil, err
	}
	return &team, nil
}

func (s *TaskService) loadTaskTeam(ctx context.Context, taskID primitive.ObjectID) (*models.Task, *models.Team, error) {
	var task models.Task
	err := s.TasksCollection.FindOne(ctx, bson.M{"_id": taskID}).Decode(&task)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil, errors.NotFound("task not found")
		}
		return nil, nil, err
	}
	team, err := s.loadTeam(ctx, task.Team)
	if err != nil {
		return nil, nil, err
	}
	return &task, team, nil
}
