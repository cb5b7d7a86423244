package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type TaskStatus string

const (
	StatusTodo       TaskStatus = "todo"
	StatusInProgress TaskStatus = "in_progress"
	StatusInReview   TaskStatus = "in_review"
	StatusCompleted  TaskStatus = "completed"
)

type TaskPriority string

const (
	PriorityLow    TaskPriority = "low"
	PriorityMedium TaskPriority = "medium"
	PriorityHigh   TaskPriority = "high"
	PriorityUrgent TaskPriority = "urgent"
)

type Assignee struct {
	User       primitive.ObjectID `bson:"user" json:"user"`
	AssignedAt time.Time          `bson:"assignedAt" json:"assignedAt"`
}

type Comment struct {
	User      primitive.ObjectID `bson:"user" json:"user"`
	Text      string             `bson:"text" json:"text"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

type Task struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Status      TaskStatus         `bson:"status" json:"status"`
	Priority    TaskPriority       `bson:"priority" json:"priority"`
	DueDate     *time.Time         `bson:"dueDate,omitempty" json:"dueDate,omitempty"`
	Team        primitive.ObjectID `bson:"team" json:"team"`
	CreatedBy   primitive.ObjectID `bson:"createdBy" json:"createdBy"`
	AssignedTo  []Assignee         `bson:"assignedTo" json:"assignedTo"`
	Labels      []string           `bson:"labels,omitempty" json:"labels,omitempty"`
	Comments    []Comment          `bson:"comments" json:"comments"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}

func ValidTaskStatus(s TaskStatus) bool {
	switch s {
	case StatusTodo, StatusInProgress, StatusInReview, StatusCompleted:
		return true
	}
	return false
}

func ValidTaskPriority(p TaskPriority) bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

// IsAssigned reports whether user already appears in the assignee
// list; re-assignment is a no-op at the service layer.
func (t *Task) IsAssigned(user primitive.ObjectID) bool {
	for _, a := range t.AssignedTo {
		if a.User == user {
			return true
		}
	}
	return false
}

// ValidateTaskAttrs checks the user-settable task fields. Empty status
// and priority mean "use the default".
func ValidateTaskAttrs(title, description string, status TaskStatus, priority TaskPriority) ValidationErrors {
	var errs ValidationErrors
	if title == "" || len(title) > 100 {
		errs = errs.Add("title", "task title is required and cannot be more than 100 characters")
	}
	if len(description) > 1000 {
		errs = errs.Add("description", "description cannot be more than 1000 characters")
	}
	if status != "" && !ValidTaskStatus(status) {
		errs = errs.Add("status", "unknown task status")
	}
	if priority != "" && !ValidTaskPriority(priority) {
		errs = errs.Add("priority", "unknown task priority")
	}
	return errs
}
