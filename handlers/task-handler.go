package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/harshithareddy888/HackConnect/errors"
	"github.com/harshithareddy888/HackConnect/middleware"
	"github.com/harshithareddy888/HackConnect/models"
	"github.com/harshithareddy888/HackConnect/services"
)

type TaskHandler struct {
	TaskService *services.TaskService
}

func NewTaskHandler(taskService *services.TaskService) *TaskHandler {
	return &TaskHandler{TaskService: taskService}
}

func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r)
	if !ok {
		respondError(w, errors.Unauthorized("not authenticated"))
		return
	}

	var input services.TaskInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondError(w, errors.BadRequest("invalid request payload"))
		return
	}
	teamID, err := primitive.ObjectIDFromHex(input.Team)
	if err != nil {
		respondError(w, errors.BadRequest("invalid team ID format"))
		return
	}

	task, err := h.TaskService.CreateTask(r.Context(), userID, teamID, input)
	if err != nil {
		respondError(w, err)
		return
	}
	respondData(w, http.StatusCreated, task)
}

func (h *TaskHandler) GetTeamTasks(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r)
	if !ok {
		respondError(w, errors.Unauthorized("not authenticated"))
		return
	}
	teamID, err := primitive.ObjectIDFromHex(mux.Vars(r)["teamId"])
	if err != nil {
		respondError(w, errors.BadRequest("invalid team ID format"))
		return
	}

	query := r.URL.Query()
	filter := services.TaskListFilter{
		Status:   models.TaskStatus(query.Get("status")),
		Priority: models.TaskPriority(query.Get("priority")),
	}
	if assignee := query.Get("assignedTo"); assignee != "" {
		id, err := primitive.ObjectIDFromHex(assignee)
		if err != nil {
			respondError(w, errors.BadRequest("invalid user ID format"))
			return
		}
		filter.Assignee = &id
	}

	tasks, err := h.TaskService.GetTeamTasks(r.Context(), userID, teamID, filter)
	if err != nil {
		respondError(w, err)
		return
	}
	respondList(w, len(tasks), tasks)
}

func (h *TaskHandler) GetTask(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r)
	if !ok {
		respondError(w, errors.Unauthorized("not authenticated"))
		return
	}
	taskID, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		respondError(w, errors.BadRequest("invalid task ID format"))
		return
	}

	task, err := h.TaskService.GetTask(r.Context(), userID, taskID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondData(w, http.StatusOK, task)
}

func (h *TaskHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r)
	if !ok {
		respondError(w, errors.Unauthorized("not authenticated"))
		return
	}
	taskID, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		respondError(w, errors.BadRequest("invalid task ID format"))
		return
	}

	var input services.TaskInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondError(w, errors.BadRequest("invalid request payload"))
		return
	}

	task, err := h.TaskService.UpdateTask(r.Context(), userID, taskID, input)
	if err != nil {
		respondError(w, err)
		return
	}
	respondData(w, http.StatusOK, task)
}

type assignRequest struct {
	UserIDs []string `json:"userIds"`
}

func (h *TaskHandler) AssignTask(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r)
	if !ok {
		respondError(w, errors.Unauthorized("not authenticated"))
		return
	}
	taskID, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		respondError(w, errors.BadRequest("invalid task ID format"))
		return
	}

	var req assignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || len(req.UserIDs) == 0 {
		respondError(w, errors.BadRequest("userIds is required"))
		return
	}

	assignees := make([]primitive.ObjectID, 0, len(req.UserIDs))
	for _, raw := range req.UserIDs {
		id, err := primitive.ObjectIDFromHex(raw)
		if err != nil {
			respondError(w, errors.BadRequest("invalid user ID format"))
			return
		}
		assignees = append(assignees, id)
	}

	task, err := h.TaskService.AssignTask(r.Context(), userID, taskID, assignees)
	if err != nil {
		respondError(w, err)
		return
	}
	respondData(w, http.StatusOK, task)
}

func (h *TaskHandler) RemoveAssignee(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r)
	if !ok {
		respondError(w, errors.Unauthorized("not authenticated"))
		return
	}
	vars := mux.Vars(r)
	taskID, err := primitive.ObjectIDFromHex(vars["taskId"])
	if err != nil {
		respondError(w, errors.BadRequest("invalid task ID format"))
		return
	}
	assigneeID, err := primitive.ObjectIDFromHex(vars["userId"])
	if err != nil {
		respondError(w, errors.BadRequest("invalid user ID format"))
		return
	}

	if err := h.TaskService.RemoveAssignee(r.Context(), userID, taskID, assigneeID); err != nil {
		respondError(w, err)
		return
	}
	respondData(w, http.StatusOK, map[string]interface{}{})
}

type commentRequest struct {
	Text string `json:"text"`
}

func (h *TaskHandler) AddComment(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r)
	if !ok {
		respondError(w, errors.Unauthorized("not authenticated"))
		return
	}
	taskID, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		respondError(w, errors.BadRequest("invalid task ID format"))
		return
	}

	var req commentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, errors.BadRequest("invalid request payload"))
		return
	}

	comment, err := h.TaskService.AddComment(r.Context(), userID, taskID, req.Text)
	if err != nil {
		respondError(w, err)
		return
	}
	respondData(w, http.StatusCreated, comment)
}

func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r)
	if !ok {
		respondError(w, errors.Unauthorized("not authenticated"))
		return
	}
	taskID, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		respondError(w, errors.BadRequest("invalid task ID format"))
		return
	}

	if err := h.TaskService.DeleteTask(r.Context(), userID, taskID); err != nil {
		respondError(w, err)
		return
	}
	respondData(w, http.StatusOK, map[string]interface{}{})
}
