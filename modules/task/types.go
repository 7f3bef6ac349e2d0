package task

import (
	"context"

	domain "github.com/example/taskmaster/domain/task"
)

// Service names exposed by the task module.
const (
	ServiceAddTask    = "add-task"
	ServiceListTasks  = "list-tasks"
	ServiceGetTask    = "get-task"
	ServiceDeleteTask = "delete-task"
	ServiceUpdateTask = "update-task"
)

// AddTaskRequest is the request for adding a task.
type AddTaskRequest struct {
	Title       string  `json:"title"`
	Description *string `json:"description,omitempty"`
	Priority    int     `json:"priority"`
	DueDate     *string `json:"due_date,omitempty"`
}

// AddTaskResponse is the response after adding a task.
type AddTaskResponse struct {
	ID int64 `json:"id,omitempty"`
	Failure
}

// ListTasksRequest is the request for listing tasks.
type ListTasksRequest struct{}

// ListTasksResponse is the response containing every task.
type ListTasksResponse struct {
	Tasks []domain.Task `json:"tasks"`
	Total int           `json:"total"`
	Failure
}

// GetTaskRequest is the request for getting a task.
type GetTaskRequest struct {
	ID int64 `json:"id"`
}

// TaskResponse is the response for a single task.
type TaskResponse struct {
	Task *domain.Task `json:"task,omitempty"`
	Failure
}

// DeleteTaskRequest is the request for deleting a task.
type DeleteTaskRequest struct {
	ID int64 `json:"id"`
}

// DeleteTaskResponse is the response after deleting a task.
type DeleteTaskResponse struct {
	Deleted bool  `json:"deleted"`
	ID      int64 `json:"id"`
	Failure
}

// UpdateTaskRequest is the request for updating a task. Only the fields set
// in Changes are written.
type UpdateTaskRequest struct {
	ID      int64          `json:"id"`
	Changes domain.Changes `json:"changes"`
}

// UpdateTaskResponse is the response after updating a task.
type UpdateTaskResponse struct {
	Updated bool  `json:"updated"`
	ID      int64 `json:"id"`
	Failure
}

// TaskPort defines the task operations available to driving adapters.
type TaskPort interface {
	AddTask(ctx context.Context, in domain.NewTask) (int64, error)
	ListTasks(ctx context.Context) ([]domain.Task, error)
	GetTask(ctx context.Context, id int64) (*domain.Task, error)
	DeleteTask(ctx context.Context, id int64) error
	UpdateTask(ctx context.Context, id int64, changes domain.Changes) error
}

var _ TaskPort = (*Service)(nil)
