package task

import (
	"context"
	"encoding/json"
	"fmt"

	domain "github.com/example/taskmaster/domain/task"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
)

// taskAdapter wraps ServiceContainer for type-safe cross-module communication.
type taskAdapter struct {
	container mono.ServiceContainer
}

// NewTaskAdapter creates a TaskPort that calls the task module's services.
// container is the ServiceContainer received via SetDependencyServiceContainer.
func NewTaskAdapter(container mono.ServiceContainer) TaskPort {
	if container == nil {
		panic("task adapter requires non-nil ServiceContainer")
	}
	return &taskAdapter{container: container}
}

// AddTask adds a task via the add-task service.
func (a *taskAdapter) AddTask(ctx context.Context, in domain.NewTask) (int64, error) {
	req := AddTaskRequest{
		Title:       in.Title,
		Description: in.Description,
		Priority:    in.Priority,
		DueDate:     in.DueDate,
	}
	var resp AddTaskResponse
	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		ServiceAddTask,
		json.Marshal,
		json.Unmarshal,
		&req,
		&resp,
	); err != nil {
		return 0, fmt.Errorf("%s service call failed: %w", ServiceAddTask, err)
	}
	if err := resp.Err(); err != nil {
		return 0, err
	}
	return resp.ID, nil
}

// ListTasks lists all tasks via the list-tasks service.
func (a *taskAdapter) ListTasks(ctx context.Context) ([]domain.Task, error) {
	var resp ListTasksResponse
	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		ServiceListTasks,
		json.Marshal,
		json.Unmarshal,
		&ListTasksRequest{},
		&resp,
	); err != nil {
		return nil, fmt.Errorf("%s service call failed: %w", ServiceListTasks, err)
	}
	if err := resp.Err(); err != nil {
		return nil, err
	}
	if resp.Tasks == nil {
		resp.Tasks = []domain.Task{}
	}
	return resp.Tasks, nil
}

// GetTask retrieves a task via the get-task service.
func (a *taskAdapter) GetTask(ctx context.Context, id int64) (*domain.Task, error) {
	var resp TaskResponse
	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		ServiceGetTask,
		json.Marshal,
		json.Unmarshal,
		&GetTaskRequest{ID: id},
		&resp,
	); err != nil {
		return nil, fmt.Errorf("%s service call failed: %w", ServiceGetTask, err)
	}
	if err := resp.Err(); err != nil {
		return nil, err
	}
	if resp.Task == nil {
		return nil, domain.ErrNotFound
	}
	return resp.Task, nil
}

// DeleteTask deletes a task via the delete-task service.
func (a *taskAdapter) DeleteTask(ctx context.Context, id int64) error {
	var resp DeleteTaskResponse
	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		ServiceDeleteTask,
		json.Marshal,
		json.Unmarshal,
		&DeleteTaskRequest{ID: id},
		&resp,
	); err != nil {
		return fmt.Errorf("%s service call failed: %w", ServiceDeleteTask, err)
	}
	if err := resp.Err(); err != nil {
		return err
	}
	if !resp.Deleted {
		return fmt.Errorf("task not deleted: %d", id)
	}
	return nil
}

// UpdateTask updates a task via the update-task service.
func (a *taskAdapter) UpdateTask(ctx context.Context, id int64, changes domain.Changes) error {
	var resp UpdateTaskResponse
	req := UpdateTaskRequest{ID: id, Changes: changes}
	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		ServiceUpdateTask,
		json.Marshal,
		json.Unmarshal,
		&req,
		&resp,
	); err != nil {
		return fmt.Errorf("%s service call failed: %w", ServiceUpdateTask, err)
	}
	if err := resp.Err(); err != nil {
		return err
	}
	if !resp.Updated {
		return fmt.Errorf("task not updated: %d", id)
	}
	return nil
}
