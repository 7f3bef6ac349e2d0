package task

import (
	"context"

	domain "github.com/example/taskmaster/domain/task"
	"github.com/go-monolith/mono"
)

// Handlers report domain failures in the response body and never as a
// transport error.

// handleAddTask handles the add-task service request.
func (m *TaskModule) handleAddTask(ctx context.Context, req AddTaskRequest, _ *mono.Msg) (AddTaskResponse, error) {
	id, err := m.service.AddTask(ctx, domain.NewTask{
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
		DueDate:     req.DueDate,
	})
	if err != nil {
		return AddTaskResponse{Failure: m.fail(ServiceAddTask, err)}, nil
	}
	return AddTaskResponse{ID: id}, nil
}

// handleListTasks handles the list-tasks service request.
func (m *TaskModule) handleListTasks(ctx context.Context, _ ListTasksRequest, _ *mono.Msg) (ListTasksResponse, error) {
	tasks, err := m.service.ListTasks(ctx)
	if err != nil {
		return ListTasksResponse{Tasks: []domain.Task{}, Failure: m.fail(ServiceListTasks, err)}, nil
	}
	return ListTasksResponse{Tasks: tasks, Total: len(tasks)}, nil
}

// handleGetTask handles the get-task service request.
func (m *TaskModule) handleGetTask(ctx context.Context, req GetTaskRequest, _ *mono.Msg) (TaskResponse, error) {
	t, err := m.service.GetTask(ctx, req.ID)
	if err != nil {
		return TaskResponse{Failure: m.fail(ServiceGetTask, err)}, nil
	}
	return TaskResponse{Task: t}, nil
}

// handleDeleteTask handles the delete-task service request.
func (m *TaskModule) handleDeleteTask(ctx context.Context, req DeleteTaskRequest, _ *mono.Msg) (DeleteTaskResponse, error) {
	if err := m.service.DeleteTask(ctx, req.ID); err != nil {
		return DeleteTaskResponse{ID: req.ID, Failure: m.fail(ServiceDeleteTask, err)}, nil
	}
	return DeleteTaskResponse{Deleted: true, ID: req.ID}, nil
}

// handleUpdateTask handles the update-task service request.
func (m *TaskModule) handleUpdateTask(ctx context.Context, req UpdateTaskRequest, _ *mono.Msg) (UpdateTaskResponse, error) {
	if err := m.service.UpdateTask(ctx, req.ID, req.Changes); err != nil {
		return UpdateTaskResponse{ID: req.ID, Failure: m.fail(ServiceUpdateTask, err)}, nil
	}
	return UpdateTaskResponse{Updated: true, ID: req.ID}, nil
}

func (m *TaskModule) fail(service string, err error) Failure {
	f := toFailure(err)
	if f.Code == CodeStoreError || f.Code == CodeInternal {
		m.logger.WithError(err).Error("Service request failed", "service", service)
	}
	return f
}
