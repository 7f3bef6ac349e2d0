package task

import (
	"context"
	"path/filepath"
	"testing"

	domain "github.com/example/taskmaster/domain/task"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestModule creates and starts a module backed by a temporary database.
func newTestModule(t *testing.T) *TaskModule {
	t.Helper()
	m := NewModule(filepath.Join(t.TempDir(), "tasks.db"), false, &mockLogger{})
	require.NoError(t, m.Start(context.Background()))
	t.Cleanup(func() {
		_ = m.Stop(context.Background())
	})
	return m
}

func TestTaskModule_Name(t *testing.T) {
	m := NewModule("tasks.db", false, &mockLogger{})
	assert.Equal(t, "task", m.Name())
}

func TestTaskModule_Health(t *testing.T) {
	ctx := context.Background()

	m := NewModule("tasks.db", false, &mockLogger{})
	assert.False(t, m.Health(ctx).Healthy)

	dbPath := filepath.Join(t.TempDir(), "health.db")
	m = NewModule(dbPath, false, &mockLogger{})
	require.NoError(t, m.Start(ctx))
	status := m.Health(ctx)
	assert.True(t, status.Healthy)
	assert.Equal(t, "sqlite", status.Details["driver"])
	assert.Equal(t, dbPath, status.Details["path"])
}

func TestHandlers_CRUD(t *testing.T) {
	ctx := context.Background()
	m := newTestModule(t)

	added, err := m.handleAddTask(ctx, AddTaskRequest{Title: "Buy milk", Priority: 2}, nil)
	require.NoError(t, err)
	assert.Empty(t, added.Code)
	assert.Equal(t, int64(1), added.ID)

	list, err := m.handleListTasks(ctx, ListTasksRequest{}, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, list.Total)
	require.Len(t, list.Tasks, 1)

	updated, err := m.handleUpdateTask(ctx, UpdateTaskRequest{
		ID:      added.ID,
		Changes: domain.Changes{Priority: intPtr(5)},
	}, nil)
	require.NoError(t, err)
	assert.True(t, updated.Updated)

	got, err := m.handleGetTask(ctx, GetTaskRequest{ID: added.ID}, nil)
	require.NoError(t, err)
	require.NotNil(t, got.Task)
	assert.Equal(t, 5, got.Task.Priority)

	deleted, err := m.handleDeleteTask(ctx, DeleteTaskRequest{ID: added.ID}, nil)
	require.NoError(t, err)
	assert.True(t, deleted.Deleted)
}

func TestHandlers_FailuresInBody(t *testing.T) {
	ctx := context.Background()
	m := newTestModule(t)

	added, err := m.handleAddTask(ctx, AddTaskRequest{Title: "x", DueDate: strPtr("10-04-2024")}, nil)
	require.NoError(t, err)
	assert.Equal(t, CodeInvalidDueDate, added.Code)
	assert.ErrorIs(t, added.Err(), domain.ErrInvalidDueDate)

	got, err := m.handleGetTask(ctx, GetTaskRequest{ID: 99}, nil)
	require.NoError(t, err)
	assert.Nil(t, got.Task)
	assert.Equal(t, CodeNotFound, got.Code)

	deleted, err := m.handleDeleteTask(ctx, DeleteTaskRequest{ID: 99}, nil)
	require.NoError(t, err)
	assert.False(t, deleted.Deleted)
	assert.ErrorIs(t, deleted.Err(), domain.ErrNotFound)

	updated, err := m.handleUpdateTask(ctx, UpdateTaskRequest{ID: 99}, nil)
	require.NoError(t, err)
	assert.False(t, updated.Updated)
	assert.Equal(t, CodeNoFieldsProvided, updated.Code)
}
