package cli

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-monolith/mono"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/taskmaster/modules/task"
)

// startApp runs the task and cli modules on an embedded NATS server.
func startApp(t *testing.T, dbPath string) (*Module, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()

	app, err := mono.NewMonoApplication(
		mono.WithLogLevel(mono.LogLevelError), // Suppress logs in tests
		mono.WithNATSDontListen(),
		mono.WithNATSInProcessConn(),
	)
	require.NoError(t, err)

	out, errOut := &bytes.Buffer{}, &bytes.Buffer{}
	cliModule := NewModule(&mockLogger{}, WithIO(strings.NewReader(""), out, errOut))

	require.NoError(t, app.Register(task.NewModule(dbPath, false, &mockLogger{})))
	require.NoError(t, app.Register(cliModule))

	require.NoError(t, app.Start(context.Background()))
	t.Cleanup(func() {
		_ = app.Stop(context.Background())
	})
	return cliModule, out, errOut
}

func TestIntegration_TaskLifecycle(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	m, out, errOut := startApp(t, filepath.Join(t.TempDir(), "tasks.db"))

	require.Equal(t, ExitOK, m.Execute(ctx, []string{"add", "--title", "Buy milk", "--priority", "2"}))
	assert.Contains(t, out.String(), "Add Task successfully (ID: 1)")

	require.Equal(t, ExitOK, m.Execute(ctx, []string{"update", "--task_id", "1", "--new_priority", "5"}))

	tasks, err := m.tasks.ListTasks(ctx)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, 5, tasks[0].Priority)
	assert.Nil(t, tasks[0].DueDate)

	assert.Equal(t, ExitFailure, m.Execute(ctx, []string{"update", "-id", "1", "-ndd", "12/04/2024"}))
	assert.Contains(t, errOut.String(), "Invalid due date format")

	require.Equal(t, ExitOK, m.Execute(ctx, []string{"delete", "--task_id", "1"}))
	assert.Equal(t, ExitFailure, m.Execute(ctx, []string{"delete", "--task_id", "1"}))
	assert.Contains(t, errOut.String(), "Task ID does not exist")

	tasks, err = m.tasks.ListTasks(ctx)
	require.NoError(t, err)
	assert.Empty(t, tasks)
}
