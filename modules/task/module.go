package task

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
	"github.com/go-monolith/mono/pkg/types"
)

// TaskModule provides task management services backed by a SQLite file.
type TaskModule struct {
	dbPath  string
	debug   bool
	logger  types.Logger
	store   *SQLiteStore
	service *Service
}

// Compile-time interface checks.
var _ mono.Module = (*TaskModule)(nil)
var _ mono.ServiceProviderModule = (*TaskModule)(nil)
var _ mono.HealthCheckableModule = (*TaskModule)(nil)

// NewModule creates a new TaskModule storing tasks at dbPath.
func NewModule(dbPath string, debug bool, logger types.Logger) *TaskModule {
	return &TaskModule{
		dbPath: dbPath,
		debug:  debug,
		logger: logger.WithModule("task"),
	}
}

// Name returns the module name.
func (m *TaskModule) Name() string {
	return "task"
}

// Health performs a health check on the task module.
func (m *TaskModule) Health(ctx context.Context) mono.HealthStatus {
	if m.store == nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: "store not initialized",
		}
	}

	if err := m.store.Ping(ctx); err != nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: fmt.Sprintf("database ping failed: %v", err),
		}
	}

	return mono.HealthStatus{
		Healthy: true,
		Message: "operational",
		Details: map[string]any{
			"driver": "sqlite",
			"path":   m.store.Path(),
		},
	}
}

// RegisterServices registers request-reply services in the service container.
func (m *TaskModule) RegisterServices(container mono.ServiceContainer) error {
	if err := helper.RegisterTypedRequestReplyService(
		container, ServiceAddTask, json.Unmarshal, json.Marshal, m.handleAddTask,
	); err != nil {
		return fmt.Errorf("failed to register %s service: %w", ServiceAddTask, err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, ServiceListTasks, json.Unmarshal, json.Marshal, m.handleListTasks,
	); err != nil {
		return fmt.Errorf("failed to register %s service: %w", ServiceListTasks, err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, ServiceGetTask, json.Unmarshal, json.Marshal, m.handleGetTask,
	); err != nil {
		return fmt.Errorf("failed to register %s service: %w", ServiceGetTask, err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, ServiceDeleteTask, json.Unmarshal, json.Marshal, m.handleDeleteTask,
	); err != nil {
		return fmt.Errorf("failed to register %s service: %w", ServiceDeleteTask, err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, ServiceUpdateTask, json.Unmarshal, json.Marshal, m.handleUpdateTask,
	); err != nil {
		return fmt.Errorf("failed to register %s service: %w", ServiceUpdateTask, err)
	}

	m.logger.Debug("Registered services",
		"services", []string{ServiceAddTask, ServiceListTasks, ServiceGetTask, ServiceDeleteTask, ServiceUpdateTask})
	return nil
}

// Start prepares the store and makes sure the schema exists.
func (m *TaskModule) Start(ctx context.Context) error {
	m.store = NewSQLiteStore(m.dbPath, WithDebug(m.debug))
	if err := m.store.InitializeSchema(ctx); err != nil {
		return fmt.Errorf("failed to initialize schema: %w", err)
	}
	m.service = NewService(m.store, m.logger)

	m.logger.Info("Module started", "database", m.dbPath)
	return nil
}

// Stop shuts down the module. Store handles are per operation, so there is
// nothing left open.
func (m *TaskModule) Stop(_ context.Context) error {
	m.logger.Info("Module stopped")
	return nil
}
