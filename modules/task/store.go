package task

import (
	"context"
	"errors"
	"fmt"
	"time"

	domain "github.com/example/taskmaster/domain/task"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Store is the persistence contract the Service depends on.
type Store interface {
	InitializeSchema(ctx context.Context) error
	Insert(ctx context.Context, t *domain.Task) (int64, error)
	GetAll(ctx context.Context) ([]domain.Task, error)
	GetByID(ctx context.Context, id int64) (*domain.Task, error)
	DeleteByID(ctx context.Context, id int64) (bool, error)
	ExecuteUpdate(ctx context.Context, cmd domain.UpdateCommand) (bool, error)
}

// SQLiteStore keeps tasks in a SQLite file through GORM.
// Each operation opens its own handle and closes it before returning.
type SQLiteStore struct {
	path     string
	logLevel logger.LogLevel
	now      func() time.Time
}

var _ Store = (*SQLiteStore)(nil)

// StoreOption configures a SQLiteStore.
type StoreOption func(*SQLiteStore)

// WithClock sets the clock used for creation timestamps.
func WithClock(now func() time.Time) StoreOption {
	return func(s *SQLiteStore) {
		s.now = now
	}
}

// WithDebug enables GORM SQL logging.
func WithDebug(debug bool) StoreOption {
	return func(s *SQLiteStore) {
		if debug {
			s.logLevel = logger.Info
		}
	}
}

// NewSQLiteStore creates a store backed by the SQLite file at path.
func NewSQLiteStore(path string, opts ...StoreOption) *SQLiteStore {
	s := &SQLiteStore{
		path:     path,
		logLevel: logger.Silent,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Path returns the database file path.
func (s *SQLiteStore) Path() string {
	return s.path
}

// withDB opens a handle, runs fn and closes the handle on every path.
func (s *SQLiteStore) withDB(ctx context.Context, op string, fn func(db *gorm.DB) error) error {
	db, err := gorm.Open(sqlite.Open(s.path), &gorm.Config{
		Logger:  logger.Default.LogMode(s.logLevel),
		NowFunc: s.now,
	})
	if err != nil {
		return &domain.StoreError{Op: op, Err: fmt.Errorf("failed to connect to database: %w", err)}
	}

	sqlDB, err := db.DB()
	if err != nil {
		return &domain.StoreError{Op: op, Err: fmt.Errorf("failed to get sql.DB: %w", err)}
	}
	defer sqlDB.Close()

	if err := fn(db.WithContext(ctx)); err != nil {
		return &domain.StoreError{Op: op, Err: err}
	}
	return nil
}

// InitializeSchema creates the tasks table if it does not exist yet.
func (s *SQLiteStore) InitializeSchema(ctx context.Context) error {
	return s.withDB(ctx, "migrate", func(db *gorm.DB) error {
		if err := db.AutoMigrate(&domain.Task{}); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}
		return nil
	})
}

// Insert saves a new task and returns its assigned ID.
// CreatedAt and UpdatedAt are both set to the same instant.
func (s *SQLiteStore) Insert(ctx context.Context, t *domain.Task) (int64, error) {
	now := s.now()
	t.CreatedAt = now
	t.UpdatedAt = now

	err := s.withDB(ctx, "insert", func(db *gorm.DB) error {
		if err := db.Create(t).Error; err != nil {
			return fmt.Errorf("failed to create task: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return t.ID, nil
}

// GetAll retrieves all tasks ordered by ID.
func (s *SQLiteStore) GetAll(ctx context.Context) ([]domain.Task, error) {
	tasks := []domain.Task{}
	err := s.withDB(ctx, "select", func(db *gorm.DB) error {
		if err := db.Order("id ASC").Find(&tasks).Error; err != nil {
			return fmt.Errorf("failed to find tasks: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

// GetByID retrieves a task by its ID. It returns nil, nil when the task does
// not exist.
func (s *SQLiteStore) GetByID(ctx context.Context, id int64) (*domain.Task, error) {
	var (
		t     domain.Task
		found bool
	)
	err := s.withDB(ctx, "select", func(db *gorm.DB) error {
		err := db.Take(&t, "id = ?", id).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to find task: %w", err)
		}
		found = true
		return nil
	})
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}
	return &t, nil
}

// DeleteByID removes a task. It reports whether the task existed.
func (s *SQLiteStore) DeleteByID(ctx context.Context, id int64) (bool, error) {
	var existed bool
	err := s.withDB(ctx, "delete", func(db *gorm.DB) error {
		return db.Transaction(func(tx *gorm.DB) error {
			ok, err := exists(tx, id)
			if err != nil || !ok {
				return err
			}
			if err := tx.Delete(&domain.Task{}, "id = ?", id).Error; err != nil {
				return fmt.Errorf("failed to delete task: %w", err)
			}
			existed = true
			return nil
		})
	})
	if err != nil {
		return false, err
	}
	return existed, nil
}

// ExecuteUpdate applies cmd if the task exists. It reports whether the task
// existed. The update runs as a single statement inside a transaction.
// A zero UpdatedAt is replaced with the store clock.
func (s *SQLiteStore) ExecuteUpdate(ctx context.Context, cmd domain.UpdateCommand) (bool, error) {
	if cmd.UpdatedAt.IsZero() {
		cmd.UpdatedAt = s.now()
	}
	query, args, err := cmd.Statement()
	if err != nil {
		return false, err
	}

	var existed bool
	err = s.withDB(ctx, "update", func(db *gorm.DB) error {
		return db.Transaction(func(tx *gorm.DB) error {
			ok, err := exists(tx, cmd.ID)
			if err != nil || !ok {
				return err
			}
			if err := tx.Exec(query, args...).Error; err != nil {
				return fmt.Errorf("failed to update task: %w", err)
			}
			existed = true
			return nil
		})
	})
	if err != nil {
		return false, err
	}
	return existed, nil
}

// Ping checks that the database file can be opened and queried.
func (s *SQLiteStore) Ping(ctx context.Context) error {
	return s.withDB(ctx, "ping", func(db *gorm.DB) error {
		sqlDB, err := db.DB()
		if err != nil {
			return fmt.Errorf("failed to get sql.DB: %w", err)
		}
		if err := sqlDB.PingContext(ctx); err != nil {
			return fmt.Errorf("database ping failed: %w", err)
		}
		return nil
	})
}

func exists(tx *gorm.DB, id int64) (bool, error) {
	var count int64
	if err := tx.Model(&domain.Task{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check task existence: %w", err)
	}
	return count > 0, nil
}
