package task

import (
	"testing"
	"time"

	domain "github.com/example/taskmaster/domain/task"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildPartialUpdate(t *testing.T) {
	now := time.Date(2024, 4, 10, 9, 0, 0, 0, time.UTC)

	t.Run("no fields", func(t *testing.T) {
		_, ok := BuildPartialUpdate(1, domain.Changes{}, now)
		assert.False(t, ok)
	})

	t.Run("single field", func(t *testing.T) {
		cmd, ok := BuildPartialUpdate(4, domain.Changes{Description: strPtr("")}, now)
		require.True(t, ok)
		assert.Equal(t, now, cmd.UpdatedAt)

		query, args, err := cmd.Statement()
		require.NoError(t, err)
		assert.Equal(t, "UPDATE tasks SET description = ?, updated_at = ? WHERE id = ?", query)
		assert.Equal(t, []any{"", now, int64(4)}, args)
	})

	t.Run("all fields in declaration order", func(t *testing.T) {
		cmd, ok := BuildPartialUpdate(2, domain.Changes{
			Priority:    intPtr(0),
			DueDate:     strPtr("2024-12-24"),
			Description: strPtr("wrap presents"),
			Title:       strPtr("Christmas"),
		}, now)
		require.True(t, ok)

		query, args, err := cmd.Statement()
		require.NoError(t, err)
		assert.Equal(t,
			"UPDATE tasks SET title = ?, description = ?, due_date = ?, priority = ?, updated_at = ? WHERE id = ?",
			query)
		assert.Equal(t, []any{"Christmas", "wrap presents", "2024-12-24", 0, now, int64(2)}, args)
	})
}
