package task

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChanges_Assignments(t *testing.T) {
	priority := 2
	c := Changes{
		Priority:    &priority,
		DueDate:     strPtr("2024-05-01"),
		Title:       strPtr("Buy oat milk"),
		Description: strPtr(""),
	}

	got := c.Assignments()

	require.Len(t, got, 4)
	assert.Equal(t, []Assignment{
		{Field: FieldTitle, Value: "Buy oat milk"},
		{Field: FieldDescription, Value: ""},
		{Field: FieldDueDate, Value: "2024-05-01"},
		{Field: FieldPriority, Value: 2},
	}, got)
}

func TestChanges_EmptyDueDateClears(t *testing.T) {
	got := Changes{DueDate: strPtr("")}.Assignments()

	require.Len(t, got, 1)
	assert.Equal(t, FieldDueDate, got[0].Field)
	assert.Nil(t, got[0].Value)
}

func TestChanges_IsEmpty(t *testing.T) {
	assert.True(t, Changes{}.IsEmpty())
	assert.Empty(t, Changes{}.Assignments())
	assert.False(t, Changes{Description: strPtr("")}.IsEmpty())
}

func TestUpdateCommand_Statement(t *testing.T) {
	now := time.Date(2024, 4, 10, 9, 0, 0, 0, time.UTC)
	cmd := UpdateCommand{
		ID: 7,
		Set: []Assignment{
			{Field: FieldTitle, Value: "Renamed"},
			{Field: FieldPriority, Value: 4},
		},
		UpdatedAt: now,
	}

	query, args, err := cmd.Statement()

	require.NoError(t, err)
	assert.Equal(t, "UPDATE tasks SET title = ?, priority = ?, updated_at = ? WHERE id = ?", query)
	assert.Equal(t, []any{"Renamed", 4, now, int64(7)}, args)
}

func TestUpdateCommand_StatementRejectsBadCommands(t *testing.T) {
	tests := []struct {
		name string
		set  []Assignment
	}{
		{"no assignments", nil},
		{"unknown field", []Assignment{{Field: Field(42), Value: "1999-01-01 00:00:00"}}},
		{"negative field", []Assignment{{Field: Field(-1), Value: "x"}}},
		{"duplicate field", []Assignment{{Field: FieldTitle, Value: "a"}, {Field: FieldTitle, Value: "b"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query, args, err := UpdateCommand{ID: 1, Set: tt.set, UpdatedAt: time.Now()}.Statement()

			assert.ErrorIs(t, err, ErrInvalidUpdate)
			assert.Empty(t, query)
			assert.Nil(t, args)
		})
	}
}

func TestUpdateCommand_ValuesNeverReachTheQueryText(t *testing.T) {
	cmd := UpdateCommand{
		ID:        1,
		Set:       []Assignment{{Field: FieldTitle, Value: "x' WHERE 1 = 1 --"}},
		UpdatedAt: time.Now(),
	}

	query, args, err := cmd.Statement()

	require.NoError(t, err)
	assert.Equal(t, "UPDATE tasks SET title = ?, updated_at = ? WHERE id = ?", query)
	assert.Equal(t, "x' WHERE 1 = 1 --", args[0])
}

func TestField_Column(t *testing.T) {
	assert.Equal(t, "title", FieldTitle.Column())
	assert.Equal(t, "description", FieldDescription.Column())
	assert.Equal(t, "due_date", FieldDueDate.Column())
	assert.Equal(t, "priority", FieldPriority.String())
	assert.Panics(t, func() { _ = Field(99).Column() })
	assert.False(t, Field(99).Valid())
	assert.Equal(t, "Field(99)", Field(99).String())
}

func TestTask_Row(t *testing.T) {
	created := time.Date(2024, 4, 10, 9, 30, 0, 0, time.Local)
	task := Task{
		ID:        1,
		Title:     "Buy milk",
		Priority:  3,
		DueDate:   strPtr("2024-04-12"),
		CreatedAt: created,
		UpdatedAt: created,
	}

	row := task.Row()

	require.Len(t, row, len(Columns))
	assert.Equal(t, []string{
		"1", "Buy milk", "", "3", "2024-04-12", "2024-04-10 09:30:00", "2024-04-10 09:30:00",
	}, row)
}
