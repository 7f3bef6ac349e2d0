package task

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Field identifies a user-updatable task column.
type Field int

// Updatable fields in declaration order. The order is the order assignments
// appear in a generated update.
const (
	FieldTitle Field = iota
	FieldDescription
	FieldDueDate
	FieldPriority
)

// Valid reports whether f is one of the updatable fields.
func (f Field) Valid() bool {
	return f >= FieldTitle && f <= FieldPriority
}

// Column returns the column name of f.
func (f Field) Column() string {
	switch f {
	case FieldTitle:
		return "title"
	case FieldDescription:
		return "description"
	case FieldDueDate:
		return "due_date"
	case FieldPriority:
		return "priority"
	default:
		panic(fmt.Sprintf("task: unknown field %d", int(f)))
	}
}

func (f Field) String() string {
	if !f.Valid() {
		return fmt.Sprintf("Field(%d)", int(f))
	}
	return f.Column()
}

// ColumnUpdatedAt is refreshed by every update.
const ColumnUpdatedAt = "updated_at"

// ErrInvalidUpdate is returned for an update command that cannot be rendered.
var ErrInvalidUpdate = errors.New("invalid update command")

// Changes is a sparse patch: nil fields are left untouched in storage.
type Changes struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	DueDate     *string `json:"due_date,omitempty"`
	Priority    *int    `json:"priority,omitempty"`
}

// Assignment sets one field to a value.
type Assignment struct {
	Field Field
	Value any
}

// Assignments returns the supplied fields in declaration order.
func (c Changes) Assignments() []Assignment {
	var set []Assignment
	if c.Title != nil {
		set = append(set, Assignment{Field: FieldTitle, Value: *c.Title})
	}
	if c.Description != nil {
		set = append(set, Assignment{Field: FieldDescription, Value: *c.Description})
	}
	if c.DueDate != nil {
		// An empty due date clears it.
		var v any
		if *c.DueDate != "" {
			v = *c.DueDate
		}
		set = append(set, Assignment{Field: FieldDueDate, Value: v})
	}
	if c.Priority != nil {
		set = append(set, Assignment{Field: FieldPriority, Value: *c.Priority})
	}
	return set
}

// IsEmpty reports whether no field was supplied.
func (c Changes) IsEmpty() bool {
	return c.Title == nil && c.Description == nil && c.DueDate == nil && c.Priority == nil
}

// UpdateCommand is a partial update of one task, ready for the store.
// UpdatedAt is always written after the assignments.
type UpdateCommand struct {
	ID        int64
	Set       []Assignment
	UpdatedAt time.Time
}

// Statement renders the command as a parameterized UPDATE. Column names come
// only from Field, so created_at and id can never be assigned. Arguments
// follow the assignment order, then updated_at, and the task id is last.
func (c UpdateCommand) Statement() (string, []any, error) {
	if len(c.Set) == 0 {
		return "", nil, fmt.Errorf("%w: no assignments", ErrInvalidUpdate)
	}

	var seen [FieldPriority + 1]bool
	cols := make([]string, 0, len(c.Set)+1)
	args := make([]any, 0, len(c.Set)+2)
	for _, a := range c.Set {
		if !a.Field.Valid() {
			return "", nil, fmt.Errorf("%w: unknown field %s", ErrInvalidUpdate, a.Field)
		}
		if seen[a.Field] {
			return "", nil, fmt.Errorf("%w: field %s assigned twice", ErrInvalidUpdate, a.Field)
		}
		seen[a.Field] = true
		cols = append(cols, a.Field.Column()+" = ?")
		args = append(args, a.Value)
	}
	cols = append(cols, ColumnUpdatedAt+" = ?")
	args = append(args, c.UpdatedAt, c.ID)
	return "UPDATE tasks SET " + strings.Join(cols, ", ") + " WHERE id = ?", args, nil
}
