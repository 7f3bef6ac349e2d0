package task

import (
	"strconv"
	"time"
)

// Task is a single entry in the to-do list.
//
// There is no DeletedAt column: a deleted task is removed from the table.
type Task struct {
	ID          int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Title       string    `gorm:"type:text;not null" json:"title"`
	Description *string   `gorm:"type:text" json:"description"`
	DueDate     *string   `gorm:"type:text" json:"due_date"`
	Priority    int       `gorm:"not null;default:0" json:"priority"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName returns the table name for Task model.
func (Task) TableName() string {
	return "tasks"
}

// Columns is the canonical column order used when presenting tasks.
var Columns = []string{"ID", "Title", "Description", "Priority", "Due Date", "Created At", "Updated At"}

// TimestampLayout is the layout timestamps are presented with.
const TimestampLayout = "2006-01-02 15:04:05"

// Row returns the task's values in Columns order. Absent values render as "".
func (t Task) Row() []string {
	return []string{
		strconv.FormatInt(t.ID, 10),
		t.Title,
		deref(t.Description),
		strconv.Itoa(t.Priority),
		deref(t.DueDate),
		t.CreatedAt.Local().Format(TimestampLayout),
		t.UpdatedAt.Local().Format(TimestampLayout),
	}
}

// NewTask holds the inputs of the add operation.
type NewTask struct {
	Title       string  `json:"title"`
	Description *string `json:"description,omitempty"`
	Priority    int     `json:"priority"`
	DueDate     *string `json:"due_date,omitempty"`
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
