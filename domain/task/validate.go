package task

import "time"

// DueDateLayout is the only accepted due date format.
const DueDateLayout = "2006-01-02"

// Priority bounds.
const (
	MinPriority = 0
	MaxPriority = 5
)

// ValidateDueDate reports whether dueDate is absent or a calendar date in
// YYYY-MM-DD form. It does not check that the date is in the future.
func ValidateDueDate(dueDate *string) bool {
	if dueDate == nil || *dueDate == "" {
		return true
	}
	_, err := time.Parse(DueDateLayout, *dueDate)
	return err == nil
}

// ValidPriority reports whether p is within MinPriority..MaxPriority.
func ValidPriority(p int) bool {
	return p >= MinPriority && p <= MaxPriority
}
