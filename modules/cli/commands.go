package cli

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"

	domain "github.com/example/taskmaster/domain/task"
)

// Execute runs the sub-command in args and returns the process exit code.
func (m *Module) Execute(ctx context.Context, args []string) int {
	if len(args) == 0 {
		PrintUsage(m.errOut)
		return ExitUsage
	}

	command, rest := args[0], args[1:]
	m.logger.Debug("Running command", "command", command)

	switch command {
	case "add":
		return m.runAdd(ctx, rest)
	case "list", "show":
		return m.runList(ctx, rest)
	case "get":
		return m.runGet(ctx, rest)
	case "delete", "remove":
		return m.runDelete(ctx, rest)
	case "update":
		return m.runUpdate(ctx, rest)
	case "version", "--version":
		PrintVersion(m.out)
		return ExitOK
	case "help", "-h", "--help":
		PrintUsage(m.out)
		return ExitOK
	default:
		fmt.Fprintf(m.errOut, "Unknown command: %s\n", command)
		PrintUsage(m.errOut)
		return ExitUsage
	}
}

// PrintVersion writes the program version.
func PrintVersion(w io.Writer) {
	fmt.Fprintf(w, "Taskmaster, version %s\n", Version)
}

// PrintUsage writes the command overview.
func PrintUsage(w io.Writer) {
	fmt.Fprint(w, `Taskmaster - Manage your to-do list from the command line.

Usage:
  taskmaster [--db path] [--config file] [--verbose] <command> [options]

Commands:
  add      Add a new task            --title/-tl --description/-de --priority/-pr --due_date/-dd
  list     List all tasks (alias: show) [--json]
  get      Show one task             --task_id/-id
  delete   Delete a task by its ID   --task_id/-id
  update   Update a task             --task_id/-id [--new_title/-nt] [--new_description/-nd]
                                     [--new_priority/-np] [--new_due_date/-ndd]
  version  Show the version
  help     Show this help

Due dates use the YYYY-MM-DD format. Priorities range from 0 to 5.
`)
}

func (m *Module) runAdd(ctx context.Context, args []string) int {
	fs := newFlagSet("add", m.errOut)
	var title, description, dueDate optionalString
	var priority optionalInt
	fs.option(&title, "title", "tl", "Title for the task. [required]")
	fs.option(&description, "description", "de", "Description for the task. [optional]")
	fs.option(&priority, "priority", "pr", "Priority for the task (0 - 5). default=0")
	fs.option(&dueDate, "due_date", "dd", "Due date for the task, YYYY-MM-DD. [optional]")
	if err := fs.Parse(args); err != nil {
		return parseExit(err)
	}

	if fs.NArg() > 0 {
		if title.set {
			return m.usageError("unexpected arguments: %s", strings.Join(fs.Args(), " "))
		}
		_ = title.Set(strings.Join(fs.Args(), " "))
	}

	if !title.set {
		if !m.interactive {
			return m.usageError("missing option '--title'")
		}
		v, err := m.promptString("Title")
		if err != nil {
			return m.usageError("missing option '--title'")
		}
		_ = title.Set(v)
	}
	if !priority.set && m.interactive {
		n, err := m.promptInt("Priority", 0)
		if err != nil {
			return m.usageError("invalid priority")
		}
		priority.value = n
	}

	in := domain.NewTask{
		Title:       title.value,
		Description: description.ptr(),
		Priority:    priority.value,
		DueDate:     dueDate.ptr(),
	}

	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	id, err := m.tasks.AddTask(ctx, in)
	if err != nil {
		return m.report("Error adding task", err)
	}

	p := newPrinter(m.out)
	p.summary(in)
	p.success("Add Task successfully (ID: %d)", id)
	return ExitOK
}

func (m *Module) runList(ctx context.Context, args []string) int {
	fs := newFlagSet("list", m.errOut)
	asJSON := fs.Bool("json", false, "Print tasks as JSON")
	if err := fs.Parse(args); err != nil {
		return parseExit(err)
	}
	if fs.NArg() > 0 {
		return m.usageError("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}

	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	tasks, err := m.tasks.ListTasks(ctx)
	if err != nil {
		return m.report("Error retrieving tasks", err)
	}

	if *asJSON {
		enc := json.NewEncoder(m.out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(tasks); err != nil {
			return m.report("Error encoding tasks", err)
		}
		return ExitOK
	}

	newPrinter(m.out).tasks(tasks)
	return ExitOK
}

func (m *Module) runGet(ctx context.Context, args []string) int {
	fs := newFlagSet("get", m.errOut)
	var id optionalInt
	fs.option(&id, "task_id", "id", "ID of the task to show. [required]")
	if err := fs.Parse(args); err != nil {
		return parseExit(err)
	}
	taskID, code := m.resolveID(&id, fs.Args())
	if code != ExitOK {
		return code
	}

	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	t, err := m.tasks.GetTask(ctx, taskID)
	if err != nil {
		return m.report("Error retrieving task", err)
	}

	newPrinter(m.out).tasks([]domain.Task{*t})
	return ExitOK
}

func (m *Module) runDelete(ctx context.Context, args []string) int {
	fs := newFlagSet("delete", m.errOut)
	var id optionalInt
	fs.option(&id, "task_id", "id", "ID of the task to be deleted. [required]")
	if err := fs.Parse(args); err != nil {
		return parseExit(err)
	}
	taskID, code := m.resolveID(&id, fs.Args())
	if code != ExitOK {
		return code
	}

	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	if err := m.tasks.DeleteTask(ctx, taskID); err != nil {
		return m.report("Error deleting task", err)
	}

	newPrinter(m.out).success("Task deleted successfully")
	return ExitOK
}

func (m *Module) runUpdate(ctx context.Context, args []string) int {
	fs := newFlagSet("update", m.errOut)
	var id, newPriority optionalInt
	var newTitle, newDescription, newDueDate optionalString
	fs.option(&id, "task_id", "id", "ID of the task to be updated. [required]")
	fs.option(&newTitle, "new_title", "nt", "New title for the task.")
	fs.option(&newDescription, "new_description", "nd", "New description for the task.")
	fs.option(&newPriority, "new_priority", "np", "New priority for the task (0 - 5).")
	fs.option(&newDueDate, "new_due_date", "ndd", "New due date for the task, YYYY-MM-DD. An empty value clears it.")
	if err := fs.Parse(args); err != nil {
		return parseExit(err)
	}
	taskID, code := m.resolveID(&id, fs.Args())
	if code != ExitOK {
		return code
	}

	changes := domain.Changes{
		Title:       newTitle.ptr(),
		Description: newDescription.ptr(),
		DueDate:     newDueDate.ptr(),
		Priority:    newPriority.ptr(),
	}

	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	if err := m.tasks.UpdateTask(ctx, taskID, changes); err != nil {
		return m.report("Error updating task", err)
	}

	newPrinter(m.out).success("Task updated successfully")
	return ExitOK
}

// resolveID takes the task ID from --task_id, a single positional argument,
// or a prompt, in that order.
func (m *Module) resolveID(id *optionalInt, rest []string) (int64, int) {
	if !id.set && len(rest) == 1 {
		if err := id.Set(rest[0]); err != nil {
			return 0, m.usageError("invalid task ID %q", rest[0])
		}
		rest = nil
	}
	if len(rest) > 0 {
		return 0, m.usageError("unexpected arguments: %s", strings.Join(rest, " "))
	}
	if !id.set {
		if !m.interactive {
			return 0, m.usageError("missing option '--task_id'")
		}
		v, err := m.promptString("Task id")
		if err != nil {
			return 0, m.usageError("missing option '--task_id'")
		}
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return 0, m.usageError("invalid task ID %q", v)
		}
		return n, ExitOK
	}
	return int64(id.value), ExitOK
}

// report renders err as a red status line and returns the failure exit code.
func (m *Module) report(prefix string, err error) int {
	p := newPrinter(m.errOut)
	switch {
	case errors.Is(err, domain.ErrInvalidDueDate):
		p.failure("[!] Invalid due date format. Please use YYYY-MM-DD format.")
	case errors.Is(err, domain.ErrInvalidPriority):
		p.failure("[!] Invalid priority. Please use a value from %d to %d.", domain.MinPriority, domain.MaxPriority)
	case errors.Is(err, domain.ErrEmptyTitle):
		p.failure("[!] Title must not be empty.")
	case errors.Is(err, domain.ErrNoFieldsProvided):
		p.failure("No updates provided")
	case errors.Is(err, domain.ErrNotFound):
		p.failure("Task ID does not exist")
	default:
		m.logger.WithError(err).Error(prefix)
		p.failure("%s: %v", prefix, err)
	}
	return ExitFailure
}

func (m *Module) usageError(format string, args ...any) int {
	fmt.Fprintf(m.errOut, "Error: "+format+"\n", args...)
	return ExitUsage
}

func parseExit(err error) int {
	if errors.Is(err, flag.ErrHelp) {
		return ExitOK
	}
	return ExitUsage
}
