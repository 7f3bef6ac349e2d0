package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	domain "github.com/example/taskmaster/domain/task"
)

// printer renders tables and coloured status lines. Colours are dropped
// automatically when the writer is not a terminal.
type printer struct {
	out      io.Writer
	renderer *lipgloss.Renderer
}

func newPrinter(w io.Writer) *printer {
	return &printer{out: w, renderer: lipgloss.NewRenderer(w)}
}

func (p *printer) success(format string, args ...any) {
	style := p.renderer.NewStyle().Foreground(lipgloss.Color("2"))
	fmt.Fprintln(p.out, style.Render(fmt.Sprintf(format, args...)))
}

func (p *printer) failure(format string, args ...any) {
	style := p.renderer.NewStyle().Foreground(lipgloss.Color("1"))
	fmt.Fprintln(p.out, style.Render(fmt.Sprintf(format, args...)))
}

func (p *printer) table(headers []string, rows [][]string) {
	header := p.renderer.NewStyle().Bold(true).Padding(0, 1)
	cell := p.renderer.NewStyle().Padding(0, 1)

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(p.renderer.NewStyle().Foreground(lipgloss.Color("240"))).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return header
			}
			return cell
		}).
		Headers(headers...).
		Rows(rows...)

	fmt.Fprintln(p.out, t.Render())
}

// tasks renders tasks in the canonical column order.
func (p *printer) tasks(tasks []domain.Task) {
	rows := make([][]string, 0, len(tasks))
	for _, t := range tasks {
		rows = append(rows, t.Row())
	}
	p.table(domain.Columns, rows)
}

// summary renders the details of a task being added.
func (p *printer) summary(in domain.NewTask) {
	p.table([]string{"Task Information", "Details"}, [][]string{
		{"Task Title", in.Title},
		{"Task Description", valueOrEmpty(in.Description)},
		{"Task Priority", fmt.Sprint(in.Priority)},
		{"Task Due Date", valueOrEmpty(in.DueDate)},
	})
}

func valueOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
