package components

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
	"github.com/taskdeck/taskdeck/cli/tui/styles"
	"github.com/taskdeck/taskdeck/engine/task"
)

// TaskTable renders one fetched page of tasks. The page is a server-side
// slice; there is no client-side filtering or sorting, a new page means a
// new fetch and a full re-render.
type TaskTable struct {
	table    table.Model
	rows     []task.Row
	page     int
	pageSize int
	total    int
}

// NewTaskTable builds the table for a fetched page.
func NewTaskTable(rows []task.Row, page, pageSize, total int) *TaskTable {
	model := table.New(
		table.WithColumns(taskTableColumns()),
		table.WithHeight(max(1, len(rows))),
	)
	model.SetStyles(taskTableStyles())
	model.SetRows(projectTaskRows(rows))
	return &TaskTable{
		table:    model,
		rows:     rows,
		page:     page,
		pageSize: pageSize,
		total:    total,
	}
}

func taskTableColumns() []table.Column {
	return []table.Column{
		{Title: "ID", Width: 6},
		{Title: "Status", Width: 14},
		{Title: "Creator", Width: 20},
		{Title: "Prompt", Width: 40},
		{Title: "Retries", Width: 8},
		{Title: "Created", Width: 19},
		{Title: "Updated", Width: 19},
	}
}

func taskTableStyles() table.Styles {
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(styles.Border).
		BorderBottom(true).
		Bold(true).
		Foreground(styles.Primary)
	s.Selected = lipgloss.NewStyle()
	return s
}

func projectTaskRows(rows []task.Row) []table.Row {
	out := make([]table.Row, 0, len(rows))
	for _, r := range rows {
		out = append(out, table.Row{
			fmt.Sprintf("%d", r.ID),
			r.StatusLabel,
			r.Creator,
			r.Prompt,
			r.Retries,
			r.CreatedAt,
			r.UpdatedAt,
		})
	}
	return out
}

// View renders the table with its pagination footer.
func (tt *TaskTable) View() string {
	if len(tt.rows) == 0 {
		return styles.SubtleStyle.Render("No tasks found")
	}
	return lipgloss.JoinVertical(lipgloss.Left, tt.table.View(), tt.footer())
}

func (tt *TaskTable) footer() string {
	totalPages := 1
	if tt.pageSize > 0 {
		totalPages = (tt.total + tt.pageSize - 1) / tt.pageSize
		if totalPages == 0 {
			totalPages = 1
		}
	}
	return styles.PaginationStyle.Render(fmt.Sprintf(
		"Page %d of %d • %d tasks total", tt.page, totalPages, tt.total,
	))
}

// StatusStyle maps a task severity to its display style.
func StatusStyle(severity task.Severity) lipgloss.Style {
	switch severity {
	case task.SeveritySuccess:
		return styles.SuccessStyle
	case task.SeverityError:
		return styles.ErrorStyle
	case task.SeverityWarning:
		return styles.WarningStyle
	case task.SeverityProcessing:
		return styles.InfoStyle
	default:
		return styles.SubtleStyle
	}
}
