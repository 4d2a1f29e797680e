package cli

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"warroom/internal/api"
	"warroom/internal/model"
)

type kanbanPanel struct {
	client *api.Client

	tasks    []model.Task
	columns  map[string][]model.Task
	unplaced int

	column  int // index into model.BoardColumns
	row     int
	grabbed *model.Task
	moving  bool
	loading bool
	status  string
	statErr bool

	width  int
	height int
}

type tasksLoadedMsg struct {
	tasks []model.Task
	err   error
}

type taskMovedMsg struct {
	id  model.FlexID
	to  string
	err error
}

func newKanbanPanel(client *api.Client) kanbanPanel {
	return kanbanPanel{
		client:  client,
		columns: map[string][]model.Task{},
	}
}

func (p *kanbanPanel) setSize(width, height int) {
	p.width = width
	p.height = height
}

func (p kanbanPanel) capturesInput() bool {
	return p.grabbed != nil || p.moving
}

func (p kanbanPanel) load() tea.Cmd {
	client := p.client
	return func() tea.Msg {
		tasks, err := client.ListTasks(context.Background())
		return tasksLoadedMsg{tasks: tasks, err: err}
	}
}

func moveTaskCmd(client *api.Client, id model.FlexID, to string) tea.Cmd {
	return func() tea.Msg {
		err := client.MoveTask(context.Background(), id, to)
		return taskMovedMsg{id: id, to: to, err: err}
	}
}

func (p kanbanPanel) currentColumn() string {
	if p.column < 0 || p.column >= len(model.BoardColumns) {
		return model.BoardColumns[0]
	}
	return model.BoardColumns[p.column]
}

func (p *kanbanPanel) clampRow() {
	n := len(p.columns[p.currentColumn()])
	if p.row > n-1 {
		p.row = n - 1
	}
	if p.row < 0 {
		p.row = 0
	}
}

func (p kanbanPanel) update(msg tea.Msg) (kanbanPanel, tea.Cmd) {
	switch msg := msg.(type) {
	case tasksLoadedMsg:
		p.loading = false
		if msg.err != nil {
			p.status = "board refresh failed"
			p.statErr = true
			return p, nil
		}
		p.tasks = msg.tasks
		p.columns, p.unplaced = model.GroupTasksByColumn(msg.tasks)
		p.clampRow()
		return p, nil
	case taskMovedMsg:
		p.moving = false
		p.grabbed = nil
		if msg.err != nil {
			// The board was never mutated locally, so a refetch restores truth.
			p.status = "error: " + msg.err.Error()
			p.statErr = true
		} else {
			p.status = fmt.Sprintf("moved task to %s", model.BoardColumnTitle(msg.to))
			p.statErr = false
		}
		p.loading = true
		return p, p.load()
	case tea.KeyMsg:
		if p.moving {
			return p, nil
		}
		if p.grabbed != nil {
			return p.updateGrabbed(msg)
		}
		return p.updateBrowse(msg)
	}
	return p, nil
}

func (p kanbanPanel) updateBrowse(msg tea.KeyMsg) (kanbanPanel, tea.Cmd) {
	switch msg.String() {
	case "left", "h":
		if p.column > 0 {
			p.column--
			p.clampRow()
		}
	case "right", "l":
		if p.column < len(model.BoardColumns)-1 {
			p.column++
			p.clampRow()
		}
	case "up", "k":
		if p.row > 0 {
			p.row--
		}
	case "down", "j":
		if p.row < len(p.columns[p.currentColumn()])-1 {
			p.row++
		}
	case "enter", " ":
		col := p.columns[p.currentColumn()]
		if p.row < len(col) {
			grabbed := col[p.row]
			p.grabbed = &grabbed
			p.status = "carrying '" + truncateRunes(grabbed.Title, 40) + "' — h/l to pick a column, enter to drop, esc to cancel"
			p.statErr = false
		}
	case "r":
		p.loading = true
		return p, p.load()
	}
	return p, nil
}

func (p kanbanPanel) updateGrabbed(msg tea.KeyMsg) (kanbanPanel, tea.Cmd) {
	switch msg.String() {
	case "esc":
		p.grabbed = nil
		p.status = "move cancelled"
		p.statErr = false
	case "left", "h":
		if p.column > 0 {
			p.column--
		}
	case "right", "l":
		if p.column < len(model.BoardColumns)-1 {
			p.column++
		}
	case "enter", " ":
		target := p.currentColumn()
		if !model.CanMoveTask(p.grabbed.Status, target) {
			// Dropping back into the source column is a silent no-op.
			p.grabbed = nil
			p.status = ""
			p.clampRow()
			return p, nil
		}
		p.moving = true
		p.status = "moving task..."
		p.statErr = false
		return p, moveTaskCmd(p.client, p.grabbed.ID, target)
	}
	return p, nil
}

func (p kanbanPanel) view(width, height int) string {
	hints := mutedStyle.Render("h/l: column | j/k: card | enter/space: grab & drop | esc: cancel | r: refresh")

	colWidth := maxInt((width-2)/len(model.BoardColumns)-3, 16)
	maxRows := clampInt(height-11, 4, 20)

	rendered := make([]string, 0, len(model.BoardColumns))
	for ci, status := range model.BoardColumns {
		cards := p.columns[status]
		title := fmt.Sprintf("%s (%d)", model.BoardColumnTitle(status), len(cards))
		if ci == p.column {
			title = titleStyle.Render(title)
		} else {
			title = mutedStyle.Render(title)
		}

		lines := []string{title, ""}
		cursor := -1
		if ci == p.column {
			cursor = p.row
		}
		start, end := listWindow(len(cards), maxInt(cursor, 0), maxRows)
		if start > 0 {
			lines = append(lines, mutedStyle.Render("..."))
		}
		for i := start; i < end; i++ {
			card := cards[i]
			label := priorityGlyph(card.Priority) + truncateRunes(card.Title, colWidth-4)
			if p.grabbed != nil && card.ID == p.grabbed.ID {
				label = grabbedMark.Render("* ") + truncateRunes(card.Title, colWidth-4)
			}
			if i == cursor {
				label = selStyle.Width(colWidth).Render(truncateRunes(label, colWidth))
			}
			lines = append(lines, label)
			if card.Assignee != "" {
				lines = append(lines, mutedStyle.Render("  @"+truncateRunes(card.Assignee, colWidth-4)))
			}
		}
		if end < len(cards) {
			lines = append(lines, mutedStyle.Render("..."))
		}
		if len(cards) == 0 {
			lines = append(lines, mutedStyle.Render("(empty)"))
		}

		style := panelStyle
		if ci == p.column {
			style = style.BorderForeground(lipgloss.Color("62"))
		}
		rendered = append(rendered, style.Width(colWidth).Render(strings.Join(lines, "\n")))
	}

	board := lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
	footer := p.status
	if p.unplaced > 0 && footer == "" {
		footer = fmt.Sprintf("%d task(s) hidden: unrecognized status", p.unplaced)
	}
	if p.loading && len(p.tasks) == 0 {
		footer = "loading board..."
	}
	return lipgloss.JoinVertical(lipgloss.Left, hints, board, statusLine(width, footer, p.statErr))
}
