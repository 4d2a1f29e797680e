package model

import (
	"encoding/json"
	"strings"
)

const (
	TaskStatusBacklog    = "backlog"
	TaskStatusTodo       = "todo"
	TaskStatusInProgress = "in_progress"
	TaskStatusDone       = "done"
)

// BoardColumns is the fixed column order of the kanban board.
var BoardColumns = []string{
	TaskStatusBacklog,
	TaskStatusTodo,
	TaskStatusInProgress,
	TaskStatusDone,
}

var boardColumnTitles = map[string]string{
	TaskStatusBacklog:    "Backlog",
	TaskStatusTodo:       "To Do",
	TaskStatusInProgress: "In Progress",
	TaskStatusDone:       "Done",
}

func IsBoardStatus(status string) bool {
	_, ok := boardColumnTitles[status]
	return ok
}

func BoardColumnTitle(status string) string {
	if title, ok := boardColumnTitles[status]; ok {
		return title
	}
	return status
}

// CanMoveTask reports whether a card may be dropped from one column into
// another. Only recognized columns participate; dropping into the current
// column is a no-op, not a move.
func CanMoveTask(from, to string) bool {
	if !IsBoardStatus(from) || !IsBoardStatus(to) {
		return false
	}
	return from != to
}

const (
	PriorityCritical = "critical"
	PriorityHigh     = "high"
	PriorityMedium   = "medium"
	PriorityLow      = "low"
)

var priorityRank = map[string]int{
	PriorityCritical: 0,
	PriorityHigh:     1,
	PriorityMedium:   2,
	PriorityLow:      3,
}

func KnownPriority(priority string) bool {
	_, ok := priorityRank[priority]
	return ok
}

// FlexID tolerates task identifiers arriving as JSON strings or numbers;
// the kanban service has shipped both shapes.
type FlexID string

func (f *FlexID) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "null" {
		*f = ""
		return nil
	}
	if strings.HasPrefix(trimmed, `"`) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = FlexID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = FlexID(n.String())
	return nil
}

func (f FlexID) String() string {
	return string(f)
}

type Task struct {
	ID          FlexID   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Status      string   `json:"status"`
	Assignee    string   `json:"assignee,omitempty"`
	Priority    string   `json:"priority,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	CreatedAt   string   `json:"created_at,omitempty"`
	CompletedAt string   `json:"completed_at,omitempty"`
}

// GroupTasksByColumn buckets tasks under their board column and returns the
// leftover count for unrecognized statuses.
func GroupTasksByColumn(tasks []Task) (map[string][]Task, int) {
	columns := make(map[string][]Task, len(BoardColumns))
	for _, status := range BoardColumns {
		columns[status] = nil
	}
	unplaced := 0
	for _, t := range tasks {
		if !IsBoardStatus(t.Status) {
			unplaced++
			continue
		}
		columns[t.Status] = append(columns[t.Status], t)
	}
	return columns, unplaced
}
