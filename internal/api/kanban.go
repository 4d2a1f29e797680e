package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"warroom/internal/model"
)

// ListTasks fetches the board. The kanban service has shipped both a bare
// array and an object with a tasks field; both shapes are accepted.
func (c *Client) ListTasks(ctx context.Context) ([]model.Task, error) {
	var raw json.RawMessage
	if err := c.do(ctx, http.MethodGet, "/api/kanban/tasks", nil, nil, &raw); err != nil {
		return nil, err
	}
	return parseTaskList(raw)
}

func parseTaskList(raw json.RawMessage) ([]model.Task, error) {
	var tasks []model.Task
	if err := json.Unmarshal(raw, &tasks); err == nil {
		return tasks, nil
	}
	var wrapped struct {
		Tasks []model.Task `json:"tasks"`
	}
	if err := json.Unmarshal(raw, &wrapped); err != nil {
		return nil, fmt.Errorf("parse task list: %w", err)
	}
	return wrapped.Tasks, nil
}

// MoveTask PATCHes the task into a new board column.
func (c *Client) MoveTask(ctx context.Context, id model.FlexID, status string) error {
	if !model.IsBoardStatus(status) {
		return fmt.Errorf("unknown board status %q", status)
	}
	body := map[string]string{"status": status}
	return c.do(ctx, http.MethodPatch, "/api/kanban/tasks/"+id.String(), nil, body, nil)
}
