package model

import (
	"encoding/json"
	"testing"
)

func TestCanMoveTask(t *testing.T) {
	cases := []struct {
		from string
		to   string
		want bool
	}{
		{TaskStatusBacklog, TaskStatusTodo, true},
		{TaskStatusTodo, TaskStatusDone, true},
		{TaskStatusDone, TaskStatusBacklog, true},
		{TaskStatusTodo, TaskStatusTodo, false},
		{"archived", TaskStatusTodo, false},
		{TaskStatusTodo, "archived", false},
	}

	for _, tc := range cases {
		if got := CanMoveTask(tc.from, tc.to); got != tc.want {
			t.Fatalf("CanMoveTask(%q, %q) = %v, want %v", tc.from, tc.to, got, tc.want)
		}
	}
}

func TestGroupTasksByColumn(t *testing.T) {
	tasks := []Task{
		{ID: "1", Status: TaskStatusBacklog},
		{ID: "2", Status: TaskStatusInProgress},
		{ID: "3", Status: TaskStatusInProgress},
		{ID: "4", Status: "archived"},
	}

	columns, unplaced := GroupTasksByColumn(tasks)
	if unplaced != 1 {
		t.Fatalf("expected 1 unplaced task, got %d", unplaced)
	}
	if len(columns[TaskStatusBacklog]) != 1 {
		t.Fatalf("expected 1 backlog task, got %d", len(columns[TaskStatusBacklog]))
	}
	if len(columns[TaskStatusInProgress]) != 2 {
		t.Fatalf("expected 2 in-progress tasks, got %d", len(columns[TaskStatusInProgress]))
	}
	if len(columns[TaskStatusDone]) != 0 {
		t.Fatalf("expected empty done column, got %d", len(columns[TaskStatusDone]))
	}
}

func TestFlexIDAcceptsStringAndNumber(t *testing.T) {
	cases := []struct {
		raw  string
		want string
	}{
		{`{"id": "t-17"}`, "t-17"},
		{`{"id": 17}`, "17"},
	}

	for _, tc := range cases {
		var task Task
		if err := json.Unmarshal([]byte(tc.raw), &task); err != nil {
			t.Fatalf("unmarshal %s: %v", tc.raw, err)
		}
		if task.ID.String() != tc.want {
			t.Fatalf("id from %s = %q, want %q", tc.raw, task.ID, tc.want)
		}
	}
}
