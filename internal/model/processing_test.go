package model

import "testing"

func TestIsTerminalProcessingStatus(t *testing.T) {
	cases := []struct {
		status string
		want   bool
	}{
		{ProcessingCompleted, true},
		{ProcessingError, true},
		{ProcessingQueued, false},
		{ProcessingDownloading, false},
		{ProcessingActive, false},
		{"something_new", false},
	}

	for _, tc := range cases {
		if got := IsTerminalProcessingStatus(tc.status); got != tc.want {
			t.Fatalf("IsTerminalProcessingStatus(%q) = %v, want %v", tc.status, got, tc.want)
		}
	}
}

func TestProcessingTaskApplyReplacesSnapshot(t *testing.T) {
	task := ProcessingTask{TaskID: "task-1", Status: ProcessingQueued}

	if err := task.Apply(ProcessingTask{Status: ProcessingTranscribing, Progress: 40, Message: "transcribing"}); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if task.Status != ProcessingTranscribing || task.Progress != 40 {
		t.Fatalf("unexpected snapshot after apply: %+v", task)
	}
	if task.TaskID != "task-1" {
		t.Fatalf("task id changed: %q", task.TaskID)
	}
}

func TestProcessingTaskApplyRejectsLeavingTerminal(t *testing.T) {
	task := ProcessingTask{TaskID: "task-1", Status: ProcessingCompleted, Progress: 100}

	if err := task.Apply(ProcessingTask{Status: ProcessingActive, Progress: 10}); err == nil {
		t.Fatal("expected error reanimating a completed task")
	}
	if task.Status != ProcessingCompleted || task.Progress != 100 {
		t.Fatalf("terminal snapshot mutated: %+v", task)
	}
}
