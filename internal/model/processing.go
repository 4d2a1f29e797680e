package model

import "fmt"

const (
	ProcessingQueued       = "queued"
	ProcessingDownloading  = "downloading"
	ProcessingTranscribing = "transcribing"
	ProcessingEmbedding    = "embedding"
	ProcessingActive       = "processing"
	ProcessingCompleted    = "completed"
	ProcessingError        = "error"
)

// IsTerminalProcessingStatus reports whether polling should stop.
func IsTerminalProcessingStatus(status string) bool {
	return status == ProcessingCompleted || status == ProcessingError
}

// ProcessingTask is the client's transient view of one in-flight ingestion
// submission. It lives only in UI memory; each poll replaces the snapshot.
type ProcessingTask struct {
	TaskID   string  `json:"task_id"`
	Status   string  `json:"status"`
	Progress float64 `json:"progress"`
	Message  string  `json:"message,omitempty"`
}

// Apply replaces the snapshot with the next poll result. A terminal snapshot
// never resumes: the ingestion service recycles task IDs after completion,
// so a late poll must not reanimate a finished submission.
func (t *ProcessingTask) Apply(next ProcessingTask) error {
	if IsTerminalProcessingStatus(t.Status) && next.Status != t.Status {
		return fmt.Errorf("processing task %s already %s, refusing update to %s", t.TaskID, t.Status, next.Status)
	}
	t.Status = next.Status
	t.Progress = next.Progress
	t.Message = next.Message
	return nil
}
