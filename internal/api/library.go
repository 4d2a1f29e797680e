package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"warroom/internal/model"
)

func (c *Client) ListVideos(ctx context.Context) ([]model.Video, error) {
	var videos []model.Video
	if err := c.do(ctx, http.MethodGet, "/api/ml/videos", nil, nil, &videos); err != nil {
		return nil, err
	}
	return videos, nil
}

func (c *Client) GetVideo(ctx context.Context, id int) (model.Video, error) {
	var video model.Video
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/ml/videos/%d", id), nil, nil, &video)
	return video, err
}

func (c *Client) ListVideoChunks(ctx context.Context, id int) ([]model.VideoChunk, error) {
	var chunks []model.VideoChunk
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/ml/videos/%d/chunks", id), nil, nil, &chunks)
	if err != nil {
		return nil, err
	}
	return chunks, nil
}

// ProcessVideo submits a URL for server-side ingestion and returns the
// initial task snapshot to poll.
func (c *Client) ProcessVideo(ctx context.Context, videoURL string) (model.ProcessingTask, error) {
	videoURL = strings.TrimSpace(videoURL)
	if videoURL == "" {
		return model.ProcessingTask{}, errors.New("video url is required")
	}
	body := map[string]string{"url": videoURL}
	var task model.ProcessingTask
	if err := c.do(ctx, http.MethodPost, "/api/ml/videos/process", nil, body, &task); err != nil {
		return model.ProcessingTask{}, err
	}
	if strings.TrimSpace(task.TaskID) == "" {
		return model.ProcessingTask{}, errors.New("ingestion service returned no task id")
	}
	return task, nil
}

func (c *Client) VideoStatus(ctx context.Context, taskID string) (model.ProcessingTask, error) {
	taskID = strings.TrimSpace(taskID)
	if taskID == "" {
		return model.ProcessingTask{}, errors.New("task id is required")
	}
	var task model.ProcessingTask
	if err := c.do(ctx, http.MethodGet, "/api/ml/videos/status/"+taskID, nil, nil, &task); err != nil {
		return model.ProcessingTask{}, err
	}
	if task.TaskID == "" {
		task.TaskID = taskID
	}
	return task, nil
}

func (c *Client) DeleteVideo(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/ml/videos/%d", id), nil, nil, nil)
}

func (c *Client) LibraryStats(ctx context.Context) (model.LibraryStats, error) {
	var stats model.LibraryStats
	err := c.do(ctx, http.MethodGet, "/api/ml/stats", nil, nil, &stats)
	return stats, err
}

// HealthReport is the gateway's dependency rollup.
type HealthReport struct {
	Status   string            `json:"status"`
	Services map[string]string `json:"services,omitempty"`
}

func (c *Client) Health(ctx context.Context) (HealthReport, error) {
	var report HealthReport
	err := c.do(ctx, http.MethodGet, "/health", nil, nil, &report)
	return report, err
}
