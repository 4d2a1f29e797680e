package model

import "fmt"

type Video struct {
	ID           int      `json:"id"`
	URL          string   `json:"url"`
	Title        string   `json:"title"`
	Author       string   `json:"author,omitempty"`
	Duration     int      `json:"duration"`
	ThumbnailURL string   `json:"thumbnail_url,omitempty"`
	ProcessedAt  string   `json:"processed_at,omitempty"`
	TopicTags    []string `json:"topic_tags,omitempty"`
	ChunkCount   int      `json:"chunk_count"`
	Status       string   `json:"status,omitempty"`
	DocumentText string   `json:"document_text,omitempty"`
}

type VideoChunk struct {
	ID         int      `json:"id"`
	ChunkIndex int      `json:"chunk_index"`
	Text       string   `json:"text"`
	StartTime  float64  `json:"start_time"`
	EndTime    float64  `json:"end_time"`
	TokenCount int      `json:"token_count"`
	TopicTags  []string `json:"topic_tags,omitempty"`
}

type LibraryStats struct {
	TotalVideos   int `json:"total_videos"`
	TotalChunks   int `json:"total_chunks"`
	TotalDuration int `json:"total_duration"`
}

// FormatDuration renders seconds as h:mm:ss, or m:ss under an hour.
func FormatDuration(seconds int) string {
	if seconds <= 0 {
		return "0:00"
	}
	hours := seconds / 3600
	minutes := (seconds % 3600) / 60
	secs := seconds % 60
	if hours > 0 {
		return fmt.Sprintf("%d:%02d:%02d", hours, minutes, secs)
	}
	return fmt.Sprintf("%d:%02d", minutes, secs)
}
