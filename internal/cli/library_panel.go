package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"warroom/internal/api"
	"warroom/internal/model"
)

// postTerminalDelay keeps the completed/error banner on screen before the
// tracker clears and the list refetches.
const postTerminalDelay = 1500 * time.Millisecond

type libraryMode int

const (
	libraryModeBrowse libraryMode = iota
	libraryModePrompt
	libraryModeConfirmDelete
	libraryModeDetail
)

type libraryPanel struct {
	client       *api.Client
	pollInterval time.Duration

	mode    libraryMode
	videos  []model.Video
	cursor  int
	loading bool
	status  string
	statErr bool

	prompt textinput.Model
	spin   spinner.Model

	// One ingestion submission may be in flight at a time. submission is a
	// fresh ID per submit; ticks and results stamped with an older ID are
	// discarded, so an abandoned poll loop can never touch a new tracker.
	submission string
	task       model.ProcessingTask
	submitting bool

	confirmID    int
	confirmTitle string

	detail model.Video

	width  int
	height int
}

type videosLoadedMsg struct {
	videos []model.Video
	err    error
}

type processAcceptedMsg struct {
	submission string
	task       model.ProcessingTask
	err        error
}

type pollTickMsg struct {
	submission string
}

type pollResultMsg struct {
	submission string
	task       model.ProcessingTask
	err        error
}

type processClearMsg struct {
	submission string
}

type videoDeletedMsg struct {
	id  int
	err error
}

func newLibraryPanel(client *api.Client, pollInterval time.Duration) libraryPanel {
	prompt := textinput.New()
	prompt.Prompt = "url> "
	prompt.Placeholder = "https://youtube.com/watch?v=..."
	prompt.CharLimit = 2048
	prompt.Width = 72

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("212"))

	if pollInterval <= 0 {
		pollInterval = 2 * time.Second
	}
	return libraryPanel{
		client:       client,
		pollInterval: pollInterval,
		prompt:       prompt,
		spin:         sp,
	}
}

func (p *libraryPanel) setSize(width, height int) {
	p.width = width
	p.height = height
	p.prompt.Width = clampInt(width-12, 30, 120)
}

func (p libraryPanel) capturesInput() bool {
	return p.mode != libraryModeBrowse
}

func (p libraryPanel) load() tea.Cmd {
	client := p.client
	return func() tea.Msg {
		videos, err := client.ListVideos(context.Background())
		return videosLoadedMsg{videos: videos, err: err}
	}
}

func processVideoCmd(client *api.Client, submission, videoURL string) tea.Cmd {
	return func() tea.Msg {
		task, err := client.ProcessVideo(context.Background(), videoURL)
		return processAcceptedMsg{submission: submission, task: task, err: err}
	}
}

func pollStatusCmd(client *api.Client, submission, taskID string) tea.Cmd {
	return func() tea.Msg {
		task, err := client.VideoStatus(context.Background(), taskID)
		return pollResultMsg{submission: submission, task: task, err: err}
	}
}

func deleteVideoCmd(client *api.Client, id int) tea.Cmd {
	return func() tea.Msg {
		err := client.DeleteVideo(context.Background(), id)
		return videoDeletedMsg{id: id, err: err}
	}
}

func (p libraryPanel) scheduleTick(submission string) tea.Cmd {
	return tea.Tick(p.pollInterval, func(time.Time) tea.Msg {
		return pollTickMsg{submission: submission}
	})
}

func scheduleClear(submission string) tea.Cmd {
	return tea.Tick(postTerminalDelay, func(time.Time) tea.Msg {
		return processClearMsg{submission: submission}
	})
}

func (p libraryPanel) update(msg tea.Msg) (libraryPanel, tea.Cmd) {
	switch msg := msg.(type) {
	case videosLoadedMsg:
		p.loading = false
		if msg.err != nil {
			p.status = "library refresh failed"
			p.statErr = true
			return p, nil
		}
		p.videos = msg.videos
		if p.cursor > len(p.videos)-1 {
			p.cursor = maxInt(len(p.videos)-1, 0)
		}
		return p, nil

	case processAcceptedMsg:
		if msg.submission != p.submission {
			return p, nil
		}
		p.submitting = false
		if msg.err != nil {
			p.submission = ""
			p.status = "error: " + msg.err.Error()
			p.statErr = true
			return p, nil
		}
		p.task = msg.task
		p.status = ""
		if model.IsTerminalProcessingStatus(p.task.Status) {
			return p, scheduleClear(msg.submission)
		}
		return p, tea.Batch(p.spin.Tick, p.scheduleTick(msg.submission))

	case pollTickMsg:
		if msg.submission != p.submission {
			return p, nil
		}
		if model.IsTerminalProcessingStatus(p.task.Status) {
			return p, nil
		}
		return p, pollStatusCmd(p.client, msg.submission, p.task.TaskID)

	case pollResultMsg:
		if msg.submission != p.submission {
			return p, nil
		}
		if msg.err != nil {
			// Transient poll failure: keep the tracker and try again next tick.
			p.status = "status poll failed, retrying"
			p.statErr = true
			return p, p.scheduleTick(msg.submission)
		}
		p.statErr = false
		p.status = ""
		if err := p.task.Apply(msg.task); err != nil {
			return p, nil
		}
		if model.IsTerminalProcessingStatus(p.task.Status) {
			return p, scheduleClear(msg.submission)
		}
		return p, p.scheduleTick(msg.submission)

	case processClearMsg:
		if msg.submission != p.submission {
			return p, nil
		}
		p.submission = ""
		p.task = model.ProcessingTask{}
		p.loading = true
		return p, p.load()

	case videoDeletedMsg:
		if msg.err != nil {
			// The row was already dropped optimistically; surface the failure
			// and let the next refresh restore it if the server kept it.
			p.status = "delete failed: " + msg.err.Error()
			p.statErr = true
			return p, nil
		}
		p.status = fmt.Sprintf("deleted video #%d", msg.id)
		p.statErr = false
		return p, nil

	case spinner.TickMsg:
		if p.submission == "" {
			return p, nil
		}
		var cmd tea.Cmd
		p.spin, cmd = p.spin.Update(msg)
		return p, cmd
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return p, nil
	}
	switch p.mode {
	case libraryModePrompt:
		return p.updatePrompt(keyMsg)
	case libraryModeConfirmDelete:
		return p.updateConfirmDelete(keyMsg)
	case libraryModeDetail:
		switch keyMsg.String() {
		case "esc", "q", "enter":
			p.mode = libraryModeBrowse
		}
		return p, nil
	default:
		return p.updateBrowse(keyMsg)
	}
}

func (p libraryPanel) updateBrowse(msg tea.KeyMsg) (libraryPanel, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if p.cursor > 0 {
			p.cursor--
		}
	case "down", "j":
		if p.cursor < len(p.videos)-1 {
			p.cursor++
		}
	case "a", "p":
		if p.submission != "" {
			p.status = "one video at a time: wait for the current ingestion to finish"
			p.statErr = true
			return p, nil
		}
		p.mode = libraryModePrompt
		p.prompt.SetValue("")
		p.prompt.Focus()
		p.status = ""
		return p, textinput.Blink
	case "enter":
		if len(p.videos) == 0 {
			return p, nil
		}
		p.detail = p.videos[p.cursor]
		p.mode = libraryModeDetail
	case "d":
		if len(p.videos) == 0 {
			return p, nil
		}
		selected := p.videos[p.cursor]
		p.mode = libraryModeConfirmDelete
		p.confirmID = selected.ID
		p.confirmTitle = selected.Title
	case "r":
		p.loading = true
		return p, p.load()
	}
	return p, nil
}

func (p libraryPanel) updatePrompt(msg tea.KeyMsg) (libraryPanel, tea.Cmd) {
	switch msg.String() {
	case "esc":
		p.mode = libraryModeBrowse
		p.prompt.Blur()
		return p, nil
	case "enter":
		videoURL := strings.TrimSpace(p.prompt.Value())
		if videoURL == "" {
			p.status = "enter a video url first"
			p.statErr = true
			return p, nil
		}
		p.mode = libraryModeBrowse
		p.prompt.Blur()
		p.submitting = true
		p.submission = uuid.NewString()
		p.task = model.ProcessingTask{Status: model.ProcessingQueued, Message: "submitting..."}
		p.status = ""
		p.statErr = false
		return p, tea.Batch(p.spin.Tick, processVideoCmd(p.client, p.submission, videoURL))
	}
	var cmd tea.Cmd
	p.prompt, cmd = p.prompt.Update(msg)
	return p, cmd
}

func (p libraryPanel) updateConfirmDelete(msg tea.KeyMsg) (libraryPanel, tea.Cmd) {
	switch msg.String() {
	case "esc", "n":
		p.mode = libraryModeBrowse
		p.status = "delete cancelled"
		p.statErr = false
		return p, nil
	case "y", "enter":
		id := p.confirmID
		p.mode = libraryModeBrowse
		// Optimistic removal; the delete request rides behind it.
		kept := p.videos[:0]
		for _, v := range p.videos {
			if v.ID != id {
				kept = append(kept, v)
			}
		}
		p.videos = kept
		if p.cursor > len(p.videos)-1 {
			p.cursor = maxInt(len(p.videos)-1, 0)
		}
		return p, deleteVideoCmd(p.client, id)
	}
	return p, nil
}

func (p libraryPanel) view(width, height int) string {
	switch p.mode {
	case libraryModePrompt:
		return p.viewPrompt(width)
	case libraryModeConfirmDelete:
		return p.viewConfirmDelete(width, height)
	case libraryModeDetail:
		return p.viewDetail(width)
	default:
		return p.viewBrowse(width, height)
	}
}

func (p libraryPanel) trackerLine() string {
	if p.submission == "" {
		return ""
	}
	if p.submitting {
		return p.spin.View() + " submitting video..."
	}
	label := p.task.Status
	if p.task.Message != "" {
		label += ": " + p.task.Message
	}
	switch p.task.Status {
	case model.ProcessingCompleted:
		return okStyle.Render("✓ " + label)
	case model.ProcessingError:
		return errorStyle.Render("✗ " + label)
	default:
		pct := ""
		if p.task.Progress > 0 {
			pct = fmt.Sprintf(" %3.0f%%", p.task.Progress)
		}
		return p.spin.View() + " " + label + pct
	}
}

func (p libraryPanel) viewBrowse(width, height int) string {
	hints := mutedStyle.Render("up/down: move | enter: details | a: add video | d: delete | r: refresh")

	lines := make([]string, 0, len(p.videos)+4)
	if tracker := p.trackerLine(); tracker != "" {
		lines = append(lines, tracker, "")
	}
	lines = append(lines, mutedStyle.Render(fmt.Sprintf("%-44s %-18s %8s %6s", "TITLE", "AUTHOR", "LENGTH", "CHUNKS")))
	if p.loading && len(p.videos) == 0 {
		lines = append(lines, mutedStyle.Render("loading library..."))
	}
	if !p.loading && len(p.videos) == 0 {
		lines = append(lines, mutedStyle.Render("Library is empty. Press a to ingest a video."))
	}

	maxRows := clampInt(height-12, 4, 24)
	start, end := listWindow(len(p.videos), p.cursor, maxRows)
	if start > 0 {
		lines = append(lines, mutedStyle.Render("..."))
	}
	for i := start; i < end; i++ {
		v := p.videos[i]
		row := fmt.Sprintf("%-44s %-18s %8s %6d",
			truncateRunes(v.Title, 44),
			truncateRunes(defaultIfEmpty(v.Author, "-"), 18),
			model.FormatDuration(v.Duration),
			v.ChunkCount,
		)
		if i == p.cursor {
			row = selStyle.Width(maxInt(width-6, 10)).Render(truncateRunes(row, maxInt(width-8, 10)))
		}
		lines = append(lines, row)
	}
	if end < len(p.videos) {
		lines = append(lines, mutedStyle.Render("..."))
	}

	body := panelStyle.Width(maxInt(width-2, 40)).Render(strings.Join(lines, "\n"))
	return lipgloss.JoinVertical(lipgloss.Left, hints, body, statusLine(width, p.status, p.statErr))
}

func (p libraryPanel) viewPrompt(width int) string {
	header := titleStyle.Render("Ingest Video")
	body := panelStyle.Width(maxInt(width-2, 40)).Render(
		"Paste a video URL to download, transcribe, and index.\n\n" +
			p.prompt.View() + "\n\n" +
			mutedStyle.Render("enter: submit | esc: cancel"),
	)
	return lipgloss.JoinVertical(lipgloss.Left, header, body)
}

func (p libraryPanel) viewConfirmDelete(width, height int) string {
	text := fmt.Sprintf(
		"Remove '%s' from the library?\n\nThis deletes its transcript chunks on the server.\n\nPress y or Enter to confirm, n or Esc to cancel.",
		truncateRunes(p.confirmTitle, 60),
	)
	boxW := clampInt(width-8, 36, 80)
	boxH := clampInt(height-8, 8, 12)
	panel := panelStyle.Width(boxW).Height(boxH).Render(text)
	return lipgloss.Place(maxInt(width, boxW), maxInt(height-4, boxH), lipgloss.Center, lipgloss.Center, panel)
}

func (p libraryPanel) viewDetail(width int) string {
	v := p.detail
	lines := []string{
		titleStyle.Render(v.Title),
		"",
		kv("Author", defaultIfEmpty(v.Author, "-")),
		kv("Duration", model.FormatDuration(v.Duration)),
		kv("Chunks", fmt.Sprintf("%d", v.ChunkCount)),
		kv("URL", v.URL),
	}
	if thumb := v.Thumbnail(); thumb != "" {
		lines = append(lines, kv("Thumbnail", thumb))
	} else {
		lines = append(lines, kv("Source", model.PlatformGlyph(v.URL)))
	}
	if len(v.TopicTags) > 0 {
		lines = append(lines, kv("Topics", strings.Join(v.TopicTags, ", ")))
	}
	if v.ProcessedAt != "" {
		lines = append(lines, kv("Processed", v.ProcessedAt))
	}
	lines = append(lines, "", mutedStyle.Render("esc: back"))
	body := panelStyle.Width(maxInt(width-2, 40)).Render(wrapLines(lines, maxInt(width-6, 30)))
	return body
}

func wrapLines(lines []string, width int) string {
	out := make([]string, 0, len(lines))
	for _, l := range lines {
		out = append(out, wrapOrTrim(l, width))
	}
	return strings.Join(out, "\n")
}
