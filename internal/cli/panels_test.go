package cli

import (
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"warroom/internal/model"
)

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func keyEnter() tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyEnter}
}

func keyEsc() tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyEscape}
}

func TestProductsPanel_SaveFailureKeepsFormOpen(t *testing.T) {
	p := newProductsPanel(nil)

	p, _ = p.update(keyRunes("n"))
	if p.mode != productsModeForm {
		t.Fatalf("expected form mode after n, got %v", p.mode)
	}
	p.form.Saving = true

	p, cmd := p.update(productSavedMsg{err: errors.New("api status 422: sku already exists")})
	if cmd != nil {
		t.Fatalf("expected no refetch after failed save")
	}
	if p.mode != productsModeForm {
		t.Fatalf("failed save must keep the form open, got mode %v", p.mode)
	}
	if p.form == nil || p.form.Error == "" {
		t.Fatalf("expected form error to be populated")
	}
	if p.form.Saving {
		t.Fatalf("expected saving flag cleared so the form is editable again")
	}
}

func TestProductsPanel_SaveSuccessClosesFormAndRefetches(t *testing.T) {
	p := newProductsPanel(nil)
	p, _ = p.update(keyRunes("n"))

	p, cmd := p.update(productSavedMsg{product: model.Product{ID: 7, Name: "Widget"}, created: true})
	if p.mode != productsModeBrowse {
		t.Fatalf("expected browse mode after successful save, got %v", p.mode)
	}
	if p.form != nil {
		t.Fatalf("expected form to be discarded")
	}
	if cmd == nil {
		t.Fatalf("expected a list refetch command after save")
	}
}

func TestProductForm_Validation(t *testing.T) {
	form := newProductForm(nil, 80)
	setField := func(key, value string) {
		for i := range form.Fields {
			if form.Fields[i].Key == key {
				form.Fields[i].Value = value
			}
		}
	}

	setField("sku", "W-1")
	if _, err := form.toInput(); err == nil {
		t.Fatalf("expected missing name to fail")
	}

	setField("name", "Widget")
	setField("price", "abc")
	if _, err := form.toInput(); err == nil {
		t.Fatalf("expected non-numeric price to fail")
	}

	setField("price", "19.99")
	setField("quantity", "-3")
	if _, err := form.toInput(); err == nil {
		t.Fatalf("expected negative quantity to fail")
	}

	setField("quantity", "5")
	in, err := form.toInput()
	if err != nil {
		t.Fatalf("expected valid input, got %v", err)
	}
	if in.Name != "Widget" || in.SKU != "W-1" || in.Price != 19.99 || in.Quantity != 5 {
		t.Fatalf("unexpected input: %+v", in)
	}
	if in.Description != nil {
		t.Fatalf("empty description should serialize as null, got %q", *in.Description)
	}
}

func TestProductsPanel_EditPrefillsForm(t *testing.T) {
	p := newProductsPanel(nil)
	p, _ = p.update(productsLoadedMsg{products: []model.Product{
		{ID: 3, Name: "Gadget", SKU: "G-1", Price: "12.50", Quantity: 4},
	}})

	p, _ = p.update(keyRunes("e"))
	if p.mode != productsModeForm {
		t.Fatalf("expected form mode, got %v", p.mode)
	}
	if p.form.ID != 3 {
		t.Fatalf("expected form bound to product 3, got %d", p.form.ID)
	}
	in, err := p.form.toInput()
	if err != nil {
		t.Fatalf("prefilled form should validate: %v", err)
	}
	if in.Price != 12.50 || in.Quantity != 4 {
		t.Fatalf("unexpected prefill: %+v", in)
	}
}

func boardFixture() kanbanPanel {
	p := newKanbanPanel(nil)
	p, _ = p.update(tasksLoadedMsg{tasks: []model.Task{
		{ID: "t1", Title: "write brief", Status: model.TaskStatusBacklog},
		{ID: "t2", Title: "review copy", Status: model.TaskStatusTodo},
		{ID: "t3", Title: "ship page", Status: model.TaskStatusInProgress},
	}})
	return p
}

func TestKanbanPanel_GrabMoveDrop(t *testing.T) {
	p := boardFixture()

	p, _ = p.update(keyEnter())
	if p.grabbed == nil || p.grabbed.ID != "t1" {
		t.Fatalf("expected t1 grabbed, got %+v", p.grabbed)
	}

	p, _ = p.update(keyRunes("l"))
	if p.currentColumn() != model.TaskStatusTodo {
		t.Fatalf("expected cursor in todo, got %s", p.currentColumn())
	}

	p, cmd := p.update(keyEnter())
	if cmd == nil {
		t.Fatalf("expected a move command on drop")
	}
	if !p.moving {
		t.Fatalf("expected panel in moving state until the server replies")
	}
}

func TestKanbanPanel_DropIntoSourceColumnIsNoop(t *testing.T) {
	p := boardFixture()

	p, _ = p.update(keyEnter())
	p, cmd := p.update(keyEnter())
	if cmd != nil {
		t.Fatalf("dropping into the source column must not hit the server")
	}
	if p.grabbed != nil {
		t.Fatalf("expected grab released")
	}
	if p.moving {
		t.Fatalf("expected no in-flight move")
	}
}

func TestKanbanPanel_MoveResultRefetchesEitherWay(t *testing.T) {
	p := boardFixture()
	p.moving = true

	p, cmd := p.update(taskMovedMsg{id: "t1", to: model.TaskStatusDone})
	if cmd == nil {
		t.Fatalf("expected a refetch after a successful move")
	}
	if p.moving || p.grabbed != nil {
		t.Fatalf("expected move state cleared")
	}

	p.moving = true
	p, cmd = p.update(taskMovedMsg{id: "t1", to: model.TaskStatusDone, err: errors.New("api status 500")})
	if cmd == nil {
		t.Fatalf("expected a refetch after a failed move to restore board truth")
	}
	if !p.statErr {
		t.Fatalf("expected error surfaced in status line")
	}
}

func TestKanbanPanel_EscCancelsGrab(t *testing.T) {
	p := boardFixture()
	p, _ = p.update(keyEnter())
	p, _ = p.update(keyEsc())
	if p.grabbed != nil {
		t.Fatalf("expected esc to release the grab")
	}
}

func TestLibraryPanel_PollUntilTerminalThenClear(t *testing.T) {
	p := newLibraryPanel(nil, time.Second)
	p.submission = "sub-1"
	p.task = model.ProcessingTask{TaskID: "t-9", Status: model.ProcessingDownloading}

	p, cmd := p.update(pollResultMsg{submission: "sub-1", task: model.ProcessingTask{TaskID: "t-9", Status: model.ProcessingTranscribing, Progress: 40}})
	if cmd == nil {
		t.Fatalf("non-terminal poll result must schedule the next tick")
	}
	if p.task.Status != model.ProcessingTranscribing {
		t.Fatalf("expected tracker updated, got %s", p.task.Status)
	}

	p, cmd = p.update(pollResultMsg{submission: "sub-1", task: model.ProcessingTask{TaskID: "t-9", Status: model.ProcessingCompleted, Message: "done"}})
	if cmd == nil {
		t.Fatalf("terminal result must schedule the clear")
	}
	if p.task.Status != model.ProcessingCompleted {
		t.Fatalf("expected completed tracker, got %s", p.task.Status)
	}

	p, cmd = p.update(processClearMsg{submission: "sub-1"})
	if p.submission != "" || p.task.TaskID != "" {
		t.Fatalf("expected tracker cleared")
	}
	if cmd == nil {
		t.Fatalf("clearing the tracker must refetch the library")
	}
}

func TestLibraryPanel_StaleSubmissionIgnored(t *testing.T) {
	p := newLibraryPanel(nil, time.Second)
	p.submission = "sub-2"
	p.task = model.ProcessingTask{TaskID: "t-1", Status: model.ProcessingQueued}

	p, cmd := p.update(pollTickMsg{submission: "sub-old"})
	if cmd != nil {
		t.Fatalf("stale tick must not trigger a poll")
	}

	p, cmd = p.update(pollResultMsg{submission: "sub-old", task: model.ProcessingTask{Status: model.ProcessingError}})
	if cmd != nil {
		t.Fatalf("stale poll result must not schedule anything")
	}
	if p.task.Status != model.ProcessingQueued {
		t.Fatalf("stale result must not touch the tracker, got %s", p.task.Status)
	}

	p, cmd = p.update(processClearMsg{submission: "sub-old"})
	if cmd != nil || p.submission != "sub-2" {
		t.Fatalf("stale clear must not reset the tracker")
	}
}

func TestLibraryPanel_TickAfterTerminalIsInert(t *testing.T) {
	p := newLibraryPanel(nil, time.Second)
	p.submission = "sub-3"
	p.task = model.ProcessingTask{TaskID: "t-2", Status: model.ProcessingCompleted}

	p, cmd := p.update(pollTickMsg{submission: "sub-3"})
	if cmd != nil {
		t.Fatalf("a tick landing after the terminal result must not poll again")
	}
	if p.task.Status != model.ProcessingCompleted {
		t.Fatalf("tracker must stay terminal")
	}
}

func TestLibraryPanel_OptimisticDelete(t *testing.T) {
	p := newLibraryPanel(nil, time.Second)
	p, _ = p.update(videosLoadedMsg{videos: []model.Video{
		{ID: 1, Title: "intro"},
		{ID: 2, Title: "deep dive"},
	}})
	p.cursor = 1

	p, _ = p.update(keyRunes("d"))
	if p.mode != libraryModeConfirmDelete || p.confirmID != 2 {
		t.Fatalf("expected confirm state for video 2, got mode=%v id=%d", p.mode, p.confirmID)
	}

	p, cmd := p.update(keyRunes("y"))
	if cmd == nil {
		t.Fatalf("expected delete command issued")
	}
	if len(p.videos) != 1 || p.videos[0].ID != 1 {
		t.Fatalf("expected video 2 removed before the server replies, got %+v", p.videos)
	}

	// A late failure is reported but the row is not restored until the next
	// refresh.
	p, _ = p.update(videoDeletedMsg{id: 2, err: errors.New("api status 500")})
	if !p.statErr {
		t.Fatalf("expected delete failure surfaced")
	}
	if len(p.videos) != 1 {
		t.Fatalf("expected no local rollback, got %d videos", len(p.videos))
	}
}

func TestLibraryPanel_SecondSubmitBlockedWhileInFlight(t *testing.T) {
	p := newLibraryPanel(nil, time.Second)
	p.submission = "sub-4"
	p.task = model.ProcessingTask{TaskID: "t-3", Status: model.ProcessingEmbedding}

	p, _ = p.update(keyRunes("a"))
	if p.mode != libraryModeBrowse {
		t.Fatalf("expected the prompt refused while an ingestion is in flight")
	}
	if !p.statErr {
		t.Fatalf("expected a one-at-a-time notice")
	}
}

func TestDashModel_TabCyclingAndCapture(t *testing.T) {
	m := dashModel{}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(dashModel)
	if m.tab != tabBoard {
		t.Fatalf("expected board tab after tab key, got %v", m.tab)
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	m = next.(dashModel)
	if m.tab != tabProducts {
		t.Fatalf("expected products tab after shift+tab, got %v", m.tab)
	}

	// An open form owns the tab key.
	m.products, _ = m.products.update(keyRunes("n"))
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(dashModel)
	if m.tab != tabProducts {
		t.Fatalf("tab must stay on products while the form captures input")
	}
}
