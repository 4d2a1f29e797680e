package cli

import (
	"errors"
	"flag"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"warroom/internal/config"
)

type dashTab int

const (
	tabProducts dashTab = iota
	tabBoard
	tabLibrary
)

var dashTabTitles = []string{"Products", "Board", "Library"}

type dashModel struct {
	tab      dashTab
	products productsPanel
	board    kanbanPanel
	library  libraryPanel

	width    int
	height   int
	fatalErr error
}

func runDash(args []string) error {
	fs := flag.NewFlagSet("dash", flag.ContinueOnError)
	configPath := fs.String("config", config.DefaultSettingsPath, "settings file path")
	fs.SetOutput(flag.CommandLine.Output())
	if err := fs.Parse(args); err != nil {
		return err
	}
	if !stdinIsTTY() {
		return errors.New("dash requires an interactive terminal (TTY)")
	}

	client, settings, err := newAPIClient(*configPath)
	if err != nil {
		return err
	}

	m := dashModel{
		products: newProductsPanel(client),
		board:    newKanbanPanel(client),
		library:  newLibraryPanel(client, settings.PollInterval()),
	}
	p := tea.NewProgram(m, tea.WithAltScreen())
	finalModel, err := p.Run()
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "tty") {
			return errors.New("dash requires an interactive terminal (TTY)")
		}
		return err
	}
	if fm, ok := finalModel.(dashModel); ok {
		return fm.fatalErr
	}
	return nil
}

func (m dashModel) Init() tea.Cmd {
	return tea.Batch(m.products.load(), m.board.load(), m.library.load())
}

// activeCaptures reports whether the focused panel owns raw key input (an
// open form or prompt), which suspends global tab/quit keys.
func (m dashModel) activeCaptures() bool {
	switch m.tab {
	case tabProducts:
		return m.products.capturesInput()
	case tabBoard:
		return m.board.capturesInput()
	default:
		return m.library.capturesInput()
	}
}

func (m dashModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.products.setSize(msg.Width, msg.Height)
		m.board.setSize(msg.Width, msg.Height)
		m.library.setSize(msg.Width, msg.Height)
		return m, nil
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if !m.activeCaptures() {
			switch msg.String() {
			case "q":
				return m, tea.Quit
			case "tab":
				m.tab = (m.tab + 1) % dashTab(len(dashTabTitles))
				return m, nil
			case "shift+tab":
				m.tab = (m.tab + dashTab(len(dashTabTitles)) - 1) % dashTab(len(dashTabTitles))
				return m, nil
			}
		}
		var cmd tea.Cmd
		switch m.tab {
		case tabProducts:
			m.products, cmd = m.products.update(msg)
		case tabBoard:
			m.board, cmd = m.board.update(msg)
		default:
			m.library, cmd = m.library.update(msg)
		}
		return m, cmd
	}

	// Async results and ticks are routed to every panel; each panel ignores
	// message types it does not own (panels are independent leaves).
	cmds := make([]tea.Cmd, 0, 3)
	var cmd tea.Cmd
	m.products, cmd = m.products.update(msg)
	cmds = append(cmds, cmd)
	m.board, cmd = m.board.update(msg)
	cmds = append(cmds, cmd)
	m.library, cmd = m.library.update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

func (m dashModel) View() string {
	if m.fatalErr != nil {
		return errorStyle.Render("fatal: " + m.fatalErr.Error())
	}
	width := m.width
	if width <= 0 {
		width = 100
	}
	height := m.height
	if height <= 0 {
		height = 30
	}

	tabs := make([]string, 0, len(dashTabTitles))
	for i, title := range dashTabTitles {
		if dashTab(i) == m.tab {
			tabs = append(tabs, activeTab.Render(title))
			continue
		}
		tabs = append(tabs, tabStyle.Render(title))
	}
	header := titleStyle.Render("warroom") + "  " + lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
	hints := mutedStyle.Render("tab/shift+tab: switch panel | q: quit")

	var body string
	switch m.tab {
	case tabProducts:
		body = m.products.view(width, height)
	case tabBoard:
		body = m.board.view(width, height)
	default:
		body = m.library.view(width, height)
	}
	return lipgloss.JoinVertical(lipgloss.Left, header, hints, body)
}
