package main

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/jwebster45206/codescape/pkg/game"
	"github.com/muesli/reflow/wordwrap"
)

const (
	PlaceHolderText = "Type your command..."
	maxQuickActions = 9
)

// Status line texts, matching what the editor panel showed.
const (
	statusWaiting     = "Waiting for initialization"
	statusInitialized = "Player initialized - Ready for commands"
	statusProcessing  = "Processing command..."
	statusInProgress  = "Adventure in progress..."
)

// copyToClipboard is swapped out in tests.
var copyToClipboard = clipboard.WriteAll

// ConsoleUI is the BubbleTea model for the CODESCAPE panel.
// https://github.com/charmbracelet/bubbletea
type ConsoleUI struct {
	config    *ConsoleConfig
	client    *http.Client
	session   *game.Session
	viewport  viewport.Model
	textarea  textarea.Model
	ready     bool
	width     int
	height    int
	loading   bool
	status    string
	notice    string
	entries   []transcriptEntry
	actions   []string
	actionIdx int

	lastNarrative string

	showQuitModal bool
}

type transcriptEntry struct {
	command   string
	narrative string
	isError   bool
}

type panelResponseMsg struct {
	command string
	message *PanelMessage
	err     error
}

var (
	transcriptPanelStyle = lipgloss.NewStyle().
				PaddingTop(1).
				PaddingLeft(2)

	sidePanelStyle = lipgloss.NewStyle().
			PaddingTop(1).
			PaddingRight(2)

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("46")). // terminal green
			Bold(true)

	commandStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("51")) // cyan

	narrativeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("46"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")) // red

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("226")) // yellow

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")) // dark grey

	actionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("46")).
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color("46")).
			PaddingLeft(1)

	selectedActionStyle = actionStyle.
				Foreground(lipgloss.Color("0")).
				Background(lipgloss.Color("46"))

	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("46")).
			Padding(1, 2).
			Background(lipgloss.Color("235")).
			Foreground(lipgloss.Color("255"))

	separatorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))
)

func NewConsoleUI(cfg *ConsoleConfig, client *http.Client, session *game.Session) ConsoleUI {
	ta := textarea.New()
	ta.Placeholder = PlaceHolderText
	ta.Focus()
	ta.Prompt = promptStyle.Render("> ")
	ta.CharLimit = 200
	ta.SetWidth(50)
	ta.SetHeight(1)
	ta.ShowLineNumbers = false

	vp := viewport.New(50, 20)
	vp.MouseWheelEnabled = true

	status := statusWaiting
	if session.Initialized {
		status = statusInitialized
	}

	return ConsoleUI{
		config:   cfg,
		client:   client,
		session:  session,
		textarea: ta,
		viewport: vp,
		status:   status,
	}
}

func writeWelcome(width int) string {
	var content strings.Builder
	content.WriteString(titleStyle.Render("🌐 CODESCAPE") + "\n\n")
	content.WriteString(wordwrap.String("A cyberpunk adventure through the network. Initialize your player profile to begin.", width) + "\n\n")
	content.WriteString(promptStyle.Render("Press Enter or type /init to initialize your player profile.") + "\n")
	content.WriteString(promptStyle.Render("Type /help for console commands.") + "\n")
	return content.String()
}

// writeTranscript rebuilds the transcript for the current viewport width.
func (m *ConsoleUI) writeTranscript() {
	width := m.viewport.Width - 2
	if width < 20 {
		width = 20
	}

	if len(m.entries) == 0 {
		m.viewport.SetContent(writeWelcome(width))
		return
	}

	var content strings.Builder
	content.WriteString(titleStyle.Render("🌐 CODESCAPE") + "\n\n")
	for _, e := range m.entries {
		content.WriteString(formatEntry(e, width))
		content.WriteString("\n\n")
	}
	if m.loading {
		content.WriteString(statusStyle.Render("Processing..."))
	}

	m.viewport.SetContent(content.String())
	m.viewport.GotoBottom()
}

func formatEntry(e transcriptEntry, width int) string {
	var b strings.Builder
	b.WriteString(commandStyle.Render("> "+e.command) + "\n")

	style := narrativeStyle
	if e.isError {
		style = errorStyle
	}
	for _, line := range strings.Split(wordwrap.String(strings.TrimSpace(e.narrative), width), "\n") {
		b.WriteString(style.Render(line) + "\n")
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func (m ConsoleUI) Init() tea.Cmd {
	return textarea.Blink
}

func (m ConsoleUI) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.showQuitModal {
		return m.updateQuitModal(msg)
	}

	var (
		tiCmd tea.Cmd
		vpCmd tea.Cmd
	)

	switch msg := msg.(type) {
	case tea.MouseMsg:
		m.viewport, vpCmd = m.viewport.Update(msg)
		return m, vpCmd

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()
		m.ready = true
		m.writeTranscript()

	case tea.KeyMsg:
		if n, ok := quickActionKey(msg); ok {
			if m.loading || n > len(m.actions) {
				return m, nil
			}
			return m.submit(m.actions[n-1])
		}

		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.showQuitModal = true
			return m, nil
		case tea.KeyTab:
			m.cycleAction()
			return m, nil
		case tea.KeyCtrlY:
			m.copyLastNarrative()
			return m, nil
		case tea.KeyEnter:
			if m.loading {
				return m, nil
			}
			return m.submit(m.textarea.Value())
		}

	case panelResponseMsg:
		m.loading = false
		m.handleResponse(msg)
		m.writeTranscript()
		return m, nil
	}

	m.textarea, tiCmd = m.textarea.Update(msg)
	m.viewport, vpCmd = m.viewport.Update(msg)

	return m, tea.Batch(tiCmd, vpCmd)
}

func (m *ConsoleUI) layout() {
	transcriptWidth := int(float64(m.width)*0.7) - 2
	m.viewport.Width = transcriptWidth - 2
	m.viewport.Height = m.height - 5
	m.textarea.SetWidth(transcriptWidth - 2)
}

// quickActionKey reports which quick action (1-9) an Alt+digit key selects.
func quickActionKey(msg tea.KeyMsg) (int, bool) {
	if !msg.Alt || msg.Type != tea.KeyRunes || len(msg.Runes) != 1 {
		return 0, false
	}
	r := msg.Runes[0]
	if r < '1' || r > '9' {
		return 0, false
	}
	return int(r - '0'), true
}

func (m *ConsoleUI) cycleAction() {
	if len(m.actions) == 0 {
		return
	}
	m.textarea.SetValue(m.actions[m.actionIdx%len(m.actions)])
	m.actionIdx = (m.actionIdx + 1) % len(m.actions)
}

func (m *ConsoleUI) copyLastNarrative() {
	if m.lastNarrative == "" {
		m.notice = "Nothing to copy yet"
		return
	}
	if err := copyToClipboard(strings.TrimSpace(m.lastNarrative)); err != nil {
		m.notice = "Clipboard unavailable: " + err.Error()
		return
	}
	m.notice = "Narrative copied to clipboard"
}

func (m ConsoleUI) submit(input string) (tea.Model, tea.Cmd) {
	input = strings.TrimSpace(input)
	m.notice = ""

	switch strings.ToLower(input) {
	case "/init":
		return m.startRequest("Initialize Player Profile", m.initialize())
	case "":
		if !m.session.Initialized && len(m.entries) == 0 {
			return m.startRequest("Initialize Player Profile", m.initialize())
		}
		return m, nil
	case "/help":
		m.entries = append(m.entries, transcriptEntry{command: "/help", narrative: consoleHelp})
		m.textarea.Reset()
		m.writeTranscript()
		return m, nil
	case "/quit":
		m.textarea.Reset()
		m.showQuitModal = true
		return m, nil
	}

	return m.startRequest(input, m.sendAction(input))
}

func (m ConsoleUI) startRequest(label string, cmd tea.Cmd) (tea.Model, tea.Cmd) {
	m.textarea.Reset()
	m.loading = true
	m.status = statusProcessing
	m.entries = append(m.entries, transcriptEntry{command: label})
	m.writeTranscript()
	return m, cmd
}

func (m *ConsoleUI) handleResponse(msg panelResponseMsg) {
	last := len(m.entries) - 1
	if last < 0 {
		m.entries = append(m.entries, transcriptEntry{command: msg.command})
		last = 0
	}

	if msg.err != nil {
		m.entries[last].narrative = "Error: " + msg.err.Error()
		m.entries[last].isError = true
		m.status = "Connection error"
		return
	}

	resp := msg.message
	m.entries[last].narrative = resp.Narrative
	m.entries[last].isError = resp.Type == string(game.TypeError)
	m.lastNarrative = resp.Narrative

	if resp.Type == string(game.TypePlayerInitialized) {
		m.session.Initialized = true
		m.status = statusInitialized
	} else {
		m.status = statusInProgress
	}

	if suggestions := resp.Suggestions(); len(suggestions) > 0 {
		m.actions = suggestions
		if len(m.actions) > maxQuickActions {
			m.actions = m.actions[:maxQuickActions]
		}
		m.actionIdx = 0
	}
}

func (m ConsoleUI) initialize() tea.Cmd {
	return func() tea.Msg {
		resp, err := initializePlayer(m.client, m.config.APIBaseURL, m.session.ID)
		return panelResponseMsg{command: "Initialize Player Profile", message: resp, err: err}
	}
}

func (m ConsoleUI) sendAction(action string) tea.Cmd {
	return func() tea.Msg {
		resp, err := sendAction(m.client, m.config.APIBaseURL, m.session.ID, action)
		return panelResponseMsg{command: action, message: resp, err: err}
	}
}

const consoleHelp = `Console commands:
/init   - Initialize your player profile
/help   - Show this help
/quit   - Leave CODESCAPE

Keys:
Tab     - Cycle through quick actions
Alt+1-9 - Run a quick action
Ctrl+Y  - Copy the last narrative
Esc     - Quit

Type 'help' for in-game commands.`

func (m ConsoleUI) updateQuitModal(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc, tea.KeyEnter:
			return m, tea.Quit
		default:
			switch msg.String() {
			case "y", "Y":
				return m, tea.Quit
			case "n", "N":
				m.showQuitModal = false
				m.textarea.Focus()
				return m, textarea.Blink
			}
		}
	}

	return m, nil
}

func (m ConsoleUI) renderQuitModal() string {
	var content strings.Builder
	content.WriteString(titleStyle.Render("Disconnect?"))
	content.WriteString("\n\n")
	content.WriteString("Are you sure you want to leave CODESCAPE?")
	content.WriteString("\n\n")
	content.WriteString(promptStyle.Render("Press Y to quit, N to continue"))

	modal := modalStyle.Width(50).Render(content.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal, lipgloss.WithWhitespaceChars(" "))
}

func (m ConsoleUI) renderSidePanel(width int) string {
	var content strings.Builder
	content.WriteString(titleStyle.Render("SESSION") + "\n")
	content.WriteString(m.session.ID.String()[:8] + "...\n\n")

	content.WriteString(titleStyle.Render("STATUS") + "\n")
	content.WriteString(statusStyle.Render(wordwrap.String(m.status, width)) + "\n\n")

	content.WriteString(titleStyle.Render("QUICK ACTIONS") + "\n")
	if len(m.actions) == 0 {
		content.WriteString(promptStyle.Render("None yet") + "\n")
	}
	selected := (m.actionIdx + len(m.actions) - 1) % max(len(m.actions), 1)
	for i, action := range m.actions {
		style := actionStyle
		if m.textarea.Value() == action && i == selected {
			style = selectedActionStyle
		}
		content.WriteString(style.Render(fmt.Sprintf("%d %s", i+1, action)) + "\n")
	}

	if m.notice != "" {
		content.WriteString("\n" + promptStyle.Render(wordwrap.String(m.notice, width)) + "\n")
	}
	return content.String()
}

func (m ConsoleUI) View() string {
	if m.showQuitModal {
		if m.width == 0 || m.height == 0 {
			return "Quit? (y/n)"
		}
		return m.renderQuitModal()
	}

	if !m.ready {
		return "\n  Connecting to the network..."
	}

	transcriptWidth := int(float64(m.width)*0.7) - 2
	sideWidth := m.width - transcriptWidth - 4

	transcript := transcriptPanelStyle.Width(transcriptWidth).Height(m.height - 1).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			m.viewport.View(),
			separatorStyle.Render(strings.Repeat("─", max(transcriptWidth-4, 1))),
			m.textarea.View(),
		),
	)

	side := sidePanelStyle.Width(sideWidth).Height(m.height - 1).Render(m.renderSidePanel(sideWidth))

	return lipgloss.JoinHorizontal(lipgloss.Top, transcript, side)
}
