// Package ui is the Bubble Tea front end shared by the playground and the
// lesson view: an editor, a terminal panel and, for lessons, a content pane.
package ui

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/asynkron/codexterm/internal/auth"
	"github.com/asynkron/codexterm/internal/events"
	"github.com/asynkron/codexterm/internal/execclient"
	"github.com/asynkron/codexterm/internal/lessons"
	"github.com/asynkron/codexterm/internal/logx"
	"github.com/asynkron/codexterm/internal/session"
	"github.com/asynkron/codexterm/internal/terminal"
)

// Dispatcher runs an accepted request in the background and reports the
// result as an events.RunSettled on the model's event channel.
type Dispatcher interface {
	Start(ctx context.Context, sessionID string, req execclient.Request)
}

// Options wires a Model to its collaborators. Navigator is nil for the
// playground.
type Options struct {
	Context    context.Context
	Session    *session.Session
	Dispatcher Dispatcher
	Auth       *auth.State
	Navigator  *lessons.Navigator
	Events     <-chan events.Event
}

// Model owns the Bubble Tea state for one session view.
type Model struct {
	ctx        context.Context
	session    *session.Session
	dispatcher Dispatcher
	auth       *auth.State
	navigator  *lessons.Navigator
	events     <-chan events.Event

	width   int
	height  int
	status  []string
	editor  textarea.Model
	term    viewport.Model
	lesson  viewport.Model
	spinner spinner.Model
	help    help.Model
	keys    keyMap
	styles  theme
}

// New returns a ready-to-run UI model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	if opts.Auth == nil {
		opts.Auth = auth.NewState(false)
	}

	styles := defaultTheme()

	editor := textarea.New()
	editor.Prompt = ""
	editor.ShowLineNumbers = true
	editor.CharLimit = 0
	editor.MaxHeight = 0
	editor.Placeholder = "Write your Python code here"
	editor.SetValue(opts.Session.Buffer.Code())
	editor.Focus()

	spin := spinner.New()
	spin.Spinner = spinner.MiniDot
	spin.Style = lipgloss.NewStyle().Foreground(styles.running)

	m := Model{
		ctx:        ctx,
		session:    opts.Session,
		dispatcher: opts.Dispatcher,
		auth:       opts.Auth,
		navigator:  opts.Navigator,
		events:     opts.Events,
		width:      80,
		height:     24,
		editor:     editor,
		term:       viewport.New(80, 8),
		lesson:     viewport.New(40, 20),
		spinner:    spin,
		help:       help.New(),
		keys:       defaultKeys(),
		styles:     styles,
	}
	m.resize()
	m.refreshTerminal()
	m.refreshLesson()
	m.refreshKeys()
	return m
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(textarea.Blink, waitForEvent(m.events))
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		m.refreshLesson()
		return m, nil
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Run):
			return m, m.submit()
		case key.Matches(msg, m.keys.ToggleTerminal):
			m.session.Controller.ToggleTerminal()
			m.resize()
			return m, nil
		case key.Matches(msg, m.keys.NextLesson):
			m.navigator.Next()
			m.refreshLesson()
			m.refreshKeys()
			return m, nil
		case key.Matches(msg, m.keys.PrevLesson):
			m.navigator.Previous()
			m.refreshLesson()
			m.refreshKeys()
			return m, nil
		case key.Matches(msg, m.keys.ScrollUp):
			m.term.LineUp(m.term.Height)
			return m, nil
		case key.Matches(msg, m.keys.ScrollDown):
			m.term.LineDown(m.term.Height)
			return m, nil
		case key.Matches(msg, m.keys.SignOut):
			m.auth.Set(false)
			m.pushStatus("Signed out")
			m.refreshKeys()
			return m, nil
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			m.resize()
			return m, nil
		}
		var cmd tea.Cmd
		m.editor, cmd = m.editor.Update(msg)
		m.session.Buffer.SetCode(m.editor.Value())
		cmds = append(cmds, cmd)
	case spinner.TickMsg:
		if !m.session.Controller.Executing() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case events.Event:
		m.handleEvent(msg)
		return m, waitForEvent(m.events)
	default:
		var cmd tea.Cmd
		m.editor, cmd = m.editor.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	header := m.renderHeader()
	body := m.renderEditorColumn()
	if m.navigator != nil {
		body = lipgloss.JoinHorizontal(lipgloss.Top, m.renderLesson(), body)
	}
	status := m.renderStatus()
	return lipgloss.JoinVertical(lipgloss.Left, header, body, status, m.help.View(m.keys))
}

// submit snapshots the buffer and hands the request to the dispatcher. While
// a run is in flight the run binding is disabled, so this is only reached
// from Idle; the controller refuses it anyway if not.
func (m *Model) submit() tea.Cmd {
	req, ok := m.session.Submit()
	if !ok {
		return nil
	}
	logx.WithSession(logx.Ctx(m.ctx), m.session.ID).Debug("run submitted", "run", req.ID())
	if m.dispatcher != nil {
		m.dispatcher.Start(m.ctx, m.session.ID, req)
	}
	m.refreshTerminal()
	m.refreshKeys()
	m.resize()
	return m.spinner.Tick
}

func (m *Model) handleEvent(ev events.Event) {
	switch e := ev.(type) {
	case events.RunStarted:
		if e.SessionID == m.session.ID {
			m.pushStatus("Running...")
		}
	case events.RunSettled:
		if e.SessionID != m.session.ID {
			return
		}
		if !m.session.Controller.Resolve(e.RunID, e.Result) {
			return
		}
		m.pushStatus(settledStatus(e.Result))
		m.refreshTerminal()
		m.refreshKeys()
	case events.StatusMessage:
		m.pushStatus(e.Message)
	}
}

func settledStatus(result execclient.Result) string {
	switch result.(type) {
	case execclient.Success:
		return "Run finished"
	case execclient.BackendError:
		return "Run failed"
	case execclient.TransportError:
		return "Execution service unavailable"
	default:
		return "Run settled"
	}
}

func (m *Model) pushStatus(message string) {
	const limit = 20
	m.status = append(m.status, message)
	if len(m.status) > limit {
		m.status = m.status[len(m.status)-limit:]
	}
}

func (m *Model) refreshKeys() {
	m.keys.Run.SetEnabled(!m.session.Controller.Executing())
	m.keys.NextLesson.SetEnabled(m.navigator != nil && !m.navigator.AtEnd())
	m.keys.PrevLesson.SetEnabled(m.navigator != nil && !m.navigator.AtStart())
	m.keys.SignOut.SetEnabled(m.auth.LoggedIn())
}

func (m *Model) resize() {
	if m.width == 0 || m.height == 0 {
		return
	}
	helpHeight := lipgloss.Height(m.help.View(m.keys))
	bodyHeight := m.height - 2 - helpHeight
	if bodyHeight < 8 {
		bodyHeight = 8
	}

	columnWidth := m.width
	if m.navigator != nil {
		lessonWidth := m.width * 2 / 5
		if lessonWidth < 20 {
			lessonWidth = 20
		}
		m.lesson.Width = lessonWidth - 4
		m.lesson.Height = bodyHeight - 3
		columnWidth = m.width - lessonWidth
	}
	if columnWidth < 24 {
		columnWidth = 24
	}

	editorHeight := bodyHeight - 3
	if m.session.Controller.TerminalVisible() {
		termHeight := bodyHeight / 2
		if termHeight < 3 {
			termHeight = 3
		}
		m.term.Width = columnWidth - 4
		m.term.Height = termHeight - 3
		editorHeight = bodyHeight - termHeight - 3
	}
	if editorHeight < 3 {
		editorHeight = 3
	}
	m.editor.SetWidth(columnWidth - 2)
	m.editor.SetHeight(editorHeight)
}

func (m *Model) refreshTerminal() {
	m.term.SetContent(m.renderEntries(m.session.Controller.Entries()))
	m.term.GotoBottom()
}

func (m *Model) refreshLesson() {
	if m.navigator == nil {
		return
	}
	current := m.navigator.Current()
	source := fmt.Sprintf("# %s\n\n%s\n", current.Title, current.Content)
	m.lesson.SetContent(renderMarkdown(source, m.lesson.Width))
	m.lesson.GotoTop()
}

func renderMarkdown(source string, width int) string {
	if width < 10 {
		width = 10
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return source
	}
	out, err := r.Render(source)
	if err != nil {
		return source
	}
	return strings.TrimRight(out, "\n")
}

func (m Model) renderEntries(entries []terminal.Entry) string {
	if len(entries) == 0 {
		return lipgloss.NewStyle().Foreground(m.styles.dim).Render("Press ctrl+r to run your code.")
	}
	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		style := lipgloss.NewStyle()
		switch e.Kind {
		case terminal.KindSystem:
			style = style.Foreground(m.styles.system).Bold(true)
		case terminal.KindError:
			style = style.Foreground(m.styles.error)
		default:
			style = style.Foreground(m.styles.output)
		}
		lines = append(lines, style.Render(e.Content))
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderHeader() string {
	name := lipgloss.NewStyle().Bold(true).Foreground(m.styles.header).Render("CODEXTERM")
	mode := lipgloss.NewStyle().Foreground(m.styles.accent).Render(title(string(m.session.Kind)))
	if m.navigator != nil {
		total := m.navigator.Len()
		if total == 0 {
			total = 1
		}
		mode = lipgloss.NewStyle().Foreground(m.styles.accent).Render(fmt.Sprintf("Lesson %d/%d", m.navigator.Index()+1, total))
	}
	id := lipgloss.NewStyle().Foreground(m.styles.dim).Render(m.session.ID)

	account := lipgloss.NewStyle().Foreground(m.styles.dim).Render("signed out")
	if m.auth.LoggedIn() {
		account = lipgloss.NewStyle().Foreground(m.styles.running).Render("signed in")
	}

	parts := []string{name, mode, id, account}
	if m.session.Controller.Executing() {
		parts = append(parts, m.spinner.View()+lipgloss.NewStyle().Foreground(m.styles.running).Render(" running"))
	}
	return strings.Join(parts, "  ")
}

func (m Model) renderLesson() string {
	header := lipgloss.NewStyle().Bold(true).Render(m.navigator.Current().Title)
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.styles.border).
		Padding(0, 1).
		Width(m.lesson.Width + 2)
	content := lipgloss.NewStyle().Height(m.lesson.Height).Render(m.lesson.View())
	return box.Render(header + "\n" + content)
}

func (m Model) renderEditorColumn() string {
	editor := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.styles.focus).
		Render(m.editor.View())
	if !m.session.Controller.TerminalVisible() {
		return editor
	}
	return lipgloss.JoinVertical(lipgloss.Left, editor, m.renderTerminal())
}

func (m Model) renderTerminal() string {
	header := "Terminal"
	if m.session.Controller.Executing() {
		header += " " + m.spinner.View()
	}
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.styles.border).
		Padding(0, 1).
		Width(m.term.Width + 2)
	content := lipgloss.NewStyle().Height(m.term.Height).Render(m.term.View())
	return box.Render(header + "\n" + content)
}

func (m Model) renderStatus() string {
	if len(m.status) == 0 {
		return ""
	}
	lines := m.status
	if len(lines) > 4 {
		lines = lines[len(lines)-4:]
	}
	return lipgloss.NewStyle().
		Foreground(m.styles.dim).
		Render(strings.Join(lines, "   "))
}

func waitForEvent(ch <-chan events.Event) tea.Cmd {
	return func() tea.Msg {
		if ch == nil {
			return nil
		}
		ev, ok := <-ch
		if !ok {
			return nil
		}
		return ev
	}
}

func title(s string) string {
	runes := []rune(s)
	if len(runes) == 0 {
		return s
	}
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
