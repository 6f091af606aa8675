package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"writeassist/internal/chat"
	"writeassist/internal/domain"
	"writeassist/internal/render"
	"writeassist/internal/session"
)

// SessionPort is the TUI-facing subset of the session.
type SessionPort interface {
	Document() session.Document
	Spans() ([]render.Span, error)
	Accept(id int) error
	Dismiss(id int) bool
	Messages() []chat.Message
	Say(text string) (user, bot chat.Message, err error)
	Action(action string, targetWords int) (*session.Job, error)
	Complete(res session.Result) (chat.Message, bool)
}

// jobDoneMsg carries a finished provider job back into Update.
type jobDoneMsg struct{ res session.Result }

// Model is the Bubble Tea model for the TUI application.
type Model struct {
	ctx        context.Context
	session    SessionPort
	input      textinput.Model
	editor     viewport.Model
	assistant  viewport.Model
	selected   int
	lastResult string
	status     string
	width      int
	ready      bool
}

// New creates a new TUI model instance. ctx bounds the provider jobs it
// starts.
func New(ctx context.Context, s SessionPort) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Ask the assistant or type /grammar, /paraphrase, /compress 80 ..."
	ti.Focus()
	ti.CharLimit = 0
	return Model{
		ctx:       ctx,
		session:   s,
		input:     ti,
		editor:    viewport.New(0, 0),
		assistant: viewport.New(0, 0),
		status:    "tab: next suggestion · ctrl+a: accept · ctrl+x: dismiss · ctrl+y: copy result",
	}
}

// Init initializes the model (text input cursor blink).
func (m Model) Init() tea.Cmd { return textinput.Blink }

// Update handles key, window and job events and updates the view state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		m.width = msg.Width
		_, fh := paneStyle.GetFrameSize()
		_, ih := inputBoxStyle.GetFrameSize()
		reserved := 1 + 1 + ih + 1 // header, footer, input line
		h := max(3, msg.Height-reserved-fh)
		editorW, assistantW := paneWidths(msg.Width)
		m.editor.Width, m.editor.Height = editorW, h
		m.assistant.Width, m.assistant.Height = assistantW, h
		m.input.Width = max(10, msg.Width-6)
		m.refresh()
		return m, nil

	case jobDoneMsg:
		if out, ok := m.session.Complete(msg.res); ok {
			if text := resultText(out.Content); text != "" {
				m.lastResult = text
			}
		}
		m.refresh()
		m.assistant.GotoBottom()
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC:
			return m, tea.Quit
		case tea.KeyTab:
			m.moveSelection(1)
			return m, nil
		case tea.KeyShiftTab:
			m.moveSelection(-1)
			return m, nil
		case tea.KeyCtrlA:
			m.resolveSelected(true)
			return m, nil
		case tea.KeyCtrlX:
			m.resolveSelected(false)
			return m, nil
		case tea.KeyCtrlY:
			m.copyLastResult()
			return m, nil
		case tea.KeyEnter:
			line := strings.TrimSpace(m.input.Value())
			if line == "" {
				return m, nil
			}
			m.input.Reset()
			cmd := m.submit(line)
			m.refresh()
			m.assistant.GotoBottom()
			return m, cmd
		case tea.KeyPgUp, tea.KeyPgDown:
			var cmd tea.Cmd
			m.assistant, cmd = m.assistant.Update(msg)
			return m, cmd
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// submit runs a slash command or sends free text to the assistant.
func (m *Model) submit(line string) tea.Cmd {
	if !strings.HasPrefix(line, "/") {
		if _, _, err := m.session.Say(line); err != nil {
			m.status = "Error: " + err.Error()
		}
		return nil
	}
	action, target, err := parseCommand(line)
	if err != nil {
		m.status = err.Error()
		return nil
	}
	job, err := m.session.Action(action, target)
	if err != nil {
		m.status = "Error: " + err.Error()
		return nil
	}
	if job == nil {
		return nil
	}
	m.status = "Working on " + action + "..."
	ctx := m.ctx
	return func() tea.Msg { return jobDoneMsg{res: job.Run(ctx)} }
}

func (m *Model) moveSelection(delta int) {
	n := len(m.session.Document().Suggestions)
	if n == 0 {
		m.selected = 0
		return
	}
	m.selected = (m.selected + delta + n) % n
	m.refresh()
}

func (m *Model) selectedSuggestion() (domain.Suggestion, bool) {
	list := m.session.Document().Suggestions
	if len(list) == 0 {
		return domain.Suggestion{}, false
	}
	if m.selected >= len(list) {
		m.selected = len(list) - 1
	}
	return list[m.selected], true
}

func (m *Model) resolveSelected(accept bool) {
	sg, ok := m.selectedSuggestion()
	if !ok {
		m.status = "No suggestions left."
		return
	}
	if accept {
		if err := m.session.Accept(sg.ID); err != nil {
			m.status = "Error: " + err.Error()
		} else {
			m.status = fmt.Sprintf("Accepted %q → %q", sg.Original, sg.Replacement)
		}
	} else {
		m.session.Dismiss(sg.ID)
		m.status = fmt.Sprintf("Dismissed %q", sg.Original)
	}
	if n := len(m.session.Document().Suggestions); m.selected >= n && n > 0 {
		m.selected = n - 1
	}
	m.refresh()
}

func (m *Model) copyLastResult() {
	if m.lastResult == "" {
		m.status = "Nothing to copy yet."
		return
	}
	if err := clipboard.WriteAll(m.lastResult); err != nil {
		m.status = "Copy failed: " + err.Error()
		return
	}
	m.status = "Copied result to clipboard."
}

// refresh re-renders both panes from the session.
func (m *Model) refresh() {
	if !m.ready {
		return
	}
	selectedID := -1
	if sg, ok := m.selectedSuggestion(); ok {
		selectedID = sg.ID
	}
	spans, err := m.session.Spans()
	if err != nil {
		m.editor.SetContent("Error: " + err.Error())
	} else {
		m.editor.SetContent(renderEditor(spans, selectedID, m.editor.Width))
	}
	m.assistant.SetContent(renderTranscript(m.session.Messages(), m.assistant.Width))
}

// View renders the TUI layout.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	doc := m.session.Document()
	header := headerStyle.Render("Writing Assistant") + "  " +
		mutedStyle.Render(fmt.Sprintf("%d suggestions", len(doc.Suggestions)))
	panes := lipgloss.JoinHorizontal(lipgloss.Top,
		paneStyle.Render(m.editor.View()),
		paneStyle.Render(m.assistant.View()),
	)
	input := inputBoxStyle.Width(max(10, m.width-2)).Render(m.input.View())
	footer := mutedStyle.Render(fmt.Sprintf("%d words · Type '/' for AI commands", doc.WordCount)) +
		"  " + statusStyle.Render(m.status)
	return header + "\n" + panes + "\n" + input + "\n" + footer
}

// paneWidths splits the screen 60/40 between editor and assistant, leaving
// room for borders.
func paneWidths(total int) (int, int) {
	fw, _ := paneStyle.GetFrameSize()
	usable := max(20, total-2*fw)
	editor := usable * 6 / 10
	return editor, usable - editor
}
