package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/diogo/hotmess/internal/conversation"
	"github.com/diogo/hotmess/internal/models"
	"github.com/diogo/hotmess/internal/render"
)

const (
	appTitle    = "Hot Mess Coach"
	appSubtitle = "Your chaos, simplified!"
	placeholder = "Tell me about your chaos..."
)

// Animation tick message
type animationTickMsg time.Time

// replyMsg carries the settled assistant message back to the UI loop
type replyMsg struct {
	message models.Message
}

// ChatConfig holds the collaborators of the chat screen
type ChatConfig struct {
	// Endpoint is shown in exported transcripts
	Endpoint string
	// Renderer draws assistant replies (default options when nil)
	Renderer *render.Renderer
	// Clipboard writes text to the system clipboard (clipboard.WriteAll when nil)
	Clipboard func(string) error
}

// Model represents the TUI state
type Model struct {
	ctx        context.Context
	controller *conversation.Controller
	endpoint   string
	renderer   *render.Renderer
	copyText   func(string) error

	// UI components
	viewport viewport.Model
	textarea textarea.Model
	spinner  spinner.Model

	ready          bool
	notice         string
	noticeIsError  bool
	animationFrame int

	// Dimensions
	width  int
	height int
}

// NewChatModel creates a new chat TUI model over controller
func NewChatModel(ctx context.Context, controller *conversation.Controller, cfg ChatConfig) Model {
	if ctx == nil {
		ctx = context.Background()
	}

	ta := textarea.New()
	ta.Placeholder = placeholder
	ta.CharLimit = 4000
	ta.ShowLineNumbers = false
	ta.SetHeight(2)
	ta.Focus()

	ta.FocusedStyle.CursorLine = lipgloss.NewStyle()
	ta.FocusedStyle.Base = lipgloss.NewStyle().Foreground(colorText)
	ta.FocusedStyle.Placeholder = lipgloss.NewStyle().Foreground(colorTextDim)
	ta.BlurredStyle = ta.FocusedStyle

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = loadingStyle

	copyText := cfg.Clipboard
	if copyText == nil {
		copyText = clipboard.WriteAll
	}

	renderer := cfg.Renderer
	if renderer == nil {
		renderer = render.NewRenderer(render.DefaultOptions())
	}

	return Model{
		ctx:        ctx,
		controller: controller,
		endpoint:   cfg.Endpoint,
		renderer:   renderer,
		copyText:   copyText,
		textarea:   ta,
		spinner:    s,
	}
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return textarea.Blink
}

// animationTick returns a command that sends animation tick messages
func animationTick() tea.Cmd {
	return tea.Tick(time.Millisecond*80, func(t time.Time) tea.Msg {
		return animationTickMsg(t)
	})
}

func (m Model) pending() bool {
	return m.controller.Pending()
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		headerHeight := 4 // Header panel with border
		inputHeight := 6  // Input panel with border
		statusHeight := 2 // Status bar and notice line
		padding := 2

		vpHeight := m.height - headerHeight - inputHeight - statusHeight - padding
		if vpHeight < 5 {
			vpHeight = 5
		}

		contentWidth := m.width - 4

		if !m.ready {
			m.viewport = viewport.New(contentWidth, vpHeight)
			m.ready = true
		} else {
			m.viewport.Width = contentWidth
			m.viewport.Height = vpHeight
		}
		m.textarea.SetWidth(contentWidth - 4)
		m.updateViewport()
		m.viewport.GotoBottom()

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit

		case "esc":
			// No cancellation: the request in flight always settles.
			if m.pending() {
				return m, nil
			}
			return m, tea.Quit

		case "enter":
			return m.submit()

		case "alt+enter", "ctrl+j":
			if !m.pending() {
				m.textarea.InsertString("\n")
				m.controller.SetDraft(m.textarea.Value())
			}
			return m, nil
		}

	case replyMsg:
		m.updateViewport()
		m.viewport.GotoBottom()
		m.textarea.Focus()

	case spinner.TickMsg:
		if m.pending() {
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}

	case animationTickMsg:
		if m.pending() {
			m.animationFrame++
			cmds = append(cmds, animationTick())
		}
	}

	// Only KeyMsg reaches the textarea, and only when idle
	if _, ok := msg.(tea.KeyMsg); ok && !m.pending() {
		before := m.textarea.Value()
		m.textarea, cmd = m.textarea.Update(msg)
		cmds = append(cmds, cmd)
		if after := m.textarea.Value(); after != before {
			m.controller.SetDraft(after)
		}
	}

	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// submit handles Enter: slash commands run locally, everything else goes
// through the controller.
func (m Model) submit() (tea.Model, tea.Cmd) {
	input := strings.TrimSpace(m.textarea.Value())

	if strings.HasPrefix(input, "/") {
		return m.runCommand(input)
	}

	exchange, ok := m.controller.Submit(input)
	if !ok {
		return m, nil
	}

	m.textarea.Reset()
	m.textarea.Blur()
	m.notice = ""
	m.animationFrame = 0
	m.updateViewport()
	m.viewport.GotoBottom()

	return m, tea.Batch(
		m.runExchange(exchange),
		m.spinner.Tick,
		animationTick(),
	)
}

// runExchange performs the request on a worker and reports back to Update
func (m Model) runExchange(exchange *conversation.Exchange) tea.Cmd {
	ctx := m.ctx
	return func() tea.Msg {
		return replyMsg{message: exchange.Run(ctx)}
	}
}

// View renders the TUI
func (m Model) View() string {
	if !m.ready {
		return loadingStyle.Render("  Initializing...")
	}

	var sections []string
	contentWidth := m.width - 4

	headerContent := lipgloss.JoinHorizontal(lipgloss.Center,
		titleStyle.Render("✦ "+appTitle),
		hintStyle.Render("  •  "),
		subtitleStyle.Render(appSubtitle),
	)
	sections = append(sections, headerStyle.Width(contentWidth).Render(headerContent))

	sections = append(sections, messagesAreaStyle.
		Width(contentWidth).
		Height(m.viewport.Height).
		Render(m.viewport.View()))

	var inputContent string
	if m.pending() {
		inputContent = m.renderLoadingAnimation()
	} else {
		inputContent = lipgloss.JoinVertical(
			lipgloss.Left,
			inputLabelStyle.Render("You"),
			m.textarea.View(),
		)
	}
	sections = append(sections, inputPanelStyle.Width(contentWidth).Render(inputContent))

	sections = append(sections, m.renderStatusBar(contentWidth))

	if m.notice != "" {
		if m.noticeIsError {
			sections = append(sections, errorStyle.PaddingLeft(2).Render(m.notice))
		} else {
			sections = append(sections, noticeStyle.Render(m.notice))
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderLoadingAnimation renders a colorful animated loading indicator
func (m Model) renderLoadingAnimation() string {
	barChars := []string{"█", "█", "█", "█", "▓", "▒", "░"}

	frame := m.animationFrame

	barWidth := 16
	var bar strings.Builder
	for i := 0; i < barWidth; i++ {
		colorIdx := (i + frame) % len(gradientColors)
		charIdx := (i + frame/2) % len(barChars)
		bar.WriteString(lipgloss.NewStyle().Foreground(gradientColors[colorIdx]).Render(barChars[charIdx]))
	}

	var dots strings.Builder
	numDots := (frame / 3) % 4
	for i := 0; i < 3; i++ {
		if i < numDots {
			dots.WriteString(lipgloss.NewStyle().Foreground(gradientColors[(frame+i)%len(gradientColors)]).Render("●"))
		} else {
			dots.WriteString(lipgloss.NewStyle().Foreground(colorTextMute).Render("○"))
		}
	}

	text := lipgloss.NewStyle().Foreground(colorText).Render(" Coach is untangling that ")

	return fmt.Sprintf("%s %s %s %s", m.spinner.View(), bar.String(), text, dots.String())
}

// renderStatusBar renders the bottom status bar with shortcuts
func (m Model) renderStatusBar(width int) string {
	shortcuts := []struct {
		key  string
		desc string
	}{
		{"Enter", "Send"},
		{"Alt+Enter", "Newline"},
		{"/help", "Commands"},
		{"Esc", "Quit"},
	}

	items := make([]string, 0, len(shortcuts))
	for _, s := range shortcuts {
		items = append(items, statusKeyStyle.Render(s.key)+statusDescStyle.Render(" "+s.desc))
	}

	return statusBarStyle.Width(width).Align(lipgloss.Center).Render(strings.Join(items, "  │  "))
}

// updateViewport refreshes the viewport content from the controller state
func (m *Model) updateViewport() {
	if !m.ready {
		return
	}

	var content strings.Builder
	bubbleWidth := m.viewport.Width - 8
	if bubbleWidth < 20 {
		bubbleWidth = 20
	}

	state := m.controller.ViewState()
	for i, msg := range state.Messages {
		if i > 0 {
			content.WriteString("\n")
		}
		content.WriteString(m.renderMessage(msg, bubbleWidth))
		content.WriteString("\n")
	}

	m.viewport.SetContent(content.String())
}

// renderMessage draws one bubble: user text right-aligned as typed,
// assistant text rendered as markdown on the left.
func (m Model) renderMessage(msg models.Message, bubbleWidth int) string {
	if msg.IsUser() {
		label := userLabelStyle.Render("You ⬤")
		bubble := userBubbleStyle.MaxWidth(bubbleWidth).Render(wrap(msg.Content, bubbleWidth-4))
		block := lipgloss.JoinVertical(lipgloss.Right, label, bubble)
		return lipgloss.PlaceHorizontal(m.viewport.Width, lipgloss.Right, block)
	}

	label := assistantLabelStyle.Render("✦ Coach")
	rendered := m.renderer.Reply(msg.Content, bubbleWidth-4)
	return label + "\n" + assistantBubbleStyle.Width(bubbleWidth).Render(rendered)
}

// wrap soft-wraps lines wider than width; short messages keep their size
func wrap(text string, width int) string {
	if lipgloss.Width(text) <= width {
		return text
	}
	return lipgloss.NewStyle().Width(width).Render(text)
}

// RunChat starts the chat TUI and blocks until the user quits
func RunChat(ctx context.Context, controller *conversation.Controller, cfg ChatConfig) error {
	if ctx == nil {
		ctx = context.Background()
	}
	m := NewChatModel(ctx, controller, cfg)

	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)

	_, err := p.Run()
	return err
}
