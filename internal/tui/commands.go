package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/diogo/hotmess/internal/transcript"
)

const helpText = "/copy copy last reply  •  /export <file.md|file.json> save transcript  •  /exit quit"

// runCommand executes a slash command typed into the input box. Commands
// never reach the backend and never change the conversation.
func (m Model) runCommand(input string) (tea.Model, tea.Cmd) {
	name, arg, _ := strings.Cut(input, " ")
	arg = strings.TrimSpace(arg)

	m.textarea.Reset()
	m.controller.SetDraft("")

	switch strings.ToLower(name) {
	case "/exit", "/quit":
		return m, tea.Quit

	case "/help":
		m.setNotice(helpText, false)

	case "/copy":
		reply, ok := m.controller.LastReply()
		if !ok {
			m.setNotice("Nothing to copy yet", true)
			break
		}
		if err := m.copyText(reply.Content); err != nil {
			m.setNotice(fmt.Sprintf("Copy failed: %v", err), true)
			break
		}
		m.setNotice("Copied last reply to clipboard", false)

	case "/export":
		if arg == "" {
			m.setNotice("Usage: /export <file.md|file.json>", true)
			break
		}
		t := transcript.New(m.endpoint, m.controller.ViewState().Messages)
		if err := t.WriteFile(arg); err != nil {
			m.setNotice(fmt.Sprintf("Export failed: %v", err), true)
			break
		}
		m.setNotice(fmt.Sprintf("Transcript saved to %s", arg), false)

	default:
		m.setNotice(fmt.Sprintf("Unknown command %s (try /help)", name), true)
	}

	return m, nil
}

func (m *Model) setNotice(text string, isError bool) {
	m.notice = text
	m.noticeIsError = isError
}
