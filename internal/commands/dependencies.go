package commands

import (
	"context"
	"io"
	"os"
	"strings"

	"github.com/atotto/clipboard"

	"github.com/diogo/hotmess/internal/api"
	"github.com/diogo/hotmess/internal/conversation"
	"github.com/diogo/hotmess/internal/tui"
)

// TUIInterface defines the methods required from the TUI package.
type TUIInterface interface {
	RunChat(ctx context.Context, controller *conversation.Controller, cfg tui.ChatConfig) error
}

// Dependencies holds the external dependencies for the commands.
// This allows for dependency injection and easier testing.
type Dependencies struct {
	// NewClient builds the chat backend client.
	NewClient func(opts ...api.ClientOption) (api.ChatClientInterface, error)

	// TUI is the terminal user interface.
	TUI TUIInterface

	// Clipboard writes text to the system clipboard.
	Clipboard func(string) error

	// ReadStdin returns piped input; ok is false when stdin is a terminal.
	ReadStdin func() (text string, ok bool, err error)

	// IsTTY reports whether stdout is a terminal.
	IsTTY func() bool

	// TermWidth returns the terminal width.
	TermWidth func() int

	Stdout io.Writer
	Stderr io.Writer
}

// DefaultTUI is the production implementation of TUIInterface.
type DefaultTUI struct{}

func (d *DefaultTUI) RunChat(ctx context.Context, controller *conversation.Controller, cfg tui.ChatConfig) error {
	return tui.RunChat(ctx, controller, cfg)
}

// NewDependencies creates a new Dependencies struct with default implementations.
func NewDependencies() *Dependencies {
	return &Dependencies{
		NewClient: func(opts ...api.ClientOption) (api.ChatClientInterface, error) {
			return api.NewClient(opts...)
		},
		TUI:       &DefaultTUI{},
		Clipboard: clipboard.WriteAll,
		ReadStdin: readStdin,
		IsTTY:     isStdoutTTY,
		TermWidth: getTerminalWidth,
		Stdout:    os.Stdout,
		Stderr:    os.Stderr,
	}
}

// withDefaults fills nil fields so tests only set what they care about.
func (d *Dependencies) withDefaults() *Dependencies {
	defaults := NewDependencies()
	if d == nil {
		return defaults
	}

	out := *d
	if out.NewClient == nil {
		out.NewClient = defaults.NewClient
	}
	if out.TUI == nil {
		out.TUI = defaults.TUI
	}
	if out.Clipboard == nil {
		out.Clipboard = defaults.Clipboard
	}
	if out.ReadStdin == nil {
		out.ReadStdin = defaults.ReadStdin
	}
	if out.IsTTY == nil {
		out.IsTTY = defaults.IsTTY
	}
	if out.TermWidth == nil {
		out.TermWidth = defaults.TermWidth
	}
	if out.Stdout == nil {
		out.Stdout = defaults.Stdout
	}
	if out.Stderr == nil {
		out.Stderr = defaults.Stderr
	}
	return &out
}

// readStdin reads all of stdin when it is a pipe or a file
func readStdin() (string, bool, error) {
	stat, err := os.Stdin.Stat()
	if err != nil || stat.Mode()&os.ModeCharDevice != 0 {
		return "", false, nil
	}

	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", false, err
	}
	text := string(data)
	return text, strings.TrimSpace(text) != "", nil
}
