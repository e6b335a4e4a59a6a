package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/diogo/hotmess/internal/render"
	"github.com/diogo/hotmess/internal/transcript"
)

// Gradient colors for animation
var gradientColors = []lipgloss.Color{
	lipgloss.Color("#ec4899"),
	lipgloss.Color("#f472b6"),
	lipgloss.Color("#d946ef"),
	lipgloss.Color("#a855f7"),
	lipgloss.Color("#8b5cf6"),
	lipgloss.Color("#fb7185"),
	lipgloss.Color("#fbbf24"),
	lipgloss.Color("#f97316"),
}

var colorSuccess = lipgloss.Color("#9ece6a")

// spinner handles the animated loading indicator
type spinner struct {
	out     io.Writer
	message string
	stop    chan struct{}
	done    chan struct{}
	mu      sync.Mutex
	frame   int
	stopped bool // Flag to prevent double-close
}

// newSpinner creates a new animated spinner writing to out
func newSpinner(out io.Writer, message string) *spinner {
	return &spinner{
		out:     out,
		message: message,
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}
}

// start begins the animation
func (s *spinner) start() {
	go func() {
		defer close(s.done)

		ticker := time.NewTicker(80 * time.Millisecond)
		defer ticker.Stop()

		// Hide cursor
		fmt.Fprint(s.out, "\033[?25l")

		for {
			select {
			case <-s.stop:
				// Clear line and show cursor
				fmt.Fprint(s.out, "\r\033[K\033[?25h")
				return
			case <-ticker.C:
				s.mu.Lock()
				s.render()
				s.frame++
				s.mu.Unlock()
			}
		}
	}()
}

// render draws the current animation frame
func (s *spinner) render() {
	theme := render.GetTUITheme()
	chars := []string{"⣾", "⣽", "⣻", "⢿", "⡿", "⣟", "⣯", "⣷"}

	spinColor := gradientColors[s.frame%len(gradientColors)]
	spinnerChar := lipgloss.NewStyle().Foreground(spinColor).Bold(true).Render(chars[s.frame%len(chars)])

	var dots strings.Builder
	numDots := (s.frame / 3) % 4
	for i := 0; i < 3; i++ {
		if i < numDots {
			dotColor := gradientColors[(s.frame+i)%len(gradientColors)]
			dots.WriteString(lipgloss.NewStyle().Foreground(dotColor).Render("●"))
		} else {
			dots.WriteString(lipgloss.NewStyle().Foreground(theme.TextMute).Render("○"))
		}
	}

	msg := lipgloss.NewStyle().Foreground(theme.Text).Render(s.message)
	fmt.Fprintf(s.out, "\r\033[K%s %s %s", spinnerChar, msg, dots.String())
}

// stopOnce safely closes the stop channel only once
func (s *spinner) stopOnce() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.stopped {
		close(s.stop)
		s.stopped = true
	}
}

// stopWithSuccess stops the spinner and shows success message
func (s *spinner) stopWithSuccess(message string) {
	s.stopOnce()
	<-s.done

	checkmark := lipgloss.NewStyle().Foreground(colorSuccess).Bold(true).Render("✓")
	msg := lipgloss.NewStyle().Foreground(colorSuccess).Render(message)
	fmt.Fprintf(s.out, "%s %s\n", checkmark, msg)
}

// stopQuietly stops the spinner without printing anything
func (s *spinner) stopQuietly() {
	s.stopOnce()
	<-s.done
}

// runQuery performs one submit cycle and prints the coach's reply.
// Raw mode (flag, or stdout not a terminal) prints only the reply text.
func runQuery(ctx context.Context, deps *Dependencies, opts *rootOptions, message string) error {
	message = strings.TrimSpace(message)
	if message == "" {
		return fmt.Errorf("message cannot be empty")
	}

	s, err := newSession(deps, opts, false)
	if err != nil {
		return err
	}
	defer s.Close()

	rawOutput := opts.raw || !deps.IsTTY()

	var spin *spinner
	if !rawOutput {
		spin = newSpinner(deps.Stderr, "Untangling your chaos")
		spin.start()
	}

	startTime := time.Now()
	reply, ok := s.controller.Ask(ctx, message)
	if !rawOutput {
		spin.stopQuietly()
	}
	if !ok {
		return fmt.Errorf("message was not sent")
	}
	s.logger.Printf("Request took %s", time.Since(startTime).Round(time.Millisecond))

	if opts.copy || s.cfg.CopyToClipboard {
		if err := deps.Clipboard(reply.Content); err != nil {
			fmt.Fprintln(deps.Stderr, lipgloss.NewStyle().Foreground(render.GetTUITheme().Error).Render(
				fmt.Sprintf("⚠ Failed to copy to clipboard: %v", err),
			))
		} else if !rawOutput {
			fmt.Fprintln(deps.Stderr, lipgloss.NewStyle().Foreground(colorSuccess).Render("✓ Copied to clipboard"))
		}
	}

	if opts.output != "" {
		t := transcript.New(s.Endpoint(), s.controller.ViewState().Messages)
		if err := t.WriteFile(opts.output); err != nil {
			return err
		}
		if !rawOutput {
			fmt.Fprintln(deps.Stderr, lipgloss.NewStyle().Foreground(colorSuccess).Render(
				fmt.Sprintf("✓ Transcript saved to %s", opts.output),
			))
		}
	}

	if rawOutput {
		fmt.Fprintln(deps.Stdout, reply.Content)
		return nil
	}

	bubbleWidth := deps.TermWidth() - 4
	if bubbleWidth < 40 {
		bubbleWidth = 40
	}
	if bubbleWidth > 120 {
		bubbleWidth = 120
	}

	theme := render.GetTUITheme()
	label := lipgloss.NewStyle().Foreground(theme.AssistantBubble).Bold(true).Render("✦ Coach")
	bubble := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(theme.AssistantBubble).
		Foreground(theme.Text).
		Padding(0, 1).
		Width(bubbleWidth).
		Render(s.renderer.Reply(reply.Content, bubbleWidth-4))

	fmt.Fprintln(deps.Stdout, label)
	fmt.Fprintln(deps.Stdout, bubble)
	return nil
}

// getTerminalWidth returns the terminal width or a default value
func getTerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80
	}
	return width
}

// isStdoutTTY returns true if stdout is connected to a terminal
func isStdoutTTY() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}
