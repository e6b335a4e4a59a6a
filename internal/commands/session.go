package commands

import (
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/diogo/hotmess/internal/api"
	"github.com/diogo/hotmess/internal/config"
	"github.com/diogo/hotmess/internal/conversation"
	"github.com/diogo/hotmess/internal/render"
	"github.com/diogo/hotmess/internal/tui"
)

// session wires config, backend client and controller for one invocation
type session struct {
	cfg        config.Config
	client     api.ChatClientInterface
	controller *conversation.Controller
	logger     *log.Logger
	renderer   *render.Renderer
	closers    []func() error
}

// newSession resolves configuration and builds the controller. Interactive
// sessions log to a file (the TUI owns the terminal); one-shot sessions log
// to stderr when verbose.
func newSession(deps *Dependencies, opts *rootOptions, interactive bool) (*session, error) {
	if err := config.LoadDotEnv(); err != nil {
		fmt.Fprintf(deps.Stderr, "Warning: %v\n", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(deps.Stderr, "Warning: %v (using defaults)\n", err)
	}

	s := &session{cfg: cfg}

	s.logger, err = s.openLogger(deps, opts, interactive)
	if err != nil {
		return nil, err
	}

	themeName := cfg.TUITheme
	if opts.theme != "" {
		themeName = opts.theme
	}
	if themeName != "" && !render.SetTUITheme(themeName) {
		fmt.Fprintf(deps.Stderr, "Warning: unknown theme %q (available: %s)\n",
			themeName, strings.Join(render.TUIThemeNames(), ", "))
	}
	tui.UpdateTheme()

	s.renderer = render.NewRenderer(render.OptionsFromConfig(cfg))

	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if opts.timeout > 0 {
		timeout = opts.timeout
	}

	baseURL := config.ResolveAPIURL(opts.apiURL, cfg)
	client, err := deps.NewClient(
		api.WithBaseURL(baseURL),
		api.WithTimeout(timeout),
	)
	if err != nil {
		s.Close()
		return nil, fmt.Errorf("failed to create client: %w", err)
	}
	s.client = client
	s.logger.Printf("Endpoint: %s (timeout %s)", client.Endpoint(), timeout)

	s.controller = conversation.New(client, conversation.WithLogger(s.logger))
	return s, nil
}

func (s *session) openLogger(deps *Dependencies, opts *rootOptions, interactive bool) (*log.Logger, error) {
	if interactive {
		path := s.cfg.LogFile
		if opts.logFile != "" {
			path = opts.logFile
		}
		if path == "" {
			return log.New(io.Discard, "", 0), nil
		}
		f, err := tea.LogToFile(path, "hotmess")
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
		s.closers = append(s.closers, f.Close)
		return log.Default(), nil
	}

	if opts.verbose || s.cfg.Verbose {
		return log.New(deps.Stderr, "[verbose] ", 0), nil
	}
	return log.New(io.Discard, "", 0), nil
}

// Endpoint returns the chat URL requests go to
func (s *session) Endpoint() string {
	if s.client == nil {
		return ""
	}
	return s.client.Endpoint()
}

// Close releases the client and any log file
func (s *session) Close() {
	if s.client != nil {
		s.client.Close()
	}
	for _, c := range s.closers {
		_ = c()
	}
	s.closers = nil
}
