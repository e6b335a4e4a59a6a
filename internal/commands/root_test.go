package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"

	http "github.com/bogdanfinn/fhttp"

	"github.com/diogo/hotmess/internal/api"
	"github.com/diogo/hotmess/internal/config"
	"github.com/diogo/hotmess/internal/conversation"
	apierrors "github.com/diogo/hotmess/internal/errors"
	"github.com/diogo/hotmess/internal/models"
	"github.com/diogo/hotmess/internal/render"
	"github.com/diogo/hotmess/internal/tui"
)

// nopDoer lets a real api.Client be built without a network transport
type nopDoer struct{}

func (nopDoer) Do(*http.Request) (*http.Response, error) { return nil, errors.New("unused") }
func (nopDoer) CloseIdleConnections()                    {}

// fakeTUI records the chat launch instead of starting bubbletea
type fakeTUI struct {
	called     bool
	controller *conversation.Controller
	cfg        tui.ChatConfig
	err        error
}

func (f *fakeTUI) RunChat(ctx context.Context, controller *conversation.Controller, cfg tui.ChatConfig) error {
	f.called = true
	f.controller = controller
	f.cfg = cfg
	return f.err
}

type testEnv struct {
	deps      *Dependencies
	client    *api.MockChatClient
	tui       *fakeTUI
	stdout    *bytes.Buffer
	stderr    *bytes.Buffer
	baseURL   string
	clipboard string
	home      string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)
	t.Setenv(config.EnvAPIURL, "")
	t.Setenv(config.EnvPublicAPIURL, "")
	t.Setenv(render.EnvStyle, "")
	t.Cleanup(func() {
		render.SetTUITheme(render.DefaultTUITheme)
		tui.UpdateTheme()
	})

	env := &testEnv{
		client: &api.MockChatClient{Reply: "Breathe. Then pick one task.", Found: true},
		tui:    &fakeTUI{},
		stdout: &bytes.Buffer{},
		stderr: &bytes.Buffer{},
		home:   home,
	}

	env.deps = &Dependencies{
		NewClient: func(opts ...api.ClientOption) (api.ChatClientInterface, error) {
			c, err := api.NewClient(append(opts, api.WithHTTPClient(nopDoer{}))...)
			if err != nil {
				return nil, err
			}
			env.baseURL = c.BaseURL()
			env.client.EndpointVal = c.Endpoint()
			return env.client, nil
		},
		TUI: env.tui,
		Clipboard: func(s string) error {
			env.clipboard = s
			return nil
		},
		ReadStdin: func() (string, bool, error) { return "", false, nil },
		IsTTY:     func() bool { return false },
		TermWidth: func() int { return 80 },
		Stdout:    env.stdout,
		Stderr:    env.stderr,
	}
	return env
}

func (e *testEnv) run(args ...string) error {
	cmd := NewRootCmd(e.deps)
	cmd.SetArgs(args)
	cmd.SetOut(e.stdout)
	cmd.SetErr(e.stderr)
	return cmd.ExecuteContext(context.Background())
}

func TestRootCommand_Help(t *testing.T) {
	cmd := NewRootCmd(nil)
	if cmd.Use != "hotmess [message]" {
		t.Errorf("Expected use 'hotmess [message]', got %s", cmd.Use)
	}
	if cmd.Short == "" || cmd.Long == "" {
		t.Error("descriptions should not be empty")
	}
	if cmd.Args == nil {
		t.Error("Args validation should be configured")
	}
}

func TestRootCommand_Flags(t *testing.T) {
	cmd := NewRootCmd(nil)

	for _, name := range []string{"api-url", "theme", "log-file", "verbose", "timeout"} {
		if cmd.PersistentFlags().Lookup(name) == nil {
			t.Errorf("PersistentFlag %s not found", name)
		}
	}
	for _, name := range []string{"output", "file", "copy", "raw", "version"} {
		if cmd.Flags().Lookup(name) == nil {
			t.Errorf("Flag %s not found", name)
		}
	}
}

func TestRootCommand_Subcommands(t *testing.T) {
	cmd := NewRootCmd(nil)
	for _, sub := range []string{"chat", "config"} {
		found := false
		for _, c := range cmd.Commands() {
			if c.Name() == sub {
				found = true
			}
		}
		if !found {
			t.Errorf("Subcommand %s not found", sub)
		}
	}
}

func TestRootCommand_Version(t *testing.T) {
	for _, flag := range []string{"-v", "--version"} {
		t.Run(flag, func(t *testing.T) {
			env := newTestEnv(t)
			if err := env.run(flag); err != nil {
				t.Fatalf("Execute failed: %v", err)
			}
			if !strings.Contains(env.stdout.String(), "hotmess "+Version) {
				t.Errorf("unexpected version output %q", env.stdout.String())
			}
			if env.client.Calls() != 0 {
				t.Error("version should not contact the backend")
			}
		})
	}
}

func TestRootCommand_OneShotOutcomes(t *testing.T) {
	tests := []struct {
		name    string
		reply   string
		found   bool
		sendErr error
		want    string
	}{
		{"reply", "Breathe.", true, nil, "Breathe."},
		{"no reply field", "", false, nil, models.FallbackReply},
		{"backend failure", "", false, errors.New("connection refused"), models.ConnectivityTroubleReply},
		{"server error", "", false, errors.New("API error [500]"), models.ConnectivityTroubleReply},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			env.client.Reply = tt.reply
			env.client.Found = tt.found
			env.client.SendErr = tt.sendErr

			if err := env.run("  my week is chaos  "); err != nil {
				t.Fatalf("Execute failed: %v", err)
			}

			if got := env.stdout.String(); got != tt.want+"\n" {
				t.Errorf("stdout = %q, want %q", got, tt.want+"\n")
			}
			if env.client.LastMessage != "my week is chaos" {
				t.Errorf("sent %q, want trimmed message", env.client.LastMessage)
			}
			if !env.client.CloseCalled {
				t.Error("client should be closed")
			}
		})
	}
}

func TestRootCommand_EmptyMessage(t *testing.T) {
	env := newTestEnv(t)

	if err := env.run("   "); err == nil {
		t.Error("expected error for empty message")
	}
	if env.client.Calls() != 0 {
		t.Error("empty message must not be sent")
	}
}

func TestRootCommand_FileFlag(t *testing.T) {
	env := newTestEnv(t)
	path := filepath.Join(t.TempDir(), "dump.md")
	if err := os.WriteFile(path, []byte("laundry, taxes, dentist\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := env.run("-f", path); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if env.client.LastMessage != "laundry, taxes, dentist" {
		t.Errorf("sent %q", env.client.LastMessage)
	}
}

func TestRootCommand_FileFlagMissing(t *testing.T) {
	env := newTestEnv(t)
	if err := env.run("-f", filepath.Join(t.TempDir(), "nope.md")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestRootCommand_Stdin(t *testing.T) {
	env := newTestEnv(t)
	env.deps.ReadStdin = func() (string, bool, error) { return "from a pipe\n", true, nil }

	if err := env.run(); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if env.client.LastMessage != "from a pipe" {
		t.Errorf("sent %q", env.client.LastMessage)
	}
	if env.tui.called {
		t.Error("piped input should not launch the chat")
	}
}

func TestRootCommand_NoInputLaunchesChat(t *testing.T) {
	env := newTestEnv(t)

	if err := env.run(); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if !env.tui.called {
		t.Fatal("expected the chat TUI to start")
	}
	if env.tui.controller.Len() != 1 {
		t.Errorf("chat should start with the greeting only, got %d messages", env.tui.controller.Len())
	}
	if env.tui.cfg.Endpoint != "http://localhost:8000/chat" {
		t.Errorf("unexpected endpoint %q", env.tui.cfg.Endpoint)
	}
	if env.tui.cfg.Clipboard == nil {
		t.Error("clipboard should be passed to the TUI")
	}
	if r := env.tui.cfg.Renderer; r == nil || r.Options().Style != render.StylePink {
		t.Error("the session renderer with the configured style should be passed to the TUI")
	}
}

func TestChatCommand(t *testing.T) {
	env := newTestEnv(t)

	if err := env.run("chat", "--theme", "nord"); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if !env.tui.called {
		t.Fatal("expected the chat TUI to start")
	}
	if render.GetTUITheme().Name != "nord" {
		t.Errorf("theme flag not applied, got %s", render.GetTUITheme().Name)
	}
	if err := env.run("chat", "extra"); err == nil {
		t.Error("chat should reject arguments")
	}
}

func TestChatCommand_LogFile(t *testing.T) {
	env := newTestEnv(t)
	t.Cleanup(func() {
		log.SetOutput(os.Stderr)
		log.SetPrefix("")
	})
	logPath := filepath.Join(t.TempDir(), "hotmess.log")

	if err := env.run("chat", "--log-file", logPath); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("log file not created: %v", err)
	}
	if !strings.Contains(string(data), "Endpoint:") {
		t.Errorf("expected endpoint line in log, got %q", data)
	}
}

func TestRootCommand_APIURLResolution(t *testing.T) {
	tests := []struct {
		name string
		env  string
		args []string
		want string
	}{
		{"default", "", []string{"hi"}, "http://localhost:8000"},
		{"env", "http://env:1", []string{"hi"}, "http://env:1"},
		{"flag wins", "http://env:1", []string{"--api-url", "http://flag:2/", "hi"}, "http://flag:2/"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			t.Setenv(config.EnvAPIURL, tt.env)

			if err := env.run(tt.args...); err != nil {
				t.Fatalf("Execute failed: %v", err)
			}
			if env.baseURL != tt.want {
				t.Errorf("base URL = %q, want %q", env.baseURL, tt.want)
			}
		})
	}
}

func TestRootCommand_ConfigFileURL(t *testing.T) {
	env := newTestEnv(t)
	cfg := config.DefaultConfig()
	cfg.APIURL = "http://from-config:9"
	if err := config.SaveConfig(cfg); err != nil {
		t.Fatal(err)
	}

	if err := env.run("hi"); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if env.baseURL != "http://from-config:9" {
		t.Errorf("base URL = %q", env.baseURL)
	}
}

func TestRootCommand_OutputTranscript(t *testing.T) {
	env := newTestEnv(t)
	out := filepath.Join(t.TempDir(), "session.json")

	if err := env.run("hi", "-o", out); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("transcript not written: %v", err)
	}
	var decoded struct {
		Messages []models.Message `json:"messages"`
	}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("invalid transcript: %v", err)
	}
	if len(decoded.Messages) != 3 {
		t.Errorf("expected greeting, message and reply, got %d", len(decoded.Messages))
	}
}

func TestRootCommand_Copy(t *testing.T) {
	env := newTestEnv(t)

	if err := env.run("--copy", "hi"); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if env.clipboard != env.client.Reply {
		t.Errorf("clipboard = %q, want reply", env.clipboard)
	}
}

func TestRootCommand_DecoratedOutput(t *testing.T) {
	env := newTestEnv(t)
	env.deps.IsTTY = func() bool { return true }

	if err := env.run("hi"); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	out := env.stdout.String()
	if !strings.Contains(out, "Coach") || !strings.Contains(out, "Breathe") {
		t.Errorf("expected labelled reply bubble, got %q", out)
	}

	env.stdout.Reset()
	if err := env.run("--raw", "hi"); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if env.stdout.String() != env.client.Reply+"\n" {
		t.Errorf("--raw should print only the reply, got %q", env.stdout.String())
	}
}

func TestRootCommand_VerboseLogsFailures(t *testing.T) {
	env := newTestEnv(t)
	env.client.SendErr = apierrors.NewNetworkErrorWithEndpoint("send message", "http://localhost:8000/chat", errors.New("connection refused"))

	if err := env.run("--verbose", "hi"); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	for _, want := range []string{"[verbose]", "connection refused", "--api-url"} {
		if !strings.Contains(env.stderr.String(), want) {
			t.Errorf("verbose diagnostics should contain %q, got %q", want, env.stderr.String())
		}
	}

	env.stderr.Reset()
	if err := env.run("hi"); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if strings.Contains(env.stderr.String(), "[verbose]") {
		t.Error("diagnostics should be silent without --verbose")
	}
}

func TestRootCommand_UnknownTheme(t *testing.T) {
	env := newTestEnv(t)

	if err := env.run("--theme", "solarized", "hi"); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if !strings.Contains(env.stderr.String(), "unknown theme") {
		t.Errorf("expected theme warning, got %q", env.stderr.String())
	}
}
