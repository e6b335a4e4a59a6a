package render

import (
	"testing"

	"github.com/diogo/hotmess/internal/config"
)

func TestOptionsFromConfig(t *testing.T) {
	t.Setenv(EnvStyle, "")

	cfg := config.DefaultConfig()
	cfg.Markdown.Style = "light"
	cfg.Markdown.EnableEmoji = false
	cfg.Markdown.InlineTableLinks = true

	opts := OptionsFromConfig(cfg)

	if opts.Style != "light" {
		t.Errorf("expected Style='light', got %s", opts.Style)
	}
	if opts.EnableEmoji {
		t.Error("expected EnableEmoji=false")
	}
	if !opts.InlineTableLinks {
		t.Error("expected InlineTableLinks=true")
	}
	if opts.Width != 80 {
		t.Errorf("expected default width 80, got %d", opts.Width)
	}
}

func TestOptionsFromConfig_EmptyStyleKeepsDefault(t *testing.T) {
	t.Setenv(EnvStyle, "")

	cfg := config.DefaultConfig()
	cfg.Markdown.Style = ""

	if opts := OptionsFromConfig(cfg); opts.Style != StylePink {
		t.Errorf("expected default style, got %s", opts.Style)
	}
}

func TestOptionsFromConfig_EnvOverride(t *testing.T) {
	t.Setenv(EnvStyle, "dracula")

	opts := OptionsFromConfig(config.DefaultConfig())

	if opts.Style != "dracula" {
		t.Errorf("expected Style='dracula' from env, got %s", opts.Style)
	}
}

func TestOptionsFromConfig_DefaultsRender(t *testing.T) {
	t.Setenv(EnvStyle, "")

	opts := OptionsFromConfig(config.DefaultConfig())

	output, err := Markdown("# Test", opts)
	if err != nil {
		t.Fatalf("Markdown render failed with config options: %v", err)
	}
	if output == "" {
		t.Error("expected non-empty output")
	}
}
