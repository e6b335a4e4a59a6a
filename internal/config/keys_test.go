package config

import (
	"strings"
	"testing"
)

func TestConfigSet(t *testing.T) {
	tests := []struct {
		key     string
		value   string
		wantErr bool
		check   func(Config) bool
	}{
		{"api_url", "https://coach.example.com", false, func(c Config) bool { return c.APIURL == "https://coach.example.com" }},
		{"api_url", "", false, func(c Config) bool { return c.APIURL == "" }},
		{"api_url", "localhost:8000", true, nil},
		{"api_url", "ftp://x", true, nil},
		{"timeout_seconds", "30", false, func(c Config) bool { return c.TimeoutSeconds == 30 }},
		{"timeout_seconds", "0", true, nil},
		{"timeout_seconds", "soon", true, nil},
		{"verbose", "true", false, func(c Config) bool { return c.Verbose }},
		{"verbose", "maybe", true, nil},
		{"copy_to_clipboard", "1", false, func(c Config) bool { return c.CopyToClipboard }},
		{"log_file", "/tmp/hotmess.log", false, func(c Config) bool { return c.LogFile == "/tmp/hotmess.log" }},
		{"tui_theme", "nord", false, func(c Config) bool { return c.TUITheme == "nord" }},
		{"markdown.style", "light", false, func(c Config) bool { return c.Markdown.Style == "light" }},
		{"MARKDOWN.TABLE_WRAP", "false", false, func(c Config) bool { return !c.Markdown.TableWrap }},
		{"no_such_key", "x", true, nil},
	}

	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			cfg := DefaultConfig()
			err := cfg.Set(tt.key, tt.value)

			if tt.wantErr {
				if err == nil {
					t.Error("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !tt.check(cfg) {
				t.Errorf("Set(%q, %q) did not apply: %+v", tt.key, tt.value, cfg)
			}
		})
	}
}

func TestConfigSet_UnknownKeyListsValidKeys(t *testing.T) {
	cfg := DefaultConfig()
	err := cfg.Set("colour", "pink")
	if err == nil || !strings.Contains(err.Error(), "api_url") {
		t.Errorf("error should list valid keys, got %v", err)
	}
}

func TestKeysSorted(t *testing.T) {
	keys := Keys()
	for i := 1; i < len(keys); i++ {
		if keys[i-1] > keys[i] {
			t.Fatalf("keys not sorted: %v", keys)
		}
	}
}
