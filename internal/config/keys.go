package config

import (
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"
)

// setter applies a string value to one config field
type setter func(cfg *Config, value string) error

var setters = map[string]setter{
	"api_url": func(cfg *Config, value string) error {
		if value != "" {
			u, err := url.Parse(value)
			if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
				return fmt.Errorf("api_url must be an http(s) URL, got %q", value)
			}
		}
		cfg.APIURL = value
		return nil
	},
	"timeout_seconds": func(cfg *Config, value string) error {
		n, err := strconv.Atoi(value)
		if err != nil || n <= 0 {
			return fmt.Errorf("timeout_seconds must be a positive integer, got %q", value)
		}
		cfg.TimeoutSeconds = n
		return nil
	},
	"verbose":           boolSetter(func(cfg *Config, b bool) { cfg.Verbose = b }),
	"copy_to_clipboard": boolSetter(func(cfg *Config, b bool) { cfg.CopyToClipboard = b }),
	"log_file": func(cfg *Config, value string) error {
		cfg.LogFile = value
		return nil
	},
	"tui_theme": func(cfg *Config, value string) error {
		cfg.TUITheme = value
		return nil
	},
	"markdown.style": func(cfg *Config, value string) error {
		cfg.Markdown.Style = value
		return nil
	},
	"markdown.enable_emoji":       boolSetter(func(cfg *Config, b bool) { cfg.Markdown.EnableEmoji = b }),
	"markdown.preserve_newlines":  boolSetter(func(cfg *Config, b bool) { cfg.Markdown.PreserveNewLines = b }),
	"markdown.table_wrap":         boolSetter(func(cfg *Config, b bool) { cfg.Markdown.TableWrap = b }),
	"markdown.inline_table_links": boolSetter(func(cfg *Config, b bool) { cfg.Markdown.InlineTableLinks = b }),
}

func boolSetter(apply func(cfg *Config, b bool)) setter {
	return func(cfg *Config, value string) error {
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("expected true or false, got %q", value)
		}
		apply(cfg, b)
		return nil
	}
}

// Keys returns the settable config keys in sorted order
func Keys() []string {
	keys := make([]string, 0, len(setters))
	for k := range setters {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Set updates the field named by key
func (c *Config) Set(key, value string) error {
	apply, ok := setters[strings.ToLower(strings.TrimSpace(key))]
	if !ok {
		return fmt.Errorf("unknown config key %q (valid keys: %s)", key, strings.Join(Keys(), ", "))
	}
	return apply(c, strings.TrimSpace(value))
}
