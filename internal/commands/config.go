package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/diogo/hotmess/internal/config"
	"github.com/diogo/hotmess/internal/render"
)

// NewConfigCmd creates a new config command
func NewConfigCmd(deps *Dependencies) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or change settings",
		Long: `Show or change hotmess settings stored in ~/.hotmess/config.json.

Without a subcommand the effective configuration is printed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfig(cmd.OutOrStdout())
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfig(cmd.OutOrStdout())
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print the config file path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.GetConfigPath()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:       "set <key> <value>",
		Short:     "Change one setting",
		Long:      "Change one setting. Valid keys:\n  " + strings.Join(config.Keys(), "\n  "),
		Args:      cobra.ExactArgs(2),
		ValidArgs: config.Keys(),
		RunE: func(cmd *cobra.Command, args []string) error {
			return setConfig(cmd.OutOrStdout(), args[0], args[1])
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "themes",
		Short: "List TUI themes and markdown styles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return listThemes(cmd.OutOrStdout())
		},
	})

	return cmd
}

func showConfig(w io.Writer) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	path, err := config.GetConfigPath()
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	fmt.Fprintf(w, "# %s\n", path)
	fmt.Fprintf(w, "# effective api url: %s\n", config.ResolveAPIURL("", cfg))
	fmt.Fprintln(w, string(data))
	return nil
}

func setConfig(w io.Writer, key, value string) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	switch strings.ToLower(key) {
	case "tui_theme":
		if _, ok := render.GetTUIThemeByName(value); !ok {
			return fmt.Errorf("unknown theme %q (available: %v)", value, render.TUIThemeNames())
		}
	case "markdown.style":
		if !render.IsBuiltinStyle(value) {
			if _, err := os.Stat(value); err != nil {
				return fmt.Errorf("markdown.style must be one of %v or a JSON style file", render.ThemeNames())
			}
		}
	}

	if err := cfg.Set(key, value); err != nil {
		return err
	}
	if err := config.SaveConfig(cfg); err != nil {
		return err
	}

	fmt.Fprintf(w, "✓ %s = %s\n", key, value)
	return nil
}

func listThemes(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprintln(tw, "TUI themes (tui_theme):")
	for _, t := range render.AvailableTUIThemes() {
		fmt.Fprintf(tw, "  %s\t%s\n", t.Name, t.Description)
	}

	fmt.Fprintln(tw, "\nMarkdown styles (markdown.style):")
	for _, t := range render.AvailableThemes() {
		fmt.Fprintf(tw, "  %s\t%s\n", t.Name, t.Description)
	}

	return tw.Flush()
}
