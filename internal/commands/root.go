// Package commands provides CLI commands for hotmess.
package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/diogo/hotmess/internal/tui"
)

var (
	// Version info (set at build time)
	Version   = "0.1.0"
	BuildTime = "unknown"
)

// rootOptions holds the flags shared by the root command and its subcommands
type rootOptions struct {
	apiURL  string
	theme   string
	logFile string
	verbose bool
	timeout time.Duration

	output string
	file   string
	copy   bool
	raw    bool
}

// NewRootCmd creates the hotmess command tree
func NewRootCmd(deps *Dependencies) *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "hotmess [message]",
		Short: "Chat with the Hot Mess Coach from your terminal",
		Long: `hotmess is a terminal client for the Hot Mess Coach: tell it about your
chaos and it helps you turn it into slightly organized chaos.

Examples:
  hotmess                                 Start interactive chat
  hotmess "I have 12 deadlines this week" Send a single message
  hotmess -f brain-dump.md                Read the message from a file
  cat todo.txt | hotmess                  Read the message from stdin
  hotmess "help" -o session.md            Save the exchange as a transcript
  hotmess --api-url http://coach:8000     Use another backend

The backend URL comes from --api-url, HOTMESS_API_URL, NEXT_PUBLIC_API_URL
(also read from .env), the config file, or http://localhost:8000.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if v, _ := cmd.Flags().GetBool("version"); v {
				fmt.Fprintf(cmd.OutOrStdout(), "hotmess %s (built %s)\n", Version, BuildTime)
				return nil
			}

			d := deps.withDefaults()
			ctx := cmd.Context()

			if opts.file != "" {
				data, err := os.ReadFile(opts.file)
				if err != nil {
					return fmt.Errorf("failed to read file: %w", err)
				}
				return runQuery(ctx, d, opts, string(data))
			}

			if len(args) > 0 {
				return runQuery(ctx, d, opts, args[0])
			}

			text, ok, err := d.ReadStdin()
			if err != nil {
				return fmt.Errorf("failed to read stdin: %w", err)
			}
			if ok {
				return runQuery(ctx, d, opts, text)
			}

			return runChat(ctx, d, opts)
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&opts.apiURL, "api-url", "", "Backend base URL (\"/chat\" is appended)")
	pf.StringVarP(&opts.theme, "theme", "t", "", "TUI color theme")
	pf.StringVar(&opts.logFile, "log-file", "", "Write diagnostics of the chat session to this file")
	pf.BoolVar(&opts.verbose, "verbose", false, "Print diagnostics to stderr")
	pf.DurationVar(&opts.timeout, "timeout", 0, "Request timeout (e.g. 30s); overrides timeout_seconds")

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "Save the exchange as a transcript (.md or .json)")
	cmd.Flags().StringVarP(&opts.file, "file", "f", "", "Read the message from a file")
	cmd.Flags().BoolVarP(&opts.copy, "copy", "c", false, "Copy the reply to the clipboard")
	cmd.Flags().BoolVar(&opts.raw, "raw", false, "Print only the reply text")
	cmd.Flags().BoolP("version", "v", false, "Show version and exit")

	cmd.AddCommand(NewChatCmd(deps, opts))
	cmd.AddCommand(NewConfigCmd(deps))

	return cmd
}

// rootCmd represents the base command
var rootCmd = NewRootCmd(NewDependencies())

// Execute runs the root command
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, tui.FormatError(err))
		stop()
		os.Exit(1)
	}
}
