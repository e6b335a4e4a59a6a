package commands

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/diogo/hotmess/internal/tui"
)

// NewChatCmd creates the chat command
func NewChatCmd(deps *Dependencies, opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Start an interactive chat session",
		Long: `Start an interactive chat session with the Hot Mess Coach.

Enter sends a message, Alt+Enter (or Ctrl+J) inserts a newline.
Type /help for commands, /exit or press Esc to end the session.
Nothing is saved when the session ends unless you /export it.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChat(cmd.Context(), deps.withDefaults(), opts)
		},
	}
}

func runChat(ctx context.Context, deps *Dependencies, opts *rootOptions) error {
	s, err := newSession(deps, opts, true)
	if err != nil {
		return err
	}
	defer s.Close()

	return deps.TUI.RunChat(ctx, s.controller, tui.ChatConfig{
		Endpoint:  s.Endpoint(),
		Renderer:  s.renderer,
		Clipboard: deps.Clipboard,
	})
}
