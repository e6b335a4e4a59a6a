// Package api provides the client for the Hot Mess Coach chat backend.
package api

import (
	"strings"

	"github.com/diogo/hotmess/internal/models"
)

// GJSON paths checked, in priority order, for the assistant reply.
// The backend contract is loose: different deployments answered under
// different keys, so all three are honoured.
var ReplyPaths = []string{
	"reply",
	"response",
	"message",
}

// ChatEndpoint joins the configured base URL with the chat path.
func ChatEndpoint(baseURL string) string {
	base := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if base == "" {
		base = models.DefaultBaseURL
	}
	return base + models.ChatPath
}
