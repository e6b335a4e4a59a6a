// Package transcript exports a chat session to a file.
package transcript

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/diogo/hotmess/internal/models"
)

// Format represents the format for exporting a transcript
type Format string

const (
	FormatMarkdown Format = "markdown"
	FormatJSON     Format = "json"
)

// Transcript is a snapshot of one chat session
type Transcript struct {
	ID         string           `json:"id"`
	Title      string           `json:"title"`
	Endpoint   string           `json:"endpoint,omitempty"`
	ExportedAt time.Time        `json:"exported_at"`
	Messages   []models.Message `json:"messages"`
}

// New creates a transcript of messages stamped with the current time and a
// fresh random ID.
func New(endpoint string, messages []models.Message) Transcript {
	copied := make([]models.Message, len(messages))
	copy(copied, messages)
	return Transcript{
		ID:         uuid.NewString(),
		Title:      "Hot Mess Coach",
		Endpoint:   endpoint,
		ExportedAt: time.Now(),
		Messages:   copied,
	}
}

// FormatForPath picks JSON for .json files and Markdown for everything else.
func FormatForPath(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return FormatJSON
	}
	return FormatMarkdown
}

// Markdown renders the transcript as a Markdown document
func (t Transcript) Markdown() string {
	var sb strings.Builder

	sb.WriteString("# ")
	sb.WriteString(t.Title)
	sb.WriteString("\n\n")

	if t.Endpoint != "" {
		fmt.Fprintf(&sb, "**Endpoint:** %s\n", t.Endpoint)
	}
	if t.ID != "" {
		fmt.Fprintf(&sb, "**ID:** %s\n", t.ID)
	}
	fmt.Fprintf(&sb, "**Exported:** %s\n", t.ExportedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&sb, "**Messages:** %d\n\n---\n\n", len(t.Messages))

	for i, msg := range t.Messages {
		role := "Coach"
		if msg.IsUser() {
			role = "You"
		}

		sb.WriteString("## ")
		sb.WriteString(role)
		sb.WriteString("\n\n")
		sb.WriteString(msg.Content)
		sb.WriteString("\n")

		if i < len(t.Messages)-1 {
			sb.WriteString("\n---\n\n")
		}
	}

	return sb.String()
}

// JSON renders the transcript as indented JSON
func (t Transcript) JSON() ([]byte, error) {
	return json.MarshalIndent(t, "", "  ")
}

// Encode renders the transcript in the given format
func (t Transcript) Encode(format Format) ([]byte, error) {
	switch format {
	case FormatJSON:
		return t.JSON()
	case FormatMarkdown, "":
		return []byte(t.Markdown()), nil
	default:
		return nil, fmt.Errorf("unsupported export format: %s", format)
	}
}

// WriteFile exports the transcript to path, choosing the format from the
// file extension. Parent directories are created as needed.
func (t Transcript) WriteFile(path string) error {
	path = strings.TrimSpace(path)
	if path == "" {
		return fmt.Errorf("export path is empty")
	}

	data, err := t.Encode(FormatForPath(path))
	if err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create export directory: %w", err)
		}
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write transcript: %w", err)
	}
	return nil
}
