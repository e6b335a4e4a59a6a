package render

import (
	"sort"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// TUITheme is the color scheme for the chat interface
type TUITheme struct {
	Name        string
	Description string

	Background lipgloss.Color
	Surface    lipgloss.Color
	Border     lipgloss.Color

	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Accent    lipgloss.Color
	Warning   lipgloss.Color
	Error     lipgloss.Color

	Text     lipgloss.Color
	TextDim  lipgloss.Color
	TextMute lipgloss.Color

	// Chat bubble borders
	UserBubble      lipgloss.Color
	AssistantBubble lipgloss.Color
}

// DefaultTUITheme is the theme used when none is configured.
const DefaultTUITheme = "hotmess"

var (
	// HotMessTheme is the default pink and purple theme
	HotMessTheme = TUITheme{
		Name:        "hotmess",
		Description: "Hot Mess - Pink and purple on a dark background",

		Background: lipgloss.Color("#1b1020"),
		Surface:    lipgloss.Color("#2a1a33"),
		Border:     lipgloss.Color("#5b3a6e"),

		Primary:   lipgloss.Color("#ec4899"), // Pink
		Secondary: lipgloss.Color("#a855f7"), // Purple
		Accent:    lipgloss.Color("#f472b6"),
		Warning:   lipgloss.Color("#fbbf24"),
		Error:     lipgloss.Color("#f87171"),

		Text:     lipgloss.Color("#f5e9f7"),
		TextDim:  lipgloss.Color("#9d87a8"),
		TextMute: lipgloss.Color("#5b3a6e"),

		UserBubble:      lipgloss.Color("#a855f7"),
		AssistantBubble: lipgloss.Color("#ec4899"),
	}

	TokyoNightTheme = TUITheme{
		Name:        "tokyonight",
		Description: "Tokyo Night - Dark theme with blue accents",

		Background: lipgloss.Color("#1a1b26"),
		Surface:    lipgloss.Color("#24283b"),
		Border:     lipgloss.Color("#414868"),

		Primary:   lipgloss.Color("#7aa2f7"),
		Secondary: lipgloss.Color("#9ece6a"),
		Accent:    lipgloss.Color("#bb9af7"),
		Warning:   lipgloss.Color("#e0af68"),
		Error:     lipgloss.Color("#f7768e"),

		Text:     lipgloss.Color("#c0caf5"),
		TextDim:  lipgloss.Color("#565f89"),
		TextMute: lipgloss.Color("#3b4261"),

		UserBubble:      lipgloss.Color("#9ece6a"),
		AssistantBubble: lipgloss.Color("#7aa2f7"),
	}

	DraculaTheme = TUITheme{
		Name:        "dracula",
		Description: "Dracula - Dark theme with vibrant colors",

		Background: lipgloss.Color("#282a36"),
		Surface:    lipgloss.Color("#44475a"),
		Border:     lipgloss.Color("#6272a4"),

		Primary:   lipgloss.Color("#ff79c6"),
		Secondary: lipgloss.Color("#50fa7b"),
		Accent:    lipgloss.Color("#bd93f9"),
		Warning:   lipgloss.Color("#f1fa8c"),
		Error:     lipgloss.Color("#ff5555"),

		Text:     lipgloss.Color("#f8f8f2"),
		TextDim:  lipgloss.Color("#6272a4"),
		TextMute: lipgloss.Color("#44475a"),

		UserBubble:      lipgloss.Color("#50fa7b"),
		AssistantBubble: lipgloss.Color("#ff79c6"),
	}

	NordTheme = TUITheme{
		Name:        "nord",
		Description: "Nord - Arctic-inspired theme with cool tones",

		Background: lipgloss.Color("#2e3440"),
		Surface:    lipgloss.Color("#3b4252"),
		Border:     lipgloss.Color("#4c566a"),

		Primary:   lipgloss.Color("#88c0d0"),
		Secondary: lipgloss.Color("#a3be8c"),
		Accent:    lipgloss.Color("#b48ead"),
		Warning:   lipgloss.Color("#ebcb8b"),
		Error:     lipgloss.Color("#bf616a"),

		Text:     lipgloss.Color("#eceff4"),
		TextDim:  lipgloss.Color("#7b88a1"),
		TextMute: lipgloss.Color("#4c566a"),

		UserBubble:      lipgloss.Color("#a3be8c"),
		AssistantBubble: lipgloss.Color("#b48ead"),
	}
)

var tuiThemes = map[string]TUITheme{
	HotMessTheme.Name:    HotMessTheme,
	TokyoNightTheme.Name: TokyoNightTheme,
	DraculaTheme.Name:    DraculaTheme,
	NordTheme.Name:       NordTheme,
}

var (
	themeMu         sync.RWMutex
	currentTUITheme = HotMessTheme
)

// GetTUITheme returns the currently active TUI theme
func GetTUITheme() TUITheme {
	themeMu.RLock()
	defer themeMu.RUnlock()
	return currentTUITheme
}

// SetTUITheme sets the active TUI theme by name. Unknown names leave the
// current theme in place and return false.
func SetTUITheme(name string) bool {
	theme, ok := GetTUIThemeByName(name)
	if !ok {
		return false
	}
	themeMu.Lock()
	currentTUITheme = theme
	themeMu.Unlock()
	return true
}

// GetTUIThemeByName returns a TUI theme by its name
func GetTUIThemeByName(name string) (TUITheme, bool) {
	theme, ok := tuiThemes[name]
	return theme, ok
}

// AvailableTUIThemes returns every TUI theme, default first, the rest by name
func AvailableTUIThemes() []TUITheme {
	themes := make([]TUITheme, 0, len(tuiThemes))
	for _, name := range TUIThemeNames() {
		themes = append(themes, tuiThemes[name])
	}
	return themes
}

// TUIThemeNames returns the theme names, default first
func TUIThemeNames() []string {
	names := make([]string, 0, len(tuiThemes))
	for name := range tuiThemes {
		if name != DefaultTUITheme {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return append([]string{DefaultTUITheme}, names...)
}
