package store

import (
	"log/slog"

	"github.com/inovacc/trendr/internal/encoding"
)

// PreferencesKey is the medium key holding the browser selections.
const PreferencesKey = "preferences"

const (
	ThemeDark  = "dark"
	ThemeLight = "light"
)

// Preferences are the last selections made in the terminal browser.
type Preferences struct {
	SortKey  string `json:"sortKey"`
	Language string `json:"language"`
	Theme    string `json:"theme"`
}

// DefaultPreferences sorts by stars, shows every language and uses the dark theme.
func DefaultPreferences() Preferences {
	return Preferences{SortKey: "stargazers_count", Language: "all", Theme: ThemeDark}
}

// LoadPreferences reads the stored preferences, filling blanks with defaults.
// Read failures are logged and yield the defaults.
func LoadPreferences(m Medium, logger *slog.Logger) Preferences {
	if logger == nil {
		logger = slog.Default()
	}

	prefs := DefaultPreferences()

	raw, ok, err := m.Get(PreferencesKey)
	if err != nil {
		logger.Warn("failed to read preferences", slog.String("error", err.Error()))
		return prefs
	}

	if !ok {
		return prefs
	}

	stored, err := encoding.Decode[Preferences](raw)
	if err != nil {
		logger.Warn("stored preferences are corrupted", slog.String("error", err.Error()))
		return prefs
	}

	if stored.SortKey != "" {
		prefs.SortKey = stored.SortKey
	}
	if stored.Language != "" {
		prefs.Language = stored.Language
	}
	if stored.Theme == ThemeDark || stored.Theme == ThemeLight {
		prefs.Theme = stored.Theme
	}

	return prefs
}

func SavePreferences(m Medium, prefs Preferences) error {
	value, err := encoding.Encode(prefs)
	if err != nil {
		return err
	}

	return m.Set(PreferencesKey, value)
}
