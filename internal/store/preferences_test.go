package store

import (
	"errors"
	"testing"

	"github.com/inovacc/trendr/internal/logging"
	"github.com/stretchr/testify/require"
)

func TestPreferences_DefaultsWhenMissing(t *testing.T) {
	require.Equal(t, DefaultPreferences(), LoadPreferences(newMemMedium(), logging.Discard()))
}

func TestPreferences_RoundTrip(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	want := Preferences{SortKey: "language", Language: "Rust", Theme: ThemeLight}
	require.NoError(t, SavePreferences(db, want))
	require.Equal(t, want, LoadPreferences(db, logging.Discard()))
}

func TestPreferences_Fallbacks(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  Preferences
	}{
		{
			name:  "corrupted",
			value: "not json",
			want:  DefaultPreferences(),
		},
		{
			name:  "partial",
			value: `{"language":"Go"}`,
			want:  Preferences{SortKey: "stargazers_count", Language: "Go", Theme: ThemeDark},
		},
		{
			name:  "unknown theme",
			value: `{"theme":"solarized"}`,
			want:  DefaultPreferences(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newMemMedium()
			m.data[PreferencesKey] = tt.value

			require.Equal(t, tt.want, LoadPreferences(m, logging.Discard()))
		})
	}
}

func TestPreferences_ReadError(t *testing.T) {
	m := newMemMedium()
	m.getErr = errors.New("boom")

	require.Equal(t, DefaultPreferences(), LoadPreferences(m, logging.Discard()))
}
