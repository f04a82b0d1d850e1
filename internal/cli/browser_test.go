package cli

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/inovacc/trendr/internal/core"
	"github.com/inovacc/trendr/internal/logging"
	"github.com/inovacc/trendr/internal/model"
	"github.com/inovacc/trendr/internal/store"
	"github.com/stretchr/testify/require"
)

type sourceFunc func(ctx context.Context) ([]model.Repository, error)

func (f sourceFunc) Trending(ctx context.Context) ([]model.Repository, error) {
	return f(ctx)
}

func testRepo(id int64, name string, stars int, lang string) model.Repository {
	return model.Repository{
		ID:        id,
		Name:      name,
		FullName:  "octo/" + name,
		StarCount: stars,
		Language:  model.StringPtr(lang),
		Owner:     model.Owner{Login: "octo"},
	}
}

func setupBrowser(t *testing.T, src sourceFunc, maxValueBytes int) (BrowserModel, *store.Stars) {
	t.Helper()

	m, err := store.NewBolt(filepath.Join(t.TempDir(), "browser.bolt"), maxValueBytes)
	require.NoError(t, err)
	t.Cleanup(func() { _ = m.Close() })

	stars := store.NewStars(m, logging.Discard())
	rec := core.NewReconciler(src, stars, logging.Discard())

	b := NewBrowser(context.Background(), rec, store.DefaultPreferences())
	b = update(t, b, tea.WindowSizeMsg{Width: 120, Height: 40})
	b = update(t, b, b.load())

	return b, stars
}

func update(t *testing.T, m BrowserModel, msg tea.Msg) BrowserModel {
	t.Helper()

	next, _ := m.Update(msg)
	bm, ok := next.(BrowserModel)
	require.True(t, ok)

	return bm
}

// run updates with msg and feeds the resulting reconciler command back in.
func run(t *testing.T, m BrowserModel, msg tea.Msg) BrowserModel {
	t.Helper()

	next, cmd := m.Update(msg)
	bm, ok := next.(BrowserModel)
	require.True(t, ok)
	require.NotNil(t, cmd)

	return update(t, bm, cmd())
}

func press(keys string) tea.KeyMsg {
	switch keys {
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(keys)}
	}
}

func rowIDs(m BrowserModel) []int64 {
	var ids []int64
	for _, r := range m.rows() {
		ids = append(ids, r.ID)
	}

	return ids
}

func trendingSource() sourceFunc {
	return func(context.Context) ([]model.Repository, error) {
		return []model.Repository{
			testRepo(1, "alpha", 10, "Rust"),
			testRepo(2, "beta", 300, "Go"),
			testRepo(3, "gamma", 50, ""),
		}, nil
	}
}

func TestBrowser_LoadSortsByStars(t *testing.T) {
	b, _ := setupBrowser(t, trendingSource(), 0)

	require.False(t, b.view.Loading)
	require.Equal(t, []int64{2, 3, 1}, rowIDs(b))
	require.Contains(t, b.View(), "All Repositories")
}

func TestBrowser_SortAndLanguageKeys(t *testing.T) {
	b, _ := setupBrowser(t, trendingSource(), 0)

	b = update(t, b, press("o"))
	require.Equal(t, core.SortByLanguage, b.sortKey)
	require.Equal(t, []int64{2, 1, 3}, rowIDs(b))

	b = update(t, b, press("l"))
	require.Equal(t, "Go", b.language)
	require.Equal(t, []int64{2}, rowIDs(b))

	b = update(t, b, press("l"))
	b = update(t, b, press("l"))
	require.Equal(t, core.AllLanguages, b.language)
	require.Len(t, rowIDs(b), 3)
}

func TestBrowser_Search(t *testing.T) {
	b, _ := setupBrowser(t, trendingSource(), 0)

	b = update(t, b, press("/"))
	require.True(t, b.searching)

	for _, r := range "gam" {
		b = update(t, b, press(string(r)))
	}

	require.Equal(t, []int64{3}, rowIDs(b))

	// keys typed while searching never act as commands
	b = update(t, b, press("q"))
	require.False(t, b.quitting)

	b = update(t, b, press("enter"))
	require.False(t, b.searching)
	require.Equal(t, "gamq", b.search.Value())
}

func TestBrowser_ToggleStar(t *testing.T) {
	b, stars := setupBrowser(t, trendingSource(), 0)

	b = run(t, b, press("s"))
	require.True(t, stars.Contains(2))
	require.Equal(t, "Starred octo/beta", b.status)
	require.True(t, b.view.AllRepositories[1].IsStarred)

	b = update(t, b, press("tab"))
	require.Equal(t, tabStarred, b.tab)
	require.Equal(t, []int64{2}, rowIDs(b))

	b = run(t, b, press(" "))
	require.False(t, stars.Contains(2))
	require.Equal(t, "Unstarred octo/beta", b.status)
	require.Empty(t, rowIDs(b))
}

func TestBrowser_ToggleFailureKeepsRows(t *testing.T) {
	b, stars := setupBrowser(t, trendingSource(), 8)

	b = run(t, b, press("s"))
	require.False(t, stars.Contains(2))
	require.True(t, b.statusError)
	require.Contains(t, b.status, "Could not update octo/beta")
	require.Equal(t, []int64{2, 3, 1}, rowIDs(b))
	require.Contains(t, b.View(), "octo/beta")
}

func TestBrowser_LoadErrorState(t *testing.T) {
	b, _ := setupBrowser(t, func(context.Context) ([]model.Repository, error) {
		return nil, errors.New("offline")
	}, 0)

	require.Contains(t, b.View(), core.LoadErrorMessage)
}

func TestBrowser_Refresh(t *testing.T) {
	calls := 0
	b, _ := setupBrowser(t, func(context.Context) ([]model.Repository, error) {
		calls++
		return []model.Repository{testRepo(int64(calls), "r", calls, "Go")}, nil
	}, 0)

	b = run(t, b, press("r"))
	require.Equal(t, []int64{2}, rowIDs(b))
	require.Equal(t, "Trending list refreshed", b.status)
}

func TestBrowser_PreferencesAndQuit(t *testing.T) {
	b, _ := setupBrowser(t, trendingSource(), 0)

	b = update(t, b, press("o"))
	b = update(t, b, press("l"))
	b = update(t, b, press("t"))

	require.Equal(t, store.Preferences{SortKey: "language", Language: "Go", Theme: store.ThemeLight}, b.Preferences())

	next, cmd := b.Update(press("q"))
	require.NotNil(t, cmd)
	require.Empty(t, next.View())
}

func TestBrowser_RestoresPreferences(t *testing.T) {
	rec := core.NewReconciler(trendingSource(), store.NewStars(memMedium{}, logging.Discard()), logging.Discard())

	b := NewBrowser(context.Background(), rec, store.Preferences{SortKey: "bogus", Language: "Rust", Theme: store.ThemeLight})
	require.Equal(t, core.SortByStars, b.sortKey)
	require.Equal(t, "Rust", b.language)
	require.Contains(t, b.View(), "Loading")
}

// memMedium is an always-empty medium for models that never load.
type memMedium struct{}

func (memMedium) Get(string) (string, bool, error) { return "", false, nil }
func (memMedium) Set(string, string) error         { return nil }
func (memMedium) Remove(string) error              { return nil }
func (memMedium) Ping() error                      { return nil }
func (memMedium) Close() error                     { return nil }
