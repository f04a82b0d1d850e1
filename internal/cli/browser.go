package cli

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/inovacc/trendr/internal/core"
	"github.com/inovacc/trendr/internal/model"
	"github.com/inovacc/trendr/internal/store"
)

type tab int

const (
	tabAll tab = iota
	tabStarred
)

func (t tab) String() string {
	if t == tabStarred {
		return "Starred Repositories"
	}

	return "All Repositories"
}

// lines taken by the tabs, filter bar, status and help rows
const chromeHeight = 6

type loadedMsg struct{ err error }

type refreshedMsg struct{ err error }

type toggledMsg struct {
	repo    model.Repository
	starred bool
	err     error
}

// BrowserModel is the terminal browser over a Reconciler.
type BrowserModel struct {
	ctx context.Context
	rec *core.Reconciler

	list    list.Model
	search  textinput.Model
	spinner spinner.Model
	styles  palette

	searching bool
	tab       tab
	language  string
	sortKey   core.SortKey
	theme     string

	view        model.View
	status      string
	statusError bool
	quitting    bool
	width       int
	height      int
}

// NewBrowser builds the browser with the selections restored from prefs.
// The reconciler is loaded by the program's first command.
func NewBrowser(ctx context.Context, rec *core.Reconciler, prefs store.Preferences) BrowserModel {
	sortKey, err := core.ParseSortKey(prefs.SortKey)
	if err != nil {
		sortKey = core.SortByStars
	}

	language := prefs.Language
	if language == "" {
		language = core.AllLanguages
	}

	search := textinput.New()
	search.Placeholder = "search name, description or owner"
	search.Prompt = "/ "
	search.CharLimit = 100

	s := spinner.New()
	s.Spinner = spinner.Dot

	m := BrowserModel{
		ctx:      ctx,
		rec:      rec,
		list:     newRepoList(),
		search:   search,
		spinner:  s,
		language: language,
		sortKey:  sortKey,
		theme:    prefs.Theme,
		styles:   paletteFor(prefs.Theme),
		view:     rec.State(),
	}
	m.spinner.Style = m.styles.value

	return m
}

func (m BrowserModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.load)
}

func (m BrowserModel) load() tea.Msg {
	return loadedMsg{err: m.rec.Load(m.ctx)}
}

func (m BrowserModel) refreshCmd() tea.Msg {
	return refreshedMsg{err: m.rec.Refresh(m.ctx)}
}

func (m BrowserModel) toggleCmd(repo model.Repository) tea.Cmd {
	return func() tea.Msg {
		starred, err := m.rec.ToggleStar(m.ctx, repo)
		if err != nil {
			return toggledMsg{repo: repo, err: err}
		}

		return toggledMsg{repo: repo, starred: slices.ContainsFunc(starred, func(r model.Repository) bool {
			return r.ID == repo.ID
		})}
	}
}

func (m BrowserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()

		return m, nil

	case spinner.TickMsg:
		if !m.view.Loading {
			return m, nil
		}

		var cmd tea.Cmd

		m.spinner, cmd = m.spinner.Update(msg)

		return m, cmd

	case loadedMsg:
		m.refresh()

		return m, nil

	case refreshedMsg:
		if errors.Is(msg.err, core.ErrStaleRefresh) {
			return m, nil
		}

		m.refresh()
		if msg.err == nil {
			m.setStatus("Trending list refreshed", false)
		}

		return m, nil

	case toggledMsg:
		switch {
		case msg.err != nil:
			m.setStatus(fmt.Sprintf("Could not update %s: %v", msg.repo.FullName, msg.err), true)
		case msg.starred:
			m.setStatus("Starred "+msg.repo.FullName, false)
		default:
			m.setStatus("Unstarred "+msg.repo.FullName, false)
		}

		m.refresh()

		return m, nil

	case tea.KeyMsg:
		if m.searching {
			return m.updateSearch(msg)
		}

		return m.updateKeys(msg)
	}

	var cmd tea.Cmd

	m.list, cmd = m.list.Update(msg)

	return m, cmd
}

func (m BrowserModel) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		m.quitting = true

		return m, tea.Quit

	case "enter", "esc":
		m.searching = false
		m.search.Blur()

		return m, nil
	}

	var cmd tea.Cmd

	m.search, cmd = m.search.Update(msg)
	m.refresh()

	return m, cmd
}

func (m BrowserModel) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		m.quitting = true

		return m, tea.Quit

	case "tab":
		if m.tab == tabAll {
			m.tab = tabStarred
		} else {
			m.tab = tabAll
		}

		m.list.ResetSelected()
		m.refresh()

		return m, nil

	case "/":
		m.searching = true

		return m, m.search.Focus()

	case "l":
		options := append([]string{core.AllLanguages}, m.rec.Languages()...)
		next := (slices.Index(options, m.language) + 1) % len(options)
		m.language = options[next]
		m.list.ResetSelected()
		m.refresh()

		return m, nil

	case "o":
		m.sortKey = m.sortKey.Next()
		m.refresh()

		return m, nil

	case "s", " ":
		item, ok := m.list.SelectedItem().(repoItem)
		if !ok {
			return m, nil
		}

		return m, m.toggleCmd(item.repo)

	case "r":
		m.setStatus("Refreshing...", false)

		return m, m.refreshCmd

	case "t":
		if m.theme == store.ThemeLight {
			m.theme = store.ThemeDark
		} else {
			m.theme = store.ThemeLight
		}

		m.styles = paletteFor(m.theme)
		m.spinner.Style = m.styles.value

		return m, nil
	}

	var cmd tea.Cmd

	m.list, cmd = m.list.Update(msg)

	return m, cmd
}

// refresh re-reads the reconciler and rebuilds the visible rows.
func (m *BrowserModel) refresh() {
	m.view = m.rec.State()

	m.list.SetItems(toItems(m.rows()))
}

func (m BrowserModel) rows() []model.Repository {
	source := m.view.AllRepositories
	if m.tab == tabStarred {
		source = m.view.StarredRepositories
	}

	filtered := core.Filter(source, core.FilterOptions{
		SearchTerm: m.search.Value(),
		Language:   m.language,
	})

	return core.Sort(filtered, m.sortKey)
}

func (m *BrowserModel) setStatus(text string, isError bool) {
	m.status = text
	m.statusError = isError
}

func (m *BrowserModel) resize() {
	if m.width == 0 || m.height == 0 {
		return
	}

	h, v := docStyle.GetFrameSize()
	m.list.SetSize(m.width-h, max(m.height-v-chromeHeight, 1))
	m.search.Width = max(m.width-h-4, 10)
}

func (m BrowserModel) View() string {
	if m.quitting {
		return ""
	}

	if m.view.Loading && len(m.view.AllRepositories) == 0 && m.view.Error == "" {
		return docStyle.Render(fmt.Sprintf("%s Loading trending repositories...", m.spinner.View()))
	}

	if m.view.Error != "" {
		return docStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
			m.styles.errorText.Render(m.view.Error),
			"",
			m.styles.help.Render("r retry • q quit"),
		))
	}

	sections := []string{
		m.tabsView(),
		m.filtersView(),
		m.list.View(),
		m.statusView(),
		m.styles.help.Render("tab switch • / search • l language • o sort • s star • r refresh • t theme • q quit"),
	}

	return docStyle.Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

func (m BrowserModel) tabsView() string {
	tabs := make([]string, 0, 2)

	for _, t := range []tab{tabAll, tabStarred} {
		label := t.String()
		if t == tabStarred {
			label = fmt.Sprintf("%s (%d)", label, len(m.view.StarredRepositories))
		}

		style := m.styles.inactiveTab
		if t == m.tab {
			style = m.styles.activeTab
		}

		tabs = append(tabs, style.Render(label))
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, strings.Join(tabs, " "))
}

func (m BrowserModel) filtersView() string {
	search := m.styles.label.Render("search: ") + m.styles.value.Render(m.search.Value())
	if m.searching {
		search = m.search.View()
	}

	return strings.Join([]string{
		search,
		m.styles.label.Render("language: ") + m.styles.value.Render(m.language),
		m.styles.label.Render("sort: ") + m.styles.value.Render(m.sortKey.Label()),
	}, "   ")
}

func (m BrowserModel) statusView() string {
	if m.status == "" {
		return ""
	}

	if m.statusError {
		return m.styles.errorText.Render(m.status)
	}

	return m.styles.status.Render(m.status)
}

// Preferences returns the current selections for persisting on exit.
func (m BrowserModel) Preferences() store.Preferences {
	return store.Preferences{
		SortKey:  string(m.sortKey),
		Language: m.language,
		Theme:    m.theme,
	}
}
