// Package cli provides the terminal browser for trendr.
//
// The browser is a [Bubbletea] program following the Model-View-Update
// architecture, styled with [Lipgloss]. It shows the trending and starred
// lists of a core.Reconciler in two tabs, and every redraw recomputes the
// visible rows as Sort(Filter(tab list)) from the reconciler state.
//
// # Keys
//
//   - tab: switch between all and starred repositories
//   - /: edit the search text (enter or esc to leave)
//   - l: cycle the language filter
//   - o: switch the sort key
//   - s, space: star or unstar the selected repository
//   - r: refetch the trending list
//   - t: switch between dark and light themes
//   - q: quit
//
// [Bubbletea]: https://github.com/charmbracelet/bubbletea
// [Lipgloss]: https://github.com/charmbracelet/lipgloss
package cli
