// Package core holds the trending and starring logic of trendr, free of any
// presentation concerns.
//
// # Reconciliation
//
// [Reconcile] merges a trending list with the starred set: every trending
// entry gets IsStarred set from the set, the starred list passes through.
// [Reconciler] owns the two canonical lists for one session. It performs the
// initial concurrent load, guarded refreshes and the star toggle.
//
// # Toggle
//
// [Reconciler.ToggleStar] writes to the star store first and only then
// replaces both lists. A failed write leaves both lists untouched and is
// returned as a [*ToggleError].
//
// # Pipeline
//
// [Filter] and [Sort] are pure functions applied by the view layer to either
// list with the current search text, language and sort key.
package core
