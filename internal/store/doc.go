// Package store provides local persistence for trendr.
//
// The package is split in two layers. A [Medium] is a small key-value store
// holding text values under string keys; it is the only thing that touches
// disk or a database. [Stars] is the persistent star store: it keeps the full
// set of starred repositories as one JSON document under [StarredKey].
//
// # Media
//
// Three media are available and selected with store.driver:
//   - bolt: an embedded bbolt file (default)
//   - sqlite: a pure Go SQLite database with an embedded migration
//   - postgres: a table managed through gorm, for shared installations
//
// Every medium honors a maximum value size; writes above it fail with
// [ErrQuotaExceeded].
//
// # Error policy
//
// Read paths never fail: [Stars.GetAll] and [Stars.Contains] log the problem
// and degrade to "nothing starred". Writes made by [Stars.Add] and
// [Stars.Remove] return their error so the caller can report it.
//
//	medium, err := store.Open(cfg.Store)
//	stars := store.NewStars(medium, logger)
//	starred, err := stars.Add(repo)
package store
