// Package model defines the data structures shared by every layer of trendr.
//
// # Repository
//
// [Repository] mirrors the fields trendr keeps from a GitHub search result.
// Optional text (description, language) is a *string so that the persisted
// JSON keeps explicit nulls:
//
//	type Repository struct {
//	    ID          int64     // GitHub id, the identity key
//	    FullName    string    // owner/name
//	    Language    *string   // nil when unknown
//	    StarCount   int       // stargazers at fetch time
//	    IsStarred   bool      // derived from the star store
//	}
//
// # View
//
// [View] bundles [RepositoriesState] and [LoadingState]; it is what the CLI,
// the terminal browser and the HTTP API render.
package model
