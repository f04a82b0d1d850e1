package model

import "time"

// Owner is the account a repository belongs to.
type Owner struct {
	Login string `json:"login"`
}

// Repository is a GitHub repository as shown in the trending and starred lists.
// ID is the identity key: two values with the same ID are the same repository
// even when the other fields differ.
type Repository struct {
	// ID is the stable identifier assigned by GitHub
	ID int64 `json:"id"`

	// Name is the short repository name
	Name string `json:"name"`

	// FullName is the owner-qualified name (owner/name)
	FullName string `json:"full_name"`

	// URL is the repository web page
	URL string `json:"html_url"`

	// Description is nil when the repository has none
	Description *string `json:"description"`

	// StarCount is the number of stargazers at fetch time
	StarCount int `json:"stargazers_count"`

	// Language is nil when GitHub could not detect one
	Language *string `json:"language"`

	Owner Owner `json:"owner"`

	CreatedAt time.Time `json:"created_at"`

	// IsStarred is derived from the star store and never authoritative
	IsStarred bool `json:"isStarred"`
}

// LanguageName returns the language or "" when unknown.
func (r Repository) LanguageName() string {
	if r.Language == nil {
		return ""
	}

	return *r.Language
}

// DescriptionText returns the description or "" when absent.
func (r Repository) DescriptionText() string {
	if r.Description == nil {
		return ""
	}

	return *r.Description
}

// WithStarred returns a copy of r with IsStarred set to starred.
func (r Repository) WithStarred(starred bool) Repository {
	r.IsStarred = starred
	return r
}

// Clone returns a copy of r that shares no pointers with it.
func (r Repository) Clone() Repository {
	if r.Description != nil {
		d := *r.Description
		r.Description = &d
	}

	if r.Language != nil {
		l := *r.Language
		r.Language = &l
	}

	return r
}

// StringPtr returns a pointer to s, or nil when s is empty.
func StringPtr(s string) *string {
	if s == "" {
		return nil
	}

	return &s
}

// RepositoriesState is the reconciled pair of lists held by the reconciler.
type RepositoriesState struct {
	AllRepositories     []Repository `json:"allRepositories"`
	StarredRepositories []Repository `json:"starredRepositories"`
}

// LoadingState aggregates the status of the two initial reads.
// Error is empty when neither read failed.
type LoadingState struct {
	Loading bool   `json:"loading"`
	Error   string `json:"error,omitempty"`
}

// View is the complete view model handed to presentation code.
type View struct {
	RepositoriesState
	LoadingState
}
