// Package github is the remote trending source: it asks the GitHub search API
// for repositories created inside a trailing window, most starred first, and
// converts the results into model.Repository values.
//
// [Client] talks to the API through go-github. [CachedSource] wraps any
// [Source] with a time-bounded cache kept in a store.Medium.
package github
