package core

import (
	"fmt"
	"slices"
	"strings"

	"github.com/inovacc/trendr/internal/model"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// AllLanguages is the language filter value that disables filtering.
const AllLanguages = "all"

// FilterOptions are the current UI selections. Zero values disable a predicate.
type FilterOptions struct {
	SearchTerm string
	Language   string
}

// Filter keeps repositories matching every set option. SearchTerm is a
// case-insensitive substring of name, description or owner login. Language
// must equal the repository language ignoring case; repositories without a
// language never match. With no options the input is returned as is.
func Filter(list []model.Repository, opts FilterOptions) []model.Repository {
	term := strings.ToLower(opts.SearchTerm)
	lang := opts.Language
	if lang == AllLanguages {
		lang = ""
	}

	if term == "" && lang == "" {
		return list
	}

	out := make([]model.Repository, 0, len(list))
	for _, r := range list {
		if term != "" && !matchesTerm(r, term) {
			continue
		}

		if lang != "" && (r.Language == nil || !strings.EqualFold(*r.Language, lang)) {
			continue
		}

		out = append(out, r)
	}

	return out
}

func matchesTerm(r model.Repository, term string) bool {
	return strings.Contains(strings.ToLower(r.Name), term) ||
		strings.Contains(strings.ToLower(r.DescriptionText()), term) ||
		strings.Contains(strings.ToLower(r.Owner.Login), term)
}

// SortKey selects the ordering applied by Sort.
type SortKey string

const (
	// SortByStars orders by star count, highest first.
	SortByStars SortKey = "stargazers_count"
	// SortByLanguage orders by language name; repositories without one go last.
	SortByLanguage SortKey = "language"
)

// ParseSortKey accepts the canonical keys plus "stars" and "popularity".
func ParseSortKey(s string) (SortKey, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", string(SortByStars), "stars", "popularity":
		return SortByStars, nil
	case string(SortByLanguage):
		return SortByLanguage, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownSortKey, s)
	}
}

// Next returns the other sort key.
func (k SortKey) Next() SortKey {
	if k == SortByLanguage {
		return SortByStars
	}

	return SortByLanguage
}

// Label is the short name shown in the UI.
func (k SortKey) Label() string {
	if k == SortByLanguage {
		return "language"
	}

	return "stars"
}

// Sort returns a sorted copy of list. Equal elements keep their input order.
// An unknown key returns an unsorted copy.
func Sort(list []model.Repository, key SortKey) []model.Repository {
	out := slices.Clone(list)
	if out == nil {
		out = []model.Repository{}
	}

	switch key {
	case SortByStars:
		slices.SortStableFunc(out, func(a, b model.Repository) int {
			return b.StarCount - a.StarCount
		})
	case SortByLanguage:
		coll := collate.New(language.Und)
		slices.SortStableFunc(out, func(a, b model.Repository) int {
			switch {
			case a.Language == nil && b.Language == nil:
				return 0
			case a.Language == nil:
				return 1
			case b.Language == nil:
				return -1
			default:
				return coll.CompareString(*a.Language, *b.Language)
			}
		})
	}

	return out
}

// Languages returns the distinct languages present in list, sorted.
func Languages(list []model.Repository) []string {
	seen := make(map[string]struct{})
	out := make([]string, 0)

	for _, r := range list {
		if r.Language == nil || *r.Language == "" {
			continue
		}

		if _, ok := seen[*r.Language]; ok {
			continue
		}

		seen[*r.Language] = struct{}{}
		out = append(out, *r.Language)
	}

	coll := collate.New(language.Und)
	coll.SortStrings(out)

	return out
}
