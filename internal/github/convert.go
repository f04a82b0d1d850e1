package github

import (
	"fmt"

	gh "github.com/google/go-github/v82/github"
	"github.com/inovacc/trendr/internal/model"
)

// toRepository validates one search result. Records without an id or a name
// are rejected; everything optional is normalized so callers never re-check.
func toRepository(r *gh.Repository) (model.Repository, bool) {
	if r == nil || r.GetID() == 0 || r.GetName() == "" {
		return model.Repository{}, false
	}

	login := r.GetOwner().GetLogin()

	fullName := r.GetFullName()
	if fullName == "" && login != "" {
		fullName = login + "/" + r.GetName()
	}

	url := r.GetHTMLURL()
	if url == "" && fullName != "" {
		url = fmt.Sprintf("https://github.com/%s", fullName)
	}

	return model.Repository{
		ID:          r.GetID(),
		Name:        r.GetName(),
		FullName:    fullName,
		URL:         url,
		Description: model.StringPtr(r.GetDescription()),
		StarCount:   max(r.GetStargazersCount(), 0),
		Language:    model.StringPtr(r.GetLanguage()),
		Owner:       model.Owner{Login: login},
		CreatedAt:   r.GetCreatedAt().UTC(),
	}, true
}
