package model

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestRepository_NullableFields(t *testing.T) {
	var repo Repository

	if got := repo.LanguageName(); got != "" {
		t.Errorf("LanguageName() = %q, want empty", got)
	}

	if got := repo.DescriptionText(); got != "" {
		t.Errorf("DescriptionText() = %q, want empty", got)
	}

	repo.Language = StringPtr("Go")
	repo.Description = StringPtr("a tool")

	if got := repo.LanguageName(); got != "Go" {
		t.Errorf("LanguageName() = %q, want %q", got, "Go")
	}

	if got := repo.DescriptionText(); got != "a tool" {
		t.Errorf("DescriptionText() = %q, want %q", got, "a tool")
	}
}

func TestStringPtr_Empty(t *testing.T) {
	if StringPtr("") != nil {
		t.Error("StringPtr(\"\") should be nil")
	}
}

func TestRepository_WithStarredCopies(t *testing.T) {
	repo := Repository{ID: 7, Name: "seven"}

	starred := repo.WithStarred(true)

	if !starred.IsStarred {
		t.Error("WithStarred(true).IsStarred = false, want true")
	}

	if repo.IsStarred {
		t.Error("WithStarred must not modify the receiver")
	}
}

func TestRepository_JSONWireNames(t *testing.T) {
	created := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	repo := Repository{
		ID:        42,
		Name:      "hello",
		FullName:  "octocat/hello",
		URL:       "https://github.com/octocat/hello",
		StarCount: 1500,
		Owner:     Owner{Login: "octocat"},
		CreatedAt: created,
		IsStarred: true,
	}

	data, err := json.Marshal(repo)
	if err != nil {
		t.Fatalf("json.Marshal() error = %v", err)
	}

	s := string(data)
	for _, want := range []string{
		`"id":42`,
		`"full_name":"octocat/hello"`,
		`"html_url":"https://github.com/octocat/hello"`,
		`"stargazers_count":1500`,
		`"language":null`,
		`"description":null`,
		`"owner":{"login":"octocat"}`,
		`"isStarred":true`,
	} {
		if !strings.Contains(s, want) {
			t.Errorf("JSON %s does not contain %s", s, want)
		}
	}
}

func TestView_FlattensEmbeddedState(t *testing.T) {
	v := View{
		RepositoriesState: RepositoriesState{AllRepositories: []Repository{{ID: 1}}},
		LoadingState:      LoadingState{Loading: true},
	}

	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("json.Marshal() error = %v", err)
	}

	s := string(data)
	if !strings.Contains(s, `"allRepositories":[`) || !strings.Contains(s, `"loading":true`) {
		t.Errorf("unexpected view JSON: %s", s)
	}

	if strings.Contains(s, `"error"`) {
		t.Errorf("empty error should be omitted: %s", s)
	}
}

func TestRepository_CloneSharesNoPointers(t *testing.T) {
	repo := Repository{ID: 1, Language: StringPtr("Go"), Description: StringPtr("a tool")}

	clone := repo.Clone()
	*clone.Language = "Rust"
	*clone.Description = "changed"

	if got := repo.LanguageName(); got != "Go" {
		t.Errorf("LanguageName() after clone edit = %q, want %q", got, "Go")
	}

	if got := repo.DescriptionText(); got != "a tool" {
		t.Errorf("DescriptionText() after clone edit = %q, want %q", got, "a tool")
	}

	if empty := (Repository{}).Clone(); empty.Language != nil || empty.Description != nil {
		t.Errorf("Clone() of empty repository allocated pointers")
	}
}
