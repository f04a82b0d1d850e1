package store

import (
	"log/slog"
	"sync"

	"github.com/inovacc/trendr/internal/encoding"
	"github.com/inovacc/trendr/internal/model"
)

// StarredKey is the medium key holding the starred set.
const StarredKey = "starredRepositories"

// Stars is the persistent star store: the full starred set kept as one JSON
// array of repository snapshots under StarredKey.
type Stars struct {
	medium Medium
	logger *slog.Logger

	// serializes each read-modify-write; nothing is held across calls
	mu sync.Mutex
}

func NewStars(m Medium, logger *slog.Logger) *Stars {
	if logger == nil {
		logger = slog.Default()
	}

	return &Stars{medium: m, logger: logger}
}

// GetAll returns the stored set. A missing key, a corrupted value or a medium
// failure all yield an empty set; the cause is logged.
func (s *Stars) GetAll() []model.Repository {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.read()
}

// SaveAll replaces the stored set. Write failures are logged and dropped.
func (s *Stars) SaveAll(repos []model.Repository) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.write(repos); err != nil {
		s.logger.Error("failed to save starred repositories",
			slog.Int("count", len(repos)),
			slog.String("error", err.Error()))
	}
}

// Add stores a starred copy of repo unless its id is already present, and
// returns the resulting set. On write failure the set is nil.
func (s *Stars) Add(repo model.Repository) ([]model.Repository, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current := s.read()
	if indexOf(current, repo.ID) >= 0 {
		return current, nil
	}

	next := append(current, repo.WithStarred(true))
	if err := s.write(next); err != nil {
		return nil, err
	}

	return next, nil
}

// Remove drops every record with id and returns the remaining set. Removing an
// absent id writes nothing.
func (s *Stars) Remove(id int64) ([]model.Repository, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current := s.read()
	if indexOf(current, id) < 0 {
		return current, nil
	}

	next := make([]model.Repository, 0, len(current))
	for _, r := range current {
		if r.ID != id {
			next = append(next, r)
		}
	}

	if err := s.write(next); err != nil {
		return nil, err
	}

	return next, nil
}

// Contains reports whether id is stored; false on any read failure.
func (s *Stars) Contains(id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return indexOf(s.read(), id) >= 0
}

func (s *Stars) read() []model.Repository {
	raw, ok, err := s.medium.Get(StarredKey)
	if err != nil {
		s.logger.Error("failed to read starred repositories", slog.String("error", err.Error()))
		return []model.Repository{}
	}

	if !ok {
		return []model.Repository{}
	}

	repos, err := encoding.Decode[[]model.Repository](raw)
	if err != nil {
		s.logger.Error("stored starred repositories are corrupted", slog.String("error", err.Error()))
		return []model.Repository{}
	}

	if repos == nil {
		return []model.Repository{}
	}

	return repos
}

func (s *Stars) write(repos []model.Repository) error {
	stamped := make([]model.Repository, len(repos))
	for i, r := range repos {
		stamped[i] = r.WithStarred(true)
	}

	value, err := encoding.Encode(stamped)
	if err != nil {
		return err
	}

	return s.medium.Set(StarredKey, value)
}

func indexOf(repos []model.Repository, id int64) int {
	for i, r := range repos {
		if r.ID == id {
			return i
		}
	}

	return -1
}
