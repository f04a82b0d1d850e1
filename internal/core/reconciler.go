package core

import (
	"context"
	"log/slog"
	"slices"
	"sync"

	"github.com/inovacc/trendr/internal/github"
	"github.com/inovacc/trendr/internal/model"
)

// StarStore is the persistent star set as seen by the Reconciler.
// *store.Stars implements it.
type StarStore interface {
	GetAll() []model.Repository
	Add(repo model.Repository) ([]model.Repository, error)
	Remove(id int64) ([]model.Repository, error)
	Contains(id int64) bool
}

// invalidator is implemented by sources that can drop cached results.
type invalidator interface {
	Invalidate() error
}

// Reconcile returns trending with every entry's IsStarred set to whether its
// id is in starred, plus a copy of starred. Neither input is modified.
func Reconcile(trending, starred []model.Repository) model.RepositoriesState {
	ids := make(map[int64]struct{}, len(starred))
	for _, r := range starred {
		ids[r.ID] = struct{}{}
	}

	all := make([]model.Repository, len(trending))
	for i, r := range trending {
		_, ok := ids[r.ID]
		all[i] = r.WithStarred(ok)
	}

	return model.RepositoriesState{
		AllRepositories:     all,
		StarredRepositories: cloneList(starred),
	}
}

type opStatus struct {
	pending bool
	err     error
}

// Reconciler owns the trending and starred lists of one session and keeps
// every IsStarred flag in the trending list equal to the star store contents.
type Reconciler struct {
	source github.Source
	stars  StarStore
	logger *slog.Logger

	mu         sync.Mutex
	all        []model.Repository
	starred    []model.Repository
	trending   opStatus
	starRead   opStatus
	generation uint64
}

// NewReconciler returns a Reconciler with empty lists and both loads pending.
func NewReconciler(source github.Source, stars StarStore, logger *slog.Logger) *Reconciler {
	if logger == nil {
		logger = slog.Default()
	}

	return &Reconciler{
		source:   source,
		stars:    stars,
		logger:   logger,
		all:      []model.Repository{},
		starred:  []model.Repository{},
		trending: opStatus{pending: true},
		starRead: opStatus{pending: true},
	}
}

// Load reads the trending source and the star store concurrently. Each result
// is applied as soon as it arrives. The returned error is the fetch failure,
// if any; it is also reflected in State.
func (r *Reconciler) Load(ctx context.Context) error {
	gen := r.begin(true)

	var (
		wg       sync.WaitGroup
		fetchErr error
	)

	wg.Add(2)

	go func() {
		defer wg.Done()

		// read under mu so a toggle cannot land between snapshot and apply
		r.mu.Lock()
		r.starred = cloneList(r.stars.GetAll())
		r.starRead = opStatus{}
		r.mu.Unlock()
	}()

	go func() {
		defer wg.Done()
		fetchErr = r.fetch(ctx, gen)
	}()

	wg.Wait()

	return fetchErr
}

// Refresh refetches the trending list and annotates it against the current
// store contents. Cached source results are invalidated first. When a newer
// Refresh started meanwhile, the result is dropped and ErrStaleRefresh is
// returned.
func (r *Reconciler) Refresh(ctx context.Context) error {
	if inv, ok := r.source.(invalidator); ok {
		if err := inv.Invalidate(); err != nil {
			r.logger.Warn("failed to invalidate trending cache", slog.String("error", err.Error()))
		}
	}

	return r.fetch(ctx, r.begin(false))
}

func (r *Reconciler) begin(withStars bool) uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.generation++
	r.trending.pending = true
	if withStars {
		r.starRead.pending = true
	}

	return r.generation
}

func (r *Reconciler) fetch(ctx context.Context, gen uint64) error {
	trending, err := r.source.Trending(ctx)

	r.mu.Lock()
	defer r.mu.Unlock()

	if gen != r.generation {
		r.logger.Debug("dropping stale trending result",
			slog.Uint64("generation", gen),
			slog.Uint64("latest", r.generation))

		return ErrStaleRefresh
	}

	r.trending = opStatus{err: err}

	if err != nil {
		r.logger.Error("failed to fetch trending repositories", slog.String("error", err.Error()))
		return err
	}

	// annotate against the store as it is now, not as it was at Load
	all := Reconcile(trending, r.stars.GetAll()).AllRepositories
	r.all = all

	r.logger.Debug("trending repositories loaded",
		slog.Uint64("generation", gen),
		slog.Int("count", len(all)))

	return nil
}

// State returns a deep copy of the view model; callers may modify it freely.
func (r *Reconciler) State() model.View {
	r.mu.Lock()
	defer r.mu.Unlock()

	v := model.View{
		RepositoriesState: model.RepositoriesState{
			AllRepositories:     cloneList(r.all),
			StarredRepositories: cloneList(r.starred),
		},
		LoadingState: model.LoadingState{
			Loading: r.trending.pending || r.starRead.pending,
		},
	}

	if r.trending.err != nil || r.starRead.err != nil {
		v.Error = LoadErrorMessage
	}

	return v
}

// ToggleStar stars repo when the store does not hold its id and unstars it
// otherwise, then replaces the starred list with the store result and flips
// the matching trending entry. It returns the new starred set. A store failure
// is returned as *ToggleError and leaves both lists unchanged.
//
// The store check, the store write and the list update happen under one lock,
// so a concurrent Load or Refresh never applies a store snapshot older than a
// completed toggle.
func (r *Reconciler) ToggleStar(ctx context.Context, repo model.Repository) ([]model.Repository, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	wasStarred := r.stars.Contains(repo.ID)

	var (
		next []model.Repository
		err  error
		op   = "star"
	)

	if wasStarred {
		op = "unstar"
		next, err = r.stars.Remove(repo.ID)
	} else {
		next, err = r.stars.Add(repo)
	}

	if err != nil {
		r.logger.Error("star toggle failed",
			slog.Int64("id", repo.ID),
			slog.String("op", op),
			slog.String("error", err.Error()))

		return nil, &ToggleError{ID: repo.ID, Op: op, Err: err}
	}

	r.starred = cloneList(next)

	all := make([]model.Repository, len(r.all))
	for i, existing := range r.all {
		if existing.ID == repo.ID {
			existing = existing.WithStarred(!wasStarred)
		}

		all[i] = existing
	}

	r.all = all

	r.logger.Info("star toggled",
		slog.Int64("id", repo.ID),
		slog.String("op", op),
		slog.Int("starred", len(next)))

	return cloneList(next), nil
}

// Find looks id up in the trending list, then in the starred list.
func (r *Reconciler) Find(id int64) (model.Repository, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, list := range [][]model.Repository{r.all, r.starred} {
		if i := slices.IndexFunc(list, func(repo model.Repository) bool { return repo.ID == id }); i >= 0 {
			return list[i], true
		}
	}

	return model.Repository{}, false
}

// ToggleByID toggles the repository with id, or returns ErrNotFound.
func (r *Reconciler) ToggleByID(ctx context.Context, id int64) ([]model.Repository, error) {
	repo, ok := r.Find(id)
	if !ok {
		return nil, ErrNotFound
	}

	return r.ToggleStar(ctx, repo)
}

// Languages returns the distinct languages of the trending list.
func (r *Reconciler) Languages() []string {
	r.mu.Lock()
	all := cloneList(r.all)
	r.mu.Unlock()

	return Languages(all)
}

func cloneList(list []model.Repository) []model.Repository {
	if list == nil {
		return []model.Repository{}
	}

	out := make([]model.Repository, len(list))
	for i, repo := range list {
		out[i] = repo.Clone()
	}

	return out
}
