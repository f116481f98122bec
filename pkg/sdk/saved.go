package jobmatch

import (
	"context"
	"net/http"

	"github.com/kailas-cloud/jobmatch/internal/domain/savedjob"
	"github.com/kailas-cloud/jobmatch/pkg/optimistic"
)

// SavedJobService manages the user's bookmarked jobs.
type SavedJobService struct {
	c *Client
}

// SavedJobs is the user's saved set with the postings that still exist.
type SavedJobs struct {
	IDs  []string `json:"job_ids"`
	Jobs []Job    `json:"jobs"`
}

type savedStatus struct {
	JobID string `json:"job_id"`
	Saved bool   `json:"saved"`
}

// List returns the saved job ids and postings.
func (s *SavedJobService) List(ctx context.Context) (SavedJobs, error) {
	var out SavedJobs
	err := s.c.do(ctx, request{op: "saved.list", method: http.MethodGet, path: "/saved-jobs"}, &out)
	return out, err
}

// IsSaved reports whether jobID is saved.
func (s *SavedJobService) IsSaved(ctx context.Context, jobID string) (bool, error) {
	var st savedStatus
	err := s.c.do(ctx, request{op: "saved.get", method: http.MethodGet, path: "/saved-jobs/" + escape(jobID)}, &st)
	return st.Saved, err
}

// Save bookmarks jobID. Saving twice is a no-op.
func (s *SavedJobService) Save(ctx context.Context, jobID string) error {
	return s.c.do(ctx, request{op: "saved.save", method: http.MethodPut, path: "/saved-jobs/" + escape(jobID)}, nil)
}

// Unsave removes the bookmark. Unsaving a job that is not saved is a no-op.
func (s *SavedJobService) Unsave(ctx context.Context, jobID string) error {
	return s.c.do(ctx, request{op: "saved.unsave", method: http.MethodDelete, path: "/saved-jobs/" + escape(jobID)}, nil)
}

// SavedJobToggler holds a local saved set and flips bookmarks optimistically.
type SavedJobToggler struct {
	svc   *SavedJobService
	state *optimistic.State[savedjob.Set]
}

// Toggler loads the saved set and returns a toggler over it.
// onChange, if set, observes every local change including reverts.
func (s *SavedJobService) Toggler(ctx context.Context, onChange func(savedjob.Set)) (*SavedJobToggler, error) {
	list, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	return &SavedJobToggler{
		svc:   s,
		state: optimistic.NewState(savedjob.NewSet(list.IDs...), onChange),
	}, nil
}

// Saved returns the current local set.
func (t *SavedJobToggler) Saved() savedjob.Set { return t.state.Get() }

// Toggle flips jobID locally at once and sends the matching save or unsave.
// If the request fails, only this flip is undone; toggles of other jobs made
// meanwhile are kept.
func (t *SavedJobToggler) Toggle(ctx context.Context, jobID string) *optimistic.Pending {
	// The action is fixed by the state at Apply time, which Run calls synchronously.
	var action savedjob.Action
	_, pending := optimistic.Run(ctx, t.state, optimistic.Mutation[savedjob.Set]{
		Apply: func(s savedjob.Set) savedjob.Set {
			next, a := savedjob.Toggle(s, jobID)
			action = a
			return next
		},
		Commit: func(ctx context.Context) error {
			if action == savedjob.ActionSave {
				return t.svc.Save(ctx, jobID)
			}
			return t.svc.Unsave(ctx, jobID)
		},
		Revert: func(s savedjob.Set) savedjob.Set {
			return savedjob.Undo(s, jobID, action)
		},
	})
	return pending
}

// Reload replaces the local set with the server's.
func (t *SavedJobToggler) Reload(ctx context.Context) error {
	list, err := t.svc.List(ctx)
	if err != nil {
		return err
	}
	t.state.Set(savedjob.NewSet(list.IDs...))
	return nil
}
