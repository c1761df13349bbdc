// Package registry holds the in-memory activity catalog and the signup
// rules that govern it. A Registry is built once from a seed at process
// start and lives until the process exits; nothing is persisted.
package registry

import (
	"errors"
	"fmt"
	"slices"
	"sync"
)

// Activity describes one extracurricular offering. Participants are kept
// in signup order and never reordered.
type Activity struct {
	Description     string   `json:"description" toml:"description"`
	Schedule        string   `json:"schedule" toml:"schedule"`
	MaxParticipants int      `json:"max_participants" toml:"max_participants"`
	Participants    []string `json:"participants" toml:"participants"`
}

var (
	// ErrNotFound means the requested activity name is not in the catalog.
	ErrNotFound = errors.New("activity not found")
	// ErrAlreadyEnrolled means the email is already on the participant list.
	ErrAlreadyEnrolled = errors.New("already signed up")
	// ErrFull means the activity is at max capacity.
	ErrFull = errors.New("activity full")
)

// Registry is the authoritative in-memory state. A single lock guards the
// signup checks and the append so capacity and uniqueness hold even when
// the HTTP server runs handlers concurrently.
type Registry struct {
	mu         sync.RWMutex
	activities map[string]*Activity
}

// New validates the seed and builds a registry from a deep copy of it.
// The caller's seed map is never aliased, so the same seed value can be
// reused to build fresh registries between tests.
func New(seed map[string]Activity) (*Registry, error) {
	if len(seed) == 0 {
		return nil, errors.New("seed defines no activities")
	}

	activities := make(map[string]*Activity, len(seed))
	for name, activity := range seed {
		if name == "" {
			return nil, errors.New("activity name must not be empty")
		}
		if activity.MaxParticipants <= 0 {
			return nil, fmt.Errorf("activity %q: max_participants must be positive, got %d", name, activity.MaxParticipants)
		}
		if len(activity.Participants) > activity.MaxParticipants {
			return nil, fmt.Errorf("activity %q: %d participants exceed capacity %d", name, len(activity.Participants), activity.MaxParticipants)
		}
		seen := make(map[string]struct{}, len(activity.Participants))
		for _, email := range activity.Participants {
			if _, dup := seen[email]; dup {
				return nil, fmt.Errorf("activity %q: duplicate participant %q", name, email)
			}
			seen[email] = struct{}{}
		}

		copied := activity
		copied.Participants = slices.Clone(activity.Participants)
		activities[name] = &copied
	}

	return &Registry{activities: activities}, nil
}

// List returns a snapshot of the full catalog keyed by activity name.
// The snapshot is a deep copy; mutating it never touches registry state.
func (r *Registry) List() map[string]Activity {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[string]Activity, len(r.activities))
	for name, activity := range r.activities {
		copied := *activity
		copied.Participants = slices.Clone(activity.Participants)
		out[name] = copied
	}
	return out
}

// Signup appends email to the named activity's participant list.
//
// Preconditions are checked in a fixed order and the first failure wins:
// the activity must exist (ErrNotFound), the email must not already be
// enrolled (ErrAlreadyEnrolled), and the activity must be below capacity
// (ErrFull). On any failure the registry is left unchanged.
//
// The name must match a catalog key exactly, case and whitespace included.
// The email is accepted verbatim; no format validation is performed.
func (r *Registry) Signup(name, email string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	activity, ok := r.activities[name]
	if !ok {
		return ErrNotFound
	}
	if slices.Contains(activity.Participants, email) {
		return ErrAlreadyEnrolled
	}
	if len(activity.Participants) >= activity.MaxParticipants {
		return ErrFull
	}

	activity.Participants = append(activity.Participants, email)
	return nil
}

// Enrolled reports the current participant count for name, or 0 when the
// activity does not exist.
func (r *Registry) Enrolled(name string) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if activity, ok := r.activities[name]; ok {
		return len(activity.Participants)
	}
	return 0
}

// Len reports how many activities are in the catalog.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.activities)
}
