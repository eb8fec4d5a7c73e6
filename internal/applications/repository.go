package applications

import (
	"context"
	"sync"
)

// Repository stores applications. Implementations must reject a second
// application for the same user and job with ErrAlreadyApplied.
type Repository interface {
	Create(ctx context.Context, app Application) error
	List(ctx context.Context, userID string) ([]Application, error)
	Get(ctx context.Context, userID, id string) (Application, error)
	GetByJob(ctx context.Context, userID, jobID string) (Application, error)
	// AppendTimeline sets the status and appends entry in one step.
	AppendTimeline(ctx context.Context, userID, id string, entry TimelineEntry) (Application, error)
}

// MemoryRepository keeps applications in process memory.
type MemoryRepository struct {
	mu   sync.RWMutex
	apps []Application
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

func (r *MemoryRepository) Create(_ context.Context, app Application) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.indexByJob(app.UserID, app.JobID) != -1 {
		return ErrAlreadyApplied
	}

	r.apps = append(r.apps, clone(app))
	return nil
}

func (r *MemoryRepository) List(_ context.Context, userID string) ([]Application, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Application, 0)
	for _, app := range r.apps {
		if app.UserID == userID {
			out = append(out, clone(app))
		}
	}
	return out, nil
}

func (r *MemoryRepository) Get(_ context.Context, userID, id string) (Application, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if i := r.index(userID, id); i != -1 {
		return clone(r.apps[i]), nil
	}
	return Application{}, ErrNotFound
}

func (r *MemoryRepository) GetByJob(_ context.Context, userID, jobID string) (Application, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if i := r.indexByJob(userID, jobID); i != -1 {
		return clone(r.apps[i]), nil
	}
	return Application{}, ErrNotFound
}

func (r *MemoryRepository) AppendTimeline(_ context.Context, userID, id string, entry TimelineEntry) (Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.index(userID, id)
	if i == -1 {
		return Application{}, ErrNotFound
	}

	app := &r.apps[i]
	app.Timeline = append(app.Timeline, entry)
	app.Status = entry.Status
	app.UpdatedAt = entry.Date

	return clone(*app), nil
}

func (r *MemoryRepository) index(userID, id string) int {
	for i, app := range r.apps {
		if app.ID == id && app.UserID == userID {
			return i
		}
	}
	return -1
}

func (r *MemoryRepository) indexByJob(userID, jobID string) int {
	for i, app := range r.apps {
		if app.JobID == jobID && app.UserID == userID {
			return i
		}
	}
	return -1
}

func clone(app Application) Application {
	app.Timeline = append([]TimelineEntry(nil), app.Timeline...)
	return app
}
