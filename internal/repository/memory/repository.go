package memory

import (
	"sync"

	"github.com/omarshaarawi/powerboard/internal/models"
)

// Repository keeps the last committed view. Each refresh takes a generation
// from Begin; Commit refuses anything older than what is already stored.
type Repository struct {
	view      *models.View
	state     models.State
	started   uint64
	committed uint64
	mu        sync.RWMutex
}

func NewRepository() *Repository {
	return &Repository{state: models.StateIdle}
}

// Begin allocates the next generation and moves the state to loading.
func (r *Repository) Begin() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.started++
	r.state = models.StateLoading
	return r.started
}

// Commit stores view if generation is newer than the stored one. The state
// only leaves loading when no newer refresh is still in flight.
func (r *Repository) Commit(generation uint64, view models.View) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if generation <= r.committed {
		return false
	}
	r.committed = generation
	r.view = &view
	if generation == r.started {
		r.state = view.State
	}
	return true
}

func (r *Repository) GetView() (models.View, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.view == nil {
		return models.View{}, false
	}
	return *r.view, true
}

func (r *Repository) GetState() models.State {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.state
}
