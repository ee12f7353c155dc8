package workflow

import (
	"context"
	"sync"
	"time"

	"github.com/saulo-duarte/mindpop-lambda/internal/config"
)

// Registry holds live workflows by attempt id.
type Registry struct {
	mu        sync.Mutex
	sessions  map[string]*Workflow
	starting  map[string]*startLock
	retention time.Duration
	now       func() time.Time
}

func NewRegistry(retention time.Duration) *Registry {
	return &Registry{
		sessions:  make(map[string]*Workflow),
		starting:  make(map[string]*startLock),
		retention: retention,
		now:       time.Now,
	}
}

type startLock struct {
	mu   sync.Mutex
	refs int
}

// LockStart serializes attempt starts of one student for one quiz. The
// returned func releases the lock.
func (r *Registry) LockStart(userID, quizID string) func() {
	key := userID + "\x00" + quizID

	r.mu.Lock()
	l, ok := r.starting[key]
	if !ok {
		l = &startLock{}
		r.starting[key] = l
	}
	l.refs++
	r.mu.Unlock()

	l.mu.Lock()
	return func() {
		l.mu.Unlock()

		r.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(r.starting, key)
		}
		r.mu.Unlock()
	}
}

func (r *Registry) Put(w *Workflow) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[w.AttemptID()] = w
}

// Get returns the workflow only to the student who started it.
func (r *Registry) Get(attemptID, userID string) (*Workflow, error) {
	r.mu.Lock()
	w, ok := r.sessions[attemptID]
	r.mu.Unlock()

	if !ok || w.UserID() != userID {
		return nil, ErrAttemptNotFound
	}
	return w, nil
}

// TakeOpen removes and returns the student's unsubmitted workflows for a
// quiz.
func (r *Registry) TakeOpen(userID, quizID string) []*Workflow {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []*Workflow
	for id, w := range r.sessions {
		if w.UserID() != userID || w.QuizID() != quizID {
			continue
		}
		if st := w.State(); st == StateInProgress || st == StateError {
			delete(r.sessions, id)
			out = append(out, w)
		}
	}
	return out
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// Sweep drops completed and failed workflows idle for longer than the
// retention window, and returns how many were dropped.
func (r *Registry) Sweep() int {
	cutoff := r.now().Add(-r.retention)

	r.mu.Lock()
	defer r.mu.Unlock()

	n := 0
	for id, w := range r.sessions {
		st, last := w.idleSince()
		if st != StateCompleted && st != StateError {
			continue
		}
		if last.Before(cutoff) {
			w.Abandon()
			delete(r.sessions, id)
			n++
		}
	}
	return n
}

// Run sweeps every interval until ctx is done.
func (r *Registry) Run(ctx context.Context, interval time.Duration) {
	t := time.NewTicker(interval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if n := r.Sweep(); n > 0 {
				config.WithContext(ctx).WithField("dropped", n).Debug("Sessões de tentativa removidas")
			}
		}
	}
}
