package state

import (
	"maps"
	"sync"

	"github.com/custodia-labs/docdesk-cli/internal/core/domain"
)

// Ticket identifies one issued request for a concern.
type Ticket struct {
	Concern domain.Concern
	Seq     uint64
}

// ConcernState is the status and error of one concern.
type ConcernState struct {
	Status domain.RequestStatus
	Err    error
}

// Concerns maps each touched concern to its state. Untouched concerns are idle.
type Concerns map[domain.Concern]ConcernState

// Status returns the status of c, idle if it was never started.
func (cs Concerns) Status(c domain.Concern) domain.RequestStatus {
	if s, ok := cs[c]; ok {
		return s.Status
	}
	return domain.StatusIdle
}

// Err returns the error of c, nil unless its last request failed.
func (cs Concerns) Err(c domain.Concern) error {
	return cs[c].Err
}

// Loading returns true if c has a request in flight.
func (cs Concerns) Loading(c domain.Concern) bool {
	return cs.Status(c).IsLoading()
}

// tracker is the request bookkeeping shared by every container. It is not
// safe for concurrent use; the embedding container holds mu around calls.
type tracker struct {
	mu       sync.RWMutex
	seq      map[domain.Concern]uint64
	concerns Concerns
}

func newTracker() tracker {
	return tracker{
		seq:      make(map[domain.Concern]uint64),
		concerns: make(Concerns),
	}
}

// Begin marks c as loading, clears its error and issues a new ticket.
// Calling Begin again while a request is in flight simply issues a newer
// ticket; nothing is queued.
func (t *tracker) Begin(c domain.Concern) Ticket {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.begin(c)
}

// Fail records err against the ticket's concern. Snapshot data is left as it
// was. Returns false if a newer ticket has been issued, in which case nothing
// changes.
func (t *tracker) Fail(tk Ticket, err error) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.fail(tk, err)
}

// Succeed marks the ticket's concern succeeded without touching the snapshot.
// Used for completions that carry no data.
func (t *tracker) Succeed(tk Ticket) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.succeed(tk)
}

// IsLatest returns true if tk is the newest ticket issued for its concern.
func (t *tracker) IsLatest(tk Ticket) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.latest(tk)
}

// Status returns the current status of c.
func (t *tracker) Status(c domain.Concern) domain.RequestStatus {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.concerns.Status(c)
}

// Err returns the error recorded for c.
func (t *tracker) Err(c domain.Concern) error {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.concerns.Err(c)
}

// ClearError removes the error of c. A failed concern becomes idle.
func (t *tracker) ClearError(c domain.Concern) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.clearError(c)
}

// ClearErrors removes every recorded error.
func (t *tracker) ClearErrors() {
	t.mu.Lock()
	defer t.mu.Unlock()
	for c := range t.concerns {
		t.clearError(c)
	}
}

func (t *tracker) begin(c domain.Concern) Ticket {
	t.seq[c]++
	t.concerns[c] = ConcernState{Status: domain.StatusLoading}
	return Ticket{Concern: c, Seq: t.seq[c]}
}

// bump invalidates outstanding tickets for c and leaves it idle.
func (t *tracker) bump(c domain.Concern) Ticket {
	t.seq[c]++
	t.concerns[c] = ConcernState{Status: domain.StatusIdle}
	return Ticket{Concern: c, Seq: t.seq[c]}
}

// activate moves a ticket issued by bump to loading. Returns false if stale.
func (t *tracker) activate(tk Ticket) bool {
	if !t.latest(tk) {
		return false
	}
	t.concerns[tk.Concern] = ConcernState{Status: domain.StatusLoading}
	return true
}

func (t *tracker) latest(tk Ticket) bool {
	return tk.Seq != 0 && t.seq[tk.Concern] == tk.Seq
}

func (t *tracker) succeed(tk Ticket) bool {
	if !t.latest(tk) {
		return false
	}
	t.concerns[tk.Concern] = ConcernState{Status: domain.StatusSucceeded}
	return true
}

func (t *tracker) fail(tk Ticket, err error) bool {
	if !t.latest(tk) {
		return false
	}
	t.concerns[tk.Concern] = ConcernState{Status: domain.StatusFailed, Err: err}
	return true
}

func (t *tracker) clearError(c domain.Concern) {
	s, ok := t.concerns[c]
	if !ok || s.Err == nil {
		return
	}
	if s.Status == domain.StatusFailed {
		s.Status = domain.StatusIdle
	}
	s.Err = nil
	t.concerns[c] = s
}

// reset forgets every concern state but keeps sequence numbers, so tickets
// issued before the reset can never complete after it.
func (t *tracker) reset() {
	for c := range t.seq {
		t.seq[c]++
	}
	t.concerns = make(Concerns)
}

func (t *tracker) snapshot() Concerns {
	return maps.Clone(t.concerns)
}
