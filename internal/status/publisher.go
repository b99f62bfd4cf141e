package status

import (
	"sync/atomic"

	"github.com/fyrsmithlabs/keepsake/internal/journey"
)

// Source yields the most recent journey snapshot.
type Source interface {
	// Latest returns false until a snapshot has been published.
	Latest() (journey.Snapshot, bool)
}

// Publisher copies the session state after every engine event so that
// other goroutines can read it without touching the session.
type Publisher struct {
	session *journey.Session
	latest  atomic.Pointer[journey.Snapshot]
}

var (
	_ journey.Observer = (*Publisher)(nil)
	_ Source           = (*Publisher)(nil)
)

// NewPublisher returns a publisher for s. Nothing is published until the
// first event or an explicit Publish.
func NewPublisher(s *journey.Session) *Publisher {
	return &Publisher{session: s}
}

// Publish stores the current state. Call it from the goroutine that drives
// the session.
func (p *Publisher) Publish() {
	snap := p.session.Snapshot()
	p.latest.Store(&snap)
}

// Observe implements journey.Observer.
func (p *Publisher) Observe(journey.Event) { p.Publish() }

// Latest implements Source. Safe for concurrent use.
func (p *Publisher) Latest() (journey.Snapshot, bool) {
	snap := p.latest.Load()
	if snap == nil {
		return journey.Snapshot{}, false
	}
	return *snap, true
}
