package swipe

import (
	"sync"

	"cullinary-backend/domain"

	"github.com/google/uuid"
)

type sessionKey struct {
	menuID   uuid.UUID
	userID   uuid.UUID
	category domain.Category
}

// feedSession tracks which dishes were handed out but not yet swiped, so
// overlapping catalog pages never re-show a card still awaiting a decision.
// Swiped exclusion lives in the swipes table; this state is per-process and
// safe to lose. Each session carries its own mutex so assembling one
// participant's feed never blocks another's.
type feedSession struct {
	mu             sync.Mutex
	delivered      map[uuid.UUID]struct{}
	deliveredCount int
}

type sessionTracker struct {
	mu       sync.Mutex
	sessions map[sessionKey]*feedSession
}

func newSessionTracker() *sessionTracker {
	return &sessionTracker{sessions: make(map[sessionKey]*feedSession)}
}

func (t *sessionTracker) get(key sessionKey) *feedSession {
	t.mu.Lock()
	defer t.mu.Unlock()
	sess, ok := t.sessions[key]
	if !ok {
		sess = &feedSession{delivered: make(map[uuid.UUID]struct{})}
		t.sessions[key] = sess
	}
	return sess
}

// markSwiped drops the dish from every slot's delivered set for the
// participant; the dish's category may differ from the slot being browsed.
func (t *sessionTracker) markSwiped(menuID, userID, dishID uuid.UUID) {
	t.mu.Lock()
	var found []*feedSession
	for _, category := range domain.Categories() {
		if sess, ok := t.sessions[sessionKey{menuID, userID, category}]; ok {
			found = append(found, sess)
		}
	}
	t.mu.Unlock()

	for _, sess := range found {
		sess.mu.Lock()
		delete(sess.delivered, dishID)
		sess.mu.Unlock()
	}
}

// dropMenu evicts every session of a menu once it completes.
func (t *sessionTracker) dropMenu(menuID uuid.UUID) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for key := range t.sessions {
		if key.menuID == menuID {
			delete(t.sessions, key)
		}
	}
}

func (sess *feedSession) isDelivered(dishID uuid.UUID) bool {
	_, ok := sess.delivered[dishID]
	return ok
}

func (sess *feedSession) deliver(dishID uuid.UUID) {
	if _, ok := sess.delivered[dishID]; ok {
		return
	}
	sess.delivered[dishID] = struct{}{}
	sess.deliveredCount++
}

// reset clears delivered tracking (keeping nothing) so seen-but-unswiped
// dishes become eligible again; the swiped exclusion set is untouched.
func (sess *feedSession) reset() {
	sess.delivered = make(map[uuid.UUID]struct{})
	sess.deliveredCount = 0
}
