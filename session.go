package pill

import (
	"sync"

	"github.com/zzazz/pill-go/adapters"
)

// Session holds the server-assigned tracking identifiers. Both fields are
// first-write-wins: the first grant carrying a value sets it, later grants
// are ignored. The session is ready once event_id is set; becoming ready
// fires the onReady callback exactly once.
type Session struct {
	mu      sync.Mutex
	userID  string
	eventID string

	store   StorageAdapter
	logger  LoggerAdapter
	onReady func()
}

// NewSession creates an unbound session. onReady may be nil.
func NewSession(store StorageAdapter, logger LoggerAdapter, onReady func()) *Session {
	return &Session{
		store:   store,
		logger:  logger,
		onReady: onReady,
	}
}

// Restore loads previously persisted identifiers from the storage adapter
// and binds them. A restored event_id makes the session ready immediately.
func (s *Session) Restore() {
	userID, err := s.store.Get(adapters.StorageKeyUserID)
	if err != nil {
		s.logger.Warn("Failed to restore user id: %v", err)
	}
	eventID, err := s.store.Get(adapters.StorageKeyEventID)
	if err != nil {
		s.logger.Warn("Failed to restore event id: %v", err)
	}
	if userID != "" || eventID != "" {
		s.Bind(SessionGrant{UserID: userID, EventID: eventID})
	}
}

// Bind applies a grant. Empty fields and already-set fields are ignored, so
// binding is idempotent and a grant with neither field is a no-op.
func (s *Session) Bind(grant SessionGrant) {
	s.mu.Lock()
	if grant.UserID != "" && s.userID == "" {
		s.userID = grant.UserID
		s.persist(adapters.StorageKeyUserID, grant.UserID)
	}
	becameReady := false
	if grant.EventID != "" && s.eventID == "" {
		s.eventID = grant.EventID
		s.persist(adapters.StorageKeyEventID, grant.EventID)
		becameReady = true
	}
	s.mu.Unlock()

	if becameReady {
		s.logger.Debug("Session bound, flushing queued events")
		if s.onReady != nil {
			s.onReady()
		}
	}
}

// persist is called with s.mu held; storage failures are logged and do not
// affect the in-memory session.
func (s *Session) persist(key, value string) {
	if err := s.store.Set(key, value); err != nil {
		s.logger.Warn("Failed to persist %s: %v", key, err)
	}
}

// Ready reports whether an event_id has been bound.
func (s *Session) Ready() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.eventID != ""
}

// UserID returns the bound user id, or "".
func (s *Session) UserID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.userID
}

// EventID returns the bound event id, or "".
func (s *Session) EventID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.eventID
}
