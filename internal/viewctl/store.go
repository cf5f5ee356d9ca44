package viewctl

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/guttosm/coinpulse/internal/logger"
)

type session struct {
	ctrl     *Controller
	lastSeen time.Time
}

// Store keeps one Controller per browser session, keyed by the session
// cookie value. Sessions idle for longer than the TTL are closed by Sweep.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*session
	ttl      time.Duration
	newCtrl  func() *Controller
	now      func() time.Time
}

// NewStore returns an empty store; newCtrl builds the controller of each new
// session.
func NewStore(ttl time.Duration, newCtrl func() *Controller) *Store {
	return &Store{
		sessions: make(map[string]*session),
		ttl:      ttl,
		newCtrl:  newCtrl,
		now:      time.Now,
	}
}

// Acquire returns the controller of session id and touches it. An empty or
// unknown id starts a new session; the returned id is the one to keep.
func (s *Store) Acquire(id string) (string, *Controller) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if sess, ok := s.sessions[id]; ok && id != "" {
		sess.lastSeen = now
		return id, sess.ctrl
	}
	id = uuid.NewString()
	sess := &session{ctrl: s.newCtrl(), lastSeen: now}
	s.sessions[id] = sess
	return id, sess.ctrl
}

// Lookup returns the controller of id without creating one.
func (s *Store) Lookup(id string) (*Controller, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		return nil, false
	}
	sess.lastSeen = s.now()
	return sess.ctrl, true
}

// Sweep closes and forgets sessions idle for longer than the TTL and returns
// how many were removed.
func (s *Store) Sweep() int {
	s.mu.Lock()
	var expired []*Controller
	now := s.now()
	for id, sess := range s.sessions {
		if now.Sub(sess.lastSeen) > s.ttl {
			expired = append(expired, sess.ctrl)
			delete(s.sessions, id)
		}
	}
	s.mu.Unlock()

	for _, c := range expired {
		c.Close()
	}
	return len(expired)
}

// Len returns the number of live sessions.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Run sweeps every interval until ctx is done, then closes all sessions.
func (s *Store) Run(ctx context.Context, interval time.Duration) {
	t := time.NewTicker(interval)
	defer t.Stop()
	log := logger.Component("sessions")
	for {
		select {
		case <-ctx.Done():
			s.closeAll()
			return
		case <-t.C:
			if n := s.Sweep(); n > 0 {
				log.Debug().Int("expired", n).Int("live", s.Len()).Msg("sessions swept")
			}
		}
	}
}

func (s *Store) closeAll() {
	s.mu.Lock()
	all := s.sessions
	s.sessions = make(map[string]*session)
	s.mu.Unlock()
	for _, sess := range all {
		sess.ctrl.Close()
	}
}
