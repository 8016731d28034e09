package session

import (
	"encoding/json"
	"fmt"
	"log"
	"sync"

	"staybooking/pkg/models"
	"staybooking/pkg/storage"
)

// Session holds the signed-in user and bearer token. Both are mirrored to
// durable storage so a restart resumes the same identity.
type Session struct {
	store *storage.Store
	log   *log.Logger

	mu    sync.RWMutex
	token string
	user  *models.User
}

func New(store *storage.Store, logger *log.Logger) *Session {
	return &Session{store: store, log: logger}
}

// Restore rehydrates the session from storage. The session is authenticated
// only when both the token and the user are present and readable.
func (s *Session) Restore() error {
	token, hasToken, err := s.store.Get(storage.KeyToken)
	if err != nil {
		return fmt.Errorf("restore session token: %w", err)
	}

	var user models.User
	hasUser, err := s.store.GetJSON(storage.KeyUser, &user)
	if err != nil {
		if s.log != nil {
			s.log.Printf("Ignoring unreadable stored user: %v", err)
		}
		hasUser = false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !hasToken || !hasUser || token == "" {
		s.token, s.user = "", nil
		return nil
	}
	s.token, s.user = token, &user
	return nil
}

func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *Session) User() (models.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return models.User{}, false
	}
	return *s.user, true
}

func (s *Session) Authenticated() bool {
	_, ok := s.User()
	return ok
}

// Save persists the token and user together, then adopts them in memory.
func (s *Session) Save(auth models.AuthResponse) error {
	raw, err := json.Marshal(auth.User)
	if err != nil {
		return fmt.Errorf("encode session user: %w", err)
	}
	if err := s.store.SetPair(storage.KeyToken, auth.Token, storage.KeyUser, string(raw)); err != nil {
		return fmt.Errorf("save session: %w", err)
	}

	user := auth.User
	s.mu.Lock()
	s.token, s.user = auth.Token, &user
	s.mu.Unlock()
	return nil
}

// Clear forgets the identity in memory even if storage cannot be updated.
func (s *Session) Clear() error {
	s.mu.Lock()
	s.token, s.user = "", nil
	s.mu.Unlock()

	if err := s.store.Remove(storage.KeyToken, storage.KeyUser); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}
