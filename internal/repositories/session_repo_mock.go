package repositories

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"wellness/internal/models"
)

// MockSessionRepository is an in-memory implementation of SessionRepository.
type MockSessionRepository struct {
	sessions map[string]models.Session
	mu       sync.RWMutex
}

// NewMockSessionRepository creates a new instance of MockSessionRepository.
func NewMockSessionRepository() *MockSessionRepository {
	return &MockSessionRepository{
		sessions: make(map[string]models.Session),
	}
}

// GetAllByOwner returns all sessions for an owner, most recently updated first.
func (r *MockSessionRepository) GetAllByOwner(ownerID string) ([]models.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	sessionList := make([]models.Session, 0)
	for _, s := range r.sessions {
		if s.UserID == ownerID {
			sessionList = append(sessionList, s)
		}
	}
	sort.Slice(sessionList, func(i, j int) bool {
		return sessionList[i].UpdatedAt.After(sessionList[j].UpdatedAt)
	})
	return sessionList, nil
}

// GetByIDForOwner returns an owner-scoped session by its ID.
func (r *MockSessionRepository) GetByIDForOwner(id, ownerID string) (*models.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	session, ok := r.sessions[id]
	if !ok || session.UserID != ownerID {
		return nil, fmt.Errorf("session with ID %s: %w", id, ErrNotFound)
	}
	return &session, nil
}

// Create adds a new session.
func (r *MockSessionRepository) Create(session *models.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if session.ID == "" {
		session.ID = models.NewSessionID()
	}
	session.CreatedAt = time.Now()
	session.UpdatedAt = session.CreatedAt
	r.sessions[session.ID] = *session
	return nil
}

// UpdateForOwner replaces the mutable fields of an owner-scoped session.
func (r *MockSessionRepository) UpdateForOwner(session *models.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.sessions[session.ID]
	if !ok || existing.UserID != session.UserID {
		return fmt.Errorf("session with ID %s: %w", session.ID, ErrNotFound)
	}
	existing.Title = session.Title
	existing.Tags = session.Tags
	existing.JSONFileURL = session.JSONFileURL
	existing.Status = session.Status
	existing.UpdatedAt = time.Now()
	r.sessions[session.ID] = existing
	*session = existing
	return nil
}

// DeleteForOwner removes an owner-scoped session by its ID.
func (r *MockSessionRepository) DeleteForOwner(id, ownerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.sessions[id]
	if !ok || existing.UserID != ownerID {
		return fmt.Errorf("session with ID %s: %w", id, ErrNotFound)
	}
	delete(r.sessions, id)
	return nil
}

// GetPublished returns all published sessions, newest created first.
func (r *MockSessionRepository) GetPublished() ([]models.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	sessionList := make([]models.Session, 0)
	for _, s := range r.sessions {
		if s.Status == models.StatusPublished {
			sessionList = append(sessionList, s)
		}
	}
	sort.Slice(sessionList, func(i, j int) bool {
		return sessionList[i].CreatedAt.After(sessionList[j].CreatedAt)
	})
	return sessionList, nil
}
