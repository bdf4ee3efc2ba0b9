package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"regexp"
	"strings"

	"wellness/internal/models"
	"wellness/internal/repositories"

	"wellness/pkg/rabbitmq"
)

var (
	sessionIDPattern = regexp.MustCompile(`^[0-9a-f]{24}$`)
	jsonFileURLRule  = regexp.MustCompile(`^https?://.+`)
)

// SessionFields carries the client-supplied content of a session. Tags
// arrive as a single comma-delimited string and are normalized on every
// write.
type SessionFields struct {
	Title       string
	Tags        string
	JSONFileURL string
}

// SessionService handles the draft/publish lifecycle of sessions. Every
// operation takes the verified owner id resolved by the auth gate; the
// service never trusts an owner id from a request body.
type SessionService struct {
	sessionRepo repositories.SessionRepository
	mqClient    *rabbitmq.Client // optional, nil disables event publishing
}

// NewSessionService creates a new SessionService.
func NewSessionService(sessionRepo repositories.SessionRepository, mqClient *rabbitmq.Client) *SessionService {
	return &SessionService{
		sessionRepo: sessionRepo,
		mqClient:    mqClient,
	}
}

// ValidateSessionID rejects any id the client's router could pass through
// accidentally: empty, the literal strings "undefined" and "new", and
// anything that is not exactly 24 hex characters. It runs before any store
// lookup.
func ValidateSessionID(id string) error {
	if id == "" || id == "undefined" || id == "new" || !sessionIDPattern.MatchString(id) {
		return fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	return nil
}

// NormalizeTags splits a comma-delimited tag string, trims each piece and
// drops empties. Order is preserved and duplicates are kept as supplied.
func NormalizeTags(raw string) []string {
	tags := make([]string, 0)
	for _, piece := range strings.Split(raw, ",") {
		if t := strings.TrimSpace(piece); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

func validateFields(fields SessionFields) error {
	if strings.TrimSpace(fields.Title) == "" {
		return fmt.Errorf("%w: title is required", ErrValidation)
	}
	if fields.JSONFileURL != "" && !jsonFileURLRule.MatchString(fields.JSONFileURL) {
		return fmt.Errorf("%w: json_file_url must be an http(s) URL", ErrValidation)
	}
	return nil
}

// ListMine returns every session owned by ownerID, most recently updated first.
func (s *SessionService) ListMine(ownerID string) ([]models.Session, error) {
	return s.sessionRepo.GetAllByOwner(ownerID)
}

// Get returns a single owner-scoped session. A session owned by someone
// else is reported as not found, never as forbidden.
func (s *SessionService) Get(ownerID, id string) (*models.Session, error) {
	if err := ValidateSessionID(id); err != nil {
		return nil, err
	}
	session, err := s.sessionRepo.GetByIDForOwner(id, ownerID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return session, nil
}

// CreateDraft creates a new draft session for the owner.
func (s *SessionService) CreateDraft(ownerID string, fields SessionFields) (*models.Session, error) {
	if err := validateFields(fields); err != nil {
		return nil, err
	}

	session := &models.Session{
		UserID:      ownerID,
		Title:       strings.TrimSpace(fields.Title),
		Tags:        NormalizeTags(fields.Tags),
		JSONFileURL: fields.JSONFileURL,
		Status:      models.StatusDraft,
	}
	if err := s.sessionRepo.Create(session); err != nil {
		return nil, fmt.Errorf("failed to create draft: %w", err)
	}
	return session, nil
}

// UpdateDraft replaces the content of an existing owner-scoped session and
// forces its status back to draft, even if it was previously published.
// Repeated calls with identical fields only bump updatedAt, so client-side
// auto-save retries are safe.
func (s *SessionService) UpdateDraft(ownerID, id string, fields SessionFields) (*models.Session, error) {
	return s.update(ownerID, id, fields, models.StatusDraft)
}

// Publish replaces the content of an existing owner-scoped session and
// marks it published. Publishing never creates a record; the id is
// mandatory and must already belong to the owner.
func (s *SessionService) Publish(ownerID, id string, fields SessionFields) (*models.Session, error) {
	session, err := s.update(ownerID, id, fields, models.StatusPublished)
	if err != nil {
		return nil, err
	}
	s.publishEvent("session.published", session)
	return session, nil
}

func (s *SessionService) update(ownerID, id string, fields SessionFields, status string) (*models.Session, error) {
	if err := ValidateSessionID(id); err != nil {
		return nil, err
	}
	if err := validateFields(fields); err != nil {
		return nil, err
	}

	session := &models.Session{
		ID:          id,
		UserID:      ownerID,
		Title:       strings.TrimSpace(fields.Title),
		Tags:        NormalizeTags(fields.Tags),
		JSONFileURL: fields.JSONFileURL,
		Status:      status,
	}
	if err := s.sessionRepo.UpdateForOwner(session); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update session %s: %w", id, err)
	}
	return session, nil
}

// Delete permanently removes an owner-scoped session. There is no soft
// delete and no recovery.
func (s *SessionService) Delete(ownerID, id string) error {
	if err := ValidateSessionID(id); err != nil {
		return err
	}
	if err := s.sessionRepo.DeleteForOwner(id, ownerID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete session %s: %w", id, err)
	}
	s.publishEvent("session.deleted", &models.Session{ID: id, UserID: ownerID})
	return nil
}

// ListPublished returns the public catalog projection of every published
// session, newest created first.
func (s *SessionService) ListPublished() ([]models.PublicSession, error) {
	sessions, err := s.sessionRepo.GetPublished()
	if err != nil {
		return nil, err
	}
	catalog := make([]models.PublicSession, 0, len(sessions))
	for i := range sessions {
		catalog = append(catalog, sessions[i].Public())
	}
	return catalog, nil
}

// publishEvent emits a lifecycle event for downstream consumers. Event
// delivery is best-effort: a broker failure is logged and never surfaced to
// the client, the write already happened.
func (s *SessionService) publishEvent(routingKey string, session *models.Session) {
	if s.mqClient == nil {
		return
	}

	event := map[string]interface{}{
		"sessionID": session.ID,
		"userID":    session.UserID,
		"title":     session.Title,
		"status":    session.Status,
	}
	body, err := json.Marshal(event)
	if err != nil {
		log.Printf("Failed to marshal session event: %v", err)
		return
	}
	if err := s.mqClient.Publish(routingKey, body); err != nil {
		log.Printf("Warning: Failed to publish %s event for session %s: %v", routingKey, session.ID, err)
	}
}
