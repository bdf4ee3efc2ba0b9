package repositories

import (
	"errors"
	"fmt"

	"wellness/internal/models"

	"gorm.io/gorm"
)

// GORMSessionRepository is a GORM implementation of SessionRepository.
type GORMSessionRepository struct {
	db *gorm.DB
}

// NewGORMSessionRepository creates a new instance of GORMSessionRepository.
func NewGORMSessionRepository(db *gorm.DB) *GORMSessionRepository {
	return &GORMSessionRepository{
		db: db,
	}
}

// GetAllByOwner retrieves all sessions for an owner, most recently updated first.
func (r *GORMSessionRepository) GetAllByOwner(ownerID string) ([]models.Session, error) {
	var sessions []models.Session
	if err := r.db.Where("user_id = ?", ownerID).Order("updated_at DESC").Find(&sessions).Error; err != nil {
		return nil, fmt.Errorf("failed to get sessions for owner %s: %w", ownerID, err)
	}
	return sessions, nil
}

// GetByIDForOwner retrieves a single owner-scoped session.
func (r *GORMSessionRepository) GetByIDForOwner(id, ownerID string) (*models.Session, error) {
	var session models.Session
	if err := r.db.First(&session, "id = ? AND user_id = ?", id, ownerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("session with ID %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get session by ID %s: %w", id, err)
	}
	return &session, nil
}

// Create inserts a new session, minting an ID when none is set.
func (r *GORMSessionRepository) Create(session *models.Session) error {
	if session.ID == "" {
		session.ID = models.NewSessionID()
	}
	if err := r.db.Create(session).Error; err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	return nil
}

// UpdateForOwner replaces the mutable fields of an owner-scoped session.
// The update carries the full replacement document, so concurrent saves of
// the same session are last-write-wins and never mix fields from two calls.
func (r *GORMSessionRepository) UpdateForOwner(session *models.Session) error {
	res := r.db.Model(&models.Session{}).
		Where("id = ? AND user_id = ?", session.ID, session.UserID).
		Select("title", "tags", "json_file_url", "status").
		Updates(session)
	if res.Error != nil {
		return fmt.Errorf("failed to update session %s: %w", session.ID, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("session with ID %s: %w", session.ID, ErrNotFound)
	}
	// Re-read so the caller gets the stored timestamps.
	return r.db.First(session, "id = ? AND user_id = ?", session.ID, session.UserID).Error
}

// DeleteForOwner permanently removes an owner-scoped session.
func (r *GORMSessionRepository) DeleteForOwner(id, ownerID string) error {
	res := r.db.Delete(&models.Session{}, "id = ? AND user_id = ?", id, ownerID)
	if res.Error != nil {
		return fmt.Errorf("failed to delete session %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("session with ID %s: %w", id, ErrNotFound)
	}
	return nil
}

// GetPublished retrieves all published sessions, newest created first.
func (r *GORMSessionRepository) GetPublished() ([]models.Session, error) {
	var sessions []models.Session
	if err := r.db.Where("status = ?", models.StatusPublished).Order("created_at DESC").Find(&sessions).Error; err != nil {
		return nil, fmt.Errorf("failed to get published sessions: %w", err)
	}
	return sessions, nil
}
