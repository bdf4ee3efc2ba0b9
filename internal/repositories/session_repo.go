package repositories

import "wellness/internal/models"

// SessionRepository defines the interface for session data access.
//
// Every query is either scoped to an owner or restricted to published
// records; there is deliberately no unscoped lookup. This is the ownership
// enforcement boundary for the whole service.
type SessionRepository interface {
	// GetAllByOwner returns every session belonging to ownerID, most
	// recently updated first.
	GetAllByOwner(ownerID string) ([]models.Session, error)
	// GetByIDForOwner returns the session with the given id if and only if
	// it belongs to ownerID. A session owned by someone else reports
	// ErrNotFound, same as a missing one.
	GetByIDForOwner(id, ownerID string) (*models.Session, error)
	Create(session *models.Session) error
	// UpdateForOwner replaces title, tags, json_file_url and status of the
	// owner-scoped record. Returns ErrNotFound if no record matches.
	UpdateForOwner(session *models.Session) error
	// DeleteForOwner permanently removes the owner-scoped record.
	DeleteForOwner(id, ownerID string) error
	// GetPublished returns all published sessions, newest created first.
	GetPublished() ([]models.Session, error)
}
