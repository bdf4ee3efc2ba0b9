package services_test

import (
	"testing"
	"time"

	"wellness/internal/models"
	"wellness/internal/repositories"
	"wellness/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// StrictSessionRepo is a testify mock of repositories.SessionRepository.
// With no expectations registered, any call fails the test; it proves the
// service rejected input before touching the store.
type StrictSessionRepo struct {
	mock.Mock
}

func (m *StrictSessionRepo) GetAllByOwner(ownerID string) ([]models.Session, error) {
	args := m.Called(ownerID)
	return args.Get(0).([]models.Session), args.Error(1)
}

func (m *StrictSessionRepo) GetByIDForOwner(id, ownerID string) (*models.Session, error) {
	args := m.Called(id, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Session), args.Error(1)
}

func (m *StrictSessionRepo) Create(session *models.Session) error {
	args := m.Called(session)
	return args.Error(0)
}

func (m *StrictSessionRepo) UpdateForOwner(session *models.Session) error {
	args := m.Called(session)
	return args.Error(0)
}

func (m *StrictSessionRepo) DeleteForOwner(id, ownerID string) error {
	args := m.Called(id, ownerID)
	return args.Error(0)
}

func (m *StrictSessionRepo) GetPublished() ([]models.Session, error) {
	args := m.Called()
	return args.Get(0).([]models.Session), args.Error(1)
}

func TestValidateSessionID(t *testing.T) {
	valid := "64f1b2c3d4e5f60718293a4b"
	assert.NoError(t, services.ValidateSessionID(valid))

	invalid := []string{
		"",
		"undefined",
		"new",
		"64f1b2c3d4e5f60718293a4",   // 23 chars
		"64f1b2c3d4e5f60718293a4bc", // 25 chars
		"64F1B2C3D4E5F60718293A4B",  // uppercase
		"zzzzzzzzzzzzzzzzzzzzzzzz",  // not hex
	}
	for _, id := range invalid {
		assert.ErrorIs(t, services.ValidateSessionID(id), services.ErrInvalidID, "id %q", id)
	}
}

func TestNormalizeTags(t *testing.T) {
	assert.Equal(t, []string{"yoga", "calm"}, services.NormalizeTags("yoga, calm"))
	assert.Equal(t, []string{"a", "b", "a"}, services.NormalizeTags(" a ,, b , a "), "duplicates are kept, order preserved")
	assert.Equal(t, []string{}, services.NormalizeTags(""))
	assert.Equal(t, []string{}, services.NormalizeTags(" , ,"))
}

func TestSessionService_CreateDraft(t *testing.T) {
	repo := repositories.NewMockSessionRepository()
	service := services.NewSessionService(repo, nil)

	session, err := service.CreateDraft("owner-1", services.SessionFields{
		Title: "Morning Flow",
		Tags:  "yoga, calm",
	})
	assert.NoError(t, err)
	assert.Len(t, session.ID, 24)
	assert.Equal(t, "owner-1", session.UserID)
	assert.Equal(t, models.StatusDraft, session.Status)
	assert.Equal(t, []string{"yoga", "calm"}, session.Tags)

	// Every call without an id creates a distinct record.
	again, err := service.CreateDraft("owner-1", services.SessionFields{Title: "Morning Flow", Tags: "yoga, calm"})
	assert.NoError(t, err)
	assert.NotEqual(t, session.ID, again.ID)

	// Empty title is rejected server-side.
	_, err = service.CreateDraft("owner-1", services.SessionFields{Title: "   "})
	assert.ErrorIs(t, err, services.ErrValidation)

	// json_file_url must be an http(s) URL when present.
	_, err = service.CreateDraft("owner-1", services.SessionFields{Title: "Flow", JSONFileURL: "ftp://nope"})
	assert.ErrorIs(t, err, services.ErrValidation)
	_, err = service.CreateDraft("owner-1", services.SessionFields{Title: "Flow", JSONFileURL: "https://cdn.example.com/flow.json"})
	assert.NoError(t, err)
}

func TestSessionService_UpdateDraft(t *testing.T) {
	repo := repositories.NewMockSessionRepository()
	service := services.NewSessionService(repo, nil)

	session, err := service.CreateDraft("owner-1", services.SessionFields{Title: "Morning Flow", Tags: "yoga"})
	assert.NoError(t, err)

	// An identical save is idempotent: only updatedAt moves.
	time.Sleep(2 * time.Millisecond)
	updated, err := service.UpdateDraft("owner-1", session.ID, services.SessionFields{Title: "Morning Flow", Tags: "yoga"})
	assert.NoError(t, err)
	assert.Equal(t, session.ID, updated.ID)
	assert.Equal(t, session.Title, updated.Title)
	assert.Equal(t, session.Tags, updated.Tags)
	assert.Equal(t, session.CreatedAt, updated.CreatedAt)
	assert.True(t, updated.UpdatedAt.After(session.UpdatedAt))

	// Draft-saving a published session reverts it to draft.
	published, err := service.Publish("owner-1", session.ID, services.SessionFields{Title: "Morning Flow", Tags: "yoga"})
	assert.NoError(t, err)
	assert.Equal(t, models.StatusPublished, published.Status)

	reverted, err := service.UpdateDraft("owner-1", session.ID, services.SessionFields{Title: "Morning Flow v2", Tags: "yoga"})
	assert.NoError(t, err)
	assert.Equal(t, models.StatusDraft, reverted.Status)
	assert.Equal(t, "Morning Flow v2", reverted.Title)

	// Updating a session as a different owner reports not found, never forbidden.
	_, err = service.UpdateDraft("owner-2", session.ID, services.SessionFields{Title: "Theft"})
	assert.ErrorIs(t, err, services.ErrNotFound)

	// Updating a well-formed but nonexistent id reports not found.
	_, err = service.UpdateDraft("owner-1", "000000000000000000000000", services.SessionFields{Title: "Ghost"})
	assert.ErrorIs(t, err, services.ErrNotFound)
}

func TestSessionService_Publish(t *testing.T) {
	repo := repositories.NewMockSessionRepository()
	service := services.NewSessionService(repo, nil)

	session, err := service.CreateDraft("owner-1", services.SessionFields{Title: "Evening Wind-down", Tags: "breathing"})
	assert.NoError(t, err)

	published, err := service.Publish("owner-1", session.ID, services.SessionFields{Title: "Evening Wind-down", Tags: "breathing, sleep"})
	assert.NoError(t, err)
	assert.Equal(t, models.StatusPublished, published.Status)
	assert.Equal(t, []string{"breathing", "sleep"}, published.Tags)

	// Publishing never creates: a missing id is invalid, not a create.
	_, err = service.Publish("owner-1", "", services.SessionFields{Title: "No ID"})
	assert.ErrorIs(t, err, services.ErrInvalidID)

	// Another owner's publish attempt is indistinguishable from absence.
	_, err = service.Publish("owner-2", session.ID, services.SessionFields{Title: "Evening Wind-down"})
	assert.ErrorIs(t, err, services.ErrNotFound)
}

func TestSessionService_Get(t *testing.T) {
	repo := repositories.NewMockSessionRepository()
	service := services.NewSessionService(repo, nil)

	session, err := service.CreateDraft("owner-1", services.SessionFields{Title: "Stretch"})
	assert.NoError(t, err)

	got, err := service.Get("owner-1", session.ID)
	assert.NoError(t, err)
	assert.Equal(t, session.ID, got.ID)

	// Drafts are visible to their owner only.
	_, err = service.Get("owner-2", session.ID)
	assert.ErrorIs(t, err, services.ErrNotFound)
}

func TestSessionService_InvalidID_NoStoreAccess(t *testing.T) {
	// A strict mock with zero expectations: any repository call fails the test.
	repo := new(StrictSessionRepo)
	service := services.NewSessionService(repo, nil)

	for _, id := range []string{"", "undefined", "new", "64f1b2c3d4e5f60718293a4", "64f1b2c3d4e5f60718293a4bc"} {
		_, err := service.Get("owner-1", id)
		assert.ErrorIs(t, err, services.ErrInvalidID, "get %q", id)

		_, err = service.UpdateDraft("owner-1", id, services.SessionFields{Title: "x"})
		assert.ErrorIs(t, err, services.ErrInvalidID, "update %q", id)

		_, err = service.Publish("owner-1", id, services.SessionFields{Title: "x"})
		assert.ErrorIs(t, err, services.ErrInvalidID, "publish %q", id)

		err = service.Delete("owner-1", id)
		assert.ErrorIs(t, err, services.ErrInvalidID, "delete %q", id)
	}
	repo.AssertExpectations(t)
}

func TestSessionService_Delete(t *testing.T) {
	repo := repositories.NewMockSessionRepository()
	service := services.NewSessionService(repo, nil)

	session, err := service.CreateDraft("owner-1", services.SessionFields{Title: "Short Flow"})
	assert.NoError(t, err)

	// Another owner's delete attempt reports not found and removes nothing.
	err = service.Delete("owner-2", session.ID)
	assert.ErrorIs(t, err, services.ErrNotFound)
	_, err = service.Get("owner-1", session.ID)
	assert.NoError(t, err)

	err = service.Delete("owner-1", session.ID)
	assert.NoError(t, err)

	_, err = service.Get("owner-1", session.ID)
	assert.ErrorIs(t, err, services.ErrNotFound)
}

func TestSessionService_ListMine(t *testing.T) {
	repo := repositories.NewMockSessionRepository()
	service := services.NewSessionService(repo, nil)

	first, _ := service.CreateDraft("owner-1", services.SessionFields{Title: "First"})
	time.Sleep(2 * time.Millisecond)
	second, _ := service.CreateDraft("owner-1", services.SessionFields{Title: "Second"})
	_, _ = service.CreateDraft("owner-2", services.SessionFields{Title: "Other"})

	sessions, err := service.ListMine("owner-1")
	assert.NoError(t, err)
	assert.Len(t, sessions, 2)
	assert.Equal(t, second.ID, sessions[0].ID, "most recently updated first")
	assert.Equal(t, first.ID, sessions[1].ID)

	// Touching the older session moves it to the front.
	time.Sleep(2 * time.Millisecond)
	_, err = service.UpdateDraft("owner-1", first.ID, services.SessionFields{Title: "First"})
	assert.NoError(t, err)
	sessions, _ = service.ListMine("owner-1")
	assert.Equal(t, first.ID, sessions[0].ID)
}

func TestSessionService_ListPublished(t *testing.T) {
	repo := repositories.NewMockSessionRepository()
	service := services.NewSessionService(repo, nil)

	draft, _ := service.CreateDraft("owner-1", services.SessionFields{Title: "Draft Only"})
	time.Sleep(2 * time.Millisecond)
	toPublish, _ := service.CreateDraft("owner-2", services.SessionFields{Title: "Evening Calm", Tags: "sleep", JSONFileURL: "https://cdn.example.com/calm.json"})
	_, err := service.Publish("owner-2", toPublish.ID, services.SessionFields{Title: "Evening Calm", Tags: "sleep", JSONFileURL: "https://cdn.example.com/calm.json"})
	assert.NoError(t, err)

	catalog, err := service.ListPublished()
	assert.NoError(t, err)
	assert.Len(t, catalog, 1)
	assert.Equal(t, toPublish.ID, catalog[0].ID)
	assert.Equal(t, "owner-2", catalog[0].UserID)
	assert.Equal(t, []string{"sleep"}, catalog[0].Tags)
	assert.NotEqual(t, draft.ID, catalog[0].ID)

	// Deleting a published session removes it from the catalog.
	assert.NoError(t, service.Delete("owner-2", toPublish.ID))
	catalog, _ = service.ListPublished()
	assert.Len(t, catalog, 0)
}
