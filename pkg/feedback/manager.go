package feedback

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"sync"
	"time"

	"eventfeedback/pkg/gateway"
)

// Gateway is the slice of the HTTP client the manager needs; anything with
// a matching Do can stand in during tests.
type Gateway interface {
	Do(ctx context.Context, method, path string, body, out any) error
}

// Draft is the submit form state. It survives failed submissions so the
// user never loses what they typed.
type Draft struct {
	Event   string
	Comment string
	Rating  int
}

// EditState is the in-progress edit of one record. Event and CreatedAt are
// deliberately absent: they are immutable after creation.
type EditState struct {
	ID      string
	Comment string
	Rating  int
}

// Manager drives the feedback record lifecycle: submit, refresh, edit
// within the window, delete. It is the only writer of the cache and the
// only component that consults the edit-window policy before a mutation.
type Manager struct {
	Gateway Gateway
	Cache   *Cache
	Logger  *slog.Logger
	Now     func() time.Time

	mu       sync.Mutex
	draft    Draft
	edit     *EditState
	deleting bool
	updating map[string]bool

	// refreshSeq advances when a refresh is issued and when a mutation
	// lands in the cache. A refresh completion whose captured value is
	// behind the current one is stale and must be discarded.
	refreshSeq uint64
	generation uint64
}

func NewManager(gw Gateway, cache *Cache, logger *slog.Logger) *Manager {
	return &Manager{
		Gateway:  gw,
		Cache:    cache,
		Logger:   logger,
		Now:      time.Now,
		updating: make(map[string]bool),
	}
}

type submitRequest struct {
	Event   string `json:"event"`
	Comment string `json:"comment"`
	Rating  int    `json:"rating"`
}

type updateRequest struct {
	Comment string `json:"comment"`
	Rating  int    `json:"rating"`
}

// Submit validates, posts, and on success caches the server's record and
// clears the draft. On any failure the draft keeps the submitted values so
// a retry needs no retyping.
func (m *Manager) Submit(ctx context.Context, event, comment string, rating int) (Record, error) {
	if err := ValidateNew(event, rating); err != nil {
		return Record{}, err
	}

	m.mu.Lock()
	m.draft = Draft{Event: event, Comment: comment, Rating: rating}
	gen := m.generation
	m.mu.Unlock()

	var rec Record
	err := m.Gateway.Do(ctx, http.MethodPost, "/api/feedbacks", submitRequest{Event: event, Comment: comment, Rating: rating}, &rec)
	if err != nil {
		m.Logger.Error("submit", "event", event, "error", err)
		return Record{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if gen != m.generation {
		// Session changed while the request was in flight; the response
		// belongs to nobody now.
		return rec, nil
	}
	m.Cache.Upsert(rec)
	m.refreshSeq++
	m.draft = Draft{}
	m.Logger.Info("feedback submitted", "id", rec.ID, "event", rec.Event)
	return rec, nil
}

// Refresh fetches the full record set and swaps it into the cache. An empty
// result is a valid "no records yet" state. Completions are applied only if
// no newer refresh has been issued, no mutation has landed in the cache
// since the refresh started, and the session generation still matches, so a
// slow response can never clobber a later write.
func (m *Manager) Refresh(ctx context.Context) error {
	m.mu.Lock()
	m.refreshSeq++
	seq := m.refreshSeq
	gen := m.generation
	m.mu.Unlock()

	var records []Record
	if err := m.Gateway.Do(ctx, http.MethodGet, "/api/feedbacks", nil, &records); err != nil {
		m.Logger.Error("refresh", "error", err)
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if gen != m.generation || seq < m.refreshSeq {
		m.Logger.Info("stale refresh discarded", "seq", seq)
		return nil
	}
	m.Cache.ReplaceAll(records)
	return nil
}

// BeginEdit opens edit mode for a record, seeding the editable fields from
// the cache. Fails with ErrNotEditable once the window has closed.
func (m *Manager) BeginEdit(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	rec, ok := m.Cache.Get(id)
	if !ok {
		return ErrNotFound
	}
	if !IsEditable(rec.CreatedAt, m.Now()) {
		return ErrNotEditable
	}
	m.edit = &EditState{ID: id, Comment: rec.Comment, Rating: rec.Rating}
	return nil
}

// CancelEdit drops edit mode without touching the record. Safe to call when
// nothing is being edited.
func (m *Manager) CancelEdit() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.edit = nil
}

// Editing returns the current edit state, if any.
func (m *Manager) Editing() (EditState, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.edit == nil {
		return EditState{}, false
	}
	return *m.edit, true
}

// CommitEdit re-checks the window at commit time: it may have closed since
// BeginEdit, and then the update must not be sent even if the server would
// still accept it. An update
// already in flight for the same id rejects the second attempt locally.
func (m *Manager) CommitEdit(ctx context.Context, id, comment string, rating int) (Record, error) {
	if err := validateRating(rating); err != nil {
		return Record{}, err
	}

	m.mu.Lock()
	rec, ok := m.Cache.Get(id)
	if !ok {
		m.mu.Unlock()
		return Record{}, ErrNotFound
	}
	if !IsEditable(rec.CreatedAt, m.Now()) {
		m.mu.Unlock()
		return Record{}, ErrNotEditable
	}
	if m.updating[id] {
		m.mu.Unlock()
		return Record{}, ErrInProgress
	}
	m.updating[id] = true
	gen := m.generation
	m.mu.Unlock()

	defer func() {
		m.mu.Lock()
		delete(m.updating, id)
		m.mu.Unlock()
	}()

	var updated Record
	err := m.Gateway.Do(ctx, http.MethodPut, "/api/feedbacks/"+url.PathEscape(id), updateRequest{Comment: comment, Rating: rating}, &updated)
	if err != nil {
		m.Logger.Error("update", "id", id, "error", err)
		return Record{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if gen == m.generation {
		m.Cache.Upsert(updated)
		m.refreshSeq++
		if m.edit != nil && m.edit.ID == id {
			m.edit = nil
		}
	}
	return updated, nil
}

// Delete removes a record. At most one delete runs at a time: a second
// activation while the first is in flight fails with ErrInProgress instead
// of issuing a duplicate request. A 404 from the server still clears the id
// locally, since the record is gone either way.
func (m *Manager) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	if m.deleting {
		m.mu.Unlock()
		return ErrInProgress
	}
	m.deleting = true
	gen := m.generation
	m.mu.Unlock()

	defer func() {
		m.mu.Lock()
		m.deleting = false
		m.mu.Unlock()
	}()

	err := m.Gateway.Do(ctx, http.MethodDelete, "/api/feedbacks/"+url.PathEscape(id), nil, nil)
	if err != nil {
		var remote *gateway.RemoteError
		if !errors.As(err, &remote) || remote.Status != http.StatusNotFound {
			m.Logger.Error("delete", "id", id, "error", err)
			return err
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if gen == m.generation {
		m.Cache.Remove(id)
		m.refreshSeq++
	}
	return nil
}

// CurrentDraft returns the submit form state.
func (m *Manager) CurrentDraft() Draft {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.draft
}

// Reset wipes everything tied to the current session: cache, draft, edit
// state, in-flight guards. Bumping the generation makes every response still
// in flight land in the void instead of in the next session's cache. Called
// on logout and whenever the gateway reports the session dead.
func (m *Manager) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.generation++
	m.draft = Draft{}
	m.edit = nil
	m.deleting = false
	m.updating = make(map[string]bool)
	m.Cache.ReplaceAll(nil)
}
