package memory

import (
	"time"

	"civic-bridge-be/internal/entity"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

// DraftSessionRepository keeps drafting sessions in process until they go idle.
type DraftSessionRepository struct {
	cache *cache.Cache
}

func NewDraftSessionRepository(idle time.Duration) *DraftSessionRepository {
	c := cache.New(idle, 10*time.Minute)
	return &DraftSessionRepository{
		cache: c,
	}
}

// Save stores a copy of the session and restarts its idle timer.
func (r *DraftSessionRepository) Save(session *entity.DraftSession) {
	cp := *session
	cp.Messages = append([]entity.ChatMessage(nil), session.Messages...)
	cp.Suggestions = append([]string(nil), session.Suggestions...)
	r.cache.Set(session.Id.String(), &cp, cache.DefaultExpiration)
}

// Get returns a copy, so callers must Save to persist changes.
func (r *DraftSessionRepository) Get(sessionID uuid.UUID) (*entity.DraftSession, bool) {
	x, found := r.cache.Get(sessionID.String())
	if !found {
		return nil, false
	}
	stored := x.(*entity.DraftSession)
	cp := *stored
	cp.Messages = append([]entity.ChatMessage(nil), stored.Messages...)
	cp.Suggestions = append([]string(nil), stored.Suggestions...)
	return &cp, true
}

func (r *DraftSessionRepository) Delete(sessionID uuid.UUID) {
	r.cache.Delete(sessionID.String())
}
