// Package sessions keeps one form controller per browser session in memory.
// Entries expire after a period of inactivity; nothing is persisted.
package sessions

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"

	"diabetes-risk/pkg/services"
	"diabetes-risk/pkg/telemetry"
	"diabetes-risk/pkg/utils"
)

// Factory builds the controller for a new session
type Factory func() services.FormController

type Store struct {
	controllers *cache.Cache
	factory     Factory
	telemetry   *telemetry.Telemetry
	mu          sync.Mutex
}

// NewStore creates a store whose sessions expire after ttl without access.
// Expired sessions are swept whenever a new one starts; there is no janitor goroutine.
func NewStore(ttl time.Duration, factory Factory, telemetry *telemetry.Telemetry) *Store {
	s := &Store{
		controllers: cache.New(ttl, 0),
		factory:     factory,
		telemetry:   telemetry,
	}
	s.controllers.OnEvicted(func(id string, _ interface{}) {
		zap.L().Debug("session expired", zap.String("session", utils.ShortHash(id)))
		s.telemetry.SetActiveSessions(s.controllers.ItemCount())
	})
	return s
}

// GetOrCreate returns the session for id, or starts a new one with a fresh id
// when id is empty or unknown.
func (s *Store) GetOrCreate(id string) (string, services.FormController) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if controller, ok := s.touch(id); ok {
		return id, controller
	}

	s.controllers.DeleteExpired()

	id = uuid.NewString()
	controller := s.factory()
	s.controllers.SetDefault(id, controller)
	s.telemetry.SetActiveSessions(s.controllers.ItemCount())
	zap.L().Debug("session started", zap.String("session", utils.ShortHash(id)))
	return id, controller
}

// Len returns the number of live sessions
func (s *Store) Len() int {
	return s.controllers.ItemCount()
}

// touch returns the controller of a live session and extends its lifetime
func (s *Store) touch(id string) (services.FormController, bool) {
	if id == "" {
		return nil, false
	}
	item, ok := s.controllers.Get(id)
	if !ok {
		return nil, false
	}
	controller := item.(services.FormController)
	s.controllers.SetDefault(id, controller)
	return controller, true
}
