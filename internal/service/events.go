package service

import (
	"github.com/MKhiriev/go-config-keeper/models"
)

// Observer receives every event the subsystem publishes: setting changes,
// reloads, save completions and save failures. Observers run synchronously
// on the publishing goroutine and outside any provider lock, so they may
// call back into the service but should return quickly.
type Observer func(models.Event)

// Subscription is a handle on one registered [Observer].
type Subscription struct {
	id      uint64
	service *Service
}

// Unsubscribe removes the observer. Safe to call more than once.
func (s *Subscription) Unsubscribe() {
	if s.service != nil {
		s.service.unsubscribe(s.id)
	}
}

// Subscribe registers obs for all future events and returns its handle.
func (s *Service) Subscribe(obs Observer) *Subscription {
	s.obsMu.Lock()
	defer s.obsMu.Unlock()

	id := s.nextObsID
	s.nextObsID++
	s.observers[id] = obs

	return &Subscription{id: id, service: s}
}

func (s *Service) unsubscribe(id uint64) {
	s.obsMu.Lock()
	defer s.obsMu.Unlock()
	delete(s.observers, id)
}

// Publish implements [provider.Publisher]: every provider the service owns
// publishes through this one subscriber list. The list is snapshotted
// under the lock and observers are called after it is released.
func (s *Service) Publish(event models.Event) {
	s.obsMu.RLock()
	observers := make([]Observer, 0, len(s.observers))
	for _, obs := range s.observers {
		observers = append(observers, obs)
	}
	s.obsMu.RUnlock()

	for _, obs := range observers {
		obs(event)
	}
}
