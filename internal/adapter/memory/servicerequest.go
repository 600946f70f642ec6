package memory

import (
	"context"
	"fmt"
	"sync"

	domainsr "github.com/alanyang/roadside-relay/internal/domain/servicerequest"
)

// ServiceRequestStore is an in-process port/servicerequest.Repository used
// when no database is configured and in tests.
type ServiceRequestStore struct {
	mu    sync.RWMutex
	byID  map[string]domainsr.ServiceRequest
	order []string // insertion order
}

func NewServiceRequestStore() *ServiceRequestStore {
	return &ServiceRequestStore{
		byID: make(map[string]domainsr.ServiceRequest),
	}
}

func (s *ServiceRequestStore) Create(_ context.Context, r domainsr.ServiceRequest) (domainsr.ServiceRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byID[r.ID]; ok {
		return domainsr.ServiceRequest{}, fmt.Errorf("inserting service request %s: %w", r.ID, domainsr.ErrDuplicateID)
	}
	s.byID[r.ID] = r
	s.order = append(s.order, r.ID)
	return r, nil
}

func (s *ServiceRequestStore) GetByID(_ context.Context, id string) (domainsr.ServiceRequest, error) {
	s.mu.RLock()
	r, ok := s.byID[id]
	s.mu.RUnlock()

	if !ok {
		return domainsr.ServiceRequest{}, fmt.Errorf("service request %s: %w", id, domainsr.ErrNotFound)
	}
	return r, nil
}

// List returns matching requests newest first.
func (s *ServiceRequestStore) List(_ context.Context, filters domainsr.ListFilters) ([]domainsr.ServiceRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domainsr.ServiceRequest, 0)
	for i := len(s.order) - 1; i >= 0; i-- {
		r := s.byID[s.order[i]]
		if filters.UserID != nil && r.UserID != *filters.UserID {
			continue
		}
		out = append(out, r)
		if filters.Limit > 0 && len(out) == filters.Limit {
			break
		}
	}
	return out, nil
}
