package servicerequest

import (
	"context"

	domainsr "github.com/alanyang/roadside-relay/internal/domain/servicerequest"
)

// Repository persists service requests. Create must return
// domainsr.ErrDuplicateID when the id is already taken and GetByID must
// return domainsr.ErrNotFound for unknown ids.
type Repository interface {
	Create(ctx context.Context, r domainsr.ServiceRequest) (domainsr.ServiceRequest, error)
	GetByID(ctx context.Context, id string) (domainsr.ServiceRequest, error)
	List(ctx context.Context, filters domainsr.ListFilters) ([]domainsr.ServiceRequest, error)
}
