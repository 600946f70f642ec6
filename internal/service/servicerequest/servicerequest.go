package servicerequest

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/alanyang/roadside-relay/internal/domain/client"
	"github.com/alanyang/roadside-relay/internal/domain/message"
	domainsr "github.com/alanyang/roadside-relay/internal/domain/servicerequest"
	portnotifier "github.com/alanyang/roadside-relay/internal/port/notifier"
	portsr "github.com/alanyang/roadside-relay/internal/port/servicerequest"
)

// Service stores service requests and announces them to providers.
// [DIP] Depends on ports, never on adapters or transport.
type Service struct {
	repo     portsr.Repository
	notifier portnotifier.RoleNotifier
}

func NewService(repo portsr.Repository, notifier portnotifier.RoleNotifier) *Service {
	return &Service{repo: repo, notifier: notifier}
}

// Submit persists r and, only once the store has accepted it, broadcasts a
// service_request frame to every connected provider. Delivery problems are
// logged and never fail the submission.
func (s *Service) Submit(ctx context.Context, r domainsr.ServiceRequest) (domainsr.ServiceRequest, error) {
	if err := r.Validate(); err != nil {
		return domainsr.ServiceRequest{}, err
	}

	created, err := s.repo.Create(ctx, r)
	if err != nil {
		return domainsr.ServiceRequest{}, fmt.Errorf("create service request: %w", err)
	}

	payload, err := message.Encode(message.NewServiceRequest(created))
	if err != nil {
		slog.ErrorContext(ctx, "failed to encode service_request broadcast", "request_id", created.ID, "error", err)
		return created, nil
	}
	n := s.notifier.BroadcastToRole(ctx, client.RoleProvider, payload)
	slog.InfoContext(ctx, "service request broadcast", "request_id", created.ID, "user_id", created.UserID, "providers", n)

	return created, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (domainsr.ServiceRequest, error) {
	r, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domainsr.ServiceRequest{}, fmt.Errorf("get service request: %w", err)
	}
	return r, nil
}

func (s *Service) List(ctx context.Context, filters domainsr.ListFilters) ([]domainsr.ServiceRequest, error) {
	out, err := s.repo.List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("list service requests: %w", err)
	}
	return out, nil
}
