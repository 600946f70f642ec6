package servicerequest

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrNotFound    = errors.New("service request not found")
	ErrDuplicateID = errors.New("service request id already exists")
	ErrInvalid     = errors.New("invalid service request")
)

// ServiceRequest is a user's ask for roadside help. It is written once and
// never mutated afterwards.
type ServiceRequest struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Model     string    `json:"model"`
	Type      string    `json:"type"`
	Location  string    `json:"location"`
	Timestamp string    `json:"timestamp"`
	CreatedAt time.Time `json:"createdAt"`
}

func New(id, userID, model, typ, location, timestamp string) ServiceRequest {
	return ServiceRequest{
		ID:        id,
		UserID:    userID,
		Model:     model,
		Type:      typ,
		Location:  location,
		Timestamp: timestamp,
		CreatedAt: time.Now().UTC(),
	}
}

// Validate reports the first required field that is blank.
func (r ServiceRequest) Validate() error {
	fields := []struct {
		name, value string
	}{
		{"id", r.ID},
		{"userId", r.UserID},
		{"model", r.Model},
		{"type", r.Type},
		{"location", r.Location},
		{"timestamp", r.Timestamp},
	}
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			return fmt.Errorf("%w: %s is required", ErrInvalid, f.name)
		}
	}
	return nil
}

type ListFilters struct {
	UserID *string
	Limit  int
}
