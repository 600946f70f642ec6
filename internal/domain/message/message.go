// Package message defines the JSON frames exchanged on the real-time channel.
// Every frame is a single JSON object discriminated by its "rtype" field.
package message

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/alanyang/roadside-relay/internal/domain/client"
	"github.com/alanyang/roadside-relay/internal/domain/servicerequest"
)

type Type string

const (
	TypeRegister       Type = "register"
	TypeConfirmation   Type = "confirmation"
	TypeServiceRequest Type = "service_request"
)

var (
	ErrMalformed    = errors.New("malformed message")
	ErrInvalidField = errors.New("invalid message field")
)

type envelope struct {
	RType Type `json:"rtype"`
}

type registerFrame struct {
	Role string `json:"role"`
	ID   string `json:"id"`
}

type confirmationFrame struct {
	RequestUserID string `json:"requestUserId"`
}

// Inbound is a decoded client frame. Only the fields relevant to Type are set.
type Inbound struct {
	Type Type

	// Identity is set for register frames.
	Identity client.Identity

	// TargetUserID and Payload are set for confirmation frames. Payload is the
	// original frame re-serialized without insignificant whitespace.
	TargetUserID string
	Payload      []byte
}

// Decode parses one client frame. Frames with an unrecognized rtype decode
// successfully and are left for the caller to ignore.
func Decode(data []byte) (Inbound, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return Inbound{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	in := Inbound{Type: env.RType}
	switch env.RType {
	case TypeRegister:
		var f registerFrame
		if err := json.Unmarshal(data, &f); err != nil {
			return Inbound{}, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
		role, err := client.ParseRole(f.Role)
		if err != nil {
			return Inbound{}, fmt.Errorf("%w: %v", ErrInvalidField, err)
		}
		if strings.TrimSpace(f.ID) == "" {
			return Inbound{}, fmt.Errorf("%w: register id is required", ErrInvalidField)
		}
		in.Identity = client.Identity{Role: role, ID: f.ID}

	case TypeConfirmation:
		var f confirmationFrame
		if err := json.Unmarshal(data, &f); err != nil {
			return Inbound{}, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
		if f.RequestUserID == "" {
			return Inbound{}, fmt.Errorf("%w: confirmation requestUserId is required", ErrInvalidField)
		}
		var buf bytes.Buffer
		if err := json.Compact(&buf, data); err != nil {
			return Inbound{}, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
		in.TargetUserID = f.RequestUserID
		in.Payload = buf.Bytes()
	}
	return in, nil
}

// ServiceRequest is the frame pushed to providers when a request is stored.
// The record's own id is deliberately absent.
type ServiceRequest struct {
	RType     Type   `json:"rtype"`
	UserID    string `json:"userId"`
	Model     string `json:"model"`
	Type      string `json:"type"`
	Location  string `json:"location"`
	Timestamp string `json:"timestamp"`
}

func NewServiceRequest(r servicerequest.ServiceRequest) ServiceRequest {
	return ServiceRequest{
		RType:     TypeServiceRequest,
		UserID:    r.UserID,
		Model:     r.Model,
		Type:      r.Type,
		Location:  r.Location,
		Timestamp: r.Timestamp,
	}
}

// Encode marshals an outgoing frame.
func Encode(v any) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encoding message: %w", err)
	}
	return data, nil
}
