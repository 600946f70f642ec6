package client

import (
	"fmt"
	"strings"
)

type Role string

const (
	RoleUser     Role = "user"
	RoleProvider Role = "provider"
)

// roleAliases maps wire spellings used by older clients onto canonical roles.
var roleAliases = map[string]Role{
	"user":     RoleUser,
	"provider": RoleProvider,
	"mechanic": RoleProvider,
}

// ParseRole normalizes a wire role. Unknown roles are an error.
func ParseRole(s string) (Role, error) {
	r, ok := roleAliases[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return "", fmt.Errorf("unknown role %q", s)
	}
	return r, nil
}

// Identity is attached to a connection once it has sent a register message.
type Identity struct {
	Role Role   `json:"role"`
	ID   string `json:"id"`
}

func (i Identity) Is(role Role, id string) bool {
	return i.Role == role && i.ID == id
}

func (i Identity) String() string {
	return string(i.Role) + ":" + i.ID
}
