package client_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alanyang/roadside-relay/internal/domain/client"
)

func TestParseRole(t *testing.T) {
	tests := []struct {
		in      string
		want    client.Role
		wantErr bool
	}{
		{in: "user", want: client.RoleUser},
		{in: "provider", want: client.RoleProvider},
		{in: "mechanic", want: client.RoleProvider},
		{in: " Mechanic ", want: client.RoleProvider},
		{in: "admin", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := client.ParseRole(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestIdentityIs(t *testing.T) {
	id := client.Identity{Role: client.RoleUser, ID: "u1"}
	assert.True(t, id.Is(client.RoleUser, "u1"))
	assert.False(t, id.Is(client.RoleProvider, "u1"))
	assert.False(t, id.Is(client.RoleUser, "u2"))
	assert.Equal(t, "user:u1", id.String())
}
