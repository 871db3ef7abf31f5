package permissions_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotel/permissions"
)

func TestGet(t *testing.T) {
	data := permissions.Get()
	require.NotNil(t, data)

	tests := []struct {
		name   string
		path   string
		method string
		skip   bool
		roles  []string
	}{
		{name: "public room list", path: "/api/rooms/", method: http.MethodGet, skip: true, roles: []string{}},
		{name: "public booking", path: "/api/bookings", method: http.MethodPost, skip: true, roles: []string{}},
		{name: "admin room delete", path: "/api/rooms/{id}", method: http.MethodDelete, roles: []string{"admin"}},
		{name: "front desk grid", path: "/api/grid/", method: http.MethodGet, roles: []string{"admin", "staff"}},
		{name: "any signed in user", path: "/api/auth/password", method: http.MethodPut, roles: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			permission := data.FindPermissions(tt.path, tt.method)

			assert.NotEmpty(t, permission.Path)
			assert.Equal(t, tt.skip, permission.Skip)
			assert.Equal(t, tt.roles, permission.Permissions)
		})
	}
}

func TestFindPermissions_Unknown(t *testing.T) {
	data, err := permissions.Parse([]byte(`{"endpoints":[{"path":"/api/rooms","method":"GET","skip":true}]}`))
	require.NoError(t, err)

	assert.True(t, data.FindPermissions("/api/rooms", http.MethodGet).Skip)
	assert.Equal(t, permissions.Permission{}, data.FindPermissions("/api/rooms", http.MethodPost))
	assert.Equal(t, permissions.Permission{}, data.FindPermissions("/api/unknown", http.MethodGet))

	_, err = permissions.Parse([]byte("{"))
	assert.Error(t, err)
}
