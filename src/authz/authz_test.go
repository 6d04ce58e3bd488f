package authz

import (
	"testing"
	"triphub/src/types"

	"github.com/stretchr/testify/assert"
)

func TestAuthorize(t *testing.T) {
	admin := &Identity{Email: "admin@example.com", Role: types.ROLE_ADMIN}
	vendor := &Identity{Email: "vendor@example.com", Role: types.ROLE_VENDOR}

	tests := []struct {
		name     string
		identity *Identity
		required types.Role
		want     error
	}{
		{"no identity", nil, types.ROLE_ADMIN, types.ErrUnauthorized},
		{"no identity open route", nil, "", types.ErrUnauthorized},
		{"empty email", &Identity{Role: types.ROLE_ADMIN}, types.ROLE_ADMIN, types.ErrUnauthorized},
		{"any verified caller", vendor, "", nil},
		{"matching role", admin, types.ROLE_ADMIN, nil},
		{"vendor on admin route", vendor, types.ROLE_ADMIN, types.ErrForbidden},
		{"admin on vendor route", admin, types.ROLE_VENDOR, types.ErrForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Authorize(tt.identity, tt.required)
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}
}
