package authz

import (
	"fmt"
	"triphub/src/types"
)

// Identity is a caller whose bearer token was verified and whose role was
// resolved from the users table.
type Identity struct {
	UID   string     `json:"uid,omitempty"`
	Email string     `json:"email"`
	Role  types.Role `json:"role"`
}

// Authorize decides whether identity may run an operation that requires
// role required. An empty required role only asks for a verified caller.
func Authorize(identity *Identity, required types.Role) error {
	if identity == nil || identity.Email == "" {
		return types.ErrUnauthorized
	}
	if required == "" {
		return nil
	}
	if identity.Role != required {
		return fmt.Errorf("%s role required: %w", required, types.ErrForbidden)
	}
	return nil
}
