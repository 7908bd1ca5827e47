package identity

import "github.com/tienda/backend/internal/domain/shared"

// Well-known role names. The role name doubles as the capability granted to
// its holders: customers may shop and check out, management may administer
// the catalog and all orders.
const (
	RoleCustomer   = "customer"
	RoleManagement = "management"
)

// Capability names gating operations
const (
	CapabilityCustomer   = "customer"
	CapabilityManagement = "management"
)

// Role groups users by what they are allowed to do
type Role struct {
	shared.BaseEntity
	Name        string
	Description string
}

// NewRole creates a role
func NewRole(name, description string) (*Role, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Role name cannot be empty")
	}
	return &Role{
		BaseEntity:  shared.NewBaseEntity(),
		Name:        name,
		Description: description,
	}, nil
}

// Capabilities resolves the capabilities granted by this role
func (r *Role) Capabilities() []string {
	switch r.Name {
	case RoleManagement:
		return []string{CapabilityManagement}
	case RoleCustomer:
		return []string{CapabilityCustomer}
	default:
		return nil
	}
}
