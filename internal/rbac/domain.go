package rbac

import (
	"context"
	"fmt"
	"strings"
)

// Role is the closed set of dashboard roles.
type Role string

const (
	RoleDataAnalyst       Role = "Data Analyst"
	RoleComplianceOfficer Role = "Compliance Officer"
	RoleSystemAdmin       Role = "System Admin"
)

// Capability represents an atomic action a role may perform.
type Capability string

const (
	CapUsersManage    Capability = "users.manage"
	CapSalesManage    Capability = "sales.manage"
	CapRequestsSubmit Capability = "requests.submit"
	CapRequestsDecide Capability = "requests.decide"
	CapAuditView      Capability = "audit.view"
)

// capabilities maps each role to its capability set, evaluated once at view
// entry instead of per-branch string comparisons.
var capabilities = map[Role]map[Capability]struct{}{
	RoleDataAnalyst: {
		CapRequestsSubmit: {},
	},
	RoleComplianceOfficer: {
		CapRequestsDecide: {},
		CapAuditView:      {},
	},
	RoleSystemAdmin: {
		CapUsersManage:    {},
		CapSalesManage:    {},
		CapRequestsDecide: {},
		CapAuditView:      {},
	},
}

// ParseRole resolves a display name to a Role.
func ParseRole(name string) (Role, error) {
	switch Role(strings.TrimSpace(name)) {
	case RoleDataAnalyst:
		return RoleDataAnalyst, nil
	case RoleComplianceOfficer:
		return RoleComplianceOfficer, nil
	case RoleSystemAdmin:
		return RoleSystemAdmin, nil
	}
	return "", fmt.Errorf("rbac: unknown role %q", name)
}

// Can reports whether the role grants the capability.
func (r Role) Can(cap Capability) bool {
	set, ok := capabilities[r]
	if !ok {
		return false
	}
	_, ok = set[cap]
	return ok
}

// Capabilities lists the capabilities granted to the role.
func (r Role) Capabilities() []Capability {
	set := capabilities[r]
	out := make([]Capability, 0, len(set))
	for c := range set {
		out = append(out, c)
	}
	return out
}

// Principal describes the authenticated actor.
type Principal struct {
	UserID int64
	Handle string
	Role   Role
}

// Can reports whether the principal's role grants the capability.
func (p *Principal) Can(cap Capability) bool {
	if p == nil {
		return false
	}
	return p.Role.Can(cap)
}

type principalContextKey struct{}

// ContextWithPrincipal stores the principal in context.
func ContextWithPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, principalContextKey{}, p)
}

// PrincipalFromContext extracts the principal from context.
func PrincipalFromContext(ctx context.Context) *Principal {
	p, _ := ctx.Value(principalContextKey{}).(*Principal)
	return p
}
