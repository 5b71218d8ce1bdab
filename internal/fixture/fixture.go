// Package fixture provides the seed dataset the Resource Service starts
// from. Each call returns a fresh copy; repositories receive their slice by
// injection so no global mutable state survives between instances.
package fixture

import (
	"time"

	"github.com/opsdeck/opsdeck/internal/accounts"
	"github.com/opsdeck/opsdeck/internal/rbac"
	"github.com/opsdeck/opsdeck/internal/requests"
	"github.com/opsdeck/opsdeck/internal/sales"
)

// Dataset aggregates the seed collections.
type Dataset struct {
	Users    []accounts.Seed
	Sales    []sales.Sale
	Requests []requests.Request
	Roles    []string
}

// Default returns the demo dataset used by the dashboard.
func Default() Dataset {
	return Dataset{
		Users: []accounts.Seed{
			{UserID: "analyst", Password: "analyst1", Role: string(rbac.RoleDataAnalyst), Status: accounts.StatusActive},
			{UserID: "officer", Password: "officer1", Role: string(rbac.RoleComplianceOfficer), Status: accounts.StatusActive},
			{UserID: "admin", Password: "admin123", Role: string(rbac.RoleSystemAdmin), Status: accounts.StatusActive},
		},
		Sales: []sales.Sale{
			{ID: 1, Product: "Laptop", Amount: 1200, Date: day(2024, time.January, 15)},
			{ID: 2, Product: "Monitor", Amount: 300, Date: day(2024, time.February, 2)},
			{ID: 3, Product: "Keyboard", Amount: 45, Date: day(2024, time.February, 20)},
			{ID: 4, Product: "Docking Station", Amount: 180, Date: day(2024, time.March, 5)},
		},
		Requests: []requests.Request{
			{ID: 1, Role: string(rbac.RoleDataAnalyst), Text: "Access to quarterly sales export", Status: requests.StatusPending},
			{ID: 2, Role: string(rbac.RoleDataAnalyst), Text: "Read access to audit trail", Status: requests.StatusDenied},
		},
		Roles: []string{
			string(rbac.RoleDataAnalyst),
			string(rbac.RoleComplianceOfficer),
			string(rbac.RoleSystemAdmin),
		},
	}
}

func day(y int, m time.Month, d int) sales.Date {
	return sales.Date{Time: time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}
