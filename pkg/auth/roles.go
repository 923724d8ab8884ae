package auth

import "slices"

type Role string

const (
	RoleClient Role = "client"
	RoleAgent  Role = "agent"
	RoleAdmin  Role = "admin"
)

type Capability string

const (
	CapBook             Capability = "book"
	CapCancelOwn        Capability = "cancel_own"
	CapCancelAny        Capability = "cancel_any"
	CapViewOwnAsClient  Capability = "view_own_as_client"
	CapViewOwnAsAgent   Capability = "view_own_as_agent"
	CapViewAll          Capability = "view_all"
	CapManageListings   Capability = "manage_listings"
	CapManagePromotions Capability = "manage_promotions"
	CapManageUsers      Capability = "manage_users"
)

// AppointmentFilterField names the appointment field a role's own listing is
// filtered on. An empty value means the role sees every appointment.
type AppointmentFilterField string

const (
	FilterByClient AppointmentFilterField = "client_id"
	FilterByAgent  AppointmentFilterField = "agent_id"
	FilterNone     AppointmentFilterField = ""
)

type roleEntry struct {
	capabilities []Capability
	filter       AppointmentFilterField
}

var roleTable = map[Role]roleEntry{
	RoleClient: {
		capabilities: []Capability{CapBook, CapCancelOwn, CapViewOwnAsClient},
		filter:       FilterByClient,
	},
	RoleAgent: {
		capabilities: []Capability{CapCancelOwn, CapViewOwnAsAgent},
		filter:       FilterByAgent,
	},
	RoleAdmin: {
		capabilities: []Capability{
			CapBook, CapCancelAny, CapViewAll,
			CapManageListings, CapManagePromotions, CapManageUsers,
		},
		filter: FilterNone,
	},
}

func ParseRole(s string) (Role, bool) {
	r := Role(s)
	_, ok := roleTable[r]
	return r, ok
}

func (r Role) Valid() bool {
	_, ok := roleTable[r]
	return ok
}

func (r Role) Can(c Capability) bool {
	entry, ok := roleTable[r]
	if !ok {
		return false
	}
	return slices.Contains(entry.capabilities, c)
}

func (r Role) AppointmentFilter() AppointmentFilterField {
	return roleTable[r].filter
}

func Roles() []Role {
	return []Role{RoleClient, RoleAgent, RoleAdmin}
}
