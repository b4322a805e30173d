// Package entities contains core business entities.
package entities

import "fmt"

// RoleKind classifies configured roles for reconciliation.
type RoleKind string

const (
	// KindTeam marks a per-team membership role.
	KindTeam RoleKind = "team"
	// KindTeamAlumni marks a per-team former-membership role.
	KindTeamAlumni RoleKind = "team_alumni"
	// KindActive marks the server-wide active-member singleton.
	KindActive RoleKind = "active"
	// KindAlumni marks the server-wide alumni singleton.
	KindAlumni RoleKind = "alumni"
	// KindOther marks roles the bot never touches.
	KindOther RoleKind = "other"
)

// RoleCategory is the tagged classification of a role, resolved once at
// configuration load rather than by string matching per mutation. TeamKey is
// set only for the per-team kinds.
type RoleCategory struct {
	Kind    RoleKind
	TeamKey string
}

// TeamRole builds a per-team membership category.
func TeamRole(teamKey string) RoleCategory {
	return RoleCategory{Kind: KindTeam, TeamKey: teamKey}
}

// TeamAlumniRole builds a per-team former-membership category.
func TeamAlumniRole(teamKey string) RoleCategory {
	return RoleCategory{Kind: KindTeamAlumni, TeamKey: teamKey}
}

// Role couples a live platform role id with its configured name and category.
type Role struct {
	ID       string
	Name     string
	Category RoleCategory
}

// Catalog is the resolved set of configured roles for one operation. Order
// follows configuration declaration so backup columns stay stable across runs.
type Catalog struct {
	roles  []Role
	byID   map[string]Role
	byName map[string]Role
}

// NewCatalog builds a catalog preserving the given declaration order.
func NewCatalog(roles []Role) *Catalog {
	c := &Catalog{
		roles:  append([]Role(nil), roles...),
		byID:   make(map[string]Role, len(roles)),
		byName: make(map[string]Role, len(roles)),
	}
	for _, r := range roles {
		c.byID[r.ID] = r
		c.byName[r.Name] = r
	}
	return c
}

// Roles returns all catalog roles in declaration order.
func (c *Catalog) Roles() []Role {
	return append([]Role(nil), c.roles...)
}

// Managed returns the roles reconciliation may mutate, in declaration order.
// Other-category roles are excluded.
func (c *Catalog) Managed() []Role {
	managed := make([]Role, 0, len(c.roles))
	for _, r := range c.roles {
		if r.Category.Kind != KindOther {
			managed = append(managed, r)
		}
	}
	return managed
}

// ByID looks a role up by its platform id.
func (c *Catalog) ByID(id string) (Role, bool) {
	r, ok := c.byID[id]
	return r, ok
}

// ByName looks a role up by its configured name.
func (c *Catalog) ByName(name string) (Role, bool) {
	r, ok := c.byName[name]
	return r, ok
}

// TeamRoleFor returns the membership role of the given team.
func (c *Catalog) TeamRoleFor(teamKey string) (Role, error) {
	for _, r := range c.roles {
		if r.Category.Kind == KindTeam && r.Category.TeamKey == teamKey {
			return r, nil
		}
	}
	return Role{}, fmt.Errorf("%w: no team role for team %q", ErrUnknownRole, teamKey)
}

// TeamAlumniRoleFor returns the former-membership role of the given team.
func (c *Catalog) TeamAlumniRoleFor(teamKey string) (Role, error) {
	for _, r := range c.roles {
		if r.Category.Kind == KindTeamAlumni && r.Category.TeamKey == teamKey {
			return r, nil
		}
	}
	return Role{}, fmt.Errorf("%w: no alumni role for team %q", ErrUnknownRole, teamKey)
}

// Singleton returns the single role of the given kind (active or alumni).
func (c *Catalog) Singleton(kind RoleKind) (Role, error) {
	for _, r := range c.roles {
		if r.Category.Kind == kind {
			return r, nil
		}
	}
	return Role{}, fmt.Errorf("%w: no %s role configured", ErrUnknownRole, kind)
}
