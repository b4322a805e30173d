// Package entities contains core business entities.
package entities

import "fmt"

// MutationOp enumerates the atomic per-user changes reconciliation can issue.
type MutationOp string

const (
	// OpSetDisplayName changes a member's display name.
	OpSetDisplayName MutationOp = "set_display_name"
	// OpGrantRole adds a role to a member.
	OpGrantRole MutationOp = "grant_role"
	// OpRevokeRole removes a role from a member.
	OpRevokeRole MutationOp = "revoke_role"
)

// Mutation is one atomic change. RoleID is set for grant/revoke, Name for
// display-name changes.
type Mutation struct {
	Op     MutationOp
	UserID string
	RoleID string
	Name   string
}

// SetDisplayName builds a display-name mutation.
func SetDisplayName(userID, name string) Mutation {
	return Mutation{Op: OpSetDisplayName, UserID: userID, Name: name}
}

// GrantRole builds a role-grant mutation.
func GrantRole(userID, roleID string) Mutation {
	return Mutation{Op: OpGrantRole, UserID: userID, RoleID: roleID}
}

// RevokeRole builds a role-revoke mutation.
func RevokeRole(userID, roleID string) Mutation {
	return Mutation{Op: OpRevokeRole, UserID: userID, RoleID: roleID}
}

// String renders a mutation for logs and reports.
func (m Mutation) String() string {
	if m.Op == OpSetDisplayName {
		return fmt.Sprintf("%s(%s, %q)", m.Op, m.UserID, m.Name)
	}
	return fmt.Sprintf("%s(%s, %s)", m.Op, m.UserID, m.RoleID)
}

// Bundle is the ordered mutation list for a single user. Order within a
// bundle is significant: display name first, revokes before grants.
type Bundle struct {
	UserID    string
	Username  string
	Mutations []Mutation
}

// Plan is the full output of the diff engine: one bundle per user needing
// changes, in current-roster listing order.
type Plan struct {
	Bundles []Bundle
}

// Empty reports whether the plan contains no mutations.
func (p Plan) Empty() bool {
	for _, b := range p.Bundles {
		if len(b.Mutations) > 0 {
			return false
		}
	}
	return true
}

// Mutations flattens the plan into a single ordered list.
func (p Plan) Mutations() []Mutation {
	var all []Mutation
	for _, b := range p.Bundles {
		all = append(all, b.Mutations...)
	}
	return all
}

// MutationResult couples a mutation with its application outcome. Err is nil
// on success and wraps ErrPlatformMutation on failure.
type MutationResult struct {
	Mutation Mutation
	Err      error
}

// Report aggregates a reconciliation run: applied and failed mutations plus
// anything skipped because the run was cancelled.
type Report struct {
	Applied []MutationResult
	Failed  []MutationResult
	Skipped []Mutation
}

// Partial reports whether any mutation failed or was skipped.
func (r Report) Partial() bool {
	return len(r.Failed) > 0 || len(r.Skipped) > 0
}
