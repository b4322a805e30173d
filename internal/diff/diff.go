// Package diff computes the minimal ordered mutation plan that moves the
// current roster toward a desired roster.
package diff

import (
	"github.com/jabernat/SCHS-Robotics-Roles-Bot/internal/entities"
)

// Plan compares current against desired state and returns per-user mutation
// bundles in current listing order. Users absent from the desired roster are
// left untouched; desired usernames that match no current user are ignored.
// The plan contains only effective changes: granting a held role, revoking
// an absent one, or renaming to the current name is never emitted.
func Plan(current *entities.Roster, desired *entities.DesiredRoster, catalog *entities.Catalog) (entities.Plan, error) {
	var plan entities.Plan
	for _, user := range current.Users() {
		target, ok := desired.ByUsername(user.Username)
		if !ok {
			continue
		}

		bundle, err := planUser(user, target, catalog)
		if err != nil {
			return entities.Plan{}, err
		}
		if len(bundle.Mutations) > 0 {
			plan.Bundles = append(plan.Bundles, bundle)
		}
	}
	return plan, nil
}

func planUser(user entities.User, target entities.DesiredUser, catalog *entities.Catalog) (entities.Bundle, error) {
	bundle := entities.Bundle{UserID: user.ID, Username: user.Username}

	// Display name first.
	if target.Name.Specified && target.Name.Name != user.DisplayName {
		bundle.Mutations = append(bundle.Mutations, entities.SetDisplayName(user.ID, target.Name.Name))
	}

	var roleMutations []entities.Mutation
	var err error
	if target.ExplicitRoles {
		roleMutations = planExplicit(user, target, catalog)
	} else {
		roleMutations, err = planTransition(user, target, catalog)
		if err != nil {
			return entities.Bundle{}, err
		}
	}
	bundle.Mutations = append(bundle.Mutations, roleMutations...)
	return bundle, nil
}

// planExplicit handles backup-derived targets: a direct set difference over
// the catalog's managed roles, revokes before grants.
func planExplicit(user entities.User, target entities.DesiredUser, catalog *entities.Catalog) []entities.Mutation {
	var revokes, grants []entities.Mutation
	for _, role := range catalog.Managed() {
		wanted := target.Roles[role.ID]
		held := user.HasRole(role.ID)
		switch {
		case held && !wanted:
			revokes = append(revokes, entities.RevokeRole(user.ID, role.ID))
		case !held && wanted:
			grants = append(grants, entities.GrantRole(user.ID, role.ID))
		}
	}
	return append(revokes, grants...)
}

// planTransition handles spreadsheet-derived targets: the team membership
// transition followed by the active/alumni singleton adjustments derived
// from the post-transition team state.
func planTransition(user entities.User, target entities.DesiredUser, catalog *entities.Catalog) ([]entities.Mutation, error) {
	heldTeams := heldTeamRoles(user, catalog)

	var revokes, grants []entities.Mutation
	hasTeam := false
	newlyTeamless := false

	if target.Team.None {
		// Revoking the last team role is the "became alumni" transition: each
		// vacated team also grants its alumni role. Users who were already
		// teamless stay untouched here.
		newlyTeamless = len(heldTeams) > 0
		for _, teamRole := range heldTeams {
			revokes = append(revokes, entities.RevokeRole(user.ID, teamRole.ID))
			alumniRole, err := catalog.TeamAlumniRoleFor(teamRole.Category.TeamKey)
			if err != nil {
				return nil, err
			}
			if !user.HasRole(alumniRole.ID) {
				grants = append(grants, entities.GrantRole(user.ID, alumniRole.ID))
			}
		}
	} else {
		wanted, err := catalog.TeamRoleFor(target.Team.TeamKey)
		if err != nil {
			return nil, err
		}
		hasTeam = true
		for _, teamRole := range heldTeams {
			if teamRole.ID != wanted.ID {
				revokes = append(revokes, entities.RevokeRole(user.ID, teamRole.ID))
			}
		}
		if !user.HasRole(wanted.ID) {
			grants = append(grants, entities.GrantRole(user.ID, wanted.ID))
		}
	}

	singles, err := planSingletons(user, catalog, hasTeam, newlyTeamless)
	if err != nil {
		return nil, err
	}

	mutations := append(revokes, grants...)
	return append(mutations, singles...), nil
}

// planSingletons adjusts the server-wide active and alumni roles. The alumni
// singleton is granted only on an actual team-to-no-team edge; a user who
// was already teamless is neither granted nor stripped of it.
func planSingletons(user entities.User, catalog *entities.Catalog, hasTeam, newlyTeamless bool) ([]entities.Mutation, error) {
	active, err := catalog.Singleton(entities.KindActive)
	if err != nil {
		return nil, err
	}
	alumni, err := catalog.Singleton(entities.KindAlumni)
	if err != nil {
		return nil, err
	}

	var mutations []entities.Mutation
	if hasTeam {
		if user.HasRole(alumni.ID) {
			mutations = append(mutations, entities.RevokeRole(user.ID, alumni.ID))
		}
		if !user.HasRole(active.ID) {
			mutations = append(mutations, entities.GrantRole(user.ID, active.ID))
		}
		return mutations, nil
	}

	if user.HasRole(active.ID) {
		mutations = append(mutations, entities.RevokeRole(user.ID, active.ID))
	}
	if newlyTeamless && !user.HasRole(alumni.ID) {
		mutations = append(mutations, entities.GrantRole(user.ID, alumni.ID))
	}
	return mutations, nil
}

// heldTeamRoles returns the user's current team roles in catalog declaration
// order. A member should hold at most one, but any held team role counts.
func heldTeamRoles(user entities.User, catalog *entities.Catalog) []entities.Role {
	var held []entities.Role
	for _, role := range catalog.Roles() {
		if role.Category.Kind == entities.KindTeam && user.HasRole(role.ID) {
			held = append(held, role)
		}
	}
	return held
}

// ApplyPlan projects a plan onto a roster and returns the resulting roster.
// The input roster is never modified; this backs re-diff checks and the
// human-auditable after preview when the live state cannot be re-read.
func ApplyPlan(current *entities.Roster, plan entities.Plan) *entities.Roster {
	byUser := make(map[string][]entities.Mutation, len(plan.Bundles))
	for _, b := range plan.Bundles {
		byUser[b.UserID] = b.Mutations
	}

	users := current.Users()
	for i, user := range users {
		mutations, ok := byUser[user.ID]
		if !ok {
			continue
		}
		roles := make(map[string]bool, len(user.RoleIDs))
		for id, held := range user.RoleIDs {
			if held {
				roles[id] = true
			}
		}
		for _, m := range mutations {
			switch m.Op {
			case entities.OpSetDisplayName:
				user.DisplayName = m.Name
			case entities.OpGrantRole:
				roles[m.RoleID] = true
			case entities.OpRevokeRole:
				delete(roles, m.RoleID)
			}
		}
		user.RoleIDs = roles
		users[i] = user
	}
	return entities.NewRoster(users)
}
