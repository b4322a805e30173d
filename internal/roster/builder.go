// Package roster builds current and desired rosters from their sources: the
// live member listing, spreadsheet rows, or a decoded backup.
package roster

import (
	"strings"

	"github.com/jabernat/SCHS-Robotics-Roles-Bot/internal/entities"
	"github.com/jabernat/SCHS-Robotics-Roles-Bot/internal/snapshot"
)

// FromMembers builds the current roster from a live member listing,
// preserving platform listing order.
func FromMembers(members []entities.User) *entities.Roster {
	return entities.NewRoster(members)
}

// DesiredFromSheet builds the desired roster from spreadsheet rows. Rows
// with an empty username contribute nothing. An empty team cell means "no
// active team"; an empty first-name cell leaves the display name
// unspecified. Rows naming an administrator in the current roster are
// dropped entirely: admins are never mutation targets on the spreadsheet
// path. On duplicate usernames the last row wins.
func DesiredFromSheet(rows []entities.SheetRow, current *entities.Roster) *entities.DesiredRoster {
	admins := adminUsernames(current)

	users := make([]entities.DesiredUser, 0, len(rows))
	for _, row := range rows {
		username := strings.TrimSpace(row.Username)
		if username == "" {
			continue
		}
		if admins[username] {
			continue
		}

		desired := entities.DesiredUser{
			Username: username,
			Name:     sheetDisplayName(row),
		}
		if team := strings.TrimSpace(row.Team); team == "" {
			desired.Team = entities.NoTeam()
		} else {
			desired.Team = entities.Team(team)
		}
		users = append(users, desired)
	}
	return entities.NewDesiredRoster(users)
}

// sheetDisplayName derives the tri-state desired display name from the
// optional name cells: "First L." with a last initial, "First" without one,
// unspecified when the first-name cell is empty.
func sheetDisplayName(row entities.SheetRow) entities.NameSpec {
	first := strings.TrimSpace(row.FirstName)
	if first == "" {
		return entities.NameSpec{}
	}
	initial := strings.TrimSpace(row.LastInitial)
	if initial == "" {
		return entities.SpecifiedName(first)
	}
	return entities.SpecifiedName(first + " " + initial + ".")
}

// DesiredFromBackup builds the desired roster from decoded backup rows.
// Every user is fully specified: explicit display name and an explicit
// value for every managed role flag. Restore has no administrator
// exclusion; it targets exactly what the backup contains.
func DesiredFromBackup(rows []snapshot.Row) *entities.DesiredRoster {
	users := make([]entities.DesiredUser, 0, len(rows))
	for _, row := range rows {
		flags := make(map[string]bool, len(row.Flags))
		for roleID, held := range row.Flags {
			flags[roleID] = held
		}
		users = append(users, entities.DesiredUser{
			Username:      row.Username,
			Name:          entities.SpecifiedName(row.DisplayName),
			ExplicitRoles: true,
			Roles:         flags,
		})
	}
	return entities.NewDesiredRoster(users)
}

func adminUsernames(current *entities.Roster) map[string]bool {
	admins := make(map[string]bool)
	if current == nil {
		return admins
	}
	for _, u := range current.Users() {
		if u.IsAdmin {
			admins[u.Username] = true
		}
	}
	return admins
}
