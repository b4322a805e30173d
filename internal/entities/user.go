// Package entities contains core business entities.
package entities

import "sort"

// User is a guild member as observed on the platform at snapshot time.
type User struct {
	ID          string
	Username    string
	DisplayName string
	RoleIDs     map[string]bool
	IsAdmin     bool
}

// HasRole reports whether the user currently holds the given role id.
func (u User) HasRole(roleID string) bool {
	return u.RoleIDs[roleID]
}

// SortedRoleIDs returns the user's role ids in a stable order.
func (u User) SortedRoleIDs() []string {
	ids := make([]string, 0, len(u.RoleIDs))
	for id := range u.RoleIDs {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// SheetRow is one row of the membership spreadsheet as delivered by the row
// source. Optional cells arrive as empty strings.
type SheetRow struct {
	Username    string
	FirstName   string
	LastInitial string
	Team        string
}
