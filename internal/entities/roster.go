// Package entities contains core business entities.
package entities

// Roster is the full mapping of users to display name and role set at a
// point in time. It is immutable once constructed; reconciliation produces
// mutation lists, never in-place edits.
type Roster struct {
	users []User
	byID  map[string]int
}

// NewRoster builds a roster preserving the platform listing order. Role sets
// are copied so later catalog or member changes cannot alias in.
func NewRoster(users []User) *Roster {
	r := &Roster{
		users: make([]User, 0, len(users)),
		byID:  make(map[string]int, len(users)),
	}
	for _, u := range users {
		roles := make(map[string]bool, len(u.RoleIDs))
		for id, held := range u.RoleIDs {
			if held {
				roles[id] = true
			}
		}
		u.RoleIDs = roles
		r.byID[u.ID] = len(r.users)
		r.users = append(r.users, u)
	}
	return r
}

// Users returns the roster's users in listing order.
func (r *Roster) Users() []User {
	return append([]User(nil), r.users...)
}

// ByID returns the user with the given platform id.
func (r *Roster) ByID(id string) (User, bool) {
	i, ok := r.byID[id]
	if !ok {
		return User{}, false
	}
	return r.users[i], true
}

// Len returns the number of users in the roster.
func (r *Roster) Len() int {
	return len(r.users)
}

// NameSpec is a tri-state desired display name: unspecified leaves the
// current name untouched regardless of its value.
type NameSpec struct {
	Specified bool
	Name      string
}

// SpecifiedName builds a specified NameSpec.
func SpecifiedName(name string) NameSpec {
	return NameSpec{Specified: true, Name: name}
}

// TeamSpec is the desired team intent for the spreadsheet path. None means
// "no active team", which is distinct from a skipped row.
type TeamSpec struct {
	None    bool
	TeamKey string
}

// NoTeam builds a TeamSpec meaning no active team.
func NoTeam() TeamSpec {
	return TeamSpec{None: true}
}

// Team builds a TeamSpec targeting the given team.
func Team(key string) TeamSpec {
	return TeamSpec{TeamKey: key}
}

// DesiredUser is the target state for one user. Exactly one of the two role
// intents is populated: Team for spreadsheet-derived targets, Roles (with
// ExplicitRoles set) for backup-derived targets where every flag is known.
type DesiredUser struct {
	Username      string
	Name          NameSpec
	Team          TeamSpec
	ExplicitRoles bool
	Roles         map[string]bool
}

// DesiredRoster maps disambiguated usernames to their target state.
type DesiredRoster struct {
	users map[string]DesiredUser
	order []string
}

// NewDesiredRoster builds a desired roster from target users. Later entries
// with a duplicate username replace earlier ones.
func NewDesiredRoster(users []DesiredUser) *DesiredRoster {
	d := &DesiredRoster{users: make(map[string]DesiredUser, len(users))}
	for _, u := range users {
		if _, seen := d.users[u.Username]; !seen {
			d.order = append(d.order, u.Username)
		}
		d.users[u.Username] = u
	}
	return d
}

// ByUsername returns the target state for the given disambiguated username.
func (d *DesiredRoster) ByUsername(username string) (DesiredUser, bool) {
	u, ok := d.users[username]
	return u, ok
}

// Usernames returns targeted usernames in first-seen order.
func (d *DesiredRoster) Usernames() []string {
	return append([]string(nil), d.order...)
}

// Len returns the number of targeted users.
func (d *DesiredRoster) Len() int {
	return len(d.users)
}
