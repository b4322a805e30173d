package roster

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jabernat/SCHS-Robotics-Roles-Bot/internal/entities"
	"github.com/jabernat/SCHS-Robotics-Roles-Bot/internal/snapshot"
)

func currentRoster() *entities.Roster {
	return FromMembers([]entities.User{
		{ID: "1", Username: "pat#1234", DisplayName: "Pat L."},
		{ID: "2", Username: "root", DisplayName: "Root", IsAdmin: true},
	})
}

func TestDesiredFromSheetSkipsEmptyUsername(t *testing.T) {
	desired := DesiredFromSheet([]entities.SheetRow{
		{Username: "", FirstName: "Ghost", Team: "8097"},
		{Username: "   ", FirstName: "Spacey", Team: "8097"},
		{Username: "pat#1234", FirstName: "Pat", LastInitial: "L", Team: "8097"},
	}, currentRoster())

	require.Equal(t, 1, desired.Len())
	_, ok := desired.ByUsername("pat#1234")
	require.True(t, ok)
}

func TestDesiredFromSheetExcludesAdministrators(t *testing.T) {
	desired := DesiredFromSheet([]entities.SheetRow{
		{Username: "root", FirstName: "Rude", LastInitial: "T", Team: "8097"},
	}, currentRoster())

	require.Zero(t, desired.Len(), "admin rows never become mutation targets")
}

func TestDesiredFromSheetNameTriState(t *testing.T) {
	tests := []struct {
		name string
		row  entities.SheetRow
		want entities.NameSpec
	}{
		{
			name: "empty first name leaves name unspecified",
			row:  entities.SheetRow{Username: "pat#1234", LastInitial: "L", Team: "8097"},
			want: entities.NameSpec{},
		},
		{
			name: "first and initial",
			row:  entities.SheetRow{Username: "pat#1234", FirstName: "Pat", LastInitial: "L", Team: "8097"},
			want: entities.SpecifiedName("Pat L."),
		},
		{
			name: "first only",
			row:  entities.SheetRow{Username: "pat#1234", FirstName: "Pat", Team: "8097"},
			want: entities.SpecifiedName("Pat"),
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			desired := DesiredFromSheet([]entities.SheetRow{tt.row}, currentRoster())
			target, ok := desired.ByUsername("pat#1234")
			require.True(t, ok)
			require.Equal(t, tt.want, target.Name)
		})
	}
}

func TestDesiredFromSheetTeamIntent(t *testing.T) {
	desired := DesiredFromSheet([]entities.SheetRow{
		{Username: "pat#1234", Team: "8097"},
		{Username: "sam", Team: ""},
	}, currentRoster())

	pat, ok := desired.ByUsername("pat#1234")
	require.True(t, ok)
	require.Equal(t, entities.Team("8097"), pat.Team)
	require.False(t, pat.ExplicitRoles)

	sam, ok := desired.ByUsername("sam")
	require.True(t, ok)
	require.True(t, sam.Team.None, "empty team cell means no active team, not a skipped row")
}

func TestDesiredFromSheetDuplicateLastWins(t *testing.T) {
	desired := DesiredFromSheet([]entities.SheetRow{
		{Username: "pat#1234", Team: "8097"},
		{Username: "pat#1234", Team: ""},
	}, currentRoster())

	require.Equal(t, 1, desired.Len())
	pat, _ := desired.ByUsername("pat#1234")
	require.True(t, pat.Team.None)
}

func TestDesiredFromBackupIsFullySpecified(t *testing.T) {
	desired := DesiredFromBackup([]snapshot.Row{
		{
			Username:    "root",
			DisplayName: "Root",
			Flags:       map[string]bool{"t8097": true, "act": true, "alm": false},
		},
	})

	target, ok := desired.ByUsername("root")
	require.True(t, ok, "restore has no administrator exclusion")
	require.True(t, target.ExplicitRoles)
	require.Equal(t, entities.SpecifiedName("Root"), target.Name)
	require.Equal(t, map[string]bool{"t8097": true, "act": true, "alm": false}, target.Roles)
}
