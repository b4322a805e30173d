package mapper

import (
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/require"

	"github.com/jabernat/SCHS-Robotics-Roles-Bot/internal/entities"
)

func TestQualifiedUsername(t *testing.T) {
	tests := []struct {
		name string
		user *discordgo.User
		want string
	}{
		{
			name: "legacy discriminator",
			user: &discordgo.User{Username: "pat", Discriminator: "1234"},
			want: "pat#1234",
		},
		{
			name: "migrated account",
			user: &discordgo.User{Username: "pat", Discriminator: "0"},
			want: "pat",
		},
		{
			name: "no discriminator",
			user: &discordgo.User{Username: "pat"},
			want: "pat",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, QualifiedUsername(tt.user))
		})
	}
}

func TestFromDiscordMemberDisplayPrecedence(t *testing.T) {
	member := &discordgo.Member{
		Nick: "Pat L.",
		User: &discordgo.User{ID: "1", Username: "pat", GlobalName: "Patrick"},
	}
	require.Equal(t, "Pat L.", FromDiscordMember(member, nil, "").DisplayName)

	member.Nick = ""
	require.Equal(t, "Patrick", FromDiscordMember(member, nil, "").DisplayName)

	member.User.GlobalName = ""
	require.Equal(t, "pat", FromDiscordMember(member, nil, "").DisplayName)
}

func TestFromDiscordMemberAdminFlag(t *testing.T) {
	member := &discordgo.Member{
		User:  &discordgo.User{ID: "1", Username: "pat"},
		Roles: []string{"mod"},
	}

	require.False(t, FromDiscordMember(member, nil, "2").IsAdmin)
	require.True(t, FromDiscordMember(member, map[string]bool{"mod": true}, "2").IsAdmin,
		"holder of an administrator role")
	require.True(t, FromDiscordMember(member, nil, "1").IsAdmin, "guild owner")
}

func TestFromSheetValuesPadsShortRows(t *testing.T) {
	rows := FromSheetValues([][]interface{}{
		{"pat#1234", "Pat", "L", "8097"},
		{"sam", "Sam"},
		{},
	})

	require.Equal(t, []entities.SheetRow{
		{Username: "pat#1234", FirstName: "Pat", LastInitial: "L", Team: "8097"},
		{Username: "sam", FirstName: "Sam"},
		{},
	}, rows)
}
