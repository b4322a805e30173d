// Package mapper converts between external DTOs and domain entities.
package mapper

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/jabernat/SCHS-Robotics-Roles-Bot/internal/entities"
)

// FromDiscordMember builds an entities.User from a guild member. adminRoles
// holds the ids of roles carrying the administrator permission; the guild
// owner counts as an administrator regardless of roles.
func FromDiscordMember(member *discordgo.Member, adminRoles map[string]bool, ownerID string) entities.User {
	roleIDs := make(map[string]bool, len(member.Roles))
	isAdmin := member.User.ID == ownerID
	for _, id := range member.Roles {
		roleIDs[id] = true
		if adminRoles[id] {
			isAdmin = true
		}
	}

	return entities.User{
		ID:          member.User.ID,
		Username:    QualifiedUsername(member.User),
		DisplayName: memberDisplayName(member),
		RoleIDs:     roleIDs,
		IsAdmin:     isAdmin,
	}
}

// QualifiedUsername renders the disambiguated handle: discriminator-tagged
// for legacy accounts, the plain unique username otherwise.
func QualifiedUsername(user *discordgo.User) string {
	if user.Discriminator != "" && user.Discriminator != "0" {
		return user.Username + "#" + user.Discriminator
	}
	return user.Username
}

// memberDisplayName mirrors Discord's display precedence: guild nickname,
// then global display name, then username.
func memberDisplayName(member *discordgo.Member) string {
	if member.Nick != "" {
		return member.Nick
	}
	if member.User.GlobalName != "" {
		return member.User.GlobalName
	}
	return member.User.Username
}

// FromSheetValues converts a raw spreadsheet value range into sheet rows.
// Expected column order is username, first name, last initial, team; short
// rows are padded with empty cells.
func FromSheetValues(values [][]interface{}) []entities.SheetRow {
	rows := make([]entities.SheetRow, 0, len(values))
	for _, value := range values {
		rows = append(rows, entities.SheetRow{
			Username:    cell(value, 0),
			FirstName:   cell(value, 1),
			LastInitial: cell(value, 2),
			Team:        cell(value, 3),
		})
	}
	return rows
}

func cell(row []interface{}, i int) string {
	if i >= len(row) {
		return ""
	}
	return strings.TrimSpace(fmt.Sprint(row[i]))
}
