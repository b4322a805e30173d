package discord

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/jabernat/SCHS-Robotics-Roles-Bot/internal/entities"
	"github.com/jabernat/SCHS-Robotics-Roles-Bot/internal/mapper"
)

// memberPageSize is the Discord API maximum for one GuildMembers page.
const memberPageSize = 1000

// ListMembers reads the full guild member list in platform listing order.
// Bots are excluded; the guild owner and holders of an administrator role
// are flagged as administrators.
func (c *Client) ListMembers(ctx context.Context, guildID string) ([]entities.User, error) {
	guild, err := c.session.Guild(guildID, discordgo.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("fetch guild %s: %w", guildID, err)
	}

	adminRoles, err := c.adminRoleIDs(ctx, guildID)
	if err != nil {
		return nil, err
	}

	var users []entities.User
	after := ""
	for {
		page, err := c.session.GuildMembers(guildID, after, memberPageSize, discordgo.WithContext(ctx))
		if err != nil {
			return nil, fmt.Errorf("list members after %q: %w", after, err)
		}
		for _, member := range page {
			if member.User == nil {
				continue
			}
			after = member.User.ID
			if member.User.Bot {
				continue
			}
			users = append(users, mapper.FromDiscordMember(member, adminRoles, guild.OwnerID))
		}
		if len(page) < memberPageSize {
			break
		}
	}

	c.log.Infow("members listed", "guild_id", guildID, "count", len(users))
	return users, nil
}

// adminRoleIDs returns the ids of guild roles carrying the administrator
// permission.
func (c *Client) adminRoleIDs(ctx context.Context, guildID string) (map[string]bool, error) {
	roles, err := c.session.GuildRoles(guildID, discordgo.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("list guild roles: %w", err)
	}

	admin := make(map[string]bool)
	for _, role := range roles {
		if role.Permissions&discordgo.PermissionAdministrator != 0 {
			admin[role.ID] = true
		}
	}
	return admin, nil
}
