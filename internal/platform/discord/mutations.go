package discord

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"
)

// SetDisplayName changes a member's guild nickname.
func (c *Client) SetDisplayName(ctx context.Context, guildID, userID, name string) error {
	if err := c.session.GuildMemberNickname(guildID, userID, name, discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf("set nickname for %s: %w", userID, err)
	}
	return nil
}

// GrantRole adds a role to a member.
func (c *Client) GrantRole(ctx context.Context, guildID, userID, roleID string) error {
	if err := c.session.GuildMemberRoleAdd(guildID, userID, roleID, discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf("grant role %s to %s: %w", roleID, userID, err)
	}
	return nil
}

// RevokeRole removes a role from a member.
func (c *Client) RevokeRole(ctx context.Context, guildID, userID, roleID string) error {
	if err := c.session.GuildMemberRoleRemove(guildID, userID, roleID, discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf("revoke role %s from %s: %w", roleID, userID, err)
	}
	return nil
}
