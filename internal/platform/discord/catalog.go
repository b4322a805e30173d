package discord

import (
	"context"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/jabernat/SCHS-Robotics-Roles-Bot/internal/entities"
)

// ResolveCatalog matches the configured role declarations against the live
// guild roles by name. Resolution happens once per operation; any configured
// role missing on the platform is fatal before mutations begin.
func (c *Client) ResolveCatalog(ctx context.Context, guildID string) (*entities.Catalog, error) {
	guildRoles, err := c.session.GuildRoles(guildID, discordgo.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("list guild roles: %w", err)
	}

	byName := make(map[string]*discordgo.Role, len(guildRoles))
	for _, role := range guildRoles {
		byName[role.Name] = role
	}

	declarations := c.roles.Declarations()
	resolved := make([]entities.Role, 0, len(declarations))
	var missing []string
	for _, decl := range declarations {
		live, ok := byName[decl.Name]
		if !ok {
			missing = append(missing, decl.Name)
			continue
		}
		decl.ID = live.ID
		resolved = append(resolved, decl)
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: configured roles missing on guild %s: %s",
			entities.ErrUnknownRole, guildID, strings.Join(missing, ", "))
	}

	return entities.NewCatalog(resolved), nil
}
