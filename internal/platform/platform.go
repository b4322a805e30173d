// Package platform provides factory for chat-platform gateways.
package platform

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"

	"github.com/jabernat/SCHS-Robotics-Roles-Bot/config"
	"github.com/jabernat/SCHS-Robotics-Roles-Bot/internal/platform/discord"
)

// Platform aggregates all chat-platform collaborator interfaces.
type Platform interface {
	LifecycleInterface
	MemberInterface
	CatalogInterface
	MutationInterface
	StatusInterface
}

// New constructs a platform gateway by name over an established session.
func New(ctx context.Context, name string, log *zap.SugaredLogger, cfg *config.Config, session *discordgo.Session) (Platform, error) {
	switch name {
	case "discord":
		return discord.New(ctx, log, cfg, session), nil
	default:
		return nil, fmt.Errorf("unknown platform backend: %s", name)
	}
}
