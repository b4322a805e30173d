// Package discord implements the platform gateway against the Discord API.
package discord

import (
	"context"
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"

	"github.com/jabernat/SCHS-Robotics-Roles-Bot/config"
	"github.com/jabernat/SCHS-Robotics-Roles-Bot/internal/entities"
)

// Client wraps a discordgo session and configuration.
type Client struct {
	baseCtx     context.Context
	log         *zap.SugaredLogger
	session     *discordgo.Session
	roles       config.RolesConfig
	connectedAt time.Time
}

// New creates a Discord gateway over an established (not yet opened) session.
func New(ctx context.Context, log *zap.SugaredLogger, cfg *config.Config, session *discordgo.Session) *Client {
	return &Client{
		baseCtx: ctx,
		log:     log.Named("platform.discord"),
		session: session,
		roles:   cfg.Roles,
	}
}

// OnStart opens the gateway connection. Command handlers must already be
// registered on the session at this point.
func (c *Client) OnStart(_ context.Context) error {
	c.session.Identify.Intents = discordgo.IntentsGuilds | discordgo.IntentsGuildMembers
	c.session.StateEnabled = true

	if err := c.session.Open(); err != nil {
		return fmt.Errorf("open session: %w", err)
	}
	c.connectedAt = time.Now()

	botUser := ""
	if c.session.State != nil && c.session.State.User != nil {
		botUser = c.session.State.User.Username
	}
	c.log.Infow("discord ready", "bot_user", botUser)
	return nil
}

// OnStop closes the gateway connection.
func (c *Client) OnStop(_ context.Context) error {
	if c.session != nil {
		return c.session.Close()
	}
	return nil
}

// Status reports gateway connection state for the health surface.
func (c *Client) Status() entities.SessionStatus {
	status := entities.SessionStatus{}
	if c.session == nil || c.session.State == nil {
		return status
	}
	status.Connected = c.session.DataReady
	status.GuildCount = len(c.session.State.Guilds)
	status.ConnectedAt = c.connectedAt
	if c.session.State.User != nil {
		status.BotUsername = c.session.State.User.Username
	}
	return status
}
