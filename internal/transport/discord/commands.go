// Package discord wires the slash-command surface to the usecase layer.
package discord

import (
	"context"
	"time"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"

	"github.com/jabernat/SCHS-Robotics-Roles-Bot/internal/usecase"
)

const helpText = "**Roles Bot commands**\n" +
	"`/roles_help` — this message.\n" +
	"`/roles_backup` — attach a backup file of members' display names and roles.\n" +
	"`/roles_restore file:<backup>` — restore display names and roles from a backup file.\n" +
	"`/roles_update` — sync display names and roles with the membership spreadsheet.\n\n" +
	"⚠️ Do not manually edit nicknames or roles while a command is running; " +
	"manual changes made mid-command may be silently overwritten."

// Handler registers slash commands and dispatches interactions.
type Handler struct {
	log     *zap.SugaredLogger
	uc      usecase.InterfaceUsecase
	timeout time.Duration
}

// NewHandler constructs the command handler with service dependencies.
func NewHandler(log *zap.SugaredLogger, uc usecase.InterfaceUsecase, timeout time.Duration) *Handler {
	return &Handler{
		log:     log.Named("transport.discord"),
		uc:      uc,
		timeout: timeout,
	}
}

// Register attaches event handlers to the session. Must run before the
// session is opened.
func (h *Handler) Register(session *discordgo.Session) {
	session.AddHandler(h.onGuildCreate)
	session.AddHandler(h.onInteraction)
}

// onGuildCreate registers the guild-scoped commands whenever a guild
// becomes available.
func (h *Handler) onGuildCreate(s *discordgo.Session, event *discordgo.GuildCreate) {
	appID := ""
	if s.State != nil && s.State.User != nil {
		appID = s.State.User.ID
	}
	if appID == "" {
		h.log.Errorw("cannot register commands: application id unknown", "guild_id", event.ID)
		return
	}

	if _, err := s.ApplicationCommandBulkOverwrite(appID, event.ID, commands()); err != nil {
		h.log.Errorw("command registration failed", "guild_id", event.ID, "error", err.Error())
		return
	}
	h.log.Infow("commands registered", "guild_id", event.ID, "guild", event.Name)
}

// commands declares the slash-command set. Restore and update default to
// members allowed to manage nicknames and roles.
func commands() []*discordgo.ApplicationCommand {
	manage := int64(discordgo.PermissionManageNicknames | discordgo.PermissionManageRoles)
	noDM := false

	return []*discordgo.ApplicationCommand{
		{
			Name:         "roles_help",
			Description:  "Explains the usage of this bot's other commands.",
			DMPermission: &noDM,
		},
		{
			Name:         "roles_backup",
			Description:  "Creates a backup file of members' display names and roles.",
			DMPermission: &noDM,
		},
		{
			Name:                     "roles_restore",
			Description:              "Restores members' display names and roles from a backup file.",
			DMPermission:             &noDM,
			DefaultMemberPermissions: &manage,
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionAttachment,
					Name:        "file",
					Description: "Backup file produced by /roles_backup.",
					Required:    true,
				},
			},
		},
		{
			Name:                     "roles_update",
			Description:              "Syncs members' display names and roles with the membership spreadsheet.",
			DMPermission:             &noDM,
			DefaultMemberPermissions: &manage,
		},
	}
}

func (h *Handler) onInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}

	name := i.ApplicationCommandData().Name
	switch name {
	case "roles_help":
		h.respondHelp(s, i)
	case "roles_backup":
		h.runBackup(s, i)
	case "roles_restore":
		h.runRestore(s, i)
	case "roles_update":
		h.runUpdate(s, i)
	default:
		h.log.Warnw("unknown command", "name", name)
	}
}

func (h *Handler) respondHelp(s *discordgo.Session, i *discordgo.InteractionCreate) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: helpText,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
	if err != nil {
		h.log.Errorw("help response failed", "error", err.Error())
	}
}

func (h *Handler) runBackup(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if !h.deferResponse(s, i, false) {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), h.timeout)
	defer cancel()

	attachment, err := h.uc.Backup(ctx, i.GuildID)
	if err != nil {
		h.log.Errorw("backup failed", "guild_id", i.GuildID, "error", err.Error())
		h.followupError(s, i, err)
		return
	}
	h.followup(s, i, "Backed up current display names and roles.", attachment)
}

func (h *Handler) runRestore(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if !h.deferResponse(s, i, false) {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), h.timeout)
	defer cancel()

	data, err := h.downloadOption(ctx, i)
	if err != nil {
		h.log.Errorw("backup download failed", "guild_id", i.GuildID, "error", err.Error())
		h.followupError(s, i, err)
		return
	}

	result, err := h.uc.Restore(ctx, i.GuildID, data)
	if err != nil {
		h.log.Errorw("restore failed", "guild_id", i.GuildID, "error", err.Error())
		h.followupError(s, i, err)
		return
	}
	h.followup(s, i, renderResult("Restore", result), result.Before, result.After)
}

func (h *Handler) runUpdate(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if !h.deferResponse(s, i, true) {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), h.timeout)
	defer cancel()

	result, err := h.uc.Update(ctx, i.GuildID)
	if err != nil {
		h.log.Errorw("update failed", "guild_id", i.GuildID, "error", err.Error())
		h.followupError(s, i, err)
		return
	}
	h.followup(s, i, renderResult("Update", result), result.Before, result.After)
}
