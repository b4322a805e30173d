package discord

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/jabernat/SCHS-Robotics-Roles-Bot/internal/entities"
)

// maxBackupBytes bounds attachment downloads; backups are small CSVs.
const maxBackupBytes = 8 << 20

// deferResponse acknowledges the interaction so the operation can run past
// Discord's three-second response deadline.
func (h *Handler) deferResponse(s *discordgo.Session, i *discordgo.InteractionCreate, ephemeral bool) bool {
	data := &discordgo.InteractionResponseData{}
	if ephemeral {
		data.Flags = discordgo.MessageFlagsEphemeral
	}
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
		Data: data,
	})
	if err != nil {
		h.log.Errorw("interaction defer failed", "error", err.Error())
		return false
	}
	return true
}

func (h *Handler) followup(s *discordgo.Session, i *discordgo.InteractionCreate, content string, attachments ...*entities.Attachment) {
	params := &discordgo.WebhookParams{Content: content}
	for _, attachment := range attachments {
		if attachment == nil {
			continue
		}
		params.Files = append(params.Files, &discordgo.File{
			Name:        attachment.Filename,
			ContentType: "application/gzip",
			Reader:      bytes.NewReader(attachment.Data),
		})
	}

	if _, err := s.FollowupMessageCreate(i.Interaction, true, params); err != nil {
		h.log.Errorw("followup failed", "error", err.Error())
	}
}

func (h *Handler) followupError(s *discordgo.Session, i *discordgo.InteractionCreate, err error) {
	msg := "Something went wrong; check the bot logs."
	switch {
	case errors.Is(err, entities.ErrMalformedBackup):
		msg = "That backup file could not be read: " + err.Error()
	case errors.Is(err, entities.ErrUnknownRole):
		msg = "Role configuration does not match this server: " + err.Error()
	case errors.Is(err, entities.ErrInvalidArgument):
		msg = err.Error()
	case errors.Is(err, context.DeadlineExceeded):
		msg = "The operation timed out before finishing."
	}
	h.followup(s, i, msg)
}

// downloadOption fetches the attachment passed to /roles_restore.
func (h *Handler) downloadOption(ctx context.Context, i *discordgo.InteractionCreate) ([]byte, error) {
	data := i.ApplicationCommandData()
	if len(data.Options) == 0 {
		return nil, fmt.Errorf("%w: file option is required", entities.ErrInvalidArgument)
	}

	attachmentID, _ := data.Options[0].Value.(string)
	resolved, ok := data.Resolved.Attachments[attachmentID]
	if !ok {
		return nil, fmt.Errorf("%w: attachment not resolved", entities.ErrInvalidArgument)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, resolved.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("build download request: %w", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download attachment: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("download attachment: unexpected status %s", resp.Status)
	}
	return io.ReadAll(io.LimitReader(resp.Body, maxBackupBytes))
}

// renderResult summarizes a reconciliation run for the invoker, listing
// failed mutations up to a small cap.
func renderResult(operation string, result *entities.OperationResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s finished: %d of %d mutations applied", operation, len(result.Report.Applied), result.Planned)
	if len(result.Report.Failed) > 0 {
		fmt.Fprintf(&b, ", %d failed", len(result.Report.Failed))
	}
	if len(result.Report.Skipped) > 0 {
		fmt.Fprintf(&b, ", %d skipped", len(result.Report.Skipped))
	}
	b.WriteString(".")

	const maxListed = 10
	for n, failure := range result.Report.Failed {
		if n == maxListed {
			fmt.Fprintf(&b, "\n… and %d more failures.", len(result.Report.Failed)-maxListed)
			break
		}
		fmt.Fprintf(&b, "\n• %s: %v", failure.Mutation, failure.Err)
	}
	return b.String()
}
