// Package domain contains application usecases orchestrating reconciliation.
package domain

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jabernat/SCHS-Robotics-Roles-Bot/internal/entities"
	"github.com/jabernat/SCHS-Robotics-Roles-Bot/internal/roster"
	"github.com/jabernat/SCHS-Robotics-Roles-Bot/internal/snapshot"
)

// Backup snapshots the guild's current display names and role assignments
// into a compressed backup attachment.
func (u *Usecase) Backup(ctx context.Context, guildID string) (*entities.Attachment, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	if guildID == "" {
		return nil, fmt.Errorf("%w: guild id is required", entities.ErrInvalidArgument)
	}
	if err := u.requireConnected(); err != nil {
		return nil, err
	}

	opID := uuid.NewString()
	catalog, err := u.platform.ResolveCatalog(ctx, guildID)
	if err != nil {
		return nil, err
	}

	current, attachment, err := u.snapshotCurrent(ctx, guildID, catalog, opID, "backup")
	if err != nil {
		return nil, err
	}

	u.log.Infow("backup created",
		"op_id", opID,
		"guild_id", guildID,
		"users", current.Len(),
		"bytes", len(attachment.Data),
	)
	return attachment, nil
}

// snapshotCurrent reads the live member list and encodes it, returning both
// the roster and the attachment built from it.
func (u *Usecase) snapshotCurrent(ctx context.Context, guildID string, catalog *entities.Catalog, opID, kind string) (*entities.Roster, *entities.Attachment, error) {
	members, err := u.platform.ListMembers(ctx, guildID)
	if err != nil {
		return nil, nil, err
	}
	current := roster.FromMembers(members)

	data, err := snapshot.Encode(current, catalog)
	if err != nil {
		return nil, nil, err
	}
	return current, &entities.Attachment{
		Filename: attachmentName(kind, opID),
		Data:     data,
	}, nil
}

func attachmentName(kind, opID string) string {
	short := opID
	if len(short) > 8 {
		short = short[:8]
	}
	return fmt.Sprintf("roles_%s_%s_%s.csv.gz", kind, time.Now().UTC().Format("20060102"), short)
}
