// Package domain contains application usecases orchestrating reconciliation.
package domain

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jabernat/SCHS-Robotics-Roles-Bot/internal/diff"
	"github.com/jabernat/SCHS-Robotics-Roles-Bot/internal/entities"
	"github.com/jabernat/SCHS-Robotics-Roles-Bot/internal/roster"
)

// Update reconciles the guild against the membership spreadsheet: the
// desired state is built from sheet rows (administrators excluded, rows
// without a username skipped), a before snapshot is taken ahead of any
// mutation, and the report carries both snapshots regardless of partial
// failure.
func (u *Usecase) Update(ctx context.Context, guildID string) (*entities.OperationResult, error) {
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

	rows, err := u.rows.Rows(ctx)
	if err != nil {
		return nil, err
	}

	current, before, err := u.snapshotCurrent(ctx, guildID, catalog, opID, "before")
	if err != nil {
		return nil, err
	}
	desired := roster.DesiredFromSheet(rows, current)

	plan, err := diff.Plan(current, desired, catalog)
	if err != nil {
		return nil, err
	}

	u.log.Infow("update planned",
		"op_id", opID,
		"guild_id", guildID,
		"sheet_rows", len(rows),
		"targets", desired.Len(),
		"mutations", len(plan.Mutations()),
	)
	return u.reconcileAndReport(ctx, guildID, catalog, opID, "update", current, before, plan)
}
