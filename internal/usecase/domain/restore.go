// Package domain contains application usecases orchestrating reconciliation.
package domain

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jabernat/SCHS-Robotics-Roles-Bot/internal/diff"
	"github.com/jabernat/SCHS-Robotics-Roles-Bot/internal/entities"
	"github.com/jabernat/SCHS-Robotics-Roles-Bot/internal/reconcile"
	"github.com/jabernat/SCHS-Robotics-Roles-Bot/internal/roster"
	"github.com/jabernat/SCHS-Robotics-Roles-Bot/internal/snapshot"
)

// Restore reconciles the guild against a previously created backup file.
// Restore is all-or-nothing at the parse stage: a malformed backup aborts
// before any mutation, with no partial restore attempted. The apply stage is
// best-effort; the report lists every failed mutation.
func (u *Usecase) Restore(ctx context.Context, guildID string, backup []byte) (*entities.OperationResult, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	if guildID == "" {
		return nil, fmt.Errorf("%w: guild id is required", entities.ErrInvalidArgument)
	}
	if len(backup) == 0 {
		return nil, fmt.Errorf("%w: backup file is empty", entities.ErrMalformedBackup)
	}
	if err := u.requireConnected(); err != nil {
		return nil, err
	}

	opID := uuid.NewString()
	catalog, err := u.platform.ResolveCatalog(ctx, guildID)
	if err != nil {
		return nil, err
	}

	rows, err := snapshot.Decode(backup, catalog)
	if err != nil {
		return nil, err
	}
	desired := roster.DesiredFromBackup(rows)

	current, before, err := u.snapshotCurrent(ctx, guildID, catalog, opID, "before")
	if err != nil {
		return nil, err
	}

	plan, err := diff.Plan(current, desired, catalog)
	if err != nil {
		return nil, err
	}

	return u.reconcileAndReport(ctx, guildID, catalog, opID, "restore", current, before, plan)
}

// reconcileAndReport runs the reconciler and builds the operation result
// with before/after snapshots. Partial failure never suppresses the after
// snapshot.
func (u *Usecase) reconcileAndReport(ctx context.Context, guildID string, catalog *entities.Catalog, opID, kind string, current *entities.Roster, before *entities.Attachment, plan entities.Plan) (*entities.OperationResult, error) {
	report := reconcile.New(u.log, guildSink{platform: u.platform, guildID: guildID}).Run(ctx, plan)

	after := u.afterSnapshot(guildID, catalog, opID, current, report)

	u.log.Infow("operation finished",
		"op_id", opID,
		"operation", kind,
		"guild_id", guildID,
		"planned", len(plan.Mutations()),
		"applied", len(report.Applied),
		"failed", len(report.Failed),
		"skipped", len(report.Skipped),
	)
	return &entities.OperationResult{
		OperationID: opID,
		Planned:     len(plan.Mutations()),
		Report:      report,
		Before:      before,
		After:       after,
	}, nil
}

// afterSnapshot re-reads the live state after reconciliation. If the re-read
// fails the snapshot is projected from the applied mutations instead, so the
// invoker always gets an after table. A fresh context is used because the
// operation context may already be cancelled.
func (u *Usecase) afterSnapshot(guildID string, catalog *entities.Catalog, opID string, current *entities.Roster, report entities.Report) *entities.Attachment {
	readCtx, cancel := withTimeout(u.ctx, u.timeout)
	defer cancel()

	_, attachment, err := u.snapshotCurrent(readCtx, guildID, catalog, opID, "after")
	if err == nil {
		return attachment
	}
	u.log.Warnw("after snapshot re-read failed, projecting from applied mutations",
		"op_id", opID, "error", err.Error())

	projected := diff.ApplyPlan(current, appliedPlan(report))
	data, err := snapshot.Encode(projected, catalog)
	if err != nil {
		u.log.Errorw("after snapshot projection failed", "op_id", opID, "error", err.Error())
		return nil
	}
	return &entities.Attachment{Filename: attachmentName("after", opID), Data: data}
}

// appliedPlan rebundles the successfully applied mutations by user so
// ApplyPlan can project them onto the roster.
func appliedPlan(report entities.Report) entities.Plan {
	byUser := make(map[string][]entities.Mutation)
	var order []string
	for _, result := range report.Applied {
		id := result.Mutation.UserID
		if _, seen := byUser[id]; !seen {
			order = append(order, id)
		}
		byUser[id] = append(byUser[id], result.Mutation)
	}

	var plan entities.Plan
	for _, id := range order {
		plan.Bundles = append(plan.Bundles, entities.Bundle{UserID: id, Mutations: byUser[id]})
	}
	return plan
}
