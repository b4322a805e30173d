// Package reconcile applies mutation plans against the live platform with
// per-mutation failure isolation.
package reconcile

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/jabernat/SCHS-Robotics-Roles-Bot/internal/entities"
)

// Sink issues the platform calls backing each mutation kind.
type Sink interface {
	SetDisplayName(ctx context.Context, userID, name string) error
	GrantRole(ctx context.Context, userID, roleID string) error
	RevokeRole(ctx context.Context, userID, roleID string) error
}

// Reconciler applies plans best-effort: one attempt per mutation, failures
// recorded and skipped over, never aborting the batch.
type Reconciler struct {
	log  *zap.SugaredLogger
	sink Sink
}

// New constructs a reconciler over the given mutation sink.
func New(log *zap.SugaredLogger, sink Sink) *Reconciler {
	return &Reconciler{
		log:  log.Named("reconcile"),
		sink: sink,
	}
}

// Run applies each user's bundle in order. Users are independent; mutations
// within a bundle keep their planned order so revokes land before grants.
// Cancellation stops issuing further mutations and reports the remainder as
// skipped, so the caller can see exactly which mutations did not run.
func (r *Reconciler) Run(ctx context.Context, plan entities.Plan) entities.Report {
	var report entities.Report
	cancelled := false

	for _, bundle := range plan.Bundles {
		for _, mutation := range bundle.Mutations {
			if cancelled || ctx.Err() != nil {
				cancelled = true
				report.Skipped = append(report.Skipped, mutation)
				continue
			}

			if err := r.apply(ctx, mutation); err != nil {
				wrapped := fmt.Errorf("%w: %s: %v", entities.ErrPlatformMutation, mutation, err)
				report.Failed = append(report.Failed, entities.MutationResult{Mutation: mutation, Err: wrapped})
				r.log.Warnw("mutation failed",
					"user_id", bundle.UserID,
					"username", bundle.Username,
					"mutation", mutation.String(),
					"error", err.Error(),
				)
				continue
			}
			report.Applied = append(report.Applied, entities.MutationResult{Mutation: mutation})
		}
	}

	r.log.Infow("reconciliation finished",
		"applied", len(report.Applied),
		"failed", len(report.Failed),
		"skipped", len(report.Skipped),
	)
	return report
}

func (r *Reconciler) apply(ctx context.Context, m entities.Mutation) error {
	switch m.Op {
	case entities.OpSetDisplayName:
		return r.sink.SetDisplayName(ctx, m.UserID, m.Name)
	case entities.OpGrantRole:
		return r.sink.GrantRole(ctx, m.UserID, m.RoleID)
	case entities.OpRevokeRole:
		return r.sink.RevokeRole(ctx, m.UserID, m.RoleID)
	default:
		return fmt.Errorf("unsupported mutation op %q", m.Op)
	}
}
