// Package domain contains application usecases orchestrating reconciliation.
package domain

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/jabernat/SCHS-Robotics-Roles-Bot/internal/entities"
	"github.com/jabernat/SCHS-Robotics-Roles-Bot/internal/platform"
	"github.com/jabernat/SCHS-Robotics-Roles-Bot/internal/reconcile"
)

// RowSource yields ordered membership rows from the spreadsheet.
type RowSource interface {
	Rows(ctx context.Context) ([]entities.SheetRow, error)
}

// Usecase struct implements all usecase interfaces.
type Usecase struct {
	ctx      context.Context
	log      *zap.SugaredLogger
	platform platform.Platform
	rows     RowSource
	timeout  time.Duration
}

// New constructs a new usecase layer with its dependencies.
func New(
	log *zap.SugaredLogger,
	ctx context.Context,
	p platform.Platform,
	rows RowSource,
	timeout time.Duration,
) *Usecase {
	return &Usecase{
		ctx:      ctx,
		log:      log.Named("usecase"),
		platform: p,
		rows:     rows,
		timeout:  timeout,
	}
}

// Status reports the gateway session state.
func (u *Usecase) Status() entities.SessionStatus {
	return u.platform.Status()
}

// requireConnected rejects operations while the gateway session is down so
// they fail fast instead of timing out per API call.
func (u *Usecase) requireConnected() error {
	if !u.platform.Status().Connected {
		return fmt.Errorf("%w: gateway session is not established", entities.ErrNotConnected)
	}
	return nil
}

func withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, timeout)
}

// guildSink scopes the platform mutation interface to one guild for the
// reconciler.
type guildSink struct {
	platform platform.MutationInterface
	guildID  string
}

var _ reconcile.Sink = guildSink{}

func (s guildSink) SetDisplayName(ctx context.Context, userID, name string) error {
	return s.platform.SetDisplayName(ctx, s.guildID, userID, name)
}

func (s guildSink) GrantRole(ctx context.Context, userID, roleID string) error {
	return s.platform.GrantRole(ctx, s.guildID, userID, roleID)
}

func (s guildSink) RevokeRole(ctx context.Context, userID, roleID string) error {
	return s.platform.RevokeRole(ctx, s.guildID, userID, roleID)
}
