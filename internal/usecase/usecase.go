package usecase

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/jabernat/SCHS-Robotics-Roles-Bot/internal/platform"
	"github.com/jabernat/SCHS-Robotics-Roles-Bot/internal/usecase/domain"
)

// InterfaceUsecase aggregates all usecase interfaces.
type InterfaceUsecase interface {
	BackupUsecaseInterface
	RestoreUsecaseInterface
	UpdateUsecaseInterface
	StatusUsecaseInterface
}

// New constructs a new usecase layer with its dependencies.
func New(log *zap.SugaredLogger, ctx context.Context, p platform.Platform, rows domain.RowSource, timeout time.Duration) InterfaceUsecase {
	return domain.New(log, ctx, p, rows, timeout)
}
