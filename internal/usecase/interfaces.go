package usecase

import (
	"context"

	"github.com/jabernat/SCHS-Robotics-Roles-Bot/internal/entities"
)

// BackupUsecaseInterface abstracts the backup operation for delivery layers.
type BackupUsecaseInterface interface {
	Backup(ctx context.Context, guildID string) (*entities.Attachment, error)
}

// RestoreUsecaseInterface abstracts restoring roles from a backup file.
type RestoreUsecaseInterface interface {
	Restore(ctx context.Context, guildID string, backup []byte) (*entities.OperationResult, error)
}

// UpdateUsecaseInterface abstracts reconciling roles against the spreadsheet.
type UpdateUsecaseInterface interface {
	Update(ctx context.Context, guildID string) (*entities.OperationResult, error)
}

// StatusUsecaseInterface abstracts session state for the health surface.
type StatusUsecaseInterface interface {
	Status() entities.SessionStatus
}
