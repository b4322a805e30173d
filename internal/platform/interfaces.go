package platform

import (
	"context"

	"github.com/jabernat/SCHS-Robotics-Roles-Bot/internal/entities"
)

// LifecycleInterface describes session startup/shutdown hooks.
type LifecycleInterface interface {
	OnStart(_ context.Context) error
	OnStop(_ context.Context) error
}

// MemberInterface exposes the live member listing.
type MemberInterface interface {
	ListMembers(ctx context.Context, guildID string) ([]entities.User, error)
}

// CatalogInterface resolves configured role names against live guild roles.
// Any configured role missing on the platform fails the whole operation with
// ErrUnknownRole before a single mutation is attempted.
type CatalogInterface interface {
	ResolveCatalog(ctx context.Context, guildID string) (*entities.Catalog, error)
}

// MutationInterface exposes the per-user mutation sink.
type MutationInterface interface {
	SetDisplayName(ctx context.Context, guildID, userID, name string) error
	GrantRole(ctx context.Context, guildID, userID, roleID string) error
	RevokeRole(ctx context.Context, guildID, userID, roleID string) error
}

// StatusInterface exposes session state for the health surface.
type StatusInterface interface {
	Status() entities.SessionStatus
}
