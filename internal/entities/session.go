// Package entities contains core business entities.
package entities

import "time"

// SessionStatus summarizes the gateway connection for the health surface.
type SessionStatus struct {
	Connected   bool      `json:"connected"`
	BotUsername string    `json:"bot_username"`
	GuildCount  int       `json:"guild_count"`
	ConnectedAt time.Time `json:"connected_at,omitempty"`
}

// Attachment is an opaque file artifact exchanged with the platform.
type Attachment struct {
	Filename string
	Data     []byte
}

// OperationResult is the outcome of a restore or update operation: the plan
// size, the reconciliation report and the before/after snapshots.
type OperationResult struct {
	OperationID string
	Planned     int
	Report      Report
	Before      *Attachment
	After       *Attachment
}
